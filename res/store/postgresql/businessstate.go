package postgresql

import (
	"context"
	"fmt"

	"partner-portal-api/res/store"
)

type businessStateStore struct {
	*storeImpl
}

func NewBusinessStateStore(rootStore *storeImpl) *businessStateStore {
	return &businessStateStore{storeImpl: rootStore}
}

// MUTATIONS

func (ss *businessStateStore) Create(ctx context.Context, state *store.BusinessState) error {
	result := ss.db.WithContext(ctx).Create(state)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("failed to create business state (%s)", state.StateCode)
	}
	return nil
}

func (ss *businessStateStore) CreateBatch(ctx context.Context, states []*store.BusinessState) error {
	if len(states) == 0 {
		return nil
	}
	result := ss.db.WithContext(ctx).Create(states)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (ss *businessStateStore) Delete(ctx context.Context, id string) error {
	result := ss.db.WithContext(ctx).Delete(&store.BusinessState{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("business state not found (id: %s)", id)
	}
	return nil
}

// QUERIES

func (ss *businessStateStore) GetByBusiness(ctx context.Context, businessID string) ([]*store.BusinessState, error) {
	var states []*store.BusinessState
	result := ss.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("state_code ASC").
		Find(&states)
	if result.Error != nil {
		return nil, result.Error
	}
	return states, nil
}
