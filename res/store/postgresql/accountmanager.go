package postgresql

import (
	"context"
	"errors"
	"fmt"

	"partner-portal-api/res/store"

	"gorm.io/gorm"
)

type accountManagerStore struct {
	*storeImpl
}

func NewAccountManagerStore(rootStore *storeImpl) *accountManagerStore {
	return &accountManagerStore{storeImpl: rootStore}
}

// MUTATIONS

func (ms *accountManagerStore) Create(ctx context.Context, manager *store.AccountManager) error {
	result := ms.db.WithContext(ctx).Create(manager)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return store.ErrUniqueViolation
		}
		return result.Error
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("failed to create account manager (%s)", manager.Email)
	}
	return nil
}

func (ms *accountManagerStore) CreateBatch(ctx context.Context, managers []*store.AccountManager) error {
	if len(managers) == 0 {
		return nil
	}
	result := ms.db.WithContext(ctx).Create(managers)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (ms *accountManagerStore) Delete(ctx context.Context, id string) error {
	result := ms.db.WithContext(ctx).Delete(&store.AccountManager{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("account manager not found (id: %s)", id)
	}
	return nil
}

// QUERIES

func (ms *accountManagerStore) GetByBusiness(ctx context.Context, businessID string) ([]*store.AccountManager, error) {
	var managers []*store.AccountManager
	result := ms.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("is_main DESC, created_at ASC").
		Find(&managers)
	if result.Error != nil {
		return nil, result.Error
	}
	return managers, nil
}
