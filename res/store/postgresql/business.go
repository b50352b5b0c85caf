package postgresql

import (
	"context"
	"errors"
	"fmt"

	"partner-portal-api/res/store"

	"gorm.io/gorm"
)

type businessRecordStore struct {
	*storeImpl
}

func NewBusinessRecordStore(rootStore *storeImpl) *businessRecordStore {
	return &businessRecordStore{storeImpl: rootStore}
}

// MUTATIONS

func (bs *businessRecordStore) Create(ctx context.Context, record *store.BusinessRecord) error {
	result := bs.db.WithContext(ctx).Create(record)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("failed to create business record")
	}
	return nil
}

func (bs *businessRecordStore) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return fmt.Errorf("no fields to update")
	}

	result := bs.db.WithContext(ctx).Model(&store.BusinessRecord{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return store.ErrNotFound
	}
	return nil
}

func (bs *businessRecordStore) Delete(ctx context.Context, id string) error {
	result := bs.db.WithContext(ctx).Delete(&store.BusinessRecord{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("business record not found (id: %s)", id)
	}
	return nil
}

// QUERIES

func (bs *businessRecordStore) Get(ctx context.Context, id string) (*store.BusinessRecord, error) {
	var record store.BusinessRecord
	result := bs.db.WithContext(ctx).Where("id = ?", id).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, result.Error
	}
	return &record, nil
}

func (bs *businessRecordStore) GetWithRelations(ctx context.Context, id string) (*store.BusinessRecord, error) {
	var record store.BusinessRecord
	result := bs.db.WithContext(ctx).
		Preload("States").
		Preload("AccountManagers", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_main DESC, created_at ASC")
		}).
		Where("id = ?", id).
		First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, result.Error
	}
	return &record, nil
}

func (bs *businessRecordStore) List(ctx context.Context) ([]*store.BusinessRecord, error) {
	var records []*store.BusinessRecord
	result := bs.db.WithContext(ctx).Order("created_at DESC").Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}

func (bs *businessRecordStore) ListWithRelations(ctx context.Context) ([]*store.BusinessRecord, error) {
	var records []*store.BusinessRecord
	result := bs.db.WithContext(ctx).
		Preload("States").
		Preload("AccountManagers", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_main DESC, created_at ASC")
		}).
		Order("created_at DESC").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}
