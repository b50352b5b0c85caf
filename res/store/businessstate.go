package store

import (
	"context"
	"time"
)

// BusinessState is one state a partner operates in, with the reseller
// number and the stored filename of the uploaded license document.
// DocumentPath is nil when the upload was skipped or failed.
type BusinessState struct {
	ID         string `gorm:"primaryKey;size:50;unique" json:"id"`
	BusinessID string `gorm:"size:50;not null;index:idx_business_states_business" json:"business_id"`

	StateCode      string  `gorm:"size:2;not null" json:"state_code"`
	StateName      string  `gorm:"size:100;not null" json:"state_name"`
	ResellerNumber string  `gorm:"size:100;not null" json:"reseller_number"`
	DocumentPath   *string `gorm:"size:512" json:"document_url"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updated_at"`
}

// BusinessStateStore defines the data access interface for state licenses
type BusinessStateStore interface {
	// Create creates a single state record
	Create(ctx context.Context, state *BusinessState) error

	// CreateBatch creates all state records of one submission together
	CreateBatch(ctx context.Context, states []*BusinessState) error

	// GetByBusiness retrieves all state records for a business
	GetByBusiness(ctx context.Context, businessID string) ([]*BusinessState, error)

	// Delete deletes a state record
	Delete(ctx context.Context, id string) error
}
