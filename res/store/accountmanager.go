package store

import (
	"context"
	"time"
)

// AccountManager is a contact mirrored into the commerce platform. Exactly
// one manager per business is the main contact; the rest keep the order the
// applicant entered them in.
type AccountManager struct {
	ID         string `gorm:"primaryKey;size:50;unique" json:"id"`
	BusinessID string `gorm:"size:50;not null;index:idx_account_managers_business" json:"business_id"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Email     string `gorm:"size:256;not null" json:"email"`
	Phone     string `gorm:"size:50;not null" json:"phone"`
	IsMain    bool   `gorm:"not null;default:false" json:"is_main"`

	// Identifier of the mirrored commerce customer, nil when mirroring
	// failed (best-effort, reconciled manually).
	ShopifyCustomerID *string `gorm:"size:100" json:"shopify_customer_id"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updated_at"`
}

// FullName joins first and last name for display.
func (m *AccountManager) FullName() string {
	if m.FirstName == "" {
		return m.LastName
	}
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}

// AccountManagerStore defines the data access interface for account managers
type AccountManagerStore interface {
	// Create creates a single account manager
	Create(ctx context.Context, manager *AccountManager) error

	// CreateBatch creates several account managers together
	CreateBatch(ctx context.Context, managers []*AccountManager) error

	// GetByBusiness retrieves the managers for a business, main contact first
	GetByBusiness(ctx context.Context, businessID string) ([]*AccountManager, error)

	// Delete deletes an account manager
	Delete(ctx context.Context, id string) error
}
