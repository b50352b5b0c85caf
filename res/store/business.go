package store

import (
	"context"
	"time"
)

// BusinessRecord is a submitted partner registration. Its existence is the
// single source of truth for a successful submission; account managers,
// state licenses, and notifications are best-effort enrichments around it.
type BusinessRecord struct {
	ID string `gorm:"primaryKey;size:50;unique" json:"id"`

	// Business identity
	BusinessName          string  `gorm:"size:256;not null;index:idx_business_records_name" json:"business_name"`
	BusinessStreetAddress string  `gorm:"size:256;not null" json:"business_street_address"`
	BusinessCity          string  `gorm:"size:100;not null" json:"business_city"`
	BusinessState         string  `gorm:"size:100;not null" json:"business_state"`
	BusinessZipCode       string  `gorm:"size:20;not null" json:"business_zip_code"`
	BusinessPhone         string  `gorm:"size:50;not null" json:"business_phone"`
	WebsiteURL            *string `gorm:"size:256" json:"website_url"`

	// Category classification
	BusinessCategory string  `gorm:"size:50;not null;index:idx_business_records_category" json:"business_category"`
	Subcategory      string  `gorm:"size:100;not null" json:"subcategory"`
	OtherSubcategory *string `gorm:"size:256" json:"other_subcategory"`
	AccountRep       string  `gorm:"size:100;not null" json:"account_rep"`
	AccountManager   *string `gorm:"size:256" json:"account_manager"`

	// Branch-dependent details
	LocationCount          *int     `json:"location_count"`
	OutletTypes            []string `gorm:"type:jsonb;serializer:json" json:"outlet_types"`
	OtherOutletDescription *string  `gorm:"type:text" json:"other_outlet_description"`
	WhySellReason          *string  `gorm:"type:text" json:"why_sell_reason"`

	// Tax identifier
	EIN string `gorm:"size:100;not null" json:"ein"`

	States          []BusinessState  `gorm:"foreignKey:BusinessID" json:"states,omitempty"`
	AccountManagers []AccountManager `gorm:"foreignKey:BusinessID" json:"account_managers,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;index:idx_business_records_created" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updated_at"`
}

// MainManager returns the primary account manager, nil when none is loaded.
func (r *BusinessRecord) MainManager() *AccountManager {
	for i := range r.AccountManagers {
		if r.AccountManagers[i].IsMain {
			return &r.AccountManagers[i]
		}
	}
	if len(r.AccountManagers) > 0 {
		return &r.AccountManagers[0]
	}
	return nil
}

// BusinessRecordStore defines the data access interface for business records
type BusinessRecordStore interface {
	// Create creates a new business record
	Create(ctx context.Context, record *BusinessRecord) error

	// Get retrieves a business record by ID
	Get(ctx context.Context, id string) (*BusinessRecord, error)

	// GetWithRelations retrieves a record with its states and account managers
	GetWithRelations(ctx context.Context, id string) (*BusinessRecord, error)

	// List retrieves all business records, most recent first
	List(ctx context.Context) ([]*BusinessRecord, error)

	// ListWithRelations retrieves all records with states and account managers
	ListWithRelations(ctx context.Context) ([]*BusinessRecord, error)

	// Update applies a partial field update to a record
	Update(ctx context.Context, id string, updates map[string]interface{}) error

	// Delete deletes a business record
	Delete(ctx context.Context, id string) error
}
