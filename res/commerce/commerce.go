package commerce

import "context"

// CustomerInput carries one contact to mirror into the commerce platform,
// together with the business address attached to the customer record.
type CustomerInput struct {
	Email     string
	Phone     string
	FirstName string
	LastName  string

	// IsMain tags the primary contact of a registration.
	IsMain bool

	// BusinessCategory is added to the customer's tags.
	BusinessCategory string

	// Business address attached to the customer
	Company       string
	Address1      string
	City          string
	Province      string
	Zip           string
	BusinessPhone string
}

// UserError is a field-level validation error reported by the platform.
// These are application errors, distinct from transport failures.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// CommerceService defines the interface for the commerce customer platform
type CommerceService interface {
	// CreateCustomer creates a customer record. A transport or API failure
	// comes back as err; platform-side validation problems come back as
	// userErrors with a created customer ID of "".
	CreateCustomer(ctx context.Context, input CustomerInput) (customerID string, userErrors []UserError, err error)
}
