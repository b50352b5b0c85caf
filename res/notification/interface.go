package notification

import "context"

// NotificationService defines the interface for notification operations
type NotificationService interface {
	// NotifyNewRegistration announces a freshly submitted partner registration
	NotifyNewRegistration(ctx context.Context, businessName, businessID, contactEmail string) error
}
