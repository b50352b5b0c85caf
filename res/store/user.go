package store

import "time"

type UserRole string

const (
	UserRoleStaff       UserRole = "STAFF"        // Dashboard user with read access (default sign-in)
	UserRoleGlobalAdmin UserRole = "GLOBAL_ADMIN" // Platform administrator (set via env var)
)

type User struct {
	ID          string   `gorm:"primaryKey;size:50;unique"`
	DisplayName string   `gorm:"size:50;not null"`
	Role        UserRole `gorm:"size:50;not null;default:'STAFF'"`

	GoogleIdentity *string `gorm:"size:256;unique"`
	Email          string  `gorm:"size:256;not null"`

	UpdatedAt time.Time `gorm:"autoUpdateTime;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null"`
}

// IsGlobalAdmin checks if the user has global admin privileges
func (u *User) IsGlobalAdmin() bool {
	return u.Role == UserRoleGlobalAdmin
}

// IsStaff checks if the user is a regular dashboard user
func (u *User) IsStaff() bool {
	return u.Role == UserRoleStaff
}
