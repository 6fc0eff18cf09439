package models

import "time"

// User is the authoritative user record. The Firebase UID links it to the
// identity provider; the row itself is the source of truth for role and
// active status. Users are never hard-deleted, deactivation only flips
// IsActive.
type User struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	FirebaseUID string    `gorm:"uniqueIndex;size:128;not null" json:"firebaseUid"`
	Email       string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	DisplayName string    `gorm:"size:128" json:"displayName,omitempty"`
	PhotoURL    string    `gorm:"size:512" json:"photoUrl,omitempty"`
	Role        Role      `gorm:"type:varchar(16);not null;default:'FARMER'" json:"role"`
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "users"
}

// RoleCount is one bucket of the per-role user aggregation.
type RoleCount struct {
	Role  Role  `json:"role"`
	Count int64 `json:"count"`
}

// UserStats summarizes the user table for the admin dashboard.
type UserStats struct {
	Total  int64       `json:"total"`
	Active int64       `json:"active"`
	ByRole []RoleCount `json:"byRole"`
}
