package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole defines the application roles
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTutor   UserRole = "tutor"
)

// User is the per-identity record in the store. Role is always resolved from
// this record, never invented on the caller's side.
type User struct {
	ID           uuid.UUID      `json:"id" gorm:"type:text;primary_key"`
	Email        string         `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string         `json:"-"`
	DisplayName  string         `json:"display_name"`
	FullName     string         `json:"full_name"` // legacy field, kept as a display name fallback
	Role         UserRole       `json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// Identity is the resolved application identity handed to the rest of the
// system after an authentication event. A nil *Identity means signed out.
type Identity struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        UserRole  `json:"role"`
}

// IsTutor reports whether the identity carries the tutor role. All role
// checks go through here so role policy changes happen in one place.
func (i *Identity) IsTutor() bool {
	return i != nil && i.Role == RoleTutor
}
