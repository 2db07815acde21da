// Package models contains data structures for the application's domain models.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the marketplace role of a user.
type Role string

const (
	RolePoster Role = "poster"
	RoleDoer   Role = "doer"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePoster, RoleDoer, RoleAdmin:
		return true
	}
	return false
}

// ParseRole normalizes a role string and reports whether it is known.
func ParseRole(raw string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	return r, r.Valid()
}

// User represents an account on the job board.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"size:20;not null;index" json:"role"`
	Department   string    `gorm:"size:50" json:"department"`
	CreatedAt    time.Time `json:"created_at"`
}

// BeforeCreate assigns a fresh UUID when none was set.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserSummary is the public projection of a user attached to other resources.
type UserSummary struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
}

// Summary returns the public projection of u.
func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Department: u.Department,
	}
}
