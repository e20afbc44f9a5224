package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

// MinPasswordLength applies to every account, including the seeded admin.
const MinPasswordLength = 6

const (
	RoleAdmin  Role = "admin"
	RoleBuyer  Role = "buyer"
	RoleSolver Role = "solver"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleBuyer, RoleSolver:
		return true
	}
	return false
}

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Username     string    `gorm:"not null;size:100" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"not null;size:20;index" json:"role"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsBuyer() bool {
	return u.Role == RoleBuyer
}

func (u *User) IsSolver() bool {
	return u.Role == RoleSolver
}

// UserSummary is the public shape returned alongside an auth token.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
