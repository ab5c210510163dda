package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the single role a user holds at a time.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered account. Role is derived state and is only
// changed by restaurant creation/removal or by out-of-band admin provisioning.
type User struct {
	ID           uint      `json:"-" gorm:"primaryKey"`
	PublicID     uuid.UUID `json:"public_id" gorm:"type:char(36);uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"size:50;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Contact      string    `json:"contact" gorm:"size:20"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;default:'customer';index"`
	Enabled      bool      `json:"enabled" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate assigns the public id and default role and rejects unknown roles.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.PublicID == uuid.Nil {
		u.PublicID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	if !u.Role.Valid() {
		return fmt.Errorf("unknown role %q", u.Role)
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// IsOwner reports whether the user holds the owner role.
func (u *User) IsOwner() bool { return u != nil && u.Role == RoleOwner }
