package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Restaurant is a listed venue. When OwnerPublicID is set, the referenced
// user holds RoleOwner; the unique index keeps one restaurant per owner.
type Restaurant struct {
	ID            uint            `json:"-" gorm:"primaryKey"`
	PublicID      uuid.UUID       `json:"public_id" gorm:"type:char(36);uniqueIndex;not null"`
	Name          string          `json:"name" gorm:"size:50;not null;index"`
	Address       string          `json:"address" gorm:"size:60;not null"`
	Contact       string          `json:"contact" gorm:"size:20"`
	Email         string          `json:"email" gorm:"size:255"`
	Rating        float64         `json:"rating"`
	Image         string          `json:"image" gorm:"size:255"`
	Menu          string          `json:"menu" gorm:"size:255"`
	AvgCost       decimal.Decimal `json:"avg_cost" gorm:"type:decimal(10,2);not null"`
	OwnerPublicID uuid.NullUUID   `json:"owner_public_id" gorm:"type:char(36);uniqueIndex"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BeforeCreate sets the public id before creating the record.
func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.PublicID == uuid.Nil {
		r.PublicID = uuid.New()
	}
	return nil
}

// OwnedBy reports whether userID is the restaurant's owner.
func (r *Restaurant) OwnedBy(userID uuid.UUID) bool {
	return r.OwnerPublicID.Valid && r.OwnerPublicID.UUID == userID
}
