package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer's review of a restaurant plus the owner's single,
// editable response. IsReplied never goes back to false.
type Review struct {
	ID                 uint       `json:"id" gorm:"primaryKey"`
	Text               string     `json:"text" gorm:"size:300;not null"`
	ResponseText       *string    `json:"response_text,omitempty" gorm:"size:300"`
	IsReplied          bool       `json:"is_replied" gorm:"not null;index"`
	PostedAt           time.Time  `json:"posted_at" gorm:"not null;index"`
	RespondedAt        *time.Time `json:"responded_at,omitempty"`
	AuthorPublicID     uuid.UUID  `json:"author_public_id" gorm:"type:char(36);not null;index"`
	RestaurantPublicID uuid.UUID  `json:"restaurant_public_id" gorm:"type:char(36);not null;index"`
}
