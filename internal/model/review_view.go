package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewView is the public projection of a review. ResponseText is only
// populated once the review has been answered.
type ReviewView struct {
	ID             uint      `json:"id"`
	Text           string    `json:"text"`
	AuthorPublicID uuid.UUID `json:"author_public_id"`
	AuthorName     string    `json:"author_name"`
	PostedAt       time.Time `json:"posted_at"`
	IsReplied      bool      `json:"is_replied"`
	ResponseText   *string   `json:"response_text,omitempty"`
}

// NewReviewView projects r for callers.
func NewReviewView(r Review, authorName string) ReviewView {
	v := ReviewView{
		ID:             r.ID,
		Text:           r.Text,
		AuthorPublicID: r.AuthorPublicID,
		AuthorName:     authorName,
		PostedAt:       r.PostedAt,
		IsReplied:      r.IsReplied,
	}
	if r.IsReplied && r.ResponseText != nil {
		text := *r.ResponseText
		v.ResponseText = &text
	}
	return v
}
