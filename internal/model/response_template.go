package model

import "time"

const (
	MinSentimentScore = -5
	MaxSentimentScore = 5
)

// ResponseTemplate is a canned owner reply tagged with the sentiment of the
// reviews it suits.
type ResponseTemplate struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Text           string    `json:"text" gorm:"size:200;not null"`
	SentimentScore int       `json:"sentiment_score" gorm:"not null;index"`
	CreatedAt      time.Time `json:"created_at"`
}
