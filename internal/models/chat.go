package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession accumulates per-conversation state. The detected user type's
// confidence only ever increases as signals arrive.
type ChatSession struct {
	ID               uuid.UUID  `json:"id"`
	UserID           *uuid.UUID `json:"user_id,omitempty"`
	MessageCount     int        `json:"message_count"`
	DetectedUserType string     `json:"detected_user_type"`
	TypeConfidence   float64    `json:"type_confidence"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ChatMessage is an append-only record of one incoming message, its
// classification and the reply that was sent back.
type ChatMessage struct {
	ID              uuid.UUID `json:"id"`
	SessionID       uuid.UUID `json:"session_id"`
	Content         string    `json:"content"`
	Sentiment       string    `json:"sentiment"`
	Intent          string    `json:"intent"`
	UserType        string    `json:"user_type"`
	Tags            []string  `json:"tags"`
	ConversionScore float64   `json:"conversion_score"`
	Reply           string    `json:"reply"`
	CreatedAt       time.Time `json:"created_at"`
}
