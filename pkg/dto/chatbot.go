package dto

import "github.com/google/uuid"

type StartSessionResponse struct {
	SessionID uuid.UUID `json:"session_id"`
}

type ChatMessageRequest struct {
	Message string `json:"message"`
}

type ChatMessageResponse struct {
	Reply            string   `json:"reply"`
	Sentiment        string   `json:"sentiment"`
	Intent           string   `json:"intent"`
	UserType         string   `json:"user_type"`
	Tags             []string `json:"tags"`
	ConversionScore  float64  `json:"conversion_score"`
	MessageCount     int      `json:"message_count"`
	DetectedUserType string   `json:"detected_user_type"`
	TypeConfidence   float64  `json:"type_confidence"`
}
