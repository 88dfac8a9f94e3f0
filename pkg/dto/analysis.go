package dto

import (
	"time"

	"github.com/google/uuid"
)

type AnalyzeCommentRequest struct {
	Source  string `json:"source"`
	Content string `json:"content"`
}

type AnalysisResponse struct {
	ID              uuid.UUID `json:"id"`
	Source          string    `json:"source"`
	Content         string    `json:"content"`
	Sentiment       string    `json:"sentiment"`
	Intent          string    `json:"intent"`
	UserType        string    `json:"user_type"`
	Tags            []string  `json:"tags"`
	ConversionScore float64   `json:"conversion_score"`
	CreatedAt       time.Time `json:"created_at"`
}
