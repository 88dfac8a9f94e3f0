package models

import (
	"time"

	"github.com/google/uuid"
)

// Sources a classified text can come from
const (
	AnalysisSourceBlog   = "blog"
	AnalysisSourceReview = "review"
)

// CommentAnalysis is an append-only classification record. Rows are written
// once at submission time and never updated.
type CommentAnalysis struct {
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
