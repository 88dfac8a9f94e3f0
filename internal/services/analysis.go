package services

import (
	"context"
	"fmt"

	"github.com/hyesong/aroma-api/internal/classifier"
	"github.com/hyesong/aroma-api/internal/database"
	"github.com/hyesong/aroma-api/internal/models"
)

type AnalysisService struct {
	db *database.DB
}

func NewAnalysisService(db *database.DB) *AnalysisService {
	return &AnalysisService{db: db}
}

// AnalyzeComment classifies the text and appends the result as an immutable
// record. Classification itself cannot fail; only the insert can.
func (s *AnalysisService) AnalyzeComment(ctx context.Context, source, content string) (*models.CommentAnalysis, error) {
	result := classifier.Classify(content)

	var record models.CommentAnalysis
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO comment_analyses (source, content, sentiment, intent, user_type, tags, conversion_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, source, content, sentiment, intent, user_type, tags, conversion_score, created_at
	`, source, content, string(result.Sentiment), string(result.Intent), string(result.UserType),
		result.Tags, result.ConversionScore).Scan(
		&record.ID, &record.Source, &record.Content, &record.Sentiment,
		&record.Intent, &record.UserType, &record.Tags, &record.ConversionScore,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to store analysis: %w", err)
	}

	return &record, nil
}

// ListBySource returns records ordered by conversion score, highest first.
// The admin dashboard uses this ordering to surface likely converters.
func (s *AnalysisService) ListBySource(ctx context.Context, source string, limit int) ([]models.CommentAnalysis, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, source, content, sentiment, intent, user_type, tags, conversion_score, created_at
		FROM comment_analyses
		WHERE source = $1
		ORDER BY conversion_score DESC, created_at DESC
		LIMIT $2
	`, source, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.CommentAnalysis
	for rows.Next() {
		var record models.CommentAnalysis
		if err := rows.Scan(
			&record.ID, &record.Source, &record.Content, &record.Sentiment,
			&record.Intent, &record.UserType, &record.Tags, &record.ConversionScore,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
