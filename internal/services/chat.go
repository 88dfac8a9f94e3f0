package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hyesong/aroma-api/internal/chatbot"
	"github.com/hyesong/aroma-api/internal/classifier"
	"github.com/hyesong/aroma-api/internal/database"
	"github.com/hyesong/aroma-api/internal/models"
)

// Detected-type confidence levels. A session's confidence only ever moves
// up: B2B signals dominate and strengthen on repetition, B2C signals only
// claim a session nobody has claimed more strongly yet.
const (
	b2bConfidence = 0.7
	b2bIncrement  = 0.15
	b2cConfidence = 0.5
)

type ChatService struct {
	db *database.DB
}

func NewChatService(db *database.DB) *ChatService {
	return &ChatService{db: db}
}

func (s *ChatService) StartSession(ctx context.Context, userID *uuid.UUID) (*models.ChatSession, error) {
	var session models.ChatSession
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO chat_sessions (user_id)
		VALUES ($1)
		RETURNING id, user_id, message_count, detected_user_type, type_confidence, created_at, updated_at
	`, userID).Scan(
		&session.ID, &session.UserID, &session.MessageCount,
		&session.DetectedUserType, &session.TypeConfidence,
		&session.CreatedAt, &session.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}
	return &session, nil
}

func (s *ChatService) GetSession(ctx context.Context, sessionID uuid.UUID) (*models.ChatSession, error) {
	var session models.ChatSession
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, user_id, message_count, detected_user_type, type_confidence, created_at, updated_at
		FROM chat_sessions WHERE id = $1
	`, sessionID).Scan(
		&session.ID, &session.UserID, &session.MessageCount,
		&session.DetectedUserType, &session.TypeConfidence,
		&session.CreatedAt, &session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// RecordMessage classifies one incoming message, advances the session state
// and appends the message with its composed reply.
func (s *ChatService) RecordMessage(ctx context.Context, sessionID uuid.UUID, content string) (*models.ChatMessage, *models.ChatSession, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	result := classifier.Classify(content)

	session.MessageCount++
	session.DetectedUserType, session.TypeConfidence = advanceUserType(
		session.DetectedUserType, session.TypeConfidence, result.UserType,
	)

	reply := chatbot.Compose(result, session.MessageCount)

	var message models.ChatMessage
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO chat_messages (session_id, content, sentiment, intent, user_type, tags, conversion_score, reply)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, session_id, content, sentiment, intent, user_type, tags, conversion_score, reply, created_at
	`, sessionID, content, string(result.Sentiment), string(result.Intent), string(result.UserType),
		result.Tags, result.ConversionScore, reply).Scan(
		&message.ID, &message.SessionID, &message.Content, &message.Sentiment,
		&message.Intent, &message.UserType, &message.Tags, &message.ConversionScore,
		&message.Reply, &message.CreatedAt,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to store chat message: %w", err)
	}

	err = s.db.Pool.QueryRow(ctx, `
		UPDATE chat_sessions
		SET message_count = $2, detected_user_type = $3, type_confidence = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, message_count, detected_user_type, type_confidence, created_at, updated_at
	`, sessionID, session.MessageCount, session.DetectedUserType, session.TypeConfidence).Scan(
		&session.ID, &session.UserID, &session.MessageCount,
		&session.DetectedUserType, &session.TypeConfidence,
		&session.CreatedAt, &session.UpdatedAt,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update chat session: %w", err)
	}

	return &message, session, nil
}

func advanceUserType(current string, confidence float64, signal classifier.UserType) (string, float64) {
	switch signal {
	case classifier.UserTypeB2B:
		if current == models.CustomerTypeB2B {
			confidence += b2bIncrement
			if confidence > 1 {
				confidence = 1
			}
			return current, confidence
		}
		if confidence < b2bConfidence {
			confidence = b2bConfidence
		}
		return models.CustomerTypeB2B, confidence
	case classifier.UserTypeB2C:
		if confidence < b2cConfidence {
			return models.CustomerTypeB2C, b2cConfidence
		}
	}
	return current, confidence
}
