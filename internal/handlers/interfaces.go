package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hyesong/aroma-api/internal/models"
	"github.com/hyesong/aroma-api/internal/oauth"
	"github.com/hyesong/aroma-api/internal/services"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	LinkFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email, role string) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

// StateServiceInterface defines the methods used by handlers from StateService
type StateServiceInterface interface {
	Issue(ctx context.Context, provider, redirectTarget string) (string, error)
	Consume(ctx context.Context, state, provider string) (string, error)
}

// AnalysisServiceInterface defines the methods used by handlers from AnalysisService
type AnalysisServiceInterface interface {
	AnalyzeComment(ctx context.Context, source, content string) (*models.CommentAnalysis, error)
	ListBySource(ctx context.Context, source string, limit int) ([]models.CommentAnalysis, error)
}

// ChatServiceInterface defines the methods used by handlers from ChatService
type ChatServiceInterface interface {
	StartSession(ctx context.Context, userID *uuid.UUID) (*models.ChatSession, error)
	RecordMessage(ctx context.Context, sessionID uuid.UUID, content string) (*models.ChatMessage, *models.ChatSession, error)
}
