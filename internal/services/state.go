package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hyesong/aroma-api/internal/database"
	"github.com/hyesong/aroma-api/internal/oauth"
)

// StateTTL is how long an issued OAuth state stays valid.
const StateTTL = 10 * time.Minute

// StateService guards the OAuth redirect round trip against CSRF. States
// are random, short-lived and strictly single-use.
type StateService struct {
	db *database.DB
}

func NewStateService(db *database.DB) *StateService {
	return &StateService{db: db}
}

// Issue stores a fresh random state bound to the provider and the post-login
// redirect target, and returns it for inclusion in the consent URL.
func (s *StateService) Issue(ctx context.Context, provider, redirectTarget string) (string, error) {
	state, err := oauth.GenerateState()
	if err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}

	_, err = s.db.Pool.Exec(ctx, `
		INSERT INTO oauth_states (state, provider, redirect_target, expires_at)
		VALUES ($1, $2, $3, $4)
	`, state, provider, redirectTarget, time.Now().Add(StateTTL))
	if err != nil {
		return "", fmt.Errorf("failed to store state: %w", err)
	}

	return state, nil
}

// Consume validates and deletes the state in a single statement, so a
// replayed callback finds nothing. Returns the redirect target issued with
// the state; pgx.ErrNoRows when the state is unknown, expired or already
// used, or bound to a different provider.
func (s *StateService) Consume(ctx context.Context, state, provider string) (string, error) {
	var redirectTarget string
	err := s.db.Pool.QueryRow(ctx, `
		DELETE FROM oauth_states
		WHERE state = $1 AND provider = $2 AND expires_at > NOW()
		RETURNING redirect_target
	`, state, provider).Scan(&redirectTarget)
	if err != nil {
		return "", err
	}
	return redirectTarget, nil
}

// CleanupExpired removes states that timed out without ever being consumed.
func (s *StateService) CleanupExpired(ctx context.Context) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM oauth_states WHERE expires_at < NOW()`)
	return err
}
