package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hyesong/aroma-api/internal/database"
	"github.com/hyesong/aroma-api/internal/models"
	"github.com/hyesong/aroma-api/internal/oauth"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

const userColumns = `id, email, name, avatar_url, provider, provider_id, role, customer_type, last_login_at, deactivated_at, created_at, updated_at`

type UserService struct {
	db *database.DB
}

func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

// LinkFromOAuth resolves a verified external identity to a local user:
// match by (provider, provider_id), else match by email and attach the
// identity, else create. A login always reactivates a soft-deactivated
// account, so an email can never map to two user records.
func (s *UserService) LinkFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	user, err := s.loginByProviderID(ctx, info)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up user by provider: %w", err)
	}

	user, err = s.attachProviderByEmail(ctx, info)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to link user by email: %w", err)
	}

	user, err = s.createFromOAuth(ctx, info)
	if err == nil {
		return user, nil
	}

	// A concurrent signup with the same email can win the insert race.
	// The unique constraint reports it, and the email attach then succeeds.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		user, retryErr := s.attachProviderByEmail(ctx, info)
		if retryErr != nil {
			return nil, fmt.Errorf("failed to link user after duplicate insert: %w", retryErr)
		}
		return user, nil
	}

	return nil, fmt.Errorf("failed to create user: %w", err)
}

func (s *UserService) loginByProviderID(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE users
		SET name = $3, avatar_url = COALESCE($4, avatar_url),
			last_login_at = NOW(), deactivated_at = NULL, updated_at = NOW()
		WHERE provider = $1 AND provider_id = $2
		RETURNING `+userColumns+`
	`, info.Provider, info.ID, info.Name, nullableString(info.AvatarURL)).Scan(
		&user.ID, &user.Email, &user.Name, &user.AvatarURL,
		&user.Provider, &user.ProviderID, &user.Role, &user.CustomerType,
		&user.LastLoginAt, &user.DeactivatedAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) attachProviderByEmail(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE users
		SET provider = $2, provider_id = $3, avatar_url = COALESCE($4, avatar_url),
			last_login_at = NOW(), deactivated_at = NULL, updated_at = NOW()
		WHERE email = $1
		RETURNING `+userColumns+`
	`, info.Email, info.Provider, info.ID, nullableString(info.AvatarURL)).Scan(
		&user.ID, &user.Email, &user.Name, &user.AvatarURL,
		&user.Provider, &user.ProviderID, &user.Role, &user.CustomerType,
		&user.LastLoginAt, &user.DeactivatedAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) createFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, avatar_url, provider, provider_id, last_login_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING `+userColumns+`
	`, info.Email, info.Name, nullableString(info.AvatarURL), info.Provider, info.ID).Scan(
		&user.ID, &user.Email, &user.Name, &user.AvatarURL,
		&user.Provider, &user.ProviderID, &user.Role, &user.CustomerType,
		&user.LastLoginAt, &user.DeactivatedAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID only sees active accounts; a deactivated user reappears through
// LinkFromOAuth, never through a lookup.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1 AND deactivated_at IS NULL
	`, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.AvatarURL,
		&user.Provider, &user.ProviderID, &user.Role, &user.CustomerType,
		&user.LastLoginAt, &user.DeactivatedAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1 AND deactivated_at IS NULL
	`, email).Scan(
		&user.ID, &user.Email, &user.Name, &user.AvatarURL,
		&user.Provider, &user.ProviderID, &user.Role, &user.CustomerType,
		&user.LastLoginAt, &user.DeactivatedAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE users SET name = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+userColumns+`
	`, name, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.AvatarURL,
		&user.Provider, &user.ProviderID, &user.Role, &user.CustomerType,
		&user.LastLoginAt, &user.DeactivatedAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Deactivate soft-deletes: the row is kept so a later OAuth login can
// reactivate it instead of creating a duplicate email.
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `
		UPDATE users SET deactivated_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deactivated_at IS NULL
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
