package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		avatar_url VARCHAR(500),
		provider VARCHAR(50) NOT NULL,
		provider_id VARCHAR(255) NOT NULL,
		role VARCHAR(50) NOT NULL DEFAULT 'user',
		customer_type VARCHAR(20) NOT NULL DEFAULT 'b2c',
		last_login_at TIMESTAMP WITH TIME ZONE,
		deactivated_at TIMESTAMP WITH TIME ZONE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(provider, provider_id)
	)`,

	// Single-use CSRF states for the OAuth redirect round trip
	`CREATE TABLE IF NOT EXISTS oauth_states (
		state VARCHAR(64) PRIMARY KEY,
		provider VARCHAR(50) NOT NULL,
		redirect_target VARCHAR(500) NOT NULL DEFAULT '',
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token_hash VARCHAR(255) NOT NULL UNIQUE,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	// Append-only classification records for blog comments and reviews
	`CREATE TABLE IF NOT EXISTS comment_analyses (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		source VARCHAR(50) NOT NULL DEFAULT 'blog',
		content TEXT NOT NULL,
		sentiment VARCHAR(20) NOT NULL,
		intent VARCHAR(20) NOT NULL,
		user_type VARCHAR(20) NOT NULL,
		tags TEXT[] NOT NULL DEFAULT '{}',
		conversion_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS chat_sessions (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID REFERENCES users(id) ON DELETE SET NULL,
		message_count INTEGER NOT NULL DEFAULT 0,
		detected_user_type VARCHAR(20) NOT NULL DEFAULT 'unknown',
		type_confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS chat_messages (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		session_id UUID NOT NULL REFERENCES chat_sessions(id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		sentiment VARCHAR(20) NOT NULL,
		intent VARCHAR(20) NOT NULL,
		user_type VARCHAR(20) NOT NULL,
		tags TEXT[] NOT NULL DEFAULT '{}',
		conversion_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		reply TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON refresh_tokens(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_oauth_states_expires_at ON oauth_states(expires_at)`,
	`CREATE INDEX IF NOT EXISTS idx_comment_analyses_source ON comment_analyses(source)`,
	`CREATE INDEX IF NOT EXISTS idx_comment_analyses_score ON comment_analyses(conversion_score DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_messages_session_id ON chat_messages(session_id)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
