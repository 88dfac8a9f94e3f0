package models

import (
	"time"

	"github.com/google/uuid"
)

// Platform-wide user roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Customer categories (free-form business attribute, defaulted at signup)
const (
	CustomerTypeB2B = "b2b"
	CustomerTypeB2C = "b2c"
)

type User struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	AvatarURL     *string    `json:"avatar_url,omitempty"`
	Provider      string     `json:"provider"`
	ProviderID    string     `json:"-"`
	Role          string     `json:"role"`
	CustomerType  string     `json:"customer_type"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	DeactivatedAt *time.Time `json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
