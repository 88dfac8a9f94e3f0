package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	AvatarURL    *string    `json:"avatar_url,omitempty"`
	Provider     string     `json:"provider"`
	Role         string     `json:"role"`
	CustomerType string     `json:"customer_type"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

type UpdateUserRequest struct {
	Name string `json:"name"`
}
