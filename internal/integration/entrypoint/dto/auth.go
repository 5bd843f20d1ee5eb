// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/pairfin/backend/internal/domain/entity"
)

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the response for authentication endpoints.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// UserResponse represents the user data in API responses.
type UserResponse struct {
	ID                 string    `json:"id"`
	PartnershipID      string    `json:"partnership_id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	NotifyPriceChanges bool      `json:"notify_price_changes"`
	CreatedAt          time.Time `json:"created_at"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:                 user.ID.String(),
		PartnershipID:      user.PartnershipID.String(),
		Email:              user.Email,
		Name:               user.Name,
		NotifyPriceChanges: user.NotifyPriceChanges,
		CreatedAt:          user.CreatedAt,
	}
}
