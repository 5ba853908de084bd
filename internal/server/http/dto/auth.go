package dto

import (
	"time"

	"github.com/cianorte/storefront/internal/domain/model"
)

// RegisterRequest describes the registration payload.
type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	NationalID string `json:"cpf" binding:"required"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

// LoginRequest describes login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the bearer token and the user profile.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateProfileRequest carries optional profile updates.
type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	NationalID string    `json:"cpf"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	CreatedAt  time.Time `json:"registration_date"`
}

// ToUserResponse converts the domain user.
func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		NationalID: user.NationalID,
		Phone:      user.Phone,
		Address:    user.Address,
		CreatedAt:  user.CreatedAt,
	}
}
