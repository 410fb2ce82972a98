package dto

import "github.com/yukikurage/taskboard-api/internal/models"

// UserProfile holds the user fields a client may set.
type UserProfile struct {
	DisplayName string `json:"display_name" binding:"max=100"`
	Email       string `json:"email,omitempty" binding:"omitempty,email"`
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	UserProfile
}

// SignupRequest is the body of POST /api/auth/signup.
type SignupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required"`
	UserProfile
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		UserProfile: UserProfile{
			DisplayName: user.DisplayName,
			Email:       user.Email,
		},
	}
}
