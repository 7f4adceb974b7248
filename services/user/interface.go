package user

import (
	userRepo "meddirect/database/repository/user"
	"meddirect/models"
)

// UserService defines account operations for patients.
type UserService interface {
	Register(data models.UserRegistrationData) (*AuthResponse, error)
	Authenticate(email, password string) (*AuthResponse, error)
	GetUserByID(userID string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user models.User) (*models.User, error)
	DeleteUser(userID string) error
	RevokeAuthToken(userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// AuthResponse contains the user's ID and session token.
type AuthResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}
