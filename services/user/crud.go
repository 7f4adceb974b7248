package user

import (
	"fmt"

	"meddirect/models"
)

// GetUserByID retrieves a user by ID.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, fmt.Errorf("user with id %s not found", userID)
	}
	return usr, nil
}

// GetUserByEmail retrieves a user by email.
func (s *DefaultUserService) GetUserByEmail(email string) (*models.User, error) {
	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, fmt.Errorf("user with email %s not found", email)
	}
	return usr, nil
}

// UpdateUser modifies profile fields. Credentials and session fields are
// preserved from the stored record.
func (s *DefaultUserService) UpdateUser(user models.User) (*models.User, error) {
	current, err := s.GetUserByID(user.ID)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = current.PasswordHash
	user.TokenHash = current.TokenHash
	user.CreatedAt = current.CreatedAt
	if err := s.Repo.Update(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes the account.
func (s *DefaultUserService) DeleteUser(userID string) error {
	return s.Repo.Delete(userID)
}
