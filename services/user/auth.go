package user

import (
	"context"
	"fmt"
	"time"

	"meddirect/models"
	"meddirect/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// Register creates a new patient account and signs them in.
func (s *DefaultUserService) Register(data models.UserRegistrationData) (*AuthResponse, error) {
	existing, err := s.Repo.GetByEmail(data.Email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check existing email", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usr := &models.User{
		ID:           uuid.New().String(),
		Name:         data.Name,
		Email:        data.Email,
		Phone:        data.Phone,
		Country:      data.Country,
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(usr); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueToken(usr)
}

// Authenticate verifies credentials and issues a session token.
func (s *DefaultUserService) Authenticate(email, password string) (*AuthResponse, error) {
	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if usr == nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	return s.issueToken(usr)
}

// issueToken signs a JWT, stores its hash on the user record, and primes
// the auth cache.
func (s *DefaultUserService) issueToken(usr *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(usr.ID, usr.Email, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	tokenHash := utils.HashToken(token)
	if err := s.Repo.SetTokenHash(usr.ID, tokenHash); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	cacheKey := utils.AuthCachePrefix + usr.ID
	if err := utils.GetAuthCacheClient().Set(ctx, cacheKey, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("Failed to prime auth cache", zap.Error(err))
	}

	return &AuthResponse{ID: usr.ID, Name: usr.Name, Email: usr.Email, Token: token}, nil
}

// RevokeAuthToken invalidates the user's current session.
func (s *DefaultUserService) RevokeAuthToken(userID string) error {
	if err := s.Repo.SetTokenHash(userID, ""); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := utils.GetAuthCacheClient().Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
		utils.GetLogger().Warn("Failed to clear auth cache entry", zap.Error(err))
	}
	return nil
}
