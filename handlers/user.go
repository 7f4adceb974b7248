package handlers

import (
	"net/http"

	"meddirect/models"
	"meddirect/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes account endpoints for patients.
type UserHandler struct {
	Service user.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{Service: svc}
}

// RegisterHandler creates a new account and returns a session token.
func (uh *UserHandler) RegisterHandler(c *gin.Context) {
	var data models.UserRegistrationData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	resp, err := uh.Service.Register(data)
	if err != nil {
		zap.L().Error("Failed to register user", zap.Error(err))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler authenticates a user and returns a session token.
func (uh *UserHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	resp, err := uh.Service.Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ProfileHandler returns the authenticated user's profile.
func (uh *UserHandler) ProfileHandler(c *gin.Context) {
	userID := c.GetString("userID")

	u, err := uh.Service.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateProfileHandler updates the authenticated user's profile.
func (uh *UserHandler) UpdateProfileHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var u models.User
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	u.ID = userID

	updated, err := uh.Service.UpdateUser(u)
	if err != nil {
		zap.L().Error("Failed to update user", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// LogoutHandler revokes the authenticated user's session token.
func (uh *UserHandler) LogoutHandler(c *gin.Context) {
	userID := c.GetString("userID")

	if err := uh.Service.RevokeAuthToken(userID); err != nil {
		zap.L().Error("Failed to revoke token", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// DeleteAccountHandler removes the authenticated user's account.
func (uh *UserHandler) DeleteAccountHandler(c *gin.Context) {
	userID := c.GetString("userID")

	if err := uh.Service.DeleteUser(userID); err != nil {
		zap.L().Error("Failed to delete user", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
