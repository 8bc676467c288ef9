package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "shop-service/common/errors"
	"shop-service/models"
)

// IAuthService abstracts the auth service for the controller
type IAuthService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, *models.User, error)
}

// AuthController handles registration, login and logout
type AuthController struct {
	service IAuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(service IAuthService) *AuthController {
	return &AuthController{service: service}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user account
func (ac *AuthController) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Wrap(apperrors.ErrInvalidInput, err))
		return
	}

	user, err := ac.service.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
	})
}

// Login verifies credentials and issues a token, both in the body and as an
// HttpOnly cookie so browser WebSocket connections can authenticate.
func (ac *AuthController) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Wrap(apperrors.ErrInvalidInput, err))
		return
	}

	token, user, err := ac.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.SetCookie("access_token", token, 24*60*60, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"message":  "Logged in successfully",
		"token":    token,
		"username": user.Username,
	})
}

// Logout clears the access token cookie
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
