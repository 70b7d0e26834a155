package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/auraboard/auraboard-server/internal/logger"
	"github.com/auraboard/auraboard-server/internal/model"
	"github.com/auraboard/auraboard-server/internal/service"
)

// AuthService defines authentication operations used by the HTTP layer.
type AuthService interface {
	Register(ctx context.Context, params service.RegisterParams) (model.User, string, string, error)
	Login(ctx context.Context, email, password string) (model.User, string, string, error)
}

// SessionService defines refresh token operations used by the HTTP layer.
type SessionService interface {
	Refresh(ctx context.Context, presented string) (string, string, error)
	RevokeByToken(ctx context.Context, presented string) error
}

// Auth handles HTTP endpoints for registration and sessions.
type Auth struct {
	authService    AuthService
	sessionService SessionService
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, sessionService SessionService, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		sessionService: sessionService,
		logger:         logger,
	}
}

type registerRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type sessionResponse struct {
	User         profileResponse `json:"user"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
}

// Register creates a new user with an initialized aura account and returns
// a token pair.
func (h *Auth) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, access, refresh, err := h.authService.Register(c.Request.Context(), service.RegisterParams{
		Email:       req.Email,
		Password:    req.Password,
		Username:    req.Username,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sessionResponse{
		User:         toProfileResponse(user),
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

// Login authenticates a user by email and password and returns a token pair.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, access, refresh, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse{
		User:         toProfileResponse(user),
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

// Refresh rotates a refresh token and returns a new token pair.
func (h *Auth) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	access, refresh, err := h.sessionService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// Logout revokes the presented refresh token.
func (h *Auth) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.sessionService.RevokeByToken(c.Request.Context(), req.RefreshToken); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
