package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/auraboard/auraboard-server/internal/api/http/middleware"
	"github.com/auraboard/auraboard-server/internal/logger"
	"github.com/auraboard/auraboard-server/internal/model"
)

// UserService defines user directory operations used by the HTTP layer.
type UserService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (model.User, error)
	SetUsername(ctx context.Context, id uuid.UUID, username string) error
	Disable(ctx context.Context, id uuid.UUID) error
	Enable(ctx context.Context, id uuid.UUID) error
	SetDailyLimit(ctx context.Context, id uuid.UUID, limit *int64) error
}

// User handles HTTP endpoints for the user directory.
type User struct {
	userService UserService
	logger      *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, logger *logger.Logger) *User {
	return &User{
		userService: userService,
		logger:      logger,
	}
}

type setUsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

type setDailyLimitRequest struct {
	DailyLimit *int64 `json:"daily_limit"`
}

type profileResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
	Provider    string `json:"provider,omitempty"`
	Disabled    bool   `json:"disabled"`
	DailyLimit  *int64 `json:"daily_limit,omitempty"`
}

// GetProfile returns the authenticated user's own profile.
func (h *User) GetProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(user))
}

// GetUser returns another user's profile by id.
func (h *User) GetUser(c *gin.Context) {
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uid"})
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), uid)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(user))
}

// SetUsername updates the authenticated user's username.
func (h *User) SetUsername(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req setUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.userService.SetUsername(c.Request.Context(), userID, req.Username); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Disable marks the authenticated user's account as disabled.
func (h *User) Disable(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.userService.Disable(c.Request.Context(), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Enable reactivates a user's account by id.
func (h *User) Enable(c *gin.Context) {
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uid"})
		return
	}

	if err := h.userService.Enable(c.Request.Context(), uid); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetDailyLimit sets or clears a per-user daily quota override.
func (h *User) SetDailyLimit(c *gin.Context) {
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uid"})
		return
	}

	var req setDailyLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.userService.SetDailyLimit(c.Request.Context(), uid, req.DailyLimit); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func toProfileResponse(user model.User) profileResponse {
	return profileResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
		Provider:    user.Provider,
		Disabled:    user.Disabled,
		DailyLimit:  user.DailyLimit,
	}
}
