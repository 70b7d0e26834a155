package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/auraboard/auraboard-server/internal/testutil"
	"github.com/auraboard/auraboard-server/internal/model"
)

type userServiceMock struct {
	mock.Mock
}

func (m *userServiceMock) GetProfile(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *userServiceMock) SetUsername(ctx context.Context, id uuid.UUID, username string) error {
	args := m.Called(ctx, id, username)
	return args.Error(0)
}

func (m *userServiceMock) Disable(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *userServiceMock) Enable(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *userServiceMock) SetDailyLimit(ctx context.Context, id uuid.UUID, limit *int64) error {
	args := m.Called(ctx, id, limit)
	return args.Error(0)
}

func TestUserHandler_GetProfile(t *testing.T) {
	userID := uuid.New()
	limit := int64(5000)

	userService := &userServiceMock{}
	userService.On("GetProfile", mock.Anything, userID).Return(model.User{
		ID:         userID,
		Email:      "ada@example.com",
		Username:   "ada",
		DailyLimit: &limit,
	}, nil)

	h := NewUser(userService, testutil.MakeNoopLogger())
	engine := newAuthedEngine(t, userID, func(g *gin.RouterGroup) {
		g.GET("/profile", h.GetProfile)
	})

	rec := doJSON(t, engine, http.MethodGet, "/profile", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp profileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, userID.String(), resp.ID)
	assert.Equal(t, "ada", resp.Username)
	require.NotNil(t, resp.DailyLimit)
	assert.Equal(t, int64(5000), *resp.DailyLimit)
}

func TestUserHandler_GetUser_NotFound(t *testing.T) {
	actor := uuid.New()
	other := uuid.New()

	userService := &userServiceMock{}
	userService.On("GetProfile", mock.Anything, other).Return(model.User{}, model.ErrNotFound)

	h := NewUser(userService, testutil.MakeNoopLogger())
	engine := newAuthedEngine(t, actor, func(g *gin.RouterGroup) {
		g.GET("/users/:uid", h.GetUser)
	})

	rec := doJSON(t, engine, http.MethodGet, "/users/"+other.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserHandler_SetUsername(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "success", serviceErr: nil, wantStatus: http.StatusNoContent},
		{name: "taken", serviceErr: model.ErrUsernameTaken, wantStatus: http.StatusConflict},
		{name: "invalid", serviceErr: model.ErrInvalidUsername, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userService := &userServiceMock{}
			userService.On("SetUsername", mock.Anything, userID, "ada").Return(tt.serviceErr)

			h := NewUser(userService, testutil.MakeNoopLogger())
			engine := newAuthedEngine(t, userID, func(g *gin.RouterGroup) {
				g.PUT("/profile/username", h.SetUsername)
			})

			rec := doJSON(t, engine, http.MethodPut, "/profile/username", gin.H{"username": "ada"})
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestUserHandler_Disable(t *testing.T) {
	userID := uuid.New()

	userService := &userServiceMock{}
	userService.On("Disable", mock.Anything, userID).Return(nil)

	h := NewUser(userService, testutil.MakeNoopLogger())
	engine := newAuthedEngine(t, userID, func(g *gin.RouterGroup) {
		g.POST("/profile/disable", h.Disable)
	})

	rec := doJSON(t, engine, http.MethodPost, "/profile/disable", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	userService.AssertExpectations(t)
}

func TestUserHandler_Enable(t *testing.T) {
	actor := uuid.New()
	target := uuid.New()

	userService := &userServiceMock{}
	userService.On("Enable", mock.Anything, target).Return(nil)

	h := NewUser(userService, testutil.MakeNoopLogger())
	engine := newAuthedEngine(t, actor, func(g *gin.RouterGroup) {
		g.POST("/users/:uid/enable", h.Enable)
	})

	rec := doJSON(t, engine, http.MethodPost, "/users/"+target.String()+"/enable", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	userService.AssertExpectations(t)
}

func TestUserHandler_Enable_InvalidUID(t *testing.T) {
	userService := &userServiceMock{}

	h := NewUser(userService, testutil.MakeNoopLogger())
	engine := newAuthedEngine(t, uuid.New(), func(g *gin.RouterGroup) {
		g.POST("/users/:uid/enable", h.Enable)
	})

	rec := doJSON(t, engine, http.MethodPost, "/users/not-a-uuid/enable", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	userService.AssertNotCalled(t, "Enable")
}

func TestUserHandler_SetDailyLimit(t *testing.T) {
	actor := uuid.New()
	target := uuid.New()
	limit := int64(5000)

	userService := &userServiceMock{}
	userService.On("SetDailyLimit", mock.Anything, target, mock.MatchedBy(func(l *int64) bool {
		return l != nil && *l == limit
	})).Return(nil)

	h := NewUser(userService, testutil.MakeNoopLogger())
	engine := newAuthedEngine(t, actor, func(g *gin.RouterGroup) {
		g.PUT("/users/:uid/daily-limit", h.SetDailyLimit)
	})

	rec := doJSON(t, engine, http.MethodPut, "/users/"+target.String()+"/daily-limit", gin.H{"daily_limit": limit})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	userService.AssertExpectations(t)
}

func TestUserHandler_SetDailyLimit_Clear(t *testing.T) {
	actor := uuid.New()
	target := uuid.New()

	userService := &userServiceMock{}
	userService.On("SetDailyLimit", mock.Anything, target, (*int64)(nil)).Return(nil)

	h := NewUser(userService, testutil.MakeNoopLogger())
	engine := newAuthedEngine(t, actor, func(g *gin.RouterGroup) {
		g.PUT("/users/:uid/daily-limit", h.SetDailyLimit)
	})

	rec := doJSON(t, engine, http.MethodPut, "/users/"+target.String()+"/daily-limit", gin.H{"daily_limit": nil})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	userService.AssertExpectations(t)
}
