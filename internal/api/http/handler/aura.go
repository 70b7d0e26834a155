package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/auraboard/auraboard-server/internal/api/http/middleware"
	"github.com/auraboard/auraboard-server/internal/logger"
	"github.com/auraboard/auraboard-server/internal/metrics"
	"github.com/auraboard/auraboard-server/internal/model"
)

// AuraService defines ledger operations used by the HTTP layer.
type AuraService interface {
	GetOrCreate(ctx context.Context, uid uuid.UUID) (model.AuraAccount, error)
	Transfer(ctx context.Context, params model.TransferParams) (int64, error)
	ListRanked(ctx context.Context) ([]model.RankedAccount, error)
}

// QuotaService exposes the actor-facing quota view.
type QuotaService interface {
	Remaining(ctx context.Context, actorID uuid.UUID) (int64, error)
}

// Aura handles HTTP endpoints for the aura ledger.
type Aura struct {
	auraService  AuraService
	quotaService QuotaService
	logger       *logger.Logger
}

// NewAura creates a new Aura handler.
func NewAura(auraService AuraService, quotaService QuotaService, logger *logger.Logger) *Aura {
	return &Aura{
		auraService:  auraService,
		quotaService: quotaService,
		logger:       logger,
	}
}

type transferRequest struct {
	SubjectUID string `json:"subject_uid" binding:"required"`
	Change     int64  `json:"change"`
	Reason     string `json:"reason"`
}

type historyEntryResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Change    int64     `json:"change"`
	Reason    string    `json:"reason,omitempty"`
	ActorUID  string    `json:"actor_uid,omitempty"`
}

type accountResponse struct {
	UID         string                 `json:"uid"`
	Balance     int64                  `json:"balance"`
	LastUpdated time.Time              `json:"last_updated"`
	History     []historyEntryResponse `json:"history"`
}

type rankedEntryResponse struct {
	UID         string    `json:"uid"`
	Username    string    `json:"username"`
	Balance     int64     `json:"balance"`
	LastUpdated time.Time `json:"last_updated"`
}

// Transfer applies a signed aura change to another user on behalf of the
// authenticated actor.
func (h *Aura) Transfer(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.ObserveTransfer("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	subjectID, err := uuid.Parse(req.SubjectUID)
	if err != nil {
		metrics.ObserveTransfer("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subject uid"})
		return
	}

	balance, err := h.auraService.Transfer(c.Request.Context(), model.TransferParams{
		SubjectUID: subjectID,
		Delta:      req.Change,
		Reason:     req.Reason,
		ActorUID:   actorID,
	})
	if err != nil {
		if errors.Is(err, model.ErrQuotaExceeded) {
			metrics.ObserveQuotaRejection()
			metrics.ObserveTransfer("rejected")
		} else {
			metrics.ObserveTransfer("error")
		}
		h.logger.Debug("transfer rejected",
			"actor_id", actorID,
			"subject_id", subjectID,
			"error", err.Error())
		handleError(c, err)
		return
	}

	metrics.ObserveTransfer("ok")
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// GetAccount returns the aura account and history for a user, creating the
// account on first read.
func (h *Aura) GetAccount(c *gin.Context) {
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uid"})
		return
	}

	account, err := h.auraService.GetOrCreate(c.Request.Context(), uid)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAccountResponse(account))
}

// Leaderboard returns all active accounts ordered by balance descending.
func (h *Aura) Leaderboard(c *gin.Context) {
	ranked, err := h.auraService.ListRanked(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	entries := make([]rankedEntryResponse, 0, len(ranked))
	for _, entry := range ranked {
		entries = append(entries, rankedEntryResponse{
			UID:         entry.UID.String(),
			Username:    entry.Username,
			Balance:     entry.Balance,
			LastUpdated: entry.LastUpdated,
		})
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// Remaining returns how much aura the authenticated actor may still
// distribute today.
func (h *Aura) Remaining(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	remaining, err := h.quotaService.Remaining(c.Request.Context(), actorID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"remaining": remaining})
}

func toAccountResponse(account model.AuraAccount) accountResponse {
	resp := accountResponse{
		UID:         account.UID.String(),
		Balance:     account.Balance,
		LastUpdated: account.LastUpdated,
		History:     make([]historyEntryResponse, 0, len(account.History)),
	}
	for _, entry := range account.History {
		item := historyEntryResponse{
			Timestamp: entry.Timestamp,
			Change:    entry.Change,
			Reason:    entry.Reason,
		}
		if entry.ActorUID != nil {
			item.ActorUID = entry.ActorUID.String()
		}
		resp.History = append(resp.History, item)
	}
	return resp
}
