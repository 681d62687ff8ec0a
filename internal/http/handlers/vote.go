package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agoralabs/agora-backend/internal/domain"
	"github.com/agoralabs/agora-backend/internal/http/middleware"
	"github.com/agoralabs/agora-backend/internal/http/response"
	"github.com/agoralabs/agora-backend/internal/services"
)

type VoteHandler struct {
	voteService services.VoteService
}

func NewVoteHandler(voteService services.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

func parseTarget(rawType, rawID string) (domain.TargetRef, error) {
	targetType, err := domain.ParseTargetType(rawType)
	if err != nil {
		return domain.TargetRef{}, err
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return domain.TargetRef{}, fmt.Errorf("invalid target id: %w", err)
	}
	return domain.TargetRef{Type: targetType, ID: id}, nil
}

// POST /votes
// body: { "target_type": "post"|"comment", "target_id": "...", "direction": "up"|"down" }
//
// Casting the held direction again retracts the vote; the response reports
// the transition either way. A 409 means the request lost a lock race and
// can be retried as-is.
func (vh *VoteHandler) Cast(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	var req struct {
		TargetType string `json:"target_type"`
		TargetID   string `json:"target_id"`
		Direction  string `json:"direction"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	target, err := parseTarget(req.TargetType, req.TargetID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	direction, err := domain.ParseVoteType(req.Direction)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	result, err := vh.voteService.Cast(c.Request.Context(), actor, target, direction)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"result": result})
}

// GET /votes?target_type=...&target_id=...
func (vh *VoteHandler) Get(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	target, err := parseTarget(c.Query("target_type"), c.Query("target_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	vote, err := vh.voteService.Get(c.Request.Context(), actor, target)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"vote": vote})
}
