package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/agoralabs/agora-backend/internal/http/middleware"
	"github.com/agoralabs/agora-backend/internal/http/response"
	"github.com/agoralabs/agora-backend/internal/services"
)

type CommunityHandler struct {
	communityService services.CommunityService
}

func NewCommunityHandler(communityService services.CommunityService) *CommunityHandler {
	return &CommunityHandler{communityService: communityService}
}

// POST /communities
// body: { "slug": "...", "name": "...", "description": "..." }
func (ch *CommunityHandler) Create(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	var req services.CreateCommunityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	community, err := ch.communityService.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"community": community})
}

// GET /communities
func (ch *CommunityHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	communities, err := ch.communityService.List(c.Request.Context(), limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"communities": communities})
}

// GET /communities/:slug
func (ch *CommunityHandler) Get(c *gin.Context) {
	community, err := ch.communityService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"community": community})
}
