package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agoralabs/agora-backend/internal/http/middleware"
	"github.com/agoralabs/agora-backend/internal/http/response"
	"github.com/agoralabs/agora-backend/internal/services"
)

type PostHandler struct {
	postService services.PostService
}

func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// POST /posts
// body: { "community_id": "...", "title": "...", "body": "...", "url": "..." }
func (ph *PostHandler) Create(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	var req services.CreatePostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	post, err := ph.postService.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"post": post})
}

// GET /posts/:id
func (ph *PostHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument",
			fmt.Errorf("invalid post id: %w", err))
		return
	}
	post, err := ph.postService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"post": post})
}

// GET /posts?community_id=...&limit=...
func (ph *PostHandler) ListByCommunity(c *gin.Context) {
	communityID, err := uuid.Parse(c.Query("community_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument",
			fmt.Errorf("invalid community_id: %w", err))
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	posts, err := ph.postService.ListByCommunity(c.Request.Context(), communityID, limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"posts": posts})
}

// DELETE /posts/:id
func (ph *PostHandler) Delete(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument",
			fmt.Errorf("invalid post id: %w", err))
		return
	}
	if err := ph.postService.Delete(c.Request.Context(), actor, id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
