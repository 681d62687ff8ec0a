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

type CommentHandler struct {
	commentService services.CommentService
}

func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// POST /comments
// body: { "post_id": "...", "parent_comment_id": "...", "body": "..." }
func (ch *CommentHandler) Create(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	var req services.CreateCommentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	comment, err := ch.commentService.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"comment": comment})
}

// GET /posts/:id/comments?limit=...
func (ch *CommentHandler) ListByPost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument",
			fmt.Errorf("invalid post id: %w", err))
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	comments, err := ch.commentService.ListByPost(c.Request.Context(), postID, limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"comments": comments})
}

// DELETE /comments/:id
func (ch *CommentHandler) Delete(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument",
			fmt.Errorf("invalid comment id: %w", err))
		return
	}
	if err := ch.commentService.Delete(c.Request.Context(), actor, id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
