package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/agoralabs/agora-backend/internal/http/response"
	"github.com/agoralabs/agora-backend/internal/ranking"
	"github.com/agoralabs/agora-backend/internal/services"
)

type FeedHandler struct {
	feedService services.FeedService
}

func NewFeedHandler(feedService services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

func parseFeedQuery(c *gin.Context) (ranking.Strategy, int, error) {
	sort := c.DefaultQuery("sort", string(ranking.StrategyHot))
	strategy, err := ranking.ParseStrategy(sort)
	if err != nil {
		return "", 0, err
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	return strategy, limit, nil
}

// GET /feed?sort=hot&limit=25
func (fh *FeedHandler) Home(c *gin.Context) {
	strategy, limit, err := parseFeedQuery(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	items, err := fh.feedService.Home(c.Request.Context(), strategy, limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": items, "sort": strategy})
}

// GET /communities/:slug/feed?sort=hot&limit=25
func (fh *FeedHandler) Community(c *gin.Context) {
	strategy, limit, err := parseFeedQuery(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	items, err := fh.feedService.Community(c.Request.Context(), c.Param("slug"), strategy, limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": items, "sort": strategy})
}
