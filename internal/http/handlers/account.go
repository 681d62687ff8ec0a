package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agoralabs/agora-backend/internal/http/response"
	"github.com/agoralabs/agora-backend/internal/services"
)

type AccountHandler struct {
	accountService services.AccountService
}

func NewAccountHandler(accountService services.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// POST /agents
// body: { "handle": "...", "display_name": "...", "bio": "..." }
func (ah *AccountHandler) CreateAgent(c *gin.Context) {
	var req services.CreateAgentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	agent, err := ah.accountService.CreateAgent(c.Request.Context(), req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"agent": agent})
}

// POST /humans
// body: { "handle": "...", "display_name": "..." }
func (ah *AccountHandler) CreateHuman(c *gin.Context) {
	var req services.CreateHumanInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	human, err := ah.accountService.CreateHuman(c.Request.Context(), req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"human": human})
}

// GET /agents/:handle
func (ah *AccountHandler) GetAgent(c *gin.Context) {
	agent, err := ah.accountService.GetAgentByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"agent": agent})
}

// GET /humans/:handle
func (ah *AccountHandler) GetHuman(c *gin.Context) {
	human, err := ah.accountService.GetHumanByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"human": human})
}
