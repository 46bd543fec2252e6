package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/votann/ask-search-be/middleware"
	"github.com/votann/ask-search-be/service"
	"github.com/votann/ask-search-be/types"
)

type AskHandler struct {
	queryService *service.QueryService
}

func NewAskHandler(queryService *service.QueryService) *AskHandler {
	return &AskHandler{
		queryService: queryService,
	}
}

// HandleAsk answers one prompt for the authenticated user. An answer that
// was obtained is returned even when logging it failed; only completion
// failures and empty prompts produce a non-2xx status.
func (h *AskHandler) HandleAsk(c *gin.Context) {
	claims, ok := middleware.UserClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Not authenticated"})
		return
	}

	var req types.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid request body"})
		return
	}

	answer, err := h.queryService.Ask(c.Request.Context(), claims.ID, req.Prompt)
	if errors.Is(err, types.ErrEmptyPrompt) {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "No prompt"})
		return
	}
	if err != nil && answer == "" {
		c.JSON(http.StatusBadGateway, types.ErrorResponse{Error: err.Error()})
		return
	}
	// err != nil with a non-empty answer means a persistence side effect
	// failed after the completion succeeded; Ask already logged it.

	c.JSON(http.StatusOK, types.AskResponse{Response: answer})
}
