package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/votann/ask-search-be/middleware"
	"github.com/votann/ask-search-be/service"
	"github.com/votann/ask-search-be/types"
)

type WebSocketHandler struct {
	wsService *service.WebSocketService
}

func NewWebSocketHandler(wsService *service.WebSocketService) *WebSocketHandler {
	return &WebSocketHandler{
		wsService: wsService,
	}
}

func (h *WebSocketHandler) HandleAsk(c *gin.Context) {
	claims, ok := middleware.UserClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "Not authenticated"})
		return
	}
	h.wsService.HandleAsk(c.Writer, c.Request, claims.ID)
}
