package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/votann/ask-search-be/service"
	"github.com/votann/ask-search-be/types"
)

const dashboardLimit = 50

type DashboardHandler struct {
	queryService *service.QueryService
}

func NewDashboardHandler(queryService *service.QueryService) *DashboardHandler {
	return &DashboardHandler{
		queryService: queryService,
	}
}

func (h *DashboardHandler) HandleDashboard(c *gin.Context) {
	entries, err := h.queryService.RecentExchanges(c.Request.Context(), dashboardLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Failed to load query logs"})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data:   types.DashboardResponse{Logs: entries},
	})
}
