package handlers

import (
	"net/http"
	"rugbyrank/api/filters"
	historyservice "rugbyrank/api/services/history"

	"github.com/gin-gonic/gin"
)

// History handler.
type HistoryHandler struct {
	historyService *historyservice.HistoryService
}

type HistoryHandlerDependencies struct {
	HistoryService *historyservice.HistoryService
}

// Create a new instance of the history handler.
func NewHistoryHandler(deps *HistoryHandlerDependencies) *HistoryHandler {
	return &HistoryHandler{
		historyService: deps.HistoryService,
	}
}

// Handler for the historical rankings queries.
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	g, ok := bindGender(c)
	if !ok {
		return
	}

	var qp filters.HistoryQueryParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter, err := filters.NewHistoryFilter(g, &qp)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	body, err := h.historyService.Query(c.Request.Context(), filter)
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": "failed to fetch historical rankings"})
		return
	}

	c.Header("Cache-Control", "public, s-maxage=300, stale-while-revalidate=600")
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
