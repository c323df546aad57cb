package handlers

import (
	"net/http"
	"rugbyrank/api/dto"
	"rugbyrank/api/filters"
	rankingsservice "rugbyrank/api/services/rankings"
	"rugbyrank/pkg/gender"

	"github.com/gin-gonic/gin"
)

// Rankings handler.
type RankingsHandler struct {
	rankingsService *rankingsservice.RankingsService
}

type RankingsHandlerDependencies struct {
	RankingsService *rankingsservice.RankingsService
}

// Create a new instance of the rankings handler.
func NewRankingsHandler(deps *RankingsHandlerDependencies) *RankingsHandler {
	return &RankingsHandler{
		rankingsService: deps.RankingsService,
	}
}

// Bind and parse the gender of the path.
func bindGender(c *gin.Context) (gender.Gender, bool) {
	var pp filters.GenderURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}

	g, err := pp.Parse()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}

	return g, true
}

// Handler for getting the live rankings.
func (h *RankingsHandler) GetRankings(c *gin.Context) {
	g, ok := bindGender(c)
	if !ok {
		return
	}

	result, err := h.rankingsService.GetRankings(c.Request.Context(), g)
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Handler for getting the completed and upcoming fixtures.
func (h *RankingsHandler) GetFixtures(c *gin.Context) {
	g, ok := bindGender(c)
	if !ok {
		return
	}

	result, err := h.rankingsService.GetFixtures(c.Request.Context(), g)
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Handler for applying fixtures over a rankings set.
func (h *RankingsHandler) PostCalculate(c *gin.Context) {
	g, ok := bindGender(c)
	if !ok {
		return
	}

	var body dto.CalculateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.rankingsService.Calculate(c.Request.Context(), g, &body)
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Handler for the possible outcomes of a fixture.
func (h *RankingsHandler) GetOutcomes(c *gin.Context) {
	var qp filters.OutcomesQueryParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.rankingsService.Outcomes(filters.NewOutcomesFilter(&qp)))
}

// Handler for saving the current rankings into the history.
func (h *RankingsHandler) PostSnapshot(c *gin.Context) {
	g, ok := bindGender(c)
	if !ok {
		return
	}

	result, err := h.rankingsService.SaveSnapshot(c.Request.Context(), g)
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
