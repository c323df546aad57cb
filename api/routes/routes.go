package routes

import (
	"rugbyrank/api/handlers"

	"github.com/gin-gonic/gin"
)

type Router struct {
	Engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		api:    engine.Group("/api/v1"),
		Engine: engine,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.RankingsHandler:
			r.registerRankingsHandler(handler)
		case *handlers.HistoryHandler:
			r.registerHistoryHandler(handler)
		}
	}
}

// Register the rankings handler.
func (r *Router) registerRankingsHandler(handler *handlers.RankingsHandler) {
	rankings := r.api.Group("/rankings/:gender")
	{
		rankings.GET("", handler.GetRankings)
		rankings.GET("/fixtures", handler.GetFixtures)
		rankings.POST("/calculate", handler.PostCalculate)
		rankings.POST("/snapshot", handler.PostSnapshot)
	}

	r.api.GET("/outcomes", handler.GetOutcomes)
}

// Register the history handler.
func (r *Router) registerHistoryHandler(handler *handlers.HistoryHandler) {
	history := r.api.Group("/history")
	{
		history.GET("/:gender", handler.GetHistory)
	}
}

// Start the router.
func (r *Router) Run(addr string) error {
	return r.Engine.Run(addr)
}
