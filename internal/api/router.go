package api

import (
	"github.com/Conceptual-Machines/suno-prompt-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/suno-prompt-api/internal/api/middleware"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/config"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/metrics"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/prompt"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg *config.Config, engine *prompt.Engine, cw *metrics.Client, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(cw))

	// CORS middleware
	router.Use(apimiddleware.CORS())

	// Health check
	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, engine)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	historyService := services.NewHistoryService(db, cfg.HistoryLimit)

	v1 := router.Group("/api/v1")
	if cfg.IsGatewayMode() {
		v1.Use(apimiddleware.GatewayAuth())
	} else {
		v1.Use(apimiddleware.NoAuth())
	}
	{
		promptHandler := handlers.NewPromptHandler(engine, historyService, cw)
		v1.POST("/prompts/extract", promptHandler.Extract)
		v1.POST("/prompts/optimize", promptHandler.Optimize)
		v1.POST("/prompts/process", promptHandler.Process)
		v1.POST("/prompts/validate", promptHandler.Validate)
		v1.POST("/prompts/analyze", promptHandler.Analyze)
		v1.POST("/prompts/improvements", promptHandler.Improvements)
		v1.POST("/prompts/export", promptHandler.Export)

		suggestionHandler := handlers.NewSuggestionHandler(engine)
		v1.POST("/suggestions", suggestionHandler.Suggest)
		v1.POST("/suggestions/ideas", suggestionHandler.Ideas)

		templateHandler := handlers.NewTemplateHandler(engine)
		v1.GET("/templates", templateHandler.ListTemplates)
		v1.GET("/templates/:id", templateHandler.GetTemplate)
		v1.GET("/taxonomy/:category", templateHandler.GetCategory)

		historyHandler := handlers.NewHistoryHandler(historyService)
		v1.GET("/history", historyHandler.GetHistory)
		v1.POST("/history", historyHandler.SaveHistory)
		v1.DELETE("/history", historyHandler.ClearHistory)
		v1.GET("/history/insights", historyHandler.GetInsights)
		v1.GET("/history/:id", historyHandler.GetHistoryItem)

		v1.GET("/favorites", historyHandler.GetFavorites)
		v1.POST("/favorites", historyHandler.AddFavorite)
		v1.GET("/favorites/check", historyHandler.CheckFavorite)
		v1.PUT("/favorites/:id", historyHandler.UpdateFavorite)
		v1.DELETE("/favorites/:id", historyHandler.RemoveFavorite)
	}

	return router
}
