package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hferris/caltrack/backend/internal/api"
	"github.com/hferris/caltrack/backend/internal/database"
	"github.com/hferris/caltrack/backend/internal/middleware"
)

// Handlers collects the API handlers wired into the router.
type Handlers struct {
	Profile     *api.ProfileHandler
	Meals       *api.MealsHandler
	Dashboard   *api.DashboardHandler
	Analysis    *api.AnalysisHandler
	Suggestions *api.SuggestionsHandler
	Settings    *api.SettingsHandler
}

// Limiters are the LLM-gateway rate limiters. Either may be nil when
// Redis is not configured; the routes are then unthrottled.
type Limiters struct {
	Analysis   *middleware.RateLimiter
	Suggestion *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(db *gorm.DB, h Handlers, limiters Limiters, corsOrigins []string) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS(corsOrigins))
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")

	h.Profile.RegisterRoutes(v1)
	h.Meals.RegisterRoutes(v1)
	h.Dashboard.RegisterRoutes(v1)
	h.Settings.RegisterRoutes(v1)

	// The LLM-backed routes carry their own rate limits
	analyzed := v1.Group("")
	if limiters.Analysis != nil {
		analyzed.Use(limiters.Analysis.RateLimitMiddleware())
	}
	h.Analysis.RegisterRoutes(analyzed)

	suggested := v1.Group("")
	if limiters.Suggestion != nil {
		suggested.Use(limiters.Suggestion.RateLimitMiddleware())
	}
	h.Suggestions.RegisterRoutes(suggested)

	return router
}
