package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hferris/caltrack/backend/internal/service"
)

// DashboardHandler serves the derived metrics the dashboard renders.
type DashboardHandler struct {
	profileService *service.ProfileService
	aggregates     *service.AggregateService
}

// NewDashboardHandler creates a new DashboardHandler instance
func NewDashboardHandler(profileService *service.ProfileService, aggregates *service.AggregateService) *DashboardHandler {
	return &DashboardHandler{
		profileService: profileService,
		aggregates:     aggregates,
	}
}

// RegisterRoutes registers the dashboard routes
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.Get)
}

// Get returns the daily target, today's consumption and remaining
// calories, and the trailing 7-day trend in one payload.
func (h *DashboardHandler) Get(c *gin.Context) {
	profile, err := h.profileService.Current(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoProfile) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no profile set"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get profile"})
		return
	}

	consumed, err := h.aggregates.ConsumedToday(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute consumption"})
		return
	}

	trend, err := h.aggregates.WeeklyTrend(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute weekly trend"})
		return
	}

	target := service.DailyTarget(profile)
	remaining := target - consumed
	if remaining < 0 {
		remaining = 0
	}

	c.JSON(http.StatusOK, DashboardResponse{
		DailyTarget:   target,
		ConsumedToday: consumed,
		Remaining:     remaining,
		WeeklyTrend:   trend,
	})
}
