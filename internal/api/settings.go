package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hferris/caltrack/backend/internal/service"
)

// SettingsHandler handles persisted preferences
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler instance
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// RegisterRoutes registers the settings routes
func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	settings := router.Group("/settings")
	{
		settings.GET("/theme", h.GetTheme)
		settings.PUT("/theme", h.SetTheme)
	}
}

// GetTheme returns the persisted theme. "system" means none is stored
// and the client should derive it from the OS preference.
func (h *SettingsHandler) GetTheme(c *gin.Context) {
	theme, err := h.settings.GetTheme(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoSetting) {
			c.JSON(http.StatusOK, gin.H{"theme": "system"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get theme"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

// SetTheme persists the theme.
func (h *SettingsHandler) SetTheme(c *gin.Context) {
	var req ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.settings.SetTheme(c.Request.Context(), req.Theme); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save theme"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": req.Theme})
}
