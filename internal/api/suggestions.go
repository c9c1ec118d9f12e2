package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hferris/caltrack/backend/internal/models"
	"github.com/hferris/caltrack/backend/internal/service"
)

// SuggestionProvider serves the current one-day meal plan.
type SuggestionProvider interface {
	Get(ctx context.Context) ([]models.MealSuggestion, error)
	Refresh(ctx context.Context) ([]models.MealSuggestion, error)
}

// SuggestionsHandler handles meal-plan suggestion requests
type SuggestionsHandler struct {
	suggestions SuggestionProvider
}

// NewSuggestionsHandler creates a new SuggestionsHandler instance
func NewSuggestionsHandler(suggestions SuggestionProvider) *SuggestionsHandler {
	return &SuggestionsHandler{suggestions: suggestions}
}

// RegisterRoutes registers the suggestion routes
func (h *SuggestionsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/suggestions", h.Get)
	router.POST("/suggestions/refresh", h.Refresh)
}

// Get returns the suggested one-day plan for the live profile,
// generating it if the cache is cold.
func (h *SuggestionsHandler) Get(c *gin.Context) {
	suggestions, err := h.suggestions.Get(c.Request.Context())
	h.respond(c, suggestions, err)
}

// Refresh discards the cached plan and generates a new one.
func (h *SuggestionsHandler) Refresh(c *gin.Context) {
	suggestions, err := h.suggestions.Refresh(c.Request.Context())
	h.respond(c, suggestions, err)
}

func (h *SuggestionsHandler) respond(c *gin.Context, suggestions []models.MealSuggestion, err error) {
	switch {
	case err == nil:
		if suggestions == nil {
			suggestions = []models.MealSuggestion{}
		}
		c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
	case errors.Is(err, service.ErrNoProfile):
		c.JSON(http.StatusNotFound, gin.H{"error": "no profile set"})
	case errors.Is(err, service.ErrProfileChanged):
		c.JSON(http.StatusConflict, gin.H{"error": "profile changed, refresh suggestions"})
	default:
		// A gateway failure surfaces as an empty list; the client may
		// retry via explicit refresh.
		log.Printf("failed to get meal suggestions: %v", err)
		c.JSON(http.StatusOK, gin.H{"suggestions": []models.MealSuggestion{}})
	}
}
