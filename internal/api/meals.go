package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hferris/caltrack/backend/internal/models"
	"github.com/hferris/caltrack/backend/internal/service"
)

// PhotoURLProvider resolves a stored photo key to a fetchable URL.
type PhotoURLProvider interface {
	PhotoURL(ctx context.Context, key string) (string, error)
}

// MealsHandler handles the meal log
type MealsHandler struct {
	mealLog   *service.MealLogService
	photoURLs PhotoURLProvider
}

// NewMealsHandler creates a new MealsHandler instance. The photo URL
// provider may be nil when no object storage is configured.
func NewMealsHandler(mealLog *service.MealLogService, photoURLs PhotoURLProvider) *MealsHandler {
	return &MealsHandler{mealLog: mealLog, photoURLs: photoURLs}
}

// RegisterRoutes registers the meal log routes
func (h *MealsHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	{
		meals.POST("", h.Log)
		meals.GET("", h.List)
		meals.DELETE("/:id", h.Remove)
		meals.GET("/:id/photo", h.Photo)
	}
}

// Log appends an accepted meal to the log.
func (h *MealsHandler) Log(c *gin.Context) {
	var req LogMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TotalCalories < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "totalCalories must not be negative"})
		return
	}

	meal := &models.Meal{
		TotalCalories: req.TotalCalories,
		Items:         models.MealItemList(req.Items),
	}

	logged, err := h.mealLog.AddWithPhoto(c.Request.Context(), meal, req.PhotoKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log meal"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"meal": logged})
}

// List returns the full meal log in insertion order.
func (h *MealsHandler) List(c *gin.Context) {
	meals, err := h.mealLog.All(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list meals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// Remove deletes a logged meal by id. Removing an id that does not
// exist is not an error.
func (h *MealsHandler) Remove(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	if err := h.mealLog.Remove(c.Request.Context(), uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove meal"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Photo returns a short-lived URL for the photo a logged meal was
// analyzed from, when one was stored.
func (h *MealsHandler) Photo(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	meal, err := h.mealLog.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get meal"})
		return
	}

	if meal.PhotoKey == "" || h.photoURLs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal has no stored photo"})
		return
	}

	url, err := h.photoURLs.PhotoURL(c.Request.Context(), meal.PhotoKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate photo URL"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
