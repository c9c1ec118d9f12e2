package api

import (
	"context"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hferris/caltrack/backend/internal/models"
)

// User-facing gateway failure messages. Upstream details are logged,
// never returned.
const (
	errAnalyzeText  = "Failed to analyze meal description. Please try again."
	errAnalyzeImage = "Failed to analyze meal image. Please try again."
)

const maxImageBytes = 10 << 20

// MealAnalyzer converts a description or photo into a structured meal.
type MealAnalyzer interface {
	AnalyzeText(ctx context.Context, description string) (*models.Meal, error)
	AnalyzeImage(ctx context.Context, imageBytes []byte, mimeType string) (*models.Meal, error)
}

// PhotoStore keeps uploaded meal photos.
type PhotoStore interface {
	StoreMealPhoto(ctx context.Context, imageData []byte, mimeType string) (string, error)
}

// AnalysisHandler handles meal analysis requests
type AnalysisHandler struct {
	analyzer MealAnalyzer
	photos   PhotoStore
}

// NewAnalysisHandler creates a new AnalysisHandler instance. The photo
// store may be nil when no object storage is configured; analysis then
// proceeds without keeping the photo.
func NewAnalysisHandler(analyzer MealAnalyzer, photos PhotoStore) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer, photos: photos}
}

// RegisterRoutes registers the analysis routes
func (h *AnalysisHandler) RegisterRoutes(router *gin.RouterGroup) {
	analyze := router.Group("/analyze")
	{
		analyze.POST("/text", h.AnalyzeText)
		analyze.POST("/image", h.AnalyzeImage)
	}
}

// AnalyzeText analyzes a free-text meal description. The result is not
// logged; the user accepts it via POST /meals.
func (h *AnalysisHandler) AnalyzeText(c *gin.Context) {
	var req AnalyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := h.analyzer.AnalyzeText(c.Request.Context(), req.Description)
	if err != nil {
		log.Printf("meal text analysis failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": errAnalyzeText})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meal": meal})
}

// AnalyzeImage analyzes an uploaded meal photo. The photo is stored in
// object storage when available and its key returned alongside the
// meal, so the log entry can reference it.
func (h *AnalysisHandler) AnalyzeImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	if len(imageBytes) > maxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file must be an image"})
		return
	}

	meal, err := h.analyzer.AnalyzeImage(c.Request.Context(), imageBytes, mimeType)
	if err != nil {
		log.Printf("meal image analysis failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": errAnalyzeImage})
		return
	}

	photoKey := ""
	if h.photos != nil {
		photoKey, err = h.photos.StoreMealPhoto(c.Request.Context(), imageBytes, mimeType)
		if err != nil {
			// The analysis already succeeded; losing the photo is not
			// worth failing the request over.
			log.Printf("failed to store meal photo: %v", err)
			photoKey = ""
		}
	}

	c.JSON(http.StatusOK, gin.H{"meal": meal, "photo_key": photoKey})
}
