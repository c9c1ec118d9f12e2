package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hferris/caltrack/backend/internal/models"
	"github.com/hferris/caltrack/backend/internal/service"
)

// ProfileHandler handles profile lifecycle requests
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler instance
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// RegisterRoutes registers the profile routes
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.POST("", h.Submit)
		profile.GET("", h.Get)
		profile.DELETE("", h.Reset)
	}
}

// Submit replaces the profile wholesale and starts a fresh meal
// history. The response carries the recomputed daily target.
func (h *ProfileHandler) Submit(c *gin.Context) {
	var req SubmitProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !service.ValidGender(req.Gender) || !service.ValidGoal(req.Goal) || !service.ValidActivityLevel(req.ActivityLevel) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown gender, goal or activity level"})
		return
	}

	profile := &models.Profile{
		Age:           req.Age,
		Weight:        req.Weight,
		Height:        req.Height,
		Gender:        req.Gender,
		Goal:          req.Goal,
		ActivityLevel: req.ActivityLevel,
	}

	target, err := h.profileService.Submit(c.Request.Context(), profile)
	if err != nil {
		if errors.Is(err, service.ErrInvalidProfile) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store profile"})
		return
	}

	c.JSON(http.StatusCreated, ProfileResponse{Profile: profile, DailyTarget: target})
}

// Get returns the live profile and its daily target.
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileService.Current(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoProfile) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no profile set"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{Profile: profile, DailyTarget: service.DailyTarget(profile)})
}

// Reset clears the profile, the meal log and any cached suggestions.
func (h *ProfileHandler) Reset(c *gin.Context) {
	if err := h.profileService.Reset(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset profile"})
		return
	}
	c.Status(http.StatusNoContent)
}
