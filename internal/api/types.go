package api

import (
	"github.com/hferris/caltrack/backend/internal/models"
	"github.com/hferris/caltrack/backend/internal/service"
)

// SubmitProfileRequest is the payload for creating or replacing the
// profile. Numeric bounds are checked by the profile service so that
// invalid values produce its canonical validation message; enum
// membership is checked against the energy model's own tables.
type SubmitProfileRequest struct {
	Age           int     `json:"age"`
	Weight        float64 `json:"weight"`
	Height        float64 `json:"height"`
	Gender        string  `json:"gender" binding:"required"`
	Goal          string  `json:"goal" binding:"required"`
	ActivityLevel string  `json:"activityLevel" binding:"required"`
}

// ProfileResponse pairs the live profile with its derived daily target.
type ProfileResponse struct {
	Profile     *models.Profile `json:"profile"`
	DailyTarget int             `json:"daily_target"`
}

// LogMealRequest is an analyzed meal the user accepted into the log.
type LogMealRequest struct {
	TotalCalories int               `json:"totalCalories"`
	Items         []models.MealItem `json:"items"`
	PhotoKey      string            `json:"photo_key"`
}

// AnalyzeTextRequest describes a meal in free text.
type AnalyzeTextRequest struct {
	Description string `json:"description" binding:"required"`
}

// ThemeRequest sets the persisted UI theme.
type ThemeRequest struct {
	Theme string `json:"theme" binding:"required,oneof=light dark"`
}

// DashboardResponse is the single-payload view the dashboard renders.
type DashboardResponse struct {
	DailyTarget   int                  `json:"daily_target"`
	ConsumedToday int                  `json:"consumed_today"`
	Remaining     int                  `json:"remaining"`
	WeeklyTrend   []service.TrendEntry `json:"weekly_trend"`
}
