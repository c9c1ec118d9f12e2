package service

import (
	"math"

	"github.com/hferris/caltrack/backend/internal/models"
)

// activityMultipliers maps activity levels to their TDEE multiplier.
// This is the single source of truth for valid activity levels;
// ValidActivityLevel checks membership against it.
var activityMultipliers = map[string]float64{
	models.ActivitySedentary:  1.2,
	models.ActivityLight:      1.375,
	models.ActivityModerate:   1.55,
	models.ActivityActive:     1.725,
	models.ActivityVeryActive: 1.9,
}

// goalAdjustments maps fitness goals to their daily kcal delta.
var goalAdjustments = map[string]int{
	models.GoalLose:     -500,
	models.GoalMaintain: 0,
	models.GoalGain:     500,
}

// DailyTarget computes the daily calorie target for a profile:
// BMR via Mifflin-St Jeor, scaled by activity level, shifted by the
// goal adjustment, rounded to the nearest kcal.
//
// The profile must already be validated (positive age/weight/height,
// enums within range); an unknown enum value here is a programming
// error, not a runtime condition, so no error is returned. No floor is
// applied to the result; extreme inputs yield the raw computed value.
func DailyTarget(p *models.Profile) int {
	bmr := 10*p.Weight + 6.25*p.Height - 5*float64(p.Age)
	if p.Gender == models.GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	tdee := bmr * activityMultipliers[p.ActivityLevel]

	return int(math.Round(tdee)) + goalAdjustments[p.Goal]
}

// ValidActivityLevel reports whether the given activity level is one of
// the defined multipliers.
func ValidActivityLevel(level string) bool {
	_, ok := activityMultipliers[level]
	return ok
}

// ValidGoal reports whether the given goal has a defined adjustment.
func ValidGoal(goal string) bool {
	_, ok := goalAdjustments[goal]
	return ok
}

// ValidGender reports whether the gender is one the BMR formula defines.
func ValidGender(gender string) bool {
	return gender == models.GenderMale || gender == models.GenderFemale
}
