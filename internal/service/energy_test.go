package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hferris/caltrack/backend/internal/models"
)

func referenceProfile() *models.Profile {
	return &models.Profile{
		Age:           30,
		Weight:        70,
		Height:        175,
		Gender:        models.GenderMale,
		Goal:          models.GoalMaintain,
		ActivityLevel: models.ActivityModerate,
	}
}

func TestDailyTargetReferenceProfile(t *testing.T) {
	// BMR = 700 + 1093.75 - 150 + 5 = 1648.75; TDEE = 1648.75 * 1.55
	p := referenceProfile()
	assert.Equal(t, 2556, DailyTarget(p))
}

func TestDailyTargetGoalAdjustments(t *testing.T) {
	p := referenceProfile()
	maintain := DailyTarget(p)

	p.Goal = models.GoalLose
	assert.Equal(t, maintain-500, DailyTarget(p))

	p.Goal = models.GoalGain
	assert.Equal(t, maintain+500, DailyTarget(p))
}

func TestDailyTargetDeterministic(t *testing.T) {
	p := referenceProfile()
	first := DailyTarget(p)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DailyTarget(p))
	}
}

func TestDailyTargetFemaleConstant(t *testing.T) {
	p := referenceProfile()
	male := DailyTarget(p)

	p.Gender = models.GenderFemale
	female := DailyTarget(p)

	// The 166-kcal BMR gap scales with the activity multiplier.
	assert.Less(t, female, male)
}

func TestDailyTargetActivityOrdering(t *testing.T) {
	p := referenceProfile()

	levels := []string{
		models.ActivitySedentary,
		models.ActivityLight,
		models.ActivityModerate,
		models.ActivityActive,
		models.ActivityVeryActive,
	}

	prev := 0
	for _, level := range levels {
		p.ActivityLevel = level
		target := DailyTarget(p)
		assert.Greater(t, target, prev, "level %s", level)
		prev = target
	}
}

func TestDailyTargetNoFloor(t *testing.T) {
	// Extreme low inputs yield the raw computed value, never a clamp.
	p := &models.Profile{
		Age:           90,
		Weight:        30,
		Height:        120,
		Gender:        models.GenderFemale,
		Goal:          models.GoalLose,
		ActivityLevel: models.ActivitySedentary,
	}

	// BMR = 300 + 750 - 450 - 161 = 439; TDEE = 526.8 -> 527 - 500
	assert.Equal(t, 27, DailyTarget(p))
}

func TestEnumValidators(t *testing.T) {
	assert.True(t, ValidActivityLevel(models.ActivityVeryActive))
	assert.False(t, ValidActivityLevel("extreme"))

	assert.True(t, ValidGoal(models.GoalMaintain))
	assert.False(t, ValidGoal("bulk"))

	assert.True(t, ValidGender(models.GenderFemale))
	assert.False(t, ValidGender("other"))
}
