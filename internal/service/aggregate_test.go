package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hferris/caltrack/backend/internal/models"
	"github.com/hferris/caltrack/backend/internal/testhelpers"
)

// fixedNow is a Wednesday afternoon.
var fixedNow = time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)

func setupAggregateTest(t *testing.T) (*AggregateService, *MealLogService) {
	db := testhelpers.SetupTestDatabase(t)

	meals := NewMealLogService(db)
	agg := NewAggregateService(db, time.UTC)
	agg.now = func() time.Time { return fixedNow }

	return agg, meals
}

func logMealAt(t *testing.T, meals *MealLogService, at time.Time, calories int) {
	t.Helper()
	meals.now = func() time.Time { return at }
	_, err := meals.Add(context.Background(), &models.Meal{TotalCalories: calories})
	require.NoError(t, err)
}

func TestConsumedTodaySumsOnlyToday(t *testing.T) {
	agg, meals := setupAggregateTest(t)
	ctx := context.Background()

	logMealAt(t, meals, fixedNow.Add(-14*time.Hour), 300)   // today 01:00
	logMealAt(t, meals, fixedNow, 450)                      // today 15:00
	logMealAt(t, meals, fixedNow.AddDate(0, 0, -1), 500)    // yesterday
	logMealAt(t, meals, fixedNow.AddDate(0, 0, -3), 700)    // three days ago

	consumed, err := agg.ConsumedToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, 750, consumed)
}

func TestConsumedTodayCalendarBoundary(t *testing.T) {
	agg, meals := setupAggregateTest(t)
	ctx := context.Background()

	// 2 minutes apart but on different calendar dates: only the one
	// dated today counts.
	midnight := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	logMealAt(t, meals, midnight.Add(-time.Minute), 500) // 11:59pm yesterday
	logMealAt(t, meals, midnight.Add(time.Minute), 200)  // 12:01am today

	consumed, err := agg.ConsumedToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, 200, consumed)
}

func TestConsumedTodayEmptyLog(t *testing.T) {
	agg, _ := setupAggregateTest(t)

	consumed, err := agg.ConsumedToday(context.Background())
	require.NoError(t, err)
	assert.Zero(t, consumed)
}

func TestWeeklyTrendAlwaysSevenEntries(t *testing.T) {
	agg, meals := setupAggregateTest(t)
	ctx := context.Background()

	trend, err := agg.WeeklyTrend(ctx)
	require.NoError(t, err)
	assert.Len(t, trend, 7)
	for _, entry := range trend {
		assert.Zero(t, entry.Calories)
	}

	logMealAt(t, meals, fixedNow, 640)

	trend, err = agg.WeeklyTrend(ctx)
	require.NoError(t, err)
	assert.Len(t, trend, 7)
}

func TestWeeklyTrendBucketsAndOrder(t *testing.T) {
	agg, meals := setupAggregateTest(t)
	ctx := context.Background()

	logMealAt(t, meals, fixedNow.AddDate(0, 0, -6), 400) // oldest in window
	logMealAt(t, meals, fixedNow.AddDate(0, 0, -2), 300)
	logMealAt(t, meals, fixedNow.AddDate(0, 0, -2), 200)
	logMealAt(t, meals, fixedNow, 550)
	logMealAt(t, meals, fixedNow.AddDate(0, 0, -7), 999) // outside window

	trend, err := agg.WeeklyTrend(ctx)
	require.NoError(t, err)
	require.Len(t, trend, 7)

	// fixedNow is a Wednesday, so the window runs Thu..Wed.
	labels := make([]string, 0, 7)
	for _, e := range trend {
		labels = append(labels, e.DayLabel)
	}
	assert.Equal(t, []string{"Thu", "Fri", "Sat", "Sun", "Mon", "Tue", "Wed"}, labels)

	assert.Equal(t, 400, trend[0].Calories)
	assert.Equal(t, 500, trend[4].Calories)
	assert.Equal(t, 550, trend[6].Calories)
	assert.Zero(t, trend[1].Calories)
}

func TestAggregatesAreIdempotent(t *testing.T) {
	agg, meals := setupAggregateTest(t)
	ctx := context.Background()

	logMealAt(t, meals, fixedNow, 480)
	logMealAt(t, meals, fixedNow.AddDate(0, 0, -1), 350)

	consumed1, err := agg.ConsumedToday(ctx)
	require.NoError(t, err)
	trend1, err := agg.WeeklyTrend(ctx)
	require.NoError(t, err)

	consumed2, err := agg.ConsumedToday(ctx)
	require.NoError(t, err)
	trend2, err := agg.WeeklyTrend(ctx)
	require.NoError(t, err)

	assert.Equal(t, consumed1, consumed2)
	assert.Equal(t, trend1, trend2)
}
