package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hferris/caltrack/backend/internal/models"
	"github.com/hferris/caltrack/backend/internal/testhelpers"
)

func TestAddAssignsMonotonicIDs(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewMealLogService(db)
	ctx := context.Background()

	var lastID uint
	for i := 0; i < 5; i++ {
		logged, err := svc.Add(ctx, &models.Meal{TotalCalories: 100 * (i + 1)})
		require.NoError(t, err)
		assert.Greater(t, logged.ID, lastID)
		assert.False(t, logged.LoggedAt.IsZero())
		lastID = logged.ID
	}
}

func TestAddRemoveRoundTrip(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewMealLogService(db)
	ctx := context.Background()

	_, err := svc.Add(ctx, &models.Meal{TotalCalories: 300})
	require.NoError(t, err)

	before, err := svc.All(ctx)
	require.NoError(t, err)

	logged, err := svc.Add(ctx, &models.Meal{TotalCalories: 800, Items: models.MealItemList{{Name: "burger", Calories: 550}, {Name: "fries", Calories: 250}}})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, logged.ID))

	after, err := svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before))
	assert.Equal(t, before[0].ID, after[0].ID)
	assert.Equal(t, before[0].TotalCalories, after[0].TotalCalories)
}

func TestRemoveAbsentIDIsNoOp(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewMealLogService(db)
	ctx := context.Background()

	_, err := svc.Add(ctx, &models.Meal{TotalCalories: 300})
	require.NoError(t, err)

	assert.NoError(t, svc.Remove(ctx, 9999))

	meals, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, meals, 1)
}

func TestAllReturnsInsertionOrder(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewMealLogService(db)
	ctx := context.Background()

	totals := []int{250, 400, 700}
	for _, total := range totals {
		_, err := svc.Add(ctx, &models.Meal{TotalCalories: total})
		require.NoError(t, err)
	}

	meals, err := svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, meals, 3)
	for i, total := range totals {
		assert.Equal(t, total, meals[i].TotalCalories)
	}
}

func TestDuplicateMealsAreAllowed(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewMealLogService(db)
	ctx := context.Background()

	meal := &models.Meal{TotalCalories: 420, Items: models.MealItemList{{Name: "pizza slice", Calories: 420}}}
	first, err := svc.Add(ctx, meal)
	require.NoError(t, err)
	second, err := svc.Add(ctx, meal)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	meals, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, meals, 2)
}

func TestItemsSurviveStorage(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewMealLogService(db)
	ctx := context.Background()

	logged, err := svc.Add(ctx, &models.Meal{
		TotalCalories: 800,
		// The stored total is the gateway's verbatim estimate; it is
		// deliberately not the item sum here.
		Items: models.MealItemList{{Name: "ramen", Calories: 650}, {Name: "egg", Calories: 70}},
	})
	require.NoError(t, err)

	meals, err := svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, logged.ID, meals[0].ID)
	assert.Equal(t, 800, meals[0].TotalCalories)
	require.Len(t, meals[0].Items, 2)
	assert.Equal(t, "ramen", meals[0].Items[0].Name)
	assert.Equal(t, 70, meals[0].Items[1].Calories)
}
