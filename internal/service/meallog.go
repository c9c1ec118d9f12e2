package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hferris/caltrack/backend/internal/models"
)

// MealLogService owns the ordered log of accepted meals. Entries are
// appended with a store-assigned id and the instant of logging; the
// log is cleared whenever the profile is replaced or reset.
type MealLogService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewMealLogService creates a new MealLogService instance
func NewMealLogService(db *gorm.DB) *MealLogService {
	return &MealLogService{db: db, now: time.Now}
}

// Add logs an accepted meal. The id is assigned by the store and is
// strictly greater than any id assigned before it; identical meals may
// be logged any number of times.
func (s *MealLogService) Add(ctx context.Context, meal *models.Meal) (*models.LoggedMeal, error) {
	return s.AddWithPhoto(ctx, meal, "")
}

// AddWithPhoto logs an accepted meal together with the storage key of
// the photo it was analyzed from, if any.
func (s *MealLogService) AddWithPhoto(ctx context.Context, meal *models.Meal, photoKey string) (*models.LoggedMeal, error) {
	items := meal.Items
	if items == nil {
		items = models.MealItemList{}
	}

	logged := &models.LoggedMeal{
		TotalCalories: meal.TotalCalories,
		Items:         items,
		PhotoKey:      photoKey,
		LoggedAt:      s.now(),
	}
	if err := s.db.WithContext(ctx).Create(logged).Error; err != nil {
		return nil, fmt.Errorf("failed to log meal: %w", err)
	}
	return logged, nil
}

// Remove deletes the meal with the given id. A missing id is a no-op,
// not an error.
func (s *MealLogService) Remove(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.LoggedMeal{}, id).Error; err != nil {
		return fmt.Errorf("failed to remove meal %d: %w", id, err)
	}
	return nil
}

// Get returns the logged meal with the given id.
func (s *MealLogService) Get(ctx context.Context, id uint) (*models.LoggedMeal, error) {
	var meal models.LoggedMeal
	if err := s.db.WithContext(ctx).First(&meal, id).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

// All returns the full meal log in insertion order.
func (s *MealLogService) All(ctx context.Context) ([]models.LoggedMeal, error) {
	var meals []models.LoggedMeal
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}
