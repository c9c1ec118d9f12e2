package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/hferris/caltrack/backend/internal/models"
)

// TrendEntry is one calendar day in the weekly trend.
type TrendEntry struct {
	DayLabel string `json:"name"`
	Calories int    `json:"calories"`
}

// AggregateService derives display metrics from the meal log without
// mutating it. Days are bucketed by calendar date in a single location
// fixed at construction; same-day means same date string, not a
// rolling 24-hour window.
type AggregateService struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

// NewAggregateService creates a new AggregateService instance. A nil
// location falls back to the device-local zone.
func NewAggregateService(db *gorm.DB, loc *time.Location) *AggregateService {
	if loc == nil {
		loc = time.Local
	}
	return &AggregateService{db: db, loc: loc, now: time.Now}
}

// ConsumedToday sums totalCalories over all meals logged on the current
// calendar day.
func (s *AggregateService) ConsumedToday(ctx context.Context) (int, error) {
	meals, err := s.mealsSince(ctx, s.startOfDay(s.now()))
	if err != nil {
		return 0, err
	}

	today := s.dateKey(s.now())
	total := 0
	for _, m := range meals {
		if s.dateKey(m.LoggedAt) == today {
			total += m.TotalCalories
		}
	}
	return total, nil
}

// MealsToday returns the meals logged on the current calendar day, in
// insertion order.
func (s *AggregateService) MealsToday(ctx context.Context) ([]models.LoggedMeal, error) {
	meals, err := s.mealsSince(ctx, s.startOfDay(s.now()))
	if err != nil {
		return nil, err
	}

	today := s.dateKey(s.now())
	out := make([]models.LoggedMeal, 0, len(meals))
	for _, m := range meals {
		if s.dateKey(m.LoggedAt) == today {
			out = append(out, m)
		}
	}
	return out, nil
}

// WeeklyTrend returns exactly 7 entries, one per calendar day from six
// days ago through today, oldest first. Days with no meals report zero.
func (s *AggregateService) WeeklyTrend(ctx context.Context) ([]TrendEntry, error) {
	now := s.now()
	windowStart := s.startOfDay(now).AddDate(0, 0, -6)

	meals, err := s.mealsSince(ctx, windowStart)
	if err != nil {
		return nil, err
	}

	sums := make(map[string]int, 7)
	for _, m := range meals {
		sums[s.dateKey(m.LoggedAt)] += m.TotalCalories
	}

	trend := make([]TrendEntry, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.In(s.loc).AddDate(0, 0, -i)
		trend = append(trend, TrendEntry{
			DayLabel: day.Format("Mon"),
			Calories: sums[s.dateKey(day)],
		})
	}
	return trend, nil
}

// mealsSince fetches meals logged at or after the given instant. The
// cutoff only narrows the scan; bucketing is done on the date key.
func (s *AggregateService) mealsSince(ctx context.Context, cutoff time.Time) ([]models.LoggedMeal, error) {
	var meals []models.LoggedMeal
	if err := s.db.WithContext(ctx).
		Where("logged_at >= ?", cutoff).
		Order("id ASC").
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

func (s *AggregateService) dateKey(t time.Time) string {
	return t.In(s.loc).Format("2006-01-02")
}

func (s *AggregateService) startOfDay(t time.Time) time.Time {
	t = t.In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}
