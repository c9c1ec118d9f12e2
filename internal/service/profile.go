package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hferris/caltrack/backend/internal/models"
)

var (
	// ErrInvalidProfile is returned by Submit for non-positive
	// age, weight or height. Prior state is left unchanged.
	ErrInvalidProfile = errors.New("invalid age/weight/height")

	// ErrNoProfile is returned when no profile has been submitted yet.
	ErrNoProfile = errors.New("no profile set")
)

// ProfileService owns the single live profile and the generation
// counter that tags everything derived from it.
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// Submit validates and stores a new profile. The previous profile and
// the entire meal log are replaced atomically: a new profile starts a
// fresh tracking history. Returns the stored profile and its daily
// calorie target.
func (s *ProfileService) Submit(ctx context.Context, profile *models.Profile) (int, error) {
	if profile.Age <= 0 || profile.Weight <= 0 || profile.Height <= 0 {
		return 0, ErrInvalidProfile
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.LoggedMeal{}).Error; err != nil {
			return err
		}
		profile.ID = 0
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		return bumpGeneration(tx)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to store profile: %w", err)
	}

	return DailyTarget(profile), nil
}

// Reset clears the profile and the meal log, returning the system to
// its initial no-profile state. Cached suggestions become unreachable
// because the generation is bumped.
func (s *ProfileService) Reset(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.LoggedMeal{}).Error; err != nil {
			return err
		}
		return bumpGeneration(tx)
	})
	if err != nil {
		return fmt.Errorf("failed to reset profile: %w", err)
	}
	return nil
}

// Current returns the live profile, or ErrNoProfile if none is set.
func (s *ProfileService) Current(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoProfile
		}
		return nil, err
	}
	return &profile, nil
}

// Generation returns the current profile generation. Zero means no
// profile has ever been submitted.
func (s *ProfileService) Generation(ctx context.Context) (int64, error) {
	var setting models.Setting
	err := s.db.WithContext(ctx).First(&setting, "key = ?", models.SettingGeneration).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	gen, err := strconv.ParseInt(setting.Value, 10, 64)
	if err != nil {
		// Corrupt stored state is treated as absent, not fatal.
		return 0, nil
	}
	return gen, nil
}

// bumpGeneration increments the persisted generation counter within the
// caller's transaction.
func bumpGeneration(tx *gorm.DB) error {
	var setting models.Setting
	err := tx.First(&setting, "key = ?", models.SettingGeneration).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	gen, _ := strconv.ParseInt(setting.Value, 10, 64)
	setting.Key = models.SettingGeneration
	setting.Value = strconv.FormatInt(gen+1, 10)

	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}
