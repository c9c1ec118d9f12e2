package service

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hferris/caltrack/backend/internal/models"
)

// Theme values the client may persist. An absent theme means the
// client derives it from the OS preference.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ErrNoSetting is returned when a setting has no persisted value.
var ErrNoSetting = errors.New("setting not set")

// SettingsService persists small key/value preferences, currently just
// the UI theme.
type SettingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new SettingsService instance
func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// GetTheme returns the persisted theme, or ErrNoSetting if none is set.
func (s *SettingsService) GetTheme(ctx context.Context) (string, error) {
	var setting models.Setting
	if err := s.db.WithContext(ctx).First(&setting, "key = ?", models.SettingTheme).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNoSetting
		}
		return "", err
	}
	return setting.Value, nil
}

// SetTheme persists the theme, replacing any previous value.
func (s *SettingsService) SetTheme(ctx context.Context, theme string) error {
	setting := models.Setting{Key: models.SettingTheme, Value: theme}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}
