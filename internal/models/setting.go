package models

import "time"

// Setting keys.
const (
	SettingTheme = "theme"

	// SettingGeneration is the profile generation counter. It is bumped
	// on every profile submit or reset and survives both, so results
	// from a superseded profile can always be told apart from current
	// ones.
	SettingGeneration = "profile_generation"
)

// Setting is a persisted key/value preference, e.g. the UI theme.
type Setting struct {
	Key       string    `gorm:"primarykey;size:64" json:"key"`
	Value     string    `gorm:"size:255;not null" json:"value"`
	UpdatedAt time.Time `json:"-"`
}
