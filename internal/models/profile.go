package models

import (
	"time"
)

// Gender values accepted by the energy model.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Goal values accepted by the energy model.
const (
	GoalLose     = "lose"
	GoalMaintain = "maintain"
	GoalGain     = "gain"
)

// Activity levels accepted by the energy model.
const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "veryActive"
)

// Profile holds the biometric and goal data for the single live user.
// At most one row exists at any time; submitting a new profile replaces
// it wholesale and starts a fresh meal history.
type Profile struct {
	ID            uint      `gorm:"primarykey" json:"-"`
	Age           int       `gorm:"not null" json:"age"`
	Weight        float64   `gorm:"not null" json:"weight"`
	Height        float64   `gorm:"not null" json:"height"`
	Gender        string    `gorm:"size:10;not null" json:"gender"`
	Goal          string    `gorm:"size:10;not null" json:"goal"`
	ActivityLevel string    `gorm:"size:20;not null" json:"activityLevel"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}
