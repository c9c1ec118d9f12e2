package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// MealItem is a single food item identified by the analysis gateway.
// Immutable once produced.
type MealItem struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

// MealItemList is a custom type for storing the item breakdown as a
// JSON column, so the same model works on SQLite and Postgres.
type MealItemList []MealItem

// Value implements the driver.Valuer interface
func (l MealItemList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *MealItemList) Scan(value interface{}) error {
	if value == nil {
		*l = MealItemList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Meal is an analyzed meal as returned by the analysis gateway. The
// total is taken verbatim from the gateway; it is not recomputed from
// the items.
type Meal struct {
	TotalCalories int          `json:"totalCalories"`
	Items         MealItemList `json:"items"`
}

// LoggedMeal is a Meal accepted into the log. The id is assigned by the
// store and is strictly increasing; LoggedAt is the instant of logging.
type LoggedMeal struct {
	ID            uint         `gorm:"primarykey" json:"id"`
	TotalCalories int          `gorm:"not null" json:"totalCalories"`
	Items         MealItemList `gorm:"type:json;not null;default:'[]'" json:"items"`
	PhotoKey      string       `gorm:"size:255" json:"photo_key,omitempty"`
	LoggedAt      time.Time    `gorm:"not null;index" json:"date"`
}
