package models

// MealSuggestion is one meal of a suggested one-day plan. Suggestions
// are transient: cached with a TTL, replaced wholesale on each
// generation, never written to the database.
type MealSuggestion struct {
	MealType string `json:"mealType"`
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}
