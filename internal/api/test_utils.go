package api

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hferris/caltrack/backend/internal/models"
	"github.com/hferris/caltrack/backend/internal/service"
	"github.com/hferris/caltrack/backend/internal/testhelpers"
)

// fakeAnalyzer is a canned MealAnalyzer for handler tests.
type fakeAnalyzer struct {
	meal *models.Meal
	err  error
}

func (f *fakeAnalyzer) AnalyzeText(ctx context.Context, description string) (*models.Meal, error) {
	return f.meal, f.err
}

func (f *fakeAnalyzer) AnalyzeImage(ctx context.Context, imageBytes []byte, mimeType string) (*models.Meal, error) {
	return f.meal, f.err
}

// fakePhotoStore records the last stored photo.
type fakePhotoStore struct {
	key      string
	err      error
	stored   int
	lastMime string
}

func (f *fakePhotoStore) StoreMealPhoto(ctx context.Context, imageData []byte, mimeType string) (string, error) {
	f.stored++
	f.lastMime = mimeType
	return f.key, f.err
}

// fakePhotoURLs is a canned PhotoURLProvider.
type fakePhotoURLs struct {
	url string
	err error
}

func (f *fakePhotoURLs) PhotoURL(ctx context.Context, key string) (string, error) {
	return f.url, f.err
}

// fakeSuggestions is a canned SuggestionProvider.
type fakeSuggestions struct {
	suggestions []models.MealSuggestion
	err         error
	refreshes   int
}

func (f *fakeSuggestions) Get(ctx context.Context) ([]models.MealSuggestion, error) {
	return f.suggestions, f.err
}

func (f *fakeSuggestions) Refresh(ctx context.Context) ([]models.MealSuggestion, error) {
	f.refreshes++
	return f.suggestions, f.err
}

type testEnv struct {
	router      *gin.Engine
	db          *gorm.DB
	analyzer    *fakeAnalyzer
	photos      *fakePhotoStore
	photoURLs   *fakePhotoURLs
	suggestions *fakeSuggestions
}

// setupTestRouter wires the full handler surface over an in-memory
// database with fake gateways and no rate limits.
func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	env := &testEnv{
		db:          db,
		analyzer:    &fakeAnalyzer{},
		photos:      &fakePhotoStore{},
		photoURLs:   &fakePhotoURLs{},
		suggestions: &fakeSuggestions{},
	}

	profileService := service.NewProfileService(db)
	mealLogService := service.NewMealLogService(db)
	aggregateService := service.NewAggregateService(db, time.UTC)
	settingsService := service.NewSettingsService(db)

	router := gin.New()
	v1 := router.Group("/api/v1")

	NewProfileHandler(profileService).RegisterRoutes(v1)
	NewMealsHandler(mealLogService, env.photoURLs).RegisterRoutes(v1)
	NewDashboardHandler(profileService, aggregateService).RegisterRoutes(v1)
	NewAnalysisHandler(env.analyzer, env.photos).RegisterRoutes(v1)
	NewSuggestionsHandler(env.suggestions).RegisterRoutes(v1)
	NewSettingsHandler(settingsService).RegisterRoutes(v1)

	env.router = router
	return env
}
