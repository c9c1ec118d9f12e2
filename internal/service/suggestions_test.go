package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hferris/caltrack/backend/internal/models"
	"github.com/hferris/caltrack/backend/internal/testhelpers"
)

// stubSuggester counts calls and returns a canned plan or error.
type stubSuggester struct {
	calls       int
	err         error
	suggestions []models.MealSuggestion

	// onCall runs before returning, letting tests change state while a
	// request is "in flight".
	onCall func()
}

func (s *stubSuggester) SuggestMeals(ctx context.Context, profile *models.Profile, targetCalories int) ([]models.MealSuggestion, error) {
	s.calls++
	if s.onCall != nil {
		s.onCall()
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.suggestions, nil
}

// setupSuggestionTest needs a reachable Redis; tests are skipped
// without one.
func setupSuggestionTest(t *testing.T, stub *stubSuggester) (*SuggestionService, *ProfileService) {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("redis not reachable, skipping suggestion cache test")
	}
	require.NoError(t, client.FlushDB(context.Background()).Err())
	t.Cleanup(func() { _ = client.Close() })

	db := testhelpers.SetupTestDatabase(t)
	profiles := NewProfileService(db)
	return NewSuggestionService(stub, client, profiles), profiles
}

func plan() []models.MealSuggestion {
	return []models.MealSuggestion{
		{MealType: "Breakfast", Name: "Oatmeal", Calories: 420},
	}
}

func TestSuggestionsRequireProfile(t *testing.T) {
	// No Redis needed: the profile check happens first.
	db := testhelpers.SetupTestDatabase(t)
	profiles := NewProfileService(db)
	svc := NewSuggestionService(&stubSuggester{}, redis.NewClient(&redis.Options{Addr: "localhost:1"}), profiles)

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, ErrNoProfile)
}

func TestSuggestionsCachedPerGeneration(t *testing.T) {
	stub := &stubSuggester{suggestions: plan()}
	svc, profiles := setupSuggestionTest(t, stub)
	ctx := context.Background()

	_, err := profiles.Submit(ctx, referenceProfile())
	require.NoError(t, err)

	first, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stub.calls)

	// Second read is served from the cache.
	second, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, first, second)

	// A new profile generation invalidates the cached plan.
	_, err = profiles.Submit(ctx, referenceProfile())
	require.NoError(t, err)

	_, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stub.calls)
}

func TestSuggestionsRefreshBypassesCache(t *testing.T) {
	stub := &stubSuggester{suggestions: plan()}
	svc, profiles := setupSuggestionTest(t, stub)
	ctx := context.Background()

	_, err := profiles.Submit(ctx, referenceProfile())
	require.NoError(t, err)

	_, err = svc.Get(ctx)
	require.NoError(t, err)
	_, err = svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stub.calls)
}

func TestSuggestionsGatewayFailure(t *testing.T) {
	stub := &stubSuggester{err: errors.New("upstream unavailable")}
	svc, profiles := setupSuggestionTest(t, stub)
	ctx := context.Background()

	_, err := profiles.Submit(ctx, referenceProfile())
	require.NoError(t, err)

	_, err = svc.Get(ctx)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoProfile)
}

func TestStaleCompletionIsDiscarded(t *testing.T) {
	var svc *SuggestionService
	var profiles *ProfileService

	stub := &stubSuggester{suggestions: plan()}
	stub.onCall = func() {
		// The profile is replaced while the request is in flight.
		_, err := profiles.Submit(context.Background(), referenceProfile())
		require.NoError(t, err)
	}
	svc, profiles = setupSuggestionTest(t, stub)
	ctx := context.Background()

	_, err := profiles.Submit(ctx, referenceProfile())
	require.NoError(t, err)

	_, err = svc.Get(ctx)
	assert.ErrorIs(t, err, ErrProfileChanged)

	// The discarded result must not have been cached for the new
	// generation either.
	stub.onCall = nil
	_, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stub.calls)
}
