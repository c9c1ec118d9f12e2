package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hferris/caltrack/backend/internal/models"
)

// ErrProfileChanged is returned when the profile was replaced while a
// suggestion request was in flight. The stale result is discarded
// rather than applied to the new profile; the caller simply retries.
var ErrProfileChanged = errors.New("profile changed during suggestion request")

// MealSuggester generates a one-day plan for a profile and target.
type MealSuggester interface {
	SuggestMeals(ctx context.Context, profile *models.Profile, targetCalories int) ([]models.MealSuggestion, error)
}

// SuggestionService holds the current suggestion plan. Plans are cached
// in Redis keyed by profile generation, so results issued for a
// superseded profile can never be served for the current one.
type SuggestionService struct {
	suggester MealSuggester
	redis     *redis.Client
	profiles  *ProfileService
}

const suggestionTTL = 24 * time.Hour

// NewSuggestionService creates a new SuggestionService instance
func NewSuggestionService(suggester MealSuggester, redisClient *redis.Client, profiles *ProfileService) *SuggestionService {
	return &SuggestionService{
		suggester: suggester,
		redis:     redisClient,
		profiles:  profiles,
	}
}

// Get returns the plan for the live profile, generating one if the
// cache is cold. Returns ErrNoProfile when no profile is set.
func (s *SuggestionService) Get(ctx context.Context) ([]models.MealSuggestion, error) {
	profile, err := s.profiles.Current(ctx)
	if err != nil {
		return nil, err
	}

	gen, err := s.profiles.Generation(ctx)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.cached(ctx, gen); ok {
		return cached, nil
	}

	return s.generate(ctx, profile, gen)
}

// Refresh discards the cached plan for the live profile and generates a
// new one.
func (s *SuggestionService) Refresh(ctx context.Context) ([]models.MealSuggestion, error) {
	profile, err := s.profiles.Current(ctx)
	if err != nil {
		return nil, err
	}

	gen, err := s.profiles.Generation(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.redis.Del(ctx, suggestionKey(gen)).Err(); err != nil {
		log.Printf("failed to drop cached suggestions: %v", err)
	}

	return s.generate(ctx, profile, gen)
}

// generate calls the gateway tagged with the generation it was issued
// for and discards the result if the profile has changed underneath it.
func (s *SuggestionService) generate(ctx context.Context, profile *models.Profile, gen int64) ([]models.MealSuggestion, error) {
	suggestions, err := s.suggester.SuggestMeals(ctx, profile, DailyTarget(profile))
	if err != nil {
		return nil, fmt.Errorf("failed to get meal suggestions: %w", err)
	}

	current, err := s.profiles.Generation(ctx)
	if err != nil {
		return nil, err
	}
	if current != gen {
		return nil, ErrProfileChanged
	}

	data, err := json.Marshal(suggestions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal suggestions: %w", err)
	}
	if err := s.redis.Set(ctx, suggestionKey(gen), data, suggestionTTL).Err(); err != nil {
		// The plan is still valid for this call; caching is best effort.
		log.Printf("failed to cache suggestions: %v", err)
	}

	return suggestions, nil
}

func (s *SuggestionService) cached(ctx context.Context, gen int64) ([]models.MealSuggestion, bool) {
	data, err := s.redis.Get(ctx, suggestionKey(gen)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("failed to read cached suggestions: %v", err)
		}
		return nil, false
	}

	var suggestions []models.MealSuggestion
	if err := json.Unmarshal(data, &suggestions); err != nil {
		// Corrupt cache entries are treated as a miss.
		log.Printf("failed to unmarshal cached suggestions: %v", err)
		return nil, false
	}
	return suggestions, true
}

func suggestionKey(gen int64) string {
	return fmt.Sprintf("suggestions:gen:%d", gen)
}
