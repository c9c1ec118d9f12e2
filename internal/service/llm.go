package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hferris/caltrack/backend/config"
	"github.com/hferris/caltrack/backend/internal/models"
)

// LLMService talks to an OpenAI-compatible chat-completions API. It
// implements both external gateways: meal analysis (text or photo to a
// structured meal) and one-day meal-plan suggestions.
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg *config.Config) (*LLMService, error) {
	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY or LLM_API_KEY_FILE must be set")
	}

	return &LLMService{
		apiKey: cfg.LLMAPIKey,
		apiURL: cfg.LLMAPIURL,
		model:  cfg.LLMModel,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// Message represents a message in the chat. Content is either a plain
// string or a slice of content parts for multimodal requests.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// Request represents a request to the chat-completions API
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
}

type textPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type imagePart struct {
	Type     string   `json:"type"`
	ImageURL imageURL `json:"image_url"`
}

type imageURL struct {
	URL string `json:"url"`
}

const analysisSystemPrompt = `You are a nutrition expert. Respond only with JSON like {"totalCalories":0,"items":[{"name":"","calories":0}]}. totalCalories is the estimated total calorie count for the entire meal; items is the list of food items identified in it, each with its own calorie estimate. All calorie values must be integers.`

// AnalyzeText estimates the calorie content of a meal described in free
// text. The returned total is the upstream estimate, taken verbatim.
func (s *LLMService) AnalyzeText(ctx context.Context, description string) (*models.Meal, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("meal description must not be empty")
	}

	messages := []Message{
		{Role: "system", Content: analysisSystemPrompt},
		{
			Role:    "user",
			Content: fmt.Sprintf("Analyze this meal description: '%s'. Provide a reasonable estimate of its total calories and a breakdown of the items.", description),
		},
	}

	content, err := s.complete(ctx, messages)
	if err != nil {
		return nil, err
	}
	return parseMeal(content)
}

// AnalyzeImage estimates the calorie content of a photographed meal.
// The image bytes are sent inline as a base64 data URI content part.
func (s *LLMService) AnalyzeImage(ctx context.Context, imageBytes []byte, mimeType string) (*models.Meal, error) {
	if len(imageBytes) == 0 {
		return nil, fmt.Errorf("image must not be empty")
	}

	dataURI := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageBytes))
	messages := []Message{
		{Role: "system", Content: analysisSystemPrompt},
		{
			Role: "user",
			Content: []any{
				textPart{Type: "text", Text: "Analyze the food items in this image. For each item, provide a reasonable estimate of its name and calorie count."},
				imagePart{Type: "image_url", ImageURL: imageURL{URL: dataURI}},
			},
		},
	}

	content, err := s.complete(ctx, messages)
	if err != nil {
		return nil, err
	}
	return parseMeal(content)
}

// SuggestMeals asks for a one-day meal plan (typically breakfast, lunch
// and dinner) fitting the profile and its calorie target. Suggested
// calories are not reconciled against the target.
func (s *LLMService) SuggestMeals(ctx context.Context, profile *models.Profile, targetCalories int) ([]models.MealSuggestion, error) {
	prompt := fmt.Sprintf(
		"I am a %d-year-old %s, my weight is %g kg, and my height is %g cm. My fitness goal is to %s weight. My activity level is %s. My target daily calorie intake is %d calories. Suggest a one-day meal plan (breakfast, lunch, dinner) that aligns with my goals and calorie target. For each meal, provide the meal name and estimated calories.",
		profile.Age, profile.Gender, profile.Weight, profile.Height, profile.Goal, profile.ActivityLevel, targetCalories,
	)

	messages := []Message{
		{
			Role:    "system",
			Content: `You are a professional nutritionist. Respond only with JSON like {"suggestions":[{"mealType":"Breakfast","name":"","calories":0}]}. mealType is one of Breakfast, Lunch, Dinner. Calories must be integers.`,
		},
		{Role: "user", Content: prompt},
	}

	content, err := s.complete(ctx, messages)
	if err != nil {
		return nil, err
	}

	var result struct {
		Suggestions []models.MealSuggestion `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse suggestions: %w", err)
	}
	return result.Suggestions, nil
}

// complete sends the chat request and returns the first choice's
// content.
func (s *LLMService) complete(ctx context.Context, messages []Message) (string, error) {
	reqBody := Request{
		Model:    s.model,
		Messages: messages,
		ResponseFormat: map[string]string{
			"type": "json_object",
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	requestID := uuid.New().String()
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[llm %s] API request failed with status %d: %s", requestID, resp.StatusCode, string(body))
		return "", fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	return result.Choices[0].Message.Content, nil
}

func parseMeal(content string) (*models.Meal, error) {
	var meal models.Meal
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &meal); err != nil {
		return nil, fmt.Errorf("failed to parse meal: %w", err)
	}
	if meal.Items == nil {
		meal.Items = models.MealItemList{}
	}
	return &meal, nil
}
