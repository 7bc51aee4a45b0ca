// Package estimate asks Gemini for calorie estimates. Estimation is a
// best-effort collaborator: every caller has a documented fallback
// constant, so a failed or unparseable estimate never fails the logging
// operation itself.
package estimate

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"google.golang.org/genai"
)

// Fallbacks applied by callers when estimation fails or is unavailable.
const (
	FallbackMealCalories              = 300
	FallbackDrinkCalories             = 150
	FallbackExerciseCaloriesPerMinute = 7
)

const model = "gemini-2.5-flash"

// Estimator produces calorie estimates for free-text descriptions.
type Estimator interface {
	MealCalories(ctx context.Context, description, size string) (int, error)
	ExerciseCalories(ctx context.Context, description string, minutes float64) (int, error)
}

// Gemini is the hosted implementation of Estimator.
type Gemini struct {
	client *genai.Client
}

// NewGemini builds a client from the configured API key. An empty key
// falls back to the environment-based client configuration.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	var cc *genai.ClientConfig
	if apiKey != "" {
		cc = &genai.ClientConfig{APIKey: apiKey}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create estimation client: %w", err)
	}
	return &Gemini{client: client}, nil
}

func (g *Gemini) MealCalories(ctx context.Context, description, size string) (int, error) {
	prompt := fmt.Sprintf("Estimate the calories in: %s", description)
	if size != "" {
		prompt = fmt.Sprintf("Estimate the calories in %s of: %s", size, description)
	}
	prompt += "\nRespond with a single integer (kcal) and nothing else."
	return g.ask(ctx, prompt)
}

func (g *Gemini) ExerciseCalories(ctx context.Context, description string, minutes float64) (int, error) {
	prompt := fmt.Sprintf(
		"Estimate the calories burned by an average adult doing %.0f minutes of: %s\nRespond with a single integer (kcal) and nothing else.",
		minutes, description)
	return g.ask(ctx, prompt)
}

func (g *Gemini) ask(ctx context.Context, prompt string) (int, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return 0, fmt.Errorf("estimation request: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return 0, fmt.Errorf("empty estimation response")
	}
	return parseCalorieReply(resp.Candidates[0].Content.Parts[0].Text)
}

var integerPattern = regexp.MustCompile(`-?\d+`)

// parseCalorieReply extracts the first integer from the model's reply.
// Replies without a usable non-negative integer count as estimation
// failures, pushing the caller onto its fallback constant.
func parseCalorieReply(reply string) (int, error) {
	match := integerPattern.FindString(strings.TrimSpace(reply))
	if match == "" {
		return 0, fmt.Errorf("no integer in estimation reply %q", reply)
	}
	v, err := strconv.Atoi(match)
	if err != nil {
		return 0, fmt.Errorf("parse estimation reply %q: %w", reply, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative calorie estimate %d", v)
	}
	return v, nil
}
