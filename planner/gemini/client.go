// Package gemini implements the plan generation, rebalancing, and food-image
// vision surface on the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"goalify"
	"goalify/planner"
)

const defaultModel = "gemini-2.5-flash"

// Client implements goalify.PlanService and goalify.VisionAnalyzer.
type Client struct {
	genai  *genai.Client
	model  string
	tracer trace.Tracer
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{
		genai:  client,
		model:  model,
		tracer: otel.Tracer(goalify.TracerNameGemini),
	}, nil
}

// GeneratePlan condenses the profile into a health summary, then asks for a
// schema-constrained 1-day plan. A response the model produced but that does
// not decode is reported as an empty plan, not an error; errors are reserved
// for the transport.
func (c *Client) GeneratePlan(ctx context.Context, profile goalify.UserProfile, dayLabel string) ([]goalify.Meal, error) {
	ctx, span := c.tracer.Start(ctx, "gemini.GeneratePlan",
		trace.WithAttributes(attribute.String("plan.day_label", dayLabel)))
	defer span.End()

	summary := c.profileSummary(ctx, profile)

	resp, err := c.genai.Models.GenerateContent(ctx, c.model,
		genai.Text(dayPlanPrompt(profile, summary, dayLabel)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   dayPlanSchema(),
		})
	if err != nil {
		return nil, fmt.Errorf("plan generation failed: %w", err)
	}

	meals, err := planner.DecodeDayPlan([]byte(resp.Text()), dayLabel)
	if err != nil {
		slog.Warn("GEMINI: plan response did not decode, treating as empty", "day_label", dayLabel, "error", err)
		return []goalify.Meal{}, nil
	}

	slog.Info("GEMINI: plan generated", "day_label", dayLabel, "meals", len(meals))
	return meals, nil
}

// profileSummary is best-effort context for the planner prompt.
func (c *Client) profileSummary(ctx context.Context, profile goalify.UserProfile) string {
	resp, err := c.genai.Models.GenerateContent(ctx, c.model,
		genai.Text(profileSummaryPrompt(profile)), nil)
	if err != nil {
		slog.Warn("GEMINI: profile summary failed, using placeholder", "error", err)
		return "User profile summary unavailable."
	}
	return resp.Text()
}

// RebalanceDay rewrites the not-yet-eaten meals to fit the new budget. A
// response that does not decode returns the input meals unchanged, so the
// caller's merge-back is a no-op rather than a corruption.
func (c *Client) RebalanceDay(ctx context.Context, profile goalify.UserProfile, eatenFood string, eatenCalories, remainingBudget int, futureMeals []goalify.Meal) ([]goalify.Meal, error) {
	ctx, span := c.tracer.Start(ctx, "gemini.RebalanceDay",
		trace.WithAttributes(
			attribute.String("food.name", eatenFood),
			attribute.Int("budget.remaining", remainingBudget),
		))
	defer span.End()

	resp, err := c.genai.Models.GenerateContent(ctx, c.model,
		genai.Text(rebalancePrompt(eatenFood, eatenCalories, remainingBudget, futureMeals)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   rebalanceSchema(),
		})
	if err != nil {
		return nil, fmt.Errorf("rebalance failed: %w", err)
	}

	meals, err := planner.DecodeMeals([]byte(resp.Text()))
	if err != nil {
		slog.Warn("GEMINI: rebalance response did not decode, keeping current meals", "error", err)
		return futureMeals, nil
	}

	slog.Info("GEMINI: day rebalanced", "food", eatenFood, "adjusted", len(meals))
	return meals, nil
}

// AnalyzeFoodImage estimates the macros of a photographed food item.
func (c *Client) AnalyzeFoodImage(ctx context.Context, image []byte) (goalify.AnalysisResult, error) {
	ctx, span := c.tracer.Start(ctx, "gemini.AnalyzeFoodImage")
	defer span.End()

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, "image/jpeg"),
			genai.NewPartFromText(visionPrompt),
		}, genai.RoleUser),
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents,
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   analysisSchema(),
		})
	if err != nil {
		return goalify.AnalysisResult{}, fmt.Errorf("food image analysis failed: %w", err)
	}

	analysis, err := planner.DecodeAnalysis([]byte(resp.Text()))
	if err != nil {
		return goalify.AnalysisResult{}, err
	}

	slog.Info("GEMINI: food image analyzed", "food", analysis.FoodName, "calories", analysis.Calories)
	return analysis, nil
}
