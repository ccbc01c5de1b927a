// Package bedrock implements the plan generation surface on Amazon Bedrock's
// Converse API, for deployments without Gemini access.
package bedrock

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"goalify"
	"goalify/planner"
)

const (
	// defaultModelID is an inference profile ID, not the foundation model's ID.
	// See https://docs.aws.amazon.com/bedrock/latest/userguide/inference-profiles.html.
	defaultModelID = "us.anthropic.claude-3-7-sonnet-20250219-v1:0"

	// 1k tokens covers a 4-meal day plan comfortably.
	defaultMaxTokens = 1024

	// Low temperature and top_p keep outputs more deterministic, which is
	// better for structured JSON output.
	defaultTemperature = 0.2
	defaultTopP        = 0.9
)

type bedrockRuntimeClient interface {
	Converse(context.Context, *bedrockruntime.ConverseInput, ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

type Options struct {
	ModelID     string
	MaxTokens   int32
	Temperature float32
	TopP        float32
}

// Client implements goalify.PlanService.
type Client struct {
	brc    bedrockRuntimeClient
	opts   Options
	tracer trace.Tracer
}

func NewClient(brc bedrockRuntimeClient, opts Options) *Client {
	if opts.ModelID == "" {
		opts.ModelID = defaultModelID
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	if opts.Temperature == 0 {
		opts.Temperature = defaultTemperature
	}
	if opts.TopP == 0 {
		opts.TopP = defaultTopP
	}
	return &Client{
		brc:    brc,
		opts:   opts,
		tracer: otel.Tracer(goalify.TracerNameBedrock),
	}
}

func (c *Client) GeneratePlan(ctx context.Context, profile goalify.UserProfile, dayLabel string) ([]goalify.Meal, error) {
	ctx, span := c.tracer.Start(ctx, "bedrock.GeneratePlan",
		trace.WithAttributes(attribute.String("plan.day_label", dayLabel)))
	defer span.End()

	text, err := c.converse(ctx, dayPlanSystemPrompt, dayPlanTask(profile, dayLabel))
	if err != nil {
		return nil, err
	}

	meals, err := planner.DecodeDayPlan([]byte(text), dayLabel)
	if err != nil {
		slog.Warn("BEDROCK: plan response did not decode, treating as empty", "day_label", dayLabel, "error", err)
		return []goalify.Meal{}, nil
	}

	slog.Info("BEDROCK: plan generated", "day_label", dayLabel, "meals", len(meals))
	return meals, nil
}

func (c *Client) RebalanceDay(ctx context.Context, profile goalify.UserProfile, eatenFood string, eatenCalories, remainingBudget int, futureMeals []goalify.Meal) ([]goalify.Meal, error) {
	ctx, span := c.tracer.Start(ctx, "bedrock.RebalanceDay",
		trace.WithAttributes(
			attribute.String("food.name", eatenFood),
			attribute.Int("budget.remaining", remainingBudget),
		))
	defer span.End()

	text, err := c.converse(ctx, rebalanceSystemPrompt, rebalanceTask(eatenFood, eatenCalories, remainingBudget, futureMeals))
	if err != nil {
		return nil, err
	}

	meals, err := planner.DecodeMeals([]byte(text))
	if err != nil {
		slog.Warn("BEDROCK: rebalance response did not decode, keeping current meals", "error", err)
		return futureMeals, nil
	}

	slog.Info("BEDROCK: day rebalanced", "food", eatenFood, "adjusted", len(meals))
	return meals, nil
}

func (c *Client) converse(ctx context.Context, system, task string) (string, error) {
	in := &bedrockruntime.ConverseInput{
		ModelId: &c.opts.ModelID,
		System: []types.SystemContentBlock{
			&types.SystemContentBlockMemberText{Value: system},
		},
		Messages: []types.Message{
			{
				Role: types.ConversationRoleUser,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{Value: task},
				},
			},
		},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(c.opts.MaxTokens),
			Temperature: aws.Float32(c.opts.Temperature),
			TopP:        aws.Float32(c.opts.TopP),
		},
	}

	out, err := c.brc.Converse(ctx, in)
	if err != nil {
		slog.Error("BEDROCK: converse failed", "model_id", c.opts.ModelID, "error", err)
		return "", fmt.Errorf("bedrock converse failed: %w", err)
	}

	slog.Info("BEDROCK: converse succeeded",
		"stop_reason", out.StopReason,
		"input_tokens", aws.ToInt32(out.Usage.InputTokens),
		"output_tokens", aws.ToInt32(out.Usage.OutputTokens),
	)

	switch out.StopReason {
	case types.StopReasonMaxTokens:
		return "", fmt.Errorf("model hit MaxTokens limit; consider increasing MaxTokens")
	case types.StopReasonContentFiltered:
		return "", fmt.Errorf("model response blocked by Bedrock safety filters")
	}

	return textFromOutput(out)
}

// textFromOutput extracts the assistant text from a Converse output,
// preferring a block that looks like JSON when the model mixed prose in.
func textFromOutput(out *bedrockruntime.ConverseOutput) (string, error) {
	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return "", fmt.Errorf("unexpected converse output type %T", out.Output)
	}

	var fallback string
	for _, block := range msg.Value.Content {
		text, ok := block.(*types.ContentBlockMemberText)
		if !ok {
			continue
		}
		trimmed := strings.TrimSpace(text.Value)
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			return trimmed, nil
		}
		if fallback == "" {
			fallback = trimmed
		}
	}
	if fallback == "" {
		return "", fmt.Errorf("no text content in converse output")
	}
	return fallback, nil
}
