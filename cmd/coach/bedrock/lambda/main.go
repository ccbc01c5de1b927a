package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joeshaw/envdecode"

	"goalify"
	"goalify/plan"
	"goalify/planner/bedrock"
	"goalify/storage"
)

type Params struct {
	Profile  goalify.UserProfile `json:"profile"`
	DayLabel string              `json:"day_label"`
}

type Results struct {
	Meals []goalify.Meal `json:"meals"`
}

func main() {
	fn := func(ctx context.Context, params Params) (Results, error) {
		var modelConfig goalify.ModelConfig
		if err := envdecode.Decode(&modelConfig); err != nil {
			log.Fatalf("SETUP: Failed to decode: %s", err)
		}

		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return Results{}, fmt.Errorf("failed to load AWS config: %w", err)
		}

		_, _, otelShutdown, err := goalify.InitOtel(ctx)
		if err != nil {
			slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
			return Results{}, err
		}
		defer func() {
			if err := otelShutdown(ctx); err != nil {
				slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
			}
		}()

		planClient := bedrock.NewClient(bedrockruntime.NewFromConfig(awsCfg), bedrock.Options{
			ModelID:     modelConfig.ModelID,
			MaxTokens:   modelConfig.MaxTokens,
			Temperature: modelConfig.Temperature,
			TopP:        modelConfig.TopP,
		})

		profile := params.Profile
		if profile.DailyCalories == 0 {
			targets := goalify.CalculateMacros(profile)
			profile.DailyCalories = targets.Calories
			profile.DailyProtein = targets.Protein
		}

		dayLabel := params.DayLabel
		if dayLabel == "" {
			dayLabel = "Today"
		}

		meals, err := planClient.GeneratePlan(ctx, profile, dayLabel)
		if err != nil {
			slog.Error("RESULT: Plan generation failed", "day_label", dayLabel, "error", err)
			return Results{}, err
		}
		slog.Info("RESULT: Plan generated", "day_label", dayLabel, "meals", len(meals))

		// Persist to S3 when a snapshot location is configured.
		bucket := os.Getenv("SNAPSHOT_S3_BUCKET")
		key := os.Getenv("SNAPSHOT_S3_KEY")
		if bucket != "" && key != "" {
			snapState := storage.NewS3SnapshotState(s3.NewFromConfig(awsCfg), bucket, key)
			snap := plan.Snapshot{Plans: map[int][]goalify.Meal{0: meals}}
			if err := storage.SaveSnapshot(ctx, snapState, snap); err != nil {
				slog.Error("RESULT: Failed to save snapshot to S3", "bucket", bucket, "key", key, "error", err)
			}
		}

		return Results{Meals: meals}, nil
	}

	lambda.Start(fn)
}
