package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"

	"goalify"
	"goalify/plan"
	"goalify/planner/gemini"
	"goalify/slack"
	"goalify/storage"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		slog.Debug("SETUP: No .env file loaded", "error", err)
	}

	var cfg goalify.AppConfig
	if err := envdecode.Decode(&cfg); err != nil {
		log.Fatalf("SETUP: Failed to decode config: %s", err)
	}

	_, _, otelShutdown, err := goalify.InitOtel(ctx)
	if err != nil {
		slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
		return
	}
	defer func() {
		if err := otelShutdown(ctx); err != nil {
			slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
		}
	}()

	profile, err := loadProfile(cfg.ProfilePath)
	if err != nil {
		slog.Error("SETUP: Failed to load profile", "path", cfg.ProfilePath, "error", err)
		return
	}
	if profile.DailyCalories == 0 {
		targets := goalify.CalculateMacros(profile)
		profile.DailyCalories = targets.Calories
		profile.DailyProtein = targets.Protein
		slog.Info("SETUP: Computed macro targets", "calories", targets.Calories, "protein", targets.Protein)
	}

	planClient, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		slog.Error("SETUP: Failed to create Gemini client", "error", err)
		return
	}

	journal, err := storage.NewFoodJournal(cfg.JournalPath)
	if err != nil {
		slog.Error("SETUP: Failed to open food journal", "path", cfg.JournalPath, "error", err)
		return
	}
	defer journal.Close()

	events, cleanup, err := newPlanEventLogger(cfg.GeminiModel)
	if err != nil {
		slog.Error("SETUP: Failed to create plan event logger", "error", err)
		return
	}
	defer func() {
		if err := cleanup(); err != nil {
			slog.Error("SETUP: Failed to flush plan event log", "error", err)
		}
	}()

	rec := plan.NewReconciler(planClient, journal, events, slog.Default())

	snapState := storage.NewFileSnapshotState(cfg.SnapshotPath)
	if snap, err := storage.LoadSnapshot(ctx, snapState); err == nil {
		rec.Restore(snap)
		slog.Info("SETUP: Restored snapshot", "plans", len(snap.Plans), "consumed", snap.ConsumedCalories)
	}

	rec.OnProfileReady(ctx, profile)

	// Optional: `coach log "<food name>" <calories>` folds a manual food log
	// into today's plan before exiting.
	if len(os.Args) >= 4 && os.Args[1] == "log" {
		calories, err := strconv.Atoi(os.Args[3])
		if err != nil {
			slog.Error("LOG: Calories must be an integer", "value", os.Args[3])
			return
		}
		rec.OnFoodLogged(ctx, goalify.AnalysisResult{
			FoodName:  os.Args[2],
			Calories:  calories,
			Reasoning: "Manually logged",
		})
	}

	rec.Wait()

	if err := storage.SaveSnapshot(ctx, snapState, rec.Snapshot()); err != nil {
		slog.Error("RESULT: Failed to save snapshot", "error", err)
	}

	today, ok := rec.Plan(0)
	if !ok {
		slog.Error("RESULT: No plan for today")
		return
	}
	slog.Info("RESULT: Today's plan ready", "meals", len(today), "remaining_budget", rec.RemainingBudget())
	goalify.Dump(today)

	if cfg.SlackWebhookURL != "" {
		slackClient := slack.NewClient(cfg.SlackWebhookURL, http.DefaultClient)
		if err := slackClient.PostMessage(ctx, cfg.SlackChannel, slack.PlanSummary("Today", today)); err != nil {
			slog.Error("RESULT: Failed to post plan to Slack", "error", err)
		}
	}
}

func loadProfile(path string) (goalify.UserProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return goalify.UserProfile{}, err
	}
	var profile goalify.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return goalify.UserProfile{}, err
	}
	return profile, nil
}

func newPlanEventLogger(model string) (goalify.PlanEventLogger, func() error, error) {
	path := goalify.NewPlanLogFilePath(model)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	logger := goalify.NewFilePlanEventLogger(f)
	cleanup := func() error {
		if err := logger.Flush(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return logger, cleanup, nil
}
