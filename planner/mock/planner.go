// Package mock provides a deterministic PlanService for tests and offline
// demo runs. No network calls; plans are derived arithmetically from the
// profile targets.
package mock

import (
	"context"
	"fmt"
	"log/slog"

	"goalify"
)

// Planner implements goalify.PlanService and goalify.VisionAnalyzer with
// canned, budget-respecting output.
type Planner struct {
	// GenerateErr and RebalanceErr force the corresponding call to fail,
	// for exercising failure paths.
	GenerateErr  error
	RebalanceErr error
}

func NewPlanner() *Planner {
	return &Planner{}
}

// GeneratePlan scales the built-in starter plan to the profile's daily
// calorie target.
func (p *Planner) GeneratePlan(ctx context.Context, profile goalify.UserProfile, dayLabel string) ([]goalify.Meal, error) {
	if p.GenerateErr != nil {
		return nil, p.GenerateErr
	}

	base := goalify.DefaultDayPlan()
	baseTotal := 0
	for _, m := range base {
		baseTotal += m.Calories
	}

	target := profile.DailyCalories
	if target <= 0 || baseTotal == 0 {
		target = baseTotal
	}

	for i := range base {
		base[i].ID = fmt.Sprintf("%s-%d", dayLabel, i)
		base[i].Calories = base[i].Calories * target / baseTotal
		base[i].Description = fmt.Sprintf("%s, portioned for your %s plan.", base[i].Name, dayLabel)
	}

	slog.Info("MOCK: plan generated", "day_label", dayLabel, "target", target)
	return base, nil
}

// RebalanceDay distributes the remaining budget across the future meals in
// proportion to their current calories, never below zero.
func (p *Planner) RebalanceDay(ctx context.Context, profile goalify.UserProfile, eatenFood string, eatenCalories, remainingBudget int, futureMeals []goalify.Meal) ([]goalify.Meal, error) {
	if p.RebalanceErr != nil {
		return nil, p.RebalanceErr
	}

	budget := remainingBudget
	if budget < 0 {
		budget = 0
	}

	currentTotal := 0
	for _, m := range futureMeals {
		currentTotal += m.Calories
	}

	out := make([]goalify.Meal, len(futureMeals))
	copy(out, futureMeals)
	for i := range out {
		if currentTotal > 0 {
			out[i].Calories = out[i].Calories * budget / currentTotal
		} else {
			out[i].Calories = 0
		}
		out[i].Description = fmt.Sprintf("Lightened after %s.", eatenFood)
	}

	slog.Info("MOCK: day rebalanced", "food", eatenFood, "budget", budget, "meals", len(out))
	return out, nil
}

// AnalyzeFoodImage returns a fixed estimate regardless of the image.
func (p *Planner) AnalyzeFoodImage(ctx context.Context, image []byte) (goalify.AnalysisResult, error) {
	return goalify.AnalysisResult{
		FoodName:  "Unknown Food",
		Calories:  500,
		Protein:   20,
		Carbs:     50,
		Fat:       20,
		Reasoning: "Visual Estimate",
	}, nil
}
