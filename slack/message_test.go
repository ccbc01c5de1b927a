package slack_test

import (
	"testing"

	should "github.com/stretchr/testify/assert"

	"goalify"
	"goalify/slack"
)

func TestPlanSummary(t *testing.T) {
	meals := []goalify.Meal{
		{Type: goalify.Breakfast, Name: "Poha", Calories: 380, Protein: 12},
		{Type: goalify.Dinner, Name: "Tandoori Chicken", Calories: 520, Protein: 48},
	}

	got := slack.PlanSummary("Today", meals)
	should.Contains(t, got, "*Today's plan is ready* (900 kcal, 60g protein)")
	should.Contains(t, got, "• Breakfast: Poha — 380 kcal, 12g protein")
	should.Contains(t, got, "• Dinner: Tandoori Chicken — 520 kcal, 48g protein")
}

func TestRebalanceSummary(t *testing.T) {
	adjusted := []goalify.Meal{
		{Type: goalify.Dinner, Name: "Grilled Fish & Greens", Calories: 380},
	}

	got := slack.RebalanceSummary("Samosa", 450, 430, adjusted)
	should.Contains(t, got, "*Logged:* Samosa (450 kcal). 430 kcal left today.")
	should.Contains(t, got, "• Dinner: Grilled Fish & Greens — 380 kcal")

	empty := slack.RebalanceSummary("Midnight Snack", 300, 0, nil)
	should.Contains(t, empty, "No meals left to adjust.")
}
