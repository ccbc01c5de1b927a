package slack

import (
	"fmt"
	"strings"

	"goalify"
)

// PlanSummary formats an installed day plan for a channel post.
func PlanSummary(dayLabel string, meals []goalify.Meal) string {
	var b strings.Builder
	totalCals, totalProtein := 0, 0
	for _, m := range meals {
		totalCals += m.Calories
		totalProtein += m.Protein
	}

	fmt.Fprintf(&b, "*%s's plan is ready* (%d kcal, %dg protein)\n", dayLabel, totalCals, totalProtein)
	for _, m := range meals {
		fmt.Fprintf(&b, "• %s: %s — %d kcal, %dg protein\n", m.Type, m.Name, m.Calories, m.Protein)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RebalanceSummary formats the outcome of a food log and rebalance.
func RebalanceSummary(foodName string, calories, remainingBudget int, adjusted []goalify.Meal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Logged:* %s (%d kcal). %d kcal left today.\n", foodName, calories, remainingBudget)
	if len(adjusted) == 0 {
		b.WriteString("No meals left to adjust.")
		return b.String()
	}
	b.WriteString("Adjusted the rest of your day:\n")
	for _, m := range adjusted {
		fmt.Fprintf(&b, "• %s: %s — %d kcal\n", m.Type, m.Name, m.Calories)
	}
	return strings.TrimRight(b.String(), "\n")
}
