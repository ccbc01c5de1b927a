package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"goalify"
)

func profileSummaryPrompt(profile goalify.UserProfile) string {
	raw, _ := json.Marshal(profile)
	return fmt.Sprintf(`Role: Nutrition Coach.
Task: Create a concise "User Health Profile" from this raw data.
Data: %s
Output Format: A dense paragraph summarizing metabolic needs, constraints, local food context (%s), and lifestyle.`,
		string(raw), profile.Location)
}

func dayPlanPrompt(profile goalify.UserProfile, summary, dayLabel string) string {
	return fmt.Sprintf(`SYSTEM ROLE: You are the "Goalify Orchestrator".
USER CONTEXT: %s
PLANNING FOR: %s.
Goal: %s. Daily Cals: %d. Protein: %dg.

TASK: Generate a 1-day Meal Plan (4 meals: Breakfast, Lunch, Snack, Dinner).

CONSTRAINTS:
- Local ingredients for %s.
- High protein, tasty.
- DO NOT include cooking steps.
- DO NOT include detailed ingredient amounts (just list names).
- Ensure variety from previous days if applicable.

OUTPUT: JSON Object with "meals".`,
		summary, dayLabel, profile.Goal, profile.DailyCalories, profile.DailyProtein, profile.Location)
}

func rebalancePrompt(eatenFood string, eatenCalories, remainingBudget int, futureMeals []goalify.Meal) string {
	names := make([]string, 0, len(futureMeals))
	for _, m := range futureMeals {
		names = append(names, m.Name)
	}
	return fmt.Sprintf(`SYSTEM: Goalify Nutrition Orchestrator.
EVENT: User ate "%s" (%d kcal).
NEW BUDGET: %d kcal remaining for today.
UPCOMING MEALS: %s.

TASK: Rewrite UPCOMING meals to fit the new budget.
- Reduce portions or change dishes.
- Keep it simple. NO STEPS. NO DETAILED INGREDIENTS.

OUTPUT: JSON Array of modified Meal objects.`,
		eatenFood, eatenCalories, remainingBudget, strings.Join(names, ", "))
}

const visionPrompt = "Analyze this image. Return JSON with foodName, calories, macros."

func mealSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":          {Type: genai.TypeString},
			"type":        {Type: genai.TypeString},
			"name":        {Type: genai.TypeString},
			"calories":    {Type: genai.TypeNumber},
			"protein":     {Type: genai.TypeNumber},
			"carbs":       {Type: genai.TypeNumber},
			"fat":         {Type: genai.TypeNumber},
			"fiber":       {Type: genai.TypeNumber},
			"description": {Type: genai.TypeString},
			"prepTime":    {Type: genai.TypeString},
			"difficulty":  {Type: genai.TypeString},
			"ingredients": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
	}
}

func dayPlanSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"meals": {Type: genai.TypeArray, Items: mealSchema()},
		},
	}
}

func rebalanceSchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: mealSchema()}
}

func analysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"foodName":  {Type: genai.TypeString},
			"calories":  {Type: genai.TypeNumber},
			"protein":   {Type: genai.TypeNumber},
			"carbs":     {Type: genai.TypeNumber},
			"fat":       {Type: genai.TypeNumber},
			"reasoning": {Type: genai.TypeString},
		},
	}
}
