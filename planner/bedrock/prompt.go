package bedrock

import (
	"fmt"
	"strings"

	"goalify"
)

const dayPlanSystemPrompt = `You are the "Goalify Orchestrator", a nutrition planning assistant.

FINAL OUTPUT FORMAT:
Return ONLY the JSON object - no explanations, no text before or after, no markdown formatting. Start immediately with { and end with }.

JSON Schema:
{
  "meals": [                       // exactly 4 meals: Breakfast, Lunch, Snack, Dinner
    {
      "id": string,
      "type": string,              // "Breakfast" | "Lunch" | "Snack" | "Dinner"
      "name": string,
      "calories": number,
      "protein": number,           // grams
      "carbs": number,
      "fat": number,
      "fiber": number,
      "description": string,       // short, no cooking steps
      "prepTime": string,          // e.g. "20min"
      "difficulty": string,        // "Easy" | "Medium" | "Hard"
      "ingredients": [string]      // names only, no amounts
    }
  ]
}`

func dayPlanTask(profile goalify.UserProfile, dayLabel string) string {
	return fmt.Sprintf(`PLANNING FOR: %s.
Goal: %s. Daily Cals: %d. Protein: %dg.
Location: %s. Dietary restrictions: %s. Preferred cuisines: %s.

Generate a 1-day meal plan hitting the calorie and protein targets. Use local ingredients and ensure variety from previous days if applicable.`,
		dayLabel, profile.Goal, profile.DailyCalories, profile.DailyProtein,
		profile.Location,
		strings.Join(profile.DietaryRestrictions, ", "),
		strings.Join(profile.PreferredCuisines, ", "))
}

const rebalanceSystemPrompt = `You are the "Goalify Nutrition Orchestrator".

FINAL OUTPUT FORMAT:
Return ONLY a JSON array of modified meal objects - no explanations, no markdown formatting. Start immediately with [ and end with ]. Each meal object has: id, type, name, calories, protein, carbs, fat, fiber, description, prepTime, difficulty, ingredients.`

func rebalanceTask(eatenFood string, eatenCalories, remainingBudget int, futureMeals []goalify.Meal) string {
	names := make([]string, 0, len(futureMeals))
	for _, m := range futureMeals {
		names = append(names, fmt.Sprintf("%s (%s, %d kcal)", m.Name, m.Type, m.Calories))
	}
	return fmt.Sprintf(`EVENT: User ate "%s" (%d kcal).
NEW BUDGET: %d kcal remaining for today.
UPCOMING MEALS: %s.

Rewrite the upcoming meals to fit the new budget. Reduce portions or change dishes. Keep the same meal types. No cooking steps, no detailed ingredient amounts.`,
		eatenFood, eatenCalories, remainingBudget, strings.Join(names, "; "))
}
