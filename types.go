package goalify

import (
	"context"
)

// MealType is one of the four canonical meal slots in a day plan.
type MealType string

const (
	Breakfast MealType = "Breakfast"
	Lunch     MealType = "Lunch"
	Snack     MealType = "Snack"
	Dinner    MealType = "Dinner"
)

type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
	Other  Gender = "Other"
)

type Goal string

const (
	GoalCut      Goal = "Cut (Lose Fat)"
	GoalMaintain Goal = "Maintain"
	GoalBulk     Goal = "Bulk (Build Muscle)"
)

type ActivityLevel string

const (
	Sedentary        ActivityLevel = "Sedentary (Office Job)"
	LightlyActive    ActivityLevel = "Lightly Active (1-3 days/week)"
	ModeratelyActive ActivityLevel = "Moderately Active (3-5 days/week)"
	VeryActive       ActivityLevel = "Very Active (Athlete)"
)

// UserProfile carries the user's physical stats, preferences, and computed
// daily targets. It is treated as immutable for the duration of any single
// reconciliation operation.
type UserProfile struct {
	Name                string        `json:"name"`
	Age                 int           `json:"age"`
	HeightCM            float64       `json:"height_cm"`
	WeightKG            float64       `json:"weight_kg"`
	Gender              Gender        `json:"gender"`
	Goal                Goal          `json:"goal"`
	Location            string        `json:"location"`
	ActivityLevel       ActivityLevel `json:"activity_level"`
	SleepHours          float64       `json:"sleep_hours"`
	StressLevel         string        `json:"stress_level"`
	CookingSkill        string        `json:"cooking_skill"`
	DietaryRestrictions []string      `json:"dietary_restrictions"`
	PreferredCuisines   []string      `json:"preferred_cuisines"`
	ComfortFoods        string        `json:"comfort_foods"`

	// Calculated targets, see CalculateMacros.
	DailyCalories int `json:"daily_calories"`
	DailyProtein  int `json:"daily_protein"`
}

// Meal is a single entry in a day plan. Meals are replaced wholesale, never
// patched field-by-field, except when an ad-hoc food log overwrites a slot.
type Meal struct {
	ID          string   `json:"id"`
	Type        MealType `json:"type"`
	Name        string   `json:"name"`
	Calories    int      `json:"calories"`
	Protein     int      `json:"protein"`
	Carbs       int      `json:"carbs,omitempty"`
	Fat         int      `json:"fat,omitempty"`
	Fiber       int      `json:"fiber,omitempty"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	PrepTime    string   `json:"prep_time,omitempty"`
	Difficulty  string   `json:"difficulty,omitempty"`
}

// AnalysisResult is the output of the food-image vision analysis. It is
// transient: consumed once when folding the logged food into the day plan.
type AnalysisResult struct {
	FoodName  string `json:"foodName"`
	Calories  int    `json:"calories"`
	Protein   int    `json:"protein"`
	Carbs     int    `json:"carbs"`
	Fat       int    `json:"fat"`
	Reasoning string `json:"reasoning"`
}

// MacroTargets are the computed daily calorie and protein goals.
type MacroTargets struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
}

type Exercise struct {
	Name        string `json:"name"`
	Instruction string `json:"instruction"`
	Reps        string `json:"reps"`
}

type WorkoutRound struct {
	Name      string     `json:"name"`
	Exercises []Exercise `json:"exercises"`
}

type WorkoutPlan struct {
	Day         string         `json:"day"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Rounds      []WorkoutRound `json:"rounds"`
	RestDay     bool           `json:"rest_day,omitempty"`
}

type WorkoutLog struct {
	ID              string `json:"id"`
	ExerciseName    string `json:"exercise_name"`
	DurationSeconds int    `json:"duration_seconds"`
	CaloriesBurned  int    `json:"calories_burned"`
	Timestamp       int64  `json:"timestamp"`
}

// PlanGenerator produces a full-day meal plan for the given day label.
// An empty slice is the sentinel for "no plan available" and must not be
// reported as an error; errors are reserved for transport failures.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, profile UserProfile, dayLabel string) ([]Meal, error)
}

// Rebalancer rewrites the not-yet-eaten meals of the day to fit a new
// remaining calorie budget. Returned meals are matched to the input by Type.
type Rebalancer interface {
	RebalanceDay(ctx context.Context, profile UserProfile, eatenFood string, eatenCalories int, remainingBudget int, futureMeals []Meal) ([]Meal, error)
}

// PlanService is the full external AI surface the reconciler depends on.
type PlanService interface {
	PlanGenerator
	Rebalancer
}

// VisionAnalyzer estimates the macros of a photographed food item.
type VisionAnalyzer interface {
	AnalyzeFoodImage(ctx context.Context, image []byte) (AnalysisResult, error)
}

// Notifier posts human-readable updates to an external channel.
type Notifier interface {
	PostMessage(ctx context.Context, channel string, message string) error
}
