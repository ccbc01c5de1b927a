// Package planner holds the wire format shared by the AI plan backends.
// Models are asked for camelCase JSON and tend to return numbers as floats;
// decoding normalizes both into the domain types.
package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"goalify"
)

type wireMeal struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Calories    float64  `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fat         float64  `json:"fat"`
	Fiber       float64  `json:"fiber"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	PrepTime    string   `json:"prepTime"`
	Difficulty  string   `json:"difficulty"`
}

type wireDayPlan struct {
	Meals []wireMeal `json:"meals"`
}

type wireAnalysis struct {
	FoodName  string  `json:"foodName"`
	Calories  float64 `json:"calories"`
	Protein   float64 `json:"protein"`
	Carbs     float64 `json:"carbs"`
	Fat       float64 `json:"fat"`
	Reasoning string  `json:"reasoning"`
}

func (w wireMeal) toMeal(id string) goalify.Meal {
	if w.ID != "" && id == "" {
		id = w.ID
	}
	ingredients := w.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	return goalify.Meal{
		ID:          id,
		Type:        goalify.MealType(w.Type),
		Name:        w.Name,
		Calories:    int(w.Calories),
		Protein:     int(w.Protein),
		Carbs:       int(w.Carbs),
		Fat:         int(w.Fat),
		Fiber:       int(w.Fiber),
		Description: w.Description,
		Ingredients: ingredients,
		PrepTime:    w.PrepTime,
		Difficulty:  w.Difficulty,
	}
}

// DecodeDayPlan parses a generated day plan object ({"meals": [...]}) and
// stamps deterministic per-day meal IDs derived from the day label.
func DecodeDayPlan(data []byte, dayLabel string) ([]goalify.Meal, error) {
	var wire wireDayPlan
	if err := json.Unmarshal(StripFences(data), &wire); err != nil {
		return nil, fmt.Errorf("failed to decode day plan: %w", err)
	}

	meals := make([]goalify.Meal, 0, len(wire.Meals))
	for i, w := range wire.Meals {
		meals = append(meals, w.toMeal(fmt.Sprintf("%s-%d", dayLabel, i)))
	}
	return meals, nil
}

// DecodeMeals parses a rebalance response, a bare JSON array of meals. IDs
// are kept as returned; merge-back matches by type, not ID.
func DecodeMeals(data []byte) ([]goalify.Meal, error) {
	var wire []wireMeal
	if err := json.Unmarshal(StripFences(data), &wire); err != nil {
		return nil, fmt.Errorf("failed to decode meals: %w", err)
	}

	meals := make([]goalify.Meal, 0, len(wire))
	for _, w := range wire {
		meals = append(meals, w.toMeal(""))
	}
	return meals, nil
}

// DecodeAnalysis parses a vision analysis response, substituting the
// documented defaults for anything the model left blank.
func DecodeAnalysis(data []byte) (goalify.AnalysisResult, error) {
	var wire wireAnalysis
	if err := json.Unmarshal(StripFences(data), &wire); err != nil {
		return goalify.AnalysisResult{}, fmt.Errorf("failed to decode analysis: %w", err)
	}

	result := goalify.AnalysisResult{
		FoodName:  wire.FoodName,
		Calories:  int(wire.Calories),
		Protein:   int(wire.Protein),
		Carbs:     int(wire.Carbs),
		Fat:       int(wire.Fat),
		Reasoning: wire.Reasoning,
	}
	if result.FoodName == "" {
		result.FoodName = "Unknown Food"
	}
	if result.Reasoning == "" {
		result.Reasoning = "Visual Estimate"
	}
	return result, nil
}

// StripFences removes a markdown code fence wrapper if the model added one
// despite instructions.
func StripFences(data []byte) []byte {
	s := strings.TrimSpace(string(data))
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return []byte(strings.TrimSpace(s))
}
