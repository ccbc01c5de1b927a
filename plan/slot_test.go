package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"goalify"
)

func at(hour int) time.Time {
	return time.Date(2025, 6, 15, hour, 30, 0, 0, time.UTC)
}

func TestSlotForLogging(t *testing.T) {
	tests := []struct {
		hour int
		want goalify.MealType
	}{
		{0, goalify.Breakfast},
		{6, goalify.Breakfast},
		{10, goalify.Breakfast},
		{11, goalify.Lunch},
		{14, goalify.Lunch},
		{15, goalify.Dinner},
		{18, goalify.Dinner},
		{20, goalify.Dinner},
		{21, goalify.Snack},
		{23, goalify.Snack},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SlotForLogging(at(tt.hour)), "hour %d", tt.hour)
	}
}

func TestSlotForDisplay(t *testing.T) {
	tests := []struct {
		hour int
		want goalify.MealType
	}{
		{0, goalify.Breakfast},
		{9, goalify.Breakfast},
		{10, goalify.Lunch},
		{13, goalify.Lunch},
		{14, goalify.Snack},
		{16, goalify.Snack},
		{17, goalify.Dinner},
		{23, goalify.Dinner},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SlotForDisplay(at(tt.hour)), "hour %d", tt.hour)
	}
}

// The two tables intentionally disagree in the mid-afternoon: a food logged
// at 15:00 counts as Dinner, while the next meal to show is still the Snack.
func TestSlotTablesDiverge(t *testing.T) {
	assert.Equal(t, goalify.Dinner, SlotForLogging(at(15)))
	assert.Equal(t, goalify.Snack, SlotForDisplay(at(15)))
}

func TestNextMeal(t *testing.T) {
	meals := goalify.DefaultDayPlan()

	m, ok := NextMeal(meals, at(8))
	assert.True(t, ok)
	assert.Equal(t, goalify.Breakfast, m.Type)

	m, ok = NextMeal(meals, at(19))
	assert.True(t, ok)
	assert.Equal(t, goalify.Dinner, m.Type)

	_, ok = NextMeal([]goalify.Meal{{Type: goalify.Breakfast}}, at(19))
	assert.False(t, ok)
}
