package plan

import (
	"time"

	"goalify"
)

// slotOrder is the fixed sequence used to decide which meals are still ahead
// in the day. Snack sits between Lunch and Dinner.
var slotOrder = []goalify.MealType{goalify.Breakfast, goalify.Lunch, goalify.Snack, goalify.Dinner}

// SlotForLogging classifies a wall-clock time into the slot an ad-hoc food
// log replaces. Boundaries are left-inclusive: hours [0,11) map to Breakfast,
// [11,15) to Lunch, [15,21) to Dinner, and the remainder of the night to Snack.
func SlotForLogging(t time.Time) goalify.MealType {
	switch h := t.Hour(); {
	case h < 11:
		return goalify.Breakfast
	case h < 15:
		return goalify.Lunch
	case h < 21:
		return goalify.Dinner
	default:
		return goalify.Snack
	}
}

// SlotForDisplay classifies a wall-clock time into the slot of the next meal
// to surface to the user. This table deliberately differs from
// SlotForLogging; the two were never unified upstream and callers must pick
// the one matching their use.
func SlotForDisplay(t time.Time) goalify.MealType {
	switch h := t.Hour(); {
	case h < 10:
		return goalify.Breakfast
	case h < 14:
		return goalify.Lunch
	case h < 17:
		return goalify.Snack
	default:
		return goalify.Dinner
	}
}

// NextMeal returns the meal in the given plan matching the display slot for
// the current time, if one exists.
func NextMeal(meals []goalify.Meal, now time.Time) (goalify.Meal, bool) {
	slot := SlotForDisplay(now)
	for _, m := range meals {
		if m.Type == slot {
			return m, true
		}
	}
	return goalify.Meal{}, false
}

// slotOrdinal returns the position of a slot in slotOrder, or -1 for an
// unknown type.
func slotOrdinal(t goalify.MealType) int {
	for i, s := range slotOrder {
		if s == t {
			return i
		}
	}
	return -1
}
