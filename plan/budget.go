package plan

// RemainingBudget is the signed calorie budget left in the day. Negative
// means over budget; the rebalancer relies on the sign to react to overage.
func RemainingBudget(dailyTarget, consumed int) int {
	return dailyTarget - consumed
}

// DisplayBudget is RemainingBudget clamped to zero for UI surfaces that never
// show a negative number.
func DisplayBudget(dailyTarget, consumed int) int {
	if r := RemainingBudget(dailyTarget, consumed); r > 0 {
		return r
	}
	return 0
}
