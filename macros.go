package goalify

import "math"

// CalculateMacros derives daily calorie and protein targets from the profile
// using the simplified Mifflin-St Jeor equation with a lightly-active
// multiplier, adjusted for the user's goal.
func CalculateMacros(p UserProfile) MacroTargets {
	bmr := 10*p.WeightKG + 6.25*p.HeightCM - 5*float64(p.Age)
	if p.Gender == Male {
		bmr += 5
	} else {
		bmr -= 161
	}

	tdee := bmr * 1.375

	switch p.Goal {
	case GoalCut:
		return MacroTargets{
			Calories: int(math.Round(tdee - 500)),
			Protein:  int(math.Round(p.WeightKG * 2)),
		}
	case GoalBulk:
		return MacroTargets{
			Calories: int(math.Round(tdee + 300)),
			Protein:  int(math.Round(p.WeightKG * 2.2)),
		}
	default:
		return MacroTargets{
			Calories: int(math.Round(tdee)),
			Protein:  int(math.Round(p.WeightKG * 1.8)),
		}
	}
}
