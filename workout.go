package goalify

// weekDays in plan order; every fourth day becomes active recovery.
var weekDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ExpandWeeklyWorkout replicates a single generated workout day across the
// week, converting every fourth day into a rest day with no rounds.
func ExpandWeeklyWorkout(base WorkoutPlan) []WorkoutPlan {
	week := make([]WorkoutPlan, 0, len(weekDays))
	for i, day := range weekDays {
		w := base
		w.Day = day
		w.RestDay = (i+1)%4 == 0
		if w.RestDay {
			w.Title = "Active Recovery"
			w.Rounds = nil
		}
		week = append(week, w)
	}
	return week
}
