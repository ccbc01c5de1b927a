package goalify

// DefaultDayPlan returns the built-in starter plan shown before the first
// AI-generated plan lands. Offset 0 is seeded with this at startup.
func DefaultDayPlan() []Meal {
	return []Meal{
		{
			ID:          "default-0",
			Type:        Breakfast,
			Name:        "Masala Omelette & Toast",
			Calories:    450,
			Protein:     25,
			Carbs:       35,
			Fat:         22,
			Fiber:       6,
			PrepTime:    "20min",
			Difficulty:  "Easy",
			Description: "A spicy, protein-packed start to your day. Fluffy eggs whisked with fresh onions, green chilies, and coriander, served with crisp whole wheat toast.",
			Ingredients: []string{"3 Eggs", "1 Onion", "Green Chili", "2 slices Whole Wheat Bread"},
		},
		{
			ID:          "default-1",
			Type:        Lunch,
			Name:        "Chicken Biryani Bowl",
			Calories:    700,
			Protein:     40,
			Carbs:       68,
			Fat:         30,
			Fiber:       10,
			PrepTime:    "45min",
			Difficulty:  "Medium",
			Description: "Portion controlled biryani with extra chicken piece. A flavorful and protein-rich dish prepared with fresh ingredients.",
			Ingredients: []string{"150g Chicken Breast", "1 Cup Basmati Rice", "Yogurt Raita", "Spices"},
		},
		{
			ID:          "default-2",
			Type:        Snack,
			Name:        "Greek Yogurt & Berries",
			Calories:    200,
			Protein:     15,
			Carbs:       25,
			Fat:         4,
			Fiber:       5,
			PrepTime:    "5min",
			Difficulty:  "Easy",
			Description: "Quick protein fix. Creamy greek yogurt topped with antioxidant-rich mixed berries and a drizzle of honey.",
			Ingredients: []string{"1 Cup Greek Yogurt", "Handful Berries"},
		},
		{
			ID:          "default-3",
			Type:        Dinner,
			Name:        "Grilled Beef Burger",
			Calories:    600,
			Protein:     35,
			Carbs:       30,
			Fat:         35,
			Fiber:       4,
			PrepTime:    "25min",
			Difficulty:  "Medium",
			Description: "Homemade patty, minimal bun. Juicy lean beef patty seasoned to perfection, served open-faced with fresh lettuce and tomato.",
			Ingredients: []string{"150g Lean Beef", "Lettuce wrap or half bun", "Cheese slice"},
		},
	}
}
