package plan

import (
	"sync"

	"goalify"
)

// Store holds the day plans keyed by offset from today. All access is
// serialized by a single mutex so overlapping writes from background
// rebalances and generations observe each other in full.
type Store struct {
	mu    sync.RWMutex
	plans map[int][]goalify.Meal
}

func NewStore() *Store {
	return &Store{plans: make(map[int][]goalify.Meal)}
}

// Plan returns a copy of the meals for the given offset. The second return
// reports whether a plan exists for that day at all.
func (s *Store) Plan(offset int) ([]goalify.Meal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meals, ok := s.plans[offset]
	if !ok {
		return nil, false
	}
	return copyMeals(meals), true
}

// SetPlan replaces the whole plan for an offset.
func (s *Store) SetPlan(offset int, meals []goalify.Meal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[offset] = copyMeals(meals)
}

// ReplaceMealsByType merges adjusted meals back into the plan at the given
// offset. Each meal in the plan whose type matches an incoming meal is
// swapped for it; slots the incoming set does not cover are left untouched,
// and plan order is preserved. Replacement is keyed by type, not ID, so an
// adjusted meal lands in its slot even when the generator minted new IDs.
func (s *Store) ReplaceMealsByType(offset int, adjusted []goalify.Meal) {
	if len(adjusted) == 0 {
		return
	}

	byType := make(map[goalify.MealType]goalify.Meal, len(adjusted))
	for _, m := range adjusted {
		byType[m.Type] = m
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meals := s.plans[offset]
	for i, m := range meals {
		if repl, ok := byType[m.Type]; ok {
			meals[i] = repl
		}
	}
}

// Export returns a deep copy of every stored plan, for snapshotting.
func (s *Store) Export() map[int][]goalify.Meal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int][]goalify.Meal, len(s.plans))
	for offset, meals := range s.plans {
		out[offset] = copyMeals(meals)
	}
	return out
}

// Import replaces the store's contents wholesale, for snapshot restore.
func (s *Store) Import(plans map[int][]goalify.Meal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.plans = make(map[int][]goalify.Meal, len(plans))
	for offset, meals := range plans {
		s.plans[offset] = copyMeals(meals)
	}
}

func copyMeals(meals []goalify.Meal) []goalify.Meal {
	out := make([]goalify.Meal, len(meals))
	copy(out, meals)
	for i := range out {
		if out[i].Ingredients != nil {
			ing := make([]string, len(out[i].Ingredients))
			copy(ing, out[i].Ingredients)
			out[i].Ingredients = ing
		}
	}
	return out
}
