package plan

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goalify"
)

type fakePlanner struct {
	mu sync.Mutex

	genMeals map[string][]goalify.Meal
	genErr   error
	genCalls []string

	rebalanceMeals  []goalify.Meal
	rebalanceErr    error
	rebalanceCalls  int
	gotEatenFood    string
	gotEatenCals    int
	gotBudget       int
	gotFuture       []goalify.Meal
	blockRebalance  chan struct{}
	rebalanceDoneCh chan struct{}
}

func (f *fakePlanner) GeneratePlan(ctx context.Context, profile goalify.UserProfile, dayLabel string) ([]goalify.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.genCalls = append(f.genCalls, dayLabel)
	if f.genErr != nil {
		return nil, f.genErr
	}
	return f.genMeals[dayLabel], nil
}

func (f *fakePlanner) RebalanceDay(ctx context.Context, profile goalify.UserProfile, eatenFood string, eatenCalories, remainingBudget int, futureMeals []goalify.Meal) ([]goalify.Meal, error) {
	if f.blockRebalance != nil {
		<-f.blockRebalance
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rebalanceCalls++
	f.gotEatenFood = eatenFood
	f.gotEatenCals = eatenCalories
	f.gotBudget = remainingBudget
	f.gotFuture = futureMeals
	if f.rebalanceDoneCh != nil {
		close(f.rebalanceDoneCh)
	}
	return f.rebalanceMeals, f.rebalanceErr
}

func (f *fakePlanner) labels() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.genCalls))
	copy(out, f.genCalls)
	return out
}

type fakeJournal struct {
	mu      sync.Mutex
	entries []FoodLogEntry
}

func (j *fakeJournal) RecordFoodLog(ctx context.Context, entry FoodLogEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
	return nil
}

func testProfile() goalify.UserProfile {
	return goalify.UserProfile{
		Name:          "Asha",
		Age:           30,
		DailyCalories: 2000,
		DailyProtein:  150,
	}
}

func fixedClock(hour int) func() time.Time {
	return func() time.Time {
		return time.Date(2025, 6, 15, hour, 30, 0, 0, time.UTC)
	}
}

func genPlan(prefix string) []goalify.Meal {
	return []goalify.Meal{
		{ID: prefix + "-0", Type: goalify.Breakfast, Name: prefix + " Breakfast", Calories: 400, Protein: 25},
		{ID: prefix + "-1", Type: goalify.Lunch, Name: prefix + " Lunch", Calories: 650, Protein: 40},
		{ID: prefix + "-2", Type: goalify.Snack, Name: prefix + " Snack", Calories: 250, Protein: 15},
		{ID: prefix + "-3", Type: goalify.Dinner, Name: prefix + " Dinner", Calories: 700, Protein: 45},
	}
}

func TestOnProfileReadyInstallsTodayAndPrefetchesTomorrow(t *testing.T) {
	planner := &fakePlanner{genMeals: map[string][]goalify.Meal{
		"Today":                     genPlan("today"),
		"Tomorrow (ensure variety)": genPlan("tomorrow"),
	}}
	r := NewReconciler(planner, nil, nil, nil)

	r.OnProfileReady(context.Background(), testProfile())
	r.Wait()

	today, ok := r.Plan(0)
	require.True(t, ok)
	assert.Equal(t, "today Breakfast", today[0].Name)

	tomorrow, ok := r.Plan(1)
	require.True(t, ok)
	assert.Equal(t, "tomorrow Breakfast", tomorrow[0].Name)

	assert.Equal(t, []string{"Today", "Tomorrow (ensure variety)"}, planner.labels())
	assert.False(t, r.Generating())
}

func TestOnProfileReadyFailureKeepsStarterPlan(t *testing.T) {
	planner := &fakePlanner{genErr: assert.AnError}
	r := NewReconciler(planner, nil, nil, nil)

	r.OnProfileReady(context.Background(), testProfile())
	r.Wait()

	today, ok := r.Plan(0)
	require.True(t, ok)
	assert.Equal(t, goalify.DefaultDayPlan(), today)

	_, ok = r.Plan(1)
	assert.False(t, ok)
}

func TestOnProfileReadyEmptyResultIsNoOp(t *testing.T) {
	planner := &fakePlanner{genMeals: map[string][]goalify.Meal{}}
	r := NewReconciler(planner, nil, nil, nil)

	r.OnProfileReady(context.Background(), testProfile())
	r.Wait()

	today, ok := r.Plan(0)
	require.True(t, ok)
	assert.Equal(t, goalify.DefaultDayPlan(), today)
}

func TestOnDayNavigated(t *testing.T) {
	planner := &fakePlanner{genMeals: map[string][]goalify.Meal{
		"Tomorrow": genPlan("d1"),
		"Day +3":   genPlan("d3"),
	}}
	r := NewReconciler(planner, nil, nil, nil)

	// Before onboarding: nothing happens.
	r.OnDayNavigated(context.Background(), 2)
	assert.Empty(t, planner.labels())

	r.mu.Lock()
	p := testProfile()
	r.profile = &p
	r.mu.Unlock()

	r.OnDayNavigated(context.Background(), 1)
	r.OnDayNavigated(context.Background(), 3)
	assert.Equal(t, []string{"Tomorrow", "Day +3"}, planner.labels())

	d3, ok := r.Plan(3)
	require.True(t, ok)
	assert.Equal(t, "d3 Lunch", d3[1].Name)

	// Already-present offsets are never regenerated.
	r.OnDayNavigated(context.Background(), 0)
	r.OnDayNavigated(context.Background(), 3)
	assert.Equal(t, []string{"Tomorrow", "Day +3"}, planner.labels())
}

func TestOnFoodLoggedLunchRebalancesFutureSlots(t *testing.T) {
	done := make(chan struct{})
	planner := &fakePlanner{
		rebalanceMeals: []goalify.Meal{
			{ID: "adj-snack", Type: goalify.Snack, Name: "Light Snack", Calories: 100},
			{ID: "adj-dinner", Type: goalify.Dinner, Name: "Light Dinner", Calories: 350},
		},
		rebalanceDoneCh: done,
	}
	journal := &fakeJournal{}
	r := NewReconciler(planner, journal, nil, nil)
	r.now = fixedClock(12) // Lunch by the logging table

	r.mu.Lock()
	p := testProfile()
	r.profile = &p
	r.mu.Unlock()
	r.ledger.Restore(800)

	analysis := goalify.AnalysisResult{
		FoodName:  "Pasta Carbonara",
		Calories:  650,
		Protein:   22,
		Carbs:     70,
		Fat:       28,
		Reasoning: "Creamy pasta with bacon, estimated from portion size",
	}
	r.OnFoodLogged(context.Background(), analysis)

	// Optimistic edit is visible immediately, before the rebalance settles.
	today, ok := r.Plan(0)
	require.True(t, ok)
	lunch := today[1]
	assert.Equal(t, goalify.Lunch, lunch.Type)
	assert.Equal(t, "Pasta Carbonara", lunch.Name)
	assert.Equal(t, 650, lunch.Calories)
	assert.Equal(t, 22, lunch.Protein)
	assert.Equal(t, 70, lunch.Carbs)
	assert.Equal(t, 28, lunch.Fat)
	assert.Equal(t, "Logged via AI Vision: Creamy pasta with bacon, estimated from portion size. This meal replaced your scheduled Chicken Biryani Bowl.", lunch.Description)
	assert.Equal(t, []string{"Pasta Carbonara"}, lunch.Ingredients)

	assert.Equal(t, 1450, r.ConsumedCalories())
	assert.Equal(t, 550, r.RemainingBudget())

	<-done
	r.Wait()

	planner.mu.Lock()
	assert.Equal(t, 1, planner.rebalanceCalls)
	assert.Equal(t, "Pasta Carbonara", planner.gotEatenFood)
	assert.Equal(t, 650, planner.gotEatenCals)
	assert.Equal(t, 550, planner.gotBudget)
	require.Len(t, planner.gotFuture, 2)
	assert.Equal(t, goalify.Snack, planner.gotFuture[0].Type)
	assert.Equal(t, goalify.Dinner, planner.gotFuture[1].Type)
	planner.mu.Unlock()

	// Merge-back by type, plan order preserved.
	today, _ = r.Plan(0)
	assert.Equal(t, "Light Snack", today[2].Name)
	assert.Equal(t, "Light Dinner", today[3].Name)
	assert.Equal(t, "Pasta Carbonara", today[1].Name)

	journal.mu.Lock()
	require.Len(t, journal.entries, 1)
	assert.Equal(t, goalify.Lunch, journal.entries[0].Slot)
	assert.Equal(t, "Pasta Carbonara", journal.entries[0].FoodName)
	journal.mu.Unlock()
}

func TestOnFoodLoggedDinnerSkipsRebalance(t *testing.T) {
	planner := &fakePlanner{}
	r := NewReconciler(planner, nil, nil, nil)
	r.now = fixedClock(18) // Dinner by the logging table

	r.mu.Lock()
	p := testProfile()
	r.profile = &p
	r.mu.Unlock()

	r.OnFoodLogged(context.Background(), goalify.AnalysisResult{FoodName: "Burger", Calories: 800, Reasoning: "Visual Estimate"})
	r.Wait()

	planner.mu.Lock()
	assert.Equal(t, 0, planner.rebalanceCalls)
	planner.mu.Unlock()

	today, _ := r.Plan(0)
	assert.Equal(t, "Burger", today[3].Name)
	assert.Equal(t, 800, r.ConsumedCalories())
}

func TestOnFoodLoggedRebalanceFailureKeepsOptimisticEdit(t *testing.T) {
	planner := &fakePlanner{rebalanceErr: assert.AnError}
	r := NewReconciler(planner, nil, nil, nil)
	r.now = fixedClock(12)

	r.mu.Lock()
	p := testProfile()
	r.profile = &p
	r.mu.Unlock()

	r.OnFoodLogged(context.Background(), goalify.AnalysisResult{FoodName: "Pizza", Calories: 900, Reasoning: "Visual Estimate"})
	r.Wait()

	today, _ := r.Plan(0)
	assert.Equal(t, "Pizza", today[1].Name)
	// Future meals untouched by the failed rebalance.
	assert.Equal(t, "Greek Yogurt & Berries", today[2].Name)
	assert.Equal(t, "Grilled Beef Burger", today[3].Name)
	assert.False(t, r.Generating())
}

func TestGeneratingFlagDuringRebalance(t *testing.T) {
	block := make(chan struct{})
	planner := &fakePlanner{blockRebalance: block}
	r := NewReconciler(planner, nil, nil, nil)
	r.now = fixedClock(8)

	r.mu.Lock()
	p := testProfile()
	r.profile = &p
	r.mu.Unlock()

	r.OnFoodLogged(context.Background(), goalify.AnalysisResult{FoodName: "Toast", Calories: 300, Reasoning: "Visual Estimate"})
	assert.True(t, r.Generating())

	close(block)
	r.Wait()
	assert.False(t, r.Generating())
}

func TestOnFoodLoggedWithoutProfileIsDropped(t *testing.T) {
	planner := &fakePlanner{}
	r := NewReconciler(planner, nil, nil, nil)

	r.OnFoodLogged(context.Background(), goalify.AnalysisResult{FoodName: "Chips", Calories: 500})
	r.Wait()

	assert.Equal(t, 0, r.ConsumedCalories())
	today, _ := r.Plan(0)
	assert.Equal(t, goalify.DefaultDayPlan(), today)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	planner := &fakePlanner{genMeals: map[string][]goalify.Meal{"Today": genPlan("today")}}
	r := NewReconciler(planner, nil, nil, nil)
	r.OnProfileReady(context.Background(), testProfile())
	r.Wait()
	r.ledger.Restore(1200)

	snap := r.Snapshot()
	assert.Equal(t, 1200, snap.ConsumedCalories)

	r2 := NewReconciler(&fakePlanner{}, nil, nil, nil)
	r2.Restore(snap)

	today, ok := r2.Plan(0)
	require.True(t, ok)
	assert.Equal(t, "today Breakfast", today[0].Name)
	assert.Equal(t, 1200, r2.ConsumedCalories())
}

func TestLogWorkout(t *testing.T) {
	r := NewReconciler(&fakePlanner{}, nil, nil, nil)
	r.now = fixedClock(9)

	r.LogWorkout(goalify.WorkoutLog{ExerciseName: "Jumping Jacks", DurationSeconds: 120, CaloriesBurned: 20})

	logs := r.Workouts()
	require.Len(t, logs, 1)
	assert.NotEmpty(t, logs[0].ID)
	assert.Equal(t, r.now().Unix(), logs[0].Timestamp)
}
