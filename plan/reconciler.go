package plan

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"goalify"
)

// Journal records confirmed food logs durably, independent of the in-memory
// ledger. A nil Journal is valid and means logs are not persisted.
type Journal interface {
	RecordFoodLog(ctx context.Context, entry FoodLogEntry) error
}

// FoodLogEntry is one confirmed ad-hoc food log.
type FoodLogEntry struct {
	ID        string           `json:"id"`
	FoodName  string           `json:"food_name"`
	Calories  int              `json:"calories"`
	Protein   int              `json:"protein"`
	Carbs     int              `json:"carbs"`
	Fat       int              `json:"fat"`
	Slot      goalify.MealType `json:"slot"`
	Reasoning string           `json:"reasoning"`
	LoggedAt  time.Time        `json:"logged_at"`
}

// Snapshot is the serializable state of a reconciler session.
type Snapshot struct {
	Plans            map[int][]goalify.Meal `json:"plans"`
	ConsumedCalories int                    `json:"consumed_calories"`
	SavedAt          time.Time              `json:"saved_at"`
}

// Reconciler keeps the day plans consistent with what the user actually eats.
// It owns the plan store and the consumed-calories ledger, and delegates all
// plan content decisions to an external PlanService. Entry points never
// return errors; failures are logged and leave state in the documented
// fallback (see OnFoodLogged and OnProfileReady).
type Reconciler struct {
	planner goalify.PlanService
	journal Journal
	events  goalify.PlanEventLogger
	log     *slog.Logger
	tracer  trace.Tracer

	store  *Store
	ledger *Ledger

	mu          sync.Mutex
	profile     *goalify.UserProfile
	workoutLogs []goalify.WorkoutLog

	inflight atomic.Int64
	wg       sync.WaitGroup

	// now is swappable for tests.
	now func() time.Time
}

func NewReconciler(planner goalify.PlanService, journal Journal, events goalify.PlanEventLogger, log *slog.Logger) *Reconciler {
	if events == nil {
		events = goalify.NewNoOpPlanEventLogger()
	}
	if log == nil {
		log = slog.Default()
	}

	r := &Reconciler{
		planner: planner,
		journal: journal,
		events:  events,
		log:     log,
		tracer:  otel.Tracer(goalify.TracerNameReconciler),
		store:   NewStore(),
		ledger:  NewLedger(),
		now:     time.Now,
	}
	r.store.SetPlan(0, goalify.DefaultDayPlan())
	return r
}

// Plan returns the stored plan for a day offset, if one exists.
func (r *Reconciler) Plan(offset int) ([]goalify.Meal, bool) {
	return r.store.Plan(offset)
}

// ConsumedCalories returns today's running total.
func (r *Reconciler) ConsumedCalories() int {
	return r.ledger.Total()
}

// RemainingBudget returns the clamped calories left today, for display. The
// rebalance path uses the signed value internally.
func (r *Reconciler) RemainingBudget() int {
	r.mu.Lock()
	profile := r.profile
	r.mu.Unlock()
	if profile == nil {
		return 0
	}
	return DisplayBudget(profile.DailyCalories, r.ledger.Total())
}

// Generating reports whether any plan generation or rebalance is in flight.
func (r *Reconciler) Generating() bool {
	return r.inflight.Load() > 0
}

// Wait blocks until all background continuations spawned by the entry points
// have settled. Intended for shutdown and tests.
func (r *Reconciler) Wait() {
	r.wg.Wait()
}

// OnProfileReady installs the profile, awaits generation of today's plan, and
// prefetches tomorrow's in the background. Today's result is installed at
// offset 0 even when generation fails or comes back empty (the starter plan
// stays in place); tomorrow's install happens whenever its call resolves.
func (r *Reconciler) OnProfileReady(ctx context.Context, profile goalify.UserProfile) {
	r.mu.Lock()
	p := profile
	r.profile = &p
	r.mu.Unlock()

	ctx, span := r.tracer.Start(ctx, "reconciler.OnProfileReady")
	defer span.End()

	r.log.Info("RECONCILER: profile ready, generating today's plan", "user", profile.Name, "daily_calories", profile.DailyCalories)

	r.inflight.Add(1)
	r.generateAndInstall(ctx, profile, 0, "Today")
	r.inflight.Add(-1)

	// Prefetch tomorrow without blocking the caller. Deliberately not tied
	// to the caller's context lifetime.
	bgCtx := context.WithoutCancel(ctx)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.generateAndInstall(bgCtx, profile, 1, "Tomorrow (ensure variety)")
	}()
}

// OnDayNavigated lazily generates a plan for a day the user navigated to.
// Days that already have a plan, and navigation before onboarding, are no-ops.
func (r *Reconciler) OnDayNavigated(ctx context.Context, offset int) {
	if _, ok := r.store.Plan(offset); ok {
		return
	}

	r.mu.Lock()
	profile := r.profile
	r.mu.Unlock()
	if profile == nil {
		r.log.Debug("RECONCILER: day navigated before profile load, skipping", "offset", offset)
		return
	}

	label := "Tomorrow"
	if offset != 1 {
		label = fmt.Sprintf("Day +%d", offset)
	}

	ctx, span := r.tracer.Start(ctx, "reconciler.OnDayNavigated",
		trace.WithAttributes(attribute.Int("plan.offset", offset)))
	defer span.End()

	r.inflight.Add(1)
	defer r.inflight.Add(-1)
	r.generateAndInstall(ctx, *profile, offset, label)
}

// generateAndInstall runs one generation call and applies the install policy:
// errors and empty results leave the store untouched for that offset.
func (r *Reconciler) generateAndInstall(ctx context.Context, profile goalify.UserProfile, offset int, label string) {
	meals, err := r.planner.GeneratePlan(ctx, profile, label)
	if err != nil {
		r.log.Error("RECONCILER: plan generation failed", "offset", offset, "label", label, "error", err)
		r.logEvent(goalify.PlanEvent{Kind: goalify.EventPlanFailed, DayOffset: offset, DayLabel: label, Error: err.Error()})
		return
	}
	if len(meals) == 0 {
		r.log.Warn("RECONCILER: generator returned no meals", "offset", offset, "label", label)
		r.logEvent(goalify.PlanEvent{Kind: goalify.EventPlanEmpty, DayOffset: offset, DayLabel: label})
		return
	}

	for i := range meals {
		if meals[i].ID == "" {
			meals[i].ID = uuid.NewString()
		}
	}

	r.store.SetPlan(offset, meals)
	r.log.Info("RECONCILER: plan installed", "offset", offset, "label", label, "meals", len(meals))
	r.logEvent(goalify.PlanEvent{Kind: goalify.EventPlanInstalled, DayOffset: offset, DayLabel: label, MealCount: len(meals)})
}

// OnFoodLogged folds an AI-Vision food log into today's plan. The slot
// matching the current time is overwritten immediately (visible before any
// network round-trip), the ledger is bumped, and the remaining slots of the
// day are rebalanced in the background. A failed rebalance keeps the
// optimistic edit and leaves future meals untouched.
func (r *Reconciler) OnFoodLogged(ctx context.Context, analysis goalify.AnalysisResult) {
	r.mu.Lock()
	profile := r.profile
	r.mu.Unlock()
	if profile == nil {
		r.log.Warn("RECONCILER: food logged before profile load, dropping", "food", analysis.FoodName)
		return
	}

	ctx, span := r.tracer.Start(ctx, "reconciler.OnFoodLogged",
		trace.WithAttributes(
			attribute.String("food.name", analysis.FoodName),
			attribute.Int("food.calories", analysis.Calories),
		))
	defer span.End()

	now := r.now()
	slot := SlotForLogging(now)

	// Phase 1: optimistic commit. Overwrite the scheduled meal in the
	// classified slot with what was actually eaten.
	current, ok := r.store.Plan(0)
	if !ok {
		current = goalify.DefaultDayPlan()
	}

	updated := make([]goalify.Meal, len(current))
	copy(updated, current)
	for i, m := range updated {
		if m.Type != slot {
			continue
		}
		updated[i].Name = analysis.FoodName
		updated[i].Calories = analysis.Calories
		updated[i].Protein = analysis.Protein
		updated[i].Carbs = analysis.Carbs
		updated[i].Fat = analysis.Fat
		updated[i].Description = fmt.Sprintf("Logged via AI Vision: %s. This meal replaced your scheduled %s.", analysis.Reasoning, m.Name)
		updated[i].Ingredients = []string{analysis.FoodName}
	}
	r.store.SetPlan(0, updated)

	total := r.ledger.Add(analysis.Calories)
	newRemaining := RemainingBudget(profile.DailyCalories, total)

	r.log.Info("RECONCILER: food logged", "food", analysis.FoodName, "calories", analysis.Calories, "slot", slot, "remaining_budget", newRemaining)
	r.logEvent(goalify.PlanEvent{Kind: goalify.EventFoodLogged, DayOffset: 0, Slot: slot, FoodName: analysis.FoodName, Calories: analysis.Calories, Budget: newRemaining})

	if r.journal != nil {
		entry := FoodLogEntry{
			ID:        uuid.NewString(),
			FoodName:  analysis.FoodName,
			Calories:  analysis.Calories,
			Protein:   analysis.Protein,
			Carbs:     analysis.Carbs,
			Fat:       analysis.Fat,
			Slot:      slot,
			Reasoning: analysis.Reasoning,
			LoggedAt:  now,
		}
		if err := r.journal.RecordFoodLog(ctx, entry); err != nil {
			r.log.Error("RECONCILER: journal write failed", "food", analysis.FoodName, "error", err)
		}
	}

	// Phase 2: rebalance everything still ahead of the classified slot.
	ordinal := slotOrdinal(slot)
	var future []goalify.Meal
	for _, m := range updated {
		if slotOrdinal(m.Type) > ordinal {
			future = append(future, m)
		}
	}
	if len(future) == 0 {
		return
	}

	bgCtx := context.WithoutCancel(ctx)
	r.inflight.Add(1)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer r.inflight.Add(-1)

		adjusted, err := r.planner.RebalanceDay(bgCtx, *profile, analysis.FoodName, analysis.Calories, newRemaining, future)
		if err != nil {
			r.log.Error("RECONCILER: rebalance failed, keeping logged meal only", "food", analysis.FoodName, "error", err)
			r.logEvent(goalify.PlanEvent{Kind: goalify.EventRebalanceFailed, DayOffset: 0, Slot: slot, FoodName: analysis.FoodName, Error: err.Error()})
			return
		}
		if len(adjusted) == 0 {
			return
		}

		r.store.ReplaceMealsByType(0, adjusted)
		r.log.Info("RECONCILER: future meals rebalanced", "food", analysis.FoodName, "adjusted", len(adjusted), "remaining_budget", newRemaining)
		r.logEvent(goalify.PlanEvent{Kind: goalify.EventRebalanced, DayOffset: 0, Slot: slot, FoodName: analysis.FoodName, Budget: newRemaining, MealCount: len(adjusted)})
	}()
}

// NextMeal returns the upcoming meal of today's plan per the display table.
func (r *Reconciler) NextMeal() (goalify.Meal, bool) {
	meals, ok := r.store.Plan(0)
	if !ok {
		return goalify.Meal{}, false
	}
	return NextMeal(meals, r.now())
}

// LogWorkout appends a completed workout to the in-memory session log.
func (r *Reconciler) LogWorkout(log goalify.WorkoutLog) {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.Timestamp == 0 {
		log.Timestamp = r.now().Unix()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workoutLogs = append(r.workoutLogs, log)
}

// Workouts returns a copy of the session's workout log.
func (r *Reconciler) Workouts() []goalify.WorkoutLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]goalify.WorkoutLog, len(r.workoutLogs))
	copy(out, r.workoutLogs)
	return out
}

// Snapshot exports the current plans and ledger for persistence.
func (r *Reconciler) Snapshot() Snapshot {
	return Snapshot{
		Plans:            r.store.Export(),
		ConsumedCalories: r.ledger.Total(),
		SavedAt:          r.now(),
	}
}

// Restore loads a previously saved snapshot, replacing current state.
func (r *Reconciler) Restore(s Snapshot) {
	if s.Plans != nil {
		r.store.Import(s.Plans)
	}
	r.ledger.Restore(s.ConsumedCalories)
}

func (r *Reconciler) logEvent(event goalify.PlanEvent) {
	event.Timestamp = r.now()
	if err := r.events.LogEvent(event); err != nil {
		r.log.Error("RECONCILER: event log failed", "kind", event.Kind, "error", err)
	}
}
