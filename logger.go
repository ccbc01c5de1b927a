package goalify

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// PlanEventLogger is the interface for recording reconciler activity.
type PlanEventLogger interface {
	LogEvent(event PlanEvent) error
}

// Event kinds emitted by the reconciler.
const (
	EventPlanInstalled   = "plan_installed"
	EventPlanFailed      = "plan_failed"
	EventPlanEmpty       = "plan_empty"
	EventFoodLogged      = "food_logged"
	EventRebalanced      = "rebalanced"
	EventRebalanceFailed = "rebalance_failed"
)

// PlanEvent records one reconciler state transition.
type PlanEvent struct {
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
	DayOffset int       `json:"day_offset"`
	DayLabel  string    `json:"day_label,omitempty"`
	Slot      MealType  `json:"slot,omitempty"`
	FoodName  string    `json:"food_name,omitempty"`
	Calories  int       `json:"calories,omitempty"`
	Budget    int       `json:"budget,omitempty"`
	MealCount int       `json:"meal_count,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// NewPlanLogFilePath returns a file path based on a cleaned up model name or id to make it easier to identify specific logs produced with various models.
func NewPlanLogFilePath(model string) string {
	return fmt.Sprintf(
		"./logs/%d.%s.json",
		time.Now().Unix(),
		strings.ReplaceAll(strings.ToLower(model), ":", "_"),
	)
}

// FilePlanEventLogger accumulates events and flushes them to a writer at the
// end. Safe for use from the reconciler's background goroutines.
type FilePlanEventLogger struct {
	mu     sync.Mutex
	events []PlanEvent
	writer io.Writer
}

func NewFilePlanEventLogger(writer io.Writer) *FilePlanEventLogger {
	return &FilePlanEventLogger{
		events: make([]PlanEvent, 0),
		writer: writer,
	}
}

// LogEvent buffers an event (does not flush immediately).
func (l *FilePlanEventLogger) LogEvent(event PlanEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
	return nil
}

// Flush writes all accumulated events to the writer.
func (l *FilePlanEventLogger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writer == nil {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"plan_session": map[string]any{
			"timestamp": time.Now(),
			"events":    l.events,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan event log: %w", err)
	}

	if _, err := l.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write plan event log: %w", err)
	}

	l.events = l.events[:0]
	return nil
}

// NoOpPlanEventLogger discards all events.
type NoOpPlanEventLogger struct{}

func NewNoOpPlanEventLogger() *NoOpPlanEventLogger {
	return &NoOpPlanEventLogger{}
}

func (n *NoOpPlanEventLogger) LogEvent(event PlanEvent) error {
	return nil
}

// StdoutPlanEventLogger writes each event as a JSON line to stdout (for Lambda/CloudWatch).
type StdoutPlanEventLogger struct{}

func NewStdoutPlanEventLogger() *StdoutPlanEventLogger {
	return &StdoutPlanEventLogger{}
}

func (l *StdoutPlanEventLogger) LogEvent(event PlanEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
