package plan

import "sync"

// Ledger tracks calories consumed today. It only ever grows during a
// session; there is no operation to un-log a food.
type Ledger struct {
	mu    sync.Mutex
	total int
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Add records consumed calories and returns the new running total.
func (l *Ledger) Add(calories int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.total += calories
	return l.total
}

// Total returns the calories consumed so far today.
func (l *Ledger) Total() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// Restore overwrites the running total from a snapshot.
func (l *Ledger) Restore(total int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.total = total
}
