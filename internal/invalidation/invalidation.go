// Package invalidation holds the pending-redraw flag shared between
// everything that can request a redraw and the single render-tick
// consumer that drains it.
package invalidation

import "sync"

// Flag is the three-state invalidation controller: clean, invalidated,
// or invalidated with a data refresh. Any caller may set it; exactly
// one consumer drains it with Consume.
//
// The data-refresh bit is upgrade-only: once a request carries
// updateData=true the pending pass keeps it until consumed.
type Flag struct {
	mu          sync.Mutex
	invalidated bool
	updateData  bool
}

// Request records that the visual state is stale. Non-blocking.
func (f *Flag) Request(updateData bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = true
	f.updateData = f.updateData || updateData
}

// Consume atomically reads and resets the flag. It returns whether a
// pass is due and whether that pass must refresh data. The caller
// commits to performing the pass (or deliberately dropping it, as on a
// zero-area surface).
func (f *Flag) Consume() (invalidated, updateData bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	invalidated, updateData = f.invalidated, f.updateData
	f.invalidated = false
	f.updateData = false
	return invalidated, updateData
}

// Peek reports the current state without clearing it.
func (f *Flag) Peek() (invalidated, updateData bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.invalidated, f.updateData
}
