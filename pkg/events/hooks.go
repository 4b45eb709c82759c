package events

import "sync"

// Hook function types for store events
type (
	// AddedHook is called when an item is added to a store
	AddedHook func(Event)

	// RemovedHook is called when an item is removed from a store
	RemovedHook func(Event)

	// ChangedHook is called after every store mutation
	ChangedHook func(Event)
)

// Hooks manages event callbacks for store changes. It is safe for
// concurrent registration and dispatch.
type Hooks struct {
	mu        sync.RWMutex
	onAdded   []AddedHook
	onRemoved []RemovedHook
	onChanged []ChangedHook
}

// NewHooks creates an empty registry.
func NewHooks() *Hooks {
	return &Hooks{}
}

// OnAdded registers a callback for when items are added
func (h *Hooks) OnAdded(fn AddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onAdded = append(h.onAdded, fn)
}

// OnRemoved registers a callback for when items are removed
func (h *Hooks) OnRemoved(fn RemovedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRemoved = append(h.onRemoved, fn)
}

// OnChanged registers a callback for count/total changes
func (h *Hooks) OnChanged(fn ChangedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChanged = append(h.onChanged, fn)
}

// Notify dispatches e to the hooks registered for its kind, in
// registration order. Hooks run outside the lock so they may register
// further hooks.
func (h *Hooks) Notify(e Event) {
	h.mu.RLock()
	var fns []func(Event)
	switch e.Kind {
	case Added:
		for _, fn := range h.onAdded {
			fns = append(fns, fn)
		}
	case Removed:
		for _, fn := range h.onRemoved {
			fns = append(fns, fn)
		}
	case Changed:
		for _, fn := range h.onChanged {
			fns = append(fns, fn)
		}
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(e)
	}
}
