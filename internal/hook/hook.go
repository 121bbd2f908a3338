// Package hook provides named events whose callbacks run in priority order.
package hook

import (
	"context"
	"sort"
	"sync"

	"github.com/patii/workcity/internal/asset"
	"github.com/patii/workcity/internal/log"
)

// EnqueueScripts is the event fired when a page collects its front-end assets.
const EnqueueScripts = "wp_enqueue_scripts"

// DefaultPriority is used by callbacks that do not care about ordering.
const DefaultPriority = 10

// Callback registers assets for the current render.
type Callback func(ctx context.Context, reg *asset.Registry)

type entry struct {
	name     string
	priority int
	seq      int
	fn       Callback
}

// Actions holds callbacks keyed by event name.
type Actions struct {
	mu     sync.RWMutex
	events map[string][]entry
	seq    int
}

// NewActions creates an empty action registry.
func NewActions() *Actions {
	return &Actions{events: make(map[string][]entry)}
}

// Add subscribes fn to event. Callbacks with a lower priority run first;
// equal priorities run in the order they were added. Adding a second callback
// under the same name for the same event is ignored and returns false.
func (a *Actions) Add(event string, priority int, name string, fn Callback) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, e := range a.events[event] {
		if e.name == name {
			log.Debug(log.CatHook, "callback already added", "event", event, "name", name)
			return false
		}
	}
	a.seq++
	a.events[event] = append(a.events[event], entry{name: name, priority: priority, seq: a.seq, fn: fn})
	return true
}

// Has reports whether a callback with name is subscribed to event.
func (a *Actions) Has(event, name string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, e := range a.events[event] {
		if e.name == name {
			return true
		}
	}
	return false
}

// Callbacks returns the callback names for event in execution order.
func (a *Actions) Callbacks(event string) []string {
	sorted := a.sorted(event)
	names := make([]string, 0, len(sorted))
	for _, e := range sorted {
		names = append(names, e.name)
	}
	return names
}

// Do runs every callback subscribed to event against reg. It stops early if
// ctx is cancelled between callbacks.
func (a *Actions) Do(ctx context.Context, event string, reg *asset.Registry) error {
	for _, e := range a.sorted(event) {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Debug(log.CatHook, "running callback", "event", event, "name", e.name, "priority", e.priority)
		e.fn(ctx, reg)
	}
	return nil
}

func (a *Actions) sorted(event string) []entry {
	a.mu.RLock()
	out := make([]entry, len(a.events[event]))
	copy(out, a.events[event])
	a.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].priority != out[j].priority {
			return out[i].priority < out[j].priority
		}
		return out[i].seq < out[j].seq
	})
	return out
}
