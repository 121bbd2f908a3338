package asset

import (
	"fmt"
	"sync"
)

// Registry collects style registrations for a single render.
//
// A Registry is safe for concurrent use, but is meant to be created per
// request and discarded after Resolve.
type Registry struct {
	mu       sync.Mutex
	byHandle map[string]int
	styles   []Style
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byHandle: make(map[string]int)}
}

// Enqueue adds a style to the registry.
//
// The first registration of a handle wins: enqueueing a handle that is already
// present returns false and leaves the registry unchanged. Dependencies do not
// have to be registered yet, or at all.
func (r *Registry) Enqueue(s Style) (bool, error) {
	if s.Handle == "" {
		return false, fmt.Errorf("enqueue %q: %w", s.Src, ErrEmptyHandle)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byHandle[s.Handle]; exists {
		return false, nil
	}
	r.byHandle[s.Handle] = len(r.styles)
	r.styles = append(r.styles, s.normalized())
	return true, nil
}

// Registered reports whether a handle has been enqueued.
func (r *Registry) Registered(handle string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byHandle[handle]
	return ok
}

// Get returns the registration for a handle.
func (r *Registry) Get(handle string) (Style, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.byHandle[handle]
	if !ok {
		return Style{}, false
	}
	return r.styles[idx], true
}

// Len returns the number of registered styles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.styles)
}

// Styles returns the registrations in the order they were enqueued.
func (r *Registry) Styles() []Style {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Style, len(r.styles))
	copy(out, r.styles)
	return out
}

// Resolve orders the registered styles so every style follows the registered
// styles it depends on. See Resolution for how missing dependencies and cycles
// are reported.
func (r *Registry) Resolve() Resolution {
	return resolve(r.Styles())
}
