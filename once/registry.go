package once

import (
	"sync"

	"go.uber.org/atomic"
)

// guardMap wraps a sync.Map so guards are stored and loaded without type
// assertions at every call site.
type guardMap struct {
	sync.Map
}

// loadOrStore returns the guard stored under id, storing g first if there is
// none yet.
func (m *guardMap) loadOrStore(id string, g *Guard) *Guard {
	result, _ := m.Map.LoadOrStore(id, g)

	return result.(*Guard)
}

// rangeGuards applies visitor to every guard, stopping early if it returns
// false.
func (m *guardMap) rangeGuards(visitor func(string, *Guard) bool) {
	m.Map.Range(func(k, v any) bool {
		return visitor(k.(string), v.(*Guard))
	})
}

// Registry hands out one Guard per call-site identifier. It is the explicit
// replacement for a function level static flag: its lifetime is whatever
// owns it, and Reset starts a fresh session. The zero value is ready for use.
type Registry struct {
	guards guardMap

	suppressed atomic.Uint64
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Guard returns the guard bound to id, creating an unfired one on first use.
func (r *Registry) Guard(id string) *Guard {
	// Load first to avoid allocating a guard on the hot path.
	if g, ok := r.guards.Map.Load(id); ok {
		return g.(*Guard)
	}

	return r.guards.loadOrStore(id, &Guard{})
}

// Fire runs fn through the guard bound to id. It reports whether fn ran.
func (r *Registry) Fire(id string, fn func()) bool {
	if r.Guard(id).Fire(fn) {
		return true
	}

	r.suppressed.Inc()

	return false
}

// Suppressed returns how many Fire calls were swallowed by an already fired
// guard since the registry was created.
func (r *Registry) Suppressed() uint64 {
	return r.suppressed.Load()
}

// Len returns the number of call sites the registry has seen.
func (r *Registry) Len() int {
	var count int
	r.guards.rangeGuards(func(string, *Guard) bool {
		count++

		return true
	})

	return count
}

// Reset re-arms every guard in the registry.
func (r *Registry) Reset() {
	r.guards.rangeGuards(func(_ string, g *Guard) bool {
		g.Reset()

		return true
	})
}
