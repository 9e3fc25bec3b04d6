package sandbox

import (
	"sync/atomic"

	"github.com/bytecodealliance/wasmtime-go/v15"
)

// Snapshot is the immutable (Engine, Module, VersionTag) triple readers
// acquire from the Registry. It is replaced as a whole; a reader never
// observes an Engine from one artifact paired with a Module compiled by
// a different Engine.
type Snapshot struct {
	Engine  *wasmtime.Engine
	Module  *wasmtime.Module
	Version string
}

// Registry holds the currently active Snapshot and supports reader
// concurrency during evaluation plus atomic replacement by a reloader.
//
// Unlike the teacher's PolicyRegistry (a map guarded by sync.RWMutex),
// the whole-value swap here has no map to mutate under lock, so a single
// atomic.Pointer gives readers a torn-free snapshot without ever
// blocking on a mutex: Read is a single atomic load, and Publish never
// waits for in-flight evaluations to drain.
type Registry struct {
	current atomic.Pointer[Snapshot]
}

// NewRegistry builds a Registry pre-populated with an initial Snapshot.
// The Registry never starts empty: boot fails hard if compiling the
// initial artifact fails, so there is no "no module yet" state to model.
func NewRegistry(initial Snapshot) *Registry {
	r := &Registry{}
	r.current.Store(&initial)
	return r
}

// Read returns the current Snapshot. The caller may hold the returned
// value for the duration of one evaluation independent of subsequent
// Publish calls; it is never mutated in place.
func (r *Registry) Read() Snapshot {
	return *r.current.Load()
}

// Publish atomically replaces the active Snapshot. It does not wait for
// evaluations that already acquired the prior Snapshot to complete —
// they continue running against their own copy of the triple.
func (r *Registry) Publish(next Snapshot) {
	r.current.Store(&next)
}
