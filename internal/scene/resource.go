package scene

import "sync/atomic"

var liveResources atomic.Int64

// LiveResources reports how many geometries and materials have been created
// and not yet released, process wide.
func LiveResources() int64 { return liveResources.Load() }

// Resource tracks the lifetime of one GPU-backed allocation.
type Resource struct {
	released atomic.Bool
}

func (r *Resource) track() { liveResources.Add(1) }

// Dispose releases the resource. Further calls are no-ops.
func (r *Resource) Dispose() {
	if r.released.CompareAndSwap(false, true) {
		liveResources.Add(-1)
	}
}

func (r *Resource) Released() bool { return r.released.Load() }
