package engine

import (
	"sync"
)

// Registry tracks every live Instance so a signal handler or normal exit
// path can stop them all, even ones created outside the main request
// path (spec.md §4.4). The zero value is ready to use; Global is the
// process-wide registry normal code should use.
type Registry struct {
	mu        sync.Mutex
	instances map[*Instance]struct{}
}

// Global is the process-wide engine registry, mirroring the single
// module-level registry the original shutdown coordinator used.
var Global = &Registry{}

// Register adds inst to the registry. Idempotent.
func (r *Registry) Register(inst *Instance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.instances == nil {
		r.instances = make(map[*Instance]struct{})
	}
	r.instances[inst] = struct{}{}
}

// Unregister removes inst from the registry. Idempotent; a no-op if inst
// was never registered or already removed.
func (r *Registry) Unregister(inst *Instance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.instances, inst)
}

// ShutdownAll stops every currently registered instance and clears the
// registry. Safe to call more than once; subsequent calls are no-ops.
func (r *Registry) ShutdownAll() {
	r.mu.Lock()
	instances := make([]*Instance, 0, len(r.instances))
	for inst := range r.instances {
		instances = append(instances, inst)
	}
	r.instances = make(map[*Instance]struct{})
	r.mu.Unlock()

	for _, inst := range instances {
		inst.Stop()
	}
}

// Count reports how many instances are currently registered. Used by
// tests.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}
