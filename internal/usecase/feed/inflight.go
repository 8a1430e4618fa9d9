package feed

import "sync"

// inflightRegistry tracks the recipe ids with a like/unlike mutation
// outstanding. At most one mutation per recipe id may be in flight for
// the session; the registry is the sole concurrency control point.
type inflightRegistry struct {
	mu      sync.Mutex
	pending map[int64]struct{}
}

func newInflightRegistry() *inflightRegistry {
	return &inflightRegistry{
		pending: make(map[int64]struct{}),
	}
}

// TryBegin atomically checks and inserts the id. It returns false when a
// mutation for the id is already pending, in which case the caller must no-op.
func (r *inflightRegistry) TryBegin(recipeID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pending[recipeID]; ok {
		return false
	}
	r.pending[recipeID] = struct{}{}
	return true
}

// End releases the id. It must run exactly once per successful TryBegin,
// on every exit path.
func (r *inflightRegistry) End(recipeID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, recipeID)
}

// Pending reports whether a mutation for the id is outstanding. The UI
// uses this to disable the like control.
func (r *inflightRegistry) Pending(recipeID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.pending[recipeID]
	return ok
}

func (r *inflightRegistry) snapshot() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, 0, len(r.pending))
	for id := range r.pending {
		ids = append(ids, id)
	}
	return ids
}
