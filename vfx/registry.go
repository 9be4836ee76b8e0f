package vfx

// Registry is the keyed actor map shared by the ECS-backed render
// systems. It owns the create-if-absent / reconcile-against-live-set /
// dispose-all lifecycle so Trail, Swarm, and Tree do not each repeat
// it. Disposal runs through the dispose func exactly once per actor.
type Registry[A any] struct {
	actors  map[string]A
	dispose func(A)

	// seen is scratch state for Reconcile, reused across frames.
	seen map[string]struct{}
}

// NewRegistry creates a registry whose actors are torn down by dispose.
func NewRegistry[A any](dispose func(A)) *Registry[A] {
	return &Registry[A]{
		actors:  make(map[string]A),
		dispose: dispose,
		seen:    make(map[string]struct{}),
	}
}

// Len returns the number of live actors.
func (r *Registry[A]) Len() int {
	return len(r.actors)
}

// Get returns the actor for key, if present.
func (r *Registry[A]) Get(key string) (A, bool) {
	a, ok := r.actors[key]
	return a, ok
}

// Ensure returns the actor for key, building it on first sight. created
// reports whether build ran.
func (r *Registry[A]) Ensure(key string, build func() A) (actor A, created bool) {
	r.seen[key] = struct{}{}
	if a, ok := r.actors[key]; ok {
		return a, false
	}
	a := build()
	r.actors[key] = a
	return a, true
}

// Mark records that key was present in the live set this sync. Calling
// Ensure marks implicitly; Mark exists for actors refreshed without
// Ensure.
func (r *Registry[A]) Mark(key string) {
	r.seen[key] = struct{}{}
}

// Sweep disposes and erases every actor not marked since the previous
// Sweep, then resets the marks. This is the single authoritative
// disposal path for ECS-backed actors: after Sweep, no orphaned map
// entry can remain.
func (r *Registry[A]) Sweep() {
	for key, a := range r.actors {
		if _, ok := r.seen[key]; !ok {
			r.dispose(a)
			delete(r.actors, key)
		}
	}
	clear(r.seen)
}

// Visit calls fn for every live actor.
func (r *Registry[A]) Visit(fn func(key string, actor A)) {
	for k, a := range r.actors {
		fn(k, a)
	}
}

// DisposeAll tears down every actor. Used on mode transitions and
// shutdown; idempotent when already empty.
func (r *Registry[A]) DisposeAll() {
	for key, a := range r.actors {
		r.dispose(a)
		delete(r.actors, key)
	}
	clear(r.seen)
}
