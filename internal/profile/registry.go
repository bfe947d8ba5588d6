package profile

import "tiergewinnt/internal/engine"

// Registry is read-only after construction and safe for concurrent use.
type Registry struct {
	order []string
	byID  map[string]Profile
}

func NewRegistry(profiles []Profile) *Registry {
	r := &Registry{byID: make(map[string]Profile, len(profiles))}
	for _, p := range profiles {
		if _, dup := r.byID[p.ID]; dup {
			continue
		}
		r.order = append(r.order, p.ID)
		r.byID[p.ID] = p
	}
	return r
}

// List returns the profiles in registration order, weakest first for the built-ins.
func (r *Registry) List() []Profile {
	out := make([]Profile, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Lookup reports whether id is registered.
func (r *Registry) Lookup(id string) (Profile, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// Resolve never fails: unknown ids fall back to DefaultID, and to the first
// registered profile if DefaultID itself is missing.
func (r *Registry) Resolve(id string) Profile {
	if p, ok := r.byID[id]; ok {
		return p
	}
	if p, ok := r.byID[DefaultID]; ok {
		return p
	}
	if len(r.order) > 0 {
		return r.byID[r.order[0]]
	}
	return Profile{ID: DefaultID, Algorithm: AlphaBeta, Depth: engine.DefaultDepth}
}

var defaultRegistry = NewRegistry(builtins)

// Default is the registry of built-in opponents.
func Default() *Registry { return defaultRegistry }

func List() []Profile { return defaultRegistry.List() }

func Resolve(id string) Profile { return defaultRegistry.Resolve(id) }
