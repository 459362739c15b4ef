package preprocess

import "sync"

// Registry assigns file ids to include names in first-encounter order.
// Ids start at 1; 0 is reserved for the top-level source. An id is never
// reassigned, so the mapping is stable for the registry's lifetime.
//
// Registry is safe for concurrent use, but ids only stay reproducible
// when sources are processed in a fixed order.
type Registry struct {
	mu    sync.Mutex
	ids   map[string]uint32
	names []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]uint32)}
}

// Resolve returns the id of name, assigning the next free id if name has
// not been seen before.
func (r *Registry) Resolve(name string) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ids == nil {
		r.ids = make(map[string]uint32)
	}
	if id, ok := r.ids[name]; ok {
		return id
	}
	r.names = append(r.names, name)
	id := uint32(len(r.names))
	r.ids[name] = id
	return id
}

// Lookup returns the id of name without assigning one.
func (r *Registry) Lookup(name string) (uint32, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.ids[name]
	return id, ok
}

// Name returns the include name registered under id.
func (r *Registry) Name(id uint32) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id == 0 || int(id) > len(r.names) {
		return "", false
	}
	return r.names[id-1], true
}

// Names returns every registered name ordered by id: Names()[i] has id i+1.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.names)
}
