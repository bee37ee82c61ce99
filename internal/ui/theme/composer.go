package theme

import "sync"

// Registry maps theme names to transform chains and resolves them over Base.
type Registry struct {
	mu     sync.RWMutex
	order  []Name
	chains map[Name][]Transform
}

// NewRegistry returns a registry holding the built-in themes.
func NewRegistry() *Registry {
	r := &Registry{chains: make(map[Name][]Transform)}
	r.Register(NameDefault)
	r.Register(NameDark, Dark)
	r.Register(NameLight, Light)
	r.Register(NameNeon, Neon)
	return r
}

// Register adds or replaces the chain for name. An empty chain resolves to Base.
func (r *Registry) Register(name Name, chain ...Transform) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.chains[name]; !exists {
		r.order = append(r.order, name)
	}
	r.chains[name] = append([]Transform(nil), chain...)
}

// Has reports whether name is registered.
func (r *Registry) Has(name Name) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.chains[name]
	return ok
}

// Chain returns the transforms registered for name.
func (r *Registry) Chain(name Name) ([]Transform, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	chain, ok := r.chains[name]
	if !ok {
		return nil, false
	}
	return append([]Transform(nil), chain...), true
}

// Names returns registered names in registration order.
func (r *Registry) Names() []Name {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Name(nil), r.order...)
}

// Resolve folds the chain for name over Base and returns a fresh mapping.
// ok is false when name is not registered.
func (r *Registry) Resolve(name Name) (Mapping, bool) {
	chain, ok := r.Chain(name)
	if !ok {
		return nil, false
	}
	return Chain(chain...)(Base()), true
}
