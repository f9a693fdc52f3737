package pipeline

import (
	"sort"
	"sync"

	"github.com/pipeml/pipeml/core/model"
	"github.com/pipeml/pipeml/pkg/errors"
)

// Registry binds expression identifiers to component instances. The
// expression compiler resolves each leaf against a registry; resolution hands
// out an unfitted clone, so compiling the same expression twice never shares
// learned state between the two trees.
type Registry struct {
	mu    sync.RWMutex
	comps map[string]model.Component
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{comps: make(map[string]model.Component)}
}

// Register binds name to comp. Names must be valid expression identifiers
// and may not be rebound.
func (r *Registry) Register(name string, comp model.Component) error {
	if !validIdentifier(name) {
		return errors.NewValidationError("name", "must be a valid identifier ([A-Za-z_][A-Za-z0-9_]*)", name)
	}
	if comp == nil {
		return errors.NewValidationError("component", "must not be nil", nil)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comps[name]; ok {
		return errors.NewValidationError("name", "already registered", name)
	}
	r.comps[name] = comp
	return nil
}

// MustRegister is Register that panics on error, for composition at setup time.
func (r *Registry) MustRegister(name string, comp model.Component) {
	if err := r.Register(name, comp); err != nil {
		panic(err)
	}
}

// Resolve returns a new atomic leaf wrapping an unfitted clone of the named
// component, or an UnknownComponentError.
func (r *Registry) Resolve(name string) (Node, error) {
	r.mu.RLock()
	comp, ok := r.comps[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NewUnknownComponentError(name, r.Names())
	}
	return NewAtomic(name, comp.Clone()), nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.comps))
	for name := range r.comps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
