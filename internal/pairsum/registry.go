package pairsum

import (
	"fmt"
	"sort"
)

// Registry maps strategy names to Finder implementations. It decouples the
// rest of the application from the concrete strategy set, so commands can
// select strategies by name and tests can inject substitutes.
type Registry interface {
	// Get returns the finder registered under name.
	Get(name string) (Finder, error)
	// GetAll returns all registered finders, ordered by name.
	GetAll() []Finder
	// List returns the sorted registered names.
	List() []string
}

type mapRegistry struct {
	finders map[string]Finder
}

// NewDefaultRegistry returns a Registry holding the two production
// strategies: "exhaustive" and "lookup".
func NewDefaultRegistry() Registry {
	return NewRegistry(ExhaustiveScan{}, SinglePassLookup{})
}

// NewRegistry builds a Registry from the given finders, keyed by their names.
func NewRegistry(finders ...Finder) Registry {
	m := make(map[string]Finder, len(finders))
	for _, f := range finders {
		m[f.Name()] = f
	}
	return &mapRegistry{finders: m}
}

func (r *mapRegistry) Get(name string) (Finder, error) {
	f, ok := r.finders[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (available: %v)", name, r.List())
	}
	return f, nil
}

func (r *mapRegistry) GetAll() []Finder {
	out := make([]Finder, 0, len(r.finders))
	for _, name := range r.List() {
		out = append(out, r.finders[name])
	}
	return out
}

func (r *mapRegistry) List() []string {
	names := make([]string, 0, len(r.finders))
	for name := range r.finders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select resolves the strategy selection string against the registry.
// "all" selects every registered strategy in name order.
func Select(selection string, reg Registry) ([]Finder, error) {
	if selection == "all" {
		return reg.GetAll(), nil
	}
	f, err := reg.Get(selection)
	if err != nil {
		return nil, err
	}
	return []Finder{f}, nil
}
