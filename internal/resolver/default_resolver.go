package resolver

import (
	"sort"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/bayleafwalker/bindery-modloader/internal/graph"
	"github.com/bayleafwalker/bindery-modloader/internal/semver"
)

// DefaultResolver orders descriptors of type T.
//
// Provided names are virtual: they satisfy requires and trigger conflicts but
// never take part in ordering.
type DefaultResolver[T Descriptor] struct {
	// provided maps a base name to the highest version seen for it.
	provided map[string]string
}

func NewDefault[T Descriptor]() *DefaultResolver[T] {
	return &DefaultResolver[T]{provided: map[string]string{}}
}

// Provided adds virtual names such as "modloader@0.24". Names sharing a base
// name collapse into one, keeping the newest version.
func (r *DefaultResolver[T]) Provided(refs ...string) *DefaultResolver[T] {
	for _, ref := range refs {
		name, version := semver.Split(ref)
		if name == "" {
			continue
		}
		current, ok := r.provided[name]
		if !ok || semver.Newer(version, current) {
			r.provided[name] = version
		}
	}
	return r
}

// ProvidedNames returns the provided base names in ascending order.
func (r *DefaultResolver[T]) ProvidedNames() []string {
	out := make([]string, 0, len(r.provided))
	for name := range r.provided {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ProvidedVersion returns the version recorded for a provided name.
func (r *DefaultResolver[T]) ProvidedVersion(name string) (string, bool) {
	v, ok := r.provided[name]
	return v, ok
}

// Order returns mods sorted so that every mod follows the mods it requires
// or must load after.
func (r *DefaultResolver[T]) Order(mods []T) ([]T, error) {
	res, err := r.Resolve(mods)
	if err != nil {
		return nil, err
	}
	return res.Order, nil
}

// Resolve is Order plus the names pruned on the way.
func (r *DefaultResolver[T]) Resolve(mods []T) (Result[T], error) {
	byName := make(map[string]T, len(mods))
	g := graph.New()
	for _, mod := range mods {
		e := graph.NewEntry(mod)
		if !g.Add(e) {
			return Result[T]{}, &DuplicateNameError{Name: e.Name}
		}
		byName[e.Name] = mod
	}

	if err := r.checkRequires(g); err != nil {
		return Result[T]{}, err
	}
	if err := r.checkConflicts(g); err != nil {
		return Result[T]{}, err
	}

	g.RemoveMissing()
	g.RemoveSelfReferences()
	g.Symmetrize()
	pruned := g.PruneOnDemand()

	names, blocked := g.Sort()
	if len(blocked) > 0 {
		return Result[T]{}, &UnresolvedOrderError{Blocked: blocked}
	}

	order := make([]T, 0, len(names))
	for _, name := range names {
		order = append(order, byName[name])
	}
	return Result[T]{Order: order, Pruned: pruned}, nil
}

func (r *DefaultResolver[T]) available(g *graph.Graph, name string) bool {
	if g.Has(name) {
		return true
	}
	_, ok := r.provided[name]
	return ok
}

func (r *DefaultResolver[T]) checkRequires(g *graph.Graph) error {
	for _, name := range g.Names() {
		e := g.Get(name)
		for _, required := range sets.List(e.Requires) {
			if !r.available(g, required) {
				return &UnresolvedRequirementError{Mod: e.Name, Required: required}
			}
		}
	}
	return nil
}

func (r *DefaultResolver[T]) checkConflicts(g *graph.Graph) error {
	for _, name := range g.Names() {
		e := g.Get(name)
		for _, conflict := range sets.List(e.Conflicts) {
			if r.available(g, conflict) {
				return &ConflictError{Mod: e.Name, Conflict: conflict}
			}
		}
	}
	return nil
}

func canonical(d Descriptor) string {
	return semver.StripVersion(d.Name())
}
