// Package graph holds the mutable constraint arena the resolver works on.
//
// Each mod contributes one Entry keyed by its canonical (version-stripped)
// name. The resolver runs the passes below strictly one after another; none
// of them recurses into another pass while iterating.
package graph

import (
	"sort"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/bayleafwalker/bindery-modloader/internal/semver"
)

// Descriptor is the immutable view of a mod the arena is built from.
//
// Every returned name may carry an "@version" suffix; it is dropped on entry
// construction.
type Descriptor interface {
	Name() string
	// Requires lists mods (or provided names) that must be present.
	Requires() []string
	// Conflicts lists mods (or provided names) that must be absent.
	Conflicts() []string
	// Before lists mods that must load before this one.
	Before() []string
	// After lists mods that must load after this one.
	After() []string
	// OnDemand marks a mod that is only kept while something needs it.
	OnDemand() bool
}

// Entry is one mod's constraint set.
//
// Before holds the names that have to be emitted ahead of the entry, After
// the names emitted behind it.
type Entry struct {
	Name      string
	Requires  sets.Set[string]
	Conflicts sets.Set[string]
	Before    sets.Set[string]
	After     sets.Set[string]
	OnDemand  bool
}

// NewEntry normalizes a descriptor. Requirements also seed Before.
func NewEntry(d Descriptor) *Entry {
	e := &Entry{
		Name:      semver.StripVersion(d.Name()),
		Requires:  names(d.Requires()),
		Conflicts: names(d.Conflicts()),
		Before:    names(d.Before()),
		After:     names(d.After()),
		OnDemand:  d.OnDemand(),
	}
	e.Before = e.Before.Union(e.Requires)
	return e
}

func (e *Entry) String() string {
	return e.Name
}

func names(refs []string) sets.Set[string] {
	out := sets.New[string]()
	for _, ref := range refs {
		if name := semver.StripVersion(ref); name != "" {
			out.Insert(name)
		}
	}
	return out
}

// Graph is the arena of entries indexed by canonical name.
type Graph struct {
	entries map[string]*Entry
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{entries: make(map[string]*Entry)}
}

// Add stores e and reports whether its name was already taken. An existing
// entry is left untouched in that case.
func (g *Graph) Add(e *Entry) bool {
	if _, exists := g.entries[e.Name]; exists {
		return false
	}
	g.entries[e.Name] = e
	return true
}

// Get returns the entry for name or nil.
func (g *Graph) Get(name string) *Entry {
	return g.entries[name]
}

// Has reports whether name is an entry of the graph.
func (g *Graph) Has(name string) bool {
	_, ok := g.entries[name]
	return ok
}

// Len returns the number of entries.
func (g *Graph) Len() int {
	return len(g.entries)
}

// Names returns all entry names in ascending order.
func (g *Graph) Names() []string {
	out := make([]string, 0, len(g.entries))
	for name := range g.entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// RemoveMissing drops ordering hints that point at names outside the graph.
func (g *Graph) RemoveMissing() {
	for _, e := range g.entries {
		for name := range e.Before {
			if !g.Has(name) {
				e.Before.Delete(name)
			}
		}
		for name := range e.After {
			if !g.Has(name) {
				e.After.Delete(name)
			}
		}
	}
}

// RemoveSelfReferences strips every entry's own name from its hints.
func (g *Graph) RemoveSelfReferences() {
	for _, e := range g.entries {
		e.Before.Delete(e.Name)
		e.After.Delete(e.Name)
	}
}

// Symmetrize makes Before and After mirror each other. After is folded into
// the targets' Before first, then Before into the targets' After.
func (g *Graph) Symmetrize() {
	for _, e := range g.entries {
		for name := range e.After {
			g.entries[name].Before.Insert(e.Name)
		}
	}
	for _, e := range g.entries {
		for name := range e.Before {
			g.entries[name].After.Insert(e.Name)
		}
	}
}

// PruneOnDemand removes on-demand entries that nothing loads after, until a
// full scan removes nothing. It returns the pruned names in ascending order.
func (g *Graph) PruneOnDemand() []string {
	pruned := sets.New[string]()
	for {
		removed := false
		for _, name := range g.Names() {
			e := g.entries[name]
			if !e.OnDemand || e.After.Len() > 0 {
				continue
			}
			g.remove(e)
			pruned.Insert(name)
			removed = true
		}
		if !removed {
			return sets.List(pruned)
		}
	}
}

func (g *Graph) remove(e *Entry) {
	delete(g.entries, e.Name)
	for _, other := range g.entries {
		other.Before.Delete(e.Name)
		other.After.Delete(e.Name)
	}
}

// Sort emits a topological order, always taking the smallest ready name.
// Entries that never become ready are returned as blocked, sorted by name.
// Sort consumes the Before sets.
func (g *Graph) Sort() (order []string, blocked []string) {
	ready := sets.New[string]()
	waiting := sets.New[string]()
	for name, e := range g.entries {
		if e.Before.Len() == 0 {
			ready.Insert(name)
		} else {
			waiting.Insert(name)
		}
	}

	order = make([]string, 0, len(g.entries))
	for ready.Len() > 0 {
		next := sets.List(ready)[0]
		ready.Delete(next)
		for name := range g.entries[next].After {
			target := g.entries[name]
			target.Before.Delete(next)
			if target.Before.Len() == 0 && waiting.Has(name) {
				waiting.Delete(name)
				ready.Insert(name)
			}
		}
		order = append(order, next)
	}
	return order, sets.List(waiting)
}
