package graph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"k8s.io/apimachinery/pkg/util/sets"
)

type desc struct {
	name      string
	requires  []string
	conflicts []string
	before    []string
	after     []string
	onDemand  bool
}

func (d desc) Name() string        { return d.name }
func (d desc) Requires() []string  { return d.requires }
func (d desc) Conflicts() []string { return d.conflicts }
func (d desc) Before() []string    { return d.before }
func (d desc) After() []string     { return d.after }
func (d desc) OnDemand() bool      { return d.onDemand }

func TestNewEntry_StripsVersionsAndSeedsBefore(t *testing.T) {
	e := NewEntry(desc{
		name:      "alpha@1.0",
		requires:  []string{"beta@2.0", " gamma "},
		conflicts: []string{"delta@0.1"},
		before:    []string{"epsilon"},
		after:     []string{"zeta@3", "@4"},
		onDemand:  true,
	})

	if e.Name != "alpha" {
		t.Fatalf("expected name alpha, got %q", e.Name)
	}
	if diff := cmp.Diff([]string{"beta", "gamma"}, sets.List(e.Requires)); diff != "" {
		t.Fatalf("requires (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"delta"}, sets.List(e.Conflicts)); diff != "" {
		t.Fatalf("conflicts (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"beta", "epsilon", "gamma"}, sets.List(e.Before)); diff != "" {
		t.Fatalf("before (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"zeta"}, sets.List(e.After)); diff != "" {
		t.Fatalf("after (-want +got):\n%s", diff)
	}
	if !e.OnDemand {
		t.Fatalf("expected on-demand entry")
	}
}

func build(t *testing.T, ds ...desc) *Graph {
	t.Helper()
	g := New()
	for _, d := range ds {
		if !g.Add(NewEntry(d)) {
			t.Fatalf("duplicate entry %s", d.name)
		}
	}
	return g
}

func TestGraph_AddRejectsDuplicates(t *testing.T) {
	g := New()
	if !g.Add(NewEntry(desc{name: "a"})) {
		t.Fatalf("expected first add to succeed")
	}
	if g.Add(NewEntry(desc{name: "a@2"})) {
		t.Fatalf("expected duplicate add to fail")
	}
	if g.Len() != 1 {
		t.Fatalf("expected one entry, got %d", g.Len())
	}
}

func TestGraph_SymmetrizeKeepsRelationConsistent(t *testing.T) {
	g := build(t,
		desc{name: "a", after: []string{"b", "missing"}},
		desc{name: "b", before: []string{"c", "b"}},
		desc{name: "c", requires: []string{"ext"}},
	)
	g.RemoveMissing()
	g.RemoveSelfReferences()
	g.Symmetrize()

	for _, x := range g.Names() {
		ex := g.Get(x)
		if ex.Before.Has(x) || ex.After.Has(x) {
			t.Fatalf("%s references itself", x)
		}
		for y := range ex.Before {
			if !g.Has(y) {
				t.Fatalf("%s.Before references missing %s", x, y)
			}
			if !g.Get(y).After.Has(x) {
				t.Fatalf("%s in %s.Before but %s not in %s.After", y, x, x, y)
			}
		}
		for y := range ex.After {
			if !g.Get(y).Before.Has(x) {
				t.Fatalf("%s in %s.After but %s not in %s.Before", y, x, x, y)
			}
		}
	}
}

func TestGraph_PruneOnDemandReachesFixedPoint(t *testing.T) {
	g := build(t,
		desc{name: "a", onDemand: true, requires: []string{"b"}},
		desc{name: "b", onDemand: true, requires: []string{"c"}},
		desc{name: "c", onDemand: true},
		desc{name: "d"},
	)
	g.Symmetrize()

	pruned := g.PruneOnDemand()
	if diff := cmp.Diff([]string{"a", "b", "c"}, pruned); diff != "" {
		t.Fatalf("pruned (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"d"}, g.Names()); diff != "" {
		t.Fatalf("remaining (-want +got):\n%s", diff)
	}
}

func TestGraph_SortReportsBlocked(t *testing.T) {
	g := build(t,
		desc{name: "x", before: []string{"y"}},
		desc{name: "y", before: []string{"x"}},
		desc{name: "z"},
	)
	g.Symmetrize()

	order, blocked := g.Sort()
	if diff := cmp.Diff([]string{"z"}, order); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"x", "y"}, blocked); diff != "" {
		t.Fatalf("blocked (-want +got):\n%s", diff)
	}
}
