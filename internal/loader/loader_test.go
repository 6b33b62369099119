package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	modv1alpha1 "github.com/bayleafwalker/bindery-modloader/api/v1alpha1"
	"github.com/bayleafwalker/bindery-modloader/internal/lifecycle"
	"github.com/bayleafwalker/bindery-modloader/internal/metrics"
	"github.com/bayleafwalker/bindery-modloader/internal/resolver"
)

func mm(name string, depend modv1alpha1.ModDependencies, settings map[string]string) modv1alpha1.ModManifest {
	return modv1alpha1.ModManifest{
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Spec: modv1alpha1.ModManifestSpec{
			Factory:  name,
			Depend:   depend,
			Settings: settings,
		},
	}
}

type journal struct {
	calls []string
}

type stagedMod struct {
	name     string
	j        *journal
	settings lifecycle.Settings
}

func (m *stagedMod) Configure(s lifecycle.Settings) error {
	m.settings = s
	m.j.calls = append(m.j.calls, m.name+".configure")
	return nil
}

func (m *stagedMod) PreInit() error {
	m.j.calls = append(m.j.calls, m.name+".preinit")
	return nil
}

func (m *stagedMod) Init() error {
	m.j.calls = append(m.j.calls, m.name+".init")
	return nil
}

type failingMod struct{}

func (failingMod) Init() error { return errors.New("no hooks for you") }

func registryFor(t *testing.T, j *journal, built map[string]int, names ...string) *Registry {
	t.Helper()
	reg := NewRegistry()
	for _, name := range names {
		name := name
		reg.MustRegister(name, func() (any, error) {
			built[name]++
			return &stagedMod{name: name, j: j}, nil
		})
	}
	return reg
}

func TestLoader_LoadManifests_RunsLifecycleInOrder(t *testing.T) {
	j := &journal{}
	built := map[string]int{}
	reg := registryFor(t, j, built, "core", "extra", "lazy")

	manifests := []modv1alpha1.ModManifest{
		mm("extra", modv1alpha1.ModDependencies{Requires: []string{"core", "modloader"}}, map[string]string{"color": "blue"}),
		mm("core", modv1alpha1.ModDependencies{}, nil),
		mm("lazy", modv1alpha1.ModDependencies{OnDemand: true}, nil),
	}

	var hooks []string
	l := New(reg, Options{
		Version:         "0.24",
		PlatformVersion: "1.9.3",
		Hooks: lifecycle.Hooks{
			Setup: func() error { hooks = append(hooks, "setup"); return nil },
		},
	})

	mods, err := l.LoadManifests(context.Background(), manifests)
	if err != nil {
		t.Fatalf("LoadManifests error: %v", err)
	}

	var names []string
	for _, m := range mods {
		names = append(names, m.Name)
	}
	if diff := cmp.Diff([]string{"core", "extra"}, names); diff != "" {
		t.Fatalf("unexpected mods (-want +got):\n%s", diff)
	}
	if built["lazy"] != 0 {
		t.Fatalf("expected pruned mod not to be built")
	}

	want := []string{
		"core.configure", "extra.configure",
		"core.preinit", "extra.preinit",
		"core.init", "extra.init",
	}
	if diff := cmp.Diff(want, j.calls); diff != "" {
		t.Fatalf("unexpected calls (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"setup"}, hooks); diff != "" {
		t.Fatalf("unexpected hooks (-want +got):\n%s", diff)
	}

	extra := mods[1].Instance.(*stagedMod)
	wantSettings := lifecycle.Settings{"color": "blue", PlatformVersionSetting: "1.9.3"}
	if diff := cmp.Diff(wantSettings, extra.settings); diff != "" {
		t.Fatalf("unexpected settings (-want +got):\n%s", diff)
	}
	if manifests[0].Spec.Settings[PlatformVersionSetting] != "" {
		t.Fatalf("manifest settings were modified")
	}
}

func TestLoader_ImportsAreRequirements(t *testing.T) {
	l := New(NewRegistry(), Options{})
	_, err := l.PlanManifests(context.Background(), []modv1alpha1.ModManifest{
		mm("a", modv1alpha1.ModDependencies{Imports: []string{"b"}}, nil),
	})
	if !errors.Is(err, resolver.ErrUnresolvedRequirement) {
		t.Fatalf("expected unresolved requirement, got %v", err)
	}
}

func TestLoader_PlanReportsProvidedAndPruned(t *testing.T) {
	l := New(NewRegistry(), Options{Version: "0.24", PlatformVersion: "2.0"})
	plan, err := l.PlanManifests(context.Background(), []modv1alpha1.ModManifest{
		mm("a", modv1alpha1.ModDependencies{Requires: []string{"platform@1.0"}}, nil),
		mm("b", modv1alpha1.ModDependencies{OnDemand: true}, nil),
	})
	if err != nil {
		t.Fatalf("PlanManifests error: %v", err)
	}
	if diff := cmp.Diff([]string{"a"}, plan.Names()); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, plan.Pruned); diff != "" {
		t.Fatalf("pruned (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"modloader@0.24", "platform@2.0"}, plan.Provided); diff != "" {
		t.Fatalf("provided (-want +got):\n%s", diff)
	}
}

func TestLoader_ResolutionErrorIsCounted(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	l := New(NewRegistry(), Options{Metrics: m})

	_, err := l.LoadManifests(context.Background(), []modv1alpha1.ModManifest{
		mm("a", modv1alpha1.ModDependencies{Conflicts: []string{"b"}}, nil),
		mm("b", modv1alpha1.ModDependencies{}, nil),
	})
	if !errors.Is(err, resolver.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if got := testutil.ToFloat64(m.ResolutionErrorsTotal.WithLabelValues("conflict")); got != 1 {
		t.Fatalf("expected 1 conflict, got %v", got)
	}
	if got := testutil.ToFloat64(m.LoadCyclesTotal); got != 1 {
		t.Fatalf("expected 1 cycle, got %v", got)
	}
}

func TestLoader_UnknownFactoryFails(t *testing.T) {
	l := New(NewRegistry(), Options{})
	_, err := l.LoadManifests(context.Background(), []modv1alpha1.ModManifest{
		mm("ghost", modv1alpha1.ModDependencies{}, nil),
	})
	if err == nil {
		t.Fatalf("expected error for unknown factory")
	}
}

func TestLoader_LifecycleFailureIsAttributed(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	reg := NewRegistry()
	reg.MustRegister("broken", func() (any, error) { return failingMod{}, nil })
	l := New(reg, Options{Metrics: m})

	_, err := l.LoadManifests(context.Background(), []modv1alpha1.ModManifest{
		mm("broken", modv1alpha1.ModDependencies{}, nil),
	})
	var phaseErr *lifecycle.PhaseError
	if !errors.As(err, &phaseErr) || phaseErr.Mod != "broken" || phaseErr.Phase != lifecycle.PhaseInit {
		t.Fatalf("expected init failure of broken, got %v", err)
	}
	if got := testutil.ToFloat64(m.LifecycleErrorsTotal.WithLabelValues(lifecycle.PhaseInit)); got != 1 {
		t.Fatalf("expected 1 lifecycle error, got %v", got)
	}
}

func TestLoader_LoadDiscoversDirectory(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("core.yaml", "apiVersion: modloader.bindery.dev/v1alpha1\nkind: ModManifest\nspec:\n  factory: core\n")
	write("extra.yaml", "apiVersion: modloader.bindery.dev/v1alpha1\nkind: ModManifest\nspec:\n  factory: extra\n  depend:\n    before: [core]\n")
	write("extra.config", "color: red\n")

	j := &journal{}
	reg := registryFor(t, j, map[string]int{}, "core", "extra")
	mods, err := New(reg, Options{ModsDir: dir}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(mods) != 2 || mods[0].Name != "core" || mods[1].Name != "extra" {
		t.Fatalf("unexpected mods: %+v", mods)
	}
	if got := mods[1].Settings["color"]; got != "red" {
		t.Fatalf("expected overlay setting, got %q", got)
	}
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	factory := func() (any, error) { return struct{}{}, nil }
	if err := reg.Register("a", factory); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := reg.Register("a", factory); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := reg.Register("", factory); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if diff := cmp.Diff([]string{"a"}, reg.Names()); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
}
