// Package loader discovers mods, orders them and runs their lifecycle.
package loader

import (
	"context"
	"errors"
	"fmt"
	"time"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"sigs.k8s.io/controller-runtime/pkg/log"

	modv1alpha1 "github.com/bayleafwalker/bindery-modloader/api/v1alpha1"
	"github.com/bayleafwalker/bindery-modloader/internal/lifecycle"
	"github.com/bayleafwalker/bindery-modloader/internal/manifest"
	"github.com/bayleafwalker/bindery-modloader/internal/metrics"
	"github.com/bayleafwalker/bindery-modloader/internal/resolver"
	"github.com/bayleafwalker/bindery-modloader/internal/semver"
)

const (
	// LoaderName is provided to every mod, versioned with Options.Version.
	LoaderName = "modloader"
	// PlatformName is provided when Options.PlatformVersion is set.
	PlatformName = "platform"
	// PlatformVersionSetting is injected into every mod's settings.
	PlatformVersionSetting = "platformVersion"
)

type Options struct {
	// ModsDir is the directory scanned by Plan and Load.
	ModsDir string
	// Version of the loader itself.
	Version string
	// PlatformVersion of the host, if known.
	PlatformVersion string
	Hooks           lifecycle.Hooks
	// Metrics may be nil.
	Metrics *metrics.Metrics
}

// Loader runs load cycles. It holds no state between cycles.
type Loader struct {
	registry *Registry
	opts     Options
}

func New(registry *Registry, opts Options) *Loader {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Loader{registry: registry, opts: opts}
}

// Plan is an ordered, not yet instantiated, set of mods.
type Plan struct {
	Entries []*Entry
	// Pruned names the on-demand mods that will not be loaded.
	Pruned []string
	// Provided lists the virtual names mods could depend on, with versions.
	Provided []string
}

// Names returns the planned mod names in load order.
func (p Plan) Names() []string {
	out := make([]string, 0, len(p.Entries))
	for _, e := range p.Entries {
		out = append(out, e.Name())
	}
	return out
}

func (l *Loader) provided() []string {
	out := []string{ref(LoaderName, l.opts.Version)}
	if l.opts.PlatformVersion != "" {
		out = append(out, ref(PlatformName, l.opts.PlatformVersion))
	}
	return out
}

func ref(name, version string) string {
	if version == "" {
		return name
	}
	return name + semver.Separator + version
}

// Plan discovers the manifests in Options.ModsDir and orders them.
func (l *Loader) Plan(ctx context.Context) (Plan, error) {
	manifests, err := manifest.Discover(l.opts.ModsDir)
	if err != nil {
		return Plan{}, err
	}
	return l.PlanManifests(ctx, manifests)
}

// PlanManifests orders already decoded manifests.
func (l *Loader) PlanManifests(ctx context.Context, manifests []modv1alpha1.ModManifest) (Plan, error) {
	logger := log.FromContext(ctx)

	entries := make([]*Entry, 0, len(manifests))
	for i := range manifests {
		entries = append(entries, &Entry{Manifest: manifests[i]})
	}

	r := resolver.NewDefault[*Entry]().Provided(l.provided()...)
	start := time.Now()
	res, err := r.Resolve(entries)
	l.opts.Metrics.ObserveResolution(time.Since(start), len(res.Order), len(res.Pruned), resolver.Reason(err))
	if err != nil {
		logger.Error(err, "unable to order mods", "reason", resolver.Reason(err))
		return Plan{}, fmt.Errorf("loader: %w", err)
	}

	plan := Plan{Entries: res.Order, Pruned: res.Pruned}
	for _, name := range r.ProvidedNames() {
		version, _ := r.ProvidedVersion(name)
		plan.Provided = append(plan.Provided, ref(name, version))
	}
	for _, name := range res.Pruned {
		logger.V(1).Info("skipping on-demand mod", "mod", name)
	}
	logger.Info("resolved mod order", "mods", plan.Names(), "pruned", len(plan.Pruned))
	return plan, nil
}

// Load runs a full load cycle over Options.ModsDir.
func (l *Loader) Load(ctx context.Context) ([]*lifecycle.Mod, error) {
	manifests, err := manifest.Discover(l.opts.ModsDir)
	if err != nil {
		return nil, err
	}
	return l.LoadManifests(ctx, manifests)
}

// LoadManifests orders manifests, instantiates the surviving mods and drives
// them through the lifecycle. It returns the activated mods in load order.
// Pruned mods are never instantiated.
func (l *Loader) LoadManifests(ctx context.Context, manifests []modv1alpha1.ModManifest) ([]*lifecycle.Mod, error) {
	logger := log.FromContext(ctx)
	l.opts.Metrics.CycleStarted()

	plan, err := l.PlanManifests(ctx, manifests)
	if err != nil {
		return nil, err
	}

	mods := make([]*lifecycle.Mod, 0, len(plan.Entries))
	var errs []error
	for _, e := range plan.Entries {
		instance, err := l.registry.New(e.Manifest.Spec.Factory)
		if err != nil {
			errs = append(errs, fmt.Errorf("mod %s: %w", e.Name(), err))
			continue
		}
		mods = append(mods, lifecycle.NewMod(e.Name(), e.Version(), l.settings(e), instance))
	}
	if err := utilerrors.NewAggregate(errs); err != nil {
		logger.Error(err, "unable to instantiate mods")
		return nil, err
	}

	driver := &lifecycle.Driver{
		Hooks:    l.opts.Hooks,
		Observer: &phaseObserver{logger: logger, metrics: l.opts.Metrics},
	}
	if err := driver.Run(ctx, mods); err != nil {
		var phaseErr *lifecycle.PhaseError
		if errors.As(err, &phaseErr) {
			l.opts.Metrics.LifecycleFailed(phaseErr.Phase)
		}
		return nil, err
	}
	return mods, nil
}

func (l *Loader) settings(e *Entry) lifecycle.Settings {
	settings := lifecycle.Settings(e.Manifest.Spec.Settings).Clone()
	if settings == nil {
		settings = lifecycle.Settings{}
	}
	if l.opts.PlatformVersion != "" {
		settings[PlatformVersionSetting] = l.opts.PlatformVersion
	}
	return settings
}
