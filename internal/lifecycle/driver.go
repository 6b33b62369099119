package lifecycle

import (
	"context"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Phase names used for attribution.
const (
	PhaseConfigure   = "configure"
	PhaseHostSetup   = "hostSetup"
	PhasePreInit     = "preinit"
	PhaseHostPreInit = "hostPreInit"
	PhaseInit        = "init"
	PhaseHostInit    = "hostInit"
	PhaseModListener = "modListener"
)

// HostName is the attribution name used for host hooks.
const HostName = "host"

// Hooks are host callbacks invoked once each at fixed points of a load
// cycle. Nil hooks are skipped.
type Hooks struct {
	// Setup runs after the staged mods are configured, before any PreInit.
	Setup func() error
	// PreInit runs after every mod's PreInit.
	PreInit func() error
	// Init runs after every mod's Init.
	Init func() error
}

// Observer is told which mod and phase is about to run. The returned
// function is called when the step finishes, successfully or not.
type Observer interface {
	Enter(mod, phase string) (exit func())
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(mod, phase string) func()

func (f ObserverFunc) Enter(mod, phase string) func() {
	return f(mod, phase)
}

// Driver runs the load phases over an ordered mod list.
//
// Phases run strictly in sequence, one mod at a time, in the given order.
// The first failure aborts the whole cycle.
type Driver struct {
	Hooks    Hooks
	Observer Observer
}

// Run drives mods through every phase:
//
//  1. configure mods that also pre-init or init
//  2. Hooks.Setup
//  3. pre-init
//  4. Hooks.PreInit
//  5. init
//  6. Hooks.Init
//  7. configure the remaining configurable mods
//  8. notify listeners of every activated mod
//
// Errors are returned as *PhaseError wrapping the mod's error.
func (d *Driver) Run(ctx context.Context, mods []*Mod) error {
	logger := log.FromContext(ctx)

	for _, m := range mods {
		c := m.Capabilities
		if c.Configure == nil || !c.staged() {
			continue
		}
		if err := d.step(m.Name, PhaseConfigure, func() error { return c.Configure(m.Settings) }); err != nil {
			return err
		}
	}

	if err := d.hook(PhaseHostSetup, d.Hooks.Setup); err != nil {
		return err
	}

	for _, m := range mods {
		if m.Capabilities.PreInit == nil {
			continue
		}
		if err := d.step(m.Name, PhasePreInit, m.Capabilities.PreInit); err != nil {
			return err
		}
	}

	if err := d.hook(PhaseHostPreInit, d.Hooks.PreInit); err != nil {
		return err
	}

	for _, m := range mods {
		if m.Capabilities.Init == nil {
			continue
		}
		if err := d.step(m.Name, PhaseInit, m.Capabilities.Init); err != nil {
			return err
		}
	}

	if err := d.hook(PhaseHostInit, d.Hooks.Init); err != nil {
		return err
	}

	for _, m := range mods {
		c := m.Capabilities
		if c.Configure == nil || c.staged() {
			continue
		}
		if err := d.step(m.Name, PhaseConfigure, func() error { return c.Configure(m.Settings) }); err != nil {
			return err
		}
	}

	for _, m := range mods {
		logger.Info("loaded mod", "mod", m.Name, "version", m.DisplayVersion())
	}

	for _, listener := range mods {
		notify := listener.Capabilities.ModInitialized
		if notify == nil {
			continue
		}
		err := d.step(listener.Name, PhaseModListener, func() error {
			for _, m := range mods {
				if err := notify(m); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) hook(phase string, fn func() error) error {
	if fn == nil {
		return nil
	}
	return d.step(HostName, phase, fn)
}

func (d *Driver) step(mod, phase string, fn func() error) error {
	if d.Observer != nil {
		exit := d.Observer.Enter(mod, phase)
		defer exit()
	}
	if err := fn(); err != nil {
		return &PhaseError{Phase: phase, Mod: mod, Err: err}
	}
	return nil
}
