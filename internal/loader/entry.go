package loader

import (
	modv1alpha1 "github.com/bayleafwalker/bindery-modloader/api/v1alpha1"
)

// Entry is a discovered mod that has not been instantiated yet.
type Entry struct {
	Manifest modv1alpha1.ModManifest
}

func (e *Entry) Name() string {
	return e.Manifest.Name
}

// Requires includes the manifest's imports.
func (e *Entry) Requires() []string {
	d := e.Manifest.Spec.Depend
	out := make([]string, 0, len(d.Requires)+len(d.Imports))
	out = append(out, d.Requires...)
	return append(out, d.Imports...)
}

func (e *Entry) Conflicts() []string {
	return e.Manifest.Spec.Depend.Conflicts
}

func (e *Entry) Before() []string {
	return e.Manifest.Spec.Depend.Before
}

func (e *Entry) After() []string {
	return e.Manifest.Spec.Depend.After
}

func (e *Entry) OnDemand() bool {
	return e.Manifest.Spec.Depend.OnDemand
}

func (e *Entry) Version() string {
	return e.Manifest.Spec.Version
}
