// Package lifecycle drives ordered mods through the fixed load phases.
package lifecycle

// Settings are the key/value pairs handed to a mod's configure phase.
type Settings map[string]string

// Clone returns an independent copy of s.
func (s Settings) Clone() Settings {
	if s == nil {
		return nil
	}
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Configurable mods read their settings before anything else runs.
type Configurable interface {
	Configure(settings Settings) error
}

// PreInitable mods run after configuration and before any mod's Init.
type PreInitable interface {
	PreInit() error
}

// Initable mods run once every mod finished PreInit.
type Initable interface {
	Init() error
}

// Listener mods are told about every activated mod, themselves included.
type Listener interface {
	ModInitialized(mod *Mod) error
}

// Versioned mods report their own version. An empty string means unknown.
type Versioned interface {
	Version() string
}

// Capabilities are the optional phase callbacks of one mod. A nil field
// means the mod does not take part in that phase.
type Capabilities struct {
	Configure      func(Settings) error
	PreInit        func() error
	Init           func() error
	ModInitialized func(*Mod) error
}

// CapabilitiesOf collects the phase callbacks implemented by instance. It is
// meant to be called once, when a mod is registered with the driver.
func CapabilitiesOf(instance any) Capabilities {
	var c Capabilities
	if v, ok := instance.(Configurable); ok {
		c.Configure = v.Configure
	}
	if v, ok := instance.(PreInitable); ok {
		c.PreInit = v.PreInit
	}
	if v, ok := instance.(Initable); ok {
		c.Init = v.Init
	}
	if v, ok := instance.(Listener); ok {
		c.ModInitialized = v.ModInitialized
	}
	return c
}

// staged reports whether the mod uses the pre-init or init phase. Staged
// mods are configured first, the rest are configured last.
func (c Capabilities) staged() bool {
	return c.PreInit != nil || c.Init != nil
}

// Mod is the handle the driver works on.
type Mod struct {
	Name         string
	Version      string
	Settings     Settings
	Capabilities Capabilities
	// Instance is the mod value itself; the driver never inspects it.
	Instance any
}

// NewMod builds a handle for instance, detecting its capabilities. A
// Versioned instance overrides version.
func NewMod(name, version string, settings Settings, instance any) *Mod {
	if v, ok := instance.(Versioned); ok && v.Version() != "" {
		version = v.Version()
	}
	return &Mod{
		Name:         name,
		Version:      version,
		Settings:     settings,
		Capabilities: CapabilitiesOf(instance),
		Instance:     instance,
	}
}

// DisplayVersion returns the version or "unversioned".
func (m *Mod) DisplayVersion() string {
	if m.Version == "" {
		return "unversioned"
	}
	return m.Version
}
