package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	yaml "sigs.k8s.io/yaml/goyaml.v3"

	modv1alpha1 "github.com/bayleafwalker/bindery-modloader/api/v1alpha1"
)

const (
	// ManifestExt is the file extension of mod manifests.
	ManifestExt = ".yaml"
	// ConfigExt is the file extension of settings overlays.
	ConfigExt = ".config"
)

// Discover loads every manifest in dir, in file name order. All broken
// manifests are reported together.
func Discover(dir string) ([]modv1alpha1.ModManifest, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*"+ManifestExt))
	if err != nil {
		return nil, fmt.Errorf("manifest: list %s: %w", dir, err)
	}

	out := make([]modv1alpha1.ModManifest, 0, len(paths))
	var errs []error
	for _, path := range paths {
		m, err := Load(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, *m)
	}
	if err := utilerrors.NewAggregate(errs); err != nil {
		return nil, err
	}
	return out, nil
}

// Load reads one manifest file. The mod name defaults to the file name
// without extension. A config file sharing the manifest's file name is
// applied on top of the manifest settings, whatever metadata.name says.
func Load(path string) (*modv1alpha1.ModManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	m, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	base := strings.TrimSuffix(filepath.Base(path), ManifestExt)
	if m.Name == "" {
		m.Name = base
	}

	overlay, err := LoadSettings(filepath.Join(filepath.Dir(path), base+ConfigExt))
	if err != nil {
		return nil, err
	}
	if len(overlay) > 0 && m.Spec.Settings == nil {
		m.Spec.Settings = make(map[string]string, len(overlay))
	}
	for k, v := range overlay {
		m.Spec.Settings[k] = v
	}

	if errs := Validate(m); len(errs) > 0 {
		return nil, fmt.Errorf("manifest: %s: %w", path, errs.ToAggregate())
	}
	return m, nil
}

// LoadSettings reads a flat YAML map of settings. A missing file yields no
// settings. Values are kept exactly as written, so "007" stays "007" and
// "yes" stays "yes"; nested values are rejected.
func LoadSettings(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("manifest: %s: %w", path, err)
	}

	out := make(map[string]string, len(raw))
	for k, node := range raw {
		if node.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("manifest: %s: setting %q: expected a scalar value", path, k)
		}
		out[k] = node.Value
	}
	return out, nil
}
