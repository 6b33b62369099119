// Package manifest reads mod manifests from disk.
//
// A mods directory holds one "<name>.yaml" ModManifest per mod and, next to
// it, an optional "<name>.config" YAML map whose entries override the
// manifest's settings.
package manifest

import (
	"fmt"

	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/serializer"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"

	modv1alpha1 "github.com/bayleafwalker/bindery-modloader/api/v1alpha1"
)

var (
	scheme = runtime.NewScheme()
	codecs = serializer.NewCodecFactory(scheme, serializer.EnableStrict)
)

func init() {
	utilruntime.Must(modv1alpha1.AddToScheme(scheme))
}

// Decode parses a single manifest document. Unknown fields are rejected.
// The result is not validated.
func Decode(data []byte) (*modv1alpha1.ModManifest, error) {
	obj, gvk, err := codecs.UniversalDeserializer().Decode(data, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("manifest: decode: %w", err)
	}
	m, ok := obj.(*modv1alpha1.ModManifest)
	if !ok {
		return nil, fmt.Errorf("manifest: expected ModManifest, got %s", gvk.Kind)
	}
	return m, nil
}
