package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ModManifest declares one mod: which factory builds it, what it depends on
// and the settings it is configured with.
//
// +kubebuilder:object:root=true
type ModManifest struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec ModManifestSpec `json:"spec"`
}

type ModManifestSpec struct {
	// Factory names the registered constructor for the mod.
	Factory string `json:"factory"`
	// Version is informational only.
	Version  string            `json:"version,omitempty"`
	Depend   ModDependencies   `json:"depend,omitempty"`
	Settings map[string]string `json:"settings,omitempty"`
}

// ModDependencies holds the load constraints of a mod. Every name may carry
// an "@version" suffix, which is ignored.
type ModDependencies struct {
	// Requires must be installed mods or names provided by the loader.
	Requires []string `json:"requires,omitempty"`
	// Conflicts must be absent.
	Conflicts []string `json:"conflicts,omitempty"`
	// Before are mods that load before this one when installed.
	Before []string `json:"before,omitempty"`
	// After are mods that load after this one when installed.
	After []string `json:"after,omitempty"`
	// OnDemand drops the mod unless another mod still needs it.
	OnDemand bool `json:"onDemand,omitempty"`
	// Imports are treated as additional requirements.
	Imports []string `json:"imports,omitempty"`
}

// +kubebuilder:object:root=true
type ModManifestList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []ModManifest `json:"items"`
}

func init() {
	SchemeBuilder.Register(&ModManifest{}, &ModManifestList{})
}
