// Package v1alpha1 contains the mod manifest schema.
//
// +kubebuilder:object:generate=true
// +groupName=modloader.bindery.dev
package v1alpha1

import (
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/scheme"
)

var (
	// GroupVersion is the group and version of mod manifests.
	GroupVersion = schema.GroupVersion{Group: "modloader.bindery.dev", Version: "v1alpha1"}

	SchemeBuilder = &scheme.Builder{GroupVersion: GroupVersion}

	// AddToScheme adds the manifest kinds to a scheme.
	AddToScheme = SchemeBuilder.AddToScheme
)
