package v1alpha1

import (
	"k8s.io/apimachinery/pkg/runtime"
)

// DeepCopyInto copies the receiver, writing into out. in must be non-nil.
func (in *ModManifest) DeepCopyInto(out *ModManifest) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
}

// DeepCopy copies the receiver, creating a new ModManifest.
func (in *ModManifest) DeepCopy() *ModManifest {
	if in == nil {
		return nil
	}
	out := new(ModManifest)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject copies the receiver, creating a new runtime.Object.
func (in *ModManifest) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// DeepCopyInto copies the receiver, writing into out. in must be non-nil.
func (in *ModManifestList) DeepCopyInto(out *ModManifestList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]ModManifest, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

// DeepCopy copies the receiver, creating a new ModManifestList.
func (in *ModManifestList) DeepCopy() *ModManifestList {
	if in == nil {
		return nil
	}
	out := new(ModManifestList)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject copies the receiver, creating a new runtime.Object.
func (in *ModManifestList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// DeepCopyInto copies the receiver, writing into out. in must be non-nil.
func (in *ModManifestSpec) DeepCopyInto(out *ModManifestSpec) {
	*out = *in
	in.Depend.DeepCopyInto(&out.Depend)
	if in.Settings != nil {
		out.Settings = make(map[string]string, len(in.Settings))
		for k, v := range in.Settings {
			out.Settings[k] = v
		}
	}
}

// DeepCopyInto copies the receiver, writing into out. in must be non-nil.
func (in *ModDependencies) DeepCopyInto(out *ModDependencies) {
	*out = *in
	out.Requires = copyStrings(in.Requires)
	out.Conflicts = copyStrings(in.Conflicts)
	out.Before = copyStrings(in.Before)
	out.After = copyStrings(in.After)
	out.Imports = copyStrings(in.Imports)
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
