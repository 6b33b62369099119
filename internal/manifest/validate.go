package manifest

import (
	"strings"

	"k8s.io/apimachinery/pkg/util/validation/field"

	modv1alpha1 "github.com/bayleafwalker/bindery-modloader/api/v1alpha1"
	"github.com/bayleafwalker/bindery-modloader/internal/semver"
)

// Validate checks a manifest after its name has been defaulted.
func Validate(m *modv1alpha1.ModManifest) field.ErrorList {
	var errs field.ErrorList

	namePath := field.NewPath("metadata", "name")
	switch {
	case strings.TrimSpace(m.Name) == "":
		errs = append(errs, field.Required(namePath, "mod name is required"))
	case strings.Contains(m.Name, semver.Separator):
		errs = append(errs, field.Invalid(namePath, m.Name, "mod name must not carry a version"))
	}

	spec := field.NewPath("spec")
	if strings.TrimSpace(m.Spec.Factory) == "" {
		errs = append(errs, field.Required(spec.Child("factory"), "factory is required"))
	}

	depend := spec.Child("depend")
	d := m.Spec.Depend
	errs = append(errs, validateRefs(depend.Child("requires"), d.Requires, m.Name, true)...)
	errs = append(errs, validateRefs(depend.Child("conflicts"), d.Conflicts, m.Name, true)...)
	errs = append(errs, validateRefs(depend.Child("imports"), d.Imports, m.Name, true)...)
	errs = append(errs, validateRefs(depend.Child("before"), d.Before, m.Name, false)...)
	errs = append(errs, validateRefs(depend.Child("after"), d.After, m.Name, false)...)
	return errs
}

// validateRefs rejects empty names. Self references are only an error for
// hard constraints; ordering hints pointing at the mod itself are dropped
// during resolution.
func validateRefs(path *field.Path, refs []string, self string, hard bool) field.ErrorList {
	var errs field.ErrorList
	for i, ref := range refs {
		name := semver.StripVersion(ref)
		if name == "" {
			errs = append(errs, field.Invalid(path.Index(i), ref, "name must not be empty"))
			continue
		}
		if hard && name == self {
			errs = append(errs, field.Invalid(path.Index(i), ref, "mod must not reference itself"))
		}
	}
	return errs
}
