package semver

import (
	"fmt"
	"strings"

	mm "github.com/Masterminds/semver/v3"
)

// Separator splits a mod reference into its name and an optional version,
// e.g. "modloader@0.24".
const Separator = "@"

// Version is a semantic version.
//
// This is a thin wrapper around github.com/Masterminds/semver/v3.
type Version struct {
	v *mm.Version
}

func ParseVersion(raw string) (Version, error) {
	v, err := mm.NewVersion(raw)
	if err != nil {
		return Version{}, fmt.Errorf("semver: parse version %q: %w", raw, err)
	}
	return Version{v: v}, nil
}

// Compare compares a and b, returning:
// -1 if a < b
//
//	0 if a == b
//	1 if a > b
func Compare(a, b Version) int {
	if a.v == nil && b.v == nil {
		return 0
	}
	if a.v == nil {
		return -1
	}
	if b.v == nil {
		return 1
	}
	return a.v.Compare(b.v)
}

// Split separates a reference into name and version. Only the first
// separator counts; whitespace around both parts is dropped.
func Split(ref string) (name, version string) {
	name, version, _ = strings.Cut(ref, Separator)
	return strings.TrimSpace(name), strings.TrimSpace(version)
}

// StripVersion returns the name part of ref.
func StripVersion(ref string) string {
	name, _ := Split(ref)
	return name
}

// Newer reports whether the raw version a sorts above b. Text that does not
// parse as a version sorts below anything that does, and two unparsable
// values fall back to plain string comparison.
func Newer(a, b string) bool {
	va, errA := ParseVersion(a)
	vb, errB := ParseVersion(b)
	switch {
	case errA != nil && errB != nil:
		return a > b
	case errA != nil:
		return false
	case errB != nil:
		return true
	}
	return Compare(va, vb) > 0
}
