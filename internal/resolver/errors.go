package resolver

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnresolvedRequirement matches errors for a required name that is neither a mod nor provided.
	ErrUnresolvedRequirement = errors.New("unresolved requirement")
	// ErrConflict matches errors for a conflicting name that is present.
	ErrConflict = errors.New("conflict detected")
	// ErrUnresolvedOrder matches errors for entries left blocked by a cycle.
	ErrUnresolvedOrder = errors.New("unresolved order")
	// ErrDuplicateName matches errors for two descriptors with the same canonical name.
	ErrDuplicateName = errors.New("duplicate name")
)

type UnresolvedRequirementError struct {
	Mod      string
	Required string
}

func (e *UnresolvedRequirementError) Error() string {
	return fmt.Sprintf("%s requires %s which is unavailable", e.Mod, e.Required)
}

func (e *UnresolvedRequirementError) Is(target error) bool {
	return target == ErrUnresolvedRequirement
}

type ConflictError struct {
	Mod      string
	Conflict string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflicts with %s", e.Mod, e.Conflict)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// UnresolvedOrderError lists the entries still blocked once ordering stops.
type UnresolvedOrderError struct {
	Blocked []string
}

func (e *UnresolvedOrderError) Error() string {
	return "unresolved order for the following elements: " + strings.Join(e.Blocked, ", ")
}

func (e *UnresolvedOrderError) Is(target error) bool {
	return target == ErrUnresolvedOrder
}

type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s is declared more than once", e.Name)
}

func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// Reason maps a resolution error to a short, stable label.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnresolvedRequirement):
		return "unresolved_requirement"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrUnresolvedOrder):
		return "unresolved_order"
	case errors.Is(err, ErrDuplicateName):
		return "duplicate_name"
	default:
		return "other"
	}
}
