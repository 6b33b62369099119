package lifecycle

import "fmt"

// PhaseError attributes a failure to the phase and mod that raised it. It
// unwraps to the original error.
type PhaseError struct {
	Phase string
	Mod   string
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("lifecycle: %s %s: %v", e.Mod, e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}
