package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrAbstractCapability reports that a stage was asked for a capability it
	// does not implement, e.g. producing from a Sink. Always a wiring defect.
	ErrAbstractCapability = errors.New("abstract capability")

	// ErrInvariantViolation reports a broken kernel contract: a second item
	// offered to a busy server, a commit with a stale reservation, a missed event.
	ErrInvariantViolation = errors.New("invariant violation")
)

// ContractError is the value the kernel panics with when a contract is broken.
// It unwraps to one of the sentinel errors above.
type ContractError struct {
	Kind   error
	Actor  string
	Detail string
}

func (e *ContractError) Error() string {
	if e.Actor == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("%v: %s: %s", e.Kind, e.Actor, e.Detail)
}

func (e *ContractError) Unwrap() error {
	return e.Kind
}

// violation aborts the run. There is no recovery path inside the kernel.
func violation(actor string, format string, args ...any) {
	panic(&ContractError{
		Kind:   ErrInvariantViolation,
		Actor:  actor,
		Detail: fmt.Sprintf(format, args...),
	})
}

func abstractCapability(stage string, capability string) error {
	return &ContractError{
		Kind:   ErrAbstractCapability,
		Actor:  stage,
		Detail: capability + " not implemented",
	}
}
