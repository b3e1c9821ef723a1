package promise

import (
	"errors"
	"fmt"

	"github.com/aphage/promise/internal/state"
)

// ErrSettled is the panic value raised when a promise is settled more than
// once (resolve after resolve, reject after resolve, and so on).
// The second settlement is a bug in the task or handler that performed it,
// and it's deliberately fatal rather than a silent no-op.
var ErrSettled = state.ErrSettled

// ErrNilRejection replaces a nil error passed to a task's reject callback,
// keeping the invariant that a rejected promise always carries a non-nil
// error.
var ErrNilRejection = errors.New("promise: rejected with a nil error")

// PanicError wraps a value recovered from a panic inside a task or a
// handler. It rejects the next promise in the chain, preserving the original
// panic payload so that whatever finally observes the rejection can inspect
// it, or re-raise it with panic(err).
type PanicError struct {
	// V is the value the panic was called with.
	V any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("promise: panic in the promise chain: %v", e.V)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.V.(error); ok {
		return err
	}
	return nil
}
