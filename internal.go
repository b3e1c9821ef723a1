// Copyright 2024 aphage
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package promise

import (
	"errors"

	"github.com/aphage/promise/internal/state"
)

// panic messages
const (
	nilTaskPanicMsg     = "promise: the provided task is nil"
	nilCallbackPanicMsg = "promise: the provided callback is nil"
	nilExecutorPanicMsg = "promise: the provided executor is nil"
	nilErrorPanicMsg    = "promise: the provided error is nil"
)

// runTask invokes the task with the resolve/reject callbacks bound to s,
// inside the failure boundary: a panic escaping the task rejects s instead
// of reaching the executor. A double-settlement violation is re-raised, not
// converted, so it stays fatal.
func runTask[T any](s *state.State[T], task func(resolve func(T), reject func(error))) {
	defer func() {
		if v := recover(); v != nil {
			rethrowViolation(v)
			s.Reject(wrapPanic(v))
		}
	}()

	task(s.Resolve, func(err error) {
		if err == nil {
			err = ErrNilRejection
		}
		s.Reject(err)
	})
}

// handleReturns must be deferred around a handler invocation.
// On a normal return it settles next from *resP; on a panic it rejects next
// with the captured payload, keeping double-settlement violations fatal.
func handleReturns[U any](next *state.State[U], resP *Result[U]) {
	if v := recover(); v != nil {
		rethrowViolation(v)
		next.Reject(wrapPanic(v))
		return
	}
	settleTo(next, *resP)
}

// settleTo settles s from a handler's returned Result.
// A nil Result is the unit-typed return and fulfills with the zero value.
func settleTo[U any](s *state.State[U], res Result[U]) {
	if res == nil {
		var zero U
		s.Resolve(zero)
		return
	}
	if err := res.Err(); err != nil {
		s.Reject(err)
		return
	}
	s.Resolve(res.Val())
}

// rethrowViolation re-raises a recovered ErrSettled panic.
// Converting it into a rejection would mask the double-settlement bug that
// caused it.
func rethrowViolation(v any) {
	if err, ok := v.(error); ok && errors.Is(err, state.ErrSettled) {
		panic(v)
	}
}

func wrapPanic(v any) error {
	return &PanicError{V: v}
}
