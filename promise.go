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
	"github.com/aphage/promise/internal/state"
)

// Promise is a handle on an eventual value of type T, or an eventual error.
//
// It wraps a single shared state plus the executor used for its own
// chaining; copying the handle is cheap and all copies observe the same
// settlement.
//
// The zero value is not usable; promises are created by New, Resolve,
// Reject, or by chaining.
type Promise[T any] struct {
	state *state.State[T]
	exec  Executor
}

// New creates a Promise from a task and begins execution by submitting the
// task to e.
//
// The task receives a resolve and a reject callback, and must eventually
// call exactly one of them, once. A panic escaping the task is captured and
// rejects the promise with a *PanicError. Settling the promise a second
// time panics with ErrSettled.
//
// New itself never blocks; whether the task has already run by the time New
// returns is entirely up to the executor. It panics if task or e is nil.
func New[T any](task func(resolve func(T), reject func(error)), e Executor) *Promise[T] {
	if task == nil {
		panic(nilTaskPanicMsg)
	}
	if e == nil {
		panic(nilExecutorPanicMsg)
	}

	p := &Promise[T]{state: state.New[T](e.Execute), exec: e}
	e.Execute(func() {
		runTask(p.state, task)
	})
	return p
}

// Resolve returns an already-fulfilled Promise carrying val.
// No task runs and nothing is scheduled; e is only used for continuations
// chained later. It panics if e is nil.
func Resolve[T any](val T, e Executor) *Promise[T] {
	if e == nil {
		panic(nilExecutorPanicMsg)
	}
	return &Promise[T]{state: state.Settled(e.Execute, val, nil), exec: e}
}

// Reject returns an already-rejected Promise carrying err.
// It panics if err or e is nil.
func Reject[T any](err error, e Executor) *Promise[T] {
	if err == nil {
		panic(nilErrorPanicMsg)
	}
	if e == nil {
		panic(nilExecutorPanicMsg)
	}
	var zero T
	return &Promise[T]{state: state.Settled(e.Execute, zero, err), exec: e}
}

// Then chains a type-changing continuation on p, returning the Promise for
// the handler's result type.
//
// Once p settles, the matching handler runs (through p's executor):
// onFulfilled with the value, or, when supplied, onRejected with the error.
// The Result it returns settles the next promise; a rejection handler that
// returns a value Result recovers the chain. Without an onRejected, a
// rejection propagates to the next promise with the original error payload
// unchanged.
//
// Both handlers must return Result[U]; the compiler pins U from their
// signatures. It panics if onFulfilled, or a supplied onRejected, is nil.
func Then[T, U any](
	p *Promise[T],
	onFulfilled func(val T) Result[U],
	onRejected ...func(err error) Result[U],
) *Promise[U] {
	if onFulfilled == nil {
		panic(nilCallbackPanicMsg)
	}

	var rejectedCb func(err error) Result[U]
	if len(onRejected) != 0 {
		if onRejected[0] == nil {
			panic(nilCallbackPanicMsg)
		}
		rejectedCb = onRejected[0]
	}
	return thenCall(p, onFulfilled, rejectedCb)
}

// Then is the same-type form of the package-level Then function.
func (p *Promise[T]) Then(
	onFulfilled func(val T) Result[T],
	onRejected ...func(err error) Result[T],
) *Promise[T] {
	return Then(p, onFulfilled, onRejected...)
}

// Catch chains a rejection handler on p.
//
// It's sugar for Then with an identity fulfillment handler: a fulfillment
// value is forwarded unchanged, and only a rejection reaches onRejected.
// It panics if onRejected is nil.
func (p *Promise[T]) Catch(onRejected func(err error) Result[T]) *Promise[T] {
	if onRejected == nil {
		panic(nilCallbackPanicMsg)
	}
	return thenCall(p, func(val T) Result[T] {
		return Val(val)
	}, onRejected)
}

// Finally chains a side-effecting callback that runs exactly once, whether p
// is fulfilled or rejected, and forwards p's original value or error
// unchanged to the returned Promise.
//
// A panic inside onFinally rejects the returned Promise with a *PanicError,
// discarding the original outcome. It panics if onFinally is nil.
func (p *Promise[T]) Finally(onFinally func()) *Promise[T] {
	if onFinally == nil {
		panic(nilCallbackPanicMsg)
	}
	return finallyCall(p, onFinally)
}

// Callback registers a terminal observer on p, without creating a new
// promise. Once p settles, cb runs through p's executor with the settled
// Result. Observers and chained continuations fire in registration order.
//
// It panics if cb is nil.
func (p *Promise[T]) Callback(cb func(res Result[T])) {
	if cb == nil {
		panic(nilCallbackPanicMsg)
	}
	callbackCall(p, cb)
}

// State returns the current settlement of p.
// A terminal return is final; a Pending return may be stale by the time the
// caller acts on it.
func (p *Promise[T]) State() State {
	return State(p.state.Settlement())
}

// Res returns p's Result and true if p has settled, or nil and false while
// it's still Pending. It never blocks.
func (p *Promise[T]) Res() (res Result[T], ok bool) {
	switch p.state.Settlement() {
	case state.Fulfilled:
		return Val(p.state.Value()), true
	case state.Rejected:
		return Err[T](p.state.Err()), true
	default:
		return nil, false
	}
}
