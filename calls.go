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

// calls.go: contains the functions that implement the chaining methods and
// functions. they are extracted here since they are shared across the
// different public forms.

package promise

import (
	"github.com/aphage/promise/internal/state"
)

// newPromFollow creates the pending "next" promise for a chaining call,
// sharing the previous promise's executor.
func newPromFollow[U any](e Executor) *Promise[U] {
	return &Promise[U]{state: state.New[U](e.Execute), exec: e}
}

func thenCall[T, U any](
	p *Promise[T],
	onFulfilled func(val T) Result[U],
	onRejected func(err error) Result[U],
) *Promise[U] {
	nextProm := newPromFollow[U](p.exec)
	p.state.Register(func() {
		followHandler(p.state, nextProm.state, onFulfilled, onRejected)
	})
	return nextProm
}

// followHandler runs after prev is terminal. It dispatches to the matching
// handler inside the failure boundary and settles next from the handler's
// Result. It only ever reads prev (immutable by now, so lock-free) and
// writes next, one state at a time.
func followHandler[T, U any](
	prev *state.State[T],
	next *state.State[U],
	onFulfilled func(val T) Result[U],
	onRejected func(err error) Result[U],
) {
	var res Result[U]
	defer handleReturns(next, &res)

	if prev.Settlement() == state.Fulfilled {
		res = onFulfilled(prev.Value())
		return
	}

	if onRejected == nil {
		// no rejection handler: propagate the rejection unchanged.
		res = Err[U](prev.Err())
		return
	}
	res = onRejected(prev.Err())
}

func finallyCall[T any](p *Promise[T], onFinally func()) *Promise[T] {
	nextProm := newPromFollow[T](p.exec)
	p.state.Register(func() {
		var res Result[T]
		defer handleReturns(nextProm.state, &res)

		onFinally()

		// forward the original outcome past the side effect.
		if p.state.Settlement() == state.Fulfilled {
			res = Val(p.state.Value())
		} else {
			res = Err[T](p.state.Err())
		}
	})
	return nextProm
}

func callbackCall[T any](p *Promise[T], cb func(res Result[T])) {
	p.state.Register(func() {
		if p.state.Settlement() == state.Rejected {
			cb(Err[T](p.state.Err()))
			return
		}
		cb(Val(p.state.Value()))
	})
}
