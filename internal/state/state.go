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

package state

import (
	"errors"
	"sync"
)

// ErrSettled is the panic value used when Resolve or Reject is called on a
// State that has already left Pending.
// Settling a state twice is a bug in the task or handler that did it, so it's
// surfaced as a fatal violation instead of being silently dropped.
var ErrSettled = errors.New("promise: state already settled")

// Settlement describes the one-time transition of a State.
// It only ever moves from Pending to one of the terminal values.
type Settlement int32

const (
	Pending Settlement = iota
	Fulfilled
	Rejected
)

// State is the shared box behind a promise, holding the settlement, the
// resulting value or error, and the continuations registered while Pending.
//
// It's owned jointly by the promise handle and by every continuation closure
// that captured it; it carries no reference back to any of its owners.
type State[T any] struct {
	mu      sync.Mutex
	settled Settlement

	// value is meaningful only when settled == Fulfilled.
	// err is meaningful only when settled == Rejected.
	value T
	err   error

	// callbacks is non-empty only while Pending.
	// it's captured and cleared under mu, atomically with the settlement
	// transition, so that no continuation is lost or fired twice.
	callbacks []func()

	// sched hands a continuation to this state's executor.
	// it must never be called while mu is held.
	sched func(func())
}

// New returns a fresh Pending State whose continuations will be scheduled
// through sched.
func New[T any](sched func(func())) *State[T] {
	return &State[T]{sched: sched}
}

// Settled returns an already-terminal State, fulfilled with v when err is
// nil, rejected with err otherwise. Its callback list starts empty, so no
// concurrency is involved in creating it.
func Settled[T any](sched func(func()), v T, err error) *State[T] {
	s := &State[T]{sched: sched}
	if err != nil {
		s.settled = Rejected
		s.err = err
	} else {
		s.settled = Fulfilled
		s.value = v
	}
	return s
}

// Resolve transitions the state from Pending to Fulfilled, storing v, and
// fires every registered continuation, in registration order, through sched.
//
// It panics with ErrSettled if the state isn't Pending.
func (s *State[T]) Resolve(v T) {
	s.mu.Lock()
	if s.settled != Pending {
		s.mu.Unlock()
		panic(ErrSettled)
	}
	s.settled = Fulfilled
	s.value = v
	cbs := s.callbacks
	s.callbacks = nil
	s.mu.Unlock()

	// dispatch outside the lock, so that a continuation registering new
	// continuations (on this state or another) can't deadlock, and so that
	// the settling goroutine never runs user code itself.
	for _, cb := range cbs {
		s.sched(cb)
	}
}

// Reject is the rejection counterpart of Resolve.
// It panics with ErrSettled if the state isn't Pending.
func (s *State[T]) Reject(err error) {
	s.mu.Lock()
	if s.settled != Pending {
		s.mu.Unlock()
		panic(ErrSettled)
	}
	s.settled = Rejected
	s.err = err
	cbs := s.callbacks
	s.callbacks = nil
	s.mu.Unlock()

	for _, cb := range cbs {
		s.sched(cb)
	}
}

// Register arranges for cb to run once the state is terminal.
//
// While Pending, cb is appended to the callback list and will be drained by
// the settling call. On a terminal state, cb is handed to sched directly.
// Register and Resolve/Reject share mu, so a registration concurrent with
// settlement lands deterministically on one of the two paths; cb fires
// exactly once either way.
func (s *State[T]) Register(cb func()) {
	s.mu.Lock()
	if s.settled == Pending {
		s.callbacks = append(s.callbacks, cb)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	s.sched(cb)
}

// Settlement returns the current settlement.
func (s *State[T]) Settlement() Settlement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settled
}

// Value returns the fulfillment value.
// It must only be called after the state is known to be terminal; a terminal
// state is immutable, and the Register/settle lock pairing establishes the
// happens-before edge that makes the lock-free read safe.
func (s *State[T]) Value() T {
	return s.value
}

// Err returns the rejection error, under the same terminal-only contract as
// Value.
func (s *State[T]) Err() error {
	return s.err
}
