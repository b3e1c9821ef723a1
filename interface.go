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

// Executor schedules a zero-argument unit of work for execution.
//
// An executor may run the work immediately on the calling goroutine, defer
// it, or hand it to another goroutine; the package is correct under any of
// these policies. Execute must not panic synchronously, and must arrange for
// the work to eventually run exactly once.
//
// The executor subpackage provides reference implementations.
type Executor interface {
	Execute(fn func())
}

// ExecutorFunc adapts an ordinary function to the Executor interface.
type ExecutorFunc func(fn func())

func (f ExecutorFunc) Execute(fn func()) { f(fn) }

// State describes the settlement of a Promise.
type State int

const (
	// the order here matches internal/state.Settlement.
	Pending State = iota
	Fulfilled
	Rejected
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	default:
		return "<unknown>"
	}
}
