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

// Package promise provides an asynchronous value container with chained
// continuations, modeled on the JavaScript Promise, and parameterized over a
// pluggable execution strategy.
//
// A Promise is created from a task, a function that receives resolve and
// reject callbacks, together with an Executor that decides where the task and
// every continuation run. The package ships no mandatory executor; the
// executor subpackage provides reference implementations (inline, detached
// goroutine, and a fixed worker pool), and any value with an
// Execute(func()) method works.
//
// A Promise is in one of three states, and it can be in only one of them, at
// any time:
// Pending: the task that corresponds to this Promise has not settled it yet.
// Fulfilled: the task (or a handler upstream) produced a value.
// Rejected: the task (or a handler upstream) produced an error.
// The transition out of Pending happens at most once; settling a promise a
// second time is a fatal programming error (see ErrSettled), not a silent
// no-op, so that task-authoring bugs surface early.
//
// Chaining Notes:-
//
// * Then builds a new Promise whose settlement depends on the current one.
// The same-type form is a method; the type-changing form (T to U) is the
// package-level Then function, since Go methods can't introduce new type
// parameters.
//
// * Handlers return a Result value. A Result carrying a non-nil error rejects
// the next promise; any other Result (including nil) fulfills it. A rejection
// handler that returns a value Result recovers the chain.
//
// * A panic inside a task or handler never escapes to the executor; it's
// captured as a *PanicError and rejects the next promise in the chain.
//
// * Catch is sugar for Then with an identity fulfillment handler: it forwards
// a fulfillment value unchanged and only transforms rejections.
//
// * Finally runs its callback exactly once on either outcome, and forwards
// the original value or error unchanged past it.
//
// * Callbacks registered against one promise fire in registration order.
// No ordering holds across different promises, or across whatever
// interleaving the chosen executor produces.
//
// There is no blocking wait in this package. Waiting for a value means
// registering a continuation; callers that need to block do so on their own
// synchronization primitive (a channel, usually) from inside a continuation.
//
// Rejections that reach the end of a chain without a Catch are retained in
// the final promise and reported nowhere. Cancellation, timeouts, and
// combinators (all/race/any) are out of scope.
package promise
