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

import "github.com/aphage/promise/result"

// Result is a container for the outcome of a promise or a handler.
//
// A Result with a non-nil Err is a rejection; any other Result is a
// fulfillment carrying Val. Handlers return a Result to settle the next
// promise in the chain; returning nil is equivalent to Empty.
type Result[T any] interface {
	Val() T
	Err() error
}

// Empty returns a fulfilled Result carrying the zero value of T.
// It's the unit-typed return, for handlers that produce no meaningful value.
func Empty[T any]() Result[T] {
	return result.Empty[T]()
}

// Val returns a fulfilled Result carrying val.
func Val[T any](val T) Result[T] {
	return result.Val(val)
}

// Err returns a rejected Result carrying err.
// Returning it from a handler rejects the next promise with err.
func Err[T any](err error) Result[T] {
	return result.Err[T](err)
}

// ValErr returns a Result carrying both val and err, following the
// convention of returning the error as the last parameter. It counts as
// rejected when err is non-nil.
func ValErr[T any](val T, err error) Result[T] {
	return result.ValErr(val, err)
}
