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

// Package result holds types for common and generic result containers,
// and functions to construct them; such containers are needed to return
// arbitrary generic values from callbacks.
package result

import "fmt"

func Empty[T any]() EmptyRes[T] {
	return EmptyRes[T]{}
}

// EmptyRes is a fulfilled result carrying the zero value of T.
type EmptyRes[T any] struct{}

func (r EmptyRes[T]) Val() (v T) {
	return v
}

func (r EmptyRes[T]) Err() error {
	return nil
}

func (r EmptyRes[T]) String() string {
	return "fulfilled: <zero>"
}

func Val[T any](val T) ValRes[T] {
	return ValRes[T]{val: val}
}

// ValRes is a fulfilled result carrying a value.
type ValRes[T any] struct {
	val T
}

func (r ValRes[T]) Val() T {
	return r.val
}

func (r ValRes[T]) Err() error {
	return nil
}

func (r ValRes[T]) String() string {
	return fmt.Sprintf("fulfilled: %v", r.val)
}

func Err[T any](err error) ErrRes[T] {
	return ErrRes[T]{err: err}
}

// ErrRes is a rejected result carrying an error.
type ErrRes[T any] struct {
	err error
}

func (r ErrRes[T]) Val() (v T) {
	return v
}

func (r ErrRes[T]) Err() error {
	return r.err
}

func (r ErrRes[T]) String() string {
	return fmt.Sprintf("rejected: %s", r.err.Error())
}

func ValErr[T any](val T, err error) ValErrRes[T] {
	return ValErrRes[T]{val: val, err: err}
}

// ValErrRes is a result carrying both a value and an error; it counts as
// rejected when the error is non-nil.
type ValErrRes[T any] struct {
	val T
	err error
}

func (r ValErrRes[T]) Val() T {
	return r.val
}

func (r ValErrRes[T]) Err() error {
	return r.err
}

func (r ValErrRes[T]) String() string {
	if r.err != nil {
		return fmt.Sprintf("rejected: (%v, %s)", r.val, r.err.Error())
	}
	return fmt.Sprintf("fulfilled: %v", r.val)
}
