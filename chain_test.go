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
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aphage/promise/executor"
)

func TestThen(t *testing.T) {
	t.Run("sync chain settles before return", func(t *testing.T) {
		var got int
		Resolve(42, executor.Sync{}).Then(func(val int) Result[int] {
			return Val(val * 2)
		}).Then(func(val int) Result[int] {
			got = val
			return nil
		})

		require.Equal(t, 84, got)
	})

	t.Run("async chain settles eventually", func(t *testing.T) {
		p := Resolve(42, executor.Goroutine{}).Then(func(val int) Result[int] {
			return Val(val * 2)
		})

		require.Equal(t, 84, await(t, p).Val())
	})

	t.Run("type-changing chain", func(t *testing.T) {
		p := Then(Resolve(42, executor.Sync{}), func(val int) Result[string] {
			return Val(strconv.Itoa(val))
		})

		res, ok := p.Res()
		require.True(t, ok)
		require.Equal(t, "42", res.Val())
	})

	t.Run("attach after settlement", func(t *testing.T) {
		p := Resolve(21, executor.Sync{})
		require.Equal(t, Fulfilled, p.State())

		// the continuation still fires, with the already-determined outcome.
		next := p.Then(func(val int) Result[int] {
			return Val(val * 2)
		})
		res, ok := next.Res()
		require.True(t, ok)
		require.Equal(t, 42, res.Val())
	})

	t.Run("attach before settlement", func(t *testing.T) {
		release := make(chan struct{})
		p := New(func(resolve func(int), reject func(error)) {
			<-release
			resolve(21)
		}, executor.Goroutine{})

		next := p.Then(func(val int) Result[int] {
			return Val(val * 2)
		})
		close(release)

		require.Equal(t, 42, await(t, next).Val())
	})

	t.Run("handler returning an error rejects the next promise", func(t *testing.T) {
		wantErr := testStrError("handler_error")
		p := Resolve(1, executor.Sync{}).Then(func(val int) Result[int] {
			return Err[int](wantErr)
		})

		res, ok := p.Res()
		require.True(t, ok)
		require.ErrorIs(t, res.Err(), wantErr)
	})

	t.Run("handler panic rejects the next promise", func(t *testing.T) {
		p := Resolve(1, executor.Sync{}).Then(func(val int) Result[int] {
			panic("handler_panic")
		})

		res, _ := p.Res()
		var pe *PanicError
		require.ErrorAs(t, res.Err(), &pe)
		require.Equal(t, "handler_panic", pe.V)
	})

	t.Run("sibling chains are independent", func(t *testing.T) {
		wantErr := testStrError("sibling_error")
		p := Resolve(10, executor.Sync{})

		bad := p.Then(func(val int) Result[int] {
			return Err[int](wantErr)
		})
		good := p.Then(func(val int) Result[int] {
			return Val(val + 1)
		})

		badRes, _ := bad.Res()
		require.ErrorIs(t, badRes.Err(), wantErr)

		goodRes, _ := good.Res()
		require.NoError(t, goodRes.Err())
		require.Equal(t, 11, goodRes.Val())
	})

	t.Run("rejection skips the fulfillment handler", func(t *testing.T) {
		wantErr := testStrError("skip_me")
		called := false
		p := Reject[int](wantErr, executor.Sync{}).Then(func(val int) Result[int] {
			called = true
			return Val(val)
		})

		require.False(t, called)
		res, _ := p.Res()
		require.ErrorIs(t, res.Err(), wantErr)
	})

	t.Run("rejection propagates unchanged without a handler", func(t *testing.T) {
		wantErr := testStrError("original_error")
		p := Reject[int](wantErr, executor.Sync{}).Then(func(val int) Result[int] {
			return Val(val)
		}).Then(func(val int) Result[int] {
			return Val(val * 2)
		})

		// the original error payload survives every stage untouched.
		res, _ := p.Res()
		require.Equal(t, error(wantErr), res.Err())
	})

	t.Run("two-handler form", func(t *testing.T) {
		wantErr := testStrError("two_handler")
		p := Then(Reject[int](wantErr, executor.Sync{}), func(val int) Result[string] {
			return Val("fulfilled")
		}, func(err error) Result[string] {
			return Val("recovered: " + err.Error())
		})

		res, _ := p.Res()
		require.Equal(t, "recovered: two_handler", res.Val())
	})

	t.Run("rejection handler returning an error re-rejects", func(t *testing.T) {
		newErr := testStrError("replacement")
		p := Reject[int](testStrError("original"), executor.Sync{}).Then(func(val int) Result[int] {
			return Val(val)
		}, func(err error) Result[int] {
			return Err[int](newErr)
		})

		res, _ := p.Res()
		require.ErrorIs(t, res.Err(), newErr)
	})

	t.Run("nil result fulfills with the zero value", func(t *testing.T) {
		p := Resolve("ignored", executor.Sync{}).Then(func(val string) Result[string] {
			return nil
		})

		res, ok := p.Res()
		require.True(t, ok)
		require.NoError(t, res.Err())
		require.Equal(t, "", res.Val())
	})

	t.Run("nil fulfillment handler", func(t *testing.T) {
		p := Resolve(1, executor.Sync{})
		require.PanicsWithValue(t, nilCallbackPanicMsg, func() {
			Then[int, int](p, nil)
		})
	})

	t.Run("nil rejection handler", func(t *testing.T) {
		p := Resolve(1, executor.Sync{})
		require.PanicsWithValue(t, nilCallbackPanicMsg, func() {
			Then(p, func(val int) Result[int] { return Val(val) }, nil)
		})
	})
}

func TestCatch(t *testing.T) {
	t.Run("recovers a rejected chain", func(t *testing.T) {
		var got int
		Reject[int](testStrError("error"), executor.Sync{}).Catch(func(err error) Result[int] {
			return Val(84)
		}).Then(func(val int) Result[int] {
			got = val
			return nil
		})

		require.Equal(t, 84, got)
	})

	t.Run("forwards a fulfillment value unchanged", func(t *testing.T) {
		called := false
		p := Resolve(42, executor.Sync{}).Catch(func(err error) Result[int] {
			called = true
			return Val(0)
		})

		require.False(t, called)
		res, _ := p.Res()
		require.Equal(t, 42, res.Val())
	})

	t.Run("task panic caught downstream", func(t *testing.T) {
		p := New(func(resolve func(int), reject func(error)) {
			panic("immediate")
		}, executor.Sync{}).Then(func(val int) Result[int] {
			return Val(val * 2)
		}).Catch(func(err error) Result[int] {
			return Val(99)
		})

		res, _ := p.Res()
		require.Equal(t, 99, res.Val())
	})

	t.Run("nil callback", func(t *testing.T) {
		p := Resolve(1, executor.Sync{})
		require.PanicsWithValue(t, nilCallbackPanicMsg, func() {
			p.Catch(nil)
		})
	})
}

func TestFinally(t *testing.T) {
	t.Run("runs once and forwards the value", func(t *testing.T) {
		calls := 0
		var got int
		Resolve(42, executor.Sync{}).Finally(func() {
			calls++
		}).Then(func(val int) Result[int] {
			got = val
			return nil
		})

		require.Equal(t, 1, calls)
		require.Equal(t, 42, got)
	})

	t.Run("runs once and forwards the error", func(t *testing.T) {
		wantErr := testStrError("finally_error")
		calls := 0
		p := Reject[int](wantErr, executor.Sync{}).Finally(func() {
			calls++
		})

		require.Equal(t, 1, calls)
		res, _ := p.Res()
		require.ErrorIs(t, res.Err(), wantErr)
	})

	t.Run("panic in the callback rejects", func(t *testing.T) {
		p := Resolve(1, executor.Sync{}).Finally(func() {
			panic("finally_panic")
		})

		res, _ := p.Res()
		var pe *PanicError
		require.ErrorAs(t, res.Err(), &pe)
		require.Equal(t, "finally_panic", pe.V)
	})

	t.Run("nil callback", func(t *testing.T) {
		p := Resolve(1, executor.Sync{})
		require.PanicsWithValue(t, nilCallbackPanicMsg, func() {
			p.Finally(nil)
		})
	})
}

// TestChainAcrossExecutors runs the full end-to-end scenario on a worker
// pool: task on one promise, continuations interleaved through the shared
// queue, external wait on a channel.
func TestChainAcrossExecutors(t *testing.T) {
	pool := executor.NewPool(4)
	defer pool.Close()

	p := New(func(resolve func(int), reject func(error)) {
		resolve(42)
	}, pool).Then(func(val int) Result[int] {
		return Val(val * 2)
	})

	require.Equal(t, 84, await(t, p).Val())
}

func TestResultConstructors(t *testing.T) {
	require.Equal(t, 0, Empty[int]().Val())
	require.NoError(t, Empty[int]().Err())

	wantErr := testStrError("valerr")
	res := ValErr(7, wantErr)
	require.Equal(t, 7, res.Val())
	require.ErrorIs(t, res.Err(), wantErr)

	// a ValErr with a nil error settles as a fulfillment.
	p := Resolve(0, executor.Sync{}).Then(func(val int) Result[int] {
		return ValErr(5, nil)
	})
	got, _ := p.Res()
	require.NoError(t, got.Err())
	require.Equal(t, 5, got.Val())
}
