// Copyright 2019 The go-ultiledger Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package future provides single-resolution futures used to compose
// the asynchronous client calls.
package future

import (
	"context"
	"sync"
)

// Future holds a value or an error that becomes available later. A
// future resolves exactly once, later resolutions have no effect.
type Future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// New returns an unresolved future, resolved by Resolve or Reject.
func New[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Go runs fn on its own goroutine and resolves the future with its
// result.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := New[T]()
	go func() {
		v, err := fn(ctx)
		f.respond(v, err)
	}()
	return f
}

// Resolved returns a future already holding v.
func Resolved[T any](v T) *Future[T] {
	f := New[T]()
	f.Resolve(v)
	return f
}

// Failed returns a future already holding err.
func Failed[T any](err error) *Future[T] {
	f := New[T]()
	f.Reject(err)
	return f
}

func (f *Future[T]) respond(v T, err error) {
	f.once.Do(func() {
		f.value, f.err = v, err
		close(f.done)
	})
}

// Resolve completes the future with v.
func (f *Future[T]) Resolve(v T) {
	f.respond(v, nil)
}

// Reject completes the future with err.
func (f *Future[T]) Reject(err error) {
	var zero T
	f.respond(zero, err)
}

// Done is closed once the future resolves.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Result blocks until the future resolves and returns the first
// resolution.
func (f *Future[T]) Result() (T, error) {
	<-f.done
	return f.value, f.err
}

// Await is Result bounded by ctx. Giving up does not cancel the
// work behind the future.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Map transforms the value of f once it resolves successfully.
// Errors pass through unchanged.
func Map[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	out := New[U]()
	go func() {
		v, err := f.Result()
		if err != nil {
			out.Reject(err)
			return
		}
		u, err := fn(v)
		out.respond(u, err)
	}()
	return out
}

// MapError rewrites the error of f. Successful values pass through.
func MapError[T any](f *Future[T], fn func(error) error) *Future[T] {
	out := New[T]()
	go func() {
		v, err := f.Result()
		if err != nil {
			out.Reject(fn(err))
			return
		}
		out.Resolve(v)
	}()
	return out
}

// Then chains the future returned by fn after f resolves successfully.
func Then[T, U any](f *Future[T], fn func(T) *Future[U]) *Future[U] {
	out := New[U]()
	go func() {
		v, err := f.Result()
		if err != nil {
			out.Reject(err)
			return
		}
		out.respond(fn(v).Result())
	}()
	return out
}
