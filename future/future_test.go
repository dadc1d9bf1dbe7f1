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

package future

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOnce(t *testing.T) {
	f := New[int]()
	f.Reject(errors.New("first error"))
	// later resolutions have no effect
	f.Reject(errors.New("second error"))
	f.Resolve(3)

	v, err := f.Result()
	assert.Equal(t, 0, v)
	require.Error(t, err)
	assert.Equal(t, "first error", err.Error())

	v, err = Resolved(7).Result()
	assert.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestGo(t *testing.T) {
	var calls int32
	f := Go(context.Background(), func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "ok", nil
	})
	<-f.Done()
	v, err := f.Result()
	assert.NoError(t, err)
	assert.Equal(t, "ok", v)
	// results are memoized
	v, _ = f.Result()
	assert.Equal(t, "ok", v)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestAwait(t *testing.T) {
	f := New[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	f.Resolve(1)
	v, err := f.Await(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestCombinators(t *testing.T) {
	errBoom := errors.New("boom")
	errMapped := errors.New("mapped")

	s, err := Map(Resolved(41), func(v int) (string, error) {
		return strconv.Itoa(v + 1), nil
	}).Result()
	assert.NoError(t, err)
	assert.Equal(t, "42", s)

	called := false
	_, err = Map(Failed[int](errBoom), func(v int) (int, error) {
		called = true
		return v, nil
	}).Result()
	assert.ErrorIs(t, err, errBoom)
	assert.False(t, called)

	_, err = MapError(Failed[int](errBoom), func(err error) error {
		return errMapped
	}).Result()
	assert.ErrorIs(t, err, errMapped)

	v, err := MapError(Resolved(5), func(err error) error { return errMapped }).Result()
	assert.NoError(t, err)
	assert.Equal(t, 5, v)

	v, err = Then(Resolved(2), func(v int) *Future[int] {
		return Resolved(v * 10)
	}).Result()
	assert.NoError(t, err)
	assert.Equal(t, 20, v)

	_, err = Then(Resolved(2), func(v int) *Future[int] {
		return Failed[int](errBoom)
	}).Result()
	assert.ErrorIs(t, err, errBoom)
}
