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

package boltdb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ultiledger/go-kin/db"
)

func TestDBOps(t *testing.T) {
	// open the database
	d, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer d.Close()

	// missing bucket
	_, err = d.Get("TEST", []byte("none"))
	assert.ErrorIs(t, err, db.ErrNotFound)
	assert.ErrorIs(t, d.Put("TEST", []byte("k"), []byte("v")), db.ErrNotFound)

	// create bucket
	require.NoError(t, d.NewBucket("TEST"))

	// test get nonexistance key
	val, err := d.Get("TEST", []byte("none"))
	assert.ErrorIs(t, err, db.ErrNotFound)
	assert.Nil(t, val)

	// test set key/value pair
	require.NoError(t, d.Put("TEST", []byte("cursor/payments"), []byte("100")))
	require.NoError(t, d.Put("TEST", []byte("cursor/transactions"), []byte("200")))
	require.NoError(t, d.Put("TEST", []byte("other"), []byte("300")))

	// test get value of key
	val, err = d.Get("TEST", []byte("cursor/payments"))
	require.NoError(t, err)
	assert.Equal(t, []byte("100"), val)

	require.NoError(t, d.Delete("TEST", []byte("cursor/payments")))
	_, err = d.Get("TEST", []byte("cursor/payments"))
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestRegistered(t *testing.T) {
	d, err := db.Open("boltdb", filepath.Join(t.TempDir(), "reg.db"))
	require.NoError(t, err)
	assert.NoError(t, d.Close())
}
