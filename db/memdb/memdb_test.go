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

package memdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ultiledger/go-kin/db"
)

// Test Memdb.
func TestMemDB(t *testing.T) {
	// open the database
	d := New()
	require.NoError(t, d.NewBucket("TEST"))

	// test get nonexistance key
	val, err := d.Get("TEST", []byte("none"))
	assert.ErrorIs(t, err, db.ErrNotFound)
	assert.Nil(t, val)

	// test set key/value pair
	err = d.Put("TEST", []byte("b"), []byte("2"))
	assert.NoError(t, err)
	err = d.Put("TEST", []byte("a"), []byte("1"))
	assert.NoError(t, err)

	// test get value of key
	val, err = d.Get("TEST", []byte("a"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("1"), val)

	assert.ErrorIs(t, d.Put("MISSING", []byte("a"), nil), db.ErrNotFound)

	assert.NoError(t, d.Delete("TEST", []byte("a")))
	_, err = d.Get("TEST", []byte("a"))
	assert.ErrorIs(t, err, db.ErrNotFound)

	assert.NoError(t, d.Close())
	_, err = d.Get("TEST", []byte("b"))
	assert.ErrorIs(t, err, db.ErrClosed)
}

func TestRegistered(t *testing.T) {
	d, err := db.Open("memdb", "")
	require.NoError(t, err)
	assert.NoError(t, d.NewBucket("X"))

	_, err = db.Open("leveldb", "")
	assert.Error(t, err)
}
