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
	"sync"

	"github.com/ultiledger/go-kin/db"
)

func init() {
	db.Register("memdb", func(string) (db.Database, error) {
		return New(), nil
	})
}

type memdb struct {
	db map[string]map[string][]byte
	sync.RWMutex
}

// New creates a memory-based key-value store
// which is mainly used for testing.
func New() db.Database {
	return &memdb{db: make(map[string]map[string][]byte)}
}

func (m *memdb) NewBucket(name string) error {
	m.Lock()
	defer m.Unlock()

	if m.db == nil {
		return db.ErrClosed
	}
	if _, ok := m.db[name]; !ok {
		m.db[name] = make(map[string][]byte)
	}
	return nil
}

// Put writes the key/value pair to database.
func (m *memdb) Put(bucket string, key, value []byte) error {
	m.Lock()
	defer m.Unlock()

	if m.db == nil {
		return db.ErrClosed
	}
	b, ok := m.db[bucket]
	if !ok {
		return db.ErrNotFound
	}
	b[string(key)] = append([]byte(nil), value...)
	return nil
}

// Delete deletes the key from the database.
func (m *memdb) Delete(bucket string, key []byte) error {
	m.Lock()
	defer m.Unlock()

	if m.db == nil {
		return db.ErrClosed
	}
	if b, ok := m.db[bucket]; ok {
		delete(b, string(key))
	}
	return nil
}

// Get retrieves the value of the key from database.
func (m *memdb) Get(bucket string, key []byte) ([]byte, error) {
	m.RLock()
	defer m.RUnlock()

	if m.db == nil {
		return nil, db.ErrClosed
	}
	if val, ok := m.db[bucket][string(key)]; ok {
		return append([]byte(nil), val...), nil
	}
	return nil, db.ErrNotFound
}

// Close closes the underlying database.
func (m *memdb) Close() error {
	m.Lock()
	defer m.Unlock()

	m.db = nil
	return nil
}
