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

// Package db defines the key-value store used to persist stream
// cursors and the registry of its backends.
package db

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrNotFound = errors.New("key not found")
	ErrClosed   = errors.New("database is closed")
)

// Database is a bucketed key-value store.
type Database interface {
	NewBucket(name string) error
	Put(bucket string, key, value []byte) error
	Get(bucket string, key []byte) ([]byte, error)
	Delete(bucket string, key []byte) error
	Close() error
}

// Ctor opens a database at the path.
type Ctor func(path string) (Database, error)

var (
	mu           sync.RWMutex
	constructors = make(map[string]Ctor)
)

// database backend should call this function to register itself
// in order to be used by application
func Register(name string, ctor Ctor) {
	mu.Lock()
	defer mu.Unlock()
	constructors[name] = ctor
}

func GetDB(name string) (Ctor, error) {
	mu.RLock()
	defer mu.RUnlock()
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("database %s not registered", name)
	}
	return ctor, nil
}

// Open opens the registered backend name at path.
func Open(name, path string) (Database, error) {
	ctor, err := GetDB(name)
	if err != nil {
		return nil, err
	}
	return ctor(path)
}
