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

package watch

import (
	"errors"
	"strconv"

	"github.com/ultiledger/go-kin/db"
)

// Now is the cursor that positions a stream at the newest event.
const Now = "now"

const cursorBucket = "CURSORS"

// CursorStore persists the last delivered cursor of each stream.
type CursorStore struct {
	database db.Database
}

func NewCursorStore(d db.Database) (*CursorStore, error) {
	if err := d.NewBucket(cursorBucket); err != nil {
		return nil, err
	}
	return &CursorStore{database: d}, nil
}

// Load returns the saved cursor of key, empty when none was saved.
func (s *CursorStore) Load(key string) (string, error) {
	v, err := s.database.Get(cursorBucket, []byte(key))
	if errors.Is(err, db.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *CursorStore) Save(key, cursor string) error {
	return s.database.Put(cursorBucket, []byte(key), []byte(cursor))
}

// Reset forgets the saved cursor of key.
func (s *CursorStore) Reset(key string) error {
	err := s.database.Delete(cursorBucket, []byte(key))
	if errors.Is(err, db.ErrNotFound) {
		return nil
	}
	return err
}

// after reports whether cursor a is past cursor b. Paging tokens are
// compared as numbers, anything else only by equality.
func after(a, b string) bool {
	if b == "" || b == Now {
		return true
	}
	x, errA := strconv.ParseInt(a, 10, 64)
	y, errB := strconv.ParseInt(b, 10, 64)
	if errA != nil || errB != nil {
		return a != b
	}
	return x > y
}
