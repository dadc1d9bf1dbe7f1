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

package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountIDCodec(t *testing.T) {
	addr, seed, err := GetAccountKeypair()
	require.NoError(t, err)

	pk, err := DecodeAccountID(addr)
	require.NoError(t, err)
	encoded, err := EncodeAccountID(pk)
	require.NoError(t, err)
	assert.Equal(t, addr, encoded)

	// a seed is not an account address
	_, err = DecodeAccountID(seed)
	assert.Equal(t, ErrInvalidKey, err)
	assert.False(t, IsValidAccountKey(seed))

	_, err = DecodeAccountID("")
	assert.Equal(t, ErrInvalidKey, err)
	_, err = DecodeAccountID("GABC")
	assert.Equal(t, ErrInvalidKey, err)
}

func TestHint(t *testing.T) {
	var pk [32]byte
	for i := range pk {
		pk[i] = byte(i)
	}
	assert.Equal(t, [4]byte{28, 29, 30, 31}, Hint(pk))
}
