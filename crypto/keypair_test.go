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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testData = []byte("kin is awesome!")

// test random keypair generation
func TestKeypair(t *testing.T) {
	addr, seed, err := GetAccountKeypair()
	assert.Nil(t, err)
	assert.True(t, IsValidAccountKey(addr))

	derived, err := AddressFromSeed(seed)
	assert.Nil(t, err)
	assert.Equal(t, addr, derived)
}

// test deterministic keypair from raw seed
func TestKeypairFromSeed(t *testing.T) {
	raw := bytes.Repeat([]byte{7}, 32)
	addr1, seed1, err := GetAccountKeypairFromSeed(raw)
	require.NoError(t, err)
	addr2, seed2, err := GetAccountKeypairFromSeed(raw)
	require.NoError(t, err)
	assert.Equal(t, addr1, addr2)
	assert.Equal(t, seed1, seed2)

	sd, err := DecodeSeed(seed1)
	require.NoError(t, err)
	assert.Equal(t, raw, sd[:])

	_, _, err = GetAccountKeypairFromSeed(raw[:31])
	assert.Error(t, err)
}

// test data signing and verification
func TestSignAndVerify(t *testing.T) {
	addr, seed, err := GetAccountKeypair()
	require.NoError(t, err)

	signature, err := Sign(seed, testData)
	assert.Nil(t, err)
	assert.Equal(t, 64, len(signature))
	assert.True(t, Verify(addr, signature, testData))
	assert.False(t, Verify(addr, signature, []byte("tampered")))
	assert.False(t, Verify(addr, signature[:10], testData))

	_, err = Sign("not a seed", testData)
	assert.Equal(t, ErrInvalidKey, err)
}
