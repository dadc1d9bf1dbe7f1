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

package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ultiledger/go-kin/account"
	"github.com/ultiledger/go-kin/crypto"
	"github.com/ultiledger/go-kin/xdr"
)

var testNetworkID = crypto.NetworkID("Kin Testnet ; December 2018")

func TestTx(t *testing.T) {
	// Create a random account.
	src, _, err := account.Random()
	require.NoError(t, err)

	dst := randomAddress(t)
	issuer := randomAddress(t)
	kin, err := xdr.NewCreditAsset("KIN", issuer)
	require.NoError(t, err)

	tx := NewTx()
	err = tx.Add(
		&SourceAccount{AccountID: src.Address()},
		&Sequence{Sequence: 8},
		&MemoText{Value: "SIMPLE NOTE"},
		&CreateAccount{Destination: dst, Amount: 1000},
		&Payment{Destination: dst, Asset: kin, Amount: 1000},
		&ChangeTrust{Asset: kin, Limit: 100},
	)
	require.NoError(t, err)
	assert.Equal(t, uint32(3)*uint32(DefaultBaseFee), tx.Tx.Fee)

	// Testing signing the tx.
	env, err := tx.Sign(src, testNetworkID)
	require.NoError(t, err)
	require.Len(t, env.Signatures, 1)

	hash, err := tx.GetTxHash(testNetworkID)
	require.NoError(t, err)
	h, err := env.Hash(testNetworkID)
	require.NoError(t, err)
	assert.Equal(t, h.Hex(), hash)
	assert.True(t, crypto.VerifyByKey(src.AccountID().Ed25519, env.Signatures[0].Signature, h[:]))
}

func TestTxFeeMutatorOrder(t *testing.T) {
	src := randomAddress(t)
	dst := randomAddress(t)

	// the fee is computed after every operation is added
	tx := NewTx()
	err := tx.Add(
		&Fee{BaseFee: 10},
		&SourceAccount{AccountID: src},
		&Sequence{Sequence: 1},
		&Payment{Destination: dst, Asset: xdr.NativeAsset(), Amount: 1},
		&Payment{Destination: dst, Asset: xdr.NativeAsset(), Amount: 2},
	)
	require.NoError(t, err)
	assert.Equal(t, uint32(20), tx.Tx.Fee)

	// adding more operations recomputes the fee
	require.NoError(t, tx.Add(&Payment{Destination: dst, Asset: xdr.NativeAsset(), Amount: 3}))
	assert.Equal(t, uint32(30), tx.Tx.Fee)
}

func TestTxValidate(t *testing.T) {
	src := randomAddress(t)
	dst := randomAddress(t)

	// no operations
	tx := NewTx()
	assert.NotNil(t, tx.Add(&SourceAccount{AccountID: src}, &Sequence{Sequence: 1}))

	// no source
	tx = NewTx()
	assert.NotNil(t, tx.Add(&Sequence{Sequence: 1}, &Payment{Destination: dst, Asset: xdr.NativeAsset(), Amount: 1}))

	// no sequence
	tx = NewTx()
	assert.NotNil(t, tx.Add(&SourceAccount{AccountID: src}, &Payment{Destination: dst, Asset: xdr.NativeAsset(), Amount: 1}))

	tx = NewTx()
	tx.Tx = nil
	_, err := tx.GetTxHash(testNetworkID)
	assert.Equal(t, ErrNilTx, err)
}
