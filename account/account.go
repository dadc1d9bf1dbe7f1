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

// Package account provides signing identities and the network bound
// transaction signer.
package account

import (
	"fmt"

	"github.com/ultiledger/go-kin/crypto"
	"github.com/ultiledger/go-kin/types"
	"github.com/ultiledger/go-kin/xdr"
)

// SignFunc maps arbitrary bytes to a detached ed25519 signature. Key
// custody stays with whoever supplies it.
type SignFunc func(data []byte) ([]byte, error)

// Account is a signing identity. Read-only accounts fail Sign with
// types.ErrSigningUnavailable.
type Account interface {
	AccountID() xdr.AccountID
	Address() string
	CanSign() bool
	Sign(data []byte) ([]byte, error)
}

type readOnly struct {
	id xdr.AccountID
}

// ReadOnly returns an account that can be queried but not sign.
func ReadOnly(address string) (Account, error) {
	id, err := xdr.AccountIDFromAddress(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidAccount, err)
	}
	return &readOnly{id: id}, nil
}

func (a *readOnly) AccountID() xdr.AccountID { return a.id }
func (a *readOnly) Address() string          { return a.id.Address() }
func (a *readOnly) CanSign() bool            { return false }

func (a *readOnly) Sign([]byte) ([]byte, error) {
	return nil, types.ErrSigningUnavailable
}

type external struct {
	id   xdr.AccountID
	sign SignFunc
}

// External returns an account whose signatures are produced by fn. A
// nil fn yields a read-only account.
func External(address string, fn SignFunc) (Account, error) {
	if fn == nil {
		return ReadOnly(address)
	}
	id, err := xdr.AccountIDFromAddress(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidAccount, err)
	}
	return &external{id: id, sign: fn}, nil
}

func (a *external) AccountID() xdr.AccountID { return a.id }
func (a *external) Address() string          { return a.id.Address() }
func (a *external) CanSign() bool            { return true }

func (a *external) Sign(data []byte) ([]byte, error) {
	return a.sign(data)
}

// FromSeed returns an account signing with the secret seed.
func FromSeed(seed string) (Account, error) {
	address, err := crypto.AddressFromSeed(seed)
	if err != nil {
		return nil, err
	}
	return External(address, func(data []byte) ([]byte, error) {
		return crypto.Sign(seed, data)
	})
}

// Random generates a fresh keypair and returns the signing account
// together with its seed.
func Random() (Account, string, error) {
	_, seed, err := crypto.GetAccountKeypair()
	if err != nil {
		return nil, "", err
	}
	acc, err := FromSeed(seed)
	if err != nil {
		return nil, "", err
	}
	return acc, seed, nil
}
