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
	"fmt"

	"github.com/stellar/go/keypair"
	"golang.org/x/crypto/ed25519"
)

// Randomly generate a pair of account address and secret seed.
func GetAccountKeypair() (string, string, error) {
	kp, err := keypair.Random()
	if err != nil {
		return "", "", err
	}
	return kp.Address(), kp.Seed(), nil
}

// Generate account keypair from provided raw seed.
func GetAccountKeypairFromSeed(seed []byte) (string, string, error) {
	if len(seed) != 32 {
		return "", "", fmt.Errorf("invalid seed, byte length is %d not 32", len(seed))
	}
	var raw [32]byte
	copy(raw[:], seed)
	kp, err := keypair.FromRawSeed(raw)
	if err != nil {
		return "", "", err
	}
	return kp.Address(), kp.Seed(), nil
}

// AddressFromSeed returns the account address controlled by the seed.
func AddressFromSeed(seed string) (string, error) {
	kp, err := keypair.ParseFull(seed)
	if err != nil {
		return "", ErrInvalidKey
	}
	return kp.Address(), nil
}

// Sign the data with provided secret seed.
func Sign(seed string, data []byte) ([]byte, error) {
	kp, err := keypair.ParseFull(seed)
	if err != nil {
		return nil, ErrInvalidKey
	}
	return kp.Sign(data)
}

// Verify the data signature with the account address.
func Verify(address string, signature, data []byte) bool {
	pk, err := DecodeAccountID(address)
	if err != nil {
		return false
	}
	return VerifyByKey(pk, signature, data)
}

// Verify the data signature using the raw public key.
func VerifyByKey(pk [32]byte, signature, data []byte) bool {
	if len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pk[:]), data, signature)
}
