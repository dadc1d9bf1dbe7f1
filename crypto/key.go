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
	"errors"

	"github.com/stellar/go/strkey"
)

var (
	ErrInvalidKey = errors.New("invalid key string")
)

// DecodeAccountID decodes a strkey encoded account address (G...)
// to the raw ed25519 public key.
func DecodeAccountID(address string) ([32]byte, error) {
	var pk [32]byte
	if address == "" {
		return pk, ErrInvalidKey
	}
	raw, err := strkey.Decode(strkey.VersionByteAccountID, address)
	if err != nil || len(raw) != len(pk) {
		return pk, ErrInvalidKey
	}
	copy(pk[:], raw)
	return pk, nil
}

// EncodeAccountID encodes the raw ed25519 public key to the
// strkey account address.
func EncodeAccountID(pk [32]byte) (string, error) {
	return strkey.Encode(strkey.VersionByteAccountID, pk[:])
}

// DecodeSeed decodes a strkey encoded secret seed (S...).
func DecodeSeed(seed string) ([32]byte, error) {
	var sd [32]byte
	if seed == "" {
		return sd, ErrInvalidKey
	}
	raw, err := strkey.Decode(strkey.VersionByteSeed, seed)
	if err != nil || len(raw) != len(sd) {
		return sd, ErrInvalidKey
	}
	copy(sd[:], raw)
	return sd, nil
}

// check the validity of supplied account address
func IsValidAccountKey(address string) bool {
	return strkey.IsValidEd25519PublicKey(address)
}

// Hint returns the signature hint of the key, which is the
// last four bytes of the raw public key.
func Hint(pk [32]byte) [4]byte {
	var h [4]byte
	copy(h[:], pk[len(pk)-4:])
	return h
}
