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

package account

import (
	"errors"
	"fmt"

	"github.com/ultiledger/go-kin/crypto"
	"github.com/ultiledger/go-kin/types"
	"github.com/ultiledger/go-kin/xdr"
)

var (
	ErrTooManySignatures = errors.New("envelope already carries the maximum number of signatures")
	ErrBadSignature      = errors.New("signature does not verify")
)

// TransactionHash returns the hex network bound hash of tx.
func TransactionHash(tx *xdr.Transaction, networkID [32]byte) (string, error) {
	h, err := tx.Hash(networkID)
	if err != nil {
		return "", err
	}
	return h.Hex(), nil
}

// Sign returns a copy of env with one more signature by acc appended.
// env itself is never modified.
func Sign(env xdr.TransactionEnvelope, acc Account, networkID [32]byte) (xdr.TransactionEnvelope, error) {
	if acc == nil || !acc.CanSign() {
		return env, types.ErrSigningUnavailable
	}
	if len(env.Signatures) >= xdr.MaxSignatures {
		return env, ErrTooManySignatures
	}
	hash, err := env.Hash(networkID)
	if err != nil {
		return env, err
	}
	sig, err := acc.Sign(hash[:])
	if err != nil {
		return env, fmt.Errorf("sign with %s: %w", acc.Address(), err)
	}

	signed := env
	signed.Signatures = make([]xdr.DecoratedSignature, len(env.Signatures), len(env.Signatures)+1)
	copy(signed.Signatures, env.Signatures)
	signed.Signatures = append(signed.Signatures, xdr.DecoratedSignature{
		Hint:      acc.AccountID().Hint(),
		Signature: sig,
	})
	return signed, nil
}

// Verify checks every signature of env against the source account and
// the extra signers, matched by hint. It returns the keys that
// produced the signatures in envelope order.
func Verify(env xdr.TransactionEnvelope, networkID [32]byte, signers ...xdr.AccountID) ([]xdr.AccountID, error) {
	hash, err := env.Hash(networkID)
	if err != nil {
		return nil, err
	}
	keys := append([]xdr.AccountID{env.Tx.SourceAccount}, signers...)

	verified := make([]xdr.AccountID, 0, len(env.Signatures))
	for i, sig := range env.Signatures {
		var found bool
		for _, k := range keys {
			if k.Hint() != sig.Hint {
				continue
			}
			if crypto.VerifyByKey(k.Ed25519, sig.Signature, hash[:]) {
				verified = append(verified, k)
				found = true
				break
			}
		}
		if !found {
			return verified, fmt.Errorf("%w: signature %d", ErrBadSignature, i)
		}
	}
	return verified, nil
}
