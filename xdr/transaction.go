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

package xdr

import (
	"github.com/ultiledger/go-kin/crypto"
)

const (
	// MaxOperations is the protocol limit of operations per transaction.
	MaxOperations = 100
	// MaxSignatures is the protocol limit of signatures per envelope.
	MaxSignatures = 20
	// MaxSignatureSize bounds the opaque signature field.
	MaxSignatureSize = 64

	// smallest encodings, used to reject counts that cannot fit
	minOperationSize = 8
	minSignatureSize = 8
)

type EnvelopeType int32

const (
	EnvelopeTypeSCP EnvelopeType = 1
	EnvelopeTypeTx  EnvelopeType = 2
)

// Transaction is the unsigned instruction set.
type Transaction struct {
	SourceAccount AccountID
	Fee           uint32
	SeqNum        int64
	TimeBounds    *TimeBounds
	Memo          Memo
	Operations    []Operation
}

func (tx *Transaction) EncodeTo(e *Encoder) error {
	if err := tx.SourceAccount.EncodeTo(e); err != nil {
		return err
	}
	if err := e.Uint32(tx.Fee); err != nil {
		return err
	}
	if err := e.Int64(tx.SeqNum); err != nil {
		return err
	}
	if err := e.Bool(tx.TimeBounds != nil); err != nil {
		return err
	}
	if tx.TimeBounds != nil {
		if err := tx.TimeBounds.EncodeTo(e); err != nil {
			return err
		}
	}
	if err := tx.Memo.EncodeTo(e); err != nil {
		return err
	}
	if err := e.Len(len(tx.Operations), MaxOperations); err != nil {
		return err
	}
	for i := range tx.Operations {
		if err := tx.Operations[i].EncodeTo(e); err != nil {
			return err
		}
	}
	// ext, version 0
	return e.Int32(0)
}

func (tx *Transaction) DecodeFrom(d *Decoder) error {
	*tx = Transaction{}
	var err error
	if err = tx.SourceAccount.DecodeFrom(d); err != nil {
		return err
	}
	if tx.Fee, err = d.Uint32(); err != nil {
		return err
	}
	if tx.SeqNum, err = d.Int64(); err != nil {
		return err
	}
	present, err := d.Bool()
	if err != nil {
		return err
	}
	if present {
		tx.TimeBounds = &TimeBounds{}
		if err := tx.TimeBounds.DecodeFrom(d); err != nil {
			return err
		}
	}
	if err := tx.Memo.DecodeFrom(d); err != nil {
		return err
	}
	n, err := d.Len(MaxOperations, minOperationSize)
	if err != nil {
		return err
	}
	if n > 0 {
		tx.Operations = make([]Operation, n)
		for i := range tx.Operations {
			if err := tx.Operations[i].DecodeFrom(d); err != nil {
				return err
			}
		}
	}
	return decodeExt(d)
}

func decodeExt(d *Decoder) error {
	v, err := d.Int32()
	if err != nil {
		return err
	}
	if v != 0 {
		return malformed("unknown ext version %d", v)
	}
	return nil
}

// Hash returns the transaction hash bound to the network, the value
// every signer signs.
func (tx *Transaction) Hash(networkID [32]byte) (Hash, error) {
	payload := TransactionSignaturePayload{NetworkID: networkID, Tx: *tx}
	b, err := Marshal(&payload)
	if err != nil {
		return Hash{}, err
	}
	return crypto.SHA256HashBytes(b), nil
}

// TransactionSignaturePayload is the structure hashed for signing:
// the network id followed by the tagged transaction.
type TransactionSignaturePayload struct {
	NetworkID Hash
	Tx        Transaction
}

func (p *TransactionSignaturePayload) EncodeTo(e *Encoder) error {
	if err := p.NetworkID.EncodeTo(e); err != nil {
		return err
	}
	if err := e.Int32(int32(EnvelopeTypeTx)); err != nil {
		return err
	}
	return p.Tx.EncodeTo(e)
}

func (p *TransactionSignaturePayload) DecodeFrom(d *Decoder) error {
	if err := p.NetworkID.DecodeFrom(d); err != nil {
		return err
	}
	t, err := d.Int32()
	if err != nil {
		return err
	}
	if EnvelopeType(t) != EnvelopeTypeTx {
		return malformed("unknown envelope type %d", t)
	}
	return p.Tx.DecodeFrom(d)
}

// DecoratedSignature is a signature tagged with the hint of the key
// that produced it.
type DecoratedSignature struct {
	Hint      [4]byte
	Signature []byte
}

func (s *DecoratedSignature) EncodeTo(e *Encoder) error {
	if err := e.Fixed(s.Hint[:]); err != nil {
		return err
	}
	return e.Opaque(s.Signature, MaxSignatureSize)
}

func (s *DecoratedSignature) DecodeFrom(d *Decoder) (err error) {
	if err = d.Fixed(s.Hint[:]); err != nil {
		return err
	}
	s.Signature, err = d.Opaque(MaxSignatureSize)
	return err
}

// TransactionEnvelope is a transaction with its accumulated signatures.
type TransactionEnvelope struct {
	Tx         Transaction
	Signatures []DecoratedSignature
}

func (env *TransactionEnvelope) EncodeTo(e *Encoder) error {
	if err := env.Tx.EncodeTo(e); err != nil {
		return err
	}
	if err := e.Len(len(env.Signatures), MaxSignatures); err != nil {
		return err
	}
	for i := range env.Signatures {
		if err := env.Signatures[i].EncodeTo(e); err != nil {
			return err
		}
	}
	return nil
}

func (env *TransactionEnvelope) DecodeFrom(d *Decoder) error {
	*env = TransactionEnvelope{}
	if err := env.Tx.DecodeFrom(d); err != nil {
		return err
	}
	n, err := d.Len(MaxSignatures, minSignatureSize)
	if err != nil {
		return err
	}
	if n > 0 {
		env.Signatures = make([]DecoratedSignature, n)
		for i := range env.Signatures {
			if err := env.Signatures[i].DecodeFrom(d); err != nil {
				return err
			}
		}
	}
	return nil
}

// Hash returns the hash of the enveloped transaction.
func (env *TransactionEnvelope) Hash(networkID [32]byte) (Hash, error) {
	return env.Tx.Hash(networkID)
}
