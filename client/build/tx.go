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
	"fmt"

	"github.com/ultiledger/go-kin/account"
	"github.com/ultiledger/go-kin/types"
	"github.com/ultiledger/go-kin/xdr"
)

// DefaultBaseFee is used when no Fee mutator is supplied.
var DefaultBaseFee types.Quark = 100

// Tx serves as the main object for building an transaction.
type Tx struct {
	Tx  *xdr.Transaction
	fee Fee
}

func NewTx() *Tx {
	return &Tx{Tx: &xdr.Transaction{Memo: xdr.MemoNone()}, fee: Fee{BaseFee: DefaultBaseFee}}
}

// Add adds one or more mutators to the underlying transaction
// builder and if any of the mutation fails the method fails. A Fee
// mutator is applied after all the operations are in place.
func (t *Tx) Add(ms ...TxMutator) error {
	for _, m := range ms {
		if f, ok := m.(*Fee); ok {
			t.fee = *f
			continue
		}
		if err := m.Mutate(t.Tx); err != nil {
			return err
		}
	}

	// compute the total fee
	if err := t.fee.Mutate(t.Tx); err != nil {
		return err
	}

	// check the validity of tx
	if err := t.validate(); err != nil {
		return fmt.Errorf("tx is invalid: %w", err)
	}

	return nil
}

func (t *Tx) validate() error {
	if t.Tx.SourceAccount == (xdr.AccountID{}) {
		return invalid("empty source account")
	}
	if t.Tx.SeqNum <= 0 {
		return invalid("sequence is not set")
	}
	if len(t.Tx.Operations) == 0 {
		return invalid("empty operation list")
	}
	if t.fee.Override == 0 && types.Quark(t.Tx.Fee) < t.fee.BaseFee*types.Quark(len(t.Tx.Operations)) {
		return invalid("fee is below the minimum")
	}
	return nil
}

// Envelope wraps the transaction in an unsigned envelope.
func (t *Tx) Envelope() xdr.TransactionEnvelope {
	return xdr.TransactionEnvelope{Tx: *t.Tx}
}

// Sign the transaction with the account for the network.
func (t *Tx) Sign(acc account.Account, networkID [32]byte) (xdr.TransactionEnvelope, error) {
	if t.Tx == nil {
		return xdr.TransactionEnvelope{}, ErrNilTx
	}
	return account.Sign(t.Envelope(), acc, networkID)
}

// Get the hex hash of the tx.
func (t *Tx) GetTxHash(networkID [32]byte) (string, error) {
	if t.Tx == nil {
		return "", ErrNilTx
	}
	return account.TransactionHash(t.Tx, networkID)
}
