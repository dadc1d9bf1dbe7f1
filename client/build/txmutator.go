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
	"math"

	"github.com/ultiledger/go-kin/crypto"
	"github.com/ultiledger/go-kin/types"
	"github.com/ultiledger/go-kin/xdr"
)

var (
	ErrNilTx = invalid("tx is nil")
)

// invalid reports a transaction that cannot be encoded.
func invalid(msg string) error {
	return fmt.Errorf("%w: %s", types.ErrDataEncodingFailed, msg)
}

// TxMutator defines the method which all the transaction
// mutators should implement.
type TxMutator interface {
	Mutate(tx *xdr.Transaction) error
}

func parseAccount(address string) (xdr.AccountID, error) {
	if address == "" {
		return xdr.AccountID{}, fmt.Errorf("%w: empty account id", types.ErrInvalidAccount)
	}
	// Check whether the account id is a valid address.
	if !crypto.IsValidAccountKey(address) {
		return xdr.AccountID{}, fmt.Errorf("%w: %q", types.ErrInvalidAccount, address)
	}
	return xdr.AccountIDFromAddress(address)
}

// SourceAccount sets the source account of the Tx.
type SourceAccount struct {
	AccountID string
}

// Mutate changes the corresponding SourceAccount field of the Tx.
func (a *SourceAccount) Mutate(tx *xdr.Transaction) error {
	if tx == nil {
		return ErrNilTx
	}
	id, err := parseAccount(a.AccountID)
	if err != nil {
		return err
	}
	tx.SourceAccount = id
	return nil
}

// Sequence sets the sequence number of the tx, which must be the
// source account's current sequence plus one.
type Sequence struct {
	Sequence int64
}

func (s *Sequence) validate() error {
	if s.Sequence <= 0 {
		return invalid("sequence is not positive")
	}
	return nil
}

// Mutate changes the corresponding SeqNum field of the Tx.
func (s *Sequence) Mutate(tx *xdr.Transaction) error {
	if tx == nil {
		return ErrNilTx
	}
	if err := s.validate(); err != nil {
		return err
	}
	tx.SeqNum = s.Sequence
	return nil
}

// Memo sets the memo of the tx.
type Memo struct {
	Memo xdr.Memo
}

func (m *Memo) validate() error {
	if m.Memo.Type == xdr.MemoTypeText && len(m.Memo.Text) > xdr.MaxMemoText {
		return fmt.Errorf("%w: memo text is too long", types.ErrDataEncodingFailed)
	}
	return nil
}

// Mutate changes the corresponding Memo field of the Tx.
func (m *Memo) Mutate(tx *xdr.Transaction) error {
	if tx == nil {
		return ErrNilTx
	}
	if err := m.validate(); err != nil {
		return err
	}
	tx.Memo = m.Memo
	return nil
}

// MemoText sets a text memo of at most 28 bytes.
type MemoText struct {
	Value string
}

func (m *MemoText) Mutate(tx *xdr.Transaction) error {
	memo, err := xdr.MemoText(m.Value)
	if err != nil {
		return err
	}
	return (&Memo{Memo: memo}).Mutate(tx)
}

// MemoID sets an id memo.
type MemoID struct {
	Value uint64
}

func (m *MemoID) Mutate(tx *xdr.Transaction) error {
	return (&Memo{Memo: xdr.MemoID(m.Value)}).Mutate(tx)
}

// MemoHash sets a hash memo.
type MemoHash struct {
	Value xdr.Hash
}

func (m *MemoHash) Mutate(tx *xdr.Transaction) error {
	return (&Memo{Memo: xdr.MemoHash(m.Value)}).Mutate(tx)
}

// MemoReturn sets a return-hash memo.
type MemoReturn struct {
	Value xdr.Hash
}

func (m *MemoReturn) Mutate(tx *xdr.Transaction) error {
	return (&Memo{Memo: xdr.MemoReturn(m.Value)}).Mutate(tx)
}

// Timebounds limits the close times the tx is valid at. A zero
// MaxTime leaves the upper bound open.
type Timebounds struct {
	MinTime uint64
	MaxTime uint64
}

func (tb *Timebounds) validate() error {
	if tb.MaxTime != 0 && tb.MaxTime < tb.MinTime {
		return invalid("max time is before min time")
	}
	return nil
}

// Mutate changes the corresponding TimeBounds field of the Tx.
func (tb *Timebounds) Mutate(tx *xdr.Transaction) error {
	if tx == nil {
		return ErrNilTx
	}
	if err := tb.validate(); err != nil {
		return err
	}
	tx.TimeBounds = &xdr.TimeBounds{MinTime: tb.MinTime, MaxTime: tb.MaxTime}
	return nil
}

// Fee computes the total fee of the Tx: the base fee times the
// number of operations, or Override when it is set.
type Fee struct {
	BaseFee  types.Quark
	Override types.Quark
}

func (f *Fee) validate() error {
	if f.BaseFee < 0 {
		return invalid("base fee is negative")
	}
	if f.Override < 0 {
		return invalid("fee override is negative")
	}
	return nil
}

// Mutate changes the corresponding Fee field of the Tx.
func (f *Fee) Mutate(tx *xdr.Transaction) error {
	if tx == nil {
		return ErrNilTx
	}
	if err := f.validate(); err != nil {
		return err
	}

	fee := f.Override
	if fee == 0 {
		fee = f.BaseFee * types.Quark(len(tx.Operations))
	}
	if fee > math.MaxUint32 {
		return fmt.Errorf("%w: fee %d overflows", types.ErrDataEncodingFailed, fee)
	}
	tx.Fee = uint32(fee)

	return nil
}

// opSource resolves an optional operation source account.
func opSource(address string) (*xdr.AccountID, error) {
	if address == "" {
		return nil, nil
	}
	id, err := parseAccount(address)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func appendOp(tx *xdr.Transaction, source string, op xdr.Operation) error {
	if len(tx.Operations) >= xdr.MaxOperations {
		return fmt.Errorf("%w: tx already has %d operations", types.ErrDataEncodingFailed, xdr.MaxOperations)
	}
	src, err := opSource(source)
	if err != nil {
		return err
	}
	op.SourceAccount = src
	tx.Operations = append(tx.Operations, op)
	return nil
}

// CreateAccount adds a CreateAccount op to the Operations of tx.
type CreateAccount struct {
	Destination string
	Amount      types.Quark
	Source      string
}

func (ca *CreateAccount) validate() error {
	if ca.Amount <= 0 {
		return invalid("starting balance is not positive")
	}
	return nil
}

// Mutate appends a CreateAccount op to the Operations.
func (ca *CreateAccount) Mutate(tx *xdr.Transaction) error {
	if tx == nil {
		return ErrNilTx
	}
	if err := ca.validate(); err != nil {
		return err
	}
	dest, err := parseAccount(ca.Destination)
	if err != nil {
		return err
	}
	return appendOp(tx, ca.Source, xdr.NewCreateAccountOp(dest, int64(ca.Amount)))
}

// Payment adds a Payment operation to the Operations of Tx.
type Payment struct {
	Destination string
	Asset       xdr.Asset
	Amount      types.Quark
	Source      string
}

func (p *Payment) validate() error {
	if p.Amount <= 0 {
		return invalid("payment amount is not positive")
	}
	if !p.Asset.IsNative() && p.Asset.Code == "" {
		return invalid("non-native asset without code")
	}
	return nil
}

// Mutate appends a Payment op to the Operations.
func (p *Payment) Mutate(tx *xdr.Transaction) error {
	if tx == nil {
		return ErrNilTx
	}
	if err := p.validate(); err != nil {
		return err
	}
	dest, err := parseAccount(p.Destination)
	if err != nil {
		return err
	}
	return appendOp(tx, p.Source, xdr.NewPaymentOp(dest, p.Asset, int64(p.Amount)))
}

// ChangeTrust adds a ChangeTrust operation to the Operations of the
// Tx. A zero Limit removes the trustline.
type ChangeTrust struct {
	Asset  xdr.Asset
	Limit  types.Quark
	Source string
}

// MaxTrustLimit is the largest trustline limit.
const MaxTrustLimit = types.Quark(math.MaxInt64)

func (t *ChangeTrust) validate() error {
	if t.Limit < 0 {
		return invalid("negative trust limit")
	}
	if t.Asset.IsNative() {
		return invalid("cannot trust the native asset")
	}
	return nil
}

// Mutate appends a ChangeTrust operation to the Operations of the Tx.
func (t *ChangeTrust) Mutate(tx *xdr.Transaction) error {
	if tx == nil {
		return ErrNilTx
	}
	if err := t.validate(); err != nil {
		return err
	}
	return appendOp(tx, t.Source, xdr.NewChangeTrustOp(t.Asset, int64(t.Limit)))
}
