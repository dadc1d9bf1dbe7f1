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
	"fmt"
)

type OperationType int32

const (
	OperationTypeCreateAccount OperationType = 0
	OperationTypePayment       OperationType = 1
	OperationTypeChangeTrust   OperationType = 6
)

func (t OperationType) String() string {
	switch t {
	case OperationTypeCreateAccount:
		return "create_account"
	case OperationTypePayment:
		return "payment"
	case OperationTypeChangeTrust:
		return "change_trust"
	}
	return fmt.Sprintf("OperationType(%d)", int32(t))
}

// CreateAccountOp funds a new account with the native asset.
type CreateAccountOp struct {
	Destination     AccountID
	StartingBalance int64
}

// PaymentOp sends Amount of Asset to Destination.
type PaymentOp struct {
	Destination AccountID
	Asset       Asset
	Amount      int64
}

// ChangeTrustOp creates, updates or removes (Limit 0) a trustline.
type ChangeTrustOp struct {
	Line  Asset
	Limit int64
}

// OperationBody is the union of the supported operations, only the
// member selected by Type is set.
type OperationBody struct {
	Type          OperationType
	CreateAccount *CreateAccountOp
	Payment       *PaymentOp
	ChangeTrust   *ChangeTrustOp
}

// Operation is an atomic ledger action. A nil SourceAccount means the
// transaction's source account.
type Operation struct {
	SourceAccount *AccountID
	Body          OperationBody
}

// NewCreateAccountOp returns a create-account operation.
func NewCreateAccountOp(destination AccountID, startingBalance int64) Operation {
	return Operation{Body: OperationBody{
		Type:          OperationTypeCreateAccount,
		CreateAccount: &CreateAccountOp{Destination: destination, StartingBalance: startingBalance},
	}}
}

// NewPaymentOp returns a payment operation.
func NewPaymentOp(destination AccountID, asset Asset, amount int64) Operation {
	return Operation{Body: OperationBody{
		Type:    OperationTypePayment,
		Payment: &PaymentOp{Destination: destination, Asset: asset, Amount: amount},
	}}
}

// NewChangeTrustOp returns a change-trust operation.
func NewChangeTrustOp(line Asset, limit int64) Operation {
	return Operation{Body: OperationBody{
		Type:        OperationTypeChangeTrust,
		ChangeTrust: &ChangeTrustOp{Line: line, Limit: limit},
	}}
}

func (op *Operation) EncodeTo(e *Encoder) error {
	if err := e.Bool(op.SourceAccount != nil); err != nil {
		return err
	}
	if op.SourceAccount != nil {
		if err := op.SourceAccount.EncodeTo(e); err != nil {
			return err
		}
	}
	return op.Body.EncodeTo(e)
}

func (op *Operation) DecodeFrom(d *Decoder) error {
	*op = Operation{}
	present, err := d.Bool()
	if err != nil {
		return err
	}
	if present {
		op.SourceAccount = &AccountID{}
		if err := op.SourceAccount.DecodeFrom(d); err != nil {
			return err
		}
	}
	return op.Body.DecodeFrom(d)
}

func (b *OperationBody) EncodeTo(e *Encoder) error {
	switch b.Type {
	case OperationTypeCreateAccount:
		if b.CreateAccount == nil {
			return fmt.Errorf("%w: create_account body is nil", ErrDataEncodingFailed)
		}
		if err := e.Int32(int32(b.Type)); err != nil {
			return err
		}
		if err := b.CreateAccount.Destination.EncodeTo(e); err != nil {
			return err
		}
		return e.Int64(b.CreateAccount.StartingBalance)
	case OperationTypePayment:
		if b.Payment == nil {
			return fmt.Errorf("%w: payment body is nil", ErrDataEncodingFailed)
		}
		if err := e.Int32(int32(b.Type)); err != nil {
			return err
		}
		if err := b.Payment.Destination.EncodeTo(e); err != nil {
			return err
		}
		if err := b.Payment.Asset.EncodeTo(e); err != nil {
			return err
		}
		return e.Int64(b.Payment.Amount)
	case OperationTypeChangeTrust:
		if b.ChangeTrust == nil {
			return fmt.Errorf("%w: change_trust body is nil", ErrDataEncodingFailed)
		}
		if err := e.Int32(int32(b.Type)); err != nil {
			return err
		}
		if err := b.ChangeTrust.Line.EncodeTo(e); err != nil {
			return err
		}
		return e.Int64(b.ChangeTrust.Limit)
	}
	return fmt.Errorf("%w: unsupported operation type %d", ErrDataEncodingFailed, b.Type)
}

func (b *OperationBody) DecodeFrom(d *Decoder) error {
	t, err := d.Int32()
	if err != nil {
		return err
	}
	*b = OperationBody{Type: OperationType(t)}
	switch b.Type {
	case OperationTypeCreateAccount:
		op := &CreateAccountOp{}
		if err := op.Destination.DecodeFrom(d); err != nil {
			return err
		}
		if op.StartingBalance, err = d.Int64(); err != nil {
			return err
		}
		b.CreateAccount = op
		return nil
	case OperationTypePayment:
		op := &PaymentOp{}
		if err := op.Destination.DecodeFrom(d); err != nil {
			return err
		}
		if err := op.Asset.DecodeFrom(d); err != nil {
			return err
		}
		if op.Amount, err = d.Int64(); err != nil {
			return err
		}
		b.Payment = op
		return nil
	case OperationTypeChangeTrust:
		op := &ChangeTrustOp{}
		if err := op.Line.DecodeFrom(d); err != nil {
			return err
		}
		if op.Limit, err = d.Int64(); err != nil {
			return err
		}
		b.ChangeTrust = op
		return nil
	}
	return malformed("unsupported operation type %d", t)
}
