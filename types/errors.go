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

// Package types holds the error taxonomy every client operation
// reports and the amount units shared with presentation layers.
package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ultiledger/go-kin/xdr"
)

var (
	ErrMissingAccount        = errors.New("missing account")
	ErrMissingBalance        = errors.New("missing balance")
	ErrInvalidAccount        = errors.New("invalid account")
	ErrDestinationNotReady   = errors.New("destination not ready for asset")
	ErrSigningUnavailable    = errors.New("signing unavailable")
	ErrURLEncodingFailed     = errors.New("url encoding failed")
	ErrDataEncodingFailed    = xdr.ErrDataEncodingFailed
	ErrInternalInconsistency = errors.New("internal inconsistency")
	ErrMalformedData         = xdr.ErrMalformedData
	ErrUnknown               = errors.New("unknown error")

	// Matched by a *TransactionError carrying the corresponding code.
	ErrBadSequence         = errors.New("bad sequence number")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInsufficientFee     = errors.New("insufficient fee")
	ErrNoDestination       = errors.New("no destination")
	ErrNoTrust             = errors.New("destination has no trustline")
)

// DestinationNotReadyError reports that the destination of a payment
// cannot receive the asset yet, either because the account does not
// exist or because it holds no balance (trustline) for the asset.
type DestinationNotReadyError struct {
	Destination string
	Asset       xdr.Asset
	Cause       error
}

func (e *DestinationNotReadyError) Error() string {
	return fmt.Sprintf("destination %s not ready for asset %s: %v", e.Destination, e.Asset, e.Cause)
}

func (e *DestinationNotReadyError) Unwrap() error {
	return e.Cause
}

func (e *DestinationNotReadyError) Is(target error) bool {
	return target == ErrDestinationNotReady
}

// UnknownError wraps a gateway or transport failure that has no more
// specific kind. Status is the gateway status when one was reported.
type UnknownError struct {
	Status int
	Title  string
	Err    error
}

func (e *UnknownError) Error() string {
	var b strings.Builder
	b.WriteString("unknown error")
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Title != "" {
		b.WriteString(": ")
		b.WriteString(e.Title)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *UnknownError) Unwrap() error {
	return e.Err
}

func (e *UnknownError) Is(target error) bool {
	return target == ErrUnknown
}

// Unknown wraps err as an UnknownError unless it already belongs to
// the taxonomy.
func Unknown(err error) error {
	if err == nil || Classify(err) != "unknown" {
		return err
	}
	var ue *UnknownError
	if errors.As(err, &ue) {
		return err
	}
	return &UnknownError{Err: err}
}

// TransactionError is a submission rejected by the ledger, decoded from
// the result XDR the gateway returned.
type TransactionError struct {
	Hash   string
	Result xdr.TransactionResult
}

func (e *TransactionError) Error() string {
	msg := "transaction failed: " + e.Result.Code.String()
	if codes := e.Result.OperationCodes(); len(codes) > 0 {
		msg += " [" + strings.Join(codes, ", ") + "]"
	}
	return msg
}

// Code returns the transaction level result code.
func (e *TransactionError) Code() xdr.TransactionResultCode {
	return e.Result.Code
}

// OperationCodes returns the per-operation result codes.
func (e *TransactionError) OperationCodes() []string {
	return e.Result.OperationCodes()
}

func (e *TransactionError) Is(target error) bool {
	switch target {
	case ErrBadSequence:
		return e.Result.Code == xdr.TransactionResultCodeTxBadSeq
	case ErrInsufficientBalance:
		if e.Result.Code == xdr.TransactionResultCodeTxInsufficientBalance {
			return true
		}
		return e.anyPayment(xdr.PaymentResultCodeUnderfunded)
	case ErrInsufficientFee:
		return e.Result.Code == xdr.TransactionResultCodeTxInsufficientFee
	case ErrNoDestination:
		return e.anyPayment(xdr.PaymentResultCodeNoDestination)
	case ErrNoTrust:
		return e.anyPayment(xdr.PaymentResultCodeNoTrust)
	}
	return false
}

func (e *TransactionError) anyPayment(code xdr.PaymentResultCode) bool {
	for _, r := range e.Result.Results {
		if r.Tr != nil && r.Tr.Type == xdr.OperationTypePayment && r.Tr.PaymentResult == code {
			return true
		}
	}
	return false
}

// Classify returns the taxonomy kind of err for display purposes.
func Classify(err error) string {
	var txErr *TransactionError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &txErr):
		return "transaction_failed"
	case errors.Is(err, ErrDestinationNotReady):
		return "destination_not_ready"
	case errors.Is(err, ErrMissingAccount):
		return "missing_account"
	case errors.Is(err, ErrMissingBalance):
		return "missing_balance"
	case errors.Is(err, ErrInvalidAccount):
		return "invalid_account"
	case errors.Is(err, ErrSigningUnavailable):
		return "signing_unavailable"
	case errors.Is(err, ErrURLEncodingFailed):
		return "url_encoding_failed"
	case errors.Is(err, ErrDataEncodingFailed):
		return "data_encoding_failed"
	case errors.Is(err, ErrInternalInconsistency):
		return "internal_inconsistency"
	case errors.Is(err, ErrMalformedData):
		return "malformed_data"
	}
	return "unknown"
}
