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

// TransactionResultCode is the outcome of applying a transaction.
type TransactionResultCode int32

const (
	TransactionResultCodeTxSuccess             TransactionResultCode = 0
	TransactionResultCodeTxFailed              TransactionResultCode = -1
	TransactionResultCodeTxTooEarly            TransactionResultCode = -2
	TransactionResultCodeTxTooLate             TransactionResultCode = -3
	TransactionResultCodeTxMissingOperation    TransactionResultCode = -4
	TransactionResultCodeTxBadSeq              TransactionResultCode = -5
	TransactionResultCodeTxBadAuth             TransactionResultCode = -6
	TransactionResultCodeTxInsufficientBalance TransactionResultCode = -7
	TransactionResultCodeTxNoAccount           TransactionResultCode = -8
	TransactionResultCodeTxInsufficientFee     TransactionResultCode = -9
	TransactionResultCodeTxBadAuthExtra        TransactionResultCode = -10
	TransactionResultCodeTxInternalError       TransactionResultCode = -11
)

var transactionResultCodeNames = map[TransactionResultCode]string{
	TransactionResultCodeTxSuccess:             "tx_success",
	TransactionResultCodeTxFailed:              "tx_failed",
	TransactionResultCodeTxTooEarly:            "tx_too_early",
	TransactionResultCodeTxTooLate:             "tx_too_late",
	TransactionResultCodeTxMissingOperation:    "tx_missing_operation",
	TransactionResultCodeTxBadSeq:              "tx_bad_seq",
	TransactionResultCodeTxBadAuth:             "tx_bad_auth",
	TransactionResultCodeTxInsufficientBalance: "tx_insufficient_balance",
	TransactionResultCodeTxNoAccount:           "tx_no_source_account",
	TransactionResultCodeTxInsufficientFee:     "tx_insufficient_fee",
	TransactionResultCodeTxBadAuthExtra:        "tx_bad_auth_extra",
	TransactionResultCodeTxInternalError:       "tx_internal_error",
}

func (c TransactionResultCode) String() string {
	if name, ok := transactionResultCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("TransactionResultCode(%d)", int32(c))
}

// OperationResultCode tells whether an operation was attempted.
type OperationResultCode int32

const (
	OperationResultCodeOpInner             OperationResultCode = 0
	OperationResultCodeOpBadAuth           OperationResultCode = -1
	OperationResultCodeOpNoAccount         OperationResultCode = -2
	OperationResultCodeOpNotSupported      OperationResultCode = -3
	OperationResultCodeOpTooManySubentries OperationResultCode = -4
	OperationResultCodeOpExceededWorkLimit OperationResultCode = -5
)

var operationResultCodeNames = map[OperationResultCode]string{
	OperationResultCodeOpInner:             "op_inner",
	OperationResultCodeOpBadAuth:           "op_bad_auth",
	OperationResultCodeOpNoAccount:         "op_no_source_account",
	OperationResultCodeOpNotSupported:      "op_not_supported",
	OperationResultCodeOpTooManySubentries: "op_too_many_subentries",
	OperationResultCodeOpExceededWorkLimit: "op_exceeded_work_limit",
}

func (c OperationResultCode) String() string {
	if name, ok := operationResultCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("OperationResultCode(%d)", int32(c))
}

type CreateAccountResultCode int32

const (
	CreateAccountResultCodeSuccess      CreateAccountResultCode = 0
	CreateAccountResultCodeMalformed    CreateAccountResultCode = -1
	CreateAccountResultCodeUnderfunded  CreateAccountResultCode = -2
	CreateAccountResultCodeLowReserve   CreateAccountResultCode = -3
	CreateAccountResultCodeAlreadyExist CreateAccountResultCode = -4
)

var createAccountResultCodeNames = map[CreateAccountResultCode]string{
	CreateAccountResultCodeSuccess:      "op_success",
	CreateAccountResultCodeMalformed:    "op_malformed",
	CreateAccountResultCodeUnderfunded:  "op_underfunded",
	CreateAccountResultCodeLowReserve:   "op_low_reserve",
	CreateAccountResultCodeAlreadyExist: "op_already_exists",
}

func (c CreateAccountResultCode) String() string {
	if name, ok := createAccountResultCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CreateAccountResultCode(%d)", int32(c))
}

type PaymentResultCode int32

const (
	PaymentResultCodeSuccess          PaymentResultCode = 0
	PaymentResultCodeMalformed        PaymentResultCode = -1
	PaymentResultCodeUnderfunded      PaymentResultCode = -2
	PaymentResultCodeSrcNoTrust       PaymentResultCode = -3
	PaymentResultCodeSrcNotAuthorized PaymentResultCode = -4
	PaymentResultCodeNoDestination    PaymentResultCode = -5
	PaymentResultCodeNoTrust          PaymentResultCode = -6
	PaymentResultCodeNotAuthorized    PaymentResultCode = -7
	PaymentResultCodeLineFull         PaymentResultCode = -8
	PaymentResultCodeNoIssuer         PaymentResultCode = -9
)

var paymentResultCodeNames = map[PaymentResultCode]string{
	PaymentResultCodeSuccess:          "op_success",
	PaymentResultCodeMalformed:        "op_malformed",
	PaymentResultCodeUnderfunded:      "op_underfunded",
	PaymentResultCodeSrcNoTrust:       "op_src_no_trust",
	PaymentResultCodeSrcNotAuthorized: "op_src_not_authorized",
	PaymentResultCodeNoDestination:    "op_no_destination",
	PaymentResultCodeNoTrust:          "op_no_trust",
	PaymentResultCodeNotAuthorized:    "op_not_authorized",
	PaymentResultCodeLineFull:         "op_line_full",
	PaymentResultCodeNoIssuer:         "op_no_issuer",
}

func (c PaymentResultCode) String() string {
	if name, ok := paymentResultCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("PaymentResultCode(%d)", int32(c))
}

type ChangeTrustResultCode int32

const (
	ChangeTrustResultCodeSuccess        ChangeTrustResultCode = 0
	ChangeTrustResultCodeMalformed      ChangeTrustResultCode = -1
	ChangeTrustResultCodeNoIssuer       ChangeTrustResultCode = -2
	ChangeTrustResultCodeInvalidLimit   ChangeTrustResultCode = -3
	ChangeTrustResultCodeLowReserve     ChangeTrustResultCode = -4
	ChangeTrustResultCodeSelfNotAllowed ChangeTrustResultCode = -5
)

var changeTrustResultCodeNames = map[ChangeTrustResultCode]string{
	ChangeTrustResultCodeSuccess:        "op_success",
	ChangeTrustResultCodeMalformed:      "op_malformed",
	ChangeTrustResultCodeNoIssuer:       "op_no_issuer",
	ChangeTrustResultCodeInvalidLimit:   "op_invalid_limit",
	ChangeTrustResultCodeLowReserve:     "op_low_reserve",
	ChangeTrustResultCodeSelfNotAllowed: "op_self_not_allowed",
}

func (c ChangeTrustResultCode) String() string {
	if name, ok := changeTrustResultCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ChangeTrustResultCode(%d)", int32(c))
}

// OperationResultTr holds the operation specific result code, only
// the member matching Type is meaningful.
type OperationResultTr struct {
	Type                OperationType
	CreateAccountResult CreateAccountResultCode
	PaymentResult       PaymentResultCode
	ChangeTrustResult   ChangeTrustResultCode
}

// OperationResult is the outcome of one operation. Tr is set only when
// Code is OperationResultCodeOpInner.
type OperationResult struct {
	Code OperationResultCode
	Tr   *OperationResultTr
}

// String returns the code as reported in the gateway's result_codes.
func (r OperationResult) String() string {
	if r.Code != OperationResultCodeOpInner || r.Tr == nil {
		return r.Code.String()
	}
	switch r.Tr.Type {
	case OperationTypeCreateAccount:
		return r.Tr.CreateAccountResult.String()
	case OperationTypePayment:
		return r.Tr.PaymentResult.String()
	case OperationTypeChangeTrust:
		return r.Tr.ChangeTrustResult.String()
	}
	return r.Code.String()
}

// Success reports whether the operation was applied.
func (r OperationResult) Success() bool {
	return r.String() == "op_success"
}

func (r *OperationResult) EncodeTo(e *Encoder) error {
	if err := e.Int32(int32(r.Code)); err != nil {
		return err
	}
	if r.Code != OperationResultCodeOpInner {
		return nil
	}
	if r.Tr == nil {
		return fmt.Errorf("%w: inner operation result is nil", ErrDataEncodingFailed)
	}
	if err := e.Int32(int32(r.Tr.Type)); err != nil {
		return err
	}
	switch r.Tr.Type {
	case OperationTypeCreateAccount:
		return e.Int32(int32(r.Tr.CreateAccountResult))
	case OperationTypePayment:
		return e.Int32(int32(r.Tr.PaymentResult))
	case OperationTypeChangeTrust:
		return e.Int32(int32(r.Tr.ChangeTrustResult))
	}
	return fmt.Errorf("%w: unsupported operation type %d", ErrDataEncodingFailed, r.Tr.Type)
}

func (r *OperationResult) DecodeFrom(d *Decoder) error {
	code, err := d.Int32()
	if err != nil {
		return err
	}
	*r = OperationResult{Code: OperationResultCode(code)}
	if _, ok := operationResultCodeNames[r.Code]; !ok {
		return malformed("unknown operation result code %d", code)
	}
	if r.Code != OperationResultCodeOpInner {
		return nil
	}
	t, err := d.Int32()
	if err != nil {
		return err
	}
	r.Tr = &OperationResultTr{Type: OperationType(t)}
	inner, err := d.Int32()
	if err != nil {
		return err
	}
	var known bool
	switch r.Tr.Type {
	case OperationTypeCreateAccount:
		r.Tr.CreateAccountResult = CreateAccountResultCode(inner)
		_, known = createAccountResultCodeNames[r.Tr.CreateAccountResult]
	case OperationTypePayment:
		r.Tr.PaymentResult = PaymentResultCode(inner)
		_, known = paymentResultCodeNames[r.Tr.PaymentResult]
	case OperationTypeChangeTrust:
		r.Tr.ChangeTrustResult = ChangeTrustResultCode(inner)
		_, known = changeTrustResultCodeNames[r.Tr.ChangeTrustResult]
	default:
		return malformed("unsupported operation type %d in result", t)
	}
	if !known {
		return malformed("unknown %s result code %d", r.Tr.Type, inner)
	}
	return nil
}

// TransactionResult is the ledger's verdict on a submitted transaction.
// Results is only carried for tx_success and tx_failed.
type TransactionResult struct {
	FeeCharged int64
	Code       TransactionResultCode
	Results    []OperationResult
}

func (r *TransactionResult) hasResults() bool {
	return r.Code == TransactionResultCodeTxSuccess || r.Code == TransactionResultCodeTxFailed
}

// OperationCodes returns the per-operation codes as reported in the
// gateway's result_codes.
func (r *TransactionResult) OperationCodes() []string {
	codes := make([]string, 0, len(r.Results))
	for _, op := range r.Results {
		codes = append(codes, op.String())
	}
	return codes
}

func (r *TransactionResult) EncodeTo(e *Encoder) error {
	if err := e.Int64(r.FeeCharged); err != nil {
		return err
	}
	if err := e.Int32(int32(r.Code)); err != nil {
		return err
	}
	if r.hasResults() {
		if err := e.Len(len(r.Results), MaxOperations); err != nil {
			return err
		}
		for i := range r.Results {
			if err := r.Results[i].EncodeTo(e); err != nil {
				return err
			}
		}
	}
	return e.Int32(0)
}

func (r *TransactionResult) DecodeFrom(d *Decoder) error {
	*r = TransactionResult{}
	var err error
	if r.FeeCharged, err = d.Int64(); err != nil {
		return err
	}
	code, err := d.Int32()
	if err != nil {
		return err
	}
	r.Code = TransactionResultCode(code)
	if _, ok := transactionResultCodeNames[r.Code]; !ok {
		return malformed("unknown transaction result code %d", code)
	}
	if r.hasResults() {
		n, err := d.Len(MaxOperations, 4)
		if err != nil {
			return err
		}
		if n > 0 {
			r.Results = make([]OperationResult, n)
			for i := range r.Results {
				if err := r.Results[i].DecodeFrom(d); err != nil {
					return err
				}
			}
		}
	}
	return decodeExt(d)
}
