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

package types

import (
	"strconv"
	"time"

	"github.com/ultiledger/go-kin/types"
	"github.com/ultiledger/go-kin/xdr"
)

// Page is one page of a collection resource.
type Page[T any] struct {
	Embedded struct {
		Records []T `json:"records"`
	} `json:"_embedded"`
}

// Records returns the page records.
func (p *Page[T]) Records() []T {
	return p.Embedded.Records
}

// TxEvent is a transaction record as listed or streamed by the gateway.
type TxEvent struct {
	ID             string    `json:"id"`
	PagingToken    string    `json:"paging_token"`
	Hash           string    `json:"hash"`
	Ledger         int32     `json:"ledger"`
	CreatedAt      time.Time `json:"created_at"`
	SourceAccount  string    `json:"source_account"`
	SourceSequence int64     `json:"source_account_sequence,string"`
	FeePaid        int64     `json:"fee_paid"`
	OperationCount int32     `json:"operation_count"`
	EnvelopeXDR    string    `json:"envelope_xdr"`
	ResultXDR      string    `json:"result_xdr"`
	MemoType       string    `json:"memo_type"`
	Memo           string    `json:"memo,omitempty"`
	Successful     *bool     `json:"successful,omitempty"`
}

// Cursor returns the stream position of the event.
func (e TxEvent) Cursor() string {
	return e.PagingToken
}

// Envelope decodes the envelope the transaction was submitted with.
func (e *TxEvent) Envelope() (xdr.TransactionEnvelope, error) {
	var env xdr.TransactionEnvelope
	err := xdr.UnmarshalBase64(e.EnvelopeXDR, &env)
	return env, err
}

// Result decodes the transaction result.
func (e *TxEvent) Result() (xdr.TransactionResult, error) {
	var res xdr.TransactionResult
	err := xdr.UnmarshalBase64(e.ResultXDR, &res)
	return res, err
}

// PaymentEvent is a payment-like operation record: payment or
// create_account.
type PaymentEvent struct {
	ID              string    `json:"id"`
	PagingToken     string    `json:"paging_token"`
	Type            string    `json:"type"`
	TransactionHash string    `json:"transaction_hash"`
	CreatedAt       time.Time `json:"created_at"`
	SourceAccount   string    `json:"source_account"`
	// payment
	From        string    `json:"from,omitempty"`
	To          string    `json:"to,omitempty"`
	Amount      types.Kin `json:"amount"`
	AssetType   string    `json:"asset_type,omitempty"`
	AssetCode   string    `json:"asset_code,omitempty"`
	AssetIssuer string    `json:"asset_issuer,omitempty"`
	// create_account
	Funder          string    `json:"funder,omitempty"`
	Account         string    `json:"account,omitempty"`
	StartingBalance types.Kin `json:"starting_balance"`

	TransactionSuccessful *bool `json:"transaction_successful,omitempty"`
}

func (e PaymentEvent) Cursor() string {
	return e.PagingToken
}

// Sender returns the paying account.
func (e PaymentEvent) Sender() string {
	if e.Type == "create_account" {
		return e.Funder
	}
	return e.From
}

// Recipient returns the receiving account.
func (e PaymentEvent) Recipient() string {
	if e.Type == "create_account" {
		return e.Account
	}
	return e.To
}

// Value returns the transferred amount.
func (e PaymentEvent) Value() types.Kin {
	if e.Type == "create_account" {
		return e.StartingBalance
	}
	return e.Amount
}

// SubmitResult is the gateway's answer to an accepted transaction.
type SubmitResult struct {
	Hash        string `json:"hash"`
	Ledger      int32  `json:"ledger"`
	EnvelopeXDR string `json:"envelope_xdr"`
	ResultXDR   string `json:"result_xdr"`
}

// PageRequest selects a page of a collection. An empty Account lists
// the network wide collection.
type PageRequest struct {
	Account string
	Cursor  string
	Order   string
	Limit   int
}

// Params returns the non-empty query parameters.
func (r PageRequest) Params() map[string]string {
	p := make(map[string]string)
	if r.Cursor != "" {
		p["cursor"] = r.Cursor
	}
	if r.Order != "" {
		p["order"] = r.Order
	}
	if r.Limit > 0 {
		p["limit"] = strconv.Itoa(r.Limit)
	}
	return p
}

// Participants returns the accounts the transaction is about.
func (e TxEvent) Participants() []string {
	return []string{e.SourceAccount}
}

// Participants returns the sender and the recipient.
func (e PaymentEvent) Participants() []string {
	return []string{e.Sender(), e.Recipient()}
}
