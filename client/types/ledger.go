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
	"time"

	"github.com/ultiledger/go-kin/types"
)

// Ledger is a closed ledger record.
type Ledger struct {
	ID               string    `json:"id"`
	PagingToken      string    `json:"paging_token"`
	Hash             string    `json:"hash"`
	Sequence         int32     `json:"sequence"`
	TransactionCount int32     `json:"transaction_count"`
	OperationCount   int32     `json:"operation_count"`
	ClosedAt         time.Time `json:"closed_at"`
	BaseFee          int64     `json:"base_fee"`
	BaseFeeInQuarks  int64     `json:"base_fee_in_stroops"`
	BaseReserve      string    `json:"base_reserve"`
	MaxTxSetSize     int32     `json:"max_tx_set_size"`
}

// Fee returns the base fee, reported under either field name
// depending on the gateway version.
func (l *Ledger) Fee() types.Quark {
	if l.BaseFeeInQuarks > 0 {
		return types.Quark(l.BaseFeeInQuarks)
	}
	return types.Quark(l.BaseFee)
}

// NetworkParameters are network wide settings derived from the
// latest ledger.
type NetworkParameters struct {
	BaseFee      types.Quark
	LedgerSeq    int32
	MaxTxSetSize int32
}

// Problem is the gateway's error envelope.
type Problem struct {
	Type   string        `json:"type"`
	Title  string        `json:"title"`
	Status int           `json:"status"`
	Detail string        `json:"detail"`
	Extras ProblemExtras `json:"extras"`
}

type ProblemExtras struct {
	Hash        string      `json:"hash"`
	EnvelopeXDR string      `json:"envelope_xdr"`
	ResultXDR   string      `json:"result_xdr"`
	ResultCodes ResultCodes `json:"result_codes"`
}

type ResultCodes struct {
	Transaction string   `json:"transaction"`
	Operations  []string `json:"operations"`
}
