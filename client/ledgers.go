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

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	ctypes "github.com/ultiledger/go-kin/client/types"
	"github.com/ultiledger/go-kin/types"
)

// LatestLedger fetches the most recently closed ledger.
func (c *Client) LatestLedger(ctx context.Context) (*ctypes.Ledger, error) {
	var page ctypes.Page[ctypes.Ledger]
	err := c.fetch(ctx, &request{
		method: http.MethodGet,
		path:   "ledgers",
		query:  url.Values{"order": {"desc"}, "limit": {"1"}},
	}, &page)
	if err != nil {
		return nil, err
	}
	records := page.Records()
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: ledger list is empty", types.ErrInternalInconsistency)
	}
	return &records[0], nil
}

// NetworkParameters derives the current network settings from the
// latest ledger. Every call queries the gateway.
func (c *Client) NetworkParameters(ctx context.Context) (*ctypes.NetworkParameters, error) {
	l, err := c.LatestLedger(ctx)
	if err != nil {
		return nil, err
	}
	fee := l.Fee()
	if fee <= 0 {
		return nil, fmt.Errorf("%w: ledger %d reports no base fee", types.ErrInternalInconsistency, l.Sequence)
	}
	return &ctypes.NetworkParameters{
		BaseFee:      fee,
		LedgerSeq:    l.Sequence,
		MaxTxSetSize: l.MaxTxSetSize,
	}, nil
}
