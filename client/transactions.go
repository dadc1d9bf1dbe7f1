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
	"github.com/ultiledger/go-kin/log"
	"github.com/ultiledger/go-kin/types"
	"github.com/ultiledger/go-kin/xdr"
)

// Submit posts the signed envelope. A ledger rejection carrying result
// XDR fails with *types.TransactionError.
func (c *Client) Submit(ctx context.Context, env *xdr.TransactionEnvelope) (*ctypes.SubmitResult, error) {
	blob, err := xdr.MarshalBase64(env)
	if err != nil {
		return nil, err
	}
	return c.SubmitXDR(ctx, blob)
}

// SubmitXDR posts an already encoded envelope.
func (c *Client) SubmitXDR(ctx context.Context, envelopeXDR string) (*ctypes.SubmitResult, error) {
	var res ctypes.SubmitResult
	err := c.fetch(ctx, &request{
		method: http.MethodPost,
		path:   "transactions",
		form:   url.Values{"tx": {envelopeXDR}},
		mapErr: mapSubmitError,
	}, &res)
	if err != nil {
		return nil, err
	}
	log.Debugw("transaction submitted", "hash", res.Hash, "ledger", res.Ledger)
	return &res, nil
}

func mapSubmitError(p *ctypes.Problem) error {
	if p.Extras.ResultXDR != "" {
		var result xdr.TransactionResult
		if err := xdr.UnmarshalBase64(p.Extras.ResultXDR, &result); err != nil {
			log.Warnw("undecodable result xdr", "status", p.Status, "err", err)
			return &types.UnknownError{Status: p.Status, Title: p.Title, Err: fmt.Errorf("decode result xdr: %v", err)}
		}
		return &types.TransactionError{Hash: p.Extras.Hash, Result: result}
	}
	if p.Status == http.StatusNotFound {
		return types.ErrInvalidAccount
	}
	return unknownProblem(p)
}

func pageQuery(r ctypes.PageRequest) url.Values {
	q := url.Values{}
	for k, v := range r.Params() {
		q.Set(k, v)
	}
	return q
}

func feedPath(account, resource string) string {
	if account == "" {
		return resource
	}
	return accountPath(account, resource)
}

// Transactions lists a page of transactions.
func (c *Client) Transactions(ctx context.Context, r ctypes.PageRequest) ([]ctypes.TxEvent, error) {
	var page ctypes.Page[ctypes.TxEvent]
	mapErr := mapGenericError
	if r.Account != "" {
		mapErr = mapAccountError
	}
	err := c.fetch(ctx, &request{
		method: http.MethodGet,
		path:   feedPath(r.Account, "transactions"),
		query:  pageQuery(r),
		mapErr: mapErr,
	}, &page)
	if err != nil {
		return nil, err
	}
	return page.Records(), nil
}

// Payments lists a page of payment operations.
func (c *Client) Payments(ctx context.Context, r ctypes.PageRequest) ([]ctypes.PaymentEvent, error) {
	var page ctypes.Page[ctypes.PaymentEvent]
	mapErr := mapGenericError
	if r.Account != "" {
		mapErr = mapAccountError
	}
	err := c.fetch(ctx, &request{
		method: http.MethodGet,
		path:   feedPath(r.Account, "payments"),
		query:  pageQuery(r),
		mapErr: mapErr,
	}, &page)
	if err != nil {
		return nil, err
	}
	return page.Records(), nil
}
