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
	"net/http"

	ctypes "github.com/ultiledger/go-kin/client/types"
	"github.com/ultiledger/go-kin/types"
	"github.com/ultiledger/go-kin/xdr"
)

// AccountDetails fetches the ledger view of the account. An account
// the ledger does not know fails with types.ErrMissingAccount.
func (c *Client) AccountDetails(ctx context.Context, id string) (*ctypes.AccountDetails, error) {
	var acc ctypes.AccountDetails
	err := c.fetch(ctx, &request{
		method: http.MethodGet,
		path:   accountPath(id),
		mapErr: mapAccountError,
	}, &acc)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// Balance returns the account's balance of asset, failing with
// types.ErrMissingBalance when the account holds no entry for it.
func (c *Client) Balance(ctx context.Context, id string, asset xdr.Asset) (types.Kin, error) {
	acc, err := c.AccountDetails(ctx, id)
	if err != nil {
		return types.Kin{}, err
	}
	b, ok := acc.BalanceOf(asset)
	if !ok {
		return types.Kin{}, types.ErrMissingBalance
	}
	return b.Balance, nil
}

// AggregateBalance returns the native balances of the account and of
// the accounts it controls.
func (c *Client) AggregateBalance(ctx context.Context, id string) (*ctypes.AggregateBalance, error) {
	var agg ctypes.AggregateBalance
	err := c.fetch(ctx, &request{
		method: http.MethodGet,
		path:   accountPath(id, "balance"),
		mapErr: mapAccountLookupError,
	}, &agg)
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

// ControlledAccounts lists the accounts the account holds signer
// authority over.
func (c *Client) ControlledAccounts(ctx context.Context, id string) ([]ctypes.ControlledAccount, error) {
	var ca ctypes.ControlledAccounts
	err := c.fetch(ctx, &request{
		method: http.MethodGet,
		path:   accountPath(id, "controlled"),
		mapErr: mapAccountLookupError,
	}, &ca)
	if err != nil {
		return nil, err
	}
	return ca.Accounts, nil
}
