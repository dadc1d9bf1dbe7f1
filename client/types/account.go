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

// Package types holds the gateway's JSON resource models.
package types

import (
	"github.com/ultiledger/go-kin/types"
	"github.com/ultiledger/go-kin/xdr"
)

// AccountDetails is the gateway's view of an account.
type AccountDetails struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	// Latest transaction sequence number, a decimal string on the wire.
	Sequence      int64             `json:"sequence,string"`
	SubentryCount int32             `json:"subentry_count"`
	Balances      []Balance         `json:"balances"`
	Signers       []Signer          `json:"signers"`
	Thresholds    Thresholds        `json:"thresholds"`
	Flags         Flags             `json:"flags"`
	Data          map[string]string `json:"data"`
	PagingToken   string            `json:"paging_token"`
}

// BalanceOf returns the balance entry held for asset.
func (a *AccountDetails) BalanceOf(asset xdr.Asset) (Balance, bool) {
	for _, b := range a.Balances {
		if b.Matches(asset) {
			return b, true
		}
	}
	return Balance{}, false
}

// Balance is an account's holding of one asset. Non-native entries are
// trustlines.
type Balance struct {
	Balance     types.Kin  `json:"balance"`
	Limit       *types.Kin `json:"limit,omitempty"`
	AssetType   string     `json:"asset_type"`
	AssetCode   string     `json:"asset_code,omitempty"`
	AssetIssuer string     `json:"asset_issuer,omitempty"`
}

// Asset returns the wire asset of the entry.
func (b *Balance) Asset() (xdr.Asset, error) {
	if b.AssetType == "native" {
		return xdr.NativeAsset(), nil
	}
	return xdr.NewCreditAsset(b.AssetCode, b.AssetIssuer)
}

// Matches reports whether the entry holds asset.
func (b *Balance) Matches(asset xdr.Asset) bool {
	if asset.IsNative() {
		return b.AssetType == "native"
	}
	return b.AssetType != "native" && b.AssetCode == asset.Code && b.AssetIssuer == asset.Issuer.Address()
}

type Signer struct {
	Key    string `json:"key"`
	Weight int32  `json:"weight"`
	Type   string `json:"type"`
}

type Thresholds struct {
	LowThreshold  uint8 `json:"low_threshold"`
	MedThreshold  uint8 `json:"med_threshold"`
	HighThreshold uint8 `json:"high_threshold"`
}

type Flags struct {
	AuthRequired  bool `json:"auth_required"`
	AuthRevocable bool `json:"auth_revocable"`
	AuthImmutable bool `json:"auth_immutable"`
}

// AccountBalance is the native balance of one account.
type AccountBalance struct {
	AccountID string    `json:"account_id"`
	Balance   types.Kin `json:"balance"`
}

// AggregateBalance is the balance of an account summed with the
// accounts it controls.
type AggregateBalance struct {
	Balances []AccountBalance `json:"aggregate_balance"`
}

// Total sums all balances.
func (a *AggregateBalance) Total() types.Kin {
	var total types.Kin
	for _, b := range a.Balances {
		total = total.Add(b.Balance)
	}
	return total
}

// ControlledAccount is an account under another account's signer
// authority.
type ControlledAccount struct {
	AccountID string `json:"account_id"`
	Weight    int32  `json:"weight"`
}

type ControlledAccounts struct {
	Accounts []ControlledAccount `json:"controlled_accounts"`
}
