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

package test

import (
	"context"
	"errors"
	"fmt"

	"github.com/ultiledger/go-kin/client/build"
	"github.com/ultiledger/go-kin/future"
	"github.com/ultiledger/go-kin/log"
	"github.com/ultiledger/go-kin/types"
	"github.com/ultiledger/go-kin/xdr"
)

func init() {
	Register(&OneToOnePayment{})
	Register(&UntrustedPayment{})
}

// OneToOnePayment tests the correctness of a point-to-point payment.
type OneToOnePayment struct{}

func (p *OneToOnePayment) Desc() string {
	return "testcase: one-to-one payment"
}

func (p *OneToOnePayment) Run(ctx context.Context, env *Env) error {
	src, err := createAccount(ctx, env)
	if err != nil {
		return err
	}
	dst, err := createAccount(ctx, env)
	if err != nil {
		return err
	}

	amount := types.NewKin(10)
	quarks, err := amount.Quarks()
	if err != nil {
		return err
	}
	envelope, err := env.Builder.Payment(ctx, build.PaymentParams{
		Source:      src,
		Destination: dst.Address(),
		Asset:       xdr.NativeAsset(),
		Amount:      quarks,
		Memo:        xdr.MemoNone(),
	}).Await(ctx)
	if err != nil {
		return fmt.Errorf("build payment failed: %w", err)
	}

	res, err := env.Builder.Submit(ctx, future.Resolved(envelope)).Await(ctx)
	if err != nil {
		return fmt.Errorf("submit payment failed: %w", err)
	}
	log.Infow("the payment is confirmed", "hash", res.Hash, "ledger", res.Ledger)

	// Check the balance of the accounts.
	fee := types.Quark(envelope.Tx.Fee).Kin()
	if err := expectBalance(ctx, env, src.Address(), testBalance.Sub(amount).Sub(fee)); err != nil {
		return err
	}
	return expectBalance(ctx, env, dst.Address(), testBalance.Add(amount))
}

func expectBalance(ctx context.Context, env *Env, address string, want types.Kin) error {
	got, err := env.Client.Balance(ctx, address, xdr.NativeAsset())
	if err != nil {
		return fmt.Errorf("get balance of %s failed: %w", address, err)
	}
	if !got.Equal(want.Decimal) {
		return fmt.Errorf("account %s with unexpected balance: %s, want %s", address, got, want)
	}
	return nil
}

// UntrustedPayment tests that a payment of an asset the destination
// does not trust is refused before submission.
type UntrustedPayment struct{}

func (p *UntrustedPayment) Desc() string {
	return "testcase: payment to an account without trustline"
}

func (p *UntrustedPayment) Run(ctx context.Context, env *Env) error {
	dst, err := createAccount(ctx, env)
	if err != nil {
		return err
	}
	asset := xdr.Asset{Type: xdr.AssetTypeCreditAlphanum4, Code: "TEST", Issuer: env.Funder.AccountID()}

	_, err = env.Builder.Payment(ctx, build.PaymentParams{
		Source:      env.Funder,
		Destination: dst.Address(),
		Asset:       asset,
		Amount:      1,
		Memo:        xdr.MemoNone(),
	}).Await(ctx)

	var notReady *types.DestinationNotReadyError
	if !errors.As(err, &notReady) {
		return fmt.Errorf("expected destination not ready, got %v", err)
	}
	if !errors.Is(err, types.ErrMissingBalance) {
		return fmt.Errorf("expected missing trustline, got %v", err)
	}
	return nil
}
