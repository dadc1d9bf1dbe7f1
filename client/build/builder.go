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

package build

import (
	"context"
	"errors"

	"github.com/ultiledger/go-kin/account"
	ctypes "github.com/ultiledger/go-kin/client/types"
	"github.com/ultiledger/go-kin/future"
	"github.com/ultiledger/go-kin/log"
	"github.com/ultiledger/go-kin/types"
	"github.com/ultiledger/go-kin/xdr"
)

// Horizon is the part of the gateway client the builder depends on.
type Horizon interface {
	AccountDetails(ctx context.Context, id string) (*ctypes.AccountDetails, error)
	NetworkParameters(ctx context.Context) (*ctypes.NetworkParameters, error)
	Submit(ctx context.Context, env *xdr.TransactionEnvelope) (*ctypes.SubmitResult, error)
}

// Builder composes the lookups, assembly and signing of a transaction
// into a single future. Builds share no state.
type Builder struct {
	horizon   Horizon
	networkID [32]byte
}

func NewBuilder(h Horizon, networkID [32]byte) *Builder {
	return &Builder{horizon: h, networkID: networkID}
}

// TxParams describes a transaction. A zero Fee means base fee times
// the number of operations.
type TxParams struct {
	Source     account.Account
	Operations []TxMutator
	Memo       xdr.Memo
	TimeBounds *xdr.TimeBounds
	Fee        types.Quark
}

// PaymentParams describes a single payment.
type PaymentParams struct {
	Source      account.Account
	Destination string
	Asset       xdr.Asset
	Amount      types.Quark
	Memo        xdr.Memo
	Fee         types.Quark
}

// TrustParams describes a trustline change. A zero Limit trusts up
// to MaxTrustLimit.
type TrustParams struct {
	Source account.Account
	Asset  xdr.Asset
	Limit  types.Quark
	Memo   xdr.Memo
	Fee    types.Quark
}

// draft carries the fetched values the assembly step needs.
type draft struct {
	sequence int64
	baseFee  types.Quark
}

// Transaction fetches the next sequence of the source account and
// the base fee, assembles the operations and signs the result.
func (b *Builder) Transaction(ctx context.Context, p TxParams) *future.Future[*xdr.TransactionEnvelope] {
	if p.Source == nil {
		return future.Failed[*xdr.TransactionEnvelope](types.ErrSigningUnavailable)
	}
	source := p.Source.Address()

	seq := future.Go(ctx, func(ctx context.Context) (int64, error) {
		acc, err := b.horizon.AccountDetails(ctx, source)
		if err != nil {
			return 0, err
		}
		return acc.Sequence + 1, nil
	})

	fees := future.Then(seq, func(seq int64) *future.Future[draft] {
		if p.Fee > 0 {
			return future.Resolved(draft{sequence: seq})
		}
		return future.Go(ctx, func(ctx context.Context) (draft, error) {
			params, err := b.horizon.NetworkParameters(ctx)
			if err != nil {
				return draft{}, err
			}
			return draft{sequence: seq, baseFee: params.BaseFee}, nil
		})
	})

	assembled := future.Map(fees, func(d draft) (*Tx, error) {
		tx := NewTx()
		ms := []TxMutator{
			&SourceAccount{AccountID: source},
			&Sequence{Sequence: d.sequence},
			&Memo{Memo: p.Memo},
			&Fee{BaseFee: d.baseFee, Override: p.Fee},
		}
		if p.TimeBounds != nil {
			ms = append(ms, &Timebounds{MinTime: p.TimeBounds.MinTime, MaxTime: p.TimeBounds.MaxTime})
		}
		ms = append(ms, p.Operations...)
		if err := tx.Add(ms...); err != nil {
			return nil, err
		}
		hash, err := tx.GetTxHash(b.networkID)
		if err != nil {
			return nil, err
		}
		log.Debugw("transaction assembled", "hash", hash, "source", source, "sequence", d.sequence, "fee", tx.Tx.Fee, "ops", len(tx.Tx.Operations))
		return tx, nil
	})

	signed := future.Map(assembled, func(tx *Tx) (*xdr.TransactionEnvelope, error) {
		env, err := tx.Sign(p.Source, b.networkID)
		if err != nil {
			return nil, err
		}
		return &env, nil
	})
	// signer and context failures surface as unknown errors
	return future.MapError(signed, types.Unknown)
}

// destinationReady checks that the destination can receive the
// asset. Native payments skip the check.
func (b *Builder) destinationReady(ctx context.Context, destination string, asset xdr.Asset) *future.Future[struct{}] {
	if asset.IsNative() {
		return future.Resolved(struct{}{})
	}
	check := future.Go(ctx, func(ctx context.Context) (struct{}, error) {
		acc, err := b.horizon.AccountDetails(ctx, destination)
		if err != nil {
			return struct{}{}, err
		}
		if _, ok := acc.BalanceOf(asset); !ok {
			return struct{}{}, types.ErrMissingBalance
		}
		return struct{}{}, nil
	})
	return future.MapError(check, func(err error) error {
		if errors.Is(err, types.ErrMissingAccount) || errors.Is(err, types.ErrMissingBalance) {
			return &types.DestinationNotReadyError{Destination: destination, Asset: asset, Cause: err}
		}
		return err
	})
}

// Payment builds a signed single payment transaction.
func (b *Builder) Payment(ctx context.Context, p PaymentParams) *future.Future[*xdr.TransactionEnvelope] {
	ready := b.destinationReady(ctx, p.Destination, p.Asset)
	return future.Then(ready, func(struct{}) *future.Future[*xdr.TransactionEnvelope] {
		return b.Transaction(ctx, TxParams{
			Source: p.Source,
			Operations: []TxMutator{&Payment{
				Destination: p.Destination,
				Asset:       p.Asset,
				Amount:      p.Amount,
			}},
			Memo: p.Memo,
			Fee:  p.Fee,
		})
	})
}

// Trust builds a signed change-trust transaction, the setup a
// destination needs before it can receive a non-native asset.
func (b *Builder) Trust(ctx context.Context, p TrustParams) *future.Future[*xdr.TransactionEnvelope] {
	limit := p.Limit
	if limit == 0 {
		limit = MaxTrustLimit
	}
	return b.Transaction(ctx, TxParams{
		Source:     p.Source,
		Operations: []TxMutator{&ChangeTrust{Asset: p.Asset, Limit: limit}},
		Memo:       p.Memo,
		Fee:        p.Fee,
	})
}

// Submit hands the envelope to the gateway.
func (b *Builder) Submit(ctx context.Context, env *future.Future[*xdr.TransactionEnvelope]) *future.Future[*ctypes.SubmitResult] {
	return future.Then(env, func(env *xdr.TransactionEnvelope) *future.Future[*ctypes.SubmitResult] {
		return future.Go(ctx, func(ctx context.Context) (*ctypes.SubmitResult, error) {
			return b.horizon.Submit(ctx, env)
		})
	})
}

// SendPayment builds, signs and submits a payment.
func (b *Builder) SendPayment(ctx context.Context, p PaymentParams) *future.Future[*ctypes.SubmitResult] {
	return b.Submit(ctx, b.Payment(ctx, p))
}
