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
	"fmt"

	"github.com/ultiledger/go-kin/account"
	"github.com/ultiledger/go-kin/client/build"
	"github.com/ultiledger/go-kin/types"
	"github.com/ultiledger/go-kin/xdr"
)

func init() {
	Register(&CreateTestAccount{})
}

// starting balance of every created account
var testBalance = types.NewKin(100)

// createAccount funds a random account from the funder.
func createAccount(ctx context.Context, env *Env) (account.Account, error) {
	acc, _, err := account.Random()
	if err != nil {
		return nil, fmt.Errorf("get account keypair failed: %v", err)
	}
	amount, err := testBalance.Quarks()
	if err != nil {
		return nil, err
	}
	envelope := env.Builder.Transaction(ctx, build.TxParams{
		Source:     env.Funder,
		Operations: []build.TxMutator{&build.CreateAccount{Destination: acc.Address(), Amount: amount}},
		Memo:       xdr.MemoNone(),
	})
	if _, err := env.Builder.Submit(ctx, envelope).Await(ctx); err != nil {
		return nil, fmt.Errorf("create account %s failed: %w", acc.Address(), err)
	}
	return acc, nil
}

// CreateTestAccount tests the correctness of creating a test account.
type CreateTestAccount struct{}

func (cta *CreateTestAccount) Desc() string {
	return "testcase: create account"
}

func (cta *CreateTestAccount) Run(ctx context.Context, env *Env) error {
	acc, err := createAccount(ctx, env)
	if err != nil {
		return err
	}
	details, err := env.Client.AccountDetails(ctx, acc.Address())
	if err != nil {
		return fmt.Errorf("get account failed: %w", err)
	}
	if details.AccountID != acc.Address() {
		return fmt.Errorf("test account with mismatch account id %s", details.AccountID)
	}
	bal, ok := details.BalanceOf(xdr.NativeAsset())
	if !ok || !bal.Balance.Equal(testBalance.Decimal) {
		return fmt.Errorf("test account with unexpected balance: %s", bal.Balance)
	}
	return nil
}
