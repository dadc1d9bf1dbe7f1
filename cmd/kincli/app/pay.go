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

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ultiledger/go-kin/account"
	"github.com/ultiledger/go-kin/client/build"
	"github.com/ultiledger/go-kin/log"
	"github.com/ultiledger/go-kin/node"
	"github.com/ultiledger/go-kin/types"
	"github.com/ultiledger/go-kin/xdr"
)

var (
	payTo     string
	payAmount string
	payAsset  string
	payMemo   string
	payFee    int64
	trustLine string
	trustMax  string
	timeout   time.Duration
)

func signer(c *node.Config) account.Account {
	if c.Seed == "" {
		log.Fatal("seed is required to sign")
	}
	acc, err := account.FromSeed(c.Seed)
	if err != nil {
		log.Fatalf("load seed failed: %v", err)
	}
	return acc
}

func memo(text string) xdr.Memo {
	if text == "" {
		return xdr.MemoNone()
	}
	m, err := xdr.MemoText(text)
	if err != nil {
		log.Fatalf("invalid memo: %v", err)
	}
	return m
}

var payCmd = &cobra.Command{
	Use:   "pay",
	Short: "Send a payment",
	Long: `Send a payment from the account of the seed. Payments of a non-native
asset are only sent when the destination holds a trustline for it.`,
	Run: func(cmd *cobra.Command, args []string) {
		c := loadConfig()
		cli := newClient(c)

		amount, err := types.ParseKin(payAmount)
		if err != nil {
			log.Fatalf("parse amount failed: %v", err)
		}
		quarks, err := amount.Quarks()
		if err != nil {
			log.Fatalf("parse amount failed: %v", err)
		}
		asset, err := xdr.ParseAsset(payAsset)
		if err != nil {
			log.Fatalf("parse asset failed: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		b := build.NewBuilder(cli, cli.Node().NetworkID)
		res, err := b.SendPayment(ctx, build.PaymentParams{
			Source:      signer(c),
			Destination: payTo,
			Asset:       asset,
			Amount:      quarks,
			Memo:        memo(payMemo),
			Fee:         types.Quark(payFee),
		}).Await(ctx)
		if err != nil {
			log.Fatalf("payment failed (%s): %v", types.Classify(err), err)
		}
		fmt.Printf("Hash: %s, Ledger: %d\n", res.Hash, res.Ledger)
	},
}

var trustCmd = &cobra.Command{
	Use:   "trust",
	Short: "Trust a non-native asset",
	Run: func(cmd *cobra.Command, args []string) {
		c := loadConfig()
		cli := newClient(c)

		asset, err := xdr.ParseAsset(trustLine)
		if err != nil || asset.IsNative() {
			log.Fatalf("asset must be CODE:ISSUER: %v", err)
		}
		var limit types.Quark
		if trustMax != "" {
			k, err := types.ParseKin(trustMax)
			if err != nil {
				log.Fatalf("parse limit failed: %v", err)
			}
			if limit, err = k.Quarks(); err != nil {
				log.Fatalf("parse limit failed: %v", err)
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		b := build.NewBuilder(cli, cli.Node().NetworkID)
		res, err := b.Submit(ctx, b.Trust(ctx, build.TrustParams{
			Source: signer(c),
			Asset:  asset,
			Limit:  limit,
		})).Await(ctx)
		if err != nil {
			log.Fatalf("change trust failed (%s): %v", types.Classify(err), err)
		}
		fmt.Printf("Hash: %s, Ledger: %d\n", res.Hash, res.Ledger)
	},
}

func init() {
	payCmd.Flags().StringVar(&payTo, "to", "", "destination address")
	payCmd.Flags().StringVar(&payAmount, "amount", "", "amount in Kin")
	payCmd.Flags().StringVar(&payAsset, "asset", "native", "asset as CODE:ISSUER")
	payCmd.Flags().StringVar(&payMemo, "memo", "", "text memo")
	payCmd.Flags().Int64Var(&payFee, "fee", 0, "total fee in quarks, zero for the network base fee")
	payCmd.MarkFlagRequired("to")
	payCmd.MarkFlagRequired("amount")

	trustCmd.Flags().StringVar(&trustLine, "asset", "", "asset as CODE:ISSUER")
	trustCmd.Flags().StringVar(&trustMax, "limit", "", "trust limit in Kin, empty for the maximum")
	trustCmd.MarkFlagRequired("asset")

	for _, cmd := range []*cobra.Command{payCmd, trustCmd} {
		cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "timeout of the build and submit")
		rootCmd.AddCommand(cmd)
	}
}
