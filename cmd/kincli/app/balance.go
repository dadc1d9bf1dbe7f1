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

	"github.com/spf13/cobra"

	"github.com/ultiledger/go-kin/log"
	"github.com/ultiledger/go-kin/types"
	"github.com/ultiledger/go-kin/xdr"
)

var (
	balanceAsset string
	aggregate    bool
)

var balanceCmd = &cobra.Command{
	Use:   "balance <address>",
	Short: "Show the balance of an account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cli := newClient(loadConfig())
		ctx := context.Background()

		if aggregate {
			agg, err := cli.AggregateBalance(ctx, args[0])
			if err != nil {
				log.Fatalf("query aggregate balance failed (%s): %v", types.Classify(err), err)
			}
			for _, b := range agg.Balances {
				fmt.Printf("%s %s\n", b.AccountID, b.Balance)
			}
			fmt.Printf("Total: %s\n", agg.Total())
			return
		}

		asset, err := xdr.ParseAsset(balanceAsset)
		if err != nil {
			log.Fatalf("parse asset failed: %v", err)
		}
		bal, err := cli.Balance(ctx, args[0], asset)
		if err != nil {
			log.Fatalf("query balance failed (%s): %v", types.Classify(err), err)
		}
		fmt.Printf("%s %s\n", bal, asset)
	},
}

func init() {
	balanceCmd.Flags().StringVar(&balanceAsset, "asset", "native", "asset as CODE:ISSUER")
	balanceCmd.Flags().BoolVar(&aggregate, "aggregate", false, "sum the balances of the controlled accounts")
	rootCmd.AddCommand(balanceCmd)
}
