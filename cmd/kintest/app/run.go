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
	"time"

	"github.com/spf13/cobra"

	"github.com/ultiledger/go-kin/account"
	"github.com/ultiledger/go-kin/client"
	"github.com/ultiledger/go-kin/log"
	"github.com/ultiledger/go-kin/node"
	"github.com/ultiledger/go-kin/test"
	"github.com/ultiledger/go-kin/types"
)

var caseTimeout time.Duration

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the series of test cases.",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := node.ReadConfig(v, cfgFile)
		if err != nil {
			log.Fatalf("load config failed: %v", err)
		}
		if c.Seed == "" {
			log.Fatal("seed of a funded account is required")
		}
		n, err := node.FromConfig(c)
		if err != nil {
			log.Fatalf("create node failed: %v", err)
		}
		funder, err := account.FromSeed(c.Seed)
		if err != nil {
			log.Fatalf("load funder seed failed: %v", err)
		}
		env := test.NewEnv(client.New(n, client.WithUserAgent("kintest")), funder)

		cases := test.GetAll()
		failed := 0
		for _, tc := range cases {
			log.Infow("run the test case", "desc", tc.Desc())
			ctx, cancel := context.WithTimeout(context.Background(), caseTimeout)
			err := tc.Run(ctx, env)
			cancel()
			if err != nil {
				failed++
				log.Errorw("testcase failed", "desc", tc.Desc(), "kind", types.Classify(err), "err", err)
			}
		}
		log.Infof("finished all the %d testcases, %d failed", len(cases), failed)
	},
}

func init() {
	runCmd.Flags().StringP("horizon_url", "", "", "horizon gateway url")
	runCmd.Flags().StringP("network_passphrase", "", node.TestnetPassphrase, "network passphrase")
	runCmd.Flags().StringP("seed", "", "", "seed of the funding account")
	for _, name := range []string{"horizon_url", "network_passphrase", "seed"} {
		v.BindPFlag(name, runCmd.Flags().Lookup(name))
	}
	runCmd.Flags().DurationVar(&caseTimeout, "timeout", time.Minute, "timeout of each case")
	rootCmd.AddCommand(runCmd)
}
