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
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ultiledger/go-kin/client"
	"github.com/ultiledger/go-kin/log"
	"github.com/ultiledger/go-kin/node"
)

var (
	cfgFile string
	debug   bool
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "kincli",
	Short: "Command line client of a Kin network",
	Long: `kincli talks to a horizon gateway of a Kin network. It generates
keypairs, queries balances, sends payments and trustline changes and
follows the payment and transaction feeds.`,
	SilenceUsage: true,
}

// Execute runs the command selected by the arguments.
func Execute() {
	defer log.Sync()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file")
	pf.BoolVar(&debug, "debug", false, "log requests, stream reconnects and built transactions")
	pf.String("horizon_url", "", "horizon gateway url")
	pf.String("network_passphrase", node.TestnetPassphrase, "network passphrase")
	pf.String("log_level", "info", "log level")
	pf.String("seed", "", "signing seed")
	for _, name := range []string{"horizon_url", "network_passphrase", "log_level", "seed"} {
		v.BindPFlag(name, pf.Lookup(name))
	}
}

// loadConfig reads the config of the commands talking to the gateway.
func loadConfig() *node.Config {
	c, err := node.ReadConfig(v, cfgFile)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	if err := log.SetLevel(c.LogLevel); err != nil {
		log.Fatalf("set log level failed: %v", err)
	}
	if debug {
		log.OpenDebug()
	}
	return c
}

func newClient(c *node.Config) *client.Client {
	n, err := node.FromConfig(c)
	if err != nil {
		log.Fatalf("create node failed: %v", err)
	}
	return client.New(n, client.WithUserAgent("kincli"))
}
