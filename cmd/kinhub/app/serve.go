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
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/ultiledger/go-kin/client"
	"github.com/ultiledger/go-kin/cmd/kinhub/service"
	"github.com/ultiledger/go-kin/log"
	"github.com/ultiledger/go-kin/node"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a http server",
	Long:  `Serve a http server relaying account queries and signed transactions to the horizon gateway`,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := node.ReadConfig(v, cfgFile)
		if err != nil {
			log.Fatalf("load config failed: %v", err)
		}
		if err := log.SetLevel(c.LogLevel); err != nil {
			log.Fatalf("set log level failed: %v", err)
		}
		n, err := node.FromConfig(c)
		if err != nil {
			log.Fatalf("create node failed: %v", err)
		}

		cli := client.New(n, client.WithUserAgent("kinhub"))
		server := &http.Server{
			Addr:              v.GetString("addr"),
			Handler:           service.NewHandler(cli),
			ReadHeaderTimeout: 10 * time.Second,
		}
		log.Infow("serving", "addr", server.Addr, "horizon", n.URL)
		log.Fatal(server.ListenAndServe())
	},
}

func init() {
	serveCmd.Flags().StringP("addr", "", ":8080", "network address")
	serveCmd.Flags().StringP("horizon_url", "", "", "horizon gateway url")
	serveCmd.Flags().StringP("network_passphrase", "", node.TestnetPassphrase, "network passphrase")
	serveCmd.Flags().StringP("log_level", "", "info", "log level")
	for _, name := range []string{"addr", "horizon_url", "network_passphrase", "log_level"} {
		v.BindPFlag(name, serveCmd.Flags().Lookup(name))
	}

	rootCmd.AddCommand(serveCmd)
}
