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
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ultiledger/go-kin/db"
	_ "github.com/ultiledger/go-kin/db/boltdb"
	"github.com/ultiledger/go-kin/log"
	"github.com/ultiledger/go-kin/node"
	"github.com/ultiledger/go-kin/watch"
)

var (
	watchAccount string
	watchCursor  string
	watchReset   bool
)

var watchCmd = &cobra.Command{
	Use:       "watch <payments|transactions>",
	Short:     "Follow the payment or transaction feed",
	Long:      `Follow a feed until interrupted. With a database configured the last seen event is saved and the next run resumes after it.`,
	Args:      cobra.ExactValidArgs(1),
	ValidArgs: []string{"payments", "transactions"},
	Run: func(cmd *cobra.Command, args []string) {
		c := loadConfig()
		cli := newClient(c)

		opts := []watch.Option{}
		if watchAccount != "" {
			opts = append(opts, watch.ForAccount(watchAccount))
		}
		if watchCursor != "" {
			opts = append(opts, watch.Cursor(watchCursor))
		}
		store := cursorStore(c)
		if store != nil {
			key := args[0] + ":" + watchAccount
			if watchReset {
				if err := store.Reset(key); err != nil {
					log.Fatalf("reset saved cursor failed: %v", err)
				}
			}
			opts = append(opts, watch.WithCursorStore(store, key))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		switch args[0] {
		case "payments":
			w := watch.Payments(cli, opts...)
			defer w.Close()
			for e := range w.Start(ctx) {
				fmt.Printf("%s %s %s -> %s %s %s\n", e.PagingToken, e.Type, e.Sender(), e.Recipient(), e.Value(), assetName(e.AssetType, e.AssetCode))
			}
			exit(w.Err())
		case "transactions":
			w := watch.Transactions(cli, opts...)
			defer w.Close()
			for e := range w.Start(ctx) {
				fmt.Printf("%s %s %s seq=%d fee=%d ops=%d\n", e.PagingToken, e.Hash, e.SourceAccount, e.SourceSequence, e.FeePaid, e.OperationCount)
			}
			exit(w.Err())
		}
	},
}

func assetName(typ, code string) string {
	if typ == "native" || typ == "" {
		return "native"
	}
	return code
}

func cursorStore(c *node.Config) *watch.CursorStore {
	// cursors are only worth saving to disk
	if c.DBBackend != "boltdb" {
		return nil
	}
	d, err := db.Open(c.DBBackend, c.DBPath)
	if err != nil {
		log.Fatalf("open cursor database failed: %v", err)
	}
	store, err := watch.NewCursorStore(d)
	if err != nil {
		log.Fatalf("open cursor store failed: %v", err)
	}
	return store
}

func exit(err error) {
	if err != nil {
		log.Fatalf("stream ended: %v", err)
	}
}

func init() {
	watchCmd.Flags().StringVar(&watchAccount, "account", "", "only the feed of this account")
	watchCmd.Flags().StringVar(&watchCursor, "cursor", "", "resume after this event, \"now\" for new events only")
	watchCmd.Flags().BoolVar(&watchReset, "reset", false, "forget the saved cursor before starting")
	watchCmd.Flags().String("db_backend", "", "cursor database backend, boltdb saves cursors across runs")
	watchCmd.Flags().String("db_path", "", "cursor database file")
	v.BindPFlag("db_backend", watchCmd.Flags().Lookup("db_backend"))
	v.BindPFlag("db_path", watchCmd.Flags().Lookup("db_path"))
	rootCmd.AddCommand(watchCmd)
}
