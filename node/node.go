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

// Package node describes the gateway a client talks to and the
// network its transactions are signed for.
package node

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ultiledger/go-kin/crypto"
)

// Well known network passphrases.
const (
	MainnetPassphrase = "Kin Mainnet ; December 2018"
	TestnetPassphrase = "Kin Testnet ; December 2018"
)

// Node is an immutable gateway description. The network id fixes
// the signing domain of every transaction built against it.
type Node struct {
	URL        string
	Passphrase string
	NetworkID  [32]byte
}

// New validates the gateway url and derives the network id from the
// passphrase.
func New(horizonURL, passphrase string) (*Node, error) {
	if passphrase == "" {
		return nil, errors.New("network passphrase is empty")
	}
	u, err := url.Parse(horizonURL)
	if err != nil {
		return nil, fmt.Errorf("parse horizon url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("horizon url %q: unsupported scheme %q", horizonURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("horizon url %q: missing host", horizonURL)
	}
	return &Node{
		URL:        strings.TrimRight(horizonURL, "/"),
		Passphrase: passphrase,
		NetworkID:  crypto.NetworkID(passphrase),
	}, nil
}

// FromConfig builds the node described by a validated config.
func FromConfig(c *Config) (*Node, error) {
	return New(c.HorizonURL, c.NetworkPassphrase)
}

func (n *Node) String() string {
	return fmt.Sprintf("%s (%s)", n.URL, n.Passphrase)
}
