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

// Package test holds end-to-end cases run against a live network by
// kintest.
package test

import (
	"context"

	"github.com/ultiledger/go-kin/account"
	"github.com/ultiledger/go-kin/client"
	"github.com/ultiledger/go-kin/client/build"
)

var cases []TestCase

// Register the input test case in the global cases slice.
func Register(tc TestCase) {
	cases = append(cases, tc)
}

// GetAll returns the registered cases in registration order.
func GetAll() []TestCase {
	return cases
}

// Env is what a case runs against. Funder pays for the accounts the
// cases create.
type Env struct {
	Client  *client.Client
	Builder *build.Builder
	Funder  account.Account
}

func NewEnv(c *client.Client, funder account.Account) *Env {
	return &Env{
		Client:  c,
		Builder: build.NewBuilder(c, c.Node().NetworkID),
		Funder:  funder,
	}
}

// TestCase abstracts a generic test case to test the Kin network.
// Each concrete test case should have the Run method implemented.
type TestCase interface {
	Desc() string
	Run(ctx context.Context, env *Env) error
}
