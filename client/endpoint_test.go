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

package client

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ultiledger/go-kin/types"
)

func TestEndpoint(t *testing.T) {
	cases := []struct {
		base, path string
		query      url.Values
		want       string
	}{
		{"https://horizon.kin.org", "accounts/GABC", nil, "https://horizon.kin.org/accounts/GABC"},
		{"https://horizon.kin.org/", "/ledgers", url.Values{"order": {"desc"}, "limit": {"1"}}, "https://horizon.kin.org/ledgers?limit=1&order=desc"},
		{"https://gw.example.com/horizon/", "transactions", url.Values{"cursor": {""}, "limit": {"10"}}, "https://gw.example.com/horizon/transactions?limit=10"},
		{"http://localhost:8000", "", url.Values{"cursor": {"now"}}, "http://localhost:8000?cursor=now"},
		{"http://localhost:8000/?key=1", "payments", nil, "http://localhost:8000/payments?key=1"},
	}
	for _, c := range cases {
		got, err := Endpoint(c.base, c.path, c.query)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}

	for _, bad := range []struct{ base, path string }{
		{"://missing-scheme", "accounts"},
		{"horizon.kin.org", "accounts"},
		{"https://horizon.kin.org", "accounts?cursor=1"},
		{"https://horizon.kin.org", "accounts#frag"},
	} {
		_, err := Endpoint(bad.base, bad.path, nil)
		assert.ErrorIs(t, err, types.ErrURLEncodingFailed, "base %q path %q", bad.base, bad.path)
	}
}
