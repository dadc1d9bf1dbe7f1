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
	"fmt"
	"net/url"
	"strings"

	"github.com/ultiledger/go-kin/types"
)

// Endpoint joins path onto the base url and appends the non-empty
// query parameters in sorted order.
func Endpoint(base, path string, query url.Values) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%w: parse base %q: %v", types.ErrURLEncodingFailed, base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: base %q is not absolute", types.ErrURLEncodingFailed, base)
	}
	if strings.ContainsAny(path, "?#") {
		return "", fmt.Errorf("%w: path %q carries a query or fragment", types.ErrURLEncodingFailed, path)
	}

	if path = strings.TrimLeft(path, "/"); path != "" {
		u.Path = strings.TrimRight(u.Path, "/") + "/" + path
		u.RawPath = ""
	}

	q := u.Query()
	for k, vs := range query {
		for _, v := range vs {
			if v != "" {
				q.Add(k, v)
			}
		}
	}
	u.RawQuery = q.Encode()
	u.Fragment = ""
	return u.String(), nil
}

func accountPath(id string, sub ...string) string {
	return strings.Join(append([]string{"accounts", url.PathEscape(id)}, sub...), "/")
}
