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
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/ultiledger/go-kin/log"
	"github.com/ultiledger/go-kin/types"
)

// Stream opens a server-sent event stream on the feed at path,
// positioned after cursor. The caller owns the returned body.
func (c *Client) Stream(ctx context.Context, path, cursor string) (io.ReadCloser, error) {
	r := &request{
		method: http.MethodGet,
		path:   path,
		query:  url.Values{"cursor": {cursor}},
		accept: "text/event-stream",
	}
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-cache")

	log.Debugw("horizon stream", "url", req.URL.String())
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &types.UnknownError{Err: err}
	}
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return resp.Body, nil
	}

	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if p, ok := probeProblem(body); ok {
		return nil, mapGenericError(p)
	}
	return nil, &types.UnknownError{Status: resp.StatusCode, Title: http.StatusText(resp.StatusCode)}
}
