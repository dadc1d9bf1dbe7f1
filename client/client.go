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

// Package client talks to a horizon gateway: it issues REST requests,
// decodes the JSON resources and remaps gateway errors into the
// types error taxonomy.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	ctypes "github.com/ultiledger/go-kin/client/types"
	"github.com/ultiledger/go-kin/log"
	"github.com/ultiledger/go-kin/node"
	"github.com/ultiledger/go-kin/types"
)

const defaultUserAgent = "go-kin"

// maximum size of a response body read into memory
const maxBodySize = 8 << 20

// Client is a horizon gateway client. It is safe for concurrent use
// and keeps no state between calls.
type Client struct {
	node      *node.Node
	http      *http.Client
	userAgent string
}

type Option func(*Client)

// WithHTTPClient sets the transport. Timeouts and retries belong to it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client for the gateway of n.
func New(n *node.Node, opts ...Option) *Client {
	c := &Client{
		node:      n,
		http:      http.DefaultClient,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Node returns the gateway description the client was created with.
func (c *Client) Node() *node.Node {
	return c.node
}

// errorMapper turns a gateway error envelope into a taxonomy error.
type errorMapper func(p *ctypes.Problem) error

func unknownProblem(p *ctypes.Problem) error {
	ue := &types.UnknownError{Status: p.Status, Title: p.Title}
	if p.Detail != "" {
		ue.Err = errors.New(p.Detail)
	}
	return ue
}

// account detail lookups: a 404 means the account does not exist.
func mapAccountError(p *ctypes.Problem) error {
	if p.Status == http.StatusNotFound {
		return types.ErrMissingAccount
	}
	return unknownProblem(p)
}

// aggregated lookups reject the whole 400..404 range as a bad account.
func mapAccountLookupError(p *ctypes.Problem) error {
	if p.Status >= http.StatusBadRequest && p.Status <= http.StatusNotFound {
		return types.ErrInvalidAccount
	}
	return unknownProblem(p)
}

func mapGenericError(p *ctypes.Problem) error {
	return unknownProblem(p)
}

// request is one gateway call.
type request struct {
	method string
	path   string
	query  url.Values
	form   url.Values
	accept string
	mapErr errorMapper
}

// probeProblem reports whether body is an error envelope, tagged by a
// numeric status field.
func probeProblem(body []byte) (*ctypes.Problem, bool) {
	var tag struct {
		Status json.RawMessage `json:"status"`
	}
	if err := json.Unmarshal(body, &tag); err != nil || len(tag.Status) == 0 {
		return nil, false
	}
	var status json.Number
	if err := json.Unmarshal(tag.Status, &status); err != nil {
		return nil, false
	}
	if _, err := status.Int64(); err != nil {
		return nil, false
	}
	var p ctypes.Problem
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, false
	}
	return &p, true
}

func (c *Client) newRequest(ctx context.Context, r *request) (*http.Request, error) {
	endpoint, err := Endpoint(c.node.URL, r.path, r.query)
	if err != nil {
		return nil, err
	}
	var body io.Reader
	if r.form != nil {
		body = strings.NewReader(r.form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrURLEncodingFailed, err)
	}
	if r.form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	accept := r.accept
	if accept == "" {
		accept = "application/hal+json, application/json"
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)
	return req, nil
}

// issue performs r and returns the body of a successful response.
// Error envelopes are remapped with r.mapErr.
func (c *Client) issue(ctx context.Context, r *request) ([]byte, error) {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, err
	}

	log.Debugw("horizon request", "method", r.method, "url", req.URL.String())
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &types.UnknownError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &types.UnknownError{Status: resp.StatusCode, Err: err}
	}

	if p, ok := probeProblem(body); ok {
		log.Debugw("horizon error", "path", r.path, "status", p.Status, "title", p.Title)
		mapErr := r.mapErr
		if mapErr == nil {
			mapErr = mapGenericError
		}
		return nil, mapErr(p)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &types.UnknownError{Status: resp.StatusCode, Title: http.StatusText(resp.StatusCode)}
	}
	return body, nil
}

// fetch issues r and decodes the success payload into v.
func (c *Client) fetch(ctx context.Context, r *request, v interface{}) error {
	body, err := c.issue(ctx, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		log.Warnw("undecodable horizon response", "path", r.path, "err", err)
		return fmt.Errorf("%w: decode %s: %v", types.ErrInternalInconsistency, r.path, err)
	}
	return nil
}
