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

package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/emicklei/go-restful"

	ctypes "github.com/ultiledger/go-kin/client/types"
	"github.com/ultiledger/go-kin/log"
	"github.com/ultiledger/go-kin/types"
	"github.com/ultiledger/go-kin/xdr"
)

// Gateway is the part of the horizon client the hub serves.
type Gateway interface {
	AccountDetails(ctx context.Context, id string) (*ctypes.AccountDetails, error)
	Balance(ctx context.Context, id string, asset xdr.Asset) (types.Kin, error)
	SubmitXDR(ctx context.Context, envelopeXDR string) (*ctypes.SubmitResult, error)
}

// Hub relays account queries and signed transactions to the horizon
// gateway and renders its errors as JSON.
type Hub struct {
	gateway Gateway
}

func NewHub(g Gateway) *Hub {
	return &Hub{gateway: g}
}

// BalanceResponse is the body of a balance query.
type BalanceResponse struct {
	Account string    `json:"account"`
	Asset   string    `json:"asset"`
	Balance types.Kin `json:"balance"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Kind    string   `json:"kind"`
	Message string   `json:"message"`
	TxCode  string   `json:"tx_code,omitempty"`
	OpCodes []string `json:"op_codes,omitempty"`
}

// GetAccount returns the details of the account in the path.
func (h *Hub) GetAccount(request *restful.Request, response *restful.Response) {
	id := request.PathParameter("id")
	acc, err := h.gateway.AccountDetails(request.Request.Context(), id)
	if err != nil {
		h.writeError(response, err)
		return
	}
	response.WriteEntity(acc)
}

// GetBalance returns the balance of the account in one asset, native
// unless the asset query parameter names CODE:ISSUER.
func (h *Hub) GetBalance(request *restful.Request, response *restful.Response) {
	id := request.PathParameter("id")
	asset, err := xdr.ParseAsset(request.QueryParameter("asset"))
	if err != nil {
		h.writeError(response, fmt.Errorf("%w: %v", types.ErrDataEncodingFailed, err))
		return
	}
	bal, err := h.gateway.Balance(request.Request.Context(), id, asset)
	if err != nil {
		h.writeError(response, err)
		return
	}
	response.WriteEntity(&BalanceResponse{Account: id, Asset: asset.String(), Balance: bal})
}

// SubmitTx submits the base64 envelope in the tx form field.
func (h *Hub) SubmitTx(request *restful.Request, response *restful.Response) {
	env, err := request.BodyParameter("tx")
	if err != nil || env == "" {
		h.writeError(response, types.ErrDataEncodingFailed)
		return
	}
	res, err := h.gateway.SubmitXDR(request.Request.Context(), env)
	if err != nil {
		h.writeError(response, err)
		return
	}
	log.Infow("transaction submitted", "hash", res.Hash, "ledger", res.Ledger)
	response.WriteEntity(res)
}

func (h *Hub) writeError(response *restful.Response, err error) {
	err = types.Unknown(err)
	kind := types.Classify(err)
	body := &ErrorResponse{Kind: kind, Message: err.Error()}

	var txErr *types.TransactionError
	if errors.As(err, &txErr) {
		body.TxCode = txErr.Code().String()
		body.OpCodes = txErr.OperationCodes()
	}

	status := statusOf(kind)
	if status >= http.StatusInternalServerError {
		log.Warnw("gateway request failed", "kind", kind, "err", err)
	}
	response.WriteHeaderAndEntity(status, body)
}

func statusOf(kind string) int {
	switch kind {
	case "missing_account", "missing_balance":
		return http.StatusNotFound
	case "invalid_account", "data_encoding_failed", "malformed_data", "url_encoding_failed":
		return http.StatusBadRequest
	case "transaction_failed", "destination_not_ready":
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}
