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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ctypes "github.com/ultiledger/go-kin/client/types"
	"github.com/ultiledger/go-kin/types"
	"github.com/ultiledger/go-kin/xdr"
)

const (
	known   = "GAJCCCRIRXAYEU2ATNQAFYH4E2HKLN2LCKM2VPXCTJKIBVTRSOLEGCJZ"
	unknown = "GBC3SG6NGTSZ2OMH3FFGB7UVRQWILW367U4GSOOF4TFSZONV42UJXUH7"
)

type fakeGateway struct {
	submitted string
	submitErr error
}

func (g *fakeGateway) AccountDetails(ctx context.Context, id string) (*ctypes.AccountDetails, error) {
	if id != known {
		return nil, types.ErrMissingAccount
	}
	return &ctypes.AccountDetails{ID: id, AccountID: id, Sequence: 41}, nil
}

func (g *fakeGateway) Balance(ctx context.Context, id string, asset xdr.Asset) (types.Kin, error) {
	if id != known {
		return types.Kin{}, types.ErrMissingAccount
	}
	if !asset.IsNative() {
		return types.Kin{}, types.ErrMissingBalance
	}
	return types.MustParseKin("12.5"), nil
}

func (g *fakeGateway) SubmitXDR(ctx context.Context, env string) (*ctypes.SubmitResult, error) {
	g.submitted = env
	if g.submitErr != nil {
		return nil, g.submitErr
	}
	return &ctypes.SubmitResult{Hash: "abcd", Ledger: 7}, nil
}

func serve(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	body := make(map[string]interface{})
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func TestGetAccount(t *testing.T) {
	h := NewHandler(&fakeGateway{})

	rec, body := serve(t, h, httptest.NewRequest(http.MethodGet, "/kin/accounts/"+known, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, known, body["account_id"])
	assert.Equal(t, "41", body["sequence"])

	rec, body = serve(t, h, httptest.NewRequest(http.MethodGet, "/kin/accounts/"+unknown, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "missing_account", body["kind"])
}

func TestGetBalance(t *testing.T) {
	h := NewHandler(&fakeGateway{})

	rec, body := serve(t, h, httptest.NewRequest(http.MethodGet, "/kin/accounts/"+known+"/balance", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "native", body["asset"])
	assert.Equal(t, "12.50000", body["balance"])

	q := url.Values{"asset": {"KIN:" + unknown}}
	rec, body = serve(t, h, httptest.NewRequest(http.MethodGet, "/kin/accounts/"+known+"/balance?"+q.Encode(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "missing_balance", body["kind"])

	q = url.Values{"asset": {"KIN"}}
	rec, body = serve(t, h, httptest.NewRequest(http.MethodGet, "/kin/accounts/"+known+"/balance?"+q.Encode(), nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "data_encoding_failed", body["kind"])
}

func submitRequest(tx string) *http.Request {
	form := url.Values{"tx": {tx}}
	req := httptest.NewRequest(http.MethodPost, "/kin/tx", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", mimeForm)
	return req
}

func TestSubmitTx(t *testing.T) {
	g := &fakeGateway{}
	h := NewHandler(g)

	rec, body := serve(t, h, submitRequest("AAAA"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "AAAA", g.submitted)
	assert.Equal(t, "abcd", body["hash"])

	g.submitErr = &types.TransactionError{Hash: "abcd", Result: xdr.TransactionResult{
		Code: xdr.TransactionResultCodeTxFailed,
		Results: []xdr.OperationResult{{
			Code: xdr.OperationResultCodeOpInner,
			Tr:   &xdr.OperationResultTr{Type: xdr.OperationTypePayment, PaymentResult: xdr.PaymentResultCodeUnderfunded},
		}},
	}}
	rec, body = serve(t, h, submitRequest("AAAA"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "transaction_failed", body["kind"])
	assert.Equal(t, "tx_failed", body["tx_code"])
	assert.Equal(t, []interface{}{"op_underfunded"}, body["op_codes"])

	g.submitErr = &types.UnknownError{Status: 503, Title: "Service Unavailable"}
	rec, body = serve(t, h, submitRequest("AAAA"))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "unknown", body["kind"])

	rec, body = serve(t, h, submitRequest(""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "data_encoding_failed", body["kind"])
}
