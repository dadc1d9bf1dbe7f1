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

package xdr

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAccount(b byte) AccountID {
	var aid AccountID
	for i := range aid.Ed25519 {
		aid.Ed25519[i] = b + byte(i)
	}
	return aid
}

func testTransaction() Transaction {
	src := testAccount(1)
	issuer := testAccount(100)
	opSource := testAccount(50)
	return Transaction{
		SourceAccount: src,
		Fee:           300,
		SeqNum:        42,
		TimeBounds:    &TimeBounds{MinTime: 10, MaxTime: 1000},
		Memo:          Memo{Type: MemoTypeText, Text: "order 1234"},
		Operations: []Operation{
			NewPaymentOp(testAccount(2), NativeAsset(), 100),
			NewPaymentOp(testAccount(3), Asset{Type: AssetTypeCreditAlphanum4, Code: "KIN", Issuer: issuer}, 5),
			{SourceAccount: &opSource, Body: OperationBody{
				Type:        OperationTypeChangeTrust,
				ChangeTrust: &ChangeTrustOp{Line: Asset{Type: AssetTypeCreditAlphanum12, Code: "KINREWARDS", Issuer: issuer}, Limit: 1 << 40},
			}},
			NewCreateAccountOp(testAccount(4), 1000000),
		},
	}
}

func TestRoundTrip(t *testing.T) {
	tx := testTransaction()
	env := TransactionEnvelope{
		Tx: tx,
		Signatures: []DecoratedSignature{
			{Hint: [4]byte{1, 2, 3, 4}, Signature: bytes.Repeat([]byte{9}, 64)},
			{Hint: [4]byte{5, 6, 7, 8}, Signature: bytes.Repeat([]byte{7}, 64)},
		},
	}

	var h Hash
	h[0], h[31] = 0xaa, 0xbb

	values := []struct {
		in  Encodable
		out Decodable
	}{
		{&env, &TransactionEnvelope{}},
		{&TransactionEnvelope{Tx: Transaction{SourceAccount: testAccount(9), Fee: 100, SeqNum: 1, Memo: MemoNone(),
			Operations: []Operation{NewPaymentOp(testAccount(8), NativeAsset(), 1)}}}, &TransactionEnvelope{}},
		{&tx, &Transaction{}},
		{&Memo{Type: MemoTypeID, ID: 1<<64 - 1}, &Memo{}},
		{&Memo{Type: MemoTypeHash, Hash: h}, &Memo{}},
		{&Memo{Type: MemoTypeReturn, Hash: h}, &Memo{}},
		{&Memo{Type: MemoTypeText, Text: ""}, &Memo{}},
		{&TransactionResult{FeeCharged: 100, Code: TransactionResultCodeTxBadSeq}, &TransactionResult{}},
		{&TransactionResult{FeeCharged: 200, Code: TransactionResultCodeTxFailed, Results: []OperationResult{
			{Code: OperationResultCodeOpInner, Tr: &OperationResultTr{Type: OperationTypePayment, PaymentResult: PaymentResultCodeUnderfunded}},
			{Code: OperationResultCodeOpInner, Tr: &OperationResultTr{Type: OperationTypeCreateAccount, CreateAccountResult: CreateAccountResultCodeAlreadyExist}},
			{Code: OperationResultCodeOpInner, Tr: &OperationResultTr{Type: OperationTypeChangeTrust, ChangeTrustResult: ChangeTrustResultCodeLowReserve}},
			{Code: OperationResultCodeOpNoAccount},
		}}, &TransactionResult{}},
		{&TransactionSignaturePayload{NetworkID: h, Tx: tx}, &TransactionSignaturePayload{}},
	}

	for _, v := range values {
		b, err := Marshal(v.in)
		require.NoError(t, err)
		assert.Equal(t, 0, len(b)%4, "encoding must be 4-byte aligned")
		require.NoError(t, Unmarshal(b, v.out))
		assert.Equal(t, v.in, v.out)

		// decode(encode(x)) is stable
		again, err := Marshal(v.out.(Encodable))
		require.NoError(t, err)
		assert.Equal(t, b, again)
	}
}

func TestCanonicalLayout(t *testing.T) {
	memo, err := MemoText("hi")
	require.NoError(t, err)
	b, err := Marshal(&memo)
	require.NoError(t, err)
	assert.Equal(t, "00000001"+"00000002"+"68690000", hex.EncodeToString(b))

	id := MemoID(258)
	b, err = Marshal(&id)
	require.NoError(t, err)
	assert.Equal(t, "00000002"+"0000000000000102", hex.EncodeToString(b))

	issuer := testAccount(0)
	asset := Asset{Type: AssetTypeCreditAlphanum4, Code: "KIN", Issuer: issuer}
	b, err = Marshal(&asset)
	require.NoError(t, err)
	assert.Equal(t, "00000001"+"4b494e00"+"00000000"+hex.EncodeToString(issuer.Ed25519[:]), hex.EncodeToString(b))

	sig := DecoratedSignature{Hint: [4]byte{0xde, 0xad, 0xbe, 0xef}, Signature: []byte{1, 2, 3, 4, 5}}
	b, err = Marshal(&sig)
	require.NoError(t, err)
	assert.Equal(t, "deadbeef"+"00000005"+"0102030405000000", hex.EncodeToString(b))
}

func TestBase64(t *testing.T) {
	env := TransactionEnvelope{Tx: testTransaction()}
	s, err := MarshalBase64(&env)
	require.NoError(t, err)

	var out TransactionEnvelope
	require.NoError(t, UnmarshalBase64(s, &out))
	assert.Equal(t, env, out)

	assert.ErrorIs(t, UnmarshalBase64("!!not base64", &out), ErrMalformedData)
}

func TestMalformed(t *testing.T) {
	tx := testTransaction()
	b, err := Marshal(&tx)
	require.NoError(t, err)

	// trailing bytes
	var out Transaction
	assert.ErrorIs(t, Unmarshal(append(append([]byte{}, b...), 0, 0, 0, 0), &out), ErrMalformedData)

	// truncated input
	assert.ErrorIs(t, Unmarshal(b[:len(b)-4], &out), ErrMalformedData)
	assert.ErrorIs(t, Unmarshal(b[:3], &out), ErrMalformedData)

	// unknown memo discriminant
	var memo Memo
	assert.ErrorIs(t, Unmarshal([]byte{0, 0, 0, 9}, &memo), ErrMalformedData)

	// text memo longer than the protocol limit
	long := append([]byte{0, 0, 0, 1, 0, 0, 0, 32}, bytes.Repeat([]byte{'a'}, 32)...)
	assert.ErrorIs(t, Unmarshal(long, &memo), ErrMalformedData)

	// length prefix larger than the remaining buffer
	var sig DecoratedSignature
	assert.ErrorIs(t, Unmarshal([]byte{1, 2, 3, 4, 0, 0, 0, 60, 1, 2, 3, 4}, &sig), ErrMalformedData)

	// unknown asset type
	var asset Asset
	assert.ErrorIs(t, Unmarshal([]byte{0, 0, 0, 3}, &asset), ErrMalformedData)

	// unknown key type
	var aid AccountID
	assert.ErrorIs(t, Unmarshal(append([]byte{0, 0, 0, 1}, make([]byte, 32)...), &aid), ErrMalformedData)

	// optional flag that is neither 0 nor 1
	var op Operation
	assert.ErrorIs(t, Unmarshal([]byte{0, 0, 0, 2, 0, 0, 0, 1}, &op), ErrMalformedData)

	// unknown transaction result code
	var res TransactionResult
	assert.ErrorIs(t, Unmarshal([]byte{0, 0, 0, 0, 0, 0, 0, 0, 0xff, 0xff, 0xff, 0x80, 0, 0, 0, 0}, &res), ErrMalformedData)

	// signature count beyond the remaining bytes
	env := TransactionEnvelope{Tx: tx}
	b, err = Marshal(&env)
	require.NoError(t, err)
	b[len(b)-1] = 0x10
	var outEnv TransactionEnvelope
	assert.ErrorIs(t, Unmarshal(b, &outEnv), ErrMalformedData)
}

func TestEncodingBounds(t *testing.T) {
	_, err := MemoText("this memo is definitely longer than 28 bytes")
	assert.ErrorIs(t, err, ErrDataEncodingFailed)

	memo := Memo{Type: MemoTypeText, Text: string(bytes.Repeat([]byte{'x'}, 29))}
	_, err = Marshal(&memo)
	assert.ErrorIs(t, err, ErrDataEncodingFailed)

	tx := testTransaction()
	tx.Operations = make([]Operation, MaxOperations+1)
	for i := range tx.Operations {
		tx.Operations[i] = NewPaymentOp(testAccount(2), NativeAsset(), 1)
	}
	_, err = Marshal(&tx)
	assert.ErrorIs(t, err, ErrDataEncodingFailed)

	bad := Asset{Type: AssetTypeCreditAlphanum4, Code: "TOOLONG", Issuer: testAccount(1)}
	_, err = Marshal(&bad)
	assert.ErrorIs(t, err, ErrDataEncodingFailed)

	sig := DecoratedSignature{Signature: make([]byte, 65)}
	_, err = Marshal(&sig)
	assert.ErrorIs(t, err, ErrDataEncodingFailed)
}

func TestResultCodes(t *testing.T) {
	assert.Equal(t, "tx_bad_seq", TransactionResultCodeTxBadSeq.String())
	assert.Equal(t, "tx_insufficient_balance", TransactionResultCodeTxInsufficientBalance.String())

	res := TransactionResult{Code: TransactionResultCodeTxFailed, Results: []OperationResult{
		{Code: OperationResultCodeOpInner, Tr: &OperationResultTr{Type: OperationTypePayment, PaymentResult: PaymentResultCodeNoDestination}},
		{Code: OperationResultCodeOpInner, Tr: &OperationResultTr{Type: OperationTypePayment, PaymentResult: PaymentResultCodeSuccess}},
		{Code: OperationResultCodeOpBadAuth},
	}}
	assert.Equal(t, []string{"op_no_destination", "op_success", "op_bad_auth"}, res.OperationCodes())
	assert.False(t, res.Results[0].Success())
	assert.True(t, res.Results[1].Success())
}

func TestParseAsset(t *testing.T) {
	a, err := ParseAsset("native")
	require.NoError(t, err)
	assert.True(t, a.IsNative())

	issuer := testAccount(3).Address()
	a, err = ParseAsset("KIN:" + issuer)
	require.NoError(t, err)
	assert.Equal(t, AssetTypeCreditAlphanum4, a.Type)
	assert.Equal(t, "KIN:"+issuer, a.String())

	a, err = ParseAsset("KINREWARDS:" + issuer)
	require.NoError(t, err)
	assert.Equal(t, AssetTypeCreditAlphanum12, a.Type)

	_, err = ParseAsset("KIN")
	assert.ErrorIs(t, err, ErrDataEncodingFailed)
	_, err = ParseAsset("KIN:GBAD")
	assert.Error(t, err)
}
