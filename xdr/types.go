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
	"fmt"
	"strings"

	"github.com/ultiledger/go-kin/crypto"
)

// Hash is a SHA-256 digest.
type Hash [32]byte

func (h Hash) Hex() string {
	return hex.EncodeToString(h[:])
}

func (h *Hash) EncodeTo(e *Encoder) error {
	return e.Fixed(h[:])
}

func (h *Hash) DecodeFrom(d *Decoder) error {
	return d.Fixed(h[:])
}

type PublicKeyType int32

const (
	PublicKeyTypeEd25519 PublicKeyType = 0
)

// AccountID is an ed25519 public key, the only key type the
// network accepts for accounts.
type AccountID struct {
	Ed25519 [32]byte
}

// AccountIDFromAddress decodes a strkey account address.
func AccountIDFromAddress(address string) (AccountID, error) {
	pk, err := crypto.DecodeAccountID(address)
	if err != nil {
		return AccountID{}, fmt.Errorf("decode account %q: %w", address, err)
	}
	return AccountID{Ed25519: pk}, nil
}

// MustAccountID is AccountIDFromAddress for addresses known to be valid.
func MustAccountID(address string) AccountID {
	aid, err := AccountIDFromAddress(address)
	if err != nil {
		panic(err)
	}
	return aid
}

// Address returns the strkey representation.
func (a AccountID) Address() string {
	s, err := crypto.EncodeAccountID(a.Ed25519)
	if err != nil {
		return ""
	}
	return s
}

// Hint returns the signature hint of the account key.
func (a AccountID) Hint() [4]byte {
	return crypto.Hint(a.Ed25519)
}

func (a AccountID) String() string {
	return a.Address()
}

func (a *AccountID) EncodeTo(e *Encoder) error {
	if err := e.Int32(int32(PublicKeyTypeEd25519)); err != nil {
		return err
	}
	return e.Fixed(a.Ed25519[:])
}

func (a *AccountID) DecodeFrom(d *Decoder) error {
	t, err := d.Int32()
	if err != nil {
		return err
	}
	if PublicKeyType(t) != PublicKeyTypeEd25519 {
		return malformed("unknown public key type %d", t)
	}
	return d.Fixed(a.Ed25519[:])
}

type AssetType int32

const (
	AssetTypeNative           AssetType = 0
	AssetTypeCreditAlphanum4  AssetType = 1
	AssetTypeCreditAlphanum12 AssetType = 2
)

// Asset is either the native currency or an issuer-backed credit.
type Asset struct {
	Type   AssetType
	Code   string
	Issuer AccountID
}

// NativeAsset returns the ledger's built-in currency.
func NativeAsset() Asset {
	return Asset{Type: AssetTypeNative}
}

// NewCreditAsset builds a non-native asset, choosing the alphanum4 or
// alphanum12 form by the length of code.
func NewCreditAsset(code, issuer string) (Asset, error) {
	if err := validateAssetCode(code); err != nil {
		return Asset{}, err
	}
	iss, err := AccountIDFromAddress(issuer)
	if err != nil {
		return Asset{}, err
	}
	t := AssetTypeCreditAlphanum4
	if len(code) > 4 {
		t = AssetTypeCreditAlphanum12
	}
	return Asset{Type: t, Code: code, Issuer: iss}, nil
}

func validateAssetCode(code string) error {
	if len(code) == 0 || len(code) > 12 {
		return fmt.Errorf("%w: asset code %q must be 1-12 characters", ErrDataEncodingFailed, code)
	}
	for _, c := range code {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		default:
			return fmt.Errorf("%w: asset code %q is not alphanumeric", ErrDataEncodingFailed, code)
		}
	}
	return nil
}

// ParseAsset parses the String form of an asset: "native" or
// "CODE:ISSUER".
func ParseAsset(s string) (Asset, error) {
	if s == "" || s == "native" {
		return NativeAsset(), nil
	}
	code, issuer, ok := strings.Cut(s, ":")
	if !ok {
		return Asset{}, fmt.Errorf("%w: asset %q is not CODE:ISSUER", ErrDataEncodingFailed, s)
	}
	return NewCreditAsset(code, issuer)
}

// IsNative reports whether a is the native asset.
func (a Asset) IsNative() bool {
	return a.Type == AssetTypeNative
}

// Equals compares two assets by type, code and issuer.
func (a Asset) Equals(b Asset) bool {
	if a.IsNative() || b.IsNative() {
		return a.IsNative() && b.IsNative()
	}
	return a.Code == b.Code && a.Issuer == b.Issuer
}

func (a Asset) String() string {
	if a.IsNative() {
		return "native"
	}
	return a.Code + ":" + a.Issuer.Address()
}

func (a *Asset) codeSize() (int, error) {
	switch a.Type {
	case AssetTypeCreditAlphanum4:
		if len(a.Code) > 4 {
			return 0, fmt.Errorf("%w: asset code %q too long for alphanum4", ErrDataEncodingFailed, a.Code)
		}
		return 4, nil
	case AssetTypeCreditAlphanum12:
		if len(a.Code) < 5 {
			return 0, fmt.Errorf("%w: asset code %q too short for alphanum12", ErrDataEncodingFailed, a.Code)
		}
		return 12, nil
	}
	return 0, nil
}

func (a *Asset) EncodeTo(e *Encoder) error {
	switch a.Type {
	case AssetTypeNative:
		return e.Int32(int32(a.Type))
	case AssetTypeCreditAlphanum4, AssetTypeCreditAlphanum12:
		if err := validateAssetCode(a.Code); err != nil {
			return err
		}
		size, err := a.codeSize()
		if err != nil {
			return err
		}
		if err := e.Int32(int32(a.Type)); err != nil {
			return err
		}
		code := make([]byte, size)
		copy(code, a.Code)
		if err := e.Fixed(code); err != nil {
			return err
		}
		return a.Issuer.EncodeTo(e)
	}
	return fmt.Errorf("%w: unknown asset type %d", ErrDataEncodingFailed, a.Type)
}

func (a *Asset) DecodeFrom(d *Decoder) error {
	t, err := d.Int32()
	if err != nil {
		return err
	}
	*a = Asset{Type: AssetType(t)}
	var code []byte
	switch a.Type {
	case AssetTypeNative:
		return nil
	case AssetTypeCreditAlphanum4:
		code = make([]byte, 4)
	case AssetTypeCreditAlphanum12:
		code = make([]byte, 12)
	default:
		return malformed("unknown asset type %d", t)
	}
	if err := d.Fixed(code); err != nil {
		return err
	}
	a.Code = string(bytes.TrimRight(code, "\x00"))
	if err := validateAssetCode(a.Code); err != nil {
		return malformed("asset code %q", a.Code)
	}
	if _, err := a.codeSize(); err != nil {
		return malformed("asset code %q does not fit type %d", a.Code, t)
	}
	return a.Issuer.DecodeFrom(d)
}

type MemoType int32

const (
	MemoTypeNone   MemoType = 0
	MemoTypeText   MemoType = 1
	MemoTypeID     MemoType = 2
	MemoTypeHash   MemoType = 3
	MemoTypeReturn MemoType = 4
)

// MaxMemoText is the protocol limit of a text memo in bytes.
const MaxMemoText = 28

func (t MemoType) String() string {
	switch t {
	case MemoTypeNone:
		return "none"
	case MemoTypeText:
		return "text"
	case MemoTypeID:
		return "id"
	case MemoTypeHash:
		return "hash"
	case MemoTypeReturn:
		return "return"
	}
	return fmt.Sprintf("MemoType(%d)", int32(t))
}

// Memo annotates a transaction. Only the field selected by Type is
// meaningful.
type Memo struct {
	Type MemoType
	Text string
	ID   uint64
	Hash Hash
}

func MemoNone() Memo {
	return Memo{Type: MemoTypeNone}
}

// MemoText fails when text exceeds MaxMemoText bytes.
func MemoText(text string) (Memo, error) {
	if len(text) > MaxMemoText {
		return Memo{}, fmt.Errorf("%w: memo text is %d bytes, limit %d", ErrDataEncodingFailed, len(text), MaxMemoText)
	}
	return Memo{Type: MemoTypeText, Text: text}, nil
}

func MemoID(id uint64) Memo {
	return Memo{Type: MemoTypeID, ID: id}
}

func MemoHash(h Hash) Memo {
	return Memo{Type: MemoTypeHash, Hash: h}
}

func MemoReturn(h Hash) Memo {
	return Memo{Type: MemoTypeReturn, Hash: h}
}

func (m *Memo) EncodeTo(e *Encoder) error {
	switch m.Type {
	case MemoTypeNone:
		return e.Int32(int32(m.Type))
	case MemoTypeText:
		if err := e.Int32(int32(m.Type)); err != nil {
			return err
		}
		return e.String(m.Text, MaxMemoText)
	case MemoTypeID:
		if err := e.Int32(int32(m.Type)); err != nil {
			return err
		}
		return e.Uint64(m.ID)
	case MemoTypeHash, MemoTypeReturn:
		if err := e.Int32(int32(m.Type)); err != nil {
			return err
		}
		return m.Hash.EncodeTo(e)
	}
	return fmt.Errorf("%w: unknown memo type %d", ErrDataEncodingFailed, m.Type)
}

func (m *Memo) DecodeFrom(d *Decoder) error {
	t, err := d.Int32()
	if err != nil {
		return err
	}
	*m = Memo{Type: MemoType(t)}
	switch m.Type {
	case MemoTypeNone:
		return nil
	case MemoTypeText:
		m.Text, err = d.String(MaxMemoText)
		return err
	case MemoTypeID:
		m.ID, err = d.Uint64()
		return err
	case MemoTypeHash, MemoTypeReturn:
		return m.Hash.DecodeFrom(d)
	}
	return malformed("unknown memo type %d", t)
}

// TimeBounds limits the ledger close times at which a transaction is
// valid. A zero MaxTime means no upper bound.
type TimeBounds struct {
	MinTime uint64
	MaxTime uint64
}

func (tb *TimeBounds) EncodeTo(e *Encoder) error {
	if err := e.Uint64(tb.MinTime); err != nil {
		return err
	}
	return e.Uint64(tb.MaxTime)
}

func (tb *TimeBounds) DecodeFrom(d *Decoder) (err error) {
	if tb.MinTime, err = d.Uint64(); err != nil {
		return err
	}
	tb.MaxTime, err = d.Uint64()
	return err
}
