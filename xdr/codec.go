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

// Package xdr implements the canonical binary encoding of the ledger
// primitives: big-endian, length-prefixed variable fields and zero
// padding to four byte boundaries. The network rejects any envelope
// that deviates from it, so encoders validate every bound before
// writing and decoders reject anything they would not produce.
package xdr

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"

	xdr3 "github.com/stellar/go-xdr/xdr3"
)

var (
	// ErrMalformedData is returned for every decode failure.
	ErrMalformedData = errors.New("malformed xdr data")
	// ErrDataEncodingFailed is returned when a value cannot be
	// represented in the canonical encoding.
	ErrDataEncodingFailed = errors.New("xdr data encoding failed")
)

// Encodable is implemented by every wire type.
type Encodable interface {
	EncodeTo(e *Encoder) error
}

// Decodable is implemented by every wire type.
type Decodable interface {
	DecodeFrom(d *Decoder) error
}

// Encoder writes canonical XDR values.
type Encoder struct {
	enc *xdr3.Encoder
}

// NewEncoder creates an encoder writing into buf.
func NewEncoder(buf *bytes.Buffer) *Encoder {
	return &Encoder{enc: xdr3.NewEncoder(buf)}
}

func (e *Encoder) wrap(err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDataEncodingFailed, err)
	}
	return nil
}

func (e *Encoder) Int32(v int32) error {
	_, err := e.enc.EncodeInt(v)
	return e.wrap(err)
}

func (e *Encoder) Uint32(v uint32) error {
	_, err := e.enc.EncodeUint(v)
	return e.wrap(err)
}

func (e *Encoder) Int64(v int64) error {
	_, err := e.enc.EncodeHyper(v)
	return e.wrap(err)
}

func (e *Encoder) Uint64(v uint64) error {
	_, err := e.enc.EncodeUhyper(v)
	return e.wrap(err)
}

func (e *Encoder) Bool(v bool) error {
	_, err := e.enc.EncodeBool(v)
	return e.wrap(err)
}

// Fixed writes fixed-size opaque data, padded to four bytes.
func (e *Encoder) Fixed(v []byte) error {
	_, err := e.enc.EncodeFixedOpaque(v)
	return e.wrap(err)
}

// Opaque writes variable-size opaque data bounded by max.
func (e *Encoder) Opaque(v []byte, max int) error {
	if len(v) > max {
		return fmt.Errorf("%w: opaque length %d exceeds %d", ErrDataEncodingFailed, len(v), max)
	}
	_, err := e.enc.EncodeOpaque(v)
	return e.wrap(err)
}

// String writes a string bounded by max bytes.
func (e *Encoder) String(v string, max int) error {
	if len(v) > max {
		return fmt.Errorf("%w: string length %d exceeds %d", ErrDataEncodingFailed, len(v), max)
	}
	_, err := e.enc.EncodeString(v)
	return e.wrap(err)
}

// Len writes the element count of a variable-size array bounded by max.
func (e *Encoder) Len(n, max int) error {
	if n > max {
		return fmt.Errorf("%w: array length %d exceeds %d", ErrDataEncodingFailed, n, max)
	}
	return e.Uint32(uint32(n))
}

// Decoder reads canonical XDR values from an in-memory buffer, so it
// always knows how many bytes remain.
type Decoder struct {
	r   *bytes.Reader
	dec *xdr3.Decoder
}

// NewDecoder creates a decoder over b.
func NewDecoder(b []byte) *Decoder {
	r := bytes.NewReader(b)
	return &Decoder{r: r, dec: xdr3.NewDecoder(r)}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return d.r.Len()
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedData, fmt.Sprintf(format, args...))
}

func (d *Decoder) wrap(err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedData, err)
	}
	return nil
}

func (d *Decoder) Int32() (int32, error) {
	v, _, err := d.dec.DecodeInt()
	return v, d.wrap(err)
}

func (d *Decoder) Uint32() (uint32, error) {
	v, _, err := d.dec.DecodeUint()
	return v, d.wrap(err)
}

func (d *Decoder) Int64() (int64, error) {
	v, _, err := d.dec.DecodeHyper()
	return v, d.wrap(err)
}

func (d *Decoder) Uint64() (uint64, error) {
	v, _, err := d.dec.DecodeUhyper()
	return v, d.wrap(err)
}

// Bool reads a boolean and rejects anything but 0 and 1.
func (d *Decoder) Bool() (bool, error) {
	v, err := d.Uint32()
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, malformed("invalid bool %d", v)
}

// Fixed reads size bytes of fixed opaque data.
func (d *Decoder) Fixed(out []byte) error {
	if padded(len(out)) > d.Remaining() {
		return malformed("fixed opaque of %d bytes exceeds remaining %d", len(out), d.Remaining())
	}
	v, _, err := d.dec.DecodeFixedOpaque(int32(len(out)))
	if err != nil {
		return d.wrap(err)
	}
	copy(out, v)
	return nil
}

// Opaque reads variable-size opaque data bounded by max.
func (d *Decoder) Opaque(max int) ([]byte, error) {
	n, err := d.Uint32()
	if err != nil {
		return nil, err
	}
	if int64(n) > int64(max) {
		return nil, malformed("opaque length %d exceeds %d", n, max)
	}
	if padded(int(n)) > d.Remaining() {
		return nil, malformed("opaque length %d exceeds remaining %d", n, d.Remaining())
	}
	out := make([]byte, n)
	if n == 0 {
		return out, nil
	}
	v, _, err := d.dec.DecodeFixedOpaque(int32(n))
	if err != nil {
		return nil, d.wrap(err)
	}
	copy(out, v)
	return out, nil
}

// String reads a string bounded by max bytes.
func (d *Decoder) String(max int) (string, error) {
	b, err := d.Opaque(max)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Len reads the element count of a variable-size array bounded by max
// whose elements each take at least minSize bytes.
func (d *Decoder) Len(max, minSize int) (int, error) {
	n, err := d.Uint32()
	if err != nil {
		return 0, err
	}
	if int64(n) > int64(max) {
		return 0, malformed("array length %d exceeds %d", n, max)
	}
	if int64(n)*int64(minSize) > int64(d.Remaining()) {
		return 0, malformed("array length %d exceeds remaining %d bytes", n, d.Remaining())
	}
	return int(n), nil
}

func padded(n int) int {
	return (n + 3) &^ 3
}

// Marshal encodes v to its canonical bytes.
func Marshal(v Encodable) ([]byte, error) {
	var buf bytes.Buffer
	if err := v.EncodeTo(NewEncoder(&buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes b into v, which must consume every byte.
func Unmarshal(b []byte, v Decodable) error {
	d := NewDecoder(b)
	if err := v.DecodeFrom(d); err != nil {
		return err
	}
	if d.Remaining() != 0 {
		return malformed("%d trailing bytes", d.Remaining())
	}
	return nil
}

// MarshalBase64 encodes v and returns the standard base64 text.
func MarshalBase64(v Encodable) (string, error) {
	b, err := Marshal(v)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// UnmarshalBase64 decodes standard base64 text into v.
func UnmarshalBase64(s string, v Decodable) error {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedData, err)
	}
	return Unmarshal(b, v)
}
