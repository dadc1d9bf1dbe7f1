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

package types

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// QuarksPerKin is the number of quarks, the ledger's smallest unit,
// in one Kin.
const QuarksPerKin = 100000

// KinPrecision is the number of decimal places a Kin amount carries.
const KinPrecision = 5

// Quark is an integer amount in the ledger's smallest unit. Fees and
// operation amounts on the wire are quarks.
type Quark int64

// Kin converts q into a decimal Kin amount.
func (q Quark) Kin() Kin {
	return Kin{decimal.New(int64(q), -KinPrecision)}
}

func (q Quark) String() string {
	return strconv.FormatInt(int64(q), 10)
}

// Kin is a decimal amount as presented to users and reported by the
// gateway in balance fields.
type Kin struct {
	decimal.Decimal
}

// NewKin returns a whole number of Kin.
func NewKin(n int64) Kin {
	return Kin{decimal.NewFromInt(n)}
}

// ParseKin parses a decimal string such as "12.50000". Amounts with
// more than five decimal places cannot be represented on the ledger.
func ParseKin(s string) (Kin, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Kin{}, fmt.Errorf("%w: parse amount %q: %v", ErrDataEncodingFailed, s, err)
	}
	if !d.Equal(d.Truncate(KinPrecision)) {
		return Kin{}, fmt.Errorf("%w: amount %q has more than %d decimal places", ErrDataEncodingFailed, s, KinPrecision)
	}
	return Kin{d}, nil
}

// MustParseKin is ParseKin for constants.
func MustParseKin(s string) Kin {
	k, err := ParseKin(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Quarks converts k into quarks, failing when k has sub-quark
// precision or does not fit an int64.
func (k Kin) Quarks() (Quark, error) {
	q := k.Shift(KinPrecision)
	if !q.IsInteger() {
		return 0, fmt.Errorf("%w: amount %s has sub-quark precision", ErrDataEncodingFailed, k)
	}
	if q.GreaterThan(decimal.NewFromInt(math.MaxInt64)) || q.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return 0, fmt.Errorf("%w: amount %s overflows", ErrDataEncodingFailed, k)
	}
	return Quark(q.IntPart()), nil
}

// String formats k with five decimal places, or with all of them when
// the gateway reported a finer amount.
func (k Kin) String() string {
	if !k.Equal(k.Truncate(KinPrecision)) {
		return k.Decimal.String()
	}
	return k.StringFixed(KinPrecision)
}

func (k Kin) Add(o Kin) Kin {
	return Kin{k.Decimal.Add(o.Decimal)}
}

func (k Kin) Sub(o Kin) Kin {
	return Kin{k.Decimal.Sub(o.Decimal)}
}

func (k Kin) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(k.String())), nil
}

func (k *Kin) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		s = string(b)
	}
	// gateway amounts may carry seven decimal places
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("%w: parse amount %q: %v", ErrDataEncodingFailed, s, err)
	}
	*k = Kin{d}
	return nil
}
