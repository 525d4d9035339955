/*
Copyright 2024 The Tabflow Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package value holds the tagged cell value used by every stage of the
// engine. A Value is immutable; all conversions are explicit and return a
// new result instead of reinterpreting the underlying representation.
package value

import (
	"fmt"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

// Kind identifies the variant stored in a Value.
type Kind int

const (
	KindNull Kind = iota
	KindInteger
	KindLong
	KindDouble
	KindString
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindInteger:
		return "Integer"
	case KindLong:
		return "Long"
	case KindDouble:
		return "Double"
	case KindString:
		return "String"
	case KindTime:
		return "Time"
	default:
		return "Unknown"
	}
}

// Value is a single cell of a row. The zero Value is the Null variant.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Null returns the Null variant.
func Null() Value {
	return Value{kind: KindNull}
}

// NewInteger returns an Integer variant.
func NewInteger(v int32) Value {
	return Value{kind: KindInteger, i: int64(v)}
}

// NewLong returns a Long variant.
func NewLong(v int64) Value {
	return Value{kind: KindLong, i: v}
}

// NewDouble returns a Double variant.
func NewDouble(v float64) Value {
	return Value{kind: KindDouble, f: v}
}

// NewString returns a String variant.
func NewString(v string) Value {
	return Value{kind: KindString, s: v}
}

// NewTime returns a Time variant holding the instant as epoch milliseconds.
func NewTime(t time.Time) Value {
	return Value{kind: KindTime, i: t.UnixMilli()}
}

// NewTimeMillis returns a Time variant from epoch milliseconds.
func NewTimeMillis(ms int64) Value {
	return Value{kind: KindTime, i: ms}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind {
	return v.kind
}

// String renders the value in its raw textual form. Null renders as the
// empty string, Time as its epoch-millisecond count.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindInteger, KindLong, KindTime:
		return strconv.FormatInt(v.i, 10)
	case KindDouble:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	default:
		return ""
	}
}

// AsLong coerces the value to a 64-bit integer. Doubles truncate toward
// zero, Time yields epoch milliseconds, Strings are parsed. The second
// return is false when no numeric interpretation exists.
func (v Value) AsLong() (int64, bool) {
	switch v.kind {
	case KindInteger, KindLong, KindTime:
		return v.i, true
	case KindDouble:
		return int64(v.f), true
	case KindString:
		n, err := strconv.ParseInt(v.s, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// AsDouble coerces the value to a float64, parsing Strings.
func (v Value) AsDouble() (float64, bool) {
	switch v.kind {
	case KindInteger, KindLong, KindTime:
		return float64(v.i), true
	case KindDouble:
		return v.f, true
	case KindString:
		f, err := strconv.ParseFloat(v.s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Time returns the instant held by a Time variant.
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindTime {
		return time.Time{}, false
	}
	return time.UnixMilli(v.i), true
}

// IsMissing reports whether the value carries no data: the Null variant,
// or a String variant with empty text.
func (v Value) IsMissing() bool {
	return v.kind == KindNull || (v.kind == KindString && v.s == "")
}

// CompareLong orders two values by their long coercion. Values with no
// numeric interpretation order before those with one.
func CompareLong(a, b Value) int {
	al, aok := a.AsLong()
	bl, bok := b.AsLong()
	if !aok || !bok {
		switch {
		case aok == bok:
			return 0
		case !aok:
			return -1
		default:
			return 1
		}
	}
	switch {
	case al < bl:
		return -1
	case al > bl:
		return 1
	default:
		return 0
	}
}

// FromText parses raw text into the requested kind. Empty text becomes the
// Null variant for every kind except String. Time text may be an epoch
// millisecond count or any timestamp layout dateparse recognizes.
func FromText(text string, kind Kind) (Value, error) {
	if text == "" && kind != KindString {
		return Null(), nil
	}
	switch kind {
	case KindNull:
		return Null(), nil
	case KindInteger:
		n, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return Null(), fmt.Errorf("cannot parse %q as integer: %w", text, err)
		}
		return NewInteger(int32(n)), nil
	case KindLong:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Null(), fmt.Errorf("cannot parse %q as long: %w", text, err)
		}
		return NewLong(n), nil
	case KindDouble:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Null(), fmt.Errorf("cannot parse %q as double: %w", text, err)
		}
		return NewDouble(f), nil
	case KindString:
		return NewString(text), nil
	case KindTime:
		if ms, err := strconv.ParseInt(text, 10, 64); err == nil {
			return NewTimeMillis(ms), nil
		}
		t, err := dateparse.ParseStrict(text)
		if err != nil {
			return Null(), fmt.Errorf("cannot parse %q as time: %w", text, err)
		}
		return NewTime(t), nil
	default:
		return Null(), fmt.Errorf("unknown value kind %d", kind)
	}
}
