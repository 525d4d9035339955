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

package analysis

import (
	"strconv"

	"github.com/tabflow/tabflow/pkg/schema"
	"github.com/tabflow/tabflow/pkg/value"
)

// IntegerQuality counts how the values of an integer column classify.
// Every value lands in exactly one of valid/missing/invalid, in that
// precedence. CountNonInteger is an independent tag over the same values:
// it counts present values whose text does not parse as a 32-bit integer,
// so a value can be both invalid and non-integer. CountTotal increments
// once per value regardless of classification.
type IntegerQuality struct {
	CountValid      int64 `json:"countValid"`
	CountInvalid    int64 `json:"countInvalid"`
	CountMissing    int64 `json:"countMissing"`
	CountNonInteger int64 `json:"countNonInteger"`
	CountTotal      int64 `json:"countTotal"`
}

// Add classifies one value, returning the updated counter.
func (c IntegerQuality) Add(v value.Value, col schema.Column) IntegerQuality {
	out := c
	out.CountTotal++
	switch {
	case col.IsValid(v):
		out.CountValid++
	case v.IsMissing():
		out.CountMissing++
	default:
		out.CountInvalid++
	}
	if !v.IsMissing() {
		if _, err := strconv.ParseInt(v.String(), 10, 32); err != nil {
			out.CountNonInteger++
		}
	}
	return out
}

// Merge sums two counters field by field.
func (c IntegerQuality) Merge(o IntegerQuality) IntegerQuality {
	return IntegerQuality{
		CountValid:      c.CountValid + o.CountValid,
		CountInvalid:    c.CountInvalid + o.CountInvalid,
		CountMissing:    c.CountMissing + o.CountMissing,
		CountNonInteger: c.CountNonInteger + o.CountNonInteger,
		CountTotal:      c.CountTotal + o.CountTotal,
	}
}

func (c IntegerQuality) Total() int64 { return c.CountTotal }

func (c IntegerQuality) addValue(v value.Value, col schema.Column) Counter {
	return c.Add(v, col)
}

func (c IntegerQuality) mergeWith(other Counter) Counter {
	return c.Merge(other.(IntegerQuality))
}

// LongQuality is the 64-bit counterpart of IntegerQuality.
type LongQuality struct {
	CountValid   int64 `json:"countValid"`
	CountInvalid int64 `json:"countInvalid"`
	CountMissing int64 `json:"countMissing"`
	CountNonLong int64 `json:"countNonLong"`
	CountTotal   int64 `json:"countTotal"`
}

// Add classifies one value, returning the updated counter.
func (c LongQuality) Add(v value.Value, col schema.Column) LongQuality {
	out := c
	out.CountTotal++
	switch {
	case col.IsValid(v):
		out.CountValid++
	case v.IsMissing():
		out.CountMissing++
	default:
		out.CountInvalid++
	}
	if !v.IsMissing() {
		if _, err := strconv.ParseInt(v.String(), 10, 64); err != nil {
			out.CountNonLong++
		}
	}
	return out
}

// Merge sums two counters field by field.
func (c LongQuality) Merge(o LongQuality) LongQuality {
	return LongQuality{
		CountValid:   c.CountValid + o.CountValid,
		CountInvalid: c.CountInvalid + o.CountInvalid,
		CountMissing: c.CountMissing + o.CountMissing,
		CountNonLong: c.CountNonLong + o.CountNonLong,
		CountTotal:   c.CountTotal + o.CountTotal,
	}
}

func (c LongQuality) Total() int64 { return c.CountTotal }

func (c LongQuality) addValue(v value.Value, col schema.Column) Counter {
	return c.Add(v, col)
}

func (c LongQuality) mergeWith(other Counter) Counter {
	return c.Merge(other.(LongQuality))
}

// TimeQuality classifies the values of a time column.
type TimeQuality struct {
	CountValid   int64 `json:"countValid"`
	CountInvalid int64 `json:"countInvalid"`
	CountMissing int64 `json:"countMissing"`
	CountTotal   int64 `json:"countTotal"`
}

// Add classifies one value, returning the updated counter.
func (c TimeQuality) Add(v value.Value, col schema.Column) TimeQuality {
	out := c
	out.CountTotal++
	switch {
	case col.IsValid(v):
		out.CountValid++
	case v.IsMissing():
		out.CountMissing++
	default:
		out.CountInvalid++
	}
	return out
}

// Merge sums two counters field by field.
func (c TimeQuality) Merge(o TimeQuality) TimeQuality {
	return TimeQuality{
		CountValid:   c.CountValid + o.CountValid,
		CountInvalid: c.CountInvalid + o.CountInvalid,
		CountMissing: c.CountMissing + o.CountMissing,
		CountTotal:   c.CountTotal + o.CountTotal,
	}
}

func (c TimeQuality) Total() int64 { return c.CountTotal }

func (c TimeQuality) addValue(v value.Value, col schema.Column) Counter {
	return c.Add(v, col)
}

func (c TimeQuality) mergeWith(other Counter) Counter {
	return c.Merge(other.(TimeQuality))
}
