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
	"math"

	"github.com/tabflow/tabflow/pkg/schema"
	"github.com/tabflow/tabflow/pkg/value"
)

// DoubleAnalysis tracks sign counts and extremes for a numeric column.
// Values with no numeric interpretation (including missing ones) count
// toward CountNonNumeric and CountTotal only.
type DoubleAnalysis struct {
	CountZero       int64   `json:"countZero"`
	CountPositive   int64   `json:"countPositive"`
	CountNegative   int64   `json:"countNegative"`
	CountNonNumeric int64   `json:"countNonNumeric"`
	MinSeen         float64 `json:"minSeen"`
	MaxSeen         float64 `json:"maxSeen"`
	Sum             float64 `json:"sum"`
	CountTotal      int64   `json:"countTotal"`
}

// NewDoubleAnalysis returns the identity counter. The extremal fields hold
// infinities until the first numeric value arrives.
func NewDoubleAnalysis() DoubleAnalysis {
	return DoubleAnalysis{
		MinSeen: math.Inf(1),
		MaxSeen: math.Inf(-1),
	}
}

// Add folds one value into the counter.
func (c DoubleAnalysis) Add(v value.Value, _ schema.Column) DoubleAnalysis {
	out := c
	out.CountTotal++

	f, ok := v.AsDouble()
	if v.IsMissing() || !ok {
		out.CountNonNumeric++
		return out
	}

	switch {
	case f == 0:
		out.CountZero++
	case f > 0:
		out.CountPositive++
	default:
		out.CountNegative++
	}
	out.MinSeen = math.Min(out.MinSeen, f)
	out.MaxSeen = math.Max(out.MaxSeen, f)
	out.Sum += f
	return out
}

// Merge combines two counters. The infinity sentinels make min/max safe to
// take in either order.
func (c DoubleAnalysis) Merge(o DoubleAnalysis) DoubleAnalysis {
	return DoubleAnalysis{
		CountZero:       c.CountZero + o.CountZero,
		CountPositive:   c.CountPositive + o.CountPositive,
		CountNegative:   c.CountNegative + o.CountNegative,
		CountNonNumeric: c.CountNonNumeric + o.CountNonNumeric,
		MinSeen:         math.Min(c.MinSeen, o.MinSeen),
		MaxSeen:         math.Max(c.MaxSeen, o.MaxSeen),
		Sum:             c.Sum + o.Sum,
		CountTotal:      c.CountTotal + o.CountTotal,
	}
}

func (c DoubleAnalysis) Total() int64 { return c.CountTotal }

func (c DoubleAnalysis) addValue(v value.Value, col schema.Column) Counter {
	return c.Add(v, col)
}

func (c DoubleAnalysis) mergeWith(other Counter) Counter {
	return c.Merge(other.(DoubleAnalysis))
}
