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
	"unicode/utf8"

	"github.com/tabflow/tabflow/pkg/schema"
	"github.com/tabflow/tabflow/pkg/value"
)

// StringAnalysis tracks text-length statistics for a string column: the
// zero-length count, the extremal lengths seen with the number of values
// tying each extremum, the sum of lengths and the total count.
type StringAnalysis struct {
	CountZeroLength int64 `json:"countZeroLength"`
	CountMinLength  int64 `json:"countMinLength"`
	MinLengthSeen   int   `json:"minLengthSeen"`
	CountMaxLength  int64 `json:"countMaxLength"`
	MaxLengthSeen   int   `json:"maxLengthSeen"`
	SumLength       int64 `json:"sumLength"`
	CountTotal      int64 `json:"countTotal"`
}

// NewStringAnalysis returns the identity counter. The extremal fields hold
// sentinels until the first value arrives.
func NewStringAnalysis() StringAnalysis {
	return StringAnalysis{
		MinLengthSeen: math.MaxInt32,
		MaxLengthSeen: math.MinInt32,
	}
}

// Add folds one value's text length into the counter.
func (c StringAnalysis) Add(v value.Value, _ schema.Column) StringAnalysis {
	length := utf8.RuneCountInString(v.String())

	out := c
	if length == 0 {
		out.CountZeroLength++
	}

	switch {
	case length == out.MinLengthSeen:
		out.CountMinLength++
	case length < out.MinLengthSeen:
		out.MinLengthSeen = length
		out.CountMinLength = 1
	}

	switch {
	case length == out.MaxLengthSeen:
		out.CountMaxLength++
	case length > out.MaxLengthSeen:
		out.MaxLengthSeen = length
		out.CountMaxLength = 1
	}

	out.SumLength += int64(length)
	out.CountTotal++
	return out
}

// Merge combines two counters. On an equal extremum the tie counts sum;
// otherwise the merged extremum and its tie count both come from the side
// holding the strictly smaller minimum (strictly larger maximum). The rule
// is symmetric in its arguments, so merge order cannot change the result.
func (c StringAnalysis) Merge(o StringAnalysis) StringAnalysis {
	if c.CountTotal == 0 {
		return o
	}
	if o.CountTotal == 0 {
		return c
	}

	out := StringAnalysis{
		CountZeroLength: c.CountZeroLength + o.CountZeroLength,
		SumLength:       c.SumLength + o.SumLength,
		CountTotal:      c.CountTotal + o.CountTotal,
	}

	switch {
	case c.MinLengthSeen == o.MinLengthSeen:
		out.MinLengthSeen = c.MinLengthSeen
		out.CountMinLength = c.CountMinLength + o.CountMinLength
	case c.MinLengthSeen < o.MinLengthSeen:
		out.MinLengthSeen = c.MinLengthSeen
		out.CountMinLength = c.CountMinLength
	default:
		out.MinLengthSeen = o.MinLengthSeen
		out.CountMinLength = o.CountMinLength
	}

	switch {
	case c.MaxLengthSeen == o.MaxLengthSeen:
		out.MaxLengthSeen = c.MaxLengthSeen
		out.CountMaxLength = c.CountMaxLength + o.CountMaxLength
	case c.MaxLengthSeen > o.MaxLengthSeen:
		out.MaxLengthSeen = c.MaxLengthSeen
		out.CountMaxLength = c.CountMaxLength
	default:
		out.MaxLengthSeen = o.MaxLengthSeen
		out.CountMaxLength = o.CountMaxLength
	}

	return out
}

func (c StringAnalysis) Total() int64 { return c.CountTotal }

func (c StringAnalysis) addValue(v value.Value, col schema.Column) Counter {
	return c.Add(v, col)
}

func (c StringAnalysis) mergeWith(other Counter) Counter {
	return c.Merge(other.(StringAnalysis))
}
