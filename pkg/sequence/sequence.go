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

// Package sequence defines the row containers the engine operates on:
// schema-aligned rows, keyed row groups and time-ordered sequences.
package sequence

import (
	"slices"

	"github.com/tabflow/tabflow/pkg/value"
)

// Row is one record, positionally aligned to a schema.
type Row []value.Value

// Clone returns a copy of the row with room for extra trailing columns.
func (r Row) Clone(extraCap int) Row {
	out := make(Row, len(r), len(r)+extraCap)
	copy(out, r)
	return out
}

// Group is a set of rows sharing a key.
type Group struct {
	Key  string
	Rows []Row
}

// Sequence is a list of rows ordered ascending by a designated time
// column's long coercion. The ordering is assumed, not enforced here.
type Sequence []Row

// SortByColumn stable-sorts the sequence in place by the long coercion of
// the given column.
func (s Sequence) SortByColumn(idx int) {
	slices.SortStableFunc(s, func(a, b Row) int {
		return value.CompareLong(a[idx], b[idx])
	})
}

// IsSortedByColumn reports whether the sequence is ascending in the long
// coercion of the given column.
func (s Sequence) IsSortedByColumn(idx int) bool {
	for i := 1; i < len(s); i++ {
		if value.CompareLong(s[i-1][idx], s[i][idx]) > 0 {
			return false
		}
	}
	return true
}
