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

// Package analysis implements the per-column counters that summarize data
// quality and basic statistics. Counters are immutable values: Add and
// Merge return new counters and never mutate their receivers. Merge is
// associative and commutative with the zero counter as identity, so a
// fold over any partitioning of the data, combined in any tree shape,
// produces the same result as a sequential fold.
package analysis

import (
	"fmt"

	"github.com/tabflow/tabflow/pkg/schema"
	"github.com/tabflow/tabflow/pkg/value"
)

// Counter is one column's running summary. The variant set is closed: the
// unexported methods keep implementations confined to this package, and
// ForColumn enumerates them exhaustively.
type Counter interface {
	// Total returns the number of values folded into the counter.
	Total() int64

	addValue(v value.Value, col schema.Column) Counter
	mergeWith(other Counter) Counter
}

// Add folds one value into the counter, returning the updated counter.
func Add(c Counter, v value.Value, col schema.Column) Counter {
	return c.addValue(v, col)
}

// Merge combines two counters of the same variant.
func Merge(a, b Counter) Counter {
	return a.mergeWith(b)
}

// ForColumn returns the zero counter for the column's type.
func ForColumn(col schema.Column) Counter {
	switch col.Type {
	case schema.ColumnTypeInteger:
		return IntegerQuality{}
	case schema.ColumnTypeLong:
		return LongQuality{}
	case schema.ColumnTypeDouble:
		return NewDoubleAnalysis()
	case schema.ColumnTypeString:
		return NewStringAnalysis()
	case schema.ColumnTypeCategorical:
		return NewCategoricalCounts()
	case schema.ColumnTypeTime:
		return TimeQuality{}
	default:
		panic(fmt.Sprintf("no counter for column type %v", col.Type))
	}
}
