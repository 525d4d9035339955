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

package reduce

import (
	"fmt"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/tabflow/tabflow/pkg/schema"
	"github.com/tabflow/tabflow/pkg/value"
)

// Op is a per-column reduction strategy. Numeric ops skip values with no
// numeric interpretation; when nothing remains they produce Null.
type Op int

const (
	OpFirst Op = iota
	OpLast
	OpCount
	OpCountUnique
	OpSum
	OpMin
	OpMax
	OpRange
	OpMean
	OpMedian
	OpStdev
	OpConcat
)

func (op Op) String() string {
	switch op {
	case OpFirst:
		return "First"
	case OpLast:
		return "Last"
	case OpCount:
		return "Count"
	case OpCountUnique:
		return "CountUnique"
	case OpSum:
		return "Sum"
	case OpMin:
		return "Min"
	case OpMax:
		return "Max"
	case OpRange:
		return "Range"
	case OpMean:
		return "Mean"
	case OpMedian:
		return "Median"
	case OpStdev:
		return "Stdev"
	case OpConcat:
		return "Concat"
	default:
		return "Unknown"
	}
}

// ParseOp resolves a textual op name as used in configuration files and
// command-line flags.
func ParseOp(s string) (Op, error) {
	switch strings.ToLower(s) {
	case "first":
		return OpFirst, nil
	case "last":
		return OpLast, nil
	case "count":
		return OpCount, nil
	case "countunique", "count_unique":
		return OpCountUnique, nil
	case "sum":
		return OpSum, nil
	case "min":
		return OpMin, nil
	case "max":
		return OpMax, nil
	case "range":
		return OpRange, nil
	case "mean":
		return OpMean, nil
	case "median":
		return OpMedian, nil
	case "stdev":
		return OpStdev, nil
	case "concat":
		return OpConcat, nil
	default:
		return OpFirst, fmt.Errorf("unknown reduction op %q", s)
	}
}

// applicableTo reports whether the op can reduce a column of the given
// type. Violations are configuration errors raised at reducer setup.
func (op Op) applicableTo(col schema.Column) error {
	switch op {
	case OpFirst, OpLast, OpCount, OpCountUnique:
		return nil
	case OpSum, OpMin, OpMax, OpRange, OpMean, OpMedian, OpStdev:
		switch col.Type {
		case schema.ColumnTypeInteger, schema.ColumnTypeLong, schema.ColumnTypeDouble, schema.ColumnTypeTime:
			return nil
		default:
			return fmt.Errorf("op %v cannot reduce %v column %q", op, col.Type, col.Name)
		}
	case OpConcat:
		switch col.Type {
		case schema.ColumnTypeString, schema.ColumnTypeCategorical:
			return nil
		default:
			return fmt.Errorf("op %v cannot reduce %v column %q", op, col.Type, col.Name)
		}
	default:
		return fmt.Errorf("unknown reduction op %d", op)
	}
}

// apply reduces one column position of the flattened rows.
func (op Op) apply(column []value.Value, col schema.Column) value.Value {
	switch op {
	case OpFirst:
		return column[0]
	case OpLast:
		return column[len(column)-1]
	case OpCount:
		return value.NewLong(int64(len(column)))
	case OpCountUnique:
		seen := make(map[string]struct{}, len(column))
		for _, v := range column {
			if !v.IsMissing() {
				seen[v.String()] = struct{}{}
			}
		}
		return value.NewLong(int64(len(seen)))
	case OpConcat:
		parts := make([]string, 0, len(column))
		for _, v := range column {
			if !v.IsMissing() {
				parts = append(parts, v.String())
			}
		}
		return value.NewString(strings.Join(parts, ","))
	default:
		return numericReduce(op, column, col)
	}
}

func numericReduce(op Op, column []value.Value, col schema.Column) value.Value {
	data := make(stats.Float64Data, 0, len(column))
	for _, v := range column {
		if f, ok := v.AsDouble(); ok {
			data = append(data, f)
		}
	}
	if len(data) == 0 {
		return value.Null()
	}

	var (
		f   float64
		err error
	)
	switch op {
	case OpSum:
		f, err = stats.Sum(data)
	case OpMin:
		f, err = stats.Min(data)
	case OpMax:
		f, err = stats.Max(data)
	case OpRange:
		var lo, hi float64
		if lo, err = stats.Min(data); err == nil {
			if hi, err = stats.Max(data); err == nil {
				f = hi - lo
			}
		}
	case OpMean:
		f, err = stats.Mean(data)
	case OpMedian:
		f, err = stats.Median(data)
	case OpStdev:
		f, err = stats.StandardDeviation(data)
	}
	if err != nil {
		return value.Null()
	}

	// Whole-valued ops on integral columns keep their column's kind; the
	// statistical ops always produce a Double.
	switch op {
	case OpSum, OpMin, OpMax, OpRange:
		switch col.Type {
		case schema.ColumnTypeInteger, schema.ColumnTypeLong:
			return value.NewLong(int64(f))
		case schema.ColumnTypeTime:
			return value.NewTimeMillis(int64(f))
		}
	}
	return value.NewDouble(f)
}
