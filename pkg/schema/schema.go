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

// Package schema describes the columns of a tabular dataset: per-column
// type tags, validity rules and positional lookup. Schemas are validated
// once at construction so the per-row paths never have to re-check them.
package schema

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tabflow/tabflow/pkg/value"
)

// ColumnType tags the kind of data a column holds.
type ColumnType int

const (
	ColumnTypeInteger ColumnType = iota
	ColumnTypeLong
	ColumnTypeDouble
	ColumnTypeString
	ColumnTypeCategorical
	ColumnTypeTime
)

func (c ColumnType) String() string {
	switch c {
	case ColumnTypeInteger:
		return "Integer"
	case ColumnTypeLong:
		return "Long"
	case ColumnTypeDouble:
		return "Double"
	case ColumnTypeString:
		return "String"
	case ColumnTypeCategorical:
		return "Categorical"
	case ColumnTypeTime:
		return "Time"
	default:
		return "Unknown"
	}
}

// ValueKind maps the column type to the value variant rows are expected to
// carry in that position.
func (c ColumnType) ValueKind() value.Kind {
	switch c {
	case ColumnTypeInteger:
		return value.KindInteger
	case ColumnTypeLong:
		return value.KindLong
	case ColumnTypeDouble:
		return value.KindDouble
	case ColumnTypeString, ColumnTypeCategorical:
		return value.KindString
	case ColumnTypeTime:
		return value.KindTime
	default:
		return value.KindNull
	}
}

// IntegerRange restricts the allowed values of an Integer or Long column.
type IntegerRange struct {
	Min int64
	Max int64
}

// Column is the specification of one column: its name, type tag and the
// metadata its validity rule needs. TimeZone applies to Time columns only
// and defaults to UTC.
type Column struct {
	Name     string
	Type     ColumnType
	Range    *IntegerRange
	TimeZone *time.Location
}

// IsValid reports whether the given value is acceptable for this column.
// Missing values are never valid; validity of present values depends on
// the column type and range metadata.
func (c Column) IsValid(v value.Value) bool {
	if v.IsMissing() {
		return false
	}
	switch c.Type {
	case ColumnTypeInteger:
		n, err := strconv.ParseInt(v.String(), 10, 32)
		if err != nil {
			return false
		}
		return c.inRange(n)
	case ColumnTypeLong, ColumnTypeTime:
		n, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil {
			return false
		}
		return c.inRange(n)
	case ColumnTypeDouble:
		_, err := strconv.ParseFloat(v.String(), 64)
		return err == nil
	case ColumnTypeString, ColumnTypeCategorical:
		return true
	default:
		return false
	}
}

func (c Column) inRange(n int64) bool {
	if c.Range == nil {
		return true
	}
	return n >= c.Range.Min && n <= c.Range.Max
}

// Location returns the column's time zone, defaulting to UTC.
func (c Column) Location() *time.Location {
	if c.TimeZone == nil {
		return time.UTC
	}
	return c.TimeZone
}

// Schema is an ordered set of columns with unique names.
type Schema struct {
	columns []Column
	index   map[string]int
}

// New validates the column list and builds a Schema. Duplicate or empty
// column names are configuration errors.
func New(columns []Column) (*Schema, error) {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if col.Name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if prev, ok := index[col.Name]; ok {
			return nil, fmt.Errorf("duplicate column name %q at positions %d and %d", col.Name, prev, i)
		}
		index[col.Name] = i
	}
	return &Schema{columns: columns, index: index}, nil
}

// NumColumns returns the number of columns.
func (s *Schema) NumColumns() int {
	return len(s.columns)
}

// Columns returns the ordered column list. Callers must not mutate it.
func (s *Schema) Columns() []Column {
	return s.columns
}

// Column returns the column at the given position.
func (s *Schema) Column(i int) Column {
	return s.columns[i]
}

// IndexOf returns the position of the named column.
func (s *Schema) IndexOf(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// TimeColumnIndex resolves the named column and checks it is Time-typed.
func (s *Schema) TimeColumnIndex(name string) (int, error) {
	i, ok := s.index[name]
	if !ok {
		return 0, fmt.Errorf("schema does not have a column with name %q", name)
	}
	if s.columns[i].Type != ColumnTypeTime {
		return 0, fmt.Errorf("column %q is not of type %v; is %v", name, ColumnTypeTime, s.columns[i].Type)
	}
	return i, nil
}

// WithColumns returns a new schema with the given columns appended.
func (s *Schema) WithColumns(extra ...Column) (*Schema, error) {
	combined := make([]Column, 0, len(s.columns)+len(extra))
	combined = append(combined, s.columns...)
	combined = append(combined, extra...)
	return New(combined)
}
