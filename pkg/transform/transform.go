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

// Package transform applies pure per-row rewrites to rows and sequences.
// A Transform binds to a schema once at setup and is then applied row at
// a time; sequences are transformed elementwise.
package transform

import (
	"fmt"

	"github.com/tabflow/tabflow/pkg/schema"
	"github.com/tabflow/tabflow/pkg/sequence"
	"github.com/tabflow/tabflow/pkg/value"
)

// Transform rewrites one row at a time. Apply must not mutate its input.
type Transform interface {
	// Apply returns the transformed row.
	Apply(row sequence.Row) sequence.Row
	// String renders the stable description used in logs and debugging.
	String() string
}

// MapSequence applies the transform to every row of a sequence, returning
// a new sequence.
func MapSequence(t Transform, seq sequence.Sequence) sequence.Sequence {
	out := make(sequence.Sequence, 0, len(seq))
	for _, row := range seq {
		out = append(out, t.Apply(row))
	}
	return out
}

// ReplaceEmptyString substitutes configured text for the missing or
// empty values of one string column.
type ReplaceEmptyString struct {
	column   string
	idx      int
	newValue string
}

// NewReplaceEmptyString binds the transform to a schema. The named column
// must resolve; resolving it here keeps Apply free of per-row lookups.
func NewReplaceEmptyString(s *schema.Schema, column, newValue string) (*ReplaceEmptyString, error) {
	idx, ok := s.IndexOf(column)
	if !ok {
		return nil, fmt.Errorf("schema does not have a column with name %q", column)
	}
	return &ReplaceEmptyString{column: column, idx: idx, newValue: newValue}, nil
}

// Apply returns the row with the bound column replaced when it is missing
// or empty. Rows that need no change are returned as-is.
func (t *ReplaceEmptyString) Apply(row sequence.Row) sequence.Row {
	if !row[t.idx].IsMissing() {
		return row
	}
	out := row.Clone(0)
	out[t.idx] = value.NewString(t.newValue)
	return out
}

func (t *ReplaceEmptyString) String() string {
	return fmt.Sprintf("ReplaceEmptyStringTransform(column=%q,newValue=%q)", t.column, t.newValue)
}

// ToText projects one column of a row to its raw text, the form used for
// count-by-value style aggregations.
func ToText(row sequence.Row, idx int) string {
	return row[idx].String()
}
