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

// Package reduce combines all row groups sharing a key into a single
// output group. The reducer itself carries no column-specific logic: it
// flattens every contributing group exactly once and delegates each
// column position to its configured reduction op. Shape checks happen at
// construction, never per row.
package reduce

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/tabflow/tabflow/pkg/schema"
	"github.com/tabflow/tabflow/pkg/sequence"
	"github.com/tabflow/tabflow/pkg/value"
)

// Reducer reduces keyed row groups against a bound schema.
type Reducer struct {
	schema    *schema.Schema
	keyColumn string
	keyIdx    int
	ops       []Op
}

// NewReducer validates that the per-column ops match the schema shape and
// each op is applicable to its column's type. The op configured at the key
// column position is ignored; the key value is carried through as-is.
func NewReducer(s *schema.Schema, keyColumn string, ops []Op) (*Reducer, error) {
	var errs error

	keyIdx, ok := s.IndexOf(keyColumn)
	if !ok {
		errs = multierr.Append(errs, fmt.Errorf("schema does not have a key column with name %q", keyColumn))
	}
	if len(ops) != s.NumColumns() {
		errs = multierr.Append(errs, fmt.Errorf("got %d ops for %d columns", len(ops), s.NumColumns()))
	} else {
		for i, op := range ops {
			if i == keyIdx && ok {
				continue
			}
			if err := op.applicableTo(s.Column(i)); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
	}
	if errs != nil {
		return nil, errs
	}

	return &Reducer{schema: s, keyColumn: keyColumn, keyIdx: keyIdx, ops: ops}, nil
}

// Reduce flattens every group contributed for the key, from however many
// partitions, and produces the key's single output group holding one
// reduced row. Groups with no rows contribute nothing; an entirely empty
// input produces an empty group.
func (r *Reducer) Reduce(key string, groups []sequence.Group) sequence.Group {
	var rows []sequence.Row
	for _, g := range groups {
		rows = append(rows, g.Rows...)
	}
	if len(rows) == 0 {
		return sequence.Group{Key: key}
	}

	reduced := make(sequence.Row, r.schema.NumColumns())
	for i := range reduced {
		if i == r.keyIdx {
			reduced[i] = rows[0][i]
			continue
		}
		column := make([]value.Value, 0, len(rows))
		for _, row := range rows {
			column = append(column, row[i])
		}
		reduced[i] = r.ops[i].apply(column, r.schema.Column(i))
	}
	return sequence.Group{Key: key, Rows: []sequence.Row{reduced}}
}

// String renders the stable description used in logs and debugging.
func (r *Reducer) String() string {
	names := make([]string, len(r.ops))
	for i, op := range r.ops {
		names[i] = op.String()
	}
	return fmt.Sprintf("Reducer(keyColumn=%q,ops=[%s])", r.keyColumn, strings.Join(names, ","))
}
