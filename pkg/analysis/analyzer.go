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
	"fmt"

	"github.com/tabflow/tabflow/pkg/schema"
	"github.com/tabflow/tabflow/pkg/sequence"
)

// Analyzer folds whole rows into per-column counter states. The schema is
// bound once at construction; every state the analyzer hands out is
// positionally aligned to it, which is what lets MergeStates combine
// column counters without re-checking variants.
type Analyzer struct {
	schema *schema.Schema
}

// State is one counter per schema column.
type State []Counter

// NewAnalyzer returns an analyzer for the given schema.
func NewAnalyzer(s *schema.Schema) *Analyzer {
	return &Analyzer{schema: s}
}

// Identity returns the zero state: the identity counter for every column.
func (a *Analyzer) Identity() State {
	st := make(State, a.schema.NumColumns())
	for i, col := range a.schema.Columns() {
		st[i] = ForColumn(col)
	}
	return st
}

// AddRow folds one row into the state, returning a new state. The row must
// be positionally aligned to the analyzer's schema.
func (a *Analyzer) AddRow(st State, row sequence.Row) State {
	out := make(State, len(st))
	for i, col := range a.schema.Columns() {
		out[i] = Add(st[i], row[i], col)
	}
	return out
}

// MergeStates combines two states column by column.
func (a *Analyzer) MergeStates(x, y State) State {
	out := make(State, len(x))
	for i := range x {
		out[i] = Merge(x[i], y[i])
	}
	return out
}

// ColumnReport is the summary of a single column.
type ColumnReport struct {
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Summary Counter `json:"summary"`
}

// Report renders a state as per-column summaries, in schema order.
func (a *Analyzer) Report(st State) []ColumnReport {
	out := make([]ColumnReport, len(st))
	for i, col := range a.schema.Columns() {
		out[i] = ColumnReport{
			Name:    col.Name,
			Type:    col.Type.String(),
			Summary: st[i],
		}
	}
	return out
}

// Describe returns the stable textual description of the analyzer.
func (a *Analyzer) Describe() string {
	return fmt.Sprintf("Analyzer(columns=%d)", a.schema.NumColumns())
}
