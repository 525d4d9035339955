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
	"github.com/tabflow/tabflow/pkg/schema"
	"github.com/tabflow/tabflow/pkg/value"
)

// CategoricalCounts counts occurrences of each distinct text value of a
// categorical column. Missing values are tallied separately and do not
// appear in the per-value map. Add copies the map so counters stay
// shareable across partitions.
type CategoricalCounts struct {
	Counts       map[string]int64 `json:"counts"`
	CountMissing int64            `json:"countMissing"`
	CountTotal   int64            `json:"countTotal"`
}

// NewCategoricalCounts returns the identity counter.
func NewCategoricalCounts() CategoricalCounts {
	return CategoricalCounts{Counts: map[string]int64{}}
}

// Add folds one value into the counter.
func (c CategoricalCounts) Add(v value.Value, _ schema.Column) CategoricalCounts {
	out := CategoricalCounts{
		Counts:       make(map[string]int64, len(c.Counts)+1),
		CountMissing: c.CountMissing,
		CountTotal:   c.CountTotal + 1,
	}
	for k, n := range c.Counts {
		out.Counts[k] = n
	}
	if v.IsMissing() {
		out.CountMissing++
		return out
	}
	out.Counts[v.String()]++
	return out
}

// Merge sums the per-value maps of two counters.
func (c CategoricalCounts) Merge(o CategoricalCounts) CategoricalCounts {
	out := CategoricalCounts{
		Counts:       make(map[string]int64, len(c.Counts)+len(o.Counts)),
		CountMissing: c.CountMissing + o.CountMissing,
		CountTotal:   c.CountTotal + o.CountTotal,
	}
	for k, n := range c.Counts {
		out.Counts[k] = n
	}
	for k, n := range o.Counts {
		out.Counts[k] += n
	}
	return out
}

func (c CategoricalCounts) Total() int64 { return c.CountTotal }

func (c CategoricalCounts) addValue(v value.Value, col schema.Column) Counter {
	return c.Add(v, col)
}

func (c CategoricalCounts) mergeWith(other Counter) Counter {
	return c.Merge(other.(CategoricalCounts))
}
