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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tabflow/tabflow/pkg/schema"
	"github.com/tabflow/tabflow/pkg/value"
)

var dblCol = schema.Column{Name: "d", Type: schema.ColumnTypeDouble}

func foldDoubles(vals []value.Value) DoubleAnalysis {
	c := NewDoubleAnalysis()
	for _, v := range vals {
		c = c.Add(v, dblCol)
	}
	return c
}

func TestDoubleAnalysis_Add(t *testing.T) {
	c := foldDoubles([]value.Value{
		value.NewDouble(0),
		value.NewDouble(2.5),
		value.NewDouble(-1),
		value.NewString("abc"),
		value.Null(),
	})
	assert.Equal(t, int64(1), c.CountZero)
	assert.Equal(t, int64(1), c.CountPositive)
	assert.Equal(t, int64(1), c.CountNegative)
	assert.Equal(t, int64(2), c.CountNonNumeric)
	assert.Equal(t, -1.0, c.MinSeen)
	assert.Equal(t, 2.5, c.MaxSeen)
	assert.Equal(t, 1.5, c.Sum)
	assert.Equal(t, int64(5), c.CountTotal)
}

func TestDoubleAnalysis_MergeLaws(t *testing.T) {
	a := foldDoubles([]value.Value{value.NewDouble(1), value.NewDouble(-3)})
	b := foldDoubles([]value.Value{value.NewDouble(8)})
	c := foldDoubles([]value.Value{value.Null()})

	assert.Equal(t, a, a.Merge(NewDoubleAnalysis()))
	assert.Equal(t, a, NewDoubleAnalysis().Merge(a))
	assert.Equal(t, a.Merge(b), b.Merge(a))
	assert.Equal(t, a.Merge(b).Merge(c), a.Merge(b.Merge(c)))
}

func TestCategoricalCounts_AddAndMerge(t *testing.T) {
	col := schema.Column{Name: "g", Type: schema.ColumnTypeCategorical}

	a := NewCategoricalCounts().
		Add(value.NewString("red"), col).
		Add(value.NewString("blue"), col).
		Add(value.Null(), col)
	b := NewCategoricalCounts().
		Add(value.NewString("red"), col)

	m := a.Merge(b)
	assert.Equal(t, int64(2), m.Counts["red"])
	assert.Equal(t, int64(1), m.Counts["blue"])
	assert.Equal(t, int64(1), m.CountMissing)
	assert.Equal(t, int64(4), m.CountTotal)
	assert.Equal(t, m, b.Merge(a))

	// adding never mutates the original
	assert.Equal(t, int64(1), a.Counts["red"])
}
