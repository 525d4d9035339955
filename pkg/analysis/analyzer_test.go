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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabflow/tabflow/pkg/schema"
	"github.com/tabflow/tabflow/pkg/sequence"
	"github.com/tabflow/tabflow/pkg/value"
)

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.New([]schema.Column{
		{Name: "count", Type: schema.ColumnTypeInteger, Range: &schema.IntegerRange{Min: 0, Max: 1000}},
		{Name: "label", Type: schema.ColumnTypeString},
		{Name: "ratio", Type: schema.ColumnTypeDouble},
		{Name: "group", Type: schema.ColumnTypeCategorical},
		{Name: "ts", Type: schema.ColumnTypeTime},
	})
	require.NoError(t, err)
	return s
}

func randomRow(rnd *rand.Rand) sequence.Row {
	texts := []string{"1", "77", "abc", "", "-4", "3.5"}
	labels := []string{"", "a", "bb", "ccc", "dddd"}
	groups := []string{"red", "green", "blue", ""}
	return sequence.Row{
		value.NewString(texts[rnd.Intn(len(texts))]),
		value.NewString(labels[rnd.Intn(len(labels))]),
		value.NewDouble(float64(rnd.Intn(21) - 10)),
		value.NewString(groups[rnd.Intn(len(groups))]),
		value.NewTimeMillis(rnd.Int63n(1_000_000)),
	}
}

// Folding sequentially left to right must equal folding each partition
// independently and combining the partials in an arbitrary tree, for any
// permutation of the partition order.
func TestAnalyzer_PartitionedFoldMatchesSequential(t *testing.T) {
	a := NewAnalyzer(testSchema(t))
	rnd := rand.New(rand.NewSource(42))

	rows := make([]sequence.Row, 200)
	for i := range rows {
		rows[i] = randomRow(rnd)
	}

	sequential := a.Identity()
	for _, r := range rows {
		sequential = a.AddRow(sequential, r)
	}

	// four partitions, folded independently
	parts := make([]State, 4)
	for i := range parts {
		parts[i] = a.Identity()
	}
	for i, r := range rows {
		parts[i%4] = a.AddRow(parts[i%4], r)
	}

	for trial := 0; trial < 10; trial++ {
		perm := rnd.Perm(4)
		merged := a.Identity()
		for _, p := range perm {
			merged = a.MergeStates(merged, parts[p])
		}
		assert.Equal(t, sequential, merged)

		// balanced tree shape
		tree := a.MergeStates(
			a.MergeStates(parts[perm[0]], parts[perm[1]]),
			a.MergeStates(parts[perm[2]], parts[perm[3]]),
		)
		assert.Equal(t, sequential, tree)
	}
}

func TestAnalyzer_TotalCountConservation(t *testing.T) {
	a := NewAnalyzer(testSchema(t))
	rnd := rand.New(rand.NewSource(7))

	const n = 137
	st := a.Identity()
	for i := 0; i < n; i++ {
		st = a.AddRow(st, randomRow(rnd))
	}
	for _, c := range st {
		assert.Equal(t, int64(n), c.Total())
	}
}

func TestAnalyzer_Report(t *testing.T) {
	a := NewAnalyzer(testSchema(t))
	st := a.AddRow(a.Identity(), sequence.Row{
		value.NewString("5"),
		value.NewString("hello"),
		value.NewDouble(-1),
		value.NewString("red"),
		value.NewTimeMillis(10),
	})

	report := a.Report(st)
	require.Len(t, report, 5)
	assert.Equal(t, "count", report[0].Name)
	assert.Equal(t, "Integer", report[0].Type)

	iq, ok := report[0].Summary.(IntegerQuality)
	require.True(t, ok)
	assert.Equal(t, int64(1), iq.CountValid)

	cc, ok := report[3].Summary.(CategoricalCounts)
	require.True(t, ok)
	assert.Equal(t, int64(1), cc.Counts["red"])
}

func TestForColumn_ExhaustiveOverColumnTypes(t *testing.T) {
	for _, typ := range []schema.ColumnType{
		schema.ColumnTypeInteger,
		schema.ColumnTypeLong,
		schema.ColumnTypeDouble,
		schema.ColumnTypeString,
		schema.ColumnTypeCategorical,
		schema.ColumnTypeTime,
	} {
		c := ForColumn(schema.Column{Name: "c", Type: typ})
		assert.NotNil(t, c, typ.String())
		assert.Equal(t, int64(0), c.Total())
	}
}
