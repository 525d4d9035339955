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

package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabflow/tabflow/pkg/schema"
	"github.com/tabflow/tabflow/pkg/sequence"
	"github.com/tabflow/tabflow/pkg/value"
)

func windowSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.New([]schema.Column{
		{Name: "v", Type: schema.ColumnTypeInteger},
		{Name: "ts", Type: schema.ColumnTypeTime},
	})
	require.NoError(t, err)
	return s
}

// seqAtSeconds builds a sequence with one row per timestamp, in seconds.
func seqAtSeconds(secs ...int64) sequence.Sequence {
	out := make(sequence.Sequence, 0, len(secs))
	for i, s := range secs {
		out = append(out, sequence.Row{
			value.NewInteger(int32(i)),
			value.NewTimeMillis(s * 1000),
		})
	}
	return out
}

func windowTimesSeconds(t *testing.T, w sequence.Sequence) []int64 {
	t.Helper()
	out := make([]int64, 0, len(w))
	for _, r := range w {
		ms, ok := r[1].AsLong()
		require.True(t, ok)
		out = append(out, ms/1000)
	}
	return out
}

func TestOverlapping_SegmentSpansFirstToLastRow(t *testing.T) {
	o, err := New(Options{
		TimeColumn:           "ts",
		WindowSize:           4,
		WindowSizeUnit:       Seconds,
		WindowSeparation:     2,
		WindowSeparationUnit: Seconds,
	}, windowSchema(t))
	require.NoError(t, err)

	windows := o.Segment(seqAtSeconds(0, 1, 2, 3, 4, 5, 6, 7, 8, 9))
	require.Len(t, windows, 6)

	expected := [][]int64{
		{0, 1},       // [-2,2)
		{0, 1, 2, 3}, // [0,4)
		{2, 3, 4, 5}, // [2,6)
		{4, 5, 6, 7}, // [4,8)
		{6, 7, 8, 9}, // [6,10)
		{8, 9},       // [8,12)
	}
	for i, w := range windows {
		assert.Equal(t, expected[i], windowTimesSeconds(t, w), "window %d", i)
	}
}

// A row exactly at a window's end boundary belongs to the next window.
func TestOverlapping_EndBoundaryExclusive(t *testing.T) {
	o, err := New(Options{
		TimeColumn:           "ts",
		WindowSize:           2,
		WindowSizeUnit:       Seconds,
		WindowSeparation:     2,
		WindowSeparationUnit: Seconds,
	}, windowSchema(t))
	require.NoError(t, err)

	windows := o.Segment(seqAtSeconds(0, 2))
	require.Len(t, windows, 2)
	assert.Equal(t, []int64{0}, windowTimesSeconds(t, windows[0]))
	assert.Equal(t, []int64{2}, windowTimesSeconds(t, windows[1]))
}

func TestOverlapping_ExcludeEmptyWindows(t *testing.T) {
	base := Options{
		TimeColumn:           "ts",
		WindowSize:           1,
		WindowSizeUnit:       Seconds,
		WindowSeparation:     1,
		WindowSeparationUnit: Seconds,
	}
	sparse := seqAtSeconds(0, 10)

	o, err := New(base, windowSchema(t))
	require.NoError(t, err)
	all := o.Segment(sparse)
	assert.Len(t, all, 11)

	base.ExcludeEmptyWindows = true
	o, err = New(base, windowSchema(t))
	require.NoError(t, err)
	nonEmpty := o.Segment(sparse)
	assert.Len(t, nonEmpty, 2)
	assert.Less(t, len(nonEmpty), len(all))
	for _, w := range nonEmpty {
		assert.NotEmpty(t, w)
	}
}

// With non-overlapping windows (size == separation), re-concatenating all
// window rows reproduces the input sequence in order.
func TestOverlapping_NonOverlappingRoundTrip(t *testing.T) {
	o, err := New(Options{
		TimeColumn:           "ts",
		WindowSize:           2,
		WindowSizeUnit:       Seconds,
		WindowSeparation:     2,
		WindowSeparationUnit: Seconds,
	}, windowSchema(t))
	require.NoError(t, err)

	input := seqAtSeconds(0, 1, 3, 4, 7, 8, 9)
	var flattened sequence.Sequence
	for _, w := range o.Segment(input) {
		flattened = append(flattened, w...)
	}
	assert.Equal(t, input, flattened)
}

func TestOverlapping_OffsetShiftsTheWindowGrid(t *testing.T) {
	input := sequence.Sequence{
		{value.NewInteger(0), value.NewTimeMillis(500)},
		{value.NewInteger(1), value.NewTimeMillis(1500)},
		{value.NewInteger(2), value.NewTimeMillis(2500)},
	}
	base := Options{
		TimeColumn:           "ts",
		WindowSize:           2,
		WindowSizeUnit:       Seconds,
		WindowSeparation:     1,
		WindowSeparationUnit: Seconds,
	}

	o, err := New(base, windowSchema(t))
	require.NoError(t, err)
	assert.Len(t, o.Segment(input), 3)

	// A 500ms offset pushes the last row across a grid line, so one more
	// window is produced at the tail.
	base.Offset = 500
	base.OffsetUnit = Milliseconds
	o, err = New(base, windowSchema(t))
	require.NoError(t, err)
	windows := o.Segment(input)
	require.Len(t, windows, 4)
	assert.Equal(t, sequence.Sequence{input[0], input[1]}, windows[0])
	assert.Equal(t, sequence.Sequence{input[1], input[2]}, windows[1])
	assert.Equal(t, sequence.Sequence{input[2]}, windows[2])
	assert.Equal(t, sequence.Sequence{input[2]}, windows[3])
}

func TestOverlapping_AppendsWindowBoundaryColumns(t *testing.T) {
	o, err := New(Options{
		TimeColumn:               "ts",
		WindowSize:               2,
		WindowSizeUnit:           Seconds,
		WindowSeparation:         2,
		WindowSeparationUnit:     Seconds,
		AddWindowStartTimeColumn: true,
		AddWindowEndTimeColumn:   true,
	}, windowSchema(t))
	require.NoError(t, err)

	assert.Equal(t, 4, o.OutputSchema().NumColumns())
	idx, err := o.OutputSchema().TimeColumnIndex(StartTimeColumnName)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	input := seqAtSeconds(1)
	windows := o.Segment(input)
	require.Len(t, windows, 1)
	require.Len(t, windows[0], 1)

	row := windows[0][0]
	require.Len(t, row, 4)
	start, _ := row[2].AsLong()
	end, _ := row[3].AsLong()
	assert.Equal(t, int64(0), start)
	assert.Equal(t, int64(2000), end)

	// the input row itself is untouched
	assert.Len(t, input[0], 2)
}

func TestOverlapping_EmptySequence(t *testing.T) {
	o, err := New(Options{
		TimeColumn:           "ts",
		WindowSize:           1,
		WindowSizeUnit:       Seconds,
		WindowSeparation:     1,
		WindowSeparationUnit: Seconds,
	}, windowSchema(t))
	require.NoError(t, err)
	assert.Empty(t, o.Segment(nil))
}

func TestNew_ConfigurationErrors(t *testing.T) {
	s := windowSchema(t)
	valid := Options{
		TimeColumn:           "ts",
		WindowSize:           1,
		WindowSizeUnit:       Seconds,
		WindowSeparation:     1,
		WindowSeparationUnit: Seconds,
	}

	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{name: "unknown time column", mutate: func(o *Options) { o.TimeColumn = "nope" }},
		{name: "non-time column", mutate: func(o *Options) { o.TimeColumn = "v" }},
		{name: "unset window size", mutate: func(o *Options) { o.WindowSize = 0 }},
		{name: "unset size unit", mutate: func(o *Options) { o.WindowSizeUnit = UnitUnspecified }},
		{name: "zero separation", mutate: func(o *Options) { o.WindowSeparation = 0 }},
		{name: "negative separation", mutate: func(o *Options) { o.WindowSeparation = -5 }},
		{name: "unset separation unit", mutate: func(o *Options) { o.WindowSeparationUnit = UnitUnspecified }},
		{name: "offset without unit", mutate: func(o *Options) { o.Offset = 10 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid
			tt.mutate(&opts)
			_, err := New(opts, s)
			assert.Error(t, err)
		})
	}

	// boundary column name collisions are caught at construction
	collide, err := schema.New([]schema.Column{
		{Name: StartTimeColumnName, Type: schema.ColumnTypeTime},
		{Name: "ts", Type: schema.ColumnTypeTime},
	})
	require.NoError(t, err)
	bad := valid
	bad.AddWindowStartTimeColumn = true
	_, err = New(bad, collide)
	assert.Error(t, err)
}

func TestOverlapping_String(t *testing.T) {
	o, err := New(Options{
		TimeColumn:           "ts",
		WindowSize:           12,
		WindowSizeUnit:       Hours,
		WindowSeparation:     1,
		WindowSeparationUnit: Hours,
	}, windowSchema(t))
	require.NoError(t, err)
	assert.Equal(t,
		`OverlappingTimeWindowFunction(column="ts",windowSize=12HOURS,windowSeparation=1HOURS,offset=0)`,
		o.String())

	o, err = New(Options{
		TimeColumn:               "ts",
		WindowSize:               1,
		WindowSizeUnit:           Days,
		WindowSeparation:         1,
		WindowSeparationUnit:     Hours,
		Offset:                   15,
		OffsetUnit:               Minutes,
		AddWindowStartTimeColumn: true,
		ExcludeEmptyWindows:      true,
	}, windowSchema(t))
	require.NoError(t, err)
	assert.Equal(t,
		`OverlappingTimeWindowFunction(column="ts",windowSize=1DAYS,windowSeparation=1HOURS,offset=15MINUTES,addWindowStartTimeColumn=true,excludeEmptyWindows=true)`,
		o.String())
}
