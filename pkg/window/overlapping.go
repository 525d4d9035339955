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

// Package window segments a time-ordered sequence of rows into possibly
// overlapping time windows. The overlap allows configurations such as a
// one-day window produced every hour. Windows are aligned to a grid of
// separation-spaced boundaries, optionally shifted by an offset.
package window

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/tabflow/tabflow/pkg/schema"
	"github.com/tabflow/tabflow/pkg/sequence"
	"github.com/tabflow/tabflow/pkg/value"
)

// Names of the columns appended to windowed rows when requested.
const (
	StartTimeColumnName = "windowStartTime"
	EndTimeColumnName   = "windowEndTime"
)

// Options configures an overlapping time-window segmenter. WindowSize and
// WindowSeparation are required; Offset shifts the window grid and may be
// omitted. The three flags control appending window boundary columns to
// every windowed row and dropping windows that contain no rows.
type Options struct {
	TimeColumn               string
	WindowSize               int64
	WindowSizeUnit           TimeUnit
	WindowSeparation         int64
	WindowSeparationUnit     TimeUnit
	Offset                   int64
	OffsetUnit               TimeUnit
	AddWindowStartTimeColumn bool
	AddWindowEndTimeColumn   bool
	ExcludeEmptyWindows      bool
}

// Overlapping segments sequences into overlapping time windows. It is a
// pure function of its configuration: Segment can be re-run on the same
// input and produces identical output.
type Overlapping struct {
	opts    Options
	schema  *schema.Schema
	out     *schema.Schema
	timeIdx int

	sizeMs   int64
	sepMs    int64
	offsetMs int64
}

// New validates the options against the schema and returns the segmenter.
// All validation happens here, before any row is processed: an unresolved
// or non-Time time column, an unset size or separation, or a non-positive
// separation are configuration errors.
func New(opts Options, s *schema.Schema) (*Overlapping, error) {
	var errs error

	timeIdx, err := s.TimeColumnIndex(opts.TimeColumn)
	if err != nil {
		errs = multierr.Append(errs, err)
	}
	if opts.WindowSize <= 0 || opts.WindowSizeUnit == UnitUnspecified {
		errs = multierr.Append(errs, fmt.Errorf("window size and/or unit not set"))
	}
	if opts.WindowSeparationUnit == UnitUnspecified {
		errs = multierr.Append(errs, fmt.Errorf("window separation unit not set"))
	} else if opts.WindowSeparation <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("window separation must be positive, got %d", opts.WindowSeparation))
	}
	if opts.Offset != 0 && opts.OffsetUnit == UnitUnspecified {
		errs = multierr.Append(errs, fmt.Errorf("offset unit not set"))
	}
	if errs != nil {
		return nil, errs
	}

	out := s
	var extra []schema.Column
	if opts.AddWindowStartTimeColumn {
		extra = append(extra, schema.Column{Name: StartTimeColumnName, Type: schema.ColumnTypeTime})
	}
	if opts.AddWindowEndTimeColumn {
		extra = append(extra, schema.Column{Name: EndTimeColumnName, Type: schema.ColumnTypeTime})
	}
	if len(extra) > 0 {
		if out, err = s.WithColumns(extra...); err != nil {
			return nil, err
		}
	}

	var offsetMs int64
	if opts.Offset != 0 {
		offsetMs = opts.OffsetUnit.Millis(opts.Offset)
	}

	return &Overlapping{
		opts:     opts,
		schema:   s,
		out:      out,
		timeIdx:  timeIdx,
		sizeMs:   opts.WindowSizeUnit.Millis(opts.WindowSize),
		sepMs:    opts.WindowSeparationUnit.Millis(opts.WindowSeparation),
		offsetMs: offsetMs,
	}, nil
}

// InputSchema returns the schema the segmenter was bound to.
func (o *Overlapping) InputSchema() *schema.Schema {
	return o.schema
}

// OutputSchema returns the input schema extended with the window boundary
// columns, when those are requested.
func (o *Overlapping) OutputSchema() *schema.Schema {
	return o.out
}

// Segment partitions one time-ordered sequence into window sequences,
// ordered by window start time. The input must already be sorted ascending
// by the time column; it is never mutated. Each window covers the
// half-open interval [start, start+size): a row exactly at a window's end
// boundary belongs to the next window, not that one.
func (o *Overlapping) Segment(seq sequence.Sequence) []sequence.Sequence {
	if len(seq) == 0 {
		return nil
	}

	rowTime := func(r sequence.Row) int64 {
		t, _ := r[o.timeIdx].AsLong()
		return t
	}

	// The first window is the earliest one whose coverage interval
	// includes the first row: the window that ends one separation past
	// the grid line at or before the first row's time.
	firstPlusOffset := rowTime(seq[0]) + o.offsetMs
	windowBorder := firstPlusOffset - firstPlusOffset%o.sepMs

	// The last window is the one that starts at the grid line at or
	// before the last row's time.
	lastPlusOffset := rowTime(seq[len(seq)-1]) + o.offsetMs
	lastWindowStartTime := lastPlusOffset - lastPlusOffset%o.sepMs

	currentWindowStartTime := windowBorder + o.sepMs - o.sizeMs
	nextWindowStartTime := currentWindowStartTime + o.sepMs
	currentWindowEndTime := currentWindowStartTime + o.sizeMs

	var out []sequence.Sequence
	currentWindow := sequence.Sequence{}

	// Single forward cursor: currentWindowStartIdx tracks the first row
	// of the next window so each sweep resumes there instead of
	// rescanning the whole prefix. Rows are revisited across windows
	// only when windows overlap (size > separation).
	currentWindowStartIdx := 0
	foundIndexForNextWindowStart := false

	for currentWindowStartTime <= lastWindowStartTime {
		for i := currentWindowStartIdx; i < len(seq); i++ {
			row := seq[i]
			currentTime := rowTime(row)

			if !foundIndexForNextWindowStart && currentTime >= nextWindowStartTime {
				foundIndexForNextWindowStart = true
				currentWindowStartIdx = i
			}

			nextWindow := false
			if currentTime < currentWindowEndTime {
				currentWindow = append(currentWindow, o.windowedRow(row, currentWindowStartTime))
			} else {
				nextWindow = true
			}

			// The end of the sequence also closes the window, even when
			// the last row was just placed into it.
			if i == len(seq)-1 {
				nextWindow = true
			}

			if nextWindow {
				if !(o.opts.ExcludeEmptyWindows && len(currentWindow) == 0) {
					out = append(out, currentWindow)
				}
				currentWindow = sequence.Sequence{}
				currentWindowStartTime += o.sepMs
				currentWindowEndTime = currentWindowStartTime + o.sizeMs
				nextWindowStartTime = currentWindowStartTime + o.sepMs
				foundIndexForNextWindowStart = false
				break
			}
		}
	}

	return out
}

// windowedRow returns the row to place into a window: the row itself, or a
// copy with the window's boundary times appended as trailing columns.
func (o *Overlapping) windowedRow(row sequence.Row, windowStart int64) sequence.Row {
	if !o.opts.AddWindowStartTimeColumn && !o.opts.AddWindowEndTimeColumn {
		return row
	}
	out := row.Clone(2)
	if o.opts.AddWindowStartTimeColumn {
		out = append(out, value.NewTimeMillis(windowStart))
	}
	if o.opts.AddWindowEndTimeColumn {
		out = append(out, value.NewTimeMillis(windowStart+o.sizeMs))
	}
	return out
}

// String renders the stable description used in logs and debugging.
func (o *Overlapping) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "OverlappingTimeWindowFunction(column=%q,windowSize=%d%v,windowSeparation=%d%v,offset=%d",
		o.opts.TimeColumn, o.opts.WindowSize, o.opts.WindowSizeUnit,
		o.opts.WindowSeparation, o.opts.WindowSeparationUnit, o.opts.Offset)
	if o.opts.Offset != 0 && o.opts.OffsetUnit != UnitUnspecified {
		fmt.Fprintf(&b, "%v", o.opts.OffsetUnit)
	}
	if o.opts.AddWindowStartTimeColumn {
		b.WriteString(",addWindowStartTimeColumn=true")
	}
	if o.opts.AddWindowEndTimeColumn {
		b.WriteString(",addWindowEndTimeColumn=true")
	}
	if o.opts.ExcludeEmptyWindows {
		b.WriteString(",excludeEmptyWindows=true")
	}
	b.WriteString(")")
	return b.String()
}
