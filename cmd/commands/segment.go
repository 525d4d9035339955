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

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tabflow/tabflow/pkg/dataset"
	"github.com/tabflow/tabflow/pkg/metrics"
	"github.com/tabflow/tabflow/pkg/sequence"
	"github.com/tabflow/tabflow/pkg/shared/logging"
	"github.com/tabflow/tabflow/pkg/window"
)

func NewSegmentCommand() *cobra.Command {
	var (
		inputPath      string
		configPath     string
		outputPath     string
		timeColumn     string
		windowSize     int64
		separation     int64
		offset         int64
		unitName       string
		addStartColumn bool
		addEndColumn   bool
		excludeEmpty   bool
	)

	command := &cobra.Command{
		Use:   "segment",
		Short: "Segment a time-ordered dataset into overlapping time windows",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.NewLogger().Named("segment")

			unit, err := window.ParseUnit(unitName)
			if err != nil {
				return err
			}
			cfg, err := dataset.LoadConfig(configPath)
			if err != nil {
				return err
			}
			sch, err := cfg.BuildSchema()
			if err != nil {
				return err
			}

			opts := window.Options{
				TimeColumn:               timeColumn,
				WindowSize:               windowSize,
				WindowSizeUnit:           unit,
				WindowSeparation:         separation,
				WindowSeparationUnit:     unit,
				Offset:                   offset,
				AddWindowStartTimeColumn: addStartColumn,
				AddWindowEndTimeColumn:   addEndColumn,
				ExcludeEmptyWindows:      excludeEmpty,
			}
			if offset != 0 {
				opts.OffsetUnit = unit
			}
			segmenter, err := window.New(opts, sch)
			if err != nil {
				return err
			}

			rows, err := dataset.ReadCSV(inputPath, sch)
			if err != nil {
				return err
			}
			seq := sequence.Sequence(rows)
			timeIdx, err := sch.TimeColumnIndex(timeColumn)
			if err != nil {
				return err
			}
			if !seq.IsSortedByColumn(timeIdx) {
				seq.SortByColumn(timeIdx)
			}

			log.Infow("Segmenting sequence", "windowFunction", segmenter.String(), "rows", len(seq))
			windows := segmenter.Segment(seq)
			metrics.WindowsEmittedCount.WithLabelValues(filepath.Base(inputPath)).Add(float64(len(windows)))

			data, err := json.MarshalIndent(renderWindows(windows), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal windows: %w", err)
			}
			if outputPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			} else if err := os.WriteFile(outputPath, data, 0o644); err != nil {
				return fmt.Errorf("failed to write windows to %q: %w", outputPath, err)
			}
			log.Infow("Segmentation complete", "windows", len(windows))
			return nil
		},
	}
	command.Flags().StringVarP(&inputPath, "input", "i", "", "Path of the CSV dataset to segment")
	command.Flags().StringVarP(&configPath, "config", "c", "", "Path of the dataset description file")
	command.Flags().StringVarP(&outputPath, "output", "o", "", "Path to write the JSON windows to (default stdout)")
	command.Flags().StringVar(&timeColumn, "time-column", "", "Name of the Time column ordering the sequence")
	command.Flags().Int64Var(&windowSize, "window-size", 0, "Size of each time window")
	command.Flags().Int64Var(&separation, "window-separation", 0, "Separation between consecutive window start times")
	command.Flags().Int64Var(&offset, "offset", 0, "Offset shifting the window grid")
	command.Flags().StringVar(&unitName, "unit", "seconds", "Time unit for size, separation and offset")
	command.Flags().BoolVar(&addStartColumn, "add-window-start-column", false, "Append each window's start time to its rows")
	command.Flags().BoolVar(&addEndColumn, "add-window-end-column", false, "Append each window's end time to its rows")
	command.Flags().BoolVar(&excludeEmpty, "exclude-empty-windows", false, "Drop windows containing no rows")
	_ = command.MarkFlagRequired("input")
	_ = command.MarkFlagRequired("config")
	_ = command.MarkFlagRequired("time-column")
	_ = command.MarkFlagRequired("window-size")
	_ = command.MarkFlagRequired("window-separation")
	return command
}

// renderWindows converts window sequences to their textual cell form for
// JSON output.
func renderWindows(windows []sequence.Sequence) [][][]string {
	out := make([][][]string, len(windows))
	for i, w := range windows {
		rows := make([][]string, len(w))
		for j, row := range w {
			cells := make([]string, len(row))
			for k, v := range row {
				cells[k] = v.String()
			}
			rows[j] = cells
		}
		out[i] = rows
	}
	return out
}
