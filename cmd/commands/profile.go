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
	"runtime"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tabflow/tabflow/pkg/analysis"
	"github.com/tabflow/tabflow/pkg/dataset"
	"github.com/tabflow/tabflow/pkg/fold"
	"github.com/tabflow/tabflow/pkg/metrics"
	"github.com/tabflow/tabflow/pkg/shared/logging"
)

func NewProfileCommand() *cobra.Command {
	var (
		inputPath   string
		configPath  string
		outputPath  string
		parallelism int
	)

	command := &cobra.Command{
		Use:   "profile",
		Short: "Compute per-column quality and statistics summaries for a dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.NewLogger().Named("profile")
			runID := uuid.New().String()

			cfg, err := dataset.LoadConfig(configPath)
			if err != nil {
				return err
			}
			sch, err := cfg.BuildSchema()
			if err != nil {
				return err
			}
			rows, err := dataset.ReadCSV(inputPath, sch)
			if err != nil {
				return err
			}
			log.Infow("Profiling dataset", "run", runID, "input", inputPath, "rows", len(rows), "columns", sch.NumColumns())

			analyzer := analysis.NewAnalyzer(sch)
			m := fold.NewMonoid(analyzer.Identity, analyzer.MergeStates)
			state, err := fold.Parallel(cmd.Context(), m, analyzer.AddRow, rows, parallelism)
			if err != nil {
				return err
			}
			metrics.RowsAnalyzedCount.WithLabelValues(filepath.Base(inputPath)).Add(float64(len(rows)))

			data, err := json.MarshalIndent(analyzer.Report(state), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal report: %w", err)
			}
			if outputPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			} else if err := os.WriteFile(outputPath, data, 0o644); err != nil {
				return fmt.Errorf("failed to write report to %q: %w", outputPath, err)
			}
			log.Infow("Profile complete", "run", runID)
			return nil
		},
	}
	command.Flags().StringVarP(&inputPath, "input", "i", "", "Path of the CSV dataset to profile")
	command.Flags().StringVarP(&configPath, "config", "c", "", "Path of the dataset description file")
	command.Flags().StringVarP(&outputPath, "output", "o", "", "Path to write the JSON report to (default stdout)")
	command.Flags().IntVar(&parallelism, "parallelism", runtime.NumCPU(), "Number of partitions to fold in parallel")
	_ = command.MarkFlagRequired("input")
	_ = command.MarkFlagRequired("config")
	return command
}
