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
	"sort"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tabflow/tabflow/pkg/dataset"
	"github.com/tabflow/tabflow/pkg/fold"
	"github.com/tabflow/tabflow/pkg/metrics"
	"github.com/tabflow/tabflow/pkg/reduce"
	"github.com/tabflow/tabflow/pkg/sequence"
	"github.com/tabflow/tabflow/pkg/shared/logging"
	"github.com/tabflow/tabflow/pkg/transform"
)

func NewReduceCommand() *cobra.Command {
	var (
		inputPath  string
		configPath string
		outputPath string
		keyColumn  string
		opNames    []string
		partitions int
		fillColumn string
		fillValue  string
	)

	command := &cobra.Command{
		Use:   "reduce",
		Short: "Reduce a dataset's rows into one row per key",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.NewLogger().Named("reduce")

			cfg, err := dataset.LoadConfig(configPath)
			if err != nil {
				return err
			}
			sch, err := cfg.BuildSchema()
			if err != nil {
				return err
			}
			ops := make([]reduce.Op, len(opNames))
			for i, name := range opNames {
				if ops[i], err = reduce.ParseOp(name); err != nil {
					return err
				}
			}
			reducer, err := reduce.NewReducer(sch, keyColumn, ops)
			if err != nil {
				return err
			}
			keyIdx, _ := sch.IndexOf(keyColumn)

			rows, err := dataset.ReadCSV(inputPath, sch)
			if err != nil {
				return err
			}
			seq := sequence.Sequence(rows)
			if fillColumn != "" {
				tr, err := transform.NewReplaceEmptyString(sch, fillColumn, fillValue)
				if err != nil {
					return err
				}
				log.Infow("Applying transform", "transform", tr.String())
				seq = transform.MapSequence(tr, seq)
			}

			groups := groupByKey(seq, keyIdx)
			log.Infow("Reducing dataset", "reducer", reducer.String(), "rows", len(seq), "groups", len(groups))

			partitionIDs := make([]string, partitions)
			for i := range partitionIDs {
				partitionIDs[i] = fmt.Sprintf("partition-%d", i)
			}
			shuffled := fold.NewShuffle(partitionIDs).ShuffleGroups(groups)

			reduced := make(map[string][]string, len(groups))
			for _, assigned := range shuffled {
				for _, g := range assigned {
					out := reducer.Reduce(g.Key, []sequence.Group{g})
					cells := make([]string, len(out.Rows[0]))
					for i, v := range out.Rows[0] {
						cells[i] = v.String()
					}
					reduced[g.Key] = cells
				}
			}
			metrics.GroupsReducedCount.WithLabelValues(filepath.Base(inputPath)).Add(float64(len(groups)))

			data, err := json.MarshalIndent(reduced, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal reduced groups: %w", err)
			}
			if outputPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			} else if err := os.WriteFile(outputPath, data, 0o644); err != nil {
				return fmt.Errorf("failed to write reduced groups to %q: %w", outputPath, err)
			}
			log.Infow("Reduce complete", "groups", len(groups))
			return nil
		},
	}
	command.Flags().StringVarP(&inputPath, "input", "i", "", "Path of the CSV dataset to reduce")
	command.Flags().StringVarP(&configPath, "config", "c", "", "Path of the dataset description file")
	command.Flags().StringVarP(&outputPath, "output", "o", "", "Path to write the JSON output to (default stdout)")
	command.Flags().StringVar(&keyColumn, "key-column", "", "Name of the column rows are grouped by")
	command.Flags().StringSliceVar(&opNames, "ops", nil, "Reduction op per column, in schema order")
	command.Flags().IntVar(&partitions, "partitions", 4, "Number of partitions to shuffle groups across")
	command.Flags().StringVar(&fillColumn, "fill-empty-column", "", "String column whose empty values are replaced before reducing")
	command.Flags().StringVar(&fillValue, "fill-empty-value", "", "Replacement text for --fill-empty-column")
	_ = command.MarkFlagRequired("input")
	_ = command.MarkFlagRequired("config")
	_ = command.MarkFlagRequired("key-column")
	_ = command.MarkFlagRequired("ops")
	return command
}

// groupByKey collapses the sequence into one group per distinct key text,
// ordered by key for stable output.
func groupByKey(seq sequence.Sequence, keyIdx int) []sequence.Group {
	byKey := make(map[string][]sequence.Row)
	for _, row := range seq {
		k := transform.ToText(row, keyIdx)
		byKey[k] = append(byKey[k], row)
	}
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	groups := make([]sequence.Group, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, sequence.Group{Key: k, Rows: byKey[k]})
	}
	return groups
}
