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

// Package dataset loads dataset descriptions and CSV data for the
// command-line runners. Cells that fail to parse as their column's kind
// are kept as raw text so the quality counters can classify them, rather
// than failing the read.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/tabflow/tabflow/pkg/schema"
	"github.com/tabflow/tabflow/pkg/sequence"
	"github.com/tabflow/tabflow/pkg/value"
)

// ColumnConfig describes one column of a dataset file.
type ColumnConfig struct {
	Name     string `mapstructure:"name"`
	Type     string `mapstructure:"type"`
	Min      *int64 `mapstructure:"min"`
	Max      *int64 `mapstructure:"max"`
	TimeZone string `mapstructure:"timezone"`
}

// Config is a dataset description, typically loaded from a YAML file.
type Config struct {
	Columns []ColumnConfig `mapstructure:"columns"`
}

// LoadConfig reads a dataset description file.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read dataset config %q: %w", path, err)
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dataset config %q: %w", path, err)
	}
	if len(cfg.Columns) == 0 {
		return nil, fmt.Errorf("dataset config %q defines no columns", path)
	}
	return cfg, nil
}

// BuildSchema converts the configuration into a validated schema.
func (c *Config) BuildSchema() (*schema.Schema, error) {
	columns := make([]schema.Column, 0, len(c.Columns))
	for _, cc := range c.Columns {
		col := schema.Column{Name: cc.Name}
		switch cc.Type {
		case "integer":
			col.Type = schema.ColumnTypeInteger
		case "long":
			col.Type = schema.ColumnTypeLong
		case "double":
			col.Type = schema.ColumnTypeDouble
		case "string":
			col.Type = schema.ColumnTypeString
		case "categorical":
			col.Type = schema.ColumnTypeCategorical
		case "time":
			col.Type = schema.ColumnTypeTime
		default:
			return nil, fmt.Errorf("column %q has unknown type %q", cc.Name, cc.Type)
		}
		if cc.Min != nil || cc.Max != nil {
			r := &schema.IntegerRange{}
			if cc.Min != nil {
				r.Min = *cc.Min
			}
			if cc.Max != nil {
				r.Max = *cc.Max
			}
			col.Range = r
		}
		if cc.TimeZone != "" {
			loc, err := time.LoadLocation(cc.TimeZone)
			if err != nil {
				return nil, fmt.Errorf("column %q has invalid timezone %q: %w", cc.Name, cc.TimeZone, err)
			}
			col.TimeZone = loc
		}
		columns = append(columns, col)
	}
	return schema.New(columns)
}

// ReadCSV reads all rows of a CSV file against the schema. A leading
// header row matching the schema's column names is skipped. Every record
// must have exactly one field per column.
func ReadCSV(path string, s *schema.Schema) ([]sequence.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %q: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %q: %w", path, err)
	}
	if len(records) > 0 && isHeader(records[0], s) {
		records = records[1:]
	}

	rows := make([]sequence.Row, 0, len(records))
	for i, record := range records {
		if len(record) != s.NumColumns() {
			return nil, fmt.Errorf("record %d has %d fields, schema has %d columns", i, len(record), s.NumColumns())
		}
		row := make(sequence.Row, len(record))
		for j, cell := range record {
			v, err := value.FromText(cell, s.Column(j).Type.ValueKind())
			if err != nil {
				// keep the raw text; classification decides what it is
				v = value.NewString(cell)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isHeader(record []string, s *schema.Schema) bool {
	if len(record) != s.NumColumns() {
		return false
	}
	for i, cell := range record {
		if cell != s.Column(i).Name {
			return false
		}
	}
	return true
}
