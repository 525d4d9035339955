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

// Package metrics holds the prometheus instruments incremented by the
// command-level runners. The pure analysis, reduce and window paths do
// no instrumentation themselves.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// LabelDataset is the name of the dataset a run operates on.
	LabelDataset = "dataset"
)

// RowsAnalyzedCount is used to indicate the number of rows folded into column counters
var RowsAnalyzedCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "analysis",
	Name:      "rows_total",
	Help:      "Total number of rows analyzed",
}, []string{LabelDataset})

// WindowsEmittedCount is used to indicate the number of windows produced by segmentation
var WindowsEmittedCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "window",
	Name:      "emitted_total",
	Help:      "Total number of windows emitted",
}, []string{LabelDataset})

// GroupsReducedCount is used to indicate the number of key groups reduced
var GroupsReducedCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "reduce",
	Name:      "groups_total",
	Help:      "Total number of key groups reduced",
}, []string{LabelDataset})
