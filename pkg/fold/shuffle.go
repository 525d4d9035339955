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

package fold

import (
	"github.com/cespare/xxhash/v2"

	"github.com/tabflow/tabflow/pkg/sequence"
)

// Shuffle spreads keyed row groups across a fixed set of partitions.
// Assignment is a pure function of the key, so every group for a key
// lands in the same partition no matter which worker shuffles it.
type Shuffle struct {
	partitionIDs []string
}

// NewShuffle accepts the list of partition identifiers groups are
// assigned to.
func NewShuffle(partitionIDs []string) *Shuffle {
	return &Shuffle{partitionIDs: partitionIDs}
}

// ShuffleGroups returns the mapping of partition id to the groups
// assigned to it.
func (s *Shuffle) ShuffleGroups(groups []sequence.Group) map[string][]sequence.Group {
	count := uint64(len(s.partitionIDs))

	// hash of the group key decides which partition it belongs to
	out := make(map[string][]sequence.Group)
	for _, g := range groups {
		id := s.partitionIDs[xxhash.Sum64String(g.Key)%count]
		out[id] = append(out[id], g)
	}
	return out
}
