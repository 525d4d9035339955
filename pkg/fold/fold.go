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

// Package fold runs monoid folds over in-memory data. Any accumulator
// whose merge is associative and commutative with an identity element can
// be driven sequentially, split across goroutines, or combined in a merge
// tree, and every strategy produces the same result. Distributed runtimes
// plug in the same Monoid without modification.
package fold

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Monoid is a binary associative combine with an identity element.
type Monoid[A any] interface {
	Identity() A
	Combine(a, b A) A
}

type monoidFuncs[A any] struct {
	identity func() A
	combine  func(a, b A) A
}

func (m monoidFuncs[A]) Identity() A { return m.identity() }

func (m monoidFuncs[A]) Combine(a, b A) A { return m.combine(a, b) }

// NewMonoid builds a Monoid from an identity constructor and a combine
// function. Combine must be associative; callers relying on arbitrary
// merge order also need it commutative.
func NewMonoid[A any](identity func() A, combine func(a, b A) A) Monoid[A] {
	return monoidFuncs[A]{identity: identity, combine: combine}
}

// Sequential folds all items left to right starting from the identity.
func Sequential[A, T any](m Monoid[A], add func(A, T) A, items []T) A {
	acc := m.Identity()
	for _, item := range items {
		acc = add(acc, item)
	}
	return acc
}

// TreeMerge combines partial results pairwise until one remains. For a
// lawful monoid the tree shape cannot change the result.
func TreeMerge[A any](m Monoid[A], parts []A) A {
	if len(parts) == 0 {
		return m.Identity()
	}
	for len(parts) > 1 {
		merged := make([]A, 0, (len(parts)+1)/2)
		for i := 0; i < len(parts); i += 2 {
			if i+1 < len(parts) {
				merged = append(merged, m.Combine(parts[i], parts[i+1]))
			} else {
				merged = append(merged, parts[i])
			}
		}
		parts = merged
	}
	return parts[0]
}

// Parallel folds the items in independent partitions, at most parallelism
// at a time, and tree-merges the partials. The fold itself is CPU-only;
// ctx only gates how much work starts once it is canceled.
func Parallel[A, T any](ctx context.Context, m Monoid[A], add func(A, T) A, items []T, parallelism int) (A, error) {
	if parallelism < 1 {
		parallelism = 1
	}
	if len(items) == 0 {
		return m.Identity(), nil
	}

	chunks := chunk(items, parallelism)
	parts := make([]A, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, c := range chunks {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parts[i] = Sequential(m, add, c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return m.Identity(), err
	}
	return TreeMerge(m, parts), nil
}

// chunk splits items into at most n contiguous slices of near-equal size.
func chunk[T any](items []T, n int) [][]T {
	if n > len(items) {
		n = len(items)
	}
	out := make([][]T, 0, n)
	size := (len(items) + n - 1) / n
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		out = append(out, items[start:end])
	}
	return out
}
