// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package terminal

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/gx-org/exprdag/catalog"
	"github.com/gx-org/exprdag/fmt/fmtarray"
)

type (
	// Entry is a non-zero element of a sparse matrix.
	Entry[T Number] struct {
		Row, Col int
		Value    T
	}

	// Sparse is a matrix storing only its non-zero elements,
	// sorted by row then by column.
	Sparse[T Number] struct {
		kind       catalog.Kind
		rows, cols int
		entries    []Entry[T]
		freed      bool
	}
)

var _ Terminal = (*Sparse[float64])(nil)

func compareEntries[T Number](a, b Entry[T]) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	return cmp.Compare(a.Col, b.Col)
}

// NewSparse returns a sparse matrix given its entries.
// Entries are sorted, zeros are dropped, and the last of duplicated entries wins.
func NewSparse[T Number](rows, cols int, entries []Entry[T]) *Sparse[T] {
	checkShape(rows, cols)
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, compareEntries[T])
	var zero T
	kept := sorted[:0]
	for _, e := range sorted {
		if e.Row < 0 || e.Row >= rows || e.Col < 0 || e.Col >= cols {
			panic(fmt.Sprintf("entry (%d,%d) out of a %dx%d matrix", e.Row, e.Col, rows, cols))
		}
		if n := len(kept); n > 0 && compareEntries(kept[n-1], e) == 0 {
			kept = kept[:n-1]
		}
		kept = append(kept, e)
	}
	nonZero := kept[:0]
	for _, e := range kept {
		if e.Value != zero {
			nonZero = append(nonZero, e)
		}
	}
	return &Sparse[T]{
		kind:    kindFor[T](catalog.Sparse),
		rows:    rows,
		cols:    cols,
		entries: nonZero,
	}
}

// Kind of the matrix.
func (m *Sparse[T]) Kind() catalog.Kind {
	return m.kind
}

// Rows returns the number of rows.
func (m *Sparse[T]) Rows() int {
	return m.rows
}

// Cols returns the number of columns.
func (m *Sparse[T]) Cols() int {
	return m.cols
}

// Entries returns the non-zero entries of the matrix.
func (m *Sparse[T]) Entries() []Entry[T] {
	return m.entries
}

// At returns the element at row i and column j.
func (m *Sparse[T]) At(i, j int) T {
	pos, found := slices.BinarySearchFunc(m.entries, Entry[T]{Row: i, Col: j}, compareEntries[T])
	if !found {
		var zero T
		return zero
	}
	return m.entries[pos].Value
}

// ToDense materialises all the zeros of the matrix.
func (m *Sparse[T]) ToDense() []T {
	data := make([]T, m.rows*m.cols)
	for _, e := range m.entries {
		data[e.Row*m.cols+e.Col] = e.Value
	}
	return data
}

// Clone the matrix.
func (m *Sparse[T]) Clone() Terminal {
	return &Sparse[T]{
		kind:    m.kind,
		rows:    m.rows,
		cols:    m.cols,
		entries: slices.Clone(m.entries),
	}
}

// Free the matrix.
func (m *Sparse[T]) Free() {
	m.entries = nil
	m.freed = true
}

// Freed returns true if the matrix has been freed.
func (m *Sparse[T]) Freed() bool {
	return m.freed
}

func (m *Sparse[T]) String() string {
	if m.freed {
		return freedString(m.kind)
	}
	return fmtarray.Sprint(m.kind.String(), m.ToDense(), m.rows, m.cols, false)
}
