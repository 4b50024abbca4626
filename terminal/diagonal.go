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
	"fmt"

	"github.com/gx-org/exprdag/catalog"
	"github.com/gx-org/exprdag/fmt/fmtarray"
)

// Diagonal is a matrix storing only its main diagonal.
// The diagonal has min(rows, cols) elements.
type Diagonal[T Number] struct {
	kind       catalog.Kind
	rows, cols int
	diag       []T
	freed      bool
}

var _ Terminal = (*Diagonal[float64])(nil)

// NewDiagonal returns a diagonal matrix. The matrix owns the slice.
func NewDiagonal[T Number](rows, cols int, diag []T) *Diagonal[T] {
	checkShape(rows, cols)
	if len(diag) != min(rows, cols) {
		panic(fmt.Sprintf("diagonal of a %dx%d matrix has %d elements, got %d", rows, cols, min(rows, cols), len(diag)))
	}
	return &Diagonal[T]{
		kind: kindFor[T](catalog.Diagonal),
		rows: rows,
		cols: cols,
		diag: diag,
	}
}

// Kind of the matrix.
func (m *Diagonal[T]) Kind() catalog.Kind {
	return m.kind
}

// Rows returns the number of rows.
func (m *Diagonal[T]) Rows() int {
	return m.rows
}

// Cols returns the number of columns.
func (m *Diagonal[T]) Cols() int {
	return m.cols
}

// Diag returns the elements of the main diagonal.
func (m *Diagonal[T]) Diag() []T {
	return m.diag
}

// At returns the element at row i and column j.
func (m *Diagonal[T]) At(i, j int) T {
	if i != j {
		var zero T
		return zero
	}
	return m.diag[i]
}

// ToDense materialises the off-diagonal zeros.
func (m *Diagonal[T]) ToDense() []T {
	data := make([]T, m.rows*m.cols)
	for i, v := range m.diag {
		data[i*m.cols+i] = v
	}
	return data
}

// Clone the matrix.
func (m *Diagonal[T]) Clone() Terminal {
	return &Diagonal[T]{
		kind: m.kind,
		rows: m.rows,
		cols: m.cols,
		diag: append([]T(nil), m.diag...),
	}
}

// Free the matrix.
func (m *Diagonal[T]) Free() {
	m.diag = nil
	m.freed = true
}

// Freed returns true if the matrix has been freed.
func (m *Diagonal[T]) Freed() bool {
	return m.freed
}

func (m *Diagonal[T]) String() string {
	if m.freed {
		return freedString(m.kind)
	}
	return fmtarray.Sprint(m.kind.String(), m.ToDense(), m.rows, m.cols, false)
}
