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

// Dense is a matrix storing all its elements in row-major order.
type Dense[T Elem] struct {
	kind       catalog.Kind
	rows, cols int
	data       []T
	freed      bool
}

var _ Terminal = (*Dense[float64])(nil)

// NewDense returns a dense matrix given its values in row-major order.
// The matrix owns the slice.
func NewDense[T Elem](rows, cols int, data []T) *Dense[T] {
	checkShape(rows, cols)
	if len(data) != rows*cols {
		panic(fmt.Sprintf("mismatch between the number of values (=%d) and the number of elements (=%d) in shape %dx%d", len(data), rows*cols, rows, cols))
	}
	return &Dense[T]{
		kind: kindFor[T](catalog.Dense),
		rows: rows,
		cols: cols,
		data: data,
	}
}

// ZeroDense returns a dense matrix filled with zeros.
func ZeroDense[T Elem](rows, cols int) *Dense[T] {
	checkShape(rows, cols)
	return NewDense(rows, cols, make([]T, rows*cols))
}

// Kind of the matrix.
func (m *Dense[T]) Kind() catalog.Kind {
	return m.kind
}

// Rows returns the number of rows.
func (m *Dense[T]) Rows() int {
	return m.rows
}

// Cols returns the number of columns.
func (m *Dense[T]) Cols() int {
	return m.cols
}

// Data returns the values of the matrix in row-major order.
func (m *Dense[T]) Data() []T {
	return m.data
}

// At returns the element at row i and column j.
func (m *Dense[T]) At(i, j int) T {
	return m.data[i*m.cols+j]
}

// Set the element at row i and column j.
func (m *Dense[T]) Set(i, j int, v T) {
	m.data[i*m.cols+j] = v
}

// Clone the matrix.
func (m *Dense[T]) Clone() Terminal {
	return &Dense[T]{
		kind: m.kind,
		rows: m.rows,
		cols: m.cols,
		data: append([]T(nil), m.data...),
	}
}

// Free the matrix.
func (m *Dense[T]) Free() {
	m.data = nil
	m.freed = true
}

// Freed returns true if the matrix has been freed.
func (m *Dense[T]) Freed() bool {
	return m.freed
}

func (m *Dense[T]) String() string {
	if m.freed {
		return freedString(m.kind)
	}
	return fmtarray.Sprint(m.kind.String(), m.data, m.rows, m.cols, false)
}
