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

package convert

import (
	"github.com/gx-org/exprdag/catalog"
	"github.com/gx-org/exprdag/terminal"
	"github.com/pkg/errors"
)

// from returns a conversion function from a concrete terminal type.
// A terminal whose type does not match its kind is not part of the catalog.
func from[X terminal.Terminal, Y terminal.Terminal](f func(X) Y) Func {
	return func(t terminal.Terminal) (terminal.Terminal, error) {
		x, ok := t.(X)
		if !ok {
			return nil, errors.Wrapf(catalog.ErrUnknownType, "cannot convert %s terminal of type %T", t.Kind(), t)
		}
		return f(x), nil
	}
}

func toComplex(vals []float64) []complex128 {
	out := make([]complex128, len(vals))
	for i, v := range vals {
		out[i] = complex(v, 0)
	}
	return out
}

// Scalars

func realToComplexScalar(x *terminal.Scalar[float64]) *terminal.Scalar[complex128] {
	return terminal.NewComplex(complex(x.Value(), 0))
}

func intToRealScalar(x *terminal.Scalar[int64]) *terminal.Scalar[float64] {
	return terminal.NewReal(float64(x.Value()))
}

func intToRealMatrix(x *terminal.Scalar[int64]) *terminal.Dense[float64] {
	return terminal.NewDense(1, 1, []float64{float64(x.Value())})
}

func scalarToDense[T terminal.Number](x *terminal.Scalar[T]) *terminal.Dense[T] {
	return terminal.NewDense(1, 1, []T{x.Value()})
}

// Dense matrices

func realToComplexDense(m *terminal.Dense[float64]) *terminal.Dense[complex128] {
	return terminal.NewDense(m.Rows(), m.Cols(), toComplex(m.Data()))
}

func logicalToRealDense(m *terminal.Dense[bool]) *terminal.Dense[float64] {
	data := make([]float64, len(m.Data()))
	for i, v := range m.Data() {
		if v {
			data[i] = 1
		}
	}
	return terminal.NewDense(m.Rows(), m.Cols(), data)
}

// Diagonal matrices

func diagonalToDense[T terminal.Number](m *terminal.Diagonal[T]) *terminal.Dense[T] {
	return terminal.NewDense(m.Rows(), m.Cols(), m.ToDense())
}

func realToComplexDiagonal(m *terminal.Diagonal[float64]) *terminal.Diagonal[complex128] {
	return terminal.NewDiagonal(m.Rows(), m.Cols(), toComplex(m.Diag()))
}

// Sparse matrices

func sparseToDense[T terminal.Number](m *terminal.Sparse[T]) *terminal.Dense[T] {
	return terminal.NewDense(m.Rows(), m.Cols(), m.ToDense())
}

func realToComplexSparse(m *terminal.Sparse[float64]) *terminal.Sparse[complex128] {
	entries := make([]terminal.Entry[complex128], len(m.Entries()))
	for i, e := range m.Entries() {
		entries[i] = terminal.Entry[complex128]{Row: e.Row, Col: e.Col, Value: complex(e.Value, 0)}
	}
	return terminal.NewSparse(m.Rows(), m.Cols(), entries)
}
