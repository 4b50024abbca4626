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

package runner

import (
	"math"
	"math/cmplx"

	"github.com/gx-org/exprdag/catalog"
	"github.com/gx-org/exprdag/terminal"
	"github.com/pkg/errors"
)

// Scalars

func mapScalar[T, U terminal.Elem](f func(T) U) func(*terminal.Scalar[T]) (terminal.Terminal, error) {
	return func(x *terminal.Scalar[T]) (terminal.Terminal, error) {
		return terminal.NewScalar(f(x.Value())), nil
	}
}

func zipScalar[T, U terminal.Elem](f func(T, T) U) func(x, y *terminal.Scalar[T]) (terminal.Terminal, error) {
	return func(x, y *terminal.Scalar[T]) (terminal.Terminal, error) {
		return terminal.NewScalar(f(x.Value(), y.Value())), nil
	}
}

// compareScalar returns a 1x1 logical matrix since the catalog has no logical scalar.
func compareScalar[T terminal.Elem](f func(T, T) bool) func(x, y *terminal.Scalar[T]) (terminal.Terminal, error) {
	return func(x, y *terminal.Scalar[T]) (terminal.Terminal, error) {
		return terminal.NewDense(1, 1, []bool{f(x.Value(), y.Value())}), nil
	}
}

func cloneScalar[T terminal.Elem](x *terminal.Scalar[T]) (terminal.Terminal, error) {
	return x.Clone(), nil
}

// Dense matrices

func mapDense[T, U terminal.Elem](f func(T) U) func(*terminal.Dense[T]) (terminal.Terminal, error) {
	return func(x *terminal.Dense[T]) (terminal.Terminal, error) {
		z := make([]U, len(x.Data()))
		for i, xi := range x.Data() {
			z[i] = f(xi)
		}
		return terminal.NewDense(x.Rows(), x.Cols(), z), nil
	}
}

// zipDense applies f element-wise. Both operands have the same shape or
// one of them has a single element and acts as a scalar.
func zipDense[T, U terminal.Elem](op catalog.Kind, f func(T, T) U) func(x, y *terminal.Dense[T]) (terminal.Terminal, error) {
	return func(x, y *terminal.Dense[T]) (terminal.Terminal, error) {
		xs, ys := x.Data(), y.Data()
		switch {
		case terminal.SameShape(x, y):
			z := make([]U, len(xs))
			for i, xi := range xs {
				z[i] = f(xi, ys[i])
			}
			return terminal.NewDense(x.Rows(), x.Cols(), z), nil
		case terminal.IsUnit(x):
			z := make([]U, len(ys))
			for i, yi := range ys {
				z[i] = f(xs[0], yi)
			}
			return terminal.NewDense(y.Rows(), y.Cols(), z), nil
		case terminal.IsUnit(y):
			z := make([]U, len(xs))
			for i, xi := range xs {
				z[i] = f(xi, ys[0])
			}
			return terminal.NewDense(x.Rows(), x.Cols(), z), nil
		}
		return nil, shapeMismatch(op, x, y)
	}
}

func cloneDense[T terminal.Elem](x *terminal.Dense[T]) (terminal.Terminal, error) {
	return x.Clone(), nil
}

func transposeDense[T terminal.Elem](x *terminal.Dense[T]) (terminal.Terminal, error) {
	rows, cols := x.Rows(), x.Cols()
	z := make([]T, rows*cols)
	for i := range rows {
		for j := range cols {
			z[j*rows+i] = x.At(i, j)
		}
	}
	return terminal.NewDense(cols, rows, z), nil
}

// Diagonal matrices

func mapDiagonal[T terminal.Number](f func(T) T) func(*terminal.Diagonal[T]) (terminal.Terminal, error) {
	return func(x *terminal.Diagonal[T]) (terminal.Terminal, error) {
		z := make([]T, len(x.Diag()))
		for i, xi := range x.Diag() {
			z[i] = f(xi)
		}
		return terminal.NewDiagonal(x.Rows(), x.Cols(), z), nil
	}
}

// zipDiagonal applies f to the diagonals of two matrices of the same shape.
// f must map two zeros to zero.
func zipDiagonal[T terminal.Number](op catalog.Kind, f func(T, T) T) func(x, y *terminal.Diagonal[T]) (terminal.Terminal, error) {
	return func(x, y *terminal.Diagonal[T]) (terminal.Terminal, error) {
		if !terminal.SameShape(x, y) {
			return nil, shapeMismatch(op, x, y)
		}
		z := make([]T, len(x.Diag()))
		for i, xi := range x.Diag() {
			z[i] = f(xi, y.Diag()[i])
		}
		return terminal.NewDiagonal(x.Rows(), x.Cols(), z), nil
	}
}

func transposeDiagonal[T terminal.Number](x *terminal.Diagonal[T]) (terminal.Terminal, error) {
	return terminal.NewDiagonal(x.Cols(), x.Rows(), append([]T(nil), x.Diag()...)), nil
}

func cloneDiagonal[T terminal.Number](x *terminal.Diagonal[T]) (terminal.Terminal, error) {
	return x.Clone(), nil
}

// Sparse matrices

func mapSparse[T terminal.Number](f func(T) T) func(*terminal.Sparse[T]) (terminal.Terminal, error) {
	return func(x *terminal.Sparse[T]) (terminal.Terminal, error) {
		entries := make([]terminal.Entry[T], len(x.Entries()))
		for i, e := range x.Entries() {
			entries[i] = terminal.Entry[T]{Row: e.Row, Col: e.Col, Value: f(e.Value)}
		}
		return terminal.NewSparse(x.Rows(), x.Cols(), entries), nil
	}
}

// zipSparse applies f to the union of the entries of two matrices of the same shape.
// f must map two zeros to zero.
func zipSparse[T terminal.Number](op catalog.Kind, f func(T, T) T) func(x, y *terminal.Sparse[T]) (terminal.Terminal, error) {
	return func(x, y *terminal.Sparse[T]) (terminal.Terminal, error) {
		if !terminal.SameShape(x, y) {
			return nil, shapeMismatch(op, x, y)
		}
		var zero T
		xs, ys := x.Entries(), y.Entries()
		var entries []terminal.Entry[T]
		i, j := 0, 0
		for i < len(xs) || j < len(ys) {
			var e terminal.Entry[T]
			switch {
			case j >= len(ys) || (i < len(xs) && before(xs[i], ys[j])):
				e = terminal.Entry[T]{Row: xs[i].Row, Col: xs[i].Col, Value: f(xs[i].Value, zero)}
				i++
			case i >= len(xs) || before(ys[j], xs[i]):
				e = terminal.Entry[T]{Row: ys[j].Row, Col: ys[j].Col, Value: f(zero, ys[j].Value)}
				j++
			default:
				e = terminal.Entry[T]{Row: xs[i].Row, Col: xs[i].Col, Value: f(xs[i].Value, ys[j].Value)}
				i++
				j++
			}
			entries = append(entries, e)
		}
		return terminal.NewSparse(x.Rows(), x.Cols(), entries), nil
	}
}

func before[T terminal.Number](a, b terminal.Entry[T]) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

func transposeSparse[T terminal.Number](x *terminal.Sparse[T]) (terminal.Terminal, error) {
	entries := make([]terminal.Entry[T], len(x.Entries()))
	for i, e := range x.Entries() {
		entries[i] = terminal.Entry[T]{Row: e.Col, Col: e.Row, Value: e.Value}
	}
	return terminal.NewSparse(x.Cols(), x.Rows(), entries), nil
}

// Element functions

func add[T terminal.Number](a, b T) T { return a + b }

func sub[T terminal.Number](a, b T) T { return a - b }

func mul[T terminal.Number](a, b T) T { return a * b }

func quo[T terminal.Field](a, b T) T { return a / b }

// leftQuo returns the solution x of a*x = b.
func leftQuo[T terminal.Field](a, b T) T { return b / a }

func neg[T terminal.Number](a T) T { return -a }

func equal[T terminal.Elem](a, b T) bool { return a == b }

func absInt(a int64) int64 {
	if a < 0 {
		return -a
	}
	return a
}

// magnitude returns the absolute value of a field element.
func magnitude[T terminal.Field](v T) float64 {
	switch x := any(v).(type) {
	case float64:
		return math.Abs(x)
	case complex128:
		return cmplx.Abs(x)
	case float32:
		return math.Abs(float64(x))
	case complex64:
		return cmplx.Abs(complex128(x))
	}
	return math.NaN()
}

func shapeMismatch(op catalog.Kind, x, y terminal.Terminal) error {
	return errors.Wrapf(ErrShapeMismatch, "%s: %s[%d][%d] and %s[%d][%d]", op, x.Kind(), x.Rows(), x.Cols(), y.Kind(), y.Rows(), y.Cols())
}
