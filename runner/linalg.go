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
	"cmp"
	"math"
	"slices"

	"github.com/gx-org/exprdag/catalog"
	"github.com/gx-org/exprdag/terminal"
	"github.com/pkg/errors"
)

// Matrix product

// matMulDense multiplies complex matrices. Real matrices are multiplied
// by matMulReal.
func matMulDense[T terminal.Number](x, y *terminal.Dense[T]) (terminal.Terminal, error) {
	if terminal.IsUnit(x) || terminal.IsUnit(y) {
		return zipDense[T, T](catalog.MatMul, mul[T])(x, y)
	}
	if x.Cols() != y.Rows() {
		return nil, shapeMismatch(catalog.MatMul, x, y)
	}
	n, k, m := x.Rows(), x.Cols(), y.Cols()
	z := make([]T, n*m)
	for i := range n {
		for l := range k {
			xil := x.At(i, l)
			if xil == 0 {
				continue
			}
			for j := range m {
				z[i*m+j] += xil * y.At(l, j)
			}
		}
	}
	return terminal.NewDense(n, m, z), nil
}

// matMulDiagonalDense scales the rows of y by the diagonal of x.
func matMulDiagonalDense[T terminal.Number](x *terminal.Diagonal[T], y *terminal.Dense[T]) (terminal.Terminal, error) {
	if x.Cols() != y.Rows() {
		return nil, shapeMismatch(catalog.MatMul, x, y)
	}
	n, m := x.Rows(), y.Cols()
	z := make([]T, n*m)
	for i, d := range x.Diag() {
		for j := range m {
			z[i*m+j] = d * y.At(i, j)
		}
	}
	return terminal.NewDense(n, m, z), nil
}

// Inverse

func invertScalar[T terminal.Field](x *terminal.Scalar[T]) (terminal.Terminal, error) {
	if x.Value() == 0 {
		return nil, errors.Wrapf(ErrSingular, "inverse of %s", x.Kind())
	}
	return terminal.NewScalar(1 / x.Value()), nil
}

func invertDiagonal[T terminal.Field](x *terminal.Diagonal[T]) (terminal.Terminal, error) {
	if x.Rows() != x.Cols() {
		return nil, errors.Wrapf(ErrShapeMismatch, "inverse of a non-square %s[%d][%d]", x.Kind(), x.Rows(), x.Cols())
	}
	z := make([]T, len(x.Diag()))
	for i, d := range x.Diag() {
		if d == 0 {
			return nil, errors.Wrapf(ErrSingular, "zero at position %d of the diagonal", i)
		}
		z[i] = 1 / d
	}
	return terminal.NewDiagonal(x.Rows(), x.Cols(), z), nil
}

func swapRows[T terminal.Elem](a []T, n, i, j int) {
	if i == j {
		return
	}
	for c := range n {
		a[i*n+c], a[j*n+c] = a[j*n+c], a[i*n+c]
	}
}

// invertDense inverts a square matrix with a Gauss-Jordan elimination
// using partial pivoting. Real matrices are inverted by invertReal.
func invertDense[T terminal.Field](x *terminal.Dense[T]) (terminal.Terminal, error) {
	n := x.Rows()
	if n != x.Cols() {
		return nil, errors.Wrapf(ErrShapeMismatch, "inverse of a non-square %s[%d][%d]", x.Kind(), x.Rows(), x.Cols())
	}
	a := append([]T(nil), x.Data()...)
	inv := make([]T, n*n)
	for i := range n {
		inv[i*n+i] = 1
	}
	for col := range n {
		pivot, best := col, magnitude(a[col*n+col])
		for r := col + 1; r < n; r++ {
			if m := magnitude(a[r*n+col]); m > best {
				pivot, best = r, m
			}
		}
		if best == 0 {
			return nil, errors.Wrapf(ErrSingular, "no pivot in column %d", col)
		}
		swapRows(a, n, pivot, col)
		swapRows(inv, n, pivot, col)
		p := a[col*n+col]
		for c := range n {
			a[col*n+c] /= p
			inv[col*n+c] /= p
		}
		for r := range n {
			if r == col {
				continue
			}
			f := a[r*n+col]
			if f == 0 {
				continue
			}
			for c := range n {
				a[r*n+c] -= f * a[col*n+c]
				inv[r*n+c] -= f * inv[col*n+c]
			}
		}
	}
	return terminal.NewDense(n, n, inv), nil
}

// Linear systems

// solveDense returns the solution X of A*X = B computed as inverse(A)*B.
// A 1x1 matrix A acts as a scalar and so does a 1x1 matrix B, as in a
// matrix product.
func solveDense[T terminal.Field](
	invert func(*terminal.Dense[T]) (terminal.Terminal, error),
	matMul func(x, y *terminal.Dense[T]) (terminal.Terminal, error),
) func(a, b *terminal.Dense[T]) (terminal.Terminal, error) {
	return func(a, b *terminal.Dense[T]) (terminal.Terminal, error) {
		if terminal.IsUnit(a) {
			return zipDense[T, T](catalog.Solve, quo[T])(b, a)
		}
		if a.Rows() != a.Cols() {
			return nil, errors.Wrapf(ErrUnimplemented, "%s: least squares solution for a non-square %s[%d][%d]", catalog.Solve, a.Kind(), a.Rows(), a.Cols())
		}
		if !terminal.IsUnit(b) && a.Rows() != b.Rows() {
			return nil, shapeMismatch(catalog.Solve, a, b)
		}
		inv, err := invert(a)
		if err != nil {
			return nil, err
		}
		defer inv.Free()
		return matMul(inv.(*terminal.Dense[T]), b)
	}
}

func solveDiagonalDense[T terminal.Field](a *terminal.Diagonal[T], b *terminal.Dense[T]) (terminal.Terminal, error) {
	if a.Cols() != b.Rows() {
		return nil, shapeMismatch(catalog.Solve, a, b)
	}
	inv, err := invertDiagonal(a)
	if err != nil {
		return nil, err
	}
	defer inv.Free()
	return matMulDiagonalDense(inv.(*terminal.Diagonal[T]), b)
}

// Singular value decomposition

// svdDiagonal decomposes a square real diagonal matrix D into U*S*V^T where
// S holds the absolute values of D in decreasing order, V is a permutation,
// and U a signed permutation.
func svdDiagonal(x *terminal.Diagonal[float64]) ([]terminal.Terminal, error) {
	n := x.Rows()
	if n != x.Cols() {
		return nil, errors.Wrapf(ErrUnimplemented, "SVD of a non-square %s[%d][%d]", x.Kind(), x.Rows(), x.Cols())
	}
	d := x.Diag()
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	slices.SortStableFunc(perm, func(a, b int) int {
		return cmp.Compare(math.Abs(d[b]), math.Abs(d[a]))
	})
	u := make([]float64, n*n)
	v := make([]float64, n*n)
	s := make([]float64, n)
	for i, p := range perm {
		s[i] = math.Abs(d[p])
		v[p*n+i] = 1
		u[p*n+i] = 1
		if d[p] < 0 {
			u[p*n+i] = -1
		}
	}
	return []terminal.Terminal{
		terminal.NewDense(n, n, u),
		terminal.NewDiagonal(n, n, s),
		terminal.NewDense(n, n, v),
	}, nil
}
