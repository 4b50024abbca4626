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
	"github.com/gx-org/exprdag/catalog"
	"github.com/gx-org/exprdag/terminal"
	"github.com/lvlath/go/matrix"
	"github.com/pkg/errors"
)

// Real dense kernels delegate to the lvlath matrix package.

// toMatrix copies a real dense terminal into an lvlath matrix.
// Non-finite values are kept.
func toMatrix(x *terminal.Dense[float64]) (*matrix.Dense, error) {
	m, err := matrix.NewPreparedDense(x.Rows(), x.Cols(), matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, err
	}
	if err := m.Fill(x.Data()); err != nil {
		return nil, err
	}
	return m, nil
}

func fromMatrix(m matrix.Matrix) (*terminal.Dense[float64], error) {
	rows, cols := m.Rows(), m.Cols()
	data := make([]float64, rows*cols)
	for i := range rows {
		for j := range cols {
			v, err := m.At(i, j)
			if err != nil {
				return nil, err
			}
			data[i*cols+j] = v
		}
	}
	return terminal.NewDense(rows, cols, data), nil
}

// linalgError maps an lvlath error to the errors of the runners.
func linalgError(op catalog.Kind, err error) error {
	switch {
	case errors.Is(err, matrix.ErrSingular):
		return errors.Wrapf(ErrSingular, "%s: %v", op, err)
	case errors.Is(err, matrix.ErrDimensionMismatch),
		errors.Is(err, matrix.ErrNonSquare),
		errors.Is(err, matrix.ErrBadShape),
		errors.Is(err, matrix.ErrInvalidDimensions):
		return errors.Wrapf(ErrShapeMismatch, "%s: %v", op, err)
	case errors.Is(err, matrix.ErrNaNInf):
		return errors.Wrapf(ErrInvalidOperand, "%s: %v", op, err)
	}
	return errors.Wrapf(err, "%s", op)
}

func transposeReal(x realDense) (terminal.Terminal, error) {
	m, err := toMatrix(x)
	if err != nil {
		return nil, linalgError(catalog.Transpose, err)
	}
	t, err := matrix.Transpose(m)
	if err != nil {
		return nil, linalgError(catalog.Transpose, err)
	}
	return fromMatrix(t)
}

func matMulReal(x, y realDense) (terminal.Terminal, error) {
	if terminal.IsUnit(x) || terminal.IsUnit(y) {
		return zipDense[float64, float64](catalog.MatMul, mul[float64])(x, y)
	}
	if x.Cols() != y.Rows() {
		return nil, shapeMismatch(catalog.MatMul, x, y)
	}
	a, err := toMatrix(x)
	if err != nil {
		return nil, linalgError(catalog.MatMul, err)
	}
	b, err := toMatrix(y)
	if err != nil {
		return nil, linalgError(catalog.MatMul, err)
	}
	z, err := matrix.Mul(a, b)
	if err != nil {
		return nil, linalgError(catalog.MatMul, err)
	}
	return fromMatrix(z)
}

// invertNormal inverts A as inverse(A^T*A)*A^T. A^T*A is symmetric
// positive definite when A is invertible, so its factorization never
// meets a zero pivot when the one of A does.
func invertNormal(a matrix.Matrix) (matrix.Matrix, error) {
	at, err := matrix.Transpose(a)
	if err != nil {
		return nil, err
	}
	ata, err := matrix.Mul(at, a)
	if err != nil {
		return nil, err
	}
	inv, err := matrix.Inverse(ata)
	if err != nil {
		return nil, err
	}
	return matrix.Mul(inv, at)
}

func invertReal(x realDense) (terminal.Terminal, error) {
	if x.Rows() != x.Cols() {
		return nil, errors.Wrapf(ErrShapeMismatch, "inverse of a non-square %s[%d][%d]", x.Kind(), x.Rows(), x.Cols())
	}
	m, err := toMatrix(x)
	if err != nil {
		return nil, linalgError(catalog.Inverse, err)
	}
	inv, err := matrix.Inverse(m)
	if errors.Is(err, matrix.ErrSingular) {
		inv, err = invertNormal(m)
	}
	if err != nil {
		return nil, linalgError(catalog.Inverse, err)
	}
	return fromMatrix(inv)
}

func squareFactors(op catalog.Kind, x realDense) (*matrix.Dense, error) {
	if x.Rows() != x.Cols() {
		return nil, errors.Wrapf(ErrUnimplemented, "%s of a non-square %s[%d][%d]", op, x.Kind(), x.Rows(), x.Cols())
	}
	m, err := toMatrix(x)
	if err != nil {
		return nil, linalgError(op, err)
	}
	return m, nil
}

// luReal factorizes a square matrix A into L*U where L is unit lower
// triangular and U upper triangular. Rows are not permuted: a zero pivot
// is reported as a singular matrix.
func luReal(x realDense) ([]terminal.Terminal, error) {
	m, err := squareFactors(catalog.LU, x)
	if err != nil {
		return nil, err
	}
	l, u, err := matrix.LU(m)
	if err != nil {
		return nil, linalgError(catalog.LU, err)
	}
	return fromMatrices(l, u)
}

// qrReal factorizes a square matrix A into Q*R where Q is orthogonal
// and R upper triangular.
func qrReal(x realDense) ([]terminal.Terminal, error) {
	m, err := squareFactors(catalog.QR, x)
	if err != nil {
		return nil, err
	}
	// lvlath returns the reflectors Q such that A = Q^T*R.
	q, r, err := matrix.QR(m)
	if err != nil {
		return nil, linalgError(catalog.QR, err)
	}
	qt, err := matrix.Transpose(q)
	if err != nil {
		return nil, linalgError(catalog.QR, err)
	}
	return fromMatrices(qt, r)
}

func fromMatrices(ms ...matrix.Matrix) ([]terminal.Terminal, error) {
	out := make([]terminal.Terminal, len(ms))
	for i, m := range ms {
		t, err := fromMatrix(m)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}
