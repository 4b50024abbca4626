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
)

type (
	realScalar    = *terminal.Scalar[float64]
	complexScalar = *terminal.Scalar[complex128]
	intScalar     = *terminal.Scalar[int64]

	realDense    = *terminal.Dense[float64]
	complexDense = *terminal.Dense[complex128]
	logicalDense = *terminal.Dense[bool]

	realDiagonal    = *terminal.Diagonal[float64]
	complexDiagonal = *terminal.Diagonal[complex128]

	realSparse    = *terminal.Sparse[float64]
	complexSparse = *terminal.Sparse[complex128]
)

func newNegate() *Unary {
	return NewUnary(catalog.Negate,
		pushUnary[realDense](mapDense(neg[float64])),
		pushUnary[complexDense](mapDense(neg[complex128])),
		map[catalog.Kind]UnaryFunc{
			catalog.RealScalar:      pushUnary[realScalar](mapScalar(neg[float64])),
			catalog.ComplexScalar:   pushUnary[complexScalar](mapScalar(neg[complex128])),
			catalog.IntScalar:       pushUnary[intScalar](mapScalar(neg[int64])),
			catalog.RealDiagonal:    pushUnary[realDiagonal](mapDiagonal(neg[float64])),
			catalog.ComplexDiagonal: pushUnary[complexDiagonal](mapDiagonal(neg[complex128])),
			catalog.RealSparse:      pushUnary[realSparse](mapSparse(neg[float64])),
			catalog.ComplexSparse:   pushUnary[complexSparse](mapSparse(neg[complex128])),
		})
}

func newTranspose() *Unary {
	return NewUnary(catalog.Transpose,
		pushUnary[realDense](transposeReal),
		pushUnary[complexDense](transposeDense[complex128]),
		map[catalog.Kind]UnaryFunc{
			catalog.RealScalar:      pushUnary[realScalar](cloneScalar[float64]),
			catalog.ComplexScalar:   pushUnary[complexScalar](cloneScalar[complex128]),
			catalog.IntScalar:       pushUnary[intScalar](cloneScalar[int64]),
			catalog.LogicalMatrix:   pushUnary[logicalDense](transposeDense[bool]),
			catalog.RealDiagonal:    pushUnary[realDiagonal](transposeDiagonal[float64]),
			catalog.ComplexDiagonal: pushUnary[complexDiagonal](transposeDiagonal[complex128]),
			catalog.RealSparse:      pushUnary[realSparse](transposeSparse[float64]),
			catalog.ComplexSparse:   pushUnary[complexSparse](transposeSparse[complex128]),
		})
}

func newConj() *Unary {
	return NewUnary(catalog.Conj,
		pushUnary[realDense](cloneDense[float64]),
		pushUnary[complexDense](mapDense(cmplx.Conj)),
		map[catalog.Kind]UnaryFunc{
			catalog.RealScalar:      pushUnary[realScalar](cloneScalar[float64]),
			catalog.ComplexScalar:   pushUnary[complexScalar](mapScalar(cmplx.Conj)),
			catalog.RealDiagonal:    pushUnary[realDiagonal](cloneDiagonal[float64]),
			catalog.ComplexDiagonal: pushUnary[complexDiagonal](mapDiagonal(cmplx.Conj)),
		})
}

func newAbs() *Unary {
	return NewUnary(catalog.Abs,
		pushUnary[realDense](mapDense(math.Abs)),
		pushUnary[complexDense](mapDense(cmplx.Abs)),
		map[catalog.Kind]UnaryFunc{
			catalog.RealScalar:    pushUnary[realScalar](mapScalar(math.Abs)),
			catalog.ComplexScalar: pushUnary[complexScalar](mapScalar(cmplx.Abs)),
			catalog.IntScalar:     pushUnary[intScalar](mapScalar(absInt)),
		})
}

func newExp() *Unary {
	return NewUnary(catalog.Exp,
		pushUnary[realDense](mapDense(math.Exp)),
		pushUnary[complexDense](mapDense(cmplx.Exp)),
		map[catalog.Kind]UnaryFunc{
			catalog.RealScalar:    pushUnary[realScalar](mapScalar(math.Exp)),
			catalog.ComplexScalar: pushUnary[complexScalar](mapScalar(cmplx.Exp)),
		})
}

func newInverse() *Unary {
	return NewUnary(catalog.Inverse,
		pushUnary[realDense](invertReal),
		pushUnary[complexDense](invertDense[complex128]),
		map[catalog.Kind]UnaryFunc{
			catalog.RealScalar:      pushUnary[realScalar](invertScalar[float64]),
			catalog.ComplexScalar:   pushUnary[complexScalar](invertScalar[complex128]),
			catalog.RealDiagonal:    pushUnary[realDiagonal](invertDiagonal[float64]),
			catalog.ComplexDiagonal: pushUnary[complexDiagonal](invertDiagonal[complex128]),
		})
}

// size pushes the number of rows and the number of columns of any terminal.
func size(x terminal.Terminal) ([]terminal.Terminal, error) {
	return []terminal.Terminal{
		terminal.NewInt(int64(x.Rows())),
		terminal.NewInt(int64(x.Cols())),
	}, nil
}

func newSize() *Unary {
	sizeFunc := pushUnaryMulti(size)
	natives := make(map[catalog.Kind]UnaryFunc)
	for _, k := range catalog.Terminals() {
		natives[k] = sizeFunc
	}
	return NewUnary(catalog.Size, sizeFunc, sizeFunc, natives)
}

func newSVD() *Unary {
	return NewUnary(catalog.SVD,
		unimplementedUnary(catalog.SVD),
		unimplementedUnary(catalog.SVD),
		map[catalog.Kind]UnaryFunc{
			catalog.RealDiagonal: pushUnaryMulti[realDiagonal](svdDiagonal),
		})
}

func newLU() *Unary {
	return NewUnary(catalog.LU,
		pushUnaryMulti[realDense](luReal),
		unimplementedUnary(catalog.LU),
		nil)
}

func newQR() *Unary {
	return NewUnary(catalog.QR,
		pushUnaryMulti[realDense](qrReal),
		unimplementedUnary(catalog.QR),
		nil)
}
