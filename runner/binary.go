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
)

var (
	realScalars      = Pair{catalog.RealScalar, catalog.RealScalar}
	complexScalars   = Pair{catalog.ComplexScalar, catalog.ComplexScalar}
	intScalars       = Pair{catalog.IntScalar, catalog.IntScalar}
	realDiagonals    = Pair{catalog.RealDiagonal, catalog.RealDiagonal}
	complexDiagonals = Pair{catalog.ComplexDiagonal, catalog.ComplexDiagonal}
	realSparses      = Pair{catalog.RealSparse, catalog.RealSparse}
	logicals         = Pair{catalog.LogicalMatrix, catalog.LogicalMatrix}
)

// newArithmetic returns the runner of an element-wise operator mapping
// two zeros to zero, which lets it keep diagonal and sparse structures.
func newArithmetic(op catalog.Kind, fReal func(a, b float64) float64, fComplex func(a, b complex128) complex128, fInt func(a, b int64) int64, sparse bool) *Binary {
	natives := map[Pair]BinaryFunc{
		realScalars:      pushBinary[realScalar, realScalar](zipScalar(fReal)),
		complexScalars:   pushBinary[complexScalar, complexScalar](zipScalar(fComplex)),
		intScalars:       pushBinary[intScalar, intScalar](zipScalar(fInt)),
		realDiagonals:    pushBinary[realDiagonal, realDiagonal](zipDiagonal(op, fReal)),
		complexDiagonals: pushBinary[complexDiagonal, complexDiagonal](zipDiagonal(op, fComplex)),
	}
	if sparse {
		natives[realSparses] = pushBinary[realSparse, realSparse](zipSparse(op, fReal))
	}
	return NewBinary(op, PromoteByFamily,
		pushBinary[realDense, realDense](zipDense(op, fReal)),
		pushBinary[complexDense, complexDense](zipDense(op, fComplex)),
		natives)
}

func newPlus() *Binary {
	return newArithmetic(catalog.Plus, add[float64], add[complex128], add[int64], true)
}

func newMinus() *Binary {
	return newArithmetic(catalog.Minus, sub[float64], sub[complex128], sub[int64], true)
}

func newTimes() *Binary {
	return newArithmetic(catalog.Times, mul[float64], mul[complex128], mul[int64], false)
}

func newDivide() *Binary {
	return NewBinary(catalog.Divide, PromoteByFamily,
		pushBinary[realDense, realDense](zipDense(catalog.Divide, quo[float64])),
		pushBinary[complexDense, complexDense](zipDense(catalog.Divide, quo[complex128])),
		map[Pair]BinaryFunc{
			realScalars:    pushBinary[realScalar, realScalar](zipScalar(quo[float64])),
			complexScalars: pushBinary[complexScalar, complexScalar](zipScalar(quo[complex128])),
		})
}

func newMatMul() *Binary {
	return NewBinary(catalog.MatMul, PromoteByFamily,
		pushBinary[realDense, realDense](matMulReal),
		pushBinary[complexDense, complexDense](matMulDense[complex128]),
		map[Pair]BinaryFunc{
			realScalars:    pushBinary[realScalar, realScalar](zipScalar(mul[float64])),
			complexScalars: pushBinary[complexScalar, complexScalar](zipScalar(mul[complex128])),
			intScalars:     pushBinary[intScalar, intScalar](zipScalar(mul[int64])),
			{catalog.RealDiagonal, catalog.RealMatrix}: pushBinary[realDiagonal, realDense](matMulDiagonalDense[float64]),
		})
}

func newEqual() *Binary {
	return NewBinary(catalog.Equal, PromoteByFamily,
		pushBinary[realDense, realDense](zipDense(catalog.Equal, equal[float64])),
		pushBinary[complexDense, complexDense](zipDense(catalog.Equal, equal[complex128])),
		map[Pair]BinaryFunc{
			realScalars:    pushBinary[realScalar, realScalar](compareScalar(equal[float64])),
			complexScalars: pushBinary[complexScalar, complexScalar](compareScalar(equal[complex128])),
			intScalars:     pushBinary[intScalar, intScalar](compareScalar(equal[int64])),
			logicals:       pushBinary[logicalDense, logicalDense](zipDense(catalog.Equal, equal[bool])),
		})
}

// pow raises a to the power b. Real operands giving a real power are
// computed with math.Pow so that the result does not depend on whether
// the operands were stored as real or complex numbers.
func pow(a, b complex128) complex128 {
	if imag(a) == 0 && imag(b) == 0 {
		x, y := real(a), real(b)
		if x >= 0 || y == math.Trunc(y) {
			return complex(math.Pow(x, y), 0)
		}
	}
	return cmplx.Pow(a, b)
}

func powReal(a, b float64) complex128 {
	return pow(complex(a, 0), complex(b, 0))
}

// newPower returns complex matrices for all operands: a negative base
// with a fractional exponent has no real power.
func newPower() *Binary {
	return NewBinary(catalog.Power, PromoteToComplex,
		pushBinary[realDense, realDense](zipDense(catalog.Power, powReal)),
		pushBinary[complexDense, complexDense](zipDense(catalog.Power, pow)),
		nil)
}

func newSolve() *Binary {
	return NewBinary(catalog.Solve, PromoteByFamily,
		pushBinary[realDense, realDense](solveDense(invertReal, matMulReal)),
		pushBinary[complexDense, complexDense](solveDense(invertDense[complex128], matMulDense[complex128])),
		map[Pair]BinaryFunc{
			realScalars:    pushBinary[realScalar, realScalar](zipScalar(leftQuo[float64])),
			complexScalars: pushBinary[complexScalar, complexScalar](zipScalar(leftQuo[complex128])),
			{catalog.RealDiagonal, catalog.RealMatrix}: pushBinary[realDiagonal, realDense](solveDiagonalDense[float64]),
		})
}
