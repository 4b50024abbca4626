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

// Package terminaltest provides sample terminals and comparison helpers.
package terminaltest

import (
	"fmt"
	"math/cmplx"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/exprdag/catalog"
	"github.com/gx-org/exprdag/terminal"
)

// Sample returns a well-conditioned n x n terminal of a given kind.
// Scalars ignore n. Samples are invertible and have no zero element on
// their diagonal.
func Sample(kind catalog.Kind, n int) terminal.Terminal {
	switch kind {
	case catalog.RealScalar:
		return terminal.NewReal(2.5)
	case catalog.ComplexScalar:
		return terminal.NewComplex(1.5 - 0.5i)
	case catalog.IntScalar:
		return terminal.NewInt(3)
	case catalog.RealMatrix:
		return terminal.NewDense(n, n, realValues(n))
	case catalog.ComplexMatrix:
		vals := realValues(n)
		data := make([]complex128, len(vals))
		for i, v := range vals {
			data[i] = complex(v, float64(i%3)-1)
		}
		return terminal.NewDense(n, n, data)
	case catalog.LogicalMatrix:
		data := make([]bool, n*n)
		for i := range data {
			data[i] = i%(n+1) == 0
		}
		return terminal.NewDense(n, n, data)
	case catalog.RealDiagonal:
		diag := make([]float64, n)
		for i := range diag {
			diag[i] = float64(i) - 2.5
		}
		return terminal.NewDiagonal(n, n, diag)
	case catalog.ComplexDiagonal:
		diag := make([]complex128, n)
		for i := range diag {
			diag[i] = complex(float64(i+1), 1)
		}
		return terminal.NewDiagonal(n, n, diag)
	case catalog.RealSparse:
		var entries []terminal.Entry[float64]
		for i := range n {
			entries = append(entries, terminal.Entry[float64]{Row: i, Col: i, Value: float64(i + 2)})
		}
		entries = append(entries, terminal.Entry[float64]{Row: 0, Col: n - 1, Value: 0.5})
		return terminal.NewSparse(n, n, entries)
	case catalog.ComplexSparse:
		var entries []terminal.Entry[complex128]
		for i := range n {
			entries = append(entries, terminal.Entry[complex128]{Row: i, Col: i, Value: complex(float64(i+1), -1)})
		}
		return terminal.NewSparse(n, n, entries)
	}
	panic(fmt.Sprintf("no sample for %s", kind))
}

// realValues returns a strictly diagonally dominant matrix.
func realValues(n int) []float64 {
	data := make([]float64, n*n)
	for i := range n {
		for j := range n {
			if i == j {
				data[i*n+j] = float64(2*n + i)
			} else {
				data[i*n+j] = float64(i-j) / 2
			}
		}
	}
	return data
}

// Samples returns one sample per terminal kind of the catalog.
func Samples(n int) []terminal.Terminal {
	var samples []terminal.Terminal
	for _, k := range catalog.Terminals() {
		samples = append(samples, Sample(k, n))
	}
	return samples
}

func widen[T terminal.Elem](vals []T) []complex128 {
	out := make([]complex128, len(vals))
	for i, v := range vals {
		switch x := any(v).(type) {
		case float64:
			out[i] = complex(x, 0)
		case complex128:
			out[i] = x
		case int64:
			out[i] = complex(float64(x), 0)
		case bool:
			if x {
				out[i] = 1
			}
		}
	}
	return out
}

// Values returns the logical numerical value of all the elements of
// a terminal in row-major order.
func Values(t terminal.Terminal) []complex128 {
	switch x := t.(type) {
	case *terminal.Scalar[float64]:
		return widen([]float64{x.Value()})
	case *terminal.Scalar[complex128]:
		return widen([]complex128{x.Value()})
	case *terminal.Scalar[int64]:
		return widen([]int64{x.Value()})
	case *terminal.Dense[float64]:
		return widen(x.Data())
	case *terminal.Dense[complex128]:
		return widen(x.Data())
	case *terminal.Dense[bool]:
		return widen(x.Data())
	case *terminal.Diagonal[float64]:
		return widen(x.ToDense())
	case *terminal.Diagonal[complex128]:
		return widen(x.ToDense())
	case *terminal.Sparse[float64]:
		return widen(x.ToDense())
	case *terminal.Sparse[complex128]:
		return widen(x.ToDense())
	}
	panic(fmt.Sprintf("terminal of type %T not supported", t))
}

const tolerance = 1e-9

// CloseValues returns true if two lists of values are equal within a tolerance.
func CloseValues(x, y []complex128) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if cmplx.IsNaN(x[i]) && cmplx.IsNaN(y[i]) {
			continue
		}
		if cmplx.Abs(x[i]-y[i]) > tolerance*(1+cmplx.Abs(y[i])) {
			return false
		}
	}
	return true
}

// Equal returns true if two terminals have the same kind, the same shape,
// and the same values within a tolerance.
func Equal(x, y terminal.Terminal) bool {
	if x == nil || y == nil {
		return x == y
	}
	if x.Kind() != y.Kind() || !terminal.SameShape(x, y) {
		return false
	}
	return CloseValues(Values(x), Values(y))
}

// Comparer compares terminals with cmp.
func Comparer() cmp.Option {
	return cmp.Comparer(Equal)
}

// Fake is a terminal reporting an arbitrary kind.
type Fake struct {
	terminal.Terminal
	FakeKind catalog.Kind
}

// Kind returns the fake kind.
func (f *Fake) Kind() catalog.Kind {
	return f.FakeKind
}
