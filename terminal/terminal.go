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

// Package terminal implements the leaf values of expression DAGs:
// scalars and dense, diagonal, or sparse matrices.
package terminal

import (
	"fmt"

	"github.com/gx-org/exprdag/catalog"
	"golang.org/x/exp/constraints"
)

type (
	// Terminal is a leaf value of an expression DAG.
	// A terminal owns its storage.
	Terminal interface {
		// Kind of the terminal in the catalog.
		Kind() catalog.Kind

		// Rows returns the number of rows. Scalars have one row.
		Rows() int

		// Cols returns the number of columns. Scalars have one column.
		Cols() int

		// Clone returns a copy of the terminal owning its own storage.
		Clone() Terminal

		// Free releases the storage of the terminal.
		// The terminal must not be read after it has been freed.
		Free()

		// Freed returns true if the terminal has been freed.
		Freed() bool

		// String representation of the terminal.
		String() string
	}

	// Elem is an element type that can be stored in a terminal.
	Elem interface {
		constraints.Integer | constraints.Float | constraints.Complex | ~bool
	}

	// Number is an element type supporting arithmetic.
	Number interface {
		constraints.Integer | constraints.Float | constraints.Complex
	}

	// Field is an element type supporting division.
	Field interface {
		constraints.Float | constraints.Complex
	}
)

// kindFor returns the catalog kind storing elements of type T with a given structure.
func kindFor[T Elem](st catalog.Structure) catalog.Kind {
	var zero T
	var family catalog.Family
	switch any(zero).(type) {
	case float64:
		family = catalog.Real
	case complex128:
		family = catalog.Complex
	case int64:
		if st == catalog.Scalar {
			return catalog.IntScalar
		}
	case bool:
		if st == catalog.Dense {
			return catalog.LogicalMatrix
		}
	}
	for _, k := range catalog.Terminals() {
		if family != catalog.NoFamily && k.Family() == family && k.Structure() == st {
			switch k {
			case catalog.IntScalar, catalog.LogicalMatrix:
				continue
			}
			return k
		}
	}
	panic(fmt.Sprintf("no terminal kind in the catalog for %s of %T", st, zero))
}

func checkShape(rows, cols int) {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("invalid shape %dx%d", rows, cols))
	}
}

func freedString(k catalog.Kind) string {
	return fmt.Sprintf("<freed %s>", k)
}

// SameShape returns true if two terminals have the same number of rows and columns.
func SameShape(x, y Terminal) bool {
	return x.Rows() == y.Rows() && x.Cols() == y.Cols()
}

// IsUnit returns true if the terminal has a single element.
func IsUnit(t Terminal) bool {
	return t.Rows() == 1 && t.Cols() == 1
}
