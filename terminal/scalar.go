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
	"github.com/gx-org/exprdag/catalog"
	"github.com/gx-org/exprdag/fmt/fmtarray"
)

// Scalar is a single value.
type Scalar[T Elem] struct {
	kind  catalog.Kind
	value T
	freed bool
}

var _ Terminal = (*Scalar[float64])(nil)

// NewScalar returns a new scalar terminal.
func NewScalar[T Elem](val T) *Scalar[T] {
	return &Scalar[T]{
		kind:  kindFor[T](catalog.Scalar),
		value: val,
	}
}

// NewReal returns a real scalar.
func NewReal(val float64) *Scalar[float64] {
	return NewScalar(val)
}

// NewComplex returns a complex scalar.
func NewComplex(val complex128) *Scalar[complex128] {
	return NewScalar(val)
}

// NewInt returns an integer scalar.
func NewInt(val int64) *Scalar[int64] {
	return NewScalar(val)
}

// Kind of the scalar.
func (s *Scalar[T]) Kind() catalog.Kind {
	return s.kind
}

// Rows always returns 1.
func (s *Scalar[T]) Rows() int {
	return 1
}

// Cols always returns 1.
func (s *Scalar[T]) Cols() int {
	return 1
}

// Value stored in the scalar.
func (s *Scalar[T]) Value() T {
	return s.value
}

// Clone the scalar.
func (s *Scalar[T]) Clone() Terminal {
	return &Scalar[T]{kind: s.kind, value: s.value}
}

// Free the scalar.
func (s *Scalar[T]) Free() {
	var zero T
	s.value = zero
	s.freed = true
}

// Freed returns true if the scalar has been freed.
func (s *Scalar[T]) Freed() bool {
	return s.freed
}

func (s *Scalar[T]) String() string {
	if s.freed {
		return freedString(s.kind)
	}
	return fmtarray.Sprint(s.kind.String(), []T{s.value}, 1, 1, true)
}
