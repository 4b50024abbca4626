// Copyright 2024 Google LLC
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

// Package fmtarray formats terminal values into string.
package fmtarray

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Value is a value that can be formatted.
type Value interface {
	constraints.Integer | constraints.Float | constraints.Complex | ~bool
}

const tab = "\t"

type builder[T Value] struct {
	w          *strings.Builder
	data       []T
	rows, cols int
}

func newBuilder[T Value](data []T, rows, cols int) (*builder[T], error) {
	b := &builder[T]{
		w:    &strings.Builder{},
		data: data,
		rows: rows,
		cols: cols,
	}
	if rows*cols != len(data) {
		return b, errors.Errorf("len(data)=%d does not match shape %dx%d", len(data), rows, cols)
	}
	return b, nil
}

func trimFloat(s string) string {
	if strings.ContainsRune(s, '.') {
		// Remove any number of trailing zeroes after the decimal point, and remove
		// the point itself if there are no digits after it.
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// Format a single value.
func Format[T Value](x T) string {
	switch v := any(x).(type) {
	case float32:
		return trimFloat(fmt.Sprintf("%.6f", v))
	case float64:
		return trimFloat(fmt.Sprintf("%.10f", v))
	case complex64:
		return formatComplex(float64(real(v)), float64(imag(v)))
	case complex128:
		return formatComplex(real(v), imag(v))
	default:
		return fmt.Sprint(x)
	}
}

func formatComplex(re, im float64) string {
	sign := "+"
	if im < 0 {
		sign = "-"
		im = -im
	}
	return Format(re) + sign + Format(im) + "i"
}

func (b *builder[T]) printScalar() {
	b.w.WriteString("(")
	b.w.WriteString(Format(b.data[0]))
	b.w.WriteString(")")
}

func (b *builder[T]) printRow(row int) {
	vec := make([]string, b.cols)
	for j := range b.cols {
		vec[j] = Format(b.data[row*b.cols+j])
	}
	b.w.WriteString(fmt.Sprintf("{%s}", strings.Join(vec, ", ")))
}

func (b *builder[T]) printMatrix() {
	b.w.WriteString("{\n")
	for i := range b.rows {
		b.w.WriteString(tab)
		b.printRow(i)
		b.w.WriteString(",\n")
	}
	b.w.WriteString("}")
}

func (b *builder[T]) printType(name string, scalar bool) {
	b.w.WriteString(name)
	if scalar {
		return
	}
	b.w.WriteString(fmt.Sprintf("[%d][%d]", b.rows, b.cols))
}

// SDataPrint returns a string representation of the content of a matrix
// stored in row-major order, without the type.
func SDataPrint[T Value](data []T, rows, cols int) string {
	b, err := newBuilder(data, rows, cols)
	if err != nil {
		return err.Error()
	}
	b.printMatrix()
	return b.w.String()
}

// Sprint returns a string representation of a matrix stored in row-major order.
// If scalar is true, the single value of the data is printed without shape.
func Sprint[T Value](name string, data []T, rows, cols int, scalar bool) string {
	b, err := newBuilder(data, rows, cols)
	if err != nil {
		return err.Error()
	}
	b.printType(name, scalar)
	if scalar {
		b.printScalar()
	} else {
		b.printMatrix()
	}
	return b.w.String()
}
