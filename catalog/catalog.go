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

// Package catalog is the closed set of terminal and expression kinds
// understood by the dispatch engine, together with their type tags.
package catalog

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnknownType is returned when a kind or a tag does not belong to the catalog.
// It always signals a mismatch between the catalog and a dispatch table.
var ErrUnknownType = errors.New("unknown type")

type (
	// Kind of a node in an expression DAG: either a terminal (data) kind
	// or an expression (operator) kind.
	Kind int

	// Category of a kind.
	Category int

	// Family is the numeric family of a terminal.
	Family int

	// Structure is the storage layout of a terminal.
	Structure int
)

// Terminal kinds.
const (
	InvalidKind Kind = iota
	RealScalar
	ComplexScalar
	IntScalar
	RealMatrix
	ComplexMatrix
	LogicalMatrix
	RealDiagonal
	ComplexDiagonal
	RealSparse
	ComplexSparse

	// Unary expression kinds.
	Negate
	Transpose
	Conj
	Abs
	Exp
	Inverse
	Size
	SVD
	LU
	QR

	// Binary expression kinds.
	Plus
	Minus
	Times
	Divide
	MatMul
	Equal
	Power
	Solve

	// SelectResult extracts one entry of the register of a sub-expression.
	SelectResult

	numKinds
)

// Categories of kinds.
const (
	InvalidCategory Category = iota
	Terminal
	Unary
	Binary
	Selector
)

// Numeric families of terminals.
// Integer and logical terminals belong to the real family.
const (
	NoFamily Family = iota
	Real
	Complex
)

// Storage structures of terminals.
const (
	NoStructure Structure = iota
	Scalar
	Dense
	Diagonal
	Sparse
)

type kindInfo struct {
	name      string
	category  Category
	family    Family
	structure Structure
	results   int
}

var infos = [numKinds]kindInfo{
	InvalidKind: {name: "invalid"},

	RealScalar:      {name: "RealScalar", category: Terminal, family: Real, structure: Scalar},
	ComplexScalar:   {name: "ComplexScalar", category: Terminal, family: Complex, structure: Scalar},
	IntScalar:       {name: "IntScalar", category: Terminal, family: Real, structure: Scalar},
	RealMatrix:      {name: "RealMatrix", category: Terminal, family: Real, structure: Dense},
	ComplexMatrix:   {name: "ComplexMatrix", category: Terminal, family: Complex, structure: Dense},
	LogicalMatrix:   {name: "LogicalMatrix", category: Terminal, family: Real, structure: Dense},
	RealDiagonal:    {name: "RealDiagonal", category: Terminal, family: Real, structure: Diagonal},
	ComplexDiagonal: {name: "ComplexDiagonal", category: Terminal, family: Complex, structure: Diagonal},
	RealSparse:      {name: "RealSparse", category: Terminal, family: Real, structure: Sparse},
	ComplexSparse:   {name: "ComplexSparse", category: Terminal, family: Complex, structure: Sparse},

	Negate:    {name: "Negate", category: Unary, results: 1},
	Transpose: {name: "Transpose", category: Unary, results: 1},
	Conj:      {name: "Conj", category: Unary, results: 1},
	Abs:       {name: "Abs", category: Unary, results: 1},
	Exp:       {name: "Exp", category: Unary, results: 1},
	Inverse:   {name: "Inverse", category: Unary, results: 1},
	Size:      {name: "Size", category: Unary, results: 2},
	SVD:       {name: "SVD", category: Unary, results: 3},
	LU:        {name: "LU", category: Unary, results: 2},
	QR:        {name: "QR", category: Unary, results: 2},

	Plus:   {name: "Plus", category: Binary, results: 1},
	Minus:  {name: "Minus", category: Binary, results: 1},
	Times:  {name: "Times", category: Binary, results: 1},
	Divide: {name: "Divide", category: Binary, results: 1},
	MatMul: {name: "MatMul", category: Binary, results: 1},
	Equal:  {name: "Equal", category: Binary, results: 1},
	Power:  {name: "Power", category: Binary, results: 1},
	Solve:  {name: "Solve", category: Binary, results: 1},

	SelectResult: {name: "SelectResult", category: Selector, results: 1},
}

// Valid returns true if the kind belongs to the catalog.
func (k Kind) Valid() bool {
	return k > InvalidKind && k < numKinds
}

func (k Kind) info() kindInfo {
	if !k.Valid() {
		return infos[InvalidKind]
	}
	return infos[k]
}

// String returns the name of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return infos[k].name
}

// Category of the kind.
func (k Kind) Category() Category {
	return k.info().category
}

// Family returns the numeric family of a terminal kind.
// It returns NoFamily for expression kinds.
func (k Kind) Family() Family {
	return k.info().family
}

// Structure returns the storage structure of a terminal kind.
func (k Kind) Structure() Structure {
	return k.info().structure
}

// Results returns the number of entries an operator pushes to its register.
func (k Kind) Results() int {
	return k.info().results
}

// IsTerminal returns true if the kind is a terminal of the catalog.
func (k Kind) IsTerminal() bool {
	return k.Valid() && TagOf(k).IsTerminal()
}

// IsExpression returns true if the kind is an operator of the catalog.
func (k Kind) IsExpression() bool {
	return k.Valid() && TagOf(k).IsExpression()
}

func (c Category) String() string {
	switch c {
	case Terminal:
		return "terminal"
	case Unary:
		return "unary"
	case Binary:
		return "binary"
	case Selector:
		return "selector"
	default:
		return "invalid"
	}
}

// Arity returns the number of arguments of a node of that category.
func (c Category) Arity() int {
	switch c {
	case Unary:
		return 1
	case Binary, Selector:
		return 2
	default:
		return 0
	}
}

func (f Family) String() string {
	switch f {
	case Real:
		return "real"
	case Complex:
		return "complex"
	default:
		return "none"
	}
}

func (s Structure) String() string {
	switch s {
	case Scalar:
		return "scalar"
	case Dense:
		return "dense"
	case Diagonal:
		return "diagonal"
	case Sparse:
		return "sparse"
	default:
		return "none"
	}
}

func collect(keep func(Kind) bool) []Kind {
	var kinds []Kind
	for k := InvalidKind + 1; k < numKinds; k++ {
		if keep(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// All returns all the kinds of the catalog in catalog order.
func All() []Kind {
	return collect(func(Kind) bool { return true })
}

// Terminals returns all the terminal kinds in catalog order.
func Terminals() []Kind {
	return collect(Kind.IsTerminal)
}

// Expressions returns all the expression kinds in catalog order.
func Expressions() []Kind {
	return collect(Kind.IsExpression)
}

// OfCategory returns all the kinds of a given category.
func OfCategory(c Category) []Kind {
	return collect(func(k Kind) bool { return k.Category() == c })
}
