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

// Package convert converts terminals from one kind to another.
//
// Conversions are value-preserving: every element present in the source
// terminal has the same numerical value in the converted terminal.
// The result of a conversion owns its storage.
package convert

import (
	"github.com/gx-org/exprdag/catalog"
	"github.com/gx-org/exprdag/terminal"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

type (
	// Func converts a terminal into a new terminal.
	Func func(terminal.Terminal) (terminal.Terminal, error)

	pair struct {
		from, to catalog.Kind
	}
)

// direct is the table of direct conversions. It is never modified after init.
var direct = map[pair]Func{
	{catalog.RealScalar, catalog.ComplexScalar}:    from(realToComplexScalar),
	{catalog.RealScalar, catalog.RealMatrix}:       from(scalarToDense[float64]),
	{catalog.ComplexScalar, catalog.ComplexMatrix}: from(scalarToDense[complex128]),
	{catalog.IntScalar, catalog.RealScalar}:        from(intToRealScalar),
	{catalog.IntScalar, catalog.RealMatrix}:        from(intToRealMatrix),

	{catalog.RealMatrix, catalog.ComplexMatrix}: from(realToComplexDense),
	{catalog.LogicalMatrix, catalog.RealMatrix}: from(logicalToRealDense),

	{catalog.RealDiagonal, catalog.RealMatrix}:       from(diagonalToDense[float64]),
	{catalog.RealDiagonal, catalog.ComplexDiagonal}:  from(realToComplexDiagonal),
	{catalog.ComplexDiagonal, catalog.ComplexMatrix}: from(diagonalToDense[complex128]),

	{catalog.RealSparse, catalog.RealMatrix}:       from(sparseToDense[float64]),
	{catalog.RealSparse, catalog.ComplexSparse}:    from(realToComplexSparse),
	{catalog.ComplexSparse, catalog.ComplexMatrix}: from(sparseToDense[complex128]),
}

// Backstop returns the dense kind every operator implements for the
// numeric family of a terminal kind.
func Backstop(k catalog.Kind) catalog.Kind {
	if k.Family() == catalog.Complex {
		return catalog.ComplexMatrix
	}
	return catalog.RealMatrix
}

// Backstops returns the two dense kinds every operator implements.
func Backstops() []catalog.Kind {
	return []catalog.Kind{catalog.RealMatrix, catalog.ComplexMatrix}
}

// Path returns the kinds a terminal goes through to be converted from src to dst,
// src and dst included. At most one intermediate kind is used.
func Path(src, dst catalog.Kind) ([]catalog.Kind, bool) {
	if src == dst {
		return []catalog.Kind{src}, src.IsTerminal()
	}
	if _, ok := direct[pair{src, dst}]; ok {
		return []catalog.Kind{src, dst}, true
	}
	// Iterate in catalog order to keep the choice of the intermediate kind stable.
	for _, via := range catalog.Terminals() {
		_, first := direct[pair{src, via}]
		_, second := direct[pair{via, dst}]
		if first && second {
			return []catalog.Kind{src, via, dst}, true
		}
	}
	return nil, false
}

// To converts a terminal into a new terminal of the target kind.
// The caller owns the returned terminal and is responsible for freeing it.
func To(t terminal.Terminal, target catalog.Kind) (terminal.Terminal, error) {
	src := t.Kind()
	if !src.IsTerminal() {
		return nil, errors.Wrapf(catalog.ErrUnknownType, "cannot convert %s", src)
	}
	if !target.IsTerminal() {
		return nil, errors.Wrapf(catalog.ErrUnknownType, "cannot convert to %s", target)
	}
	path, ok := Path(src, target)
	if !ok {
		return nil, errors.Wrapf(catalog.ErrUnknownType, "no conversion from %s to %s", src, target)
	}
	if len(path) == 1 {
		return t.Clone(), nil
	}
	out := t
	for i := 1; i < len(path); i++ {
		next, err := direct[pair{path[i-1], path[i]}](out)
		if out != t {
			// Intermediate terminals never leave this function.
			out.Free()
		}
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

// Targets returns the backstop kinds a terminal kind can be converted to
// without losing information.
func Targets(k catalog.Kind) []catalog.Kind {
	if k.Family() == catalog.Complex {
		return []catalog.Kind{catalog.ComplexMatrix}
	}
	return Backstops()
}

// Validate checks that every terminal kind of the catalog can be converted
// to every backstop kind of its targets with at most one intermediate kind.
func Validate() error {
	var errs error
	for _, src := range catalog.Terminals() {
		for _, dst := range Targets(src) {
			if _, ok := Path(src, dst); !ok {
				errs = multierr.Append(errs, errors.Errorf("no conversion from %s to %s", src, dst))
			}
		}
	}
	for p := range direct {
		if !p.from.IsTerminal() || !p.to.IsTerminal() {
			errs = multierr.Append(errs, errors.Errorf("conversion %s->%s between non-terminal kinds", p.from, p.to))
		}
	}
	return errs
}
