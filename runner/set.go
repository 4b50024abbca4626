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
	"maps"
	"sync"

	"github.com/gx-org/exprdag/catalog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Set maps operator kinds to their runners.
// A set is immutable and can be shared between dispatchers.
type Set struct {
	unary    map[catalog.Kind]*Unary
	binary   map[catalog.Kind]*Binary
	selector map[catalog.Kind]*Select
}

// NewSet returns a set of runners.
// It panics if two runners are registered for the same operator.
func NewSet(unary []*Unary, binary []*Binary, selector []*Select) *Set {
	s := &Set{
		unary:    make(map[catalog.Kind]*Unary),
		binary:   make(map[catalog.Kind]*Binary),
		selector: make(map[catalog.Kind]*Select),
	}
	seen := make(map[catalog.Kind]bool)
	register := func(op catalog.Kind) {
		if seen[op] {
			panic("runner registered twice for " + op.String())
		}
		seen[op] = true
	}
	for _, r := range unary {
		register(r.Op())
		s.unary[r.Op()] = r
	}
	for _, r := range binary {
		register(r.Op())
		s.binary[r.Op()] = r
	}
	for _, r := range selector {
		register(r.Op())
		s.selector[r.Op()] = r
	}
	return s
}

var defaultSet = sync.OnceValue(func() *Set {
	return NewSet(
		[]*Unary{
			newNegate(),
			newTranspose(),
			newConj(),
			newAbs(),
			newExp(),
			newInverse(),
			newSize(),
			newSVD(),
			newLU(),
			newQR(),
		},
		[]*Binary{
			newPlus(),
			newMinus(),
			newTimes(),
			newDivide(),
			newMatMul(),
			newEqual(),
			newPower(),
			newSolve(),
		},
		[]*Select{
			NewSelect(catalog.SelectResult),
		},
	)
})

// Default returns the runners of all the operators of the catalog.
// The set is built once per process.
func Default() *Set {
	return defaultSet()
}

// Unary returns the runner of a unary operator.
func (s *Set) Unary(op catalog.Kind) (*Unary, bool) {
	r, ok := s.unary[op]
	return r, ok
}

// Binary returns the runner of a binary operator.
func (s *Set) Binary(op catalog.Kind) (*Binary, bool) {
	r, ok := s.binary[op]
	return r, ok
}

// Selector returns the runner of a selector operator.
func (s *Set) Selector(op catalog.Kind) (*Select, bool) {
	r, ok := s.selector[op]
	return r, ok
}

// Ops returns the operators of the set in catalog order.
func (s *Set) Ops() []catalog.Kind {
	var ops []catalog.Kind
	for _, op := range catalog.Expressions() {
		_, unary := s.unary[op]
		_, binary := s.binary[op]
		_, selector := s.selector[op]
		if unary || binary || selector {
			ops = append(ops, op)
		}
	}
	return ops
}

// WithPolicy returns a new set where a binary operator uses a different promotion policy.
func (s *Set) WithPolicy(op catalog.Kind, p Policy) (*Set, error) {
	r, ok := s.binary[op]
	if !ok {
		return nil, errors.Errorf("no binary runner for %s", op)
	}
	binary := maps.Clone(s.binary)
	binary[op] = r.withPolicy(p)
	return &Set{unary: s.unary, binary: binary, selector: s.selector}, nil
}

// WithPolicies returns a new set where all binary operators use the same promotion policy.
func (s *Set) WithPolicies(p Policy) *Set {
	binary := make(map[catalog.Kind]*Binary, len(s.binary))
	for op, r := range s.binary {
		binary[op] = r.withPolicy(p)
	}
	return &Set{unary: s.unary, binary: binary, selector: s.selector}
}

// Validate checks that every operator of the catalog has a runner of
// the right category.
func (s *Set) Validate() error {
	var errs error
	for _, op := range catalog.Expressions() {
		var ok bool
		switch op.Category() {
		case catalog.Unary:
			_, ok = s.unary[op]
		case catalog.Binary:
			_, ok = s.binary[op]
		case catalog.Selector:
			_, ok = s.selector[op]
		}
		if !ok {
			errs = multierr.Append(errs, errors.Errorf("no %s runner for %s", op.Category(), op))
		}
	}
	return errs
}
