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

// Package runner implements operators of expression DAGs for the operand
// kinds they support.
//
// A runner holds a table of handlers keyed by operand kinds. Every runner
// has a handler for the dense backstop kinds: real matrices and complex
// matrices (both operands of the same backstop kind for binary operators).
// Operands of any other kind can always be converted to one of these.
package runner

import (
	"fmt"

	"github.com/gx-org/exprdag/catalog"
	"github.com/gx-org/exprdag/terminal"
	"github.com/pkg/errors"
)

var (
	// ErrUnimplemented is returned by operators recognised by the engine
	// but with no kernel implementation yet.
	ErrUnimplemented = errors.New("unimplemented expression node")

	// ErrShapeMismatch is returned when the shapes of the operands are not compatible.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrSingular is returned when inverting a singular matrix.
	ErrSingular = errors.New("singular matrix")

	// ErrInvalidOperand is returned when an operand cannot be used by an operator.
	ErrInvalidOperand = errors.New("invalid operand")
)

type (
	// UnaryFunc applies a unary operator to an operand and pushes
	// the result(s) to a register.
	UnaryFunc func(regs *terminal.Register, x terminal.Terminal) error

	// BinaryFunc applies a binary operator to two operands and pushes
	// the result(s) to a register.
	BinaryFunc func(regs *terminal.Register, x, y terminal.Terminal) error

	// Pair of operand kinds.
	Pair [2]catalog.Kind

	// Unary is the runner of a unary operator.
	Unary struct {
		op     catalog.Kind
		native map[catalog.Kind]UnaryFunc
	}

	// Binary is the runner of a binary operator.
	Binary struct {
		op     catalog.Kind
		native map[Pair]BinaryFunc
		policy Policy
	}
)

func checkOp(op catalog.Kind, want catalog.Category) {
	if op.Category() != want {
		panic(fmt.Sprintf("%s is a %s operator, not a %s operator", op, op.Category(), want))
	}
}

// NewUnary returns the runner of a unary operator.
// Both backstop handlers are required.
func NewUnary(op catalog.Kind, realBackstop, complexBackstop UnaryFunc, natives map[catalog.Kind]UnaryFunc) *Unary {
	checkOp(op, catalog.Unary)
	if realBackstop == nil || complexBackstop == nil {
		panic(fmt.Sprintf("%s: missing backstop", op))
	}
	r := &Unary{
		op:     op,
		native: make(map[catalog.Kind]UnaryFunc, len(natives)+2),
	}
	for k, f := range natives {
		if !k.IsTerminal() {
			panic(fmt.Sprintf("%s: handler registered for non-terminal kind %s", op, k))
		}
		r.native[k] = f
	}
	r.native[catalog.RealMatrix] = realBackstop
	r.native[catalog.ComplexMatrix] = complexBackstop
	return r
}

// Op returns the operator kind of the runner.
func (r *Unary) Op() catalog.Kind {
	return r.op
}

// Native returns the handler for an operand kind, if any.
func (r *Unary) Native(k catalog.Kind) (UnaryFunc, bool) {
	f, ok := r.native[k]
	return f, ok
}

// Backstop returns the handler of a backstop kind.
// It returns nil if the kind is not a backstop kind.
func (r *Unary) Backstop(k catalog.Kind) UnaryFunc {
	if k != catalog.RealMatrix && k != catalog.ComplexMatrix {
		return nil
	}
	return r.native[k]
}

// NewBinary returns the runner of a binary operator.
// Both backstop handlers are required.
func NewBinary(op catalog.Kind, policy Policy, realBackstop, complexBackstop BinaryFunc, natives map[Pair]BinaryFunc) *Binary {
	checkOp(op, catalog.Binary)
	if realBackstop == nil || complexBackstop == nil {
		panic(fmt.Sprintf("%s: missing backstop", op))
	}
	if policy == nil {
		policy = PromoteByFamily
	}
	r := &Binary{
		op:     op,
		native: make(map[Pair]BinaryFunc, len(natives)+2),
		policy: policy,
	}
	for p, f := range natives {
		if !p[0].IsTerminal() || !p[1].IsTerminal() {
			panic(fmt.Sprintf("%s: handler registered for non-terminal kinds %v", op, p))
		}
		r.native[p] = f
	}
	r.native[Pair{catalog.RealMatrix, catalog.RealMatrix}] = realBackstop
	r.native[Pair{catalog.ComplexMatrix, catalog.ComplexMatrix}] = complexBackstop
	return r
}

// Op returns the operator kind of the runner.
func (r *Binary) Op() catalog.Kind {
	return r.op
}

// Native returns the handler for a pair of operand kinds, if any.
func (r *Binary) Native(x, y catalog.Kind) (BinaryFunc, bool) {
	f, ok := r.native[Pair{x, y}]
	return f, ok
}

// Backstop returns the handler for two operands of a backstop kind.
// It returns nil if the kind is not a backstop kind.
func (r *Binary) Backstop(k catalog.Kind) BinaryFunc {
	if k != catalog.RealMatrix && k != catalog.ComplexMatrix {
		return nil
	}
	return r.native[Pair{k, k}]
}

// Promote returns the kinds operands need to be converted to when
// there is no native handler for them.
func (r *Binary) Promote(x, y catalog.Kind) (catalog.Kind, catalog.Kind) {
	return r.policy(x, y)
}

// withPolicy returns a copy of the runner using a different policy.
// Handlers are shared since they are immutable.
// A nil policy promotes operands by family.
func (r *Binary) withPolicy(p Policy) *Binary {
	if p == nil {
		p = PromoteByFamily
	}
	return &Binary{
		op:     r.op,
		native: r.native,
		policy: p,
	}
}

// operand returns the concrete type of an operand. The type of a terminal
// of the catalog is given by its kind, so a mismatch means the terminal
// does not belong to the catalog.
func operand[X terminal.Terminal](x terminal.Terminal) (X, error) {
	v, ok := x.(X)
	if !ok {
		return v, errors.Wrapf(catalog.ErrUnknownType, "%s operand of type %T instead of %T", x.Kind(), x, v)
	}
	return v, nil
}

func pushUnary[X terminal.Terminal](f func(X) (terminal.Terminal, error)) UnaryFunc {
	return func(regs *terminal.Register, x terminal.Terminal) error {
		xv, err := operand[X](x)
		if err != nil {
			return err
		}
		out, err := f(xv)
		if err != nil {
			return err
		}
		regs.Push(out)
		return nil
	}
}

func pushUnaryMulti[X terminal.Terminal](f func(X) ([]terminal.Terminal, error)) UnaryFunc {
	return func(regs *terminal.Register, x terminal.Terminal) error {
		xv, err := operand[X](x)
		if err != nil {
			return err
		}
		outs, err := f(xv)
		if err != nil {
			return err
		}
		regs.Push(outs...)
		return nil
	}
}

func pushBinary[X, Y terminal.Terminal](f func(X, Y) (terminal.Terminal, error)) BinaryFunc {
	return func(regs *terminal.Register, x, y terminal.Terminal) error {
		xv, err := operand[X](x)
		if err != nil {
			return err
		}
		yv, err := operand[Y](y)
		if err != nil {
			return err
		}
		out, err := f(xv, yv)
		if err != nil {
			return err
		}
		regs.Push(out)
		return nil
	}
}

func unimplementedUnary(op catalog.Kind) UnaryFunc {
	return func(_ *terminal.Register, x terminal.Terminal) error {
		return errors.Wrapf(ErrUnimplemented, "%s(%s)", op, x.Kind())
	}
}
