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

// Package dag defines the nodes of expression DAGs.
package dag

import (
	"fmt"
	"strings"

	"github.com/gx-org/exprdag/catalog"
	"github.com/gx-org/exprdag/terminal"
	"github.com/pkg/errors"
)

// Node in an expression DAG.
type Node interface {
	// Tag identifies the kind of the node.
	Tag() catalog.Tag
	// Args returns the operands of the node.
	Args() []Node
	// Regs returns the register storing the results of the node.
	Regs() *terminal.Register
}

// Leaf is a node holding a terminal.
type Leaf struct {
	regs *terminal.Register
	tag  catalog.Tag
}

var _ Node = (*Leaf)(nil)

// Terminal returns a leaf node holding a terminal.
// The leaf owns the terminal.
func Terminal(t terminal.Terminal) *Leaf {
	return &Leaf{
		regs: terminal.NewRegister(t),
		tag:  catalog.TagOf(t.Kind()),
	}
}

// Tag of the terminal kind.
func (n *Leaf) Tag() catalog.Tag {
	return n.tag
}

// Args returns nil.
func (n *Leaf) Args() []Node {
	return nil
}

// Regs returns a register holding the terminal.
func (n *Leaf) Regs() *terminal.Register {
	return n.regs
}

// Value returns the terminal of the leaf.
func (n *Leaf) Value() terminal.Terminal {
	v, _ := n.regs.First()
	return v
}

func (n *Leaf) String() string {
	return n.Value().String()
}

// Expr is an operator node.
type Expr struct {
	op   catalog.Kind
	args []Node
	regs *terminal.Register
}

var _ Node = (*Expr)(nil)

// NewExpr returns an operator node.
// The number of arguments must match the category of the operator.
func NewExpr(op catalog.Kind, args ...Node) (*Expr, error) {
	if !op.IsExpression() {
		return nil, errors.Wrapf(catalog.ErrUnknownType, "%s is not an operator", op)
	}
	if want := op.Category().Arity(); len(args) != want {
		return nil, errors.Errorf("%s operator %s requires %d argument(s) but got %d", op.Category(), op, want, len(args))
	}
	for i, arg := range args {
		if arg == nil {
			return nil, errors.Errorf("%s: argument %d is nil", op, i)
		}
	}
	return &Expr{
		op:   op,
		args: args,
		regs: terminal.NewRegister(),
	}, nil
}

// Must panics if err is not nil. It is used to build DAGs in tests and tools.
func Must(e *Expr, err error) *Expr {
	if err != nil {
		panic(err)
	}
	return e
}

// Unary returns a unary operator node.
func Unary(op catalog.Kind, x Node) (*Expr, error) {
	return NewExpr(op, x)
}

// Binary returns a binary operator node.
func Binary(op catalog.Kind, x, y Node) (*Expr, error) {
	return NewExpr(op, x, y)
}

// Select returns a node selecting the index-th result of src.
func Select(src Node, index int) (*Expr, error) {
	return NewExpr(catalog.SelectResult, src, Terminal(terminal.NewInt(int64(index))))
}

// Op returns the operator kind of the node.
func (n *Expr) Op() catalog.Kind {
	return n.op
}

// Tag of the operator kind.
func (n *Expr) Tag() catalog.Tag {
	return catalog.TagOf(n.op)
}

// Args returns the operands of the node.
func (n *Expr) Args() []Node {
	return n.args
}

// Regs returns the register storing the results of the operator.
func (n *Expr) Regs() *terminal.Register {
	return n.regs
}

func (n *Expr) String() string {
	args := make([]string, len(n.args))
	for i, arg := range n.args {
		if s, ok := arg.(fmt.Stringer); ok {
			args[i] = s.String()
		} else {
			args[i] = arg.Tag().String()
		}
	}
	return fmt.Sprintf("%s(%s)", n.op, strings.Join(args, ", "))
}
