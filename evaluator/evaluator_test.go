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

package evaluator_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/exprdag/catalog"
	"github.com/gx-org/exprdag/dag"
	"github.com/gx-org/exprdag/engine"
	"github.com/gx-org/exprdag/evaluator"
	"github.com/gx-org/exprdag/terminal"
	"github.com/gx-org/exprdag/terminal/terminaltest"
	"github.com/pkg/errors"
)

func TestSharedNode(t *testing.T) {
	leaves := 0
	d := engine.New(engine.WithTerminalHook(func(dag.Node) error {
		leaves++
		return nil
	}))
	x := dag.Must(dag.Unary(catalog.Negate, dag.Terminal(terminal.NewInt(2))))
	root := dag.Must(dag.Binary(catalog.Times, x, x))
	if err := evaluator.Evaluate(d, root); err != nil {
		t.Fatal(err)
	}
	if x.Regs().Len() != 1 {
		t.Errorf("shared node dispatched %d times", x.Regs().Len())
	}
	if leaves != 1 {
		t.Errorf("leaf visited %d times", leaves)
	}
	if diff := cmp.Diff(root.Regs().Values(), []terminal.Terminal{terminal.NewInt(4)}, terminaltest.Comparer()); diff != "" {
		t.Errorf("unexpected result (-got +want):\n%s", diff)
	}
}

func TestDecompositionAndSelect(t *testing.T) {
	d := engine.New()
	m := dag.Terminal(terminal.NewDiagonal(2, 2, []float64{-2, 1}))
	svd := dag.Must(dag.Unary(catalog.SVD, m))
	s := dag.Must(dag.Select(svd, 1))
	root := dag.Must(dag.Binary(catalog.Plus, s, dag.Terminal(terminal.NewReal(1))))
	if err := evaluator.Evaluate(d, root); err != nil {
		t.Fatal(err)
	}
	want := terminal.NewDense(2, 2, []float64{3, 1, 1, 2})
	if diff := cmp.Diff(root.Regs().Values(), []terminal.Terminal{want}, terminaltest.Comparer()); diff != "" {
		t.Errorf("unexpected result (-got +want):\n%s", diff)
	}
}

func TestFactorizationAndSelect(t *testing.T) {
	a := terminal.NewDense(2, 2, []float64{4, 3, 6, 3})
	lu := dag.Must(dag.Unary(catalog.LU, dag.Terminal(a)))
	l := dag.Must(dag.Select(lu, 0))
	u := dag.Must(dag.Select(lu, 1))
	root := dag.Must(dag.Binary(catalog.MatMul, l, u))
	if err := evaluator.Evaluate(engine.New(), root); err != nil {
		t.Fatal(err)
	}
	if lu.Regs().Len() != 2 {
		t.Errorf("got %d factors but want 2", lu.Regs().Len())
	}
	if diff := cmp.Diff(root.Regs().Values(), []terminal.Terminal{a}, terminaltest.Comparer()); diff != "" {
		t.Errorf("unexpected result (-got +want):\n%s", diff)
	}
}

func TestSkipEvaluated(t *testing.T) {
	x := dag.Must(dag.Unary(catalog.Negate, dag.Terminal(terminal.NewReal(1))))
	x.Regs().Push(terminal.NewReal(10))
	root := dag.Must(dag.Unary(catalog.Exp, x))
	if err := evaluator.Evaluate(engine.New(), root); err != nil {
		t.Fatal(err)
	}
	if x.Regs().Len() != 1 {
		t.Errorf("evaluated node dispatched again")
	}
	got, _ := root.Regs().First()
	if v := got.(*terminal.Scalar[float64]).Value(); v < 22026 || v > 22027 {
		t.Errorf("got %v but want exp(10)", v)
	}
}

type loop struct {
	args []dag.Node
	regs *terminal.Register
}

func (n *loop) Tag() catalog.Tag         { return catalog.TagOf(catalog.Negate) }
func (n *loop) Args() []dag.Node         { return n.args }
func (n *loop) Regs() *terminal.Register { return n.regs }

func TestCycle(t *testing.T) {
	a := &loop{regs: terminal.NewRegister()}
	b := &loop{regs: terminal.NewRegister(), args: []dag.Node{a}}
	a.args = []dag.Node{b}
	if err := evaluator.Evaluate(engine.New(), a); !errors.Is(err, evaluator.ErrCycle) {
		t.Errorf("got error %v but want %v", err, evaluator.ErrCycle)
	}
}

func TestDispatchError(t *testing.T) {
	x := dag.Terminal(terminaltest.Sample(catalog.RealMatrix, 2))
	root := dag.Must(dag.Binary(catalog.Plus, dag.Must(dag.Unary(catalog.Exp, x)), dag.Terminal(terminal.NewDense(1, 3, []float64{1, 2, 3}))))
	if err := evaluator.Evaluate(engine.New(), root); err == nil {
		t.Errorf("expected a shape mismatch error")
	}
}
