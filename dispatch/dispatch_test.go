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

package dispatch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/exprdag/catalog"
	"github.com/gx-org/exprdag/runner"
	"github.com/gx-org/exprdag/terminal"
	"github.com/gx-org/exprdag/terminal/terminaltest"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newCore() (*Core, *Metrics) {
	m := NewMetrics(prometheus.NewRegistry())
	return New(WithMetrics(m)), m
}

func checkCount(t *testing.T, c prometheus.Collector, want float64) {
	t.Helper()
	if got := testutil.ToFloat64(c); got != want {
		t.Errorf("got metric value %v but want %v", got, want)
	}
}

func TestUnaryNative(t *testing.T) {
	core, m := newCore()
	neg, _ := runner.Default().Unary(catalog.Negate)
	regs := terminal.NewRegister()
	if err := core.Unary(neg, regs, terminal.NewReal(3)); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(regs.Values(), []terminal.Terminal{terminal.NewReal(-3)}, terminaltest.Comparer()); diff != "" {
		t.Errorf("unexpected result (-got +want):\n%s", diff)
	}
	checkCount(t, m.dispatches.WithLabelValues("Negate", PathNative), 1)
	checkCount(t, m.live, 0)
}

func TestUnaryConverted(t *testing.T) {
	core, m := newCore()
	exp, _ := runner.Default().Unary(catalog.Exp)
	regs := terminal.NewRegister()
	x := terminal.NewDiagonal(2, 2, []float64{0, 1})
	if err := core.Unary(exp, regs, x); err != nil {
		t.Fatal(err)
	}
	got, _ := regs.First()
	if got.Kind() != catalog.RealMatrix {
		t.Errorf("got kind %s but want %s", got.Kind(), catalog.RealMatrix)
	}
	checkCount(t, m.dispatches.WithLabelValues("Exp", PathConverted), 1)
	checkCount(t, m.conversions.WithLabelValues("RealDiagonal", "RealMatrix"), 1)
	checkCount(t, m.live, 0)
	if x.Freed() {
		t.Errorf("dispatch freed its operand")
	}
}

func TestBinaryAsymmetricConversion(t *testing.T) {
	core, m := newCore()
	plus, _ := runner.Default().Binary(catalog.Plus)
	x := terminal.NewDense(2, 2, []float64{1, 2, 3, 4})
	y := terminal.NewDense(2, 2, []complex128{1i, 1i, 1i, 1i})
	regs := terminal.NewRegister()
	if err := core.Binary(plus, regs, x, y); err != nil {
		t.Fatal(err)
	}
	want := terminal.NewDense(2, 2, []complex128{1 + 1i, 2 + 1i, 3 + 1i, 4 + 1i})
	if diff := cmp.Diff(regs.Values(), []terminal.Terminal{want}, terminaltest.Comparer()); diff != "" {
		t.Errorf("unexpected result (-got +want):\n%s", diff)
	}
	checkCount(t, m.conversions.WithLabelValues("RealMatrix", "ComplexMatrix"), 1)
	if n := testutil.CollectAndCount(m.conversions); n != 1 {
		t.Errorf("got %d conversion series but want 1", n)
	}
	checkCount(t, m.live, 0)
}

func TestUnknownType(t *testing.T) {
	core, m := newCore()
	neg, _ := runner.Default().Unary(catalog.Negate)
	fake := &terminaltest.Fake{Terminal: terminal.NewReal(1), FakeKind: catalog.Plus}
	if err := core.Unary(neg, terminal.NewRegister(), fake); !errors.Is(err, catalog.ErrUnknownType) {
		t.Errorf("got error %v but want %v", err, catalog.ErrUnknownType)
	}
	plus, _ := runner.Default().Binary(catalog.Plus)
	if err := core.Binary(plus, terminal.NewRegister(), terminal.NewReal(1), fake); !errors.Is(err, catalog.ErrUnknownType) {
		t.Errorf("got error %v but want %v", err, catalog.ErrUnknownType)
	}
	checkCount(t, m.dispatches.WithLabelValues("Negate", PathFailed), 1)
	checkCount(t, m.dispatches.WithLabelValues("Plus", PathFailed), 1)
}

func TestInconsistentPolicy(t *testing.T) {
	core, _ := newCore()
	mixed := func(x, y catalog.Kind) (catalog.Kind, catalog.Kind) {
		return catalog.RealMatrix, catalog.ComplexMatrix
	}
	plus, err := runner.Default().WithPolicy(catalog.Plus, mixed)
	if err != nil {
		t.Fatal(err)
	}
	r, _ := plus.Binary(catalog.Plus)
	err = core.Binary(r, terminal.NewRegister(), terminal.NewInt(1), terminal.NewComplex(1))
	if !errors.Is(err, catalog.ErrUnknownType) {
		t.Errorf("got error %v but want %v", err, catalog.ErrUnknownType)
	}
}

func TestTemporariesReleased(t *testing.T) {
	var seen terminal.Terminal
	record := func(regs *terminal.Register, x terminal.Terminal) error {
		seen = x
		regs.Push(terminal.NewInt(0))
		return nil
	}
	forward := func(regs *terminal.Register, x terminal.Terminal) error {
		seen = x
		regs.Push(x)
		return nil
	}
	core, m := newCore()

	r := runner.NewUnary(catalog.Negate, record, record, nil)
	if err := core.Unary(r, terminal.NewRegister(), terminal.NewReal(1)); err != nil {
		t.Fatal(err)
	}
	if !seen.Freed() {
		t.Errorf("temporary %s not freed", seen.Kind())
	}

	r = runner.NewUnary(catalog.Negate, forward, forward, nil)
	regs := terminal.NewRegister()
	if err := core.Unary(r, regs, terminal.NewReal(1)); err != nil {
		t.Fatal(err)
	}
	if seen.Freed() {
		t.Errorf("temporary pushed into the register was freed")
	}
	if !regs.Holds(seen) {
		t.Errorf("register does not hold the temporary")
	}
	checkCount(t, m.live, 0)
}

func TestKernelFailure(t *testing.T) {
	core, m := newCore()
	inv, _ := runner.Default().Unary(catalog.Inverse)
	err := core.Unary(inv, terminal.NewRegister(), terminal.NewSparse[float64](2, 2, nil))
	if !errors.Is(err, runner.ErrSingular) {
		t.Errorf("got error %v but want %v", err, runner.ErrSingular)
	}
	checkCount(t, m.dispatches.WithLabelValues("Inverse", PathFailed), 1)
	checkCount(t, m.live, 0)
}

func TestNoMetrics(t *testing.T) {
	core := New()
	plus, _ := runner.Default().Binary(catalog.Plus)
	if err := core.Binary(plus, terminal.NewRegister(), terminal.NewInt(1), terminal.NewReal(2)); err != nil {
		t.Fatal(err)
	}
}
