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

package runner_test

import (
	"testing"

	"github.com/gx-org/exprdag/catalog"
	"github.com/gx-org/exprdag/runner"
	"github.com/gx-org/exprdag/terminal"
	"github.com/pkg/errors"
)

func TestPolicies(t *testing.T) {
	tests := []struct {
		policy string
		x, y   catalog.Kind
		want   catalog.Kind
	}{
		{"family", catalog.RealDiagonal, catalog.IntScalar, catalog.RealMatrix},
		{"family", catalog.RealMatrix, catalog.ComplexSparse, catalog.ComplexMatrix},
		{"family", catalog.LogicalMatrix, catalog.RealScalar, catalog.RealMatrix},
		{"complex", catalog.RealScalar, catalog.RealScalar, catalog.ComplexMatrix},
	}
	for _, test := range tests {
		p, err := runner.PolicyByName(test.policy)
		if err != nil {
			t.Fatal(err)
		}
		gotX, gotY := p(test.x, test.y)
		if gotX != test.want || gotY != test.want {
			t.Errorf("%s(%s, %s) = (%s, %s) but want %s", test.policy, test.x, test.y, gotX, gotY, test.want)
		}
	}
	if _, err := runner.PolicyByName("widest"); err == nil {
		t.Errorf("expected an error for an unknown policy")
	}
}

func TestPowerPromotesToComplex(t *testing.T) {
	r, _ := runner.Default().Binary(catalog.Power)
	if x, y := r.Promote(catalog.RealMatrix, catalog.RealMatrix); x != catalog.ComplexMatrix || y != catalog.ComplexMatrix {
		t.Errorf("%s promotes real matrices to (%s, %s)", catalog.Power, x, y)
	}
	r, _ = runner.Default().Binary(catalog.Plus)
	if x, y := r.Promote(catalog.RealMatrix, catalog.IntScalar); x != catalog.RealMatrix || y != catalog.RealMatrix {
		t.Errorf("%s promotes real operands to (%s, %s)", catalog.Plus, x, y)
	}
}

func TestWithPolicy(t *testing.T) {
	def := runner.Default()
	set, err := def.WithPolicy(catalog.Plus, runner.PromoteToComplex)
	if err != nil {
		t.Fatal(err)
	}
	plus, _ := set.Binary(catalog.Plus)
	if x, _ := plus.Promote(catalog.RealScalar, catalog.IntScalar); x != catalog.ComplexMatrix {
		t.Errorf("policy not applied: got %s", x)
	}
	plus, _ = def.Binary(catalog.Plus)
	if x, _ := plus.Promote(catalog.RealScalar, catalog.IntScalar); x != catalog.RealMatrix {
		t.Errorf("policy applied to the default set: got %s", x)
	}
	if _, err := def.WithPolicy(catalog.Negate, runner.PromoteToComplex); err == nil {
		t.Errorf("expected an error when setting the policy of a unary operator")
	}
	all := def.WithPolicies(runner.PromoteToComplex)
	for _, op := range catalog.OfCategory(catalog.Binary) {
		r, _ := all.Binary(op)
		if x, _ := r.Promote(catalog.RealScalar, catalog.RealScalar); x != catalog.ComplexMatrix {
			t.Errorf("%s: policy not applied: got %s", op, x)
		}
	}
}

func TestNilPolicy(t *testing.T) {
	def := runner.Default()
	set, err := def.WithPolicy(catalog.Power, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []*runner.Set{set, def.WithPolicies(nil)} {
		power, _ := s.Binary(catalog.Power)
		if x, y := power.Promote(catalog.RealScalar, catalog.RealDiagonal); x != catalog.RealMatrix || y != catalog.RealMatrix {
			t.Errorf("nil policy promotes real operands to (%s, %s)", x, y)
		}
	}
}

func TestIncompleteSet(t *testing.T) {
	set := runner.NewSet(nil, nil, []*runner.Select{runner.NewSelect(catalog.SelectResult)})
	err := set.Validate()
	if err == nil {
		t.Fatalf("expected an error for a set without unary and binary runners")
	}
	if _, ok := set.Unary(catalog.Negate); ok {
		t.Errorf("empty set has a runner for %s", catalog.Negate)
	}
}

func TestSelect(t *testing.T) {
	sel, ok := runner.Default().Selector(catalog.SelectResult)
	if !ok {
		t.Fatalf("no runner for %s", catalog.SelectResult)
	}
	src := terminal.NewRegister(terminal.NewInt(4), terminal.NewInt(7))
	regs := terminal.NewRegister()
	if err := sel.Run(regs, src, terminal.NewInt(1)); err != nil {
		t.Fatal(err)
	}
	got, _ := regs.First()
	want, _ := src.At(1)
	if got == want {
		t.Errorf("selected value aliases its source")
	}
	if v := got.(*terminal.Scalar[int64]).Value(); v != 7 {
		t.Errorf("got %d but want 7", v)
	}

	for _, index := range []terminal.Terminal{terminal.NewInt(2), terminal.NewInt(-1), terminal.NewReal(0)} {
		if err := sel.Run(regs, src, index); !errors.Is(err, runner.ErrInvalidOperand) {
			t.Errorf("index %s: got error %v but want %v", index, err, runner.ErrInvalidOperand)
		}
	}
}
