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

package terminal_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/exprdag/catalog"
	"github.com/gx-org/exprdag/terminal"
	"github.com/pkg/errors"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		term terminal.Terminal
		want catalog.Kind
	}{
		{term: terminal.NewReal(1), want: catalog.RealScalar},
		{term: terminal.NewComplex(1i), want: catalog.ComplexScalar},
		{term: terminal.NewInt(1), want: catalog.IntScalar},
		{term: terminal.ZeroDense[float64](2, 2), want: catalog.RealMatrix},
		{term: terminal.ZeroDense[complex128](2, 2), want: catalog.ComplexMatrix},
		{term: terminal.ZeroDense[bool](2, 2), want: catalog.LogicalMatrix},
		{term: terminal.NewDiagonal(2, 2, []float64{1, 2}), want: catalog.RealDiagonal},
		{term: terminal.NewDiagonal(2, 2, []complex128{1, 2}), want: catalog.ComplexDiagonal},
		{term: terminal.NewSparse[float64](2, 2, nil), want: catalog.RealSparse},
		{term: terminal.NewSparse[complex128](2, 2, nil), want: catalog.ComplexSparse},
	}
	for _, test := range tests {
		if got := test.term.Kind(); got != test.want {
			t.Errorf("%T: got kind %s but want %s", test.term, got, test.want)
		}
	}
}

func TestUnsupportedElement(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("creating an integer dense matrix did not panic")
		}
	}()
	terminal.ZeroDense[int64](2, 2)
}

func TestSparseNormalisation(t *testing.T) {
	m := terminal.NewSparse(3, 3, []terminal.Entry[float64]{
		{Row: 2, Col: 0, Value: 4},
		{Row: 0, Col: 1, Value: 1},
		{Row: 1, Col: 1, Value: 0},
		{Row: 0, Col: 1, Value: 2},
	})
	want := []terminal.Entry[float64]{
		{Row: 0, Col: 1, Value: 2},
		{Row: 2, Col: 0, Value: 4},
	}
	if diff := cmp.Diff(want, m.Entries()); diff != "" {
		t.Errorf("unexpected entries (-want +got):\n%s", diff)
	}
	if got := m.At(2, 0); got != 4 {
		t.Errorf("got %v but want 4", got)
	}
	if got := m.At(1, 1); got != 0 {
		t.Errorf("got %v but want 0", got)
	}
	wantDense := []float64{0, 2, 0, 0, 0, 0, 4, 0, 0}
	if !cmp.Equal(m.ToDense(), wantDense) {
		t.Errorf("got %v but want %v", m.ToDense(), wantDense)
	}
}

func TestDiagonal(t *testing.T) {
	m := terminal.NewDiagonal(2, 3, []complex128{1 + 1i, 2})
	want := []complex128{1 + 1i, 0, 0, 0, 2, 0}
	if !cmp.Equal(m.ToDense(), want) {
		t.Errorf("got %v but want %v", m.ToDense(), want)
	}
	if got := m.At(0, 1); got != 0 {
		t.Errorf("got %v but want 0", got)
	}
}

func TestCloneOwnsStorage(t *testing.T) {
	m := terminal.NewDense(1, 2, []float64{1, 2})
	c := m.Clone().(*terminal.Dense[float64])
	c.Set(0, 0, 10)
	if got := m.At(0, 0); got != 1 {
		t.Errorf("clone aliases its source: got %v but want 1", got)
	}
	m.Free()
	if !m.Freed() || c.Freed() {
		t.Errorf("got freed=%v,%v but want true,false", m.Freed(), c.Freed())
	}
	if got, want := m.String(), "<freed RealMatrix>"; got != want {
		t.Errorf("got %q but want %q", got, want)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		term terminal.Terminal
		want string
	}{
		{term: terminal.NewReal(-3), want: "RealScalar(-3)"},
		{term: terminal.NewComplex(1 - 2i), want: "ComplexScalar(1-2i)"},
		{term: terminal.NewDiagonal(2, 2, []float64{1, 2}), want: "RealDiagonal[2][2]{\n\t{1, 0},\n\t{0, 2},\n}"},
	}
	for _, test := range tests {
		if got := test.term.String(); got != test.want {
			t.Errorf("got:\n%s\nwant:\n%s", got, test.want)
		}
	}
}

func TestRegister(t *testing.T) {
	a, b := terminal.NewReal(1), terminal.NewInt(2)
	reg := terminal.NewRegister(a)
	reg.Push(b)
	if reg.Len() != 2 {
		t.Fatalf("got %d entries but want 2", reg.Len())
	}
	got, err := reg.At(1)
	if err != nil {
		t.Fatal(err)
	}
	if got != b {
		t.Errorf("got %v but want %v", got, b)
	}
	if _, err := reg.At(2); !errors.Is(err, terminal.ErrOutOfRange) {
		t.Errorf("got error %v but want %v", err, terminal.ErrOutOfRange)
	}
	if !reg.Holds(a) || reg.Holds(terminal.NewReal(1)) {
		t.Errorf("Holds does not test identity")
	}
	reg.Reset()
	if reg.Len() != 0 || !a.Freed() || !b.Freed() {
		t.Errorf("Reset did not free and empty the register")
	}
	if _, ok := reg.First(); ok {
		t.Errorf("First returned an entry for an empty register")
	}
}
