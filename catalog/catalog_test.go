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

package catalog_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/exprdag/catalog"
)

func TestTagPartition(t *testing.T) {
	for _, k := range catalog.All() {
		tag := catalog.TagOf(k)
		if tag.IsTerminal() == tag.IsExpression() {
			t.Errorf("%s: IsTerminal()=%v and IsExpression()=%v", k, tag.IsTerminal(), tag.IsExpression())
		}
		wantTerminal := k.Category() == catalog.Terminal
		if tag.IsTerminal() != wantTerminal {
			t.Errorf("%s: IsTerminal()=%v but want %v", k, tag.IsTerminal(), wantTerminal)
		}
	}
}

func TestTagsAreUniquePrimes(t *testing.T) {
	seen := make(map[catalog.Tag]catalog.Kind)
	prev := uint32(catalog.PrimeFloor)
	for _, k := range catalog.All() {
		tag := catalog.TagOf(k)
		if other, ok := seen[tag]; ok {
			t.Errorf("%s and %s share tag %s", k, other, tag)
		}
		seen[tag] = k
		p := uint32(tag &^ catalog.ExpressionBit)
		if p <= prev {
			t.Errorf("%s: tag %d is not increasing (previous: %d)", k, p, prev)
		}
		for d := uint32(2); d*d <= p; d++ {
			if p%d == 0 {
				t.Errorf("%s: tag %d is not a prime", k, p)
				break
			}
		}
		prev = p
		got, ok := catalog.KindOf(tag)
		if !ok || got != k {
			t.Errorf("KindOf(%s) = %s, %v but want %s", tag, got, ok, k)
		}
	}
}

func TestFirstTags(t *testing.T) {
	got := []catalog.Tag{
		catalog.TagOf(catalog.RealScalar),
		catalog.TagOf(catalog.ComplexScalar),
		catalog.TagOf(catalog.IntScalar),
	}
	want := []catalog.Tag{101, 103, 107}
	if !cmp.Equal(got, want) {
		t.Errorf("got %v but want %v", got, want)
	}
}

func TestPartitionLists(t *testing.T) {
	terms := catalog.Terminals()
	exprs := catalog.Expressions()
	if len(terms)+len(exprs) != len(catalog.All()) {
		t.Errorf("got %d terminals and %d expressions but the catalog has %d kinds", len(terms), len(exprs), len(catalog.All()))
	}
	wantTerms := []catalog.Kind{
		catalog.RealScalar,
		catalog.ComplexScalar,
		catalog.IntScalar,
		catalog.RealMatrix,
		catalog.ComplexMatrix,
		catalog.LogicalMatrix,
		catalog.RealDiagonal,
		catalog.ComplexDiagonal,
		catalog.RealSparse,
		catalog.ComplexSparse,
	}
	if diff := cmp.Diff(wantTerms, terms); diff != "" {
		t.Errorf("unexpected terminals (-want +got):\n%s", diff)
	}
	for _, k := range terms {
		if k.Family() == catalog.NoFamily {
			t.Errorf("terminal %s has no family", k)
		}
	}
	for _, k := range exprs {
		if k.Category().Arity() != 1 && k.Category().Arity() != 2 {
			t.Errorf("expression %s has arity %d", k, k.Category().Arity())
		}
	}
}

func TestUnknownKind(t *testing.T) {
	if catalog.InvalidKind.IsTerminal() || catalog.InvalidKind.IsExpression() {
		t.Errorf("invalid kind classified as terminal or expression")
	}
	if _, ok := catalog.KindOf(catalog.ExpressionBit | 4); ok {
		t.Errorf("KindOf returned a kind for an unassigned tag")
	}
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("TagOf on an unknown kind did not panic")
		}
	}()
	catalog.TagOf(catalog.Kind(1000))
}

func TestSelectorIsNotBinary(t *testing.T) {
	if got := catalog.SelectResult.Category(); got != catalog.Selector {
		t.Errorf("got category %s but want %s", got, catalog.Selector)
	}
	for _, k := range catalog.OfCategory(catalog.Binary) {
		if k == catalog.SelectResult {
			t.Errorf("%s listed as a binary operator", k)
		}
	}
}
