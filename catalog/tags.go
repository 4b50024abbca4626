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

package catalog

import "fmt"

// Tag identifies a kind at run time.
type Tag uint32

const (
	// PrimeFloor is the number above which tags are drawn.
	PrimeFloor = 100

	// ExpressionBit is set in the tag of every expression kind
	// and never in the tag of a terminal kind.
	ExpressionBit Tag = 1 << 16
)

var (
	tagOfKind [numKinds]Tag
	kindOfTag = make(map[Tag]Kind, numKinds)
)

func init() {
	next := nextPrime(PrimeFloor)
	for k := InvalidKind + 1; k < numKinds; k++ {
		tag := Tag(next)
		if tag&ExpressionBit != 0 {
			panic(fmt.Sprintf("tag %d of %s overlaps the expression bit", next, k))
		}
		if k.Category() != Terminal {
			tag |= ExpressionBit
		}
		tagOfKind[k] = tag
		kindOfTag[tag] = k
		next = nextPrime(next)
	}
}

// nextPrime returns the smallest prime strictly greater than n.
func nextPrime(n int) int {
	for p := n + 1; ; p++ {
		if isPrime(p) {
			return p
		}
	}
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// TagOf returns the tag of a kind.
// The catalog is closed: asking for the tag of a kind outside of it is a
// programming error and panics.
func TagOf(k Kind) Tag {
	if !k.Valid() {
		panic(fmt.Sprintf("%s is not in the catalog", k))
	}
	return tagOfKind[k]
}

// KindOf returns the kind given a tag.
func KindOf(t Tag) (Kind, bool) {
	k, ok := kindOfTag[t]
	return k, ok
}

// IsTerminal returns true if the tag is the tag of a terminal.
func (t Tag) IsTerminal() bool {
	return t&ExpressionBit == 0
}

// IsExpression returns true if the tag is the tag of an expression.
func (t Tag) IsExpression() bool {
	return !t.IsTerminal()
}

// Kind returns the kind of the tag or InvalidKind if the tag is unknown.
func (t Tag) Kind() Kind {
	k, ok := KindOf(t)
	if !ok {
		return InvalidKind
	}
	return k
}

func (t Tag) String() string {
	k, ok := KindOf(t)
	if !ok {
		return fmt.Sprintf("Tag(%#x)", uint32(t))
	}
	return fmt.Sprintf("%s(%#x)", k, uint32(t))
}
