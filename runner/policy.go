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
	"github.com/gx-org/exprdag/catalog"
	"github.com/pkg/errors"
)

// Policy returns the backstop kinds two operands are converted to when a
// binary operator has no native handler for them.
// Both returned kinds are the same backstop kind.
type Policy func(x, y catalog.Kind) (catalog.Kind, catalog.Kind)

// PromoteByFamily converts operands of the real family to real matrices and
// converts both operands to complex matrices as soon as one of them is complex.
func PromoteByFamily(x, y catalog.Kind) (catalog.Kind, catalog.Kind) {
	if x.Family() == catalog.Complex || y.Family() == catalog.Complex {
		return catalog.ComplexMatrix, catalog.ComplexMatrix
	}
	return catalog.RealMatrix, catalog.RealMatrix
}

// PromoteToComplex always converts operands to complex matrices.
func PromoteToComplex(x, y catalog.Kind) (catalog.Kind, catalog.Kind) {
	return catalog.ComplexMatrix, catalog.ComplexMatrix
}

// PolicyByName returns a policy given its name.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "family":
		return PromoteByFamily, nil
	case "complex":
		return PromoteToComplex, nil
	default:
		return nil, errors.Errorf("unknown promotion policy %q: want family or complex", name)
	}
}
