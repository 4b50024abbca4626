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
	"github.com/gx-org/exprdag/terminal"
	"github.com/pkg/errors"
)

// Select is the runner of the operator extracting one entry from the
// register of a sub-expression (for example one of the factors of a
// decomposition).
type Select struct {
	op catalog.Kind
}

// NewSelect returns the runner of a selector operator.
func NewSelect(op catalog.Kind) *Select {
	checkOp(op, catalog.Selector)
	return &Select{op: op}
}

// Op returns the operator kind of the runner.
func (r *Select) Op() catalog.Kind {
	return r.op
}

// Run pushes a copy of the entry of src selected by index to regs.
// The index is always an integer scalar.
func (r *Select) Run(regs, src *terminal.Register, index terminal.Terminal) error {
	if index.Kind() != catalog.IntScalar {
		return errors.Wrapf(ErrInvalidOperand, "%s: index is a %s, want %s", r.op, index.Kind(), catalog.IntScalar)
	}
	i, ok := index.(*terminal.Scalar[int64])
	if !ok {
		return errors.Wrapf(ErrInvalidOperand, "%s: index of type %T", r.op, index)
	}
	val, err := src.At(int(i.Value()))
	if err != nil {
		return errors.Wrapf(ErrInvalidOperand, "%s: %v", r.op, err)
	}
	regs.Push(val.Clone())
	return nil
}
