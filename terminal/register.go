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

package terminal

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrOutOfRange is returned when reading a register entry that does not exist.
var ErrOutOfRange = errors.New("register index out of range")

// Register stores the terminals computed for a node.
// The register owns the terminals pushed into it.
type Register struct {
	values []Terminal
}

// NewRegister returns a register holding some terminals.
func NewRegister(vals ...Terminal) *Register {
	return &Register{values: append([]Terminal(nil), vals...)}
}

// Push transfers the ownership of terminals to the register.
func (r *Register) Push(vals ...Terminal) {
	r.values = append(r.values, vals...)
}

// Len returns the number of terminals in the register.
func (r *Register) Len() int {
	return len(r.values)
}

// At returns the i-th terminal of the register.
func (r *Register) At(i int) (Terminal, error) {
	if i < 0 || i >= len(r.values) {
		return nil, errors.Wrapf(ErrOutOfRange, "index %d in a register of %d entries", i, len(r.values))
	}
	return r.values[i], nil
}

// First returns the first terminal of the register.
func (r *Register) First() (Terminal, bool) {
	if len(r.values) == 0 {
		return nil, false
	}
	return r.values[0], true
}

// Values returns a copy of the list of terminals in the register.
func (r *Register) Values() []Terminal {
	return append([]Terminal(nil), r.values...)
}

// Holds returns true if the given terminal is stored in the register.
func (r *Register) Holds(t Terminal) bool {
	for _, v := range r.values {
		if v == t {
			return true
		}
	}
	return false
}

// Reset frees all the terminals of the register and empties it.
func (r *Register) Reset() {
	for _, v := range r.values {
		v.Free()
	}
	r.values = nil
}

func (r *Register) String() string {
	var s strings.Builder
	s.WriteString("[")
	for i, v := range r.values {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(v.String())
	}
	s.WriteString("]")
	return s.String()
}
