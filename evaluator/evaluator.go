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

// Package evaluator evaluates expression DAGs, children before parents.
package evaluator

import (
	"github.com/gx-org/exprdag/dag"
	"github.com/gx-org/exprdag/engine"
	"github.com/pkg/errors"
)

// ErrCycle is returned when a node is its own descendant.
var ErrCycle = errors.New("cycle in expression graph")

type state int

const (
	visiting state = iota + 1
	done
)

type evaluator struct {
	dispatcher *engine.Dispatcher
	states     map[dag.Node]state
}

// Evaluate dispatches every node reachable from root after its arguments.
// Shared nodes are dispatched once and nodes already holding results
// are not dispatched again.
func Evaluate(d *engine.Dispatcher, root dag.Node) error {
	ev := &evaluator{
		dispatcher: d,
		states:     make(map[dag.Node]state),
	}
	return ev.visit(root)
}

func (ev *evaluator) visit(node dag.Node) error {
	switch ev.states[node] {
	case done:
		return nil
	case visiting:
		return errors.Wrapf(ErrCycle, "node %s", node.Tag())
	}
	ev.states[node] = visiting
	if node.Tag().IsExpression() && node.Regs().Len() > 0 {
		ev.states[node] = done
		return nil
	}
	for _, arg := range node.Args() {
		if err := ev.visit(arg); err != nil {
			return err
		}
	}
	if err := ev.dispatcher.Dispatch(node); err != nil {
		return err
	}
	ev.states[node] = done
	return nil
}
