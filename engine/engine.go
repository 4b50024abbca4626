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

// Package engine routes the nodes of an expression DAG to the runner of
// their operator.
package engine

import (
	"log/slog"

	"github.com/gx-org/exprdag/catalog"
	"github.com/gx-org/exprdag/dag"
	"github.com/gx-org/exprdag/dispatch"
	"github.com/gx-org/exprdag/runner"
	"github.com/gx-org/exprdag/terminal"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ErrUnknownExpression is returned when the tag of a node does not
	// match any operator with a runner.
	ErrUnknownExpression = errors.New("unknown expression type")

	// ErrNotEvaluated is returned when an operand of a node has not been
	// evaluated yet.
	ErrNotEvaluated = errors.New("operand not evaluated")
)

// TerminalHook is called when a terminal node is dispatched.
type TerminalHook func(dag.Node) error

type (
	// Option configures a dispatcher.
	Option func(*options)

	options struct {
		logger  *slog.Logger
		reg     prometheus.Registerer
		runners *runner.Set
		hook    TerminalHook
	}
)

// WithLogger sets the logger of the dispatcher. A nil logger means slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegisterer registers the dispatch metrics in reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.reg = reg
	}
}

// WithRunners sets the runners of the operators.
// runner.Default() is used if not set.
func WithRunners(set *runner.Set) Option {
	return func(o *options) {
		o.runners = set
	}
}

// WithTerminalHook sets the function called when dispatching terminal nodes.
func WithTerminalHook(hook TerminalHook) Option {
	return func(o *options) {
		o.hook = hook
	}
}

// Dispatcher runs the operator of a node given the results of its arguments.
// It stores no evaluation state.
type Dispatcher struct {
	core    *dispatch.Core
	runners *runner.Set
	hook    TerminalHook
}

func noHook(dag.Node) error {
	return nil
}

// New returns a new dispatcher.
func New(opts ...Option) *Dispatcher {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.runners == nil {
		o.runners = runner.Default()
	}
	if o.hook == nil {
		o.hook = noHook
	}
	coreOpts := []dispatch.Option{dispatch.WithLogger(o.logger)}
	if o.reg != nil {
		coreOpts = append(coreOpts, dispatch.WithMetrics(dispatch.NewMetrics(o.reg)))
	}
	return &Dispatcher{
		core:    dispatch.New(coreOpts...),
		runners: o.runners,
		hook:    o.hook,
	}
}

// Runners returns the runners used by the dispatcher.
func (d *Dispatcher) Runners() *runner.Set {
	return d.runners
}

// operand returns the terminal an argument evaluates to.
func operand(op catalog.Kind, i int, arg dag.Node) (terminal.Terminal, error) {
	t, ok := arg.Regs().First()
	if !ok {
		return nil, errors.Wrapf(ErrNotEvaluated, "%s: argument %d (%s) has no result", op, i, arg.Tag())
	}
	return t, nil
}

// Dispatch runs the operator of a node and pushes its results to the
// register of the node. The arguments of the node must have been evaluated.
func (d *Dispatcher) Dispatch(node dag.Node) error {
	tag := node.Tag()
	if tag.IsTerminal() {
		return d.hook(node)
	}
	op, ok := catalog.KindOf(tag)
	if !ok || !op.IsExpression() {
		return errors.Wrapf(ErrUnknownExpression, "tag %s", tag)
	}
	args := node.Args()
	if want := op.Category().Arity(); len(args) != want {
		return errors.Wrapf(runner.ErrInvalidOperand, "%s requires %d argument(s) but got %d", op, want, len(args))
	}
	regs := node.Regs()
	switch op.Category() {
	case catalog.Unary:
		r, ok := d.runners.Unary(op)
		if !ok {
			return errors.Wrapf(ErrUnknownExpression, "no runner for %s", op)
		}
		x, err := operand(op, 0, args[0])
		if err != nil {
			return err
		}
		return d.core.Unary(r, regs, x)
	case catalog.Binary:
		r, ok := d.runners.Binary(op)
		if !ok {
			return errors.Wrapf(ErrUnknownExpression, "no runner for %s", op)
		}
		x, err := operand(op, 0, args[0])
		if err != nil {
			return err
		}
		y, err := operand(op, 1, args[1])
		if err != nil {
			return err
		}
		return d.core.Binary(r, regs, x, y)
	case catalog.Selector:
		r, ok := d.runners.Selector(op)
		if !ok {
			return errors.Wrapf(ErrUnknownExpression, "no runner for %s", op)
		}
		src := args[0].Regs()
		if src.Len() == 0 {
			return errors.Wrapf(ErrNotEvaluated, "%s: argument 0 (%s) has no result", op, args[0].Tag())
		}
		index, err := operand(op, 1, args[1])
		if err != nil {
			return err
		}
		return d.core.Select(r, regs, src, index)
	}
	return errors.Wrapf(ErrUnknownExpression, "%s of category %s", op, op.Category())
}
