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

// Package dispatch selects the handler of a runner given the kinds of its
// operands, converting operands when the runner has no handler for them.
package dispatch

import (
	"log/slog"

	"github.com/gx-org/exprdag/catalog"
	"github.com/gx-org/exprdag/convert"
	"github.com/gx-org/exprdag/runner"
	"github.com/gx-org/exprdag/terminal"
	"github.com/pkg/errors"
)

// Core calls runners with operands of any terminal kind.
// A core has no mutable state besides its metrics and can be shared.
type Core struct {
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a core.
type Option func(*Core)

// WithLogger sets the logger of the core. A nil logger means slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Core) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics recorded by the core.
func WithMetrics(m *Metrics) Option {
	return func(c *Core) {
		c.metrics = m
	}
}

// New returns a new dispatch core.
func New(opts ...Option) *Core {
	c := &Core{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

func checkOperand(op catalog.Kind, x terminal.Terminal) (catalog.Kind, error) {
	k := x.Kind()
	if !k.IsTerminal() {
		return k, errors.Wrapf(catalog.ErrUnknownType, "%s: operand of kind %s", op, k)
	}
	return k, nil
}

// temporaries are the operands converted during one dispatch.
type temporaries []terminal.Terminal

func (c *Core) convert(tmps *temporaries, op catalog.Kind, x terminal.Terminal, target catalog.Kind) (terminal.Terminal, error) {
	if x.Kind() == target {
		return x, nil
	}
	out, err := convert.To(x, target)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("conversion", "op", op, "from", x.Kind(), "to", target)
	c.metrics.converted(x.Kind(), target)
	*tmps = append(*tmps, out)
	return out, nil
}

// release frees the temporaries not pushed into the register.
func (c *Core) release(regs *terminal.Register, tmps temporaries) {
	for _, tmp := range tmps {
		if !regs.Holds(tmp) {
			tmp.Free()
		}
		c.metrics.released()
	}
}

func (c *Core) done(op catalog.Kind, path string, err error) error {
	if err != nil {
		path = PathFailed
	}
	c.metrics.dispatched(op, path)
	return err
}

// Unary calls the handler of a unary runner for an operand.
// The operand is converted to its backstop kind if the runner has no
// handler for it.
func (c *Core) Unary(r *runner.Unary, regs *terminal.Register, x terminal.Terminal) error {
	op := r.Op()
	k, err := checkOperand(op, x)
	if err != nil {
		return c.done(op, PathFailed, err)
	}
	if f, ok := r.Native(k); ok {
		return c.done(op, PathNative, f(regs, x))
	}
	target := convert.Backstop(k)
	var tmps temporaries
	defer func() { c.release(regs, tmps) }()
	xt, err := c.convert(&tmps, op, x, target)
	if err != nil {
		return c.done(op, PathFailed, err)
	}
	c.logger.Debug("dispatch", "op", op, "path", PathConverted, "operand", k)
	return c.done(op, PathConverted, r.Backstop(target)(regs, xt))
}

// Binary calls the handler of a binary runner for two operands.
// If the runner has no handler for the pair of operand kinds, operands are
// converted to the backstop kinds given by the promotion policy of the
// runner. An operand already of its target kind is used as is.
func (c *Core) Binary(r *runner.Binary, regs *terminal.Register, x, y terminal.Terminal) error {
	op := r.Op()
	kx, err := checkOperand(op, x)
	if err != nil {
		return c.done(op, PathFailed, err)
	}
	ky, err := checkOperand(op, y)
	if err != nil {
		return c.done(op, PathFailed, err)
	}
	if f, ok := r.Native(kx, ky); ok {
		return c.done(op, PathNative, f(regs, x, y))
	}
	tx, ty := r.Promote(kx, ky)
	backstop := r.Backstop(tx)
	if tx != ty || backstop == nil {
		return c.done(op, PathFailed, errors.Wrapf(catalog.ErrUnknownType, "%s: operands promoted to %s and %s", op, tx, ty))
	}
	var tmps temporaries
	defer func() { c.release(regs, tmps) }()
	xt, err := c.convert(&tmps, op, x, tx)
	if err != nil {
		return c.done(op, PathFailed, err)
	}
	yt, err := c.convert(&tmps, op, y, ty)
	if err != nil {
		return c.done(op, PathFailed, err)
	}
	c.logger.Debug("dispatch", "op", op, "path", PathConverted, "x", kx, "y", ky)
	return c.done(op, PathConverted, backstop(regs, xt, yt))
}

// Select calls a selector runner.
func (c *Core) Select(r *runner.Select, regs, src *terminal.Register, index terminal.Terminal) error {
	return c.done(r.Op(), PathNative, r.Run(regs, src, index))
}
