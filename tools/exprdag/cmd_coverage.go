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

package main

import (
	"fmt"
	"strings"

	"github.com/gx-org/exprdag/catalog"
	"github.com/gx-org/exprdag/convert"
	"github.com/gx-org/exprdag/dag"
	"github.com/gx-org/exprdag/engine"
	"github.com/gx-org/exprdag/runner"
	"github.com/gx-org/exprdag/terminal/terminaltest"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	pathNative        = "native"
	pathUnimplemented = "unimplemented"
)

// combinations returns every list of operand kinds an operator can be
// called with. Selectors are not included: their operands are registers.
func combinations(op catalog.Kind) [][]catalog.Kind {
	var combs [][]catalog.Kind
	switch op.Category() {
	case catalog.Unary:
		for _, x := range catalog.Terminals() {
			combs = append(combs, []catalog.Kind{x})
		}
	case catalog.Binary:
		for _, x := range catalog.Terminals() {
			for _, y := range catalog.Terminals() {
				combs = append(combs, []catalog.Kind{x, y})
			}
		}
	}
	return combs
}

// build returns a node applying an operator to sample terminals.
func build(op catalog.Kind, kinds []catalog.Kind, size int) (*dag.Expr, error) {
	args := make([]dag.Node, len(kinds))
	for i, k := range kinds {
		args[i] = dag.Terminal(terminaltest.Sample(k, size))
	}
	return dag.NewExpr(op, args...)
}

// plannedPath returns how the dispatch core handles an operator given the
// kinds of its operands, without running it.
func plannedPath(set *runner.Set, op catalog.Kind, kinds []catalog.Kind) string {
	converted := func(targets ...catalog.Kind) string {
		names := make([]string, len(targets))
		for i, t := range targets {
			names[i] = t.String()
		}
		return fmt.Sprintf("converted(%s)", strings.Join(names, ","))
	}
	switch op.Category() {
	case catalog.Unary:
		r, _ := set.Unary(op)
		if _, ok := r.Native(kinds[0]); ok {
			return pathNative
		}
		return converted(convert.Backstop(kinds[0]))
	case catalog.Binary:
		r, _ := set.Binary(op)
		if _, ok := r.Native(kinds[0], kinds[1]); ok {
			return pathNative
		}
		return converted(r.Promote(kinds[0], kinds[1]))
	}
	return pathNative
}

type coverageRecord struct {
	Op       string   `yaml:"op"`
	Operands []string `yaml:"operands"`
	Path     string   `yaml:"path"`
}

type coverageRecords []coverageRecord

func (coverageRecords) headers() []string {
	return []string{"operator", "operands", "path"}
}

func (recs coverageRecords) rows() [][]string {
	rows := make([][]string, len(recs))
	for i, r := range recs {
		rows[i] = []string{r.Op, strings.Join(r.Operands, ", "), r.Path}
	}
	return rows
}

func coverage(d *engine.Dispatcher, ops []catalog.Kind, size int) (coverageRecords, error) {
	var recs coverageRecords
	for _, op := range ops {
		if op.Category() == catalog.Selector {
			recs = append(recs, coverageRecord{
				Op:       op.String(),
				Operands: []string{"register", catalog.IntScalar.String()},
				Path:     pathNative,
			})
			continue
		}
		for _, kinds := range combinations(op) {
			rec := coverageRecord{
				Op:   op.String(),
				Path: plannedPath(d.Runners(), op, kinds),
			}
			for _, k := range kinds {
				rec.Operands = append(rec.Operands, k.String())
			}
			node, err := build(op, kinds, size)
			if err != nil {
				return nil, err
			}
			if err := d.Dispatch(node); errors.Is(err, runner.ErrUnimplemented) {
				rec.Path = pathUnimplemented
			} else if err != nil {
				rec.Path = "failed: " + err.Error()
			}
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

func newCoverageCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "coverage [operator...]",
		Short: "Show how every operator is dispatched for every combination of operand kinds",
		RunE: func(cmd *cobra.Command, args []string) error {
			ops := catalog.Expressions()
			if len(args) > 0 {
				ops = nil
				for _, name := range args {
					op, err := operatorByName(name)
					if err != nil {
						return err
					}
					ops = append(ops, op)
				}
			}
			set, err := f.runners()
			if err != nil {
				return err
			}
			d := engine.New(engine.WithRunners(set), engine.WithLogger(f.logger(cmd)))
			recs, err := coverage(d, ops, f.size)
			if err != nil {
				return err
			}
			return f.write(cmd.OutOrStdout(), recs)
		},
	}
}
