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
	"io"

	"github.com/gx-org/exprdag/catalog"
	"github.com/gx-org/exprdag/convert"
	"github.com/gx-org/exprdag/engine"
	"github.com/gx-org/exprdag/runner"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

const liveTemporariesMetric = "exprdag_live_temporaries"

type checkReport struct {
	checked       int
	unimplemented int
}

func liveTemporaries(g prometheus.Gatherer) (float64, error) {
	mfs, err := g.Gather()
	if err != nil {
		return 0, errors.Wrap(err, "cannot gather metrics")
	}
	for _, mf := range mfs {
		if mf.GetName() != liveTemporariesMetric || len(mf.GetMetric()) == 0 {
			continue
		}
		return mf.GetMetric()[0].GetGauge().GetValue(), nil
	}
	return 0, errors.Errorf("metric %s not found", liveTemporariesMetric)
}

// check validates the conversion table and the runners, then dispatches
// every operator on every combination of operand kinds.
func check(set *runner.Set, opts []engine.Option, size int) (checkReport, error) {
	reg := prometheus.NewRegistry()
	d := engine.New(append(opts, engine.WithRunners(set), engine.WithRegisterer(reg))...)
	errs := multierr.Combine(convert.Validate(), set.Validate())
	var report checkReport
	for _, op := range catalog.Expressions() {
		for _, kinds := range combinations(op) {
			node, err := build(op, kinds, size)
			if err != nil {
				return report, err
			}
			report.checked++
			err = d.Dispatch(node)
			switch {
			case err == nil:
			case errors.Is(err, runner.ErrUnimplemented):
				report.unimplemented++
			default:
				errs = multierr.Append(errs, errors.Wrapf(err, "%s%v", op, kinds))
			}
		}
	}
	live, err := liveTemporaries(reg)
	if err != nil {
		errs = multierr.Append(errs, err)
	} else if live != 0 {
		errs = multierr.Append(errs, errors.Errorf("%v conversion temporaries not released", live))
	}
	return report, errs
}

func (r checkReport) print(w io.Writer) {
	fmt.Fprintf(w, "%d combinations checked: %d dispatched, %d unimplemented\n", r.checked, r.checked-r.unimplemented, r.unimplemented)
}

func newCheckCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that every operator can be dispatched on every combination of operand kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := f.runners()
			if err != nil {
				return err
			}
			report, err := check(set, []engine.Option{engine.WithLogger(f.logger(cmd))}, f.size)
			report.print(cmd.OutOrStdout())
			if err != nil {
				errs := multierr.Errors(err)
				for _, e := range errs {
					cmd.PrintErrln(e)
				}
				return errors.Errorf("%d check(s) failed", len(errs))
			}
			return nil
		},
	}
}
