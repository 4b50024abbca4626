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

// Command exprdag inspects the operators, conversions, and dispatch paths
// of the expression DAG engine.
package main

import (
	"log/slog"
	"os"

	"github.com/gx-org/exprdag/catalog"
	"github.com/gx-org/exprdag/runner"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type flags struct {
	format  string
	promote string
	size    int
	verbose bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "exprdag",
		Short:         "Inspect the expression DAG dispatch engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return f.validate()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.format, "format", formatAuto, "output format: auto, table or yaml")
	pf.StringVar(&f.promote, "promote", "", "promotion policy of every binary operator: family or complex (default: per operator)")
	pf.IntVar(&f.size, "size", 3, "number of rows and columns of the sample matrices")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "log conversions and dispatch paths")
	root.AddCommand(
		newCatalogCmd(f),
		newCoverageCmd(f),
		newCheckCmd(f),
	)
	return root
}

func (f *flags) validate() error {
	if f.size < 1 {
		return errors.Errorf("invalid --size %d: sample matrices need at least one row and one column", f.size)
	}
	return nil
}

func (f *flags) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func (f *flags) runners() (*runner.Set, error) {
	set := runner.Default()
	if f.promote == "" {
		return set, nil
	}
	p, err := runner.PolicyByName(f.promote)
	if err != nil {
		return nil, err
	}
	return set.WithPolicies(p), nil
}

func operatorByName(name string) (catalog.Kind, error) {
	for _, op := range catalog.Expressions() {
		if op.String() == name {
			return op, nil
		}
	}
	return catalog.InvalidKind, errors.Wrapf(catalog.ErrUnknownType, "no operator %q", name)
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
