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
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	formatAuto  = "auto"
	formatTable = "table"
	formatYAML  = "yaml"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// useYAML returns true if the output is written in YAML.
// By default, tables are written on terminals and YAML everywhere else.
func (f *flags) useYAML(w io.Writer) (bool, error) {
	switch f.format {
	case formatYAML:
		return true, nil
	case formatTable:
		return false, nil
	case formatAuto:
		return !isTerminal(w), nil
	}
	return false, errors.Errorf("unknown format %q: want %s, %s or %s", f.format, formatAuto, formatTable, formatYAML)
}

// tabular is a list of records which can be written as a table.
type tabular interface {
	headers() []string
	rows() [][]string
}

func (f *flags) write(w io.Writer, v tabular) error {
	asYAML, err := f.useYAML(w)
	if err != nil {
		return err
	}
	if asYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "cannot encode YAML")
		}
		return enc.Close()
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(v.headers()...).
		Rows(v.rows()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	_, err = fmt.Fprintln(w, t.String())
	return err
}
