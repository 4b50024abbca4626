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
	"strconv"

	"github.com/gx-org/exprdag/catalog"
	"github.com/spf13/cobra"
)

type kindRecord struct {
	Name      string `yaml:"name"`
	Tag       string `yaml:"tag"`
	Category  string `yaml:"category"`
	Family    string `yaml:"family,omitempty"`
	Structure string `yaml:"structure,omitempty"`
	Results   int    `yaml:"results,omitempty"`
}

type kindRecords []kindRecord

func (kindRecords) headers() []string {
	return []string{"kind", "tag", "category", "family", "structure", "results"}
}

func (recs kindRecords) rows() [][]string {
	rows := make([][]string, len(recs))
	for i, r := range recs {
		results := ""
		if r.Results > 0 {
			results = strconv.Itoa(r.Results)
		}
		rows[i] = []string{r.Name, r.Tag, r.Category, r.Family, r.Structure, results}
	}
	return rows
}

func catalogRecords() kindRecords {
	var recs kindRecords
	for _, k := range catalog.All() {
		rec := kindRecord{
			Name:     k.String(),
			Tag:      fmt.Sprintf("%#x", uint32(catalog.TagOf(k))),
			Category: k.Category().String(),
		}
		if k.IsTerminal() {
			rec.Family = k.Family().String()
			rec.Structure = k.Structure().String()
		} else {
			rec.Results = k.Results()
		}
		recs = append(recs, rec)
	}
	return recs
}

func newCatalogCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the terminal and operator kinds with their tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return f.write(cmd.OutOrStdout(), catalogRecords())
		},
	}
}
