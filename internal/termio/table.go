// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package termio

import (
	"fmt"
)

// FormattedTable is useful for printing tables to the terminal. No code in
// this repository prints one: the --verbose catalog load summary is a
// single debug log line.
type FormattedTable struct {
	// Maximum width of each column.
	widths []uint
	// Table data stored in row-major format.
	rows [][]FormattedText
}

// NewFormattedTable constructs a new table with given dimensions.
func NewFormattedTable(width uint, height uint) *FormattedTable {
	widths := make([]uint, width)
	rows := make([][]FormattedText, height)

	for i := uint(0); i < height; i++ {
		rows[i] = make([]FormattedText, width)
	}

	return &FormattedTable{widths, rows}
}

// Set the contents of a given cell in this table.
func (p *FormattedTable) Set(col uint, row uint, val FormattedText) {
	p.widths[col] = max(p.widths[col], val.Len())
	p.rows[row][col] = val
}

// SetRow sets the contents of an entire row in this table.
func (p *FormattedTable) SetRow(row uint, vals ...FormattedText) {
	if len(vals) != len(p.widths) {
		panic("incorrect number of columns")
	}

	for i := 0; i < len(p.widths); i++ {
		p.widths[i] = max(p.widths[i], vals[i].Len())
	}

	p.rows[row] = vals
}

// Height returns the number of rows in this table.
func (p *FormattedTable) Height() uint {
	return uint(len(p.rows))
}

// SetMaxWidths puts an upper bound on the width of every column.
func (p *FormattedTable) SetMaxWidths(width uint) {
	for i := uint(0); i < uint(len(p.widths)); i++ {
		p.widths[i] = min(p.widths[i], width)
	}
}

// Print the table, with or without ANSI escapes.  Disabling escapes is
// useful in environments (e.g. CI logs, redirected files) that don't
// support them, since otherwise one gets visible escape bytes.
func (p *FormattedTable) Print(escapes bool) {
	for i := range p.rows {
		row := p.rows[i]

		for j, cell := range row {
			width := p.widths[j]
			cell = cell.Clip(width).Pad(width)

			var text string
			if escapes {
				text = string(cell.Bytes())
			} else {
				text = cell.Plain()
			}

			fmt.Printf(" %s |", text)
		}

		fmt.Println()
	}
}
