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

// Package termio renders deterministic, non-interactive terminal reports for
// the compiler's --verbose diagnostics and catalog-load summaries.  Unlike its
// teacher (an interactive inspector TUI), this package never reads the
// keyboard or switches the terminal into raw mode: compilations are batch
// jobs, so the only question this package answers is "how wide is stdout,
// and how do I colour a cell".
package termio

import "fmt"

// TermBlack represents black.
const TermBlack = uint(0)

// TermRed represents red.
const TermRed = uint(1)

// TermGreen represents green.
const TermGreen = uint(2)

// TermYellow represents yellow.
const TermYellow = uint(3)

// TermBlue represents blue.
const TermBlue = uint(4)

// TermMagenta represents magenta.
const TermMagenta = uint(5)

// TermCyan represents cyan.
const TermCyan = uint(6)

// TermWhite represents white.
const TermWhite = uint(7)

// AnsiEscape represents an ANSI escape code used for formatting text in a terminal.
type AnsiEscape struct {
	escape string
	count  uint
}

// NewAnsiEscape constructs an empty escape.
func NewAnsiEscape() AnsiEscape {
	return AnsiEscape{"\033", 0}
}

// ResetAnsiEscape constructs a reset term.
func ResetAnsiEscape() AnsiEscape {
	return AnsiEscape{"\033[0", 1}
}

// BoldAnsiEscape constructs a bold term.
func BoldAnsiEscape() AnsiEscape {
	return AnsiEscape{"\033[1", 1}
}

// UnderlineAnsiEscape constructs an underline term.
func UnderlineAnsiEscape() AnsiEscape {
	return AnsiEscape{"\033[4", 1}
}

// FgColour sets the foreground colour.
func (p AnsiEscape) FgColour(col uint) AnsiEscape {
	col += 30

	var escape string
	if p.count > 0 {
		escape = fmt.Sprintf("%s;%d", p.escape, col)
	} else {
		escape = fmt.Sprintf("%s[%d", p.escape, col)
	}

	return AnsiEscape{escape, p.count + 1}
}

// BgColour sets the background colour.
func (p AnsiEscape) BgColour(col uint) AnsiEscape {
	col += 40

	var escape string
	if p.count > 0 {
		escape = fmt.Sprintf("%s;%d", p.escape, col)
	} else {
		escape = fmt.Sprintf("%s[%d", p.escape, col)
	}

	return AnsiEscape{escape, p.count + 1}
}

// Build constructs the final escape.
func (p AnsiEscape) Build() string {
	return fmt.Sprintf("%sm", p.escape)
}
