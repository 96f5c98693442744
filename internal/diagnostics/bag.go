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
package diagnostics

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/tsoniclang/tsonic/internal/source"
)

// Bag is an append-only, single-owner collection of diagnostics for one
// compilation (per spec §5 Shared-resource policy).  A compilation fails iff
// the bag contains any error-severity entry at the next phase boundary.
type Bag struct {
	entries []*source.SyntaxError
}

// NewBag constructs an empty diagnostic bag.
func NewBag() *Bag {
	return &Bag{nil}
}

// Add appends a diagnostic to the bag. Nil is ignored, so call sites can
// write `bag.Add(maybeErr)` without a nil check.
func (b *Bag) Add(err *source.SyntaxError) {
	if err != nil {
		b.entries = append(b.entries, err)
	}
}

// AddAll appends every diagnostic in errs to the bag.
func (b *Bag) AddAll(errs []*source.SyntaxError) {
	for _, e := range errs {
		b.Add(e)
	}
}

// HasErrors reports whether the bag contains any error-severity entry.
func (b *Bag) HasErrors() bool {
	for _, e := range b.entries {
		if e.Severity() == source.SeverityError {
			return true
		}
	}

	return false
}

// Entries returns every diagnostic accumulated so far, in the order raised.
func (b *Bag) Entries() []*source.SyntaxError {
	return b.entries
}

// Count returns the total number of diagnostics in the bag.
func (b *Bag) Count() int {
	return len(b.entries)
}

// CountBySeverity returns the number of errors and warnings respectively.
func (b *Bag) CountBySeverity() (errors int, warnings int) {
	for _, e := range b.entries {
		if e.Severity() == source.SeverityError {
			errors++
		} else {
			warnings++
		}
	}

	return
}

// Print writes every diagnostic to w in "<file>:<line> <CODE> <message>"
// format, colourised (red for errors, yellow for warnings) when colourise
// is true, per the --verbose / stderr reporting contract.
func (b *Bag) Print(w io.Writer, colourise bool) {
	for _, e := range b.entries {
		line := e.String()

		if !colourise {
			fmt.Fprintln(w, line)
			continue
		}

		if e.Severity() == source.SeverityError {
			fmt.Fprintln(w, color.RedString("%s", line))
		} else {
			fmt.Fprintln(w, color.YellowString("%s", line))
		}
	}
}

// ICE represents an internal compiler error: an invariant violation that
// should be unreachable given a well-formed pipeline.  It is recovered only
// at the outermost CLI boundary -- never swallowed -- and always indicates a
// compiler bug, not a user-input or source-language error.
type ICE struct {
	Reason string
}

// Error implements the error interface.
func (e ICE) Error() string {
	return fmt.Sprintf("ICE: %s", e.Reason)
}

// Panic raises an ICE for an invariant violation at reason.
func Panic(reason string) {
	panic(ICE{reason})
}
