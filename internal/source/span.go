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

// Package source provides the lexer, source-file, and diagnostic-location
// primitives shared by every phase of the compiler.  Every downstream phase
// (binding, IR, emission) reports errors in terms of a Span into a File,
// never a raw line/column pair, so that diagnostics remain precise even
// after a node has been rewritten (see Map/Maps for how spans survive
// preprocessing).
package source

// Span represents a contiguous slice of a source file, expressed as rune
// offsets rather than a string slice so that the enclosing line of an error
// can be recovered cheaply.
type Span struct {
	// start is the first character of this span in the original string.
	start int
	// end is one past the final character of this span in the original string.
	end int
}

// NewSpan constructs a new span, checking that start <= end.
func NewSpan(start int, end int) Span {
	if start > end {
		panic("invalid span")
	}

	return Span{start, end}
}

// Start returns the starting offset of this span.
func (p Span) Start() int {
	return p.start
}

// End returns one past the last offset of this span.
func (p Span) End() int {
	return p.end
}

// Length returns the number of characters covered by this span.
func (p Span) Length() int {
	return p.end - p.start
}

// Union returns the smallest span enclosing both p and other.
func (p Span) Union(other Span) Span {
	return Span{min(p.start, other.start), max(p.end, other.end)}
}
