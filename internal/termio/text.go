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

// FormattedText represents a chunk of text with an optional ANSI format applied.
type FormattedText struct {
	format *AnsiEscape
	text   []rune
}

// NewText constructs a new (unformatted) chunk of text.
func NewText(text string) FormattedText {
	return FormattedText{nil, []rune(text)}
}

// NewFormattedText constructs a new chunk of text with a given format.
func NewFormattedText(text string, format AnsiEscape) FormattedText {
	return FormattedText{&format, []rune(text)}
}

// NewColouredText constructs a new (coloured) chunk of text.
func NewColouredText(text string, colour uint) FormattedText {
	escape := NewAnsiEscape().FgColour(colour)
	return FormattedText{&escape, []rune(text)}
}

// Len returns the number of characters (runes) in this chunk, excluding any
// formatting escapes.
func (p FormattedText) Len() uint {
	return uint(len(p.text))
}

// Clip returns a copy of this text truncated to at most width characters.
func (p FormattedText) Clip(width uint) FormattedText {
	if uint(len(p.text)) <= width {
		return p
	}

	return FormattedText{p.format, p.text[:width]}
}

// Pad returns a copy of this text right-padded with spaces up to width
// characters.  If the text is already at least width characters, it is
// returned unchanged.
func (p FormattedText) Pad(width uint) FormattedText {
	n := uint(len(p.text))
	if n >= width {
		return p
	}

	padded := make([]rune, width)
	copy(padded, p.text)

	for i := n; i < width; i++ {
		padded[i] = ' '
	}

	return FormattedText{p.format, padded}
}

// Bytes returns an ANSI-formatted byte representation of this chunk.
func (p FormattedText) Bytes() []byte {
	if p.format != nil {
		bytes := []byte(p.format.Build())
		bytes = append(bytes, []byte(string(p.text))...)

		return append(bytes, []byte(ResetAnsiEscape().Build())...)
	}

	return []byte(string(p.text))
}

// Plain returns the unformatted string contents of this chunk.
func (p FormattedText) Plain() string {
	return string(p.text)
}
