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
package source

import "fmt"

// Map associates AST nodes from a single file with their originating span,
// so that a later phase (which only holds the node, not its text) can still
// produce a precise diagnostic.
type Map[T comparable] struct {
	mapping map[T]Span
	srcfile *File
}

// NewMap constructs an initially empty source map for a given file.
func NewMap[T comparable](srcfile *File) *Map[T] {
	return &Map[T]{make(map[T]Span), srcfile}
}

// Source returns the file this map is relative to.
func (p *Map[T]) Source() *File {
	return p.srcfile
}

// Put registers a node with its span.  Panics if already registered, since
// that indicates a parser bug (double registration of the same AST node).
func (p *Map[T]) Put(item T, span Span) {
	if _, ok := p.mapping[item]; ok {
		panic(fmt.Sprintf("source map key already exists: %v", any(item)))
	}

	p.mapping[item] = span
}

// Has checks whether a node is registered in this map.
func (p *Map[T]) Has(item T) bool {
	_, ok := p.mapping[item]
	return ok
}

// Get returns the span registered for a node, panicking if absent.
func (p *Map[T]) Get(item T) Span {
	if s, ok := p.mapping[item]; ok {
		return s
	}

	panic(fmt.Sprintf("missing source map entry: %v", any(item)))
}

// Maps aggregates the per-file Map instances for an entire compilation, so
// that a node can be looked up without the caller knowing which file it
// originated from.
type Maps[T comparable] struct {
	maps []*Map[T]
}

// NewMaps constructs an (initially empty) aggregate of source maps,
// populated incrementally as each file is parsed.
func NewMaps[T comparable]() *Maps[T] {
	return &Maps[T]{nil}
}

// Join incorporates a per-file map into this aggregate.
func (p *Maps[T]) Join(m *Map[T]) {
	p.maps = append(p.maps, m)
}

// Has checks whether any constituent map has a mapping for the given node.
func (p *Maps[T]) Has(node T) bool {
	for _, m := range p.maps {
		if m.Has(node) {
			return true
		}
	}

	return false
}

// Error constructs a diagnostic for the given node, searching every
// constituent map.  Panics if the node is registered nowhere, since every
// node reaching a later phase must have originated from the parser.
func (p *Maps[T]) Error(node T, code Code, msg string) *SyntaxError {
	for _, m := range p.maps {
		if m.Has(node) {
			return m.srcfile.Error(code, m.Get(node), msg)
		}
	}

	panic("missing source mapping for node")
}

// Copy propagates the span of an existing node onto a newly synthesised one,
// used when a node is expanded into one or more replacement nodes during a
// lowering pass.
func (p *Maps[T]) Copy(from T, to T) {
	for _, m := range p.maps {
		if m.Has(from) {
			m.Put(to, m.Get(from))
			return
		}
	}
}
