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

// Package graph builds the Module Graph (spec §4.2): it discovers every
// module transitively reachable from a set of entry points, assigns each a
// namespace and container-class identity, and computes the Export Map used
// to resolve re-exports.
package graph

import "github.com/tsoniclang/tsonic/internal/source"

// ImportKind classifies how an import source resolves (spec §4.2 step 3).
type ImportKind uint8

const (
	// ImportRelative starts with "./" or "../".
	ImportRelative ImportKind = iota
	// ImportAbsolute is rooted at the source root.
	ImportAbsolute
	// ImportExternal is resolved against the Binding Catalog.
	ImportExternal
)

// Import is one import statement within a module.
type Import struct {
	// Source is the literal import path as written in source.
	Source string
	Kind   ImportKind
	Span   source.Span
	// ResolvedPath is the canonical path of the target module, populated
	// once resolution succeeds; empty for ImportExternal imports.
	ResolvedPath string
}

// ReExport is a single `export { a, b as c } from "./x"` (or `export * from
// "./x"`) clause, the raw material the Export Map compacts.
type ReExport struct {
	// From is the literal source of the re-exported module.
	From string
	// Star is true for `export * from "..."`.
	Star bool
	// Names maps local export name -> original name in the source module.
	// Empty (with Star true) for a wildcard re-export.
	Names map[string]string
	Span  source.Span
}

// Module is one parsed source file's graph identity and import/export
// surface (spec §3's Module data-model entry, restricted to the fields the
// graph builder itself owns — statements/declarations belong to the AST).
type Module struct {
	// CanonicalPath is the module's identity: slash-normalized,
	// extension-stripped, dot-segment-resolved.
	CanonicalPath string
	Namespace     string
	ClassName     string
	Imports       []Import
	ReExports     []ReExport
	// Exports maps exported name -> locally declared name for declarations
	// this module exports directly (as opposed to re-exporting).
	Exports map[string]string
}

// ParseResult is what a Parser callback reports for one file.
type ParseResult struct {
	Imports []Import
	// ReExports are `export ... from "..."` clauses (including star
	// re-exports); Exports are names this module declares and exports
	// itself, with no "from" clause.
	ReExports []ReExport
	// Exports maps exported name -> locally declared name, for every
	// top-level declaration or binding this module exports directly
	// (`export function f() {}`, `export { a, b as c }` with no "from").
	Exports map[string]string
	Err     *source.SyntaxError
}

// Parser parses a single source file (identified by its literal,
// not-yet-canonicalized path) and reports its imports and re-exports. The
// real implementation is internal/compiler's programCache, backed by
// internal/ast's recursive-descent parser; Build depends only on this
// narrow seam so the graph algorithm can be built and tested without it.
type Parser func(literalPath string) ParseResult
