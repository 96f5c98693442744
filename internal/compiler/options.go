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

// Package compiler wires the pipeline stages (catalog, graph, binding, types,
// ir, semantic, emit, manifest) into the single entry point the CLI calls.
package compiler

// Options mirrors the `tsonic generate` flags (spec §6), and may additionally
// be supplied (partially) via a tsonic.yaml project-config file that the
// manifest package merges in before the CLI flags are applied on top.
type Options struct {
	// EntryPoints are the root source files the module graph builder starts
	// from.
	EntryPoints []string
	// SourceRoot is the directory absolute import paths ("/foo/bar") are
	// resolved against, and the base namespace/class-name derivation is
	// relative to.
	SourceRoot string
	// TypeRoots are directories or doublestar globs naming binding
	// descriptor roots to load into the catalog.
	TypeRoots []string
	// OutDir is where emitted TL compilation units and the project manifest
	// are written.
	OutDir string
	// RootNamespace prefixes every emitted namespace.
	RootNamespace string
	// Lib holds the paths given with --lib. Compile does not read this
	// field: no library is parsed, loaded or checked from these paths.
	Lib []string
	// ProjectConfig optionally points at a tsonic.yaml overriding manifest
	// generation defaults (target framework, nullable context, etc).
	ProjectConfig string
	// Verbose enables debug-level logging and the --verbose catalog
	// load-stats summary.
	Verbose bool
	// NoColour disables ANSI colourisation of diagnostics even when stderr
	// is a terminal.
	NoColour bool
	// MaxExportHops bounds the Export Map transitive closure (spec §4.2,
	// default 10).
	MaxExportHops int
}

// DefaultMaxExportHops is the transitive-closure bound used when Options
// does not override it.
const DefaultMaxExportHops = 10

// WithDefaults returns a copy of o with zero-valued fields replaced by their
// documented defaults.
func (o Options) WithDefaults() Options {
	if o.MaxExportHops == 0 {
		o.MaxExportHops = DefaultMaxExportHops
	}

	if o.OutDir == "" {
		o.OutDir = "."
	}

	return o
}
