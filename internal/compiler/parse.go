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
package compiler

import (
	"os"
	"path/filepath"

	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/graph"
	"github.com/tsoniclang/tsonic/internal/source"
)

// programCache lets the Module Graph Builder's single Parser callback also
// serve as the one place that reads each file exactly once; internal/binding
// and internal/ir both need the parsed *ast.Program for a module they already
// know the canonical path of, once the graph finishes walking imports.
type programCache struct {
	sourceRoot string
	byPath     map[string]*ast.Program
}

func newProgramCache(sourceRoot string) *programCache {
	return &programCache{sourceRoot: sourceRoot, byPath: make(map[string]*ast.Program)}
}

// resolveFile locates the on-disk file for a literalPath the graph builder's
// queue hands back. Entry points arrive as real filesystem paths (relative to
// the invocation directory); every subsequent queue entry is a canonical,
// extension-stripped path produced by graph.ResolveImportPath, relative to
// sourceRoot.
func (c *programCache) resolveFile(literalPath string) string {
	if _, err := os.Stat(literalPath); err == nil {
		return literalPath
	}

	return filepath.Join(c.sourceRoot, literalPath+".ts")
}

// Parser adapts the cache into a graph.Parser: read the file, run it through
// internal/ast's recursive-descent parser, and translate the parsed imports
// and export clauses into the shape the Module Graph Builder consumes.
func (c *programCache) Parser(literalPath string) graph.ParseResult {
	diskPath := c.resolveFile(literalPath)

	bytes, err := os.ReadFile(diskPath)
	if err != nil {
		f := source.NewFile(diskPath, nil)
		return graph.ParseResult{Err: f.Error(diagnostics.TSN1003, source.NewSpan(0, 0), err.Error())}
	}

	file := source.NewFile(diskPath, bytes)

	prog, errs := ast.Parse(file)
	if len(errs) > 0 {
		// The graph builder records only one diagnostic per file, so only the
		// first parse error is reported; the others are dropped and the
		// program is not cached. The first error is enough to fail the build.
		return graph.ParseResult{Err: errs[0]}
	}

	cp := graph.Canonicalize(literalPath)
	c.byPath[cp] = prog

	return graph.ParseResult{
		Imports:   convertImports(prog),
		ReExports: convertReExports(prog),
		Exports:   convertLocalExports(prog),
	}
}

// Program returns the cached parse of the module at canonicalPath, if the
// graph walk reached it.
func (c *programCache) Program(canonicalPath string) (*ast.Program, bool) {
	p, ok := c.byPath[canonicalPath]
	return p, ok
}

func convertImports(prog *ast.Program) []graph.Import {
	var out []graph.Import

	for _, imp := range prog.Imports {
		out = append(out, graph.Import{Source: imp.Source, Span: imp.Span})
	}

	return out
}

func convertReExports(prog *ast.Program) []graph.ReExport {
	var out []graph.ReExport

	for _, ex := range prog.Exports {
		if ex.From == "" {
			continue
		}

		re := graph.ReExport{From: ex.From, Star: ex.Star, Span: ex.Span}

		if !ex.Star {
			re.Names = make(map[string]string, len(ex.Specifiers))
			for _, spec := range ex.Specifiers {
				re.Names[spec.Exported] = spec.Local
			}
		}

		out = append(out, re)
	}

	return out
}

func convertLocalExports(prog *ast.Program) map[string]string {
	out := make(map[string]string)

	for _, ex := range prog.Exports {
		if ex.From != "" || ex.Star {
			continue
		}

		for _, spec := range ex.Specifiers {
			out[spec.Exported] = spec.Local
		}
	}

	return out
}
