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
package binding

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/catalog"
	"github.com/tsoniclang/tsonic/internal/graph"
	"github.com/tsoniclang/tsonic/internal/source"
	"github.com/tsoniclang/tsonic/internal/testutil/assert"
)

// buildFromSources parses every fixture file through internal/ast, runs it
// through the Module Graph Builder, then builds a Registry over the result —
// the same wiring internal/compiler uses, minus the on-disk file reads.
func buildFromSources(t *testing.T, sources map[string]string, cat *catalog.Catalog) (*graph.Graph, *Registry) {
	t.Helper()

	progs := make(map[string]*ast.Program)

	parser := func(literal string) graph.ParseResult {
		cp := graph.Canonicalize(literal)

		src, ok := sources[cp]
		if !ok {
			t.Fatalf("no fixture source registered for %q", cp)
		}

		file := source.NewFile(cp+".ts", []byte(src))

		prog, errs := ast.Parse(file)
		if len(errs) > 0 {
			t.Fatalf("unexpected parse errors in %q: %v", cp, errs)
		}

		progs[cp] = prog

		return graph.ParseResult{
			Imports:   convertImportsForTest(prog),
			ReExports: convertReExportsForTest(prog),
			Exports:   convertLocalExportsForTest(prog),
		}
	}

	g, bag := graph.Build([]string{"index"}, graph.Options{RootNamespace: "App", SourceRoot: "."}, parser)
	if bag.HasErrors() {
		t.Fatalf("unexpected graph errors: %v", bag)
	}

	programOf := func(cp string) (*ast.Program, bool) {
		p, ok := progs[cp]
		return p, ok
	}

	return g, Build(g, programOf, ".", cat)
}

func convertImportsForTest(prog *ast.Program) []graph.Import {
	var out []graph.Import
	for _, imp := range prog.Imports {
		out = append(out, graph.Import{Source: imp.Source, Span: imp.Span})
	}

	return out
}

func convertReExportsForTest(prog *ast.Program) []graph.ReExport {
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

func convertLocalExportsForTest(prog *ast.Program) map[string]string {
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

func TestBuild_ResolvesLocalDeclaration(t *testing.T) {
	sources := map[string]string{
		"index": `export function add(a: number, b: number): number { return a + b; }`,
	}

	_, reg := buildFromSources(t, sources, catalog.New())

	id, ok := reg.ResolveIdentifier("index", "add")
	assert.True(t, ok)
	assert.Equal(t, int(DeclFunction), int(reg.Kind(id)))
	assert.Equal(t, "add", reg.Name(id))
	assert.Equal(t, "index", reg.Module(id))

	fn, ok := reg.FunctionDecl(id)
	assert.True(t, ok)
	assert.Equal(t, "add", fn.Name)
}

func TestBuild_ResolvesRelativeImport(t *testing.T) {
	sources := map[string]string{
		"index": `import { add } from "./math"; export function main(): number { return add(1, 2); }`,
		"math":  `export function add(a: number, b: number): number { return a + b; }`,
	}

	_, reg := buildFromSources(t, sources, catalog.New())

	id, ok := reg.ResolveIdentifier("index", "add")
	assert.True(t, ok)
	assert.Equal(t, int(DeclFunction), int(reg.Kind(id)))
	assert.Equal(t, "math", reg.Module(id))
}

func TestBuild_ResolvesRenamedImportThroughReExport(t *testing.T) {
	sources := map[string]string{
		"index":  `import { sum } from "./facade"; export function main(): number { return sum(1, 2); }`,
		"facade": `export { add as sum } from "./math";`,
		"math":   `export function add(a: number, b: number): number { return a + b; }`,
	}

	_, reg := buildFromSources(t, sources, catalog.New())

	id, ok := reg.ResolveIdentifier("index", "sum")
	assert.True(t, ok)
	assert.Equal(t, "math", reg.Module(id))
	assert.Equal(t, "add", reg.Name(id))
}

func TestBuild_ResolvesExternalImportAgainstCatalog(t *testing.T) {
	dir := t.TempDir()
	descriptor := `{
  "namespace": "System.Collections.Generic",
  "types": [
    {"clrName": "System.Collections.Generic.List", "kind": "Class"}
  ]
}`
	if err := os.WriteFile(filepath.Join(dir, "generic.json"), []byte(descriptor), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cat := catalog.New()
	if errs := cat.Load(dir); len(errs) > 0 {
		t.Fatalf("unexpected catalog load errors: %v", errs)
	}

	sources := map[string]string{
		"index": `import { List } from "System.Collections.Generic"; export const xs: List = new List();`,
	}

	_, reg := buildFromSources(t, sources, cat)

	id, ok := reg.ResolveIdentifier("index", "List")
	assert.True(t, ok)
	assert.Equal(t, int(DeclExternal), int(reg.Kind(id)))

	entry, ok := reg.External(id)
	assert.True(t, ok)
	assert.Equal(t, "System.Collections.Generic.List", entry.FQName)
}

func TestBuild_NamespaceImportBindsModuleHandle(t *testing.T) {
	sources := map[string]string{
		"index": `import * as math from "./math"; export function main(): number { return math.add(1, 2); }`,
		"math":  `export function add(a: number, b: number): number { return a + b; }`,
	}

	_, reg := buildFromSources(t, sources, catalog.New())

	id, ok := reg.ResolveIdentifier("index", "math")
	assert.True(t, ok)
	assert.Equal(t, int(DeclModuleNamespace), int(reg.Kind(id)))
	assert.Equal(t, "math", reg.Module(id))
}

func TestRegistry_CapturesTypeSyntaxAndSignature(t *testing.T) {
	sources := map[string]string{
		"index": `export function add(a: number, b: number): number { return a + b; }`,
	}

	_, reg := buildFromSources(t, sources, catalog.New())

	id, ok := reg.ResolveIdentifier("index", "add")
	assert.True(t, ok)

	fn, ok := reg.FunctionDecl(id)
	assert.True(t, ok)

	sigID := reg.CaptureSignature(fn.Params, fn.ReturnType)
	params, ret, ok := reg.Signature(sigID)
	assert.True(t, ok)
	assert.Equal(t, 2, len(params))
	assert.True(t, ret != nil)

	typeID := reg.CaptureTypeSyntax(fn.ReturnType)
	te, ok := reg.TypeSyntax(typeID)
	assert.True(t, ok)
	assert.Equal(t, fn.ReturnType, te)
}
