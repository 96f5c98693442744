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
package semantic

import (
	"testing"

	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/binding"
	"github.com/tsoniclang/tsonic/internal/catalog"
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/graph"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/source"
	"github.com/tsoniclang/tsonic/internal/testutil/assert"
)

// fixture is a small multi-module project, built the same way
// internal/ir/builder_test.go and internal/compiler/compiler_test.go build
// one: real parser, real graph, real binding, real IR, over in-memory files.
type fixture struct {
	reg     *binding.Registry
	g       *graph.Graph
	modules map[string]*ir.Module
	files   map[string]*source.File
}

func buildFixture(t *testing.T, sources map[string]string) (*fixture, *diagnostics.Bag) {
	t.Helper()

	files := make(map[string]*source.File, len(sources))
	progs := make(map[string]*ast.Program, len(sources))

	for name, src := range sources {
		f := source.NewFile(name, []byte(src))

		prog, errs := ast.Parse(f)
		if len(errs) > 0 {
			t.Fatalf("unexpected parse errors in %s: %v", name, errs)
		}

		cp := name[:len(name)-len(".ts")]
		files[cp] = f
		progs[cp] = prog
	}

	entry := make([]string, 0, len(sources))
	for cp := range progs {
		entry = append(entry, cp)
	}

	// The graph parser reports each file's own direct exports, read from the
	// already-parsed program, so the Export Map can resolve local imports.
	parser := func(literal string) graph.ParseResult {
		exports := make(map[string]string)

		if prog, ok := progs[graph.Canonicalize(literal)]; ok {
			for _, ex := range prog.Exports {
				if ex.From != "" || ex.Star {
					continue
				}

				for _, spec := range ex.Specifiers {
					exports[spec.Exported] = spec.Local
				}
			}
		}

		return graph.ParseResult{Exports: exports}
	}

	g, bag := graph.Build(entry, graph.Options{RootNamespace: "App", SourceRoot: "."}, parser)
	if bag.HasErrors() {
		t.Fatalf("unexpected graph errors: %v", bag)
	}

	programOf := func(cp string) (*ast.Program, bool) {
		p, ok := progs[cp]
		return p, ok
	}

	reg := binding.Build(g, programOf, ".", catalog.New())

	irBag := diagnostics.NewBag()
	modules := make(map[string]*ir.Module, len(progs))

	for cp, prog := range progs {
		b := ir.NewBuilder(reg, cp, files[cp], irBag)
		modules[cp] = b.Build(prog)
	}

	return &fixture{reg: reg, g: g, modules: modules, files: files}, irBag
}

func (f *fixture) fileOf(cp string) (*source.File, bool) {
	file, ok := f.files[cp]
	return file, ok
}

func TestBuildLocalTypesIndex(t *testing.T) {
	fx, _ := buildFixture(t, map[string]string{
		"index.ts": `
export class Widget {}
export function make(): Widget { return new Widget(); }
`,
	})

	idx := BuildLocalTypesIndex(fx.reg, fx.g)
	entries := idx["index"]
	assert.Equal(t, 2, len(entries))

	byName := map[string]LocalTypeEntry{}
	for _, e := range entries {
		byName[e.Name] = e
	}

	assert.Equal(t, int(binding.DeclClass), int(byName["Widget"].Kind))
	assert.Equal(t, int(binding.DeclFunction), int(byName["make"].Kind))
}

func TestComputePublicTypes_ReachableThroughExportedSignature(t *testing.T) {
	fx, bag := buildFixture(t, map[string]string{
		"index.ts": `
import { Helper } from "./helper";
export function use(): Helper { return new Helper(); }
`,
		"helper.ts": `
export class Helper {}
class Secret {}
`,
	})
	assert.False(t, bag.HasErrors())

	public := ComputePublicTypes(fx.reg, fx.g, fx.modules)
	assert.True(t, public["helper"]["Helper"])
	assert.False(t, public["helper"]["Secret"])
}

func TestBuildModuleMap(t *testing.T) {
	fx, _ := buildFixture(t, map[string]string{
		"index.ts": `export function main(): void {}`,
	})

	modMap, exports := BuildModuleMap(fx.g)
	assert.True(t, modMap["index"].ClassName != "")
	assert.True(t, exports != nil)
}

func TestValidateNaming_CollidesWithContainerClassIsRenamed(t *testing.T) {
	fx, _ := buildFixture(t, map[string]string{
		// ClassName("index") == "index" (graph.ClassName does not
		// recapitalize), so a sibling type declared with that exact name
		// collides with the module's own container class.
		"index.ts": `export class index {}`,
	})

	renames := ValidateNaming(fx.g, fx.modules, diagnostics.NewBag(), fx.fileOf)

	want := fx.g.Modules[0].ClassName + "__Module"
	assert.Equal(t, want, renames["index"])
}

func TestValidateNaming_SiblingCollisionReportsTSN9001(t *testing.T) {
	fx, _ := buildFixture(t, map[string]string{
		"index.ts": `
export class Widget {}
export interface Widget {}
`,
	})

	bag := diagnostics.NewBag()
	ValidateNaming(fx.g, fx.modules, bag, fx.fileOf)
	assert.True(t, bag.HasErrors())
}

func TestRunNumericProofPass_ProvenIndexAndCounter(t *testing.T) {
	fx, bag := buildFixture(t, map[string]string{
		"index.ts": `
export function sum(xs: number[]): number {
	let total: number = 0;
	for (let i = 0; i < 3; i = i + 1) {
		total = total + xs[i];
	}
	return total;
}
`,
	})
	assert.False(t, bag.HasErrors())

	proofBag := diagnostics.NewBag()
	RunNumericProofPass(fx.modules, fx.fileOf, proofBag)
	assert.False(t, proofBag.HasErrors())

	fn := fx.modules["index"].Decls[0].(*ir.FuncDecl)
	forStmt := fn.Body.Stmts[1].(*ir.ForStmt)
	assert.True(t, forStmt.CounterProvenInt32)

	inner := forStmt.Body.(*ir.BlockStmt).Stmts[0].(*ir.ExprStmt).X.(*ir.AssignExpr)
	idx := inner.Value.(*ir.BinaryExpr).Right.(*ir.IndexExpr)
	assert.True(t, idx.IndexProvenInt32)
}

func TestBuildJSONRegistry_CollectsStringifyArgumentType(t *testing.T) {
	fx, bag := buildFixture(t, map[string]string{
		"index.ts": `
export function save(n: number): string {
	return JSON.stringify(n);
}
`,
	})
	assert.False(t, bag.HasErrors())

	found := BuildJSONRegistry(fx.modules)
	assert.Equal(t, 1, len(found))
}
