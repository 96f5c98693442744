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
package ir

import (
	"testing"

	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/binding"
	"github.com/tsoniclang/tsonic/internal/catalog"
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/graph"
	"github.com/tsoniclang/tsonic/internal/source"
	"github.com/tsoniclang/tsonic/internal/testutil/assert"
	"github.com/tsoniclang/tsonic/internal/types"
)

// buildModule parses src as the sole "index" module, builds a Registry over
// it, then lowers it to IR, returning the Module and the bag any soundness
// gate diagnostics were recorded into.
func buildModule(t *testing.T, src string) (*Module, *diagnostics.Bag) {
	t.Helper()

	file := source.NewFile("index.ts", []byte(src))

	prog, errs := ast.Parse(file)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	parser := func(literal string) graph.ParseResult {
		return graph.ParseResult{}
	}

	g, bag := graph.Build([]string{"index"}, graph.Options{RootNamespace: "App", SourceRoot: "."}, parser)
	if bag.HasErrors() {
		t.Fatalf("unexpected graph errors: %v", bag)
	}

	programOf := func(cp string) (*ast.Program, bool) {
		if cp == "index" {
			return prog, true
		}

		return nil, false
	}

	reg := binding.Build(g, programOf, ".", catalog.New())

	irBag := diagnostics.NewBag()
	b := NewBuilder(reg, "index", file, irBag)

	return b.Build(prog), irBag
}

func TestBuild_FunctionWithNumericIntent(t *testing.T) {
	m, bag := buildModule(t, `export function add(a: number, b: number): number { return a + b; }`)
	assert.False(t, bag.HasErrors())
	assert.Equal(t, 1, len(m.Decls))

	fn, ok := m.Decls[0].(*FuncDecl)
	assert.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, 2, len(fn.Params))

	ret, ok := fn.Body.Stmts[0].(*ReturnStmt)
	assert.True(t, ok)

	bin, ok := ret.Value.(*BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, "+", bin.Op)
}

func TestBuild_NumberLiteralIntentInt32(t *testing.T) {
	m, _ := buildModule(t, `export const x: number = 42;`)

	vd, ok := m.Decls[0].(*VarDecl)
	assert.True(t, ok)

	lit, ok := vd.Init.(*NumberLit)
	assert.True(t, ok)
	assert.Equal(t, int(types.IntentInt32), int(lit.Intent))
}

func TestBuild_NumberLiteralIntentFloat(t *testing.T) {
	m, _ := buildModule(t, `export const x: number = 4.2;`)

	vd := m.Decls[0].(*VarDecl)
	lit := vd.Init.(*NumberLit)
	assert.Equal(t, int(types.IntentFloat64), int(lit.Intent))
}

func TestBuild_HasExportedMain(t *testing.T) {
	m, _ := buildModule(t, `export function main(): number { return 1; }`)
	assert.True(t, m.HasExportedMain)
}

func TestBuild_ClassDeclWithFieldsAndMethods(t *testing.T) {
	m, bag := buildModule(t, `
export class Widget {
	readonly id: number;
	name: string;

	greet(): string {
		return this.name;
	}
}
`)
	assert.False(t, bag.HasErrors())

	cd, ok := m.Decls[0].(*ClassDecl)
	assert.True(t, ok)
	assert.Equal(t, "Widget", cd.Name)
	assert.Equal(t, 2, len(cd.Fields))
	assert.Equal(t, 1, len(cd.Methods))
	assert.True(t, cd.Fields[0].Readonly)
}

func TestBuild_PassingModeLoweredFromAsCast(t *testing.T) {
	m, _ := buildModule(t, `
export function f(x: number): void {}
export function g(): void {
	let y: number = 1;
	f(y as ref<number>);
}
`)

	g := m.Decls[1].(*FuncDecl)
	call := g.Body.Stmts[1].(*ExprStmt).X.(*CallExpr)
	assert.Equal(t, 1, len(call.ArgPassing))
	assert.Equal(t, string(PassingRef), string(call.ArgPassing[0].Mode))
}

func TestBuild_ForOfNarrowsElementType(t *testing.T) {
	m, _ := buildModule(t, `
export function sumAll(xs: number[]): number {
	let total: number = 0;
	for (const x of xs) {
		total = total + x;
	}
	return total;
}
`)

	fn := m.Decls[0].(*FuncDecl)
	forOf := fn.Body.Stmts[1].(*ForOfStmt)
	assert.Equal(t, Primitive("number"), forOf.VarType)
}

func TestBuild_SoundnessGateCatchesResidualAny(t *testing.T) {
	_, bag := buildModule(t, `export const x: number = 1 as any;`)
	assert.True(t, bag.HasErrors())
}

func TestBuild_TemplateLiteralSplitsInterpolation(t *testing.T) {
	m, _ := buildModule(t, "export const s: string = `hello ${name} !`;")

	vd := m.Decls[0].(*VarDecl)
	tpl, ok := vd.Init.(*TemplateLit)
	assert.True(t, ok)
	assert.Equal(t, 3, len(tpl.Parts))
	assert.Equal(t, "name", tpl.Parts[1].Expr.(*Ident).Name)
}
