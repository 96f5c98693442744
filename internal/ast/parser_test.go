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
package ast

import (
	"testing"

	"github.com/tsoniclang/tsonic/internal/source"
	"github.com/tsoniclang/tsonic/internal/testutil/assert"
)

func parse(t *testing.T, src string) *Program {
	t.Helper()

	f := source.NewFile("t.ts", []byte(src))
	prog, errs := Parse(f)

	assert.Equal(t, 0, len(errs))

	return prog
}

func TestParse_ImportForms(t *testing.T) {
	prog := parse(t, `
		import Default from "./a";
		import * as NS from "./b";
		import { x, y as z } from "./c";
	`)

	assert.Equal(t, 3, len(prog.Imports))
	assert.Equal(t, "Default", prog.Imports[0].Default)
	assert.Equal(t, "./a", prog.Imports[0].Source)
	assert.Equal(t, "NS", prog.Imports[1].Namespace)
	assert.Equal(t, 2, len(prog.Imports[2].Specifiers))
	assert.Equal(t, "y", prog.Imports[2].Specifiers[1].Imported)
	assert.Equal(t, "z", prog.Imports[2].Specifiers[1].Local)
}

func TestParse_ExportForms(t *testing.T) {
	prog := parse(t, `
		export { a, b as c };
		export * from "./re";
		export * as ns from "./star";
		export function f() { return 1; }
	`)

	assert.Equal(t, 4, len(prog.Exports))
	assert.Equal(t, "c", prog.Exports[0].Specifiers[1].Exported)
	assert.Equal(t, true, prog.Exports[1].Star)
	assert.Equal(t, "ns", prog.Exports[2].StarAsLocal)
	assert.Equal(t, "f", prog.Exports[3].Specifiers[0].Local)

	if _, ok := prog.Stmts[0].(*ExportedDecl); !ok {
		t.Fatalf("expected ExportedDecl, got %T", prog.Stmts[0])
	}
}

func TestParse_VarDeclWithTypeAndInit(t *testing.T) {
	prog := parse(t, `let count: number = 0;`)

	d, ok := prog.Stmts[0].(*VarDecl)
	if !ok {
		t.Fatalf("expected VarDecl, got %T", prog.Stmts[0])
	}

	assert.Equal(t, "let", d.Kind)
	assert.Equal(t, "count", d.Name)

	ref, ok := d.Type.(*TypeRefExpr)
	if !ok {
		t.Fatalf("expected TypeRefExpr, got %T", d.Type)
	}

	assert.Equal(t, "number", ref.Name)
}

func TestParse_FunctionWithParamsAndPassingModes(t *testing.T) {
	prog := parse(t, `
		function swap(a: ref<number>, b: out<string>): void {
			return;
		}
	`)

	fn, ok := prog.Stmts[0].(*FunctionDecl)
	if !ok {
		t.Fatalf("expected FunctionDecl, got %T", prog.Stmts[0])
	}

	assert.Equal(t, "swap", fn.Name)
	assert.Equal(t, 2, len(fn.Params))
	assert.Equal(t, "ref", fn.Params[0].Passing)
	assert.Equal(t, "out", fn.Params[1].Passing)
}

func TestParse_ClassWithFieldsMethodsAndInheritance(t *testing.T) {
	prog := parse(t, `
		class Dog extends Animal implements Speaker {
			private readonly name: string;
			static count: number = 0;

			speak(): string {
				return this.name;
			}
		}
	`)

	c, ok := prog.Stmts[0].(*ClassDecl)
	if !ok {
		t.Fatalf("expected ClassDecl, got %T", prog.Stmts[0])
	}

	assert.Equal(t, "Dog", c.Name)
	assert.Equal(t, "Animal", c.Extends)
	assert.Equal(t, 1, len(c.Implements))
	assert.Equal(t, 2, len(c.Fields))
	assert.Equal(t, true, c.Fields[0].Readonly)
	assert.Equal(t, true, c.Fields[1].Static)
	assert.Equal(t, 1, len(c.Methods))
	assert.Equal(t, "speak", c.Methods[0].Name)
}

func TestParse_InterfaceMembers(t *testing.T) {
	prog := parse(t, `
		interface Point {
			x: number;
			y: number;
		}
	`)

	iface, ok := prog.Stmts[0].(*InterfaceDecl)
	if !ok {
		t.Fatalf("expected InterfaceDecl, got %T", prog.Stmts[0])
	}

	assert.Equal(t, "Point", iface.Name)
	assert.Equal(t, 2, len(iface.Members))
}

func TestParse_EnumWithExplicitAndAutoMembers(t *testing.T) {
	prog := parse(t, `
		enum Color { Red, Green = 5, Blue }
	`)

	e, ok := prog.Stmts[0].(*EnumDecl)
	if !ok {
		t.Fatalf("expected EnumDecl, got %T", prog.Stmts[0])
	}

	assert.Equal(t, 3, len(e.Members))
	assert.Equal(t, "Red", e.Members[0].Name)

	if e.Members[0].Init != nil {
		t.Fatalf("expected auto-numbered member to have nil Init")
	}

	if e.Members[1].Init == nil {
		t.Fatalf("expected explicit member to have non-nil Init")
	}
}

func TestParse_TypeAliasUnion(t *testing.T) {
	prog := parse(t, `type Result = string | null;`)

	a, ok := prog.Stmts[0].(*TypeAliasDecl)
	if !ok {
		t.Fatalf("expected TypeAliasDecl, got %T", prog.Stmts[0])
	}

	u, ok := a.Type.(*UnionTypeExpr)
	if !ok {
		t.Fatalf("expected UnionTypeExpr, got %T", a.Type)
	}

	assert.Equal(t, 2, len(u.Members))
}

func TestParse_ControlFlow(t *testing.T) {
	prog := parse(t, `
		function loop(items: number[]): void {
			for (let i = 0; i < items.length; i++) {
				if (items[i] > 0) {
					continue;
				} else {
					break;
				}
			}

			for (const item of items) {
				while (item > 0) {
					return;
				}
			}
		}
	`)

	fn := prog.Stmts[0].(*FunctionDecl)
	body := fn.Body

	if _, ok := body.Stmts[0].(*ForStmt); !ok {
		t.Fatalf("expected ForStmt, got %T", body.Stmts[0])
	}

	if _, ok := body.Stmts[1].(*ForOfStmt); !ok {
		t.Fatalf("expected ForOfStmt, got %T", body.Stmts[1])
	}
}

func TestParse_ExpressionPrecedence(t *testing.T) {
	prog := parse(t, `let x = 1 + 2 * 3 === 7 ? "yes" : "no";`)

	d := prog.Stmts[0].(*VarDecl)

	cond, ok := d.Init.(*ConditionalExpr)
	if !ok {
		t.Fatalf("expected ConditionalExpr, got %T", d.Init)
	}

	eq, ok := cond.Cond.(*BinaryExpr)
	if !ok {
		t.Fatalf("expected BinaryExpr, got %T", cond.Cond)
	}

	assert.Equal(t, "===", eq.Op)

	add, ok := eq.Left.(*BinaryExpr)
	if !ok {
		t.Fatalf("expected BinaryExpr, got %T", eq.Left)
	}

	assert.Equal(t, "+", add.Op)

	mul, ok := add.Right.(*BinaryExpr)
	if !ok {
		t.Fatalf("expected BinaryExpr, got %T", add.Right)
	}

	assert.Equal(t, "*", mul.Op)
}

func TestParse_CallNewMemberIndexChain(t *testing.T) {
	prog := parse(t, `let v = new Box<number>(1).items[0].value;`)

	d := prog.Stmts[0].(*VarDecl)

	member, ok := d.Init.(*MemberExpr)
	if !ok {
		t.Fatalf("expected MemberExpr, got %T", d.Init)
	}

	assert.Equal(t, "value", member.Name)

	idx, ok := member.X.(*IndexExpr)
	if !ok {
		t.Fatalf("expected IndexExpr, got %T", member.X)
	}

	items, ok := idx.X.(*MemberExpr)
	if !ok {
		t.Fatalf("expected MemberExpr, got %T", idx.X)
	}

	assert.Equal(t, "items", items.Name)

	newExpr, ok := items.X.(*NewExpr)
	if !ok {
		t.Fatalf("expected NewExpr, got %T", items.X)
	}

	assert.Equal(t, 1, len(newExpr.TypeArgs))
	assert.Equal(t, 1, len(newExpr.Args))
}

func TestParse_ArrayAndObjectLiterals(t *testing.T) {
	prog := parse(t, `let o = { a: 1, b: [1, 2, 3] };`)

	d := prog.Stmts[0].(*VarDecl)

	obj, ok := d.Init.(*ObjectLit)
	if !ok {
		t.Fatalf("expected ObjectLit, got %T", d.Init)
	}

	assert.Equal(t, 2, len(obj.Properties))
	assert.Equal(t, "a", obj.Properties[0].Key)

	arr, ok := obj.Properties[1].Value.(*ArrayLit)
	if !ok {
		t.Fatalf("expected ArrayLit, got %T", obj.Properties[1].Value)
	}

	assert.Equal(t, 3, len(arr.Elements))
}

func TestParse_ArrowFunctionBareAndParenthesized(t *testing.T) {
	prog := parse(t, `
		let single = x => x + 1;
		let multi = (a: number, b: number): number => { return a + b; };
	`)

	single := prog.Stmts[0].(*VarDecl)

	fn1, ok := single.Init.(*ArrowFunctionExpr)
	if !ok {
		t.Fatalf("expected ArrowFunctionExpr, got %T", single.Init)
	}

	assert.Equal(t, 1, len(fn1.Params))

	if fn1.ExprBody == nil {
		t.Fatalf("expected concise arrow body")
	}

	multi := prog.Stmts[1].(*VarDecl)

	fn2, ok := multi.Init.(*ArrowFunctionExpr)
	if !ok {
		t.Fatalf("expected ArrowFunctionExpr, got %T", multi.Init)
	}

	assert.Equal(t, 2, len(fn2.Params))

	if fn2.Block == nil {
		t.Fatalf("expected braced arrow body")
	}
}

func TestParse_AssignmentAndUnaryOperators(t *testing.T) {
	prog := parse(t, `
		let x = 1;
		x += 2;
		x++;
		let y = !true;
		let z = typeof x;
	`)

	assign, ok := prog.Stmts[1].(*ExprStmt).X.(*AssignExpr)
	if !ok {
		t.Fatalf("expected AssignExpr, got %T", prog.Stmts[1].(*ExprStmt).X)
	}

	assert.Equal(t, "+=", assign.Op)

	post, ok := prog.Stmts[2].(*ExprStmt).X.(*UnaryExpr)
	if !ok {
		t.Fatalf("expected UnaryExpr, got %T", prog.Stmts[2].(*ExprStmt).X)
	}

	assert.Equal(t, "post++", post.Op)
}

func TestParse_AsExpressionCast(t *testing.T) {
	prog := parse(t, `let n = (v as number);`)

	d := prog.Stmts[0].(*VarDecl)

	as, ok := d.Init.(*AsExpr)
	if !ok {
		t.Fatalf("expected AsExpr, got %T", d.Init)
	}

	ref, ok := as.Type.(*TypeRefExpr)
	if !ok {
		t.Fatalf("expected TypeRefExpr, got %T", as.Type)
	}

	assert.Equal(t, "number", ref.Name)
}

func TestParse_RecoversFromMalformedStatement(t *testing.T) {
	f := source.NewFile("t.ts", []byte(`let ; let good = 1;`))
	prog, errs := Parse(f)

	if len(errs) == 0 {
		t.Fatalf("expected at least one diagnostic for the malformed declaration")
	}

	found := false

	for _, s := range prog.Stmts {
		if d, ok := s.(*VarDecl); ok && d.Name == "good" {
			found = true
		}
	}

	if !found {
		t.Fatalf("expected parser to recover and still parse the following statement")
	}
}
