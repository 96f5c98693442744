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
package types

import (
	"testing"

	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/testutil/assert"
)

func ref(name string) *ast.TypeRefExpr { return &ast.TypeRefExpr{Name: name} }

func refArgs(name string, args ...ast.TypeExpr) *ast.TypeRefExpr {
	return &ast.TypeRefExpr{Name: name, Args: args}
}

func lit(s string) *ast.LiteralStringTypeExpr { return &ast.LiteralStringTypeExpr{Value: s} }

func plainCtx() *Context { return &Context{Bag: diagnostics.NewBag()} }

func TestFromSyntax_Primitives(t *testing.T) {
	ctx := plainCtx()

	assert.Equal(t, Primitive{Name: "number"}, FromSyntax(ref("number"), ctx))
	assert.Equal(t, Primitive{Name: "string"}, FromSyntax(ref("string"), ctx))
	assert.Equal(t, Void{}, FromSyntax(ref("void"), ctx))
	assert.Equal(t, Any{}, FromSyntax(ref("any"), ctx))
	assert.Equal(t, Unknown{}, FromSyntax(ref("unknown"), ctx))
	assert.Equal(t, Never{}, FromSyntax(ref("never"), ctx))
	assert.Equal(t, Unknown{}, FromSyntax(nil, ctx))
}

func TestFromSyntax_Array(t *testing.T) {
	ctx := plainCtx()
	got := FromSyntax(&ast.ArrayTypeExpr{Elem: ref("number")}, ctx)

	arr, ok := got.(*Array)
	assert.True(t, ok)
	assert.Equal(t, Primitive{Name: "number"}, arr.Elem)
}

func TestFromSyntax_ArrayGeneric(t *testing.T) {
	ctx := plainCtx()
	got := FromSyntax(refArgs("Array", ref("string")), ctx)

	arr, ok := got.(*Array)
	assert.True(t, ok)
	assert.Equal(t, Primitive{Name: "string"}, arr.Elem)
}

func TestFromSyntax_UnionFlattensNested(t *testing.T) {
	ctx := plainCtx()
	inner := &ast.UnionTypeExpr{Members: []ast.TypeExpr{lit("a"), lit("b")}}
	outer := &ast.UnionTypeExpr{Members: []ast.TypeExpr{inner, lit("c")}}

	got := FromSyntax(outer, ctx).(*Union)
	assert.Equal(t, 3, len(got.Members))
}

func TestFromSyntax_TypeParamInScope(t *testing.T) {
	ctx := plainCtx().WithTypeParams([]string{"T"})
	assert.Equal(t, TypeParam{Name: "T"}, FromSyntax(ref("T"), ctx))
}

func TestFromSyntax_FunctionType(t *testing.T) {
	ctx := plainCtx()
	fte := &ast.FunctionTypeExpr{
		Params:     []ast.Param{{Name: "x", Type: ref("number")}},
		ReturnType: ref("string"),
	}

	got := FromSyntax(fte, ctx).(*Function)
	assert.Equal(t, 1, len(got.Params))
	assert.Equal(t, "x", got.Params[0].Name)
	assert.Equal(t, Primitive{Name: "string"}, got.Return)
}

func TestFromSyntax_ObjectType(t *testing.T) {
	ctx := plainCtx()
	ote := &ast.ObjectTypeExpr{Members: []*ast.FieldDecl{
		{Name: "id", Type: ref("number")},
		{Name: "label", Type: ref("string"), Readonly: true},
	}}

	got := FromSyntax(ote, ctx).(*Object)
	assert.Equal(t, 2, len(got.Members))
	assert.Equal(t, true, got.Members[1].Readonly)
}

func idObj() *ast.ObjectTypeExpr {
	return &ast.ObjectTypeExpr{Members: []*ast.FieldDecl{
		{Name: "id", Type: ref("number")},
		{Name: "name", Type: ref("string")},
	}}
}

func TestExpandUtility_Partial(t *testing.T) {
	ctx := plainCtx()
	got := FromSyntax(refArgs("Partial", idObj()), ctx).(*Object)

	for _, f := range got.Members {
		assert.True(t, f.Optional)
	}
}

func TestExpandUtility_PickOmit(t *testing.T) {
	ctx := plainCtx()
	keys := &ast.UnionTypeExpr{Members: []ast.TypeExpr{lit("id")}}

	picked := FromSyntax(refArgs("Pick", idObj(), keys), ctx).(*Object)
	assert.Equal(t, 1, len(picked.Members))
	assert.Equal(t, "id", picked.Members[0].Name)

	omitted := FromSyntax(refArgs("Omit", idObj(), keys), ctx).(*Object)
	assert.Equal(t, 1, len(omitted.Members))
	assert.Equal(t, "name", omitted.Members[0].Name)
}

func TestExpandUtility_PickFailsOnNonLiteralKeys(t *testing.T) {
	ctx := plainCtx()
	got := FromSyntax(refArgs("Pick", idObj(), ref("string")), ctx)

	assert.Equal(t, Unknown{}, got)
	assert.True(t, ctx.Bag.HasErrors() == false) // no File set: diagnostic is swallowed, not injected
}

func TestExpandUtility_Record(t *testing.T) {
	ctx := plainCtx()

	dict := FromSyntax(refArgs("Record", ref("string"), ref("number")), ctx).(*Dictionary)
	assert.Equal(t, Primitive{Name: "string"}, dict.Key)

	keys := &ast.UnionTypeExpr{Members: []ast.TypeExpr{lit("a"), lit("b")}}
	obj := FromSyntax(refArgs("Record", keys, ref("number")), ctx).(*Object)
	assert.Equal(t, 2, len(obj.Members))
}

func TestExpandUtility_RecordFailsOnBadKey(t *testing.T) {
	ctx := plainCtx()
	got := FromSyntax(refArgs("Record", ref("boolean"), ref("number")), ctx)
	assert.Equal(t, Unknown{}, got)
}

func TestExpandUtility_NonNullable(t *testing.T) {
	ctx := plainCtx()
	u := &ast.UnionTypeExpr{Members: []ast.TypeExpr{ref("string"), ref("null"), ref("undefined")}}

	got := FromSyntax(refArgs("NonNullable", u), ctx)
	assert.Equal(t, Primitive{Name: "string"}, got)
}

func TestExpandUtility_ExcludeExtract(t *testing.T) {
	ctx := plainCtx()
	u := &ast.UnionTypeExpr{Members: []ast.TypeExpr{lit("a"), lit("b"), lit("c")}}
	filter := &ast.UnionTypeExpr{Members: []ast.TypeExpr{lit("b")}}

	excluded := FromSyntax(refArgs("Exclude", u, filter), ctx).(*Union)
	assert.Equal(t, 2, len(excluded.Members))

	extracted := FromSyntax(refArgs("Extract", u, filter), ctx)
	assert.Equal(t, Literal{LitKind: LiteralString, StrVal: "b"}, extracted)
}

func TestExpandUtility_ReturnTypeAndParameters(t *testing.T) {
	ctx := plainCtx()
	fte := &ast.FunctionTypeExpr{
		Params:     []ast.Param{{Name: "x", Type: ref("number")}, {Name: "y", Type: ref("string")}},
		ReturnType: ref("boolean"),
	}

	rt := FromSyntax(refArgs("ReturnType", fte), ctx)
	assert.Equal(t, Primitive{Name: "boolean"}, rt)

	params := FromSyntax(refArgs("Parameters", fte), ctx).(*Tuple)
	assert.Equal(t, 2, len(params.Elems))
}

func TestExpandUtility_ReturnTypeFailsOnNonFunction(t *testing.T) {
	ctx := plainCtx()
	got := FromSyntax(refArgs("ReturnType", ref("number")), ctx)
	assert.Equal(t, Unknown{}, got)
}

func TestExpandUtility_Awaited(t *testing.T) {
	ctx := plainCtx()
	promise := refArgs("Promise", ref("number"))
	got := FromSyntax(refArgs("Awaited", promise), ctx)
	assert.Equal(t, Primitive{Name: "number"}, got)
}

func TestIsAssignable_PrimitivesAndLiteralWidening(t *testing.T) {
	a := &Assigner{}

	assert.True(t, a.IsAssignable(Primitive{Name: "number"}, Primitive{Name: "number"}))
	assert.True(t, a.IsAssignable(Literal{LitKind: LiteralString, StrVal: "ok"}, Primitive{Name: "string"}))
	assert.True(t, a.IsAssignable(Never{}, Primitive{Name: "number"}))
	assert.True(t, a.IsAssignable(Primitive{Name: "number"}, Any{}))
	assert.True(t, a.IsAssignable(Any{}, Primitive{Name: "number"}))
	assert.True(t, a.IsAssignable(Primitive{Name: "number"}, Unknown{}))
	assert.True(t, a.IsAssignable(Primitive{Name: "string"}, Primitive{Name: "number"}) == false)
}

func TestIsAssignable_UnionSplitAndJoin(t *testing.T) {
	a := &Assigner{}
	u := &Union{Members: []Type{Primitive{Name: "number"}, Primitive{Name: "string"}}}

	assert.True(t, a.IsAssignable(Primitive{Name: "number"}, u))
	assert.True(t, a.IsAssignable(u, &Union{Members: []Type{Primitive{Name: "string"}, Primitive{Name: "number"}, Primitive{Name: "boolean"}}}))
	assert.True(t, a.IsAssignable(u, Primitive{Name: "number"}) == false)
}

func TestIsAssignable_Structural(t *testing.T) {
	a := &Assigner{}
	wide := &Object{Members: []Field{{Name: "id", Type: Primitive{Name: "number"}}, {Name: "name", Type: Primitive{Name: "string"}}}}
	narrow := &Object{Members: []Field{{Name: "id", Type: Primitive{Name: "number"}}}}

	assert.True(t, a.IsAssignable(wide, narrow))
	assert.True(t, a.IsAssignable(narrow, wide) == false)
}

func TestIsAssignable_NominalSameName(t *testing.T) {
	a := &Assigner{}
	x := &Reference{Name: "Widget"}
	y := &Reference{Name: "Widget"}

	assert.True(t, a.IsAssignable(x, y))
}

func TestSubstitute_Basic(t *testing.T) {
	fn := &Function{
		Params: []Param{{Name: "x", Type: TypeParam{Name: "T"}}},
		Return: &Array{Elem: TypeParam{Name: "T"}},
	}

	got := Substitute(fn, map[string]Type{"T": Primitive{Name: "number"}}).(*Function)
	assert.Equal(t, Primitive{Name: "number"}, got.Params[0].Type)
	assert.Equal(t, Primitive{Name: "number"}, got.Return.(*Array).Elem)
}

func TestSubstitute_ShadowsOwnTypeParams(t *testing.T) {
	inner := &Function{
		TypeParams: []string{"T"},
		Params:     []Param{{Name: "x", Type: TypeParam{Name: "T"}}},
		Return:     TypeParam{Name: "T"},
	}

	got := Substitute(inner, map[string]Type{"T": Primitive{Name: "string"}}).(*Function)
	assert.Equal(t, TypeParam{Name: "T"}, got.Params[0].Type)
	assert.Equal(t, TypeParam{Name: "T"}, got.Return)
}

func TestNarrowTypeof(t *testing.T) {
	u := &Union{Members: []Type{Primitive{Name: "number"}, Primitive{Name: "string"}}}

	assert.Equal(t, Primitive{Name: "number"}, NarrowTypeofEquals(u, "number"))
	assert.Equal(t, Primitive{Name: "string"}, NarrowTypeofNotEquals(u, "number"))
}

func TestNarrowNullGuard(t *testing.T) {
	u := &Union{Members: []Type{Primitive{Name: "string"}, Primitive{Name: "null"}, Primitive{Name: "undefined"}}}

	assert.Equal(t, Primitive{Name: "string"}, NarrowNullGuard(u, false))

	kept := NarrowNullGuard(u, true).(*Union)
	assert.Equal(t, 2, len(kept.Members))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Primitive{Name: "number"}, Primitive{Name: "number"}))
	assert.True(t, Equal(Primitive{Name: "number"}, Primitive{Name: "string"}) == false)
	assert.True(t, Equal(&Array{Elem: Primitive{Name: "number"}}, &Array{Elem: Primitive{Name: "number"}}))
	assert.True(t, Equal(nil, nil))
}
