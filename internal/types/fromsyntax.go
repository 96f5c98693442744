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
	"sort"

	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/binding"
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/source"
)

// Context carries everything FromSyntax needs to resolve a TypeRefExpr's
// name: the Binding Layer to resolve identifiers against, the module the
// syntax was written in, the in-scope generic type-parameter names (so a
// bare `T` resolves to a TypeParam rather than an unresolved Reference), and
// where to report TSN7414 if a utility-type expansion is malformed.
type Context struct {
	Reg        *binding.Registry
	Module     string
	File       *source.File
	TypeParams map[string]bool
	Bag        *diagnostics.Bag
}

// WithTypeParams returns a Context with names added to the in-scope
// type-parameter set, for descending into a generic function or class body.
func (c *Context) WithTypeParams(names []string) *Context {
	if len(names) == 0 {
		return c
	}

	merged := make(map[string]bool, len(c.TypeParams)+len(names))
	for k := range c.TypeParams {
		merged[k] = true
	}

	for _, n := range names {
		merged[n] = true
	}

	cp := *c
	cp.TypeParams = merged

	return &cp
}

var utilityTypeNames = map[string]bool{
	"Partial": true, "Required": true, "Readonly": true,
	"Pick": true, "Omit": true, "Record": true,
	"NonNullable": true, "Exclude": true, "Extract": true,
	"ReturnType": true, "Parameters": true, "Awaited": true,
}

// FromSyntax converts a parsed type-annotation node into an IR Type,
// expanding utility types and resolving references against ctx.Reg (spec
// §4.4).
func FromSyntax(te ast.TypeExpr, ctx *Context) Type {
	if te == nil {
		return Unknown{}
	}

	switch t := te.(type) {
	case *ast.TypeRefExpr:
		return fromTypeRef(t, ctx)
	case *ast.ArrayTypeExpr:
		return &Array{Elem: FromSyntax(t.Elem, ctx), Origin: ArrayExplicit}
	case *ast.UnionTypeExpr:
		return fromUnion(t, ctx)
	case *ast.FunctionTypeExpr:
		return fromFunctionType(t, ctx)
	case *ast.ObjectTypeExpr:
		return fromObjectType(t, ctx)
	case *ast.LiteralStringTypeExpr:
		return Literal{LitKind: LiteralString, StrVal: t.Value}
	default:
		return Unknown{}
	}
}

func fromUnion(t *ast.UnionTypeExpr, ctx *Context) Type {
	members := make([]Type, 0, len(t.Members))
	for _, m := range t.Members {
		members = append(members, FromSyntax(m, ctx))
	}

	return flattenUnion(members)
}

func flattenUnion(members []Type) Type {
	flat := make([]Type, 0, len(members))

	for _, m := range members {
		if u, ok := m.(*Union); ok {
			flat = append(flat, u.Members...)
		} else {
			flat = append(flat, m)
		}
	}

	if len(flat) == 1 {
		return flat[0]
	}

	return &Union{Members: flat}
}

func fromFunctionType(t *ast.FunctionTypeExpr, ctx *Context) Type {
	params := make([]Param, 0, len(t.Params))
	for _, p := range t.Params {
		params = append(params, Param{
			Name:     p.Name,
			Type:     FromSyntax(p.Type, ctx),
			Passing:  p.Passing,
			Optional: p.Optional,
		})
	}

	return &Function{Params: params, Return: FromSyntax(t.ReturnType, ctx)}
}

func fromObjectType(t *ast.ObjectTypeExpr, ctx *Context) Type {
	members := make([]Field, 0, len(t.Members))
	for _, m := range t.Members {
		members = append(members, Field{Name: m.Name, Type: FromSyntax(m.Type, ctx), Readonly: m.Readonly})
	}

	return &Object{Members: members}
}

func fromTypeRef(t *ast.TypeRefExpr, ctx *Context) Type {
	if ctx.TypeParams[t.Name] {
		return TypeParam{Name: t.Name}
	}

	switch t.Name {
	case "number", "string", "boolean", "null", "undefined":
		return Primitive{Name: t.Name}
	case "void":
		return Void{}
	case "any":
		return Any{}
	case "unknown":
		return Unknown{}
	case "never":
		return Never{}
	case "Array":
		if len(t.Args) == 1 {
			return &Array{Elem: FromSyntax(t.Args[0], ctx), Origin: ArrayExplicit}
		}
	}

	if utilityTypeNames[t.Name] {
		return expandUtility(t, ctx)
	}

	return resolveReference(t, ctx)
}

func resolveReference(t *ast.TypeRefExpr, ctx *Context) Type {
	args := make([]Type, 0, len(t.Args))
	for _, a := range t.Args {
		args = append(args, FromSyntax(a, ctx))
	}

	if ctx.Reg == nil {
		return &Reference{Name: t.Name, Args: args}
	}

	id, ok := ctx.Reg.ResolveTypeReference(ctx.Module, t.Name)
	if !ok {
		return &Reference{Name: t.Name, Args: args}
	}

	if ctx.Reg.Kind(id) == binding.DeclTypeAlias {
		alias, ok := ctx.Reg.TypeAliasDecl(id)
		if ok {
			return FromSyntax(alias.Type, ctx)
		}
	}

	return &Reference{Name: t.Name, Args: args, Decl: id}
}

func expandUtility(t *ast.TypeRefExpr, ctx *Context) Type {
	if len(t.Args) == 0 {
		return unsupported(t, ctx, t.Name+" requires at least one type argument")
	}

	switch t.Name {
	case "Partial", "Required", "Readonly":
		return expandFlagFlip(t, ctx)
	case "Pick", "Omit":
		return expandPickOmit(t, ctx)
	case "Record":
		return expandRecord(t, ctx)
	case "NonNullable":
		return filterUnion(FromSyntax(t.Args[0], ctx), func(m Type) bool { return !isNullish(m) })
	case "Exclude":
		return expandExcludeExtract(t, ctx, false)
	case "Extract":
		return expandExcludeExtract(t, ctx, true)
	case "ReturnType":
		return expandReturnType(t, ctx)
	case "Parameters":
		return expandParameters(t, ctx)
	case "Awaited":
		return awaited(FromSyntax(t.Args[0], ctx))
	default:
		return unsupported(t, ctx, "unknown utility type "+t.Name)
	}
}

func expandFlagFlip(t *ast.TypeRefExpr, ctx *Context) Type {
	obj := liftStructuralView(ctx.Reg, FromSyntax(t.Args[0], ctx))
	if obj == nil {
		return unsupported(t, ctx, t.Name+"<T> requires a structural T")
	}

	members := make([]Field, len(obj.Members))
	for i, f := range obj.Members {
		switch t.Name {
		case "Partial":
			f.Optional = true
		case "Required":
			f.Optional = false
		case "Readonly":
			f.Readonly = true
		}

		members[i] = f
	}

	return &Object{Members: members}
}

func expandPickOmit(t *ast.TypeRefExpr, ctx *Context) Type {
	if len(t.Args) != 2 {
		return unsupported(t, ctx, t.Name+"<T, K> requires two type arguments")
	}

	obj := liftStructuralView(ctx.Reg, FromSyntax(t.Args[0], ctx))
	if obj == nil {
		return unsupported(t, ctx, t.Name+"<T, K> requires a structural T")
	}

	keys, ok := literalStringSet(FromSyntax(t.Args[1], ctx))
	if !ok {
		return unsupported(t, ctx, "K must be a finite literal-string union")
	}

	var members []Field

	for _, f := range obj.Members {
		_, inSet := keys[f.Name]
		if (t.Name == "Pick") == inSet {
			members = append(members, f)
		}
	}

	return &Object{Members: members}
}

func expandRecord(t *ast.TypeRefExpr, ctx *Context) Type {
	if len(t.Args) != 2 {
		return unsupported(t, ctx, "Record<K, V> requires two type arguments")
	}

	key := FromSyntax(t.Args[0], ctx)
	value := FromSyntax(t.Args[1], ctx)

	if keys, ok := literalStringSet(key); ok {
		names := make([]string, 0, len(keys))
		for k := range keys {
			names = append(names, k)
		}

		sort.Strings(names)

		members := make([]Field, len(names))
		for i, n := range names {
			members[i] = Field{Name: n, Type: value}
		}

		return &Object{Members: members}
	}

	if p, ok := key.(Primitive); ok && (p.Name == "string" || p.Name == "number") {
		return &Dictionary{Key: key, Value: value}
	}

	return unsupported(t, ctx, "Record key must be string, number, or a finite literal-string union")
}

func expandExcludeExtract(t *ast.TypeRefExpr, ctx *Context, keepMatches bool) Type {
	if len(t.Args) != 2 {
		return unsupported(t, ctx, t.Name+"<T, U> requires two type arguments")
	}

	inner := FromSyntax(t.Args[0], ctx)
	filter := unionMembers(FromSyntax(t.Args[1], ctx))

	return filterUnion(inner, func(m Type) bool { return containsStructurally(filter, m) == keepMatches })
}

func expandReturnType(t *ast.TypeRefExpr, ctx *Context) Type {
	fn, ok := FromSyntax(t.Args[0], ctx).(*Function)
	if !ok {
		return unsupported(t, ctx, "ReturnType<F> requires a function type")
	}

	return fn.Return
}

func expandParameters(t *ast.TypeRefExpr, ctx *Context) Type {
	fn, ok := FromSyntax(t.Args[0], ctx).(*Function)
	if !ok {
		return unsupported(t, ctx, "Parameters<F> requires a function type")
	}

	elems := make([]Type, len(fn.Params))
	for i, p := range fn.Params {
		elems[i] = p.Type
	}

	return &Tuple{Elems: elems}
}

func awaited(t Type) Type {
	ref, ok := t.(*Reference)
	if ok && len(ref.Args) == 1 && (ref.Name == "Promise" || ref.Name == "Task" || ref.Name == "ValueTask") {
		return awaited(ref.Args[0])
	}

	return t
}

func literalStringSet(t Type) (map[string]bool, bool) {
	out := make(map[string]bool)

	for _, m := range unionMembers(t) {
		lit, ok := m.(Literal)
		if !ok || lit.LitKind != LiteralString {
			return nil, false
		}

		out[lit.StrVal] = true
	}

	if len(out) == 0 {
		return nil, false
	}

	return out, true
}

func unionMembers(t Type) []Type {
	if u, ok := t.(*Union); ok {
		return u.Members
	}

	return []Type{t}
}

func filterUnion(t Type, keep func(Type) bool) Type {
	var kept []Type

	for _, m := range unionMembers(t) {
		if keep(m) {
			kept = append(kept, m)
		}
	}

	switch len(kept) {
	case 0:
		return Never{}
	case 1:
		return kept[0]
	default:
		return &Union{Members: kept}
	}
}

func isNullish(t Type) bool {
	p, ok := t.(Primitive)
	return ok && (p.Name == "null" || p.Name == "undefined")
}

func containsStructurally(haystack []Type, needle Type) bool {
	for _, h := range haystack {
		if Equal(h, needle) {
			return true
		}
	}

	return false
}

func unsupported(t *ast.TypeRefExpr, ctx *Context, msg string) Type {
	if ctx.Bag != nil && ctx.File != nil {
		ctx.Bag.Add(ctx.File.Error(diagnostics.TSN7414, t.Span, msg))
	}

	return Unknown{}
}
