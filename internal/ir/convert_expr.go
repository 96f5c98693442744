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
	"strings"

	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/binding"
	"github.com/tsoniclang/tsonic/internal/types"
)

func (b *Builder) convertExpr(e ast.Expr) Expr {
	switch x := e.(type) {
	case *ast.Ident:
		return b.convertIdent(x)
	case *ast.NumberLit:
		return b.convertNumberLit(x)
	case *ast.StringLit:
		return &StringLit{typed: typed{Primitive("string")}, Span: x.Span, Value: x.Value}
	case *ast.TemplateLit:
		return b.convertTemplateLit(x)
	case *ast.BoolLit:
		return &BoolLit{typed: typed{Primitive("boolean")}, Span: x.Span, Value: x.Value}
	case *ast.NullLit:
		name := "null"
		if x.IsUndefined {
			name = "undefined"
		}

		return &NullLit{typed: typed{Primitive(name)}, Span: x.Span, IsUndefined: x.IsUndefined}
	case *ast.ThisExpr:
		return &ThisExpr{typed: typed{types.Unknown{}}, Span: x.Span}
	case *ast.SuperExpr:
		return &SuperExpr{typed: typed{types.Unknown{}}, Span: x.Span}
	case *ast.BinaryExpr:
		return b.convertBinary(x)
	case *ast.UnaryExpr:
		return b.convertUnary(x)
	case *ast.AsExpr:
		return b.convertAs(x)
	case *ast.CallExpr:
		return b.convertCall(x)
	case *ast.NewExpr:
		return b.convertNew(x)
	case *ast.MemberExpr:
		return b.convertMember(x)
	case *ast.IndexExpr:
		return b.convertIndex(x)
	case *ast.ArrayLit:
		return b.convertArrayLit(x)
	case *ast.ObjectLit:
		return b.convertObjectLit(x)
	case *ast.AssignExpr:
		return b.convertAssign(x)
	case *ast.ConditionalExpr:
		return b.convertConditional(x)
	case *ast.ArrowFunctionExpr:
		return b.convertArrow(x)
	default:
		return &NullLit{typed: typed{types.Unknown{}}, Span: e.Pos()}
	}
}

// Primitive is a small constructor helper so expression conversion reads
// like the table it is, rather than repeating `types.Primitive{Name: ...}`.
func Primitive(name string) types.Type { return types.Primitive{Name: name} }

func (b *Builder) convertIdent(x *ast.Ident) *Ident {
	if t, ok := b.lookupLocal(x.Name); ok {
		return &Ident{typed: typed{t}, Span: x.Span, Name: x.Name}
	}

	id, ok := b.reg.ResolveIdentifier(b.module, x.Name)
	if !ok {
		return &Ident{typed: typed{types.Unknown{}}, Span: x.Span, Name: x.Name}
	}

	out := &Ident{Span: x.Span, Name: x.Name, ResolvedDecl: id}

	if b.reg.Kind(id) == binding.DeclExternal {
		if entry, ok := b.reg.External(id); ok {
			out.CLRName = entry.FQName
		}
	}

	out.InferredType = b.declIdentType(id)

	return out
}

// declIdentType derives the type an Ident bound to a module-level
// declaration should carry: a Reference for nominal declarations, the
// resolved function type for a function, or Unknown when the Binding Layer
// only gave us an unresolved catalog miss.
func (b *Builder) declIdentType(id binding.DeclId) types.Type {
	switch b.reg.Kind(id) {
	case binding.DeclClass, binding.DeclInterface, binding.DeclEnum, binding.DeclExternal:
		return &types.Reference{Name: b.reg.Name(id), Decl: id}
	case binding.DeclFunction:
		if fn, ok := b.reg.FunctionDecl(id); ok {
			return b.functionSignatureType(fn)
		}
	case binding.DeclVar:
		if vd, ok := b.reg.VarDecl(id); ok && vd.Type != nil {
			return b.fromSyntax(vd.Type)
		}
	}

	return types.Unknown{}
}

func (b *Builder) functionSignatureType(fn *ast.FunctionDecl) *types.Function {
	params := make([]types.Param, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = types.Param{Name: p.Name, Type: b.fromSyntax(p.Type), Passing: p.Passing, Optional: p.Optional}
	}

	return &types.Function{TypeParams: fn.TypeParams, Params: params, Return: b.fromSyntax(fn.ReturnType)}
}

func (b *Builder) convertNumberLit(x *ast.NumberLit) *NumberLit {
	intent := inferNumericIntent(x.Text)
	return &NumberLit{typed: typed{types.Primitive{Name: "number", Intent: intent}}, Span: x.Span, Text: x.Text, Intent: intent}
}

func (b *Builder) convertTemplateLit(x *ast.TemplateLit) *TemplateLit {
	parts := splitTemplate(stripBackticks(x.Raw))

	out := &TemplateLit{typed: typed{Primitive("string")}, Span: x.Span}
	for _, p := range parts {
		if p.isExpr {
			// The sub-expression text cannot be re-parsed here without a
			// second parser entry point; interpolation expressions are
			// represented as opaque identifiers carrying their raw source
			// text until internal/ast grows a nested-expression template
			// grammar.
			out.Parts = append(out.Parts, TemplatePart{Expr: &Ident{typed: typed{types.Unknown{}}, Name: p.text}})
		} else {
			out.Parts = append(out.Parts, TemplatePart{Text: p.text})
		}
	}

	return out
}

// stripBackticks removes the raw token's surrounding backticks; the lexer
// keeps them in TemplateLit.Raw since it captures the literal verbatim.
func stripBackticks(raw string) string {
	if len(raw) >= 2 && raw[0] == '`' && raw[len(raw)-1] == '`' {
		return raw[1 : len(raw)-1]
	}

	return raw
}

type templateChunk struct {
	text   string
	isExpr bool
}

// splitTemplate splits a template literal's raw text (delimiting backticks
// already removed by stripBackticks) on `${...}` interpolation markers.
func splitTemplate(raw string) []templateChunk {
	var out []templateChunk

	rest := raw
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			if rest != "" {
				out = append(out, templateChunk{text: rest})
			}

			return out
		}

		if start > 0 {
			out = append(out, templateChunk{text: rest[:start]})
		}

		end := strings.Index(rest[start:], "}")
		if end < 0 {
			out = append(out, templateChunk{text: rest[start:]})
			return out
		}

		out = append(out, templateChunk{text: rest[start+2 : start+end], isExpr: true})
		rest = rest[start+end+1:]
	}
}

func (b *Builder) convertBinary(x *ast.BinaryExpr) *BinaryExpr {
	left := b.convertExpr(x.Left)
	right := b.convertExpr(x.Right)

	return &BinaryExpr{typed: typed{binaryResultType(x.Op, left, right)}, Span: x.Span, Op: x.Op, Left: left, Right: right}
}

func binaryResultType(op string, left, right Expr) types.Type {
	switch op {
	case "==", "!=", "===", "!==", "<", ">", "<=", ">=", "&&", "||":
		return Primitive("boolean")
	case "+", "-", "*", "/", "%":
		if lp, ok := left.ExprType().(types.Primitive); ok && lp.Name == "string" {
			return Primitive("string")
		}

		if rp, ok := right.ExprType().(types.Primitive); ok && op == "+" && rp.Name == "string" {
			return Primitive("string")
		}

		if op == "/" {
			return Primitive("number")
		}

		return numericBinaryIntent(left, right)
	default:
		return types.Unknown{}
	}
}

// numericBinaryIntent preserves Int32 intent across `+ - * %` only when both
// operands are Int32 and the operator cannot overflow into a wider
// representation; division always widens to the default `number` (double)
// intent, mirroring ordinary arithmetic promotion rules.
func numericBinaryIntent(left, right Expr) types.Type {
	lp, lok := left.ExprType().(types.Primitive)
	rp, rok := right.ExprType().(types.Primitive)

	if lok && rok && lp.Name == "number" && rp.Name == "number" &&
		lp.Intent == types.IntentInt32 && rp.Intent == types.IntentInt32 {
		return types.Primitive{Name: "number", Intent: types.IntentInt32}
	}

	return Primitive("number")
}

func (b *Builder) convertUnary(x *ast.UnaryExpr) *UnaryExpr {
	operand := b.convertExpr(x.Operand)

	t := operand.ExprType()
	switch x.Op {
	case "!":
		t = Primitive("boolean")
	case "typeof":
		t = Primitive("string")
	case "await":
		t = awaitedType(operand.ExprType())
	}

	return &UnaryExpr{typed: typed{t}, Span: x.Span, Op: x.Op, Operand: operand}
}

func awaitedType(t types.Type) types.Type {
	ref, ok := t.(*types.Reference)
	if ok && len(ref.Args) == 1 && (ref.Name == "Promise" || ref.Name == "Task" || ref.Name == "ValueTask") {
		return ref.Args[0]
	}

	return t
}

// passingModeOf reports the parameter-passing mode an `as ref<T>`-family
// marker type names, and T itself.
func passingModeOf(te ast.TypeExpr) (PassingMode, ast.TypeExpr) {
	ref, ok := te.(*ast.TypeRefExpr)
	if !ok || len(ref.Args) != 1 {
		return PassingNone, te
	}

	switch ref.Name {
	case "ref":
		return PassingRef, ref.Args[0]
	case "out":
		return PassingOut, ref.Args[0]
	case "inref":
		return PassingIn, ref.Args[0]
	default:
		return PassingNone, te
	}
}

func (b *Builder) convertAs(x *ast.AsExpr) *CastExpr {
	mode, inner := passingModeOf(x.Type)
	t := b.fromSyntax(inner)

	return &CastExpr{typed: typed{t}, Span: x.Span, X: b.convertExpr(x.X), Passing: mode}
}

func (b *Builder) convertCall(x *ast.CallExpr) *CallExpr {
	callee := b.convertExpr(x.Callee)

	args := make([]Expr, len(x.Args))
	argPassing := make([]ArgumentPassing, len(x.Args))

	for i, a := range x.Args {
		conv := b.convertExpr(a)
		args[i] = conv

		if cast, ok := conv.(*CastExpr); ok && cast.Passing != PassingNone {
			argPassing[i] = ArgumentPassing{Mode: cast.Passing}
		}
	}

	typeArgs := make([]types.Type, len(x.TypeArgs))
	for i, ta := range x.TypeArgs {
		typeArgs[i] = b.fromSyntax(ta)
	}

	fn, _ := callee.ExprType().(*types.Function)

	call := &CallExpr{
		Span:       x.Span,
		Callee:     callee,
		TypeArgs:   typeArgs,
		Args:       args,
		ArgPassing: argPassing,
	}

	if fn != nil {
		call.InferredType = fn.Return
		call.RequiresSpecialization = len(fn.TypeParams) > 0 && len(typeArgs) > 0

		paramTypes := make([]types.Type, len(fn.Params))
		for i, p := range fn.Params {
			paramTypes[i] = p.Type
		}

		call.ParameterTypes = paramTypes
	} else {
		call.InferredType = types.Unknown{}
	}

	return call
}

func (b *Builder) convertNew(x *ast.NewExpr) *NewExpr {
	callee := b.convertExpr(x.Callee)

	args := make([]Expr, len(x.Args))
	for i, a := range x.Args {
		args[i] = b.convertExpr(a)
	}

	typeArgs := make([]types.Type, len(x.TypeArgs))
	for i, ta := range x.TypeArgs {
		typeArgs[i] = b.fromSyntax(ta)
	}

	ident, isIdent := x.Callee.(*ast.Ident)

	n := &NewExpr{
		Span:     x.Span,
		Callee:   callee,
		TypeArgs: typeArgs,
		Args:     args,
	}

	if isIdent {
		switch ident.Name {
		case "Promise":
			n.IsPromiseConstructor = true
		case "Array":
			n.IsArrayConstructor = true
		case "List":
			n.IsListConstructor = true
		}

		n.InferredType = &types.Reference{Name: ident.Name, Args: typeArgs}
	} else {
		n.InferredType = types.Unknown{}
	}

	return n
}

func (b *Builder) convertMember(x *ast.MemberExpr) *MemberExpr {
	recv := b.convertExpr(x.X)

	t := memberFieldType(recv.ExprType(), x.Name)

	return &MemberExpr{typed: typed{t}, Span: x.Span, X: recv, Name: x.Name, Optional: x.Optional}
}

func memberFieldType(recv types.Type, name string) types.Type {
	obj, ok := recv.(*types.Object)
	if !ok {
		return types.Unknown{}
	}

	for _, f := range obj.Members {
		if f.Name == name {
			return f.Type
		}
	}

	return types.Unknown{}
}

func (b *Builder) convertIndex(x *ast.IndexExpr) *IndexExpr {
	recv := b.convertExpr(x.X)
	idx := b.convertExpr(x.Index)

	var result types.Type = types.Unknown{}
	if arr, ok := recv.ExprType().(*types.Array); ok {
		result = arr.Elem
	}

	return &IndexExpr{typed: typed{result}, Span: x.Span, X: recv, Index: idx}
}

func (b *Builder) convertArrayLit(x *ast.ArrayLit) *ArrayLit {
	out := &ArrayLit{Span: x.Span}

	var elemType types.Type = types.Unknown{}

	for _, el := range x.Elements {
		conv := b.convertExpr(el)
		out.Elements = append(out.Elements, conv)
		out.Spreads = append(out.Spreads, false)

		if _, isUnknown := elemType.(types.Unknown); isUnknown {
			elemType = conv.ExprType()
		}
	}

	out.InferredType = &types.Array{Elem: elemType, Origin: types.ArrayInferred}

	return out
}

func (b *Builder) convertObjectLit(x *ast.ObjectLit) *ObjectLit {
	out := &ObjectLit{Span: x.Span}

	var members []types.Field

	for _, p := range x.Properties {
		v := b.convertExpr(p.Value)
		out.Properties = append(out.Properties, ObjectProperty{Key: p.Key, Value: v})
		members = append(members, types.Field{Name: p.Key, Type: v.ExprType()})
	}

	out.InferredType = &types.Object{Members: members}

	return out
}

func (b *Builder) convertAssign(x *ast.AssignExpr) *AssignExpr {
	target := b.convertExpr(x.Target)
	value := b.convertExpr(x.Value)

	return &AssignExpr{typed: typed{target.ExprType()}, Span: x.Span, Op: x.Op, Target: target, Value: value}
}

func (b *Builder) convertConditional(x *ast.ConditionalExpr) *ConditionalExpr {
	cond := b.convertExpr(x.Cond)
	then := b.convertExpr(x.Then)
	els := b.convertExpr(x.Else)

	return &ConditionalExpr{
		typed: typed{conditionalResultType(then, els)},
		Span:  x.Span,
		Cond:  cond,
		Then:  then,
		Else:  els,
	}
}

// conditionalResultType returns the branches' shared type when both have
// the same type, and otherwise joins them into a union. Branches of
// differing numeric intent simply form a union; no widening diagnostic is
// reported for them.
func conditionalResultType(then, els Expr) types.Type {
	tt := then.ExprType()
	et := els.ExprType()

	if types.Equal(tt, et) {
		return tt
	}

	return &types.Union{Members: []types.Type{tt, et}}
}

func (b *Builder) convertArrow(x *ast.ArrowFunctionExpr) *ArrowFunctionExpr {
	b.pushScope()
	defer b.popScope()

	params := b.convertParams(x.Params)

	out := &ArrowFunctionExpr{
		Span:       x.Span,
		Params:     params,
		ReturnType: b.fromSyntax(x.ReturnType),
		IsAsync:    x.IsAsync,
	}

	if x.Block != nil {
		out.Block = b.convertBlock(x.Block)
	} else {
		out.ExprBody = b.convertExprOrNil(x.ExprBody)
	}

	fnType := &types.Function{Return: out.ReturnType}
	for _, p := range params {
		fnType.Params = append(fnType.Params, types.Param{Name: p.Name, Type: p.Type, Passing: p.Passing, Optional: p.Optional})
	}

	out.InferredType = fnType

	return out
}
