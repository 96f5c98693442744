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
package emit

import (
	"github.com/tsoniclang/tsonic/internal/emit/backend"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/semantic"
)

// ExprEmitter lowers IR expressions to backend expressions (spec §4.7's
// Expression Emitter), applying the documented rewrites: `new Array<T>(n)`,
// `new List<T>([...])`, `new Promise<T>(executor)`, `JSON.stringify/parse`,
// and `super.m(x)` -> `base.m(x)`.
type ExprEmitter struct {
	types *TypeEmitter
	root  string // root namespace, for the generated JSON serializer context
}

// NewExprEmitter constructs an ExprEmitter sharing te's type lowering and
// rootNamespace's view of where the generated JSON serializer context lives.
func NewExprEmitter(te *TypeEmitter, rootNamespace string) *ExprEmitter {
	return &ExprEmitter{types: te, root: rootNamespace}
}

// Emit lowers e to a backend expression.
func (ee *ExprEmitter) Emit(e ir.Expr) backend.Expr {
	if e == nil {
		return nil
	}

	switch v := e.(type) {
	case *ir.Ident:
		return ee.emitIdent(v)
	case *ir.NumberLit:
		return backend.Raw{Text: v.Text}
	case *ir.StringLit:
		return backend.Raw{Text: quoteString(v.Value)}
	case *ir.TemplateLit:
		return ee.emitTemplate(v)
	case *ir.BoolLit:
		if v.Value {
			return backend.Raw{Text: "true"}
		}

		return backend.Raw{Text: "false"}
	case *ir.NullLit:
		return backend.Raw{Text: "null"}
	case *ir.ThisExpr:
		return backend.This{}
	case *ir.SuperExpr:
		return backend.Base{}
	case *ir.BinaryExpr:
		return backend.Bin{Op: csharpOp(v.Op), Left: ee.Emit(v.Left), Right: ee.Emit(v.Right)}
	case *ir.UnaryExpr:
		return ee.emitUnary(v)
	case *ir.CastExpr:
		return backend.Cast{Type: ee.types.Emit(v.ExprType()), X: ee.Emit(v.X)}
	case *ir.CallExpr:
		return ee.emitCall(v)
	case *ir.NewExpr:
		return ee.emitNew(v)
	case *ir.MemberExpr:
		return ee.emitMember(v)
	case *ir.IndexExpr:
		return backend.Index{Receiver: ee.Emit(v.X), Index: ee.Emit(v.Index)}
	case *ir.ArrayLit:
		return ee.emitArrayLit(v)
	case *ir.ObjectLit:
		return ee.emitObjectLit(v)
	case *ir.AssignExpr:
		return backend.Assign{Op: v.Op, Target: ee.Emit(v.Target), Value: ee.Emit(v.Value)}
	case *ir.ConditionalExpr:
		return backend.Conditional{Cond: ee.Emit(v.Cond), Then: ee.Emit(v.Then), Else: ee.Emit(v.Else)}
	case *ir.ArrowFunctionExpr:
		return ee.emitArrow(v)
	default:
		return backend.Raw{Text: "/* unsupported expression */"}
	}
}

func (ee *ExprEmitter) emitIdent(v *ir.Ident) backend.Expr {
	if v.CLRName != "" {
		return backend.Ident{Name: v.CLRName}
	}

	return backend.Ident{Name: v.Name}
}

// emitTemplate lowers a template literal as a `+` concatenation chain
// rather than a single `$"..."` interpolated string: an interpolated
// expression's already-rendered text may itself contain braces or quotes
// that would need re-escaping to nest safely inside one, so each part stays
// its own operand instead.
func (ee *ExprEmitter) emitTemplate(v *ir.TemplateLit) backend.Expr {
	var result backend.Expr

	for _, part := range v.Parts {
		var piece backend.Expr
		if part.Expr != nil {
			piece = backend.Call{Callee: backend.Member{Receiver: ee.Emit(part.Expr), Name: "ToString"}}
		} else {
			piece = backend.Raw{Text: quoteString(part.Text)}
		}

		if result == nil {
			result = piece
		} else {
			result = backend.Bin{Op: "+", Left: result, Right: piece}
		}
	}

	if result == nil {
		return backend.Raw{Text: `""`}
	}

	return result
}

func (ee *ExprEmitter) emitUnary(v *ir.UnaryExpr) backend.Expr {
	switch v.Op {
	case "typeof":
		return backend.Member{
			Receiver: backend.Call{Callee: backend.Member{Receiver: ee.Emit(v.Operand), Name: "GetType"}},
			Name:     "Name",
		}
	case "await":
		return backend.Un{Op: "await ", Operand: ee.Emit(v.Operand)}
	case "post++", "post--":
		return backend.Un{Op: v.Op[len("post"):], Operand: ee.Emit(v.Operand), Postfix: true}
	default:
		return backend.Un{Op: v.Op, Operand: ee.Emit(v.Operand)}
	}
}

// emitMember applies the `super.m` -> `base.m` rewrite implicitly: a
// SuperExpr receiver already lowers to backend.Base{} in Emit's own
// dispatch, so no special case is needed here.
func (ee *ExprEmitter) emitMember(v *ir.MemberExpr) backend.Expr {
	return backend.Member{Receiver: ee.Emit(v.X), Name: v.Name, NullConditional: v.Optional}
}

func (ee *ExprEmitter) emitArrayLit(v *ir.ArrayLit) backend.Expr {
	elemType := "object"

	switch {
	case v.ContextualType != nil:
		elemType = ee.types.Emit(v.ContextualType)
	case len(v.Elements) > 0:
		elemType = ee.types.Emit(v.Elements[0].ExprType())
	}

	elems := make([]backend.Expr, len(v.Elements))
	for i, el := range v.Elements {
		elems[i] = ee.Emit(el)
	}

	return backend.New{Type: elemType + "[]", Initializer: elems, HasInit: len(elems) > 0}
}

// emitObjectLit lowers an object literal to a runtime-typed
// `Dictionary<string, object>` collection initializer, keyed by property
// name. Every object literal takes this form; no named class is generated
// for it.
func (ee *ExprEmitter) emitObjectLit(v *ir.ObjectLit) backend.Expr {
	entries := make([]backend.Expr, len(v.Properties))

	for i, p := range v.Properties {
		entry := "{ " + quoteString(p.Key) + ", " + backend.RenderExpr(ee.Emit(p.Value)) + " }"
		entries[i] = backend.Raw{Text: entry}
	}

	return backend.New{Type: "Dictionary<string, object>", Initializer: entries, HasInit: len(entries) > 0}
}

func (ee *ExprEmitter) emitArrow(v *ir.ArrowFunctionExpr) backend.Expr {
	params := make([]string, len(v.Params))
	for i, p := range v.Params {
		params[i] = p.Name
	}

	if v.ExprBody != nil {
		return backend.Lambda{Params: params, Body: ee.Emit(v.ExprBody), Async: v.IsAsync}
	}

	return backend.Lambda{Params: params, Block: StmtsOf(ee, v.Block), Async: v.IsAsync}
}

func (ee *ExprEmitter) emitCall(v *ir.CallExpr) backend.Expr {
	if t, ok := semantic.JSONCallType(v); ok {
		return ee.emitJSONCall(v, t)
	}

	callee := ee.Emit(v.Callee)

	args := make([]backend.Expr, len(v.Args))
	for i, a := range v.Args {
		args[i] = ee.argExpr(a, i, v.ArgPassing)
	}

	typeArgs := make([]string, len(v.TypeArgs))
	for i, ta := range v.TypeArgs {
		typeArgs[i] = ee.types.Emit(ta)
	}

	if v.RequiresSpecialization {
		callee = backend.Ident{Name: mangleCalleeName(callee) + mangleSuffix(typeArgs)}
		typeArgs = nil
	}

	return backend.Call{Callee: callee, TypeArgs: typeArgs, Args: args}
}

func (ee *ExprEmitter) argExpr(a ir.Expr, i int, passing []ir.ArgumentPassing) backend.Expr {
	e := ee.Emit(a)

	if i >= len(passing) {
		return e
	}

	switch passing[i].Mode {
	case ir.PassingRef:
		return backend.Un{Op: "ref ", Operand: e}
	case ir.PassingOut:
		return backend.Un{Op: "out ", Operand: e}
	case ir.PassingIn:
		return backend.Un{Op: "in ", Operand: e}
	default:
		return e
	}
}

// emitJSONCall rewrites a JSON.stringify/parse call to a source-generated
// serializer invocation that references the root namespace's
// jsonContextClassName class by name (spec §4.7). This package does not
// emit that context class itself.
func (ee *ExprEmitter) emitJSONCall(v *ir.CallExpr, _ interface{}) backend.Expr {
	member, _ := v.Callee.(*ir.MemberExpr)

	ctxRef := backend.Ident{Name: "global::" + ee.root + "." + jsonContextClassName}

	switch member.Name {
	case "stringify":
		return backend.Call{
			Callee: backend.Member{Receiver: backend.Ident{Name: "global::System.Text.Json.JsonSerializer"}, Name: "Serialize"},
			Args:   []backend.Expr{ee.Emit(v.Args[0]), backend.Member{Receiver: ctxRef, Name: jsonTypeInfoFor(v.Args[0].ExprType(), ee.types)}},
		}
	case "parse":
		return backend.Call{
			Callee: backend.Member{Receiver: backend.Ident{Name: "global::System.Text.Json.JsonSerializer"}, Name: "Deserialize"},
			Args:   []backend.Expr{ee.Emit(v.Args[0]), backend.Member{Receiver: ctxRef, Name: jsonTypeInfoFor(v.TypeArgs[0], ee.types)}},
		}
	default:
		return backend.Raw{Text: "/* unreachable JSON call */"}
	}
}
