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
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/types"
)

// BuildJSONRegistry collects the set of closed types crossing a
// JSON.stringify/JSON.parse boundary (spec §4.6 step 6), skipping any type
// that still contains an in-scope type parameter (the emitter cannot
// source-generate a serializer for an open generic type). The result feeds
// the emitter's source-generated serializer registration (spec §4.7).
func BuildJSONRegistry(modules map[string]*ir.Module) []types.Type {
	var found []types.Type

	collect := func(t types.Type) {
		if t == nil || containsTypeParam(t) {
			return
		}

		for _, existing := range found {
			if types.Equal(existing, t) {
				return
			}
		}

		found = append(found, t)
	}

	for _, m := range modules {
		for _, d := range m.Decls {
			walkDeclForJSON(d, collect)
		}

		for _, s := range m.TopLevel {
			walkStmtForJSON(s, collect)
		}
	}

	return found
}

func containsTypeParam(t types.Type) bool {
	switch v := t.(type) {
	case types.TypeParam:
		return true
	case *types.Reference:
		for _, a := range v.Args {
			if containsTypeParam(a) {
				return true
			}
		}

		return false
	case *types.Array:
		return containsTypeParam(v.Elem)
	case *types.Tuple:
		for _, e := range v.Elems {
			if containsTypeParam(e) {
				return true
			}
		}

		return false
	case *types.Function:
		for _, p := range v.Params {
			if containsTypeParam(p.Type) {
				return true
			}
		}

		return containsTypeParam(v.Return)
	case *types.Object:
		for _, f := range v.Members {
			if containsTypeParam(f.Type) {
				return true
			}
		}

		return false
	case *types.Dictionary:
		return containsTypeParam(v.Key) || containsTypeParam(v.Value)
	case *types.Union:
		for _, m := range v.Members {
			if containsTypeParam(m) {
				return true
			}
		}

		return false
	case *types.Intersection:
		for _, m := range v.Members {
			if containsTypeParam(m) {
				return true
			}
		}

		return false
	default:
		return false
	}
}

// JSONCallType reports the type crossing the JSON boundary in a call, if
// callee is JSON.stringify or JSON.parse. internal/emit's Expression Emitter
// calls this too, so the boundary detection used to build the registry and
// the detection used to rewrite the call site never drift apart.
func JSONCallType(call *ir.CallExpr) (types.Type, bool) {
	member, ok := call.Callee.(*ir.MemberExpr)
	if !ok {
		return nil, false
	}

	recv, ok := member.X.(*ir.Ident)
	if !ok || recv.Name != "JSON" {
		return nil, false
	}

	switch member.Name {
	case "stringify":
		if len(call.Args) == 0 {
			return nil, false
		}

		return call.Args[0].ExprType(), true
	case "parse":
		if len(call.TypeArgs) == 0 {
			return nil, false
		}

		return call.TypeArgs[0], true
	default:
		return nil, false
	}
}

func walkDeclForJSON(d ir.Decl, collect func(types.Type)) {
	switch v := d.(type) {
	case *ir.FuncDecl:
		walkBlockForJSON(v.Body, collect)
	case *ir.ClassDecl:
		for _, f := range v.Fields {
			walkExprForJSON(f.Init, collect)
		}

		for _, meth := range v.Methods {
			walkDeclForJSON(meth, collect)
		}
	case *ir.EnumDecl:
		for _, m := range v.Members {
			walkExprForJSON(m.Init, collect)
		}
	case *ir.VarDecl:
		walkExprForJSON(v.Init, collect)
	}
}

func walkBlockForJSON(blk *ir.BlockStmt, collect func(types.Type)) {
	if blk == nil {
		return
	}

	for _, s := range blk.Stmts {
		walkStmtForJSON(s, collect)
	}
}

func walkStmtForJSON(s ir.Stmt, collect func(types.Type)) {
	switch v := s.(type) {
	case *ir.BlockStmt:
		walkBlockForJSON(v, collect)
	case *ir.LocalVarStmt:
		walkExprForJSON(v.Init, collect)
	case *ir.IfStmt:
		walkExprForJSON(v.Cond, collect)
		walkStmtForJSON(v.Then, collect)
		walkStmtForJSON(v.Else, collect)
	case *ir.WhileStmt:
		walkExprForJSON(v.Cond, collect)
		walkStmtForJSON(v.Body, collect)
	case *ir.ForStmt:
		walkStmtForJSON(v.Init, collect)
		walkExprForJSON(v.Cond, collect)
		walkExprForJSON(v.Post, collect)
		walkStmtForJSON(v.Body, collect)
	case *ir.ForOfStmt:
		walkExprForJSON(v.Iterable, collect)
		walkStmtForJSON(v.Body, collect)
	case *ir.ReturnStmt:
		walkExprForJSON(v.Value, collect)
	case *ir.ThrowStmt:
		walkExprForJSON(v.Value, collect)
	case *ir.TryStmt:
		walkBlockForJSON(v.Body, collect)

		if v.Catch != nil {
			walkBlockForJSON(v.Catch.Body, collect)
		}

		walkBlockForJSON(v.Finally, collect)
	case *ir.SwitchStmt:
		walkExprForJSON(v.Disc, collect)

		for _, c := range v.Cases {
			walkExprForJSON(c.Test, collect)

			for _, cs := range c.Body {
				walkStmtForJSON(cs, collect)
			}
		}
	case *ir.LabeledStmt:
		walkStmtForJSON(v.Body, collect)
	case *ir.ExprStmt:
		walkExprForJSON(v.X, collect)
	}
}

func walkExprForJSON(e ir.Expr, collect func(types.Type)) {
	if e == nil {
		return
	}

	if call, ok := e.(*ir.CallExpr); ok {
		if t, ok := JSONCallType(call); ok {
			collect(t)
		}
	}

	switch v := e.(type) {
	case *ir.BinaryExpr:
		walkExprForJSON(v.Left, collect)
		walkExprForJSON(v.Right, collect)
	case *ir.UnaryExpr:
		walkExprForJSON(v.Operand, collect)
	case *ir.CastExpr:
		walkExprForJSON(v.X, collect)
	case *ir.CallExpr:
		walkExprForJSON(v.Callee, collect)

		for _, a := range v.Args {
			walkExprForJSON(a, collect)
		}
	case *ir.NewExpr:
		walkExprForJSON(v.Callee, collect)

		for _, a := range v.Args {
			walkExprForJSON(a, collect)
		}
	case *ir.MemberExpr:
		walkExprForJSON(v.X, collect)
	case *ir.IndexExpr:
		walkExprForJSON(v.X, collect)
		walkExprForJSON(v.Index, collect)
	case *ir.ArrayLit:
		for _, el := range v.Elements {
			walkExprForJSON(el, collect)
		}
	case *ir.ObjectLit:
		for _, p := range v.Properties {
			walkExprForJSON(p.Value, collect)
		}
	case *ir.AssignExpr:
		walkExprForJSON(v.Target, collect)
		walkExprForJSON(v.Value, collect)
	case *ir.ConditionalExpr:
		walkExprForJSON(v.Cond, collect)
		walkExprForJSON(v.Then, collect)
		walkExprForJSON(v.Else, collect)
	case *ir.ArrowFunctionExpr:
		walkBlockForJSON(v.Block, collect)
		walkExprForJSON(v.ExprBody, collect)
	}
}
