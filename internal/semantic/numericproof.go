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
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/source"
	"github.com/tsoniclang/tsonic/internal/types"
)

// RunNumericProofPass marks every array-index expression provably Int32
// (spec §4.6 step 5) by inspecting its already-inferred type, sets
// ForStmt.CounterProvenInt32 for a classic counted loop whose counter is
// itself proven, and reports TSN5107 for every index that could not be
// proven.
func RunNumericProofPass(modules map[string]*ir.Module, files FileLookup, bag *diagnostics.Bag) {
	for path, m := range modules {
		file, _ := files(path)

		for _, d := range m.Decls {
			walkDeclForNumericProof(d, file, bag)
		}

		for _, s := range m.TopLevel {
			walkStmtForNumericProof(s, file, bag)
		}
	}
}

// isProvenInt32 reports whether t is the "number" primitive carrying
// Int32 intent: the only shape the Numeric Proof Pass treats as proven.
func isProvenInt32(t types.Type) bool {
	p, ok := t.(types.Primitive)
	return ok && p.Name == "number" && p.Intent == types.IntentInt32
}

func walkDeclForNumericProof(d ir.Decl, file *source.File, bag *diagnostics.Bag) {
	switch v := d.(type) {
	case *ir.FuncDecl:
		walkBlockForNumericProof(v.Body, file, bag)
	case *ir.ClassDecl:
		for _, f := range v.Fields {
			walkExprForNumericProof(f.Init, file, bag)
		}

		for _, meth := range v.Methods {
			walkDeclForNumericProof(meth, file, bag)
		}
	case *ir.EnumDecl:
		for _, m := range v.Members {
			walkExprForNumericProof(m.Init, file, bag)
		}
	case *ir.VarDecl:
		walkExprForNumericProof(v.Init, file, bag)
	}
}

func walkBlockForNumericProof(blk *ir.BlockStmt, file *source.File, bag *diagnostics.Bag) {
	if blk == nil {
		return
	}

	for _, s := range blk.Stmts {
		walkStmtForNumericProof(s, file, bag)
	}
}

func walkStmtForNumericProof(s ir.Stmt, file *source.File, bag *diagnostics.Bag) {
	switch v := s.(type) {
	case *ir.BlockStmt:
		walkBlockForNumericProof(v, file, bag)
	case *ir.LocalVarStmt:
		walkExprForNumericProof(v.Init, file, bag)
	case *ir.IfStmt:
		walkExprForNumericProof(v.Cond, file, bag)
		walkStmtForNumericProof(v.Then, file, bag)
		walkStmtForNumericProof(v.Else, file, bag)
	case *ir.WhileStmt:
		walkExprForNumericProof(v.Cond, file, bag)
		walkStmtForNumericProof(v.Body, file, bag)
	case *ir.ForStmt:
		walkStmtForNumericProof(v.Init, file, bag)
		walkExprForNumericProof(v.Cond, file, bag)
		walkExprForNumericProof(v.Post, file, bag)
		walkStmtForNumericProof(v.Body, file, bag)
		v.CounterProvenInt32 = counterProven(v.Init)
	case *ir.ForOfStmt:
		walkExprForNumericProof(v.Iterable, file, bag)
		walkStmtForNumericProof(v.Body, file, bag)
	case *ir.ReturnStmt:
		walkExprForNumericProof(v.Value, file, bag)
	case *ir.ThrowStmt:
		walkExprForNumericProof(v.Value, file, bag)
	case *ir.TryStmt:
		walkBlockForNumericProof(v.Body, file, bag)

		if v.Catch != nil {
			walkBlockForNumericProof(v.Catch.Body, file, bag)
		}

		walkBlockForNumericProof(v.Finally, file, bag)
	case *ir.SwitchStmt:
		walkExprForNumericProof(v.Disc, file, bag)

		for _, c := range v.Cases {
			walkExprForNumericProof(c.Test, file, bag)

			for _, cs := range c.Body {
				walkStmtForNumericProof(cs, file, bag)
			}
		}
	case *ir.LabeledStmt:
		walkStmtForNumericProof(v.Body, file, bag)
	case *ir.ExprStmt:
		walkExprForNumericProof(v.X, file, bag)
	}
}

// counterProven reports whether a classic for loop's init statement
// declares its counter with proven Int32 intent.
func counterProven(init ir.Stmt) bool {
	lv, ok := init.(*ir.LocalVarStmt)
	return ok && isProvenInt32(lv.Type)
}

func walkExprForNumericProof(e ir.Expr, file *source.File, bag *diagnostics.Bag) {
	if e == nil {
		return
	}

	switch v := e.(type) {
	case *ir.BinaryExpr:
		walkExprForNumericProof(v.Left, file, bag)
		walkExprForNumericProof(v.Right, file, bag)
	case *ir.UnaryExpr:
		walkExprForNumericProof(v.Operand, file, bag)
	case *ir.CastExpr:
		walkExprForNumericProof(v.X, file, bag)
	case *ir.CallExpr:
		walkExprForNumericProof(v.Callee, file, bag)

		for _, a := range v.Args {
			walkExprForNumericProof(a, file, bag)
		}
	case *ir.NewExpr:
		walkExprForNumericProof(v.Callee, file, bag)

		for _, a := range v.Args {
			walkExprForNumericProof(a, file, bag)
		}
	case *ir.MemberExpr:
		walkExprForNumericProof(v.X, file, bag)
	case *ir.IndexExpr:
		walkExprForNumericProof(v.X, file, bag)
		walkExprForNumericProof(v.Index, file, bag)

		v.IndexProvenInt32 = isProvenInt32(v.Index.ExprType())

		if !v.IndexProvenInt32 && file != nil && bag != nil {
			if span, ok := spanOfExpr(v.Index); ok {
				bag.Add(file.Error(diagnostics.TSN5107, span, "array index could not be proven to be a 32-bit integer"))
			}
		}
	case *ir.ArrayLit:
		for _, el := range v.Elements {
			walkExprForNumericProof(el, file, bag)
		}
	case *ir.ObjectLit:
		for _, p := range v.Properties {
			walkExprForNumericProof(p.Value, file, bag)
		}
	case *ir.AssignExpr:
		walkExprForNumericProof(v.Target, file, bag)
		walkExprForNumericProof(v.Value, file, bag)
	case *ir.ConditionalExpr:
		walkExprForNumericProof(v.Cond, file, bag)
		walkExprForNumericProof(v.Then, file, bag)
		walkExprForNumericProof(v.Else, file, bag)
	case *ir.ArrowFunctionExpr:
		walkBlockForNumericProof(v.Block, file, bag)
		walkExprForNumericProof(v.ExprBody, file, bag)
	}
}

// spanOfExpr extracts e's source.Span by concrete type, mirroring
// internal/ir's own soundness-gate span lookup since Expr carries no Pos()
// method of its own.
func spanOfExpr(e ir.Expr) (source.Span, bool) {
	switch v := e.(type) {
	case *ir.Ident:
		return v.Span, true
	case *ir.NumberLit:
		return v.Span, true
	case *ir.StringLit:
		return v.Span, true
	case *ir.BinaryExpr:
		return v.Span, true
	case *ir.UnaryExpr:
		return v.Span, true
	case *ir.CallExpr:
		return v.Span, true
	case *ir.MemberExpr:
		return v.Span, true
	case *ir.IndexExpr:
		return v.Span, true
	default:
		return source.Span{}, false
	}
}
