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
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/source"
	"github.com/tsoniclang/tsonic/internal/types"
)

// soundnessGate scans a built Module for any expression whose inferred type
// is still types.Any and reports TSN7414 at its precise location (spec
// §4.5's closing step). A nil file (e.g. in a unit test building IR without
// a real source.File) makes this a no-op rather than panicking.
func soundnessGate(m *Module, file *source.File, bag *diagnostics.Bag) {
	if file == nil || bag == nil {
		return
	}

	for _, d := range m.Decls {
		walkDeclForAny(d, file, bag)
	}

	for _, s := range m.TopLevel {
		walkStmtForAny(s, file, bag)
	}
}

// reportIfAny reports e itself if its type is unsound, then recurses into
// every child expression so a leaked `any` buried inside a call argument or
// binary operand is still caught (spec §4.5's "precise locations for each").
func reportIfAny(e Expr, file *source.File, bag *diagnostics.Bag) {
	if e == nil {
		return
	}

	if _, ok := e.ExprType().(types.Any); ok {
		if span, ok := spanOf(e); ok {
			bag.Add(file.Error(diagnostics.TSN7414, span, "expression type could not be determined"))
		}
	}

	for _, child := range childExprs(e) {
		reportIfAny(child, file, bag)
	}
}

// childExprs lists e's immediate sub-expressions, for the soundness gate's
// recursive walk.
func childExprs(e Expr) []Expr {
	switch x := e.(type) {
	case *BinaryExpr:
		return []Expr{x.Left, x.Right}
	case *UnaryExpr:
		return []Expr{x.Operand}
	case *CastExpr:
		return []Expr{x.X}
	case *CallExpr:
		out := append([]Expr{x.Callee}, x.Args...)
		return out
	case *NewExpr:
		out := append([]Expr{x.Callee}, x.Args...)
		return out
	case *MemberExpr:
		return []Expr{x.X}
	case *IndexExpr:
		return []Expr{x.X, x.Index}
	case *ArrayLit:
		return x.Elements
	case *ObjectLit:
		out := make([]Expr, len(x.Properties))
		for i, p := range x.Properties {
			out[i] = p.Value
		}

		return out
	case *AssignExpr:
		return []Expr{x.Target, x.Value}
	case *ConditionalExpr:
		return []Expr{x.Cond, x.Then, x.Else}
	default:
		return nil
	}
}

// spanOf extracts an Expr's source.Span by its concrete type, since Expr
// itself (unlike ast.Expr) does not require a Pos() method — IR nodes built
// synthetically (e.g. template-interpolation placeholders) have no real span
// to report against.
func spanOf(e Expr) (source.Span, bool) {
	switch x := e.(type) {
	case *Ident:
		return x.Span, true
	case *NumberLit:
		return x.Span, true
	case *StringLit:
		return x.Span, true
	case *TemplateLit:
		return x.Span, true
	case *BoolLit:
		return x.Span, true
	case *NullLit:
		return x.Span, true
	case *ThisExpr:
		return x.Span, true
	case *SuperExpr:
		return x.Span, true
	case *BinaryExpr:
		return x.Span, true
	case *UnaryExpr:
		return x.Span, true
	case *CastExpr:
		return x.Span, true
	case *CallExpr:
		return x.Span, true
	case *NewExpr:
		return x.Span, true
	case *MemberExpr:
		return x.Span, true
	case *IndexExpr:
		return x.Span, true
	case *ArrayLit:
		return x.Span, true
	case *ObjectLit:
		return x.Span, true
	case *AssignExpr:
		return x.Span, true
	case *ConditionalExpr:
		return x.Span, true
	case *ArrowFunctionExpr:
		return x.Span, true
	default:
		return source.Span{}, false
	}
}

func walkDeclForAny(d Decl, file *source.File, bag *diagnostics.Bag) {
	switch v := d.(type) {
	case *FuncDecl:
		walkBlockForAny(v.Body, file, bag)
	case *ClassDecl:
		for _, f := range v.Fields {
			reportIfAny(f.Init, file, bag)
		}

		for _, m := range v.Methods {
			walkDeclForAny(m, file, bag)
		}
	case *EnumDecl:
		for _, m := range v.Members {
			reportIfAny(m.Init, file, bag)
		}
	case *VarDecl:
		reportIfAny(v.Init, file, bag)
	}
}

func walkBlockForAny(blk *BlockStmt, file *source.File, bag *diagnostics.Bag) {
	if blk == nil {
		return
	}

	for _, s := range blk.Stmts {
		walkStmtForAny(s, file, bag)
	}
}

func walkStmtForAny(s Stmt, file *source.File, bag *diagnostics.Bag) {
	switch v := s.(type) {
	case *BlockStmt:
		walkBlockForAny(v, file, bag)
	case *LocalVarStmt:
		reportIfAny(v.Init, file, bag)
	case *IfStmt:
		reportIfAny(v.Cond, file, bag)
		walkStmtForAny(v.Then, file, bag)
		walkStmtForAny(v.Else, file, bag)
	case *WhileStmt:
		reportIfAny(v.Cond, file, bag)
		walkStmtForAny(v.Body, file, bag)
	case *ForStmt:
		walkStmtForAny(v.Init, file, bag)
		reportIfAny(v.Cond, file, bag)
		reportIfAny(v.Post, file, bag)
		walkStmtForAny(v.Body, file, bag)
	case *ForOfStmt:
		reportIfAny(v.Iterable, file, bag)
		walkStmtForAny(v.Body, file, bag)
	case *ReturnStmt:
		reportIfAny(v.Value, file, bag)
	case *ExprStmt:
		reportIfAny(v.X, file, bag)
	}
}
