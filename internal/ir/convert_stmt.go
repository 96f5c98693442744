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
	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/types"
)

func (b *Builder) convertBlock(blk *ast.BlockStmt) *BlockStmt {
	if blk == nil {
		return nil
	}

	b.pushScope()
	defer b.popScope()

	out := &BlockStmt{Span: blk.Span}
	for _, s := range blk.Stmts {
		out.Stmts = append(out.Stmts, b.convertStmt(s))
	}

	return out
}

func (b *Builder) convertStmt(s ast.Stmt) Stmt {
	switch st := s.(type) {
	case *ast.VarDecl:
		init := b.convertExprOrNil(st.Init)
		t := b.varType(st, init)
		b.declareLocal(st.Name, t)

		return &LocalVarStmt{Span: st.Span, Kind: st.Kind, Name: st.Name, Type: t, Init: init}
	case *ast.BlockStmt:
		return b.convertBlock(st)
	case *ast.IfStmt:
		return &IfStmt{
			Span: st.Span,
			Cond: b.convertExpr(st.Cond),
			Then: b.convertStmt(st.Then),
			Else: b.convertStmtOrNil(st.Else),
		}
	case *ast.WhileStmt:
		return &WhileStmt{Span: st.Span, Cond: b.convertExpr(st.Cond), Body: b.convertStmt(st.Body)}
	case *ast.ForStmt:
		b.pushScope()
		defer b.popScope()

		return &ForStmt{
			Span: st.Span,
			Init: b.convertStmtOrNil(st.Init),
			Cond: b.convertExprOrNilStmt(st.Cond),
			Post: b.convertExprOrNilStmt(st.Post),
			Body: b.convertStmt(st.Body),
		}
	case *ast.ForOfStmt:
		b.pushScope()
		defer b.popScope()

		iterable := b.convertExpr(st.Iterable)
		elemType := elementTypeOf(iterable.ExprType())
		b.declareLocal(st.VarName, elemType)

		return &ForOfStmt{
			Span:     st.Span,
			VarKind:  st.VarKind,
			VarName:  st.VarName,
			VarType:  elemType,
			Iterable: iterable,
			Body:     b.convertStmt(st.Body),
		}
	case *ast.ReturnStmt:
		return &ReturnStmt{Span: st.Span, Value: b.convertExprOrNil(st.Value)}
	case *ast.BreakStmt:
		return &BreakStmt{Span: st.Span, Label: st.Label}
	case *ast.ContinueStmt:
		return &ContinueStmt{Span: st.Span, Label: st.Label}
	case *ast.ExprStmt:
		return &ExprStmt{Span: st.Span, X: b.convertExpr(st.X)}
	default:
		return &ExprStmt{Span: s.Pos()}
	}
}

func (b *Builder) convertStmtOrNil(s ast.Stmt) Stmt {
	if s == nil {
		return nil
	}

	return b.convertStmt(s)
}

// convertExprOrNilStmt converts an ast.Expr that appears in statement
// position (a for-loop's cond/post clause) without requiring a Stmt wrapper.
func (b *Builder) convertExprOrNilStmt(e ast.Expr) Expr {
	if e == nil {
		return nil
	}

	return b.convertExpr(e)
}

// elementTypeOf unwraps the iteration element type of an Array, or falls
// back to Unknown for any other iterable shape the catalog cannot expand
// without richer member enumeration.
func elementTypeOf(t types.Type) types.Type {
	if a, ok := t.(*types.Array); ok {
		return a.Elem
	}

	return types.Unknown{}
}
