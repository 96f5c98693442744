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
)

// StmtEmitter lowers IR statements to backend statements (spec §4.7's
// Statement Emitter), sharing an ExprEmitter for every expression it embeds.
type StmtEmitter struct {
	exprs *ExprEmitter
}

// NewStmtEmitter constructs a StmtEmitter over ee.
func NewStmtEmitter(ee *ExprEmitter) *StmtEmitter {
	return &StmtEmitter{exprs: ee}
}

// StmtsOf lowers block's statements with a fresh StmtEmitter over ee; a
// convenience entry point for callers (the Expression Emitter's arrow/lambda
// lowering) that only need one block lowered and don't otherwise hold a
// StmtEmitter.
func StmtsOf(ee *ExprEmitter, block *ir.BlockStmt) []backend.Stmt {
	return (&StmtEmitter{exprs: ee}).Block(block)
}

// Block lowers every statement of b in order.
func (se *StmtEmitter) Block(b *ir.BlockStmt) []backend.Stmt {
	if b == nil {
		return nil
	}

	out := make([]backend.Stmt, 0, len(b.Stmts))
	for _, s := range b.Stmts {
		out = append(out, se.Stmt(s))
	}

	return out
}

// Stmt lowers a single statement. The backend statement constructors are
// returned by pointer throughout: the Printer's own statement dispatch
// switches on the pointer forms (*backend.If, *backend.Return, ...), so a
// value here would silently fail to match any case.
func (se *StmtEmitter) Stmt(s ir.Stmt) backend.Stmt {
	switch v := s.(type) {
	case *ir.BlockStmt:
		return &backend.Block{Stmts: se.Block(v)}
	case *ir.LocalVarStmt:
		return &backend.VarDecl{Type: se.exprs.types.Emit(v.Type), Name: v.Name, Init: se.exprs.Emit(v.Init)}
	case *ir.IfStmt:
		return &backend.If{Cond: se.exprs.Emit(v.Cond), Then: se.stmtList(v.Then), Else: se.stmtList(v.Else)}
	case *ir.WhileStmt:
		return &backend.While{Cond: se.exprs.Emit(v.Cond), Body: se.stmtList(v.Body)}
	case *ir.ForStmt:
		return se.forStmt(v)
	case *ir.ForOfStmt:
		return &backend.ForEach{
			Type:     se.exprs.types.Emit(v.VarType),
			Name:     v.VarName,
			Iterable: se.exprs.Emit(v.Iterable),
			Body:     se.stmtList(v.Body),
		}
	case *ir.ReturnStmt:
		return &backend.Return{Value: se.exprs.Emit(v.Value)}
	case *ir.BreakStmt:
		return &backend.Break{Label: v.Label}
	case *ir.ContinueStmt:
		return &backend.Continue{Label: v.Label}
	case *ir.ThrowStmt:
		return &backend.Throw{Value: se.exprs.Emit(v.Value)}
	case *ir.TryStmt:
		return se.tryStmt(v)
	case *ir.SwitchStmt:
		return se.switchStmt(v)
	case *ir.LabeledStmt:
		return &backend.Labeled{Label: v.Label, Body: se.Stmt(v.Body)}
	case *ir.ExprStmt:
		return &backend.ExprStmt{X: se.exprs.Emit(v.X)}
	default:
		return &backend.ExprStmt{X: backend.Raw{Text: "/* unsupported statement */"}}
	}
}

// stmtList normalizes a single statement body (which may or may not already
// be a block) into the flat statement list If/While/ForEach/For bodies hold.
func (se *StmtEmitter) stmtList(s ir.Stmt) []backend.Stmt {
	if s == nil {
		return nil
	}

	if b, ok := s.(*ir.BlockStmt); ok {
		return se.Block(b)
	}

	return []backend.Stmt{se.Stmt(s)}
}

// forStmt lowers a C-style for loop as-is. internal/semantic's Numeric
// Proof Pass sets CounterProvenInt32 only when the counter's declaration
// already carries Int32 intent (inferred by internal/ir), so the counter's
// VarDecl prints as `int` here with no extra rewriting needed.
func (se *StmtEmitter) forStmt(v *ir.ForStmt) backend.Stmt {
	var init backend.Stmt
	if v.Init != nil {
		init = se.Stmt(v.Init)
	}

	var post backend.Expr
	if v.Post != nil {
		post = se.exprs.Emit(v.Post)
	}

	return &backend.For{Init: init, Cond: se.exprs.Emit(v.Cond), Post: post, Body: se.stmtList(v.Body)}
}

func (se *StmtEmitter) tryStmt(v *ir.TryStmt) backend.Stmt {
	t := &backend.Try{Body: se.Block(v.Body)}

	if v.Catch != nil {
		catchType := ""
		if v.Catch.Type != nil {
			catchType = se.exprs.types.Emit(v.Catch.Type)
		}

		t.Catch = &backend.Catch{Type: catchType, Name: v.Catch.Name, Body: se.Block(v.Catch.Body)}
	}

	if v.Finally != nil {
		t.Finally = se.Block(v.Finally)
	}

	return t
}

func (se *StmtEmitter) switchStmt(v *ir.SwitchStmt) backend.Stmt {
	cases := make([]backend.SwitchCase, len(v.Cases))

	for i, c := range v.Cases {
		var test backend.Expr
		if c.Test != nil {
			test = se.exprs.Emit(c.Test)
		}

		body := make([]backend.Stmt, len(c.Body))
		for j, cs := range c.Body {
			body[j] = se.Stmt(cs)
		}

		cases[i] = backend.SwitchCase{Test: test, Body: body}
	}

	return &backend.Switch{Disc: se.exprs.Emit(v.Disc), Cases: cases}
}
