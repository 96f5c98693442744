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

import "github.com/tsoniclang/tsonic/internal/source"

// Ident is a bare identifier reference.
type Ident struct {
	Span source.Span
	Name string
}

func (e *Ident) exprNode()        {}
func (e *Ident) Pos() source.Span { return e.Span }

// NumberLit is a numeric literal, kept as its original source text so the
// IR builder's numeric-intent inference (spec §4.5) can inspect it (e.g.
// whether it carries a fractional part).
type NumberLit struct {
	Span source.Span
	Text string
}

func (e *NumberLit) exprNode()        {}
func (e *NumberLit) Pos() source.Span { return e.Span }

// StringLit is a single/double-quoted string literal with quotes and escapes
// already resolved to the literal value.
type StringLit struct {
	Span  source.Span
	Value string
}

func (e *StringLit) exprNode()        {}
func (e *StringLit) Pos() source.Span { return e.Span }

// TemplateLit is a backtick template literal, kept as raw source text;
// interpolation splitting happens in the IR builder.
type TemplateLit struct {
	Span source.Span
	Raw  string
}

func (e *TemplateLit) exprNode()        {}
func (e *TemplateLit) Pos() source.Span { return e.Span }

// BoolLit is `true`/`false`.
type BoolLit struct {
	Span  source.Span
	Value bool
}

func (e *BoolLit) exprNode()        {}
func (e *BoolLit) Pos() source.Span { return e.Span }

// NullLit is `null` or `undefined`, distinguished by IsUndefined.
type NullLit struct {
	Span        source.Span
	IsUndefined bool
}

func (e *NullLit) exprNode()        {}
func (e *NullLit) Pos() source.Span { return e.Span }

// ThisExpr is `this`.
type ThisExpr struct{ Span source.Span }

func (e *ThisExpr) exprNode()        {}
func (e *ThisExpr) Pos() source.Span { return e.Span }

// SuperExpr is `super`.
type SuperExpr struct{ Span source.Span }

func (e *SuperExpr) exprNode()        {}
func (e *SuperExpr) Pos() source.Span { return e.Span }

// BinaryExpr is a binary operator expression (arithmetic, comparison,
// logical).
type BinaryExpr struct {
	Span  source.Span
	Op    string
	Left  Expr
	Right Expr
}

func (e *BinaryExpr) exprNode()        {}
func (e *BinaryExpr) Pos() source.Span { return e.Span }

// UnaryExpr is a prefix unary operator expression, or `typeof`/`await`.
type UnaryExpr struct {
	Span    source.Span
	Op      string
	Operand Expr
}

func (e *UnaryExpr) exprNode()        {}
func (e *UnaryExpr) Pos() source.Span { return e.Span }

// AsExpr is a `value as Type` cast, including the passing-mode markers
// (`as ref<T>`, `as out<T>`, `as inref<T>`) spec §4.5 lowers to parameter
// passing modes.
type AsExpr struct {
	Span source.Span
	X    Expr
	Type TypeExpr
}

func (e *AsExpr) exprNode()        {}
func (e *AsExpr) Pos() source.Span { return e.Span }

// CallExpr is a function/method call.
type CallExpr struct {
	Span     source.Span
	Callee   Expr
	TypeArgs []TypeExpr
	Args     []Expr
}

func (e *CallExpr) exprNode()        {}
func (e *CallExpr) Pos() source.Span { return e.Span }

// NewExpr is `new Callee(args)`, optionally with explicit type arguments
// (`new Box<int>(1)`).
type NewExpr struct {
	Span     source.Span
	Callee   Expr
	TypeArgs []TypeExpr
	Args     []Expr
}

func (e *NewExpr) exprNode()        {}
func (e *NewExpr) Pos() source.Span { return e.Span }

// MemberExpr is `x.name` or, with Optional set, `x?.name`.
type MemberExpr struct {
	Span     source.Span
	X        Expr
	Name     string
	Optional bool
}

func (e *MemberExpr) exprNode()        {}
func (e *MemberExpr) Pos() source.Span { return e.Span }

// IndexExpr is `x[index]`.
type IndexExpr struct {
	Span  source.Span
	X     Expr
	Index Expr
}

func (e *IndexExpr) exprNode()        {}
func (e *IndexExpr) Pos() source.Span { return e.Span }

// ArrayLit is `[e1, e2, ...]`.
type ArrayLit struct {
	Span     source.Span
	Elements []Expr
}

func (e *ArrayLit) exprNode()        {}
func (e *ArrayLit) Pos() source.Span { return e.Span }

// ObjectProperty is one `key: value` entry of an object literal.
type ObjectProperty struct {
	Key   string
	Value Expr
}

// ObjectLit is `{ key: value, ... }`.
type ObjectLit struct {
	Span       source.Span
	Properties []ObjectProperty
}

func (e *ObjectLit) exprNode()        {}
func (e *ObjectLit) Pos() source.Span { return e.Span }

// AssignExpr is `target op= value` (including plain `=`).
type AssignExpr struct {
	Span   source.Span
	Op     string
	Target Expr
	Value  Expr
}

func (e *AssignExpr) exprNode()        {}
func (e *AssignExpr) Pos() source.Span { return e.Span }

// ConditionalExpr is `cond ? then : else`.
type ConditionalExpr struct {
	Span source.Span
	Cond Expr
	Then Expr
	Else Expr
}

func (e *ConditionalExpr) exprNode()        {}
func (e *ConditionalExpr) Pos() source.Span { return e.Span }

// ArrowFunctionExpr is `(params) => body`, where the body is either Block, a
// *BlockStmt (braced body), or ExprBody, a single expression (concise body),
// distinguished by ExprBody being non-nil.
type ArrowFunctionExpr struct {
	Span       source.Span
	Params     []Param
	ReturnType TypeExpr
	Block      *BlockStmt
	ExprBody   Expr
	IsAsync    bool
}

func (e *ArrowFunctionExpr) exprNode()        {}
func (e *ArrowFunctionExpr) Pos() source.Span { return e.Span }
