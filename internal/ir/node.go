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

// Package ir is the IR Builder (spec §4.5): it walks a parsed module's
// internal/ast tree once and produces a tree of the node types declared in
// this file, resolving every identifier and type annotation against
// internal/binding and internal/types as it goes. Nothing downstream
// (internal/semantic, internal/emit) ever inspects an internal/ast node
// directly.
package ir

import (
	"github.com/tsoniclang/tsonic/internal/binding"
	"github.com/tsoniclang/tsonic/internal/source"
	"github.com/tsoniclang/tsonic/internal/types"
)

// Module is one compiled source file's IR: its top-level declarations in
// first-encountered order, plus any top-level executable statements
// (gathered separately so the emitter can decide whether to wrap them in a
// `__TopLevel()` method, spec §4.7/§4.8).
type Module struct {
	Path            string
	Decls           []Decl
	TopLevel        []Stmt
	HasExportedMain bool
}

// Decl is implemented by every top-level declaration IR node.
type Decl interface {
	declNode()
}

// FuncDecl is a function or method declaration.
type FuncDecl struct {
	Span         source.Span
	Name         string
	TypeParams   []string
	Params       []Param
	ReturnType   types.Type
	Body         *BlockStmt
	IsGenerator  bool
	IsAsync      bool
	IsStatic     bool
	Visibility   string
	IsOverride   bool
	// Bidirectional is set when a generator's body observes the value
	// passed back through `next(v)`, requiring a wrapper class (spec §4.5).
	Bidirectional bool
	// Decl is the binding.DeclId this function was registered under, for
	// top-level functions (zero for a class method, which is reached through
	// its owning ClassDecl instead).
	Decl binding.DeclId
}

func (*FuncDecl) declNode() {}

// Param is one lowered parameter: its declared type and its passing mode,
// derived from an `as ref<T>`/`as out<T>`/`as inref<T>` marker in the
// source, if any (spec §4.5).
type Param struct {
	Name     string
	Type     types.Type
	Passing  string // "" | "ref" | "out" | "in"
	Optional bool
}

// Field is one class field, already type-converted.
type Field struct {
	Span       source.Span
	Name       string
	Type       types.Type
	Init       Expr
	Static     bool
	Readonly   bool
	Visibility string
}

// ClassDecl is a class declaration, with its own methods lowered alongside
// it (rather than separately) so the emitter never has to re-associate a
// FuncDecl with its owning class.
type ClassDecl struct {
	Span       source.Span
	Name       string
	TypeParams []string
	Extends    string
	Implements []string
	Fields     []Field
	Methods    []*FuncDecl
	// Decl is the binding.DeclId this class was registered under, so the
	// emitter and semantic passes can ask internal/binding/internal/types
	// questions about it without re-deriving the handle.
	Decl binding.DeclId
}

func (*ClassDecl) declNode() {}

// InterfaceDecl is a structural interface declaration.
type InterfaceDecl struct {
	Span    source.Span
	Name    string
	Extends []string
	Members []Field
	Decl    binding.DeclId
}

func (*InterfaceDecl) declNode() {}

// EnumMember is one lowered enum entry.
type EnumMember struct {
	Name string
	Init Expr
}

// EnumDecl is an enum declaration.
type EnumDecl struct {
	Span    source.Span
	Name    string
	Members []EnumMember
	Decl    binding.DeclId
}

func (*EnumDecl) declNode() {}

// TypeAliasDecl is a type-alias declaration. Structural aliases need a
// companion adapter class at emission (spec §4.7); Target records the fully
// expanded type so the emitter can tell structural from non-structural
// without re-walking syntax.
type TypeAliasDecl struct {
	Span       source.Span
	Name       string
	Target     types.Type
	Structural bool
	Decl       binding.DeclId
}

func (*TypeAliasDecl) declNode() {}

// VarDecl is a top-level `let`/`const`/`var` binding.
type VarDecl struct {
	Span source.Span
	Kind string
	Name string
	Type types.Type
	Init Expr
	Decl binding.DeclId
}

func (*VarDecl) declNode() {}

// Stmt is implemented by every statement-level IR node.
type Stmt interface {
	stmtNode()
}

// BlockStmt is a `{ ... }` sequence.
type BlockStmt struct {
	Span  source.Span
	Stmts []Stmt
}

func (*BlockStmt) stmtNode() {}

// LocalVarStmt is a `let`/`const`/`var` statement inside a function body.
type LocalVarStmt struct {
	Span source.Span
	Kind string
	Name string
	Type types.Type
	Init Expr
}

func (*LocalVarStmt) stmtNode() {}

// IfStmt is `if (cond) then [else else_]`.
type IfStmt struct {
	Span source.Span
	Cond Expr
	Then Stmt
	Else Stmt
}

func (*IfStmt) stmtNode() {}

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	Span source.Span
	Cond Expr
	Body Stmt
}

func (*WhileStmt) stmtNode() {}

// ForStmt is a classic C-style for loop. CounterProvenInt32 is set by the
// Numeric Proof Pass (spec §4.6), not the builder; it starts false.
type ForStmt struct {
	Span               source.Span
	Init               Stmt
	Cond               Expr
	Post               Expr
	Body               Stmt
	CounterProvenInt32 bool
}

func (*ForStmt) stmtNode() {}

// ForOfStmt is `for (const x of iterable) body`.
type ForOfStmt struct {
	Span     source.Span
	VarKind  string
	VarName  string
	VarType  types.Type
	Iterable Expr
	Body     Stmt
}

func (*ForOfStmt) stmtNode() {}

// ReturnStmt is `return [value];`.
type ReturnStmt struct {
	Span  source.Span
	Value Expr
}

func (*ReturnStmt) stmtNode() {}

// BreakStmt is `break [label];`.
type BreakStmt struct {
	Span  source.Span
	Label string
}

func (*BreakStmt) stmtNode() {}

// ContinueStmt is `continue [label];`.
type ContinueStmt struct {
	Span  source.Span
	Label string
}

func (*ContinueStmt) stmtNode() {}

// ThrowStmt is `throw value;`.
type ThrowStmt struct {
	Span  source.Span
	Value Expr
}

func (*ThrowStmt) stmtNode() {}

// CatchClause is one `catch (name) { ... }` (or catch-all) clause.
type CatchClause struct {
	Span    source.Span
	Name    string // "" for a parameterless catch
	Type    types.Type
	Body    *BlockStmt
}

// TryStmt is `try { } catch (e) { } finally { }`.
type TryStmt struct {
	Span    source.Span
	Body    *BlockStmt
	Catch   *CatchClause
	Finally *BlockStmt
}

func (*TryStmt) stmtNode() {}

// SwitchCase is one `case expr:`/`default:` arm.
type SwitchCase struct {
	Span    source.Span
	Test    Expr // nil for `default:`
	Body    []Stmt
}

// SwitchStmt is `switch (disc) { case ...: ... }`.
type SwitchStmt struct {
	Span  source.Span
	Disc  Expr
	Cases []SwitchCase
}

func (*SwitchStmt) stmtNode() {}

// LabeledStmt is `label: stmt`.
type LabeledStmt struct {
	Span  source.Span
	Label string
	Body  Stmt
}

func (*LabeledStmt) stmtNode() {}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	Span source.Span
	X    Expr
}

func (*ExprStmt) stmtNode() {}

// Expr is implemented by every expression-level IR node. Every Expr carries
// its own InferredType so the Emitter's Type Emitter never needs to
// re-derive it.
type Expr interface {
	exprNode()
	ExprType() types.Type
}

// typed is embedded by every Expr to carry its inferred type.
type typed struct {
	InferredType types.Type
}

func (t typed) ExprType() types.Type { return t.InferredType }

// Ident is an identifier reference, resolved against the Binding Layer.
// ResolvedDecl is the zero value if the name is an unresolved local
// (function parameter, local variable) rather than a module-level
// declaration or import.
type Ident struct {
	typed
	Span         source.Span
	Name         string
	ResolvedDecl binding.DeclId
	// CLRName is the fully-qualified CLR name the emitter should print, set
	// only when ResolvedDecl is a DeclExternal handle.
	CLRName string
}

func (*Ident) exprNode() {}

// NumberLit is a numeric literal; Intent carries the inferred numeric
// intent (spec §4.5's numeric-intent tracking).
type NumberLit struct {
	typed
	Span   source.Span
	Text   string
	Intent types.NumericIntent
}

func (*NumberLit) exprNode() {}

// StringLit is a string literal.
type StringLit struct {
	typed
	Span  source.Span
	Value string
}

func (*StringLit) exprNode() {}

// TemplatePart is either a literal run of text (Expr nil) or an interpolated
// expression (Text empty).
type TemplatePart struct {
	Text string
	Expr Expr
}

// TemplateLit is a backtick template literal, split into literal/expression
// parts.
type TemplateLit struct {
	typed
	Span  source.Span
	Parts []TemplatePart
}

func (*TemplateLit) exprNode() {}

// BoolLit is `true`/`false`.
type BoolLit struct {
	typed
	Span  source.Span
	Value bool
}

func (*BoolLit) exprNode() {}

// NullLit is `null` or `undefined`.
type NullLit struct {
	typed
	Span        source.Span
	IsUndefined bool
}

func (*NullLit) exprNode() {}

// ThisExpr is `this`.
type ThisExpr struct {
	typed
	Span source.Span
}

func (*ThisExpr) exprNode() {}

// SuperExpr is `super`, only valid as a CallExpr callee or MemberExpr
// receiver (spec §4.7's base-call lifting).
type SuperExpr struct {
	typed
	Span source.Span
}

func (*SuperExpr) exprNode() {}

// BinaryExpr is a binary arithmetic/comparison/logical expression.
type BinaryExpr struct {
	typed
	Span  source.Span
	Op    string
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr is a prefix unary expression, or `typeof`/`await`.
type UnaryExpr struct {
	typed
	Span    source.Span
	Op      string
	Operand Expr
}

func (*UnaryExpr) exprNode() {}

// PassingMode names the parameter-passing lowering an `as ref<T>`-family
// cast produces (spec §4.5).
type PassingMode string

const (
	PassingNone  PassingMode = ""
	PassingRef   PassingMode = "ref"
	PassingOut   PassingMode = "out"
	PassingIn    PassingMode = "in"
)

// CastExpr is a `value as Type` cast. Passing is non-empty when Type was one
// of the `ref<T>`/`out<T>`/`inref<T>` passing-mode markers, in which case
// InferredType is T itself, not the marker type.
type CastExpr struct {
	typed
	Span    source.Span
	X       Expr
	Passing PassingMode
}

func (*CastExpr) exprNode() {}

// ArgumentPassing records the lowered passing mode CallExpr computed for
// each positional argument (spec §4.5).
type ArgumentPassing struct {
	Mode PassingMode
}

// CallExpr is a function/method call.
type CallExpr struct {
	typed
	Span          source.Span
	Callee        Expr
	TypeArgs      []types.Type
	Args          []Expr
	ArgPassing    []ArgumentPassing
	ParameterTypes []types.Type
	// RequiresSpecialization is set when Callee resolves to a generic
	// declaration and TypeArgs are concrete (spec §4.7's monomorphization).
	RequiresSpecialization bool
	// IsPromiseConstructor marks `new Promise<T>(executor)` for the
	// emitter's TaskCompletionSource lowering; only meaningful on a NewExpr,
	// kept here too since some call sites construct via a plain call.
	IsPromiseConstructor bool
}

func (*CallExpr) exprNode() {}

// NewExpr is `new Callee(args)`.
type NewExpr struct {
	typed
	Span                 source.Span
	Callee               Expr
	TypeArgs             []types.Type
	Args                 []Expr
	IsPromiseConstructor bool
	IsArrayConstructor   bool
	IsListConstructor    bool
}

func (*NewExpr) exprNode() {}

// MemberBinding is a pre-resolved member-access target: the CLR assembly,
// declaring type, and member name a MemberExpr resolved to, plus whether it
// is an extension method (spec §4.5).
type MemberBinding struct {
	Assembly            string
	Type                string
	Member              string
	IsExtensionMethod   bool
}

// MemberExpr is `x.name` (or, with Optional, `x?.name`).
type MemberExpr struct {
	typed
	Span     source.Span
	X        Expr
	Name     string
	Optional bool
	Binding  *MemberBinding
}

func (*MemberExpr) exprNode() {}

// IndexExpr is `x[index]`. IndexProvenInt32 is filled in by the Numeric
// Proof Pass (spec §4.6), not the builder.
type IndexExpr struct {
	typed
	Span             source.Span
	X                Expr
	Index            Expr
	IndexProvenInt32 bool
}

func (*IndexExpr) exprNode() {}

// ArrayLit is `[e1, e2, ...]`. ContextualType is the element type inferred
// from the assignment/parameter context, if any.
type ArrayLit struct {
	typed
	Span           source.Span
	Elements       []Expr
	Spreads        []bool
	ContextualType types.Type
}

func (*ArrayLit) exprNode() {}

// ObjectProperty is one `key: value` entry of an object literal.
type ObjectProperty struct {
	Key    string
	Value  Expr
	Spread bool
}

// ObjectLit is `{ key: value, ... }`.
type ObjectLit struct {
	typed
	Span           source.Span
	Properties     []ObjectProperty
	ContextualType types.Type
}

func (*ObjectLit) exprNode() {}

// AssignExpr is `target op= value`.
type AssignExpr struct {
	typed
	Span   source.Span
	Op     string
	Target Expr
	Value  Expr
}

func (*AssignExpr) exprNode() {}

// ConditionalExpr is `cond ? then : else`.
type ConditionalExpr struct {
	typed
	Span source.Span
	Cond Expr
	Then Expr
	Else Expr
}

func (*ConditionalExpr) exprNode() {}

// ArrowFunctionExpr is `(params) => body`.
type ArrowFunctionExpr struct {
	typed
	Span        source.Span
	Params      []Param
	ReturnType  types.Type
	Block       *BlockStmt
	ExprBody    Expr
	IsAsync     bool
}

func (*ArrowFunctionExpr) exprNode() {}
