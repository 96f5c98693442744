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

// Package ast defines the parsed-source tree for the subset of the source
// language this compiler accepts, and the recursive-descent parser that
// builds it from an internal/source token stream.  Nothing outside
// internal/binding may inspect these nodes for semantic meaning (declared
// type, resolved symbol, etc) — that is the Binding Layer's firewall (spec
// §4.3); this package only describes shape.
package ast

import "github.com/tsoniclang/tsonic/internal/source"

// Stmt is implemented by every statement-level node.
type Stmt interface {
	stmtNode()
	Pos() source.Span
}

// Expr is implemented by every expression-level node.
type Expr interface {
	exprNode()
	Pos() source.Span
}

// TypeExpr is implemented by every inline type-syntax node.
type TypeExpr interface {
	typeNode()
	Pos() source.Span
}

// Program is the parsed form of a single module file.
type Program struct {
	File    *source.File
	Imports []*ImportDecl
	// Exports collects every export-affecting top-level form: named
	// re-exports, star re-exports, and `export` markers on local
	// declarations.
	Exports []*ExportClause
	Stmts   []Stmt
}

// ImportSpecifier is one `{ imported as local }` entry of an import clause.
type ImportSpecifier struct {
	Imported string
	Local    string
}

// ImportDecl is a single `import ... from "source"` statement.
type ImportDecl struct {
	Span       source.Span
	Source     string
	Default    string // local name bound to the default export, if any
	Namespace  string // local name bound to `import * as NS`, if any
	Specifiers []ImportSpecifier
}

func (d *ImportDecl) stmtNode()        {}
func (d *ImportDecl) Pos() source.Span { return d.Span }

// ExportSpecifier is one `{ local as exported }` entry of an export clause.
type ExportSpecifier struct {
	Local    string
	Exported string
}

// ExportClause is `export { ... } [from "source"]` or `export * from
// "source"` or `export * as ns from "source"`.
type ExportClause struct {
	Span        source.Span
	Specifiers  []ExportSpecifier
	From        string // empty when exporting local names, not re-exporting
	Star        bool
	StarAsLocal string // local binding name for `export * as ns`
}

func (d *ExportClause) stmtNode()        {}
func (d *ExportClause) Pos() source.Span { return d.Span }

// ExportedDecl wraps a declaration statement marked with a leading `export`
// keyword (as opposed to a later `export { name }` clause).
type ExportedDecl struct {
	Span source.Span
	Decl Stmt
}

func (d *ExportedDecl) stmtNode()        {}
func (d *ExportedDecl) Pos() source.Span { return d.Span }

// VarDecl is a `let`/`const` binding with an optional type annotation and
// initializer.
type VarDecl struct {
	Span source.Span
	Kind string // "let" | "const" | "var"
	Name string
	Type TypeExpr // nil if not annotated
	Init Expr     // nil if not initialized
}

func (d *VarDecl) stmtNode()        {}
func (d *VarDecl) Pos() source.Span { return d.Span }

// Param is one function/method parameter.
type Param struct {
	Name     string
	Type     TypeExpr
	Passing  string // "" | "ref" | "out" | "in", per spec §4.5 passing modes
	Optional bool
}

// FunctionDecl is a named function declaration (top-level or a class
// method).
type FunctionDecl struct {
	Span        source.Span
	Name        string
	TypeParams  []string
	Params      []Param
	ReturnType  TypeExpr
	Body        *BlockStmt
	IsGenerator bool
	IsAsync     bool
	IsStatic    bool
	Visibility  string // "public" | "private" | "protected", class methods only
	IsOverride  bool
}

func (d *FunctionDecl) stmtNode()        {}
func (d *FunctionDecl) Pos() source.Span { return d.Span }

// FieldDecl is a class field declaration.
type FieldDecl struct {
	Span       source.Span
	Name       string
	Type       TypeExpr
	Init       Expr
	Static     bool
	Readonly   bool
	Visibility string
}

// ClassDecl is a class declaration with fields and methods.
type ClassDecl struct {
	Span       source.Span
	Name       string
	TypeParams []string
	Extends    string
	Implements []string
	Fields     []*FieldDecl
	Methods    []*FunctionDecl
}

func (d *ClassDecl) stmtNode()        {}
func (d *ClassDecl) Pos() source.Span { return d.Span }

// InterfaceDecl is a structural interface declaration; the type system
// treats its member list as a structural ObjectType (spec §4.4).
type InterfaceDecl struct {
	Span    source.Span
	Name    string
	Extends []string
	Members []*FieldDecl
}

func (d *InterfaceDecl) stmtNode()        {}
func (d *InterfaceDecl) Pos() source.Span { return d.Span }

// EnumDecl is `enum Name { Member, Member = expr, ... }`.
type EnumDecl struct {
	Span    source.Span
	Name    string
	Members []EnumMember
}

// EnumMember is one enum entry, with an optional explicit initializer.
type EnumMember struct {
	Name string
	Init Expr // nil for an auto-numbered member
}

func (d *EnumDecl) stmtNode()        {}
func (d *EnumDecl) Pos() source.Span { return d.Span }

// TypeAliasDecl is `type Name = ...`.
type TypeAliasDecl struct {
	Span source.Span
	Name string
	Type TypeExpr
}

func (d *TypeAliasDecl) stmtNode()        {}
func (d *TypeAliasDecl) Pos() source.Span { return d.Span }

// BlockStmt is a `{ ... }` statement sequence.
type BlockStmt struct {
	Span  source.Span
	Stmts []Stmt
}

func (d *BlockStmt) stmtNode()        {}
func (d *BlockStmt) Pos() source.Span { return d.Span }

// IfStmt is `if (cond) then [else else_]`.
type IfStmt struct {
	Span source.Span
	Cond Expr
	Then Stmt
	Else Stmt // nil if no else clause
}

func (d *IfStmt) stmtNode()        {}
func (d *IfStmt) Pos() source.Span { return d.Span }

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	Span source.Span
	Cond Expr
	Body Stmt
}

func (d *WhileStmt) stmtNode()        {}
func (d *WhileStmt) Pos() source.Span { return d.Span }

// ForStmt is a classic C-style `for (init; cond; post) body`.
type ForStmt struct {
	Span source.Span
	Init Stmt // *VarDecl or *ExprStmt, nil if omitted
	Cond Expr
	Post Expr
	Body Stmt
}

func (d *ForStmt) stmtNode()        {}
func (d *ForStmt) Pos() source.Span { return d.Span }

// ForOfStmt is `for (const x of iterable) body`.
type ForOfStmt struct {
	Span     source.Span
	VarKind  string
	VarName  string
	Iterable Expr
	Body     Stmt
}

func (d *ForOfStmt) stmtNode()        {}
func (d *ForOfStmt) Pos() source.Span { return d.Span }

// ReturnStmt is `return [value];`.
type ReturnStmt struct {
	Span  source.Span
	Value Expr // nil for a bare `return;`
}

func (d *ReturnStmt) stmtNode()        {}
func (d *ReturnStmt) Pos() source.Span { return d.Span }

// BreakStmt is `break [label];`.
type BreakStmt struct {
	Span  source.Span
	Label string
}

func (d *BreakStmt) stmtNode()        {}
func (d *BreakStmt) Pos() source.Span { return d.Span }

// ContinueStmt is `continue [label];`.
type ContinueStmt struct {
	Span  source.Span
	Label string
}

func (d *ContinueStmt) stmtNode()        {}
func (d *ContinueStmt) Pos() source.Span { return d.Span }

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	Span source.Span
	X    Expr
}

func (d *ExprStmt) stmtNode()        {}
func (d *ExprStmt) Pos() source.Span { return d.Span }
