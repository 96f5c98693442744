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

// Package backend declares the target-language backend AST (spec §4.7): the
// immutable value trees internal/emit builds and internal/emit/backend's own
// Printer turns into source text. Nothing here knows about internal/ir or
// internal/types; it only knows how to represent and print C#.
package backend

// CompilationUnit is one emitted source file: a module's header, its
// using-directives, and the namespace body (spec §4.7's assembly rule).
type CompilationUnit struct {
	// LeadingComment is printed verbatim above the using-directives, one
	// `//` line per entry (used for the lossy-Readonly-erasure note).
	LeadingComment []string
	Usings         []string
	Namespace      string
	Decls          []NamespaceMember
}

// NamespaceMember is anything that can sit directly inside a namespace body:
// a type declaration (class/interface/enum/struct).
type NamespaceMember interface {
	namespaceMemberNode()
}

// TypeKind tags which C# type-declaration keyword a TypeDecl prints.
type TypeKind uint8

const (
	KindClass TypeKind = iota
	KindInterface
	KindEnum
	KindStruct
)

// TypeDecl is a class/interface/enum/struct declaration, with its own
// members and nested types (adapters, specializations, exchange/wrapper
// classes all nest the same way a source-level nested class would).
type TypeDecl struct {
	LeadingComment string
	Kind           TypeKind
	Modifiers      []string
	Name           string
	TypeParams     []string
	BaseTypes      []string
	Members        []Member
	Nested         []*TypeDecl
	// EnumMembers is only populated when Kind == KindEnum.
	EnumMembers []EnumMember
}

func (*TypeDecl) namespaceMemberNode() {}

// EnumMember is one `Name [= Init]` entry of an enum declaration.
type EnumMember struct {
	Name string
	Init Expr
}

// Member is implemented by every class/interface/struct member kind.
type Member interface {
	memberNode()
}

// Field is a plain field declaration (`Modifiers Type Name [= Init];`).
type Field struct {
	LeadingComment string
	Modifiers      []string
	Type           string
	Name           string
	Init           Expr
}

func (*Field) memberNode() {}

// Property is an auto-property (`Modifiers Type Name { get; [set;] }`),
// used for static readonly auto-properties (`{ get; }`, no `init`) and for
// ordinary mutable fields lifted to properties when the base member demands
// wider visibility.
type Property struct {
	LeadingComment string
	Modifiers      []string
	Type           string
	Name           string
	HasSetter      bool
	Init           Expr
}

func (*Property) memberNode() {}

// ParamDecl is one method/constructor parameter.
type ParamDecl struct {
	Modifier string // "" | "ref" | "out" | "in"
	Type     string
	Name     string
	Default  Expr
}

// Method is a method or (when IsConstructor is set) a constructor
// declaration.
type Method struct {
	LeadingComment string
	Modifiers      []string
	ReturnType     string // ignored when IsConstructor
	Name           string
	TypeParams     []string
	Params         []ParamDecl
	// BaseCall is the lowered `: base(args)` initializer, only meaningful on
	// a constructor (spec §4.7's super-call lifting).
	BaseCall      []Expr
	HasBaseCall   bool
	IsConstructor bool
	Body          []Stmt
	// ExpressionBody holds a single expression body (`=> expr;`) when set,
	// instead of Body.
	ExpressionBody Expr
}

func (*Method) memberNode() {}

// NestedTypeMember wraps a TypeDecl so it can also appear in a Members list
// (a nested class declared inside another type, as opposed to directly in
// the namespace).
type NestedTypeMember struct {
	Decl *TypeDecl
}

func (*NestedTypeMember) memberNode() {}
