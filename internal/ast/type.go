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

// TypeRefExpr is a named type reference with optional generic arguments,
// e.g. `Map<string, int>` or a bare `Widget`. Utility types (`Partial<T>`,
// `Pick<T, K>`, ...) parse as an ordinary TypeRefExpr; internal/types
// recognizes the well-known names during expansion (spec §4.4).
type TypeRefExpr struct {
	Span source.Span
	Name string
	Args []TypeExpr
}

func (t *TypeRefExpr) typeNode()        {}
func (t *TypeRefExpr) Pos() source.Span { return t.Span }

// ArrayTypeExpr is `T[]`.
type ArrayTypeExpr struct {
	Span source.Span
	Elem TypeExpr
}

func (t *ArrayTypeExpr) typeNode()        {}
func (t *ArrayTypeExpr) Pos() source.Span { return t.Span }

// UnionTypeExpr is `A | B | ...`.
type UnionTypeExpr struct {
	Span    source.Span
	Members []TypeExpr
}

func (t *UnionTypeExpr) typeNode()        {}
func (t *UnionTypeExpr) Pos() source.Span { return t.Span }

// FunctionTypeExpr is `(params) => ReturnType`.
type FunctionTypeExpr struct {
	Span       source.Span
	Params     []Param
	ReturnType TypeExpr
}

func (t *FunctionTypeExpr) typeNode()        {}
func (t *FunctionTypeExpr) Pos() source.Span { return t.Span }

// ObjectTypeExpr is an inline `{ name: Type; ... }` structural type literal.
type ObjectTypeExpr struct {
	Span    source.Span
	Members []*FieldDecl
}

func (t *ObjectTypeExpr) typeNode()        {}
func (t *ObjectTypeExpr) Pos() source.Span { return t.Span }

// LiteralStringTypeExpr is a single-quoted string-literal type, e.g. `"ok"`
// in `{ ok: string } | { err: string }` discriminant unions or in a
// `keyof`-derived finite literal-string union.
type LiteralStringTypeExpr struct {
	Span  source.Span
	Value string
}

func (t *LiteralStringTypeExpr) typeNode()        {}
func (t *LiteralStringTypeExpr) Pos() source.Span { return t.Span }
