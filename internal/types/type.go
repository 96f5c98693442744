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

// Package types is the deterministic IR-level type algebra (spec §4.4): it
// never calls back into the Binding Layer's source-language semantics, only
// into internal/binding's already-resolved handles. It operates purely on
// the tagged Type variants declared in this file plus declarations reached
// through a *binding.Registry.
package types

import "github.com/tsoniclang/tsonic/internal/binding"

// Kind tags which Type variant a value holds.
type Kind uint8

const (
	KindAny Kind = iota
	KindUnknown
	KindVoid
	KindNever
	KindPrimitive
	KindLiteral
	KindReference
	KindArray
	KindTuple
	KindFunction
	KindObject
	KindDictionary
	KindUnion
	KindIntersection
	KindTypeParam
)

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindUnknown:
		return "unknown"
	case KindVoid:
		return "void"
	case KindNever:
		return "never"
	case KindPrimitive:
		return "primitive"
	case KindLiteral:
		return "literal"
	case KindReference:
		return "reference"
	case KindArray:
		return "array"
	case KindTuple:
		return "tuple"
	case KindFunction:
		return "function"
	case KindObject:
		return "object"
	case KindDictionary:
		return "dictionary"
	case KindUnion:
		return "union"
	case KindIntersection:
		return "intersection"
	case KindTypeParam:
		return "type parameter"
	default:
		return "unknown kind"
	}
}

// Type is implemented by every IR type variant. any only ever appears as a
// sentinel for unsupported syntax; internal/ir's soundness gate rejects any
// Any reaching emission (spec §3's IR Type invariant).
type Type interface {
	Kind() Kind
}

// Any is the unsupported-syntax sentinel.
type Any struct{}

func (Any) Kind() Kind { return KindAny }

// Unknown is the safe top type: assignable only to itself and to Any, but
// anything is assignable to it.
type Unknown struct{}

func (Unknown) Kind() Kind { return KindUnknown }

// Void is the absence of a value (a function's non-returning return type).
type Void struct{}

func (Void) Kind() Kind { return KindVoid }

// Never is the bottom type: assignable to everything, nothing assignable to
// it but itself.
type Never struct{}

func (Never) Kind() Kind { return KindNever }

// NumericIntent narrows a "number"-named Primitive to the CLR numeric type
// the emitter should use, tracked from integer literals, explicit casts, and
// proven-integer loop counters (spec §3, §4.5).
type NumericIntent uint8

const (
	IntentNone NumericIntent = iota
	IntentInt32
	IntentInt64
	IntentFloat32
	IntentFloat64
	IntentDecimal
)

func (n NumericIntent) String() string {
	switch n {
	case IntentInt32:
		return "Int32"
	case IntentInt64:
		return "Int64"
	case IntentFloat32:
		return "Float32"
	case IntentFloat64:
		return "Float64"
	case IntentDecimal:
		return "Decimal"
	default:
		return "none"
	}
}

// Primitive is "number" | "string" | "boolean" | "null" | "undefined".
// Intent is only meaningful when Name == "number".
type Primitive struct {
	Name   string
	Intent NumericIntent
}

func (Primitive) Kind() Kind { return KindPrimitive }

// LiteralKind tags which primitive a Literal narrows.
type LiteralKind uint8

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBoolean
)

// Literal is a single-value type, e.g. the `"ok"` in a discriminant union.
type Literal struct {
	LitKind LiteralKind
	StrVal  string
	NumVal  float64
	BoolVal bool
}

func (Literal) Kind() Kind { return KindLiteral }

// Reference is a nominal type reference: a class, interface, enum, type
// alias target, or external CLR type, with its type arguments. Decl is the
// binding.DeclId it resolved to, or the zero value if the name could not be
// resolved (treated as an opaque external reference downstream). Structural
// caches the lazily-computed nominal-to-structural lift (spec §4.4).
type Reference struct {
	Name       string
	Args       []Type
	Decl       binding.DeclId
	Structural *Object
}

func (*Reference) Kind() Kind { return KindReference }

// ArrayOrigin records whether an Array type came from an explicit `T[]`
// annotation or was inferred from context (e.g. an array literal).
type ArrayOrigin uint8

const (
	ArrayExplicit ArrayOrigin = iota
	ArrayInferred
)

// Array is `T[]`.
type Array struct {
	Elem   Type
	Origin ArrayOrigin
}

func (*Array) Kind() Kind { return KindArray }

// Tuple is a fixed-length, heterogeneously-typed sequence (produced by
// Parameters<F> expansion; this language subset has no tuple literal
// syntax of its own).
type Tuple struct {
	Elems []Type
}

func (*Tuple) Kind() Kind { return KindTuple }

// Param is one parameter of a Function type.
type Param struct {
	Name     string
	Type     Type
	Passing  string // "" | "ref" | "out" | "in"
	Optional bool
}

// Function is a callable signature.
type Function struct {
	TypeParams []string
	Params     []Param
	Return     Type
}

func (*Function) Kind() Kind { return KindFunction }

// Field is one member of an Object structural type.
type Field struct {
	Name     string
	Type     Type
	Optional bool
	Readonly bool
}

// Object is a structural member list (an inline `{ ... }` type literal, or
// the lifted view of a class/interface).
type Object struct {
	Members []Field
}

func (*Object) Kind() Kind { return KindObject }

// Dictionary is `Record<K, V>` expanded against a non-literal key type.
type Dictionary struct {
	Key   Type
	Value Type
}

func (*Dictionary) Kind() Kind { return KindDictionary }

// Union is `A | B | ...`, always kept flattened (no Union directly nested
// inside another Union's Members).
type Union struct {
	Members []Type
}

func (*Union) Kind() Kind { return KindUnion }

// Intersection is `A & B`, parsed only where the grammar admits it (object
// type composition); this language subset surfaces it solely as an
// expansion target, never as direct type syntax.
type Intersection struct {
	Members []Type
}

func (*Intersection) Kind() Kind { return KindIntersection }

// TypeParam is an unbound generic type-parameter reference.
type TypeParam struct {
	Name string
}

func (TypeParam) Kind() Kind { return KindTypeParam }
