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
	"strings"

	"github.com/tsoniclang/tsonic/internal/binding"
	"github.com/tsoniclang/tsonic/internal/semantic"
	"github.com/tsoniclang/tsonic/internal/types"
)

// TypeEmitter lowers an IR type to its backend type-name string (spec
// §4.7's Type Emitter). It never returns a backend.Expr: a type name is
// always just text, used both standalone (a field/parameter/return type)
// and embedded in expression emission (`new T[n]`, `(T)x`).
type TypeEmitter struct {
	reg *binding.Registry
	sem *semantic.Result
}

// NewTypeEmitter constructs a TypeEmitter over the Binding Layer and
// completed semantic-pass results for one compilation.
func NewTypeEmitter(reg *binding.Registry, sem *semantic.Result) *TypeEmitter {
	return &TypeEmitter{reg: reg, sem: sem}
}

// Emit renders t as a backend type-name string.
func (e *TypeEmitter) Emit(t types.Type) string {
	if t == nil {
		return "object"
	}

	switch v := t.(type) {
	case types.Any, types.Unknown:
		return "object"
	case types.Void:
		return "void"
	case types.Never:
		return "void"
	case types.Primitive:
		return e.emitPrimitive(v)
	case types.Literal:
		return e.emitLiteralKind(v)
	case *types.Reference:
		return e.emitReference(v)
	case *types.Array:
		return e.Emit(v.Elem) + "[]"
	case *types.Tuple:
		return e.emitTuple(v)
	case *types.Function:
		return e.emitFunction(v)
	case *types.Object:
		// A structural object type prints as a dynamic CLR object; this
		// package generates no named class for a structural type.
		return "dynamic"
	case *types.Dictionary:
		return "Dictionary<" + e.Emit(v.Key) + ", " + e.Emit(v.Value) + ">"
	case *types.Union:
		return e.emitUnion(v)
	case *types.Intersection:
		return e.emitIntersection(v)
	case types.TypeParam:
		return v.Name
	default:
		return "object"
	}
}

func (e *TypeEmitter) emitPrimitive(p types.Primitive) string {
	switch p.Name {
	case "number":
		switch p.Intent {
		case types.IntentInt32:
			return "int"
		case types.IntentInt64:
			return "long"
		case types.IntentFloat32:
			return "float"
		case types.IntentDecimal:
			return "decimal"
		default:
			return "double"
		}
	case "string":
		return "string"
	case "boolean":
		return "bool"
	case "null", "undefined":
		return "object"
	default:
		return "object"
	}
}

func (e *TypeEmitter) emitLiteralKind(l types.Literal) string {
	switch l.LitKind {
	case types.LiteralString:
		return "string"
	case types.LiteralBoolean:
		return "bool"
	default:
		return "double"
	}
}

func (e *TypeEmitter) emitTuple(t *types.Tuple) string {
	parts := make([]string, len(t.Elems))
	for i, el := range t.Elems {
		parts[i] = e.Emit(el)
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

func (e *TypeEmitter) emitFunction(f *types.Function) string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = e.Emit(p.Type)
	}

	if _, isVoid := f.Return.(types.Void); isVoid {
		if len(parts) == 0 {
			return "Action"
		}

		return "Action<" + strings.Join(parts, ", ") + ">"
	}

	parts = append(parts, e.Emit(f.Return))

	return "Func<" + strings.Join(parts, ", ") + ">"
}

// emitUnion collapses a two-member `T | null`/`T | undefined` union into a
// nullable type (spec §4.7's nullable-wrapping rule); any wider union has no
// single CLR representation in this subset and erases to object.
func (e *TypeEmitter) emitUnion(u *types.Union) string {
	if len(u.Members) == 2 {
		for i, m := range u.Members {
			if isNullish(m) {
				other := u.Members[1-i]
				return nullableOf(e.Emit(other))
			}
		}
	}

	return "object"
}

func (e *TypeEmitter) emitIntersection(i *types.Intersection) string {
	// Object-composition intersections are expanded to a merged Object by
	// internal/types before reaching a type position the emitter needs a
	// name for; anything still an Intersection here has no named CLR
	// counterpart in this subset.
	return "object"
}

func isNullish(t types.Type) bool {
	p, ok := t.(types.Primitive)
	return ok && (p.Name == "null" || p.Name == "undefined")
}

// nullableOf wraps name in `?`, unless it is already a reference type for
// which CLR nullable-reference annotations (not nullable value wrapping)
// apply; value-type keywords are the only ones this subset wraps with `?`.
func nullableOf(name string) string {
	switch name {
	case "int", "long", "float", "double", "decimal", "bool":
		return name + "?"
	default:
		return name
	}
}

// emitReference renders a Reference as a fully-qualified `global::`-prefixed
// name (spec §4.7's import-resolution rule: local imports never emit
// using-directives, every reference is fully qualified).
func (e *TypeEmitter) emitReference(r *types.Reference) string {
	name := e.qualifiedName(r)

	if len(r.Args) > 0 {
		parts := make([]string, len(r.Args))
		for i, a := range r.Args {
			parts[i] = e.Emit(a)
		}

		name += "<" + strings.Join(parts, ", ") + ">"
	}

	return name
}

func (e *TypeEmitter) qualifiedName(r *types.Reference) string {
	if r.Decl == 0 {
		return r.Name
	}

	if ext, ok := e.reg.External(r.Decl); ok {
		return "global::" + ext.FQName
	}

	mod := e.reg.Module(r.Decl)
	if mod == "" {
		return r.Name
	}

	identity, ok := e.sem.Modules[mod]
	if !ok {
		return r.Name
	}

	return "global::" + identity.Namespace + "." + r.Name
}
