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
package types

import "github.com/tsoniclang/tsonic/internal/binding"

// Assigner computes assignability and performs the nominal-ancestry walks
// and nominal-to-structural lifts that require consulting the Binding Layer
// (spec §4.4). A nil Reg still answers every structural/primitive/union
// question; it only affects reference-to-reference and object-vs-reference
// checks, which then fall back to name equality.
type Assigner struct {
	Reg *binding.Registry
}

// IsAssignable reports whether a value of type from may be used where to is
// expected: structural for object/tuple/function, nominal for references,
// with union-split on the source, union-join on the target, literal-to-
// primitive widening, and the never <: T <: any identities.
func (a *Assigner) IsAssignable(from, to Type) bool {
	if from == nil || to == nil {
		return false
	}

	if _, ok := from.(Never); ok {
		return true
	}

	if _, ok := to.(Any); ok {
		return true
	}

	if _, ok := from.(Any); ok {
		return true
	}

	if _, ok := to.(Unknown); ok {
		return true
	}

	if fu, ok := from.(*Union); ok {
		for _, m := range fu.Members {
			if !a.IsAssignable(m, to) {
				return false
			}
		}

		return true
	}

	if tu, ok := to.(*Union); ok {
		for _, m := range tu.Members {
			if a.IsAssignable(from, m) {
				return true
			}
		}

		return false
	}

	if lit, ok := from.(Literal); ok {
		if _, toIsLiteral := to.(Literal); !toIsLiteral && a.IsAssignable(widenLiteral(lit), to) {
			return true
		}
	}

	switch t := to.(type) {
	case Primitive:
		fp, ok := from.(Primitive)
		return ok && fp.Name == t.Name
	case Void:
		_, ok := from.(Void)
		return ok
	case Never:
		_, ok := from.(Never)
		return ok
	case TypeParam:
		fp, ok := from.(TypeParam)
		return ok && fp.Name == t.Name
	case Literal:
		fl, ok := from.(Literal)
		return ok && fl.LitKind == t.LitKind && fl.StrVal == t.StrVal && fl.NumVal == t.NumVal && fl.BoolVal == t.BoolVal
	case *Reference:
		fr, ok := from.(*Reference)
		return ok && a.isNominallyAssignable(fr, t)
	case *Array:
		fa, ok := from.(*Array)
		return ok && a.IsAssignable(fa.Elem, t.Elem)
	case *Tuple:
		ft, ok := from.(*Tuple)
		if !ok || len(ft.Elems) != len(t.Elems) {
			return false
		}

		for i := range t.Elems {
			if !a.IsAssignable(ft.Elems[i], t.Elems[i]) {
				return false
			}
		}

		return true
	case *Dictionary:
		fd, ok := from.(*Dictionary)
		return ok && a.IsAssignable(fd.Key, t.Key) && a.IsAssignable(fd.Value, t.Value)
	case *Function:
		return a.isFunctionAssignable(from, t)
	case *Object:
		return a.isStructurallyAssignable(from, t)
	case *Intersection:
		for _, m := range t.Members {
			if !a.IsAssignable(from, m) {
				return false
			}
		}

		return true
	}

	return false
}

func (a *Assigner) isFunctionAssignable(from Type, to *Function) bool {
	ff, ok := from.(*Function)
	if !ok || len(ff.Params) != len(to.Params) {
		return false
	}

	// Parameters are contravariant: `to` may be called with anything `from`
	// accepts only if `to`'s parameter types are assignable to `from`'s.
	for i := range to.Params {
		if !a.IsAssignable(to.Params[i].Type, ff.Params[i].Type) {
			return false
		}
	}

	return a.IsAssignable(ff.Return, to.Return)
}

func (a *Assigner) isStructurallyAssignable(from Type, to *Object) bool {
	fromObj := a.structuralView(from)
	if fromObj == nil {
		return false
	}

	for _, want := range to.Members {
		have, found := fieldByName(fromObj, want.Name)
		if !found {
			if !want.Optional {
				return false
			}

			continue
		}

		if !want.Optional && have.Optional {
			return false
		}

		if !a.IsAssignable(have.Type, want.Type) {
			return false
		}
	}

	return true
}

func fieldByName(obj *Object, name string) (Field, bool) {
	for _, f := range obj.Members {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

func (a *Assigner) isNominallyAssignable(from, to *Reference) bool {
	if from.Name == to.Name {
		return assignableArgs(a, from.Args, to.Args)
	}

	if a.Reg == nil || from.Decl == 0 {
		return false
	}

	for _, ancestor := range a.ancestorNames(from.Decl) {
		if ancestor == to.Name {
			return true
		}
	}

	return false
}

func assignableArgs(a *Assigner, from, to []Type) bool {
	if len(from) != len(to) {
		return false
	}

	for i := range from {
		if !a.IsAssignable(from[i], to[i]) {
			return false
		}
	}

	return true
}

// ancestorNames walks id's inheritance chain (base type and implemented
// interfaces, recursively for base types), the same cycle-guarded walk
// internal/catalog.Catalog.ResolveMethod uses for CLR method resolution.
func (a *Assigner) ancestorNames(id binding.DeclId) []string {
	var out []string

	seen := make(map[string]bool)

	var walk func(id binding.DeclId)
	walk = func(id binding.DeclId) {
		switch a.Reg.Kind(id) {
		case binding.DeclClass:
			cd, ok := a.Reg.ClassDecl(id)
			if !ok {
				return
			}

			if cd.Extends != "" && !seen[cd.Extends] {
				seen[cd.Extends] = true
				out = append(out, cd.Extends)

				if nid, ok := a.Reg.ResolveIdentifier(a.Reg.Module(id), cd.Extends); ok {
					walk(nid)
				}
			}

			for _, i := range cd.Implements {
				if !seen[i] {
					seen[i] = true
					out = append(out, i)
				}
			}
		case binding.DeclInterface:
			ifd, ok := a.Reg.InterfaceDecl(id)
			if !ok {
				return
			}

			for _, e := range ifd.Extends {
				if !seen[e] {
					seen[e] = true
					out = append(out, e)

					if nid, ok := a.Reg.ResolveIdentifier(a.Reg.Module(id), e); ok {
						walk(nid)
					}
				}
			}
		case binding.DeclExternal:
			entry, ok := a.Reg.External(id)
			if !ok {
				return
			}

			if entry.BaseType != "" && !seen[entry.BaseType] {
				seen[entry.BaseType] = true
				out = append(out, entry.BaseType)
			}

			for _, i := range entry.Interfaces {
				if !seen[i] {
					seen[i] = true
					out = append(out, i)
				}
			}
		}
	}

	walk(id)

	return out
}

func (a *Assigner) structuralView(t Type) *Object {
	return liftStructuralView(a.Reg, t)
}

func widenLiteral(l Literal) Type {
	switch l.LitKind {
	case LiteralString:
		return Primitive{Name: "string"}
	case LiteralNumber:
		return Primitive{Name: "number"}
	case LiteralBoolean:
		return Primitive{Name: "boolean"}
	default:
		return Unknown{}
	}
}

// Equal reports structural equality between two types (used by the Exclude
// and Extract utility-type expansions' union filtering, spec §4.4).
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if a.Kind() != b.Kind() {
		return false
	}

	switch av := a.(type) {
	case Primitive:
		bv := b.(Primitive)
		return av.Name == bv.Name && av.Intent == bv.Intent
	case Literal:
		bv := b.(Literal)
		return av.LitKind == bv.LitKind && av.StrVal == bv.StrVal && av.NumVal == bv.NumVal && av.BoolVal == bv.BoolVal
	case *Reference:
		bv := b.(*Reference)
		if av.Name != bv.Name || len(av.Args) != len(bv.Args) {
			return false
		}

		for i := range av.Args {
			if !Equal(av.Args[i], bv.Args[i]) {
				return false
			}
		}

		return true
	case *Array:
		bv := b.(*Array)
		return Equal(av.Elem, bv.Elem)
	case *Tuple:
		bv := b.(*Tuple)
		return equalTypeSlices(av.Elems, bv.Elems)
	case *Dictionary:
		bv := b.(*Dictionary)
		return Equal(av.Key, bv.Key) && Equal(av.Value, bv.Value)
	case *Function:
		bv := b.(*Function)
		if len(av.Params) != len(bv.Params) || !Equal(av.Return, bv.Return) {
			return false
		}

		for i := range av.Params {
			if !Equal(av.Params[i].Type, bv.Params[i].Type) || av.Params[i].Passing != bv.Params[i].Passing {
				return false
			}
		}

		return true
	case *Object:
		bv := b.(*Object)
		if len(av.Members) != len(bv.Members) {
			return false
		}

		for i := range av.Members {
			if av.Members[i].Name != bv.Members[i].Name || !Equal(av.Members[i].Type, bv.Members[i].Type) {
				return false
			}
		}

		return true
	case *Union:
		bv := b.(*Union)
		return equalTypeSlices(av.Members, bv.Members)
	case *Intersection:
		bv := b.(*Intersection)
		return equalTypeSlices(av.Members, bv.Members)
	case TypeParam:
		bv := b.(TypeParam)
		return av.Name == bv.Name
	default:
		// Any, Unknown, Void, Never carry no data: Kind equality is enough.
		return true
	}
}

func equalTypeSlices(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}

	return true
}
