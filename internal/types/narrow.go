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

// typeofTag returns the `typeof` tag a union member would report for a
// number/string/boolean/undefined primitive or literal and for a function,
// or "" for every other member (objects, arrays, null and references are not
// told apart).
func typeofTag(m Type) string {
	switch v := m.(type) {
	case Primitive:
		switch v.Name {
		case "number", "string", "boolean":
			return v.Name
		case "undefined":
			return "undefined"
		}
	case Literal:
		switch v.LitKind {
		case LiteralString:
			return "string"
		case LiteralNumber:
			return "number"
		case LiteralBoolean:
			return "boolean"
		}
	case *Function:
		return "function"
	}

	return ""
}

// NarrowTypeofEquals narrows t to the members matching `typeof x === tag`.
func NarrowTypeofEquals(t Type, tag string) Type {
	return filterUnion(t, func(m Type) bool { return typeofTag(m) == tag })
}

// NarrowTypeofNotEquals narrows t to the members not matching
// `typeof x !== tag`.
func NarrowTypeofNotEquals(t Type, tag string) Type {
	return filterUnion(t, func(m Type) bool {
		tm := typeofTag(m)
		return tm == "" || tm != tag
	})
}

// NarrowInstanceof narrows t to the members nominally assignable to a
// reference named className (an `x instanceof C` guard).
func (a *Assigner) NarrowInstanceof(t Type, className string) Type {
	return filterUnion(t, func(m Type) bool {
		ref, ok := m.(*Reference)
		if !ok {
			return false
		}

		if ref.Name == className {
			return true
		}

		if a.Reg == nil || ref.Decl == 0 {
			return false
		}

		for _, ancestor := range a.ancestorNames(ref.Decl) {
			if ancestor == className {
				return true
			}
		}

		return false
	})
}

// NarrowPropertyIn narrows t to the members whose structural view has a
// field named prop (a `"prop" in x` guard).
func (a *Assigner) NarrowPropertyIn(t Type, prop string) Type {
	return filterUnion(t, func(m Type) bool {
		obj := a.structuralView(m)
		if obj == nil {
			return false
		}

		_, found := fieldByName(obj, prop)
		return found
	})
}

// NarrowNullGuard narrows t by removing (positive=false) or keeping
// (positive=true) the null/undefined members, for `x != null` / `x == null`
// guards.
func NarrowNullGuard(t Type, positive bool) Type {
	return filterUnion(t, func(m Type) bool { return isNullish(m) == positive })
}
