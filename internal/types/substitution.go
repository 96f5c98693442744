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

// Substitute replaces every TypeParam named in subst with its mapped Type,
// recursively, preserving a Reference's Decl (and dropping its cached
// Structural lift, which was computed against the unsubstituted Args) so the
// CLR binding survives monomorphization (spec §4.4, §4.7's name-mangling).
func Substitute(t Type, subst map[string]Type) Type {
	if len(subst) == 0 || t == nil {
		return t
	}

	switch v := t.(type) {
	case TypeParam:
		if repl, ok := subst[v.Name]; ok {
			return repl
		}

		return v
	case *Reference:
		return &Reference{Name: v.Name, Args: substituteAll(v.Args, subst), Decl: v.Decl}
	case *Array:
		return &Array{Elem: Substitute(v.Elem, subst), Origin: v.Origin}
	case *Tuple:
		return &Tuple{Elems: substituteAll(v.Elems, subst)}
	case *Dictionary:
		return &Dictionary{Key: Substitute(v.Key, subst), Value: Substitute(v.Value, subst)}
	case *Function:
		return &Function{
			TypeParams: v.TypeParams,
			Params:     substituteParams(v.Params, shadow(subst, v.TypeParams)),
			Return:     Substitute(v.Return, shadow(subst, v.TypeParams)),
		}
	case *Object:
		members := make([]Field, len(v.Members))
		for i, f := range v.Members {
			members[i] = Field{Name: f.Name, Type: Substitute(f.Type, subst), Optional: f.Optional, Readonly: f.Readonly}
		}

		return &Object{Members: members}
	case *Union:
		return &Union{Members: substituteAll(v.Members, subst)}
	case *Intersection:
		return &Intersection{Members: substituteAll(v.Members, subst)}
	default:
		// Any, Unknown, Void, Never, Primitive, Literal carry no type
		// parameters of their own.
		return t
	}
}

func substituteAll(ts []Type, subst map[string]Type) []Type {
	if ts == nil {
		return nil
	}

	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = Substitute(t, subst)
	}

	return out
}

func substituteParams(params []Param, subst map[string]Type) []Param {
	if params == nil {
		return nil
	}

	out := make([]Param, len(params))
	for i, p := range params {
		out[i] = Param{Name: p.Name, Type: Substitute(p.Type, subst), Passing: p.Passing, Optional: p.Optional}
	}

	return out
}

// shadow returns subst with ownParams removed, so a generic function's own
// bound type parameters are never replaced by an outer substitution of the
// same name.
func shadow(subst map[string]Type, ownParams []string) map[string]Type {
	if len(ownParams) == 0 {
		return subst
	}

	shadowed := false

	for _, p := range ownParams {
		if _, ok := subst[p]; ok {
			shadowed = true
			break
		}
	}

	if !shadowed {
		return subst
	}

	cp := make(map[string]Type, len(subst))
	for k, v := range subst {
		cp[k] = v
	}

	for _, p := range ownParams {
		delete(cp, p)
	}

	return cp
}
