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

// liftStructuralView returns t's member list for a structural check:
// directly for an Object, or lazily computed and cached on a Reference
// pointing at a local class or interface (spec §4.4's "nominal-to-structural
// lift"). External (catalog-resolved) references return nil: the Binding
// Catalog only exposes point property lookups, not full enumeration, so
// they participate in nominal assignability but not structural checks.
func liftStructuralView(reg *binding.Registry, t Type) *Object {
	switch v := t.(type) {
	case *Object:
		return v
	case *Reference:
		return liftReference(reg, v)
	default:
		return nil
	}
}

func liftReference(reg *binding.Registry, ref *Reference) *Object {
	if ref.Structural != nil {
		return ref.Structural
	}

	if reg == nil || ref.Decl == 0 {
		return nil
	}

	var members []Field

	switch reg.Kind(ref.Decl) {
	case binding.DeclClass:
		cd, ok := reg.ClassDecl(ref.Decl)
		if !ok {
			return nil
		}

		ctx := &Context{Reg: reg, Module: reg.Module(ref.Decl)}
		for _, f := range cd.Fields {
			members = append(members, Field{Name: f.Name, Type: FromSyntax(f.Type, ctx), Readonly: f.Readonly})
		}
	case binding.DeclInterface:
		ifd, ok := reg.InterfaceDecl(ref.Decl)
		if !ok {
			return nil
		}

		ctx := &Context{Reg: reg, Module: reg.Module(ref.Decl)}
		for _, f := range ifd.Members {
			members = append(members, Field{Name: f.Name, Type: FromSyntax(f.Type, ctx), Readonly: f.Readonly})
		}
	default:
		return nil
	}

	ref.Structural = &Object{Members: members}

	return ref.Structural
}
