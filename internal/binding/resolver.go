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
package binding

import (
	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/catalog"
)

// ResolveIdentifier looks up name as seen from within module: first among
// module's own top-level declarations, then among its import bindings. This
// is the single namespace values and types share in this language subset.
func (r *Registry) ResolveIdentifier(module, name string) (DeclId, bool) {
	if ids, ok := r.byModule[module]; ok {
		if id, ok := ids[name]; ok {
			return id, true
		}
	}

	if ids, ok := r.importBindings[module]; ok {
		if id, ok := ids[name]; ok {
			return id, true
		}
	}

	return invalidID, false
}

// ResolveTypeReference looks up a TypeRefExpr's leading name the same way
// ResolveIdentifier does; internal/types calls this once per reference so it
// never needs to walk import bindings itself.
func (r *Registry) ResolveTypeReference(module, name string) (DeclId, bool) {
	return r.ResolveIdentifier(module, name)
}

// Kind reports what id points at; invalidID (the zero value) reports
// DeclUnknown.
func (r *Registry) Kind(id DeclId) DeclKind {
	if int(id) <= 0 || int(id) >= len(r.decls) {
		return DeclUnknown
	}

	return r.decls[id].Kind
}

// Name reports the declared name id was registered under; for a DeclExternal
// handle this is the fully-qualified CLR name.
func (r *Registry) Name(id DeclId) string {
	if int(id) <= 0 || int(id) >= len(r.decls) {
		return ""
	}

	return r.decls[id].Name
}

// Module reports the canonical path of the module id was declared in; empty
// for a DeclExternal handle.
func (r *Registry) Module(id DeclId) string {
	if int(id) <= 0 || int(id) >= len(r.decls) {
		return ""
	}

	return r.decls[id].Module
}

// FunctionDecl returns the underlying function declaration, if id is a
// DeclFunction handle.
func (r *Registry) FunctionDecl(id DeclId) (*ast.FunctionDecl, bool) {
	if int(id) <= 0 || int(id) >= len(r.decls) || r.decls[id].Func == nil {
		return nil, false
	}

	return r.decls[id].Func, true
}

// ClassDecl returns the underlying class declaration, if id is a DeclClass
// handle.
func (r *Registry) ClassDecl(id DeclId) (*ast.ClassDecl, bool) {
	if int(id) <= 0 || int(id) >= len(r.decls) || r.decls[id].Class == nil {
		return nil, false
	}

	return r.decls[id].Class, true
}

// InterfaceDecl returns the underlying interface declaration, if id is a
// DeclInterface handle.
func (r *Registry) InterfaceDecl(id DeclId) (*ast.InterfaceDecl, bool) {
	if int(id) <= 0 || int(id) >= len(r.decls) || r.decls[id].Iface == nil {
		return nil, false
	}

	return r.decls[id].Iface, true
}

// EnumDecl returns the underlying enum declaration, if id is a DeclEnum
// handle.
func (r *Registry) EnumDecl(id DeclId) (*ast.EnumDecl, bool) {
	if int(id) <= 0 || int(id) >= len(r.decls) || r.decls[id].Enum == nil {
		return nil, false
	}

	return r.decls[id].Enum, true
}

// TypeAliasDecl returns the underlying type-alias declaration, if id is a
// DeclTypeAlias handle.
func (r *Registry) TypeAliasDecl(id DeclId) (*ast.TypeAliasDecl, bool) {
	if int(id) <= 0 || int(id) >= len(r.decls) || r.decls[id].Alias == nil {
		return nil, false
	}

	return r.decls[id].Alias, true
}

// VarDecl returns the underlying variable declaration, if id is a DeclVar
// handle.
func (r *Registry) VarDecl(id DeclId) (*ast.VarDecl, bool) {
	if int(id) <= 0 || int(id) >= len(r.decls) || r.decls[id].Var == nil {
		return nil, false
	}

	return r.decls[id].Var, true
}

// External returns the resolved Binding Catalog entry, if id is a
// DeclExternal handle. ok is false if the import named a type the catalog
// never loaded (resolution then falls through to the emitter treating the
// name as an opaque external reference).
func (r *Registry) External(id DeclId) (*catalog.TypeEntry, bool) {
	if int(id) <= 0 || int(id) >= len(r.decls) || r.decls[id].Kind != DeclExternal {
		return nil, false
	}

	return r.decls[id].External, r.decls[id].External != nil
}

// CaptureTypeSyntax records a type-annotation syntax node so a later phase
// can ask internal/types to expand it by TypeSyntaxId alone.
func (r *Registry) CaptureTypeSyntax(te ast.TypeExpr) TypeSyntaxId {
	r.typeSyntaxes = append(r.typeSyntaxes, te)
	return TypeSyntaxId(len(r.typeSyntaxes))
}

// TypeSyntax returns the syntax node captured under id.
func (r *Registry) TypeSyntax(id TypeSyntaxId) (ast.TypeExpr, bool) {
	if int(id) <= 0 || int(id) > len(r.typeSyntaxes) {
		return nil, false
	}

	return r.typeSyntaxes[id-1], true
}

// CaptureSignature records a callable's parameter list and return-type
// syntax under a fresh SignatureId.
func (r *Registry) CaptureSignature(params []ast.Param, returnType ast.TypeExpr) SignatureId {
	r.signatures = append(r.signatures, signatureInfo{Params: params, ReturnType: returnType})
	return SignatureId(len(r.signatures))
}

// Signature returns the parameter list and return-type syntax captured
// under id.
func (r *Registry) Signature(id SignatureId) ([]ast.Param, ast.TypeExpr, bool) {
	if int(id) <= 0 || int(id) > len(r.signatures) {
		return nil, nil, false
	}

	s := r.signatures[id-1]

	return s.Params, s.ReturnType, true
}
