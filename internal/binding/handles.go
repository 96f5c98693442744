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

// Package binding is the firewall between internal/ast and the rest of the
// pipeline (spec §4.3). It is the only package, besides internal/ast and
// internal/types, allowed to inspect a parsed source file's declaration
// nodes directly; internal/ir, internal/semantic and internal/emit resolve
// identifiers and type references to opaque handles (DeclId, SignatureId,
// TypeSyntaxId) here and never hold an *ast.FunctionDecl or *ast.TypeExpr of
// their own.
package binding

// DeclId identifies a single top-level declaration, local to a module or
// resolved against the Binding Catalog.
type DeclId uint32

// TypeSyntaxId identifies a captured type-annotation syntax node, so a later
// phase can ask internal/types to expand it without holding an ast.TypeExpr.
type TypeSyntaxId uint32

// SignatureId identifies a captured callable signature (a function, method,
// or arrow function's parameter list and return type).
type SignatureId uint32

// invalidID marks a zero-value handle as not-yet-assigned; real ids start at 1
// so the zero value of each id type is reliably "no such handle".
const invalidID = 0

// DeclKind classifies what a DeclId points at.
type DeclKind uint8

const (
	// DeclUnknown is the zero value; never assigned to a real declaration.
	DeclUnknown DeclKind = iota
	DeclFunction
	DeclClass
	DeclInterface
	DeclEnum
	DeclTypeAlias
	DeclVar
	// DeclExternal is resolved against the Binding Catalog rather than a
	// parsed module: a CLR type reached through an external import.
	DeclExternal
	// DeclModuleNamespace is bound by `import * as NS from "..."`: a handle
	// onto an entire module's export surface rather than a single name.
	DeclModuleNamespace
)

// String renders the kind for diagnostics and debugging.
func (k DeclKind) String() string {
	switch k {
	case DeclFunction:
		return "function"
	case DeclClass:
		return "class"
	case DeclInterface:
		return "interface"
	case DeclEnum:
		return "enum"
	case DeclTypeAlias:
		return "type alias"
	case DeclVar:
		return "variable"
	case DeclExternal:
		return "external type"
	default:
		return "unknown"
	}
}
