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
package semantic

import (
	"fmt"

	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/graph"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/source"
)

// namespaceDecl is one of a module's namespace-level type declarations: a
// class, interface, enum, or type alias, each of which the emitter places
// directly in the namespace rather than inside the module's static
// container class (spec §4.8).
type namespaceDecl struct {
	Name string
	Span source.Span
}

func namespaceLevelDecls(m *ir.Module) []namespaceDecl {
	var out []namespaceDecl

	for _, d := range m.Decls {
		switch v := d.(type) {
		case *ir.ClassDecl:
			out = append(out, namespaceDecl{Name: v.Name, Span: v.Span})
		case *ir.InterfaceDecl:
			out = append(out, namespaceDecl{Name: v.Name, Span: v.Span})
		case *ir.EnumDecl:
			out = append(out, namespaceDecl{Name: v.Name, Span: v.Span})
		case *ir.TypeAliasDecl:
			out = append(out, namespaceDecl{Name: v.Name, Span: v.Span})
		}
	}

	return out
}

// ValidateNaming checks, per module, that namespace-level declarations and
// the module's container-class name do not collide after keyword escaping
// (spec §4.6 step 4). Two sibling declarations colliding is an unrecoverable
// TSN9001 error; a declaration colliding only with the container class name
// is resolved by renaming the container to `Name__Module` (spec §4.8), and
// the chosen name is returned so the emitter can use it without redoing this
// check.
func ValidateNaming(g *graph.Graph, modules map[string]*ir.Module, bag *diagnostics.Bag, files FileLookup) map[string]string {
	renames := make(map[string]string)

	for _, m := range g.Modules {
		irMod, ok := modules[m.CanonicalPath]
		if !ok {
			continue
		}

		seen := make(map[string]string)
		containerEscaped := EscapeKeyword(m.ClassName)
		collidesWithContainer := false

		for _, d := range namespaceLevelDecls(irMod) {
			esc := EscapeKeyword(d.Name)

			if other, dup := seen[esc]; dup {
				reportCollision(bag, files, m.CanonicalPath, d, other)
				continue
			}

			seen[esc] = d.Name

			if esc == containerEscaped {
				collidesWithContainer = true
			}
		}

		if collidesWithContainer {
			renames[m.CanonicalPath] = m.ClassName + "__Module"
		}
	}

	return renames
}

func reportCollision(bag *diagnostics.Bag, files FileLookup, module string, d namespaceDecl, against string) {
	if bag == nil || files == nil {
		return
	}

	file, ok := files(module)
	if !ok {
		return
	}

	msg := fmt.Sprintf("declaration %q collides with %q after keyword escaping in module %q", d.Name, against, module)
	bag.Add(file.Error(diagnostics.TSN9001, d.Span, msg))
}
