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
	"github.com/tsoniclang/tsonic/internal/binding"
	"github.com/tsoniclang/tsonic/internal/graph"
)

// LocalTypeEntry is one module-local declaration's name, kind, and type
// parameters, the shape import resolution and type-alias erasure consult
// (spec §4.6 step 1).
type LocalTypeEntry struct {
	Name       string
	Kind       binding.DeclKind
	TypeParams []string
}

// BuildLocalTypesIndex builds the Local Types Index for every module in g:
// name -> declaration kind + type parameters.
func BuildLocalTypesIndex(reg *binding.Registry, g *graph.Graph) map[string][]LocalTypeEntry {
	out := make(map[string][]LocalTypeEntry, len(g.Modules))

	for _, m := range g.Modules {
		names := reg.LocalNames(m.CanonicalPath)
		entries := make([]LocalTypeEntry, 0, len(names))

		for _, name := range names {
			id, ok := reg.ResolveIdentifier(m.CanonicalPath, name)
			if !ok {
				continue
			}

			entries = append(entries, LocalTypeEntry{
				Name:       name,
				Kind:       reg.Kind(id),
				TypeParams: typeParamsOf(reg, id),
			})
		}

		out[m.CanonicalPath] = entries
	}

	return out
}

// typeParamsOf looks up id's declared generic type-parameter names, if its
// kind carries any; only functions and classes do in this language subset.
func typeParamsOf(reg *binding.Registry, id binding.DeclId) []string {
	if fn, ok := reg.FunctionDecl(id); ok {
		return fn.TypeParams
	}

	if cd, ok := reg.ClassDecl(id); ok {
		return cd.TypeParams
	}

	return nil
}
