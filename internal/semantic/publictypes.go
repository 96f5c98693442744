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
	"github.com/bits-and-blooms/bitset"

	"github.com/tsoniclang/tsonic/internal/binding"
	"github.com/tsoniclang/tsonic/internal/graph"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/types"
)

// declTypes indexes every function/class/interface/type-alias declaration's
// own member or signature types by binding.DeclId, gathered once across
// every module so reachability can walk across module boundaries without
// re-deriving a type from internal/ast.
type declTypes map[binding.DeclId][]types.Type

func buildDeclTypes(modules map[string]*ir.Module) declTypes {
	idx := make(declTypes)

	for _, m := range modules {
		for _, d := range m.Decls {
			switch v := d.(type) {
			case *ir.FuncDecl:
				idx[v.Decl] = signatureTypes(v.Params, v.ReturnType)
			case *ir.ClassDecl:
				var ts []types.Type
				for _, f := range v.Fields {
					ts = append(ts, f.Type)
				}

				for _, meth := range v.Methods {
					ts = append(ts, signatureTypes(meth.Params, meth.ReturnType)...)
				}

				idx[v.Decl] = ts
			case *ir.InterfaceDecl:
				var ts []types.Type
				for _, f := range v.Members {
					ts = append(ts, f.Type)
				}

				idx[v.Decl] = ts
			case *ir.TypeAliasDecl:
				idx[v.Decl] = []types.Type{v.Target}
			case *ir.VarDecl:
				idx[v.Decl] = []types.Type{v.Type}
			}
		}
	}

	return idx
}

func signatureTypes(params []ir.Param, ret types.Type) []types.Type {
	ts := make([]types.Type, 0, len(params)+1)
	for _, p := range params {
		ts = append(ts, p.Type)
	}

	return append(ts, ret)
}

// ComputePublicTypes computes the Public Local Types set (spec §4.6 step 2):
// for every module's exported declarations, the transitive closure of
// locally-declared types (in whichever module actually declares them)
// reachable from those signatures. The result is keyed by the owning
// module, not the module doing the exporting, since that is the module
// whose emitted type must carry public accessibility.
func ComputePublicTypes(reg *binding.Registry, g *graph.Graph, modules map[string]*ir.Module) map[string]map[string]bool {
	idx := buildDeclTypes(modules)
	public := make(map[string]map[string]bool)
	visited := bitset.New(0)

	for _, m := range g.Modules {
		for _, localName := range m.Exports {
			id, ok := reg.ResolveIdentifier(m.CanonicalPath, localName)
			if !ok {
				continue
			}

			markReachable(id, reg, idx, public, visited)
		}
	}

	return public
}

// markReachable marks id's own type (if it is a class/interface/enum/alias)
// public in its owning module, then recurses into whatever member or
// signature types idx has on file for it. visited is a bitset over DeclId,
// which the Binding Layer assigns as a single monotonically increasing
// counter across every module, so a declaration's id doubles as its bit
// index without any extra translation table.
func markReachable(id binding.DeclId, reg *binding.Registry, idx declTypes, public map[string]map[string]bool, visited *bitset.BitSet) {
	if id == 0 || visited.Test(uint(id)) {
		return
	}

	visited.Set(uint(id))

	switch reg.Kind(id) {
	case binding.DeclClass, binding.DeclInterface, binding.DeclEnum, binding.DeclTypeAlias:
		mod := reg.Module(id)
		if mod != "" {
			if public[mod] == nil {
				public[mod] = make(map[string]bool)
			}

			public[mod][reg.Name(id)] = true
		}
	}

	for _, t := range idx[id] {
		walkTypeForDecls(t, reg, idx, public, visited)
	}
}

// walkTypeForDecls recurses through t's structure looking for Reference
// nodes that name a local declaration, continuing the reachability walk
// through each one it finds.
func walkTypeForDecls(t types.Type, reg *binding.Registry, idx declTypes, public map[string]map[string]bool, visited *bitset.BitSet) {
	if t == nil {
		return
	}

	switch v := t.(type) {
	case *types.Reference:
		markReachable(v.Decl, reg, idx, public, visited)

		for _, a := range v.Args {
			walkTypeForDecls(a, reg, idx, public, visited)
		}
	case *types.Array:
		walkTypeForDecls(v.Elem, reg, idx, public, visited)
	case *types.Tuple:
		for _, e := range v.Elems {
			walkTypeForDecls(e, reg, idx, public, visited)
		}
	case *types.Function:
		for _, p := range v.Params {
			walkTypeForDecls(p.Type, reg, idx, public, visited)
		}

		walkTypeForDecls(v.Return, reg, idx, public, visited)
	case *types.Object:
		for _, f := range v.Members {
			walkTypeForDecls(f.Type, reg, idx, public, visited)
		}
	case *types.Dictionary:
		walkTypeForDecls(v.Key, reg, idx, public, visited)
		walkTypeForDecls(v.Value, reg, idx, public, visited)
	case *types.Union:
		for _, m := range v.Members {
			walkTypeForDecls(m, reg, idx, public, visited)
		}
	case *types.Intersection:
		for _, m := range v.Members {
			walkTypeForDecls(m, reg, idx, public, visited)
		}
	}
}
