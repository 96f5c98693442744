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
	"sort"

	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/catalog"
	"github.com/tsoniclang/tsonic/internal/graph"
)

// declInfo is the firewall's private record of one declaration; nothing
// outside this package ever sees the raw ast pointers held here.
type declInfo struct {
	Module string
	Name   string
	Kind   DeclKind

	Func     *ast.FunctionDecl
	Class    *ast.ClassDecl
	Iface    *ast.InterfaceDecl
	Enum     *ast.EnumDecl
	Alias    *ast.TypeAliasDecl
	Var      *ast.VarDecl
	External *catalog.TypeEntry
}

type signatureInfo struct {
	Params     []ast.Param
	ReturnType ast.TypeExpr
}

// Registry is the built Binding Layer: every module's local declarations,
// every import specifier resolved to the DeclId it names, and the captured
// type-syntax/signature tables that let later phases ask for expansion
// without holding an ast node of their own.
type Registry struct {
	cat *catalog.Catalog
	g   *graph.Graph

	// decls is 1-indexed; decls[0] is the unused zero value so DeclId(0)
	// reliably means "no such declaration".
	decls []declInfo

	byModule       map[string]map[string]DeclId
	importBindings map[string]map[string]DeclId
	externalByFQ   map[string]DeclId

	typeSyntaxes []ast.TypeExpr
	signatures   []signatureInfo
}

// Build runs both passes of the Binding Layer (spec §4.3): first it collects
// every module's own top-level declarations, then it resolves every module's
// import specifiers, either against another module's declarations (through
// g.Exports, the already-compacted Module Graph Export Map) or against cat,
// the Binding Catalog, for external imports.
func Build(g *graph.Graph, programOf func(canonicalPath string) (*ast.Program, bool), sourceRoot string, cat *catalog.Catalog) *Registry {
	r := &Registry{
		cat:            cat,
		g:              g,
		decls:          make([]declInfo, 1),
		byModule:       make(map[string]map[string]DeclId),
		importBindings: make(map[string]map[string]DeclId),
		externalByFQ:   make(map[string]DeclId),
	}

	for _, m := range g.Modules {
		r.byModule[m.CanonicalPath] = make(map[string]DeclId)

		prog, ok := programOf(m.CanonicalPath)
		if !ok {
			continue
		}

		for _, stmt := range prog.Stmts {
			r.registerTopLevel(m.CanonicalPath, stmt)
		}
	}

	for _, m := range g.Modules {
		r.importBindings[m.CanonicalPath] = make(map[string]DeclId)

		prog, ok := programOf(m.CanonicalPath)
		if !ok {
			continue
		}

		for _, imp := range prog.Imports {
			r.bindImport(m.CanonicalPath, imp, sourceRoot)
		}
	}

	return r
}

// registerTopLevel records the DeclId for one of a module's own top-level
// statements, unwrapping a leading-`export` wrapper first.
func (r *Registry) registerTopLevel(module string, stmt ast.Stmt) {
	if ed, ok := stmt.(*ast.ExportedDecl); ok {
		stmt = ed.Decl
	}

	switch d := stmt.(type) {
	case *ast.FunctionDecl:
		r.add(module, d.Name, DeclFunction, declInfo{Func: d})
	case *ast.ClassDecl:
		r.add(module, d.Name, DeclClass, declInfo{Class: d})
	case *ast.InterfaceDecl:
		r.add(module, d.Name, DeclInterface, declInfo{Iface: d})
	case *ast.EnumDecl:
		r.add(module, d.Name, DeclEnum, declInfo{Enum: d})
	case *ast.TypeAliasDecl:
		r.add(module, d.Name, DeclTypeAlias, declInfo{Alias: d})
	case *ast.VarDecl:
		r.add(module, d.Name, DeclVar, declInfo{Var: d})
	}
}

func (r *Registry) add(module, name string, kind DeclKind, info declInfo) DeclId {
	info.Module = module
	info.Name = name
	info.Kind = kind

	id := DeclId(len(r.decls))
	r.decls = append(r.decls, info)
	r.byModule[module][name] = id

	return id
}

// bindImport resolves one import statement's specifiers into
// r.importBindings[module].
func (r *Registry) bindImport(module string, imp *ast.ImportDecl, sourceRoot string) {
	kind := graph.ClassifyImport(imp.Source)

	if kind == graph.ImportExternal {
		r.bindExternalImport(module, imp)
		return
	}

	resolvedPath := graph.ResolveImportPath(kind, imp.Source, module, sourceRoot)
	r.bindLocalImport(module, imp, resolvedPath)
}

func (r *Registry) bindLocalImport(module string, imp *ast.ImportDecl, resolvedPath string) {
	if imp.Default != "" {
		if id, ok := r.resolveExport(resolvedPath, "default"); ok {
			r.importBindings[module][imp.Default] = id
		}
	}

	if imp.Namespace != "" {
		id := DeclId(len(r.decls))
		r.decls = append(r.decls, declInfo{Module: resolvedPath, Name: imp.Namespace, Kind: DeclModuleNamespace})
		r.importBindings[module][imp.Namespace] = id
	}

	for _, spec := range imp.Specifiers {
		if id, ok := r.resolveExport(resolvedPath, spec.Imported); ok {
			r.importBindings[module][spec.Local] = id
		}
	}
}

// resolveExport follows the Export Map for modulePath to the DeclId that
// actually declares exportedName, if any module on the chain does.
func (r *Registry) resolveExport(modulePath, exportedName string) (DeclId, bool) {
	for _, b := range r.g.Exports.For(modulePath) {
		if b.ExportedName != exportedName {
			continue
		}

		if names, ok := r.byModule[b.OriginModule]; ok {
			if id, ok := names[b.OriginName]; ok {
				return id, true
			}
		}

		return invalidID, false
	}

	return invalidID, false
}

// bindExternalImport resolves an import whose source classifies as
// ImportExternal against the Binding Catalog: imp.Source is the CLR
// namespace, and each specifier's imported name is a type within it.
func (r *Registry) bindExternalImport(module string, imp *ast.ImportDecl) {
	ns := imp.Source

	if imp.Default != "" {
		r.importBindings[module][imp.Default] = r.externalDecl(ns, ns)
	}

	if imp.Namespace != "" {
		r.importBindings[module][imp.Namespace] = r.externalDecl(ns, ns)
	}

	for _, spec := range imp.Specifiers {
		fq := ns + "." + spec.Imported
		r.importBindings[module][spec.Local] = r.externalDecl(fq, spec.Imported)
	}
}

func (r *Registry) externalDecl(fq, shortName string) DeclId {
	if id, ok := r.externalByFQ[fq]; ok {
		return id
	}

	entry, ok := r.cat.ResolveType(fq)
	if !ok {
		entry, _ = r.cat.ResolveType(shortName)
	}

	id := DeclId(len(r.decls))
	r.decls = append(r.decls, declInfo{Module: "", Name: fq, Kind: DeclExternal, External: entry})
	r.externalByFQ[fq] = id

	return id
}

// LocalNames lists every name module declares itself, sorted, for the
// Local Types Index semantic pass.
func (r *Registry) LocalNames(module string) []string {
	names := make([]string, 0, len(r.byModule[module]))
	for n := range r.byModule[module] {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

// Catalog exposes the underlying Binding Catalog, for phases that need to
// resolve a CLR member directly (e.g. the emitter resolving an overload).
func (r *Registry) Catalog() *catalog.Catalog {
	return r.cat
}
