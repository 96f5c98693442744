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
package graph

import (
	"fmt"

	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/source"
)

// Graph is the built Module Graph: every reachable module, keyed by
// canonical path, plus the compacted Export Map.
type Graph struct {
	// Modules in enqueue order (spec §4.2's determinism requirement: "order
	// imports appear in source files").
	Modules []*Module
	byPath  map[string]*Module
	Exports *ExportMap
}

// ByPath looks up a module by its canonical path.
func (g *Graph) ByPath(canonicalPath string) (*Module, bool) {
	m, ok := g.byPath[canonicalPath]
	return m, ok
}

// Options configures a Build call (spec §4.2: "entry file and compiler
// options: project root, source root, root namespace, type roots"). Type
// roots are consulted by the caller's Parser/Binding Catalog, not by the
// graph builder itself, so they are not threaded through here.
type Options struct {
	SourceRoot    string
	RootNamespace string
	MaxExportHops int
}

// Build runs the Module Graph Builder algorithm (spec §4.2): parse-and-enqueue
// reachable modules breadth-first in import order, assign namespace/class
// identities, detect (namespace, class-name) collisions (TSN9001), and
// compact the Export Map.
func Build(entryPoints []string, opts Options, parse Parser) (*Graph, *diagnostics.Bag) {
	bag := diagnostics.NewBag()

	g := &Graph{byPath: make(map[string]*Module)}

	queue := make([]string, 0, len(entryPoints))
	queued := make(map[string]bool)

	for _, e := range entryPoints {
		cp := Canonicalize(e)
		if !queued[cp] {
			queued[cp] = true
			queue = append(queue, e)
		}
	}

	for len(queue) > 0 {
		literal := queue[0]
		queue = queue[1:]

		cp := Canonicalize(literal)
		if _, seen := g.byPath[cp]; seen {
			continue
		}

		result := parse(literal)
		if result.Err != nil {
			bag.Add(result.Err)
			continue
		}

		mod := &Module{
			CanonicalPath: cp,
			Namespace:     Namespace(opts.RootNamespace, cp),
			ClassName:     ClassName(cp),
			Imports:       result.Imports,
			ReExports:     result.ReExports,
			Exports:       result.Exports,
		}

		for i := range mod.Imports {
			imp := &mod.Imports[i]
			imp.Kind = ClassifyImport(imp.Source)

			if imp.Kind == ImportExternal {
				continue
			}

			imp.ResolvedPath = ResolveImportPath(imp.Kind, imp.Source, cp, opts.SourceRoot)

			if !queued[imp.ResolvedPath] {
				queued[imp.ResolvedPath] = true
				queue = append(queue, imp.ResolvedPath)
			}
		}

		g.byPath[cp] = mod
		g.Modules = append(g.Modules, mod)
	}

	detectCollisions(g, bag)

	maxHops := opts.MaxExportHops
	if maxHops == 0 {
		maxHops = 10
	}

	g.Exports = BuildExportMap(g, maxHops)

	return g, bag
}

// detectCollisions emits TSN9001 for any two modules sharing a
// (namespace, class-name) pair (spec §4.2 step 5).
func detectCollisions(g *Graph, bag *diagnostics.Bag) {
	seen := make(map[string]*Module)

	for _, m := range g.Modules {
		key := m.Namespace + "." + m.ClassName

		if other, ok := seen[key]; ok {
			msg := fmt.Sprintf(
				"module %q and %q both resolve to namespace %q class %q",
				other.CanonicalPath, m.CanonicalPath, m.Namespace, m.ClassName,
			)
			bag.Add(source.NewFile(m.CanonicalPath, nil).Error(diagnostics.TSN9001, source.NewSpan(0, 0), msg))

			continue
		}

		seen[key] = m
	}
}
