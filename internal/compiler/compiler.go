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
package compiler

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/tsoniclang/tsonic/internal/binding"
	"github.com/tsoniclang/tsonic/internal/catalog"
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/graph"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/semantic"
	"github.com/tsoniclang/tsonic/internal/source"
)

// Result is returned by Compile. Diagnostics accumulates every error and
// warning raised across every phase that ran before either a phase boundary
// failure or a clean finish.
type Result struct {
	Diagnostics *diagnostics.Bag
	Catalog     *catalog.Catalog
	Graph       *graph.Graph
	Binding     *binding.Registry
	IR          map[string]*ir.Module
	Semantic    *semantic.Result
}

// Compile runs the pipeline: load the binding catalog, build the module
// graph, resolve bindings, lower to IR, run the semantic passes, emit TL
// source, and render the project manifest.
//
// The emitter and manifest stages are wired in as their packages land;
// today this assembles the catalog load, module graph, Binding Layer, IR
// Builder, and semantic-pass phases.
func Compile(opts Options) (*Result, error) {
	opts = opts.WithDefaults()

	if opts.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	bag := diagnostics.NewBag()
	cat := catalog.New()

	for _, root := range opts.TypeRoots {
		errs := cat.Load(root)
		for _, err := range errs {
			log.Debugf("catalog: %v", err)
		}
	}

	log.Debugf("catalog: loaded %d types, skipped %d descriptors, %d collisions",
		cat.Stats.TypesLoaded, cat.Stats.DescriptorsSkipped, cat.Stats.Collisions)

	if len(opts.EntryPoints) == 0 {
		return nil, fmt.Errorf("no entry points given")
	}

	cache := newProgramCache(opts.SourceRoot)

	g, graphDiags := graph.Build(opts.EntryPoints, graph.Options{
		SourceRoot:    opts.SourceRoot,
		RootNamespace: opts.RootNamespace,
		MaxExportHops: opts.MaxExportHops,
	}, cache.Parser)
	bag.AddAll(graphDiags.Entries())

	result := &Result{Diagnostics: bag, Catalog: cat, Graph: g}

	if bag.HasErrors() {
		return result, nil
	}

	result.Binding = binding.Build(g, cache.Program, opts.SourceRoot, cat)
	result.IR = make(map[string]*ir.Module, len(g.Modules))

	for _, m := range g.Modules {
		prog, ok := cache.Program(m.CanonicalPath)
		if !ok {
			continue
		}

		builder := ir.NewBuilder(result.Binding, m.CanonicalPath, prog.File, bag)
		result.IR[m.CanonicalPath] = builder.Build(prog)
	}

	fileOf := func(canonicalPath string) (*source.File, bool) {
		prog, ok := cache.Program(canonicalPath)
		if !ok {
			return nil, false
		}

		return prog.File, true
	}

	result.Semantic = semantic.Run(result.Binding, g, result.IR, fileOf, bag)

	// TODO(emit): once internal/emit lands, run it over result.IR guided by
	// result.Semantic, then render internal/manifest's project file.

	return result, nil
}
