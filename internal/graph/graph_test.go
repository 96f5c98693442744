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
	"testing"

	"github.com/tsoniclang/tsonic/internal/testutil/assert"
)

func TestCanonicalize(t *testing.T) {
	assert.Equal(t, "a/b", Canonicalize("./a/b.ts"))
	assert.Equal(t, "a/c", Canonicalize("a/b/../c.ts"))
	assert.Equal(t, "a/b", Canonicalize("a\\b.ts"))
}

func TestNamespaceAndClassName(t *testing.T) {
	assert.Equal(t, "App.services", Namespace("App", "services/user-repo.ts"))
	assert.Equal(t, "App", Namespace("App", "index.ts"))
	assert.Equal(t, "userrepo", ClassName("services/user-repo.ts"))
}

func TestClassifyImport(t *testing.T) {
	assert.Equal(t, int(ImportRelative), int(ClassifyImport("./foo")))
	assert.Equal(t, int(ImportRelative), int(ClassifyImport("../foo")))
	assert.Equal(t, int(ImportAbsolute), int(ClassifyImport("/foo")))
	assert.Equal(t, int(ImportExternal), int(ClassifyImport("System.Collections")))
}

func fakeParser(files map[string][]string) Parser {
	return func(literal string) ParseResult {
		cp := Canonicalize(literal)

		imports, ok := files[cp]
		if !ok {
			return ParseResult{}
		}

		var out []Import
		for _, imp := range imports {
			out = append(out, Import{Source: imp})
		}

		return ParseResult{Imports: out}
	}
}

func TestBuild_EnqueuesTransitiveImports(t *testing.T) {
	files := map[string][]string{
		"index": {"./a", "./b"},
		"a":     {"./c"},
		"b":     nil,
		"c":     nil,
	}

	g, bag := Build([]string{"index.ts"}, Options{RootNamespace: "App", SourceRoot: "."}, fakeParser(files))

	assert.False(t, bag.HasErrors())
	assert.Equal(t, 4, len(g.Modules))

	_, ok := g.ByPath("c")
	assert.True(t, ok)
}

func TestBuild_CollisionDetected(t *testing.T) {
	files := map[string][]string{
		"index":      {"./api-client", "./apiclient"},
		"api-client": nil,
		"apiclient":  nil,
	}

	g, bag := Build([]string{"index.ts"}, Options{RootNamespace: "App", SourceRoot: "."}, fakeParser(files))

	assert.Equal(t, 3, len(g.Modules))
	assert.True(t, bag.HasErrors())
}

func TestBuildExportMap_ResolvesStarReExport(t *testing.T) {
	// a exports "Widget" directly (no re-exports of its own).
	a := &Module{CanonicalPath: "a", Exports: map[string]string{"Widget": "Widget"}}
	b := &Module{
		CanonicalPath: "b",
		ReExports:     []ReExport{{From: "a", Star: true}},
	}

	g := &Graph{
		Modules: []*Module{a, b},
		byPath:  map[string]*Module{"a": a, "b": b},
	}

	em := BuildExportMap(g, 10)

	bindings := em.For("b")
	assert.Equal(t, 1, len(bindings))
	assert.Equal(t, "a", bindings[0].OriginModule)
}
