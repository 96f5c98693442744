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
	"os"
	"path/filepath"
	"testing"

	"github.com/tsoniclang/tsonic/internal/binding"
	"github.com/tsoniclang/tsonic/internal/testutil/assert"
)

func writeSource(t *testing.T, dir, name, contents string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
}

// TestCompile_CatalogGraphAndBindingCompose proves the catalog load, module
// graph build (against the real internal/ast parser, not a stand-in), and
// Binding Layer construction actually compose end-to-end through Compile,
// on a small multi-file import graph with one external (catalog-resolved)
// reference.
func TestCompile_CatalogGraphAndBindingCompose(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeSource(t, dir, "index.ts", `
import { add } from "./math";
import { List } from "System.Collections.Generic";

export function main(): number {
	const xs: List = new List();
	return add(1, 2);
}
`)
	writeSource(t, dir, "math.ts", `
export function add(a: number, b: number): number {
	return a + b;
}
`)

	typeRoot := filepath.Join(dir, "types")
	if err := os.Mkdir(typeRoot, 0o755); err != nil {
		t.Fatalf("making type root: %v", err)
	}

	writeSource(t, typeRoot, "generic.json", `{
  "namespace": "System.Collections.Generic",
  "types": [
    {"clrName": "System.Collections.Generic.List", "kind": "Class"}
  ]
}`)

	result, err := Compile(Options{
		EntryPoints:   []string{"index.ts"},
		SourceRoot:    ".",
		TypeRoots:     []string{typeRoot},
		RootNamespace: "App",
	})

	if err != nil {
		t.Fatalf("Compile returned an error: %v", err)
	}

	assert.False(t, result.Diagnostics.HasErrors())
	assert.Equal(t, 2, len(result.Graph.Modules))
	assert.True(t, result.Binding != nil)

	addID, ok := result.Binding.ResolveIdentifier("index", "add")
	assert.True(t, ok)
	assert.Equal(t, "math", result.Binding.Module(addID))

	listID, ok := result.Binding.ResolveIdentifier("index", "List")
	assert.True(t, ok)
	assert.Equal(t, int(binding.DeclExternal), int(result.Binding.Kind(listID)))

	entry, ok := result.Binding.External(listID)
	assert.True(t, ok)
	assert.Equal(t, "System.Collections.Generic.List", entry.FQName)

	indexIR, ok := result.IR["index"]
	assert.True(t, ok)
	assert.Equal(t, 1, len(indexIR.Decls))
	assert.True(t, indexIR.HasExportedMain)
}

// TestCompile_NoEntryPointsIsAnError proves Compile fails fast rather than
// silently building an empty graph when invoked without entry points.
func TestCompile_NoEntryPointsIsAnError(t *testing.T) {
	_, err := Compile(Options{SourceRoot: "."})
	assert.True(t, err != nil)
}
