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

// Package semantic runs the fixed-order passes over a built IR (spec §4.6):
// the Local Types Index, Public Local Types reachability, the Module Map and
// Export Map (reusing internal/graph's already-compacted Export Map), the
// Naming-Collision Validator, the Numeric Proof Pass, and the JSON AOT
// Registry. Each pass produces an auxiliary index internal/emit consults;
// none of them mutate internal/ast or internal/binding state.
package semantic

import (
	"github.com/tsoniclang/tsonic/internal/binding"
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/graph"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/source"
	"github.com/tsoniclang/tsonic/internal/types"
)

// ModuleIdentity is one module's namespace/container-class identity, carried
// forward from the Module Graph Builder for the passes and the emitter that
// need it without re-walking *graph.Graph.
type ModuleIdentity struct {
	Namespace string
	ClassName string
}

// Result bundles every auxiliary index the fixed-order passes produce.
type Result struct {
	// LocalTypes is the Local Types Index: every module's own top-level
	// declarations, keyed by canonical path.
	LocalTypes map[string][]LocalTypeEntry
	// PublicTypes marks, per module, which of that module's own
	// locally-declared types are reachable from some module's exported
	// signatures and must therefore be emitted with public accessibility
	// even when never themselves exported.
	PublicTypes map[string]map[string]bool
	// Modules is the Module Map: namespace/class identity per module.
	Modules map[string]ModuleIdentity
	// Exports is the already-compacted Export Map built by internal/graph;
	// carried here so every later pass and the emitter has one place to ask.
	Exports *graph.ExportMap
	// ContainerRenames holds, for any module whose container class name
	// collides with one of its own namespace-level type declarations (after
	// keyword escaping), the renamed container class name (`Name__Module`,
	// spec §4.8) the emitter must use instead.
	ContainerRenames map[string]string
	// JSONTypes is the JSON AOT Registry: the set of closed types observed
	// crossing a JSON.stringify/JSON.parse boundary, deduplicated by
	// structural identity.
	JSONTypes []types.Type
}

// FileLookup resolves a module's canonical path to the source.File that
// should receive its diagnostics; internal/compiler supplies this from its
// own program cache, mirroring internal/binding.Build's programOf seam.
type FileLookup func(canonicalPath string) (*source.File, bool)

// Run executes all six passes, in the fixed order spec §4.6 requires, over
// modules (already lowered by internal/ir) and reports every pass's
// diagnostics into bag.
func Run(
	reg *binding.Registry,
	g *graph.Graph,
	modules map[string]*ir.Module,
	files FileLookup,
	bag *diagnostics.Bag,
) *Result {
	res := &Result{}

	res.LocalTypes = BuildLocalTypesIndex(reg, g)
	res.PublicTypes = ComputePublicTypes(reg, g, modules)
	res.Modules, res.Exports = BuildModuleMap(g)
	res.ContainerRenames = ValidateNaming(g, modules, bag, files)
	RunNumericProofPass(modules, files, bag)
	res.JSONTypes = BuildJSONRegistry(modules)

	return res
}
