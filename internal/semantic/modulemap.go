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

import "github.com/tsoniclang/tsonic/internal/graph"

// BuildModuleMap assembles the Module Map (spec §4.6 step 3) from a graph
// already built by internal/graph.Build: the namespace/class identity the
// Module Graph Builder assigned each module, and the Export Map it already
// compacted. Neither is recomputed here; this pass exists so later semantic
// passes and the emitter consult one narrow seam instead of reaching into
// *graph.Graph directly.
func BuildModuleMap(g *graph.Graph) (map[string]ModuleIdentity, *graph.ExportMap) {
	out := make(map[string]ModuleIdentity, len(g.Modules))

	for _, m := range g.Modules {
		out[m.CanonicalPath] = ModuleIdentity{Namespace: m.Namespace, ClassName: m.ClassName}
	}

	return out, g.Exports
}
