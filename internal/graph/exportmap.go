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

import "github.com/bits-and-blooms/bitset"

// ExportBinding is one name a module makes available to importers, resolved
// all the way back to the module that actually declares it (after
// compacting any chain of re-exports).
type ExportBinding struct {
	// ExportedName is the name importers see.
	ExportedName string
	// OriginModule is the canonical path of the module that declares the
	// binding (never itself a re-export).
	OriginModule string
	// OriginName is the name as declared in OriginModule (may differ from
	// ExportedName via `export { x as y }`).
	OriginName string
	// Truncated is true if compaction stopped because MaxHops was reached
	// before resolving to a non-re-exporting module; the binding then points
	// at the last module reached rather than the true origin.
	Truncated bool
}

// ExportMap holds, for every module, its fully-compacted set of exported
// bindings (spec §4.2 step 6).
type ExportMap struct {
	byModule map[string][]ExportBinding
}

// For returns the compacted export bindings of the module at canonicalPath.
func (e *ExportMap) For(canonicalPath string) []ExportBinding {
	return e.byModule[canonicalPath]
}

// BuildExportMap walks every module's re-exports and iteratively compacts
// transitive re-export chains, bounded to maxHops iterations (spec §4.2
// step 6; default 10, per internal/compiler.DefaultMaxExportHops).
func BuildExportMap(g *Graph, maxHops int) *ExportMap {
	em := &ExportMap{byModule: make(map[string][]ExportBinding, len(g.Modules))}

	for _, m := range g.Modules {
		em.byModule[m.CanonicalPath] = directBindings(m)
	}

	// bitset over module index tracks which modules still have at least one
	// un-compacted (pointing at another module rather than an origin
	// declaration) binding, so each pass only revisits modules that can
	// still change.
	index := make(map[string]int, len(g.Modules))
	for i, m := range g.Modules {
		index[m.CanonicalPath] = i
	}

	dirty := bitset.New(uint(len(g.Modules)))
	for i := range g.Modules {
		dirty.Set(uint(i))
	}

	for hop := 0; hop < maxHops && dirty.Any(); hop++ {
		next := bitset.New(uint(len(g.Modules)))

		for _, m := range g.Modules {
			i, ok := index[m.CanonicalPath]
			if !ok || !dirty.Test(uint(i)) {
				continue
			}

			changed := compactOnce(em, g, m.CanonicalPath)
			if changed {
				next.Set(uint(i))
			}
		}

		dirty = next
	}

	markTruncated(em, g, dirty)

	return em
}

// directBindings computes the not-yet-compacted export bindings contributed
// directly by m's own export/re-export clauses.
func directBindings(m *Module) []ExportBinding {
	var out []ExportBinding

	for exported, local := range m.Exports {
		out = append(out, ExportBinding{
			ExportedName: exported,
			OriginModule: m.CanonicalPath,
			OriginName:   local,
		})
	}

	for _, re := range m.ReExports {
		if re.Star {
			// A star re-export is expanded once the source module's own
			// bindings are known; represented here as a single placeholder
			// binding with ExportedName "*" that compactOnce expands.
			out = append(out, ExportBinding{ExportedName: "*", OriginModule: re.From})
			continue
		}

		for exported, original := range re.Names {
			out = append(out, ExportBinding{
				ExportedName: exported,
				OriginModule: re.From,
				OriginName:   original,
			})
		}
	}

	return out
}

// compactOnce replaces every binding in m that still points at another
// module with that module's current bindings (one hop of resolution, since
// the pointed-to module's bindings may themselves still be re-exports).
// Reports whether anything changed.
func compactOnce(em *ExportMap, g *Graph, canonicalPath string) bool {
	bindings := em.byModule[canonicalPath]
	changed := false

	var resolved []ExportBinding

	for _, b := range bindings {
		if _, ok := g.byPath[b.OriginModule]; !ok {
			// External or unresolved source: treat as already-origin.
			resolved = append(resolved, b)
			continue
		}

		targetBindings := em.byModule[b.OriginModule]

		if b.ExportedName == "*" {
			resolved = append(resolved, targetBindings...)
			changed = true

			continue
		}

		// Find the OriginName binding within the target's current bindings;
		// if found and it still points elsewhere, splice it in (one more hop
		// resolved). If not found, the name is declared directly in target,
		// so this binding is already at its origin.
		found := false

		for _, tb := range targetBindings {
			if tb.ExportedName == b.OriginName {
				resolved = append(resolved, ExportBinding{
					ExportedName: b.ExportedName,
					OriginModule: tb.OriginModule,
					OriginName:   tb.OriginName,
				})
				found = true
				changed = changed || tb.OriginModule != b.OriginModule || tb.OriginName != b.OriginName

				break
			}
		}

		if !found {
			resolved = append(resolved, b)
		}
	}

	em.byModule[canonicalPath] = resolved

	return changed
}

// markTruncated flags bindings whose origin module still differs from the
// module holding the actual declaration when the hop budget ran out.
func markTruncated(em *ExportMap, g *Graph, stillDirty *bitset.BitSet) {
	for i, m := range g.Modules {
		if !stillDirty.Test(uint(i)) {
			continue
		}

		bindings := em.byModule[m.CanonicalPath]
		for j := range bindings {
			if _, ok := g.byPath[bindings[j].OriginModule]; ok {
				bindings[j].Truncated = true
			}
		}
	}
}
