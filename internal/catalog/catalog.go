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
package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
)

// Stats records load-time counters surfaced via --verbose (SPEC_FULL §C).
type Stats struct {
	TypesLoaded        int
	DescriptorsSkipped int
	Collisions         int
}

// Catalog is the read-only-after-load index of every CLR type/member
// reachable from the configured type roots.  Safe for concurrent read access
// across compilations once Load has returned (spec §5 Shared-resource
// policy).
type Catalog struct {
	byFQ    map[string]*TypeEntry
	byShort map[string][]*TypeEntry
	// originRoot tracks which root first contributed a given FQ name, to
	// detect cross-root collisions (spec §4.1: "error across multiple roots
	// for the same type").
	originRoot map[string]string
	Stats      Stats
}

// New constructs an empty catalog.
func New() *Catalog {
	return &Catalog{
		byFQ:       make(map[string]*TypeEntry),
		byShort:    make(map[string][]*TypeEntry),
		originRoot: make(map[string]string),
	}
}

// Load scans a catalog root (a directory, or a doublestar glob naming one or
// more directories/files) for *.json descriptor files and merges them into
// the catalog. Malformed JSON or a descriptor missing required fields emits
// a diagnostic and is skipped; the compilation continues (spec §4.1 Failure
// model). Duplicate type definitions within root are last-writer-wins;
// duplicates across separate calls to Load (i.e. across distinct roots) are
// reported as an error.
func (c *Catalog) Load(root string) []error {
	var errs []error

	files, err := c.expandRoot(root)
	if err != nil {
		return []error{fmt.Errorf("catalog root %q: %w", root, err)}
	}

	for _, path := range files {
		if filepath.Ext(path) != ".json" {
			continue
		}

		if err := c.loadFile(root, path); err != nil {
			log.Debugf("catalog: skipping descriptor %s: %v", path, err)

			c.Stats.DescriptorsSkipped++

			errs = append(errs, err)
		}
	}

	return errs
}

// expandRoot resolves root to a concrete file list, treating it as a glob
// pattern (e.g. "vendor/**/bindings") when it contains glob metacharacters,
// and as a plain directory to walk otherwise.
func (c *Catalog) expandRoot(root string) ([]string, error) {
	if !doublestar.ValidatePattern(root) || !containsGlobMeta(root) {
		return c.walkDir(root)
	}

	matches, err := doublestar.FilepathGlob(root)
	if err != nil {
		return nil, err
	}

	var files []string

	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}

		if info.IsDir() {
			sub, err := c.walkDir(m)
			if err != nil {
				return nil, err
			}

			files = append(files, sub...)
		} else {
			files = append(files, m)
		}
	}

	return files, nil
}

func containsGlobMeta(s string) bool {
	for _, r := range s {
		if r == '*' || r == '?' || r == '[' || r == '{' {
			return true
		}
	}

	return false
}

func (c *Catalog) walkDir(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

func (c *Catalog) loadFile(root, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var desc descriptorFile
	if err := json.Unmarshal(data, &desc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if desc.Namespace == "" {
		return fmt.Errorf("%s: missing required field \"namespace\"", path)
	}

	for _, td := range desc.Types {
		if err := c.mergeType(root, path, td); err != nil {
			log.Debugf("catalog: %v", err)

			c.Stats.DescriptorsSkipped++
		}
	}

	return nil
}

func (c *Catalog) mergeType(root, path string, td typeDescriptor) error {
	if td.ClrName == "" {
		return fmt.Errorf("%s: type descriptor missing required field \"clrName\"", path)
	}

	if origin, ok := c.originRoot[td.ClrName]; ok && origin != root {
		c.Stats.Collisions++
		return fmt.Errorf("type %q declared in both %q and %q", td.ClrName, origin, root)
	}

	entry := newTypeEntry(td.ClrName)
	entry.Kind = parseKind(td.Kind)

	if td.BaseType != nil {
		entry.BaseType = td.BaseType.ClrName
	}

	for _, i := range td.Interfaces {
		entry.Interfaces = append(entry.Interfaces, i.ClrName)
	}

	for _, m := range td.Methods {
		key := m.CanonicalSignature
		if len(m.ParameterTypes) > 0 || m.ParameterCount == 0 {
			key = BuildSignatureKey(m.ParameterTypes, m.ParameterModifiers)
		}

		entry.addMethod(&MethodEntry{
			Name:               m.ClrName,
			ParameterCount:     m.ParameterCount,
			SignatureKey:       key,
			ParameterTypes:     m.ParameterTypes,
			ParameterModifiers: m.ParameterModifiers,
			ReturnType:         m.ReturnType,
			IsStatic:           m.IsStatic,
			IsVirtual:          m.IsVirtual,
			Visibility:         m.Visibility,
		})
	}

	for _, p := range td.Properties {
		entry.addProperty(&PropertyEntry{
			Name:       p.ClrName,
			Type:       p.Type,
			IsStatic:   p.IsStatic,
			Visibility: p.Visibility,
		})
	}

	// Last-writer-wins within a single root: overwrite any previous entry for
	// this FQ name that also originated from this root.
	c.byFQ[td.ClrName] = entry
	c.originRoot[td.ClrName] = root

	short := shortName(td.ClrName)
	c.byShort[short] = appendUnique(c.byShort[short], entry)
	c.Stats.TypesLoaded++

	return nil
}

func appendUnique(entries []*TypeEntry, entry *TypeEntry) []*TypeEntry {
	for i, e := range entries {
		if e.FQName == entry.FQName {
			entries[i] = entry
			return entries
		}
	}

	return append(entries, entry)
}

func shortName(fq string) string {
	for i := len(fq) - 1; i >= 0; i-- {
		if fq[i] == '.' {
			return fq[i+1:]
		}
	}

	return fq
}

// ResolveType looks up a type by fully-qualified name, falling back to an
// unambiguous short-name match.
func (c *Catalog) ResolveType(name string) (*TypeEntry, bool) {
	if e, ok := c.byFQ[name]; ok {
		return e, true
	}

	if matches := c.byShort[name]; len(matches) == 1 {
		return matches[0], true
	}

	return nil, false
}

// ResolveMethod walks the inheritance chain of typeFQ (with a cycle guard,
// since malformed descriptors could otherwise loop forever) looking for an
// exact signature-key match of name/modKey.
func (c *Catalog) ResolveMethod(typeFQ, name string, paramTypes []string, modKey []string) (*MethodEntry, bool) {
	key := BuildSignatureKey(paramTypes, modKey)
	visited := make(map[string]bool)

	current := typeFQ
	for current != "" && !visited[current] {
		visited[current] = true

		entry, ok := c.byFQ[current]
		if !ok {
			return nil, false
		}

		if overloads, ok := entry.methods[name]; ok {
			if m, ok := overloads[key]; ok {
				return m, true
			}
		}

		current = entry.BaseType
	}

	return nil, false
}

// OverloadCount returns the number of overloads of name with the given
// arity declared directly on typeFQ (no inheritance walk, per spec).
func (c *Catalog) OverloadCount(typeFQ, name string, arity int) int {
	entry, ok := c.byFQ[typeFQ]
	if !ok {
		return 0
	}

	return entry.OwnOverloadCount(name, arity)
}
