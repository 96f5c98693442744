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
	"path"
	"strings"
)

// sourceExtension is the literal SL source-file extension (spec §4.2 step
// 3's ".ts-equivalent extension").
const sourceExtension = ".ts"

// Canonicalize normalizes p the way spec §4.2 step 2 requires: forward
// slashes, dot-segments resolved, extension stripped. p is assumed already
// relative to whatever root it was resolved against.
func Canonicalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean(p)
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimSuffix(p, sourceExtension)

	return p
}

// Namespace computes rootNamespace + directory-relative-to-sourceRoot for a
// canonical path, joining with "." the way CLR namespaces are segmented.
func Namespace(rootNamespace, canonicalPath string) string {
	dir := path.Dir(canonicalPath)
	if dir == "." || dir == "/" {
		return rootNamespace
	}

	segments := strings.Split(dir, "/")

	var b strings.Builder

	b.WriteString(rootNamespace)

	for _, s := range segments {
		if s == "" {
			continue
		}

		if b.Len() > 0 {
			b.WriteByte('.')
		}

		b.WriteString(identifierize(s))
	}

	return b.String()
}

// ClassName normalizes a file basename into a valid container-class
// identifier (spec §4.2 step 2): strip the extension, then strip
// non-identifier characters.
func ClassName(canonicalPath string) string {
	base := strings.TrimSuffix(path.Base(canonicalPath), sourceExtension)
	return identifierize(base)
}

// identifierize strips characters illegal in a CLR identifier and ensures
// the result doesn't start with a digit, prefixing "_" when it would.
func identifierize(s string) string {
	var b strings.Builder

	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == '-' || r == '.' || r == ' ':
			// Dropped: CLR identifiers cannot contain these.
		}
	}

	result := b.String()
	if result == "" {
		return "_"
	}

	if result[0] >= '0' && result[0] <= '9' {
		return "_" + result
	}

	return result
}

// ResolveImportPath resolves an import's literal source against the
// current module's canonical path and the source root, per spec §4.2 step
// 3, returning the resolved canonical path. Only meaningful for
// ImportRelative and ImportAbsolute; callers must classify external imports
// before calling this.
func ResolveImportPath(kind ImportKind, literal, currentModulePath, sourceRoot string) string {
	var joined string

	switch kind {
	case ImportRelative:
		joined = path.Join(path.Dir(currentModulePath), literal)
	case ImportAbsolute:
		joined = path.Join(sourceRoot, strings.TrimPrefix(literal, "/"))
	default:
		return ""
	}

	return Canonicalize(joined)
}

// ClassifyImport determines how literal resolves, per spec §4.2 step 3.
func ClassifyImport(literal string) ImportKind {
	if strings.HasPrefix(literal, "./") || strings.HasPrefix(literal, "../") {
		return ImportRelative
	}

	if strings.HasPrefix(literal, "/") {
		return ImportAbsolute
	}

	return ImportExternal
}
