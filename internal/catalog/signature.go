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
	"sort"
	"strings"
)

// BuildSignatureKey computes the canonical "types|mods=<sorted pairs>"
// signature key described in spec §4.1, used to index and look up method
// overloads that may differ only in by-ref modifiers.
//
// paramTypes is the canonical parameter-type list, respecting nested generic
// brackets (callers are expected to have already canonicalized each type
// name, e.g. via the type system's reference-type printer).  modifiers is
// aligned positionally with paramTypes ("", "ref", "out", or "in" per slot).
//
// The "sorted pairs" are (parameter-index, modifier) pairs for every
// non-empty modifier: since they are already emitted in ascending index
// order, sorting is a no-op on well-formed input, but we sort explicitly so
// that two descriptors which enumerate modifiers out of declaration order
// still canonicalize identically.
func BuildSignatureKey(paramTypes []string, modifiers []string) string {
	types := strings.Join(paramTypes, ",")

	pairs := make([]string, 0, len(modifiers))

	for i, m := range modifiers {
		if m != "" && m != "none" {
			pairs = append(pairs, fmt.Sprintf("%d:%s", i, m))
		}
	}

	sort.Strings(pairs)

	return fmt.Sprintf("%s|mods=%s", types, strings.Join(pairs, ","))
}
