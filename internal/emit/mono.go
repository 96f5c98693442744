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

// Monomorphization (spec §4.7): a generic callee invoked with concrete type
// arguments at a call site marked RequiresSpecialization is rewritten to
// call a specialized copy instead, named by mangling the type arguments
// into the callee's own name (`Box__string`).
package emit

import (
	"strings"

	"github.com/tsoniclang/tsonic/internal/emit/backend"
)

var mangleReplacer = strings.NewReplacer(
	"global::", "",
	".", "_",
	"<", "_",
	">", "_",
	", ", "_",
	"[]", "Array",
	"?", "Nullable",
)

// mangleCalleeName renders callee to the plain text a mangled specialization
// name is built from.
func mangleCalleeName(callee backend.Expr) string {
	return backend.RenderExpr(callee)
}

// mangleSuffix mangles a specialization's type arguments into a name
// suffix, e.g. ["string"] -> "__string".
func mangleSuffix(typeArgs []string) string {
	if len(typeArgs) == 0 {
		return ""
	}

	var b strings.Builder
	for _, t := range typeArgs {
		b.WriteString("__")
		b.WriteString(mangleReplacer.Replace(t))
	}

	return b.String()
}
