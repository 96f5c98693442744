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

// Package diagnostics aggregates the source.SyntaxError values raised by
// every compiler phase into a single per-compilation Bag, and carries the
// fixed table of stable diagnostic codes referenced throughout the spec.
package diagnostics

import "github.com/tsoniclang/tsonic/internal/source"

// The fixed code table.  Codes are never renumbered once released; a code
// retired because a check was removed is never reused for something else.
const (
	// TSN1001 signals an unterminated string literal.
	TSN1001 source.Code = "TSN1001"
	// TSN1002 signals an unterminated template literal.
	TSN1002 source.Code = "TSN1002"
	// TSN1003 signals a general parse error: an unexpected token, or an
	// expected token that never arrived.
	TSN1003 source.Code = "TSN1003"
	// TSN5107 signals an array index that could not be proven to be Int32.
	TSN5107 source.Code = "TSN5107"
	// TSN5110 signals an implicit int->double widening across a ternary's
	// two branches.
	TSN5110 source.Code = "TSN5110"
	// TSN7414 signals an unsupported type operation (utility type misuse,
	// any reaching emission, unsupported typeof form).
	TSN7414 source.Code = "TSN7414"
	// TSN7415 signals an assignability failure at a given call/assignment
	// site.
	TSN7415 source.Code = "TSN7415"
	// TSN9001 signals a file-name collision after namespace/class-name
	// normalization.
	TSN9001 source.Code = "TSN9001"
)
