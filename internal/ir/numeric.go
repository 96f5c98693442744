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
package ir

import (
	"strings"

	"github.com/tsoniclang/tsonic/internal/types"
)

// inferNumericIntent classifies a numeric literal's source text: no
// fractional part or exponent means it carries Int32 intent, the narrowest
// CLR integer type the Emitter's Type Emitter can safely use (spec §4.5,
// §4.7).
func inferNumericIntent(text string) types.NumericIntent {
	if strings.ContainsAny(text, ".eE") && !isHexOrBinary(text) {
		return types.IntentFloat64
	}

	return types.IntentInt32
}

func isHexOrBinary(text string) bool {
	return strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") ||
		strings.HasPrefix(text, "0b") || strings.HasPrefix(text, "0B")
}
