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

// Source-generated JSON context (spec §4.7): JSON.stringify/parse call
// sites are rewritten to the source-generated System.Text.Json API instead
// of the slower reflection-based one, referencing a single
// JsonSerializerContext class at the root namespace. This file only names
// that class and its JsonTypeInfo<T> properties; nothing in this package
// emits the class or its [JsonSerializable] attributes.
package emit

import "github.com/tsoniclang/tsonic/internal/types"

// jsonContextClassName is the root-namespace class every rewritten
// JSON.stringify/parse call references.
const jsonContextClassName = "TsonicJsonContext"

// jsonTypeInfoFor names the JsonTypeInfo<T> property emitJSONCall's
// rewritten call references for t: the Type Emitter's rendering of t with
// mangleReplacer applied.
func jsonTypeInfoFor(t types.Type, te *TypeEmitter) string {
	return mangleReplacer.Replace(te.Emit(t))
}
