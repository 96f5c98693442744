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

// Kind classifies a CLR type entry.
type Kind uint8

const (
	// KindClass is a reference type with single inheritance.
	KindClass Kind = iota
	// KindInterface is a CLR interface.
	KindInterface
	// KindStruct is a CLR value type.
	KindStruct
	// KindEnum is a CLR enum.
	KindEnum
)

// String renders the kind the way it appears in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

func parseKind(s string) Kind {
	switch s {
	case "Interface":
		return KindInterface
	case "Struct":
		return KindStruct
	case "Enum":
		return KindEnum
	default:
		return KindClass
	}
}

// MethodEntry is a single overload of a named method, indexed within its
// declaring TypeEntry by (name, parameter count, signature key).
type MethodEntry struct {
	Name               string
	ParameterCount     int
	SignatureKey       string
	ParameterTypes     []string
	ParameterModifiers []string
	ReturnType         string
	IsStatic           bool
	IsVirtual          bool
	Visibility         string
}

// PropertyEntry is a single property or field member.
type PropertyEntry struct {
	Name       string
	Type       string
	IsStatic   bool
	Visibility string
}

// TypeEntry is an immutable (post-load) description of one CLR type: its
// kind, base type, interfaces, and indexed members.
type TypeEntry struct {
	FQName     string
	Kind       Kind
	BaseType   string // fully-qualified name of base type, or "" if none (e.g. System.Object)
	Interfaces []string
	// methods indexed by name -> signature key -> entry, for exact overload
	// resolution; also grouped by name -> arity -> entries for overload-count
	// queries, since those aggregate by arity alone (spec §4.1).
	methods    map[string]map[string]*MethodEntry
	byArity    map[string]map[int][]*MethodEntry
	properties map[string]*PropertyEntry
}

func newTypeEntry(fq string) *TypeEntry {
	return &TypeEntry{
		FQName:     fq,
		methods:    make(map[string]map[string]*MethodEntry),
		byArity:    make(map[string]map[int][]*MethodEntry),
		properties: make(map[string]*PropertyEntry),
	}
}

func (t *TypeEntry) addMethod(m *MethodEntry) {
	if t.methods[m.Name] == nil {
		t.methods[m.Name] = make(map[string]*MethodEntry)
	}

	t.methods[m.Name][m.SignatureKey] = m

	if t.byArity[m.Name] == nil {
		t.byArity[m.Name] = make(map[int][]*MethodEntry)
	}

	t.byArity[m.Name][m.ParameterCount] = append(t.byArity[m.Name][m.ParameterCount], m)
}

func (t *TypeEntry) addProperty(p *PropertyEntry) {
	t.properties[p.Name] = p
}

// Property looks up a property declared directly on this type (not walking
// the inheritance chain).
func (t *TypeEntry) Property(name string) (*PropertyEntry, bool) {
	p, ok := t.properties[name]
	return p, ok
}

// OwnOverloadCount returns the number of overloads of name with the given
// arity declared directly on this type (no inheritance walk, per spec
// §4.1's overloadCount contract).
func (t *TypeEntry) OwnOverloadCount(name string, arity int) int {
	return len(t.byArity[name][arity])
}
