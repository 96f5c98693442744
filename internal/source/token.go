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
package source

// Kind identifies the lexical category of a Token.
type Kind uint

// Token categories recognised by the front-end lexer.  Kept as a flat
// enumeration (rather than per-keyword kinds) with keyword disambiguation
// performed by the parser via Token.Text, matching the teacher's convention
// of tagging scanned spans with a small fixed vocabulary of kinds.
const (
	EOF Kind = iota
	IDENT
	KEYWORD
	NUMBER
	STRING
	TEMPLATE
	PUNCT
	COMMENT
)

// Token is a single lexical unit: its Kind, its originating Span, and the
// literal text it covers (identifiers, keywords, numbers, operators).
type Token struct {
	Kind Kind
	Span Span
	Text string
}

// keywords is the fixed vocabulary of reserved words in the source language
// subset this compiler accepts.  Anything else lexing as an identifier-shape
// word is an IDENT.
var keywords = map[string]bool{
	"import": true, "export": true, "from": true, "as": true, "default": true,
	"let": true, "const": true, "var": true, "function": true, "return": true,
	"class": true, "interface": true, "enum": true, "type": true,
	"extends": true, "implements": true, "new": true, "this": true, "super": true,
	"public": true, "private": true, "protected": true, "static": true, "readonly": true,
	"if": true, "else": true, "while": true, "for": true, "of": true, "in": true,
	"switch": true, "case": true, "break": true, "continue": true,
	"try": true, "catch": true, "finally": true, "throw": true,
	"typeof": true, "instanceof": true, "void": true, "yield": true,
	"async": true, "await": true, "true": true, "false": true,
	"null": true, "undefined": true, "never": true, "any": true, "unknown": true,
}

// IsKeyword reports whether text is a reserved word in the source language.
func IsKeyword(text string) bool {
	return keywords[text]
}
