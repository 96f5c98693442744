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

import (
	"testing"

	"github.com/tsoniclang/tsonic/internal/testutil/assert"
)

func kinds(toks []Token) []Kind {
	r := make([]Kind, len(toks))
	for i, t := range toks {
		r[i] = t.Kind
	}

	return r
}

func TestLexer_Empty(t *testing.T) {
	f := NewFile("t.ts", []byte(""))
	toks, errs := NewLexer(f).Collect()

	assert.Equal(t, 0, len(errs))
	assert.Equal(t, []Kind{EOF}, kinds(toks))
}

func TestLexer_Identifiers(t *testing.T) {
	f := NewFile("t.ts", []byte("let x = foo"))
	toks, errs := NewLexer(f).Collect()

	assert.Equal(t, 0, len(errs))
	assert.Equal(t, []Kind{KEYWORD, IDENT, PUNCT, IDENT, EOF}, kinds(toks))
	assert.Equal(t, "let", toks[0].Text)
	assert.Equal(t, "x", toks[1].Text)
	assert.Equal(t, "=", toks[2].Text)
	assert.Equal(t, "foo", toks[3].Text)
}

func TestLexer_ArrowAndOptionalChain(t *testing.T) {
	f := NewFile("t.ts", []byte("a?.b => c"))
	toks, errs := NewLexer(f).Collect()

	assert.Equal(t, 0, len(errs))
	assert.Equal(t, "?.", toks[1].Text)
	assert.Equal(t, "=>", toks[3].Text)
}

func TestLexer_String(t *testing.T) {
	f := NewFile("t.ts", []byte(`"hello \"world\""`))
	toks, errs := NewLexer(f).Collect()

	assert.Equal(t, 0, len(errs))
	assert.Equal(t, STRING, toks[0].Kind)
}

func TestLexer_UnterminatedString(t *testing.T) {
	f := NewFile("t.ts", []byte(`"hello`))
	_, errs := NewLexer(f).Collect()

	assert.Equal(t, 1, len(errs))
}

func TestLexer_TemplateWithInterpolation(t *testing.T) {
	f := NewFile("t.ts", []byte("`a${b}c`"))
	toks, errs := NewLexer(f).Collect()

	assert.Equal(t, 0, len(errs))
	assert.Equal(t, TEMPLATE, toks[0].Kind)
	assert.Equal(t, "`a${b}c`", toks[0].Text)
}

func TestLexer_LineComment(t *testing.T) {
	f := NewFile("t.ts", []byte("let x // comment\n= 1"))
	toks, _ := NewLexer(f).Collect()

	assert.Equal(t, []Kind{KEYWORD, IDENT, PUNCT, NUMBER, EOF}, kinds(toks))
}
