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
package ast

import (
	"strconv"
	"strings"

	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/source"
)

// parser is a hand-rolled recursive-descent parser over a flat token
// stream, mirroring internal/source.Lexer's own choice of a single-pass
// imperative scanner over a combinator pipeline: the grammar's statement
// forms share enough lookahead (e.g. telling a classic `for` from a
// `for...of`, or an arrow function's parameter list from a parenthesized
// expression) that independently composed per-construct parsers would
// require the same backtracking a flat recursive descent gets for free.
type parser struct {
	file *source.File
	toks []source.Token
	pos  int
	errs []*source.SyntaxError
}

// Parse lexes and parses file into a Program. Parse errors are collected
// (not fatal to the whole file): the parser resynchronizes at the next
// statement boundary and continues, so a single malformed statement does
// not hide every other diagnostic in the file.
func Parse(file *source.File) (*Program, []*source.SyntaxError) {
	lexer := source.NewLexer(file)

	toks, lexErrs := lexer.Collect()

	p := &parser{file: file, toks: toks}
	p.errs = append(p.errs, lexErrs...)

	prog := &Program{File: file}

	for !p.atEOF() {
		startPos := p.pos

		p.parseTopLevel(prog)

		if p.pos == startPos {
			// No progress: skip the offending token to guarantee termination.
			p.advance()
		}
	}

	return prog, p.errs
}

func (p *parser) atEOF() bool {
	return p.cur().Kind == source.EOF
}

func (p *parser) cur() source.Token {
	if p.pos >= len(p.toks) {
		return source.Token{Kind: source.EOF}
	}

	return p.toks[p.pos]
}

func (p *parser) peekAt(offset int) source.Token {
	idx := p.pos + offset
	if idx >= len(p.toks) {
		return source.Token{Kind: source.EOF}
	}

	return p.toks[idx]
}

func (p *parser) advance() source.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}

	return t
}

func (p *parser) atKeyword(kw string) bool {
	t := p.cur()
	return t.Kind == source.KEYWORD && t.Text == kw
}

func (p *parser) atPunct(text string) bool {
	t := p.cur()
	return t.Kind == source.PUNCT && t.Text == text
}

func (p *parser) errorf(span source.Span, code source.Code, msg string) {
	p.errs = append(p.errs, p.file.Error(code, span, msg))
}

// expectPunct consumes text if present, otherwise records a diagnostic and
// leaves the cursor in place so the caller's resync logic can recover.
func (p *parser) expectPunct(text string) bool {
	if p.atPunct(text) {
		p.advance()
		return true
	}

	p.errorf(p.cur().Span, diagnostics.TSN1003, "expected '"+text+"'")

	return false
}

func (p *parser) expectKeyword(kw string) bool {
	if p.atKeyword(kw) {
		p.advance()
		return true
	}

	p.errorf(p.cur().Span, diagnostics.TSN1003, "expected '"+kw+"'")

	return false
}

func (p *parser) expectIdent() (string, source.Span) {
	t := p.cur()
	if t.Kind == source.IDENT {
		p.advance()
		return t.Text, t.Span
	}

	p.errorf(t.Span, diagnostics.TSN1003, "expected identifier")

	return "", t.Span
}

// optionalSemicolon swallows a trailing ';' if present; the source language
// subset this parser accepts always uses explicit semicolons at statement
// boundaries emitted by upstream tooling, but tolerating an absent one keeps
// the parser from cascading diagnostics for a single missing terminator.
func (p *parser) optionalSemicolon() {
	if p.atPunct(";") {
		p.advance()
	}
}

// --- top level -------------------------------------------------------

func (p *parser) parseTopLevel(prog *Program) {
	switch {
	case p.atKeyword("import"):
		if imp := p.parseImport(); imp != nil {
			prog.Imports = append(prog.Imports, imp)
		}
	case p.atKeyword("export"):
		p.parseExport(prog)
	default:
		if s := p.parseStatement(); s != nil {
			prog.Stmts = append(prog.Stmts, s)
		}
	}
}

func (p *parser) parseImport() *ImportDecl {
	start := p.cur().Span
	p.advance() // "import"

	decl := &ImportDecl{}

	if p.cur().Kind == source.STRING {
		// import "./side-effect-only";
		decl.Source = unquote(p.advance().Text)
		decl.Span = start.Union(p.cur().Span)
		p.optionalSemicolon()

		return decl
	}

	if p.atPunct("*") {
		p.advance()
		p.expectKeyword("as")

		name, _ := p.expectIdent()
		decl.Namespace = name
	} else if p.cur().Kind == source.IDENT {
		name, _ := p.expectIdent()
		decl.Default = name

		if p.atPunct(",") {
			p.advance()
		}
	}

	if p.atPunct("{") {
		decl.Specifiers = p.parseImportSpecifiers()
	}

	p.expectKeyword("from")

	if p.cur().Kind == source.STRING {
		decl.Source = unquote(p.advance().Text)
	}

	decl.Span = start.Union(p.cur().Span)
	p.optionalSemicolon()

	return decl
}

func (p *parser) parseImportSpecifiers() []ImportSpecifier {
	p.expectPunct("{")

	var specs []ImportSpecifier

	for !p.atPunct("}") && !p.atEOF() {
		imported, _ := p.expectIdent()
		local := imported

		if p.atKeyword("as") {
			p.advance()
			local, _ = p.expectIdent()
		}

		specs = append(specs, ImportSpecifier{Imported: imported, Local: local})

		if p.atPunct(",") {
			p.advance()
		}
	}

	p.expectPunct("}")

	return specs
}

func (p *parser) parseExport(prog *Program) {
	start := p.cur().Span
	p.advance() // "export"

	switch {
	case p.atPunct("*"):
		p.advance()

		clause := &ExportClause{Star: true}

		if p.atKeyword("as") {
			p.advance()
			clause.StarAsLocal, _ = p.expectIdent()
		}

		p.expectKeyword("from")

		if p.cur().Kind == source.STRING {
			clause.From = unquote(p.advance().Text)
		}

		clause.Span = start.Union(p.cur().Span)
		p.optionalSemicolon()
		prog.Exports = append(prog.Exports, clause)

	case p.atPunct("{"):
		clause := &ExportClause{Specifiers: p.parseExportSpecifiers()}

		if p.atKeyword("from") {
			p.advance()

			if p.cur().Kind == source.STRING {
				clause.From = unquote(p.advance().Text)
			}
		}

		clause.Span = start.Union(p.cur().Span)
		p.optionalSemicolon()
		prog.Exports = append(prog.Exports, clause)

	case p.atKeyword("default"):
		p.advance()
		p.parseExportedDecl(prog, start, "default")

	default:
		p.parseExportedDecl(prog, start, "")
	}
}

func (p *parser) parseExportSpecifiers() []ExportSpecifier {
	p.expectPunct("{")

	var specs []ExportSpecifier

	for !p.atPunct("}") && !p.atEOF() {
		local, _ := p.expectIdent()
		exported := local

		if p.atKeyword("as") {
			p.advance()
			exported, _ = p.expectIdent()
		}

		specs = append(specs, ExportSpecifier{Local: local, Exported: exported})

		if p.atPunct(",") {
			p.advance()
		}
	}

	p.expectPunct("}")

	return specs
}

// parseExportedDecl handles `export <declaration>` (and `export default
// <declaration>`), wrapping the declaration and recording its exported name
// in prog.Exports so the Module Graph Builder's Export Map sees it without
// needing to re-inspect prog.Stmts.
func (p *parser) parseExportedDecl(prog *Program, start source.Span, forcedExportedName string) {
	decl := p.parseStatement()
	if decl == nil {
		return
	}

	wrapped := &ExportedDecl{Span: start.Union(decl.Pos()), Decl: decl}
	prog.Stmts = append(prog.Stmts, wrapped)

	name := declaredName(decl)
	if name == "" {
		return
	}

	exported := forcedExportedName
	if exported == "" {
		exported = name
	}

	prog.Exports = append(prog.Exports, &ExportClause{
		Span:       wrapped.Span,
		Specifiers: []ExportSpecifier{{Local: name, Exported: exported}},
	})
}

func declaredName(s Stmt) string {
	switch d := s.(type) {
	case *FunctionDecl:
		return d.Name
	case *ClassDecl:
		return d.Name
	case *InterfaceDecl:
		return d.Name
	case *TypeAliasDecl:
		return d.Name
	case *EnumDecl:
		return d.Name
	case *VarDecl:
		return d.Name
	default:
		return ""
	}
}

// --- statements --------------------------------------------------------

func (p *parser) parseStatement() Stmt {
	switch {
	case p.atKeyword("let") || p.atKeyword("const") || p.atKeyword("var"):
		return p.parseVarDeclStatement()
	case p.atKeyword("function") || (p.atKeyword("async") && p.peekAt(1).Text == "function"):
		return p.parseFunctionDecl("public", false)
	case p.atKeyword("class"):
		return p.parseClassDecl()
	case p.atKeyword("interface"):
		return p.parseInterfaceDecl()
	case p.atKeyword("type"):
		return p.parseTypeAliasDecl()
	case p.atKeyword("enum"):
		return p.parseEnumDecl()
	case p.atKeyword("if"):
		return p.parseIfStmt()
	case p.atKeyword("while"):
		return p.parseWhileStmt()
	case p.atKeyword("for"):
		return p.parseForStmt()
	case p.atKeyword("return"):
		return p.parseReturnStmt()
	case p.atKeyword("break"):
		return p.parseBreakStmt()
	case p.atKeyword("continue"):
		return p.parseContinueStmt()
	case p.atPunct("{"):
		return p.parseBlockStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parseVarDeclStatement() Stmt {
	d := p.parseVarDecl()
	p.optionalSemicolon()

	return d
}

func (p *parser) parseVarDecl() *VarDecl {
	start := p.cur().Span
	kind := p.advance().Text // let | const | var

	name, _ := p.expectIdent()

	d := &VarDecl{Kind: kind, Name: name}

	if p.atPunct(":") {
		p.advance()
		d.Type = p.parseType()
	}

	if p.atPunct("=") {
		p.advance()
		d.Init = p.parseAssignExpr()
	}

	d.Span = start.Union(p.cur().Span)

	return d
}

func (p *parser) parseFunctionDecl(visibility string, isStatic bool) *FunctionDecl {
	start := p.cur().Span

	isAsync := false
	if p.atKeyword("async") {
		isAsync = true
		p.advance()
	}

	p.expectKeyword("function")

	isGenerator := false
	if p.atPunct("*") {
		isGenerator = true
		p.advance()
	}

	name, _ := p.expectIdent()

	d := &FunctionDecl{Name: name, IsGenerator: isGenerator, IsAsync: isAsync, IsStatic: isStatic, Visibility: visibility}

	d.TypeParams = p.parseOptionalTypeParams()
	d.Params = p.parseParamList()

	if p.atPunct(":") {
		p.advance()
		d.ReturnType = p.parseType()
	}

	if p.atPunct("{") {
		d.Body = p.parseBlockStmt()
	} else {
		p.optionalSemicolon()
	}

	d.Span = start.Union(p.cur().Span)

	return d
}

func (p *parser) parseOptionalTypeParams() []string {
	if !p.atPunct("<") {
		return nil
	}

	p.advance()

	var names []string

	for !p.atPunct(">") && !p.atEOF() {
		name, _ := p.expectIdent()
		names = append(names, name)

		if p.atKeyword("extends") {
			p.advance()
			p.parseType()
		}

		if p.atPunct(",") {
			p.advance()
		}
	}

	p.expectPunct(">")

	return names
}

func (p *parser) parseParamList() []Param {
	p.expectPunct("(")

	var params []Param

	for !p.atPunct(")") && !p.atEOF() {
		name, _ := p.expectIdent()

		param := Param{Name: name}

		if p.atPunct("?") {
			p.advance()

			param.Optional = true
		}

		if p.atPunct(":") {
			p.advance()
			param.Type, param.Passing = p.parseParamType()
		}

		params = append(params, param)

		if p.atPunct(",") {
			p.advance()
		}
	}

	p.expectPunct(")")

	return params
}

// parseParamType parses a parameter's type annotation, recognizing the
// passing-mode marker types `ref<T>`/`out<T>`/`inref<T>` (spec §4.5).
func (p *parser) parseParamType() (TypeExpr, string) {
	if p.cur().Kind == source.IDENT && (p.cur().Text == "ref" || p.cur().Text == "out" || p.cur().Text == "inref") &&
		p.peekAt(1).Text == "<" {
		passing := p.advance().Text
		if passing == "inref" {
			passing = "in"
		}

		p.advance() // "<"

		inner := p.parseType()
		p.expectPunct(">")

		return inner, passing
	}

	return p.parseType(), ""
}

func (p *parser) parseClassDecl() *ClassDecl {
	start := p.cur().Span
	p.expectKeyword("class")

	name, _ := p.expectIdent()
	d := &ClassDecl{Name: name}
	d.TypeParams = p.parseOptionalTypeParams()

	if p.atKeyword("extends") {
		p.advance()
		d.Extends, _ = p.expectIdent()
		p.parseOptionalTypeArgs()
	}

	if p.atKeyword("implements") {
		p.advance()

		for {
			name, _ := p.expectIdent()
			d.Implements = append(d.Implements, name)
			p.parseOptionalTypeArgs()

			if p.atPunct(",") {
				p.advance()
				continue
			}

			break
		}
	}

	p.expectPunct("{")

	for !p.atPunct("}") && !p.atEOF() {
		p.parseClassMember(d)
	}

	p.expectPunct("}")

	d.Span = start.Union(p.cur().Span)

	return d
}

func (p *parser) parseOptionalTypeArgs() []TypeExpr {
	if !p.atPunct("<") {
		return nil
	}

	p.advance()

	var args []TypeExpr

	for !p.atPunct(">") && !p.atEOF() {
		args = append(args, p.parseType())

		if p.atPunct(",") {
			p.advance()
		}
	}

	p.expectPunct(">")

	return args
}

func (p *parser) parseClassMember(d *ClassDecl) {
	visibility := "public"
	isStatic := false
	isReadonly := false
	isOverride := false

	for {
		switch {
		case p.atKeyword("public"), p.atKeyword("private"), p.atKeyword("protected"):
			visibility = p.advance().Text
		case p.atKeyword("static"):
			isStatic = true
			p.advance()
		case p.atKeyword("readonly"):
			isReadonly = true
			p.advance()
		case p.cur().Kind == source.IDENT && p.cur().Text == "override":
			isOverride = true
			p.advance()
		default:
			goto modifiersDone
		}
	}

modifiersDone:
	if p.atKeyword("async") || p.atKeyword("function") || p.atPunct("*") {
		m := p.parseMethodDecl(visibility, isStatic, isOverride)
		d.Methods = append(d.Methods, m)

		return
	}

	// Field or method-shorthand (`name(...) { }` with no leading `function`).
	name, span := p.expectIdent()

	if p.atPunct("(") || p.atPunct("<") {
		m := &FunctionDecl{Name: name, Visibility: visibility, IsStatic: isStatic, IsOverride: isOverride}
		m.TypeParams = p.parseOptionalTypeParams()
		m.Params = p.parseParamList()

		if p.atPunct(":") {
			p.advance()
			m.ReturnType = p.parseType()
		}

		if p.atPunct("{") {
			m.Body = p.parseBlockStmt()
		}

		m.Span = span.Union(p.cur().Span)
		d.Methods = append(d.Methods, m)

		return
	}

	f := &FieldDecl{Name: name, Visibility: visibility, Static: isStatic, Readonly: isReadonly, Span: span}

	if p.atPunct("?") {
		p.advance()
	}

	if p.atPunct(":") {
		p.advance()
		f.Type = p.parseType()
	}

	if p.atPunct("=") {
		p.advance()
		f.Init = p.parseAssignExpr()
	}

	p.optionalSemicolon()
	d.Fields = append(d.Fields, f)
}

func (p *parser) parseMethodDecl(visibility string, isStatic, isOverride bool) *FunctionDecl {
	start := p.cur().Span

	isAsync := false
	if p.atKeyword("async") {
		isAsync = true
		p.advance()
	}

	if p.atKeyword("function") {
		p.advance()
	}

	isGenerator := false
	if p.atPunct("*") {
		isGenerator = true
		p.advance()
	}

	name, _ := p.expectIdent()

	m := &FunctionDecl{
		Name: name, Visibility: visibility, IsStatic: isStatic, IsOverride: isOverride,
		IsAsync: isAsync, IsGenerator: isGenerator,
	}
	m.TypeParams = p.parseOptionalTypeParams()
	m.Params = p.parseParamList()

	if p.atPunct(":") {
		p.advance()
		m.ReturnType = p.parseType()
	}

	if p.atPunct("{") {
		m.Body = p.parseBlockStmt()
	} else {
		p.optionalSemicolon()
	}

	m.Span = start.Union(p.cur().Span)

	return m
}

func (p *parser) parseInterfaceDecl() *InterfaceDecl {
	start := p.cur().Span
	p.expectKeyword("interface")

	name, _ := p.expectIdent()
	d := &InterfaceDecl{Name: name}
	p.parseOptionalTypeParams()

	if p.atKeyword("extends") {
		p.advance()

		for {
			n, _ := p.expectIdent()
			d.Extends = append(d.Extends, n)

			if p.atPunct(",") {
				p.advance()
				continue
			}

			break
		}
	}

	d.Members = p.parseObjectTypeMembers()
	d.Span = start.Union(p.cur().Span)

	return d
}

// parseObjectTypeMembers parses the `{ name: Type; ... }` body shared by
// interfaces and inline object-type literals.
func (p *parser) parseObjectTypeMembers() []*FieldDecl {
	p.expectPunct("{")

	var members []*FieldDecl

	for !p.atPunct("}") && !p.atEOF() {
		readonly := false
		if p.atKeyword("readonly") {
			readonly = true
			p.advance()
		}

		name, span := p.expectIdent()

		optional := false
		if p.atPunct("?") {
			optional = true
			p.advance()
		}

		p.expectPunct(":")

		typ := p.parseType()

		members = append(members, &FieldDecl{Name: name, Type: typ, Readonly: readonly, Span: span})
		_ = optional // optionality is folded into the member's type by internal/types

		if p.atPunct(";") || p.atPunct(",") {
			p.advance()
		}
	}

	p.expectPunct("}")

	return members
}

func (p *parser) parseTypeAliasDecl() *TypeAliasDecl {
	start := p.cur().Span
	p.expectKeyword("type")

	name, _ := p.expectIdent()
	p.parseOptionalTypeParams()
	p.expectPunct("=")

	typ := p.parseType()
	p.optionalSemicolon()

	return &TypeAliasDecl{Span: start.Union(p.cur().Span), Name: name, Type: typ}
}

func (p *parser) parseEnumDecl() *EnumDecl {
	start := p.cur().Span
	p.expectKeyword("enum")

	name, _ := p.expectIdent()
	d := &EnumDecl{Name: name}

	p.expectPunct("{")

	for !p.atPunct("}") && !p.atEOF() {
		memberName, _ := p.expectIdent()

		m := EnumMember{Name: memberName}

		if p.atPunct("=") {
			p.advance()
			m.Init = p.parseAssignExpr()
		}

		d.Members = append(d.Members, m)

		if p.atPunct(",") {
			p.advance()
		}
	}

	p.expectPunct("}")
	d.Span = start.Union(p.cur().Span)

	return d
}

func (p *parser) parseBlockStmt() *BlockStmt {
	start := p.cur().Span
	p.expectPunct("{")

	b := &BlockStmt{}

	for !p.atPunct("}") && !p.atEOF() {
		startPos := p.pos

		if s := p.parseStatement(); s != nil {
			b.Stmts = append(b.Stmts, s)
		}

		if p.pos == startPos {
			p.advance()
		}
	}

	p.expectPunct("}")
	b.Span = start.Union(p.cur().Span)

	return b
}

func (p *parser) parseIfStmt() *IfStmt {
	start := p.cur().Span
	p.expectKeyword("if")
	p.expectPunct("(")

	cond := p.parseExpr()

	p.expectPunct(")")

	then := p.parseStatement()

	d := &IfStmt{Cond: cond, Then: then}

	if p.atKeyword("else") {
		p.advance()
		d.Else = p.parseStatement()
	}

	d.Span = start.Union(p.cur().Span)

	return d
}

func (p *parser) parseWhileStmt() *WhileStmt {
	start := p.cur().Span
	p.expectKeyword("while")
	p.expectPunct("(")

	cond := p.parseExpr()

	p.expectPunct(")")

	body := p.parseStatement()

	return &WhileStmt{Span: start.Union(p.cur().Span), Cond: cond, Body: body}
}

// parseForStmt disambiguates classic C-style `for` from `for...of` by
// checking whether a `let`/`const`/`var` name is directly followed by an
// "of" keyword.
func (p *parser) parseForStmt() Stmt {
	start := p.cur().Span
	p.expectKeyword("for")
	p.expectPunct("(")

	if p.isForOf() {
		kind := p.advance().Text // let | const | var
		name, _ := p.expectIdent()
		p.expectKeyword("of")

		iterable := p.parseExpr()

		p.expectPunct(")")

		body := p.parseStatement()

		return &ForOfStmt{Span: start.Union(p.cur().Span), VarKind: kind, VarName: name, Iterable: iterable, Body: body}
	}

	var init Stmt

	if p.atKeyword("let") || p.atKeyword("const") || p.atKeyword("var") {
		init = p.parseVarDecl()
	} else if !p.atPunct(";") {
		init = &ExprStmt{X: p.parseExpr()}
	}

	p.expectPunct(";")

	var cond Expr
	if !p.atPunct(";") {
		cond = p.parseExpr()
	}

	p.expectPunct(";")

	var post Expr
	if !p.atPunct(")") {
		post = p.parseExpr()
	}

	p.expectPunct(")")

	body := p.parseStatement()

	return &ForStmt{Span: start.Union(p.cur().Span), Init: init, Cond: cond, Post: post, Body: body}
}

func (p *parser) isForOf() bool {
	if !(p.atKeyword("let") || p.atKeyword("const") || p.atKeyword("var")) {
		return false
	}

	return p.peekAt(1).Kind == source.IDENT && p.peekAt(2).Kind == source.KEYWORD && p.peekAt(2).Text == "of"
}

func (p *parser) parseReturnStmt() *ReturnStmt {
	start := p.cur().Span
	p.expectKeyword("return")

	var value Expr
	if !p.atPunct(";") && !p.atPunct("}") {
		value = p.parseExpr()
	}

	p.optionalSemicolon()

	return &ReturnStmt{Span: start.Union(p.cur().Span), Value: value}
}

func (p *parser) parseBreakStmt() *BreakStmt {
	start := p.cur().Span
	p.expectKeyword("break")

	label := ""
	if p.cur().Kind == source.IDENT {
		label, _ = p.expectIdent()
	}

	p.optionalSemicolon()

	return &BreakStmt{Span: start.Union(p.cur().Span), Label: label}
}

func (p *parser) parseContinueStmt() *ContinueStmt {
	start := p.cur().Span
	p.expectKeyword("continue")

	label := ""
	if p.cur().Kind == source.IDENT {
		label, _ = p.expectIdent()
	}

	p.optionalSemicolon()

	return &ContinueStmt{Span: start.Union(p.cur().Span), Label: label}
}

func (p *parser) parseExprStmt() Stmt {
	start := p.cur().Span

	if p.atPunct(";") {
		p.advance()
		return nil
	}

	x := p.parseExpr()
	p.optionalSemicolon()

	return &ExprStmt{Span: start.Union(p.cur().Span), X: x}
}

// --- expressions ---------------------------------------------------------
//
// Precedence climbs from parseExpr (lowest: assignment/conditional) down to
// parsePrimary (highest). Binary-operator precedence follows the source
// language's usual table, collapsed to the handful of tiers this subset's
// operators need.

func (p *parser) parseExpr() Expr {
	return p.parseAssignExpr()
}

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "&=": true, "|=": true,
}

func (p *parser) parseAssignExpr() Expr {
	left := p.parseConditional()

	if p.cur().Kind == source.PUNCT && assignOps[p.cur().Text] {
		op := p.advance().Text
		value := p.parseAssignExpr()

		return &AssignExpr{Span: left.Pos().Union(value.Pos()), Op: op, Target: left, Value: value}
	}

	return left
}

func (p *parser) parseConditional() Expr {
	cond := p.parseNullish()

	if p.atPunct("?") {
		p.advance()

		then := p.parseAssignExpr()

		p.expectPunct(":")

		els := p.parseAssignExpr()

		return &ConditionalExpr{Span: cond.Pos().Union(els.Pos()), Cond: cond, Then: then, Else: els}
	}

	return cond
}

func (p *parser) parseNullish() Expr {
	return p.parseBinaryLevel([]string{"??"}, p.parseLogicalOr)
}

func (p *parser) parseLogicalOr() Expr  { return p.parseBinaryLevel([]string{"||"}, p.parseLogicalAnd) }
func (p *parser) parseLogicalAnd() Expr { return p.parseBinaryLevel([]string{"&&"}, p.parseEquality) }

func (p *parser) parseEquality() Expr {
	return p.parseBinaryLevel([]string{"==", "!=", "===", "!=="}, p.parseRelational)
}

func (p *parser) parseRelational() Expr {
	left := p.parseAdditive()

	for {
		switch {
		case p.cur().Kind == source.PUNCT && (p.cur().Text == "<" || p.cur().Text == ">" ||
			p.cur().Text == "<=" || p.cur().Text == ">="):
			op := p.advance().Text
			right := p.parseAdditive()
			left = &BinaryExpr{Span: left.Pos().Union(right.Pos()), Op: op, Left: left, Right: right}
		case p.atKeyword("instanceof"):
			p.advance()
			right := p.parseAdditive()
			left = &BinaryExpr{Span: left.Pos().Union(right.Pos()), Op: "instanceof", Left: left, Right: right}
		case p.atKeyword("in"):
			p.advance()
			right := p.parseAdditive()
			left = &BinaryExpr{Span: left.Pos().Union(right.Pos()), Op: "in", Left: left, Right: right}
		default:
			return left
		}
	}
}

func (p *parser) parseAdditive() Expr {
	return p.parseBinaryLevel([]string{"+", "-"}, p.parseMultiplicative)
}

func (p *parser) parseMultiplicative() Expr {
	return p.parseBinaryLevel([]string{"*", "/", "%"}, p.parseAsExpr)
}

// parseBinaryLevel implements one left-associative precedence tier.
func (p *parser) parseBinaryLevel(ops []string, next func() Expr) Expr {
	left := next()

	for p.cur().Kind == source.PUNCT && containsOp(ops, p.cur().Text) {
		op := p.advance().Text
		right := next()
		left = &BinaryExpr{Span: left.Pos().Union(right.Pos()), Op: op, Left: left, Right: right}
	}

	return left
}

func containsOp(ops []string, op string) bool {
	for _, o := range ops {
		if o == op {
			return true
		}
	}

	return false
}

func (p *parser) parseAsExpr() Expr {
	x := p.parseUnary()

	for p.atKeyword("as") {
		p.advance()

		typ := p.parseType()
		x = &AsExpr{Span: x.Pos().Union(typ.Pos()), X: x, Type: typ}
	}

	return x
}

func (p *parser) parseUnary() Expr {
	start := p.cur().Span

	switch {
	case p.atPunct("!") || p.atPunct("-") || p.atPunct("+") || p.atPunct("++") || p.atPunct("--"):
		op := p.advance().Text
		x := p.parseUnary()

		return &UnaryExpr{Span: start.Union(x.Pos()), Op: op, Operand: x}
	case p.atKeyword("typeof"):
		p.advance()

		x := p.parseUnary()

		return &UnaryExpr{Span: start.Union(x.Pos()), Op: "typeof", Operand: x}
	case p.atKeyword("await"):
		p.advance()

		x := p.parseUnary()

		return &UnaryExpr{Span: start.Union(x.Pos()), Op: "await", Operand: x}
	default:
		return p.parsePostfix()
	}
}

func (p *parser) parsePostfix() Expr {
	x := p.parseCallOrMember(p.parsePrimary())

	if p.atPunct("++") || p.atPunct("--") {
		op := p.advance().Text
		return &UnaryExpr{Span: x.Pos(), Op: "post" + op, Operand: x}
	}

	return x
}

func (p *parser) parseCallOrMember(x Expr) Expr {
	for {
		switch {
		case p.atPunct("."):
			p.advance()

			name, span := p.expectIdent()
			x = &MemberExpr{Span: x.Pos().Union(span), X: x, Name: name}
		case p.atPunct("?."):
			p.advance()

			name, span := p.expectIdent()
			x = &MemberExpr{Span: x.Pos().Union(span), X: x, Name: name, Optional: true}
		case p.atPunct("["):
			p.advance()

			idx := p.parseExpr()

			p.expectPunct("]")

			x = &IndexExpr{Span: x.Pos(), X: x, Index: idx}
		case p.atPunct("("):
			args := p.parseArgList()
			x = &CallExpr{Span: x.Pos(), Callee: x, Args: args}
		default:
			return x
		}
	}
}

func (p *parser) parseArgList() []Expr {
	p.expectPunct("(")

	var args []Expr

	for !p.atPunct(")") && !p.atEOF() {
		args = append(args, p.parseAssignExpr())

		if p.atPunct(",") {
			p.advance()
		}
	}

	p.expectPunct(")")

	return args
}

func (p *parser) parsePrimary() Expr {
	t := p.cur()

	switch {
	case t.Kind == source.NUMBER:
		p.advance()
		return &NumberLit{Span: t.Span, Text: t.Text}
	case t.Kind == source.STRING:
		p.advance()
		return &StringLit{Span: t.Span, Value: unquote(t.Text)}
	case t.Kind == source.TEMPLATE:
		p.advance()
		return &TemplateLit{Span: t.Span, Raw: t.Text}
	case t.Kind == source.KEYWORD && t.Text == "true":
		p.advance()
		return &BoolLit{Span: t.Span, Value: true}
	case t.Kind == source.KEYWORD && t.Text == "false":
		p.advance()
		return &BoolLit{Span: t.Span, Value: false}
	case t.Kind == source.KEYWORD && t.Text == "null":
		p.advance()
		return &NullLit{Span: t.Span}
	case t.Kind == source.KEYWORD && t.Text == "undefined":
		p.advance()
		return &NullLit{Span: t.Span, IsUndefined: true}
	case t.Kind == source.KEYWORD && t.Text == "this":
		p.advance()
		return &ThisExpr{Span: t.Span}
	case t.Kind == source.KEYWORD && t.Text == "super":
		p.advance()
		return &SuperExpr{Span: t.Span}
	case t.Kind == source.KEYWORD && t.Text == "new":
		return p.parseNewExpr()
	case p.atPunct("["):
		return p.parseArrayLit()
	case p.atPunct("{"):
		return p.parseObjectLit()
	case p.atPunct("("):
		return p.parseParenOrArrow()
	case t.Kind == source.IDENT && p.isArrowAhead():
		return p.parseArrowFunction()
	case t.Kind == source.IDENT:
		p.advance()
		return &Ident{Span: t.Span, Name: t.Text}
	default:
		p.errorf(t.Span, diagnostics.TSN1003, "unexpected token '"+t.Text+"' in expression")
		p.advance()

		return &Ident{Span: t.Span, Name: ""}
	}
}

// isArrowAhead reports whether a bare identifier is followed by "=>" (a
// single-parameter arrow function with no parens, e.g. `x => x + 1`).
func (p *parser) isArrowAhead() bool {
	return p.peekAt(1).Kind == source.PUNCT && p.peekAt(1).Text == "=>"
}

func (p *parser) parseArrowFunction() Expr {
	start := p.cur().Span
	name, _ := p.expectIdent()
	p.expectPunct("=>")

	fn := &ArrowFunctionExpr{Span: start, Params: []Param{{Name: name}}}
	p.finishArrowBody(fn)

	return fn
}

// parseParenOrArrow disambiguates a parenthesized expression from a
// parenthesized arrow-function parameter list by scanning for "=>" after
// the matching ')'.
func (p *parser) parseParenOrArrow() Expr {
	if p.looksLikeArrowParams() {
		start := p.cur().Span
		params := p.parseParamList()

		var returnType TypeExpr
		if p.atPunct(":") {
			p.advance()
			returnType = p.parseType()
		}

		p.expectPunct("=>")

		fn := &ArrowFunctionExpr{Span: start, Params: params, ReturnType: returnType}
		p.finishArrowBody(fn)

		return fn
	}

	start := p.cur().Span
	p.expectPunct("(")

	x := p.parseExpr()

	p.expectPunct(")")

	if id, ok := x.(*Ident); ok {
		id.Span = start.Union(p.cur().Span)
	}

	return x
}

func (p *parser) finishArrowBody(fn *ArrowFunctionExpr) {
	if p.atPunct("{") {
		fn.Block = p.parseBlockStmt()
	} else {
		fn.ExprBody = p.parseAssignExpr()
	}
}

// looksLikeArrowParams scans forward from the current '(' to its matching
// ')' and reports whether "=>" (optionally preceded by a ": ReturnType"
// annotation) follows — without mutating parser state.
func (p *parser) looksLikeArrowParams() bool {
	depth := 0
	i := p.pos

	for i < len(p.toks) {
		t := p.toks[i]

		if t.Kind == source.PUNCT && t.Text == "(" {
			depth++
		} else if t.Kind == source.PUNCT && t.Text == ")" {
			depth--
			if depth == 0 {
				break
			}
		} else if t.Kind == source.EOF {
			return false
		}

		i++
	}

	i++ // past ')'

	if i < len(p.toks) && p.toks[i].Kind == source.PUNCT && p.toks[i].Text == ":" {
		// Skip a return-type annotation up to the next "=>", giving up at a
		// ';' or EOF; a minimal scan is enough since types don't contain
		// unbalanced parens in this subset.
		for i < len(p.toks) && !(p.toks[i].Kind == source.PUNCT && p.toks[i].Text == "=>") {
			if p.toks[i].Kind == source.EOF || (p.toks[i].Kind == source.PUNCT && p.toks[i].Text == ";") {
				return false
			}

			i++
		}
	}

	return i < len(p.toks) && p.toks[i].Kind == source.PUNCT && p.toks[i].Text == "=>"
}

func (p *parser) parseNewExpr() Expr {
	start := p.cur().Span
	p.advance() // "new"

	callee := p.parsePrimaryCalleeForNew()

	var typeArgs []TypeExpr
	if p.atPunct("<") && p.looksLikeTypeArgs() {
		typeArgs = p.parseOptionalTypeArgs()
	}

	var args []Expr
	if p.atPunct("(") {
		args = p.parseArgList()
	}

	return &NewExpr{Span: start.Union(p.cur().Span), Callee: callee, TypeArgs: typeArgs, Args: args}
}

// parsePrimaryCalleeForNew parses the `new` callee's name/member chain
// without consuming a call's argument list (so NewExpr owns the args).
func (p *parser) parsePrimaryCalleeForNew() Expr {
	name, span := p.expectIdent()

	x := Expr(&Ident{Span: span, Name: name})

	for p.atPunct(".") {
		p.advance()

		name, memberSpan := p.expectIdent()
		x = &MemberExpr{Span: span.Union(memberSpan), X: x, Name: name}
	}

	return x
}

// looksLikeTypeArgs disambiguates `new Box<int>(1)`'s generic argument list
// from a less-than comparison by requiring the bracket to close before a
// statement-ending token.
func (p *parser) looksLikeTypeArgs() bool {
	depth := 0

	for i := p.pos; i < len(p.toks); i++ {
		t := p.toks[i]

		switch {
		case t.Kind == source.PUNCT && t.Text == "<":
			depth++
		case t.Kind == source.PUNCT && t.Text == ">":
			depth--
			if depth == 0 {
				return true
			}
		case t.Kind == source.PUNCT && (t.Text == ";" || t.Text == "{"):
			return false
		case t.Kind == source.EOF:
			return false
		}
	}

	return false
}

func (p *parser) parseArrayLit() Expr {
	start := p.cur().Span
	p.expectPunct("[")

	var elems []Expr

	for !p.atPunct("]") && !p.atEOF() {
		elems = append(elems, p.parseAssignExpr())

		if p.atPunct(",") {
			p.advance()
		}
	}

	p.expectPunct("]")

	return &ArrayLit{Span: start.Union(p.cur().Span), Elements: elems}
}

func (p *parser) parseObjectLit() Expr {
	start := p.cur().Span
	p.expectPunct("{")

	var props []ObjectProperty

	for !p.atPunct("}") && !p.atEOF() {
		var key string

		switch {
		case p.cur().Kind == source.IDENT || p.cur().Kind == source.KEYWORD:
			key = p.advance().Text
		case p.cur().Kind == source.STRING:
			key = unquote(p.advance().Text)
		}

		var value Expr

		if p.atPunct(":") {
			p.advance()
			value = p.parseAssignExpr()
		} else {
			// Shorthand `{ x }` means `{ x: x }`.
			value = &Ident{Name: key}
		}

		props = append(props, ObjectProperty{Key: key, Value: value})

		if p.atPunct(",") {
			p.advance()
		}
	}

	p.expectPunct("}")

	return &ObjectLit{Span: start.Union(p.cur().Span), Properties: props}
}

// --- types ---------------------------------------------------------------

func (p *parser) parseType() TypeExpr {
	first := p.parseUnionMember()

	if !p.atPunct("|") {
		return first
	}

	members := []TypeExpr{first}

	for p.atPunct("|") {
		p.advance()
		members = append(members, p.parseUnionMember())
	}

	return &UnionTypeExpr{Span: first.Pos(), Members: members}
}

func (p *parser) parseUnionMember() TypeExpr {
	t := p.parseArraySuffixedType()
	return t
}

func (p *parser) parseArraySuffixedType() TypeExpr {
	t := p.parseTypePrimary()

	for p.atPunct("[") && p.peekAt(1).Kind == source.PUNCT && p.peekAt(1).Text == "]" {
		p.advance()
		p.advance()

		t = &ArrayTypeExpr{Span: t.Pos(), Elem: t}
	}

	return t
}

func (p *parser) parseTypePrimary() TypeExpr {
	t := p.cur()

	switch {
	case p.atPunct("{"):
		members := p.parseObjectTypeMembers()
		return &ObjectTypeExpr{Span: t.Span, Members: members}
	case p.atPunct("("):
		return p.parseFunctionTypeOrParen()
	case t.Kind == source.STRING:
		p.advance()
		return &LiteralStringTypeExpr{Span: t.Span, Value: unquote(t.Text)}
	case t.Kind == source.IDENT || t.Kind == source.KEYWORD:
		p.advance()

		ref := &TypeRefExpr{Span: t.Span, Name: t.Text}

		for p.atPunct(".") {
			p.advance()

			name, _ := p.expectIdent()
			ref.Name += "." + name
		}

		if p.atPunct("<") {
			ref.Args = p.parseOptionalTypeArgs()
		}

		return ref
	default:
		p.errorf(t.Span, diagnostics.TSN1003, "unexpected token '"+t.Text+"' in type")
		p.advance()

		return &TypeRefExpr{Span: t.Span, Name: "unknown"}
	}
}

func (p *parser) parseFunctionTypeOrParen() TypeExpr {
	start := p.cur().Span
	params := p.parseParamList()

	if p.atPunct("=>") {
		p.advance()

		ret := p.parseType()

		return &FunctionTypeExpr{Span: start.Union(ret.Pos()), Params: params, ReturnType: ret}
	}

	// A parenthesized type `(T)`: only meaningful with exactly one
	// parameter-shaped entry parsed above; unwrap it.
	if len(params) == 1 {
		return params[0].Type
	}

	return &TypeRefExpr{Span: start, Name: "unknown"}
}

// unquote strips the surrounding quote characters and resolves the small
// set of escapes the lexer passes through verbatim.
func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}

	inner := raw[1 : len(raw)-1]

	var b strings.Builder

	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++

			switch inner[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '"', '\'', '\\':
				b.WriteByte(inner[i])
			default:
				b.WriteByte(inner[i])
			}

			continue
		}

		b.WriteByte(inner[i])
	}

	return b.String()
}

// ParseNumberValue converts a numeric literal's source text (as kept in
// NumberLit.Text) to a float64, ignoring `_` digit separators.
func ParseNumberValue(text string) (float64, error) {
	cleaned := strings.ReplaceAll(text, "_", "")
	return strconv.ParseFloat(cleaned, 64)
}
