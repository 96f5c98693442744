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
	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/binding"
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/source"
	"github.com/tsoniclang/tsonic/internal/types"
)

// Builder lowers one module's parsed internal/ast tree into IR (spec §4.5).
// A Builder is single-use: call Build once per module.
type Builder struct {
	reg    *binding.Registry
	module string
	file   *source.File
	bag    *diagnostics.Bag

	// scope tracks locally-declared names (parameters, local vars, catch
	// bindings) that shadow module-level declarations, so Ident resolution
	// only calls into the Binding Layer for names scope doesn't already own.
	scope []map[string]types.Type
}

// NewBuilder constructs a Builder for one module. file is used only to
// attribute diagnostics (TSN7414 from the soundness gate, TSN7414 from
// FromSyntax's utility-type misuse reporting); reg and module drive every
// identifier and type-reference resolution.
func NewBuilder(reg *binding.Registry, module string, file *source.File, bag *diagnostics.Bag) *Builder {
	return &Builder{reg: reg, module: module, file: file, bag: bag}
}

// Build lowers prog into a Module, then runs the soundness gate over the
// result (spec §4.5's closing step).
func (b *Builder) Build(prog *ast.Program) *Module {
	m := &Module{Path: b.module}

	b.pushScope()
	defer b.popScope()

	for _, stmt := range prog.Stmts {
		target := stmt
		exported := false
		if ed, ok := target.(*ast.ExportedDecl); ok {
			target = ed.Decl
			exported = true
		}

		switch d := target.(type) {
		case *ast.FunctionDecl:
			fd := b.convertFunc(d)
			m.Decls = append(m.Decls, fd)

			if exported && d.Name == "main" {
				m.HasExportedMain = true
			}
		case *ast.ClassDecl:
			m.Decls = append(m.Decls, b.convertClass(d))
		case *ast.InterfaceDecl:
			m.Decls = append(m.Decls, b.convertInterface(d))
		case *ast.EnumDecl:
			m.Decls = append(m.Decls, b.convertEnum(d))
		case *ast.TypeAliasDecl:
			m.Decls = append(m.Decls, b.convertTypeAlias(d))
		case *ast.VarDecl:
			m.Decls = append(m.Decls, b.convertTopVar(d))
		default:
			m.TopLevel = append(m.TopLevel, b.convertStmt(target))
		}
	}

	soundnessGate(m, b.file, b.bag)

	return m
}

func (b *Builder) pushScope()  { b.scope = append(b.scope, make(map[string]types.Type)) }
func (b *Builder) popScope()   { b.scope = b.scope[:len(b.scope)-1] }

func (b *Builder) declareLocal(name string, t types.Type) {
	if len(b.scope) == 0 {
		return
	}

	b.scope[len(b.scope)-1][name] = t
}

func (b *Builder) lookupLocal(name string) (types.Type, bool) {
	for i := len(b.scope) - 1; i >= 0; i-- {
		if t, ok := b.scope[i][name]; ok {
			return t, true
		}
	}

	return nil, false
}

func (b *Builder) fromSyntax(te ast.TypeExpr) types.Type {
	ctx := &types.Context{Reg: b.reg, Module: b.module, File: b.file, Bag: b.bag}
	return types.FromSyntax(te, ctx)
}

func (b *Builder) convertParams(params []ast.Param) []Param {
	out := make([]Param, len(params))
	for i, p := range params {
		out[i] = Param{Name: p.Name, Type: b.fromSyntax(p.Type), Passing: p.Passing, Optional: p.Optional}
		b.declareLocal(p.Name, out[i].Type)
	}

	return out
}

func (b *Builder) convertFunc(d *ast.FunctionDecl) *FuncDecl {
	b.pushScope()
	defer b.popScope()

	params := b.convertParams(d.Params)

	id, _ := b.reg.ResolveIdentifier(b.module, d.Name)

	return &FuncDecl{
		Span:        d.Span,
		Name:        d.Name,
		TypeParams:  d.TypeParams,
		Params:      params,
		ReturnType:  b.fromSyntax(d.ReturnType),
		Body:        b.convertBlock(d.Body),
		IsGenerator: d.IsGenerator,
		IsAsync:     d.IsAsync,
		IsStatic:    d.IsStatic,
		Visibility:  d.Visibility,
		IsOverride:  d.IsOverride,
		Decl:        id,
	}
}

func (b *Builder) convertClass(d *ast.ClassDecl) *ClassDecl {
	id, _ := b.reg.ResolveIdentifier(b.module, d.Name)

	cd := &ClassDecl{
		Span:       d.Span,
		Name:       d.Name,
		TypeParams: d.TypeParams,
		Extends:    d.Extends,
		Implements: d.Implements,
		Decl:       id,
	}

	for _, f := range d.Fields {
		cd.Fields = append(cd.Fields, Field{
			Span:       f.Span,
			Name:       f.Name,
			Type:       b.fromSyntax(f.Type),
			Init:       b.convertExprOrNil(f.Init),
			Static:     f.Static,
			Readonly:   f.Readonly,
			Visibility: f.Visibility,
		})
	}

	for _, m := range d.Methods {
		cd.Methods = append(cd.Methods, b.convertFunc(m))
	}

	return cd
}

func (b *Builder) convertInterface(d *ast.InterfaceDecl) *InterfaceDecl {
	id, _ := b.reg.ResolveIdentifier(b.module, d.Name)

	out := &InterfaceDecl{Span: d.Span, Name: d.Name, Extends: d.Extends, Decl: id}

	for _, m := range d.Members {
		out.Members = append(out.Members, Field{Span: m.Span, Name: m.Name, Type: b.fromSyntax(m.Type), Readonly: m.Readonly})
	}

	return out
}

func (b *Builder) convertEnum(d *ast.EnumDecl) *EnumDecl {
	id, _ := b.reg.ResolveIdentifier(b.module, d.Name)
	out := &EnumDecl{Span: d.Span, Name: d.Name, Decl: id}

	for _, m := range d.Members {
		out.Members = append(out.Members, EnumMember{Name: m.Name, Init: b.convertExprOrNil(m.Init)})
	}

	return out
}

func (b *Builder) convertTypeAlias(d *ast.TypeAliasDecl) *TypeAliasDecl {
	target := b.fromSyntax(d.Type)
	_, structural := target.(*types.Object)
	id, _ := b.reg.ResolveIdentifier(b.module, d.Name)

	return &TypeAliasDecl{Span: d.Span, Name: d.Name, Target: target, Structural: structural, Decl: id}
}

func (b *Builder) convertTopVar(d *ast.VarDecl) *VarDecl {
	init := b.convertExprOrNil(d.Init)
	t := b.varType(d, init)
	b.declareLocal(d.Name, t)
	id, _ := b.reg.ResolveIdentifier(b.module, d.Name)

	return &VarDecl{Span: d.Span, Kind: d.Kind, Name: d.Name, Type: t, Init: init, Decl: id}
}

// varType resolves a VarDecl's type: the explicit annotation if present,
// else the already-converted initializer's inferred type.
func (b *Builder) varType(d *ast.VarDecl, init Expr) types.Type {
	if d.Type != nil {
		return b.fromSyntax(d.Type)
	}

	if init != nil {
		return init.ExprType()
	}

	return types.Unknown{}
}

func (b *Builder) convertExprOrNil(e ast.Expr) Expr {
	if e == nil {
		return nil
	}

	return b.convertExpr(e)
}
