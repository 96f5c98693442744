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
package backend

import (
	"fmt"
	"sort"
	"strings"
)

// Printer renders a CompilationUnit to source text. It is a total function
// of its input tree: the same tree always prints the same bytes (spec §5's
// "output text is a deterministic function of input text").
type Printer struct {
	b      strings.Builder
	indent int
}

// Print renders cu to a complete source file.
func Print(cu *CompilationUnit) string {
	p := &Printer{}
	p.printCompilationUnit(cu)
	return p.b.String()
}

// RenderExpr stringifies a single expression outside of any surrounding
// statement context, for callers assembling a composite fragment (e.g. one
// entry of a dictionary collection initializer) that isn't itself a full
// statement or compilation unit.
func RenderExpr(e Expr) string {
	p := &Printer{}
	return p.renderExpr(e, 0)
}

func (p *Printer) printCompilationUnit(cu *CompilationUnit) {
	for _, line := range cu.LeadingComment {
		p.writeLine("// " + line)
	}

	if len(cu.LeadingComment) > 0 {
		p.blank()
	}

	usings := append([]string(nil), cu.Usings...)
	sort.Strings(usings)

	for _, u := range usings {
		p.writeLine("using " + u + ";")
	}

	if len(usings) > 0 {
		p.blank()
	}

	p.writeLine("namespace " + cu.Namespace)
	p.writeLine("{")
	p.indent++

	for i, d := range cu.Decls {
		if i > 0 {
			p.blank()
		}

		p.printNamespaceMember(d)
	}

	p.indent--
	p.writeLine("}")
}

func (p *Printer) printNamespaceMember(m NamespaceMember) {
	switch v := m.(type) {
	case *TypeDecl:
		p.printTypeDecl(v)
	}
}

func (p *Printer) printTypeDecl(t *TypeDecl) {
	if t.LeadingComment != "" {
		p.writeLine("// " + t.LeadingComment)
	}

	header := strings.Join(t.Modifiers, " ")
	if header != "" {
		header += " "
	}

	header += keywordFor(t.Kind) + " " + t.Name + typeParamSuffix(t.TypeParams)

	if len(t.BaseTypes) > 0 {
		header += " : " + strings.Join(t.BaseTypes, ", ")
	}

	p.writeLine(header)
	p.writeLine("{")
	p.indent++

	if t.Kind == KindEnum {
		for i, m := range t.EnumMembers {
			line := m.Name
			if m.Init != nil {
				line += " = " + p.renderExpr(m.Init, 0)
			}

			if i < len(t.EnumMembers)-1 {
				line += ","
			}

			p.writeLine(line)
		}
	}

	for i, mem := range t.Members {
		if i > 0 {
			p.blank()
		}

		p.printMember(mem)
	}

	p.indent--
	p.writeLine("}")
}

func keywordFor(k TypeKind) string {
	switch k {
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	case KindStruct:
		return "struct"
	default:
		return "class"
	}
}

func typeParamSuffix(params []string) string {
	if len(params) == 0 {
		return ""
	}

	return "<" + strings.Join(params, ", ") + ">"
}

func (p *Printer) printMember(m Member) {
	switch v := m.(type) {
	case *Field:
		p.printField(v)
	case *Property:
		p.printProperty(v)
	case *Method:
		p.printMethod(v)
	case *NestedTypeMember:
		p.printTypeDecl(v.Decl)
	}
}

func (p *Printer) printField(f *Field) {
	if f.LeadingComment != "" {
		p.writeLine("// " + f.LeadingComment)
	}

	line := strings.Join(f.Modifiers, " ")
	if line != "" {
		line += " "
	}

	line += f.Type + " " + f.Name

	if f.Init != nil {
		line += " = " + p.renderExpr(f.Init, 0)
	}

	p.writeLine(line + ";")
}

func (p *Printer) printProperty(pr *Property) {
	if pr.LeadingComment != "" {
		p.writeLine("// " + pr.LeadingComment)
	}

	line := strings.Join(pr.Modifiers, " ")
	if line != "" {
		line += " "
	}

	line += pr.Type + " " + pr.Name + " { get; "
	if pr.HasSetter {
		line += "set; "
	}

	line += "}"

	if pr.Init != nil {
		line += " = " + p.renderExpr(pr.Init, 0) + ";"
	}

	p.writeLine(line)
}

func (p *Printer) printMethod(m *Method) {
	if m.LeadingComment != "" {
		p.writeLine("// " + m.LeadingComment)
	}

	line := strings.Join(m.Modifiers, " ")
	if line != "" {
		line += " "
	}

	if !m.IsConstructor {
		line += m.ReturnType + " "
	}

	line += m.Name + typeParamSuffix(m.TypeParams) + "(" + p.renderParams(m.Params) + ")"

	if m.IsConstructor && m.HasBaseCall {
		args := make([]string, len(m.BaseCall))
		for i, a := range m.BaseCall {
			args[i] = p.renderExpr(a, 0)
		}

		line += " : base(" + strings.Join(args, ", ") + ")"
	}

	if m.ExpressionBody != nil {
		p.writeLine(line + " => " + p.renderExpr(m.ExpressionBody, 0) + ";")
		return
	}

	if m.Body == nil {
		p.writeLine(line + ";")
		return
	}

	p.writeLine(line)
	p.writeLine("{")
	p.indent++

	for _, s := range m.Body {
		p.printStmt(s)
	}

	p.indent--
	p.writeLine("}")
}

func (p *Printer) renderParams(params []ParamDecl) string {
	parts := make([]string, len(params))

	for i, pd := range params {
		s := ""
		if pd.Modifier != "" {
			s += pd.Modifier + " "
		}

		s += pd.Type + " " + pd.Name

		if pd.Default != nil {
			s += " = " + p.renderExpr(pd.Default, 0)
		}

		parts[i] = s
	}

	return strings.Join(parts, ", ")
}

func (p *Printer) printStmt(s Stmt) {
	switch v := s.(type) {
	case *ExprStmt:
		p.writeLine(p.renderExpr(v.X, 0) + ";")
	case *VarDecl:
		line := v.Type + " " + v.Name
		if v.Init != nil {
			line += " = " + p.renderExpr(v.Init, 0)
		}

		p.writeLine(line + ";")
	case *Block:
		p.writeLine("{")
		p.indent++

		for _, inner := range v.Stmts {
			p.printStmt(inner)
		}

		p.indent--
		p.writeLine("}")
	case *If:
		p.writeLine("if (" + p.renderExpr(v.Cond, 0) + ")")
		p.printBraced(v.Then)

		if v.Else != nil {
			p.writeLine("else")
			p.printBraced(v.Else)
		}
	case *While:
		p.writeLine("while (" + p.renderExpr(v.Cond, 0) + ")")
		p.printBraced(v.Body)
	case *For:
		init, post := "", ""
		if v.Init != nil {
			init = p.renderForClause(v.Init)
		}

		if v.Post != nil {
			post = p.renderExpr(v.Post, 0)
		}

		cond := ""
		if v.Cond != nil {
			cond = p.renderExpr(v.Cond, 0)
		}

		p.writeLine("for (" + init + "; " + cond + "; " + post + ")")
		p.printBraced(v.Body)
	case *ForEach:
		p.writeLine("foreach (" + v.Type + " " + v.Name + " in " + p.renderExpr(v.Iterable, 0) + ")")
		p.printBraced(v.Body)
	case *Return:
		if v.Value == nil {
			p.writeLine("return;")
		} else {
			p.writeLine("return " + p.renderExpr(v.Value, 0) + ";")
		}
	case *Break:
		p.writeLine("break;")
	case *Continue:
		p.writeLine("continue;")
	case *Throw:
		if v.Value == nil {
			p.writeLine("throw;")
		} else {
			p.writeLine("throw " + p.renderExpr(v.Value, 0) + ";")
		}
	case *Try:
		p.writeLine("try")
		p.printBraced(v.Body)

		if v.Catch != nil {
			header := "catch"
			if v.Catch.Type != "" {
				header += " (" + v.Catch.Type
				if v.Catch.Name != "" {
					header += " " + v.Catch.Name
				}

				header += ")"
			}

			p.writeLine(header)
			p.printBraced(v.Catch.Body)
		}

		if v.Finally != nil {
			p.writeLine("finally")
			p.printBraced(v.Finally)
		}
	case *Switch:
		p.writeLine("switch (" + p.renderExpr(v.Disc, 0) + ")")
		p.writeLine("{")
		p.indent++

		for _, c := range v.Cases {
			if c.Test == nil {
				p.writeLine("default:")
			} else {
				p.writeLine("case " + p.renderExpr(c.Test, 0) + ":")
			}

			p.indent++

			for _, cs := range c.Body {
				p.printStmt(cs)
			}

			p.indent--
		}

		p.indent--
		p.writeLine("}")
	case *Labeled:
		p.writeLine(v.Label + ":")
		p.printStmt(v.Body)
	}
}

// renderForClause renders a for-loop's init statement inline (no trailing
// semicolon or indentation), since For prints it between parens.
func (p *Printer) renderForClause(s Stmt) string {
	switch v := s.(type) {
	case *VarDecl:
		line := v.Type + " " + v.Name
		if v.Init != nil {
			line += " = " + p.renderExpr(v.Init, 0)
		}

		return line
	case *ExprStmt:
		return p.renderExpr(v.X, 0)
	default:
		return ""
	}
}

func (p *Printer) printBraced(stmts []Stmt) {
	p.writeLine("{")
	p.indent++

	for _, s := range stmts {
		p.printStmt(s)
	}

	p.indent--
	p.writeLine("}")
}

// renderExpr stringifies e, wrapping it in parentheses if its own
// precedence is lower than the precedence of the context it is printed in
// (spec §4.7's "precedence-aware parenthesization").
func (p *Printer) renderExpr(e Expr, ctxPrecedence int) string {
	if e == nil {
		return ""
	}

	s := p.renderExprBare(e)

	if e.precedence() < ctxPrecedence {
		return "(" + s + ")"
	}

	return s
}

func (p *Printer) renderExprBare(e Expr) string {
	switch v := e.(type) {
	case Raw:
		return v.Text
	case Ident:
		return v.Name
	case This:
		return "this"
	case Base:
		return "base"
	case Bin:
		prec := v.precedence()
		left := p.renderExpr(v.Left, prec)
		right := p.renderExpr(v.Right, prec+1)

		return left + " " + v.Op + " " + right
	case Un:
		operand := p.renderExpr(v.Operand, precUnary)
		if v.Postfix {
			return operand + v.Op
		}

		return v.Op + operand
	case Cast:
		return "(" + v.Type + ")" + p.renderExpr(v.X, precUnary)
	case Member:
		op := "."
		if v.NullConditional {
			op = "?."
		}

		return p.renderExpr(v.Receiver, precPrimary) + op + v.Name
	case Index:
		return p.renderExpr(v.Receiver, precPrimary) + "[" + p.renderExpr(v.Index, 0) + "]"
	case Call:
		return p.renderExpr(v.Callee, precPrimary) + typeParamSuffix(v.TypeArgs) + "(" + p.renderExprList(v.Args) + ")"
	case New:
		s := "new " + v.Type + typeParamSuffix(v.TypeArgs) + "(" + p.renderExprList(v.Args) + ")"
		if v.HasInit {
			s += " { " + p.renderExprList(v.Initializer) + " }"
		}

		return s
	case NewArray:
		return "new " + v.ElemType + "[" + p.renderExpr(v.Size, 0) + "]"
	case Lambda:
		prefix := ""
		if v.Async {
			prefix = "async "
		}

		params := "(" + strings.Join(v.Params, ", ") + ")"

		if v.Block != nil {
			pad := strings.Repeat("    ", p.indent)

			inner := &Printer{indent: p.indent + 1}
			for _, s := range v.Block {
				inner.printStmt(s)
			}

			var sb strings.Builder
			sb.WriteString(prefix + params + " =>\n")
			sb.WriteString(pad + "{\n")
			sb.WriteString(inner.b.String())
			sb.WriteString(pad + "}")

			return sb.String()
		}

		return prefix + params + " => " + p.renderExpr(v.Body, precAssign)
	case Assign:
		return p.renderExpr(v.Target, precAssign+1) + " " + v.Op + " " + p.renderExpr(v.Value, precAssign)
	case Conditional:
		return p.renderExpr(v.Cond, precConditional+1) + " ? " +
			p.renderExpr(v.Then, precConditional) + " : " +
			p.renderExpr(v.Else, precConditional)
	default:
		return fmt.Sprintf("/* unsupported expr %T */", e)
	}
}

func (p *Printer) renderExprList(es []Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = p.renderExpr(e, 0)
	}

	return strings.Join(parts, ", ")
}

func (p *Printer) writeLine(s string) {
	if s != "" {
		p.b.WriteString(strings.Repeat("    ", p.indent))
		p.b.WriteString(s)
	}

	p.b.WriteString("\n")
}

func (p *Printer) blank() {
	p.b.WriteString("\n")
}
