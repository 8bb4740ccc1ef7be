// Package js_printer re-serializes a js_ast.Program back into source text.
//
// Mirrors esbuild's internal/js_printer in spirit — one recursive printer
// walking the AST and writing to a strings.Builder — but with esbuild's
// minification, source-map, and target-lowering machinery removed: this
// printer's only job is to round-trip a (possibly pruned) AST into readable
// source for a chunk or main output, per spec §1's Non-goals (no
// minification, no source maps).
package js_printer

import (
	"fmt"
	"strings"

	"github.com/routechunk/routechunk/internal/js_ast"
)

// Options controls output formatting. It is small and deliberately stable in
// shape because a serialized Options value is folded into the Memoization
// Layer's composite cache keys (spec §4.2).
type Options struct {
	Indent string // defaults to two spaces when empty
}

// CacheKey renders Options deterministically for use as a cache-key suffix.
func (o Options) CacheKey() string {
	indent := o.Indent
	if indent == "" {
		indent = "  "
	}
	return fmt.Sprintf("indent=%q", indent)
}

type printer struct {
	program *js_ast.Program
	opts    Options
	sb      strings.Builder
	depth   int
}

// Print serializes every statement in program.Body, in order, one per line.
func Print(program *js_ast.Program, opts Options) string {
	p := &printer{program: program, opts: opts}
	for _, stmt := range program.Body {
		p.printStmt(stmt)
	}
	return p.sb.String()
}

// PrintStmts serializes an explicit statement list instead of a whole
// program's body; used by emitters that build a pruned statement slice
// without constructing a full replacement Program.
func PrintStmts(program *js_ast.Program, stmts []js_ast.Stmt, opts Options) string {
	p := &printer{program: program, opts: opts}
	for _, stmt := range stmts {
		p.printStmt(stmt)
	}
	return p.sb.String()
}

func (p *printer) indentStr() string {
	if p.opts.Indent == "" {
		return strings.Repeat("  ", p.depth)
	}
	return strings.Repeat(p.opts.Indent, p.depth)
}

func (p *printer) writeIndent() { p.sb.WriteString(p.indentStr()) }
func (p *printer) write(s string) { p.sb.WriteString(s) }
func (p *printer) newline()       { p.sb.WriteByte('\n') }

func (p *printer) symbolName(ref js_ast.Ref) string {
	if !ref.IsValid() {
		return "<unresolved>"
	}
	return p.program.SymbolFor(ref).OriginalName
}

// ---------------------------------------------------------------------------
// statements

func (p *printer) printStmt(stmt js_ast.Stmt) {
	p.writeIndent()
	p.printStmtData(stmt.Data)
}

func (p *printer) printStmtData(data js_ast.S) {
	switch s := data.(type) {
	case *js_ast.SImport:
		p.printImport(s)

	case *js_ast.SExportClause:
		p.printExportClause(s)

	case *js_ast.SExportStar:
		p.write("export *")
		if s.Alias != nil {
			p.write(" as ")
			p.write(*s.Alias)
		}
		p.write(" from ")
		p.printQuoted(s.Source)
		p.write(";")
		p.newline()

	case *js_ast.SExportDefault:
		p.printExportDefault(s)

	case *js_ast.SVarDecl:
		p.printVarDecl(s)

	case *js_ast.SFunctionDecl:
		if s.IsExport {
			p.write("export ")
		}
		p.write("function ")
		if s.Fn.IsGenerator {
			p.write("*")
		}
		p.write(p.symbolName(s.Name.Ref))
		p.printParamsAndBody(s.Fn)
		p.newline()

	case *js_ast.SClassDecl:
		if s.IsExport {
			p.write("export ")
		}
		p.write("class ")
		p.write(p.symbolName(s.Name.Ref))
		p.printClassTail(s.Class)
		p.newline()

	case *js_ast.SExpr:
		p.printExpr(s.Value, lLowest)
		p.write(";")
		p.newline()

	case *js_ast.SReturn:
		p.write("return")
		if s.Value != nil {
			p.write(" ")
			p.printExpr(*s.Value, lLowest)
		}
		p.write(";")
		p.newline()

	case *js_ast.SIf:
		p.write("if (")
		p.printExpr(s.Test, lLowest)
		p.write(") ")
		p.printBody(s.Yes)
		if s.No != nil {
			p.writeIndent()
			p.write("else ")
			p.printBody(*s.No)
		}

	case *js_ast.SBlock:
		p.printBlock(s.Stmts)
		p.newline()

	case *js_ast.SFor:
		p.write("for (")
		if s.Init != nil {
			p.printForClause(*s.Init)
		}
		p.write("; ")
		if s.Test != nil {
			p.printExpr(*s.Test, lLowest)
		}
		p.write("; ")
		if s.Update != nil {
			p.printExpr(*s.Update, lLowest)
		}
		p.write(") ")
		p.printBody(s.Body)

	case *js_ast.SForIn:
		p.write("for (")
		p.printForClause(s.Init)
		p.write(" in ")
		p.printExpr(s.Expr, lLowest)
		p.write(") ")
		p.printBody(s.Body)

	case *js_ast.SForOf:
		p.write("for ")
		if s.IsAwait {
			p.write("await ")
		}
		p.write("(")
		p.printForClause(s.Init)
		p.write(" of ")
		p.printExpr(s.Expr, lLowest)
		p.write(") ")
		p.printBody(s.Body)

	case *js_ast.SWhile:
		p.write("while (")
		p.printExpr(s.Test, lLowest)
		p.write(") ")
		p.printBody(s.Body)

	case *js_ast.SDoWhile:
		p.write("do ")
		p.printBody(s.Body)
		p.writeIndent()
		p.write("while (")
		p.printExpr(s.Test, lLowest)
		p.write(");")
		p.newline()

	case *js_ast.SThrow:
		p.write("throw ")
		p.printExpr(s.Value, lLowest)
		p.write(";")
		p.newline()

	case *js_ast.STry:
		p.write("try ")
		p.printBlock(s.Body)
		if s.Catch != nil {
			p.write(" catch ")
			if s.Catch.Binding != nil {
				p.write("(")
				p.printBinding(*s.Catch.Binding)
				p.write(") ")
			}
			p.printBlock(s.Catch.Body)
		}
		if s.Finally != nil {
			p.write(" finally ")
			p.printBlock(*s.Finally)
		}
		p.newline()

	case *js_ast.SSwitch:
		p.write("switch (")
		p.printExpr(s.Test, lLowest)
		p.write(") {")
		p.newline()
		p.depth++
		for _, c := range s.Cases {
			p.writeIndent()
			if c.Test != nil {
				p.write("case ")
				p.printExpr(*c.Test, lLowest)
			} else {
				p.write("default")
			}
			p.write(":")
			p.newline()
			p.depth++
			for _, cs := range c.Body {
				p.printStmt(cs)
			}
			p.depth--
		}
		p.depth--
		p.writeIndent()
		p.write("}")
		p.newline()

	case *js_ast.SBreak:
		p.write("break")
		if s.Label != nil {
			p.write(" " + *s.Label)
		}
		p.write(";")
		p.newline()

	case *js_ast.SContinue:
		p.write("continue")
		if s.Label != nil {
			p.write(" " + *s.Label)
		}
		p.write(";")
		p.newline()

	case *js_ast.SLabel:
		p.write(s.Name)
		p.write(": ")
		p.printStmtData(s.Stmt.Data)

	case *js_ast.SEmpty:
		p.write(";")
		p.newline()

	case *js_ast.SDebugger:
		p.write("debugger;")
		p.newline()

	case *js_ast.SOpaqueType:
		if s.IsExport {
			p.write("export ")
		}
		p.write(s.Raw)
		p.write(";")
		p.newline()

	default:
		panic(fmt.Sprintf("js_printer: unhandled statement type %T", data))
	}
}

// printForClause prints a for-loop's init/left-hand clause without its
// trailing ";"/keyword, reusing the var-decl and expression printers.
func (p *printer) printForClause(stmt js_ast.Stmt) {
	switch s := stmt.Data.(type) {
	case *js_ast.SVarDecl:
		p.printVarDeclBare(s)
	case *js_ast.SExpr:
		p.printExpr(s.Value, lLowest)
	default:
		panic(fmt.Sprintf("js_printer: unhandled for-clause type %T", stmt.Data))
	}
}

func (p *printer) printBody(stmt js_ast.Stmt) {
	if block, ok := stmt.Data.(*js_ast.SBlock); ok {
		p.printBlock(block.Stmts)
		p.newline()
		return
	}
	p.newline()
	p.depth++
	p.printStmt(stmt)
	p.depth--
}

func (p *printer) printBlock(stmts []js_ast.Stmt) {
	p.write("{")
	p.newline()
	p.depth++
	for _, s := range stmts {
		p.printStmt(s)
	}
	p.depth--
	p.writeIndent()
	p.write("}")
}

func (p *printer) printImport(s *js_ast.SImport) {
	p.write("import ")
	if s.SideEffectOnly {
		p.printQuoted(s.Source)
		p.write(";")
		p.newline()
		return
	}

	wroteClause := false
	if s.DefaultName != nil {
		p.write(p.symbolName(s.DefaultName.Ref))
		wroteClause = true
	}
	if s.NamespaceRef != nil {
		if wroteClause {
			p.write(", ")
		}
		p.write("* as ")
		p.write(p.symbolName(s.NamespaceRef.Ref))
		wroteClause = true
	} else if len(s.Items) > 0 || s.DefaultName == nil {
		if wroteClause {
			p.write(", ")
		}
		p.printClauseItems(s.Items)
		wroteClause = true
	}
	if wroteClause {
		p.write(" from ")
	}
	p.printQuoted(s.Source)
	p.write(";")
	p.newline()
}

func (p *printer) printClauseItems(items []js_ast.ClauseItem) {
	p.write("{")
	for i, item := range items {
		if i > 0 {
			p.write(", ")
		}
		if item.AliasIsStringLit {
			p.printQuoted(item.Alias)
		} else {
			p.write(item.Alias)
		}
		local := p.symbolName(item.Name.Ref)
		if local != item.Alias || item.AliasIsStringLit {
			p.write(" as ")
			p.write(local)
		}
	}
	p.write("}")
}

func (p *printer) printExportClause(s *js_ast.SExportClause) {
	p.write("export {")
	for i, item := range s.Items {
		if i > 0 {
			p.write(", ")
		}
		local := p.symbolName(item.Name.Ref)
		if s.FromSource != nil {
			// Re-export: Name.Ref never resolved to a local binding, so the
			// "local" half is whatever the source wrote before "as".
			local = item.Alias
		}
		p.write(local)
		if item.AliasIsStringLit {
			p.write(" as ")
			p.printQuoted(item.Alias)
		} else if local != item.Alias {
			p.write(" as ")
			p.write(item.Alias)
		}
	}
	p.write("}")
	if s.FromSource != nil {
		p.write(" from ")
		p.printQuoted(*s.FromSource)
	}
	p.write(";")
	p.newline()
}

func (p *printer) printExportDefault(s *js_ast.SExportDefault) {
	p.write("export default ")
	switch {
	case s.Fn != nil:
		p.write("function ")
		if s.Fn.IsGenerator {
			p.write("*")
		}
		if s.Name != nil {
			p.write(p.symbolName(s.Name.Ref))
		}
		p.printParamsAndBody(*s.Fn)
		p.newline()
	case s.Class != nil:
		p.write("class ")
		if s.Name != nil {
			p.write(p.symbolName(s.Name.Ref))
		}
		p.printClassTail(*s.Class)
		p.newline()
	default:
		p.printExpr(s.Value, lComma)
		p.write(";")
		p.newline()
	}
}

func (p *printer) printVarDecl(s *js_ast.SVarDecl) {
	if s.IsExport {
		p.write("export ")
	}
	p.printVarDeclBare(s)
	p.write(";")
	p.newline()
}

func (p *printer) printVarDeclBare(s *js_ast.SVarDecl) {
	switch s.Kind {
	case js_ast.VarLet:
		p.write("let ")
	case js_ast.VarConst:
		p.write("const ")
	default:
		p.write("var ")
	}
	for i, d := range s.Decls {
		if i > 0 {
			p.write(", ")
		}
		p.printBinding(d.Binding)
		if d.Value != nil {
			p.write(" = ")
			p.printExpr(*d.Value, lAssign)
		}
	}
}

// ---------------------------------------------------------------------------
// bindings

func (p *printer) printBinding(b js_ast.Binding) {
	switch d := b.Data.(type) {
	case *js_ast.BIdentifier:
		p.write(p.symbolName(d.Ref))

	case *js_ast.BArray:
		p.write("[")
		for i, item := range d.Items {
			if i > 0 {
				p.write(", ")
			}
			if item.IsSpread {
				p.write("...")
			}
			p.printBinding(item.Binding)
			if item.DefaultValue != nil {
				p.write(" = ")
				p.printExpr(*item.DefaultValue, lAssign)
			}
		}
		p.write("]")

	case *js_ast.BObject:
		p.write("{")
		for i, prop := range d.Properties {
			if i > 0 {
				p.write(", ")
			}
			if prop.IsSpread {
				p.write("...")
				p.printBinding(prop.Value)
				continue
			}
			p.printPropertyKey(prop.Key)
			if id, ok := prop.Value.Data.(*js_ast.BIdentifier); !ok || p.symbolName(id.Ref) != prop.Key.Name || prop.Key.IsComputed {
				p.write(": ")
				p.printBinding(prop.Value)
			}
			if prop.DefaultValue != nil {
				p.write(" = ")
				p.printExpr(*prop.DefaultValue, lAssign)
			}
		}
		p.write("}")

	default:
		panic(fmt.Sprintf("js_printer: unhandled binding type %T", b.Data))
	}
}

func (p *printer) printPropertyKey(key js_ast.PropertyKey) {
	if key.IsComputed {
		p.write("[")
		p.printExpr(*key.Computed, lComma)
		p.write("]")
		return
	}
	p.write(key.Name)
}

// ---------------------------------------------------------------------------
// functions & classes

func (p *printer) printParamsAndBody(fn js_ast.Fn) {
	p.write("(")
	p.printArgs(fn.Args)
	p.write(") ")
	p.printBlock(fn.Body)
}

func (p *printer) printArgs(args []js_ast.Arg) {
	for i, a := range args {
		if i > 0 {
			p.write(", ")
		}
		if a.IsRest {
			p.write("...")
		}
		p.printBinding(a.Binding)
		if a.DefaultValue != nil {
			p.write(" = ")
			p.printExpr(*a.DefaultValue, lAssign)
		}
	}
}

func (p *printer) printClassTail(c js_ast.Class) {
	if c.Extends != nil {
		p.write(" extends ")
		p.printExpr(*c.Extends, lCall)
	}
	p.write(" {")
	p.newline()
	p.depth++
	for _, member := range c.Properties {
		p.writeIndent()
		if member.IsStatic {
			p.write("static ")
		}
		if member.Fn != nil && member.Fn.IsAsync {
			p.write("async ")
		}
		if member.Fn != nil && member.Fn.IsGenerator {
			p.write("*")
		}
		switch member.Kind {
		case js_ast.ClassGetter:
			p.write("get ")
		case js_ast.ClassSetter:
			p.write("set ")
		}
		p.printPropertyKey(member.Key)
		if member.Fn != nil {
			p.printParamsAndBody(*member.Fn)
			p.newline()
		} else {
			if member.Value != nil {
				p.write(" = ")
				p.printExpr(*member.Value, lAssign)
			}
			p.write(";")
			p.newline()
		}
	}
	p.depth--
	p.writeIndent()
	p.write("}")
}

func (p *printer) printQuoted(s string) {
	p.write("\"")
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			p.write("\\\"")
		case '\\':
			p.write("\\\\")
		case '\n':
			p.write("\\n")
		default:
			p.sb.WriteByte(c)
		}
	}
	p.write("\"")
}
