package js_parser

import (
	"strings"

	"github.com/routechunk/routechunk/internal/js_ast"
	"github.com/routechunk/routechunk/internal/js_lexer"
)

// parseStmt parses one statement. topLevel is true only while parsing the
// module body directly, which is where import/export declarations are
// legal and where each statement gets its own topLevelIndex.
func (p *Parser) parseStmt(topLevel bool) js_ast.Stmt {
	loc := p.loc()

	if p.tokType() == js_lexer.TIdentifier {
		switch p.raw() {
		case "import":
			if topLevel {
				return p.parseImport(loc)
			}
		case "export":
			if topLevel {
				return p.parseExport(loc)
			}
		case "const", "let", "var":
			return p.parseVarDeclStmt(loc, false)
		case "function":
			return p.parseFunctionDeclStmt(loc, false, false)
		case "async":
			if p.peekIsFunctionKeyword() {
				p.next()
				return p.parseFunctionDeclStmt(loc, true, false)
			}
		case "class":
			return p.parseClassDeclStmt(loc, false)
		case "return":
			p.next()
			var value *js_ast.Expr
			if !p.isPunct(";") && !p.isPunct("}") && !p.newlineBefore() && p.tokType() != js_lexer.TEndOfFile {
				v := p.parseExpr(LComma)
				value = &v
			}
			p.consumeSemicolon()
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SReturn{Value: value}}
		case "if":
			return p.parseIf(loc)
		case "for":
			return p.parseFor(loc)
		case "while":
			return p.parseWhile(loc)
		case "do":
			return p.parseDoWhile(loc)
		case "throw":
			p.next()
			v := p.parseExpr(LComma)
			p.consumeSemicolon()
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SThrow{Value: v}}
		case "try":
			return p.parseTry(loc)
		case "switch":
			return p.parseSwitch(loc)
		case "break":
			p.next()
			lbl := p.maybeLabelRef()
			p.consumeSemicolon()
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SBreak{Label: lbl}}
		case "continue":
			p.next()
			lbl := p.maybeLabelRef()
			p.consumeSemicolon()
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SContinue{Label: lbl}}
		case "debugger":
			p.next()
			p.consumeSemicolon()
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SDebugger{}}
		case "type":
			if p.isOpaqueTypeDecl() {
				return p.parseOpaqueType(loc, false)
			}
		case "interface", "enum", "namespace", "declare", "abstract":
			return p.parseOpaqueType(loc, false)
		}

		// Labeled statement: `name: stmt`. One token of lookahead decides
		// between a label and the start of an expression statement.
		name := p.raw()
		identLoc := p.lexer.Token.Start
		p.next()
		if p.isPunct(":") {
			p.next()
			body := p.parseStmt(false)
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SLabel{Name: name, Stmt: body}}
		}
		return p.finishExprStmtFromIdent(loc, name, identLoc)
	}

	if p.isPunct("{") {
		return p.parseBlock(loc)
	}
	if p.isPunct(";") {
		p.next()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SEmpty{}}
	}

	// Expression statement
	v := p.parseExpr(LLowest)
	p.consumeSemicolon()
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: v}}
}

// finishExprStmtFromIdent re-enters expression parsing when an identifier
// turned out not to start a label; the identifier's own Expr has already
// been tokenized past, so we resolve it directly and continue the Pratt
// parser from there via parseSuffix.
func (p *Parser) finishExprStmtFromIdent(loc js_ast.Loc, name string, identLoc int32) js_ast.Stmt {
	left := p.identifierExpr(name, js_ast.Loc{Start: identLoc})
	left = p.parseSuffix(left, LLowest)
	left = p.parseBinaryAndAssign(left, LLowest)
	p.consumeSemicolon()
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: left}}
}

func (p *Parser) maybeLabelRef() *string {
	if p.tokType() == js_lexer.TIdentifier && !p.newlineBefore() {
		name := p.raw()
		p.next()
		return &name
	}
	return nil
}

func (p *Parser) peekIsFunctionKeyword() bool {
	// crude one-token lookahead: "async" is only a function-decl modifier
	// when immediately followed by "function" on the same logical statement
	save := *p.lexer
	p.next()
	isFn := p.isIdent("function")
	*p.lexer = save
	return isFn
}

func (p *Parser) parseBlock(loc js_ast.Loc) js_ast.Stmt {
	p.expectPunct("{")
	p.pushScope(js_ast.ScopeBlock)
	var stmts []js_ast.Stmt
	for !p.isPunct("}") && p.tokType() != js_lexer.TEndOfFile {
		stmts = append(stmts, p.parseStmt(false))
	}
	p.popScope()
	p.expectPunct("}")
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SBlock{Stmts: stmts}}
}

func (p *Parser) parseIf(loc js_ast.Loc) js_ast.Stmt {
	p.next()
	p.expectPunct("(")
	test := p.parseExpr(LLowest)
	p.expectPunct(")")
	yes := p.parseStmt(false)
	var no *js_ast.Stmt
	if p.isIdent("else") {
		p.next()
		n := p.parseStmt(false)
		no = &n
	}
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SIf{Test: test, Yes: yes, No: no}}
}

func (p *Parser) parseWhile(loc js_ast.Loc) js_ast.Stmt {
	p.next()
	p.expectPunct("(")
	test := p.parseExpr(LLowest)
	p.expectPunct(")")
	body := p.parseStmt(false)
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SWhile{Test: test, Body: body}}
}

func (p *Parser) parseDoWhile(loc js_ast.Loc) js_ast.Stmt {
	p.next()
	body := p.parseStmt(false)
	if !p.isIdent("while") {
		p.fail("expected \"while\" but found %q", p.raw())
	}
	p.next()
	p.expectPunct("(")
	test := p.parseExpr(LLowest)
	p.expectPunct(")")
	p.consumeSemicolon()
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SDoWhile{Body: body, Test: test}}
}

func (p *Parser) parseFor(loc js_ast.Loc) js_ast.Stmt {
	p.next()
	p.expectPunct("(")
	p.pushScope(js_ast.ScopeFor)

	var init *js_ast.Stmt
	if !p.isPunct(";") {
		initLoc := p.loc()
		if p.tokType() == js_lexer.TIdentifier && (p.raw() == "const" || p.raw() == "let" || p.raw() == "var") {
			decl := p.parseVarDeclBare(initLoc)
			if p.isIdent("of") || p.isIdent("in") {
				isOf := p.isIdent("of")
				p.next()
				declStmt := js_ast.Stmt{Loc: initLoc, Data: decl}
				expr := p.parseExpr(LComma)
				p.expectPunct(")")
				body := p.parseStmt(false)
				p.popScope()
				if isOf {
					return js_ast.Stmt{Loc: loc, Data: &js_ast.SForOf{Init: declStmt, Expr: expr, Body: body}}
				}
				return js_ast.Stmt{Loc: loc, Data: &js_ast.SForIn{Init: declStmt, Expr: expr, Body: body}}
			}
			p.consumeSemicolon()
			s := js_ast.Stmt{Loc: initLoc, Data: decl}
			init = &s
		} else {
			expr := p.parseExpr(LLowest)
			if p.isIdent("of") || p.isIdent("in") {
				isOf := p.isIdent("of")
				p.next()
				declStmt := js_ast.Stmt{Loc: initLoc, Data: &js_ast.SExpr{Value: expr}}
				rhs := p.parseExpr(LComma)
				p.expectPunct(")")
				body := p.parseStmt(false)
				p.popScope()
				if isOf {
					return js_ast.Stmt{Loc: loc, Data: &js_ast.SForOf{Init: declStmt, Expr: rhs, Body: body}}
				}
				return js_ast.Stmt{Loc: loc, Data: &js_ast.SForIn{Init: declStmt, Expr: rhs, Body: body}}
			}
			p.consumeSemicolon()
			s := js_ast.Stmt{Loc: initLoc, Data: &js_ast.SExpr{Value: expr}}
			init = &s
		}
	} else {
		p.next()
	}

	var test *js_ast.Expr
	if !p.isPunct(";") {
		t := p.parseExpr(LLowest)
		test = &t
	}
	p.expectPunct(";")

	var update *js_ast.Expr
	if !p.isPunct(")") {
		u := p.parseExpr(LLowest)
		update = &u
	}
	p.expectPunct(")")

	body := p.parseStmt(false)
	p.popScope()
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SFor{Init: init, Test: test, Update: update, Body: body}}
}

func (p *Parser) parseTry(loc js_ast.Loc) js_ast.Stmt {
	p.next()
	p.expectPunct("{")
	p.pushScope(js_ast.ScopeBlock)
	var body []js_ast.Stmt
	for !p.isPunct("}") {
		body = append(body, p.parseStmt(false))
	}
	p.popScope()
	p.expectPunct("}")

	var catch *js_ast.Catch
	if p.isIdent("catch") {
		p.next()
		p.pushScope(js_ast.ScopeCatch)
		var binding *js_ast.Binding
		if p.isPunct("(") {
			p.next()
			b := p.parseBindingTarget(js_ast.SymbolOther)
			binding = &b
			p.expectPunct(")")
		}
		p.expectPunct("{")
		var cbody []js_ast.Stmt
		for !p.isPunct("}") {
			cbody = append(cbody, p.parseStmt(false))
		}
		p.expectPunct("}")
		p.popScope()
		catch = &js_ast.Catch{Binding: binding, Body: cbody}
	}

	var fin *[]js_ast.Stmt
	if p.isIdent("finally") {
		p.next()
		p.expectPunct("{")
		p.pushScope(js_ast.ScopeBlock)
		var f []js_ast.Stmt
		for !p.isPunct("}") {
			f = append(f, p.parseStmt(false))
		}
		p.popScope()
		p.expectPunct("}")
		fin = &f
	}

	return js_ast.Stmt{Loc: loc, Data: &js_ast.STry{Body: body, Catch: catch, Finally: fin}}
}

func (p *Parser) parseSwitch(loc js_ast.Loc) js_ast.Stmt {
	p.next()
	p.expectPunct("(")
	test := p.parseExpr(LLowest)
	p.expectPunct(")")
	p.expectPunct("{")
	p.pushScope(js_ast.ScopeBlock)
	var cases []js_ast.Case
	for !p.isPunct("}") {
		var c js_ast.Case
		if p.isIdent("case") {
			p.next()
			t := p.parseExpr(LLowest)
			c.Test = &t
		} else if p.isIdent("default") {
			p.next()
		} else {
			p.fail("expected \"case\" or \"default\" but found %q", p.raw())
		}
		p.expectPunct(":")
		for !p.isIdent("case") && !p.isIdent("default") && !p.isPunct("}") {
			c.Body = append(c.Body, p.parseStmt(false))
		}
		cases = append(cases, c)
	}
	p.popScope()
	p.expectPunct("}")
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SSwitch{Test: test, Cases: cases}}
}

// ---------------------------------------------------------------------------
// opaque TypeScript declarations (type/interface/enum/namespace/declare)

func (p *Parser) isOpaqueTypeDecl() bool {
	save := *p.lexer
	p.next()
	ok := p.tokType() == js_lexer.TIdentifier
	*p.lexer = save
	return ok
}

// parseOpaqueType consumes a type-only top-level declaration verbatim up to
// its balancing "}" (for type/interface bodies) or terminating ";"/newline
// (for `type X = ...;` aliases), per spec §1's type-level non-goal: the
// analyzer never needs to see inside it, only round-trip it.
func (p *Parser) parseOpaqueType(loc js_ast.Loc, isExport bool) js_ast.Stmt {
	start := loc.Start
	depth := 0
	for {
		if p.isPunct("{") {
			depth++
			p.next()
			continue
		}
		if p.isPunct("}") {
			if depth == 0 {
				break
			}
			depth--
			p.next()
			if depth == 0 {
				break
			}
			continue
		}
		if depth == 0 && (p.isPunct(";") || p.newlineBefore() || p.tokType() == js_lexer.TEndOfFile) {
			break
		}
		if p.tokType() == js_lexer.TEndOfFile {
			break
		}
		p.next()
	}
	end := p.lexer.Token.Start
	if p.isPunct(";") {
		p.next()
	}
	raw := strings.TrimSpace(p.source[start:end])
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SOpaqueType{Raw: raw, IsExport: isExport}}
}
