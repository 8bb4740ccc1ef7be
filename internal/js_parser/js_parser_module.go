package js_parser

import (
	"github.com/routechunk/routechunk/internal/js_ast"
	"github.com/routechunk/routechunk/internal/js_lexer"
)

// parseImport parses every import-declaration form: default, named (with
// optional "as" renames and string-literal module names), namespace
// ("* as ns"), and the side-effect-only form ("import \"mod\"").
func (p *Parser) parseImport(loc js_ast.Loc) js_ast.Stmt {
	p.next() // "import"

	stmt := &js_ast.SImport{}

	if p.tokType() == js_lexer.TStringLiteral {
		stmt.Source = decodeStringLiteral(p.raw())
		p.next()
		stmt.SideEffectOnly = true
		p.consumeSemicolon()
		return js_ast.Stmt{Loc: loc, Data: stmt}
	}

	needsFrom := false

	if p.tokType() == js_lexer.TIdentifier && !p.isPunct("*") && !p.isPunct("{") {
		name := p.expectIdentName()
		nameLoc := p.loc()
		ref := p.declare(name, js_ast.SymbolImport)
		stmt.DefaultName = &js_ast.LocRef{Loc: nameLoc, Ref: ref}
		needsFrom = true
		if p.isPunct(",") {
			p.next()
		}
	}

	if p.isPunct("*") {
		p.next()
		p.expectIdentName() // "as"
		name := p.expectIdentName()
		nameLoc := p.loc()
		ref := p.declare(name, js_ast.SymbolImport)
		stmt.NamespaceRef = &js_ast.LocRef{Loc: nameLoc, Ref: ref}
		needsFrom = true
	} else if p.isPunct("{") {
		p.next()
		for !p.isPunct("}") {
			isStringAlias := p.tokType() == js_lexer.TStringLiteral
			alias := p.importExportName()
			localName := alias
			if p.isIdent("as") {
				p.next()
				localName = p.expectIdentName()
			}
			nameLoc := p.loc()
			ref := p.declare(localName, js_ast.SymbolImport)
			stmt.Items = append(stmt.Items, js_ast.ClauseItem{
				Alias:            alias,
				AliasIsStringLit: isStringAlias,
				Name:             js_ast.LocRef{Loc: nameLoc, Ref: ref},
			})
			if p.isPunct(",") {
				p.next()
			}
		}
		p.expectPunct("}")
		needsFrom = true
	}

	if needsFrom {
		p.expectIdentName() // "from"
	}
	stmt.Source = decodeStringLiteral(p.raw())
	p.next()
	p.consumeSemicolon()
	return js_ast.Stmt{Loc: loc, Data: stmt}
}

// importExportName parses one specifier-list name, which may be an
// identifier or (TS/Flow string-export extension) a string literal.
func (p *Parser) importExportName() string {
	if p.tokType() == js_lexer.TStringLiteral {
		name := decodeStringLiteral(p.raw())
		p.next()
		return name
	}
	return p.expectIdentName()
}

// parseExport parses every export-declaration form: default (expression,
// function, or class), named specifier lists (with optional re-export
// "from" source), "export * [as ns] from", and exported variable/function/
// class declarations.
func (p *Parser) parseExport(loc js_ast.Loc) js_ast.Stmt {
	p.next() // "export"

	if p.isIdent("default") {
		p.next()
		return p.parseExportDefault(loc)
	}

	if p.isPunct("*") {
		p.next()
		var alias *string
		if p.isIdent("as") {
			p.next()
			a := p.importExportName()
			alias = &a
		}
		p.expectIdentName() // "from"
		source := decodeStringLiteral(p.raw())
		p.next()
		p.consumeSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportStar{Alias: alias, Source: source}}
	}

	if p.isPunct("{") {
		p.next()
		clause := &js_ast.SExportClause{}
		for !p.isPunct("}") {
			localName := p.importExportName()
			exportedName := localName
			exportedIsStringLit := false
			if p.isIdent("as") {
				p.next()
				exportedIsStringLit = p.tokType() == js_lexer.TStringLiteral
				exportedName = p.importExportName()
			}
			// The local name resolves in the current (module) scope; for a
			// re-export ("from" present) the name belongs to the other
			// module, so the ref (invalid unless a same-named local happens
			// to exist) is not used and only the alias pairing matters.
			ref := p.resolve(localName)
			clause.Items = append(clause.Items, js_ast.ClauseItem{
				Alias:            exportedName,
				AliasIsStringLit: exportedIsStringLit,
				Name:             js_ast.LocRef{Loc: p.loc(), Ref: ref},
			})
			if p.isPunct(",") {
				p.next()
			}
		}
		p.expectPunct("}")
		if p.isIdent("from") {
			p.next()
			source := decodeStringLiteral(p.raw())
			p.next()
			clause.FromSource = &source
		}
		p.consumeSemicolon()
		return js_ast.Stmt{Loc: loc, Data: clause}
	}

	switch {
	case p.isIdent("const") || p.isIdent("let") || p.isIdent("var"):
		return p.parseVarDeclStmt(loc, true)
	case p.isIdent("function"):
		return p.parseFunctionDeclStmt(loc, false, true)
	case p.isIdent("async") && p.peekIsFunctionKeyword():
		p.next()
		return p.parseFunctionDeclStmt(loc, true, true)
	case p.isIdent("class"):
		return p.parseClassDeclStmt(loc, true)
	}

	p.fail("unexpected token after \"export\": %q", p.raw())
	panic("unreachable")
}

// parseExportDefault handles the three "export default ..." shapes: a named
// function/class declaration (which introduces its own binding), an
// anonymous function/class expression, or an arbitrary expression.
func (p *Parser) parseExportDefault(loc js_ast.Loc) js_ast.Stmt {
	if p.isIdent("function") || (p.isIdent("async") && p.peekIsFunctionKeyword()) {
		isAsync := false
		if p.isIdent("async") {
			p.next()
			isAsync = true
		}
		p.next() // "function"
		isGenerator := false
		if p.isPunct("*") {
			p.next()
			isGenerator = true
		}
		var name *js_ast.LocRef
		if p.tokType() == js_lexer.TIdentifier {
			nm := p.raw()
			nameLoc := p.loc()
			ref := p.declare(nm, js_ast.SymbolHoistedFunction)
			p.next()
			name = &js_ast.LocRef{Loc: nameLoc, Ref: ref}
		}
		fn := p.parseFnTail(isAsync, isGenerator, false)
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportDefault{Fn: &fn, Name: name}}
	}

	if p.isIdent("class") {
		p.next()
		var name *js_ast.LocRef
		if p.tokType() == js_lexer.TIdentifier {
			nm := p.raw()
			nameLoc := p.loc()
			ref := p.declare(nm, js_ast.SymbolClass)
			p.next()
			name = &js_ast.LocRef{Loc: nameLoc, Ref: ref}
		}
		class := p.parseClassTail()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportDefault{Class: &class, Name: name}}
	}

	value := p.parseExpr(LComma)
	p.consumeSemicolon()
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportDefault{Value: value}}
}
