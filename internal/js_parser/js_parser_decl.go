package js_parser

import (
	"github.com/routechunk/routechunk/internal/js_ast"
	"github.com/routechunk/routechunk/internal/js_lexer"
)

func varKindFromKeyword(kw string) js_ast.VarKind {
	switch kw {
	case "let":
		return js_ast.VarLet
	case "const":
		return js_ast.VarConst
	default:
		return js_ast.VarVar
	}
}

// parseVarDeclBare parses "const|let|var decl, decl, ..." without consuming
// a trailing semicolon, so it can be shared between statement position and
// a for-loop head.
func (p *Parser) parseVarDeclBare(loc js_ast.Loc) *js_ast.SVarDecl {
	kind := varKindFromKeyword(p.raw())
	p.next()

	var decls []js_ast.Decl
	for {
		binding := p.parseBindingTarget(js_ast.SymbolOther)
		p.skipOptionalTypeAnnotation()
		var value *js_ast.Expr
		if p.isPunct("=") {
			p.next()
			v := p.parseExpr(LComma)
			value = &v
		}
		decls = append(decls, js_ast.Decl{Binding: binding, Value: value})
		if p.isPunct(",") {
			p.next()
			continue
		}
		break
	}
	return &js_ast.SVarDecl{Kind: kind, Decls: decls}
}

func (p *Parser) parseVarDeclStmt(loc js_ast.Loc, isExport bool) js_ast.Stmt {
	decl := p.parseVarDeclBare(loc)
	decl.IsExport = isExport
	p.consumeSemicolon()
	return js_ast.Stmt{Loc: loc, Data: decl}
}

// parseBindingTarget parses an identifier, array, or object binding
// pattern and declares every identifier it introduces in the current scope.
func (p *Parser) parseBindingTarget(kind js_ast.SymbolKind) js_ast.Binding {
	loc := p.loc()
	if p.isPunct("[") {
		p.next()
		var items []js_ast.BArrayItem
		for !p.isPunct("]") {
			if p.isPunct(",") {
				p.next()
				continue
			}
			isSpread := false
			if p.isPunct("...") {
				p.next()
				isSpread = true
			}
			b := p.parseBindingTarget(kind)
			var def *js_ast.Expr
			if p.isPunct("=") {
				p.next()
				v := p.parseExpr(LComma)
				def = &v
			}
			items = append(items, js_ast.BArrayItem{Binding: b, DefaultValue: def, IsSpread: isSpread})
			if p.isPunct(",") {
				p.next()
			}
		}
		p.expectPunct("]")
		return js_ast.Binding{Loc: loc, Data: &js_ast.BArray{Items: items}}
	}

	if p.isPunct("{") {
		p.next()
		var props []js_ast.BObjectProperty
		for !p.isPunct("}") {
			if p.isPunct("...") {
				p.next()
				b := p.parseBindingTarget(kind)
				props = append(props, js_ast.BObjectProperty{Value: b, IsSpread: true})
				if p.isPunct(",") {
					p.next()
				}
				continue
			}
			key := p.parsePropertyKey()
			var value js_ast.Binding
			if p.isPunct(":") {
				p.next()
				value = p.parseBindingTarget(kind)
			} else {
				// shorthand { a } or { a = default }
				value = js_ast.Binding{Loc: p.loc(), Data: &js_ast.BIdentifier{Ref: p.declare(key.Name, kind)}}
			}
			var def *js_ast.Expr
			if p.isPunct("=") {
				p.next()
				v := p.parseExpr(LComma)
				def = &v
			}
			props = append(props, js_ast.BObjectProperty{Key: key, Value: value, DefaultValue: def})
			if p.isPunct(",") {
				p.next()
			}
		}
		p.expectPunct("}")
		return js_ast.Binding{Loc: loc, Data: &js_ast.BObject{Properties: props}}
	}

	name := p.expectIdentName()
	ref := p.declare(name, kind)
	return js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: ref}}
}

func (p *Parser) parsePropertyKey() js_ast.PropertyKey {
	if p.isPunct("[") {
		p.next()
		e := p.parseExpr(LComma)
		p.expectPunct("]")
		return js_ast.PropertyKey{IsComputed: true, Computed: &e}
	}
	if p.tokType() == js_lexer.TStringLiteral {
		name := decodeStringLiteral(p.raw())
		p.next()
		return js_ast.PropertyKey{Name: name}
	}
	if p.tokType() == js_lexer.TNumericLiteral {
		name := p.raw()
		p.next()
		return js_ast.PropertyKey{Name: name}
	}
	name := p.expectIdentName()
	return js_ast.PropertyKey{Name: name}
}

// ---------------------------------------------------------------------------
// functions

func (p *Parser) parseFunctionDeclStmt(loc js_ast.Loc, isAsync bool, isExport bool) js_ast.Stmt {
	p.next() // "function"
	isGenerator := false
	if p.isPunct("*") {
		p.next()
		isGenerator = true
	}
	name := p.expectIdentName()
	nameLoc := p.loc()
	ref := p.declare(name, js_ast.SymbolHoistedFunction)
	fn := p.parseFnTail(isAsync, isGenerator, false)
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SFunctionDecl{Name: js_ast.LocRef{Loc: nameLoc, Ref: ref}, Fn: fn, IsExport: isExport}}
}

// parseFnTail parses "(params) { body }", with an optional type-parameter
// list before the params and an optional return-type annotation after them;
// isArrow is only recorded on the returned Fn (arrow functions are parsed by
// finishArrowBody instead). It assumes the function keyword/name/generator
// star have already been consumed.
func (p *Parser) parseFnTail(isAsync bool, isGenerator bool, isArrow bool) js_ast.Fn {
	p.skipTypeParams()
	scope := p.pushScope(js_ast.ScopeFunction)
	args := p.parseFnParams()
	p.skipOptionalTypeAnnotation()
	p.expectPunct("{")
	p.hoistFunctionDecls()
	var body []js_ast.Stmt
	for !p.isPunct("}") {
		body = append(body, p.parseStmt(false))
	}
	p.expectPunct("}")
	p.popScope()
	return js_ast.Fn{Args: args, Body: body, IsAsync: isAsync, IsGenerator: isGenerator, IsArrow: isArrow, Scope: scope}
}

func (p *Parser) parseFnParams() []js_ast.Arg {
	p.expectPunct("(")
	var args []js_ast.Arg
	for !p.isPunct(")") {
		isRest := false
		if p.isPunct("...") {
			p.next()
			isRest = true
		}
		b := p.parseBindingTarget(js_ast.SymbolOther)
		p.skipOptionalTypeAnnotation()
		var def *js_ast.Expr
		if p.isPunct("=") {
			p.next()
			v := p.parseExpr(LComma)
			def = &v
		}
		args = append(args, js_ast.Arg{Binding: b, DefaultValue: def, IsRest: isRest})
		if p.isPunct(",") {
			p.next()
		}
	}
	p.expectPunct(")")
	return args
}

// ---------------------------------------------------------------------------
// classes

func (p *Parser) parseClassDeclStmt(loc js_ast.Loc, isExport bool) js_ast.Stmt {
	p.next() // "class"
	name := p.expectIdentName()
	nameLoc := p.loc()
	ref := p.declare(name, js_ast.SymbolClass)
	class := p.parseClassTail()
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SClassDecl{Name: js_ast.LocRef{Loc: nameLoc, Ref: ref}, Class: class, IsExport: isExport}}
}

func (p *Parser) parseClassTail() js_ast.Class {
	p.skipTypeParams()
	var extends *js_ast.Expr
	if p.isIdent("extends") {
		p.next()
		e := p.parseExpr(LCall)
		extends = &e
	}
	if p.isIdent("implements") {
		p.next()
		for !p.isPunct("{") {
			p.next()
		}
	}
	scope := p.pushScope(js_ast.ScopeClass)
	p.expectPunct("{")
	var props []js_ast.ClassProperty
	for !p.isPunct("}") {
		if p.isPunct(";") {
			p.next()
			continue
		}
		props = append(props, p.parseClassMember())
	}
	p.expectPunct("}")
	p.popScope()
	return js_ast.Class{Extends: extends, Properties: props, Scope: scope}
}

func (p *Parser) parseClassMember() js_ast.ClassProperty {
	isStatic := false
	if p.isIdent("static") && !p.peekIsPunct("(") && !p.peekIsPunct("=") {
		p.next()
		isStatic = true
	}
	for p.tokType() == js_lexer.TIdentifier {
		switch p.raw() {
		case "public", "private", "protected", "readonly", "override", "abstract", "declare":
			p.next()
			continue
		}
		break
	}

	kind := js_ast.ClassMethod
	isAsync := false
	isGenerator := false
	if p.isIdent("async") && !p.peekIsPunct("(") && !p.peekIsPunct("=") {
		p.next()
		isAsync = true
	}
	if p.isPunct("*") {
		p.next()
		isGenerator = true
	}
	if (p.isIdent("get") || p.isIdent("set")) && !p.peekIsPunct("(") && !p.peekIsPunct("=") {
		if p.raw() == "get" {
			kind = js_ast.ClassGetter
		} else {
			kind = js_ast.ClassSetter
		}
		p.next()
	}

	key := p.parsePropertyKey()
	if p.isPunct("?") || p.isPunct("!") {
		p.next()
	}

	if p.isPunct("(") {
		fn := p.parseFnTail(isAsync, isGenerator, false)
		if kind == js_ast.ClassMethod {
			kind = js_ast.ClassMethod
		}
		return js_ast.ClassProperty{Key: key, Kind: kind, IsStatic: isStatic, Fn: &fn}
	}

	// field
	p.skipOptionalTypeAnnotation()
	var value *js_ast.Expr
	if p.isPunct("=") {
		p.next()
		v := p.parseExpr(LComma)
		value = &v
	}
	p.consumeSemicolon()
	return js_ast.ClassProperty{Key: key, Kind: js_ast.ClassField, IsStatic: isStatic, Value: value}
}

func (p *Parser) peekIsPunct(s string) bool {
	save := *p.lexer
	p.next()
	ok := p.isPunct(s)
	*p.lexer = save
	return ok
}

// ---------------------------------------------------------------------------
// lightweight TypeScript skipping

// skipTypeParams skips a "<...>" generic parameter list if present.
func (p *Parser) skipTypeParams() {
	if !p.isPunct("<") {
		return
	}
	depth := 0
	for {
		if p.isPunct("<") {
			depth++
		} else if p.isPunct(">") {
			depth--
			if depth == 0 {
				p.next()
				return
			}
		} else if p.tokType() == js_lexer.TEndOfFile {
			return
		}
		p.next()
	}
}

// skipOptionalTypeAnnotation consumes a ": Type" annotation if present,
// stopping at the matching top-level "=", ",", ")", ";", "{" or newline. A
// "{" that is the annotation's first token opens an object type literal
// instead of stopping it.
func (p *Parser) skipOptionalTypeAnnotation() {
	if !p.isPunct(":") {
		return
	}
	p.next()
	depth := 0
	first := true
	for {
		switch {
		case depth == 0 && !first && p.isPunct("{"):
			return
		case p.isPunct("<") || p.isPunct("(") || p.isPunct("[") || p.isPunct("{"):
			depth++
		case p.isPunct(">") || p.isPunct(")") || p.isPunct("]") || p.isPunct("}"):
			if depth == 0 {
				return
			}
			depth--
		case depth == 0 && (p.isPunct(",") || p.isPunct(";") || p.isPunct("=")):
			return
		case p.tokType() == js_lexer.TEndOfFile:
			return
		case depth == 0 && p.newlineBefore():
			return
		}
		first = false
		p.next()
	}
}
