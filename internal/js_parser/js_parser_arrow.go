package js_parser

import (
	"github.com/routechunk/routechunk/internal/js_ast"
	"github.com/routechunk/routechunk/internal/js_lexer"
)

// isArrowAhead reports whether the current identifier token is immediately
// followed by "=>", i.e. a single-bare-param arrow function like `x => x`.
func (p *Parser) isArrowAhead() bool {
	save := *p.lexer
	p.next()
	ok := p.isPunct("=>")
	*p.lexer = save
	return ok
}

func (p *Parser) parseArrowSingleParam(loc js_ast.Loc) js_ast.Expr {
	scope := p.pushScope(js_ast.ScopeFunction)
	name := p.expectIdentName()
	ref := p.declare(name, js_ast.SymbolOther)
	args := []js_ast.Arg{{Binding: js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: ref}}}}
	p.expectPunct("=>")
	fn := p.finishArrowBody(args, scope, false)
	return js_ast.Expr{Loc: loc, Data: &js_ast.EFunction{Fn: fn}}
}

// isAsyncArrowAhead reports whether the current "async" token begins an
// async arrow function: either "async ident =>" or "async (" with a
// matching ")" followed by "=>".
func (p *Parser) isAsyncArrowAhead() bool {
	save := *p.lexer
	p.next() // consume "async"
	var result bool
	switch {
	case p.tokType() == js_lexer.TIdentifier:
		p.next()
		result = p.isPunct("=>")
	case p.isPunct("("):
		result = p.parenEndsInArrow()
	}
	*p.lexer = save
	return result
}

func (p *Parser) parseArrowFromAsync(loc js_ast.Loc) js_ast.Expr {
	p.next() // "async"
	if p.tokType() == js_lexer.TIdentifier {
		return p.withAsyncArrow(loc, func() js_ast.Expr { return p.parseArrowSingleParam(loc) })
	}
	return p.withAsyncArrow(loc, func() js_ast.Expr { return p.parseParenOrArrow(loc) })
}

func (p *Parser) withAsyncArrow(loc js_ast.Loc, fn func() js_ast.Expr) js_ast.Expr {
	e := fn()
	if ef, ok := e.Data.(*js_ast.EFunction); ok {
		ef.Fn.IsAsync = true
	}
	return e
}

// parenEndsInArrow scans forward from the current "(" to its matching ")"
// and reports whether the token right after it is "=>".
func (p *Parser) parenEndsInArrow() bool {
	save := *p.lexer
	depth := 0
	for {
		if p.isPunct("(") {
			depth++
		} else if p.isPunct(")") {
			depth--
			if depth == 0 {
				p.next()
				break
			}
		} else if p.tokType() == js_lexer.TEndOfFile {
			*p.lexer = save
			return false
		}
		p.next()
	}
	// Skip an optional return-type annotation before "=>".
	ok := p.isPunct("=>")
	if !ok && p.isPunct(":") {
		p.skipOptionalTypeAnnotation()
		ok = p.isPunct("=>")
	}
	*p.lexer = save
	return ok
}

func (p *Parser) parseParenOrArrow(loc js_ast.Loc) js_ast.Expr {
	if p.parenEndsInArrow() {
		scope := p.pushScope(js_ast.ScopeFunction)
		args := p.parseFnParams()
		p.skipOptionalTypeAnnotation()
		p.expectPunct("=>")
		fn := p.finishArrowBody(args, scope, false)
		return js_ast.Expr{Loc: loc, Data: &js_ast.EFunction{Fn: fn}}
	}

	p.next() // "("
	e := p.parseExpr(LLowest)
	p.expectPunct(")")
	return e
}

// finishArrowBody parses either a "{ ... }" block body or a bare expression
// body, popping the function scope that the caller already pushed.
func (p *Parser) finishArrowBody(args []js_ast.Arg, scope *js_ast.Scope, isAsync bool) js_ast.Fn {
	if p.isPunct("{") {
		p.next()
		var body []js_ast.Stmt
		for !p.isPunct("}") {
			body = append(body, p.parseStmt(false))
		}
		p.expectPunct("}")
		p.popScope()
		return js_ast.Fn{Args: args, Body: body, IsArrow: true, IsAsync: isAsync, Scope: scope}
	}
	expr := p.parseExpr(LAssign)
	p.popScope()
	return js_ast.Fn{Args: args, ArrowExpr: &expr, IsArrow: true, IsAsync: isAsync, Scope: scope}
}
