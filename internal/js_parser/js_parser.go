// Package js_parser turns source text into a js_ast.Program with every
// scope resolved and every identifier use bound to a Ref.
//
// The structure mirrors esbuild's internal/js_parser: one recursive-descent
// Parser over a single js_lexer.Lexer, a Pratt expression parser keyed by
// operator precedence level, and scopes pushed/popped as statement and
// expression forms that introduce bindings are visited. The grammar
// covered is deliberately narrower than esbuild's — enough modern
// JS/JSX/lightweight-TS to parse real route modules, not a spec-complete
// TypeScript compiler front end. Unsupported or purely-type-level syntax
// (decorators, enums, namespaces, complex generic constraints) is either
// skipped as an opaque span or rejected with a descriptive error, per
// spec §7's "structural invariant violation" taxonomy.
package js_parser

import (
	"fmt"

	"github.com/routechunk/routechunk/internal/js_ast"
	"github.com/routechunk/routechunk/internal/js_lexer"
	"github.com/routechunk/routechunk/internal/logger"
)

type Parser struct {
	lexer   *js_lexer.Lexer
	source  string
	program *js_ast.Program
	scope   *js_ast.Scope

	// topLevelIndex is the index into program.Body of the top-level
	// statement currently being parsed; scopes created directly under the
	// module scope are tagged with it.
	topLevelIndex int

	fnDepth int
}

// ParseError carries a structural invariant the grammar doesn't cover from
// the point of failure to Parse's recover, which reports it through
// logger.Log. Downstream components report their own violations with their
// own error types (analyzer.AnalysisError, the emitters' EmitError).
type ParseError struct {
	Msg string
	Loc int32
}

func (e *ParseError) Error() string { return e.Msg }

func Parse(source string, cacheKey string) (prog *js_ast.Program, err error) {
	p := &Parser{
		lexer:   js_lexer.NewLexer(source),
		source:  source,
		program: &js_ast.Program{DeclScope: make(map[js_ast.Ref]*js_ast.Scope)},
	}
	p.program.ModuleScope = js_ast.NewScope(js_ast.ScopeModule, nil)
	p.scope = p.program.ModuleScope
	p.hoistFunctionDecls()

	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*ParseError); ok {
				log := logger.NewLog(logger.Source{CacheKey: logger.Contents(cacheKey), Contents: source})
				log.AddError(logger.KindInvariant, &logger.Loc{Start: pe.Loc}, pe.Msg)
				err = log.Done()
				return
			}
			panic(r)
		}
	}()

	for p.lexer.Token.Type != js_lexer.TEndOfFile {
		p.topLevelIndex = len(p.program.Body)
		stmt := p.parseStmt(true)
		p.program.Body = append(p.program.Body, stmt)
	}
	return p.program, nil
}

func (p *Parser) fail(format string, args ...interface{}) {
	panic(&ParseError{Msg: fmt.Sprintf(format, args...), Loc: p.lexer.Token.Start})
}

func (p *Parser) loc() js_ast.Loc { return js_ast.Loc{Start: p.lexer.Token.Start} }

// ---------------------------------------------------------------------------
// token helpers

func (p *Parser) next()                         { p.lexer.Next() }
func (p *Parser) isPunct(s string) bool          { return p.lexer.IsPunct(s) }
func (p *Parser) isIdent(name string) bool       { return p.lexer.IsIdentifier(name) }
func (p *Parser) raw() string                    { return p.lexer.Raw() }
func (p *Parser) tokType() js_lexer.T            { return p.lexer.Token.Type }
func (p *Parser) newlineBefore() bool            { return p.lexer.Token.HasNewlineBefore }

func (p *Parser) expectPunct(s string) {
	if !p.isPunct(s) {
		p.fail("expected %q but found %q", s, p.raw())
	}
	p.next()
}

func (p *Parser) expectIdentName() string {
	if p.tokType() != js_lexer.TIdentifier {
		p.fail("expected identifier but found %q", p.raw())
	}
	name := p.raw()
	p.next()
	return name
}

func (p *Parser) consumeSemicolon() {
	if p.isPunct(";") {
		p.next()
		return
	}
	if p.isPunct("}") || p.tokType() == js_lexer.TEndOfFile || p.newlineBefore() {
		return
	}
	p.fail("expected \";\" but found %q", p.raw())
}

// ---------------------------------------------------------------------------
// scope helpers

func (p *Parser) pushScope(kind js_ast.ScopeKind) *js_ast.Scope {
	parent := p.scope
	s := js_ast.NewScope(kind, parent)
	if parent == p.program.ModuleScope {
		s.StmtIndex = p.topLevelIndex
	}
	p.scope = s
	return s
}

func (p *Parser) popScope() {
	p.scope = p.scope.Parent
}

func (p *Parser) declare(name string, kind js_ast.SymbolKind) js_ast.Ref {
	if p.scope == p.program.ModuleScope && kind == js_ast.SymbolHoistedFunction {
		// Uses parsed before this declaration resolved to the symbol the
		// hoisting pre-scan created; give it this statement's real index.
		if prev, ok := p.scope.Members[name]; ok && p.program.SymbolFor(prev).Kind == js_ast.SymbolHoistedFunction {
			p.program.SymbolFor(prev).TopLevelStmtIndex = p.topLevelIndex
		}
	}
	ref := p.program.NewSymbol(kind, name)
	p.scope.Members[name] = ref
	p.program.DeclScope[ref] = p.scope
	if p.scope == p.program.ModuleScope {
		p.program.SymbolFor(ref).TopLevelStmtIndex = p.topLevelIndex
	}
	return ref
}

func (p *Parser) resolve(name string) js_ast.Ref {
	for s := p.scope; s != nil; s = s.Parent {
		if ref, ok := s.Members[name]; ok {
			return ref
		}
	}
	return js_ast.InvalidRef
}

func (p *Parser) identifierExpr(name string, loc js_ast.Loc) js_ast.Expr {
	return js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: p.resolve(name)}}
}

// hoistFunctionDecls pre-declares every function declared directly at the
// current scope's own statement level (module top level, or directly inside
// a function body — not nested further inside an if/for/while/block) before
// a single token of the real parse has resolved any identifier. Function
// declarations are hoisted in JS: a route module helper declared below its
// first use (the common `export function clientLoader() { return shared() }
// function shared() {}` shape) is perfectly legal, but this parser resolves
// each identifier the moment it's parsed, with no separate binding pass.
// Without this pre-scan, `shared` above would resolve to InvalidRef inside
// clientLoader, silently vanish from its dependent-identifier closure
// (traverse.go only visits valid refs), and the Oracle would wrongly call
// clientLoader and clientAction disjoint. The scan stops at the first "}"
// seen at its own brace depth: called right after a function body's opening
// "{" has been consumed, that is the matching close brace; called at the
// module scope, where there is no enclosing brace, it runs to EOF instead.
// The scan only recognizes plain identifier-named function declarations
// (including "export"/"export default"/"async" prefixes); it deliberately
// does not attempt to hoist `var` bindings, since distinguishing a `var`
// inside a nested function/arrow expression body from one in a plain nested
// block requires matching arrow and function-expression boundaries that a
// token-level lookahead can't reliably tell apart from object-literal
// braces without a real parse.
func (p *Parser) hoistFunctionDecls() {
	save := *p.lexer
	scope := p.scope
	braceDepth := 0
	atStmtStart := true
	stmtIndex := p.topLevelIndex

	for {
		if p.tokType() == js_lexer.TEndOfFile {
			break
		}
		if p.isPunct("{") {
			braceDepth++
			atStmtStart = true
			p.next()
			continue
		}
		if p.isPunct("}") {
			if braceDepth == 0 {
				break
			}
			braceDepth--
			atStmtStart = true
			if braceDepth == 0 {
				stmtIndex++
			}
			p.next()
			continue
		}
		if p.isPunct(";") {
			atStmtStart = true
			if braceDepth == 0 {
				stmtIndex++
			}
			p.next()
			continue
		}

		if braceDepth == 0 && atStmtStart && p.tokType() == js_lexer.TIdentifier {
			switch p.raw() {
			case "export", "default":
				p.next()
				continue
			}
		}

		isFunctionKeyword := braceDepth == 0 && atStmtStart && p.tokType() == js_lexer.TIdentifier &&
			(p.raw() == "function" || (p.raw() == "async" && p.peekIsFunctionKeyword()))
		if isFunctionKeyword {
			if p.raw() == "async" {
				p.next()
			}
			p.next() // "function"
			if p.isPunct("*") {
				p.next()
			}
			if p.tokType() == js_lexer.TIdentifier {
				name := p.raw()
				if _, ok := scope.Members[name]; !ok {
					ref := p.program.NewSymbol(js_ast.SymbolHoistedFunction, name)
					scope.Members[name] = ref
					p.program.DeclScope[ref] = scope
					if scope == p.program.ModuleScope {
						p.program.SymbolFor(ref).TopLevelStmtIndex = stmtIndex
					}
				}
				p.next()
			}
			atStmtStart = false
			continue
		}

		atStmtStart = false
		p.next()
	}

	*p.lexer = save
}
