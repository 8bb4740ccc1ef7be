package js_parser

import (
	"strings"

	"github.com/routechunk/routechunk/internal/js_ast"
	"github.com/routechunk/routechunk/internal/js_lexer"
)

// JSX text runs are not ECMAScript tokens, so this parser drops out of the
// lexer's normal token stream and scans raw bytes between tags/expressions
// directly, re-entering the lexer (via Lexer.RestoreTo) whenever it needs a
// real JS expression inside "{...}" or a nested "<Tag>".

// requirePunct fails unless the current token is s, without advancing past
// it. Used at JSX delimiters ("/>", the ">" closing an opening tag, the ">"
// closing a close tag) where the bytes that follow may be raw JSX text
// rather than a JS token — calling next()/expectPunct() there would let the
// lexer mis-tokenize that text. The lexer's internal cursor already sits
// just past the delimiter once it is the current token, so Lexer.Pos()
// gives the right resume offset without any further scanning.
func (p *Parser) requirePunct(s string) {
	if !p.isPunct(s) {
		p.fail("expected %q but found %q", s, p.raw())
	}
}

// parseJSXElement assumes the current token is the "<" that opens the
// element (or fragment) and consumes through its matching close tag,
// leaving the element's final ">" as the current, unconsumed token.
func (p *Parser) parseJSXElement(loc js_ast.Loc) js_ast.Expr {
	p.next() // consume "<"

	isFragment := p.isPunct(">")
	tagName := ""
	if !isFragment {
		tagName = p.expectIdentName()
		for p.isPunct(".") {
			p.next()
			tagName += "." + p.expectIdentName()
		}
		for p.isPunct("-") {
			p.next()
			tagName += "-" + p.expectIdentName()
		}
	}

	var tagRef *js_ast.Ref
	if !isFragment && isUpperFirst(tagName) {
		head := tagName
		if i := strings.IndexByte(tagName, '.'); i >= 0 {
			head = tagName[:i]
		}
		ref := p.resolve(head)
		tagRef = &ref
	}

	var attrs []js_ast.JSXAttr
	for !isFragment && !p.isPunct(">") && !p.isPunct("/") {
		if p.isPunct("{") {
			p.next()
			p.expectPunct("...")
			e := p.parseExpr(LComma)
			p.expectPunct("}")
			attrs = append(attrs, js_ast.JSXAttr{SpreadExpr: &e})
			continue
		}
		name := p.expectIdentName()
		for p.isPunct("-") {
			p.next()
			name += "-" + p.expectIdentName()
		}
		var value *js_ast.Expr
		if p.isPunct("=") {
			p.next()
			if p.tokType() == js_lexer.TStringLiteral {
				v := js_ast.Expr{Loc: p.loc(), Data: &js_ast.EString{Value: decodeStringLiteral(p.raw())}}
				p.next()
				value = &v
			} else {
				p.expectPunct("{")
				e := p.parseExpr(LComma)
				p.expectPunct("}")
				value = &e
			}
		}
		attrs = append(attrs, js_ast.JSXAttr{Name: name, Value: value})
	}

	selfClosing := false
	var children []js_ast.JSXChild
	if p.isPunct("/") {
		p.next()
		p.requirePunct(">")
		selfClosing = true
	} else {
		p.requirePunct(">")
		children = p.parseJSXChildren()
	}

	return js_ast.Expr{Loc: loc, Data: &js_ast.EJSXElement{
		TagName: tagName, TagRef: tagRef, Attrs: attrs, Children: children,
		SelfClosing: selfClosing, IsFragment: isFragment,
	}}
}

// parseJSXChildren is called with the lexer having just consumed the ">"
// that closes the opening tag; it scans raw text/expr/nested-element
// children until it finds the matching "</...>", leaving that close tag's
// ">" as the current, unconsumed token.
func (p *Parser) parseJSXChildren() []js_ast.JSXChild {
	pos := p.lexer.Pos()
	var children []js_ast.JSXChild

	for {
		idx := indexOfAny(p.source, int(pos), "<{")
		if idx < 0 {
			p.fail("unterminated JSX element")
		}
		if idx > int(pos) {
			text := p.source[pos:idx]
			if strings.TrimSpace(text) != "" {
				t := text
				children = append(children, js_ast.JSXChild{Text: &t})
			}
		}

		switch p.source[idx] {
		case '{':
			p.lexer.RestoreTo(int32(idx) + 1)
			if p.isPunct("}") {
				pos = p.lexer.Pos()
				continue
			}
			e := p.parseExpr(LComma)
			if !p.isPunct("}") {
				p.fail("expected \"}\" in JSX expression but found %q", p.raw())
			}
			pos = p.lexer.Pos()
			children = append(children, js_ast.JSXChild{Expr: &e})

		case '<':
			if idx+1 < len(p.source) && p.source[idx+1] == '/' {
				// Resume after "</" directly: lexed from "<", the "/" that
				// follows would be taken for the start of a regex literal.
				p.lexer.RestoreTo(int32(idx) + 2)
				for !p.isPunct(">") && p.tokType() != js_lexer.TEndOfFile {
					p.next()
				}
				pos = p.lexer.Pos()
				return children
			}
			// parseJSXElement expects "<" itself as the current token.
			p.lexer.RestoreTo(int32(idx))
			childLoc := js_ast.Loc{Start: int32(idx)}
			e := p.parseJSXElement(childLoc)
			elem := e.Data.(*js_ast.EJSXElement)
			children = append(children, js_ast.JSXChild{Element: elem})
			// parseJSXElement leaves the lexer at its own unconsumed closing
			// delimiter; resume raw-text scanning from right after it.
			pos = p.lexer.Pos()
		}
	}
}

func indexOfAny(s string, from int, chars string) int {
	for i := from; i < len(s); i++ {
		if strings.IndexByte(chars, s[i]) >= 0 {
			return i
		}
	}
	return -1
}

func isUpperFirst(s string) bool {
	return len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z'
}
