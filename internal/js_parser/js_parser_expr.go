package js_parser

import (
	"github.com/routechunk/routechunk/internal/js_ast"
	"github.com/routechunk/routechunk/internal/js_lexer"
)

// Precedence levels, low to high, following esbuild's L enum.
type L uint8

const (
	LLowest L = iota
	LComma
	LSpread
	LYield
	LAssign
	LConditional
	LNullishCoalescing
	LLogicalOr
	LLogicalAnd
	LBitwiseOr
	LBitwiseXor
	LBitwiseAnd
	LEquals
	LCompare
	LShift
	LAdd
	LMultiply
	LExponent
	LPrefix
	LPostfix
	LNew
	LCall
	LMember
)

var binOpPrecedence = map[string]L{
	"??": LNullishCoalescing, "||": LLogicalOr, "&&": LLogicalAnd,
	"|": LBitwiseOr, "^": LBitwiseXor, "&": LBitwiseAnd,
	"==": LEquals, "!=": LEquals, "===": LEquals, "!==": LEquals,
	"<": LCompare, ">": LCompare, "<=": LCompare, ">=": LCompare,
	"instanceof": LCompare, "in": LCompare,
	"<<": LShift, ">>": LShift, ">>>": LShift,
	"+": LAdd, "-": LAdd,
	"*": LMultiply, "/": LMultiply, "%": LMultiply,
	"**": LExponent,
}

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"**=": true, "<<=": true, ">>=": true, ">>>=": true, "&=": true, "|=": true,
	"^=": true, "&&=": true, "||=": true, "??=": true,
}

func (p *Parser) parseExpr(level L) js_ast.Expr {
	left := p.parsePrefix()
	left = p.parseSuffix(left, level)
	return p.parseBinaryAndAssign(left, level)
}

func (p *Parser) parsePrefix() js_ast.Expr {
	loc := p.loc()

	if p.tokType() == js_lexer.TIdentifier {
		switch p.raw() {
		case "function":
			p.next()
			isGen := false
			if p.isPunct("*") {
				p.next()
				isGen = true
			}
			if p.tokType() == js_lexer.TIdentifier {
				p.next()
			}
			fn := p.parseFnTail(false, isGen, false)
			return js_ast.Expr{Loc: loc, Data: &js_ast.EFunction{Fn: fn}}
		case "async":
			if p.peekIsFunctionKeyword() {
				p.next()
				p.next()
				isGen := false
				if p.isPunct("*") {
					p.next()
					isGen = true
				}
				if p.tokType() == js_lexer.TIdentifier {
					p.declare(p.raw(), js_ast.SymbolOther)
					p.next()
				}
				fn := p.parseFnTail(true, isGen, false)
				return js_ast.Expr{Loc: loc, Data: &js_ast.EFunction{Fn: fn}}
			}
			if p.isAsyncArrowAhead() {
				return p.parseArrowFromAsync(loc)
			}
		case "class":
			p.next()
			if p.tokType() == js_lexer.TIdentifier {
				p.declare(p.raw(), js_ast.SymbolClass)
				p.next()
			}
			class := p.parseClassTail()
			return js_ast.Expr{Loc: loc, Data: &js_ast.EClass{Class: class}}
		case "this":
			p.next()
			return js_ast.Expr{Loc: loc, Data: &js_ast.EThis{}}
		case "super":
			p.next()
			return js_ast.Expr{Loc: loc, Data: &js_ast.ESuper{}}
		case "true":
			p.next()
			return js_ast.Expr{Loc: loc, Data: &js_ast.EBoolean{Value: true}}
		case "false":
			p.next()
			return js_ast.Expr{Loc: loc, Data: &js_ast.EBoolean{Value: false}}
		case "null":
			p.next()
			return js_ast.Expr{Loc: loc, Data: &js_ast.ENull{}}
		case "undefined":
			p.next()
			return js_ast.Expr{Loc: loc, Data: &js_ast.EUndefined{}}
		case "new":
			p.next()
			callee := p.parsePrefix()
			callee = p.parseMemberSuffix(callee)
			var args []js_ast.ArrayItem
			if p.isPunct("(") {
				args = p.parseArgs()
			}
			return js_ast.Expr{Loc: loc, Data: &js_ast.ENew{Callee: callee, Args: args}}
		case "typeof", "void", "delete":
			op := p.raw()
			p.next()
			v := p.parseExpr(LPrefix)
			return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: op, Value: v, Prefix: true}}
		case "yield":
			p.next()
			isDelegate := false
			if p.isPunct("*") {
				p.next()
				isDelegate = true
			}
			var value *js_ast.Expr
			if !p.isPunct(")") && !p.isPunct(";") && !p.isPunct("}") && !p.isPunct(",") && !p.newlineBefore() && p.tokType() != js_lexer.TEndOfFile {
				v := p.parseExpr(LYield)
				value = &v
			}
			return js_ast.Expr{Loc: loc, Data: &js_ast.EYield{Value: value, IsDelegate: isDelegate}}
		case "await":
			p.next()
			v := p.parseExpr(LPrefix)
			return js_ast.Expr{Loc: loc, Data: &js_ast.EAwait{Value: v}}
		}

		// Arrow function with a single bare parameter: `x => ...`
		if p.isArrowAhead() {
			return p.parseArrowSingleParam(loc)
		}

		name := p.raw()
		p.next()
		return p.identifierExpr(name, loc)
	}

	switch {
	case p.tokType() == js_lexer.TNumericLiteral:
		raw := p.raw()
		p.next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ENumber{Raw: raw}}

	case p.tokType() == js_lexer.TStringLiteral:
		v := decodeStringLiteral(p.raw())
		p.next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: v}}

	case p.tokType() == js_lexer.TNoSubstitutionTemplateLiteral:
		raw := p.raw()
		p.next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ETemplate{HeadRaw: raw}}

	case p.tokType() == js_lexer.TTemplateHead:
		return p.parseTemplate(loc, nil)

	case p.tokType() == js_lexer.TRegExpLiteral:
		raw := p.raw()
		p.next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ERegExp{Raw: raw}}

	case p.isPunct("("):
		return p.parseParenOrArrow(loc)

	case p.isPunct("["):
		return p.parseArrayLiteral(loc)

	case p.isPunct("{"):
		return p.parseObjectLiteral(loc)

	case p.isPunct("<"):
		e := p.parseJSXElement(loc)
		// parseJSXElement leaves the lexer sitting at its own closing
		// delimiter without advancing past it (nested JSX children need that
		// position to resume raw-text scanning); at real top-level expression
		// position the following bytes are normal JS, so advance once here.
		p.next()
		return e

	case p.isPunct("+") || p.isPunct("-") || p.isPunct("!") || p.isPunct("~"):
		op := p.raw()
		p.next()
		v := p.parseExpr(LPrefix)
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: op, Value: v, Prefix: true}}

	case p.isPunct("++") || p.isPunct("--"):
		op := p.raw()
		p.next()
		v := p.parseExpr(LPrefix)
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: op, Value: v, Prefix: true}}

	case p.isPunct("..."):
		p.next()
		v := p.parseExpr(LComma)
		return js_ast.Expr{Loc: loc, Data: &js_ast.ESpread{Value: v}}
	}

	p.fail("unexpected token %q", p.raw())
	return js_ast.Expr{}
}

func (p *Parser) parseSuffix(left js_ast.Expr, level L) js_ast.Expr {
	for {
		if p.newlineBefore() && (p.isPunct("++") || p.isPunct("--")) {
			return left
		}
		switch {
		case p.isPunct("."):
			p.next()
			name := p.expectIdentName()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EMember{Obj: left, PropName: name}}
		case p.isPunct("?."):
			p.next()
			if p.isPunct("(") {
				args := p.parseArgs()
				left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ECall{Callee: left, Args: args, OptionalChain: true}}
				continue
			}
			if p.isPunct("[") {
				p.next()
				idx := p.parseExpr(LLowest)
				p.expectPunct("]")
				left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EMember{Obj: left, PropExpr: &idx, OptionalChain: true}}
				continue
			}
			name := p.expectIdentName()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EMember{Obj: left, PropName: name, OptionalChain: true}}
		case p.isPunct("["):
			p.next()
			idx := p.parseExpr(LLowest)
			p.expectPunct("]")
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EMember{Obj: left, PropExpr: &idx}}
		case p.isPunct("(") && level < LCall+1:
			args := p.parseArgs()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ECall{Callee: left, Args: args}}
		case p.isPunct("!") && !p.newlineBefore():
			// TypeScript non-null assertion; semantically a no-op passthrough.
			p.next()
		case p.tokType() == js_lexer.TNoSubstitutionTemplateLiteral || p.tokType() == js_lexer.TTemplateHead:
			left = p.parseTaggedTemplate(left)
		case (p.isPunct("++") || p.isPunct("--")) && level < LPostfix+1:
			op := p.raw()
			p.next()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EUnary{Op: op, Value: left, Prefix: false}}
		case p.isPunct("<") && level < LCall:
			// Could be a type-argument list before a call, e.g. `f<T>(x)`.
			if !p.looksLikeTypeArgsThenCall() {
				return left
			}
			p.skipTypeParams()
		default:
			return left
		}
	}
}

func (p *Parser) parseMemberSuffix(left js_ast.Expr) js_ast.Expr {
	for p.isPunct(".") || p.isPunct("[") {
		if p.isPunct(".") {
			p.next()
			name := p.expectIdentName()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EMember{Obj: left, PropName: name}}
		} else {
			p.next()
			idx := p.parseExpr(LLowest)
			p.expectPunct("]")
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EMember{Obj: left, PropExpr: &idx}}
		}
	}
	return left
}

func (p *Parser) looksLikeTypeArgsThenCall() bool {
	save := *p.lexer
	depth := 0
	ok := false
	for {
		if p.isPunct("<") {
			depth++
		} else if p.isPunct(">") {
			depth--
			if depth == 0 {
				p.next()
				ok = p.isPunct("(")
				break
			}
		} else if p.tokType() == js_lexer.TEndOfFile || p.isPunct(";") || p.isPunct("{") {
			break
		}
		p.next()
	}
	*p.lexer = save
	return ok
}

func (p *Parser) parseBinaryAndAssign(left js_ast.Expr, level L) js_ast.Expr {
	for {
		if p.tokType() == js_lexer.TIdentifier && (p.raw() == "instanceof" || p.raw() == "in") {
			opLevel := LCompare
			if opLevel <= level {
				return left
			}
			op := p.raw()
			p.next()
			right := p.parseExpr(opLevel + 1)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: op, Left: left, Right: right}}
			continue
		}

		if p.tokType() != js_lexer.TPunctuation {
			return left
		}
		op := p.raw()

		if op == "?" {
			if LConditional <= level {
				return left
			}
			p.next()
			yes := p.parseExpr(LAssign)
			p.expectPunct(":")
			no := p.parseExpr(LAssign)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ECond{Test: left, Yes: yes, No: no}}
			continue
		}

		if assignOps[op] {
			if LAssign <= level {
				return left
			}
			p.next()
			right := p.parseExpr(LAssign)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EAssign{Op: op, Target: left, Value: right}}
			continue
		}

		if op == "," {
			if LComma <= level {
				return left
			}
			p.next()
			right := p.parseExpr(LComma)
			if seq, ok := left.Data.(*js_ast.ESequence); ok {
				seq.Exprs = append(seq.Exprs, right)
				continue
			}
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ESequence{Exprs: []js_ast.Expr{left, right}}}
			continue
		}

		if opLevel, ok := binOpPrecedence[op]; ok {
			if opLevel <= level {
				return left
			}
			p.next()
			nextLevel := opLevel + 1
			if op == "**" {
				nextLevel = opLevel // right-associative
			}
			right := p.parseExpr(nextLevel)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: op, Left: left, Right: right}}
			continue
		}

		return left
	}
}

func (p *Parser) parseArgs() []js_ast.ArrayItem {
	p.expectPunct("(")
	var args []js_ast.ArrayItem
	for !p.isPunct(")") {
		isSpread := false
		if p.isPunct("...") {
			p.next()
			isSpread = true
		}
		v := p.parseExpr(LComma)
		args = append(args, js_ast.ArrayItem{Value: v, IsSpread: isSpread})
		if p.isPunct(",") {
			p.next()
		}
	}
	p.expectPunct(")")
	return args
}

func (p *Parser) parseArrayLiteral(loc js_ast.Loc) js_ast.Expr {
	p.next()
	var items []js_ast.ArrayItem
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
		v := p.parseExpr(LComma)
		items = append(items, js_ast.ArrayItem{Value: v, IsSpread: isSpread})
		if p.isPunct(",") {
			p.next()
		}
	}
	p.expectPunct("]")
	return js_ast.Expr{Loc: loc, Data: &js_ast.EArray{Items: items}}
}

func (p *Parser) parseObjectLiteral(loc js_ast.Loc) js_ast.Expr {
	p.next()
	var props []js_ast.Property
	for !p.isPunct("}") {
		if p.isPunct("...") {
			p.next()
			v := p.parseExpr(LComma)
			props = append(props, js_ast.Property{Kind: js_ast.PropertySpread, Value: &v})
			if p.isPunct(",") {
				p.next()
			}
			continue
		}

		kind := js_ast.PropertyNormal
		isAsync := false
		isGen := false
		if (p.isIdent("get") || p.isIdent("set")) && !p.peekIsPunct(",") && !p.peekIsPunct(":") && !p.peekIsPunct("}") && !p.peekIsPunct("(") {
			if p.raw() == "get" {
				kind = js_ast.PropertyGet
			} else {
				kind = js_ast.PropertySet
			}
			p.next()
		}
		if p.isIdent("async") && !p.peekIsPunct(",") && !p.peekIsPunct(":") && !p.peekIsPunct("}") && !p.peekIsPunct("(") {
			isAsync = true
			p.next()
		}
		if p.isPunct("*") {
			isGen = true
			p.next()
		}

		key := p.parsePropertyKey()

		if p.isPunct("(") {
			fn := p.parseFnTail(isAsync, isGen, false)
			v := js_ast.Expr{Loc: loc, Data: &js_ast.EFunction{Fn: fn}}
			if kind == js_ast.PropertyNormal {
				kind = js_ast.PropertyMethod
			}
			props = append(props, js_ast.Property{Kind: kind, Key: key, Value: &v})
		} else if p.isPunct(":") {
			p.next()
			v := p.parseExpr(LComma)
			props = append(props, js_ast.Property{Kind: js_ast.PropertyNormal, Key: key, Value: &v})
		} else {
			// shorthand { a } or { a = default } (the latter only valid in a
			// binding context, but tolerated here as-is)
			v := p.identifierExpr(key.Name, loc)
			if p.isPunct("=") {
				p.next()
				def := p.parseExpr(LComma)
				v = js_ast.Expr{Loc: loc, Data: &js_ast.EAssign{Op: "=", Target: v, Value: def}}
			}
			props = append(props, js_ast.Property{Kind: js_ast.PropertyNormal, Key: key, Value: &v, IsShorthand: true})
		}

		if p.isPunct(",") {
			p.next()
		}
	}
	p.expectPunct("}")
	return js_ast.Expr{Loc: loc, Data: &js_ast.EObject{Properties: props}}
}

func (p *Parser) parseTemplate(loc js_ast.Loc, tag *js_ast.Expr) js_ast.Expr {
	headRaw := p.raw()
	var parts []js_ast.TemplatePart
	for p.tokType() == js_lexer.TTemplateHead || p.tokType() == js_lexer.TTemplateMiddle {
		p.next()
		e := p.parseExpr(LLowest)
		if !p.isPunct("}") {
			p.fail("expected \"}\" in template literal but found %q", p.raw())
		}
		p.lexer.NextTemplatePart()
		parts = append(parts, js_ast.TemplatePart{Value: e, Raw: p.raw()})
	}
	p.next()
	return js_ast.Expr{Loc: loc, Data: &js_ast.ETemplate{HeadRaw: headRaw, Parts: parts, TagFn: tag}}
}

func (p *Parser) parseTaggedTemplate(tag js_ast.Expr) js_ast.Expr {
	loc := tag.Loc
	if p.tokType() == js_lexer.TNoSubstitutionTemplateLiteral {
		raw := p.raw()
		p.next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ETemplate{HeadRaw: raw, TagFn: &tag}}
	}
	return p.parseTemplate(loc, &tag)
}

func decodeStringLiteral(raw string) string {
	if len(raw) >= 2 {
		return raw[1 : len(raw)-1]
	}
	return raw
}

