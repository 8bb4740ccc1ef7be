package js_printer

import (
	"fmt"

	"github.com/routechunk/routechunk/internal/js_ast"
)

// level mirrors the parser's precedence ladder (see js_parser's L enum) so
// the printer only parenthesizes an expression when its own precedence is
// lower than the position it is being printed into requires.
type level uint8

const (
	lLowest level = iota
	lComma
	lAssign
	lYield
	lCond
	lNullish
	lOr
	lAnd
	lBitOr
	lBitXor
	lBitAnd
	lEquals
	lCompare
	lShift
	lAdd
	lMul
	lExp
	lUnary
	lCall
)

var binaryLevel = map[string]level{
	"??": lNullish, "||": lOr, "&&": lAnd,
	"|": lBitOr, "^": lBitXor, "&": lBitAnd,
	"==": lEquals, "!=": lEquals, "===": lEquals, "!==": lEquals,
	"<": lCompare, ">": lCompare, "<=": lCompare, ">=": lCompare,
	"instanceof": lCompare, "in": lCompare,
	"<<": lShift, ">>": lShift, ">>>": lShift,
	"+": lAdd, "-": lAdd,
	"*": lMul, "/": lMul, "%": lMul,
	"**": lExp,
}

func (p *printer) printExpr(e js_ast.Expr, parentLevel level) {
	myLevel, needsParens := p.exprLevel(e, parentLevel)
	if needsParens {
		p.write("(")
	}
	p.printExprData(e.Data, myLevel)
	if needsParens {
		p.write(")")
	}
}

// exprLevel returns this expression's own precedence and whether it must be
// wrapped in parens to be printed at parentLevel.
func (p *printer) exprLevel(e js_ast.Expr, parentLevel level) (level, bool) {
	switch d := e.Data.(type) {
	case *js_ast.EBinary:
		lv := binaryLevel[d.Op]
		return lv, lv < parentLevel
	case *js_ast.EAssign:
		return lAssign, lAssign < parentLevel
	case *js_ast.ECond:
		return lCond, lCond < parentLevel
	case *js_ast.ESequence:
		return lComma, lComma < parentLevel
	case *js_ast.EYield:
		return lYield, lYield < parentLevel
	case *js_ast.EUnary:
		return lUnary, lUnary < parentLevel
	case *js_ast.EAwait:
		return lUnary, lUnary < parentLevel
	case *js_ast.EFunction:
		if d.Fn.IsArrow {
			return lAssign, lAssign < parentLevel
		}
		return lCall, false
	default:
		return lCall, false
	}
}

func (p *printer) printExprData(data js_ast.E, ownLevel level) {
	switch e := data.(type) {
	case *js_ast.EIdentifier:
		p.write(p.symbolName(e.Ref))

	case *js_ast.ENumber:
		p.write(e.Raw)

	case *js_ast.EString:
		p.printQuoted(e.Value)

	case *js_ast.EBoolean:
		if e.Value {
			p.write("true")
		} else {
			p.write("false")
		}

	case *js_ast.ENull:
		p.write("null")

	case *js_ast.EUndefined:
		p.write("undefined")

	case *js_ast.EThis:
		p.write("this")

	case *js_ast.ESuper:
		p.write("super")

	case *js_ast.ERegExp:
		p.write(e.Raw)

	case *js_ast.ETemplate:
		if e.TagFn != nil {
			p.printExpr(*e.TagFn, lCall)
		}
		p.write("`")
		p.write(e.HeadRaw)
		for _, part := range e.Parts {
			p.write("${")
			p.printExpr(part.Value, lLowest)
			p.write("}")
			p.write(part.Raw)
		}
		p.write("`")

	case *js_ast.EArray:
		p.write("[")
		for i, item := range e.Items {
			if i > 0 {
				p.write(", ")
			}
			if item.IsSpread {
				p.write("...")
			}
			p.printExpr(item.Value, lAssign)
		}
		p.write("]")

	case *js_ast.EObject:
		p.printObject(e)

	case *js_ast.EFunction:
		p.printFunctionExpr(e.Fn)

	case *js_ast.EClass:
		p.write("class ")
		p.printClassTail(e.Class)

	case *js_ast.EUnary:
		if e.Prefix {
			p.write(e.Op)
			if isWordOp(e.Op) {
				p.write(" ")
			}
			p.printExpr(e.Value, lUnary)
		} else {
			p.printExpr(e.Value, lUnary)
			p.write(e.Op)
		}

	case *js_ast.EBinary:
		lv := binaryLevel[e.Op]
		leftLevel, rightLevel := lv, lv+1
		if e.Op == "**" {
			leftLevel, rightLevel = lv+1, lv
		}
		p.printExpr(e.Left, leftLevel)
		p.write(" ")
		p.write(e.Op)
		p.write(" ")
		p.printExpr(e.Right, rightLevel)

	case *js_ast.EAssign:
		p.printExpr(e.Target, lCall)
		p.write(" ")
		p.write(e.Op)
		p.write(" ")
		p.printExpr(e.Value, lAssign)

	case *js_ast.ECall:
		if e.OptionalChain {
			p.printExpr(e.Callee, lCall)
			p.write("?.")
		} else {
			p.printExpr(e.Callee, lCall)
		}
		p.write("(")
		p.printArrayItems(e.Args)
		p.write(")")

	case *js_ast.ENew:
		p.write("new ")
		p.printExpr(e.Callee, lCall)
		p.write("(")
		p.printArrayItems(e.Args)
		p.write(")")

	case *js_ast.EMember:
		p.printExpr(e.Obj, lCall)
		if e.PropExpr != nil {
			if e.OptionalChain {
				p.write("?.")
			}
			p.write("[")
			p.printExpr(*e.PropExpr, lLowest)
			p.write("]")
		} else {
			if e.OptionalChain {
				p.write("?.")
			} else {
				p.write(".")
			}
			p.write(e.PropName)
		}

	case *js_ast.ESpread:
		p.write("...")
		p.printExpr(e.Value, lAssign)

	case *js_ast.ECond:
		p.printExpr(e.Test, lNullish)
		p.write(" ? ")
		p.printExpr(e.Yes, lAssign)
		p.write(" : ")
		p.printExpr(e.No, lAssign)

	case *js_ast.ESequence:
		for i, x := range e.Exprs {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(x, lAssign)
		}

	case *js_ast.EYield:
		p.write("yield")
		if e.IsDelegate {
			p.write("*")
		}
		if e.Value != nil {
			p.write(" ")
			p.printExpr(*e.Value, lAssign)
		}

	case *js_ast.EAwait:
		p.write("await ")
		p.printExpr(e.Value, lUnary)

	case *js_ast.EJSXElement:
		p.printJSXElement(e)

	default:
		panic(fmt.Sprintf("js_printer: unhandled expression type %T", data))
	}
}

func isWordOp(op string) bool {
	switch op {
	case "typeof", "void", "delete":
		return true
	}
	return false
}

func (p *printer) printArrayItems(items []js_ast.ArrayItem) {
	for i, item := range items {
		if i > 0 {
			p.write(", ")
		}
		if item.IsSpread {
			p.write("...")
		}
		p.printExpr(item.Value, lAssign)
	}
}

func (p *printer) printObject(e *js_ast.EObject) {
	p.write("{")
	for i, prop := range e.Properties {
		if i > 0 {
			p.write(", ")
		}
		switch prop.Kind {
		case js_ast.PropertySpread:
			p.write("...")
			p.printExpr(*prop.Value, lAssign)
			continue
		case js_ast.PropertyGet:
			p.write("get ")
		case js_ast.PropertySet:
			p.write("set ")
		case js_ast.PropertyMethod:
			if fn, ok := prop.Value.Data.(*js_ast.EFunction); ok {
				if fn.Fn.IsAsync {
					p.write("async ")
				}
				if fn.Fn.IsGenerator {
					p.write("*")
				}
			}
		}
		p.printPropertyKey(prop.Key)
		switch prop.Kind {
		case js_ast.PropertyGet, js_ast.PropertySet, js_ast.PropertyMethod:
			fn := prop.Value.Data.(*js_ast.EFunction)
			p.printParamsAndBody(fn.Fn)
		default:
			if prop.IsShorthand {
				continue
			}
			p.write(": ")
			p.printExpr(*prop.Value, lAssign)
		}
	}
	p.write("}")
}

func (p *printer) printFunctionExpr(fn js_ast.Fn) {
	if fn.IsArrow {
		if fn.IsAsync {
			p.write("async ")
		}
		p.write("(")
		p.printArgs(fn.Args)
		p.write(") => ")
		if fn.ArrowExpr != nil {
			if _, ok := fn.ArrowExpr.Data.(*js_ast.EObject); ok {
				p.write("(")
				p.printExpr(*fn.ArrowExpr, lAssign)
				p.write(")")
			} else {
				p.printExpr(*fn.ArrowExpr, lAssign)
			}
		} else {
			p.printBlock(fn.Body)
		}
		return
	}
	if fn.IsAsync {
		p.write("async ")
	}
	p.write("function")
	if fn.IsGenerator {
		p.write("*")
	}
	p.write(" ")
	p.printParamsAndBody(fn)
}

func (p *printer) printJSXElement(e *js_ast.EJSXElement) {
	p.write("<")
	p.write(e.TagName)
	for _, a := range e.Attrs {
		p.write(" ")
		if a.SpreadExpr != nil {
			p.write("{...")
			p.printExpr(*a.SpreadExpr, lAssign)
			p.write("}")
			continue
		}
		p.write(a.Name)
		if a.Value != nil {
			p.write("=")
			if s, ok := a.Value.Data.(*js_ast.EString); ok {
				p.printQuoted(s.Value)
			} else {
				p.write("{")
				p.printExpr(*a.Value, lAssign)
				p.write("}")
			}
		}
	}
	if e.SelfClosing {
		p.write(" />")
		return
	}
	p.write(">")
	for _, c := range e.Children {
		switch {
		case c.Text != nil:
			p.write(*c.Text)
		case c.Expr != nil:
			p.write("{")
			p.printExpr(*c.Expr, lLowest)
			p.write("}")
		case c.Element != nil:
			p.printJSXElement(c.Element)
		}
	}
	p.write("</")
	p.write(e.TagName)
	p.write(">")
}
