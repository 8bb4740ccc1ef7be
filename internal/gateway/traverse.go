package gateway

import "github.com/routechunk/routechunk/internal/js_ast"

// Visitor is called once for every identifier *use* (js_ast.EIdentifier)
// encountered during Traverse. Declaration-site bindings (js_ast.BIdentifier
// in a var/param/catch/destructuring pattern) are not uses and are never
// visited — only resolved references are, which is exactly what the Export
// Dependency Analyzer's "dependent identifiers" walk (spec §4.3 step 3)
// needs: it is deciding what an export's code *reads*, not what it binds.
type Visitor func(ref js_ast.Ref)

// TraverseStmt runs a pre-order walk of stmt, invoking visit for every
// identifier use reachable from it (including uses nested in function and
// class bodies it contains — a "dependent identifier" can be buried
// arbitrarily deep).
func TraverseStmt(stmt js_ast.Stmt, visit Visitor) {
	t := &traverser{visit: visit}
	t.stmt(stmt.Data)
}

// TraverseExpr is the expression-rooted counterpart, used when the Analyzer
// starts from one exported declarator's initializer rather than a whole
// top-level statement.
func TraverseExpr(expr js_ast.Expr, visit Visitor) {
	t := &traverser{visit: visit}
	t.expr(expr.Data)
}

type traverser struct{ visit Visitor }

func (t *traverser) stmts(stmts []js_ast.Stmt) {
	for _, s := range stmts {
		t.stmt(s.Data)
	}
}

func (t *traverser) stmt(data js_ast.S) {
	switch s := data.(type) {
	case *js_ast.SVarDecl:
		for _, d := range s.Decls {
			t.binding(d.Binding)
			if d.Value != nil {
				t.expr(d.Value.Data)
			}
		}
	case *js_ast.SFunctionDecl:
		t.fn(s.Fn)
	case *js_ast.SClassDecl:
		t.class(s.Class)
	case *js_ast.SExpr:
		t.expr(s.Value.Data)
	case *js_ast.SReturn:
		if s.Value != nil {
			t.expr(s.Value.Data)
		}
	case *js_ast.SIf:
		t.expr(s.Test.Data)
		t.stmt(s.Yes.Data)
		if s.No != nil {
			t.stmt(s.No.Data)
		}
	case *js_ast.SBlock:
		t.stmts(s.Stmts)
	case *js_ast.SFor:
		if s.Init != nil {
			t.stmt(s.Init.Data)
		}
		if s.Test != nil {
			t.expr(s.Test.Data)
		}
		if s.Update != nil {
			t.expr(s.Update.Data)
		}
		t.stmt(s.Body.Data)
	case *js_ast.SForIn:
		t.stmt(s.Init.Data)
		t.expr(s.Expr.Data)
		t.stmt(s.Body.Data)
	case *js_ast.SForOf:
		t.stmt(s.Init.Data)
		t.expr(s.Expr.Data)
		t.stmt(s.Body.Data)
	case *js_ast.SWhile:
		t.expr(s.Test.Data)
		t.stmt(s.Body.Data)
	case *js_ast.SDoWhile:
		t.stmt(s.Body.Data)
		t.expr(s.Test.Data)
	case *js_ast.SThrow:
		t.expr(s.Value.Data)
	case *js_ast.STry:
		t.stmts(s.Body)
		if s.Catch != nil {
			if s.Catch.Binding != nil {
				t.binding(*s.Catch.Binding)
			}
			t.stmts(s.Catch.Body)
		}
		if s.Finally != nil {
			t.stmts(*s.Finally)
		}
	case *js_ast.SSwitch:
		t.expr(s.Test.Data)
		for _, c := range s.Cases {
			if c.Test != nil {
				t.expr(c.Test.Data)
			}
			t.stmts(c.Body)
		}
	case *js_ast.SLabel:
		t.stmt(s.Stmt.Data)
	case *js_ast.SExportDefault:
		switch {
		case s.Fn != nil:
			t.fn(*s.Fn)
		case s.Class != nil:
			t.class(*s.Class)
		default:
			t.expr(s.Value.Data)
		}
	case *js_ast.SExportClause:
		for _, item := range s.Items {
			if item.Name.Ref.IsValid() {
				t.visit(item.Name.Ref)
			}
		}
	}
	// SImport, SExportStar, SBreak, SContinue, SEmpty, SDebugger,
	// SOpaqueType: no nested identifier uses to collect.
}

func (t *traverser) binding(b js_ast.Binding) {
	switch d := b.Data.(type) {
	case *js_ast.BArray:
		for _, item := range d.Items {
			t.binding(item.Binding)
			if item.DefaultValue != nil {
				t.expr(item.DefaultValue.Data)
			}
		}
	case *js_ast.BObject:
		for _, prop := range d.Properties {
			if prop.Key.IsComputed {
				t.expr(prop.Key.Computed.Data)
			}
			t.binding(prop.Value)
			if prop.DefaultValue != nil {
				t.expr(prop.DefaultValue.Data)
			}
		}
	}
}

func (t *traverser) fn(fn js_ast.Fn) {
	for _, a := range fn.Args {
		t.binding(a.Binding)
		if a.DefaultValue != nil {
			t.expr(a.DefaultValue.Data)
		}
	}
	if fn.ArrowExpr != nil {
		t.expr(fn.ArrowExpr.Data)
		return
	}
	t.stmts(fn.Body)
}

func (t *traverser) class(c js_ast.Class) {
	if c.Extends != nil {
		t.expr(c.Extends.Data)
	}
	for _, member := range c.Properties {
		if member.Key.IsComputed {
			t.expr(member.Key.Computed.Data)
		}
		if member.Fn != nil {
			t.fn(*member.Fn)
		}
		if member.Value != nil {
			t.expr(member.Value.Data)
		}
	}
}

func (t *traverser) exprs(list []js_ast.Expr) {
	for _, e := range list {
		t.expr(e.Data)
	}
}

func (t *traverser) arrayItems(items []js_ast.ArrayItem) {
	for _, item := range items {
		t.expr(item.Value.Data)
	}
}

func (t *traverser) expr(data js_ast.E) {
	switch e := data.(type) {
	case *js_ast.EIdentifier:
		if e.Ref.IsValid() {
			t.visit(e.Ref)
		}
	case *js_ast.ETemplate:
		if e.TagFn != nil {
			t.expr(e.TagFn.Data)
		}
		for _, part := range e.Parts {
			t.expr(part.Value.Data)
		}
	case *js_ast.EArray:
		for _, item := range e.Items {
			t.expr(item.Value.Data)
		}
	case *js_ast.EObject:
		for _, prop := range e.Properties {
			if prop.Key.IsComputed {
				t.expr(prop.Key.Computed.Data)
			}
			if prop.Value != nil {
				t.expr(prop.Value.Data)
			}
		}
	case *js_ast.EFunction:
		t.fn(e.Fn)
	case *js_ast.EClass:
		t.class(e.Class)
	case *js_ast.EUnary:
		t.expr(e.Value.Data)
	case *js_ast.EBinary:
		t.expr(e.Left.Data)
		t.expr(e.Right.Data)
	case *js_ast.EAssign:
		t.expr(e.Target.Data)
		t.expr(e.Value.Data)
	case *js_ast.ECall:
		t.expr(e.Callee.Data)
		t.arrayItems(e.Args)
	case *js_ast.ENew:
		t.expr(e.Callee.Data)
		t.arrayItems(e.Args)
	case *js_ast.EMember:
		t.expr(e.Obj.Data)
		if e.PropExpr != nil {
			t.expr(e.PropExpr.Data)
		}
	case *js_ast.ESpread:
		t.expr(e.Value.Data)
	case *js_ast.ECond:
		t.expr(e.Test.Data)
		t.expr(e.Yes.Data)
		t.expr(e.No.Data)
	case *js_ast.ESequence:
		t.exprs(e.Exprs)
	case *js_ast.EYield:
		if e.Value != nil {
			t.expr(e.Value.Data)
		}
	case *js_ast.EAwait:
		t.expr(e.Value.Data)
	case *js_ast.EJSXElement:
		if e.TagRef != nil && e.TagRef.IsValid() {
			t.visit(*e.TagRef)
		}
		for _, a := range e.Attrs {
			if a.Value != nil {
				t.expr(a.Value.Data)
			}
			if a.SpreadExpr != nil {
				t.expr(a.SpreadExpr.Data)
			}
		}
		for _, child := range e.Children {
			if child.Expr != nil {
				t.expr(child.Expr.Data)
			}
			if child.Element != nil {
				t.expr(child.Element)
			}
		}
	}
	// EIdentifier handled above; ENumber/EString/EBoolean/ENull/EUndefined/
	// EThis/ESuper/ERegExp are leaves with no nested identifier uses.
}
