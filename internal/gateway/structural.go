package gateway

import "github.com/routechunk/routechunk/internal/js_ast"

// StructuralEquals reports deep equivalence of two statements, ignoring
// source positions/comments and ignoring the numeric identity of Refs —
// only resolved against programA/programB can two Refs be compared, and the
// right comparison is "do these Refs denote bindings with the same original
// name", because the Chunk/Main Emitters call this to find, in a *freshly
// re-parsed* copy of the same source, the statement the Analyzer identified
// in a different parse of that source. Two independent parses never share
// Ref values, so reference-identity comparison would always fail.
func StructuralEquals(programA *js_ast.Program, a js_ast.Stmt, programB *js_ast.Program, b js_ast.Stmt) bool {
	c := &comparer{a: programA, b: programB}
	return c.stmt(a.Data, b.Data)
}

type comparer struct {
	a, b *js_ast.Program
}

func (c *comparer) name(onA bool, ref js_ast.Ref) string {
	if !ref.IsValid() {
		return ""
	}
	if onA {
		return c.a.SymbolFor(ref).OriginalName
	}
	return c.b.SymbolFor(ref).OriginalName
}

func (c *comparer) refEq(a, b js_ast.Ref) bool {
	return c.name(true, a) == c.name(false, b)
}

func (c *comparer) locRefEq(a, b js_ast.LocRef) bool { return c.refEq(a.Ref, b.Ref) }

func (c *comparer) stmtSlice(a, b []js_ast.Stmt) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !c.stmt(a[i].Data, b[i].Data) {
			return false
		}
	}
	return true
}

func (c *comparer) stmt(a, b js_ast.S) bool {
	switch av := a.(type) {
	case *js_ast.SImport:
		bv, ok := b.(*js_ast.SImport)
		if !ok || av.Source != bv.Source || av.SideEffectOnly != bv.SideEffectOnly {
			return false
		}
		if (av.DefaultName == nil) != (bv.DefaultName == nil) {
			return false
		}
		if av.DefaultName != nil && !c.locRefEq(*av.DefaultName, *bv.DefaultName) {
			return false
		}
		if (av.NamespaceRef == nil) != (bv.NamespaceRef == nil) {
			return false
		}
		if av.NamespaceRef != nil && !c.locRefEq(*av.NamespaceRef, *bv.NamespaceRef) {
			return false
		}
		return c.clauseItems(av.Items, bv.Items)

	case *js_ast.SExportClause:
		bv, ok := b.(*js_ast.SExportClause)
		if !ok || (av.FromSource == nil) != (bv.FromSource == nil) {
			return false
		}
		if av.FromSource != nil && *av.FromSource != *bv.FromSource {
			return false
		}
		return c.clauseItems(av.Items, bv.Items)

	case *js_ast.SExportStar:
		bv, ok := b.(*js_ast.SExportStar)
		if !ok || av.Source != bv.Source {
			return false
		}
		if (av.Alias == nil) != (bv.Alias == nil) {
			return false
		}
		return av.Alias == nil || *av.Alias == *bv.Alias

	case *js_ast.SExportDefault:
		bv, ok := b.(*js_ast.SExportDefault)
		if !ok {
			return false
		}
		if (av.Fn != nil) != (bv.Fn != nil) || (av.Class != nil) != (bv.Class != nil) {
			return false
		}
		if av.Fn != nil {
			return c.fn(*av.Fn, *bv.Fn)
		}
		if av.Class != nil {
			return c.class(*av.Class, *bv.Class)
		}
		return c.expr(av.Value, bv.Value)

	case *js_ast.SVarDecl:
		bv, ok := b.(*js_ast.SVarDecl)
		if !ok || av.Kind != bv.Kind || av.IsExport != bv.IsExport || len(av.Decls) != len(bv.Decls) {
			return false
		}
		for i := range av.Decls {
			if !c.binding(av.Decls[i].Binding, bv.Decls[i].Binding) {
				return false
			}
			if (av.Decls[i].Value == nil) != (bv.Decls[i].Value == nil) {
				return false
			}
			if av.Decls[i].Value != nil && !c.expr(*av.Decls[i].Value, *bv.Decls[i].Value) {
				return false
			}
		}
		return true

	case *js_ast.SFunctionDecl:
		bv, ok := b.(*js_ast.SFunctionDecl)
		return ok && av.IsExport == bv.IsExport && c.locRefEq(av.Name, bv.Name) && c.fn(av.Fn, bv.Fn)

	case *js_ast.SClassDecl:
		bv, ok := b.(*js_ast.SClassDecl)
		return ok && av.IsExport == bv.IsExport && c.locRefEq(av.Name, bv.Name) && c.class(av.Class, bv.Class)

	case *js_ast.SExpr:
		bv, ok := b.(*js_ast.SExpr)
		return ok && c.expr(av.Value, bv.Value)

	case *js_ast.SOpaqueType:
		bv, ok := b.(*js_ast.SOpaqueType)
		return ok && av.Raw == bv.Raw && av.IsExport == bv.IsExport

	case *js_ast.SEmpty:
		_, ok := b.(*js_ast.SEmpty)
		return ok

	case *js_ast.SReturn:
		bv, ok := b.(*js_ast.SReturn)
		if !ok || (av.Value == nil) != (bv.Value == nil) {
			return false
		}
		return av.Value == nil || c.expr(*av.Value, *bv.Value)

	case *js_ast.SBlock:
		bv, ok := b.(*js_ast.SBlock)
		return ok && c.stmtSlice(av.Stmts, bv.Stmts)

	default:
		// Control-flow statements (if/for/while/try/switch/...) are not
		// expected to be top-level export-owning statements in route modules;
		// fall back to a conservative "not equal" rather than a panic so an
		// emitter mismatch surfaces as a clear diagnostic instead of a crash.
		return false
	}
}

func (c *comparer) clauseItems(a, b []js_ast.ClauseItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Alias != b[i].Alias || a[i].AliasIsStringLit != b[i].AliasIsStringLit {
			return false
		}
		if !c.locRefEq(a[i].Name, b[i].Name) {
			return false
		}
	}
	return true
}

func (c *comparer) fn(a, b js_ast.Fn) bool {
	if a.IsAsync != b.IsAsync || a.IsGenerator != b.IsGenerator || a.IsArrow != b.IsArrow || len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if !c.binding(a.Args[i].Binding, b.Args[i].Binding) || a.Args[i].IsRest != b.Args[i].IsRest {
			return false
		}
	}
	if (a.ArrowExpr == nil) != (b.ArrowExpr == nil) {
		return false
	}
	if a.ArrowExpr != nil {
		return c.expr(*a.ArrowExpr, *b.ArrowExpr)
	}
	return c.stmtSlice(a.Body, b.Body)
}

func (c *comparer) class(a, b js_ast.Class) bool {
	if (a.Extends == nil) != (b.Extends == nil) || len(a.Properties) != len(b.Properties) {
		return false
	}
	if a.Extends != nil && !c.expr(*a.Extends, *b.Extends) {
		return false
	}
	for i := range a.Properties {
		pa, pb := a.Properties[i], b.Properties[i]
		if pa.Kind != pb.Kind || pa.IsStatic != pb.IsStatic || !c.propertyKey(pa.Key, pb.Key) {
			return false
		}
		if (pa.Fn == nil) != (pb.Fn == nil) {
			return false
		}
		if pa.Fn != nil && !c.fn(*pa.Fn, *pb.Fn) {
			return false
		}
		if (pa.Value == nil) != (pb.Value == nil) {
			return false
		}
		if pa.Value != nil && !c.expr(*pa.Value, *pb.Value) {
			return false
		}
	}
	return true
}

func (c *comparer) propertyKey(a, b js_ast.PropertyKey) bool {
	if a.IsComputed != b.IsComputed {
		return false
	}
	if a.IsComputed {
		return c.expr(*a.Computed, *b.Computed)
	}
	return a.Name == b.Name
}

func (c *comparer) binding(a, b js_ast.Binding) bool {
	switch av := a.Data.(type) {
	case *js_ast.BIdentifier:
		bv, ok := b.Data.(*js_ast.BIdentifier)
		return ok && c.refEq(av.Ref, bv.Ref)
	case *js_ast.BArray:
		bv, ok := b.Data.(*js_ast.BArray)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if av.Items[i].IsSpread != bv.Items[i].IsSpread {
				return false
			}
			if !c.binding(av.Items[i].Binding, bv.Items[i].Binding) {
				return false
			}
		}
		return true
	case *js_ast.BObject:
		bv, ok := b.Data.(*js_ast.BObject)
		if !ok || len(av.Properties) != len(bv.Properties) {
			return false
		}
		for i := range av.Properties {
			if av.Properties[i].IsSpread != bv.Properties[i].IsSpread {
				return false
			}
			if !c.propertyKey(av.Properties[i].Key, bv.Properties[i].Key) {
				return false
			}
			if !c.binding(av.Properties[i].Value, bv.Properties[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (c *comparer) exprSlice(a, b []js_ast.Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !c.expr(a[i], b[i]) {
			return false
		}
	}
	return true
}

func (c *comparer) arrayItems(a, b []js_ast.ArrayItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].IsSpread != b[i].IsSpread || !c.expr(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

func (c *comparer) expr(a, b js_ast.Expr) bool {
	switch av := a.Data.(type) {
	case *js_ast.EIdentifier:
		bv, ok := b.Data.(*js_ast.EIdentifier)
		return ok && c.refEq(av.Ref, bv.Ref)
	case *js_ast.ENumber:
		bv, ok := b.Data.(*js_ast.ENumber)
		return ok && av.Raw == bv.Raw
	case *js_ast.EString:
		bv, ok := b.Data.(*js_ast.EString)
		return ok && av.Value == bv.Value
	case *js_ast.EBoolean:
		bv, ok := b.Data.(*js_ast.EBoolean)
		return ok && av.Value == bv.Value
	case *js_ast.ENull:
		_, ok := b.Data.(*js_ast.ENull)
		return ok
	case *js_ast.EUndefined:
		_, ok := b.Data.(*js_ast.EUndefined)
		return ok
	case *js_ast.EThis:
		_, ok := b.Data.(*js_ast.EThis)
		return ok
	case *js_ast.ESuper:
		_, ok := b.Data.(*js_ast.ESuper)
		return ok
	case *js_ast.ERegExp:
		bv, ok := b.Data.(*js_ast.ERegExp)
		return ok && av.Raw == bv.Raw
	case *js_ast.ETemplate:
		bv, ok := b.Data.(*js_ast.ETemplate)
		if !ok || av.HeadRaw != bv.HeadRaw || len(av.Parts) != len(bv.Parts) {
			return false
		}
		if (av.TagFn == nil) != (bv.TagFn == nil) {
			return false
		}
		if av.TagFn != nil && !c.expr(*av.TagFn, *bv.TagFn) {
			return false
		}
		for i := range av.Parts {
			if av.Parts[i].Raw != bv.Parts[i].Raw || !c.expr(av.Parts[i].Value, bv.Parts[i].Value) {
				return false
			}
		}
		return true
	case *js_ast.EArray:
		bv, ok := b.Data.(*js_ast.EArray)
		return ok && c.arrayItems(av.Items, bv.Items)
	case *js_ast.EObject:
		bv, ok := b.Data.(*js_ast.EObject)
		if !ok || len(av.Properties) != len(bv.Properties) {
			return false
		}
		for i := range av.Properties {
			pa, pb := av.Properties[i], bv.Properties[i]
			if pa.Kind != pb.Kind || pa.IsShorthand != pb.IsShorthand || !c.propertyKey(pa.Key, pb.Key) {
				return false
			}
			if (pa.Value == nil) != (pb.Value == nil) {
				return false
			}
			if pa.Value != nil && !c.expr(*pa.Value, *pb.Value) {
				return false
			}
		}
		return true
	case *js_ast.EFunction:
		bv, ok := b.Data.(*js_ast.EFunction)
		return ok && c.fn(av.Fn, bv.Fn)
	case *js_ast.EClass:
		bv, ok := b.Data.(*js_ast.EClass)
		return ok && c.class(av.Class, bv.Class)
	case *js_ast.EUnary:
		bv, ok := b.Data.(*js_ast.EUnary)
		return ok && av.Op == bv.Op && av.Prefix == bv.Prefix && c.expr(av.Value, bv.Value)
	case *js_ast.EBinary:
		bv, ok := b.Data.(*js_ast.EBinary)
		return ok && av.Op == bv.Op && c.expr(av.Left, bv.Left) && c.expr(av.Right, bv.Right)
	case *js_ast.EAssign:
		bv, ok := b.Data.(*js_ast.EAssign)
		return ok && av.Op == bv.Op && c.expr(av.Target, bv.Target) && c.expr(av.Value, bv.Value)
	case *js_ast.ECall:
		bv, ok := b.Data.(*js_ast.ECall)
		return ok && av.OptionalChain == bv.OptionalChain && c.expr(av.Callee, bv.Callee) && c.arrayItems(av.Args, bv.Args)
	case *js_ast.ENew:
		bv, ok := b.Data.(*js_ast.ENew)
		return ok && c.expr(av.Callee, bv.Callee) && c.arrayItems(av.Args, bv.Args)
	case *js_ast.EMember:
		bv, ok := b.Data.(*js_ast.EMember)
		if !ok || av.OptionalChain != bv.OptionalChain || !c.expr(av.Obj, bv.Obj) {
			return false
		}
		if (av.PropExpr == nil) != (bv.PropExpr == nil) {
			return false
		}
		if av.PropExpr != nil {
			return c.expr(*av.PropExpr, *bv.PropExpr)
		}
		return av.PropName == bv.PropName
	case *js_ast.ESpread:
		bv, ok := b.Data.(*js_ast.ESpread)
		return ok && c.expr(av.Value, bv.Value)
	case *js_ast.ECond:
		bv, ok := b.Data.(*js_ast.ECond)
		return ok && c.expr(av.Test, bv.Test) && c.expr(av.Yes, bv.Yes) && c.expr(av.No, bv.No)
	case *js_ast.ESequence:
		bv, ok := b.Data.(*js_ast.ESequence)
		return ok && c.exprSlice(av.Exprs, bv.Exprs)
	case *js_ast.EYield:
		bv, ok := b.Data.(*js_ast.EYield)
		if !ok || av.IsDelegate != bv.IsDelegate || (av.Value == nil) != (bv.Value == nil) {
			return false
		}
		return av.Value == nil || c.expr(*av.Value, *bv.Value)
	case *js_ast.EAwait:
		bv, ok := b.Data.(*js_ast.EAwait)
		return ok && c.expr(av.Value, bv.Value)
	case *js_ast.EJSXElement:
		bv, ok := b.Data.(*js_ast.EJSXElement)
		if !ok || av.TagName != bv.TagName || av.SelfClosing != bv.SelfClosing || av.IsFragment != bv.IsFragment {
			return false
		}
		if len(av.Attrs) != len(bv.Attrs) || len(av.Children) != len(bv.Children) {
			return false
		}
		for i := range av.Attrs {
			aa, ab := av.Attrs[i], bv.Attrs[i]
			if aa.Name != ab.Name || (aa.Value == nil) != (ab.Value == nil) || (aa.SpreadExpr == nil) != (ab.SpreadExpr == nil) {
				return false
			}
			if aa.Value != nil && !c.expr(*aa.Value, *ab.Value) {
				return false
			}
			if aa.SpreadExpr != nil && !c.expr(*aa.SpreadExpr, *ab.SpreadExpr) {
				return false
			}
		}
		for i := range av.Children {
			ca, cb := av.Children[i], bv.Children[i]
			if (ca.Text == nil) != (cb.Text == nil) || (ca.Expr == nil) != (cb.Expr == nil) || (ca.Element == nil) != (cb.Element == nil) {
				return false
			}
			if ca.Text != nil && *ca.Text != *cb.Text {
				return false
			}
			if ca.Expr != nil && !c.expr(*ca.Expr, *cb.Expr) {
				return false
			}
			if ca.Element != nil {
				if !c.expr(js_ast.Expr{Data: ca.Element}, js_ast.Expr{Data: cb.Element}) {
					return false
				}
			}
		}
		return true
	default:
		return false
	}
}
