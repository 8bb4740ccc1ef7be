// Package js_ast defines the module AST used by the route-chunking core.
//
// The shape follows esbuild's internal/js_ast: every statement and
// expression is a thin {Loc, Data} wrapper around an interface, identifiers
// are resolved to a Ref into a per-file symbol table rather than carrying
// their binding inline, and scopes form a tree rooted at the module scope.
// Unlike esbuild this package covers only the subset of ECMAScript/TSX
// needed to classify exports and rewrite top-level statements: there is no
// lowering, no bundler-facing metadata, and type annotations are discarded
// rather than represented.
package js_ast

import "github.com/routechunk/routechunk/internal/logger"

type Loc = logger.Loc

// Ref identifies a symbol in a single file's symbol table. Because this
// package never bundles multiple files together there is no need for
// esbuild's two-part (OuterIndex, InnerIndex) ref; one file, one table.
type Ref struct {
	InnerIndex uint32
	IsNull     bool
}

var InvalidRef = Ref{IsNull: true}

func (r Ref) IsValid() bool { return !r.IsNull }

type LocRef struct {
	Loc Loc
	Ref Ref
}

// SymbolKind records how a binding entered scope. The analyzer uses
// SymbolImport to decide whether a dependent identifier belongs in
// importedIdentifierNames (spec §4.3 step 5) instead of climbing the
// identifier's ancestry to check for an ImportSpecifier grandparent; the two
// are equivalent since every import-introduced binding is tagged at the
// point the parser creates its symbol.
type SymbolKind uint8

const (
	SymbolOther SymbolKind = iota
	SymbolImport
	SymbolHoistedFunction
	SymbolClass
)

type Symbol struct {
	OriginalName string
	Kind         SymbolKind
	// TopLevelStmtIndex is set when this symbol is declared directly by a
	// top-level statement (import, or top-level var/function/class); -1
	// otherwise. Nested bindings (params, block-scoped lets, catch
	// bindings) resolve their owning top-level statement by walking their
	// declaring Scope's ancestry instead (see Program.DeclScope).
	TopLevelStmtIndex int
}

type ScopeKind uint8

const (
	ScopeModule ScopeKind = iota
	ScopeFunction
	ScopeBlock
	ScopeClass
	ScopeCatch
	ScopeFor
)

// Scope mirrors esbuild's js_ast.Scope: a tree of lexical scopes, each
// holding the Refs declared directly within it. StmtIndex records which
// top-level statement owns this scope (by inheritance from Parent, seeded
// at the module scope's direct children); -1 for the module scope itself.
type Scope struct {
	Kind      ScopeKind
	Parent    *Scope
	Children  []*Scope
	Members   map[string]Ref
	StmtIndex int
}

func NewScope(kind ScopeKind, parent *Scope) *Scope {
	s := &Scope{Kind: kind, Parent: parent, Members: make(map[string]Ref), StmtIndex: -1}
	if parent != nil {
		s.StmtIndex = parent.StmtIndex
		parent.Children = append(parent.Children, s)
	}
	return s
}

// Program is the parsed module: an ordered top-level body plus the symbol
// table and scope tree the parser built while visiting it.
type Program struct {
	Body        []Stmt
	Symbols     []Symbol
	ModuleScope *Scope
	// DeclScope maps a Ref back to the *Scope that declares it, so callers
	// can climb from a binding to its enclosing top-level statement.
	DeclScope map[Ref]*Scope
}

func (p *Program) NewSymbol(kind SymbolKind, name string) Ref {
	ref := Ref{InnerIndex: uint32(len(p.Symbols))}
	p.Symbols = append(p.Symbols, Symbol{OriginalName: name, Kind: kind, TopLevelStmtIndex: -1})
	return ref
}

func (p *Program) SymbolFor(ref Ref) *Symbol {
	return &p.Symbols[ref.InnerIndex]
}

// ---------------------------------------------------------------------------
// Statements

type S interface{ isStmt() }

type Stmt struct {
	Loc  Loc
	Data S
}

type SImport struct {
	Source         string
	DefaultName    *LocRef
	NamespaceRef   *LocRef
	Items          []ClauseItem // imported name (Alias) -> local ref (Name.Ref)
	SideEffectOnly bool
}

func (*SImport) isStmt() {}

// ClauseItem is shared between import specifiers (Alias = the name in the
// source module, Name = the local binding) and export specifiers (Alias =
// the exported name, Name.Ref = the local binding being exported).
type ClauseItem struct {
	Alias            string
	AliasIsStringLit bool
	Name             LocRef
}

type SExportClause struct {
	Items      []ClauseItem
	FromSource *string // non-nil for "export { a as b } from './x'"
}

func (*SExportClause) isStmt() {}

type SExportStar struct {
	Alias  *string
	Source string
}

func (*SExportStar) isStmt() {}

type SExportDefault struct {
	Value Expr   // non-nil unless the default export is a function/class declaration
	Fn    *Fn    // non-nil when the default export is a function declaration/expression
	Class *Class // non-nil when the default export is a class declaration/expression
	Name  *LocRef
}

func (*SExportDefault) isStmt() {}

type VarKind uint8

const (
	VarVar VarKind = iota
	VarLet
	VarConst
)

type Decl struct {
	Binding Binding
	Value   *Expr
}

type SVarDecl struct {
	Kind     VarKind
	Decls    []Decl
	IsExport bool
}

func (*SVarDecl) isStmt() {}

type SFunctionDecl struct {
	Name     LocRef
	Fn       Fn
	IsExport bool
}

func (*SFunctionDecl) isStmt() {}

type SClassDecl struct {
	Name     LocRef
	Class    Class
	IsExport bool
}

func (*SClassDecl) isStmt() {}

type SExpr struct{ Value Expr }

func (*SExpr) isStmt() {}

type SReturn struct{ Value *Expr }

func (*SReturn) isStmt() {}

type SIf struct {
	Test Expr
	Yes  Stmt
	No   *Stmt
}

func (*SIf) isStmt() {}

type SBlock struct{ Stmts []Stmt }

func (*SBlock) isStmt() {}

type SFor struct {
	Init   *Stmt
	Test   *Expr
	Update *Expr
	Body   Stmt
}

func (*SFor) isStmt() {}

type SForIn struct {
	Init Stmt
	Expr Expr
	Body Stmt
}

func (*SForIn) isStmt() {}

type SForOf struct {
	IsAwait bool
	Init    Stmt
	Expr    Expr
	Body    Stmt
}

func (*SForOf) isStmt() {}

type SWhile struct {
	Test Expr
	Body Stmt
}

func (*SWhile) isStmt() {}

type SDoWhile struct {
	Body Stmt
	Test Expr
}

func (*SDoWhile) isStmt() {}

type SThrow struct{ Value Expr }

func (*SThrow) isStmt() {}

type Catch struct {
	Binding *Binding
	Body    []Stmt
}

type STry struct {
	Body    []Stmt
	Catch   *Catch
	Finally *[]Stmt
}

func (*STry) isStmt() {}

type Case struct {
	Test *Expr
	Body []Stmt
}

type SSwitch struct {
	Test  Expr
	Cases []Case
}

func (*SSwitch) isStmt() {}

type SBreak struct{ Label *string }

func (*SBreak) isStmt() {}

type SContinue struct{ Label *string }

func (*SContinue) isStmt() {}

type SLabel struct {
	Name string
	Stmt Stmt
}

func (*SLabel) isStmt() {}

type SEmpty struct{}

func (*SEmpty) isStmt() {}

type SDebugger struct{}

func (*SDebugger) isStmt() {}

// SOpaqueType stands in for a TypeScript type-only declaration (type alias,
// interface, ambient declare block, enum) whose internals this analyzer
// never inspects (spec §1 Non-goals: type-level analysis). The raw text is
// kept only so the printer can round-trip it verbatim.
type SOpaqueType struct {
	Raw      string
	IsExport bool
}

func (*SOpaqueType) isStmt() {}

// ---------------------------------------------------------------------------
// Bindings (destructuring targets)

type B interface{ isBinding() }

type Binding struct {
	Loc  Loc
	Data B
}

type BIdentifier struct{ Ref Ref }

func (*BIdentifier) isBinding() {}

type BArrayItem struct {
	Binding      Binding
	DefaultValue *Expr
	IsSpread     bool
}

type BArray struct{ Items []BArrayItem }

func (*BArray) isBinding() {}

type BObjectProperty struct {
	Key          PropertyKey
	Value        Binding
	DefaultValue *Expr
	IsSpread     bool
}

type BObject struct{ Properties []BObjectProperty }

func (*BObject) isBinding() {}

// ---------------------------------------------------------------------------
// Expressions

type E interface{ isExpr() }

type Expr struct {
	Loc  Loc
	Data E
}

type EIdentifier struct{ Ref Ref }

func (*EIdentifier) isExpr() {}

type ENumber struct{ Raw string }

func (*ENumber) isExpr() {}

type EString struct{ Value string }

func (*EString) isExpr() {}

type EBoolean struct{ Value bool }

func (*EBoolean) isExpr() {}

type ENull struct{}

func (*ENull) isExpr() {}

type EUndefined struct{}

func (*EUndefined) isExpr() {}

type EThis struct{}

func (*EThis) isExpr() {}

type ESuper struct{}

func (*ESuper) isExpr() {}

type ERegExp struct{ Raw string }

func (*ERegExp) isExpr() {}

type TemplatePart struct {
	Raw   string
	Value Expr
}

type ETemplate struct {
	HeadRaw string
	Parts   []TemplatePart
	TagFn   *Expr
}

func (*ETemplate) isExpr() {}

type ArrayItem struct {
	Value    Expr
	IsSpread bool
}

type EArray struct{ Items []ArrayItem }

func (*EArray) isExpr() {}

type PropertyKind uint8

const (
	PropertyNormal PropertyKind = iota
	PropertyGet
	PropertySet
	PropertyMethod
	PropertySpread
)

type PropertyKey struct {
	Name       string // for identifier/string keys
	IsComputed bool
	Computed   *Expr
}

type Property struct {
	Kind        PropertyKind
	Key         PropertyKey
	Value       *Expr
	IsShorthand bool
}

type EObject struct{ Properties []Property }

func (*EObject) isExpr() {}

type Arg struct {
	Binding      Binding
	DefaultValue *Expr
	IsRest       bool
}

type Fn struct {
	Args        []Arg
	Body        []Stmt
	IsAsync     bool
	IsGenerator bool
	IsArrow     bool
	ArrowExpr   *Expr // non-nil when an arrow function's body is a bare expression
	Scope       *Scope
}

type EFunction struct{ Fn Fn }

func (*EFunction) isExpr() {}

type ClassPropertyKind uint8

const (
	ClassMethod ClassPropertyKind = iota
	ClassGetter
	ClassSetter
	ClassField
)

type ClassProperty struct {
	Key      PropertyKey
	Kind     ClassPropertyKind
	IsStatic bool
	Fn       *Fn
	Value    *Expr
}

type Class struct {
	Extends    *Expr
	Properties []ClassProperty
	Scope      *Scope
}

type EClass struct{ Class Class }

func (*EClass) isExpr() {}

type EUnary struct {
	Op     string
	Value  Expr
	Prefix bool
}

func (*EUnary) isExpr() {}

type EBinary struct {
	Op    string
	Left  Expr
	Right Expr
}

func (*EBinary) isExpr() {}

type EAssign struct {
	Op     string
	Target Expr
	Value  Expr
}

func (*EAssign) isExpr() {}

type ECall struct {
	Callee        Expr
	Args          []ArrayItem
	OptionalChain bool
}

func (*ECall) isExpr() {}

type ENew struct {
	Callee Expr
	Args   []ArrayItem
}

func (*ENew) isExpr() {}

type EMember struct {
	Obj           Expr
	PropName      string
	PropExpr      *Expr
	OptionalChain bool
}

func (*EMember) isExpr() {}

type ESpread struct{ Value Expr }

func (*ESpread) isExpr() {}

type ECond struct {
	Test Expr
	Yes  Expr
	No   Expr
}

func (*ECond) isExpr() {}

type ESequence struct{ Exprs []Expr }

func (*ESequence) isExpr() {}

type EYield struct {
	Value      *Expr
	IsDelegate bool
}

func (*EYield) isExpr() {}

type EAwait struct{ Value Expr }

func (*EAwait) isExpr() {}

type JSXAttr struct {
	Name       string
	Value      *Expr // nil for a bare boolean attribute
	SpreadExpr *Expr // non-nil for {...expr}
}

type JSXChild struct {
	Text    *string
	Expr    *Expr
	Element *EJSXElement
}

type EJSXElement struct {
	TagName     string
	TagRef      *Ref // set when TagName is a capitalized component reference
	Attrs       []JSXAttr
	Children    []JSXChild
	SelfClosing bool
	IsFragment  bool
}

func (*EJSXElement) isExpr() {}
