package js_parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routechunk/routechunk/internal/js_ast"
)

// callRef returns the Ref that a function declaration's single
// "return someName();" body statement resolved someName to.
func callRef(t *testing.T, stmt js_ast.Stmt) js_ast.Ref {
	t.Helper()
	switch s := stmt.Data.(type) {
	case *js_ast.SFunctionDecl:
		for _, bodyStmt := range s.Fn.Body {
			ret, ok := bodyStmt.Data.(*js_ast.SReturn)
			require.True(t, ok, "expected a return statement in function body")
			call, ok := ret.Value.Data.(*js_ast.ECall)
			require.True(t, ok, "expected a call expression in return value")
			ident, ok := call.Callee.Data.(*js_ast.EIdentifier)
			require.True(t, ok, "expected an identifier call target")
			return ident.Ref
		}
	}
	t.Fatalf("unexpected statement kind %T", stmt.Data)
	return js_ast.Ref{}
}

func TestParseResolvesForwardReferenceToATopLevelFunctionDeclaration(t *testing.T) {
	source := `export function clientLoader() { return shared(); }
function shared() { return 1; }
export function clientAction() { return shared(); }
`
	prog, err := Parse(source, "routes/forward.route.tsx")
	require.NoError(t, err)
	require.Len(t, prog.Body, 3)

	loaderRef := callRef(t, prog.Body[0])
	actionRef := callRef(t, prog.Body[2])

	require.True(t, loaderRef.IsValid(), "clientLoader's forward reference to shared must resolve")
	require.True(t, actionRef.IsValid())

	sharedSymbol := prog.SymbolFor(loaderRef)
	assert.Equal(t, "shared", sharedSymbol.OriginalName)
	assert.Equal(t, 1, sharedSymbol.TopLevelStmtIndex)

	// Both call sites must resolve to a symbol tagged with shared's own
	// statement index, which is what the Analyzer's BFS keys off of — not
	// Ref identity, since the pre-scan and the real parse create distinct
	// Ref values for the same hoisted declaration.
	assert.Equal(t, 1, prog.SymbolFor(actionRef).TopLevelStmtIndex)
}

func TestParseResolvesForwardReferenceToASiblingFunctionInTheSameBody(t *testing.T) {
	source := `export function clientAction() {
	helper();
	function helper() { return 1; }
}
`
	prog, err := Parse(source, "routes/forward_body.route.tsx")
	require.NoError(t, err)
	require.Len(t, prog.Body, 1)

	decl, ok := prog.Body[0].Data.(*js_ast.SFunctionDecl)
	require.True(t, ok)
	require.Len(t, decl.Fn.Body, 2)

	exprStmt, ok := decl.Fn.Body[0].Data.(*js_ast.SExpr)
	require.True(t, ok)
	call, ok := exprStmt.Value.Data.(*js_ast.ECall)
	require.True(t, ok)
	ident, ok := call.Callee.Data.(*js_ast.EIdentifier)
	require.True(t, ok)

	require.True(t, ident.Ref.IsValid(), "helper's forward reference within the same function body must resolve")
	assert.Equal(t, "helper", prog.SymbolFor(ident.Ref).OriginalName)
}

func TestParseStillReportsAGenuinelyUndeclaredIdentifierAsInvalid(t *testing.T) {
	source := `export function clientLoader() { return neverDeclared(); }`
	prog, err := Parse(source, "routes/undeclared.route.tsx")
	require.NoError(t, err)

	ref := callRef(t, prog.Body[0])
	assert.False(t, ref.IsValid())
}
