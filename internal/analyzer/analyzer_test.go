package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeTwoIndependentExports(t *testing.T) {
	source := `import { a } from "a"; import { b } from "b";
export const x = a();
export const y = b();
`
	deps, err := Analyze(source, "routes/products.route.tsx")
	require.NoError(t, err)

	x := deps.Get("x")
	require.NotNil(t, x)
	assert.True(t, x.ImportedIdentifierNames["a"])
	assert.False(t, x.ImportedIdentifierNames["b"])

	y := deps.Get("y")
	require.NotNil(t, y)
	assert.True(t, y.ImportedIdentifierNames["b"])
	assert.False(t, y.ImportedIdentifierNames["a"])
}

func TestAnalyzeSharedHelperAppearsInBothClosures(t *testing.T) {
	source := `function h() {}
export const x = h();
export const y = h();
`
	deps, err := Analyze(source, "routes/shared.route.tsx")
	require.NoError(t, err)

	x := deps.Get("x")
	y := deps.Get("y")
	require.NotNil(t, x)
	require.NotNil(t, y)

	// The index of the shared, non-exported helper statement (0) must be
	// in both exports' non-module dependency sets.
	assert.True(t, x.TopLevelNonModuleStatements[0])
	assert.True(t, y.TopLevelNonModuleStatements[0])
}

func TestAnalyzeSharedHelperDeclaredAfterBothUsersStillAppearsInBothClosures(t *testing.T) {
	// Function declarations are hoisted; clientLoader's forward reference to
	// a helper declared further down the file must resolve exactly like
	// clientAction's backward reference to the same helper.
	source := `export function clientLoader() { return shared(); }
function shared() { return 1; }
export function clientAction() { return shared(); }
`
	deps, err := Analyze(source, "routes/hoisted.route.tsx")
	require.NoError(t, err)

	loader := deps.Get("clientLoader")
	action := deps.Get("clientAction")
	require.NotNil(t, loader)
	require.NotNil(t, action)

	assert.True(t, loader.TopLevelNonModuleStatements[1])
	assert.True(t, action.TopLevelNonModuleStatements[1])
}

func TestAnalyzeDefaultExport(t *testing.T) {
	source := `import d from "d"; export default d; export const x = 1;`
	deps, err := Analyze(source, "routes/default.route.tsx")
	require.NoError(t, err)

	def := deps.Get("default")
	require.NotNil(t, def)
	assert.True(t, def.ImportedIdentifierNames["d"])

	x := deps.Get("x")
	require.NotNil(t, x)
	assert.Empty(t, x.ImportedIdentifierNames)
}

func TestAnalyzeExportStarProducesNoDescriptor(t *testing.T) {
	source := `export * from "a"; export const x = 1;`
	deps, err := Analyze(source, "routes/star.route.tsx")
	require.NoError(t, err)

	assert.NotContains(t, deps.Names, "*")
	x := deps.Get("x")
	require.NotNil(t, x)
}

func TestAnalyzeReExportPassthroughProducesNoDescriptor(t *testing.T) {
	source := `export { a as b } from "a"; export const x = 1;`
	deps, err := Analyze(source, "routes/reexport.route.tsx")
	require.NoError(t, err)

	assert.Nil(t, deps.Get("b"))
	assert.NotNil(t, deps.Get("x"))
}

func TestAnalyzeMultiDeclaratorExportSeedsEachName(t *testing.T) {
	source := `export const a = 1, b = 2;`
	deps, err := Analyze(source, "routes/multi.route.tsx")
	require.NoError(t, err)

	assert.NotNil(t, deps.Get("a"))
	assert.NotNil(t, deps.Get("b"))
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	source := `import { a } from "a";
export const x = a();
export function clientAction() { return x; }
`
	first, err := Analyze(source, "routes/idempotent.route.tsx")
	require.NoError(t, err)
	second, err := Analyze(source, "routes/idempotent.route.tsx")
	require.NoError(t, err)

	assert.ElementsMatch(t, first.Names, second.Names)
	for _, name := range first.Names {
		a, b := first.Get(name), second.Get(name)
		assert.Equal(t, a.TopLevelStatements, b.TopLevelStatements)
		assert.Equal(t, a.TopLevelNonModuleStatements, b.TopLevelNonModuleStatements)
		assert.Equal(t, a.ImportedIdentifierNames, b.ImportedIdentifierNames)
	}
}

func TestAnalyzeRejectsDestructuredExportDeclarator(t *testing.T) {
	source := `export const { a } = obj;`
	_, err := Analyze(source, "routes/destructure.route.tsx")
	assert.Error(t, err)
}
