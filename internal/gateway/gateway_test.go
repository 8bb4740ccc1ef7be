package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routechunk/routechunk/internal/js_ast"
)

func TestParseAndGenerateRoundTrip(t *testing.T) {
	source := `export const x = 1;
export const y = 2;
`
	program, err := Parse(source, "routes/roundtrip.route.tsx")
	require.NoError(t, err)
	assert.Equal(t, source, Generate(program, PrinterOptions{}))
}

func TestGenerateStmtsPrintsOnlyTheGivenSubset(t *testing.T) {
	source := `export const x = 1;
export const y = 2;
`
	program, err := Parse(source, "routes/subset.route.tsx")
	require.NoError(t, err)
	require.Len(t, program.Body, 2)

	code := GenerateStmts(program, program.Body[:1], PrinterOptions{})
	assert.Equal(t, "export const x = 1;\n", code)
}

func TestStructuralEqualsMatchesAcrossIndependentParses(t *testing.T) {
	source := `export const x = 1;
export const y = 2;
`
	programA, err := Parse(source, "routes/independent-a.route.tsx")
	require.NoError(t, err)
	programB, err := Parse(source, "routes/independent-b.route.tsx")
	require.NoError(t, err)

	require.Len(t, programA.Body, 2)
	require.Len(t, programB.Body, 2)

	assert.True(t, StructuralEquals(programA, programA.Body[0], programB, programB.Body[0]))
	assert.True(t, StructuralEquals(programA, programA.Body[1], programB, programB.Body[1]))
	assert.False(t, StructuralEquals(programA, programA.Body[0], programB, programB.Body[1]))
}

func TestStructuralEqualsIgnoresSourcePositions(t *testing.T) {
	programA, err := Parse(`export const x = 1;`, "routes/a.route.tsx")
	require.NoError(t, err)
	programB, err := Parse(`   export const x = 1;`, "routes/b.route.tsx")
	require.NoError(t, err)

	assert.True(t, StructuralEquals(programA, programA.Body[0], programB, programB.Body[0]))
}

func TestStructuralEqualsDistinguishesDifferentValues(t *testing.T) {
	programA, err := Parse(`export const x = 1;`, "routes/a.route.tsx")
	require.NoError(t, err)
	programB, err := Parse(`export const x = 2;`, "routes/b.route.tsx")
	require.NoError(t, err)

	assert.False(t, StructuralEquals(programA, programA.Body[0], programB, programB.Body[0]))
}

func TestTraverseStmtVisitsIdentifierUsesInsideACallExpression(t *testing.T) {
	source := `import { a } from "a";
export const x = a();
`
	program, err := Parse(source, "routes/declaring.route.tsx")
	require.NoError(t, err)
	require.Len(t, program.Body, 2)

	var names []string
	TraverseStmt(program.Body[1], func(ref js_ast.Ref) {
		names = append(names, program.SymbolFor(ref).OriginalName)
	})

	assert.Equal(t, []string{"a"}, names)
}

func TestTraverseStmtDoesNotVisitDeclarationBindings(t *testing.T) {
	source := `export const x = 1;`
	program, err := Parse(source, "routes/no-uses.route.tsx")
	require.NoError(t, err)
	require.Len(t, program.Body, 1)

	var names []string
	TraverseStmt(program.Body[0], func(ref js_ast.Ref) {
		names = append(names, program.SymbolFor(ref).OriginalName)
	})

	assert.Empty(t, names)
}

func TestDeclaringTopLevelIndexResolvesImportBindingToItsStatement(t *testing.T) {
	source := `import { a } from "a";
export const x = a();
`
	program, err := Parse(source, "routes/declaring.route.tsx")
	require.NoError(t, err)
	require.Len(t, program.Body, 2)

	var used js_ast.Ref
	TraverseStmt(program.Body[1], func(ref js_ast.Ref) {
		used = ref
	})

	require.True(t, used.IsValid())
	assert.Equal(t, 0, DeclaringTopLevelIndex(program, used))
}

func TestDeclaringTopLevelIndexIsNegativeOneForAnInvalidRef(t *testing.T) {
	source := `export const x = 1;`
	program, err := Parse(source, "routes/invalid-ref.route.tsx")
	require.NoError(t, err)

	assert.Equal(t, -1, DeclaringTopLevelIndex(program, js_ast.InvalidRef))
}
