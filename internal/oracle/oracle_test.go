package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routechunk/routechunk/internal/analyzer"
)

func analyze(t *testing.T, source string) *analyzer.Dependencies {
	t.Helper()
	deps, err := analyzer.Analyze(source, "routes/test.route.tsx")
	require.NoError(t, err)
	return deps
}

func TestIsChunkableTwoIndependentExports(t *testing.T) {
	deps := analyze(t, `import { a } from "a"; import { b } from "b";
export const x = a();
export const y = b();
`)
	assert.True(t, IsChunkable(deps, "x"))
	assert.True(t, IsChunkable(deps, "y"))
}

func TestIsChunkableSharedHelperIsNotChunkable(t *testing.T) {
	deps := analyze(t, `function h() {}
export const x = h();
export const y = h();
`)
	assert.False(t, IsChunkable(deps, "x"))
	assert.False(t, IsChunkable(deps, "y"))
}

func TestIsChunkableSharedHelperDeclaredAfterBothUsersIsNotChunkable(t *testing.T) {
	// shared() is declared below both exports that call it; hoisting makes
	// clientLoader's forward reference resolve exactly like clientAction's
	// backward one, so neither closure is actually independent.
	deps := analyze(t, `export function clientLoader() { return shared(); }
function shared() { return 1; }
export function clientAction() { return shared(); }
`)
	assert.False(t, IsChunkable(deps, "clientLoader"))
	assert.False(t, IsChunkable(deps, "clientAction"))
}

func TestIsChunkableSharedImportSpecifierIsNotChunkable(t *testing.T) {
	deps := analyze(t, `import { k } from "k"; export const x = k; export const y = k;`)
	assert.False(t, IsChunkable(deps, "x"))
	assert.False(t, IsChunkable(deps, "y"))
}

func TestIsChunkableReExportPassthrough(t *testing.T) {
	deps := analyze(t, `export * from "a"; export const x = 1;`)
	assert.True(t, IsChunkable(deps, "x"))
}

func TestIsChunkableUnrecognizedNameIsFalse(t *testing.T) {
	deps := analyze(t, `export const x = 1;`)
	assert.False(t, IsChunkable(deps, "clientLoader"))
}

func TestChunkableNamesPreservesCandidateOrderAndFiltersNonChunkable(t *testing.T) {
	deps := analyze(t, `function h() {}
export const clientAction = h();
export const clientLoader = h();
export const z1 = 1;
export const z2 = 2;
`)
	got := ChunkableNames(deps, []string{"clientAction", "z2", "clientLoader", "z1"})
	assert.Equal(t, []string{"z2", "z1"}, got)
}
