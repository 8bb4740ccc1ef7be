package chunkemit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routechunk/routechunk/internal/gateway"
)

func TestEmitTwoIndependentExports(t *testing.T) {
	source := `import { a } from "a"; import { b } from "b";
export const x = a();
export const y = b();
`
	code, ok, err := Emit(source, "x", gateway.PrinterOptions{}, "routes/independent.route.tsx")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "import {a} from \"a\";\nexport const x = a();\n", code)

	code, ok, err = Emit(source, "y", gateway.PrinterOptions{}, "routes/independent.route.tsx")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "import {b} from \"b\";\nexport const y = b();\n", code)
}

func TestEmitSharedHelperIsNotChunkable(t *testing.T) {
	source := `function h() {}
export const x = h();
export const y = h();
`
	_, ok, err := Emit(source, "x", gateway.PrinterOptions{}, "routes/shared.route.tsx")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmitSharedImportSpecifierIsNotChunkable(t *testing.T) {
	source := `import { k } from "k"; export const x = k; export const y = k;`
	_, ok, err := Emit(source, "x", gateway.PrinterOptions{}, "routes/shared-import.route.tsx")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmitDefaultExport(t *testing.T) {
	source := `import d from "d"; export default d; export const x = 1;`
	code, ok, err := Emit(source, "default", gateway.PrinterOptions{}, "routes/default.route.tsx")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "import d from \"d\";\nexport default d;\n", code)
}

func TestEmitReExportPassthroughChunkContainsOnlyTheExport(t *testing.T) {
	source := `export * from "a"; export const x = 1;`
	code, ok, err := Emit(source, "x", gateway.PrinterOptions{}, "routes/reexport.route.tsx")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "export const x = 1;\n", code)
}

func TestEmitUnrecognizedExportNameIsNotOk(t *testing.T) {
	source := `export const x = 1;`
	_, ok, err := Emit(source, "clientLoader", gateway.PrinterOptions{}, "routes/missing.route.tsx")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmitDropsSharedExportedHelperEvenWhenStillDependedOn(t *testing.T) {
	// A literal, deliberate quirk of the spec's restrict-exports algorithm:
	// see DESIGN.md's "Literal restrict-exports behavior" note. clientAction
	// and clientLoader don't conflict on shared() because shared() is itself
	// an export (a module statement), so the Oracle's disjointness check
	// never sees it — but restrictExports still drops it from clientAction's
	// chunk because its own name isn't "clientAction".
	source := `export function shared() { return 1; }
export function clientAction() { return shared(); }
export function clientLoader() { return 2; }
`
	code, ok, err := Emit(source, "clientAction", gateway.PrinterOptions{}, "routes/quirk.route.tsx")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "export function clientAction() {\n  return shared();\n}\n", code)
}
