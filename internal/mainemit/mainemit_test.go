package mainemit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routechunk/routechunk/internal/gateway"
)

func TestEmitTwoIndependentExportsOmittingBothYieldsNone(t *testing.T) {
	source := `import { a } from "a"; import { b } from "b";
export const x = a();
export const y = b();
`
	_, ok, err := Emit(source, []string{"x", "y"}, gateway.PrinterOptions{}, "routes/independent.route.tsx")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmitSharedHelperOmittingNonChunkableExportsLeavesInputUntouched(t *testing.T) {
	source := `function h() {}
export const x = h();
export const y = h();
`
	// x and y are both non-chunkable (they share h), so listing them as
	// omitted must have no effect: the Main Emitter only actually omits
	// exports the Oracle also deems chunkable.
	untouched, ok, err := Emit(source, nil, gateway.PrinterOptions{}, "routes/shared.route.tsx")
	require.NoError(t, err)
	require.True(t, ok)

	withOmission, ok, err := Emit(source, []string{"x", "y"}, gateway.PrinterOptions{}, "routes/shared.route.tsx")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, untouched, withOmission)
}

func TestEmitDefaultExportOmittingDefault(t *testing.T) {
	source := `import d from "d"; export default d; export const x = 1;`
	code, ok, err := Emit(source, []string{"default"}, gateway.PrinterOptions{}, "routes/default.route.tsx")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "export const x = 1;\n", code)
}

func TestEmitSideEffectImportPreservedWhenOmittingUnrelatedExport(t *testing.T) {
	source := `import "side"; export const x = 1; export const y = 2;`
	code, ok, err := Emit(source, []string{"x"}, gateway.PrinterOptions{}, "routes/side-effect.route.tsx")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "import \"side\";\nexport const y = 2;\n", code)
}

func TestEmitReExportPassthroughPreservedWhenOmittingUnrelatedExport(t *testing.T) {
	source := `export * from "a"; export const x = 1;`
	code, ok, err := Emit(source, []string{"x"}, gateway.PrinterOptions{}, "routes/reexport.route.tsx")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "export * from \"a\";\n", code)
}

func TestEmitListedButNonChunkableExportIsLeftInPlace(t *testing.T) {
	source := `import { k } from "k"; export const x = k; export const y = k;`
	code, ok, err := Emit(source, []string{"x"}, gateway.PrinterOptions{}, "routes/shared-import.route.tsx")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "import {k} from \"k\";\nexport const x = k;\nexport const y = k;\n", code)
}
