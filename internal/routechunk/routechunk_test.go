package routechunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routechunk/routechunk/internal/gateway"
)

const routeSource = `import { a } from "a"; import { b } from "b";
export const clientAction = a();
export const clientLoader = b();
export const Component = 1;
`

func TestDetectReportsEachConfiguredChunkName(t *testing.T) {
	d, err := Detect(routeSource, "routes/products.route.tsx")
	require.NoError(t, err)
	assert.True(t, d.HasChunk["clientAction"])
	assert.True(t, d.HasChunk["clientLoader"])
	assert.True(t, d.HasAny)
}

func TestDetectReportsNoneWhenSharedHelperPreventsChunking(t *testing.T) {
	source := `function h() {}
export const clientAction = h();
export const clientLoader = h();
`
	d, err := Detect(source, "routes/shared.route.tsx")
	require.NoError(t, err)
	assert.False(t, d.HasChunk["clientAction"])
	assert.False(t, d.HasChunk["clientLoader"])
	assert.False(t, d.HasAny)
}

func TestIsKnownChunkName(t *testing.T) {
	assert.True(t, IsKnownChunkName("main"))
	assert.True(t, IsKnownChunkName("clientAction"))
	assert.True(t, IsKnownChunkName("clientLoader"))
	assert.False(t, IsKnownChunkName("clientMiddleware"))
}

func TestSetChunkableExportNamesOverridesTheConfiguredList(t *testing.T) {
	original := ChunkableExportNames
	defer SetChunkableExportNames(original)

	SetChunkableExportNames([]string{"clientMiddleware"})
	assert.True(t, IsKnownChunkName("clientMiddleware"))
	assert.False(t, IsKnownChunkName("clientAction"))
}

func TestGetChunkDispatchesToChunkEmitterForNamedExports(t *testing.T) {
	code, ok, err := GetChunk(routeSource, "clientAction", gateway.PrinterOptions{}, "routes/products.route.tsx")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, code, "export const clientAction = a();")
	assert.NotContains(t, code, "clientLoader")
}

func TestGetChunkDispatchesToMainEmitterForMain(t *testing.T) {
	code, ok, err := GetChunk(routeSource, MainChunkName, gateway.PrinterOptions{}, "routes/products.route.tsx")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, code, "clientAction")
	assert.NotContains(t, code, "clientLoader")
	assert.Contains(t, code, "Component")
}

func TestServiceDetectAndGetChunkAgreeWithTheUncachedFacade(t *testing.T) {
	svc := NewService()

	uncached, err := Detect(routeSource, "routes/products.route.tsx")
	require.NoError(t, err)
	cached, err := svc.Detect(routeSource, "routes/products.route.tsx")
	require.NoError(t, err)
	assert.Equal(t, uncached.HasChunk, cached.HasChunk)
	assert.Equal(t, uncached.HasAny, cached.HasAny)

	uncachedCode, uncachedOk, err := GetChunk(routeSource, "clientAction", gateway.PrinterOptions{}, "routes/products.route.tsx")
	require.NoError(t, err)
	cachedCode, cachedOk, err := svc.GetChunk(routeSource, "clientAction", gateway.PrinterOptions{}, "routes/products.route.tsx")
	require.NoError(t, err)
	assert.Equal(t, uncachedOk, cachedOk)
	assert.Equal(t, uncachedCode, cachedCode)
}

func TestServiceCachesRepeatedCallsForTheSameSource(t *testing.T) {
	svc := NewService()

	first, ok, err := svc.GetChunk(routeSource, "clientAction", gateway.PrinterOptions{}, "routes/products.route.tsx")
	require.NoError(t, err)
	require.True(t, ok)

	second, ok, err := svc.GetChunk(routeSource, "clientAction", gateway.PrinterOptions{}, "routes/products.route.tsx")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, first, second)
}

func TestServiceDeleteForcesRecomputeOnNextCall(t *testing.T) {
	svc := NewService()

	_, err := svc.Detect(routeSource, "routes/products.route.tsx")
	require.NoError(t, err)

	svc.Delete("routes/products.route.tsx")

	changed := `export const clientAction = 1;
export const clientLoader = 2;
`
	d, err := svc.Detect(changed, "routes/products.route.tsx")
	require.NoError(t, err)
	assert.True(t, d.HasChunk["clientAction"])
	assert.True(t, d.HasChunk["clientLoader"])
}
