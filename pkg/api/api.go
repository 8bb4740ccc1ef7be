// Package api is the public entry point for the route-chunking analyzer,
// mirroring esbuild's own pkg/api/internal split: this package exposes a
// small, stable surface over the internal pipeline in internal/routechunk,
// internal/analyzer, and internal/gateway, none of which a caller outside
// this module can import directly.
package api

import (
	"github.com/routechunk/routechunk/internal/gateway"
	"github.com/routechunk/routechunk/internal/routechunk"
)

// PrinterOptions controls how emitted chunk/main source is serialized.
// Indent is the string repeated once per nesting level (esbuild's printer
// defaults to two spaces; this repository follows the same default).
type PrinterOptions = gateway.PrinterOptions

// ChunkableExportNames is the closed list of export names the facade
// recognizes as candidate chunks, in addition to "main"; it can be replaced
// with SetChunkableExportNames.
var ChunkableExportNames = routechunk.ChunkableExportNames

const MainChunkName = routechunk.MainChunkName

// SetChunkableExportNames overrides the configured chunk-name list.
func SetChunkableExportNames(names []string) {
	routechunk.SetChunkableExportNames(names)
	ChunkableExportNames = names
}

// Service is a memoized facade instance. Build one per process (or one per
// long-lived watch session) and reuse it across files; internally it
// shares one Memoization Layer across every operation.
type Service struct {
	svc *routechunk.Service
}

// NewService creates an empty, in-memory-cached Service.
func NewService() *Service {
	return &Service{svc: routechunk.NewService()}
}

// DetectResult reports, per configured chunkable export name, whether that
// export is actually chunkable in the given source, plus their disjunction.
type DetectResult struct {
	HasChunk map[string]bool
	HasAny   bool
}

// Detect answers detect(source) for source under cacheKey (typically its
// file path).
func (s *Service) Detect(source string, cacheKey string) (DetectResult, error) {
	d, err := s.svc.Detect(source, cacheKey)
	if err != nil {
		return DetectResult{}, err
	}
	return DetectResult{HasChunk: d.HasChunk, HasAny: d.HasAny}, nil
}

// IsKnownChunkName reports whether name is "main" or a configured
// chunkable export name.
func IsKnownChunkName(name string) bool {
	return routechunk.IsKnownChunkName(name)
}

// GetChunk answers getChunk(source, chunkName): the serialized chunk (or
// main) source, or ok=false if that chunk produces no output.
func (s *Service) GetChunk(source string, chunkName string, opts PrinterOptions, cacheKey string) (code string, ok bool, err error) {
	return s.svc.GetChunk(source, chunkName, opts, cacheKey)
}

// Invalidate drops every cached artifact for cacheKey, for callers (such as
// the CLI's watch mode) that learn a source file changed on
// disk without the caller wanting to wait for the next fingerprint miss.
func (s *Service) Invalidate(cacheKey string) {
	s.svc.Delete(cacheKey)
}
