package routechunk

import (
	"github.com/routechunk/routechunk/internal/analyzer"
	"github.com/routechunk/routechunk/internal/cache"
	"github.com/routechunk/routechunk/internal/chunkemit"
	"github.com/routechunk/routechunk/internal/gateway"
	"github.com/routechunk/routechunk/internal/mainemit"
	"github.com/routechunk/routechunk/internal/oracle"
)

// Service is the Facade's memoized entry point: every operation passes
// through a Cache keyed per spec §4.2 before falling through to the pure
// analyzer/chunkemit/mainemit functions. One Service is meant to be shared
// across an entire watch-mode session or build; Delete invalidates a single
// file's derived artifacts (e.g. when the module loader reports a change).
type Service struct {
	cache *cache.Cache
}

func NewService() *Service {
	return &Service{cache: cache.New()}
}

// Delete drops every cached artifact for cacheKey: the "analyze" entry and
// every "getChunkedExport"/"omitChunkedExports" entry derived from it, for
// any export name or printer-options combination ever requested.
func (s *Service) Delete(cacheKey string) {
	s.cache.DeletePrefix(cache.Prefix(cacheKey))
}

func (s *Service) analyze(source, cacheKey string) (*analyzer.Dependencies, error) {
	v, err := s.cache.GetOrSet(cache.Key(cacheKey, "analyze"), source, func() (interface{}, error) {
		return analyzer.Analyze(source, cacheKey)
	})
	if err != nil {
		return nil, err
	}
	return v.(*analyzer.Dependencies), nil
}

// Detect implements detect(source) through the cache.
func (s *Service) Detect(source string, cacheKey string) (*Detection, error) {
	deps, err := s.analyze(source, cacheKey)
	if err != nil {
		return nil, err
	}
	d := &Detection{HasChunk: map[string]bool{}}
	for _, name := range ChunkableExportNames {
		chunkable := oracle.IsChunkable(deps, name)
		d.HasChunk[name] = chunkable
		d.HasAny = d.HasAny || chunkable
	}
	return d, nil
}

// GetChunk implements getChunk(source, chunkName) through the cache, keyed
// per spec §4.5/§4.6's composite-key formats.
func (s *Service) GetChunk(source string, chunkName string, opts gateway.PrinterOptions, cacheKey string) (code string, ok bool, err error) {
	if chunkName == MainChunkName {
		return s.emitMain(source, ChunkableExportNames, opts, cacheKey)
	}
	return s.emitChunk(source, chunkName, opts, cacheKey)
}

type chunkResult struct {
	code string
	ok   bool
}

func (s *Service) emitChunk(source, exportName string, opts gateway.PrinterOptions, cacheKey string) (string, bool, error) {
	key := cache.Key(cacheKey, "getChunkedExport", exportName, opts.CacheKey())
	v, err := s.cache.GetOrSet(key, source, func() (interface{}, error) {
		code, ok, err := chunkemit.Emit(source, exportName, opts, cacheKey)
		if err != nil {
			return nil, err
		}
		return chunkResult{code: code, ok: ok}, nil
	})
	if err != nil {
		return "", false, err
	}
	r := v.(chunkResult)
	return r.code, r.ok, nil
}

func (s *Service) emitMain(source string, omittedExportNames []string, opts gateway.PrinterOptions, cacheKey string) (string, bool, error) {
	key := cache.Key(cacheKey, "omitChunkedExports", cache.JoinNames(omittedExportNames), opts.CacheKey())
	v, err := s.cache.GetOrSet(key, source, func() (interface{}, error) {
		code, ok, err := mainemit.Emit(source, omittedExportNames, opts, cacheKey)
		if err != nil {
			return nil, err
		}
		return chunkResult{code: code, ok: ok}, nil
	})
	if err != nil {
		return "", false, err
	}
	r := v.(chunkResult)
	return r.code, r.ok, nil
}
