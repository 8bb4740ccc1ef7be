// Package routechunk is the route-chunking analyzer's Route Chunk Facade
// (spec §4.7): fixes the closed set of recognized chunk names and dispatches
// detection and emission requests to the lower-level components.
package routechunk

import (
	"github.com/routechunk/routechunk/internal/analyzer"
	"github.com/routechunk/routechunk/internal/chunkemit"
	"github.com/routechunk/routechunk/internal/gateway"
	"github.com/routechunk/routechunk/internal/mainemit"
	"github.com/routechunk/routechunk/internal/oracle"
)

// ChunkableExportNames is the closed list of export names the Facade
// recognizes as candidate chunks, beyond the always-present "main"; this is
// the default, replaceable with SetChunkableExportNames. A route
// module's clientAction and clientLoader exports are the chunkable units
// this system was built to split out.
var ChunkableExportNames = []string{"clientAction", "clientLoader"}

const MainChunkName = "main"

// SetChunkableExportNames overrides the configured chunk-name list (spec
// §3 treats the list itself as "a configuration constant"; this is the
// single seam that lets a caller like the CLI's --chunk-names flag change
// it without reaching into the package var directly).
func SetChunkableExportNames(names []string) {
	ChunkableExportNames = names
}

// Detection reports, per chunkable export name, whether that export is
// actually chunkable in a given source file.
type Detection struct {
	HasChunk map[string]bool
	HasAny   bool
}

// Detect implements detect(source): one hasChunk* flag per configured
// chunkable export name, plus their disjunction.
func Detect(source string, cacheKey string) (*Detection, error) {
	deps, err := analyzer.Analyze(source, cacheKey)
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

// IsKnownChunkName reports whether name is a recognized chunk name: "main"
// or one of ChunkableExportNames.
func IsKnownChunkName(name string) bool {
	if name == MainChunkName {
		return true
	}
	for _, n := range ChunkableExportNames {
		if n == name {
			return true
		}
	}
	return false
}

// GetChunk returns the source for chunkName, or ok=false if it produces no
// output (a non-chunkable export, or an empty main body).
func GetChunk(source string, chunkName string, opts gateway.PrinterOptions, cacheKey string) (code string, ok bool, err error) {
	if chunkName == MainChunkName {
		return mainemit.Emit(source, ChunkableExportNames, opts, cacheKey)
	}
	return chunkemit.Emit(source, chunkName, opts, cacheKey)
}
