// Package oracle implements the route-chunking analyzer's Chunkability
// Oracle (spec §4.4): per (file, exportName), decides whether an export can
// be extracted as an independent chunk.
package oracle

import "github.com/routechunk/routechunk/internal/analyzer"

// IsChunkable reports whether name is chunkable within deps, per spec §4.4:
// the export must be recognized, must not share any non-module top-level
// statement with another recognized export, and — only when it has at least
// one imported-identifier dependency — must not share any imported
// identifier name with another recognized export either.
func IsChunkable(deps *analyzer.Dependencies, name string) bool {
	desc := deps.Get(name)
	if desc == nil {
		return false
	}

	for _, otherName := range deps.Names {
		if otherName == name {
			continue
		}
		other := deps.Get(otherName)

		if intersects(desc.TopLevelNonModuleStatements, other.TopLevelNonModuleStatements) {
			return false
		}
		if len(desc.ImportedIdentifierNames) > 0 && intersectsStr(desc.ImportedIdentifierNames, other.ImportedIdentifierNames) {
			return false
		}
	}
	return true
}

// ChunkableNames filters candidateNames down to those chunkable in deps,
// preserving candidateNames' order. Used by the Main Emitter to resolve its
// "actually omitted" set.
func ChunkableNames(deps *analyzer.Dependencies, candidateNames []string) []string {
	var out []string
	for _, name := range candidateNames {
		if IsChunkable(deps, name) {
			out = append(out, name)
		}
	}
	return out
}

func intersects(a, b map[int]bool) bool {
	small, big := a, b
	if len(big) < len(small) {
		small, big = big, small
	}
	for k := range small {
		if big[k] {
			return true
		}
	}
	return false
}

func intersectsStr(a, b map[string]bool) bool {
	small, big := a, b
	if len(big) < len(small) {
		small, big = big, small
	}
	for k := range small {
		if big[k] {
			return true
		}
	}
	return false
}
