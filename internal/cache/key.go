package cache

import "strings"

// sep separates a Key's baseKey/operation/params components; chosen to be
// something that can't appear inside an export name or a printer-options
// serialization on its own, so distinct parameter tuples never collide.
const sep = "\x1f"

// Key builds a composite cache key by suffixing baseKey with an operation
// name and its parameters, per spec §4.2: "operation name; operation-
// specific parameters (export name; serialized printer options;
// comma-joined omitted-export list)".
func Key(baseKey string, operation string, params ...string) string {
	parts := make([]string, 0, len(params)+2)
	parts = append(parts, baseKey, operation)
	parts = append(parts, params...)
	return strings.Join(parts, sep)
}

// Prefix returns the prefix every Key built from baseKey starts with,
// regardless of operation or params — used to invalidate every cached
// artifact for a given source file in one call.
func Prefix(baseKey string) string {
	return baseKey + sep
}

// JoinNames comma-joins a list of export names for use as a single Key
// parameter (the "omitted-export list" case in spec §4.2), after sorting so
// the same set always produces the same key regardless of call-site order.
func JoinNames(names []string) string {
	sorted := append([]string(nil), names...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	return strings.Join(sorted, ",")
}
