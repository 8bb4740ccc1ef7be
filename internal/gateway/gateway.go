// Package gateway is the route-chunking analyzer's AST Gateway (spec §4.1):
// the single seam between "raw source text" and every other component.
// Nothing outside this package imports js_parser or js_printer directly.
package gateway

import (
	"github.com/routechunk/routechunk/internal/js_ast"
	"github.com/routechunk/routechunk/internal/js_parser"
	"github.com/routechunk/routechunk/internal/js_printer"
)

type PrinterOptions = js_printer.Options

// Parse turns source text into a fully scope-resolved Program. cacheKey
// identifies the source for diagnostic messages; it carries no caching
// behavior of its own (see internal/cache for that).
func Parse(source string, cacheKey string) (*js_ast.Program, error) {
	return js_parser.Parse(source, cacheKey)
}

// Generate re-serializes a Program (or an explicit statement slice) back
// into source text. opts is opaque to every caller above this package and
// participates in emitter cache keys via opts.CacheKey().
func Generate(program *js_ast.Program, opts PrinterOptions) string {
	return js_printer.Print(program, opts)
}

// GenerateStmts serializes an explicit statement list against program's
// symbol table, used by the Chunk/Main Emitters to print a pruned body
// without constructing a whole replacement Program.
func GenerateStmts(program *js_ast.Program, stmts []js_ast.Stmt, opts PrinterOptions) string {
	return js_printer.PrintStmts(program, stmts, opts)
}

// DeclaringTopLevelIndex answers scopeBinding(path) → declarationPath for
// this AST's representation of "declaration path": the index into
// Program.Body of the top-level statement that owns ref's declaration, or
// -1 if ref is invalid or declared somewhere that isn't attributable to a
// single top-level statement (the module scope itself).
func DeclaringTopLevelIndex(program *js_ast.Program, ref js_ast.Ref) int {
	if !ref.IsValid() {
		return -1
	}
	// A ref declared directly at module scope shares the single ModuleScope
	// object with every other top-level declaration, so ModuleScope.StmtIndex
	// (fixed at -1) can't record it; the parser stashes it on the Symbol
	// itself instead. Only a ref declared inside a pushed child scope (a
	// function/class/block nested at top level) gets a meaningful scope
	// StmtIndex.
	scope, ok := program.DeclScope[ref]
	if !ok {
		return -1
	}
	if scope == program.ModuleScope {
		return program.SymbolFor(ref).TopLevelStmtIndex
	}
	return scope.StmtIndex
}
