// Package chunkemit implements the route-chunking analyzer's Chunk Emitter
// (spec §4.5): given a chunkable export, produces a rewritten source
// containing only that export and its transitive dependencies.
package chunkemit

import (
	"github.com/routechunk/routechunk/internal/analyzer"
	"github.com/routechunk/routechunk/internal/gateway"
	"github.com/routechunk/routechunk/internal/js_ast"
	"github.com/routechunk/routechunk/internal/logger"
	"github.com/routechunk/routechunk/internal/oracle"
)

// EmitError reports spec §7 taxonomy class 2 (internal consistency
// violation): the emitter reached a state the Analyzer should have
// prevented, such as an import surviving pruning with no specifiers left.
type EmitError struct{ Msg string }

func (e *EmitError) Error() string { return e.Msg }

// Emit returns the chunk source for exportName, or ok=false if the export
// is not chunkable (spec §7 taxonomy class 3: a normal, silent outcome).
func Emit(source string, exportName string, opts gateway.PrinterOptions, cacheKey string) (code string, ok bool, err error) {
	deps, err := analyzer.Analyze(source, cacheKey)
	if err != nil {
		return "", false, err
	}
	if !oracle.IsChunkable(deps, exportName) {
		return "", false, nil
	}
	desc := deps.Get(exportName)

	work, err := gateway.Parse(source, cacheKey)
	if err != nil {
		return "", false, err
	}

	kept, err := keepDependencyStatements(deps.Program, work, desc)
	if err != nil {
		return "", false, reportConsistency(source, cacheKey, err)
	}
	kept, err = pruneImports(work, kept, desc)
	if err != nil {
		return "", false, reportConsistency(source, cacheKey, err)
	}
	kept, err = restrictExports(work, kept, exportName)
	if err != nil {
		return "", false, reportConsistency(source, cacheKey, err)
	}

	return gateway.GenerateStmts(work, kept, opts), true, nil
}

// reportConsistency renders an internal consistency violation (spec §7
// class 2) through the shared diagnostic Log.
func reportConsistency(source, cacheKey string, cause error) error {
	log := logger.NewLog(logger.Source{CacheKey: logger.Contents(cacheKey), Contents: source})
	log.AddError(logger.KindInternal, nil, cause.Error())
	return log.Done()
}

// keepDependencyStatements implements pass 1: keep iff the statement is
// structurally equivalent to some member of dependencies.topLevelStatements.
// refProgram/work are independent parses of the same source text, so their
// bodies have matching length and order; StructuralEquals is still used
// (rather than trusting the index alone) because it is the Gateway's
// documented mechanism for bridging the two parses' disjoint Ref spaces.
func keepDependencyStatements(refProgram, work *js_ast.Program, desc *analyzer.Descriptor) ([]js_ast.Stmt, error) {
	var kept []js_ast.Stmt
	for i, stmt := range work.Body {
		if !desc.TopLevelStatements[i] {
			continue
		}
		if i >= len(refProgram.Body) || !gateway.StructuralEquals(refProgram, refProgram.Body[i], work, stmt) {
			return nil, &EmitError{Msg: "chunk emitter: dependency statement does not structurally match the analyzed AST"}
		}
		kept = append(kept, stmt)
	}
	return kept, nil
}

// pruneImports implements pass 2.
func pruneImports(work *js_ast.Program, stmts []js_ast.Stmt, desc *analyzer.Descriptor) ([]js_ast.Stmt, error) {
	var out []js_ast.Stmt
	for _, stmt := range stmts {
		imp, ok := stmt.Data.(*js_ast.SImport)
		if !ok {
			out = append(out, stmt)
			continue
		}
		if len(desc.ImportedIdentifierNames) == 0 {
			continue
		}

		newImp := *imp
		newImp.DefaultName = nil
		newImp.NamespaceRef = nil
		newImp.Items = nil

		if imp.DefaultName != nil && desc.ImportedIdentifierNames[work.SymbolFor(imp.DefaultName.Ref).OriginalName] {
			newImp.DefaultName = imp.DefaultName
		}
		if imp.NamespaceRef != nil && desc.ImportedIdentifierNames[work.SymbolFor(imp.NamespaceRef.Ref).OriginalName] {
			newImp.NamespaceRef = imp.NamespaceRef
		}
		for _, item := range imp.Items {
			if desc.ImportedIdentifierNames[work.SymbolFor(item.Name.Ref).OriginalName] {
				newImp.Items = append(newImp.Items, item)
			}
		}

		if newImp.DefaultName == nil && newImp.NamespaceRef == nil && len(newImp.Items) == 0 {
			return nil, &EmitError{Msg: "chunk emitter: import " + imp.Source + " survived pruning with zero specifiers"}
		}
		out = append(out, js_ast.Stmt{Loc: stmt.Loc, Data: &newImp})
	}
	return out, nil
}

// restrictExports implements pass 3.
func restrictExports(work *js_ast.Program, stmts []js_ast.Stmt, exportName string) ([]js_ast.Stmt, error) {
	var out []js_ast.Stmt
	for _, stmt := range stmts {
		switch s := stmt.Data.(type) {
		case *js_ast.SExportStar:
			continue

		case *js_ast.SExportDefault:
			if exportName == "default" {
				out = append(out, stmt)
			}

		case *js_ast.SVarDecl:
			if !s.IsExport {
				out = append(out, stmt)
				continue
			}
			var keptDecls []js_ast.Decl
			for _, decl := range s.Decls {
				id, ok := decl.Binding.Data.(*js_ast.BIdentifier)
				if !ok {
					return nil, &EmitError{Msg: "chunk emitter: exported declarator uses a non-identifier pattern"}
				}
				if work.SymbolFor(id.Ref).OriginalName == exportName {
					keptDecls = append(keptDecls, decl)
				}
			}
			if len(keptDecls) > 0 {
				newDecl := *s
				newDecl.Decls = keptDecls
				out = append(out, js_ast.Stmt{Loc: stmt.Loc, Data: &newDecl})
			}

		case *js_ast.SFunctionDecl:
			if !s.IsExport || work.SymbolFor(s.Name.Ref).OriginalName == exportName {
				out = append(out, stmt)
			}

		case *js_ast.SClassDecl:
			if !s.IsExport || work.SymbolFor(s.Name.Ref).OriginalName == exportName {
				out = append(out, stmt)
			}

		case *js_ast.SExportClause:
			var keptItems []js_ast.ClauseItem
			for _, item := range s.Items {
				if item.Alias == exportName {
					keptItems = append(keptItems, item)
				}
			}
			if len(keptItems) > 0 {
				newClause := *s
				newClause.Items = keptItems
				out = append(out, js_ast.Stmt{Loc: stmt.Loc, Data: &newClause})
			}

		default:
			out = append(out, stmt)
		}
	}
	return out, nil
}
