// Package mainemit implements the route-chunking analyzer's Main Emitter
// (spec §4.6): given a set of export names to omit, produces the residual
// "main" source with those exports' statements and bindings removed.
package mainemit

import (
	"github.com/routechunk/routechunk/internal/analyzer"
	"github.com/routechunk/routechunk/internal/gateway"
	"github.com/routechunk/routechunk/internal/js_ast"
	"github.com/routechunk/routechunk/internal/logger"
	"github.com/routechunk/routechunk/internal/oracle"
)

// EmitError reports spec §7 taxonomy class 2 (internal consistency
// violation): an export declaration with a shape the Analyzer should have
// already rejected (e.g. an anonymous exported function/class, or a
// destructuring declarator id).
type EmitError struct{ Msg string }

func (e *EmitError) Error() string { return e.Msg }

// Emit returns the main source with omittedExportNames removed, or
// ok=false if the residual body would be empty.
//
// The omitted set is interpreted strictly: a listed export is actually
// omitted only when it is also chunkable; a listed-but-non-chunkable
// export is left in place.
func Emit(source string, omittedExportNames []string, opts gateway.PrinterOptions, cacheKey string) (code string, ok bool, err error) {
	deps, err := analyzer.Analyze(source, cacheKey)
	if err != nil {
		return "", false, err
	}
	actuallyOmitted := oracle.ChunkableNames(deps, omittedExportNames)

	omittedStatements := map[int]bool{}
	importedByOmitted := map[string]bool{}
	for _, name := range actuallyOmitted {
		desc := deps.Get(name)
		for idx := range desc.TopLevelNonModuleStatements {
			omittedStatements[idx] = true
		}
		for id := range desc.ImportedIdentifierNames {
			importedByOmitted[id] = true
		}
	}

	work, err := gateway.Parse(source, cacheKey)
	if err != nil {
		return "", false, err
	}

	kept, err := removeFullyOmitted(deps.Program, work, omittedStatements)
	if err != nil {
		return "", false, reportConsistency(source, cacheKey, err)
	}
	kept, err = pruneImportSpecifiers(work, kept, importedByOmitted)
	if err != nil {
		return "", false, reportConsistency(source, cacheKey, err)
	}
	kept, err = pruneExportDeclarations(work, kept, actuallyOmitted)
	if err != nil {
		return "", false, reportConsistency(source, cacheKey, err)
	}

	if len(kept) == 0 {
		return "", false, nil
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

// removeFullyOmitted implements pass 1.
func removeFullyOmitted(refProgram, work *js_ast.Program, omittedStatements map[int]bool) ([]js_ast.Stmt, error) {
	var kept []js_ast.Stmt
	for i, stmt := range work.Body {
		if !omittedStatements[i] {
			kept = append(kept, stmt)
			continue
		}
		if i >= len(refProgram.Body) || !gateway.StructuralEquals(refProgram, refProgram.Body[i], work, stmt) {
			return nil, &EmitError{Msg: "main emitter: omitted statement does not structurally match the analyzed AST"}
		}
	}
	return kept, nil
}

// pruneImportSpecifiers implements pass 2.
func pruneImportSpecifiers(work *js_ast.Program, stmts []js_ast.Stmt, importedByOmitted map[string]bool) ([]js_ast.Stmt, error) {
	var out []js_ast.Stmt
	for _, stmt := range stmts {
		imp, ok := stmt.Data.(*js_ast.SImport)
		if !ok {
			out = append(out, stmt)
			continue
		}
		if imp.DefaultName == nil && imp.NamespaceRef == nil && len(imp.Items) == 0 {
			// Side-effect-only import: never pruned.
			out = append(out, stmt)
			continue
		}

		newImp := *imp
		newImp.DefaultName = nil
		newImp.NamespaceRef = nil
		newImp.Items = nil

		if imp.DefaultName != nil && !importedByOmitted[work.SymbolFor(imp.DefaultName.Ref).OriginalName] {
			newImp.DefaultName = imp.DefaultName
		}
		if imp.NamespaceRef != nil && !importedByOmitted[work.SymbolFor(imp.NamespaceRef.Ref).OriginalName] {
			newImp.NamespaceRef = imp.NamespaceRef
		}
		for _, item := range imp.Items {
			if !importedByOmitted[work.SymbolFor(item.Name.Ref).OriginalName] {
				newImp.Items = append(newImp.Items, item)
			}
		}

		if newImp.DefaultName == nil && newImp.NamespaceRef == nil && len(newImp.Items) == 0 {
			continue
		}
		out = append(out, js_ast.Stmt{Loc: stmt.Loc, Data: &newImp})
	}
	return out, nil
}

// pruneExportDeclarations implements pass 3. omitted is the actually-omitted
// export name set.
func pruneExportDeclarations(work *js_ast.Program, stmts []js_ast.Stmt, omittedNames []string) ([]js_ast.Stmt, error) {
	omitted := map[string]bool{}
	for _, name := range omittedNames {
		omitted[name] = true
	}

	var out []js_ast.Stmt
	for _, stmt := range stmts {
		switch s := stmt.Data.(type) {
		case *js_ast.SExportStar:
			out = append(out, stmt)

		case *js_ast.SExportDefault:
			if !omitted["default"] {
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
					return nil, &EmitError{Msg: "main emitter: exported declarator uses a non-identifier pattern"}
				}
				if !omitted[work.SymbolFor(id.Ref).OriginalName] {
					keptDecls = append(keptDecls, decl)
				}
			}
			if len(keptDecls) > 0 {
				newDecl := *s
				newDecl.Decls = keptDecls
				out = append(out, js_ast.Stmt{Loc: stmt.Loc, Data: &newDecl})
			}

		case *js_ast.SFunctionDecl:
			if !s.IsExport {
				out = append(out, stmt)
				continue
			}
			name := work.SymbolFor(s.Name.Ref).OriginalName
			if name == "" {
				return nil, &EmitError{Msg: "main emitter: exported function declaration has no name"}
			}
			if !omitted[name] {
				out = append(out, stmt)
			}

		case *js_ast.SClassDecl:
			if !s.IsExport {
				out = append(out, stmt)
				continue
			}
			name := work.SymbolFor(s.Name.Ref).OriginalName
			if name == "" {
				return nil, &EmitError{Msg: "main emitter: exported class declaration has no name"}
			}
			if !omitted[name] {
				out = append(out, stmt)
			}

		case *js_ast.SExportClause:
			if len(s.Items) == 0 {
				out = append(out, stmt)
				continue
			}
			var keptItems []js_ast.ClauseItem
			for _, item := range s.Items {
				if !omitted[item.Alias] {
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
