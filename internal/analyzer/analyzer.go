// Package analyzer implements the route-chunking analyzer's Export
// Dependency Analyzer (spec §4.3): for every recognized top-level export, it
// computes the set of top-level statements and imported identifiers that
// export transitively depends on.
package analyzer

import (
	"fmt"

	"github.com/routechunk/routechunk/internal/gateway"
	"github.com/routechunk/routechunk/internal/js_ast"
	"github.com/routechunk/routechunk/internal/logger"
)

// Descriptor is one file's Export Descriptor for a single export name
// (spec §3's "Export Descriptor"). Statement identity is represented as the
// statement's index into Program.Body, since that is stable and unique
// within one parse and lets set operations (the Oracle's disjointness
// checks) use plain map/int comparisons instead of pointer identity on
// value types.
type Descriptor struct {
	Name string

	// TopLevelStatements is never empty: it always contains at least the
	// export's own defining/enclosing statement index.
	TopLevelStatements map[int]bool

	// TopLevelNonModuleStatements is the subset of TopLevelStatements whose
	// statement is neither an import nor an export declaration.
	TopLevelNonModuleStatements map[int]bool

	// ImportedIdentifierNames is the set of local names, among this export's
	// dependent identifiers, that were introduced by an import declaration.
	ImportedIdentifierNames map[string]bool
}

// Dependencies is the per-file analysis result (spec's ExportDependencies).
// It is built once per (source, cacheKey) pair and must not be mutated by
// callers — the Oracle and both Emitters only read it.
type Dependencies struct {
	Program *js_ast.Program
	// Names preserves the order export names were first encountered, so
	// downstream iteration (detect(), diagnostics) is deterministic.
	Names       []string
	Descriptors map[string]*Descriptor
}

// AnalysisError reports spec §7 taxonomy class 1 (structural invariant
// violation): an AST shape the Analyzer's classification doesn't cover.
type AnalysisError struct{ Msg string }

func (e *AnalysisError) Error() string { return e.Msg }

// Analyze parses source and computes its ExportDependencies. cacheKey is
// forwarded to the parser for diagnostic messages only.
func Analyze(source string, cacheKey string) (*Dependencies, error) {
	program, err := gateway.Parse(source, cacheKey)
	if err != nil {
		return nil, err
	}

	d := &Dependencies{Program: program, Descriptors: map[string]*Descriptor{}}
	a := &analysis{program: program, deps: d}

	for idx, stmt := range program.Body {
		if err := a.visitTopLevel(idx, stmt); err != nil {
			return nil, reportInvariant(source, cacheKey, err)
		}
	}
	return d, nil
}

// reportInvariant renders a structural invariant violation (spec §7 class 1)
// through the shared diagnostic Log, the same as a parse error, so a caller
// sees one consistent error shape regardless of which pipeline stage failed.
func reportInvariant(source, cacheKey string, cause error) error {
	log := logger.NewLog(logger.Source{CacheKey: logger.Contents(cacheKey), Contents: source})
	log.AddError(logger.KindInvariant, nil, cause.Error())
	return log.Done()
}

type analysis struct {
	program *js_ast.Program
	deps    *Dependencies
}

func (a *analysis) visitTopLevel(idx int, stmt js_ast.Stmt) error {
	switch s := stmt.Data.(type) {
	case *js_ast.SExportStar:
		// export * from "...": never recognized as a chunkable unit.
		return nil

	case *js_ast.SExportDefault:
		return a.addDescriptor("default", idx, func(seed func(js_ast.Ref)) {
			gateway.TraverseStmt(stmt, seed)
		})

	case *js_ast.SVarDecl:
		if !s.IsExport {
			return nil
		}
		for _, decl := range s.Decls {
			id, ok := decl.Binding.Data.(*js_ast.BIdentifier)
			if !ok {
				return &AnalysisError{Msg: "exported variable declarator uses a non-identifier (destructuring) pattern, which is unsupported"}
			}
			name := a.program.SymbolFor(id.Ref).OriginalName
			value := decl.Value
			if err := a.addDescriptor(name, idx, func(seed func(js_ast.Ref)) {
				if value != nil {
					gateway.TraverseExpr(*value, seed)
				}
			}); err != nil {
				return err
			}
		}
		return nil

	case *js_ast.SFunctionDecl:
		if !s.IsExport {
			return nil
		}
		name := a.program.SymbolFor(s.Name.Ref).OriginalName
		if name == "" {
			return &AnalysisError{Msg: "exported function declaration has no name"}
		}
		return a.addDescriptor(name, idx, func(seed func(js_ast.Ref)) {
			gateway.TraverseStmt(stmt, seed)
		})

	case *js_ast.SClassDecl:
		if !s.IsExport {
			return nil
		}
		name := a.program.SymbolFor(s.Name.Ref).OriginalName
		if name == "" {
			return &AnalysisError{Msg: "exported class declaration has no name"}
		}
		return a.addDescriptor(name, idx, func(seed func(js_ast.Ref)) {
			gateway.TraverseStmt(stmt, seed)
		})

	case *js_ast.SExportClause:
		if s.FromSource != nil {
			// export { a as b } from "mod": a re-export passthrough has no
			// local binding to resolve, so (like export * from) it produces
			// no Export Descriptor. See DESIGN.md for this interpretation.
			return nil
		}
		for _, item := range s.Items {
			ref := item.Name.Ref
			if err := a.addDescriptor(item.Alias, idx, func(seed func(js_ast.Ref)) {
				seed(ref)
			}); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

// addDescriptor computes one Export Descriptor. seedFn is called with a
// callback that registers each directly-visible identifier use at the
// export's starting point (spec §4.3 step 3's first round); from there the
// closure over declarations proceeds uniformly regardless of export kind.
func (a *analysis) addDescriptor(name string, exportStmtIdx int, seedFn func(seed func(js_ast.Ref))) error {
	desc := &Descriptor{
		Name:                        name,
		TopLevelStatements:          map[int]bool{exportStmtIdx: true},
		TopLevelNonModuleStatements: map[int]bool{},
		ImportedIdentifierNames:     map[string]bool{},
	}

	visited := map[js_ast.Ref]bool{}
	var queue []js_ast.Ref
	seed := func(ref js_ast.Ref) {
		if !ref.IsValid() || visited[ref] {
			return
		}
		visited[ref] = true
		queue = append(queue, ref)
	}
	seedFn(seed)

	for len(queue) > 0 {
		ref := queue[0]
		queue = queue[1:]

		sym := a.program.SymbolFor(ref)
		if sym.Kind == js_ast.SymbolImport {
			desc.ImportedIdentifierNames[sym.OriginalName] = true
		}

		stmtIdx := gateway.DeclaringTopLevelIndex(a.program, ref)
		if stmtIdx < 0 {
			// Declared somewhere not attributable to a single top-level
			// statement (e.g. a bare module-scope side-effect binding that
			// never occurs in well-formed input); nothing further to expand.
			continue
		}
		if desc.TopLevelStatements[stmtIdx] {
			continue
		}
		desc.TopLevelStatements[stmtIdx] = true
		gateway.TraverseStmt(a.program.Body[stmtIdx], seed)
	}

	for stmtIdx := range desc.TopLevelStatements {
		if !isModuleStmt(a.program.Body[stmtIdx].Data) {
			desc.TopLevelNonModuleStatements[stmtIdx] = true
		}
	}

	a.deps.Descriptors[name] = desc
	a.deps.Names = append(a.deps.Names, name)
	return nil
}

// isModuleStmt reports whether a top-level statement is an import or export
// declaration in the ESTree sense the spec draws on. This includes exported
// var/function/class declarations, not just the zero-content forms — which
// is what lets `export const x = 1, y = 2;` attribute both x and y to the
// same shared statement without the Oracle's disjointness check (spec
// §4.4 condition 2) treating that as a conflict: the shared statement is
// itself excluded from topLevelNonModuleStatements, so it never appears in
// either export's non-module set. A plain (non-exported) top-level
// `function h() {}` used as a shared helper is not a declaration of this
// kind, so two exports sharing it over condition 2's intersection check are
// correctly still flagged as non-chunkable.
func isModuleStmt(data js_ast.S) bool {
	switch s := data.(type) {
	case *js_ast.SImport, *js_ast.SExportClause, *js_ast.SExportStar, *js_ast.SExportDefault:
		return true
	case *js_ast.SVarDecl:
		return s.IsExport
	case *js_ast.SFunctionDecl:
		return s.IsExport
	case *js_ast.SClassDecl:
		return s.IsExport
	}
	return false
}

// Get returns the descriptor for name, or nil if name was not a recognized
// export. A nil result is the normal, silent "absent export" outcome (spec
// §7 taxonomy class 3), not an error.
func (d *Dependencies) Get(name string) *Descriptor {
	return d.Descriptors[name]
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("Descriptor{%s, stmts=%d, imports=%d}", d.Name, len(d.TopLevelStatements), len(d.ImportedIdentifierNames))
}
