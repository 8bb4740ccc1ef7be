package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/routechunk/routechunk/internal/analyzer"
)

// descriptorJSON is a stable, sorted projection of analyzer.Descriptor —
// the internal type keys its sets by map for O(1) set operations, which
// isn't a deterministic JSON shape on its own.
type descriptorJSON struct {
	Name                        string `json:"name"`
	TopLevelStatements          []int  `json:"topLevelStatements"`
	TopLevelNonModuleStatements []int  `json:"topLevelNonModuleStatements"`
	ImportedIdentifierNames     []string `json:"importedIdentifierNames"`
}

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Dump the Export Dependencies computed for a route module",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		source, err := readFile(path)
		if err != nil {
			return err
		}
		deps, err := analyzer.Analyze(source, path)
		if err != nil {
			return err
		}

		out := make([]descriptorJSON, 0, len(deps.Names))
		for _, name := range deps.Names {
			desc := deps.Get(name)
			out = append(out, descriptorJSON{
				Name:                        desc.Name,
				TopLevelStatements:          sortedInts(desc.TopLevelStatements),
				TopLevelNonModuleStatements: sortedInts(desc.TopLevelNonModuleStatements),
				ImportedIdentifierNames:     sortedStrings(desc.ImportedIdentifierNames),
			})
		}

		if !analyzeJSON {
			for _, d := range out {
				fmt.Printf("%s: stmts=%v nonModule=%v imports=%v\n", d.Name, d.TopLevelStatements, d.TopLevelNonModuleStatements, d.ImportedIdentifierNames)
			}
			return nil
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func sortedInts(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

func sortedStrings(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "emit JSON instead of a plain-text summary")
	rootCmd.AddCommand(analyzeCmd)
}
