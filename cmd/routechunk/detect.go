package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/routechunk/routechunk/internal/rclog"
)

var detectCmd = &cobra.Command{
	Use:   "detect <file>",
	Short: "Report which chunkable exports a route module actually has",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		source, err := readFile(path)
		if err != nil {
			return err
		}
		run := rclog.WithRun(log, rclog.RunID())
		run.Debug("detecting chunks", zap.String("file", path))

		result, err := svc.Detect(source, path)
		if err != nil {
			return err
		}
		for _, name := range append([]string{}, namesInOrder(result.HasChunk)...) {
			fmt.Printf("%s\t%t\n", name, result.HasChunk[name])
		}
		fmt.Printf("any\t%t\n", result.HasAny)
		return nil
	},
}

func namesInOrder(hasChunk map[string]bool) []string {
	var names []string
	for _, n := range chunkNameOrder() {
		if _, ok := hasChunk[n]; ok {
			names = append(names, n)
		}
	}
	return names
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
