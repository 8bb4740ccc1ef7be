package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/routechunk/routechunk/internal/rclog"
	"github.com/routechunk/routechunk/pkg/api"
)

var chunkIndent string

var chunkCmd = &cobra.Command{
	Use:   "chunk <name> <file>",
	Short: "Emit the source for one chunk (or \"main\") of a route module",
	Long: `Emits the rewritten source for a single chunk name: one of the
configured chunkable export names, or "main" for the residual module with
every chunkable export removed. If the requested chunk produces no output
(the export is absent or not chunkable), prints nothing, logs that at info
level, and exits zero. An unknown chunk name is an error.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, path := args[0], args[1]
		if !api.IsKnownChunkName(name) {
			return fmt.Errorf("unknown chunk name %q", name)
		}
		source, err := readFile(path)
		if err != nil {
			return err
		}
		run := rclog.WithRun(log, rclog.RunID())
		run.Debug("emitting chunk", zap.String("file", path), zap.String("chunk", name))

		diskKey := path + "\x1f" + name + "\x1f" + chunkIndent
		if disk != nil {
			if fp, cached, hit := disk.Get(diskKey); hit && fp == source {
				run.Debug("disk cache hit", zap.String("chunk", name))
				fmt.Print(cached)
				return nil
			}
		}

		code, ok, err := svc.GetChunk(source, name, api.PrinterOptions{Indent: chunkIndent}, path)
		if err != nil {
			return err
		}
		if !ok {
			run.Info("chunk produced no output", zap.String("chunk", name))
			return nil
		}
		if disk != nil {
			if err := disk.Set(diskKey, source, code); err != nil {
				run.Warn("disk cache write failed", zap.Error(err))
			}
		}
		fmt.Print(code)
		return nil
	},
}

func init() {
	chunkCmd.Flags().StringVar(&chunkIndent, "indent", "  ", "indentation string used by the printer")
	rootCmd.AddCommand(chunkCmd)
}
