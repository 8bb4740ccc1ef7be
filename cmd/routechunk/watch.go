package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/routechunk/routechunk/internal/discovery"
	"github.com/routechunk/routechunk/internal/rclog"
)

var watchGlob string

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a directory of route modules and re-report detection on change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := args[0]
		run := rclog.WithRun(log, rclog.RunID())

		initial, err := discovery.Walk(root, watchGlob)
		if err != nil {
			return err
		}
		for _, pair := range initial {
			reportDetection(run, pair)
		}

		w, err := discovery.NewWatcher(root, watchGlob)
		if err != nil {
			return err
		}
		defer w.Close()

		run.Info("watching for route module changes", zap.String("root", root), zap.String("glob", watchGlob))
		for {
			select {
			case pair, ok := <-w.Changes:
				if !ok {
					return nil
				}
				svc.Invalidate(pair.CacheKey)
				if disk != nil {
					for _, name := range append(chunkNameOrder(), "main") {
						if err := disk.Delete(pair.CacheKey + "\x1f" + name + "\x1f" + chunkIndent); err != nil {
							run.Warn("disk cache invalidation failed", zap.Error(err))
						}
					}
				}
				reportDetection(run, pair)
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				run.Error("watch error", zap.Error(err))
			}
		}
	},
}

func reportDetection(run *zap.Logger, pair discovery.RoutePair) {
	result, err := svc.Detect(pair.Source, pair.CacheKey)
	if err != nil {
		run.Error("analysis failed", zap.String("file", pair.CacheKey), zap.Error(err))
		return
	}
	fmt.Printf("%s\tany=%t\n", pair.CacheKey, result.HasAny)
	run.Info("route module analyzed", zap.String("file", pair.CacheKey), zap.Bool("has_any_chunk", result.HasAny))
}

func init() {
	watchCmd.Flags().StringVar(&watchGlob, "glob", discovery.DefaultGlob, "file name glob for discovered route modules")
	rootCmd.AddCommand(watchCmd)
}
