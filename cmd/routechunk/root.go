package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/routechunk/routechunk/internal/diskcache"
	"github.com/routechunk/routechunk/internal/rclog"
	"github.com/routechunk/routechunk/pkg/api"
)

// log is the process-wide structured logger; set up in initConfig once
// flags and config files have been read, so --verbose can take effect.
var log *zap.Logger

// svc is the process-wide memoized facade. One Service per process is
// shared by every subcommand invocation so repeated `routechunk chunk`
// calls against the same file during a shell session reuse the analysis.
var svc = api.NewService()

// disk, if non-nil, is the on-disk cache backing store opened from
// --cache-dir. Unset by default: the in-memory Service cache is enough for
// a single CLI invocation, and most subcommands only touch one file once.
var disk *diskcache.Store

var rootCmd = &cobra.Command{
	Use:   "routechunk",
	Short: "Analyze and split route-module exports into independent chunks",
	Long: `routechunk decides whether the named exports of a route module
(clientAction, clientLoader, and similar route-module conventions) can be
split into independent build outputs, and emits the rewritten source for
each chunk plus the residual main module.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if log != nil {
			log.Error("command failed", zap.Error(err))
		}
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetConfigName(".routechunk")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()

	var err error
	log, err = rclog.New(viper.GetBool("verbose"))
	if err != nil {
		panic(err)
	}

	if dir := viper.GetString("cache-dir"); dir != "" {
		disk = diskcache.Open(dir)
	}

	if names := viper.GetStringSlice("chunk-names"); len(names) > 0 {
		api.SetChunkableExportNames(names)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose logging output")
	rootCmd.PersistentFlags().String("cache-dir", "", "on-disk cache directory (default: in-memory only)")
	rootCmd.PersistentFlags().StringSlice("chunk-names", nil, "override the chunkable export name list (default: clientAction, clientLoader)")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("cache-dir", rootCmd.PersistentFlags().Lookup("cache-dir"))
	viper.BindPFlag("chunk-names", rootCmd.PersistentFlags().Lookup("chunk-names"))
}

func chunkNameOrder() []string {
	return api.ChunkableExportNames
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
