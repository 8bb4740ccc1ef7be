package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/routechunk/routechunk/internal/rclog"
)

func main() {
	log, err := rclog.New(os.Getenv("ROUTECHUNK_VERBOSE") != "")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	srv := NewServer(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("received shutdown signal")
		cancel()
	}()

	if err := srv.Start(ctx); err != nil {
		log.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}
