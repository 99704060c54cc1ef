package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	feedexgin "github.com/peekay/feedex/gin"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long in-flight uploads may finish after a
// termination signal.
const shutdownTimeout = 10 * time.Second

// Run executes the serve command: the web upload interface with
// graceful shutdown on SIGINT/SIGTERM.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := feedexgin.NewServer(feedexgin.Config{
		Addr:      c.Addr,
		UploadDir: c.UploadDir,
		Debug:     deps.Config.Debug,
	}, deps.Pipeline, deps.Results, deps.Logger)

	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	// Expired results accumulate while the server runs; sweep them
	// periodically.
	g.Go(func() error {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				n, err := deps.Results.DeleteExpiredResults(ctx)
				if err != nil {
					deps.Logger.Warn("expired result sweep failed", "error", err)
					continue
				}
				if n > 0 {
					deps.Logger.Info("expired results removed", "count", n)
				}
			}
		}
	})

	return g.Wait()
}
