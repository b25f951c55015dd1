package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/mymusic/internal/server"
	"github.com/desertthunder/mymusic/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if r.manager == nil || r.library == nil {
		return fmt.Errorf("%w: runner not fully initialized", shared.ErrServiceUnavailable)
	}

	addr := cmd.String("addr")
	if addr == "" {
		addr = r.config.Server.Addr()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := server.APIOpts{
		Manager: r.manager,
		Library: r.library,
		Logger:  shared.WithLogger(r.logger, "component", "http"),
	}
	if r.db != nil {
		opts.DB = r.db
	}
	api := server.NewAPI(opts)

	return server.Serve(ctx, addr, api.Handler(), r.logger)
}
