package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"catalogstats/internal/adapters/web"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the report over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cat, err := ctx.openCatalog(runCtx, cfg.MigrateOnStart)
			if err != nil {
				return err
			}
			defer cat.Close()

			handler, err := web.NewHandler(
				cat.reports,
				cat.repo,
				cat.locales,
				cat.translator,
				web.NewFuncRegistry(cat.seasons, cat.translator),
			)
			if err != nil {
				return err
			}

			srv := web.NewServer(handler, web.Options{
				Addr:               cfg.HTTPAddr,
				RateLimitPerMinute: cfg.RateLimitPerMinute,
				ShutdownTimeout:    cfg.ShutdownTimeout,
			})
			return srv.Run(runCtx)
		},
	}
}
