package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/hupe1980/scriptmesh/metrics"
	"github.com/hupe1980/scriptmesh/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Server.Address = addr
			}

			logger := newLogger(cfg)
			collector := metrics.NewCollector()
			mesh, err := buildMesh(cfg, logger, collector)
			if err != nil {
				return err
			}

			srv := server.New(mesh, func(o *server.Options) {
				o.AllowedOrigins = cfg.Server.AllowedOrigins
				o.ShutdownTimeout = cfg.Server.ShutdownTimeout
				o.Metrics = collector
				o.Logger = logger.WithComponent("server")
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.ListenAndServe(gctx, cfg.Server.Address)
			})
			g.Go(func() error {
				<-gctx.Done()
				logger.Info("shutdown requested", "cause", context.Cause(gctx))
				return nil
			})
			return g.Wait()
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides server.address)")
	return cmd
}
