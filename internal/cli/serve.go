package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/packview/internal/config"
	"github.com/matzehuels/packview/internal/server"
	"github.com/matzehuels/packview/pkg/buildinfo"
	"github.com/matzehuels/packview/pkg/observability/prom"
)

// serveFlags holds command-line overrides for the serve command. Empty
// values leave the configured setting untouched.
type serveFlags struct {
	addr        string
	dataFile    string
	staticDir   string
	metricsAddr string
}

// apply overlays the flags on cfg.
func (f serveFlags) apply(cfg *config.Config) {
	if f.addr != "" {
		cfg.Addr = f.addr
	}
	if f.dataFile != "" {
		cfg.DataFile = f.dataFile
	}
	if f.staticDir != "" {
		cfg.StaticDir = f.staticDir
	}
	if f.metricsAddr != "" {
		cfg.MetricsAddr = f.metricsAddr
	}
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the data file and the browser renderer",
		Long: `Serve the data file and the browser renderer.

GET /data returns the configured data file exactly as stored on disk; it is
re-read on every request. GET / returns the landing page, which loads the
renderer from the static directory. Everything else is a 404.

Settings come from packview.toml, .env and PACKVIEW_* environment variables;
flags override them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags.apply(&cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (default :3000)")
	cmd.Flags().StringVar(&flags.dataFile, "data", "", "data file served on /data (default data.json)")
	cmd.Flags().StringVar(&flags.staticDir, "static", "", "static asset directory (default public)")
	cmd.Flags().StringVar(&flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

// runServe runs the HTTP server, and the metrics server when configured,
// until ctx is cancelled or either server fails.
func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	c.SetLogLevel(effectiveLevel(c.verbose, level))
	logger := loggerFromContext(ctx)
	logger.Debug("starting", "version", buildinfo.Version, "commit", buildinfo.Commit)

	srv := server.New(server.Options{
		Addr:        cfg.Addr,
		DataFile:    cfg.DataFile,
		StaticDir:   cfg.StaticDir,
		Title:       cfg.Title,
		CORSOrigins: cfg.CORSOrigins,
	}, logger)

	var metrics *server.MetricsServer
	if cfg.MetricsAddr != "" {
		reg := prom.NewRegistry()
		reg.Install()
		metrics = server.NewMetricsServer(cfg.MetricsAddr, reg.Handler(), logger)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	if metrics != nil {
		g.Go(metrics.Start)
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return shutdown(shutdownCtx, logger, srv, metrics)
	})

	err = g.Wait()
	if err != nil {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		logger.Info("stopped")
	}
	return nil
}

func shutdown(ctx context.Context, logger *log.Logger, srv *server.Server, metrics *server.MetricsServer) error {
	start := time.Now()
	var errs []error
	if err := srv.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown server: %w", err))
	}
	if metrics != nil {
		if err := metrics.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown metrics: %w", err))
		}
	}
	logger.Debug("shutdown complete", "duration", time.Since(start))
	return errors.Join(errs...)
}
