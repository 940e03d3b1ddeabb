package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/serve"
)

func serveCmd(opts *globalOptions) *cobra.Command {
	var (
		src   sources
		host  string
		port  int
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the document with live preview",
		Long: `Serve the document over HTTP.

The page reconnects to a WebSocket and reloads itself whenever the
document is rebuilt. With --watch the head and body sources are polled
and the document is rebuilt when they change. Prometheus metrics are
exposed on /metrics.

Examples:
  markup serve --head head.html --body body.md --watch
  markup serve --port 8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			src = src.merge(cfg.ResolvePath(cfg.Document.Head), cfg.ResolvePath(cfg.Document.Body), cfg.Document.Sanitize)
			logger := newLogger(cfg, opts)

			script := serve.PreviewScript(cfg.Server.PreviewPath)
			doc, err := buildDocument(src, script)
			if err != nil {
				return err
			}

			metrics := serve.NewMetrics(serve.WithNamespace(cfg.Telemetry.MetricsNamespace))
			preview := serve.NewPreview(doc,
				serve.WithMetrics(metrics),
				serve.WithTracer(otel.Tracer(cfg.Telemetry.TracerName)),
				serve.WithFlushThreshold(cfg.Server.FlushThreshold),
				serve.WithLogger(logger),
			)
			defer preview.Close()

			router := serve.NewRouter(serve.RouterConfig{
				Preview:     preview,
				PreviewPath: cfg.Server.PreviewPath,
				MetricsPath: cfg.Server.MetricsPath,
				Logger:      logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if watch {
				watcher := serve.NewWatcher(serve.WatcherConfig{
					Paths:    src.paths(),
					Interval: cfg.WatchInterval(),
				})
				go watcher.Start(ctx, func(changed []string) {
					logger.Info("sources changed", "paths", changed)
					next, err := buildDocument(src, script)
					if err != nil {
						logger.Error("rebuild failed", "error", errors.FromError(err, "E002").FormatCompact())
						preview.NotifyError(err.Error())
						return
					}
					preview.Update(next)
				})
			}

			server := &http.Server{
				Addr:              cfg.Address(),
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.ListenAndServe()
			}()

			success(cmd.ErrOrStderr(), "Serving on http://%s", cfg.Address())
			info(cmd.ErrOrStderr(), "Metrics: http://%s%s", cfg.Address(), cfg.Server.MetricsPath)
			if watch {
				info(cmd.ErrOrStderr(), "Watching %d source(s) every %s", len(src.paths()), cfg.WatchInterval())
			}

			select {
			case err := <-errCh:
				if err != nil && !stderrors.Is(err, http.ErrServerClosed) {
					return errors.New("E012").Wrap(err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&src.head, "head", "", "Head source file")
	cmd.Flags().StringVar(&src.body, "body", "", "Body source file (.md is converted from Markdown)")
	cmd.Flags().BoolVar(&src.sanitize, "sanitize", false, "Sanitize the body HTML")
	cmd.Flags().StringVar(&host, "host", "", "Host to bind (default from config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Rebuild when sources change")

	return cmd
}
