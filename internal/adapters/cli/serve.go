package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/hideout-go/internal/adapters/httpapi"
	"github.com/andrescamacho/hideout-go/internal/adapters/metrics"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only HTTP API",
		Long: `Serve the read-only HTTP API:

  GET /healthz
  GET /api/profiles
  GET /api/profiles/{profile}
  GET /api/profiles/{profile}/needs?mode=all&outstanding=true
  GET /api/profiles/{profile}/stations[/{station}]
  GET /api/profiles/{profile}/export

Prometheus metrics are exposed at metrics.path when metrics.enabled is set.
Send SIGHUP to re-read the station snapshot without restarting.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(appOptions{withMetrics: true})
			if err != nil {
				return err
			}
			defer a.Close()

			// Load the station snapshot up front so a bad file fails fast
			if _, err := a.stations.Stations(cmd.Context()); err != nil {
				return err
			}

			opts := httpapi.RouterOptions{
				Logger:         a.logger,
				RequestTimeout: a.cfg.Server.WriteTimeout,
			}
			if metrics.IsEnabled() {
				opts.MetricsHandler = promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
				opts.MetricsPath = a.cfg.Metrics.Path
			}

			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}

			server := httpapi.NewServer(httpapi.NewRouter(a.mediator, opts), httpapi.ServerOptions{
				Host:            a.cfg.Server.Host,
				Port:            a.cfg.Server.Port,
				ReadTimeout:     a.cfg.Server.ReadTimeout,
				WriteTimeout:    a.cfg.Server.WriteTimeout,
				ShutdownTimeout: a.cfg.Server.ShutdownTimeout,
				Logger:          a.logger,
			})

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			go a.reloadStationsOnHangup(ctx)

			return server.Run(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Listen port (default: server.port)")

	return cmd
}

func (a *app) reloadStationsOnHangup(ctx context.Context) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := a.stations.Reload(); err != nil {
				a.logger.Error("station snapshot reload failed", "error", err)
				continue
			}
			a.logger.Info("station snapshot reloaded")
		}
	}
}
