package main

import (
	"context"
	"log/slog"
	"maps"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/algotrace/catalog"
	"github.com/katalvlaran/algotrace/internal/config"
	"github.com/katalvlaran/algotrace/internal/logging"
	"github.com/katalvlaran/algotrace/internal/metrics"
)

// ErrBadSet indicates a --set value without '='.
var ErrBadSet = errors.New("algotrace: --set expects key=value")

// app is the state shared by every subcommand, built in PersistentPreRunE.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	metrics  *metrics.Metrics
	registry *catalog.Registry

	server *http.Server
}

// newRootCmd builds the command tree. The caller must call app.shutdown once
// Execute returns, whether or not it failed.
func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	var cfgPath, logLevel, metricsAddr string

	root := &cobra.Command{
		Use:          "algotrace",
		Short:        "Record and replay step-by-step algorithm traces",
		Long:         `algotrace runs an algorithm once, records every intermediate state, and prints or plays back the trace.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, cfgPath, logLevel, metricsAddr)
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "YAML config file with speed, log level and per-algorithm params")
	root.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "debug, info, warn or error")
	root.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")

	root.AddCommand(
		newListCmd(a),
		newRunCmd(a),
		newPlayCmd(a),
		newTopoCmd(a),
		newVersionCmd(),
	)

	return root, a
}

// setup loads config, then lets explicit flags override it.
func (a *app) setup(cmd *cobra.Command, cfgPath, logLevel, metricsAddr string) error {
	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddr
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.cfg = cfg
	a.logger = logging.NewWriter(cmd.ErrOrStderr(), level)
	a.metrics = metrics.New(reg)
	a.registry = catalog.New(catalog.WithLogger(a.logger), catalog.WithMetrics(a.metrics))
	if cfg.MetricsAddr != "" {
		a.serveMetrics(cfg.MetricsAddr, reg)
	}

	return nil
}

func (a *app) serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	a.server = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		a.logger.Info("serving metrics", "addr", addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server stopped", "error", err)
		}
	}()
}

// shutdown stops the metrics server, if one was started.
func (a *app) shutdown() {
	if a.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = a.server.Shutdown(ctx)
}

// params merges the config file's params for name with --set overrides.
func (a *app) params(name string, sets []string) (map[string]any, error) {
	out := map[string]any{}
	maps.Copy(out, a.cfg.Params(name))
	for _, kv := range sets {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, errors.Wrapf(ErrBadSet, "%q", kv)
		}
		out[strings.TrimSpace(k)] = v
	}

	return out, nil
}
