package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	patternlock "github.com/codeninelabs/cnl-patternlock"
	"github.com/codeninelabs/cnl-patternlock/config"
	"github.com/codeninelabs/cnl-patternlock/metrics"
	"github.com/codeninelabs/cnl-patternlock/trace"
)

var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Replay a recorded gesture script through a session",
	Long: `Loads a YAML or JSON gesture script, feeds its events to a fresh session and
prints one line per completed pattern. With --metrics-addr the session's metrics
stay available on /metrics until the process is interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("metrics-addr") {
			cfg.MetricsAddr, _ = cmd.Flags().GetString("metrics-addr")
		}
		log := newLogger(cmd, cfg)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		reg := prometheus.NewRegistry()
		if err := runReplay(ctx, cmd.OutOrStdout(), log, cfg, args[0], reg); err != nil {
			return err
		}
		if cfg.MetricsAddr == "" {
			return nil
		}
		return serveMetrics(ctx, log, cfg.MetricsAddr, reg)
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().String("metrics-addr", "", "serve /metrics and /healthz on this address after replaying")
}

// runReplay loads the script at path, replays it with metrics registered on reg
// and writes one line per completion to w. cfg.Canvas supplies any canvas
// dimension the script omits.
func runReplay(ctx context.Context, w io.Writer, log *slog.Logger, cfg config.Config, path string, reg prometheus.Registerer) error {
	sc, err := trace.Load(path)
	if err != nil {
		return err
	}
	// Dimensions the script leaves out come from the config.
	sc.Canvas = sc.Canvas.Or(trace.Canvas(cfg.Canvas))

	collector, err := metrics.NewCollector(reg)
	if err != nil {
		return err
	}

	opts := append(cfg.SessionOptions(),
		patternlock.WithLogger(log),
		patternlock.WithHooks(collector.Hooks()),
	)
	s, clk, err := sc.NewSession(opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	completions, err := trace.Replay(ctx, s, sc, trace.WithClock(clk), trace.WithLogger(log))
	for i, c := range completions {
		fmt.Fprintf(w, "#%d %s %s\n", i+1, c.Result, c.Pattern)
	}
	return err
}

// newMetricsRouter exposes g on /metrics next to a /healthz probe.
func newMetricsRouter(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return r
}

// serveMetrics blocks until ctx is done, then shuts the server down.
func serveMetrics(ctx context.Context, log *slog.Logger, addr string, g prometheus.Gatherer) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics: listen: %w", err)
	}

	srv := &http.Server{
		Handler:           newMetricsRouter(g),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("serving metrics", "addr", ln.Addr().String())
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("metrics: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics: shutdown: %w", err)
	}
	log.Info("metrics server stopped")
	return nil
}
