// Package main runs the remindmap HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/theokkk4/remindmap/internal/metrics"
	"github.com/theokkk4/remindmap/internal/server"
	"github.com/theokkk4/remindmap/pkg/remindmap"
	"github.com/theokkk4/remindmap/pkg/remindmap/config"
)

const shutdownTimeout = 30 * time.Second

func main() {
	var (
		addr         = flag.String("addr", ":8080", "Listen address")
		settingsPath = flag.String("config", "", "Settings file (optional)")
		stoplistPath = flag.String("stoplist", "", "Stoplist file (optional)")
		taxonomyPath = flag.String("taxonomy", "", "Taxonomy file (optional)")
		origins      = flag.String("cors-origins", "", "Comma-separated allowed browser origins (any when empty)")
		debug        = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if envAddr := os.Getenv("REMINDMAP_ADDR"); envAddr != "" {
		*addr = envAddr
	}

	loader := config.Loader{
		SettingsPath: *settingsPath,
		StoplistPath: *stoplistPath,
		TaxonomyPath: *taxonomyPath,
	}
	components, err := loader.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := metrics.NewPrometheus(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to register metrics")
	}

	engine, err := remindmap.New(remindmap.Options{
		Components: components,
		Recorder:   recorder,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build engine")
	}

	var allowed []string
	for _, o := range strings.Split(*origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed = append(allowed, o)
		}
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           server.New(engine, reg, server.Config{AllowedOrigins: allowed}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().
			Str("addr", *addr).
			Int("topics", len(engine.Taxonomy())).
			Msg("remindmap server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down remindmap server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("HTTP server failed")
	}
	log.Info().Msg("Server stopped")
}
