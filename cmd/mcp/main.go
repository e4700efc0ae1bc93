package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urmzd/lifx-mcp/pkg/config"
	"github.com/urmzd/lifx-mcp/pkg/db"
	"github.com/urmzd/lifx-mcp/pkg/lifx"
	lifxmcp "github.com/urmzd/lifx-mcp/pkg/mcp"
	"github.com/urmzd/lifx-mcp/pkg/metrics"
	"github.com/urmzd/lifx-mcp/pkg/tools"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/lifx-mcp/lifx.db)")
	metricsAddr := flag.String("metrics", "", "Serve Prometheus metrics on this address (disabled when empty)")
	profile := flag.String("profile", "", "Switch to this profile before starting")
	timezone := flag.String("timezone", "", "Store this IANA timezone on the active profile")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	// Logging must go to stderr, stdout is the MCP transport
	cfg.SetupLogging()

	opts := options{dbPath: *dbPath, metricsAddr: *metricsAddr, profile: *profile, timezone: *timezone}
	if err := run(cfg, opts); err != nil {
		log.Fatal().Err(err).Msg("MCP server failed")
	}
}

type options struct {
	dbPath      string
	metricsAddr string
	profile     string
	timezone    string
}

func run(cfg *config.Config, opts options) error {
	if cfg.Token == "" {
		log.Warn().
			Str("env", lifx.TokenEnvVar).
			Str("url", lifx.TokenURL).
			Msg("LIFX token not set, tool calls will fail until it is configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPath := opts.dbPath
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	metricsAddr := opts.metricsAddr

	collector := metrics.NewCollector()
	dispatchOpts := []tools.Option{tools.WithObserver(collector)}

	// The activity log is optional for the stdio server
	database, err := db.Setup(ctx, dbPath)
	if err != nil {
		log.Warn().Err(err).Msg("Database unavailable, activity log disabled")
	} else {
		defer func() {
			if err := database.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close database")
			}
		}()
		log.Info().Str("path", database.Path()).Msg("Database opened")

		settings, err := database.SelectProfile(ctx, opts.profile, opts.timezone)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to load settings, using UTC")
		} else {
			log.Info().
				Str("profile", settings.Profile.Name).
				Str("timezone", settings.Profile.Timezone).
				Msg("Configuration loaded")
			dispatchOpts = append(dispatchOpts, tools.WithLocation(settings.Location()))
		}
		dispatchOpts = append(dispatchOpts, tools.WithObserver(db.NewActivityRecorder(database)))
	}

	client := lifx.NewClient(cfg.LIFX(), nil)
	log.Debug().Str("base_url", client.BaseURL()).Msg("LIFX client ready")
	dispatcher := tools.NewDispatcher(client, dispatchOpts...)
	server := lifxmcp.NewServer(dispatcher)

	g, gctx := errgroup.WithContext(ctx)

	if metricsAddr != "" {
		srv := &http.Server{
			Addr:              metricsAddr,
			Handler:           collector.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			log.Info().Str("address", metricsAddr).Msg("Serving metrics")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		log.Info().Msg("Starting MCP server on stdio")
		err := server.ServeStdio()
		// Host closed stdin; take the metrics server down with us
		stop()
		return err
	})

	return g.Wait()
}
