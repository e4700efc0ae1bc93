package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urmzd/lifx-mcp/pkg/api"
	"github.com/urmzd/lifx-mcp/pkg/config"
	"github.com/urmzd/lifx-mcp/pkg/db"
	"github.com/urmzd/lifx-mcp/pkg/lifx"
	"github.com/urmzd/lifx-mcp/pkg/metrics"
	"github.com/urmzd/lifx-mcp/pkg/tools"
	"golang.org/x/sync/errgroup"

	_ "github.com/urmzd/lifx-mcp/docs"
)

// @title           LIFX Control API
// @version         1.0
// @description     REST bridge to the LIFX MCP tools and control panel

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

const (
	activityRetention = 30 * 24 * time.Hour
	pruneInterval     = time.Hour
)

func main() {
	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/lifx-mcp/lifx.db)")
	addr := flag.String("addr", "", "Listen address (default: the active profile's panel address)")
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
	cfg.SetupLogging()

	opts := options{dbPath: *dbPath, addr: *addr, profile: *profile, timezone: *timezone}
	if err := run(cfg, opts); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

type options struct {
	dbPath   string
	addr     string
	profile  string
	timezone string
}

func run(cfg *config.Config, opts options) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPath := opts.dbPath
	if dbPath == "" {
		dbPath = cfg.DBPath
	}

	// Open database
	database, err := db.Setup(ctx, dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	log.Info().Str("path", database.Path()).Msg("Database opened")

	// Load configuration
	settings, err := database.SelectProfile(ctx, opts.profile, opts.timezone)
	if err != nil {
		return err
	}
	addr := opts.addr
	if addr == "" {
		addr = settings.PanelAddress()
	}

	log.Info().
		Str("profile", settings.Profile.Name).
		Str("timezone", settings.Profile.Timezone).
		Str("api_address", addr).
		Msg("Configuration loaded")

	if cfg.Token == "" {
		log.Warn().
			Str("env", lifx.TokenEnvVar).
			Str("url", lifx.TokenURL).
			Msg("LIFX token not set, tool calls will fail until it is configured")
	}

	client := lifx.NewClient(cfg.LIFX(), nil)
	log.Debug().Str("base_url", client.BaseURL()).Msg("LIFX client ready")

	collector := metrics.NewCollector()
	dispatcher := tools.NewDispatcher(client,
		tools.WithLocation(settings.Location()),
		tools.WithObserver(collector),
		tools.WithObserver(db.NewActivityRecorder(database)),
	)

	router := api.NewRouter(dispatcher, client, collector.Handler(), database.ToolCalls())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("address", addr).Msg("Starting API server")
		return router.Run(gctx, addr)
	})

	g.Go(func() error {
		pruneActivity(gctx, database.ToolCalls())
		return nil
	})

	return g.Wait()
}

// pruneActivity trims the activity log until ctx is done.
func pruneActivity(ctx context.Context, store db.ToolCallStore) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		n, err := store.Prune(ctx, time.Now().Add(-activityRetention))
		if err != nil {
			log.Warn().Err(err).Msg("Failed to prune activity log")
		} else if n > 0 {
			log.Debug().Int64("rows", n).Msg("Pruned activity log")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
