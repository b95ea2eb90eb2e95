package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/UnknownOlympus/wiglebt/internal/cli"
	"github.com/UnknownOlympus/wiglebt/internal/config"
	"github.com/UnknownOlympus/wiglebt/internal/geocoding"
	"github.com/UnknownOlympus/wiglebt/internal/history"
	"github.com/UnknownOlympus/wiglebt/internal/wigle"
	"googlemaps.github.io/maps"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load the credentials file before anything else: without it there is
	// nothing to do, and no network call may be attempted.
	cfg, err := config.Load(configPath(os.Args[1:]))
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	// Set up the logger based on the environment. Logs go to stderr; stdout
	// is reserved for rendered output.
	logger := setupLogger(cfg.Env)

	app := &cli.App{
		Locator: wigle.NewClient(cfg.APIAuth, logger),
		Log:     logger,
		In:      os.Stdin,
		Out:     os.Stdout,
	}

	// Reverse geocoding is available only when a Google Maps key is configured.
	if cfg.GoogleAPIKey != "" {
		mapsClient, errMaps := maps.NewClient(maps.WithAPIKey(cfg.GoogleAPIKey))
		if errMaps != nil {
			log.Fatalf("Failed to create Google Maps client: %v", errMaps)
		}
		app.Addresser = geocoding.NewGoogleProvider(mapsClient, logger)
	}

	// The lookup history is optional as well; without a database the tool
	// behaves as a pure resolver.
	if cfg.Database.Enabled() {
		dtb, errDB := history.NewDatabase(
			cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
		)
		if errDB != nil {
			log.Fatalf("Failed to connect to DB: %v", errDB)
		}
		defer dtb.Close()

		app.History = history.NewRepository(dtb, logger)
	}

	if err := cli.NewRootCommand(app).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// configPath pre-scans the arguments for --config so the credentials file
// can be loaded before the command tree runs. Cobra still owns the flag; this
// only peeks at it.
func configPath(args []string) string {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(arg, "--config=") {
			return strings.TrimPrefix(arg, "--config=")
		}
	}

	return ""
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var logger *slog.Logger

	switch env {
	case envLocal:
		logger = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		logger = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		logger = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelWarn,
			}),
		)
	default:
		logger = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelError,
			}),
		)

		logger.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return logger
}
