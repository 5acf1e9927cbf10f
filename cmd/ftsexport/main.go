// Command ftsexport fetches humanitarian-funding records from the FTS API
// and writes them as CSV files for downstream CKAN ingestion. It produces the
// global lists (sectors, countries, organizations) plus one CSV set per
// configured country, either once or on a cron schedule.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"ftscli/internal/config"
	"ftscli/internal/exporter"
	"ftscli/internal/fts"
	"ftscli/internal/infrastructure"
	"ftscli/internal/schedule"
)

func main() {
	configFile := flag.String("config", "", "path to YAML config file (optional)")
	outDir := flag.String("out", "", "base output directory (overrides config)")
	countries := flag.String("countries", "", "comma-separated country codes or names (overrides config)")
	workbook := flag.Bool("workbook", false, "also bundle each country's tables into an XLSX workbook")
	scheduleSpec := flag.String("schedule", "", "cron expression to run exports on a schedule (overrides config)")
	logLevel := flag.String("log-level", "", "log level: debug | info | warn | error (overrides config)")
	flag.Parse()

	// .env is optional; absence is not an error
	_ = godotenv.Load()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	applyFlagOverrides(cfg, *outDir, *countries, *workbook, *scheduleSpec, *logLevel)

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := fts.NewClient(cfg.API, logger)
	producer := exporter.NewProducer(client, exporter.Options{
		OutputDir: cfg.Export.OutputDir,
		Countries: cfg.Export.Countries,
		Workbook:  cfg.Export.Workbook,
	}, logger)

	runOnce := func(ctx context.Context) error {
		runCtx := infrastructure.ContextWithRunID(ctx)
		logger.InfoContext(runCtx, "starting export run",
			slog.String("output_dir", cfg.Export.OutputDir),
			slog.Any("countries", cfg.Export.Countries))
		return producer.Run(runCtx)
	}

	if cfg.Export.Schedule == "" {
		if err := runOnce(ctx); err != nil {
			logger.ErrorContext(ctx, "export run failed", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	scheduler := schedule.NewScheduler(logger)
	if err := scheduler.Start(ctx, cfg.Export.Schedule, runOnce); err != nil {
		logger.ErrorContext(ctx, "failed to start scheduler", slog.Any("error", err))
		os.Exit(1)
	}

	<-ctx.Done()
	scheduler.Stop()
	logger.Info("shutting down")
}

// applyFlagOverrides lets command-line flags win over config values
func applyFlagOverrides(cfg *config.Config, outDir, countries string, workbook bool, scheduleSpec, logLevel string) {
	if outDir != "" {
		cfg.Export.OutputDir = outDir
	}
	if countries != "" {
		var parsed []string
		for _, c := range strings.Split(countries, ",") {
			if c = strings.TrimSpace(c); c != "" {
				parsed = append(parsed, c)
			}
		}
		cfg.Export.Countries = parsed
	}
	if workbook {
		cfg.Export.Workbook = true
	}
	if scheduleSpec != "" {
		cfg.Export.Schedule = scheduleSpec
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
}
