package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alejandrodnm/tradeledger/config"
	"github.com/alejandrodnm/tradeledger/internal/acquisition"
	"github.com/alejandrodnm/tradeledger/internal/adapters/marketapi"
	"github.com/alejandrodnm/tradeledger/internal/adapters/notify"
	"github.com/alejandrodnm/tradeledger/internal/adapters/storage"
	"github.com/alejandrodnm/tradeledger/internal/adapters/synthetic"
	"github.com/alejandrodnm/tradeledger/internal/adapters/tabular"
	"github.com/alejandrodnm/tradeledger/internal/analytics"
	"github.com/alejandrodnm/tradeledger/internal/domain"
	"github.com/alejandrodnm/tradeledger/internal/pipeline"
	"github.com/alejandrodnm/tradeledger/internal/ports"
	"github.com/alejandrodnm/tradeledger/internal/server"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	once := flag.Bool("once", false, "run one acquisition cycle and exit")
	serve := flag.Bool("serve", false, "serve the dashboard JSON API instead of printing")
	dryRun := flag.Bool("dry-run", false, "skip cycle history persistence")
	table := flag.Bool("table", false, "print full tables instead of the compact cut")
	seed := flag.Int64("seed", 0, "seed for the synthetic generator (0 = from clock)")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Info("tradeledger starting",
		"config", *configPath,
		"api", cfg.API.BaseURL,
		"fallback", cfg.Acquisition.FallbackPath,
		"horizon", cfg.Analytics.HorizonDays,
		"once", *once,
		"serve", *serve,
	)

	rng := rand.New(rand.NewSource(*seed))
	if *seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	scoreParams := domain.ScoreParams{
		LiquidityCap:     cfg.Analytics.LiquidityCap,
		LiquidityDivisor: cfg.Analytics.LiquidityDivisor,
		MaxConfidence:    cfg.Analytics.MaxConfidence,
	}

	gen := synthetic.New(synthetic.Config{
		Events:          cfg.Synthetic.Events,
		Days:            cfg.Synthetic.Days,
		TradesPerDay:    cfg.Synthetic.TradesPerDay,
		StartingCapital: cfg.Analytics.StartingCapital,
		ScoreParams:     scoreParams,
	}, rng)

	client := marketapi.NewClient(cfg.API.BaseURL, cfg.API.Token, cfg.Timeout())
	primary := marketapi.NewSource(client, cfg.API.SampleLimit, scoreParams, gen.TradesFromOpportunities)
	fallback := tabular.NewFileSource(cfg.Acquisition.FallbackPath)

	orch := acquisition.New([]ports.TradeSource{primary, fallback, gen}, gen)

	var store ports.Storage
	if !*dryRun {
		sqliteStore, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer sqliteStore.Close()
		store = sqliteStore
	}

	// En modo serve el pipeline no notifica por consola: cada request
	// ejecuta un ciclo y recibe el JSON.
	var notifier ports.Notifier
	if !*serve {
		notifier = notify.NewConsole(*table)
	}

	p := pipeline.New(
		pipeline.Config{Interval: cfg.Interval(), Once: *once},
		orch,
		analytics.NewAnalyzer(cfg.Analytics.StartingCapital),
		analytics.NewSeriesGenerator(cfg.Analytics.HorizonDays, cfg.Analytics.StartingCapital),
		store,
		notifier,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *serve {
		if err := server.New(cfg.Server.Addr, p, store).Start(ctx); err != nil {
			slog.Error("server exited with error", "err", err)
			os.Exit(1)
		}
		return
	}

	if err := p.Run(ctx); err != nil {
		slog.Error("pipeline exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("tradeledger stopped cleanly")
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
