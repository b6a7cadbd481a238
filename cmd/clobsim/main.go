package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/xid"

	match "github.com/0x5487/clob-simulator"
	"github.com/0x5487/clob-simulator/internal/config"
	"github.com/0x5487/clob-simulator/internal/dashboard"
	"github.com/0x5487/clob-simulator/internal/generator"
	"github.com/0x5487/clob-simulator/internal/sim"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "clobsim:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a YAML config file")
	maxOrders := flag.Int("max-orders", -1, "stop after this many orders (0 = until interrupted)")
	seed := flag.Int64("seed", 0, "generator seed (0 = time based)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *maxOrders >= 0 {
		cfg.Simulation.MaxOrders = *maxOrders
	}
	if *seed != 0 {
		cfg.Generator.Seed = *seed
	}
	if cfg.Generator.Seed == 0 {
		cfg.Generator.Seed = time.Now().UnixNano()
	}

	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	runID := xid.New().String()
	logger = logger.With("run_id", runID)
	match.SetLogger(logger)

	book := match.NewOrderBook(
		match.NewLogPublishLog(logger),
		match.WithTradeLogCapacity(cfg.Book.TradeLogCapacity),
	)

	var renderer sim.Renderer
	if cfg.Dashboard.Enabled {
		board := dashboard.New(os.Stdout, dashboard.Options{
			Instrument:  cfg.Instrument,
			Rows:        cfg.Dashboard.Rows,
			ClearScreen: cfg.Dashboard.ClearScreen,
		})
		renderer = sim.RendererFunc(func() error { return board.Render(book) })
	}

	source := generator.New(generator.Options{
		MidPrice:    cfg.Generator.MidPrice,
		PriceStdDev: cfg.Generator.PriceStdDev,
		MaxSize:     cfg.Generator.MaxSize,
		Seed:        cfg.Generator.Seed,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting simulation",
		slog.String("version", match.EngineVersion),
		slog.String("instrument", cfg.Instrument),
		slog.Int64("seed", cfg.Generator.Seed),
		slog.Int("max_orders", cfg.Simulation.MaxOrders),
	)

	simulator := sim.New(book, source, renderer, sim.Options{
		Interval:  cfg.Simulation.Interval,
		MaxOrders: cfg.Simulation.MaxOrders,
		Logger:    logger,
	})
	summary, err := simulator.Run(ctx)

	if cfg.Dashboard.Enabled && cfg.Dashboard.ClearScreen {
		fmt.Fprint(os.Stdout, "\033[2J\033[H")
	}
	fmt.Fprintln(os.Stdout, "CLOB simulation shutting down.")
	fmt.Fprintf(os.Stdout, "Processed %d orders, %d trades.\n", summary.Orders, summary.Trades)

	stats := book.Stats()
	logger.Info("simulation stopped",
		slog.Int("orders", summary.Orders),
		slog.Int("rejected", summary.Rejected),
		slog.Int("trades", summary.Trades),
		slog.Int64("volume", summary.Volume),
		slog.Duration("elapsed", summary.Elapsed),
		slog.Int64("bid_orders", stats.BidOrderCount),
		slog.Int64("ask_orders", stats.AskOrderCount),
	)
	return err
}

func newLogger(cfg config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.Logging.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return slog.New(slog.NewJSONHandler(w, opts)), nil
}
