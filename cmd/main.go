package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/AgentTarik/receipt-feed/internal/config"
	"github.com/AgentTarik/receipt-feed/internal/presenter"
	"github.com/AgentTarik/receipt-feed/internal/source"
	"github.com/AgentTarik/receipt-feed/internal/storage"
	"github.com/AgentTarik/receipt-feed/internal/transaction"
	"github.com/AgentTarik/receipt-feed/telemetry"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	telemetry.InitMetrics()

	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "receipts: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	start := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	fset := flag.NewFlagSet("receipts", flag.ContinueOnError)
	if err := cfg.ParseFlags(fset, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	// validator
	v := transaction.NewValidator()
	if err := cfg.Validate(v); err != nil {
		return err
	}

	log, err := telemetry.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer log.Sync()
	log = log.With(zap.String("run_id", uuid.NewString()))

	path, err := source.ResolvePath(cfg.BaseDir, cfg.SourcePath)
	if err != nil {
		return err
	}
	loader, err := source.NewLoader()
	if err != nil {
		return err
	}
	raw, err := loader.Load(path)
	if err != nil {
		return err
	}
	telemetry.AddRecordsLoaded(len(raw))

	kept, rejected := transaction.Screen(raw, transaction.NewKeySet(cfg.RequiredKeys...))
	for reason, n := range rejected {
		telemetry.AddRecordsFiltered(string(reason), n)
	}
	log.Info("source screened",
		zap.String("path", path),
		zap.Int("loaded", len(raw)),
		zap.Int("kept", len(kept)),
	)
	transaction.SortByDate(kept)

	// in memory store
	store := storage.NewReceiptStore()
	driver := transaction.NewDriver(log, store, v)
	if _, err := driver.TakeComplete(transaction.NewFeed(kept), cfg.Count); err != nil {
		return err
	}

	p := &presenter.Printer{Color: useColor(cfg.Color, stdout)}
	if err := p.Write(stdout, store.List()); err != nil {
		return err
	}

	telemetry.ObserveRun(time.Since(start))
	if cfg.MetricsFile != "" {
		if err := telemetry.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn("metrics not written", zap.String("path", cfg.MetricsFile), zap.Error(err))
		}
	}
	return nil
}

// useColor resolves the -color mode. In auto mode color.NoColor already
// accounts for NO_COLOR, TERM=dumb and a non-terminal stdout.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return w == io.Writer(os.Stdout) && !color.NoColor
}
