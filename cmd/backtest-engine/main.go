// Command backtest-engine is the CLI demo entrypoint: it loads a CSV
// bar file, runs the deterministic simulation kernel with a reference
// strategy, writes the resulting trade table to CSV, and serves
// Prometheus metrics plus a health check while it runs.
//
// Flags:
//
//	-csv <path>      Path to CSV (time,open,high,low,close,volume)
//	-symbol <name>   Symbol label for the run (default BTCUSD)
//	-out <path>      Output CSV path for the trade table (default stdout)
//
// Boot sequence mirrors the teacher's own main.go: load .env, build
// Config, start the Prometheus/healthz server, run the job, shut down.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chidi150c/backtest-engine/internal/config"
	"github.com/chidi150c/backtest-engine/internal/engine"
	"github.com/chidi150c/backtest-engine/internal/exchange"
	"github.com/chidi150c/backtest-engine/internal/export"
	"github.com/chidi150c/backtest-engine/internal/indicators"
	"github.com/chidi150c/backtest-engine/internal/marketdata"
	"github.com/chidi150c/backtest-engine/internal/metrics"
	"github.com/chidi150c/backtest-engine/internal/money"
	"github.com/chidi150c/backtest-engine/internal/strategy"
)

func main() {
	var csvPath, symbol, outPath string
	flag.StringVar(&csvPath, "csv", "", "Path to CSV (time,open,high,low,close,volume)")
	flag.StringVar(&symbol, "symbol", "", "Symbol label for the run")
	flag.StringVar(&outPath, "out", "", "Output CSV path for the trade table (default stdout)")
	flag.Parse()

	config.LoadDotEnv()
	cfg := config.LoadFromEnv()
	if csvPath != "" {
		cfg.CSVPath = csvPath
	}
	if symbol != "" {
		cfg.Symbol = symbol
	}

	if err := money.RunDeterminismSelfTest(10); err != nil {
		log.Fatalf("determinism self-test failed, refusing to start: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Port), Handler: mux}
	go func() {
		log.Printf("serving metrics on :%d/metrics", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.CSVPath != "" {
		if err := runBacktest(ctx, cfg, outPath); err != nil {
			log.Fatalf("backtest: %v", err)
		}
	} else {
		log.Println("no -csv supplied; serving /healthz and /metrics only")
		<-ctx.Done()
	}

	shutdownCtx, c := context.WithTimeout(context.Background(), 2*time.Second)
	defer c()
	_ = srv.Shutdown(shutdownCtx)
}

func runBacktest(ctx context.Context, cfg config.Config, outPath string) error {
	rules := exchange.DefaultRules()
	md, err := marketdata.LoadCSV(cfg.CSVPath, cfg.Symbol, cfg.Timeframe, rules)
	if err != nil {
		return fmt.Errorf("load csv: %w", err)
	}
	log.Printf("loaded %d bars for %s from %s", len(md.Bars), cfg.Symbol, cfg.CSVPath)

	runCfg, err := cfg.ToRunConfig()
	if err != nil {
		return err
	}
	manifest := engine.NewRunManifest(runCfg, uint64(time.Now().UnixMilli()))
	log.Printf("run manifest: id=%s engine=%s policy=%s slippage=%s",
		manifest.RunID, manifest.EngineVersion, manifest.IntrabarPolicy, manifest.SlippageMode)

	registry := indicators.NewRegistry(cfg.EnableSIMDSMA)
	registry.VerifySIMD()

	sim := engine.NewSimulator(runCfg)
	strat := strategy.NewEMARSIStrategy(strategy.DefaultEMARSIConfig())

	result, err := sim.Run(ctx, md, strat, registry)
	if err != nil {
		return err
	}

	for _, t := range result.Trades {
		metrics.IncTradeExecuted(t.Symbol, t.ExitReason.String())
	}
	for _, r := range result.Rejected {
		metrics.IncRejectedTrade(r.Symbol, r.Reason)
	}
	if equity, ok := lastEquity(result); ok {
		metrics.SetEquity(cfg.Symbol, money.ToFloat64(equity))
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	table := engine.TradeTableResult{Trades: result.Trades, Summary: result.Summary, RejectedTrades: result.Rejected}
	if err := export.WriteCSV(out, table); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	log.Printf("backtest complete: trades=%d rejected=%d net_pnl=%s",
		len(result.Trades), len(result.Rejected), result.Summary.NetPnLUSD.String())
	return nil
}

func lastEquity(result engine.SymbolResult) (money.Decimal, bool) {
	if len(result.EquityCurve) == 0 {
		return money.Zero, false
	}
	return result.EquityCurve[len(result.EquityCurve)-1].Equity, true
}
