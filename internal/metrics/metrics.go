// Package metrics exposes Prometheus counters/gauges over engine
// activity: bars processed, indicators calculated, trades executed,
// and indicator cache hits/misses. Grounded on the teacher's
// metrics.go registration idiom (package-level CounterVec/GaugeVec,
// MustRegister in init(), small setter helpers) and on the reference
// engine's PerformanceMetrics fields (SPEC_FULL.md §10).
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	BarsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backtest_engine_bars_processed_total",
			Help: "Bars processed by the simulation kernel",
		},
		[]string{"symbol"},
	)

	IndicatorsCalculated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backtest_engine_indicators_calculated_total",
			Help: "Indicator series calculated by the registry",
		},
		[]string{"indicator", "symbol"},
	)

	TradesExecuted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backtest_engine_trades_executed_total",
			Help: "Closed trades emitted by the trade table generator",
		},
		[]string{"symbol", "exit_reason"},
	)

	RejectedTrades = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backtest_engine_rejected_trades_total",
			Help: "Entry signals rejected by admission filters",
		},
		[]string{"symbol", "reason"},
	)

	IndicatorCacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backtest_engine_indicator_cache_hits_total",
			Help: "Indicator registry cache hits",
		},
		[]string{"indicator", "symbol"},
	)

	IndicatorCacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backtest_engine_indicator_cache_misses_total",
			Help: "Indicator registry cache misses",
		},
		[]string{"indicator", "symbol"},
	)

	Equity = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "backtest_engine_equity_usd",
			Help: "Running equity per symbol during a simulation",
		},
		[]string{"symbol"},
	)
)

func init() {
	prometheus.MustRegister(BarsProcessed, IndicatorsCalculated, TradesExecuted, RejectedTrades)
	prometheus.MustRegister(IndicatorCacheHits, IndicatorCacheMisses, Equity)
}

func SetEquity(symbol string, equity float64) { Equity.WithLabelValues(symbol).Set(equity) }
func IncBarsProcessed(symbol string)          { BarsProcessed.WithLabelValues(symbol).Inc() }
func IncTradeExecuted(symbol, exitReason string) {
	TradesExecuted.WithLabelValues(symbol, exitReason).Inc()
}
func IncRejectedTrade(symbol, reason string) { RejectedTrades.WithLabelValues(symbol, reason).Inc() }
