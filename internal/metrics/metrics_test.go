package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSetEquityUpdatesGauge(t *testing.T) {
	SetEquity("BTCUSD", 12345.67)
	if got := testutil.ToFloat64(Equity.WithLabelValues("BTCUSD")); got != 12345.67 {
		t.Fatalf("expected gauge 12345.67, got %v", got)
	}
}

func TestIncCountersAreLabeled(t *testing.T) {
	IncBarsProcessed("ETHUSD")
	IncTradeExecuted("ETHUSD", "TakeProfit")
	IncRejectedTrade("ETHUSD", "min_notional")

	if got := testutil.ToFloat64(BarsProcessed.WithLabelValues("ETHUSD")); got != 1 {
		t.Fatalf("expected 1 bar processed, got %v", got)
	}
	if got := testutil.ToFloat64(TradesExecuted.WithLabelValues("ETHUSD", "TakeProfit")); got != 1 {
		t.Fatalf("expected 1 trade executed, got %v", got)
	}
	if got := testutil.ToFloat64(RejectedTrades.WithLabelValues("ETHUSD", "min_notional")); got != 1 {
		t.Fatalf("expected 1 rejected trade, got %v", got)
	}
}
