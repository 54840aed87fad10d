package engine

import (
	"testing"

	"github.com/chidi150c/backtest-engine/internal/exchange"
	"github.com/chidi150c/backtest-engine/internal/money"
)

func zeroFeeRules() exchange.Rules {
	r := exchange.DefaultRules()
	r.MakerFee = money.Zero
	r.TakerFee = money.Zero
	r.MinNotional = money.Zero
	r.TickSize = money.New(1, -8)
	r.LotSize = money.New(1, -8)
	return r
}

func bar(ts uint64, o, h, l, c float64) Bar {
	od, _ := money.FromFloat64(o, 8)
	hd, _ := money.FromFloat64(h, 8)
	ld, _ := money.FromFloat64(l, 8)
	cd, _ := money.FromFloat64(c, 8)
	return Bar{Timestamp: ts, Open: od, High: hd, Low: ld, Close: cd, Volume: money.New(1, 0)}
}

func ptr(d money.Decimal) *money.Decimal { return &d }
func ptrU64(v uint64) *uint64            { return &v }

// Scenario 1: Long takes profit.
func TestScenarioLongTakesProfit(t *testing.T) {
	cfg := DefaultRunConfig()
	cfg.IntrabarPolicy = ExactTrades
	gen := NewTradeTableGenerator(zeroFeeRules(), cfg)

	b0 := bar(0, 50000, 50000, 50000, 50000)
	tp, _ := money.FromFloat64(53000, 8)
	sl, _ := money.FromFloat64(48000, 8)
	sig := StrategySignal{Symbol: "BTCUSD", Side: Buy, SizeUSD: money.New(1000, 0), TakeProfit: ptr(tp), StopLoss: ptr(sl)}
	if err := gen.ProcessBar(b0, []StrategySignal{sig}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b1 := bar(1, 50500, 53500, 50000, 53000)
	if err := gen.ProcessBar(b1, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := gen.GenerateResult()
	if len(result.Trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(result.Trades))
	}
	tr := result.Trades[0]
	if tr.Direction != Long || tr.ExitReason != ExitTakeProfit || tr.HitTPSL != HitTakeProfit {
		t.Fatalf("unexpected trade shape: %+v", tr)
	}
	if !tr.EntryPrice.Equal(money.New(50000, 0)) {
		t.Fatalf("expected entry=50000, got %s", tr.EntryPrice.String())
	}
	if !tr.ExitPrice.Equal(money.New(53000, 0)) {
		t.Fatalf("expected exit=53000, got %s", tr.ExitPrice.String())
	}
	wantPnL := money.New(60, 0)
	if !tr.PnLUSD.Equal(wantPnL) {
		t.Fatalf("expected pnl=60, got %s", tr.PnLUSD.String())
	}
}

// Scenario 3: notional rejection.
func TestScenarioNotionalRejection(t *testing.T) {
	cfg := DefaultRunConfig()
	rules := zeroFeeRules()
	rules.MinNotional = money.New(2000, 0)
	gen := NewTradeTableGenerator(rules, cfg)

	b0 := bar(0, 50000, 50000, 50000, 50000)
	sig := StrategySignal{Symbol: "BTCUSD", Side: Buy, SizeUSD: money.New(1000, 0)}
	if err := gen.ProcessBar(b0, []StrategySignal{sig}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := gen.GenerateResult()
	if len(result.Trades) != 0 {
		t.Fatalf("expected 0 trades, got %d", len(result.Trades))
	}
	if len(result.RejectedTrades) != 1 {
		t.Fatalf("expected 1 rejected trade, got %d", len(result.RejectedTrades))
	}
	if result.RejectedTrades[0].Reason != "NotionalMin" {
		t.Fatalf("expected NotionalMin reason, got %s", result.RejectedTrades[0].Reason)
	}
}

// Scenario 4: timeout exit, inclusive boundary.
func TestScenarioTimeoutExit(t *testing.T) {
	cfg := DefaultRunConfig()
	gen := NewTradeTableGenerator(zeroFeeRules(), cfg)

	b0 := bar(0, 50000, 50000, 50000, 50000)
	ttl := ptrU64(60000)
	sig := StrategySignal{Symbol: "BTCUSD", Side: Buy, SizeUSD: money.New(1000, 0), TTLMillis: ttl}
	if err := gen.ProcessBar(b0, []StrategySignal{sig}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b1 := bar(60000, 50100, 50200, 50000, 50100)
	if err := gen.ProcessBar(b1, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := gen.GenerateResult()
	if len(result.Trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(result.Trades))
	}
	tr := result.Trades[0]
	if tr.ExitReason != ExitTimeout || tr.HitTPSL != HitNone {
		t.Fatalf("expected Timeout/None, got %v/%v", tr.ExitReason, tr.HitTPSL)
	}
}

// Scenario 5: a second Buy signal on an already-Open symbol in the
// same bar is silently ignored, not rejected.
func TestScenarioSimultaneousEntrySecondIgnored(t *testing.T) {
	cfg := DefaultRunConfig()
	gen := NewTradeTableGenerator(zeroFeeRules(), cfg)

	b0 := bar(0, 50000, 50000, 50000, 50000)
	sig := StrategySignal{Symbol: "BTCUSD", Side: Buy, SizeUSD: money.New(1000, 0)}
	if err := gen.ProcessBar(b0, []StrategySignal{sig, sig}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gen.rejected) != 0 {
		t.Fatalf("expected no rejected trades, got %d", len(gen.rejected))
	}
	if gen.active == nil {
		t.Fatalf("expected one open position")
	}
}

// Scenario 6: aggregate statistics over {+100, -50, +25}.
func TestScenarioAggregateStatistics(t *testing.T) {
	trades := []TradeRecord{
		{PnLUSD: money.New(100, 0), SizeUSD: money.New(1000, 0)},
		{PnLUSD: money.New(-50, 0), SizeUSD: money.New(1000, 0)},
		{PnLUSD: money.New(25, 0), SizeUSD: money.New(1000, 0)},
	}
	s := Summarize(trades, money.Zero)
	if s.Wins != 2 || s.Losses != 1 {
		t.Fatalf("expected 2 wins 1 loss, got %d/%d", s.Wins, s.Losses)
	}
	if !s.NetPnLUSD.Equal(money.New(75, 0)) {
		t.Fatalf("expected net=75, got %s", s.NetPnLUSD.String())
	}
	if !s.AvgWinUSD.Equal(money.New(625, -1)) {
		t.Fatalf("expected avg_win=62.5, got %s", s.AvgWinUSD.String())
	}
	if !s.AvgLossUSD.Equal(money.New(-50, 0)) {
		t.Fatalf("expected avg_loss=-50, got %s", s.AvgLossUSD.String())
	}
	if !s.ProfitFactor.Equal(money.New(25, -1)) {
		t.Fatalf("expected profit_factor=2.5, got %s", s.ProfitFactor.String())
	}
}

func TestEmptyBarsYieldsZeroedSummary(t *testing.T) {
	s := Summarize(nil, money.Zero)
	if !s.ProfitFactor.IsZero() || s.TotalTrades != 0 {
		t.Fatalf("expected zeroed summary, got %+v", s)
	}
}

func TestAtMostOnePositionPerSymbol(t *testing.T) {
	cfg := DefaultRunConfig()
	gen := NewTradeTableGenerator(zeroFeeRules(), cfg)
	b0 := bar(0, 100, 100, 100, 100)
	sig := StrategySignal{Symbol: "X", Side: Buy, SizeUSD: money.New(1000, 0)}
	_ = gen.ProcessBar(b0, []StrategySignal{sig, sig, sig})
	if gen.active == nil {
		t.Fatalf("expected exactly one open position")
	}
}
