package engine

import (
	"fmt"
	"time"

	"github.com/chidi150c/backtest-engine/internal/exchange"
	"github.com/chidi150c/backtest-engine/internal/money"
)

// RunConfig holds the per-run policy knobs from spec §6's
// configuration surface.
type RunConfig struct {
	StartingEquity money.Decimal
	DefaultSizeUSD money.Decimal
	IntrabarPolicy IntrabarPolicy
	SlippageMode   SlippageMode
	RoundingMode   money.RoundingMode
}

// DefaultRunConfig mirrors spec §6's defaults.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		StartingEquity: money.New(10000, 0),
		DefaultSizeUSD: money.New(1000, 0),
		IntrabarPolicy: LinearInterpolation,
		SlippageMode:   SlippageNone,
		RoundingMode:   money.NearestEven,
	}
}

// TradeTableGenerator is the per-symbol bar accumulator: it owns the
// open position (at most one), the closed trade ledger, rejected
// entries, and the equity curve until GenerateResult snapshots them.
type TradeTableGenerator struct {
	rules  exchange.Rules
	cfg    RunConfig
	active *ActivePosition

	trades    []TradeRecord
	rejected  []RejectedTrade
	equity    []EquityPoint
	peakEq    money.Decimal
	maxDD     money.Decimal
	cumPnL    money.Decimal
}

// NewTradeTableGenerator constructs a generator for one symbol.
func NewTradeTableGenerator(rules exchange.Rules, cfg RunConfig) *TradeTableGenerator {
	return &TradeTableGenerator{
		rules:  rules,
		cfg:    cfg,
		peakEq: cfg.StartingEquity,
		cumPnL: money.Zero,
		maxDD:  money.Zero,
	}
}

// ProcessBar runs the fixed entries → exits → equity pipeline for one
// bar. Signals are the StrategySignals produced for this bar; only
// signals matching the generator's own symbol matter to callers, but
// the generator itself is symbol-agnostic and processes whatever it is
// given (the Simulator façade stamps every signal with the run's
// symbol upstream).
func (g *TradeTableGenerator) ProcessBar(bar Bar, signals []StrategySignal) error {
	if err := ValidateBar(bar); err != nil {
		return err
	}

	g.admitEntries(bar, signals)
	g.evaluateExits(bar)
	g.updateEquity(bar.Timestamp)
	return nil
}

func (g *TradeTableGenerator) admitEntries(bar Bar, signals []StrategySignal) {
	for _, sig := range signals {
		if g.active != nil {
			// A symbol in Open silently ignores further entries; not a rejection.
			continue
		}
		g.tryOpen(bar, sig)
	}
}

func (g *TradeTableGenerator) tryOpen(bar Bar, sig StrategySignal) {
	sizeUSD := sig.SizeUSD
	if sizeUSD.IsZero() {
		sizeUSD = g.cfg.DefaultSizeUSD
	}

	entryPrice := g.calculateEntryPrice(bar, sig)

	rawQty := money.DivRound(sizeUSD, entryPrice, g.rules.PrecisionQuantity+6, g.cfg.RoundingMode)
	qty := money.QuantizeQuantity(rawQty, g.rules.LotSize, g.cfg.RoundingMode)

	if err := money.EnsureMinNotional(entryPrice, qty, g.rules.MinNotional); err != nil {
		g.rejected = append(g.rejected, RejectedTrade{
			Timestamp: bar.Timestamp,
			Symbol:    sig.Symbol,
			Side:      sig.Side,
			Reason:    "NotionalMin",
			Notional:  qty.Mul(entryPrice).Abs(),
		})
		return
	}

	execPrice := g.applySlippage(entryPrice, sig.Side)
	execPrice = money.QuantizeToTick(execPrice, g.rules.TickSize, g.cfg.RoundingMode)

	entryFee := money.RoundAt(qty.Mul(execPrice).Mul(g.rules.TakerFee), g.rules.PrecisionPrice, g.cfg.RoundingMode)

	direction := Long
	if sig.Side == Sell {
		direction = Short
	}

	g.active = &ActivePosition{
		Symbol:     sig.Symbol,
		Direction:  direction,
		EntryTime:  bar.Timestamp,
		EntryPrice: execPrice,
		Quantity:   qty,
		TakeProfit: sig.TakeProfit,
		StopLoss:   sig.StopLoss,
		TTLMillis:  sig.TTLMillis,
		EntryFee:   entryFee,
		SizeUSD:    sizeUSD,
	}
}

// calculateEntryPrice resolves the base execution price before
// slippage, per the documented mapping in spec §9's Open Questions:
// ExactTrades uses the signal's own entry_price if set, else the bar's
// close; OneSecondBars and LinearInterpolation use the bar's open.
func (g *TradeTableGenerator) calculateEntryPrice(bar Bar, sig StrategySignal) money.Decimal {
	if g.cfg.IntrabarPolicy == ExactTrades {
		if sig.EntryPrice != nil {
			return *sig.EntryPrice
		}
		return bar.Close
	}
	return bar.Open
}

func (g *TradeTableGenerator) applySlippage(price money.Decimal, side Side) money.Decimal {
	rate := g.cfg.SlippageMode.rate()
	if rate.IsZero() {
		return price
	}
	delta := price.Mul(rate)
	if side == Buy {
		return price.Add(delta)
	}
	return price.Sub(delta)
}

func (g *TradeTableGenerator) evaluateExits(bar Bar) {
	if g.active == nil {
		return
	}
	cand, ok := evaluateExit(g.active, bar, g.cfg.IntrabarPolicy)
	if !ok {
		return
	}
	g.closePosition(bar, cand)
}

func (g *TradeTableGenerator) closePosition(bar Bar, cand exitCandidate) {
	pos := g.active
	exitPrice := money.QuantizeToTick(cand.price, g.rules.TickSize, g.cfg.RoundingMode)
	exitFee := money.RoundAt(pos.Quantity.Mul(exitPrice).Mul(g.rules.TakerFee), g.rules.PrecisionPrice, g.cfg.RoundingMode)
	totalFees := pos.EntryFee.Add(exitFee)

	var pnl money.Decimal
	if pos.Direction == Long {
		pnl = exitPrice.Sub(pos.EntryPrice).Mul(pos.Quantity).Sub(totalFees)
	} else {
		pnl = pos.EntryPrice.Sub(exitPrice).Mul(pos.Quantity).Sub(totalFees)
	}
	pnlPct := money.Zero
	if !pos.SizeUSD.IsZero() {
		pnlPct = money.DivRound(pnl, pos.SizeUSD, 8, g.cfg.RoundingMode)
	}

	exitTime := time.UnixMilli(int64(bar.Timestamp)).UTC()
	entryTime := time.UnixMilli(int64(pos.EntryTime)).UTC()

	record := TradeRecord{
		Date:            exitTime.Format("2006-01-02"),
		Direction:       pos.Direction,
		EntryPrice:      pos.EntryPrice,
		EntryTimeUTC:    entryTime.Format("2006-01-02T15:04:05.000Z"),
		EntryTimeMillis: pos.EntryTime,
		ExitPrice:       exitPrice,
		ExitTimeUTC:     exitTime.Format("2006-01-02T15:04:05.000Z"),
		ExitTimeMillis:  bar.Timestamp,
		ExitReason:      cand.reason,
		HitTPSL:         cand.hit,
		SizeUSD:         pos.SizeUSD,
		Qty:             pos.Quantity,
		FeesUSD:         totalFees,
		PnLUSD:          pnl,
		PnLPct:          pnlPct,
		Symbol:          pos.Symbol,
	}
	g.trades = append(g.trades, record)
	g.active = nil
}

func (g *TradeTableGenerator) updateEquity(ts Timestamp) {
	equity := g.cfg.StartingEquity
	for _, t := range g.trades {
		equity = equity.Add(t.PnLUSD)
	}
	if equity.GreaterThan(g.peakEq) {
		g.peakEq = equity
	}
	drawdown := money.Zero
	if g.peakEq.GreaterThan(money.Zero) {
		drawdown = money.DivRound(g.peakEq.Sub(equity), g.peakEq, 8, g.cfg.RoundingMode)
	}
	if drawdown.GreaterThan(g.maxDD) {
		g.maxDD = drawdown
	}

	exposure := money.Zero
	if g.active != nil {
		exposure = g.active.Quantity.Abs().Mul(g.active.EntryPrice)
	}

	g.equity = append(g.equity, EquityPoint{
		Timestamp: ts,
		Equity:    equity,
		Drawdown:  drawdown,
		Exposure:  exposure,
	})
}

// GenerateResult returns an immutable snapshot of the generator's
// state without consuming it: further ProcessBar calls may still be
// made on the same generator afterwards.
func (g *TradeTableGenerator) GenerateResult() TradeTableResult {
	trades := make([]TradeRecord, len(g.trades))
	copy(trades, g.trades)
	rejected := make([]RejectedTrade, len(g.rejected))
	copy(rejected, g.rejected)

	return TradeTableResult{
		Trades:         trades,
		Summary:        Summarize(trades, g.maxDD),
		RejectedTrades: rejected,
	}
}

// EquityCurve returns a copy of the equity points recorded so far.
func (g *TradeTableGenerator) EquityCurve() []EquityPoint {
	out := make([]EquityPoint, len(g.equity))
	copy(out, g.equity)
	return out
}

// Exposure returns Σ|qty|*avg_price over currently open positions
// (at most one per symbol in this kernel), per the Open Question
// resolution in SPEC_FULL.md §9.
func (g *TradeTableGenerator) Exposure() money.Decimal {
	if g.active == nil {
		return money.Zero
	}
	return g.active.Quantity.Abs().Mul(g.active.EntryPrice)
}

func (g *TradeTableGenerator) String() string {
	return fmt.Sprintf("TradeTableGenerator{trades=%d rejected=%d}", len(g.trades), len(g.rejected))
}
