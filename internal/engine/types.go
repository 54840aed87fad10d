// Package engine implements the bar-driven simulation kernel: the
// position state machine, trade table generator, summary aggregator
// and the per-symbol simulator façade that ties them together.
package engine

import "github.com/chidi150c/backtest-engine/internal/money"

// Side is the direction of an order or a trade.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "Buy"
	}
	return "Sell"
}

// Direction is the side of an open or closed position.
type Direction int

const (
	Long Direction = iota
	Short
)

func (d Direction) String() string {
	if d == Long {
		return "Long"
	}
	return "Short"
}

// ExitReason records why a position was closed.
type ExitReason int

const (
	ExitTakeProfit ExitReason = iota
	ExitStopLoss
	ExitStrategyExit
	ExitLiquidation
	ExitTimeout
)

func (r ExitReason) String() string {
	switch r {
	case ExitTakeProfit:
		return "TakeProfit"
	case ExitStopLoss:
		return "StopLoss"
	case ExitStrategyExit:
		return "StrategyExit"
	case ExitLiquidation:
		return "Liquidation"
	case ExitTimeout:
		return "Timeout"
	default:
		panic("engine: unknown exit reason")
	}
}

// CSVString renders the reason using the abbreviations the CSV format
// names for exit_reason: TP and SL are abbreviated, the other three
// keep their long form.
func (r ExitReason) CSVString() string {
	switch r {
	case ExitTakeProfit:
		return "TP"
	case ExitStopLoss:
		return "SL"
	default:
		return r.String()
	}
}

// HitTPSL records whether the closing bar touched TP, SL, or neither.
type HitTPSL int

const (
	HitNone HitTPSL = iota
	HitTakeProfit
	HitStopLoss
)

func (h HitTPSL) String() string {
	switch h {
	case HitTakeProfit:
		return "TP"
	case HitStopLoss:
		return "SL"
	case HitNone:
		return "None"
	default:
		panic("engine: unknown hit_tp_sl value")
	}
}

// IntrabarPolicy selects how the kernel resolves ambiguity when more
// than one exit condition fires within the same bar.
type IntrabarPolicy int

const (
	ExactTrades IntrabarPolicy = iota
	OneSecondBars
	LinearInterpolation
)

func ParseIntrabarPolicy(s string) (IntrabarPolicy, error) {
	switch s {
	case "ExactTrades":
		return ExactTrades, nil
	case "OneSecondBars":
		return OneSecondBars, nil
	case "", "LinearInterpolation":
		return LinearInterpolation, nil
	default:
		return LinearInterpolation, errUnknownPolicy(s)
	}
}

// SlippageMode selects the flat basis-point adverse displacement
// applied to entry execution prices.
type SlippageMode int

const (
	SlippageNone SlippageMode = iota
	SlippageTradeSweep
	SlippageSyntheticBook
)

func ParseSlippageMode(s string) (SlippageMode, error) {
	switch s {
	case "", "None":
		return SlippageNone, nil
	case "TradeSweep":
		return SlippageTradeSweep, nil
	case "SyntheticBook":
		return SlippageSyntheticBook, nil
	default:
		return SlippageNone, errUnknownSlippage(s)
	}
}

// rate returns the adverse slippage rate for the mode: 1bp for
// TradeSweep, 5bp for SyntheticBook, per the reference engine's
// trade_table slippage constants.
func (m SlippageMode) rate() money.Decimal {
	switch m {
	case SlippageTradeSweep:
		return money.New(1, -4)
	case SlippageSyntheticBook:
		return money.New(5, -4)
	default:
		return money.Zero
	}
}

// Timestamp is Unix milliseconds.
type Timestamp = uint64

// Tick is a single trade print inside a bar's embedded trade tape,
// used only by the ExactTrades intrabar policy.
type Tick struct {
	Timestamp Timestamp
	Price     money.Decimal
}

// Bar is one OHLCV interval. Trades is optional and, when present,
// backs the ExactTrades intrabar policy.
type Bar struct {
	Timestamp  Timestamp
	Open       money.Decimal
	High       money.Decimal
	Low        money.Decimal
	Close      money.Decimal
	Volume     money.Decimal
	TradeCount uint32
	Trades     []Tick
}

// StrategySignal is produced by a Strategy in response to a bar.
// Optional fields are pointers so "unset" is distinguishable from the
// zero value.
type StrategySignal struct {
	Symbol     string
	Side       Side
	SizeUSD    money.Decimal
	EntryPrice *money.Decimal
	TakeProfit *money.Decimal
	StopLoss   *money.Decimal
	TTLMillis  *uint64
}

// ActivePosition tracks a symbol's single open position.
type ActivePosition struct {
	Symbol     string
	Direction  Direction
	EntryTime  Timestamp
	EntryPrice money.Decimal
	Quantity   money.Decimal
	TakeProfit *money.Decimal
	StopLoss   *money.Decimal
	TTLMillis  *uint64
	EntryFee   money.Decimal
	SizeUSD    money.Decimal
}

// TradeRecord is a closed trade. EntryTimeMillis/ExitTimeMillis are
// retained alongside the ISO strings so aggregate statistics (e.g.
// avg_holding_time_hours) are computed from real integers rather than
// re-parsing or, worse, measuring string length.
type TradeRecord struct {
	Date            string
	Direction       Direction
	EntryPrice      money.Decimal
	EntryTimeUTC    string
	EntryTimeMillis Timestamp
	ExitPrice       money.Decimal
	ExitTimeUTC     string
	ExitTimeMillis  Timestamp
	ExitReason      ExitReason
	HitTPSL         HitTPSL
	SizeUSD         money.Decimal
	Qty             money.Decimal
	FeesUSD         money.Decimal
	PnLUSD          money.Decimal
	PnLPct          money.Decimal
	Symbol          string
}

// RejectedTrade is emitted when an entry signal fails an admission filter.
type RejectedTrade struct {
	Timestamp Timestamp
	Symbol    string
	Side      Side
	Reason    string
	Notional  money.Decimal
}

// EquityPoint is appended once per processed bar.
type EquityPoint struct {
	Timestamp Timestamp
	Equity    money.Decimal
	Drawdown  money.Decimal
	Exposure  money.Decimal
}

// TradeSummary holds the aggregate statistics over a closed-trade sequence.
type TradeSummary struct {
	TotalTrades         int
	Wins                int
	Losses              int
	WinRate             money.Decimal
	NetPnLUSD           money.Decimal
	AvgWinUSD           money.Decimal
	AvgLossUSD          money.Decimal
	Expectancy          money.Decimal
	MaxDrawdown         money.Decimal
	ProfitFactor        money.Decimal
	AvgHoldingTimeHours money.Decimal
}

// TradeTableResult is the generator's immutable output snapshot.
type TradeTableResult struct {
	Trades         []TradeRecord
	Summary        TradeSummary
	RejectedTrades []RejectedTrade
}

// SymbolResult is the simulator façade's per-symbol output.
type SymbolResult struct {
	Symbol      string
	Trades      []TradeRecord
	Rejected    []RejectedTrade
	Summary     TradeSummary
	EquityCurve []EquityPoint
	Exposure    money.Decimal
}
