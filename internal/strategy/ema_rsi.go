package strategy

import (
	"sort"

	"github.com/chidi150c/backtest-engine/internal/engine"
	"github.com/chidi150c/backtest-engine/internal/indicators"
	"github.com/chidi150c/backtest-engine/internal/money"
)

// EMARSIConfig configures EMARSIStrategy. Defaults mirror the original
// trend/mean-reversion blend: a 20-period EMA for trend, a 14-period
// RSI for overbought/oversold, 2%/4% stop-loss/take-profit, and a one
// hour bracket TTL.
type EMARSIConfig struct {
	EMAPeriod              int
	RSIPeriod              int
	RSIOversold            money.Decimal
	RSIOverbought          money.Decimal
	PositionSizeUSD        money.Decimal
	StopLossPct            money.Decimal
	TakeProfitPct          money.Decimal
	MinMillisBetweenTrades uint64
	BracketTTLMillis       uint64
}

// DefaultEMARSIConfig matches the reference strategy's defaults.
func DefaultEMARSIConfig() EMARSIConfig {
	return EMARSIConfig{
		EMAPeriod:              20,
		RSIPeriod:              14,
		RSIOversold:            money.New(30, 0),
		RSIOverbought:          money.New(70, 0),
		PositionSizeUSD:        money.New(1000, 0),
		StopLossPct:            money.New(2, -2),
		TakeProfitPct:          money.New(4, -2),
		MinMillisBetweenTrades: 300_000,
		BracketTTLMillis:       3_600_000,
	}
}

// EMARSIStrategy enters long when RSI is oversold and the EMA trend is
// up with price above the EMA, enters short on the mirrored overbought
// condition, and otherwise relies on the kernel's own TP/SL/TTL
// bracket evaluation to close the position — it does not itself emit
// ad hoc exit signals once a position is open, since the kernel's
// Position State Machine already owns exit timing deterministically.
type EMARSIStrategy struct {
	cfg            EMARSIConfig
	lastSignalTime uint64
}

// NewEMARSIStrategy constructs a strategy under cfg.
func NewEMARSIStrategy(cfg EMARSIConfig) *EMARSIStrategy {
	return &EMARSIStrategy{cfg: cfg}
}

func (s *EMARSIStrategy) RequiredIndicators() []string {
	return []string{"ema", "rsi"}
}

func (s *EMARSIStrategy) OnBar(bar engine.Bar, values map[string][]indicators.Point, position *engine.ActivePosition) []engine.StrategySignal {
	if position != nil {
		// The kernel's bracket orders own the exit; the strategy does
		// not compete with them by emitting its own exit signal.
		return nil
	}

	// The series cover the whole history; only points stamped at or
	// before this bar are visible to the decision.
	ema := values["ema"]
	ema = ema[:sort.Search(len(ema), func(i int) bool { return ema[i].Timestamp > bar.Timestamp })]
	rsi := values["rsi"]
	rsi = rsi[:sort.Search(len(rsi), func(i int) bool { return rsi[i].Timestamp > bar.Timestamp })]
	if len(ema) < 2 || len(rsi) < 2 {
		return nil
	}

	currentEMA := ema[len(ema)-1].Value
	previousEMA := ema[len(ema)-2].Value
	currentRSI := rsi[len(rsi)-1].Value

	emaTrendUp := currentEMA.GreaterThan(previousEMA)
	priceAboveEMA := bar.Close.GreaterThan(currentEMA)

	var sinceLast uint64
	if bar.Timestamp > s.lastSignalTime {
		sinceLast = bar.Timestamp - s.lastSignalTime
	}
	cooledDown := sinceLast > s.cfg.MinMillisBetweenTrades

	enterLong := currentRSI.LessThan(s.cfg.RSIOversold) && emaTrendUp && priceAboveEMA && cooledDown
	enterShort := currentRSI.GreaterThan(s.cfg.RSIOverbought) && !emaTrendUp && !priceAboveEMA && cooledDown

	if !enterLong && !enterShort {
		return nil
	}

	s.lastSignalTime = bar.Timestamp
	ttl := s.cfg.BracketTTLMillis

	if enterLong {
		sl := bar.Close.Mul(money.One.Sub(s.cfg.StopLossPct))
		tp := bar.Close.Mul(money.One.Add(s.cfg.TakeProfitPct))
		return []engine.StrategySignal{{
			Side:       engine.Buy,
			SizeUSD:    s.cfg.PositionSizeUSD,
			TakeProfit: &tp,
			StopLoss:   &sl,
			TTLMillis:  &ttl,
		}}
	}

	sl := bar.Close.Mul(money.One.Add(s.cfg.StopLossPct))
	tp := bar.Close.Mul(money.One.Sub(s.cfg.TakeProfitPct))
	return []engine.StrategySignal{{
		Side:       engine.Sell,
		SizeUSD:    s.cfg.PositionSizeUSD,
		TakeProfit: &tp,
		StopLoss:   &sl,
		TTLMillis:  &ttl,
	}}
}
