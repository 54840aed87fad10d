package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/chidi150c/backtest-engine/internal/exchange"
	"github.com/chidi150c/backtest-engine/internal/indicators"
)

// Strategy is the black-box collaborator the kernel drives. It never
// inspects the kernel's internals and the kernel never inspects its
// internals beyond the declared indicator names and emitted signals.
type Strategy interface {
	RequiredIndicators() []string
	OnBar(bar Bar, values map[string][]indicators.Point, position *ActivePosition) []StrategySignal
}

// MarketData is one symbol's input: its bars and the exchange rules it
// trades under. The optional trade tape used by ExactTrades is carried
// per bar in Bar.Trades, not on MarketData.
type MarketData struct {
	Symbol    string
	Timeframe string
	Bars      []Bar
	Rules     exchange.Rules
}

// Simulator drives one or many symbols' TradeTableGenerators from a
// Strategy's signals. Each symbol owns its own generator and indicator
// registry; there is no shared mutable state across symbols, so RunAll
// can run them concurrently.
type Simulator struct {
	cfg RunConfig
}

// NewSimulator constructs a Simulator under the given run configuration.
func NewSimulator(cfg RunConfig) *Simulator {
	return &Simulator{cfg: cfg}
}

// Run drives a single symbol end to end: it computes the strategy's
// required indicators once, then loops bars in strict ascending
// timestamp order, calling OnBar and feeding the resulting signals into
// the generator. A bar whose timestamp is not after the previous bar's
// aborts the run with ErrInvalidBar. ctx is checked for cancellation between bars only;
// the per-bar pipeline itself never yields.
func (s *Simulator) Run(ctx context.Context, md MarketData, strategy Strategy, registry *indicators.Registry) (SymbolResult, error) {
	generator := NewTradeTableGenerator(md.Rules, s.cfg)

	indicatorBars := toIndicatorBars(md.Bars)
	values := make(map[string][]indicators.Point, len(strategy.RequiredIndicators()))
	for _, name := range strategy.RequiredIndicators() {
		pts, err := registry.Calculate(name, md.Symbol, indicatorBars, indicators.Params{})
		if err != nil {
			return SymbolResult{}, fmt.Errorf("symbol %s: %w", md.Symbol, err)
		}
		values[name] = pts
	}

	var position *ActivePosition
	for i, bar := range md.Bars {
		select {
		case <-ctx.Done():
			return SymbolResult{}, fmt.Errorf("symbol %s: %w", md.Symbol, ErrInterrupted)
		default:
		}
		if i > 0 && bar.Timestamp <= md.Bars[i-1].Timestamp {
			return SymbolResult{}, fmt.Errorf("symbol %s at %d: %w: timestamp not after previous bar %d",
				md.Symbol, bar.Timestamp, ErrInvalidBar, md.Bars[i-1].Timestamp)
		}

		signals := strategy.OnBar(bar, values, position)
		for i := range signals {
			signals[i].Symbol = md.Symbol
		}
		if err := generator.ProcessBar(bar, signals); err != nil {
			return SymbolResult{}, fmt.Errorf("symbol %s at %d: %w", md.Symbol, bar.Timestamp, err)
		}
		position = generator.active
	}

	result := generator.GenerateResult()
	return SymbolResult{
		Symbol:      md.Symbol,
		Trades:      result.Trades,
		Rejected:    result.RejectedTrades,
		Summary:     result.Summary,
		EquityCurve: generator.EquityCurve(),
		Exposure:    generator.Exposure(),
	}, nil
}

func toIndicatorBars(bars []Bar) []indicators.Bar {
	out := make([]indicators.Bar, len(bars))
	for i, b := range bars {
		out[i] = indicators.Bar{
			Timestamp: b.Timestamp,
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			Volume:    b.Volume,
		}
	}
	return out
}

// SymbolOutcome pairs a symbol's result with any fatal error its run
// produced, for RunAll's partial-success reporting.
type SymbolOutcome struct {
	Result SymbolResult
	Err    error
}

// RunAll runs every symbol in mds concurrently, each with its own
// generator and indicator registry (no shared mutable state). A fatal
// error in one symbol's run does not abort the others: the caller
// inspects each SymbolOutcome.Err independently.
func (s *Simulator) RunAll(ctx context.Context, mds []MarketData, newStrategy func() Strategy, enableSIMD bool) map[string]SymbolOutcome {
	out := make(map[string]SymbolOutcome, len(mds))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, md := range mds {
		md := md
		wg.Add(1)
		go func() {
			defer wg.Done()
			registry := indicators.NewRegistry(enableSIMD)
			registry.VerifySIMD()
			strategy := newStrategy()
			result, err := s.Run(ctx, md, strategy, registry)
			mu.Lock()
			out[md.Symbol] = SymbolOutcome{Result: result, Err: err}
			mu.Unlock()
		}()
	}
	wg.Wait()
	return out
}
