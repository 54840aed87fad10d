package strategy

import (
	"testing"

	"github.com/chidi150c/backtest-engine/internal/engine"
	"github.com/chidi150c/backtest-engine/internal/indicators"
	"github.com/chidi150c/backtest-engine/internal/money"
)

func TestEMARSILongEntryConditions(t *testing.T) {
	s := NewEMARSIStrategy(DefaultEMARSIConfig())

	closeP, _ := money.FromFloat64(102.0, 8)
	bar := engine.Bar{Timestamp: 1_000_000, Close: closeP}

	values := map[string][]indicators.Point{
		"ema": {
			{Timestamp: 999, Value: money.New(100, 0)},
			{Timestamp: 1000, Value: money.New(101, 0)},
		},
		"rsi": {
			{Timestamp: 999, Value: money.New(35, 0)},
			{Timestamp: 1000, Value: money.New(25, 0)},
		},
	}

	signals := s.OnBar(bar, values, nil)
	if len(signals) != 1 {
		t.Fatalf("expected 1 signal, got %d", len(signals))
	}
	if signals[0].Side != engine.Buy {
		t.Fatalf("expected Buy signal, got %v", signals[0].Side)
	}
}

func TestEMARSINoSignalWithOpenPosition(t *testing.T) {
	s := NewEMARSIStrategy(DefaultEMARSIConfig())
	pos := &engine.ActivePosition{Symbol: "X"}
	signals := s.OnBar(engine.Bar{}, nil, pos)
	if signals != nil {
		t.Fatalf("expected no signal while a position is open, got %v", signals)
	}
}

func TestEMARSIInsufficientIndicatorHistory(t *testing.T) {
	s := NewEMARSIStrategy(DefaultEMARSIConfig())
	values := map[string][]indicators.Point{
		"ema": {{Timestamp: 1, Value: money.New(1, 0)}},
		"rsi": {{Timestamp: 1, Value: money.New(1, 0)}},
	}
	signals := s.OnBar(engine.Bar{}, values, nil)
	if signals != nil {
		t.Fatalf("expected no signal with insufficient history, got %v", signals)
	}
}
