package config

import (
	"testing"

	"github.com/chidi150c/backtest-engine/internal/engine"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg := LoadFromEnv()
	if cfg.StartingEquityUSD != 10000.0 {
		t.Fatalf("expected default starting equity 10000, got %v", cfg.StartingEquityUSD)
	}
	if cfg.IntrabarPolicy != "LinearInterpolation" {
		t.Fatalf("expected default intrabar policy, got %s", cfg.IntrabarPolicy)
	}
}

func TestToRunConfig(t *testing.T) {
	cfg := Config{StartingEquityUSD: 10000, DefaultSizeUSD: 1000, IntrabarPolicy: "ExactTrades", SlippageMode: "TradeSweep"}
	rc, err := cfg.ToRunConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rc.IntrabarPolicy != engine.ExactTrades {
		t.Fatalf("expected ExactTrades, got %v", rc.IntrabarPolicy)
	}
	if rc.SlippageMode != engine.SlippageTradeSweep {
		t.Fatalf("expected TradeSweep, got %v", rc.SlippageMode)
	}
}

func TestToRunConfigRejectsUnknownPolicy(t *testing.T) {
	cfg := Config{IntrabarPolicy: "Bogus"}
	if _, err := cfg.ToRunConfig(); err == nil {
		t.Fatalf("expected error for unknown intrabar policy")
	}
}
