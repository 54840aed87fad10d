package engine

import "testing"

func TestNewRunManifestNamesEnumValues(t *testing.T) {
	cfg := DefaultRunConfig()
	cfg.IntrabarPolicy = ExactTrades
	cfg.SlippageMode = SlippageTradeSweep

	m := NewRunManifest(cfg, 1704067200000)

	if m.RunID == "" {
		t.Fatalf("expected a non-empty RunID")
	}
	if m2 := NewRunManifest(cfg, 1704067200000); m2.RunID == m.RunID {
		t.Fatalf("expected distinct RunIDs across manifests, got %s twice", m.RunID)
	}
	if m.EngineVersion != EngineVersion {
		t.Fatalf("expected engine version %s, got %s", EngineVersion, m.EngineVersion)
	}
	if m.IntrabarPolicy != "ExactTrades" {
		t.Fatalf("expected ExactTrades, got %s", m.IntrabarPolicy)
	}
	if m.SlippageMode != "TradeSweep" {
		t.Fatalf("expected TradeSweep, got %s", m.SlippageMode)
	}
	if m.RoundingMode != "nearest-even" {
		t.Fatalf("expected nearest-even, got %s", m.RoundingMode)
	}
	if m.CreatedAtMillis != 1704067200000 {
		t.Fatalf("unexpected timestamp %d", m.CreatedAtMillis)
	}
}
