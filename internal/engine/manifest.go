package engine

import "github.com/google/uuid"

// EngineVersion is stamped into every RunManifest. Bump it when the
// kernel's observable semantics change (not on every commit).
const EngineVersion = "1.0.0"

// RunManifest is a small reproducibility record attached to a
// simulation run: which policy knobs produced a given TradeTableResult,
// so a result can be audited or replayed later. Supplements the
// distilled spec per SPEC_FULL.md §10, grounded on the reference
// engine's RunManifest/versioning concept. RunID lets two manifests for
// the same symbol/config be told apart across repeated runs.
type RunManifest struct {
	RunID           string
	EngineVersion   string
	IntrabarPolicy  string
	SlippageMode    string
	RoundingMode    string
	CreatedAtMillis uint64
}

// NewRunManifest builds a manifest for cfg, stamped with a fresh RunID.
// createdAtMillis is passed in by the caller (the kernel itself never
// reads the wall clock).
func NewRunManifest(cfg RunConfig, createdAtMillis uint64) RunManifest {
	policyNames := map[IntrabarPolicy]string{
		ExactTrades:         "ExactTrades",
		OneSecondBars:       "OneSecondBars",
		LinearInterpolation: "LinearInterpolation",
	}
	slippageNames := map[SlippageMode]string{
		SlippageNone:          "None",
		SlippageTradeSweep:    "TradeSweep",
		SlippageSyntheticBook: "SyntheticBook",
	}
	return RunManifest{
		RunID:           uuid.NewString(),
		EngineVersion:   EngineVersion,
		IntrabarPolicy:  policyNames[cfg.IntrabarPolicy],
		SlippageMode:    slippageNames[cfg.SlippageMode],
		RoundingMode:    cfg.RoundingMode.String(),
		CreatedAtMillis: createdAtMillis,
	}
}
