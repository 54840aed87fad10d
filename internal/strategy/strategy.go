// Package strategy defines the Strategy interface the kernel consumes
// and a reference EMA/RSI implementation used by the CLI demo as a
// realistic signal source.
package strategy

import "github.com/chidi150c/backtest-engine/internal/engine"

// Strategy mirrors engine.Strategy; re-declared here so strategy
// implementations don't need to import internal/engine's whole surface
// just to satisfy the interface.
type Strategy = engine.Strategy
