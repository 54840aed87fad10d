package engine

import (
	"errors"
	"fmt"
)

// Sentinel error kinds per the engine's error handling design. All but
// ErrNotionalMin and ErrInsufficientData are fatal for the per-symbol run.
var (
	ErrInvalidBar         = errors.New("engine: invalid bar")
	ErrUnknownIndicator   = errors.New("engine: unknown indicator")
	ErrInsufficientData   = errors.New("engine: insufficient data for indicator")
	ErrNonDeterministicFP = errors.New("engine: non-deterministic floating point")
	ErrArithmetic         = errors.New("engine: arithmetic error")
	ErrInterrupted        = errors.New("engine: interrupted")
)

func errUnknownPolicy(s string) error {
	return fmt.Errorf("engine: unknown intrabar policy %q", s)
}

func errUnknownSlippage(s string) error {
	return fmt.Errorf("engine: unknown slippage mode %q", s)
}

// ValidateBar checks the Bar invariants from the data model: low <=
// open,close <= high, low <= high, volume >= 0.
func ValidateBar(b Bar) error {
	if b.Low.GreaterThan(b.High) {
		return fmt.Errorf("%w: low %s > high %s", ErrInvalidBar, b.Low.String(), b.High.String())
	}
	if b.Open.LessThan(b.Low) || b.Open.GreaterThan(b.High) {
		return fmt.Errorf("%w: open %s outside [low,high]", ErrInvalidBar, b.Open.String())
	}
	if b.Close.LessThan(b.Low) || b.Close.GreaterThan(b.High) {
		return fmt.Errorf("%w: close %s outside [low,high]", ErrInvalidBar, b.Close.String())
	}
	if b.Volume.IsNegative() {
		return fmt.Errorf("%w: negative volume %s", ErrInvalidBar, b.Volume.String())
	}
	return nil
}
