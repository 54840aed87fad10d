package money

import (
	"errors"
	"fmt"
)

// ErrNotionalMin is returned by EnsureMinNotional when an order's
// notional value (price * quantity) falls below the exchange's minimum.
// Callers treat this as non-fatal: the order is rejected and recorded,
// the simulation continues.
var ErrNotionalMin = errors.New("money: notional below exchange minimum")

// scaleOf returns the number of fractional digits implied by a step
// size such as 0.01 or 0.00000001 (i.e. its negative decimal exponent).
func scaleOf(step Decimal) int32 {
	e := step.Exponent()
	if e >= 0 {
		return 0
	}
	return -e
}

// QuantizeToTick snaps price to the nearest multiple of tick under mode.
// A tick of zero disables quantization (returns price unchanged), which
// mirrors exchanges that quote in continuous decimal prices.
func QuantizeToTick(price, tick Decimal, mode RoundingMode) Decimal {
	if tick.IsZero() {
		return price
	}
	units := DivRound(price, tick, scaleOf(tick)+6, mode)
	steps := RoundAt(units, 0, mode)
	return steps.Mul(tick)
}

// QuantizeQuantity snaps qty down/to-nearest to a multiple of lot under
// mode, exactly as QuantizeToTick but for order size.
func QuantizeQuantity(qty, lot Decimal, mode RoundingMode) Decimal {
	return QuantizeToTick(qty, lot, mode)
}

// EnsureMinNotional verifies price*qty meets the exchange's minimum
// notional requirement. It returns ErrNotionalMin (never a bare error)
// so callers can type-check via errors.Is.
func EnsureMinNotional(price, qty, min Decimal) error {
	notional := price.Mul(qty).Abs()
	if notional.LessThan(min) {
		return fmt.Errorf("%w: notional %s below minimum %s", ErrNotionalMin, notional.String(), min.String())
	}
	return nil
}
