// Package money implements deterministic fixed-point decimal arithmetic
// for the backtesting engine. All trade-affecting values (prices,
// quantities, fees, PnL) are represented as Decimal rather than float64
// so that two runs over the same inputs produce byte-identical output.
package money

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Decimal is the money/price/quantity representation used throughout
// the engine. shopspring/decimal stores an arbitrary-precision integer
// coefficient plus a base-10 exponent, giving exact decimal arithmetic
// for +, -, * and explicit-rounding /.
type Decimal = decimal.Decimal

// Zero, One and Hundred are convenience constants mirrored from decimal.
var (
	Zero    = decimal.Zero
	One     = decimal.NewFromInt(1)
	Hundred = decimal.NewFromInt(100)
)

// New constructs a Decimal as value * 10^exp, mirroring decimal.New.
func New(value int64, exp int32) Decimal {
	return decimal.New(value, exp)
}

// RoundingMode selects how a division or quantization resolves a value
// that falls between two representable steps.
type RoundingMode int

const (
	// NearestEven rounds half-way values to the nearest even digit
	// (banker's rounding). This is the mandated default for all money
	// calculations in the engine.
	NearestEven RoundingMode = iota
	NearestAway
	TowardZero
	TowardPositive
	TowardNegative
)

func (m RoundingMode) String() string {
	switch m {
	case NearestEven:
		return "nearest-even"
	case NearestAway:
		return "nearest-away"
	case TowardZero:
		return "toward-zero"
	case TowardPositive:
		return "toward-positive"
	case TowardNegative:
		return "toward-negative"
	default:
		panic(fmt.Sprintf("money: unknown rounding mode %d", int(m)))
	}
}

// ParseRoundingMode accepts the env/config spelling of a rounding mode.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch s {
	case "", "nearest-even":
		return NearestEven, nil
	case "nearest-away":
		return NearestAway, nil
	case "toward-zero":
		return TowardZero, nil
	case "toward-positive":
		return TowardPositive, nil
	case "toward-negative":
		return TowardNegative, nil
	default:
		return NearestEven, fmt.Errorf("money: unrecognized rounding mode %q", s)
	}
}

// DivRound divides a by b at the given decimal scale under mode.
// Division is the only operation that can require rounding, since
// shopspring/decimal keeps +, -, * exact.
func DivRound(a, b Decimal, scale int32, mode RoundingMode) Decimal {
	switch mode {
	case NearestEven:
		// QuoRem truncates toward zero; the exact remainder decides
		// whether to step one unit away from zero, with exact halves
		// going to the even neighbour.
		q, r := a.QuoRem(b, scale)
		c := r.Abs().Mul(decimal.NewFromInt(2)).Cmp(b.Abs().Shift(-scale))
		if c > 0 || (c == 0 && q.Shift(scale).BigInt().Bit(0) == 1) {
			step := decimal.New(1, -scale)
			if r.Sign() != b.Sign() {
				step = step.Neg()
			}
			q = q.Add(step)
		}
		return q
	case NearestAway:
		return a.DivRound(b, scale)
	case TowardZero:
		return truncateDiv(a, b, scale)
	case TowardPositive:
		return ceilDiv(a, b, scale)
	case TowardNegative:
		return floorDiv(a, b, scale)
	default:
		panic(fmt.Sprintf("money: unknown rounding mode %d", int(mode)))
	}
}

func truncateDiv(a, b Decimal, scale int32) Decimal {
	q, _ := a.QuoRem(b, scale)
	return q
}

func ceilDiv(a, b Decimal, scale int32) Decimal {
	q, r := a.QuoRem(b, scale)
	if r.Sign() != 0 && r.Sign() == b.Sign() {
		step := decimal.New(1, -scale)
		return q.Add(step)
	}
	return q
}

func floorDiv(a, b Decimal, scale int32) Decimal {
	q, r := a.QuoRem(b, scale)
	if r.Sign() != 0 && r.Sign() != b.Sign() {
		step := decimal.New(1, -scale)
		return q.Sub(step)
	}
	return q
}

// RoundAt rounds value to scale decimal places under mode. Unlike
// DivRound this operates on a single already-computed value (used by
// QuantizeToTick / QuantizeQuantity in quantize.go).
func RoundAt(value Decimal, scale int32, mode RoundingMode) Decimal {
	switch mode {
	case NearestEven:
		return value.RoundBank(scale)
	case NearestAway:
		return value.Round(scale)
	case TowardZero:
		return value.Truncate(scale)
	case TowardPositive:
		t := value.Truncate(scale)
		if t.LessThan(value) {
			step := decimal.New(1, -scale)
			return t.Add(step)
		}
		return t
	case TowardNegative:
		t := value.Truncate(scale)
		if t.GreaterThan(value) {
			step := decimal.New(1, -scale)
			return t.Sub(step)
		}
		return t
	default:
		panic(fmt.Sprintf("money: unknown rounding mode %d", int(mode)))
	}
}

// FromFloat64 converts a float64 into a Decimal with the given number
// of fractional digits, rejecting non-finite inputs so a bad upstream
// feed (e.g. a division by zero in a strategy) fails loudly instead of
// poisoning the trade table with NaN.
func FromFloat64(x float64, precision int32) (Decimal, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Decimal{}, fmt.Errorf("money: non-finite float64 value %v", x)
	}
	return decimal.NewFromFloat(x).Round(precision), nil
}

// ToFloat64 converts a Decimal back to float64. Used only on the SIMD
// fast path and in places that must interoperate with math.* functions;
// never used for a value that feeds back into the trade table without
// being re-quantized through FromFloat64.
func ToFloat64(d Decimal) float64 {
	f, _ := d.Float64()
	return f
}
