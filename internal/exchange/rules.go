// Package exchange describes the static microstructure policy a
// symbol trades under: tick/lot quantization, minimum notional, fee
// schedule and display precision. It never mutates; a new Rules value
// is constructed per symbol (or per test case).
package exchange

import "github.com/chidi150c/backtest-engine/internal/money"

// Rules is the per-symbol exchange policy applied by the trade table
// generator when filling an order.
type Rules struct {
	TickSize          money.Decimal
	LotSize           money.Decimal
	MinNotional       money.Decimal
	MakerFee          money.Decimal
	TakerFee          money.Decimal
	PrecisionPrice    int32
	PrecisionQuantity int32
}

// DefaultRules mirrors the reference engine's ExchangeRules::default():
// tick/lot of 1e-8, a $10 minimum notional, and a flat 1bp maker/taker
// fee. Call sites override whichever fields their venue differs on.
func DefaultRules() Rules {
	return Rules{
		TickSize:          money.New(1, -8),
		LotSize:           money.New(1, -8),
		MinNotional:       money.New(10, 0),
		MakerFee:          money.New(1, -4),
		TakerFee:          money.New(1, -4),
		PrecisionPrice:    8,
		PrecisionQuantity: 8,
	}
}
