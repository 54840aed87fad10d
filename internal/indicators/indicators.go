// Package indicators computes cached technical-indicator series over a
// symbol's bar history: SMA, EMA, RSI, ATR, VWAP, highest-high and
// lowest-low. Every calculator is a pure function of []Bar; the
// Registry adds a per-(name,symbol) cache on top so a strategy that
// asks for the same indicator on every bar doesn't recompute the whole
// history each time.
package indicators

import (
	"errors"
	"fmt"

	"github.com/chidi150c/backtest-engine/internal/money"
)

// ErrUnknownIndicator is returned when a strategy requests an
// indicator name the registry doesn't know how to compute.
var ErrUnknownIndicator = errors.New("indicators: unknown indicator")

// Bar is the minimal OHLCV view indicators need. internal/engine copies
// its own Bar values into this type field by field before calculating.
type Bar struct {
	Timestamp uint64
	Open      money.Decimal
	High      money.Decimal
	Low       money.Decimal
	Close     money.Decimal
	Volume    money.Decimal
}

// Point is a single timestamped indicator sample.
type Point struct {
	Timestamp uint64
	Value     money.Decimal
}

// Params configures a single indicator calculation. Alpha, when nil,
// defaults to 2/(period+1) for EMA.
type Params struct {
	Period int
	Alpha  *money.Decimal
}

type cacheKey struct {
	name   string
	symbol string
}

// Registry caches indicator series per (name, symbol) and gates the
// vectorized SMA fast path behind a one-time self-check against the
// scalar implementation.
type Registry struct {
	enableSIMD  bool
	simdTrusted bool
	cache       map[cacheKey][]Point
}

// NewRegistry constructs a Registry. enableSIMD requests the chunked
// float64 SMA fast path (internal/indicators/sma.go); it is only ever
// honored if VerifySIMD (called once by the caller) confirms the host's SIMD path agrees with the
// scalar Decimal path bit-for-bit on a reference corpus.
func NewRegistry(enableSIMD bool) *Registry {
	return &Registry{
		enableSIMD: enableSIMD,
		cache:      make(map[cacheKey][]Point),
	}
}

// VerifySIMD runs the scalar and SIMD SMA paths over a small reference
// bar series and disables the fast path for this Registry instance if
// they disagree. It must be called before the registry is used if
// enableSIMD was requested; it is idempotent.
func (r *Registry) VerifySIMD() {
	if !r.enableSIMD {
		r.simdTrusted = false
		return
	}
	ref := referenceSMACorpus()
	scalar := calculateSMA(ref, Params{Period: 8})
	simd := calculateSMASIMD(ref, 8)
	r.simdTrusted = samePoints(scalar, simd)
}

func samePoints(a, b []Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Timestamp != b[i].Timestamp || !a[i].Value.Equal(b[i].Value) {
			return false
		}
	}
	return true
}

func referenceSMACorpus() []Bar {
	bars := make([]Bar, 16)
	vals := []int64{10, 11, 12, 11, 13, 14, 15, 14, 16, 17, 18, 17, 19, 20, 21, 20}
	for i, v := range vals {
		c := money.New(v, 0)
		bars[i] = Bar{Timestamp: uint64(i), Open: c, High: c, Low: c, Close: c, Volume: money.New(1, 0)}
	}
	return bars
}

// Invalidate drops every cached series for symbol. Call this whenever
// new bars are appended for that symbol so a subsequent Calculate
// recomputes from the fresh history rather than returning stale data.
func (r *Registry) Invalidate(symbol string) {
	for k := range r.cache {
		if k.symbol == symbol {
			delete(r.cache, k)
		}
	}
}

// Calculate returns the cached series for name/symbol, computing it
// (and populating the cache) on first request. Unknown indicator names
// return ErrUnknownIndicator; an empty bars slice returns an empty,
// uncached series.
func (r *Registry) Calculate(name, symbol string, bars []Bar, params Params) ([]Point, error) {
	switch name {
	case "sma", "ema", "rsi", "atr", "vwap", "hh", "ll":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownIndicator, name)
	}
	if len(bars) == 0 {
		return nil, nil
	}
	key := cacheKey{name: name, symbol: symbol}
	if cached, ok := r.cache[key]; ok {
		return cached, nil
	}

	var values []Point
	switch name {
	case "sma":
		if r.enableSIMD && r.simdTrusted && params.Period >= 8 {
			values = calculateSMASIMD(bars, params.Period)
		} else {
			values = calculateSMA(bars, withDefault(params, 20))
		}
	case "ema":
		values = calculateEMA(bars, withDefault(params, 20))
	case "rsi":
		values = calculateRSI(bars, withDefault(params, 14))
	case "atr":
		values = calculateATR(bars, withDefault(params, 14))
	case "vwap":
		values = calculateVWAP(bars)
	case "hh":
		values = calculateHighestHigh(bars, withDefault(params, 20))
	case "ll":
		values = calculateLowestLow(bars, withDefault(params, 20))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownIndicator, name)
	}

	r.cache[key] = values
	return values, nil
}

func withDefault(p Params, defaultPeriod int) Params {
	if p.Period <= 0 {
		p.Period = defaultPeriod
	}
	return p
}
