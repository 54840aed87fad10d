package money

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestQuantizeToTick(t *testing.T) {
	cases := []struct {
		name  string
		price string
		tick  string
		mode  RoundingMode
		want  string
	}{
		{"penny tick rounds down", "100.123456", "0.01", NearestEven, "100.12"},
		{"exact multiple unchanged", "100.50", "0.01", NearestEven, "100.50"},
		{"zero tick passthrough", "100.123456", "0", NearestEven, "100.123456"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := QuantizeToTick(dec(c.price), dec(c.tick), c.mode)
			if !got.Equal(dec(c.want)) {
				t.Fatalf("QuantizeToTick(%s, %s) = %s, want %s", c.price, c.tick, got.String(), c.want)
			}
		})
	}
}

func TestEnsureMinNotional(t *testing.T) {
	err := EnsureMinNotional(dec("100.0"), dec("0.05"), dec("10.0"))
	if !errors.Is(err, ErrNotionalMin) {
		t.Fatalf("expected ErrNotionalMin, got %v", err)
	}

	if err := EnsureMinNotional(dec("100.0"), dec("1"), dec("10.0")); err != nil {
		t.Fatalf("expected no error for notional above minimum, got %v", err)
	}
}

func TestFromFloat64RejectsNonFinite(t *testing.T) {
	if _, err := FromFloat64(math.NaN(), 8); err == nil {
		t.Fatalf("expected error for NaN input")
	}
}

func TestRoundingModeString(t *testing.T) {
	if NearestEven.String() != "nearest-even" {
		t.Fatalf("unexpected String() for NearestEven: %s", NearestEven.String())
	}
}

func TestParseRoundingMode(t *testing.T) {
	if m, err := ParseRoundingMode(""); err != nil || m != NearestEven {
		t.Fatalf("empty string should default to NearestEven, got %v, %v", m, err)
	}
	if _, err := ParseRoundingMode("bogus"); err == nil {
		t.Fatalf("expected error for unrecognized mode")
	}
}
