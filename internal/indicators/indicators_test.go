package indicators

import (
	"errors"
	"testing"

	"github.com/chidi150c/backtest-engine/internal/money"
)

func barsFromCloses(closes []float64) []Bar {
	bars := make([]Bar, len(closes))
	for i, c := range closes {
		d, _ := money.FromFloat64(c, 8)
		bars[i] = Bar{Timestamp: uint64(i), Open: d, High: d, Low: d, Close: d, Volume: money.New(1, 0)}
	}
	return bars
}

func TestSMABasic(t *testing.T) {
	bars := barsFromCloses([]float64{1, 2, 3, 4, 5})
	pts := calculateSMA(bars, Params{Period: 3})
	if len(pts) != 3 {
		t.Fatalf("expected 3 points, got %d", len(pts))
	}
	want := []string{"2", "3", "4"}
	for i, p := range pts {
		if p.Value.String() != want[i] {
			t.Errorf("point %d = %s, want %s", i, p.Value.String(), want[i])
		}
	}
}

func TestSMAInsufficientData(t *testing.T) {
	bars := barsFromCloses([]float64{1, 2})
	pts := calculateSMA(bars, Params{Period: 5})
	if pts != nil {
		t.Fatalf("expected nil for insufficient data, got %v", pts)
	}
}

func TestSMASIMDMatchesScalar(t *testing.T) {
	r := NewRegistry(true)
	r.VerifySIMD()
	if !r.simdTrusted {
		t.Fatalf("expected SIMD path to match scalar path on reference corpus")
	}
}

func TestRSINoLossesIsExactly100(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = float64(100 + i)
	}
	bars := barsFromCloses(closes)
	pts := calculateRSI(bars, Params{Period: 14})
	if len(pts) == 0 {
		t.Fatalf("expected rsi points")
	}
	last := pts[len(pts)-1]
	if !last.Value.Equal(money.Hundred) {
		t.Fatalf("expected rsi=100 with no losses, got %s", last.Value.String())
	}
}

func TestRegistryCachesAndInvalidates(t *testing.T) {
	r := NewRegistry(false)
	bars := barsFromCloses([]float64{1, 2, 3, 4, 5})
	pts1, err := r.Calculate("sma", "BTCUSD", bars, Params{Period: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pts2, err := r.Calculate("sma", "BTCUSD", bars, Params{Period: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pts1) != len(pts2) {
		t.Fatalf("cached result mismatch")
	}
	r.Invalidate("BTCUSD")
	if _, ok := r.cache[cacheKey{name: "sma", symbol: "BTCUSD"}]; ok {
		t.Fatalf("expected cache entry to be invalidated")
	}
}

func TestUnknownIndicator(t *testing.T) {
	r := NewRegistry(false)
	bars := barsFromCloses([]float64{1, 2, 3})
	_, err := r.Calculate("bogus", "BTCUSD", bars, Params{Period: 3})
	if !errors.Is(err, ErrUnknownIndicator) {
		t.Fatalf("expected ErrUnknownIndicator, got %v", err)
	}
}
