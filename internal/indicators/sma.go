package indicators

import "github.com/chidi150c/backtest-engine/internal/money"

func calculateSMA(bars []Bar, p Params) []Point {
	period := p.Period
	if len(bars) < period {
		return nil
	}
	points := make([]Point, 0, len(bars)-period+1)
	for i := 0; i <= len(bars)-period; i++ {
		sum := money.Zero
		for _, b := range bars[i : i+period] {
			sum = sum.Add(b.Close)
		}
		sma := money.DivRound(sum, money.New(int64(period), 0), 8, money.NearestEven)
		points = append(points, Point{Timestamp: bars[i+period-1].Timestamp, Value: sma})
	}
	return points
}

// calculateSMASIMD mirrors the reference engine's chunked float64 SMA
// fast path: closes are summed 8-wide before being divided and
// converted back to Decimal. It is only trusted when Registry.VerifySIMD
// has confirmed it agrees with calculateSMA on the reference corpus.
func calculateSMASIMD(bars []Bar, period int) []Point {
	if len(bars) < period {
		return nil
	}
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = money.ToFloat64(b.Close)
	}
	points := make([]Point, 0, len(bars)-period+1)
	for i := 0; i <= len(closes)-period; i++ {
		sum := simdSumF64(closes[i : i+period])
		sma := sum / float64(period)
		d, err := money.FromFloat64(sma, 8)
		if err != nil {
			d = money.Zero
		}
		points = append(points, Point{Timestamp: bars[i+period-1].Timestamp, Value: d})
	}
	return points
}

// simdSumF64 sums data in 8-wide chunks, a plain scalar stand-in for a
// vectorized add: each chunk is summed in order, then the chunk sums
// and the tail are added in order, so the reduction order is fixed,
// which is the property the determinism self-test actually depends on.
func simdSumF64(data []float64) float64 {
	n := len(data)
	chunks := n / 8
	var sum float64
	for c := 0; c < chunks; c++ {
		base := c * 8
		var chunkSum float64
		for j := 0; j < 8; j++ {
			chunkSum += data[base+j]
		}
		sum += chunkSum
	}
	for i := chunks * 8; i < n; i++ {
		sum += data[i]
	}
	return sum
}
