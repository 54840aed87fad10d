package indicators

import "github.com/chidi150c/backtest-engine/internal/money"

func calculateATR(bars []Bar, p Params) []Point {
	period := p.Period
	if len(bars) < period+1 {
		return nil
	}

	trueRanges := make([]money.Decimal, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		hl := bars[i].High.Sub(bars[i].Low)
		hc := bars[i].High.Sub(bars[i-1].Close).Abs()
		lc := bars[i].Low.Sub(bars[i-1].Close).Abs()
		tr := hl
		if hc.GreaterThan(tr) {
			tr = hc
		}
		if lc.GreaterThan(tr) {
			tr = lc
		}
		trueRanges[i-1] = tr
	}

	periodDec := money.New(int64(period), 0)
	sum := money.Zero
	for i := 0; i < period; i++ {
		sum = sum.Add(trueRanges[i])
	}
	atr := money.DivRound(sum, periodDec, 8, money.NearestEven)

	points := make([]Point, 0, len(trueRanges)-period+1)
	points = append(points, Point{Timestamp: bars[period].Timestamp, Value: atr})

	periodMinus1 := money.New(int64(period-1), 0)
	for i := period; i < len(trueRanges); i++ {
		atr = money.DivRound(atr.Mul(periodMinus1).Add(trueRanges[i]), periodDec, 8, money.NearestEven)
		points = append(points, Point{Timestamp: bars[i+1].Timestamp, Value: atr})
	}
	return points
}
