package indicators

import "github.com/chidi150c/backtest-engine/internal/money"

func calculateEMA(bars []Bar, p Params) []Point {
	period := p.Period
	if len(bars) < period {
		return nil
	}
	var alpha money.Decimal
	if p.Alpha != nil {
		alpha = *p.Alpha
	} else {
		alpha = money.DivRound(money.New(2, 0), money.New(int64(period+1), 0), 10, money.NearestEven)
	}

	points := make([]Point, 0, len(bars)-period+1)

	sum := money.Zero
	for _, b := range bars[:period] {
		sum = sum.Add(b.Close)
	}
	ema := money.DivRound(sum, money.New(int64(period), 0), 8, money.NearestEven)
	points = append(points, Point{Timestamp: bars[period-1].Timestamp, Value: ema})

	oneMinusAlpha := money.One.Sub(alpha)
	for _, b := range bars[period:] {
		ema = alpha.Mul(b.Close).Add(oneMinusAlpha.Mul(ema))
		points = append(points, Point{Timestamp: b.Timestamp, Value: ema})
	}
	return points
}
