package indicators

import "github.com/chidi150c/backtest-engine/internal/money"

// calculateRSI implements Wilder's smoothed RSI. The no-losses case is
// handled as an exact contract rather than the conventional rs=100
// shortcut: when avg_loss is zero the series value is exactly 100, not
// 100*rs/(1+rs) with rs pinned to 100 (which converges to ~99.01 and
// never actually reaches the boundary value).
func calculateRSI(bars []Bar, p Params) []Point {
	period := p.Period
	if len(bars) < period+1 {
		return nil
	}

	gains := make([]money.Decimal, len(bars)-1)
	losses := make([]money.Decimal, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		change := bars[i].Close.Sub(bars[i-1].Close)
		if change.GreaterThan(money.Zero) {
			gains[i-1] = change
			losses[i-1] = money.Zero
		} else {
			gains[i-1] = money.Zero
			losses[i-1] = change.Neg()
		}
	}

	periodDec := money.New(int64(period), 0)
	sumGain, sumLoss := money.Zero, money.Zero
	for i := 0; i < period; i++ {
		sumGain = sumGain.Add(gains[i])
		sumLoss = sumLoss.Add(losses[i])
	}
	avgGain := money.DivRound(sumGain, periodDec, 10, money.NearestEven)
	avgLoss := money.DivRound(sumLoss, periodDec, 10, money.NearestEven)

	periodMinus1 := money.New(int64(period-1), 0)
	points := make([]Point, 0, len(gains)-period)
	for i := period; i < len(gains); i++ {
		avgGain = money.DivRound(avgGain.Mul(periodMinus1).Add(gains[i]), periodDec, 10, money.NearestEven)
		avgLoss = money.DivRound(avgLoss.Mul(periodMinus1).Add(losses[i]), periodDec, 10, money.NearestEven)

		var rsi money.Decimal
		if avgLoss.IsZero() {
			rsi = money.Hundred
		} else {
			rs := money.DivRound(avgGain, avgLoss, 10, money.NearestEven)
			rsi = money.Hundred.Sub(money.DivRound(money.Hundred, money.One.Add(rs), 8, money.NearestEven))
		}

		points = append(points, Point{Timestamp: bars[i+1].Timestamp, Value: rsi})
	}
	return points
}
