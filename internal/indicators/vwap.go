package indicators

import "github.com/chidi150c/backtest-engine/internal/money"

func calculateVWAP(bars []Bar) []Point {
	points := make([]Point, 0, len(bars))
	three := money.New(3, 0)
	cumVol := money.Zero
	cumVolPrice := money.Zero
	for _, b := range bars {
		typical := money.DivRound(b.High.Add(b.Low).Add(b.Close), three, 8, money.NearestEven)
		cumVolPrice = cumVolPrice.Add(typical.Mul(b.Volume))
		cumVol = cumVol.Add(b.Volume)

		var vwap money.Decimal
		if cumVol.GreaterThan(money.Zero) {
			vwap = money.DivRound(cumVolPrice, cumVol, 8, money.NearestEven)
		} else {
			vwap = money.Zero
		}
		points = append(points, Point{Timestamp: b.Timestamp, Value: vwap})
	}
	return points
}

func calculateHighestHigh(bars []Bar, p Params) []Point {
	period := p.Period
	if len(bars) < period {
		return nil
	}
	points := make([]Point, 0, len(bars)-period+1)
	for i := 0; i <= len(bars)-period; i++ {
		highest := bars[i].High
		for _, b := range bars[i+1 : i+period] {
			if b.High.GreaterThan(highest) {
				highest = b.High
			}
		}
		points = append(points, Point{Timestamp: bars[i+period-1].Timestamp, Value: highest})
	}
	return points
}

func calculateLowestLow(bars []Bar, p Params) []Point {
	period := p.Period
	if len(bars) < period {
		return nil
	}
	points := make([]Point, 0, len(bars)-period+1)
	for i := 0; i <= len(bars)-period; i++ {
		lowest := bars[i].Low
		for _, b := range bars[i+1 : i+period] {
			if b.Low.LessThan(lowest) {
				lowest = b.Low
			}
		}
		points = append(points, Point{Timestamp: bars[i+period-1].Timestamp, Value: lowest})
	}
	return points
}
