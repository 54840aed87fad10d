package engine

import "github.com/chidi150c/backtest-engine/internal/money"

// Summarize computes the aggregate statistics over a closed-trade
// sequence per spec §4.6. maxDrawdown is carried in from the
// generator's running max, not recomputed here.
func Summarize(trades []TradeRecord, maxDrawdown money.Decimal) TradeSummary {
	total := len(trades)
	if total == 0 {
		return TradeSummary{
			WinRate:             money.Zero,
			NetPnLUSD:           money.Zero,
			AvgWinUSD:           money.Zero,
			AvgLossUSD:          money.Zero,
			Expectancy:          money.Zero,
			MaxDrawdown:         maxDrawdown,
			ProfitFactor:        money.Zero,
			AvgHoldingTimeHours: money.Zero,
		}
	}

	wins, losses := 0, 0
	netPnL := money.Zero
	grossProfit := money.Zero
	grossLoss := money.Zero
	sumWinPnL := money.Zero
	sumLossPnL := money.Zero
	sumHoldingMillis := money.Zero

	for _, t := range trades {
		netPnL = netPnL.Add(t.PnLUSD)
		// A trade with pnl<=0 is classified as a loss, matching the
		// reference engine's avg_loss denominator (not strict <0).
		if t.PnLUSD.GreaterThan(money.Zero) {
			wins++
			grossProfit = grossProfit.Add(t.PnLUSD)
			sumWinPnL = sumWinPnL.Add(t.PnLUSD)
		} else {
			losses++
			grossLoss = grossLoss.Add(t.PnLUSD.Abs())
			sumLossPnL = sumLossPnL.Add(t.PnLUSD)
		}
		holdingMillis := int64(t.ExitTimeMillis) - int64(t.EntryTimeMillis)
		sumHoldingMillis = sumHoldingMillis.Add(money.New(holdingMillis, 0))
	}

	totalDec := money.New(int64(total), 0)
	winRate := money.DivRound(money.New(int64(wins), 0), totalDec, 10, money.NearestEven).Mul(money.Hundred)

	avgWin := money.Zero
	if wins > 0 {
		avgWin = money.DivRound(sumWinPnL, money.New(int64(wins), 0), 8, money.NearestEven)
	}
	avgLoss := money.Zero
	if losses > 0 {
		avgLoss = money.DivRound(sumLossPnL, money.New(int64(losses), 0), 8, money.NearestEven)
	}

	winFrac := money.DivRound(winRate, money.Hundred, 10, money.NearestEven)
	loseFrac := money.One.Sub(winFrac)
	expectancy := winFrac.Mul(avgWin).Add(loseFrac.Mul(avgLoss))

	profitFactor := money.Zero
	if !grossLoss.IsZero() {
		profitFactor = money.DivRound(grossProfit, grossLoss, 8, money.NearestEven)
	}

	msPerHour := money.New(3600000, 0)
	avgHoldingHours := money.DivRound(money.DivRound(sumHoldingMillis, totalDec, 10, money.NearestEven), msPerHour, 8, money.NearestEven)

	return TradeSummary{
		TotalTrades:         total,
		Wins:                wins,
		Losses:              losses,
		WinRate:             winRate,
		NetPnLUSD:           netPnL,
		AvgWinUSD:           avgWin,
		AvgLossUSD:          avgLoss,
		Expectancy:          expectancy,
		MaxDrawdown:         maxDrawdown,
		ProfitFactor:        profitFactor,
		AvgHoldingTimeHours: avgHoldingHours,
	}
}
