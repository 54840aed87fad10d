// Package export renders a TradeTableResult to the CSV format spec'd
// for the core's collaborators: trade rows, a blank-line-delimited
// Summary section, and a blank-line-delimited Rejected Trades section.
// Grounded on the reference engine's export.rs field mapping and the
// teacher's encoding/csv usage.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/chidi150c/backtest-engine/internal/engine"
)

var tradeHeader = []string{
	"date", "type", "entry_price", "entry_time_utc", "exit_price", "exit_time_utc",
	"exit_reason", "hit_tp_sl", "size_usd", "qty", "fees_usd", "pnl_usd", "pnl_pct", "symbol",
}

var rejectedHeader = []string{"timestamp", "symbol", "side", "reason", "notional"}

// WriteCSV renders result to w in the bit-exact format spec'd for
// downstream collaborators.
func WriteCSV(w io.Writer, result engine.TradeTableResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(tradeHeader); err != nil {
		return err
	}
	for _, t := range result.Trades {
		row := []string{
			t.Date,
			t.Direction.String(),
			t.EntryPrice.String(),
			t.EntryTimeUTC,
			t.ExitPrice.String(),
			t.ExitTimeUTC,
			t.ExitReason.CSVString(),
			t.HitTPSL.String(),
			t.SizeUSD.String(),
			t.Qty.String(),
			t.FeesUSD.String(),
			t.PnLUSD.String(),
			t.PnLPct.String(),
			t.Symbol,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	if _, err := io.WriteString(w, "\n# Summary\n"); err != nil {
		return err
	}
	sw := csv.NewWriter(w)
	s := result.Summary
	summaryRows := [][]string{
		{"total_trades", strconv.Itoa(s.TotalTrades)},
		{"wins", strconv.Itoa(s.Wins)},
		{"losses", strconv.Itoa(s.Losses)},
		{"win_rate", s.WinRate.String()},
		{"net_pnl_usd", s.NetPnLUSD.String()},
		{"avg_win_usd", s.AvgWinUSD.String()},
		{"avg_loss_usd", s.AvgLossUSD.String()},
		{"expectancy", s.Expectancy.String()},
		{"max_drawdown", s.MaxDrawdown.String()},
		{"profit_factor", s.ProfitFactor.String()},
		{"avg_holding_time_hours", s.AvgHoldingTimeHours.String()},
	}
	for _, row := range summaryRows {
		if err := sw.Write(row); err != nil {
			return err
		}
	}
	sw.Flush()
	if err := sw.Error(); err != nil {
		return err
	}

	if _, err := io.WriteString(w, "\n# Rejected Trades\n"); err != nil {
		return err
	}
	rw := csv.NewWriter(w)
	if err := rw.Write(rejectedHeader); err != nil {
		return err
	}
	for _, rt := range result.RejectedTrades {
		row := []string{
			formatTimestamp(rt.Timestamp),
			rt.Symbol,
			rt.Side.String(),
			rt.Reason,
			rt.Notional.String(),
		}
		if err := rw.Write(row); err != nil {
			return err
		}
	}
	rw.Flush()
	return rw.Error()
}

func formatTimestamp(ms uint64) string {
	return time.UnixMilli(int64(ms)).UTC().Format("2006-01-02T15:04:05.000Z")
}
