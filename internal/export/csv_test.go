package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chidi150c/backtest-engine/internal/engine"
	"github.com/chidi150c/backtest-engine/internal/money"
)

func TestWriteCSVIncludesSections(t *testing.T) {
	result := engine.TradeTableResult{
		Trades: []engine.TradeRecord{
			{
				Date:         "2024-01-02",
				Direction:    engine.Long,
				EntryPrice:   money.New(50000, 0),
				EntryTimeUTC: "2024-01-01T00:00:00.000Z",
				ExitPrice:    money.New(53000, 0),
				ExitTimeUTC:  "2024-01-02T00:00:00.000Z",
				ExitReason:   engine.ExitTakeProfit,
				HitTPSL:      engine.HitTakeProfit,
				SizeUSD:      money.New(1000, 0),
				Qty:          money.New(2, -2),
				FeesUSD:      money.Zero,
				PnLUSD:       money.New(60, 0),
				PnLPct:       money.New(6, -2),
				Symbol:       "BTCUSD",
			},
		},
		Summary: engine.TradeSummary{TotalTrades: 1, Wins: 1, ProfitFactor: money.Zero},
		RejectedTrades: []engine.RejectedTrade{
			{Timestamp: 0, Symbol: "BTCUSD", Side: engine.Buy, Reason: "NotionalMin", Notional: money.New(100, 0)},
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "date,type,entry_price") {
		t.Fatalf("missing trade header: %s", out)
	}
	if !strings.Contains(out, "# Summary") {
		t.Fatalf("missing summary section: %s", out)
	}
	if !strings.Contains(out, "# Rejected Trades") {
		t.Fatalf("missing rejected trades section: %s", out)
	}
	if !strings.Contains(out, "BTCUSD") {
		t.Fatalf("expected symbol in output: %s", out)
	}
}
