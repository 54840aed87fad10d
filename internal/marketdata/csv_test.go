package marketdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chidi150c/backtest-engine/internal/exchange"
)

func writeTempCSV(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "bars.csv")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestLoadCSVParsesRFC3339AndUnixSeconds(t *testing.T) {
	path := writeTempCSV(t, "time,open,high,low,close,volume\n"+
		"2024-01-01T00:00:00Z,100,105,99,104,10\n"+
		"1704067260,104,106,103,105,12\n")

	md, err := LoadCSV(path, "BTCUSD", "1m", exchange.DefaultRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(md.Bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(md.Bars))
	}
	if md.Bars[0].Timestamp >= md.Bars[1].Timestamp {
		t.Fatalf("expected ascending order, got %v then %v", md.Bars[0].Timestamp, md.Bars[1].Timestamp)
	}
	if md.Symbol != "BTCUSD" || md.Timeframe != "1m" {
		t.Fatalf("unexpected symbol/timeframe: %s/%s", md.Symbol, md.Timeframe)
	}
}

func TestLoadCSVSkipsMalformedRows(t *testing.T) {
	path := writeTempCSV(t, "time,open,high,low,close,volume\n"+
		"2024-01-01T00:00:00Z,100,105,99,104,10\n"+
		"not-a-time,104,106,103,105,12\n"+
		",104,106,103,105,12\n")

	md, err := LoadCSV(path, "ETHUSD", "1m", exchange.DefaultRules())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(md.Bars) != 1 {
		t.Fatalf("expected malformed rows skipped, got %d bars", len(md.Bars))
	}
}

func TestLoadCSVMissingFileReturnsError(t *testing.T) {
	if _, err := LoadCSV("/nonexistent/path.csv", "BTCUSD", "1m", exchange.DefaultRules()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
