// Package marketdata loads OHLCV bar series from CSV into the engine's
// MarketData shape. This is ambient scaffolding around the kernel
// (spec §1 names "market data loading" as an external collaborator),
// grounded on the teacher's loadCSV/parseTimeFlexible idiom.
package marketdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chidi150c/backtest-engine/internal/engine"
	"github.com/chidi150c/backtest-engine/internal/exchange"
	"github.com/chidi150c/backtest-engine/internal/money"
)

// LoadCSV reads a bar CSV with headers time|timestamp, open, high, low,
// close, volume (case-insensitive, unknown columns ignored) and returns
// a MarketData for symbol sorted ascending by timestamp.
func LoadCSV(path, symbol, timeframe string, rules exchange.Rules) (engine.MarketData, error) {
	f, err := os.Open(path)
	if err != nil {
		return engine.MarketData{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var bars []engine.Bar
	var headers []string
	rowIdx := 0

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return engine.MarketData{}, err
		}
		if rowIdx == 0 {
			headers = rec
			rowIdx++
			continue
		}
		row := map[string]string{}
		for j, h := range headers {
			k := strings.ToLower(strings.TrimSpace(h))
			if j < len(rec) {
				row[k] = strings.TrimSpace(rec[j])
			}
		}
		ts := first(row, "time", "timestamp")
		op := first(row, "open")
		hp := first(row, "high")
		lp := first(row, "low")
		cp := first(row, "close")
		vp := first(row, "volume", "vol")
		if ts == "" || op == "" || cp == "" {
			continue
		}
		tt, err := parseTimeFlexible(ts)
		if err != nil {
			continue
		}

		o, errO := money.FromFloat64(parseFloatOr(op, 0), rules.PrecisionPrice)
		h, errH := money.FromFloat64(parseFloatOr(hp, 0), rules.PrecisionPrice)
		l, errL := money.FromFloat64(parseFloatOr(lp, 0), rules.PrecisionPrice)
		c, errC := money.FromFloat64(parseFloatOr(cp, 0), rules.PrecisionPrice)
		v, errV := money.FromFloat64(parseFloatOr(vp, 0), rules.PrecisionQuantity)
		if errO != nil || errH != nil || errL != nil || errC != nil || errV != nil {
			continue
		}

		bars = append(bars, engine.Bar{
			Timestamp: uint64(tt.UnixMilli()),
			Open:      o,
			High:      h,
			Low:       l,
			Close:     c,
			Volume:    v,
		})
		rowIdx++
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Timestamp < bars[j].Timestamp })

	return engine.MarketData{
		Symbol:    symbol,
		Timeframe: timeframe,
		Bars:      bars,
		Rules:     rules,
	}, nil
}

func parseFloatOr(s string, def float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

// parseTimeFlexible supports RFC3339 or Unix seconds, matching the
// teacher's own flexible timestamp parsing.
func parseTimeFlexible(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(sec, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("marketdata: bad time %q", s)
}

func first(m map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := m[k]; v != "" {
			return v
		}
	}
	return ""
}
