package config

import (
	"github.com/chidi150c/backtest-engine/internal/engine"
	"github.com/chidi150c/backtest-engine/internal/money"
)

// Config holds the run-time knobs recognized by the kernel and the CLI
// demo, per spec §6's configuration surface.
type Config struct {
	StartingEquityUSD float64
	DefaultSizeUSD    float64
	IntrabarPolicy    string
	SlippageMode      string
	EnableSIMDSMA     bool

	Port      int
	CSVPath   string
	Symbol    string
	Timeframe string
}

// LoadFromEnv populates a Config from the process environment (already
// optionally hydrated by LoadDotEnv), falling back to spec-mandated
// defaults when a variable is unset.
func LoadFromEnv() Config {
	return Config{
		StartingEquityUSD: getEnvFloat("STARTING_EQUITY_USD", 10000.0),
		DefaultSizeUSD:    getEnvFloat("DEFAULT_SIZE_USD", 1000.0),
		IntrabarPolicy:    getEnv("INTRABAR_POLICY", "LinearInterpolation"),
		SlippageMode:      getEnv("SLIPPAGE_MODE", "None"),
		EnableSIMDSMA:     getEnvBool("ENABLE_SIMD_SMA", true),
		Port:              getEnvInt("PORT", 8090),
		CSVPath:           getEnv("CSV_PATH", ""),
		Symbol:            getEnv("SYMBOL", "BTCUSD"),
		Timeframe:         getEnv("TIMEFRAME", "1m"),
	}
}

// ToRunConfig translates the env-sourced Config into engine.RunConfig,
// resolving the string-typed policy knobs into their enum values.
func (c Config) ToRunConfig() (engine.RunConfig, error) {
	policy, err := engine.ParseIntrabarPolicy(c.IntrabarPolicy)
	if err != nil {
		return engine.RunConfig{}, err
	}
	slippage, err := engine.ParseSlippageMode(c.SlippageMode)
	if err != nil {
		return engine.RunConfig{}, err
	}
	startingEquity, err := money.FromFloat64(c.StartingEquityUSD, 8)
	if err != nil {
		return engine.RunConfig{}, err
	}
	defaultSize, err := money.FromFloat64(c.DefaultSizeUSD, 8)
	if err != nil {
		return engine.RunConfig{}, err
	}
	return engine.RunConfig{
		StartingEquity: startingEquity,
		DefaultSizeUSD: defaultSize,
		IntrabarPolicy: policy,
		SlippageMode:   slippage,
		RoundingMode:   money.NearestEven,
	}, nil
}
