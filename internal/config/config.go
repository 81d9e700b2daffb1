// Package config loads application configuration from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"StreetDash/internal/engine"
	"StreetDash/internal/model"
	"StreetDash/internal/screener"
)

// DefaultWatchlist is the screener's stock list.
var DefaultWatchlist = []string{
	"AAPL", "TSLA", "AMD", "MSFT", "GOOGL", "META", "NFLX",
	"NVDA", "PYPL", "CRM", "UBER", "SNOW", "INTC", "PINS",
}

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider        string  `yaml:"provider"` // alpaca | yahoo | parquet | mock
		AlpacaAPIKey    string  `yaml:"alpaca_api_key"`
		AlpacaSecretKey string  `yaml:"alpaca_secret_key"`
		AlpacaBaseURL   string  `yaml:"alpaca_base_url"`
		Feed            string  `yaml:"feed"`
		YahooBaseURL    string  `yaml:"yahoo_base_url"`
		ParquetDir      string  `yaml:"parquet_dir"`
		MockPrice       float64 `yaml:"mock_price"`
	} `yaml:"data_source"`
	Indicators struct {
		RSIWindow    int    `yaml:"rsi_window"`
		MACDShort    int    `yaml:"macd_short"`
		MACDLong     int    `yaml:"macd_long"`
		MACDSignal   int    `yaml:"macd_signal"`
		VWAPLookback int    `yaml:"vwap_lookback"`
		SMAShort     int    `yaml:"sma_short"`
		SMALong      int    `yaml:"sma_long"`
		RSIZeroLoss  string `yaml:"rsi_zero_loss"`
	} `yaml:"indicators"`
	Screener struct {
		Watchlist    []string      `yaml:"watchlist"`
		Oversold     float64       `yaml:"oversold"`
		Overbought   float64       `yaml:"overbought"`
		RSIZeroLoss  string        `yaml:"rsi_zero_loss"`
		RequestDelay time.Duration `yaml:"request_delay"`
		MaxRetries   int           `yaml:"max_retries"`
		RetryBackoff time.Duration `yaml:"retry_backoff"`
		Concurrency  int           `yaml:"concurrency"`
		ReportDir    string        `yaml:"report_dir"`
	} `yaml:"screener"`
	Schedule struct {
		ScanCron string `yaml:"scan_cron"`
	} `yaml:"schedule"`
	Ledger struct {
		Path    string `yaml:"path"`
		Backend string `yaml:"backend"` // csv | sqlite | memory
	} `yaml:"ledger"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		c.DataSource.AlpacaAPIKey = v
	}
	if v := os.Getenv("ALPACA_SECRET_KEY"); v != "" {
		c.DataSource.AlpacaSecretKey = v
	}
	if v := os.Getenv("ALPACA_FEED"); v != "" {
		c.DataSource.Feed = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		c.DataSource.Provider = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		c.Screener.Watchlist = SplitSymbols(v)
	}
	if v := os.Getenv("REQUEST_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REQUEST_DELAY: %w", err)
		}
		c.Screener.RequestDelay = d
	}
	if v := os.Getenv("RSI_ZERO_LOSS"); v != "" {
		c.Indicators.RSIZeroLoss = v
	}
	if v := os.Getenv("SCREEN_RSI_ZERO_LOSS"); v != "" {
		c.Screener.RSIZeroLoss = v
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		c.Schedule.ScanCron = v
	}
	if v := os.Getenv("LEDGER_PATH"); v != "" {
		c.Ledger.Path = v
	}
	if v := os.Getenv("LEDGER_BACKEND"); v != "" {
		c.Ledger.Backend = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		c.Metrics.Addr = v
	}
	if v := os.Getenv("SCAN_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SCAN_CONCURRENCY: %w", err)
		}
		c.Screener.Concurrency = n
	}
	return nil
}

func (c *Config) applyDefaults() {
	def := engine.DefaultConfig()
	ind := &c.Indicators
	if ind.RSIWindow == 0 {
		ind.RSIWindow = def.RSIWindow
	}
	if ind.MACDShort == 0 {
		ind.MACDShort = def.MACDShort
	}
	if ind.MACDLong == 0 {
		ind.MACDLong = def.MACDLong
	}
	if ind.MACDSignal == 0 {
		ind.MACDSignal = def.MACDSignal
	}
	if ind.VWAPLookback == 0 {
		ind.VWAPLookback = def.VWAPLookback
	}
	if ind.SMAShort == 0 {
		ind.SMAShort = def.SMAShort
	}
	if ind.SMALong == 0 {
		ind.SMALong = def.SMALong
	}
	if ind.RSIZeroLoss == "" {
		ind.RSIZeroLoss = string(def.ZeroLoss)
	}

	if c.DataSource.Provider == "" {
		if c.DataSource.AlpacaAPIKey != "" {
			c.DataSource.Provider = "alpaca"
		} else {
			c.DataSource.Provider = "yahoo"
		}
	}
	if c.DataSource.Feed == "" {
		c.DataSource.Feed = "iex"
	}
	if c.DataSource.ParquetDir == "" {
		c.DataSource.ParquetDir = "data/bars"
	}
	if c.DataSource.MockPrice == 0 {
		c.DataSource.MockPrice = 100
	}

	th := screener.DefaultThresholds()
	if len(c.Screener.Watchlist) == 0 {
		c.Screener.Watchlist = append([]string(nil), DefaultWatchlist...)
	}
	if c.Screener.Oversold == 0 {
		c.Screener.Oversold = th.Oversold
	}
	if c.Screener.Overbought == 0 {
		c.Screener.Overbought = th.Overbought
	}
	if c.Screener.RSIZeroLoss == "" {
		c.Screener.RSIZeroLoss = string(model.ZeroLossConventional)
	}
	if c.Screener.RequestDelay == 0 {
		c.Screener.RequestDelay = 2 * time.Second
	}
	if c.Screener.RetryBackoff == 0 {
		c.Screener.RetryBackoff = 5 * time.Second
	}
	if c.Screener.Concurrency == 0 {
		c.Screener.Concurrency = 1
	}
	if c.Screener.ReportDir == "" {
		c.Screener.ReportDir = "data/reports"
	}

	if c.Schedule.ScanCron == "" {
		c.Schedule.ScanCron = "0 30 16 * * 1-5"
	}
	if c.Ledger.Backend == "" {
		c.Ledger.Backend = "csv"
	}
	if c.Ledger.Path == "" {
		switch c.Ledger.Backend {
		case "sqlite":
			c.Ledger.Path = "data/ledger.db"
		default:
			c.Ledger.Path = "data/investment_log.csv"
		}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Engine returns the indicator engine configuration.
func (c *Config) Engine() engine.Config {
	ind := c.Indicators
	return engine.Config{
		RSIWindow:    ind.RSIWindow,
		MACDShort:    ind.MACDShort,
		MACDLong:     ind.MACDLong,
		MACDSignal:   ind.MACDSignal,
		VWAPLookback: ind.VWAPLookback,
		SMAShort:     ind.SMAShort,
		SMALong:      ind.SMALong,
		ZeroLoss:     model.RSIZeroLossPolicy(ind.RSIZeroLoss),
	}
}

// ScreenEngine returns the engine configuration used by the screener. It
// shares the indicator windows but has its own zero-loss policy, so an
// all-gains window never reads as oversold.
func (c *Config) ScreenEngine() engine.Config {
	ec := c.Engine()
	ec.ZeroLoss = model.RSIZeroLossPolicy(c.Screener.RSIZeroLoss)
	return ec
}

// Thresholds returns the screener's RSI zone bounds.
func (c *Config) Thresholds() screener.Thresholds {
	return screener.Thresholds{Oversold: c.Screener.Oversold, Overbought: c.Screener.Overbought}
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "alpaca":
		if c.DataSource.AlpacaAPIKey == "" || c.DataSource.AlpacaSecretKey == "" {
			return fmt.Errorf("data_source.alpaca_api_key and alpaca_secret_key are required for provider alpaca")
		}
		if c.DataSource.Feed != "iex" && c.DataSource.Feed != "sip" {
			return fmt.Errorf("data_source.feed must be iex or sip, got %q", c.DataSource.Feed)
		}
	case "yahoo", "mock":
	case "parquet":
		if c.DataSource.ParquetDir == "" {
			return fmt.Errorf("data_source.parquet_dir is required for provider parquet")
		}
	default:
		return fmt.Errorf("unknown data_source.provider %q", c.DataSource.Provider)
	}

	if err := c.Engine().Validate(); err != nil {
		return fmt.Errorf("indicators: %w", err)
	}
	if err := c.ScreenEngine().Validate(); err != nil {
		return fmt.Errorf("screener: %w", err)
	}
	if err := c.Thresholds().Validate(); err != nil {
		return fmt.Errorf("screener: %w", err)
	}
	if c.Screener.RequestDelay < 0 {
		return fmt.Errorf("screener.request_delay must not be negative")
	}
	if c.Screener.MaxRetries < 0 {
		return fmt.Errorf("screener.max_retries must not be negative")
	}
	if c.Screener.Concurrency < 1 {
		return fmt.Errorf("screener.concurrency must be at least 1")
	}
	switch c.Ledger.Backend {
	case "csv", "sqlite", "memory":
	default:
		return fmt.Errorf("ledger.backend must be csv, sqlite or memory, got %q", c.Ledger.Backend)
	}
	return nil
}

// SplitSymbols parses a comma or space separated symbol list, upper-casing
// and dropping duplicates.
func SplitSymbols(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	seen := make(map[string]bool, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ToUpper(f)
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
