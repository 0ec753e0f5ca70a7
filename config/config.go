package config

import (
	"fmt"
	"os"
	"time"

	"github.com/alejandrodnm/crossbot/internal/domain"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del backtester.
type Config struct {
	Market   MarketConfig   `yaml:"market"`
	Strategy StrategyConfig `yaml:"strategy"`
	Sweep    SweepConfig    `yaml:"sweep"`
	API      APIConfig      `yaml:"api"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// MarketConfig define qué serie de precios se descarga.
type MarketConfig struct {
	Symbol   string `yaml:"symbol"`   // id de CoinGecko, p.ej. "bitcoin"
	Currency string `yaml:"currency"` // vs_currency, p.ej. "usd"
	Days     int    `yaml:"days"`
	Interval string `yaml:"interval"` // daily | hourly
}

// StrategyConfig son los parámetros comunes a todas las corridas del barrido.
type StrategyConfig struct {
	InitialCapital       float64  `yaml:"initial_capital"`
	ReentryCushion       *float64 `yaml:"reentry_cushion"` // nil = default; 0 es válido
	RequireFastBelowSlow bool     `yaml:"require_fast_below_slow"`
}

// MAPair es un par de longitudes (rápida, lenta). Los pares no se cruzan entre sí.
type MAPair struct {
	Fast int `yaml:"fast"`
	Slow int `yaml:"slow"`
}

// SweepConfig es la grilla de parámetros a barrer.
type SweepConfig struct {
	SplitThresholds  []float64 `yaml:"split_thresholds"`
	StopLossPercents []float64 `yaml:"stop_loss_percents"`
	TrendLengths     []int     `yaml:"trend_lengths"`
	MAPairs          []MAPair  `yaml:"ma_pairs"`
	Workers          int       `yaml:"workers"`
}

// APIConfig contiene el base URL y la key de CoinGecko.
type APIConfig struct {
	CoinGeckoBase string `yaml:"coingecko_base"`
	APIKey        string `yaml:"api_key"`
}

// StorageConfig controla la caché de series.
type StorageConfig struct {
	DSN           string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
	CacheTTLHours int    `yaml:"cache_ttl_hours"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Las variables de entorno sobreescriben los valores del YAML.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	return Parse(data)
}

// Parse interpreta el YAML ya leído, aplica overrides de entorno y defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if cfg.Market.Days < 0 {
		return nil, fmt.Errorf("config.Load: %w: market.days must be positive, got %d",
			domain.ErrInvalidConfiguration, cfg.Market.Days)
	}
	return &cfg, nil
}

// Query devuelve la consulta de precios descrita por la sección market.
func (c *Config) Query() domain.PriceQuery {
	return domain.PriceQuery{
		Symbol:   c.Market.Symbol,
		Currency: c.Market.Currency,
		Days:     c.Market.Days,
		Interval: c.Market.Interval,
	}
}

// BaseParams devuelve los parámetros comunes; la grilla completa el resto.
func (c *Config) BaseParams() domain.Params {
	return domain.Params{
		InitialCapital:       c.Strategy.InitialCapital,
		ReentryCushion:       *c.Strategy.ReentryCushion,
		RequireFastBelowSlow: c.Strategy.RequireFastBelowSlow,
	}
}

// CacheTTL devuelve la antigüedad máxima de una serie cacheada.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Storage.CacheTTLHours) * time.Hour
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		cfg.API.APIKey = v
	}
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		cfg.API.CoinGeckoBase = v
	}
	if v := os.Getenv("CROSSBOT_DB"); v != "" {
		cfg.Storage.DSN = v
	}
}

// setDefaults rellena lo que falte con los defaults históricos (bitcoin/usd, 420 días, 9/50).
// Solo reemplaza valores ausentes: un capital negativo llega tal cual a Params.Validate.
func setDefaults(cfg *Config) {
	if cfg.Market.Symbol == "" {
		cfg.Market.Symbol = "bitcoin"
	}
	if cfg.Market.Currency == "" {
		cfg.Market.Currency = "usd"
	}
	if cfg.Market.Days == 0 {
		cfg.Market.Days = 420
	}
	if cfg.Market.Interval == "" {
		cfg.Market.Interval = "daily"
	}
	if cfg.Strategy.InitialCapital == 0 {
		cfg.Strategy.InitialCapital = 10_000
	}
	if cfg.Strategy.ReentryCushion == nil {
		cushion := 0.01
		cfg.Strategy.ReentryCushion = &cushion
	}
	if len(cfg.Sweep.SplitThresholds) == 0 {
		cfg.Sweep.SplitThresholds = []float64{0.01}
	}
	if len(cfg.Sweep.StopLossPercents) == 0 {
		cfg.Sweep.StopLossPercents = []float64{0.05}
	}
	if len(cfg.Sweep.TrendLengths) == 0 {
		cfg.Sweep.TrendLengths = []int{2}
	}
	if len(cfg.Sweep.MAPairs) == 0 {
		cfg.Sweep.MAPairs = []MAPair{{Fast: 9, Slow: 50}}
	}
	if cfg.Sweep.Workers <= 0 {
		cfg.Sweep.Workers = 4
	}
	if cfg.API.CoinGeckoBase == "" {
		cfg.API.CoinGeckoBase = "https://api.coingecko.com/api/v3"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "crossbot.db"
	}
	if cfg.Storage.CacheTTLHours <= 0 {
		cfg.Storage.CacheTTLHours = 12
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
