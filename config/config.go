package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del pipeline.
type Config struct {
	API         APIConfig         `yaml:"api"`
	Acquisition AcquisitionConfig `yaml:"acquisition"`
	Analytics   AnalyticsConfig   `yaml:"analytics"`
	Synthetic   SyntheticConfig   `yaml:"synthetic"`
	Storage     StorageConfig     `yaml:"storage"`
	Server      ServerConfig      `yaml:"server"`
	Log         LogConfig         `yaml:"log"`
}

// APIConfig describe la fuente primaria remota.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	Token          string `yaml:"-"` // solo por env: MARKET_API_TOKEN
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	SampleLimit    int    `yaml:"sample_limit"` // máx eventos por request
}

// AcquisitionConfig controla la cadena de fallback y el loop.
type AcquisitionConfig struct {
	FallbackPath    string `yaml:"fallback_path"` // archivo de trades estático
	IntervalSeconds int    `yaml:"interval_seconds"`
}

// AnalyticsConfig parametriza los analizadores. Nada de esto va hard-coded
// en la lógica: horizonte y capital inicial tuvieron revisiones divergentes
// y la heurística de confidence es eso, una heurística.
type AnalyticsConfig struct {
	HorizonDays      int     `yaml:"horizon_days"`
	StartingCapital  float64 `yaml:"starting_capital"`
	LiquidityCap     float64 `yaml:"liquidity_cap"`
	LiquidityDivisor float64 `yaml:"liquidity_divisor"`
	MaxConfidence    float64 `yaml:"max_confidence"`
}

// SyntheticConfig controla el tamaño del set de emergencia.
type SyntheticConfig struct {
	Events       int `yaml:"events"`
	Days         int `yaml:"days"`
	TradesPerDay int `yaml:"trades_per_day"`
}

// StorageConfig controla dónde se persiste el histórico de ciclos.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// ServerConfig controla el API JSON.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si
// existe. Los valores del env sobreescriben los del YAML.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// Timeout devuelve el budget de la request primaria como time.Duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// Interval devuelve el intervalo entre ciclos como time.Duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Acquisition.IntervalSeconds) * time.Second
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MARKET_API_TOKEN"); v != "" {
		cfg.API.Token = v
	}
	if v := os.Getenv("MARKET_API_BASE"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://demo-api.kalshi.co/trade-api/v2"
	}
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = 10
	}
	if cfg.API.SampleLimit <= 0 {
		cfg.API.SampleLimit = 20
	}
	if cfg.Acquisition.FallbackPath == "" {
		cfg.Acquisition.FallbackPath = "trades.csv"
	}
	if cfg.Acquisition.IntervalSeconds <= 0 {
		cfg.Acquisition.IntervalSeconds = 300
	}
	if cfg.Analytics.HorizonDays <= 0 {
		cfg.Analytics.HorizonDays = 14
	}
	if cfg.Analytics.StartingCapital <= 0 {
		cfg.Analytics.StartingCapital = 100
	}
	if cfg.Analytics.LiquidityCap <= 0 {
		cfg.Analytics.LiquidityCap = 0.2
	}
	if cfg.Analytics.LiquidityDivisor <= 0 {
		cfg.Analytics.LiquidityDivisor = 50
	}
	if cfg.Analytics.MaxConfidence <= 0 {
		cfg.Analytics.MaxConfidence = 0.99
	}
	if cfg.Synthetic.Events <= 0 {
		cfg.Synthetic.Events = 20
	}
	if cfg.Synthetic.Days <= 0 {
		cfg.Synthetic.Days = 14
	}
	if cfg.Synthetic.TradesPerDay <= 0 {
		cfg.Synthetic.TradesPerDay = 3
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "tradeledger.db"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
