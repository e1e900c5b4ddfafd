// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	ScrapingBee ScrapingBeeConfig `yaml:"scrapingbee" mapstructure:"scrapingbee"`
	Ebay        EbayConfig        `yaml:"ebay" mapstructure:"ebay"`
	Comps       CompsConfig       `yaml:"comps" mapstructure:"comps"`
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
	Batch       BatchConfig       `yaml:"batch" mapstructure:"batch"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// ScrapingBeeConfig holds ScrapingBee API settings.
type ScrapingBeeConfig struct {
	Key          string `yaml:"key" mapstructure:"key"`
	BaseURL      string `yaml:"base_url" mapstructure:"base_url"`
	RenderJS     bool   `yaml:"render_js" mapstructure:"render_js"`
	PremiumProxy bool   `yaml:"premium_proxy" mapstructure:"premium_proxy"`
	WaitMs       int    `yaml:"wait_ms" mapstructure:"wait_ms"`
}

// EbayConfig holds marketplace search settings.
type EbayConfig struct {
	CategoryID int `yaml:"category_id" mapstructure:"category_id"`
}

// CompsConfig tunes comparable sale discovery.
type CompsConfig struct {
	MinComps int `yaml:"min_comps" mapstructure:"min_comps"`
	TakeN    int `yaml:"take_n" mapstructure:"take_n"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// BatchConfig configures bulk pricing runs.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
	DelayMs     int `yaml:"delay_ms" mapstructure:"delay_ms"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("COMPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Every key is registered here so AutomaticEnv feeds
	// Unmarshal; an unregistered key would ignore its COMPS_* variable.
	v.SetDefault("scrapingbee.key", "")
	v.SetDefault("scrapingbee.base_url", "https://app.scrapingbee.com/api/v1/")
	v.SetDefault("scrapingbee.render_js", false)
	v.SetDefault("scrapingbee.premium_proxy", false)
	v.SetDefault("scrapingbee.wait_ms", 0)
	v.SetDefault("ebay.category_id", 47140)
	v.SetDefault("comps.min_comps", 5)
	v.SetDefault("comps.take_n", 20)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "comps.db")
	v.SetDefault("batch.concurrency", 2)
	v.SetDefault("batch.delay_ms", 1500)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the fields a command mode depends on.
func (c *Config) Validate(mode string) error {
	var problems []string

	check := func() {
		if c.Comps.MinComps < 1 {
			problems = append(problems, "comps.min_comps must be >= 1")
		}
		if c.Comps.TakeN < 1 {
			problems = append(problems, "comps.take_n must be >= 1")
		}
	}

	switch mode {
	case "price":
		check()
	case "bulk":
		check()
		if c.Batch.Concurrency < 1 || c.Batch.Concurrency > 20 {
			problems = append(problems, "batch.concurrency must be between 1 and 20")
		}
		if c.Batch.DelayMs < 0 {
			problems = append(problems, "batch.delay_ms must be >= 0")
		}
	case "serve":
		check()
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	case "runs":
		if c.Store.DatabaseURL == "" {
			problems = append(problems, "store.database_url is required")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
