package config

import (
	"fmt"
	"time"
)

const (
	DefaultUserAgent      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"
	DefaultAcceptLanguage = "uk-UA,uk;q=0.9,en-US;q=0.8,en;q=0.7"
)

type Config struct {
	HTTP          HttpConfig          `yaml:"http"`
	Rod           RodConfig           `yaml:"rod"`
	Pagination    PaginationConfig    `yaml:"pagination"`
	RulesetFile   string              `yaml:"ruleset_file"`
	DateLocale    string              `yaml:"date_locale"`
	Normalize     NormalizeConfig     `yaml:"normalize"`
	Storage       StorageConfig       `yaml:"storage"`
	Observability ObservabilityConfig `yaml:"observability"`
}

type HttpConfig struct {
	UserAgent      string `yaml:"user_agent"`
	AcceptLanguage string `yaml:"accept_language"`
	TotalTimeoutMS int    `yaml:"total_timeout_ms"`
}

type RodConfig struct {
	Enabled          bool   `yaml:"enabled"`
	ChromePath       string `yaml:"chrome_path"`
	PageTimeoutS     int    `yaml:"page_timeout_s"`
	WaitLoadTimeoutS int    `yaml:"wait_load_timeout_s"`
	LazyLoadDelayS   int    `yaml:"lazy_load_delay_s"`
}

type PaginationConfig struct {
	// 0: без ограничения
	MaxPages int `yaml:"max_pages"`
}

type NormalizeConfig struct {
	TrimNBSP        bool `yaml:"trim_nbsp"`
	CollapseSpaces  bool `yaml:"collapse_spaces"`
	MaxPreviewChars int  `yaml:"max_preview_chars"`
}

type StorageConfig struct {
	Enabled          bool   `yaml:"enabled"`
	Driver           string `yaml:"driver"`
	DSN              string `yaml:"dsn"`
	CommandTimeoutMS int    `yaml:"command_timeout_ms"`
}

type ObservabilityConfig struct {
	LogPath  string `yaml:"log_path"`
	LogLevel string `yaml:"log_level"`
}

// Default: конфиг для запуска без файла
func Default() *Config {
	return &Config{
		HTTP: HttpConfig{
			UserAgent:      DefaultUserAgent,
			AcceptLanguage: DefaultAcceptLanguage,
			TotalTimeoutMS: 30000,
		},
		Rod: RodConfig{
			PageTimeoutS:     60,
			WaitLoadTimeoutS: 30,
		},
		DateLocale: "uk",
		Normalize: NormalizeConfig{
			TrimNBSP:        true,
			CollapseSpaces:  true,
			MaxPreviewChars: 80,
		},
		Storage: StorageConfig{
			Driver:           "mssql",
			CommandTimeoutMS: 5000,
		},
		Observability: ObservabilityConfig{
			LogLevel: "info",
		},
	}
}

// Validation
func (c *Config) Validate() error {
	if c.HTTP.TotalTimeoutMS <= 0 {
		return fmt.Errorf("http.total_timeout_ms must be > 0")
	}
	if c.Pagination.MaxPages < 0 {
		return fmt.Errorf("pagination.max_pages must be >= 0")
	}
	switch c.DateLocale {
	case "", "uk", "ru", "en":
	default:
		return fmt.Errorf("date_locale must be 'uk', 'ru' or 'en'")
	}
	if c.Normalize.MaxPreviewChars < 0 {
		return fmt.Errorf("normalize.max_preview_chars must be >= 0")
	}
	if c.Storage.Enabled {
		if c.Storage.Driver != "mssql" {
			return fmt.Errorf("storage.driver must be 'mssql'")
		}
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required when storage.enabled is true")
		}
		if c.Storage.CommandTimeoutMS <= 0 {
			return fmt.Errorf("storage.command_timeout_ms must be > 0")
		}
	}
	switch c.Observability.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("observability.log_level must be 'debug', 'info', 'warn' or 'error'")
	}
	if c.Rod.Enabled {
		if c.Rod.PageTimeoutS <= 0 {
			return fmt.Errorf("rod.page_timeout_s must be > 0")
		}
		if c.Rod.WaitLoadTimeoutS <= 0 {
			return fmt.Errorf("rod.wait_load_timeout_s must be > 0")
		}
		if c.Rod.LazyLoadDelayS < 0 {
			return fmt.Errorf("rod.lazy_load_delay_s must be >= 0")
		}
	}
	return nil
}

// UserAgent возвращает заданный агент или агент по умолчанию
func (c *Config) UserAgent() string {
	if c.HTTP.UserAgent == "" {
		return DefaultUserAgent
	}
	return c.HTTP.UserAgent
}

func (c *Config) AcceptLanguage() string {
	if c.HTTP.AcceptLanguage == "" {
		return DefaultAcceptLanguage
	}
	return c.HTTP.AcceptLanguage
}

// Getters
func (c *Config) GetTotalTimeout() time.Duration {
	return time.Duration(c.HTTP.TotalTimeoutMS) * time.Millisecond
}

func (c *Config) GetCommandTimeout() time.Duration {
	return time.Duration(c.Storage.CommandTimeoutMS) * time.Millisecond
}

func (c *Config) GetRodPageTimeout() time.Duration {
	return time.Duration(c.Rod.PageTimeoutS) * time.Second
}

func (c *Config) GetRodWaitLoadTimeout() time.Duration {
	return time.Duration(c.Rod.WaitLoadTimeoutS) * time.Second
}

func (c *Config) GetRodLazyLoadDelay() time.Duration {
	return time.Duration(c.Rod.LazyLoadDelayS) * time.Second
}
