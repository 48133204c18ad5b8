package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
)

// Config хранит адреса хранилищ, адреса внешних источников и параметры
// обновления обзора рынка.
type Config struct {
	PostgresURL  string `json:"postgres_url"`
	RedisAddr    string `json:"redis_addr"`
	NewsURL      string `json:"news_url"`
	MoversURL    string `json:"movers_url"`
	IndicatorURL string `json:"indicator_url"`
	APIKey       string `json:"api_key"`

	// FetchTimeout — таймаут одного внешнего запроса, в секундах.
	// Держится коротким: отмены зависшего цикла обновления нет.
	FetchTimeout int `json:"fetch_timeout"`

	// WarmInterval — период фонового прогрева кэша в минутах, 0 — выключен.
	WarmInterval int `json:"warm_interval"`

	// DebugFile — путь для отладочной выгрузки агрегата вне production.
	DebugFile string `json:"debug_file"`
}

// Validate проверяет, что таймаут положительный, а адреса источников —
// валидные URL.
func (cfg *Config) Validate() error {
	if cfg.FetchTimeout < 1 {
		return errors.New("fetch timeout must be ≥ 1 second")
	}
	if cfg.WarmInterval < 0 {
		return errors.New("warm interval must not be negative")
	}
	for _, u := range []string{cfg.NewsURL, cfg.MoversURL, cfg.IndicatorURL} {
		if _, err := url.ParseRequestURI(u); err != nil {
			return fmt.Errorf("invalid source URL: %s", u)
		}
	}
	return nil
}

// LoadConfig читает JSON-файл по пути path, декодирует его в Config.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
