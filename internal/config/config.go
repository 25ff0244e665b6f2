package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

type Server struct {
	Port              string `json:"port"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
}

type Market struct {
	Endpoint              string `json:"endpoint"`
	MaxRetries            int    `json:"max_retries"`
	CacheTTLSeconds       int    `json:"cache_ttl_sec"`
	CacheMaxItems         int    `json:"cache_max_items"`
	MinRequestIntervalSec int    `json:"min_request_interval_sec"`
}

type Analysis struct {
	Model             string `json:"model"`
	DefaultTrollLevel int    `json:"default_troll_level"`
}

type Ledger struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

type Config struct {
	Server   Server   `json:"server"`
	Market   Market   `json:"market"`
	Analysis Analysis `json:"analysis"`
	Ledger   Ledger   `json:"ledger"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "8000", RequestTimeoutSec: 10},
		Market: Market{
			Endpoint:        "https://query1.finance.yahoo.com",
			MaxRetries:      2,
			CacheTTLSeconds: 30,
			CacheMaxItems:   10000,
		},
		Analysis: Analysis{
			Model:             "gemini-2.0-flash",
			DefaultTrollLevel: 50,
		},
	}
}

// Load reads JSON config from path. If path is empty or the file does not
// exist, it returns defaults. Environment variables override select fields
// for secrecy.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Server.RequestTimeoutSec = x
		}
	}
	if v := os.Getenv("YAHOO_ENDPOINT"); v != "" {
		cfg.Market.Endpoint = v
	}
	if v := os.Getenv("MARKET_MAX_RETRIES"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x >= 0 {
			cfg.Market.MaxRetries = x
		}
	}
	if v := os.Getenv("MARKET_CACHE_TTL_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x >= 0 {
			cfg.Market.CacheTTLSeconds = x
		}
	}
	if v := os.Getenv("MARKET_CACHE_MAX_ITEMS"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Market.CacheMaxItems = x
		}
	}
	if v := os.Getenv("MARKET_MIN_INTERVAL_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x >= 0 {
			cfg.Market.MinRequestIntervalSec = x
		}
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Analysis.Model = v
	}
	if v := os.Getenv("TROLL_LEVEL"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x >= 0 && x <= 100 {
			cfg.Analysis.DefaultTrollLevel = x
		}
	}
	if v := os.Getenv("SHEETS_API_URL"); v != "" {
		cfg.Ledger.URL = v
	}
	if v := os.Getenv("SHEETS_API_TOKEN"); v != "" {
		cfg.Ledger.Token = v
	}
}
