package config

import (
	"os"
	"strconv"

	"marketsafe_backend/pkg/apperrors"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN               string `yaml:"url"`
		MaxOpenConns      int    `yaml:"max_open_conns"`
		MaxIdleConns      int    `yaml:"max_idle_conns"`
		ConnMaxLifetimeMn int    `yaml:"conn_max_lifetime_minutes"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	JWT struct {
		Secret     string `yaml:"secret"`
		TTLMinutes int    `yaml:"ttl_minutes"`
	} `yaml:"jwt"`

	Verification struct {
		// Base URL embedded in the emailed verification link.
		LinkBaseURL string `yaml:"link_base_url"`
	} `yaml:"verification"`
}

// Load reads configuration from config.yaml, or from environment variables
// when DATABASE_URL is set (test/deploy mode). The JWT secret always comes
// from JWT_SECRET when present; a missing secret is a configuration error,
// not a silent default.
func Load() (*Config, error) {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			return nil, apperrors.ErrConfiguration("Failed to open config file",
				map[string]string{"path": configPath}).WithError(err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, apperrors.ErrConfiguration("Failed to parse config file",
				map[string]string{"path": configPath}).WithError(err)
		}
	} else {
		cfg.Database.DSN = dbURL
		cfg.Server.Env = os.Getenv("SERVER_ENV")
		cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))

		cfg.Email.SMTPHost = "localhost"
		cfg.Email.SMTPPort = 587
		cfg.Email.FromEmail = "no-reply@marketsafe.ca"
		cfg.Email.FromName = "MarketSafe"
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}
	if cfg.JWT.Secret == "" {
		return nil, apperrors.ErrConfiguration("JWT secret is not set",
			map[string]string{"variable": "JWT_SECRET"})
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.JWT.TTLMinutes == 0 {
		cfg.JWT.TTLMinutes = 60
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetimeMn == 0 {
		cfg.Database.ConnMaxLifetimeMn = 30
	}
	if cfg.Verification.LinkBaseURL == "" {
		cfg.Verification.LinkBaseURL = "http://localhost:4200/verify-email"
	}
}
