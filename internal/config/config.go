package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Seed     SeedConfig
}

type AppConfig struct {
	Name string
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// DatabaseConfig is built from DATABASE_URL and DATABASE_NAME. Both are left
// empty when unset so the diagnostic endpoint can report them as missing.
type DatabaseConfig struct {
	URL              string
	Name             string
	ConnectTimeout   time.Duration
	OperationTimeout time.Duration
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
}

type LogConfig struct {
	Level string
}

type SeedConfig struct {
	Enabled bool
}

// Load reads .env (if present), an optional CONFIG_FILE and the environment,
// in increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	if err := v.BindEnv("SERVER_PORT", "SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("binding SERVER_PORT: %w", err)
	}

	v.SetDefault("APP_NAME", "GAYO Café")
	v.SetDefault("SERVER_PORT", 8000)
	v.SetDefault("SERVER_READ_TIMEOUT", "10s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	v.SetDefault("SERVER_IDLE_TIMEOUT", "30s")
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DB_CONNECT_TIMEOUT", "5s")
	v.SetDefault("DB_OPERATION_TIMEOUT", "0s")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SEED_ENABLED", true)

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	durations := map[string]*time.Duration{}
	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("APP_NAME"),
		},
		Server: ServerConfig{
			Port:           v.GetInt("SERVER_PORT"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			URL:          v.GetString("DATABASE_URL"),
			Name:         v.GetString("DATABASE_NAME"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Seed: SeedConfig{
			Enabled: v.GetBool("SEED_ENABLED"),
		},
	}

	durations["SERVER_READ_TIMEOUT"] = &cfg.Server.ReadTimeout
	durations["SERVER_WRITE_TIMEOUT"] = &cfg.Server.WriteTimeout
	durations["SERVER_IDLE_TIMEOUT"] = &cfg.Server.IdleTimeout
	durations["SERVER_SHUTDOWN_TIMEOUT"] = &cfg.Server.ShutdownTimeout
	durations["DB_CONNECT_TIMEOUT"] = &cfg.Database.ConnectTimeout
	durations["DB_OPERATION_TIMEOUT"] = &cfg.Database.OperationTimeout
	durations["DB_CONN_MAX_LIFETIME"] = &cfg.Database.ConnMaxLifetime

	for key, dst := range durations {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", key, err)
		}
		*dst = d
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
