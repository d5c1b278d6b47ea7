package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`

	Storage struct {
		// Backend selects the persistence implementation: "jsonfile" or
		// "postgres". Both satisfy the same contract.
		Backend  string `mapstructure:"backend"`
		DataFile string `mapstructure:"data_file"`
	} `mapstructure:"storage"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		SSLMode  string `mapstructure:"sslmode"`
	} `mapstructure:"database"`

	Metrics struct {
		// Addr serves Prometheus metrics; empty disables the listener
		Addr string `mapstructure:"addr"`
	} `mapstructure:"metrics"`
}

// DSN builds the PostgreSQL connection string from the database section
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User, c.Database.Password, c.Database.Host,
		c.Database.Port, c.Database.Name, c.Database.SSLMode)
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("storage.backend", "jsonfile")
	v.SetDefault("storage.data_file", "data/ops.json")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "ops_db")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("metrics.addr", ":9090")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override storage settings from environment variables
	if backend := os.Getenv("STORAGE_BACKEND"); backend != "" {
		cfg.Storage.Backend = backend
	}
	if dataFile := os.Getenv("DATA_FILE"); dataFile != "" {
		cfg.Storage.DataFile = dataFile
	}

	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}
	if mode := os.Getenv("DB_SSLMODE"); mode != "" {
		cfg.Database.SSLMode = mode
	}
	if addr := os.Getenv("METRICS_ADDR"); addr != "" {
		cfg.Metrics.Addr = addr
	}

	return &cfg
}
