package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	API      APIConfig      `yaml:"api"`
	Fixture  FixtureConfig  `yaml:"fixture"`
	Database DatabaseConfig `yaml:"database"`
	Queue    QueueConfig    `yaml:"queue"`
	Worker   WorkerConfig   `yaml:"worker"`
	Search   SearchConfig   `yaml:"search"`
}

// APIConfig holds API server configuration
type APIConfig struct {
	Port int `yaml:"port"`
}

// FixtureConfig selects where the customer dataset is read from
type FixtureConfig struct {
	Source string `yaml:"source"` // embedded, file or postgres
	Path   string `yaml:"path"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// QueueConfig holds queue configuration (Redis)
type QueueConfig struct {
	Enabled   bool   `yaml:"enabled"`
	RedisURL  string `yaml:"redis_url"`
	QueueName string `yaml:"queue_name"`
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// SearchConfig holds search box configuration
type SearchConfig struct {
	// LabelTemplate is empty for the built-in "{first_name} {last_name} ({business_partner_id})"
	LabelTemplate string `yaml:"label_template"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		API: APIConfig{Port: 8080},
		Fixture: FixtureConfig{
			Source: "embedded",
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "customer360",
			Password: "customer360",
			DBName:   "customer360",
			SSLMode:  "disable",
		},
		Queue: QueueConfig{
			Enabled:   false,
			RedisURL:  "redis://localhost:6379/0",
			QueueName: "customer_selections",
		},
		Worker: WorkerConfig{Concurrency: 2},
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// applyEnvOverrides reads environment variables over the current values
func (c *Config) applyEnvOverrides() error {
	var err error

	if c.API.Port, err = envInt("API_PORT", c.API.Port); err != nil {
		return err
	}

	c.Fixture.Source = getEnv("FIXTURE_SOURCE", c.Fixture.Source)
	c.Fixture.Path = getEnv("FIXTURE_PATH", c.Fixture.Path)

	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	if c.Database.Port, err = envInt("DB_PORT", c.Database.Port); err != nil {
		return err
	}
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.DBName = getEnv("DB_NAME", c.Database.DBName)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)

	if v := os.Getenv("QUEUE_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid QUEUE_ENABLED: %w", err)
		}
		c.Queue.Enabled = enabled
	}
	c.Queue.RedisURL = getEnv("REDIS_URL", c.Queue.RedisURL)
	c.Queue.QueueName = getEnv("QUEUE_NAME", c.Queue.QueueName)

	if c.Worker.Concurrency, err = envInt("WORKER_CONCURRENCY", c.Worker.Concurrency); err != nil {
		return err
	}

	c.Search.LabelTemplate = getEnv("SEARCH_LABEL_TEMPLATE", c.Search.LabelTemplate)

	return nil
}

// Validate checks values that would otherwise fail later at startup
func (c *Config) Validate() error {
	switch c.Fixture.Source {
	case "embedded", "postgres":
	case "file":
		if c.Fixture.Path == "" {
			return fmt.Errorf("FIXTURE_PATH is required when FIXTURE_SOURCE is file")
		}
	default:
		return fmt.Errorf("invalid FIXTURE_SOURCE: %q", c.Fixture.Source)
	}

	if c.API.Port < 1 || c.API.Port > 65535 {
		return fmt.Errorf("invalid API_PORT: %d", c.API.Port)
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
