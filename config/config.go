// Package config loads roadgraph settings from a YAML file and the environment.
//
// Precedence, lowest first: built-in defaults, the YAML file, ROADGRAPH_*
// environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config aggregates application configuration values.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Data    DataConfig    `yaml:"data"`
	Neo4j   Neo4jConfig   `yaml:"neo4j"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `yaml:"level"`
	Format        string `yaml:"format"` // text|json
	IncludeCaller bool   `yaml:"include_caller"`
}

// DataConfig points at the road map to bulk load on start-up.
type DataConfig struct {
	File string `yaml:"file"`
}

// Neo4jConfig describes the optional export target. An empty URI disables it.
type Neo4jConfig struct {
	URI            string `yaml:"uri"`
	Database       string `yaml:"database"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	MaxConnections int    `yaml:"max_connections"`
}

const (
	defaultLoggingLevel   = "info"
	defaultLoggingFormat  = "text"
	defaultMaxConnections = 10
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  defaultLoggingLevel,
			Format: defaultLoggingFormat,
		},
		Neo4j: Neo4jConfig{
			MaxConnections: defaultMaxConnections,
		},
	}
}

// Load reads path (if non-empty), applies environment overrides and validates.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates. No environment
// overrides are applied.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := decode(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Logging.Level, "ROADGRAPH_LOG_LEVEL")
	setString(&cfg.Logging.Format, "ROADGRAPH_LOG_FORMAT")
	setString(&cfg.Data.File, "ROADGRAPH_DATA_FILE")
	setString(&cfg.Neo4j.URI, "ROADGRAPH_NEO4J_URI")
	setString(&cfg.Neo4j.Database, "ROADGRAPH_NEO4J_DATABASE")
	setString(&cfg.Neo4j.Username, "ROADGRAPH_NEO4J_USER")
	setString(&cfg.Neo4j.Password, "ROADGRAPH_NEO4J_PASSWORD")

	if raw, ok := os.LookupEnv("ROADGRAPH_LOG_INCLUDE_CALLER"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: ROADGRAPH_LOG_INCLUDE_CALLER=%q", ErrInvalidConfig, raw)
		}
		cfg.Logging.IncludeCaller = v
	}
	if raw, ok := os.LookupEnv("ROADGRAPH_NEO4J_MAX_CONNECTIONS"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: ROADGRAPH_NEO4J_MAX_CONNECTIONS=%q", ErrInvalidConfig, raw)
		}
		cfg.Neo4j.MaxConnections = v
	}

	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

// Validate checks enumerations and ranges.
func (c Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: logging.format %q", ErrInvalidConfig, c.Logging.Format)
	}
	if c.Neo4j.MaxConnections < 0 {
		return fmt.Errorf("%w: neo4j.max_connections %d", ErrInvalidConfig, c.Neo4j.MaxConnections)
	}

	return nil
}
