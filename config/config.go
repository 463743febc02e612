package config

import (
	"errors"
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"os"
	"strings"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Lexicon LexiconConfig `yaml:"lexicon"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" env:"TAWNGBU_ADDR" env-default:"localhost:8080"`
}

type LexiconConfig struct {
	Path string `yaml:"path" env:"TAWNGBU_LEXICON" env-default:"./dictionary.json"`
}

// StorageConfig selects where favorites, recent searches and the word of the day live.
// Driver is one of memory, json, sqlite or postgres.
type StorageConfig struct {
	Driver   string `yaml:"driver"   env:"TAWNGBU_STORAGE_DRIVER" env-default:"json"`
	Path     string `yaml:"path"     env:"TAWNGBU_STORAGE_PATH"   env-default:"./tawngbu-state.json"`
	DSN      string `yaml:"dsn"      env:"TAWNGBU_DATABASE_DSN"`
	Table    string `yaml:"table"    env:"TAWNGBU_DATABASE_TABLE" env-default:"tawngbu_kv"`
	ReadOnly bool   `yaml:"readonly" env:"TAWNGBU_STORAGE_READONLY"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Load reads configuration from the YAML file at path (if any) and the environment.
// Priority: ENV > YAML > defaults. An empty path falls back to CONFIG_PATH; a missing
// file is only an error when the path was given explicitly.
func Load(path string) (*Config, error) {
	var cfg Config

	explicitPath := path != ""
	if !explicitPath {
		path = os.Getenv("CONFIG_PATH")
		explicitPath = path != ""
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if explicitPath {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Storage.Driver) {
	case DriverMemory, DriverJSON, DriverSQLite:
	case DriverPostgres:
		if c.Storage.DSN == "" {
			errs = append(errs, errors.New("storage.dsn is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}

	if c.Lexicon.Path == "" {
		errs = append(errs, errors.New("lexicon.path is required"))
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// Override applies command line values on top of the loaded config. Empty values keep
// what the file or environment set.
func (c *Config) Override(lexiconPath, addr string) {
	if lexiconPath != "" {
		c.Lexicon.Path = lexiconPath
	}
	if addr != "" {
		c.Server.Addr = addr
	}
}
