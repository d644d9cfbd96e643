package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Config struct {
	Env    string `yaml:"env" env:"NTRENDER_ENV" env-default:"local"`
	Input  `yaml:"input"`
	Limits `yaml:"limits"`
	Render `yaml:"render"`
}

type Input struct {
	Format  string `yaml:"format" env:"NTRENDER_FORMAT"`
	BaseIRI string `yaml:"base_iri" env:"NTRENDER_BASE_IRI"`
	// RemoteContexts allows JSON-LD documents to fetch remote @context URLs.
	RemoteContexts bool `yaml:"remote_contexts" env:"NTRENDER_REMOTE_CONTEXTS" env-default:"false"`
}

type Limits struct {
	MaxLineBytes int   `yaml:"max_line_bytes" env:"NTRENDER_MAX_LINE_BYTES" env-default:"1048576"`
	MaxTriples   int64 `yaml:"max_triples" env:"NTRENDER_MAX_TRIPLES" env-default:"0"`
	StrictIRI    bool  `yaml:"strict_iri" env:"NTRENDER_STRICT_IRI" env-default:"false"`
}

type Render struct {
	Concurrency int           `yaml:"concurrency" env:"NTRENDER_CONCURRENCY" env-default:"0"`
	Timeout     time.Duration `yaml:"timeout" env:"NTRENDER_TIMEOUT" env-default:"30s"`
}

// Load reads the config file at path, then applies environment overrides.
// An empty path reads the environment only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, errors.Wrap(err, "cannot read config from environment")
		}
		return validated(&cfg)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.Errorf("config file does not exist: %s", path)
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, errors.Wrapf(err, "cannot read config %s", path)
	}
	return validated(&cfg)
}

func validated(cfg *Config) (*Config, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is Load that panics on failure.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return errors.Errorf("unknown env %q", c.Env)
	}
	if c.Render.Timeout < 0 {
		return errors.Errorf("render timeout must not be negative: %s", c.Render.Timeout)
	}
	return nil
}
