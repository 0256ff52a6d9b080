package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"Seismo/internal/calc/drift"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultFile = "seismo.yaml"

type Config struct {
	Addr        string  `yaml:"addr"`
	DriftLimit  float64 `yaml:"drift_limit"`
	DatabaseURL string  `yaml:"database_url"`
	TokenKey    string  `yaml:"token_key"`
	TLSCert     string  `yaml:"tls_cert"`
	TLSKey      string  `yaml:"tls_key"`
	StaticDir   string  `yaml:"static_dir"`
	RateLimit   float64 `yaml:"rate_limit"`
	RateBurst   int     `yaml:"rate_burst"`
}

func Default() Config {
	return Config{
		Addr:       ":8443",
		DriftLimit: drift.DefaultLimit,
		StaticDir:  "./static",
		RateLimit:  1,
		RateBurst:  3,
	}
}

// Load reads .env (if present), then the YAML file at path (if present),
// then environment overrides. An empty path means SEISMO_CONFIG or seismo.yaml.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	if path == "" {
		path = os.Getenv("SEISMO_CONFIG")
	}
	if path == "" {
		path = DefaultFile
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return Config{}, err
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	str := map[string]*string{
		"ADDR":         &c.Addr,
		"DATABASE_URL": &c.DatabaseURL,
		"TOKEN_KEY":    &c.TokenKey,
		"TLS_CERT":     &c.TLSCert,
		"TLS_KEY":      &c.TLSKey,
		"STATIC_DIR":   &c.StaticDir,
	}
	for k, p := range str {
		if v := os.Getenv(k); v != "" {
			*p = v
		}
	}
	if v := os.Getenv("DRIFT_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("DRIFT_LIMIT: %w", err)
		}
		c.DriftLimit = f
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT: %w", err)
		}
		c.RateLimit = f
	}
	if v := os.Getenv("RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_BURST: %w", err)
		}
		c.RateBurst = n
	}
	return nil
}

func (c Config) Validate() error {
	if err := drift.CheckLimit(c.DriftLimit); err != nil {
		return fmt.Errorf("drift_limit: %w", err)
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return errors.New("rate_limit and rate_burst must be positive")
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("tls_cert and tls_key must be set together")
	}
	return nil
}

func (c Config) TLS() bool { return c.TLSCert != "" }
