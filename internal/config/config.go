// Package config loads prepkit settings from .prepkit.yml, PREPKIT_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/prepkit/internal/logging"
)

const (
	EnvPrefix = "PREPKIT"
	FileName  = ".prepkit"
)

type Config struct {
	Theme     string          `mapstructure:"theme"`
	StateFile string          `mapstructure:"state_file"`
	Log       LogConfig       `mapstructure:"log"`
	API       APIConfig       `mapstructure:"api"`
	Stopwatch StopwatchConfig `mapstructure:"stopwatch"`
	Country   CountryConfig   `mapstructure:"country"`
}

type LogConfig struct {
	File   string `mapstructure:"file"`
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type APIConfig struct {
	TodosURL     string        `mapstructure:"todos_url"`
	UsersURL     string        `mapstructure:"users_url"`
	CountriesURL string        `mapstructure:"countries_url"`
	CatFactURL   string        `mapstructure:"catfact_url"`
	CataasURL    string        `mapstructure:"cataas_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type StopwatchConfig struct {
	Tick time.Duration `mapstructure:"tick"`
}

type CountryConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("theme", "classic")
	v.SetDefault("state_file", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("api.todos_url", "https://jsonplaceholder.typicode.com/todos")
	v.SetDefault("api.users_url", "https://jsonplaceholder.typicode.com/users")
	v.SetDefault("api.countries_url", "https://restcountries.com/v3.1")
	v.SetDefault("api.catfact_url", "https://catfact.ninja/fact")
	v.SetDefault("api.cataas_url", "https://cataas.com")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("stopwatch.tick", 50*time.Millisecond)
	v.SetDefault("country.page_size", 10)
}

// NewViper returns a viper instance wired for prepkit: defaults, env
// binding and the config search path. cfgFile overrides the search.
func NewViper(cfgFile string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}
	return v
}

// FlagKeys maps persistent flag names to the config keys they override.
var FlagKeys = map[string]string{
	"theme":     "theme",
	"log-level": "log.level",
	"state":     "state_file",
}

// BindFlags binds every flag of fs named in keys. Flags missing from fs
// are skipped.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for flag, key := range keys {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", flag, err)
		}
	}
	return nil
}

// Load reads the config file if there is one and decodes the result.
// A missing file is not an error.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

var themes = map[string]bool{"classic": true, "neon": true, "mono": true}

func (c *Config) Validate() error {
	var errs []error
	if !themes[strings.ToLower(c.Theme)] {
		errs = append(errs, fmt.Errorf("theme: unknown %q (classic, neon, mono)", c.Theme))
	}
	for name, raw := range map[string]string{
		"api.todos_url":     c.API.TodosURL,
		"api.users_url":     c.API.UsersURL,
		"api.countries_url": c.API.CountriesURL,
		"api.catfact_url":   c.API.CatFactURL,
		"api.cataas_url":    c.API.CataasURL,
	} {
		if err := validateURL(raw); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("api.timeout: must be positive"))
	}
	if c.Stopwatch.Tick <= 0 {
		errs = append(errs, errors.New("stopwatch.tick: must be positive"))
	}
	if c.Country.PageSize <= 0 {
		errs = append(errs, errors.New("country.page_size: must be positive"))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w (debug, info, warn, error)", err))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown %q (text, json)", c.Log.Format))
	}
	return errors.Join(errs...)
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}

// Dump renders c in the layout of .prepkit.yml.
func (c *Config) Dump() ([]byte, error) {
	return yaml.Marshal(map[string]any{
		"theme":      c.Theme,
		"state_file": c.StateFile,
		"log": map[string]any{
			"file":   c.Log.File,
			"level":  c.Log.Level,
			"format": c.Log.Format,
		},
		"api": map[string]any{
			"todos_url":     c.API.TodosURL,
			"users_url":     c.API.UsersURL,
			"countries_url": c.API.CountriesURL,
			"catfact_url":   c.API.CatFactURL,
			"cataas_url":    c.API.CataasURL,
			"timeout":       c.API.Timeout.String(),
		},
		"stopwatch": map[string]any{"tick": c.Stopwatch.Tick.String()},
		"country":   map[string]any{"page_size": c.Country.PageSize},
	})
}
