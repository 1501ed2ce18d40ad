// Package config loads service settings from defaults, an optional TOML
// file, a .env file and BELTLINE_* environment variables, in rising order
// of precedence.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	errs "Beltline/internal/errors"
)

const EnvPrefix = "BELTLINE"

type Config struct {
	Server    Server    `mapstructure:"server"`
	Auth      Auth      `mapstructure:"auth"`
	Database  Database  `mapstructure:"database"`
	Materials Materials `mapstructure:"materials"`
	Log       Log       `mapstructure:"log"`
}

type Server struct {
	Addr            string        `mapstructure:"addr"`
	TLSCert         string        `mapstructure:"tls_cert"`
	TLSKey          string        `mapstructure:"tls_key"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// CORSOrigin is echoed in Access-Control-Allow-Origin; "*" allows any.
	CORSOrigin      string        `mapstructure:"cors_origin"`
}

// TLS reports whether both certificate files are configured.
func (s Server) TLS() bool { return s.TLSCert != "" && s.TLSKey != "" }

type Auth struct {
	TokenKey string  `mapstructure:"token_key"`
	Rate     float64 `mapstructure:"rate"`
	Burst    int     `mapstructure:"burst"`
}

// Enabled reports whether accounts and sessions are served. Without a
// token key the calculators are public.
func (a Auth) Enabled() bool { return a.TokenKey != "" }

type Database struct {
	URL string `mapstructure:"url"`
}

type Materials struct {
	// File replaces the built-in catalog when set.
	File string `mapstructure:"file"`
}

type Log struct {
	JSON bool `mapstructure:"json"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8443")
	v.SetDefault("server.tls_cert", "")
	v.SetDefault("server.tls_key", "")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.cors_origin", "*")
	v.SetDefault("auth.token_key", "")
	v.SetDefault("auth.rate", 1.0)
	v.SetDefault("auth.burst", 3)
	v.SetDefault("database.url", "")
	v.SetDefault("materials.file", "")
	v.SetDefault("log.json", false)
}

// New returns a viper instance with defaults and environment binding but
// no file read.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads .env (if present), then the TOML file at path (if non-empty),
// then the environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errs.Wrap(err, "load .env")
	}

	v := New()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errs.Wrapf(err, "read config file %s", path)
		}
	}
	return FromViper(v)
}

func FromViper(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errs.Wrap(err, "unmarshal config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Server.Addr == "":
		return errs.Wrap(errs.ErrInvalidInput, "server.addr is empty")
	case (c.Server.TLSCert == "") != (c.Server.TLSKey == ""):
		return errs.WithHint(
			errs.Wrap(errs.ErrInvalidInput, "server.tls_cert and server.tls_key must be set together"),
			"set both or neither")
	case c.Server.CORSOrigin == "":
		return errs.WithHint(
			errs.Wrap(errs.ErrInvalidInput, "server.cors_origin is empty"),
			`use "*" to allow any origin`)
	case c.Server.ShutdownTimeout <= 0:
		return errs.Wrapf(errs.ErrInvalidInput, "server.shutdown_timeout %s", c.Server.ShutdownTimeout)
	case c.Auth.Rate <= 0 || c.Auth.Burst <= 0:
		return errs.Wrapf(errs.ErrInvalidInput, "auth rate %.2f/s burst %d", c.Auth.Rate, c.Auth.Burst)
	case c.Auth.Enabled() && c.Database.URL == "":
		return errs.WithHint(
			errs.Wrap(errs.ErrInvalidInput, "auth.token_key is set but database.url is empty"),
			"accounts are stored in Postgres")
	}
	return nil
}
