package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/usecakework/monolog-viewer/lib/logstore"
)

const (
	AuthNone  = "none"
	AuthHS256 = "hs256"
	AuthJWKS  = "jwks"
)

type ServerConfig struct {
	DSN         string
	TablePrefix string
	ListenAddr  string
	PerPage     int
	MaxPerPage  int
	Location    *time.Location
	LogLevel    log.Level

	AuthMode     string
	AuthSecret   string
	AuthIssuer   string
	AuthAudience string
	AuthScope    string
}

func (c *ServerConfig) Limits() logstore.Limits {
	return logstore.Limits{PerPage: c.PerPage, MaxPerPage: c.MaxPerPage}
}

// NewViper returns a viper instance reading MONOLOG_* environment variables and,
// if configFile is set, a dotenv/yaml/json file.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("MONOLOG")
	v.AutomaticEnv()

	v.SetDefault("TABLE_PREFIX", "wp_")
	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("PER_PAGE", logstore.DefaultLimits.PerPage)
	v.SetDefault("MAX_PER_PAGE", logstore.DefaultLimits.MaxPerPage)
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("AUTH_MODE", AuthNone)
	v.SetDefault("AUTH_SCOPE", "manage:options")

	if configFile != "" {
		if strings.HasSuffix(configFile, ".env") {
			v.SetConfigType("dotenv")
		}
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config file %s: %w", configFile, err)
		}
	}
	return v, nil
}

func LoadServerConfig(v *viper.Viper) (*ServerConfig, error) {
	loc, err := time.LoadLocation(v.GetString("TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	level, err := log.ParseLevel(v.GetString("LOG_LEVEL"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	c := &ServerConfig{
		DSN:          v.GetString("DB_DSN"),
		TablePrefix:  v.GetString("TABLE_PREFIX"),
		ListenAddr:   v.GetString("LISTEN_ADDR"),
		PerPage:      v.GetInt("PER_PAGE"),
		MaxPerPage:   v.GetInt("MAX_PER_PAGE"),
		Location:     loc,
		LogLevel:     level,
		AuthMode:     strings.ToLower(v.GetString("AUTH_MODE")),
		AuthSecret:   v.GetString("AUTH_SECRET"),
		AuthIssuer:   v.GetString("AUTH_ISSUER"),
		AuthAudience: v.GetString("AUTH_AUDIENCE"),
		AuthScope:    v.GetString("AUTH_SCOPE"),
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *ServerConfig) validate() error {
	if c.DSN == "" {
		return errors.New("DB_DSN is required")
	}
	if c.MaxPerPage < 1 {
		return errors.New("MAX_PER_PAGE must be positive")
	}
	if c.PerPage < 1 || c.PerPage > c.MaxPerPage {
		return fmt.Errorf("PER_PAGE must be between 1 and %d", c.MaxPerPage)
	}

	switch c.AuthMode {
	case AuthNone:
	case AuthHS256:
		if c.AuthSecret == "" {
			return errors.New("AUTH_SECRET is required for hs256 auth")
		}
		if c.AuthIssuer == "" || c.AuthAudience == "" {
			return errors.New("AUTH_ISSUER and AUTH_AUDIENCE are required for hs256 auth")
		}
	case AuthJWKS:
		if c.AuthIssuer == "" || c.AuthAudience == "" {
			return errors.New("AUTH_ISSUER and AUTH_AUDIENCE are required for jwks auth")
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode)
	}
	return nil
}
