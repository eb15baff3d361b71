// Package config resolves the settings of a report run from flags, environment,
// an optional .env file and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys shared by flags, config file and environment.
const (
	KeyOrganization = "org"
	KeyToken        = "token"
	KeyGroupsFile   = "groups"
	KeyOutputFile   = "output"
	KeyAsOf         = "as-of"
	KeyConfigFile   = "config"
	KeyEnvFile      = "env-file"
)

// AsOfLayout is the accepted format of the --as-of date.
const AsOfLayout = "2006/01/02"

var (
	ErrMissingToken        = errors.New("GITHUB_TOKEN environment variable is not set")
	ErrMissingOrganization = errors.New("organization is not set")
)

// Config holds all configuration settings of a run.
type Config struct {
	Organization string
	Token        string
	GroupsFile   string
	OutputFile   string
	// AsOf freezes the reference date commit ages are measured against. Zero means now.
	AsOf time.Time
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		GroupsFile: "groups.txt",
		OutputFile: "matrix.txt",
	}
}

// RegisterFlags defines the flags Load reads on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	def := Default()
	fs.StringP(KeyOrganization, "o", "", "Target GitHub organization name (required)")
	fs.StringP(KeyGroupsFile, "g", def.GroupsFile, "File assigning repositories to groups")
	fs.String(KeyOutputFile, def.OutputFile, "Path of the matrix file to write")
	fs.String(KeyAsOf, "", "Reference date commit ages are measured against (YYYY/MM/DD, default today)")
	fs.String(KeyConfigFile, "", "Optional YAML config file")
	fs.String(KeyEnvFile, ".env", "Optional .env file loaded before reading the environment")
}

// Load resolves the configuration. Precedence, highest first: flags, environment
// (GITHUB_TOKEN, TEAM_MATRIX_*), config file, defaults. The .env file only fills
// variables that are not already set in the environment.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if err := loadEnvFile(v.GetString(KeyEnvFile)); err != nil {
		return nil, err
	}

	def := Default()
	v.SetDefault(KeyGroupsFile, def.GroupsFile)
	v.SetDefault(KeyOutputFile, def.OutputFile)

	v.SetEnvPrefix("TEAM_MATRIX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(KeyToken, "GITHUB_TOKEN", "TEAM_MATRIX_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind token environment: %w", err)
	}

	if path := v.GetString(KeyConfigFile); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Organization: v.GetString(KeyOrganization),
		Token:        v.GetString(KeyToken),
		GroupsFile:   v.GetString(KeyGroupsFile),
		OutputFile:   v.GetString(KeyOutputFile),
	}

	if s := v.GetString(KeyAsOf); s != "" {
		asOf, err := time.ParseInLocation(AsOfLayout, s, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid --as-of date format, please use YYYY/MM/DD: %w", err)
		}
		cfg.AsOf = asOf
	}
	return cfg, nil
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Validate checks that everything a run needs is present.
func (c *Config) Validate() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	if c.Organization == "" {
		return ErrMissingOrganization
	}
	return nil
}

// Now returns the reference instant: AsOf if set, otherwise the current time.
func (c *Config) Now() time.Time {
	if c.AsOf.IsZero() {
		return time.Now()
	}
	return c.AsOf
}
