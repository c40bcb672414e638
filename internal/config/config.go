// Package config loads imgdup settings.
//
// Settings are layered, lowest priority first: built-in defaults, an optional
// config file (imgdup.yaml, .toml or .json in the working directory or
// ~/.config/imgdup), IMGDUP_* environment variables, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/danieljhkim/imgdup/internal/images"
)

const (
	// DefaultConfigName is the config file base name searched for.
	DefaultConfigName = "imgdup"

	// EnvPrefix prefixes environment variables, e.g. IMGDUP_TARGET.
	EnvPrefix = "IMGDUP"

	DefaultSourceDir   = "assets"
	DefaultOutputDir   = "NFTS"
	DefaultTarget      = 1000
	DefaultConcurrency = 4
)

// flagKeys are the config keys that may be overridden by a flag of the same name.
var flagKeys = []string{
	"source", "output", "target", "extensions",
	"concurrency", "verify", "force", "yes", "verbose",
}

// Config holds the settings for a copy run.
type Config struct {
	// SourceDir is the directory holding the source images
	SourceDir string `mapstructure:"source"`

	// OutputDir is the directory copies are written to
	OutputDir string `mapstructure:"output"`

	// Target is the total number of copies to produce
	Target int `mapstructure:"target"`

	// Extensions are the allowed image extensions
	Extensions []string `mapstructure:"extensions"`

	// Concurrency is the maximum number of copies in flight
	Concurrency int `mapstructure:"concurrency"`

	// Verify compares the hash of every copy with its source
	Verify bool `mapstructure:"verify"`

	// Force overwrites existing files in the output directory
	Force bool `mapstructure:"force"`

	// Yes skips the confirmation prompt
	Yes bool `mapstructure:"yes"`

	// Verbose enables debug logging
	Verbose bool `mapstructure:"verbose"`

	// File is the config file that was read, if any
	File string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source", DefaultSourceDir)
	v.SetDefault("output", DefaultOutputDir)
	v.SetDefault("target", DefaultTarget)
	v.SetDefault("extensions", images.DefaultExtensions)
	v.SetDefault("concurrency", DefaultConcurrency)
	v.SetDefault("verify", false)
	v.SetDefault("force", false)
	v.SetDefault("yes", false)
	v.SetDefault("verbose", false)
}

// Load merges defaults, config file, environment and flags into a validated
// Config. cfgFile, when set, must exist. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", DefaultConfigName))
		}
	}

	cfg := &Config{}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		cfg.File = v.ConfigFileUsed()
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range flagKeys {
			flag := flags.Lookup(key)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("error binding flag '--%s': %w", key, err)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}
	cfg.Extensions = images.NormalizeExtensions(cfg.Extensions)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings describe a runnable copy.
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return errors.New("invalid config: source directory is empty")
	}
	if c.OutputDir == "" {
		return errors.New("invalid config: output directory is empty")
	}
	if c.Target <= 0 {
		return fmt.Errorf("invalid config: target must be positive, got %d", c.Target)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("invalid config: concurrency must be at least 1, got %d", c.Concurrency)
	}
	if len(images.NormalizeExtensions(c.Extensions)) == 0 {
		return errors.New("invalid config: at least one extension is required")
	}

	src, err := filepath.Abs(c.SourceDir)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	out, err := filepath.Abs(c.OutputDir)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if src == out {
		return fmt.Errorf("invalid config: source and output are the same directory (%s)", src)
	}
	return nil
}

// NewLogger returns a text logger writing to w.
// Verbose enables debug level; otherwise only info and above are emitted.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
