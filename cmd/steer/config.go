package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/steer/internal/inference"
)

const (
	envSteerConfig = "STEER_CONFIG"
	envSteerAddr   = "STEER_ADDR"
)

// Config is the optional steer configuration file
// (~/.config/steer/config.yaml). Pointer fields distinguish "not set" from
// zero values.
type Config struct {
	// Generation defaults
	MaxTokens         *int     `yaml:"max_tokens"`
	RepetitionPenalty *float64 `yaml:"repetition_penalty"`
	NoRepeatNgram     *int     `yaml:"no_repeat_ngram"`
	EOSTokens         []int    `yaml:"eos_tokens"`
	StopSequences     []string `yaml:"stop"`
	Seed              *int64   `yaml:"seed"`

	// Output
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string   `yaml:"server_address"`
	RateLimit     *float64 `yaml:"rate_limit"`
}

func configPath() string {
	if p := strings.TrimSpace(os.Getenv(envSteerConfig)); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "steer", "config.yaml")
}

// LoadConfig reads the config file. Returns a zero Config when the file is
// missing or unreadable.
func LoadConfig() Config {
	return loadConfigFile(configPath())
}

func loadConfigFile(path string) Config {
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// genDefaults maps the config file's generation settings onto engine
// defaults. Flag values set by the user still win during request resolution.
func (cfg Config) genDefaults() inference.GenDefaults {
	return inference.GenDefaults{
		MaxTokens:         cfg.MaxTokens,
		RepetitionPenalty: cfg.RepetitionPenalty,
		NoRepeatNgram:     cfg.NoRepeatNgram,
		EOSTokens:         cfg.EOSTokens,
		StopSequences:     cfg.StopSequences,
	}
}

// applyLoggingConfig applies config file logging settings when the
// corresponding CLI flag was not explicitly set.
func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyRunConfig applies config file defaults to run command variables.
func applyRunConfig(c *cli.Command, cfg Config, seed *int64) {
	if cfg.Seed != nil && !c.IsSet("seed") {
		*seed = *cfg.Seed
	}
}

// applyServeConfig applies config file defaults to serve command variables.
// The listen address falls back flag > config file > environment.
func applyServeConfig(c *cli.Command, cfg Config, addr *string, rateLimit *float64) {
	if !c.IsSet("addr") {
		if cfg.ServerAddress != "" {
			*addr = cfg.ServerAddress
		} else if env := strings.TrimSpace(os.Getenv(envSteerAddr)); env != "" {
			*addr = env
		}
	}
	if cfg.RateLimit != nil && !c.IsSet("rate-limit") {
		*rateLimit = *cfg.RateLimit
	}
}
