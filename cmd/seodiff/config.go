package main

import (
	"os"
	"time"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors the CLI flags that can also be supplied from a YAML
// file. Zero values mean "not set".
type FileConfig struct {
	OutputDir    string        `yaml:"output_dir"`
	Format       string        `yaml:"format"`
	Concurrency  int           `yaml:"concurrency"`
	Timeout      time.Duration `yaml:"timeout"`
	WaitStrategy string        `yaml:"wait_strategy"`
	UserAgent    string        `yaml:"user_agent"`
	DB           string        `yaml:"db"`
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setFlags reports which flags were passed explicitly on the command line,
// as opposed to filled in from their defaults.
func setFlags(ctx *kong.Context) map[string]bool {
	set := make(map[string]bool)
	for _, flag := range ctx.Flags() {
		set[flag.Name] = flag.Set
	}
	return set
}

// ApplyConfig fills in file-provided values for flags the user did not pass
// on the command line, so the resolution order is flag > config file >
// default. An explicitly passed flag keeps its value even when it equals the
// built-in default.
func (c *CLI) ApplyConfig(cfg *FileConfig, set map[string]bool) {
	if cfg.OutputDir != "" && !set["output-dir"] {
		c.OutputDir = cfg.OutputDir
	}
	if cfg.Format != "" && !set["format"] {
		c.Format = cfg.Format
	}
	if cfg.Concurrency > 0 && !set["concurrency"] {
		c.Concurrency = cfg.Concurrency
	}
	if cfg.Timeout > 0 && !set["timeout"] {
		c.Timeout = cfg.Timeout
	}
	if cfg.WaitStrategy != "" && !set["wait-strategy"] {
		c.WaitStrategy = cfg.WaitStrategy
	}
	if cfg.UserAgent != "" && !set["user-agent"] {
		c.UserAgent = cfg.UserAgent
	}
	if cfg.DB != "" && !set["db"] {
		c.DB = cfg.DB
	}
}
