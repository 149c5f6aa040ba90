package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/young-ng/young-ng/internal/manifest"
)

// DefaultFile is looked up in the project root when --config is not given.
const DefaultFile = "young-ng.yml"

// Defaults matching the behavior of a run without a config file
const (
	DefaultVersion     = "1.0"
	DefaultAppName     = "generated"
	DefaultCommand     = "npm"
	DefaultDockerImage = "node:22"

	RunnerExec   = "exec"
	RunnerDocker = "docker"
)

// Config represents young-ng.yml
type Config struct {
	Version       string        `yaml:"version"`
	AppName       string        `yaml:"app_name,omitempty"`
	Generator     CommandConfig `yaml:"generator,omitempty"`
	Installer     CommandConfig `yaml:"installer,omitempty"`
	Runner        RunnerConfig  `yaml:"runner,omitempty"`
	KeepWorkspace bool          `yaml:"keep_workspace,omitempty"`
}

// CommandConfig is an external command and its arguments
type CommandConfig struct {
	Command string   `yaml:"command,omitempty"`
	Args    []string `yaml:"args,omitempty"`
}

// RunnerConfig selects where external commands run
type RunnerConfig struct {
	Mode  string `yaml:"mode,omitempty"`  // "exec" or "docker"
	Image string `yaml:"image,omitempty"` // docker only
}

// GeneratorArgs returns the npm arguments that create a strict, standalone,
// SCSS Angular 20 project named appName without initializing Git.
func GeneratorArgs(appName string) []string {
	return []string{"create", "@angular@20", appName, "--", "--strict", "--skip-git", "--standalone", "--style=scss"}
}

// InstallerArgs returns the npm arguments that install the pinned lint and
// format tooling as dev dependencies.
func InstallerArgs() []string {
	return append([]string{"i", "-D"}, manifest.InstallSpecs(manifest.DevDependencyDefaults)...)
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills every unset field.
func (c *Config) ApplyDefaults() {
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.AppName == "" {
		c.AppName = DefaultAppName
	}
	if c.Generator.Command == "" {
		c.Generator.Command = DefaultCommand
	}
	if c.Generator.Args == nil {
		c.Generator.Args = GeneratorArgs(c.AppName)
	}
	if c.Installer.Command == "" {
		c.Installer.Command = DefaultCommand
	}
	if c.Installer.Args == nil {
		c.Installer.Args = InstallerArgs()
	}
	if c.Runner.Mode == "" {
		c.Runner.Mode = RunnerExec
	}
	if c.Runner.Mode == RunnerDocker && c.Runner.Image == "" {
		c.Runner.Image = DefaultDockerImage
	}
}

// Validate performs strict validation on the configuration
func (c *Config) Validate() error {
	if c.Version != DefaultVersion {
		return fmt.Errorf("unsupported version: %s (expected: %s)", c.Version, DefaultVersion)
	}

	if c.AppName == "." || c.AppName == ".." || strings.ContainsAny(c.AppName, `/\`) {
		return fmt.Errorf("invalid app_name: %q (must be a plain directory name)", c.AppName)
	}

	if strings.TrimSpace(c.Generator.Command) == "" {
		return fmt.Errorf("generator.command is required")
	}
	if strings.TrimSpace(c.Installer.Command) == "" {
		return fmt.Errorf("installer.command is required")
	}

	switch c.Runner.Mode {
	case RunnerExec:
	case RunnerDocker:
		if c.Runner.Image == "" {
			return fmt.Errorf("runner.image is required when runner.mode is 'docker'")
		}
	default:
		return fmt.Errorf("invalid runner.mode: %s (must be '%s' or '%s')", c.Runner.Mode, RunnerExec, RunnerDocker)
	}

	return nil
}

// Load reads, defaults and validates the config file at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadOptional loads path, returning the defaults when the file does not exist.
func LoadOptional(path string) (*Config, error) {
	config, err := Load(path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return config, err
}
