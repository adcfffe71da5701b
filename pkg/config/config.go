// Package config loads the gothainer.yaml project configuration: which
// image to build, which recipes to compose, and where the build context
// root lives.
package config

import (
	"fmt"

	"gopkg.in/yaml.v2"

	"github.com/apaolillo/gothainer/pkg/recipes"
)

// Config is the parsed project configuration.
type Config struct {
	Image     string `yaml:"image"`
	Container string `yaml:"container"`
	BaseImage string `yaml:"base_image"`
	UserName  string `yaml:"user_name"`

	// Builders and Runners name recipes composed on top of the base
	// builder, in order.
	Builders []string `yaml:"builders"`
	Runners  []string `yaml:"runners"`

	// ContextRoot anchors the relative destinations of copied files.
	ContextRoot string `yaml:"context_root"`

	// Packages are installed in addition to the base development set.
	Packages []string `yaml:"packages"`

	// EnvFile is a dotenv file merged into the container environment.
	EnvFile string `yaml:"env_file"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Image == "" {
		c.Image = "gothainer"
	}
	if c.Container == "" {
		c.Container = c.Image
	}
	if c.BaseImage == "" {
		c.BaseImage = "ubuntu:24.04"
	}
	if c.UserName == "" {
		c.UserName = "user"
	}
}

// FromYAML parses, defaults, and validates a configuration document.
func FromYAML(contents []byte) (*Config, error) {
	config := &Config{}
	if err := yaml.UnmarshalStrict(contents, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects recipe names the registry does not know.
func (c *Config) Validate() error {
	for _, name := range c.Builders {
		if _, ok := recipes.Builder(name); !ok {
			return fmt.Errorf("unknown builder %q, available: %v", name, recipes.BuilderNames())
		}
	}
	for _, name := range c.Runners {
		if _, ok := recipes.Runner(name); !ok {
			return fmt.Errorf("unknown runner %q, available: %v", name, recipes.RunnerNames())
		}
	}
	return nil
}
