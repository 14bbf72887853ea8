package config

import (
	"fmt"
	"strings"
)

const (
	EnvDev        = "dev"
	EnvProduction = "production"
)

type AppConfig struct {
	Env string `koanf:"env"`
}

// Production reports whether the application runs in a production-like environment.
func (c *AppConfig) Production() bool {
	return c.Env == EnvProduction
}

// String returns a string representation of the app configuration.
func (c *AppConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- App ---\n")
	b.WriteString(fmt.Sprintf("  env: %s\n", c.Env))
	return b.String()
}

func (c *AppConfig) Validate() error {
	if c.Env == "" {
		c.Env = EnvDev
	}
	if c.Env != EnvDev && c.Env != EnvProduction {
		return fmt.Errorf("unknown app env: %q", c.Env)
	}
	return nil
}
