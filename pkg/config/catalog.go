package config

import (
	"fmt"
	"strings"
	"time"
)

type CatalogConfig struct {
	BaseURL string        `koanf:"baseurl"`
	Timeout time.Duration `koanf:"timeout"`
}

// String returns a string representation of the catalog configuration.
func (c *CatalogConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Catalog ---\n")
	b.WriteString(fmt.Sprintf("  baseurl: %s\n", c.BaseURL))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *CatalogConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("catalog base URL is not configured")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("catalog base URL must start with http:// or https://: %s", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid catalog request timeout: %v", c.Timeout)
	}
	return nil
}
