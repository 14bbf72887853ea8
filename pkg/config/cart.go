package config

import (
	"fmt"
	"strings"
)

const defaultCartKey = "cart-storage"

type CartConfig struct {
	// Key is the durable storage key the cart snapshot is written under.
	Key string `koanf:"key"`
}

// String returns a string representation of the cart configuration.
func (c *CartConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Cart ---\n")
	b.WriteString(fmt.Sprintf("  key: %s\n", c.Key))
	return b.String()
}

func (c *CartConfig) Validate() error {
	if c.Key == "" {
		c.Key = defaultCartKey
	}
	return nil
}
