package config

import (
	"fmt"
	"strings"
)

// Storage backends supported for cart persistence.
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

type StorageConfig struct {
	Backend string `koanf:"backend"`
}

// String returns a string representation of the storage configuration.
func (c *StorageConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Storage ---\n")
	b.WriteString(fmt.Sprintf("  backend: %s\n", c.Backend))
	return b.String()
}

func (c *StorageConfig) Validate() error {
	switch c.Backend {
	case StorageMemory, StorageRedis, StoragePostgres:
		return nil
	}
	return fmt.Errorf("unknown storage backend: %q", c.Backend)
}
