// internal/workers/data-access/query-intent-data/config.go
package queryintentdata

import "time"

type Config struct {
	Timeout  time.Duration
	TopLimit int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  15 * time.Second,
		TopLimit: 5,
	}
}
