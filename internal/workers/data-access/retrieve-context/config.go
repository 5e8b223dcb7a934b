// internal/workers/data-access/retrieve-context/config.go
package retrievecontext

import "time"

type Config struct {
	Index   string
	MaxHits int
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Index:   "conocimiento",
		MaxHits: 3,
		Timeout: 10 * time.Second,
	}
}
