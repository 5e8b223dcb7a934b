// internal/genai/keys.go
package genai

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// KeyPool holds the completion service credentials. Selection is
// pseudo-random so load spreads across keys without coordination; the pool
// is safe for concurrent use.
type KeyPool struct {
	mu   sync.Mutex
	keys []string
	rnd  *rand.Rand
}

func NewKeyPool(keys []string) *KeyPool {
	cleaned := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			cleaned = append(cleaned, k)
		}
	}
	return &KeyPool{
		keys: cleaned,
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Next selects a random key from the pool. An empty pool is a fatal
// configuration error, never retried.
func (p *KeyPool) Next() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.keys) == 0 {
		return "", ErrNoAPIKeys
	}
	return p.keys[p.rnd.Intn(len(p.keys))], nil
}

// Size reports how many keys are configured.
func (p *KeyPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.keys)
}

// keySuffix returns the tail of a key for log lines; full keys never reach
// the logs.
func keySuffix(key string) string {
	if len(key) <= 6 {
		return key
	}
	return key[len(key)-6:]
}
