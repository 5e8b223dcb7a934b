package genai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyPoolNext(t *testing.T) {
	pool := NewKeyPool([]string{"alpha", "beta", "gamma"})
	require.Equal(t, 3, pool.Size())

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		key, err := pool.Next()
		require.NoError(t, err)
		assert.Contains(t, []string{"alpha", "beta", "gamma"}, key)
		seen[key] = true
	}
	// 100 random draws from three keys should touch all of them.
	assert.Len(t, seen, 3)
}

func TestKeyPoolFiltersEmptyKeys(t *testing.T) {
	pool := NewKeyPool([]string{"", "  ", "real-key", ""})
	assert.Equal(t, 1, pool.Size())

	key, err := pool.Next()
	require.NoError(t, err)
	assert.Equal(t, "real-key", key)
}

func TestKeyPoolEmpty(t *testing.T) {
	pool := NewKeyPool(nil)
	assert.Equal(t, 0, pool.Size())

	_, err := pool.Next()
	assert.ErrorIs(t, err, ErrNoAPIKeys)
}

func TestKeySuffix(t *testing.T) {
	assert.Equal(t, "345678", keySuffix("AIza12345678"))
	assert.Equal(t, "short", keySuffix("short"))
}
