package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/jsonclass/pkg/jsonclass"
)

func TestResultCache_Eviction(t *testing.T) {
	c, err := NewResultCache(2)
	require.NoError(t, err)

	c.Put("a", &jsonclass.Result{Source: []byte("a")})
	c.Put("b", &jsonclass.Result{Source: []byte("b")})
	_, ok := c.Get("a") // a becomes most recent
	require.True(t, ok)
	c.Put("c", &jsonclass.Result{Source: []byte("c")})

	assert.Equal(t, 2, c.Len())
	_, ok = c.Get("b")
	assert.False(t, ok)
	res, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", string(res.Source))
}

func TestNewResultCache_InvalidSize(t *testing.T) {
	_, err := NewResultCache(0)
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	assert.Equal(t, Key("a", "b"), Key("a", "b"))
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
	assert.Len(t, Key(), 64)
}
