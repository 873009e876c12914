package collectionutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistinctKeepsFirstAppearanceOrder(t *testing.T) {
	got := Distinct([]string{"go", "web", "go", "api", "web"})
	assert.Equal(t, []string{"go", "web", "api"}, got)
}

func TestAssociateAndGetOrDefault(t *testing.T) {
	m := Associate([]string{"a", "bb"}, func(s string) (string, int) { return s, len(s) })
	assert.Equal(t, 2, GetOrDefault(m, "bb", 0))
	assert.Equal(t, -1, GetOrDefault(m, "ccc", -1))
}

func TestSafeMap(t *testing.T) {
	m := New[string, string]()
	m.Store("k", "v")
	v, ok := m.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	m.Delete("k")
	_, ok = m.Get("k")
	assert.False(t, ok)
}
