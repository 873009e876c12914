package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStores(t *testing.T) {
	stores := map[string]TokenStore{
		"memory": NewMemoryTokenStore(),
		"file":   &FileTokenStore{Path: filepath.Join(t.TempDir(), "nested", TokenKey)},
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			_, found, err := store.Get()
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, store.Save("abc"))
			token, found, err := store.Get()
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "abc", token)

			require.NoError(t, store.Destroy())
			require.NoError(t, store.Destroy(), "destroying twice is fine")
			_, found, err = store.Get()
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestFileTokenStorePermissions(t *testing.T) {
	store := &FileTokenStore{Path: filepath.Join(t.TempDir(), TokenKey)}
	require.NoError(t, store.Save("abc"))

	info, err := os.Stat(store.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
