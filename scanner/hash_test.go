package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashers(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	c := filepath.Join(dir, "c")
	require.NoError(t, os.WriteFile(a, []byte("same content"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("same content"), 0o644))
	require.NoError(t, os.WriteFile(c, []byte("other stuff!"), 0o644))

	for name, size := range map[string]int{HashSHA256: 32, HashXXHash: 8} {
		t.Run(name, func(t *testing.T) {
			h, err := NewHasher(name)
			require.NoError(t, err)

			da, err := h.Sum(a)
			require.NoError(t, err)
			db, err := h.Sum(b)
			require.NoError(t, err)
			dc, err := h.Sum(c)
			require.NoError(t, err)

			assert.Len(t, string(da), size)
			assert.Equal(t, da, db)
			assert.NotEqual(t, da, dc)
		})
	}
}

func TestHasherMissingFile(t *testing.T) {
	h, err := NewHasher("")
	require.NoError(t, err)

	_, err = h.Sum(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewHasherUnknown(t *testing.T) {
	_, err := NewHasher("md5")
	assert.Error(t, err)
}
