package buffer

import (
	"path"
	"testing"

	"github.com/jobala/minidb/storage/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameIndex(t *testing.T) {
	t.Run("looks up inserted entries", func(t *testing.T) {
		idx := newFrameIndex(4)
		file := createDbFile(t, "test.db")

		idx.insert(file, 1, 3)

		frameNo, ok := idx.lookup(file, 1)
		assert.True(t, ok)
		assert.Equal(t, 3, frameNo)
		assert.Equal(t, 1, idx.size())
	})

	t.Run("misses are reported, not raised", func(t *testing.T) {
		idx := newFrameIndex(4)
		file := createDbFile(t, "test.db")

		_, ok := idx.lookup(file, 1)
		assert.False(t, ok)
		assert.False(t, idx.remove(file, 1))
	})

	t.Run("removed entries are gone", func(t *testing.T) {
		idx := newFrameIndex(4)
		file := createDbFile(t, "test.db")

		idx.insert(file, 1, 3)
		assert.True(t, idx.remove(file, 1))

		_, ok := idx.lookup(file, 1)
		assert.False(t, ok)
		assert.Equal(t, 0, idx.size())
	})

	t.Run("duplicate inserts are a programming error", func(t *testing.T) {
		idx := newFrameIndex(4)
		file := createDbFile(t, "test.db")

		idx.insert(file, 1, 3)
		assert.Panics(t, func() {
			idx.insert(file, 1, 5)
		})
	})

	t.Run("keys compare file handles by identity", func(t *testing.T) {
		idx := newFrameIndex(4)

		filename := path.Join(t.TempDir(), "test.db")
		first, err := disk.Create(filename)
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = first.Close()
		})

		second, err := disk.Open(filename)
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = second.Close()
		})

		// Two handles to the same path are distinct index keys.
		idx.insert(first, 1, 0)
		idx.insert(second, 1, 1)

		frameNo, ok := idx.lookup(first, 1)
		assert.True(t, ok)
		assert.Equal(t, 0, frameNo)

		frameNo, ok = idx.lookup(second, 1)
		assert.True(t, ok)
		assert.Equal(t, 1, frameNo)
	})
}
