package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoverFilename(t *testing.T) {
	t.Run("primary cover", func(t *testing.T) {
		cf, err := ParseCoverFilename("the-sea-wall.jpg")
		require.NoError(t, err)
		assert.Equal(t, "the-sea-wall", cf.Handle)
		assert.Equal(t, 0, cf.Internal)
	})

	t.Run("internal image with index", func(t *testing.T) {
		cf, err := ParseCoverFilename("the-sea-wall_2.png")
		require.NoError(t, err)
		assert.Equal(t, "the-sea-wall", cf.Handle)
		assert.Equal(t, 2, cf.Internal)
	})

	t.Run("case and whitespace are normalized", func(t *testing.T) {
		cf, err := ParseCoverFilename("  My-Book.JPEG ")
		require.NoError(t, err)
		assert.Equal(t, "my-book", cf.Handle)
	})

	t.Run("rejects unknown extensions", func(t *testing.T) {
		_, err := ParseCoverFilename("cover.gif")
		assert.Error(t, err)
	})

	t.Run("rejects names without a handle", func(t *testing.T) {
		_, err := ParseCoverFilename(".jpg")
		assert.Error(t, err)

		_, err = ParseCoverFilename("_3.png")
		assert.Error(t, err)
	})
}
