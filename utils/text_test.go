package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateAtWordBoundary(t *testing.T) {
	t.Run("returns text unchanged when it fits", func(t *testing.T) {
		assert.Equal(t, "short text", TruncateAtWordBoundary("short text", 20))
		assert.Equal(t, "exactly ten", TruncateAtWordBoundary("exactly ten", 11))
	})

	t.Run("cuts at the last word boundary", func(t *testing.T) {
		got := TruncateAtWordBoundary("the quick brown fox jumps", 15)
		assert.Equal(t, "the quick"+Ellipsis, got)
	})

	t.Run("drops trailing whitespace before the marker", func(t *testing.T) {
		got := TruncateAtWordBoundary("the quick brown fox", 10)
		assert.Equal(t, "the quick"+Ellipsis, got)
	})

	t.Run("hard cuts when no whitespace exists", func(t *testing.T) {
		got := TruncateAtWordBoundary("supercalifragilistic", 8)
		assert.Equal(t, "supercal"+Ellipsis, got)
	})

	t.Run("zero or negative budget means no truncation", func(t *testing.T) {
		long := "a very long description that would otherwise be cut"
		assert.Equal(t, long, TruncateAtWordBoundary(long, 0))
		assert.Equal(t, long, TruncateAtWordBoundary(long, -5))
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		got := TruncateAtWordBoundary("áéí óú àè ìò", 9)
		assert.Equal(t, "áéí óú"+Ellipsis, got)
	})

	t.Run("idempotent", func(t *testing.T) {
		once := TruncateAtWordBoundary("the quick brown fox jumps over the lazy dog", 20)
		twice := TruncateAtWordBoundary(once, 20)
		assert.Equal(t, once, twice)

		larger := TruncateAtWordBoundary(once, 30)
		assert.Equal(t, once, larger)
	})
}

func TestComposeMetaLine(t *testing.T) {
	t.Run("joins non-empty parts", func(t *testing.T) {
		got := ComposeMetaLine("Hardcover", "320 pp", "03/2025")
		assert.Equal(t, "Hardcover • 320 pp • 03/2025", got)
	})

	t.Run("skips empty parts with no dangling separators", func(t *testing.T) {
		got := ComposeMetaLine("", "Paperback", "", "  ", "150 pp", "")
		assert.Equal(t, "Paperback • 150 pp", got)
	})

	t.Run("all empty yields empty string", func(t *testing.T) {
		assert.Equal(t, "", ComposeMetaLine("", "", ""))
		assert.Equal(t, "", ComposeMetaLine())
	})
}
