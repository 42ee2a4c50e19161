package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatReleaseDateAt(t *testing.T) {
	// Fixed clock: June 2025.
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	t.Run("normalizes single-digit month", func(t *testing.T) {
		formatted, badge := FormatReleaseDateAt("3/2025", now)
		assert.Equal(t, "03/2025", formatted)
		assert.Equal(t, BadgeCurrent, badge)
	})

	t.Run("month before now is current", func(t *testing.T) {
		formatted, badge := FormatReleaseDateAt("05/2025", now)
		assert.Equal(t, "05/2025", formatted)
		assert.Equal(t, BadgeCurrent, badge)
	})

	t.Run("current month is future", func(t *testing.T) {
		formatted, badge := FormatReleaseDateAt("06/2025", now)
		assert.Equal(t, "06/2025", formatted)
		assert.Equal(t, BadgeFuture, badge)
	})

	t.Run("later month is future", func(t *testing.T) {
		_, badge := FormatReleaseDateAt("12/2026", now)
		assert.Equal(t, BadgeFuture, badge)
	})

	t.Run("earlier year is current", func(t *testing.T) {
		_, badge := FormatReleaseDateAt("12/2024", now)
		assert.Equal(t, BadgeCurrent, badge)
	})

	t.Run("parses fallback layouts", func(t *testing.T) {
		formatted, badge := FormatReleaseDateAt("2024-11-03", now)
		assert.Equal(t, "11/2024", formatted)
		assert.Equal(t, BadgeCurrent, badge)

		formatted, badge = FormatReleaseDateAt("January 2026", now)
		assert.Equal(t, "01/2026", formatted)
		assert.Equal(t, BadgeFuture, badge)
	})

	t.Run("month out of range passes through raw", func(t *testing.T) {
		formatted, badge := FormatReleaseDateAt("13/2025", now)
		assert.Equal(t, "13/2025", formatted)
		assert.Equal(t, "", badge)
	})

	t.Run("unparseable passes through raw with no badge", func(t *testing.T) {
		formatted, badge := FormatReleaseDateAt("coming soon", now)
		assert.Equal(t, "coming soon", formatted)
		assert.Equal(t, "", badge)
	})

	t.Run("empty input stays empty", func(t *testing.T) {
		formatted, badge := FormatReleaseDateAt("", now)
		assert.Equal(t, "", formatted)
		assert.Equal(t, "", badge)
	})
}
