package layout

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogue-press/models"
)

func makeBooks(n int) []models.Book {
	books := make([]models.Book, n)
	for i := range books {
		books[i] = models.Book{
			Title:  fmt.Sprintf("Book %d", i+1),
			Handle: fmt.Sprintf("book-%d", i+1),
		}
	}
	return books
}

func TestPaginateUniform(t *testing.T) {
	reg := DefaultRegistry()

	t.Run("chunks by capacity", func(t *testing.T) {
		pages, err := Paginate(makeBooks(10), Uniform(Shape4Up), reg)
		require.NoError(t, err)
		require.Len(t, pages, 3)
		assert.Len(t, pages[0].Slots, 4)
		assert.Len(t, pages[1].Slots, 4)
		assert.Len(t, pages[2].Slots, 2)
	})

	t.Run("exact multiple leaves no short page", func(t *testing.T) {
		pages, err := Paginate(makeBooks(18), Uniform(Shape9Up), reg)
		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Len(t, pages[0].Slots, 9)
		assert.Len(t, pages[1].Slots, 9)
	})

	t.Run("single item fills one page", func(t *testing.T) {
		pages, err := Paginate(makeBooks(1), Uniform(Shape1Up), reg)
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.True(t, pages[0].First)
		assert.True(t, pages[0].Last)
	})

	t.Run("first and last flags", func(t *testing.T) {
		pages, err := Paginate(makeBooks(25), Uniform(Shape12Up), reg)
		require.NoError(t, err)
		require.Len(t, pages, 3)
		assert.True(t, pages[0].First)
		assert.False(t, pages[0].Last)
		assert.False(t, pages[1].First)
		assert.False(t, pages[1].Last)
		assert.True(t, pages[2].Last)
	})

	t.Run("preserves item order and absolute indexes", func(t *testing.T) {
		books := makeBooks(7)
		pages, err := Paginate(books, Uniform(Shape3Up), reg)
		require.NoError(t, err)

		var flattened []models.Book
		next := 0
		for _, p := range pages {
			for _, s := range p.Slots {
				assert.Equal(t, next, s.Index)
				next++
				flattened = append(flattened, s.Book)
			}
		}
		assert.Equal(t, books, flattened)
	})
}

func TestPaginateMixed(t *testing.T) {
	reg := DefaultRegistry()

	t.Run("shape change forces a page break", func(t *testing.T) {
		shapes := []Shape{Shape1Up, Shape2Up, Shape2Up, Shape4Up, Shape4Up, Shape4Up, Shape4Up}
		pages, err := Paginate(makeBooks(7), Mixed(shapes), reg)
		require.NoError(t, err)
		require.Len(t, pages, 3)

		assert.Equal(t, Shape1Up, pages[0].Shape)
		assert.Len(t, pages[0].Slots, 1)
		assert.Equal(t, Shape2Up, pages[1].Shape)
		assert.Len(t, pages[1].Slots, 2)
		assert.Equal(t, Shape4Up, pages[2].Shape)
		assert.Len(t, pages[2].Slots, 4)
	})

	t.Run("no cross-shape backfilling", func(t *testing.T) {
		// The 2-up page closes short when the shape changes; the following
		// items never flow back into its spare slot.
		shapes := []Shape{Shape2Up, Shape3Up, Shape3Up}
		pages, err := Paginate(makeBooks(3), Mixed(shapes), reg)
		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Len(t, pages[0].Slots, 1)
		assert.Len(t, pages[1].Slots, 2)
	})

	t.Run("same shape still closes at capacity", func(t *testing.T) {
		shapes := []Shape{Shape2Up, Shape2Up, Shape2Up}
		pages, err := Paginate(makeBooks(3), Mixed(shapes), reg)
		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Len(t, pages[0].Slots, 2)
		assert.Len(t, pages[1].Slots, 1)
	})

	t.Run("length mismatch fails validation", func(t *testing.T) {
		_, err := Paginate(makeBooks(3), Mixed([]Shape{Shape2Up, Shape2Up}), reg)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestPaginateValidation(t *testing.T) {
	reg := DefaultRegistry()

	t.Run("empty item list", func(t *testing.T) {
		_, err := Paginate(nil, Uniform(Shape4Up), reg)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("empty handle", func(t *testing.T) {
		books := makeBooks(2)
		books[1].Handle = ""
		_, err := Paginate(books, Uniform(Shape4Up), reg)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("duplicate handle", func(t *testing.T) {
		books := makeBooks(3)
		books[2].Handle = books[0].Handle
		_, err := Paginate(books, Uniform(Shape4Up), reg)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Error(), "book-1")
	})

	t.Run("unregistered shape fails before any page", func(t *testing.T) {
		empty := NewRegistry()
		_, err := Paginate(makeBooks(2), Uniform(Shape4Up), empty)
		var serr *UnknownShapeError
		require.True(t, errors.As(err, &serr))
		assert.Equal(t, Shape4Up, serr.Shape)
	})
}
