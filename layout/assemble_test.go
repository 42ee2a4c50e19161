package layout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogue-press/models"
)

type stubBarcode struct{}

func (stubBarcode) Markup(b models.Book, t CodeType) string {
	return fmt.Sprintf(`<img class="code" data-type="%s" data-value="%s">`, t, b.Handle)
}

func (stubBarcode) Asset(b models.Book, t CodeType) *ResolvedAsset {
	return nil
}

func testDeps(reg *Registry) AssembleDeps {
	return AssembleDeps{
		Registry: reg,
		Banner:   Banner{Text: "Fall 2026 Frontlist", Color: "#1d3557", Website: "harborpress.example.com"},
		URLs:     testURLs(),
	}
}

func TestAssemblePadsGrids(t *testing.T) {
	reg := DefaultRegistry()

	t.Run("short grid page gets empty-slot markers", func(t *testing.T) {
		pages, err := Paginate(makeBooks(3), Uniform(Shape4Up), reg)
		require.NoError(t, err)
		require.Len(t, pages, 1)

		rendered, err := Assemble(pages[0], 1, 1, testDeps(reg))
		require.NoError(t, err)
		require.Len(t, rendered.Slots, 4)
		assert.True(t, rendered.Slots[0].Occupied)
		assert.True(t, rendered.Slots[2].Occupied)
		assert.False(t, rendered.Slots[3].Occupied)
	})

	t.Run("full grid page gets no markers", func(t *testing.T) {
		pages, err := Paginate(makeBooks(4), Uniform(Shape4Up), reg)
		require.NoError(t, err)

		rendered, err := Assemble(pages[0], 1, 1, testDeps(reg))
		require.NoError(t, err)
		require.Len(t, rendered.Slots, 4)
		for _, s := range rendered.Slots {
			assert.True(t, s.Occupied)
		}
	})

	t.Run("list pages never pad", func(t *testing.T) {
		pages, err := Paginate(makeBooks(3), Uniform(ShapeList), reg)
		require.NoError(t, err)

		rendered, err := Assemble(pages[0], 1, 1, testDeps(reg))
		require.NoError(t, err)
		assert.Len(t, rendered.Slots, 3)
	})

	t.Run("1-up pages never pad", func(t *testing.T) {
		pages, err := Paginate(makeBooks(1), Uniform(Shape1Up), reg)
		require.NoError(t, err)

		rendered, err := Assemble(pages[0], 1, 1, testDeps(reg))
		require.NoError(t, err)
		assert.Len(t, rendered.Slots, 1)
	})
}

func TestAssembleBannerAndNumbering(t *testing.T) {
	reg := DefaultRegistry()
	pages, err := Paginate(makeBooks(10), Uniform(Shape4Up), reg)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	rendered, err := AssembleAll(pages, testDeps(reg))
	require.NoError(t, err)
	require.Len(t, rendered, 3)

	for i, rp := range rendered {
		assert.Equal(t, "Fall 2026 Frontlist", rp.Banner.Text)
		assert.Equal(t, i+1, rp.Number)
		assert.Equal(t, 3, rp.Total)
		assert.NotEmpty(t, rp.Style)
	}
	assert.True(t, rendered[0].First)
	assert.True(t, rendered[2].Last)
}

func TestAssembleCodes(t *testing.T) {
	reg := DefaultRegistry()
	pages, err := Paginate(makeBooks(3), Uniform(Shape3Up), reg)
	require.NoError(t, err)

	deps := testDeps(reg)
	deps.Barcode = stubBarcode{}
	deps.Codes = CodeAssignment{
		Default:   CodeEAN13,
		Overrides: map[int]CodeType{1: CodeQR, 2: CodeNone},
	}

	rendered, err := Assemble(pages[0], 1, 1, deps)
	require.NoError(t, err)
	require.Len(t, rendered.Slots, 3)

	assert.Contains(t, rendered.Slots[0].Projection.Print.HTML, `data-type="EAN-13"`)
	assert.Contains(t, rendered.Slots[1].Projection.Print.HTML, `data-type="QR Code"`)
	assert.NotContains(t, rendered.Slots[2].Projection.Print.HTML, "data-type")
}

func TestAssembleMissingAssets(t *testing.T) {
	reg := DefaultRegistry()
	pages, err := Paginate(makeBooks(2), Uniform(Shape2Up), reg)
	require.NoError(t, err)

	// No asset map at all: document blocks take the missing-image path.
	rendered, err := Assemble(pages[0], 1, 1, testDeps(reg))
	require.NoError(t, err)

	for _, slot := range rendered.Slots {
		var hasImage bool
		var hasFallback bool
		for _, blk := range slot.Projection.Document {
			if blk.Kind == BlockImage {
				hasImage = true
			}
			if blk.Kind == BlockText && blk.Text == "Image not available" {
				hasFallback = true
			}
		}
		assert.False(t, hasImage)
		assert.True(t, hasFallback)
	}
}

func TestAssembleUnknownShape(t *testing.T) {
	reg := DefaultRegistry()
	pages, err := Paginate(makeBooks(2), Uniform(Shape2Up), reg)
	require.NoError(t, err)

	empty := NewRegistry()
	_, err = Assemble(pages[0], 1, 1, testDeps(empty))
	var serr *UnknownShapeError
	require.ErrorAs(t, err, &serr)
}
