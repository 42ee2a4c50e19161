package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogue-press/models"
	"catalogue-press/utils"
)

func fullBook() models.Book {
	return models.Book{
		Title:          "The Sea Wall",
		Subtitle:       "A Coastal History",
		Author:         "M. Deguy",
		AuthorCountry:  "France",
		AuthorBio:      strings.Repeat("An author of considerable range and patience. ", 20),
		Description:    strings.Repeat("A sweeping account of tides, stone and the people between them. ", 20),
		Price:          "34.50",
		Handle:         "the-sea-wall",
		ImageURL:       "https://cdn.example.com/sea-wall.jpg",
		Binding:        "Hardcover",
		PageCount:      "320 pp",
		Dimensions:     "6 x 9 in",
		ReleaseDate:    "03/2024",
		Imprint:        "Harbor Press",
		Weight:         "1.2 lb",
		Illustrations:  "24 b/w plates",
		DiscountDetail: "Seasonal (10% off)",
		SKU:            "9781234567890",
	}
}

func testURLs() URLBuilder {
	return URLBuilder{LinkBase: "https://shop.example.com/products"}
}

// The three projections must agree on every formatting decision: same
// truncated text, same date label, same composed meta line.
func TestProjectionConsistency(t *testing.T) {
	reg := DefaultRegistry()
	book := fullBook()
	urls := testURLs()

	for _, shape := range Shapes {
		t.Run(string(shape), func(t *testing.T) {
			h, err := reg.Get(shape)
			require.NoError(t, err)

			preview := h.ProjectPreview(book, 0, urls)
			frag := h.ProjectPrint(book, 0, urls, "")
			doc := h.ProjectDocument(book, 0, ResolvedAssets{Cover: ResolvedAsset{Missing: true}}, urls, nil)

			previewHTML := preview.HTML()
			docTexts := make([]string, 0, len(doc))
			for _, blk := range doc {
				docTexts = append(docTexts, blk.Text)
			}
			joinedDoc := strings.Join(docTexts, "\n")

			// Title appears everywhere.
			assert.Contains(t, previewHTML, book.Title)
			assert.Contains(t, frag.HTML, book.Title)
			assert.Contains(t, joinedDoc, book.Title)

			// The truncated description is identical across back-ends.
			if budget := h.TruncationBudget(FieldDescription); budget > 0 {
				want := utils.TruncateAtWordBoundary(book.Description, budget)
				node := preview.Find("card__description")
				if node == nil {
					node = preview.Find("row__description")
				}
				require.NotNil(t, node, "description node missing")
				assert.Equal(t, want, node.Text)
				assert.Contains(t, joinedDoc, want)
				assert.True(t, strings.HasSuffix(want, utils.Ellipsis))
			}

			// Normalized date label agrees where the shape shows dates.
			if strings.Contains(previewHTML, "03/2024") {
				assert.Contains(t, frag.HTML, "03/2024")
			}

			// Price formatting agrees.
			if strings.Contains(previewHTML, "$34.50") {
				assert.Contains(t, frag.HTML, "$34.50")
				assert.Contains(t, joinedDoc, "$34.50")
			}
		})
	}
}

func TestCardOmitsMissingFields(t *testing.T) {
	reg := DefaultRegistry()
	h, err := reg.Get(Shape2Up)
	require.NoError(t, err)

	book := models.Book{Title: "Bare Minimum", Handle: "bare-minimum"}
	urls := testURLs()

	preview := h.ProjectPreview(book, 0, urls)
	assert.Nil(t, preview.Find("card__subtitle"))
	assert.Nil(t, preview.Find("card__author"))
	assert.Nil(t, preview.Find("card__description"))
	assert.Nil(t, preview.Find("card__meta"))
	assert.Nil(t, preview.Find("card__price"))

	// No empty placeholder markup in the print fragment either.
	frag := h.ProjectPrint(book, 0, urls, "")
	assert.NotContains(t, frag.HTML, "card__subtitle")
	assert.NotContains(t, frag.HTML, "card__meta")
	assert.NotContains(t, frag.HTML, `></p>`)

	// Cover falls back to the placeholder path.
	img := preview.Find("card__image")
	require.NotNil(t, img)
	assert.Equal(t, PlaceholderImageURL, img.Attrs["src"])
}

func TestCardDensityTiers(t *testing.T) {
	reg := DefaultRegistry()
	book := fullBook()
	urls := testURLs()

	t.Run("1-up keeps the full description", func(t *testing.T) {
		h, _ := reg.Get(Shape1Up)
		preview := h.ProjectPreview(book, 0, urls)
		desc := preview.Find("card__description")
		require.NotNil(t, desc)
		assert.Equal(t, book.Description, desc.Text)

		bio := preview.Find("card__bio")
		require.NotNil(t, bio)
		assert.True(t, strings.HasSuffix(bio.Text, utils.Ellipsis))
	})

	t.Run("12-up drops description and meta entirely", func(t *testing.T) {
		h, _ := reg.Get(Shape12Up)
		preview := h.ProjectPreview(book, 0, urls)
		assert.Nil(t, preview.Find("card__description"))
		assert.Nil(t, preview.Find("card__meta"))
		assert.NotNil(t, preview.Find("card__title"))
		assert.NotNil(t, preview.Find("card__price"))
	})

	t.Run("full meta line carries more parts than short", func(t *testing.T) {
		full, _ := reg.Get(Shape2Up)
		short, _ := reg.Get(Shape4Up)

		fullMeta := full.ProjectPreview(book, 0, urls).Find("card__meta")
		shortMeta := short.ProjectPreview(book, 0, urls).Find("card__meta")
		require.NotNil(t, fullMeta)
		require.NotNil(t, shortMeta)

		fullParts := strings.Split(fullMeta.Text, utils.MetaSeparator)
		shortParts := strings.Split(shortMeta.Text, utils.MetaSeparator)
		assert.Greater(t, len(fullParts), len(shortParts))
		assert.Contains(t, fullMeta.Text, book.Imprint)
		assert.NotContains(t, shortMeta.Text, book.Imprint)
	})
}

func TestInternalsStrip(t *testing.T) {
	reg := DefaultRegistry()
	h, err := reg.Get(Shape2Int)
	require.NoError(t, err)
	urls := testURLs()

	t.Run("strip rendered when internals exist", func(t *testing.T) {
		book := fullBook()
		book.AdditionalImages = []string{
			"https://cdn.example.com/sea-wall_1.jpg",
			"https://cdn.example.com/sea-wall_2.jpg",
		}

		preview := h.ProjectPreview(book, 0, urls)
		strip := preview.Find("card__internals")
		require.NotNil(t, strip)
		assert.Len(t, strip.Children, 2)

		frag := h.ProjectPrint(book, 0, urls, "")
		assert.Contains(t, frag.HTML, "card__internals")
		assert.True(t, strings.HasSuffix(frag.HTML, "</article>"))
	})

	t.Run("strip omitted without internals", func(t *testing.T) {
		book := fullBook()
		book.AdditionalImages = nil

		preview := h.ProjectPreview(book, 0, urls)
		assert.Nil(t, preview.Find("card__internals"))

		frag := h.ProjectPrint(book, 0, urls, "")
		assert.NotContains(t, frag.HTML, "card__internals")
	})

	t.Run("document blocks pick landscape sizing per asset", func(t *testing.T) {
		book := fullBook()
		book.AdditionalImages = []string{"a.jpg", "b.jpg"}

		assets := ResolvedAssets{
			Cover: ResolvedAsset{Missing: true},
			Internals: []ResolvedAsset{
				{Data: []byte{1}, Format: "jpeg", Width: 600, Height: 900},
				{Data: []byte{1}, Format: "jpeg", Width: 900, Height: 600},
			},
		}
		blocks := h.ProjectDocument(book, 0, assets, urls, nil)

		var images []DocumentBlock
		for _, blk := range blocks {
			if blk.Kind == BlockImage {
				images = append(images, blk)
			}
		}
		require.Len(t, images, 2)
		assert.Greater(t, images[0].HeightMM, images[0].WidthMM, "portrait internal")
		assert.Greater(t, images[1].WidthMM, images[1].HeightMM, "landscape internal")
	})
}
