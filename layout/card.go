package layout

import (
	"fmt"
	"html"
	"strings"

	"catalogue-press/models"
	"catalogue-press/utils"
)

// Meta-line density levels for card shapes.
const (
	metaNone = iota
	metaShort
	metaFull
)

// cardSpec declares everything shape-specific about a card layout: the page
// capacity, grid columns, the sizing table, the truncation budgets, and which
// optional lines the density leaves room for. One spec per shape, consumed by
// all three projections.
type cardSpec struct {
	shape    Shape
	capacity int
	columns  int
	sizing   Sizing
	budgets  map[Field]int

	subtitle    bool
	bio         bool
	description bool
	meta        int
}

var cardSpecs = map[Shape]cardSpec{
	Shape1Up: {
		shape: Shape1Up, capacity: 1, columns: 1,
		sizing: Sizing{
			TitlePt: 22, SubtitlePt: 16, AuthorPt: 14, DescriptionPt: 11,
			MetaPt: 9, PricePt: 14, CodePt: 8,
			ImageW: 300, ImageH: 450,
		},
		budgets:  map[Field]int{FieldDescription: 0, FieldAuthorBio: 600},
		subtitle: true, bio: true, description: true, meta: metaFull,
	},
	Shape2Up: {
		shape: Shape2Up, capacity: 2, columns: 2,
		sizing: Sizing{
			TitlePt: 16, SubtitlePt: 12, AuthorPt: 11, DescriptionPt: 9.5,
			MetaPt: 8, PricePt: 12, CodePt: 7,
			ImageW: 200, ImageH: 300,
		},
		budgets:  map[Field]int{FieldDescription: 500, FieldAuthorBio: 280},
		subtitle: true, bio: true, description: true, meta: metaFull,
	},
	Shape3Up: {
		shape: Shape3Up, capacity: 3, columns: 3,
		sizing: Sizing{
			TitlePt: 13, SubtitlePt: 10, AuthorPt: 9.5, DescriptionPt: 8.5,
			MetaPt: 7, PricePt: 10, CodePt: 6.5,
			ImageW: 150, ImageH: 225,
		},
		budgets:  map[Field]int{FieldDescription: 280},
		subtitle: true, description: true, meta: metaShort,
	},
	Shape4Up: {
		shape: Shape4Up, capacity: 4, columns: 2,
		sizing: Sizing{
			TitlePt: 12, SubtitlePt: 9.5, AuthorPt: 9, DescriptionPt: 8,
			MetaPt: 7, PricePt: 10, CodePt: 6.5,
			ImageW: 130, ImageH: 195,
		},
		budgets:  map[Field]int{FieldDescription: 200},
		subtitle: true, description: true, meta: metaShort,
	},
	Shape8Up: {
		shape: Shape8Up, capacity: 8, columns: 4,
		sizing: Sizing{
			TitlePt: 9, AuthorPt: 7.5, DescriptionPt: 6.5,
			MetaPt: 6, PricePt: 8, CodePt: 5.5,
			ImageW: 80, ImageH: 120,
		},
		budgets:     map[Field]int{FieldDescription: 90},
		description: true, meta: metaNone,
	},
	Shape9Up: {
		shape: Shape9Up, capacity: 9, columns: 3,
		sizing: Sizing{
			TitlePt: 9, AuthorPt: 7.5, DescriptionPt: 6.5,
			MetaPt: 6, PricePt: 8, CodePt: 5.5,
			ImageW: 90, ImageH: 135,
		},
		budgets:     map[Field]int{FieldDescription: 80},
		description: true, meta: metaNone,
	},
	Shape12Up: {
		shape: Shape12Up, capacity: 12, columns: 4,
		sizing: Sizing{
			TitlePt: 8, AuthorPt: 7, PricePt: 7.5, MetaPt: 6, CodePt: 5,
			ImageW: 70, ImageH: 105,
		},
		budgets: map[Field]int{},
		meta:    metaNone,
	},
	Shape2Int: {
		shape: Shape2Int, capacity: 2, columns: 2,
		sizing: Sizing{
			TitlePt: 16, SubtitlePt: 12, AuthorPt: 11, DescriptionPt: 9.5,
			MetaPt: 8, PricePt: 12, CodePt: 7,
			ImageW: 200, ImageH: 300,
			InternalW: 90, InternalH: 135,
			InternalLandscapeW: 140, InternalLandscapeH: 95,
		},
		budgets:  map[Field]int{FieldDescription: 400},
		subtitle: true, description: true, meta: metaShort,
	},
}

// cardHandler implements Handler for every card-grid shape.
type cardHandler struct {
	spec cardSpec
}

func newCardHandler(shape Shape) *cardHandler {
	spec, ok := cardSpecs[shape]
	if !ok {
		panic(fmt.Sprintf("layout: no card spec for shape %q", shape))
	}
	return &cardHandler{spec: spec}
}

func (h *cardHandler) Shape() Shape   { return h.spec.shape }
func (h *cardHandler) Capacity() int  { return h.spec.capacity }
func (h *cardHandler) Sizing() Sizing { return h.spec.sizing }

func (h *cardHandler) TruncationBudget(f Field) int {
	return h.spec.budgets[f]
}

// decisions holds the formatting choices for one (item, shape) pair. They are
// computed from the shape tables alone, so every projection that calls decide
// sees the identical result. This is what keeps the three back-ends from
// drifting.
type decisions struct {
	title       string
	subtitle    string
	author      string
	country     string
	description string
	authorBio   string
	dateLabel   string
	badge       string
	metaLine    string
	price       string
	productURL  string
	coverURL    string
}

func (h *cardHandler) decide(b models.Book, urls URLBuilder) decisions {
	d := decisions{
		title:      b.Title,
		country:    b.AuthorCountry,
		productURL: urls.ProductURL(b.Handle),
		coverURL:   urls.CoverURL(b),
		price:      utils.FormatPrice(b.Price),
	}
	if h.spec.subtitle {
		d.subtitle = b.Subtitle
	}
	d.author = b.Author
	if h.spec.description {
		d.description = utils.TruncateAtWordBoundary(b.Description, h.spec.budgets[FieldDescription])
	}
	if h.spec.bio {
		d.authorBio = utils.TruncateAtWordBoundary(b.AuthorBio, h.spec.budgets[FieldAuthorBio])
	}
	if b.ReleaseDate != "" {
		d.dateLabel, d.badge = utils.FormatReleaseDate(b.ReleaseDate)
	}
	d.metaLine = h.metaLine(b, d.dateLabel)
	return d
}

func (h *cardHandler) metaLine(b models.Book, dateLabel string) string {
	switch h.spec.meta {
	case metaFull:
		return utils.ComposeMetaLine(
			b.Binding, b.PageCount, b.Dimensions, dateLabel,
			b.Imprint, b.Weight, b.Illustrations, b.DiscountDetail, b.SKU,
		)
	case metaShort:
		return utils.ComposeMetaLine(b.Binding, b.PageCount, dateLabel, b.DiscountDetail)
	default:
		return ""
	}
}

func (h *cardHandler) ProjectPreview(b models.Book, slot int, urls URLBuilder) *PreviewNode {
	d := h.decide(b, urls)
	cls := h.spec.shape.CSSClass()
	s := h.spec.sizing

	card := node("article", "card card--"+cls).attr("data-slot", fmt.Sprintf("%d", slot))
	link := node("a", "card__link").attr("href", d.productURL)
	img := node("img", "card__image").
		attr("src", d.coverURL).
		attr("alt", d.title).
		attr("width", fmt.Sprintf("%d", s.ImageW)).
		attr("height", fmt.Sprintf("%d", s.ImageH))
	card.add(link.add(img))

	card.add(textNode("h3", "card__title", d.title))
	if d.subtitle != "" {
		card.add(textNode("p", "card__subtitle", d.subtitle))
	}
	if d.author != "" {
		author := textNode("p", "card__author", d.author)
		if d.country != "" {
			author.add(textNode("span", "card__country", d.country))
		}
		card.add(author)
	}
	if d.dateLabel != "" {
		date := textNode("span", "card__date", d.dateLabel)
		if d.badge != "" {
			date.Class = "card__date card__date--" + d.badge
		}
		card.add(date)
	}
	if d.description != "" {
		card.add(textNode("p", "card__description", d.description))
	}
	if d.authorBio != "" {
		card.add(textNode("p", "card__bio", d.authorBio))
	}
	if d.metaLine != "" {
		card.add(textNode("p", "card__meta", d.metaLine))
	}
	if d.price != "" {
		card.add(textNode("span", "card__price", d.price))
	}
	return card
}

func (h *cardHandler) ProjectPrint(b models.Book, slot int, urls URLBuilder, auxMarkup string) PrintFragment {
	d := h.decide(b, urls)
	cls := h.spec.shape.CSSClass()
	s := h.spec.sizing

	var w strings.Builder
	fmt.Fprintf(&w, `<article class="card card--%s" data-slot="%d">`, cls, slot)
	fmt.Fprintf(&w, `<a class="card__link" href="%s">`, html.EscapeString(d.productURL))
	fmt.Fprintf(&w, `<img class="card__image" src="%s" alt="%s" width="%d" height="%d"></a>`,
		html.EscapeString(d.coverURL), html.EscapeString(d.title), s.ImageW, s.ImageH)
	fmt.Fprintf(&w, `<h3 class="card__title">%s</h3>`, html.EscapeString(d.title))
	if d.subtitle != "" {
		fmt.Fprintf(&w, `<p class="card__subtitle">%s</p>`, html.EscapeString(d.subtitle))
	}
	if d.author != "" {
		fmt.Fprintf(&w, `<p class="card__author">%s`, html.EscapeString(d.author))
		if d.country != "" {
			fmt.Fprintf(&w, `<span class="card__country">%s</span>`, html.EscapeString(d.country))
		}
		w.WriteString(`</p>`)
	}
	if d.dateLabel != "" {
		dateCls := "card__date"
		if d.badge != "" {
			dateCls += " card__date--" + d.badge
		}
		fmt.Fprintf(&w, `<span class="%s">%s</span>`, dateCls, html.EscapeString(d.dateLabel))
	}
	if d.description != "" {
		fmt.Fprintf(&w, `<p class="card__description">%s</p>`, html.EscapeString(d.description))
	}
	if d.authorBio != "" {
		fmt.Fprintf(&w, `<p class="card__bio">%s</p>`, html.EscapeString(d.authorBio))
	}
	if d.metaLine != "" {
		fmt.Fprintf(&w, `<p class="card__meta">%s</p>`, html.EscapeString(d.metaLine))
	}
	if d.price != "" {
		fmt.Fprintf(&w, `<span class="card__price">%s</span>`, html.EscapeString(d.price))
	}
	if auxMarkup != "" {
		// Opaque pass-through; placed, never interpreted.
		fmt.Fprintf(&w, `<div class="card__code">%s</div>`, auxMarkup)
	}
	w.WriteString(`</article>`)
	return PrintFragment{HTML: w.String()}
}

func (h *cardHandler) ProjectDocument(b models.Book, slot int, assets ResolvedAssets, urls URLBuilder, auxAsset *ResolvedAsset) []DocumentBlock {
	d := h.decide(b, urls)
	s := h.spec.sizing

	blocks := make([]DocumentBlock, 0, 10)
	blocks = append(blocks, imageBlock(assets.Cover, s.ImageW, s.ImageH, s.DescriptionPt))
	blocks = append(blocks, DocumentBlock{Kind: BlockHeading, Text: d.title, SizePt: s.TitlePt, Bold: true})
	if d.subtitle != "" {
		blocks = append(blocks, DocumentBlock{Kind: BlockText, Text: d.subtitle, SizePt: s.SubtitlePt, Italic: true})
	}
	if d.author != "" {
		author := d.author
		if d.country != "" {
			author += " (" + d.country + ")"
		}
		blocks = append(blocks, DocumentBlock{Kind: BlockText, Text: author, SizePt: s.AuthorPt})
	}
	if d.dateLabel != "" {
		blocks = append(blocks, DocumentBlock{Kind: BlockText, Text: d.dateLabel, SizePt: s.MetaPt})
	}
	if d.description != "" {
		blocks = append(blocks, DocumentBlock{Kind: BlockText, Text: d.description, SizePt: s.DescriptionPt})
	}
	if d.authorBio != "" {
		blocks = append(blocks, DocumentBlock{Kind: BlockText, Text: d.authorBio, SizePt: s.DescriptionPt, Italic: true})
	}
	if d.metaLine != "" {
		blocks = append(blocks, DocumentBlock{Kind: BlockText, Text: d.metaLine, SizePt: s.MetaPt})
	}
	if d.price != "" {
		blocks = append(blocks, DocumentBlock{Kind: BlockText, Text: d.price, SizePt: s.PricePt, Bold: true})
	}
	if auxAsset != nil {
		blocks = append(blocks, imageBlock(*auxAsset, s.ImageW/2, s.ImageH/6, s.CodePt))
	}
	blocks = append(blocks, DocumentBlock{Kind: BlockSpacer, SizePt: s.MetaPt})
	return blocks
}

// imageBlock maps a resolved asset into a flowed image block, substituting
// the "Image not available" text on the missing-asset path.
func imageBlock(a ResolvedAsset, wPx, hPx int, fallbackPt float64) DocumentBlock {
	if a.Missing || len(a.Data) == 0 {
		return DocumentBlock{Kind: BlockText, Text: "Image not available", SizePt: fallbackPt, Italic: true}
	}
	asset := a
	return DocumentBlock{
		Kind:     BlockImage,
		Asset:    &asset,
		WidthMM:  pxToMM(wPx),
		HeightMM: pxToMM(hPx),
	}
}

func (h *cardHandler) SharedStyle() string {
	return cardStyle(h.spec.shape, h.spec.columns, h.spec.sizing)
}

// cardStyle derives the shape's style block from the same sizing table the
// projections read, so a size can never exist in CSS alone.
func cardStyle(shape Shape, columns int, s Sizing) string {
	cls := shape.CSSClass()
	var b strings.Builder
	fmt.Fprintf(&b, ".grid--%s{display:grid;grid-template-columns:repeat(%d,1fr);gap:12px;}\n", cls, columns)
	fmt.Fprintf(&b, ".card--%s .card__image{width:%dpx;height:%dpx;object-fit:contain;}\n", cls, s.ImageW, s.ImageH)
	fmt.Fprintf(&b, ".card--%s .card__title{font-size:%.1fpt;}\n", cls, s.TitlePt)
	if s.SubtitlePt > 0 {
		fmt.Fprintf(&b, ".card--%s .card__subtitle{font-size:%.1fpt;}\n", cls, s.SubtitlePt)
	}
	fmt.Fprintf(&b, ".card--%s .card__author{font-size:%.1fpt;}\n", cls, s.AuthorPt)
	if s.DescriptionPt > 0 {
		fmt.Fprintf(&b, ".card--%s .card__description,.card--%s .card__bio{font-size:%.1fpt;}\n", cls, cls, s.DescriptionPt)
	}
	if s.MetaPt > 0 {
		fmt.Fprintf(&b, ".card--%s .card__meta,.card--%s .card__date{font-size:%.1fpt;}\n", cls, cls, s.MetaPt)
	}
	fmt.Fprintf(&b, ".card--%s .card__price{font-size:%.1fpt;font-weight:bold;}\n", cls, s.PricePt)
	if s.InternalW > 0 {
		fmt.Fprintf(&b, ".card--%s .card__internal{width:%dpx;height:%dpx;object-fit:contain;}\n", cls, s.InternalW, s.InternalH)
		fmt.Fprintf(&b, ".card--%s .card__internal--landscape{width:%dpx;height:%dpx;}\n", cls, s.InternalLandscapeW, s.InternalLandscapeH)
	}
	return b.String()
}
