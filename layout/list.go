package layout

import (
	"fmt"
	"html"
	"strings"

	"catalogue-press/models"
)

func init() {
	cardSpecs[ShapeList] = cardSpec{
		shape: ShapeList, capacity: 10, columns: 1,
		sizing: Sizing{
			TitlePt: 10, SubtitlePt: 8.5, AuthorPt: 8.5, DescriptionPt: 8,
			MetaPt: 7, PricePt: 9.5, CodePt: 6,
			ImageW: 60, ImageH: 90,
		},
		budgets:  map[Field]int{FieldDescription: 220},
		subtitle: true, description: true, meta: metaFull,
	}
	cardSpecs[ShapeCompactList] = cardSpec{
		shape: ShapeCompactList, capacity: 20, columns: 1,
		sizing: Sizing{
			TitlePt: 8.5, AuthorPt: 7.5, MetaPt: 6.5, PricePt: 8, CodePt: 5,
		},
		budgets: map[Field]int{},
		meta:    metaNone,
	}
}

// listHandler implements the row-oriented shapes. It reuses the card
// handler's decision logic (same truncation and date rules) but renders rows
// instead of cards; compact-list drops the cover image entirely.
type listHandler struct {
	cardHandler
	compact bool
}

func newListHandler(shape Shape) *listHandler {
	return &listHandler{
		cardHandler: cardHandler{spec: cardSpecs[shape]},
		compact:     shape == ShapeCompactList,
	}
}

func (h *listHandler) ProjectPreview(b models.Book, slot int, urls URLBuilder) *PreviewNode {
	d := h.decide(b, urls)
	cls := h.spec.shape.CSSClass()
	s := h.spec.sizing

	row := node("div", "row row--"+cls).attr("data-slot", fmt.Sprintf("%d", slot))
	if !h.compact {
		link := node("a", "row__link").attr("href", d.productURL)
		img := node("img", "row__image").
			attr("src", d.coverURL).
			attr("alt", d.title).
			attr("width", fmt.Sprintf("%d", s.ImageW)).
			attr("height", fmt.Sprintf("%d", s.ImageH))
		row.add(link.add(img))
	}

	main := node("div", "row__main")
	title := textNode("span", "row__title", d.title)
	if h.compact {
		// Compact rows still link the title since there is no image to link.
		title = node("a", "row__title").attr("href", d.productURL)
		title.Text = d.title
	}
	main.add(title)
	if d.subtitle != "" {
		main.add(textNode("span", "row__subtitle", d.subtitle))
	}
	if d.author != "" {
		main.add(textNode("span", "row__author", d.author))
	}
	if d.description != "" {
		main.add(textNode("p", "row__description", d.description))
	}
	if d.metaLine != "" {
		main.add(textNode("p", "row__meta", d.metaLine))
	}
	row.add(main)

	if h.compact && b.SKU != "" {
		row.add(textNode("span", "row__sku", b.SKU))
	}
	if d.dateLabel != "" && h.compact {
		dateCls := "row__date"
		if d.badge != "" {
			dateCls += " row__date--" + d.badge
		}
		row.add(textNode("span", dateCls, d.dateLabel))
	}
	if d.price != "" {
		row.add(textNode("span", "row__price", d.price))
	}
	return row
}

func (h *listHandler) ProjectPrint(b models.Book, slot int, urls URLBuilder, auxMarkup string) PrintFragment {
	d := h.decide(b, urls)
	cls := h.spec.shape.CSSClass()
	s := h.spec.sizing

	var w strings.Builder
	fmt.Fprintf(&w, `<div class="row row--%s" data-slot="%d">`, cls, slot)
	if !h.compact {
		fmt.Fprintf(&w, `<a class="row__link" href="%s"><img class="row__image" src="%s" alt="%s" width="%d" height="%d"></a>`,
			html.EscapeString(d.productURL), html.EscapeString(d.coverURL), html.EscapeString(d.title), s.ImageW, s.ImageH)
	}
	w.WriteString(`<div class="row__main">`)
	if h.compact {
		fmt.Fprintf(&w, `<a class="row__title" href="%s">%s</a>`, html.EscapeString(d.productURL), html.EscapeString(d.title))
	} else {
		fmt.Fprintf(&w, `<span class="row__title">%s</span>`, html.EscapeString(d.title))
	}
	if d.subtitle != "" {
		fmt.Fprintf(&w, `<span class="row__subtitle">%s</span>`, html.EscapeString(d.subtitle))
	}
	if d.author != "" {
		fmt.Fprintf(&w, `<span class="row__author">%s</span>`, html.EscapeString(d.author))
	}
	if d.description != "" {
		fmt.Fprintf(&w, `<p class="row__description">%s</p>`, html.EscapeString(d.description))
	}
	if d.metaLine != "" {
		fmt.Fprintf(&w, `<p class="row__meta">%s</p>`, html.EscapeString(d.metaLine))
	}
	w.WriteString(`</div>`)
	if h.compact && b.SKU != "" {
		fmt.Fprintf(&w, `<span class="row__sku">%s</span>`, html.EscapeString(b.SKU))
	}
	if h.compact && d.dateLabel != "" {
		dateCls := "row__date"
		if d.badge != "" {
			dateCls += " row__date--" + d.badge
		}
		fmt.Fprintf(&w, `<span class="%s">%s</span>`, dateCls, html.EscapeString(d.dateLabel))
	}
	if d.price != "" {
		fmt.Fprintf(&w, `<span class="row__price">%s</span>`, html.EscapeString(d.price))
	}
	if auxMarkup != "" {
		fmt.Fprintf(&w, `<div class="row__code">%s</div>`, auxMarkup)
	}
	w.WriteString(`</div>`)
	return PrintFragment{HTML: w.String()}
}

func (h *listHandler) ProjectDocument(b models.Book, slot int, assets ResolvedAssets, urls URLBuilder, auxAsset *ResolvedAsset) []DocumentBlock {
	d := h.decide(b, urls)
	s := h.spec.sizing

	blocks := make([]DocumentBlock, 0, 8)
	if !h.compact {
		blocks = append(blocks, imageBlock(assets.Cover, s.ImageW, s.ImageH, s.MetaPt))
	}

	line := d.title
	if d.subtitle != "" {
		line += ": " + d.subtitle
	}
	blocks = append(blocks, DocumentBlock{Kind: BlockHeading, Text: line, SizePt: s.TitlePt, Bold: true})
	if d.author != "" {
		blocks = append(blocks, DocumentBlock{Kind: BlockText, Text: d.author, SizePt: s.AuthorPt})
	}
	if d.description != "" {
		blocks = append(blocks, DocumentBlock{Kind: BlockText, Text: d.description, SizePt: s.DescriptionPt})
	}
	if d.metaLine != "" {
		blocks = append(blocks, DocumentBlock{Kind: BlockText, Text: d.metaLine, SizePt: s.MetaPt})
	}
	if h.compact && b.SKU != "" {
		blocks = append(blocks, DocumentBlock{Kind: BlockText, Text: b.SKU, SizePt: s.CodePt})
	}
	if h.compact && d.dateLabel != "" {
		blocks = append(blocks, DocumentBlock{Kind: BlockText, Text: d.dateLabel, SizePt: s.MetaPt})
	}
	if d.price != "" {
		blocks = append(blocks, DocumentBlock{Kind: BlockText, Text: d.price, SizePt: s.PricePt, Bold: true})
	}
	if auxAsset != nil {
		blocks = append(blocks, imageBlock(*auxAsset, 40, 15, s.CodePt))
	}
	blocks = append(blocks, DocumentBlock{Kind: BlockSpacer, SizePt: s.MetaPt})
	return blocks
}

func (h *listHandler) SharedStyle() string {
	cls := h.spec.shape.CSSClass()
	s := h.spec.sizing
	var b strings.Builder
	fmt.Fprintf(&b, ".row--%s{display:flex;align-items:flex-start;gap:10px;border-bottom:1px solid #ddd;padding:4px 0;}\n", cls)
	if s.ImageW > 0 {
		fmt.Fprintf(&b, ".row--%s .row__image{width:%dpx;height:%dpx;object-fit:contain;}\n", cls, s.ImageW, s.ImageH)
	}
	fmt.Fprintf(&b, ".row--%s .row__title{font-size:%.1fpt;font-weight:bold;}\n", cls, s.TitlePt)
	if s.SubtitlePt > 0 {
		fmt.Fprintf(&b, ".row--%s .row__subtitle{font-size:%.1fpt;}\n", cls, s.SubtitlePt)
	}
	fmt.Fprintf(&b, ".row--%s .row__author{font-size:%.1fpt;}\n", cls, s.AuthorPt)
	if s.DescriptionPt > 0 {
		fmt.Fprintf(&b, ".row--%s .row__description{font-size:%.1fpt;}\n", cls, s.DescriptionPt)
	}
	fmt.Fprintf(&b, ".row--%s .row__meta,.row--%s .row__date{font-size:%.1fpt;}\n", cls, cls, s.MetaPt)
	fmt.Fprintf(&b, ".row--%s .row__sku{font-size:%.1fpt;font-family:monospace;}\n", cls, s.CodePt)
	fmt.Fprintf(&b, ".row--%s .row__price{font-size:%.1fpt;font-weight:bold;margin-left:auto;}\n", cls, s.PricePt)
	return b.String()
}
