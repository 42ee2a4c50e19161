package layout

import (
	"fmt"
	"html"
	"strings"

	"catalogue-press/models"
)

// internalsHandler implements the 2-int shape: a 2-up card with a mandatory
// right-hand internals strip whenever the item carries supplementary images.
// Strip thumbnails use the landscape variant of the sizing table when the
// source image is wider than tall.
type internalsHandler struct {
	cardHandler
}

func newInternalsHandler() *internalsHandler {
	return &internalsHandler{cardHandler: cardHandler{spec: cardSpecs[Shape2Int]}}
}

func (h *internalsHandler) ProjectPreview(b models.Book, slot int, urls URLBuilder) *PreviewNode {
	card := h.cardHandler.ProjectPreview(b, slot, urls)
	if !b.HasInternals() {
		return card
	}

	strip := node("div", "card__internals")
	for i := range b.AdditionalImages {
		img := node("img", "card__internal").
			attr("src", urls.InternalURL(b, i)).
			attr("alt", fmt.Sprintf("%s interior %d", b.Title, i+1))
		strip.add(img)
	}
	return card.add(strip)
}

func (h *internalsHandler) ProjectPrint(b models.Book, slot int, urls URLBuilder, auxMarkup string) PrintFragment {
	frag := h.cardHandler.ProjectPrint(b, slot, urls, auxMarkup)
	if !b.HasInternals() {
		return frag
	}

	var w strings.Builder
	w.WriteString(`<div class="card__internals">`)
	for i := range b.AdditionalImages {
		fmt.Fprintf(&w, `<img class="card__internal" src="%s" alt="%s interior %d">`,
			html.EscapeString(urls.InternalURL(b, i)), html.EscapeString(b.Title), i+1)
	}
	w.WriteString(`</div>`)

	// Insert the strip before the closing card tag so the shared style can
	// float it against the card body.
	out := frag.HTML
	if idx := strings.LastIndex(out, "</article>"); idx >= 0 {
		out = out[:idx] + w.String() + out[idx:]
	} else {
		out += w.String()
	}
	return PrintFragment{HTML: out}
}

func (h *internalsHandler) ProjectDocument(b models.Book, slot int, assets ResolvedAssets, urls URLBuilder, auxAsset *ResolvedAsset) []DocumentBlock {
	blocks := h.cardHandler.ProjectDocument(b, slot, assets, urls, auxAsset)
	if !b.HasInternals() {
		return blocks
	}

	s := h.spec.sizing
	for _, internal := range assets.Internals {
		w, ht := s.InternalW, s.InternalH
		if internal.Landscape() {
			w, ht = s.InternalLandscapeW, s.InternalLandscapeH
		}
		blocks = append(blocks, imageBlock(internal, w, ht, s.MetaPt))
	}
	return blocks
}
