package layout

import "catalogue-press/models"

// Banner is the opaque header/footer strip wrapped around every page.
type Banner struct {
	Text    string
	Color   string
	Website string
}

// CodeAssignment resolves which auxiliary code an item gets: a per-index
// override map consulted first, then the global default.
type CodeAssignment struct {
	Default   CodeType
	Overrides map[int]CodeType // keyed by absolute item index
}

// For returns the code type for the item at absolute index i.
func (c CodeAssignment) For(i int) CodeType {
	if t, ok := c.Overrides[i]; ok {
		return t
	}
	if c.Default == "" {
		return CodeNone
	}
	return c.Default
}

// BarcodeProvider is the external barcode/QR collaborator: it returns
// pre-rendered opaque markup (print back-end) or a pre-rendered asset
// (document back-end), or nothing. The core never rasterizes codes itself.
type BarcodeProvider interface {
	Markup(b models.Book, t CodeType) string
	Asset(b models.Book, t CodeType) *ResolvedAsset
}

// RenderedSlot is one assembled grid cell. Unoccupied slots are explicit
// empty-slot markers so grid back-ends can render complete rows.
type RenderedSlot struct {
	Occupied   bool
	Handle     string
	Projection Projection
}

// RenderedPage is the back-end-agnostic aggregate handed to the document
// sinks: one page's rendered slots plus banner and shape metadata.
type RenderedPage struct {
	Shape  Shape
	Banner Banner
	Number int
	Total  int
	First  bool
	Last   bool
	Slots  []RenderedSlot
	Style  string
}

// AssembleDeps carries the per-request collaborators and configuration the
// assembler threads through the handlers. Assets maps handle -> resolved
// images; it may be nil when no document back-end is active, in which case
// document blocks take the placeholder path.
type AssembleDeps struct {
	Registry *Registry
	Banner   Banner
	URLs     URLBuilder
	Assets   map[string]ResolvedAssets
	Codes    CodeAssignment
	Barcode  BarcodeProvider
}

// Assemble wraps one page with its banner, renders every occupied slot
// through the owning handler, and pads unused grid slots with explicit
// empty-slot markers. List shapes never pad; they grow vertically.
func Assemble(p Page, number, total int, deps AssembleDeps) (RenderedPage, error) {
	h, err := deps.Registry.Get(p.Shape)
	if err != nil {
		return RenderedPage{}, err
	}

	out := RenderedPage{
		Shape:  p.Shape,
		Banner: deps.Banner,
		Number: number,
		Total:  total,
		First:  p.First,
		Last:   p.Last,
		Style:  h.SharedStyle(),
	}

	for slot, s := range p.Slots {
		codeType := deps.Codes.For(s.Index)
		var auxMarkup string
		var auxAsset *ResolvedAsset
		if deps.Barcode != nil && codeType != CodeNone {
			auxMarkup = deps.Barcode.Markup(s.Book, codeType)
			auxAsset = deps.Barcode.Asset(s.Book, codeType)
		}

		var assets ResolvedAssets
		if deps.Assets != nil {
			assets = deps.Assets[s.Book.Handle]
		} else {
			assets = ResolvedAssets{Cover: ResolvedAsset{Missing: true}}
		}

		out.Slots = append(out.Slots, RenderedSlot{
			Occupied: true,
			Handle:   s.Book.Handle,
			Projection: Projection{
				Preview:  h.ProjectPreview(s.Book, slot, deps.URLs),
				Print:    h.ProjectPrint(s.Book, slot, deps.URLs, auxMarkup),
				Document: h.ProjectDocument(s.Book, slot, assets, deps.URLs, auxAsset),
			},
		})
	}

	// Grid shapes keep their visual rhythm with explicit empty markers.
	if !p.Shape.IsList() && h.Capacity() > 1 {
		for len(out.Slots) < h.Capacity() {
			out.Slots = append(out.Slots, RenderedSlot{Occupied: false})
		}
	}

	return out, nil
}

// AssembleAll assembles every page in order.
func AssembleAll(pages []Page, deps AssembleDeps) ([]RenderedPage, error) {
	out := make([]RenderedPage, 0, len(pages))
	for i, p := range pages {
		rp, err := Assemble(p, i+1, len(pages), deps)
		if err != nil {
			return nil, err
		}
		out = append(out, rp)
	}
	return out, nil
}
