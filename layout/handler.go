package layout

import "catalogue-press/models"

// Sizing is the declarative per-shape scale table. It is the single source of
// truth read by all three projection methods; no projection may hardcode a
// size of its own.
type Sizing struct {
	TitlePt       float64
	SubtitlePt    float64
	AuthorPt      float64
	DescriptionPt float64
	MetaPt        float64
	PricePt       float64
	CodePt        float64

	// Primary image box in CSS pixels.
	ImageW int
	ImageH int

	// Internals strip thumbnails (2-int only); the landscape variant is used
	// when the source image is wider than tall.
	InternalW          int
	InternalH          int
	InternalLandscapeW int
	InternalLandscapeH int
}

// ResolvedAsset carries pre-fetched binary image data supplied by the
// asset-resolution collaborator. Missing marks the "image not available"
// sentinel; the handlers render the placeholder path instead of failing.
type ResolvedAsset struct {
	Data    []byte
	Format  string // "jpeg", "png"
	Width   int
	Height  int
	Missing bool
}

// Landscape reports whether the source image is wider than tall.
func (a ResolvedAsset) Landscape() bool {
	return a.Width > a.Height
}

// ResolvedAssets groups the resolved images for one item.
type ResolvedAssets struct {
	Cover     ResolvedAsset
	Internals []ResolvedAsset
}

// PrintFragment is the print-flow rendering of one slot: semantic markup that
// honors the shape's shared style block.
type PrintFragment struct {
	HTML string
}

// BlockKind discriminates the flowed-document block types.
type BlockKind string

const (
	BlockHeading BlockKind = "heading"
	BlockText    BlockKind = "text"
	BlockImage   BlockKind = "image"
	BlockSpacer  BlockKind = "spacer"
)

// DocumentBlock is one flowed block for the word-processor back-end. Image
// blocks reference a resolved asset; text blocks carry the point size taken
// from the shape's sizing table.
type DocumentBlock struct {
	Kind   BlockKind
	Text   string
	SizePt float64
	Bold   bool
	Italic bool

	Asset    *ResolvedAsset
	WidthMM  float64
	HeightMM float64
}

// Projection bundles the three sibling renderings of one (item, shape) pair.
// All three reflect the same truncation and sizing decisions.
type Projection struct {
	Preview  *PreviewNode
	Print    PrintFragment
	Document []DocumentBlock
}

// Handler is the per-shape layout strategy. Every shape-specific constant
// (font sizes, image dimensions, truncation budgets) lives in the handler's
// tables, consumed by all three projection methods.
type Handler interface {
	Shape() Shape

	// Capacity is the fixed number of items per page for this shape. The
	// pagination engine relies on it never changing.
	Capacity() int

	// Sizing returns the shape's scale table.
	Sizing() Sizing

	// TruncationBudget returns the character budget for a long-text field;
	// 0 means no truncation for this shape.
	TruncationBudget(f Field) int

	// ProjectPreview builds the interactive representation. Absent optional
	// fields are omitted, never rendered empty.
	ProjectPreview(b models.Book, slot int, urls URLBuilder) *PreviewNode

	// ProjectPrint builds the print-flow fragment. auxMarkup is an opaque
	// pass-through slot for externally generated content (e.g. a barcode
	// image tag); the handler places it but never interprets it.
	ProjectPrint(b models.Book, slot int, urls URLBuilder, auxMarkup string) PrintFragment

	// ProjectDocument builds the flowed-document fragment from pre-fetched
	// assets; the handler itself performs no I/O.
	ProjectDocument(b models.Book, slot int, assets ResolvedAssets, urls URLBuilder, auxAsset *ResolvedAsset) []DocumentBlock

	// SharedStyle returns the CSS rules scoped to this shape; the registry
	// merges the blocks of every registered handler.
	SharedStyle() string
}

const pxPerMM = 96.0 / 25.4

// pxToMM converts CSS pixels from a sizing table to millimetres for the
// flowed-document back-end, keeping both back-ends on the same scale source.
func pxToMM(px int) float64 {
	return float64(px) / pxPerMM
}
