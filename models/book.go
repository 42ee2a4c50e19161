package models

// RichText holds field content that still carries source markup (line breaks,
// paragraph tags, entities). It is converted to plain text exactly once at the
// ingestion boundary; layout handlers only ever see the plain-text fields.
type RichText string

// Book represents a single catalogue entry as consumed by the layout handlers.
// Handle is the stable identifier used to build the product URL; it must be
// non-empty and unique within one render run. Every other field is optional:
// an absent field means "omit that line", never "render an empty placeholder".
// The primary image is the one exception: when ImageURL is empty the
// placeholder image reference is rendered instead.
type Book struct {
	Title  string `json:"title"`
	Handle string `json:"handle"`

	Subtitle string `json:"subtitle,omitempty"`
	Author   string `json:"author,omitempty"`

	// Raw markup as delivered by the source-data collaborator.
	AuthorBioHTML   RichText `json:"authorBioHtml,omitempty"`
	DescriptionHTML RichText `json:"descriptionHtml,omitempty"`

	// Plain-text forms, filled in by the ingestion step (never by handlers).
	AuthorBio   string `json:"authorBio,omitempty"`
	Description string `json:"description,omitempty"`

	Price            string   `json:"price,omitempty"` // decimal-as-string, e.g. "24.99"
	ImageURL         string   `json:"imageUrl,omitempty"`
	AdditionalImages []string `json:"additionalImages,omitempty"` // "internals"
	Binding          string   `json:"binding,omitempty"`
	PageCount        string   `json:"pages,omitempty"`
	Dimensions       string   `json:"dimensions,omitempty"`
	ReleaseDate      string   `json:"releaseDate,omitempty"` // free-form date string
	Imprint          string   `json:"imprint,omitempty"`
	Weight           string   `json:"weight,omitempty"`
	Illustrations    string   `json:"illustrations,omitempty"`
	AuthorCountry    string   `json:"authorCountry,omitempty"` // badge code
	DiscountCode     string   `json:"discountCode,omitempty"`
	DiscountDetail   string   `json:"discountDetail,omitempty"` // resolved label, filled at ingestion
	SKU              string   `json:"sku,omitempty"`            // barcode source string
	Vendor           string   `json:"vendor,omitempty"`
	Tags             []string `json:"tags,omitempty"`

	// CoverFileID is the Drive file backing the primary image, when the cover
	// sync has matched one. Empty means ImageURL (or the placeholder) is used.
	CoverFileID string `json:"coverFileId,omitempty"`
}

// HasInternals reports whether the book carries supplementary images.
func (b Book) HasInternals() bool {
	return len(b.AdditionalImages) > 0
}
