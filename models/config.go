package models

// ShowFields holds the per-field visibility toggles for one render request.
// A false toggle blanks the field before pagination, so handlers simply see
// an absent field and omit the line.
type ShowFields struct {
	Subtitle      bool `json:"subtitle"`
	Author        bool `json:"author"`
	AuthorBio     bool `json:"authorBio"`
	Description   bool `json:"description"`
	Price         bool `json:"price"`
	Binding       bool `json:"binding"`
	PageCount     bool `json:"pages"`
	Dimensions    bool `json:"dimensions"`
	ReleaseDate   bool `json:"releaseDate"`
	Imprint       bool `json:"imprint"`
	Weight        bool `json:"weight"`
	Illustrations bool `json:"illustrations"`
	AuthorCountry bool `json:"authorCountry"`
	Discount      bool `json:"discount"`
	SKU           bool `json:"sku"`
	Internals     bool `json:"internals"`
}

// DefaultShowFields returns the default visibility set (everything on).
func DefaultShowFields() ShowFields {
	return ShowFields{
		Subtitle:      true,
		Author:        true,
		AuthorBio:     true,
		Description:   true,
		Price:         true,
		Binding:       true,
		PageCount:     true,
		Dimensions:    true,
		ReleaseDate:   true,
		Imprint:       true,
		Weight:        true,
		Illustrations: true,
		AuthorCountry: true,
		Discount:      true,
		SKU:           true,
		Internals:     true,
	}
}

// RenderConfig is the immutable per-request configuration value passed through
// the call chain. Nothing in here is process-wide state; every render request
// builds its own copy.
type RenderConfig struct {
	BannerText  string            `json:"bannerText"`
	BannerColor string            `json:"bannerColor"` // hex color, e.g. "#1d3557"
	WebsiteName string            `json:"websiteName"`
	LinkBase    string            `json:"linkBase"` // hyperlink target base, e.g. "https://shop.example.com/products"
	Tracking    map[string]string `json:"tracking,omitempty"` // optional tracking query parameters
	Show        ShowFields        `json:"show"`
}
