package layout

import (
	"net/url"
	"sort"
	"strings"

	"catalogue-press/models"
)

// PlaceholderImageURL is rendered when an item has no primary image.
const PlaceholderImageURL = "/static/catalog/placeholder.png"

// URLBuilder builds the hyperlink and image URLs the projections embed. It is
// an immutable value passed through the call chain with the rest of the
// per-request configuration.
type URLBuilder struct {
	// LinkBase is the product hyperlink target, e.g.
	// "https://shop.example.com/products".
	LinkBase string

	// Tracking holds optional query parameters appended to product links.
	Tracking map[string]string

	// AssetBase, when set, routes cover images through the local optimized
	// cover endpoint instead of the raw source URL.
	AssetBase string
}

// ProductURL returns the hyperlink for a handle, with tracking parameters
// appended in stable order.
func (u URLBuilder) ProductURL(handle string) string {
	base := strings.TrimRight(u.LinkBase, "/") + "/" + handle
	if len(u.Tracking) == 0 {
		return base
	}

	keys := make([]string, 0, len(u.Tracking))
	for k := range u.Tracking {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	q := url.Values{}
	for _, k := range keys {
		q.Set(k, u.Tracking[k])
	}
	return base + "?" + q.Encode()
}

// CoverURL returns the primary image reference for a book, falling back to
// the placeholder when the book has no image.
func (u URLBuilder) CoverURL(b models.Book) string {
	if u.AssetBase != "" && b.Handle != "" && (b.ImageURL != "" || b.CoverFileID != "") {
		return strings.TrimRight(u.AssetBase, "/") + "/assets/cover?handle=" + url.QueryEscape(b.Handle)
	}
	if b.ImageURL != "" {
		return b.ImageURL
	}
	return PlaceholderImageURL
}

// InternalURL returns the reference for the i-th supplementary image.
func (u URLBuilder) InternalURL(b models.Book, i int) string {
	if i < 0 || i >= len(b.AdditionalImages) {
		return PlaceholderImageURL
	}
	return b.AdditionalImages[i]
}
