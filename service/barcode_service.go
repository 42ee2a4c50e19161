package service

import (
	"fmt"
	"html"
	"net/url"

	"catalogue-press/layout"
	"catalogue-press/models"
)

// BarcodeService is the barcode/QR collaborator: it produces pre-rendered,
// opaque markup pointing at an external code rasterizer. The layout handlers
// place the markup without interpreting it; actual barcode/QR encoding is not
// this service's job.
type BarcodeService struct {
	renderBase string // base URL of the external code rasterizer
}

// NewBarcodeService creates a new BarcodeService
func NewBarcodeService(renderBase string) *BarcodeService {
	return &BarcodeService{renderBase: renderBase}
}

// Ensure BarcodeService implements the assembler's collaborator contract
var _ layout.BarcodeProvider = (*BarcodeService)(nil)

// Markup returns an opaque image tag for the requested code type, or an empty
// string when the item cannot carry that code (no SKU for EAN-13, no handle
// for QR).
func (s *BarcodeService) Markup(b models.Book, t layout.CodeType) string {
	switch t {
	case layout.CodeEAN13:
		if b.SKU == "" {
			return ""
		}
		return fmt.Sprintf(`<img class="code code--ean13" src="%s/codes/ean13?value=%s" alt="EAN-13 %s">`,
			s.renderBase, url.QueryEscape(b.SKU), html.EscapeString(b.SKU))
	case layout.CodeQR:
		if b.Handle == "" {
			return ""
		}
		return fmt.Sprintf(`<img class="code code--qr" src="%s/codes/qr?value=%s" alt="QR code">`,
			s.renderBase, url.QueryEscape(b.Handle))
	default:
		return ""
	}
}

// Asset returns the pre-rendered binary form of a code for the flowed
// document back-end. Rasterization lives in the external collaborator; until
// one is wired in, the document projection falls back to omitting the code
// block, which is the documented missing-asset path.
func (s *BarcodeService) Asset(b models.Book, t layout.CodeType) *layout.ResolvedAsset {
	return nil
}
