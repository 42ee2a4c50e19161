package service

import (
	"bytes"
	"fmt"
	"strings"

	"codeberg.org/go-pdf/fpdf"

	"catalogue-press/layout"
)

// DocumentService is the flowed binary-document sink: it consumes the
// back-end-agnostic rendered pages and writes their document blocks into a
// word-processor-style flowed file. Block text, point sizes and image
// dimensions all come from the layout handlers; this sink only flows them.
type DocumentService struct{}

// NewDocumentService creates a new DocumentService
func NewDocumentService() *DocumentService {
	return &DocumentService{}
}

// Build writes one flowed document for the whole run.
func (s *DocumentService) Build(pages []layout.RenderedPage) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages to build")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(pages[0].Banner.Website, true)
	pdf.SetAutoPageBreak(true, 18)
	pdf.SetMargins(15, 15, 15)

	// Core fonts are cp1252; translate UTF-8 text (ellipsis, bullets) down.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	imageSeq := 0
	for _, page := range pages {
		pdf.AddPage()
		s.writeBanner(pdf, page, tr)

		for _, slot := range page.Slots {
			// The flowed document has no grid rhythm, so empty-slot markers
			// are simply not written.
			if !slot.Occupied {
				continue
			}
			for _, block := range slot.Projection.Document {
				imageSeq++
				writeBlock(pdf, block, imageSeq, tr)
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write document: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *DocumentService) writeBanner(pdf *fpdf.Fpdf, page layout.RenderedPage, tr func(string) string) {
	r, g, b := parseHexColor(page.Banner.Color)
	pdf.SetFillColor(r, g, b)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)

	text := page.Banner.Text
	if text == "" {
		text = page.Banner.Website
	}
	pdf.CellFormat(0, 9, tr(text), "", 1, "C", true, 0, "")

	pdf.SetTextColor(120, 120, 120)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(0, 5, fmt.Sprintf("%s - page %d of %d", page.Banner.Website, page.Number, page.Total), "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(3)
}

func writeBlock(pdf *fpdf.Fpdf, block layout.DocumentBlock, seq int, tr func(string) string) {
	switch block.Kind {
	case layout.BlockHeading, layout.BlockText:
		style := ""
		if block.Bold {
			style += "B"
		}
		if block.Italic {
			style += "I"
		}
		pdf.SetFont("Helvetica", style, block.SizePt)
		// Point size to mm line height.
		pdf.MultiCell(0, block.SizePt*0.46, tr(block.Text), "", "L", false)
	case layout.BlockImage:
		if block.Asset == nil || len(block.Asset.Data) == 0 {
			return
		}
		name := fmt.Sprintf("asset-%d", seq)
		opts := fpdf.ImageOptions{ImageType: strings.ToUpper(block.Asset.Format)}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(block.Asset.Data))
		pdf.ImageOptions(name, pdf.GetX(), pdf.GetY(), block.WidthMM, block.HeightMM, true, opts, 0, "")
	case layout.BlockSpacer:
		pdf.Ln(block.SizePt * 0.6)
	}
}

// parseHexColor parses "#rrggbb" (or "#rgb"), defaulting to a dark slate when
// the banner color is absent or malformed.
func parseHexColor(s string) (int, int, int) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return 29, 53, 87
	}
	var r, g, b int
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return 29, 53, 87
	}
	return r, g, b
}
