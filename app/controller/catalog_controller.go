package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"catalogue-press/layout"
	"catalogue-press/models"
	"catalogue-press/service"
)

// CatalogController handles HTTP requests for catalogue generation
type CatalogController struct {
	catalogService  *service.CatalogService
	documentService *service.DocumentService
	baseURL         string
	// Temporary storage for PNG pages (key: sessionID, value: map of page number to PNG data)
	pngStorage      map[string]map[int][]byte
	pngStorageMutex sync.RWMutex
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(
	catalogService *service.CatalogService,
	documentService *service.DocumentService,
	baseURL string,
) *CatalogController {
	return &CatalogController{
		catalogService:  catalogService,
		documentService: documentService,
		baseURL:         baseURL,
		pngStorage:      make(map[string]map[int][]byte),
	}
}

// validFormats is a map of valid format values
var validFormats = map[string]bool{
	"html":  true,
	"print": true,
	"pdf":   true,
	"png":   true,
	"doc":   true,
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   code,
		"message": message,
	})
}

// parseRenderRequest builds a RenderRequest from query parameters.
//
//	layout=4-up                    uniform layout for the whole run
//	layouts=1-up,2-up,2-up         per-item layouts (overrides layout)
//	vendor= / tag=                 book filters
//	hide=price,author_bio          visibility toggles
//	code=EAN-13&code_3=QR          default code type plus per-index overrides
//	banner= / color= / website=    banner overrides (env defaults otherwise)
func parseRenderRequest(r *http.Request) (service.RenderRequest, error) {
	q := r.URL.Query()

	req := service.RenderRequest{
		Vendor: strings.TrimSpace(q.Get("vendor")),
		Tag:    strings.TrimSpace(q.Get("tag")),
	}

	layoutParam := strings.TrimSpace(q.Get("layout"))
	layoutsParam := strings.TrimSpace(q.Get("layouts"))
	switch {
	case layoutsParam != "":
		for _, raw := range strings.Split(layoutsParam, ",") {
			shape, err := layout.ParseShape(strings.TrimSpace(raw))
			if err != nil {
				return req, fmt.Errorf("invalid layouts entry %q", raw)
			}
			req.Mixed = append(req.Mixed, shape)
		}
	case layoutParam != "":
		shape, err := layout.ParseShape(layoutParam)
		if err != nil {
			return req, fmt.Errorf("invalid layout %q", layoutParam)
		}
		req.Shape = shape
	default:
		return req, fmt.Errorf("layout parameter is required")
	}

	cfg := models.RenderConfig{
		BannerText:  os.Getenv("CATALOG_BANNER_TEXT"),
		BannerColor: os.Getenv("CATALOG_BANNER_COLOR"),
		WebsiteName: os.Getenv("CATALOG_WEBSITE_NAME"),
		LinkBase:    os.Getenv("CATALOG_LINK_BASE"),
		Show:        models.DefaultShowFields(),
	}
	if v := strings.TrimSpace(q.Get("banner")); v != "" {
		cfg.BannerText = v
	}
	if v := strings.TrimSpace(q.Get("color")); v != "" {
		cfg.BannerColor = v
	}
	if v := strings.TrimSpace(q.Get("website")); v != "" {
		cfg.WebsiteName = v
	}
	if v := strings.TrimSpace(q.Get("utm_source")); v != "" {
		cfg.Tracking = map[string]string{"utm_source": v}
		if m := strings.TrimSpace(q.Get("utm_medium")); m != "" {
			cfg.Tracking["utm_medium"] = m
		}
	}

	if hide := strings.TrimSpace(q.Get("hide")); hide != "" {
		for _, field := range strings.Split(hide, ",") {
			if err := applyHideToggle(&cfg.Show, strings.TrimSpace(field)); err != nil {
				return req, err
			}
		}
	}
	req.Config = cfg

	codes := layout.CodeAssignment{Default: layout.CodeNone}
	if v := strings.TrimSpace(q.Get("code")); v != "" {
		ct, err := layout.ParseCodeType(v)
		if err != nil {
			return req, fmt.Errorf("invalid code type %q", v)
		}
		codes.Default = ct
	}
	for key, values := range q {
		if !strings.HasPrefix(key, "code_") || len(values) == 0 {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimPrefix(key, "code_"))
		if err != nil || idx < 0 {
			return req, fmt.Errorf("invalid code override key %q", key)
		}
		ct, err := layout.ParseCodeType(values[0])
		if err != nil {
			return req, fmt.Errorf("invalid code type %q", values[0])
		}
		if codes.Overrides == nil {
			codes.Overrides = make(map[int]layout.CodeType)
		}
		codes.Overrides[idx] = ct
	}
	req.Codes = codes

	return req, nil
}

func applyHideToggle(show *models.ShowFields, field string) error {
	switch field {
	case "subtitle":
		show.Subtitle = false
	case "author":
		show.Author = false
	case "author_bio":
		show.AuthorBio = false
	case "description":
		show.Description = false
	case "price":
		show.Price = false
	case "binding":
		show.Binding = false
	case "page_count":
		show.PageCount = false
	case "dimensions":
		show.Dimensions = false
	case "release_date":
		show.ReleaseDate = false
	case "imprint":
		show.Imprint = false
	case "weight":
		show.Weight = false
	case "illustrations":
		show.Illustrations = false
	case "author_country":
		show.AuthorCountry = false
	case "discount":
		show.Discount = false
	case "sku":
		show.SKU = false
	case "internals":
		show.Internals = false
	default:
		return fmt.Errorf("unknown hide field %q", field)
	}
	return nil
}

// GenerateCatalog handles GET /catalog?layout=4-up&format=html|print|pdf|png|doc
func (c *CatalogController) GenerateCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		log.Printf("❌ GenerateCatalog: Method not allowed: %s", r.Method)
		writeJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	ctx := context.Background()

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "html"
	}
	if !validFormats[format] {
		log.Printf("❌ GenerateCatalog: Invalid format: %s", format)
		writeJSONError(w, http.StatusBadRequest, "invalid_format", "Invalid format. Valid formats: html, print, pdf, png, doc")
		return
	}

	req, err := parseRenderRequest(r)
	if err != nil {
		log.Printf("❌ GenerateCatalog: %v", err)
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	// The flowed document needs binary image data; the HTML paths reference
	// image URLs instead.
	req.WithAssets = format == "doc"

	pages, err := c.catalogService.BuildPages(ctx, req)
	if err != nil {
		c.writeBuildError(w, "GenerateCatalog", err)
		return
	}

	switch format {
	case "html", "print":
		mode := service.ModePreview
		if format == "print" {
			mode = service.ModePrint
		}
		htmlContent, err := c.catalogService.RenderCatalogHTML(pages, req.Config, mode)
		if err != nil {
			log.Printf("❌ GenerateCatalog: Error rendering HTML: %v", err)
			writeJSONError(w, http.StatusInternalServerError, "render_failed", err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(htmlContent)); err != nil {
			log.Printf("❌ GenerateCatalog: Error writing HTML response: %v", err)
		}

	case "pdf":
		pdfData, err := c.catalogService.GeneratePDF(ctx, renderQuery(r))
		if err != nil {
			log.Printf("❌ GenerateCatalog: Error generating PDF: %v", err)
			writeJSONError(w, http.StatusInternalServerError, "pdf_failed", err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="catalog.pdf"`)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(pdfData); err != nil {
			log.Printf("❌ GenerateCatalog: Error writing PDF response: %v", err)
		}

	case "png":
		c.generatePNG(ctx, w, r, len(pages))

	case "doc":
		docData, err := c.documentService.Build(pages)
		if err != nil {
			log.Printf("❌ GenerateCatalog: Error building document: %v", err)
			writeJSONError(w, http.StatusInternalServerError, "doc_failed", err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="catalog_flowed.pdf"`)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(docData); err != nil {
			log.Printf("❌ GenerateCatalog: Error writing document response: %v", err)
		}
	}
}

// writeBuildError maps layout validation failures to 400s and everything else
// to 500s.
func (c *CatalogController) writeBuildError(w http.ResponseWriter, op string, err error) {
	var verr *layout.ValidationError
	var serr *layout.UnknownShapeError
	switch {
	case errors.As(err, &verr):
		log.Printf("⚠️  %s: validation failed: %v", op, err)
		writeJSONError(w, http.StatusBadRequest, "validation_failed", verr.Error())
	case errors.As(err, &serr):
		log.Printf("⚠️  %s: unknown layout: %v", op, err)
		writeJSONError(w, http.StatusBadRequest, "unknown_layout", serr.Error())
	default:
		log.Printf("❌ %s: %v", op, err)
		writeJSONError(w, http.StatusInternalServerError, "build_failed", err.Error())
	}
}

// renderQuery forwards the layout parameters to the render endpoint, dropping
// the format so the render page always serves print HTML.
func renderQuery(r *http.Request) string {
	q := r.URL.Query()
	q.Del("format")
	return q.Encode()
}

func (c *CatalogController) generatePNG(ctx context.Context, w http.ResponseWriter, r *http.Request, expectedPages int) {
	pngs, err := c.catalogService.GeneratePNG(ctx, renderQuery(r), expectedPages)
	if err != nil {
		log.Printf("❌ GenerateCatalog: Error generating PNG: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "png_failed", err.Error())
		return
	}

	sessionID := uuid.New().String()

	c.pngStorageMutex.Lock()
	c.pngStorage[sessionID] = pngs
	c.pngStorageMutex.Unlock()

	// Schedule cleanup after 10 minutes
	go func() {
		time.Sleep(10 * time.Minute)
		c.pngStorageMutex.Lock()
		delete(c.pngStorage, sessionID)
		c.pngStorageMutex.Unlock()
	}()

	type pageLink struct {
		Page     int    `json:"page"`
		URL      string `json:"url"`
		Filename string `json:"filename"`
	}

	var links []pageLink
	for i := 1; i <= len(pngs); i++ {
		if _, exists := pngs[i]; !exists {
			continue
		}
		filename := fmt.Sprintf("catalog_page_%d.png", i)
		if len(pngs) == 1 {
			filename = "catalog.png"
		}
		links = append(links, pageLink{
			Page:     i,
			URL:      fmt.Sprintf("/catalog/png-page?session=%s&page=%d", sessionID, i),
			Filename: filename,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"sessionId":  sessionID,
		"totalPages": len(pngs),
		"pages":      links,
	}); err != nil {
		log.Printf("❌ GenerateCatalog: Error encoding JSON response: %v", err)
	}
}

// RenderCatalog handles GET /catalog/render?layout=4-up
// Returns the print HTML for the catalogue (used by chromedp for PDF/PNG)
func (c *CatalogController) RenderCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		log.Printf("❌ RenderCatalog: Method not allowed: %s", r.Method)
		writeJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	ctx := context.Background()

	req, err := parseRenderRequest(r)
	if err != nil {
		log.Printf("❌ RenderCatalog: %v", err)
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	pages, err := c.catalogService.BuildPages(ctx, req)
	if err != nil {
		c.writeBuildError(w, "RenderCatalog", err)
		return
	}

	htmlContent, err := c.catalogService.RenderCatalogHTML(pages, req.Config, service.ModePrint)
	if err != nil {
		log.Printf("❌ RenderCatalog: Error rendering HTML: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(htmlContent)); err != nil {
		log.Printf("❌ RenderCatalog: Error writing HTML response: %v", err)
	}
}

// DownloadPNGPage handles GET /catalog/png-page?session=XXX&page=N
// Returns a specific PNG page from temporary storage
func (c *CatalogController) DownloadPNGPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		log.Printf("❌ DownloadPNGPage: Method not allowed: %s", r.Method)
		writeJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	sessionID := strings.TrimSpace(r.URL.Query().Get("session"))
	pageStr := strings.TrimSpace(r.URL.Query().Get("page"))

	if sessionID == "" {
		log.Printf("❌ DownloadPNGPage: session parameter is required")
		writeJSONError(w, http.StatusBadRequest, "missing_session", "session parameter is required")
		return
	}

	pageNum, err := strconv.Atoi(pageStr)
	if err != nil || pageNum < 1 {
		log.Printf("❌ DownloadPNGPage: Invalid page number: %s", pageStr)
		writeJSONError(w, http.StatusBadRequest, "invalid_page", "Invalid page number")
		return
	}

	c.pngStorageMutex.RLock()
	pngs, exists := c.pngStorage[sessionID]
	c.pngStorageMutex.RUnlock()

	if !exists {
		log.Printf("❌ DownloadPNGPage: Session not found: %s", sessionID)
		writeJSONError(w, http.StatusNotFound, "session_not_found", "Session expired or not found")
		return
	}

	pngData, exists := pngs[pageNum]
	if !exists {
		log.Printf("❌ DownloadPNGPage: Page %d not found in session %s", pageNum, sessionID)
		writeJSONError(w, http.StatusNotFound, "page_not_found", fmt.Sprintf("Page %d not found", pageNum))
		return
	}

	filename := fmt.Sprintf("catalog_page_%d.png", pageNum)
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pngData)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pngData); err != nil {
		log.Printf("❌ DownloadPNGPage: Error writing PNG response: %v", err)
	}
}
