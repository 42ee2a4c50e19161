package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"

	"catalogue-press/discounts"
	"catalogue-press/layout"
	"catalogue-press/models"
	"catalogue-press/repository"
	"catalogue-press/utils"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// CatalogService orchestrates catalogue generation: it feeds the book list
// through the layout core and hands the rendered pages to the active
// back-end (HTML preview, print HTML, chromedp PDF/PNG, flowed document).
type CatalogService struct {
	repository repository.BookRepositoryInterface
	assets     *AssetService
	barcode    *BarcodeService
	registry   *layout.Registry
	baseURL    string // Base URL for render/image endpoints (e.g. "http://localhost:8080")
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	repo repository.BookRepositoryInterface,
	assets *AssetService,
	barcode *BarcodeService,
	registry *layout.Registry,
	baseURL string,
) *CatalogService {
	return &CatalogService{
		repository: repo,
		assets:     assets,
		barcode:    barcode,
		registry:   registry,
		baseURL:    baseURL,
	}
}

// RenderRequest collects the per-request configuration surface. It is built
// once by the controller and passed through the call chain as a value; the
// core never reads process-wide state.
type RenderRequest struct {
	Shape  layout.Shape
	Mixed  []layout.Shape // per-item assignment; empty means uniform Shape
	Vendor string
	Tag    string
	Config models.RenderConfig
	Codes  layout.CodeAssignment

	// WithAssets pre-resolves binary images for the flowed-document back-end.
	WithAssets bool
}

func (req RenderRequest) assignment() layout.Assignment {
	if len(req.Mixed) > 0 {
		return layout.Mixed(req.Mixed)
	}
	return layout.Uniform(req.Shape)
}

// prepareBooks is the ingestion boundary: rich-text fields are converted to
// plain text exactly once, discount codes are resolved to display strings,
// and visibility toggles blank their fields so handlers simply omit them.
func prepareBooks(books []models.Book, cfg models.RenderConfig) []models.Book {
	out := make([]models.Book, len(books))
	for i, b := range books {
		b.Description = utils.RichTextToPlainText(string(b.DescriptionHTML))
		b.AuthorBio = utils.RichTextToPlainText(string(b.AuthorBioHTML))
		if detail, ok := discounts.GetEngine().Resolve(b.DiscountCode); ok {
			b.DiscountDetail = detail
		}
		applyShowFields(&b, cfg.Show)
		out[i] = b
	}
	return out
}

func applyShowFields(b *models.Book, show models.ShowFields) {
	if !show.Subtitle {
		b.Subtitle = ""
	}
	if !show.Author {
		b.Author = ""
	}
	if !show.AuthorBio {
		b.AuthorBio = ""
	}
	if !show.Description {
		b.Description = ""
	}
	if !show.Price {
		b.Price = ""
	}
	if !show.Binding {
		b.Binding = ""
	}
	if !show.PageCount {
		b.PageCount = ""
	}
	if !show.Dimensions {
		b.Dimensions = ""
	}
	if !show.ReleaseDate {
		b.ReleaseDate = ""
	}
	if !show.Imprint {
		b.Imprint = ""
	}
	if !show.Weight {
		b.Weight = ""
	}
	if !show.Illustrations {
		b.Illustrations = ""
	}
	if !show.AuthorCountry {
		b.AuthorCountry = ""
	}
	if !show.Discount {
		b.DiscountCode = ""
		b.DiscountDetail = ""
	}
	if !show.SKU {
		b.SKU = ""
	}
	if !show.Internals {
		b.AdditionalImages = nil
	}
}

// BuildPages runs the full pipeline: fetch, prepare, paginate, assemble.
// Validation failures surface before any page is rendered.
func (s *CatalogService) BuildPages(ctx context.Context, req RenderRequest) ([]layout.RenderedPage, error) {
	books, err := s.repository.GetBooksForCatalog(ctx, req.Vendor, req.Tag)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch books: %w", err)
	}

	prepared := prepareBooks(books, req.Config)

	pages, err := layout.Paginate(prepared, req.assignment(), s.registry)
	if err != nil {
		return nil, err
	}

	deps := layout.AssembleDeps{
		Registry: s.registry,
		Banner: layout.Banner{
			Text:    req.Config.BannerText,
			Color:   req.Config.BannerColor,
			Website: req.Config.WebsiteName,
		},
		URLs: layout.URLBuilder{
			LinkBase:  req.Config.LinkBase,
			Tracking:  req.Config.Tracking,
			AssetBase: s.baseURL,
		},
		Codes:   req.Codes,
		Barcode: s.barcode,
	}
	if req.WithAssets {
		deps.Assets = s.assets.ResolveAll(ctx, prepared)
	}

	return layout.AssembleAll(pages, deps)
}

// Render modes for the HTML wrapper template.
const (
	ModePreview = "preview"
	ModePrint   = "print"
)

type slotView struct {
	Occupied bool
	HTML     template.HTML
}

type pageView struct {
	Shape     string
	GridClass string
	IsList    bool
	Number    int
	Total     int
	Slots     []slotView
}

type catalogView struct {
	Title       string
	BannerText  string
	BannerColor template.CSS
	WebsiteName string
	Styles      template.CSS
	Pages       []pageView
}

// RenderCatalogHTML wraps the rendered pages in the catalogue page template.
// ModePreview embeds the interactive projections, ModePrint the print
// fragments; both carry the registry's merged style blocks so the two
// back-ends share every size decision.
func (s *CatalogService) RenderCatalogHTML(pages []layout.RenderedPage, cfg models.RenderConfig, mode string) (string, error) {
	view := catalogView{
		Title:       cfg.WebsiteName,
		BannerText:  cfg.BannerText,
		BannerColor: template.CSS(cfg.BannerColor),
		WebsiteName: cfg.WebsiteName,
		Styles:      template.CSS(s.registry.MergedStyles()),
	}

	for _, p := range pages {
		pv := pageView{
			Shape:     string(p.Shape),
			GridClass: "grid grid--" + p.Shape.CSSClass(),
			IsList:    p.Shape.IsList(),
			Number:    p.Number,
			Total:     p.Total,
		}
		if pv.IsList {
			pv.GridClass = "rows rows--" + p.Shape.CSSClass()
		}
		for _, slot := range p.Slots {
			if !slot.Occupied {
				pv.Slots = append(pv.Slots, slotView{Occupied: false})
				continue
			}
			var fragment string
			if mode == ModePreview {
				fragment = slot.Projection.Preview.HTML()
			} else {
				fragment = slot.Projection.Print.HTML
			}
			pv.Slots = append(pv.Slots, slotView{Occupied: true, HTML: template.HTML(fragment)})
		}
		view.Pages = append(view.Pages, pv)
	}

	templatePath := filepath.Join("templates", "catalog.html")
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// waitForAssets blocks until fonts and images have settled in the page.
var waitForAssets = chromedp.Evaluate(`
	(function() {
		return Promise.all([
			document.fonts.ready,
			Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
				return new Promise((resolve) => {
					if (img.complete && img.naturalWidth > 0 && img.naturalHeight > 0) {
						resolve();
						return;
					}
					const timeout = setTimeout(() => resolve(), 5000);
					img.onload = () => { clearTimeout(timeout); resolve(); };
					img.onerror = () => { clearTimeout(timeout); resolve(); };
				});
			}))
		]);
	})();
`, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
})

func (s *CatalogService) newChromeContext(ctx context.Context) (context.Context, context.CancelFunc, context.CancelFunc) {
	chromePath := detectChromePath()
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("enable-print-preview", true),
	)
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	return chromedpCtx, chromedpCancel, allocCancel
}

// GeneratePDF prints the render endpoint to an A4 PDF via headless Chrome.
// renderQuery carries the layout parameters forward to /catalog/render.
func (s *CatalogService) GeneratePDF(ctx context.Context, renderQuery string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	chromedpCtx, chromedpCancel, allocCancel := s.newChromeContext(ctx)
	defer allocCancel()
	defer chromedpCancel()

	if err := chromedp.Run(chromedpCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		return page.Enable().Do(ctx)
	})); err != nil {
		log.Printf("⚠️  Warning: failed to enable page domain: %v", err)
	}

	renderURL := fmt.Sprintf("%s/catalog/render?%s", s.baseURL, renderQuery)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 5000), // Large height to show all pages
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second),
		waitForAssets,
		chromedp.Sleep(time.Second), // Final wait for layout
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4; page breaks come from the template's CSS page-break rules.
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // 210mm in inches
				WithPaperHeight(11.69). // 297mm in inches
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}

// GeneratePNG screenshots each rendered page element. Returns a map of page
// number to PNG data.
func (s *CatalogService) GeneratePNG(ctx context.Context, renderQuery string, expectedPages int) (map[int][]byte, error) {
	// PNG generation screenshots page by page; budget the timeout by count.
	timeout := 30 * time.Second
	if expectedPages > 1 {
		timeout = time.Duration(20+expectedPages*10) * time.Second
		if timeout > 3*time.Minute {
			timeout = 3 * time.Minute
		}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chromedpCtx, chromedpCancel, allocCancel := s.newChromeContext(ctx)
	defer allocCancel()
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/catalog/render?%s", s.baseURL, renderQuery)

	var pageCountVal float64
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 5000),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second),
		waitForAssets,
		chromedp.Evaluate(`document.querySelectorAll('.page').length`, &pageCountVal),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get page count: %w", err)
	}

	pageCount := int(pageCountVal)
	if pageCount == 0 {
		return nil, fmt.Errorf("no pages found in HTML")
	}
	if expectedPages > 0 && pageCount != expectedPages {
		log.Printf("⚠️  GeneratePNG: detected %d pages, expected %d", pageCount, expectedPages)
	}

	pngs := make(map[int][]byte, pageCount)
	for i := 1; i <= pageCount; i++ {
		var buf []byte
		sel := fmt.Sprintf(`.page:nth-of-type(%d)`, i)
		if err := chromedp.Run(chromedpCtx,
			chromedp.Screenshot(sel, &buf, chromedp.NodeVisible),
		); err != nil {
			return nil, fmt.Errorf("failed to screenshot page %d: %w", i, err)
		}
		pngs[i] = buf
	}

	return pngs, nil
}
