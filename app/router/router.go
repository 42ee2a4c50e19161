package router

import (
	"net/http"
	"strings"

	"catalogue-press/app/controller"
)

type Controllers struct {
	Catalog *controller.CatalogController
	Book    *controller.BookController
	Asset   *controller.AssetController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Catalogue generation
	http.HandleFunc("/catalog", controllers.Catalog.GenerateCatalog)

	// Catalogue sub-routes: render page for chromedp and PNG page downloads
	http.HandleFunc("/catalog/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/catalog/")
		switch path {
		case "render":
			controllers.Catalog.RenderCatalog(w, r)
		case "png-page":
			controllers.Catalog.DownloadPNGPage(w, r)
		default:
			http.Error(w, "Not found", http.StatusNotFound)
		}
	})

	// Book listing routes
	http.HandleFunc("/books", controllers.Book.ListBooks)
	http.HandleFunc("/books/", controllers.Book.GetBook)

	// Optimized cover images
	http.HandleFunc("/assets/cover", controllers.Asset.GetCover)

	// Cover sync from Drive
	http.HandleFunc("/admin/covers/sync", controllers.Asset.SyncCovers)
}
