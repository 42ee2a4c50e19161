package controller

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"

	"catalogue-press/repository"
	"catalogue-press/service"
)

// AssetController serves optimized cover images and drives the cover sync
type AssetController struct {
	repository   repository.BookRepositoryInterface
	assetService *service.AssetService
	syncService  *service.SyncService
}

// NewAssetController creates a new AssetController
func NewAssetController(
	repo repository.BookRepositoryInterface,
	assetService *service.AssetService,
	syncService *service.SyncService,
) *AssetController {
	return &AssetController{
		repository:   repo,
		assetService: assetService,
		syncService:  syncService,
	}
}

// validCoverSizes is a map of valid size values for the cover endpoint
var validCoverSizes = map[string]bool{
	"thumb":  true,
	"medium": true,
}

// GetCover handles GET /assets/cover?handle=X&size=thumb|medium
// Serves the cached, resized JPEG form of a book's cover.
func (c *AssetController) GetCover(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		log.Printf("❌ GetCover: Method not allowed: %s", r.Method)
		writeJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	handle := strings.TrimSpace(r.URL.Query().Get("handle"))
	if handle == "" {
		writeJSONError(w, http.StatusBadRequest, "missing_handle", "handle parameter is required")
		return
	}

	size := strings.TrimSpace(r.URL.Query().Get("size"))
	if size == "" {
		size = "medium"
	}
	if !validCoverSizes[size] {
		writeJSONError(w, http.StatusBadRequest, "invalid_size", "Invalid size. Valid sizes: thumb, medium")
		return
	}

	ctx := context.Background()
	book, err := c.repository.GetBookByHandle(ctx, handle)
	if err != nil {
		log.Printf("⚠️  GetCover: %s: %v", handle, err)
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}

	data, err := c.assetService.OptimizedCover(ctx, *book, size)
	if err != nil {
		log.Printf("⚠️  GetCover: no cover for %s: %v", handle, err)
		writeJSONError(w, http.StatusNotFound, "cover_unavailable", err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("❌ GetCover: Error writing image response: %v", err)
	}
}

// SyncCovers handles POST /admin/covers/sync
// Matches cover files in the configured Drive folder to books by filename.
func (c *AssetController) SyncCovers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		log.Printf("❌ SyncCovers: Method not allowed: %s", r.Method)
		writeJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	if c.syncService == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "drive_unavailable", "Drive integration is not configured")
		return
	}

	folderID := strings.TrimSpace(r.URL.Query().Get("folder"))
	if folderID == "" {
		folderID = os.Getenv("GOOGLE_DRIVE_COVERS_FOLDER_ID")
	}
	if folderID == "" {
		writeJSONError(w, http.StatusBadRequest, "missing_folder", "folder parameter or GOOGLE_DRIVE_COVERS_FOLDER_ID is required")
		return
	}

	ctx := context.Background()
	matched, skipped, syncErrors, err := c.syncService.SyncCovers(ctx, folderID)
	if err != nil {
		log.Printf("❌ SyncCovers: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "sync_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"matched": matched,
		"skipped": skipped,
		"errors":  syncErrors,
	}); err != nil {
		log.Printf("❌ SyncCovers: Error encoding JSON response: %v", err)
	}
}
