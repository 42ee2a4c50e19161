package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net/http"
	"time"

	"catalogue-press/layout"
	"catalogue-press/models"
)

// AssetService is the asset-resolution collaborator: given a book it returns
// resolved binary image data plus dimensions, or the "missing" sentinel. The
// layout core renders the placeholder path for missing assets and never fails
// a page over one.
type AssetService struct {
	drive   DriveServiceInterface // may be nil when Drive is not configured
	client  *http.Client
	baseURL string // base URL for relative image endpoints
}

// NewAssetService creates a new AssetService
func NewAssetService(drive DriveServiceInterface, baseURL string) *AssetService {
	return &AssetService{
		drive:   drive,
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
	}
}

// fetchImage fetches raw image bytes from a URL. Relative URLs are resolved
// against the service base URL, matching how the print template references
// the local cover endpoints.
func (s *AssetService) fetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	fullURL := imageURL
	if len(imageURL) > 0 && imageURL[0] == '/' {
		fullURL = s.baseURL + imageURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return data, nil
}

// missingAsset is the sentinel for any fetch or decode failure.
func missingAsset() layout.ResolvedAsset {
	return layout.ResolvedAsset{Missing: true}
}

// resolveBytes turns raw image bytes into a resolved asset with dimensions.
func resolveBytes(data []byte) layout.ResolvedAsset {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		log.Printf("⚠️  Warning: failed to decode image: %v", err)
		return missingAsset()
	}
	return layout.ResolvedAsset{
		Data:   data,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}
}

// resolveCover fetches the primary image, preferring the synced Drive file
// over the raw source URL.
func (s *AssetService) resolveCover(ctx context.Context, b models.Book) layout.ResolvedAsset {
	if b.CoverFileID != "" && s.drive != nil {
		data, err := s.drive.DownloadImage(b.CoverFileID)
		if err == nil {
			return resolveBytes(data)
		}
		log.Printf("⚠️  Warning: drive cover fetch failed for %s: %v", b.Handle, err)
	}
	if b.ImageURL == "" {
		return missingAsset()
	}
	data, err := s.fetchImage(ctx, b.ImageURL)
	if err != nil {
		log.Printf("⚠️  Warning: cover fetch failed for %s: %v", b.Handle, err)
		return missingAsset()
	}
	return resolveBytes(data)
}

// Resolve fetches every image a book's projections may need.
func (s *AssetService) Resolve(ctx context.Context, b models.Book) layout.ResolvedAssets {
	assets := layout.ResolvedAssets{Cover: s.resolveCover(ctx, b)}
	for _, u := range b.AdditionalImages {
		data, err := s.fetchImage(ctx, u)
		if err != nil {
			log.Printf("⚠️  Warning: internal image fetch failed for %s: %v", b.Handle, err)
			assets.Internals = append(assets.Internals, missingAsset())
			continue
		}
		assets.Internals = append(assets.Internals, resolveBytes(data))
	}
	return assets
}

// ResolveAll resolves assets for a whole run, keyed by handle.
func (s *AssetService) ResolveAll(ctx context.Context, books []models.Book) map[string]layout.ResolvedAssets {
	out := make(map[string]layout.ResolvedAssets, len(books))
	for _, b := range books {
		out[b.Handle] = s.Resolve(ctx, b)
	}
	return out
}

// OptimizedCover returns the cached, resized JPEG form of a book's cover for
// the local cover endpoint.
func (s *AssetService) OptimizedCover(ctx context.Context, b models.Book, size string) ([]byte, error) {
	cachePath := GetCachePath(b.Handle, size)
	if CacheExists(cachePath) {
		return ReadFromCache(cachePath)
	}

	cover := s.resolveCover(ctx, b)
	if cover.Missing {
		return nil, fmt.Errorf("no cover available for %s", b.Handle)
	}

	optimized, err := OptimizeImage(cover.Data, size)
	if err != nil {
		return nil, err
	}
	if err := SaveToCache(cachePath, optimized); err != nil {
		log.Printf("⚠️  Warning: failed to cache cover for %s: %v", b.Handle, err)
	}
	return optimized, nil
}
