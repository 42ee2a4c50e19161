package service

import (
	"context"
	"fmt"
	"log"

	"catalogue-press/models"
	"catalogue-press/repository"
)

// SyncService matches cover images from a Drive folder to catalogue books by
// filename and records them on the book rows
type SyncService struct {
	driveService DriveServiceInterface
	bookRepo     repository.BookRepositoryInterface
}

// NewSyncService creates a new SyncService instance
func NewSyncService(driveService DriveServiceInterface, bookRepo repository.BookRepositoryInterface) *SyncService {
	return &SyncService{
		driveService: driveService,
		bookRepo:     bookRepo,
	}
}

// SyncCovers lists the Drive folder and records matched covers and internals.
// Returns matched count, skipped count, and per-file error messages.
func (s *SyncService) SyncCovers(ctx context.Context, folderID string) (int, int, []string, error) {
	log.Printf("🔄 SyncCovers: listing folder %s", folderID)

	covers, err := s.driveService.ListCoverFiles(folderID)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("failed to list cover files: %w", err)
	}

	matched := 0
	skipped := 0
	var errors []string
	for _, cover := range covers {
		if err := s.recordCover(ctx, cover); err != nil {
			skipped++
			errors = append(errors, fmt.Sprintf("%s: %v", cover.FileName, err))
			continue
		}
		matched++
	}

	log.Printf("✓ SyncCovers: %d matched, %d skipped of %d files", matched, skipped, len(covers))
	return matched, skipped, errors, nil
}

func (s *SyncService) recordCover(ctx context.Context, cover models.CoverAsset) error {
	if cover.Internal > 0 {
		return s.bookRepo.AppendInternalImage(ctx, cover.Handle, cover.ImageURL)
	}
	return s.bookRepo.UpdateCoverFile(ctx, cover.Handle, cover.DriveFileID)
}
