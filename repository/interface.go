package repository

import (
	"context"

	"catalogue-press/models"
)

// BookRepositoryInterface defines the contract for the source-data
// collaborator: it supplies the ordered book list the layout core consumes.
// Caller-provided order is preserved all the way to the rendered pages.
type BookRepositoryInterface interface {
	GetBooksForCatalog(ctx context.Context, vendor, tag string) ([]models.Book, error)
	GetBookByHandle(ctx context.Context, handle string) (*models.Book, error)
	UpdateCoverFile(ctx context.Context, handle, driveFileID string) error
	AppendInternalImage(ctx context.Context, handle, imageURL string) error
}
