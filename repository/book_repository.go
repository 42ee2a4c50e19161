package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"catalogue-press/db"
	"catalogue-press/models"
)

// BookRepository handles database operations for catalogue books
type BookRepository struct{}

// NewBookRepository creates a new BookRepository
func NewBookRepository() *BookRepository {
	return &BookRepository{}
}

// Ensure BookRepository implements BookRepositoryInterface
var _ BookRepositoryInterface = (*BookRepository)(nil)

const bookColumns = `
	b.handle,
	b.title,
	COALESCE(b.subtitle, '') AS subtitle,
	COALESCE(b.author, '') AS author,
	COALESCE(b.author_bio, '') AS author_bio,
	COALESCE(b.description, '') AS description,
	COALESCE(b.price, '') AS price,
	COALESCE(b.image_url, '') AS image_url,
	COALESCE(b.internal_images, '') AS internal_images,
	COALESCE(b.binding, '') AS binding,
	COALESCE(b.pages, '') AS pages,
	COALESCE(b.dimensions, '') AS dimensions,
	COALESCE(b.release_date, '') AS release_date,
	COALESCE(b.imprint, '') AS imprint,
	COALESCE(b.weight, '') AS weight,
	COALESCE(b.illustrations, '') AS illustrations,
	COALESCE(b.author_country, '') AS author_country,
	COALESCE(b.discount_code, '') AS discount_code,
	COALESCE(b.sku, '') AS sku,
	COALESCE(b.vendor, '') AS vendor,
	COALESCE(b.tags, '') AS tags,
	COALESCE(b.cover_file_id, '') AS cover_file_id`

// GetBooksForCatalog retrieves all active books, optionally filtered by
// vendor and tag, in catalogue position order.
func (r *BookRepository) GetBooksForCatalog(ctx context.Context, vendor, tag string) ([]models.Book, error) {
	log.Printf("🔍 GetBooksForCatalog: vendor=%q tag=%q", vendor, tag)

	query := `SELECT` + bookColumns + `
		FROM books b
		WHERE b.is_active = true`
	args := []interface{}{}

	if vendor != "" {
		args = append(args, vendor)
		query += fmt.Sprintf(" AND b.vendor = $%d", len(args))
	}
	if tag != "" {
		args = append(args, "%"+tag+"%")
		query += fmt.Sprintf(" AND b.tags LIKE $%d", len(args))
	}
	query += " ORDER BY b.position, b.title"

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}

	log.Printf("✓ GetBooksForCatalog: %d books", len(books))
	return books, nil
}

// GetBookByHandle retrieves one book by its handle.
func (r *BookRepository) GetBookByHandle(ctx context.Context, handle string) (*models.Book, error) {
	query := `SELECT` + bookColumns + ` FROM books b WHERE b.handle = $1`

	row := db.DB.QueryRowContext(ctx, query, handle)
	book, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("book not found: %s", handle)
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateCoverFile records the Drive file backing a book's primary image.
func (r *BookRepository) UpdateCoverFile(ctx context.Context, handle, driveFileID string) error {
	result, err := db.DB.ExecContext(ctx,
		`UPDATE books SET cover_file_id = $1 WHERE handle = $2`, driveFileID, handle)
	if err != nil {
		return fmt.Errorf("failed to update cover file: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no book with handle %s", handle)
	}
	return nil
}

// AppendInternalImage appends one supplementary image URL to a book.
func (r *BookRepository) AppendInternalImage(ctx context.Context, handle, imageURL string) error {
	_, err := db.DB.ExecContext(ctx, `
		UPDATE books
		SET internal_images = CASE
			WHEN COALESCE(internal_images, '') = '' THEN $1
			ELSE internal_images || ',' || $1
		END
		WHERE handle = $2`, imageURL, handle)
	if err != nil {
		return fmt.Errorf("failed to append internal image: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBook(row rowScanner) (models.Book, error) {
	var b models.Book
	var authorBio, description, internalImages, tags string

	err := row.Scan(
		&b.Handle, &b.Title, &b.Subtitle, &b.Author,
		&authorBio, &description,
		&b.Price, &b.ImageURL, &internalImages,
		&b.Binding, &b.PageCount, &b.Dimensions, &b.ReleaseDate,
		&b.Imprint, &b.Weight, &b.Illustrations,
		&b.AuthorCountry, &b.DiscountCode, &b.SKU, &b.Vendor,
		&tags, &b.CoverFileID,
	)
	if err != nil {
		return models.Book{}, err
	}

	// Source fields arrive as raw markup; the plain-text forms are filled in
	// by the ingestion step in the catalog service.
	b.AuthorBioHTML = models.RichText(authorBio)
	b.DescriptionHTML = models.RichText(description)
	b.AdditionalImages = splitList(internalImages)
	b.Tags = splitList(tags)
	return b, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
