package controller

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"catalogue-press/repository"
)

// BookController handles HTTP requests for the book listing endpoints
type BookController struct {
	repository repository.BookRepositoryInterface
}

// NewBookController creates a new BookController
func NewBookController(repo repository.BookRepositoryInterface) *BookController {
	return &BookController{repository: repo}
}

// ListBooks handles GET /books?vendor=X&tag=Y
func (c *BookController) ListBooks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		log.Printf("❌ ListBooks: Method not allowed: %s", r.Method)
		writeJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	ctx := context.Background()
	vendor := strings.TrimSpace(r.URL.Query().Get("vendor"))
	tag := strings.TrimSpace(r.URL.Query().Get("tag"))

	books, err := c.repository.GetBooksForCatalog(ctx, vendor, tag)
	if err != nil {
		log.Printf("❌ ListBooks: Error fetching books: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"count":   len(books),
		"books":   books,
	}); err != nil {
		log.Printf("❌ ListBooks: Error encoding JSON response: %v", err)
	}
}

// GetBook handles GET /books/{handle}
func (c *BookController) GetBook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		log.Printf("❌ GetBook: Method not allowed: %s", r.Method)
		writeJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
		return
	}

	handle := strings.TrimPrefix(r.URL.Path, "/books/")
	if handle == "" || strings.Contains(handle, "/") {
		writeJSONError(w, http.StatusBadRequest, "invalid_handle", "Invalid book handle")
		return
	}

	ctx := context.Background()
	book, err := c.repository.GetBookByHandle(ctx, handle)
	if err != nil {
		log.Printf("⚠️  GetBook: %s: %v", handle, err)
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"book":    book,
	}); err != nil {
		log.Printf("❌ GetBook: Error encoding JSON response: %v", err)
	}
}
