package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Bayanda-Msibi/library-management-system/internal/catalog"
	"github.com/Bayanda-Msibi/library-management-system/internal/database/books"
)

// BooksController handles catalog browsing and book management endpoints.
type BooksController struct {
	catalog *catalog.Service
}

// NewBooksController creates a new books controller.
func NewBooksController(svc *catalog.Service) *BooksController {
	return &BooksController{catalog: svc}
}

type bookRequest struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	Quantity   int    `json:"quantity"`
	CategoryID *uint  `json:"category_id"`
}

func (br bookRequest) toInput() catalog.BookInput {
	return catalog.BookInput{
		Title:      strings.TrimSpace(br.Title),
		Author:     strings.TrimSpace(br.Author),
		Quantity:   br.Quantity,
		CategoryID: br.CategoryID,
	}
}

// Search lists books, optionally filtered by text, availability and category.
//
//	GET /api/books?q=dune&available=true&category_id=3
func (bc *BooksController) Search(c *gin.Context) {
	filter := books.SearchFilter{
		Text:          strings.TrimSpace(c.Query("q")),
		AvailableOnly: c.Query("available") == "true",
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondBadRequest(c, "invalid category_id")
			return
		}
		filter.CategoryID = uint(id)
	}

	results, err := bc.catalog.SearchBooks(filter)
	if err != nil {
		respondInternalError(c, err, "search books")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"books": results,
		"count": len(results),
	})
}

// Get returns a single book with its category.
func (bc *BooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.catalog.GetBook(id)
	if err != nil {
		bc.respondCatalogError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// Create adds a new book. Admin only.
func (bc *BooksController) Create(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book, err := bc.catalog.AddBook(GetUserRole(c), req.toInput())
	if err != nil {
		bc.respondMutationError(c, err, "create book")
		return
	}
	respondCreated(c, book)
}

// Update replaces a book's fields. Admin only.
func (bc *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book, err := bc.catalog.EditBook(GetUserRole(c), id, req.toInput())
	if err != nil {
		bc.respondMutationError(c, err, "update book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// Delete removes a book with no outstanding borrows. Admin only.
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.catalog.DeleteBook(GetUserRole(c), id); err != nil {
		bc.respondMutationError(c, err, "delete book")
		return
	}
	respondSuccess(c, "book deleted")
}

func (bc *BooksController) respondCatalogError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, catalog.ErrForbidden):
		respondForbidden(c, "admin role required")
	case errors.Is(err, catalog.ErrInvalidInput):
		respondBadRequest(c, "title and author are required")
	case errors.Is(err, catalog.ErrBookNotFound):
		respondNotFound(c, "book")
	case errors.Is(err, catalog.ErrCategoryNotFound):
		respondNotFound(c, "category")
	case errors.Is(err, catalog.ErrHasDependents):
		respondConflict(c, "book has copies checked out")
	default:
		respondInternalError(c, err, context)
	}
}

// respondMutationError handles errors from write paths. Unknown failures
// rolled back with zero mutation, so they surface as resubmittable conflicts.
func (bc *BooksController) respondMutationError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, catalog.ErrForbidden),
		errors.Is(err, catalog.ErrInvalidInput),
		errors.Is(err, catalog.ErrBookNotFound),
		errors.Is(err, catalog.ErrCategoryNotFound),
		errors.Is(err, catalog.ErrHasDependents):
		bc.respondCatalogError(c, err, context)
	default:
		respondStorageConflict(c, err, context)
	}
}
