// Package books provides database operations for the book catalog.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	results, err := repo.Search(books.SearchFilter{Text: "dune"})
package books

import (
	"gorm.io/gorm"

	"github.com/Bayanda-Msibi/library-management-system/internal/entities"
)

// SearchFilter narrows a catalog listing. Zero values leave a dimension
// unfiltered.
type SearchFilter struct {
	Text          string // case-insensitive substring match on title or author
	AvailableOnly bool   // only books with at least one copy on the shelf
	CategoryID    uint   // 0 means any category
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new book.
func (r *Repository) Create(book *entities.Book) error {
	return r.db.Create(book).Error
}

// GetByID retrieves a book with its category.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Category").First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Update persists field changes on an existing book. Fields are selected
// explicitly so zero values (quantity 0, cleared category) are written too.
func (r *Repository) Update(book *entities.Book) error {
	return r.db.Model(book).Select("title", "author", "quantity", "category_id").Updates(book).Error
}

// Delete removes a book. Historical borrow rows keep their book_id.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Book{}, id).Error
}

// Search lists books matching the filter, ordered by title.
func (r *Repository) Search(filter SearchFilter) ([]entities.Book, error) {
	q := r.db.Preload("Category").Model(&entities.Book{})

	if filter.Text != "" {
		pattern := "%" + filter.Text + "%"
		q = q.Where("LOWER(title) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?)", pattern, pattern)
	}
	if filter.AvailableOnly {
		q = q.Where("quantity > 0")
	}
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}

	var books []entities.Book
	err := q.Order("title ASC").Find(&books).Error
	return books, err
}

// ListAll returns every book ordered by title, with categories preloaded.
// Used by the exporters.
func (r *Repository) ListAll() ([]entities.Book, error) {
	return r.Search(SearchFilter{})
}

// CountActiveBorrows returns the number of outstanding borrows for a book.
func (r *Repository) CountActiveBorrows(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Borrow{}).
		Where("book_id = ? AND return_date IS NULL", id).
		Count(&count).Error
	return count, err
}
