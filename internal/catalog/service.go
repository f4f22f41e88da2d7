// Package catalog implements CRUD over books and categories with the
// referential and uniqueness rules the inventory depends on.
//
// Catalog mutations are admin-only. The HTTP layer already gates those routes,
// but every mutating operation here re-checks the acting role before touching
// the store, so the guard holds no matter who calls the service.
package catalog

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Bayanda-Msibi/library-management-system/internal/database/books"
	"github.com/Bayanda-Msibi/library-management-system/internal/database/categories"
	"github.com/Bayanda-Msibi/library-management-system/internal/entities"
)

var (
	ErrForbidden        = errors.New("operation requires the admin role")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicateName    = errors.New("category name already taken")
	ErrCategoryNotFound = errors.New("category not found")
	ErrBookNotFound     = errors.New("book not found")

	// ErrHasDependents blocks deletes that would orphan references: a
	// category with books assigned, or a book with outstanding borrows.
	ErrHasDependents = errors.New("record is still referenced")
)

// BookInput carries the user-entered fields for creating or editing a book.
// Fields arrive already trimmed from the presentation layer.
type BookInput struct {
	Title      string
	Author     string
	Quantity   int
	CategoryID *uint
}

// Service handles catalog management.
type Service struct {
	db         *gorm.DB
	books      *books.Repository
	categories *categories.Repository
}

// NewService creates a catalog service.
func NewService(db *gorm.DB) *Service {
	return &Service{
		db:         db,
		books:      books.NewRepository(db),
		categories: categories.NewRepository(db),
	}
}

// requireAdmin rejects non-admin actors before any state is read or written.
func requireAdmin(role entities.UserRole) error {
	if role != entities.UserRoleAdmin {
		return ErrForbidden
	}
	return nil
}

// AddCategory creates a category with a unique name.
func (s *Service) AddCategory(role entities.UserRole, name string) (*entities.Category, error) {
	if err := requireAdmin(role); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.categories.GetByName(name); err == nil {
		return nil, ErrDuplicateName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}

	category, err := s.categories.Create(name)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// RenameCategory changes a category's name, keeping names unique.
func (s *Service) RenameCategory(role entities.UserRole, id uint, name string) (*entities.Category, error) {
	if err := requireAdmin(role); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrInvalidInput
	}

	category, err := s.categories.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	if existing, err := s.categories.GetByName(name); err == nil {
		if existing.ID != id {
			return nil, ErrDuplicateName
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}

	if err := s.categories.Rename(id, name); err != nil {
		return nil, fmt.Errorf("failed to rename category: %w", err)
	}
	category.Name = name
	return category, nil
}

// DeleteCategory removes a category that no book references.
func (s *Service) DeleteCategory(role entities.UserRole, id uint) error {
	if err := requireAdmin(role); err != nil {
		return err
	}

	if _, err := s.categories.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to load category: %w", err)
	}

	count, err := s.categories.CountBooks(id)
	if err != nil {
		return fmt.Errorf("failed to count category books: %w", err)
	}
	if count > 0 {
		return ErrHasDependents
	}

	return s.categories.Delete(id)
}

// ListCategories returns all categories ordered by name.
func (s *Service) ListCategories() ([]entities.Category, error) {
	return s.categories.List()
}

// AddBook creates a book. Negative quantities are clamped to zero rather than
// rejected, matching the form-entry policy.
func (s *Service) AddBook(role entities.UserRole, input BookInput) (*entities.Book, error) {
	if err := requireAdmin(role); err != nil {
		return nil, err
	}
	if input.Title == "" || input.Author == "" {
		return nil, ErrInvalidInput
	}
	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(*input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to load category: %w", err)
		}
	}

	book := &entities.Book{
		Title:      input.Title,
		Author:     input.Author,
		Quantity:   clampQuantity(input.Quantity),
		CategoryID: input.CategoryID,
	}
	if err := s.books.Create(book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return book, nil
}

// EditBook replaces a book's fields with the same clamping as AddBook.
func (s *Service) EditBook(role entities.UserRole, id uint, input BookInput) (*entities.Book, error) {
	if err := requireAdmin(role); err != nil {
		return nil, err
	}
	if input.Title == "" || input.Author == "" {
		return nil, ErrInvalidInput
	}

	book, err := s.books.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to load book: %w", err)
	}
	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(*input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to load category: %w", err)
		}
	}

	book.Title = input.Title
	book.Author = input.Author
	book.Quantity = clampQuantity(input.Quantity)
	book.CategoryID = input.CategoryID
	book.Category = nil

	if err := s.books.Update(book); err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	return book, nil
}

// DeleteBook removes a book. Deletion is blocked while copies are still
// checked out; returned borrows stay in the ledger read-only.
func (s *Service) DeleteBook(role entities.UserRole, id uint) error {
	if err := requireAdmin(role); err != nil {
		return err
	}

	if _, err := s.books.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return fmt.Errorf("failed to load book: %w", err)
	}

	active, err := s.books.CountActiveBorrows(id)
	if err != nil {
		return fmt.Errorf("failed to count active borrows: %w", err)
	}
	if active > 0 {
		return ErrHasDependents
	}

	return s.books.Delete(id)
}

// GetBook retrieves a book with its category.
func (s *Service) GetBook(id uint) (*entities.Book, error) {
	book, err := s.books.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// SearchBooks lists books matching the filter, ordered by title.
func (s *Service) SearchBooks(filter books.SearchFilter) ([]entities.Book, error) {
	return s.books.Search(filter)
}

func clampQuantity(q int) int {
	if q < 0 {
		return 0
	}
	return q
}
