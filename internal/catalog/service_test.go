package catalog

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Bayanda-Msibi/library-management-system/internal/database"
	"github.com/Bayanda-Msibi/library-management-system/internal/database/books"
	"github.com/Bayanda-Msibi/library-management-system/internal/entities"
)

// setupTestDB opens a throwaway database through the production constructor
// so tests run against the same DSN and schema constraints as the server.
func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()
	dbPath := "./test_catalog_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db.DB, cleanup
}

func TestService_AddCategory(t *testing.T) {
	t.Run("creates category", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		svc := NewService(db)

		category, err := svc.AddCategory(entities.UserRoleAdmin, "Science Fiction")

		require.NoError(t, err)
		assert.NotZero(t, category.ID)
		assert.Equal(t, "Science Fiction", category.Name)
	})

	t.Run("duplicate name fails", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		svc := NewService(db)

		_, err := svc.AddCategory(entities.UserRoleAdmin, "Science Fiction")
		require.NoError(t, err)

		_, err = svc.AddCategory(entities.UserRoleAdmin, "Science Fiction")
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("name match is case sensitive", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		svc := NewService(db)

		_, err := svc.AddCategory(entities.UserRoleAdmin, "History")
		require.NoError(t, err)

		_, err = svc.AddCategory(entities.UserRoleAdmin, "history")
		assert.NoError(t, err)
	})

	t.Run("empty name fails", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		svc := NewService(db)

		_, err := svc.AddCategory(entities.UserRoleAdmin, "")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("non-admin is rejected before any write", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		svc := NewService(db)

		_, err := svc.AddCategory(entities.UserRoleUser, "Science Fiction")
		assert.ErrorIs(t, err, ErrForbidden)

		categories, err := svc.ListCategories()
		require.NoError(t, err)
		assert.Empty(t, categories)
	})
}

func TestService_RenameCategory(t *testing.T) {
	t.Run("renames category", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		svc := NewService(db)

		category, err := svc.AddCategory(entities.UserRoleAdmin, "SciFi")
		require.NoError(t, err)

		renamed, err := svc.RenameCategory(entities.UserRoleAdmin, category.ID, "Science Fiction")
		require.NoError(t, err)
		assert.Equal(t, "Science Fiction", renamed.Name)
	})

	t.Run("renaming to itself is allowed", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		svc := NewService(db)

		category, err := svc.AddCategory(entities.UserRoleAdmin, "SciFi")
		require.NoError(t, err)

		_, err = svc.RenameCategory(entities.UserRoleAdmin, category.ID, "SciFi")
		assert.NoError(t, err)
	})

	t.Run("name held by another category fails", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		svc := NewService(db)

		_, err := svc.AddCategory(entities.UserRoleAdmin, "History")
		require.NoError(t, err)
		category, err := svc.AddCategory(entities.UserRoleAdmin, "SciFi")
		require.NoError(t, err)

		_, err = svc.RenameCategory(entities.UserRoleAdmin, category.ID, "History")
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("unknown category fails", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		svc := NewService(db)

		_, err := svc.RenameCategory(entities.UserRoleAdmin, 999, "History")
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}

func TestService_DeleteCategory(t *testing.T) {
	t.Run("deletes empty category", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		svc := NewService(db)

		category, err := svc.AddCategory(entities.UserRoleAdmin, "SciFi")
		require.NoError(t, err)

		require.NoError(t, svc.DeleteCategory(entities.UserRoleAdmin, category.ID))

		categories, err := svc.ListCategories()
		require.NoError(t, err)
		assert.Empty(t, categories)
	})

	t.Run("category with books fails with has dependents", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		svc := NewService(db)

		category, err := svc.AddCategory(entities.UserRoleAdmin, "SciFi")
		require.NoError(t, err)
		_, err = svc.AddBook(entities.UserRoleAdmin, BookInput{
			Title: "Dune", Author: "Frank Herbert", Quantity: 1, CategoryID: &category.ID,
		})
		require.NoError(t, err)

		err = svc.DeleteCategory(entities.UserRoleAdmin, category.ID)
		assert.ErrorIs(t, err, ErrHasDependents)
	})
}

func TestService_AddBook(t *testing.T) {
	t.Run("creates book", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		svc := NewService(db)

		book, err := svc.AddBook(entities.UserRoleAdmin, BookInput{
			Title: "Dune", Author: "Frank Herbert", Quantity: 3,
		})

		require.NoError(t, err)
		assert.NotZero(t, book.ID)
		assert.Equal(t, 3, book.Quantity)
		assert.Nil(t, book.CategoryID)
	})

	t.Run("negative quantity is clamped to zero", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		svc := NewService(db)

		book, err := svc.AddBook(entities.UserRoleAdmin, BookInput{
			Title: "Dune", Author: "Frank Herbert", Quantity: -5,
		})

		require.NoError(t, err)
		assert.Equal(t, 0, book.Quantity)
	})

	t.Run("missing title or author fails", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		svc := NewService(db)

		_, err := svc.AddBook(entities.UserRoleAdmin, BookInput{Author: "Frank Herbert"})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.AddBook(entities.UserRoleAdmin, BookInput{Title: "Dune"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown category fails", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		svc := NewService(db)

		missing := uint(999)
		_, err := svc.AddBook(entities.UserRoleAdmin, BookInput{
			Title: "Dune", Author: "Frank Herbert", CategoryID: &missing,
		})
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}

func TestService_EditBook(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewService(db)

	book, err := svc.AddBook(entities.UserRoleAdmin, BookInput{
		Title: "Dune", Author: "F. Herbert", Quantity: 1,
	})
	require.NoError(t, err)

	edited, err := svc.EditBook(entities.UserRoleAdmin, book.ID, BookInput{
		Title: "Dune", Author: "Frank Herbert", Quantity: -3,
	})

	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", edited.Author)
	assert.Equal(t, 0, edited.Quantity)

	stored, err := svc.GetBook(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", stored.Author)
	assert.Equal(t, 0, stored.Quantity)
}

func TestService_DeleteBook(t *testing.T) {
	t.Run("deletes book without active borrows", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		svc := NewService(db)

		book, err := svc.AddBook(entities.UserRoleAdmin, BookInput{
			Title: "Dune", Author: "Frank Herbert", Quantity: 1,
		})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteBook(entities.UserRoleAdmin, book.ID))

		_, err = svc.GetBook(book.ID)
		assert.ErrorIs(t, err, ErrBookNotFound)
	})

	t.Run("book with active borrow fails with has dependents", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		svc := NewService(db)

		book, err := svc.AddBook(entities.UserRoleAdmin, BookInput{
			Title: "Dune", Author: "Frank Herbert", Quantity: 1,
		})
		require.NoError(t, err)

		user := &entities.User{Username: "alice", PasswordHash: "x", Role: entities.UserRoleUser}
		require.NoError(t, db.Create(user).Error)
		borrow := &entities.Borrow{
			UserID: user.ID, BookID: book.ID,
			BorrowDate: time.Now(), DueDate: time.Now().AddDate(0, 0, 14),
		}
		require.NoError(t, db.Create(borrow).Error)

		err = svc.DeleteBook(entities.UserRoleAdmin, book.ID)
		assert.ErrorIs(t, err, ErrHasDependents)
	})

	t.Run("returned borrows do not block deletion", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		svc := NewService(db)

		book, err := svc.AddBook(entities.UserRoleAdmin, BookInput{
			Title: "Dune", Author: "Frank Herbert", Quantity: 1,
		})
		require.NoError(t, err)

		user := &entities.User{Username: "alice", PasswordHash: "x", Role: entities.UserRoleUser}
		require.NoError(t, db.Create(user).Error)
		returned := time.Now()
		borrow := &entities.Borrow{
			UserID: user.ID, BookID: book.ID,
			BorrowDate: returned.AddDate(0, 0, -20), DueDate: returned.AddDate(0, 0, -6),
			ReturnDate: &returned,
		}
		require.NoError(t, db.Create(borrow).Error)

		require.NoError(t, svc.DeleteBook(entities.UserRoleAdmin, book.ID))

		// The history row survives the deletion and keeps its book reference.
		var kept entities.Borrow
		require.NoError(t, db.First(&kept, borrow.ID).Error)
		assert.Equal(t, book.ID, kept.BookID)
		assert.NotNil(t, kept.ReturnDate)
	})
}

func TestService_SearchBooks(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	svc := NewService(db)

	category, err := svc.AddCategory(entities.UserRoleAdmin, "SciFi")
	require.NoError(t, err)

	seed := []BookInput{
		{Title: "Dune", Author: "Frank Herbert", Quantity: 1, CategoryID: &category.ID},
		{Title: "Hyperion", Author: "Dan Simmons", Quantity: 0, CategoryID: &category.ID},
		{Title: "A Brief History of Time", Author: "Stephen Hawking", Quantity: 2},
	}
	for _, input := range seed {
		_, err := svc.AddBook(entities.UserRoleAdmin, input)
		require.NoError(t, err)
	}

	t.Run("no filter lists everything ordered by title", func(t *testing.T) {
		results, err := svc.SearchBooks(books.SearchFilter{})
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "A Brief History of Time", results[0].Title)
		assert.Equal(t, "Dune", results[1].Title)
		assert.Equal(t, "Hyperion", results[2].Title)
	})

	t.Run("text matches title or author case-insensitively", func(t *testing.T) {
		results, err := svc.SearchBooks(books.SearchFilter{Text: "dUNe"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Dune", results[0].Title)

		results, err = svc.SearchBooks(books.SearchFilter{Text: "simmons"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Hyperion", results[0].Title)
	})

	t.Run("available only hides zero-quantity books", func(t *testing.T) {
		results, err := svc.SearchBooks(books.SearchFilter{AvailableOnly: true})
		require.NoError(t, err)
		require.Len(t, results, 2)
		for _, b := range results {
			assert.Greater(t, b.Quantity, 0)
		}
	})

	t.Run("category filter", func(t *testing.T) {
		results, err := svc.SearchBooks(books.SearchFilter{CategoryID: category.ID})
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})
}
