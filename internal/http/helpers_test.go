package http

import (
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Bayanda-Msibi/library-management-system/internal/auth"
	"github.com/Bayanda-Msibi/library-management-system/internal/catalog"
	"github.com/Bayanda-Msibi/library-management-system/internal/circulation"
	"github.com/Bayanda-Msibi/library-management-system/internal/database"
	"github.com/Bayanda-Msibi/library-management-system/internal/entities"
	"github.com/Bayanda-Msibi/library-management-system/internal/exporters"
)

func setupTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

// identityMiddleware injects a fixed user identity, standing in for the
// session-backed auth middleware.
func identityMiddleware(userID uint, role entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(auth.ContextKeyUserID, userID)
		c.Set(auth.ContextKeyRole, role)
		c.Next()
	}
}

// newTestRouter builds a router over the full route table with the given
// identity, skipping sessions and CSRF.
func newTestRouter(db *database.Database, userID uint, role entities.UserRole) *gin.Engine {
	router := gin.New()
	router.Use(identityMiddleware(userID, role))

	catalogService := catalog.NewService(db.DB)
	circulationService := circulation.NewService(db.DB, 14)
	exportService := exporters.NewService(db.DB)

	booksController := NewBooksController(catalogService)
	categoriesController := NewCategoriesController(catalogService)
	borrowsController := NewBorrowsController(circulationService)
	exportController := NewExportController(exportService)

	router.GET("/api/books", booksController.Search)
	router.GET("/api/books/:id", booksController.Get)
	router.POST("/api/books", booksController.Create)
	router.PUT("/api/books/:id", booksController.Update)
	router.DELETE("/api/books/:id", booksController.Delete)

	router.GET("/api/categories", categoriesController.List)
	router.POST("/api/categories", categoriesController.Create)
	router.PATCH("/api/categories/:id", categoriesController.Rename)
	router.DELETE("/api/categories/:id", categoriesController.Delete)

	router.POST("/api/books/:id/borrow", borrowsController.Borrow)
	router.POST("/api/borrows/:id/return", borrowsController.Return)
	router.GET("/api/borrows", borrowsController.List)
	router.GET("/api/borrows/active", borrowsController.ListActive)
	router.GET("/api/borrows/:id", borrowsController.Get)

	router.GET("/api/export/csv", exportController.CSV)
	router.GET("/api/export/pdf", exportController.PDF)

	return router
}

func seedUser(t *testing.T, db *database.Database, username string, role entities.UserRole) *entities.User {
	t.Helper()
	user := &entities.User{Username: username, PasswordHash: "x", Role: role}
	require.NoError(t, db.DB.Create(user).Error)
	return user
}

func seedBook(t *testing.T, db *database.Database, title, author string, quantity int) *entities.Book {
	t.Helper()
	book := &entities.Book{Title: title, Author: author, Quantity: quantity}
	require.NoError(t, db.DB.Create(book).Error)
	return book
}
