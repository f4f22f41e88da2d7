package exporters

import (
	"fmt"
	"io"
	"time"

	"gorm.io/gorm"

	"github.com/Bayanda-Msibi/library-management-system/internal/database/books"
)

// Service fetches the catalog and renders it to an export format.
// Exports run synchronously in the request that asked for them.
type Service struct {
	books *books.Repository
}

// NewService creates a new export service.
func NewService(db *gorm.DB) *Service {
	return &Service{books: books.NewRepository(db)}
}

// ExportCSV writes the full inventory as CSV, ordered by title.
func (s *Service) ExportCSV(w io.Writer) error {
	list, err := s.books.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list books: %w", err)
	}
	return WriteCSV(w, list)
}

// ExportPDF writes the full inventory as a PDF report, ordered by title.
func (s *Service) ExportPDF(w io.Writer) error {
	list, err := s.books.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list books: %w", err)
	}
	return WritePDF(w, list)
}

// SnapshotFilename returns a timestamped name for a scheduled CSV snapshot.
func SnapshotFilename(at time.Time) string {
	return fmt.Sprintf("inventory-%s.csv", at.Format("2006-01-02T15-04-05"))
}
