// Package exporters renders the book catalog to downloadable formats.
package exporters

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/Bayanda-Msibi/library-management-system/internal/entities"
)

// csvHeader is the column layout of the inventory export.
var csvHeader = []string{"ID", "Title", "Author", "Quantity", "Category"}

// sanitizeField keeps exported rows single-column-safe for consumers that
// split on commas without a real CSV parser.
func sanitizeField(s string) string {
	return strings.ReplaceAll(s, ",", " ")
}

// WriteCSV writes the inventory as CSV, one row per book.
func WriteCSV(w io.Writer, books []entities.Book) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, book := range books {
		category := ""
		if book.Category != nil {
			category = book.Category.Name
		}

		row := []string{
			fmt.Sprintf("%d", book.ID),
			sanitizeField(book.Title),
			sanitizeField(book.Author),
			fmt.Sprintf("%d", book.Quantity),
			sanitizeField(category),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
