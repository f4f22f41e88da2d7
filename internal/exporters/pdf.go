package exporters

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/Bayanda-Msibi/library-management-system/internal/entities"
)

// WritePDF renders the inventory as a simple one-line-per-book PDF report.
func WritePDF(w io.Writer, books []entities.Book) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Book Inventory")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	for _, book := range books {
		category := "-"
		if book.Category != nil {
			category = book.Category.Name
		}

		line := fmt.Sprintf("%d. %s by %s | Qty: %d | %s",
			book.ID, book.Title, book.Author, book.Quantity, category)
		pdf.MultiCell(0, 7, line, "", "L", false)
	}

	if len(books) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 7, "No books in the catalog.")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}
