package http

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Bayanda-Msibi/library-management-system/internal/exporters"
)

// ExportController serves inventory downloads. Exports are generated
// synchronously in the request.
type ExportController struct {
	exporter *exporters.Service
}

// NewExportController creates a new export controller.
func NewExportController(svc *exporters.Service) *ExportController {
	return &ExportController{exporter: svc}
}

// CSV streams the inventory as a CSV attachment.
//
//	GET /api/export/csv
func (ec *ExportController) CSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := ec.exporter.ExportCSV(&buf); err != nil {
		respondInternalError(c, err, "export csv")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="books.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// PDF streams the inventory as a PDF attachment.
//
//	GET /api/export/pdf
func (ec *ExportController) PDF(c *gin.Context) {
	var buf bytes.Buffer
	if err := ec.exporter.ExportPDF(&buf); err != nil {
		respondInternalError(c, err, "export pdf")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="books.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
