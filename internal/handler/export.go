package handler

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"ainoggo/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// writeExport streams rows as a download in the format named by ?format (csv by default).
func writeExport(c *gin.Context, name, sheet string, rows []export.Row) {
	format := c.DefaultQuery("format", "csv")

	var contentType, ext string
	var write func(c *gin.Context) error
	switch format {
	case "csv":
		contentType, ext = "text/csv; charset=utf-8", ".csv"
		write = func(c *gin.Context) error { return export.WriteCSV(c.Writer, rows) }
	case "xlsx":
		contentType, ext = xlsxContentType, ".xlsx"
		write = func(c *gin.Context) error { return export.WriteXLSX(c.Writer, sheet, rows) }
	default:
		HandleError(c, fmt.Errorf("%w: %s", export.ErrUnsupportedFormat, format))
		return
	}

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.BuildFilename(name, ext)))
	c.Status(http.StatusOK)

	if err := write(c); err != nil {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] handler.writeExport: %s export failed: %v", requestID, format, err)
	}
}
