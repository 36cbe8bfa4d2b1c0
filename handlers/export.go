package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"offertetool/collections"
	"offertetool/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

func writeXLSX(e *core.RequestEvent, filename string, data []byte) error {
	e.Response.Header().Set("Content-Type", xlsxContentType)
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	e.Response.WriteHeader(http.StatusOK)
	_, err := e.Response.Write(data)
	return err
}

// HandleQuoteExportExcel downloads a quote as xlsx.
// Route: GET /api/tuin/offertes/{id}/export
func HandleQuoteExportExcel(app core.App, quotes *services.QuoteService, log *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		if quoteID == "" {
			return badRequest(e, "offerte ontbreekt")
		}

		xlsx, err := quotes.ExportExcel(quoteID)
		if err != nil {
			return respondError(e, log, err)
		}

		title := "offerte"
		if rec, err := app.FindRecordById(collections.Quotes, quoteID); err == nil {
			title = rec.GetString("titel")
		}
		filename := fmt.Sprintf("Offerte_%s_%d.xlsx", sanitizeFilename(title), time.Now().Year())
		return writeXLSX(e, filename, xlsx)
	}
}

// HandleNacalculatieExportExcel downloads the current deviation report.
// Route: GET /api/tuin/projecten/{id}/nacalculatie/export
func HandleNacalculatieExportExcel(projects *services.ProjectService, log *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project := GetProject(e.Request)
		if project == nil {
			return badRequest(e, "project ontbreekt")
		}
		title := project.GetString("naam")

		xlsx, err := projects.ExportNacalculatie(project.Id, title)
		if err != nil {
			return respondError(e, log, err)
		}
		filename := fmt.Sprintf("Nacalculatie_%s_%d.xlsx", sanitizeFilename(title), time.Now().Year())
		return writeXLSX(e, filename, xlsx)
	}
}
