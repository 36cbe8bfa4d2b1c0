package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"offertetool/services"
)

// HandlePriceBookImport imports an uploaded .csv or .xlsx price book for the
// owner in the "eigenaar" form field, or defaultOwner when it is empty. Files with invalid rows are rejected
// as a whole; with ?rapport=1 the errors come back as an xlsx report.
// Route: POST /api/tuin/prijsboek/import
func HandlePriceBookImport(books *services.PriceBookService, defaultOwner string, log *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return badRequest(e, "bestand te groot of ongeldig formulier")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return badRequest(e, "kies een bestand om te uploaden")
		}
		defer file.Close()

		owner := e.Request.FormValue("eigenaar")
		if owner == "" {
			owner = defaultOwner
		}
		res, err := books.Import(owner, file, header.Filename)
		if errors.Is(err, services.ErrImportRejected) {
			if cast.ToBool(e.Request.URL.Query().Get("rapport")) {
				report, rerr := services.GenerateErrorReport(res.Errors)
				if rerr != nil {
					return respondError(e, log, rerr)
				}
				e.Response.Header().Set("Content-Type", xlsxContentType)
				e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, "prijsboek_fouten.xlsx"))
				e.Response.WriteHeader(http.StatusUnprocessableEntity)
				_, werr := e.Response.Write(report)
				return werr
			}
			return e.JSON(http.StatusUnprocessableEntity, res)
		}
		if err != nil {
			return respondError(e, log, err)
		}
		return e.JSON(http.StatusOK, res)
	}
}
