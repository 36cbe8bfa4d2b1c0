package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"offertetool/services"
)

// HandleQuoteCalculate recomputes a stored quote and returns the result.
// Route: POST /api/tuin/offertes/{id}/berekenen
func HandleQuoteCalculate(quotes *services.QuoteService, log *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		if quoteID == "" {
			return badRequest(e, "offerte ontbreekt")
		}

		res, err := quotes.Calculate(quoteID)
		if err != nil {
			return respondError(e, log, err)
		}
		return e.JSON(http.StatusOK, res)
	}
}
