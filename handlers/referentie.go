package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"offertetool/services"
)

// HandlePriceBookSearch lists the price book of an owner, filtered by
// ?categorie= and ?zoek=. Without ?eigenaar= the default owner is used.
// Route: GET /api/tuin/prijsboek
func HandlePriceBookSearch(refs *services.ReferenceService, defaultOwner string, log *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q := e.Request.URL.Query()
		owner := q.Get("eigenaar")
		if owner == "" {
			owner = defaultOwner
		}
		products, err := refs.SearchProducts(owner, q.Get("categorie"), q.Get("zoek"))
		if err != nil {
			return respondError(e, log, err)
		}
		return e.JSON(http.StatusOK, products)
	}
}

// Route: GET /api/tuin/referentie
func HandleReferenceData(refs *services.ReferenceService, log *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		overview, err := refs.Overview()
		if err != nil {
			return respondError(e, log, err)
		}
		return e.JSON(http.StatusOK, overview)
	}
}
