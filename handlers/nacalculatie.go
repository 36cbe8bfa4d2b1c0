package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"offertetool/services"
)

// HandleNacalculatie returns the deviation report of a project. With
// ?opslaan=1 the report is also stored as a snapshot.
// Route: GET /api/tuin/projecten/{id}/nacalculatie
func HandleNacalculatie(projects *services.ProjectService, log *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project := GetProject(e.Request)
		if project == nil {
			return badRequest(e, "project ontbreekt")
		}
		persist := cast.ToBool(e.Request.URL.Query().Get("opslaan"))

		r, err := projects.Nacalculatie(project.Id, persist)
		if err != nil {
			return respondError(e, log, err)
		}
		return e.JSON(http.StatusOK, r)
	}
}
