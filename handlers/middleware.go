package handlers

import (
	"context"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"offertetool/collections"
)

type contextKey string

const ProjectKey contextKey = "project"

// GetProject extracts the project loaded by ProjectMiddleware.
func GetProject(r *http.Request) *core.Record {
	if val, ok := r.Context().Value(ProjectKey).(*core.Record); ok {
		return val
	}
	return nil
}

// ProjectMiddleware loads the project named by the {id} path value and
// stores it in the request context. Unknown projects end the request with 404.
func ProjectMiddleware(app core.App) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById(collections.Projects, e.Request.PathValue("id"))
		if err != nil {
			return e.JSON(http.StatusNotFound, errorBody{Message: "project niet gevonden"})
		}
		ctx := context.WithValue(e.Request.Context(), ProjectKey, rec)
		e.Request = e.Request.WithContext(ctx)
		return e.Next()
	}
}
