package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"offertetool/services"
)

// HandlePlanningGenerate sizes the project's tasks from its voorcalculatie.
// Route: POST /api/tuin/projecten/{id}/planning
func HandlePlanningGenerate(projects *services.ProjectService, log *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project := GetProject(e.Request)
		if project == nil {
			return badRequest(e, "project ontbreekt")
		}

		p, err := projects.GeneratePlanning(project.Id)
		if err != nil {
			return respondError(e, log, err)
		}
		return e.JSON(http.StatusOK, p)
	}
}

type reorderRequest struct {
	TaskIDs []string `json:"taken"`
}

// HandlePlanningReorder stores a new task order. The body lists every task
// id exactly once: {"taken": ["id1", "id2", ...]}.
// Route: POST /api/tuin/projecten/{id}/planning/volgorde
func HandlePlanningReorder(projects *services.ProjectService, log *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project := GetProject(e.Request)
		if project == nil {
			return badRequest(e, "project ontbreekt")
		}

		var req reorderRequest
		if err := json.NewDecoder(e.Request.Body).Decode(&req); err != nil {
			return badRequest(e, "ongeldige volgorde")
		}

		p, err := projects.ReorderPlanning(project.Id, req.TaskIDs)
		if err != nil {
			return respondError(e, log, err)
		}
		return e.JSON(http.StatusOK, p)
	}
}
