package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"offertetool/scopes"
	"offertetool/services"
)

// parseDate accepts a plain date (2026-05-04) as well as full timestamps.
func parseDate(s string) (time.Time, error) {
	t, err := cast.ToTimeE(s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

type timeEntryRequest struct {
	Date   string  `json:"datum"`
	Worker string  `json:"medewerker"`
	Hours  float64 `json:"uren"`
	Scope  string  `json:"scope"`
	Note   string  `json:"notitie"`
}

// HandleTimeEntryCreate appends one hour registration.
// Route: POST /api/tuin/projecten/{id}/uren
func HandleTimeEntryCreate(projects *services.ProjectService, log *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project := GetProject(e.Request)
		if project == nil {
			return badRequest(e, "project ontbreekt")
		}

		var req timeEntryRequest
		if err := json.NewDecoder(e.Request.Body).Decode(&req); err != nil {
			return badRequest(e, "ongeldige registratie")
		}
		date, err := parseDate(req.Date)
		if err != nil {
			return badRequest(e, "ongeldige datum")
		}

		saved, err := projects.LogTime(project.Id, services.TimeEntry{
			Date:   date,
			Worker: req.Worker,
			Hours:  req.Hours,
			Scope:  scopes.Key(req.Scope),
			Note:   req.Note,
		})
		if err != nil {
			return respondError(e, log, err)
		}
		return e.JSON(http.StatusCreated, saved)
	}
}

type machineUsageRequest struct {
	Date    string  `json:"datum"`
	Machine string  `json:"machine"`
	Hours   float64 `json:"uren"`
	Cost    float64 `json:"kosten"`
	Note    string  `json:"notitie"`
}

// HandleMachineUsageCreate appends one equipment registration.
// Route: POST /api/tuin/projecten/{id}/machines
func HandleMachineUsageCreate(projects *services.ProjectService, log *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project := GetProject(e.Request)
		if project == nil {
			return badRequest(e, "project ontbreekt")
		}

		var req machineUsageRequest
		if err := json.NewDecoder(e.Request.Body).Decode(&req); err != nil {
			return badRequest(e, "ongeldige registratie")
		}
		date, err := parseDate(req.Date)
		if err != nil {
			return badRequest(e, "ongeldige datum")
		}

		saved, err := projects.LogMachine(project.Id, services.MachineUsage{
			Date:    date,
			Machine: req.Machine,
			Hours:   req.Hours,
			Cost:    req.Cost,
			Note:    req.Note,
		})
		if err != nil {
			return respondError(e, log, err)
		}
		return e.JSON(http.StatusCreated, saved)
	}
}
