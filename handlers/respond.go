package handlers

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"offertetool/scopes"
	"offertetool/services"
)

// errorBody is the JSON error payload of every API route.
type errorBody struct {
	Message string `json:"melding"`
	Scope   string `json:"scope,omitempty"`
	Details any    `json:"details,omitempty"`
}

// respondError maps service errors onto HTTP statuses. Unexpected errors are
// logged and reported without detail.
func respondError(e *core.RequestEvent, log *zap.Logger, err error) error {
	var (
		scopeErr    *scopes.ValidationError
		settingsErr *services.SettingsError
		fieldErrs   validation.Errors
	)
	switch {
	case errors.Is(err, services.ErrNotFound):
		return e.JSON(http.StatusNotFound, errorBody{Message: "niet gevonden"})
	case errors.As(err, &scopeErr):
		body := errorBody{Message: "ongeldige invoer", Scope: string(scopeErr.Scope), Details: scopeErr.Err.Error()}
		var inner validation.Errors
		if errors.As(scopeErr.Err, &inner) {
			body.Details = inner
		}
		return e.JSON(http.StatusBadRequest, body)
	case errors.As(err, &settingsErr):
		return e.JSON(http.StatusBadRequest, errorBody{Message: "ongeldige instellingen", Details: settingsErr.Err})
	case errors.As(err, &fieldErrs):
		return e.JSON(http.StatusBadRequest, errorBody{Message: "ongeldige invoer", Details: fieldErrs})
	case errors.Is(err, services.ErrInvalidTaskOrder), errors.Is(err, services.ErrInvalidFile):
		return e.JSON(http.StatusBadRequest, errorBody{Message: err.Error()})
	}

	log.Error("request failed",
		zap.String("method", e.Request.Method),
		zap.String("path", e.Request.URL.Path),
		zap.Error(err),
	)
	return e.JSON(http.StatusInternalServerError, errorBody{Message: "interne fout"})
}

func badRequest(e *core.RequestEvent, message string) error {
	return e.JSON(http.StatusBadRequest, errorBody{Message: message})
}
