package converters

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nadeesha208/restosaas/internal/service/models/menuitem"
	"github.com/nadeesha208/restosaas/internal/service/models/order"
	"github.com/nadeesha208/restosaas/internal/service/services/ordersvc"
)

// errorResponse is the JSON error body.
type errorResponse struct {
	Message string `json:"message"`
}

// RespondJSON writes a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Error writing response", "error", err)
	}
}

// RespondError maps a service error onto the HTTP taxonomy: validation
// failures are 400, unknown references 404, rejected lifecycle transitions
// 409 so callers can tell "already finished" apart from bad input, and
// anything else is a 500 from the store, already rolled back and safe to
// retry.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrNoItems),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrCurrencyMismatch):
		RespondJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
	case errors.Is(err, order.ErrNotFound),
		errors.Is(err, menuitem.ErrNotFound),
		errors.Is(err, ordersvc.ErrUnknownReference):
		RespondJSON(w, http.StatusNotFound, errorResponse{Message: err.Error()})
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrNotCancellable):
		RespondJSON(w, http.StatusConflict, errorResponse{Message: err.Error()})
	default:
		RespondJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
	}
}
