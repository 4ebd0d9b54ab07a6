package updatestatus

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nadeesha208/restosaas/internal/service/models/order"
	"github.com/nadeesha208/restosaas/internal/transport/http/converters"
)

// service is an interface for the service layer.
type service interface {
	UpdateStatus(ctx context.Context, orderID int64, target order.Status) (*order.Order, error)
}

// updateStatusRequest represents a status update request.
type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles the order status update request.
func UpdateStatus(w http.ResponseWriter, r *http.Request, service service) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)

		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for status update", "error", err)

		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		converters.RespondError(w, err)
		slog.Error("Error parsing order status", "status", req.Status, "error", err)

		return
	}

	updated, err := service.UpdateStatus(r.Context(), orderID, status)
	if err != nil {
		converters.RespondError(w, err)
		slog.Error("Error updating order status", "order_id", orderID, "error", err)

		return
	}

	converters.RespondJSON(w, http.StatusOK, updated)
}
