package revenue

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nadeesha208/restosaas/internal/service/models/order"
	"github.com/nadeesha208/restosaas/internal/transport/http/converters"
)

// service is an interface for the service layer.
type service interface {
	Revenue(ctx context.Context, restaurantID int64, status order.Status) (*order.Revenue, error)
}

// Revenue handles the reporting aggregation. The status filter defaults to
// Served.
func Revenue(w http.ResponseWriter, r *http.Request, service service) {
	restaurantID, err := strconv.ParseInt(chi.URLParam(r, "restaurantId"), 10, 64)
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)

		return
	}

	status := order.StatusServed
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err = order.ParseStatus(raw)
		if err != nil {
			converters.RespondError(w, err)
			slog.Error("Error parsing revenue status filter", "status", raw, "error", err)

			return
		}
	}

	report, err := service.Revenue(r.Context(), restaurantID, status)
	if err != nil {
		converters.RespondError(w, err)
		slog.Error("Error computing revenue", "restaurant_id", restaurantID, "error", err)

		return
	}

	converters.RespondJSON(w, http.StatusOK, report)
}
