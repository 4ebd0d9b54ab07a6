package activeorders

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/nadeesha208/restosaas/internal/service/models/order"
	"github.com/nadeesha208/restosaas/internal/transport/http/converters"
)

// service is an interface for the service layer.
type service interface {
	ActiveOrders(ctx context.Context, restaurantID int64) ([]order.Order, error)
}

// ActiveOrders handles the kitchen display query: every order of a
// restaurant that is not yet served or cancelled.
func ActiveOrders(w http.ResponseWriter, r *http.Request, service service) {
	restaurantID, err := strconv.ParseInt(r.URL.Query().Get("restaurantId"), 10, 64)
	if err != nil || restaurantID <= 0 {
		http.Error(w, "restaurantId is required", http.StatusBadRequest)

		return
	}

	orders, err := service.ActiveOrders(r.Context(), restaurantID)
	if err != nil {
		converters.RespondError(w, err)
		slog.Error("Error getting active orders", "restaurant_id", restaurantID, "error", err)

		return
	}

	converters.RespondJSON(w, http.StatusOK, orders)
}
