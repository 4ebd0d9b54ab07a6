package tableorders

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
	OrdersForTable(ctx context.Context, tableID int64) ([]order.Order, error)
}

// TableOrders handles the customer order-status query: all orders of a
// table, newest first. The first element is the one the cancel button may
// apply to.
func TableOrders(w http.ResponseWriter, r *http.Request, service service) {
	tableID, err := strconv.ParseInt(chi.URLParam(r, "tableId"), 10, 64)
	if err != nil {
		http.Error(w, "invalid table id", http.StatusBadRequest)

		return
	}

	orders, err := service.OrdersForTable(r.Context(), tableID)
	if err != nil {
		converters.RespondError(w, err)
		slog.Error("Error getting table orders", "table_id", tableID, "error", err)

		return
	}

	converters.RespondJSON(w, http.StatusOK, orders)
}
