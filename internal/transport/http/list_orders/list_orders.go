package listorders

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/nadeesha208/restosaas/internal/service/models/order"
	"github.com/nadeesha208/restosaas/internal/transport/http/converters"
)

// service is an interface for the service layer.
type service interface {
	GetOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
}

// queryOrdersRequest represents the list orders query string.
type queryOrdersRequest struct {
	Ids           []int64  `schema:"ids"`
	RestaurantIds []int64  `schema:"restaurantIds"`
	TableIds      []int64  `schema:"tableIds"`
	Statuses      []string `schema:"statuses"`
	Limit         int      `schema:"limit"`
	Offset        int      `schema:"offset"`
}

// toModel converts queryOrdersRequest to order.QueryOrdersModel.
func (q *queryOrdersRequest) toModel() (order.QueryOrdersModel, error) {
	statuses := make([]order.Status, 0, len(q.Statuses))
	for _, raw := range q.Statuses {
		status, err := order.ParseStatus(raw)
		if err != nil {
			return order.QueryOrdersModel{}, err
		}
		statuses = append(statuses, status)
	}

	return order.QueryOrdersModel{
		Ids:           q.Ids,
		RestaurantIds: q.RestaurantIds,
		TableIds:      q.TableIds,
		Statuses:      statuses,
		Limit:         q.Limit,
		Offset:        q.Offset,
	}, nil
}

// ListOrders handles the list orders request.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	var req queryOrdersRequest
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(&req, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding query for list orders", "error", err)

		return
	}

	filter, err := req.toModel()
	if err != nil {
		converters.RespondError(w, err)
		slog.Error("Error parsing statuses for list orders", "error", err)

		return
	}

	orders, err := service.GetOrders(r.Context(), filter)
	if err != nil {
		converters.RespondError(w, err)
		slog.Error("Error getting orders", "error", err)

		return
	}

	converters.RespondJSON(w, http.StatusOK, orders)
}
