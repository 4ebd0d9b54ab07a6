package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/nadeesha208/restosaas/internal/service/models/order"
	"github.com/nadeesha208/restosaas/internal/transport/http/converters"
)

// service is an interface for the service layer.
type service interface {
	PlaceOrder(ctx context.Context, draft order.Draft) (*order.Order, error)
}

// itemInCreateOrderRequest represents an item in a create order request.
// Prices are not accepted from the client; they are snapshotted server-side.
type itemInCreateOrderRequest struct {
	MenuItemID int64  `json:"menuItemId" validate:"gt=0"`
	Quantity   int    `json:"quantity"   validate:"gte=1"`
	Notes      string `json:"notes"`
}

// createOrderRequest represents a create order request.
type createOrderRequest struct {
	RestaurantID int64                      `json:"restaurantId" validate:"gt=0"`
	TableID      int64                      `json:"tableId"      validate:"gt=0"`
	UserID       int64                      `json:"userId"`
	Items        []itemInCreateOrderRequest `json:"items"        validate:"required,min=1,dive"`
}

// Validate validates the create order request.
func (r *createOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts createOrderRequest to an order.Draft.
func (r *createOrderRequest) toModel() order.Draft {
	items := make([]order.DraftItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = order.DraftItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Notes:      item.Notes,
		}
	}

	return order.Draft{
		RestaurantID: r.RestaurantID,
		TableID:      r.TableID,
		UserID:       r.UserID,
		Items:        items,
	}
}

// PlaceOrder handles the create order request.
func PlaceOrder(w http.ResponseWriter, r *http.Request, service service) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for create order", "error", err)

		return
	}

	created, err := service.PlaceOrder(r.Context(), req.toModel())
	if err != nil {
		converters.RespondError(w, err)
		slog.Error("Error placing order", "error", err)

		return
	}

	converters.RespondJSON(w, http.StatusCreated, created)
}
