package orderevent

import (
	"time"

	"github.com/nadeesha208/restosaas/internal/service/models/order"
)

// Routing keys for order events on the orders exchange.
const (
	RoutingKeyPlaced        = "order.placed"
	RoutingKeyStatusChanged = "order.status_changed"
)

// Placed is published after an order has been committed.
type Placed struct {
	OrderID         int64        `json:"orderId"`
	RestaurantID    int64        `json:"restaurantId"`
	TableID         int64        `json:"tableId"`
	TotalPriceCents int64        `json:"totalPriceCents"`
	Items           int          `json:"items"`
	PlacedAt        time.Time    `json:"placedAt"`
	Status          order.Status `json:"status"`
}

// StatusChanged is published after a committed status transition.
type StatusChanged struct {
	OrderID      int64        `json:"orderId"`
	RestaurantID int64        `json:"restaurantId"`
	TableID      int64        `json:"tableId"`
	From         order.Status `json:"from"`
	To           order.Status `json:"to"`
	ChangedAt    time.Time    `json:"changedAt"`
}
