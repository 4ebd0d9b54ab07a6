package iorderrepo

import (
	"context"

	"github.com/nadeesha208/restosaas/internal/service/models/order"
)

// IOrderRepository is an interface for the order postgres repository.
type IOrderRepository interface {
	// Insert persists an order header and returns it with its assigned id
	// and timestamps.
	Insert(ctx context.Context, o order.Order) (*order.Order, error)

	// Query retrieves order headers matching a filter, newest first, without
	// line items.
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)

	// UpdateStatus sets an absolute target status and returns the updated
	// header. Fails with order.ErrNotFound if the id is unknown.
	UpdateStatus(ctx context.Context, id int64, status order.Status) (*order.Order, error)

	// LatestIDForTable returns the id of the most recently placed order for
	// a table, or order.ErrNotFound if the table has none.
	LatestIDForTable(ctx context.Context, tableID int64) (int64, error)

	// SumTotals aggregates total_price_cents over orders of a restaurant in
	// the given status.
	SumTotals(ctx context.Context, restaurantID int64, status order.Status) (totalCents int64, orders int64, err error)
}
