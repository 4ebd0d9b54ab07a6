package ordersvc

import (
	"context"

	"github.com/nadeesha208/restosaas/internal/service/models/currency"
	"github.com/nadeesha208/restosaas/internal/service/models/order"
	"github.com/nadeesha208/restosaas/internal/service/models/orderitem"
	"go.opentelemetry.io/otel"
)

// GetOrders retrieves orders matching the filter, newest first, with their
// line items resolved.
func (s *OrderService) GetOrders(
	ctx context.Context,
	filter order.QueryOrdersModel,
) ([]order.Order, error) {
	ctx, span := otel.Tracer("ordersvc").Start(ctx, "OrderService.GetOrders")
	defer span.End()

	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &filter)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	itemFilter := &orderitem.QueryOrderItemsModel{}
	for _, o := range orders {
		itemFilter.OrderIds = append(itemFilter.OrderIds, o.ID)
	}
	items, err := work.OrderItemRepository().Query(ctx, itemFilter)
	if err != nil {
		return nil, err
	}

	byOrder := make(map[int64][]orderitem.OrderItem, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for i := range orders {
		orders[i].OrderItems = append(orders[i].OrderItems, byOrder[orders[i].ID]...)
	}

	return orders, nil
}

// ActiveOrders returns a restaurant's orders that are not yet served or
// cancelled, for the kitchen display.
func (s *OrderService) ActiveOrders(ctx context.Context, restaurantID int64) ([]order.Order, error) {
	return s.GetOrders(ctx, order.QueryOrdersModel{
		RestaurantIds: []int64{restaurantID},
		ActiveOnly:    true,
	})
}

// OrdersForTable returns all orders of a table, newest first. The first
// element is the "most recent" order for cancellation eligibility.
func (s *OrderService) OrdersForTable(ctx context.Context, tableID int64) ([]order.Order, error) {
	return s.GetOrders(ctx, order.QueryOrdersModel{
		TableIds: []int64{tableID},
	})
}

// Revenue sums order totals of a restaurant in the given status. Reporting
// defaults to Served.
func (s *OrderService) Revenue(
	ctx context.Context,
	restaurantID int64,
	status order.Status,
) (*order.Revenue, error) {
	ctx, span := otel.Tracer("ordersvc").Start(ctx, "OrderService.Revenue")
	defer span.End()

	if _, err := order.ParseStatus(status.String()); err != nil {
		return nil, err
	}

	work := s.newUOW()

	totalCents, count, err := work.OrderRepository().SumTotals(ctx, restaurantID, status)
	if err != nil {
		return nil, err
	}

	return &order.Revenue{
		TotalCents: totalCents,
		Currency:   currency.CurrencyUSD,
		Orders:     count,
	}, nil
}
