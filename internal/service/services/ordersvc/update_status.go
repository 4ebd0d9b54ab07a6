package ordersvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nadeesha208/restosaas/internal/service/models/order"
	"github.com/nadeesha208/restosaas/internal/service/models/orderevent"
	"github.com/nadeesha208/restosaas/internal/service/models/orderitem"
	"go.opentelemetry.io/otel"
)

// UpdateStatus applies a lifecycle transition to an order and returns it
// with its line items. Setting the current status again is an idempotent
// no-op. Cancellation eligibility is re-validated here from the store and
// the wall clock; a client-computed timer is never trusted.
func (s *OrderService) UpdateStatus(
	ctx context.Context,
	orderID int64,
	target order.Status,
) (*order.Order, error) {
	ctx, span := otel.Tracer("ordersvc").Start(ctx, "OrderService.UpdateStatus")
	defer span.End()

	if _, err := order.ParseStatus(target.String()); err != nil {
		return nil, err
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = work.Rollback(context.WithoutCancel(ctx)) }()

	orders, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{Ids: []int64{orderID}})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, order.ErrNotFound
	}
	current := orders[0]

	// Duplicate UI triggers set the same status twice; tolerate them.
	if current.Status == target {
		items, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
			OrderIds: []int64{current.ID},
		})
		if err != nil {
			return nil, err
		}
		current.OrderItems = items

		return &current, nil
	}

	if err := s.checkTransition(ctx, work, &current, target); err != nil {
		return nil, err
	}

	updated, err := work.OrderRepository().UpdateStatus(ctx, orderID, target)
	if err != nil {
		return nil, err
	}

	if err := s.enqueueEvent(ctx, work, orderevent.RoutingKeyStatusChanged, orderevent.StatusChanged{
		OrderID:      updated.ID,
		RestaurantID: updated.RestaurantID,
		TableID:      updated.TableID,
		From:         current.Status,
		To:           updated.Status,
		ChangedAt:    updated.UpdatedAt,
	}); err != nil {
		return nil, err
	}

	items, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
		OrderIds: []int64{updated.ID},
	})
	if err != nil {
		return nil, err
	}
	updated.OrderItems = items

	if err := work.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}

	return updated, nil
}

// checkTransition enforces the lifecycle rules against the stored order.
func (s *OrderService) checkTransition(
	ctx context.Context,
	work unitOfWork,
	current *order.Order,
	target order.Status,
) error {
	if current.Status.Terminal() {
		return fmt.Errorf("order %d is %s: %w", current.ID, current.Status, order.ErrInvalidTransition)
	}

	if target == order.StatusCancelled {
		latestID, err := work.OrderRepository().LatestIDForTable(ctx, current.TableID)
		if err != nil && !errors.Is(err, order.ErrNotFound) {
			return err
		}
		if !order.IsCancellable(current, latestID == current.ID, time.Now(), s.cancelWindow) {
			return order.ErrNotCancellable
		}

		return nil
	}

	if !current.Status.CanTransitionTo(target) {
		return fmt.Errorf("%s -> %s: %w", current.Status, target, order.ErrInvalidTransition)
	}

	return nil
}
