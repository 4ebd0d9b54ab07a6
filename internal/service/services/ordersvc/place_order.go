package ordersvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nadeesha208/restosaas/internal/service/models/currency"
	"github.com/nadeesha208/restosaas/internal/service/models/menuitem"
	"github.com/nadeesha208/restosaas/internal/service/models/order"
	"github.com/nadeesha208/restosaas/internal/service/models/orderevent"
	"github.com/nadeesha208/restosaas/internal/service/models/orderitem"
	"github.com/nadeesha208/restosaas/internal/service/models/outbox"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
)

const pgForeignKeyViolation = "23503"

// ErrUnknownReference means the order points at a restaurant or table that
// does not exist.
var ErrUnknownReference = errors.New("referenced restaurant or table does not exist")

// PlaceOrder creates an order from a draft: validates it, snapshots current
// menu prices onto the line items, computes the total, and writes the
// header, every line item and an order.placed outbox event in one
// transaction. Readers observe either the fully formed order or nothing.
func (s *OrderService) PlaceOrder(ctx context.Context, draft order.Draft) (*order.Order, error) {
	ctx, span := otel.Tracer("ordersvc").Start(ctx, "OrderService.PlaceOrder")
	defer span.End()

	if err := draft.Validate(); err != nil {
		return nil, err
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = work.Rollback(context.WithoutCancel(ctx)) }()

	items, total, cur, err := s.resolveItems(ctx, work, draft)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inserted, err := work.OrderRepository().Insert(ctx, order.Order{
		RestaurantID:       draft.RestaurantID,
		TableID:            draft.TableID,
		UserID:             draft.UserID,
		Status:             order.StatusReceived,
		TotalPriceCents:    total,
		TotalPriceCurrency: cur,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, ErrUnknownReference
		}

		return nil, err
	}

	for i := range items {
		items[i].OrderID = inserted.ID
	}
	insertedItems, err := work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return nil, err
	}
	inserted.OrderItems = insertedItems

	if err := s.enqueueEvent(ctx, work, orderevent.RoutingKeyPlaced, orderevent.Placed{
		OrderID:         inserted.ID,
		RestaurantID:    inserted.RestaurantID,
		TableID:         inserted.TableID,
		TotalPriceCents: inserted.TotalPriceCents,
		Items:           len(insertedItems),
		PlacedAt:        inserted.CreatedAt,
		Status:          inserted.Status,
	}); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return inserted, nil
}

// resolveItems turns draft items into line items carrying a snapshot of the
// current menu entry. All items must belong to the draft's restaurant and be
// priced in one currency.
func (s *OrderService) resolveItems(
	ctx context.Context,
	work unitOfWork,
	draft order.Draft,
) ([]orderitem.OrderItem, int64, currency.Currency, error) {
	ids := make([]int64, 0, len(draft.Items))
	for _, item := range draft.Items {
		ids = append(ids, item.MenuItemID)
	}

	menuItems, err := work.MenuItemRepository().Query(ctx, &menuitem.QueryMenuItemsModel{
		Ids:           ids,
		RestaurantIds: []int64{draft.RestaurantID},
	})
	if err != nil {
		return nil, 0, "", err
	}

	byID := make(map[int64]menuitem.MenuItem, len(menuItems))
	for _, mi := range menuItems {
		byID[mi.ID] = mi
	}

	now := time.Now()
	items := make([]orderitem.OrderItem, 0, len(draft.Items))
	var total int64
	var cur currency.Currency

	for _, item := range draft.Items {
		mi, ok := byID[item.MenuItemID]
		if !ok {
			return nil, 0, "", fmt.Errorf("menu item %d: %w", item.MenuItemID, menuitem.ErrNotFound)
		}
		if cur == "" {
			cur = mi.PriceCurrency
		} else if cur != mi.PriceCurrency {
			return nil, 0, "", order.ErrCurrencyMismatch
		}

		total += mi.PriceCents * int64(item.Quantity)
		items = append(items, orderitem.OrderItem{
			MenuItemID:    mi.ID,
			Quantity:      item.Quantity,
			Notes:         item.Notes,
			ItemName:      mi.Name,
			ItemImageUrl:  mi.ImageUrl,
			PriceCents:    mi.PriceCents,
			PriceCurrency: mi.PriceCurrency,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	return items, total, cur, nil
}

// enqueueEvent records an order event in the outbox within the current
// transaction.
func (s *OrderService) enqueueEvent(
	ctx context.Context,
	work unitOfWork,
	routingKey string,
	event any,
) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", routingKey, err)
	}

	now := time.Now()

	return work.OutboxRepository().Insert(ctx, outbox.Message{
		ExchangeName: viper.GetString("rabbitmq.orders_exchange"),
		RoutingKey:   routingKey,
		Payload:      payload,
		ContentType:  "application/json",
		MaxRetries:   viper.GetInt("rabbitmq.outbox.max_retries"),
		CreatedAt:    now,
		UpdatedAt:    now,
		NextRetryAt:  now,
	})
}
