package order

import (
	"time"

	"github.com/nadeesha208/restosaas/internal/service/models/currency"
	"github.com/nadeesha208/restosaas/internal/service/models/orderitem"
)

// Order represents a placed order. The header fields and line items are
// immutable after creation; only Status changes, and only through the
// lifecycle rules in this package.
type Order struct {
	ID                 int64                 `json:"id"`
	RestaurantID       int64                 `json:"restaurantId"`
	TableID            int64                 `json:"tableId"`
	UserID             int64                 `json:"userId,omitempty"`
	Status             Status                `json:"status"`
	TotalPriceCents    int64                 `json:"totalPriceCents"`
	TotalPriceCurrency currency.Currency     `json:"totalPriceCurrency"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
	OrderItems         []orderitem.OrderItem `json:"orderItems"`
}

// Draft is an order as submitted by a customer, before prices are resolved
// and a row exists. UserID zero means a guest order.
type Draft struct {
	RestaurantID int64
	TableID      int64
	UserID       int64
	Items        []DraftItem
}

// DraftItem references a menu item by id; name and price are snapshotted
// server-side at placement time.
type DraftItem struct {
	MenuItemID int64
	Quantity   int
	Notes      string
}

// Validate checks a draft before any write happens.
func (d *Draft) Validate() error {
	if len(d.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range d.Items {
		if item.Quantity < 1 {
			return ErrInvalidQuantity
		}
	}

	return nil
}

// IsCancellable reports whether an order may still be cancelled by the
// customer: it must be in the initial status, be the most recent order for
// its table, and younger than the cancellation window. The predicate is
// re-derived from now on every call, never stored.
func IsCancellable(o *Order, mostRecentForTable bool, now time.Time, window time.Duration) bool {
	return o.Status == StatusReceived &&
		mostRecentForTable &&
		now.Sub(o.CreatedAt) < window
}

// Revenue is the aggregation returned by the reporting query.
type Revenue struct {
	TotalCents int64             `json:"totalCents"`
	Currency   currency.Currency `json:"currency"`
	Orders     int64             `json:"orders"`
}
