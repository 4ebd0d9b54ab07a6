package orderitem

import (
	"time"

	"github.com/nadeesha208/restosaas/internal/service/models/currency"
)

// OrderItem is one line of an order. ItemName, ItemImageUrl and the price
// fields are a snapshot of the menu item taken at placement time, so later
// menu edits never change what an order historically cost.
type OrderItem struct {
	ID            int64             `json:"id"`
	OrderID       int64             `json:"orderId"`
	MenuItemID    int64             `json:"menuItemId"`
	Quantity      int               `json:"quantity"`
	Notes         string            `json:"notes,omitempty"`
	ItemName      string            `json:"itemName"`
	ItemImageUrl  string            `json:"itemImageUrl,omitempty"`
	PriceCents    int64             `json:"priceCents"`
	PriceCurrency currency.Currency `json:"priceCurrency"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}
