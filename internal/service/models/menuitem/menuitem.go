package menuitem

import (
	"errors"
	"time"

	"github.com/nadeesha208/restosaas/internal/service/models/currency"
)

// ErrNotFound means a referenced menu item does not exist in the order's
// restaurant.
var ErrNotFound = errors.New("menu item not found")

// MenuItem is the read-side menu entry order placement snapshots from.
// Menu CRUD itself lives outside this service.
type MenuItem struct {
	ID            int64             `json:"id"`
	RestaurantID  int64             `json:"restaurantId"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	ImageUrl      string            `json:"imageUrl,omitempty"`
	PriceCents    int64             `json:"priceCents"`
	PriceCurrency currency.Currency `json:"priceCurrency"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// QueryMenuItemsModel represents filter parameters for querying menu items.
type QueryMenuItemsModel struct {
	Ids           []int64 `json:"ids,omitempty"`
	RestaurantIds []int64 `json:"restaurantIds,omitempty"`
}
