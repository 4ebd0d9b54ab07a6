package imenuitemrepo

import (
	"context"

	"github.com/nadeesha208/restosaas/internal/service/models/menuitem"
)

// IMenuItemRepository is a read-only interface for the menu item repository.
type IMenuItemRepository interface {
	Query(ctx context.Context, filter *menuitem.QueryMenuItemsModel) ([]menuitem.MenuItem, error)
}
