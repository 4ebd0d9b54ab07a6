package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/nadeesha208/restosaas/internal/dal/postgres"
	"github.com/nadeesha208/restosaas/internal/service/models/currency"
	"github.com/nadeesha208/restosaas/internal/service/models/menuitem"
)

// MenuItemDal represents the menu item data access layer model.
type MenuItemDal struct {
	Id            int64     `db:"id"`
	RestaurantId  int64     `db:"restaurant_id"`
	Name          string    `db:"name"`
	Description   string    `db:"description"`
	ImageUrl      string    `db:"image_url"`
	PriceCents    int64     `db:"price_cents"`
	PriceCurrency string    `db:"price_currency"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// ToModel converts MenuItemDal to the service layer MenuItem model.
func (m *MenuItemDal) ToModel() (*menuitem.MenuItem, error) {
	cur, err := currency.ParseCurrency(m.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return &menuitem.MenuItem{
		ID:            m.Id,
		RestaurantID:  m.RestaurantId,
		Name:          m.Name,
		Description:   m.Description,
		ImageUrl:      m.ImageUrl,
		PriceCents:    m.PriceCents,
		PriceCurrency: cur,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

// PostgresMenuItemRepository is a read-only Postgres menu item repository.
// Order placement uses it to snapshot current prices; menu CRUD is owned by
// another service.
type PostgresMenuItemRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresMenuItemRepository creates a new Postgres menu item repository.
func NewPostgresMenuItemRepository(conn postgres.GenericConn) *PostgresMenuItemRepository {
	return &PostgresMenuItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Query retrieves menu items based on filter criteria.
func (r *PostgresMenuItemRepository) Query(
	ctx context.Context,
	filter *menuitem.QueryMenuItemsModel,
) ([]menuitem.MenuItem, error) {
	query := r.sb.
		Select(
			"id",
			"restaurant_id",
			"name",
			"description",
			"image_url",
			"price_cents",
			"price_currency",
			"created_at",
			"updated_at",
		).
		From("menu_items")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.RestaurantIds) > 0 {
		query = query.Where(sq.Eq{"restaurant_id": filter.RestaurantIds})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var result []menuitem.MenuItem
	for rows.Next() {
		var dal MenuItemDal
		if err := rows.Scan(
			&dal.Id,
			&dal.RestaurantId,
			&dal.Name,
			&dal.Description,
			&dal.ImageUrl,
			&dal.PriceCents,
			&dal.PriceCurrency,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert menu item dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
