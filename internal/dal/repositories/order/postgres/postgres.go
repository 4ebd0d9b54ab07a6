package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/nadeesha208/restosaas/internal/dal/postgres"
	"github.com/nadeesha208/restosaas/internal/service/models/currency"
	"github.com/nadeesha208/restosaas/internal/service/models/order"
	"github.com/nadeesha208/restosaas/internal/service/models/orderitem"
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id                 int64     `db:"id"`
	RestaurantId       int64     `db:"restaurant_id"`
	TableId            int64     `db:"table_id"`
	UserId             int64     `db:"user_id"`
	Status             string    `db:"status"`
	TotalPriceCents    int64     `db:"total_price_cents"`
	TotalPriceCurrency string    `db:"total_price_currency"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	cur, err := currency.ParseCurrency(o.TotalPriceCurrency)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:                 o.Id,
		RestaurantID:       o.RestaurantId,
		TableID:            o.TableId,
		UserID:             o.UserId,
		Status:             status,
		TotalPriceCents:    o.TotalPriceCents,
		TotalPriceCurrency: cur,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
		OrderItems:         []orderitem.OrderItem{}, // Populated separately
	}, nil
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var orderColumns = []string{
	"id",
	"restaurant_id",
	"table_id",
	"user_id",
	"status",
	"total_price_cents",
	"total_price_currency",
	"created_at",
	"updated_at",
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var dal OrderDal
	if err := row.Scan(
		&dal.Id,
		&dal.RestaurantId,
		&dal.TableId,
		&dal.UserId,
		&dal.Status,
		&dal.TotalPriceCents,
		&dal.TotalPriceCurrency,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return dal.ToModel()
}

// Insert persists an order header and returns it with its assigned id and
// timestamps.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (*order.Order, error) {
	sql, args, err := r.sb.
		Insert("orders").
		Columns(
			"restaurant_id",
			"table_id",
			"user_id",
			"status",
			"total_price_cents",
			"total_price_currency",
			"created_at",
			"updated_at",
		).
		Values(
			o.RestaurantID,
			o.TableID,
			o.UserID,
			o.Status.String(),
			o.TotalPriceCents,
			o.TotalPriceCurrency.String(),
			o.CreatedAt,
			o.UpdatedAt,
		).
		Suffix("RETURNING " + columnList(orderColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	inserted, err := scanOrder(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	return inserted, nil
}

// Query retrieves order headers based on filter criteria, newest first.
func (r *PostgresOrderRepository) Query(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	query := r.sb.
		Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC", "id DESC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.RestaurantIds) > 0 {
		query = query.Where(sq.Eq{"restaurant_id": filter.RestaurantIds})
	}

	if len(filter.TableIds) > 0 {
		query = query.Where(sq.Eq{"table_id": filter.TableIds})
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		query = query.Where(sq.Eq{"status": statuses})
	}

	if filter.ActiveOnly {
		query = query.Where(sq.NotEq{"status": []string{
			order.StatusServed.String(),
			order.StatusCancelled.String(),
		}})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		model, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateStatus sets an absolute target status and returns the updated header.
func (r *PostgresOrderRepository) UpdateStatus(
	ctx context.Context,
	id int64,
	status order.Status,
) (*order.Order, error) {
	sql, args, err := r.sb.
		Update("orders").
		Set("status", status.String()).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columnList(orderColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	updated, err := scanOrder(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}

		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return updated, nil
}

// LatestIDForTable returns the id of the most recently placed order for a
// table.
func (r *PostgresOrderRepository) LatestIDForTable(ctx context.Context, tableID int64) (int64, error) {
	sql, args, err := r.sb.
		Select("id").
		From("orders").
		Where(sq.Eq{"table_id": tableID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var id int64
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, order.ErrNotFound
		}

		return 0, fmt.Errorf("failed to query latest order for table: %w", err)
	}

	return id, nil
}

// SumTotals aggregates total_price_cents over orders of a restaurant in the
// given status.
func (r *PostgresOrderRepository) SumTotals(
	ctx context.Context,
	restaurantID int64,
	status order.Status,
) (int64, int64, error) {
	sql, args, err := r.sb.
		Select("COALESCE(SUM(total_price_cents), 0)", "COUNT(*)").
		From("orders").
		Where(sq.Eq{"restaurant_id": restaurantID}).
		Where(sq.Eq{"status": status.String()}).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build query: %w", err)
	}

	var totalCents, count int64
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&totalCents, &count); err != nil {
		return 0, 0, fmt.Errorf("failed to sum order totals: %w", err)
	}

	return totalCents, count, nil
}

func columnList(columns []string) string {
	return strings.Join(columns, ", ")
}
