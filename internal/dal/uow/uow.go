package uow

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nadeesha208/restosaas/internal/dal/interfaces/imenuitemrepo"
	"github.com/nadeesha208/restosaas/internal/dal/interfaces/iorderitemrepo"
	"github.com/nadeesha208/restosaas/internal/dal/interfaces/iorderrepo"
	"github.com/nadeesha208/restosaas/internal/dal/interfaces/ioutboxrepo"
	"github.com/nadeesha208/restosaas/internal/dal/postgres"
	menuitemrepo "github.com/nadeesha208/restosaas/internal/dal/repositories/menuitem/postgres"
	orderrepo "github.com/nadeesha208/restosaas/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/nadeesha208/restosaas/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/nadeesha208/restosaas/internal/dal/repositories/outbox/postgres"
)

// unitOfWork binds the order, order item, menu item and outbox repositories
// to one connection. After Begin they all run on the same transaction, so an
// order header, its line items and its outbox event commit or roll back as a
// unit.
type unitOfWork struct {
	pool *pgxpool.Pool
	tx   pgx.Tx

	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
	menuItemRepo  imenuitemrepo.IMenuItemRepository
	outboxRepo    ioutboxrepo.IOutboxRepository
}

func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	return &unitOfWork{
		pool:          client.Pool(),
		orderRepo:     orderrepo.NewPostgresOrderRepository(client.Pool()),
		orderItemRepo: orderitemrepo.NewPostgresOrderItemRepository(client.Pool()),
		menuItemRepo:  menuitemrepo.NewPostgresMenuItemRepository(client.Pool()),
		outboxRepo:    outboxrepo.NewOutboxRepository(client.Pool()),
	}
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *unitOfWork) MenuItemRepository() imenuitemrepo.IMenuItemRepository {
	return u.menuItemRepo
}

func (u *unitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(tx)
	u.menuItemRepo = menuitemrepo.NewPostgresMenuItemRepository(tx)
	u.outboxRepo = outboxrepo.NewOutboxRepository(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

// Rollback is a no-op after a successful Commit, so it is safe to defer.
func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	if err := u.tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
		return err
	}

	return nil
}
