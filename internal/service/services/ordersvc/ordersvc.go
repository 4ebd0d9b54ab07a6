package ordersvc

import (
	"context"
	"time"

	"github.com/nadeesha208/restosaas/internal/dal/interfaces/imenuitemrepo"
	"github.com/nadeesha208/restosaas/internal/dal/interfaces/iorderitemrepo"
	"github.com/nadeesha208/restosaas/internal/dal/interfaces/iorderrepo"
	"github.com/nadeesha208/restosaas/internal/dal/interfaces/ioutboxrepo"
	"github.com/nadeesha208/restosaas/internal/dal/postgres"
	"github.com/nadeesha208/restosaas/internal/dal/uow"
	"github.com/spf13/viper"
)

// OrderService owns the order lifecycle: atomic placement, status
// transitions and the read-side queries behind the kitchen display, the
// customer status view and reporting.
type OrderService struct {
	pgClient     *postgres.Client
	newUOW       uowFactory
	cancelWindow time.Duration
}

type uowFactory func() unitOfWork

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	MenuItemRepository() imenuitemrepo.IMenuItemRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		cancelWindow: time.Duration(viper.GetInt("orders.cancel_window_seconds")) * time.Second,
	}
	if s.cancelWindow <= 0 {
		s.cancelWindow = 60 * time.Second
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		if s.pgClient == nil {
			panic("order service requires a postgres client")
		}
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(s.pgClient)
		}
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithCancelWindow overrides the customer cancellation window.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCancelWindow(window time.Duration) option {
	return func(s *OrderService) {
		s.cancelWindow = window
	}
}
