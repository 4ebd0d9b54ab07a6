package ordersvc

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/nadeesha208/restosaas/internal/dal/interfaces/imenuitemrepo"
	"github.com/nadeesha208/restosaas/internal/dal/interfaces/iorderitemrepo"
	"github.com/nadeesha208/restosaas/internal/dal/interfaces/iorderrepo"
	"github.com/nadeesha208/restosaas/internal/dal/interfaces/ioutboxrepo"
	"github.com/nadeesha208/restosaas/internal/service/models/menuitem"
	"github.com/nadeesha208/restosaas/internal/service/models/order"
	"github.com/nadeesha208/restosaas/internal/service/models/orderitem"
	"github.com/nadeesha208/restosaas/internal/service/models/outbox"
)

// memStore is an in-memory stand-in for the database. A fakeUOW works on a
// copy of it and only Commit publishes the copy back, which lets the tests
// assert atomicity the same way a real transaction behaves.
type memStore struct {
	mu          sync.Mutex
	orders      map[int64]order.Order
	items       []orderitem.OrderItem
	menu        []menuitem.MenuItem
	outbox      []outbox.Message
	nextOrderID int64
	nextItemID  int64
}

func newMemStore(menu ...menuitem.MenuItem) *memStore {
	return &memStore{
		orders: make(map[int64]order.Order),
		menu:   menu,
	}
}

func (s *memStore) clone() *memStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := make(map[int64]order.Order, len(s.orders))
	for id, o := range s.orders {
		orders[id] = o
	}

	return &memStore{
		orders:      orders,
		items:       append([]orderitem.OrderItem(nil), s.items...),
		menu:        s.menu,
		outbox:      append([]outbox.Message(nil), s.outbox...),
		nextOrderID: s.nextOrderID,
		nextItemID:  s.nextItemID,
	}
}

func (s *memStore) replaceWith(tx *memStore) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = tx.orders
	s.items = tx.items
	s.outbox = tx.outbox
	s.nextOrderID = tx.nextOrderID
	s.nextItemID = tx.nextItemID
}

func (s *memStore) setCreatedAt(t *testing.T, orderID int64, createdAt time.Time) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		t.Fatalf("no order %d in store", orderID)
	}
	o.CreatedAt = createdAt
	s.orders[orderID] = o
}

// fakeUOW implements unitOfWork against a memStore. failBulkInsert injects
// a line-item write failure to exercise rollback.
type fakeUOW struct {
	store          *memStore
	tx             *memStore
	failBulkInsert error
}

func (f *fakeUOW) cur() *memStore {
	if f.tx != nil {
		return f.tx
	}

	return f.store
}

func (f *fakeUOW) Begin(_ context.Context) error {
	f.tx = f.store.clone()

	return nil
}

func (f *fakeUOW) Commit(_ context.Context) error {
	f.store.replaceWith(f.tx)
	f.tx = nil

	return nil
}

func (f *fakeUOW) Rollback(_ context.Context) error {
	f.tx = nil

	return nil
}

func (f *fakeUOW) OrderRepository() iorderrepo.IOrderRepository {
	return &fakeOrderRepo{f}
}

func (f *fakeUOW) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return &fakeOrderItemRepo{f}
}

func (f *fakeUOW) MenuItemRepository() imenuitemrepo.IMenuItemRepository {
	return &fakeMenuItemRepo{f}
}

func (f *fakeUOW) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return &fakeOutboxRepo{f}
}

func matchInt64(filter []int64, v int64) bool {
	if len(filter) == 0 {
		return true
	}
	for _, f := range filter {
		if f == v {
			return true
		}
	}

	return false
}

type fakeOrderRepo struct{ uow *fakeUOW }

func (r *fakeOrderRepo) Insert(_ context.Context, o order.Order) (*order.Order, error) {
	s := r.uow.cur()
	s.nextOrderID++
	o.ID = s.nextOrderID
	s.orders[o.ID] = o

	return &o, nil
}

func (r *fakeOrderRepo) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	var result []order.Order
	for _, o := range r.uow.cur().orders {
		if !matchInt64(filter.Ids, o.ID) ||
			!matchInt64(filter.RestaurantIds, o.RestaurantID) ||
			!matchInt64(filter.TableIds, o.TableID) {
			continue
		}
		if filter.ActiveOnly && o.Status.Terminal() {
			continue
		}
		if len(filter.Statuses) > 0 {
			found := false
			for _, st := range filter.Statuses {
				if st == o.Status {
					found = true

					break
				}
			}
			if !found {
				continue
			}
		}
		result = append(result, o)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}

		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id int64, status order.Status) (*order.Order, error) {
	s := r.uow.cur()
	o, ok := s.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	s.orders[id] = o

	return &o, nil
}

func (r *fakeOrderRepo) LatestIDForTable(_ context.Context, tableID int64) (int64, error) {
	var latest *order.Order
	for id := range r.uow.cur().orders {
		o := r.uow.cur().orders[id]
		if o.TableID != tableID {
			continue
		}
		if latest == nil ||
			o.CreatedAt.After(latest.CreatedAt) ||
			(o.CreatedAt.Equal(latest.CreatedAt) && o.ID > latest.ID) {
			latest = &o
		}
	}
	if latest == nil {
		return 0, order.ErrNotFound
	}

	return latest.ID, nil
}

func (r *fakeOrderRepo) SumTotals(
	_ context.Context,
	restaurantID int64,
	status order.Status,
) (int64, int64, error) {
	var total, count int64
	for _, o := range r.uow.cur().orders {
		if o.RestaurantID == restaurantID && o.Status == status {
			total += o.TotalPriceCents
			count++
		}
	}

	return total, count, nil
}

type fakeOrderItemRepo struct{ uow *fakeUOW }

func (r *fakeOrderItemRepo) BulkInsert(
	_ context.Context,
	items []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if r.uow.failBulkInsert != nil {
		return nil, r.uow.failBulkInsert
	}

	s := r.uow.cur()
	inserted := make([]orderitem.OrderItem, 0, len(items))
	for _, item := range items {
		s.nextItemID++
		item.ID = s.nextItemID
		s.items = append(s.items, item)
		inserted = append(inserted, item)
	}

	return inserted, nil
}

func (r *fakeOrderItemRepo) Query(
	_ context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	result := make([]orderitem.OrderItem, 0)
	for _, item := range r.uow.cur().items {
		if matchInt64(filter.Ids, item.ID) && matchInt64(filter.OrderIds, item.OrderID) {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

type fakeMenuItemRepo struct{ uow *fakeUOW }

func (r *fakeMenuItemRepo) Query(
	_ context.Context,
	filter *menuitem.QueryMenuItemsModel,
) ([]menuitem.MenuItem, error) {
	result := make([]menuitem.MenuItem, 0)
	for _, mi := range r.uow.cur().menu {
		if matchInt64(filter.Ids, mi.ID) && matchInt64(filter.RestaurantIds, mi.RestaurantID) {
			result = append(result, mi)
		}
	}

	return result, nil
}

type fakeOutboxRepo struct{ uow *fakeUOW }

func (r *fakeOutboxRepo) Insert(_ context.Context, msg outbox.Message) error {
	s := r.uow.cur()
	msg.ID = int64(len(s.outbox) + 1)
	s.outbox = append(s.outbox, msg)

	return nil
}

func (r *fakeOutboxRepo) GetPendingMessages(_ context.Context, limit int) ([]outbox.Message, error) {
	msgs := append([]outbox.Message(nil), r.uow.cur().outbox...)
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}

	return msgs, nil
}

func (r *fakeOutboxRepo) Delete(_ context.Context, id int64) error {
	s := r.uow.cur()
	for i, msg := range s.outbox {
		if msg.ID == id {
			s.outbox = append(s.outbox[:i], s.outbox[i+1:]...)

			break
		}
	}

	return nil
}

func (r *fakeOutboxRepo) UpdateRetry(
	_ context.Context,
	id int64,
	retryCount int,
	lastError string,
	nextRetryAt time.Time,
) error {
	s := r.uow.cur()
	for i := range s.outbox {
		if s.outbox[i].ID == id {
			s.outbox[i].RetryCount = retryCount
			s.outbox[i].LastError = lastError
			s.outbox[i].NextRetryAt = nextRetryAt

			break
		}
	}

	return nil
}

func newTestService(store *memStore) *OrderService {
	return &OrderService{
		cancelWindow: 60 * time.Second,
		newUOW: func() unitOfWork {
			return &fakeUOW{store: store}
		},
	}
}
