package ordersvc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadeesha208/restosaas/internal/service/models/order"
	"github.com/nadeesha208/restosaas/internal/service/models/orderevent"
)

func placeTestOrder(t *testing.T, svc *OrderService, tableID int64) *order.Order {
	t.Helper()

	placed, err := svc.PlaceOrder(context.Background(), order.Draft{
		RestaurantID: 1,
		TableID:      tableID,
		Items:        []order.DraftItem{{MenuItemID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	return placed
}

func advance(t *testing.T, svc *OrderService, id int64, statuses ...order.Status) *order.Order {
	t.Helper()

	var updated *order.Order
	var err error
	for _, st := range statuses {
		updated, err = svc.UpdateStatus(context.Background(), id, st)
		require.NoError(t, err, "advancing order %d to %s", id, st)
	}

	return updated
}

func TestUpdateStatusWalksTheLifecycle(t *testing.T) {
	store := newMemStore(testMenu()...)
	svc := newTestService(store)
	placed := placeTestOrder(t, svc, 4)

	updated := advance(t, svc, placed.ID,
		order.StatusInProgress, order.StatusReady, order.StatusServed)

	assert.Equal(t, order.StatusServed, updated.Status)
	assert.Len(t, updated.OrderItems, 1)
	assert.Equal(t, order.StatusServed, store.orders[placed.ID].Status)
}

func TestUpdateStatusEnqueuesStatusChangedEvent(t *testing.T) {
	store := newMemStore(testMenu()...)
	svc := newTestService(store)
	placed := placeTestOrder(t, svc, 4)

	_, err := svc.UpdateStatus(context.Background(), placed.ID, order.StatusInProgress)
	require.NoError(t, err)

	// order.placed from placement plus one status change
	require.Len(t, store.outbox, 2)
	assert.Equal(t, orderevent.RoutingKeyStatusChanged, store.outbox[1].RoutingKey)
}

func TestUpdateStatusSameStatusIsNoOp(t *testing.T) {
	store := newMemStore(testMenu()...)
	svc := newTestService(store)
	placed := placeTestOrder(t, svc, 4)

	got, err := svc.UpdateStatus(context.Background(), placed.ID, order.StatusReceived)
	require.NoError(t, err)
	assert.Equal(t, order.StatusReceived, got.Status)
	assert.Len(t, got.OrderItems, 1)

	// no second event, no timestamp churn
	assert.Len(t, store.outbox, 1)
	assert.True(t, store.orders[placed.ID].UpdatedAt.Equal(placed.UpdatedAt))
}

func TestUpdateStatusRejectsSkippingAStep(t *testing.T) {
	store := newMemStore(testMenu()...)
	svc := newTestService(store)
	placed := placeTestOrder(t, svc, 4)

	for _, target := range []order.Status{order.StatusReady, order.StatusServed} {
		_, err := svc.UpdateStatus(context.Background(), placed.ID, target)
		assert.ErrorIs(t, err, order.ErrInvalidTransition, "Received -> %s", target)
	}
	assert.Equal(t, order.StatusReceived, store.orders[placed.ID].Status)
}

func TestUpdateStatusRejectsGoingBack(t *testing.T) {
	store := newMemStore(testMenu()...)
	svc := newTestService(store)
	placed := placeTestOrder(t, svc, 4)
	advance(t, svc, placed.ID, order.StatusInProgress)

	_, err := svc.UpdateStatus(context.Background(), placed.ID, order.StatusReceived)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)
}

func TestUpdateStatusTerminalOrdersAreFrozen(t *testing.T) {
	store := newMemStore(testMenu()...)
	svc := newTestService(store)
	placed := placeTestOrder(t, svc, 4)
	advance(t, svc, placed.ID, order.StatusInProgress, order.StatusReady, order.StatusServed)

	for _, target := range []order.Status{
		order.StatusReceived, order.StatusInProgress, order.StatusReady, order.StatusCancelled,
	} {
		_, err := svc.UpdateStatus(context.Background(), placed.ID, target)
		assert.ErrorIs(t, err, order.ErrInvalidTransition, "Served -> %s", target)
	}
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc := newTestService(newMemStore(testMenu()...))

	_, err := svc.UpdateStatus(context.Background(), 12345, order.StatusInProgress)
	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestUpdateStatusRejectsUnknownStatusValue(t *testing.T) {
	store := newMemStore(testMenu()...)
	svc := newTestService(store)
	placed := placeTestOrder(t, svc, 4)

	_, err := svc.UpdateStatus(context.Background(), placed.ID, order.Status("Done"))
	assert.ErrorIs(t, err, order.ErrInvalidStatus)
	assert.Equal(t, order.StatusReceived, store.orders[placed.ID].Status)
}

func TestCancelWithinWindow(t *testing.T) {
	store := newMemStore(testMenu()...)
	svc := newTestService(store)
	placed := placeTestOrder(t, svc, 4)

	got, err := svc.UpdateStatus(context.Background(), placed.ID, order.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, got.Status)
	assert.Equal(t, order.StatusCancelled, store.orders[placed.ID].Status)
}

func TestCancelAfterWindowElapsed(t *testing.T) {
	store := newMemStore(testMenu()...)
	svc := newTestService(store)
	placed := placeTestOrder(t, svc, 4)

	store.setCreatedAt(t, placed.ID, time.Now().Add(-61*time.Second))

	_, err := svc.UpdateStatus(context.Background(), placed.ID, order.StatusCancelled)
	assert.ErrorIs(t, err, order.ErrNotCancellable)
	assert.Equal(t, order.StatusReceived, store.orders[placed.ID].Status)
}

func TestCancelJustBeforeWindowCloses(t *testing.T) {
	store := newMemStore(testMenu()...)
	svc := newTestService(store)
	placed := placeTestOrder(t, svc, 4)

	store.setCreatedAt(t, placed.ID, time.Now().Add(-59*time.Second))

	_, err := svc.UpdateStatus(context.Background(), placed.ID, order.StatusCancelled)
	assert.NoError(t, err)
}

func TestCancelOnlyMostRecentOrderForTable(t *testing.T) {
	store := newMemStore(testMenu()...)
	svc := newTestService(store)
	first := placeTestOrder(t, svc, 4)
	second := placeTestOrder(t, svc, 4)
	store.setCreatedAt(t, first.ID, time.Now().Add(-10*time.Second))
	store.setCreatedAt(t, second.ID, time.Now().Add(-5*time.Second))

	_, err := svc.UpdateStatus(context.Background(), first.ID, order.StatusCancelled)
	assert.ErrorIs(t, err, order.ErrNotCancellable)

	_, err = svc.UpdateStatus(context.Background(), second.ID, order.StatusCancelled)
	assert.NoError(t, err)
}

func TestCancelRejectedOnceInProgress(t *testing.T) {
	store := newMemStore(testMenu()...)
	svc := newTestService(store)
	placed := placeTestOrder(t, svc, 4)
	advance(t, svc, placed.ID, order.StatusInProgress)

	_, err := svc.UpdateStatus(context.Background(), placed.ID, order.StatusCancelled)
	assert.ErrorIs(t, err, order.ErrNotCancellable)
}
