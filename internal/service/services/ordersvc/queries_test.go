package ordersvc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadeesha208/restosaas/internal/service/models/currency"
	"github.com/nadeesha208/restosaas/internal/service/models/order"
)

func TestGetOrdersEmptyResult(t *testing.T) {
	svc := newTestService(newMemStore(testMenu()...))

	got, err := svc.GetOrders(context.Background(), order.QueryOrdersModel{
		RestaurantIds: []int64{42},
	})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestActiveOrdersExcludesTerminalStatuses(t *testing.T) {
	store := newMemStore(testMenu()...)
	svc := newTestService(store)

	served := placeTestOrder(t, svc, 1)
	advance(t, svc, served.ID, order.StatusInProgress, order.StatusReady, order.StatusServed)

	pending := placeTestOrder(t, svc, 2)

	cancelled := placeTestOrder(t, svc, 3)
	advance(t, svc, cancelled.ID, order.StatusCancelled)

	got, err := svc.ActiveOrders(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pending.ID, got[0].ID)
	assert.Len(t, got[0].OrderItems, 1)
}

func TestOrdersForTableNewestFirst(t *testing.T) {
	store := newMemStore(testMenu()...)
	svc := newTestService(store)

	older := placeTestOrder(t, svc, 4)
	newer := placeTestOrder(t, svc, 4)
	otherTable := placeTestOrder(t, svc, 9)
	store.setCreatedAt(t, older.ID, time.Now().Add(-2*time.Minute))
	store.setCreatedAt(t, newer.ID, time.Now().Add(-1*time.Minute))

	got, err := svc.OrdersForTable(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, older.ID, got[1].ID)
	for _, o := range got {
		assert.NotEqual(t, otherTable.ID, o.ID)
	}
}

func TestRevenueSumsServedOrders(t *testing.T) {
	store := newMemStore(testMenu()...)
	svc := newTestService(store)

	serve := func(tableID int64) {
		o := placeTestOrder(t, svc, tableID)
		advance(t, svc, o.ID, order.StatusInProgress, order.StatusReady, order.StatusServed)
	}
	serve(1)
	serve(2)

	// still pending, must not count
	placeTestOrder(t, svc, 3)

	rev, err := svc.Revenue(context.Background(), 1, order.StatusServed)
	require.NoError(t, err)
	assert.EqualValues(t, 1000, rev.TotalCents) // two Burgers at 500
	assert.EqualValues(t, 2, rev.Orders)
	assert.Equal(t, currency.CurrencyUSD, rev.Currency)
}

func TestRevenueEmptyRestaurant(t *testing.T) {
	svc := newTestService(newMemStore(testMenu()...))

	rev, err := svc.Revenue(context.Background(), 77, order.StatusServed)
	require.NoError(t, err)
	assert.Zero(t, rev.TotalCents)
	assert.Zero(t, rev.Orders)
}

func TestRevenueRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(newMemStore(testMenu()...))

	_, err := svc.Revenue(context.Background(), 1, order.Status("Paid"))
	assert.ErrorIs(t, err, order.ErrInvalidStatus)
}
