package repository

import (
	"database/sql"
	"testing"
	"time"

	"tupyme/internal/domain"
	"tupyme/traits/database"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newOrderRepo(t *testing.T) *OrderRepository {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.CreateTables(db, zap.NewNop()))
	return NewOrderRepository(db, zap.NewNop())
}

func testItems() []domain.CartItem {
	return []domain.CartItem{
		{ID: "line-1", Title: "Oficina Virtual Mensual", Price: 15000},
		{ID: "line-2", Title: "Contabilidad Mensual", Price: 45000},
	}
}

func TestOrderRepository_CreateAndGet(t *testing.T) {
	repo := newOrderRepo(t)

	order, err := repo.CreateOrder("session-1", 42, 60000, testItems())
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, domain.OrderStatusProcessing, order.Status)
	assert.Equal(t, 60000, order.Total)
	assert.Len(t, order.Items, 2)
	assert.Nil(t, order.PaidAt)

	fetched, err := repo.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, fetched.ID)
	assert.Equal(t, "session-1", fetched.SessionID)
}

func TestOrderRepository_GetMissingOrder(t *testing.T) {
	repo := newOrderRepo(t)

	_, err := repo.GetOrderByID("no-such-order")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderRepository_SettleMovesProcessingToPaid(t *testing.T) {
	repo := newOrderRepo(t)

	order, err := repo.CreateOrder("session-1", 42, 60000, testItems())
	require.NoError(t, err)

	// cutoff in the future settles everything currently processing
	settled, err := repo.SettleOrdersOlderThan(time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.Equal(t, []string{order.ID}, settled)

	paid, err := repo.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	// already-paid orders are not settled twice
	settled, err = repo.SettleOrdersOlderThan(time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Empty(t, settled)
}

func TestOrderRepository_SettleHonorsCutoff(t *testing.T) {
	repo := newOrderRepo(t)

	_, err := repo.CreateOrder("session-1", 42, 60000, testItems())
	require.NoError(t, err)

	// cutoff far in the past leaves fresh orders processing
	settled, err := repo.SettleOrdersOlderThan(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, settled)
}

func TestOrderRepository_OrdersBySession(t *testing.T) {
	repo := newOrderRepo(t)

	_, err := repo.CreateOrder("session-1", 42, 60000, testItems())
	require.NoError(t, err)
	_, err = repo.CreateOrder("session-1", 42, 15000, testItems()[:1])
	require.NoError(t, err)
	_, err = repo.CreateOrder("session-2", 7, 45000, testItems()[1:])
	require.NoError(t, err)

	orders, err := repo.GetOrdersBySession("session-1")
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	orders, err = repo.GetOrdersBySession("session-2")
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
