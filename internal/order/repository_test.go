package order

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"foodmarket-be/internal/food"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	orderCols = []string{"id", "customer_id", "vendor_id", "total_amount", "order_date", "paid_through", "payment_response", "order_status", "remarks", "ready_time", "created_at", "updated_at"}
	itemCols  = []string{"order_id", "unit", "price", "id", "vendor_id", "name", "description", "category", "food_type", "ready_time", "price", "rating", "images", "created_at", "updated_at"}
)

func newOrder() *Order {
	return &Order{
		ID:          "4321",
		CustomerID:  "c1",
		VendorID:    "v1",
		TotalAmount: 20,
		OrderDate:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		PaidThrough: PaidThroughCOD,
		OrderStatus: StatusWaiting,
		ReadyTime:   15,
		Items:       []Item{{Food: food.Food{ID: "f1"}, Unit: 2, Price: 10}},
	}
}

func TestRepository_CreateOrderTx(t *testing.T) {
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		o := newOrder()
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WithArgs("4321", "c1", "v1", 20.0, o.OrderDate, "COD", "", StatusWaiting, "", 15).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
		mock.ExpectExec(`INSERT INTO order_items`).
			WithArgs("4321", "f1", 2, 10.0).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`DELETE FROM cart_items WHERE customer_id = \$1`).
			WithArgs("c1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, NewRepository(db).CreateOrderTx(context.Background(), o))
		assert.Equal(t, now, o.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("IDCollision", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "orders_pkey"})
		mock.ExpectRollback()

		err = NewRepository(db).CreateOrderTx(context.Background(), newOrder())
		assert.ErrorIs(t, err, ErrOrderIDTaken)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ItemInsertFailureRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
		mock.ExpectExec(`INSERT INTO order_items`).
			WillReturnError(errors.New("fk violation"))
		mock.ExpectRollback()

		err = NewRepository(db).CreateOrderTx(context.Background(), newOrder())
		assert.EqualError(t, err, "fk violation")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CartClearFailureRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
		mock.ExpectExec(`INSERT INTO order_items`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`DELETE FROM cart_items`).
			WillReturnError(errors.New("lock timeout"))
		mock.ExpectRollback()

		err = NewRepository(db).CreateOrderTx(context.Background(), newOrder())
		assert.EqualError(t, err, "lock timeout")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_ListByCustomer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("Hydrates items", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders WHERE customer_id = \$1 ORDER BY order_date DESC`).
			WithArgs("c1").
			WillReturnRows(sqlmock.NewRows(orderCols).
				AddRow("4321", "c1", "v1", 20.0, now, "COD", "", "Waiting", "", 15, now, now).
				AddRow("5555", "c1", "v2", 7.5, now, "COD", "", "READY", "done", 30, now, now))
		mock.ExpectQuery(`(?s)FROM order_items oi.*WHERE oi.order_id = ANY\(\$1\)`).
			WithArgs(pq.Array([]string{"4321", "5555"})).
			WillReturnRows(sqlmock.NewRows(itemCols).
				AddRow("4321", 2, 10.0, "f1", "v1", "Dosa", "", "main", "veg", 15, 12.0, 0.0, "{}", now, now))

		orders, err := repo.ListByCustomer(context.Background(), "c1")
		require.NoError(t, err)
		require.Len(t, orders, 2)

		require.Len(t, orders[0].Items, 1)
		assert.Equal(t, 10.0, orders[0].Items[0].Price, "snapshotted price wins over the current food price")
		assert.Equal(t, 12.0, orders[0].Items[0].Food.Price)
		assert.Equal(t, StatusWaiting, orders[0].OrderStatus)

		assert.NotNil(t, orders[1].Items)
		assert.Empty(t, orders[1].Items)
		assert.Equal(t, StatusReady, orders[1].OrderStatus)
	})

	t.Run("No orders skips item query", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders WHERE customer_id = \$1`).
			WithArgs("c2").
			WillReturnRows(sqlmock.NewRows(orderCols))

		orders, err := repo.ListByCustomer(context.Background(), "c2")
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindForVendor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders WHERE id = \$1 AND vendor_id = \$2`).
			WithArgs("4321", "v1").
			WillReturnRows(sqlmock.NewRows(orderCols).
				AddRow("4321", "c1", "v1", 20.0, now, "COD", "", "ACCEPT", "", 15, now, now))
		mock.ExpectQuery(`FROM order_items`).
			WithArgs(pq.Array([]string{"4321"})).
			WillReturnRows(sqlmock.NewRows(itemCols))

		o, err := repo.FindForVendor(context.Background(), "v1", "4321")
		require.NoError(t, err)
		assert.Equal(t, StatusAccept, o.OrderStatus)
	})

	t.Run("Other vendor's order is not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders WHERE id = \$1 AND vendor_id = \$2`).
			WithArgs("4321", "v2").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindForVendor(context.Background(), "v2", "4321")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("Customer lookup is scoped", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders WHERE id = \$1 AND customer_id = \$2`).
			WithArgs("4321", "c9").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindForCustomer(context.Background(), "c9", "4321")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		o := newOrder()
		o.OrderStatus = StatusAccept
		o.Remarks = "on it"
		o.ReadyTime = 40

		mock.ExpectQuery(`(?s)UPDATE orders.*WHERE id = \$1 AND vendor_id = \$2 AND order_status = \$6`).
			WithArgs("4321", "v1", StatusAccept, "on it", 40, StatusWaiting).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

		require.NoError(t, repo.UpdateStatus(context.Background(), o, StatusWaiting))
		assert.Equal(t, now, o.UpdatedAt)
	})

	t.Run("Concurrent change", func(t *testing.T) {
		o := newOrder()
		o.OrderStatus = StatusAccept

		mock.ExpectQuery(`UPDATE orders`).
			WillReturnError(sql.ErrNoRows)

		err := repo.UpdateStatus(context.Background(), o, StatusWaiting)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusWaiting, StatusAccept, true},
		{StatusWaiting, StatusReject, true},
		{StatusWaiting, StatusReady, false},
		{StatusAccept, StatusUnderProcess, true},
		{StatusAccept, StatusReject, true},
		{StatusUnderProcess, StatusReady, true},
		{StatusUnderProcess, StatusReject, false},
		{StatusReady, StatusWaiting, false},
		{StatusReject, StatusAccept, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}

	assert.True(t, StatusUnderProcess.Valid())
	assert.False(t, Status("SHIPPED").Valid())
}
