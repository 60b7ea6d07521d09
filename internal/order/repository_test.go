package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderCols = []string{
	"id", "order_no", "customer_name", "phone", "account", "photo_type",
	"total_charges", "upfront_paid", "due_amount", "date", "status",
	"created_at", "updated_at",
}

func sampleOrderRow(rows *sqlmock.Rows, o Order) *sqlmock.Rows {
	return rows.AddRow(
		o.ID, o.OrderNo, o.CustomerName, o.Phone, o.Account, o.PhotoType,
		o.TotalCharges, o.UpfrontPaid, o.DueAmount, o.Date, o.Status,
		o.CreatedAt, o.UpdatedAt,
	)
}

func fixtureOrder() Order {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	return Order{
		ID:           "ord-1",
		OrderNo:      42,
		CustomerName: "Asha Verma",
		Phone:        "9876543210",
		Account:      AccountPrimaryBrand,
		PhotoType:    PhotoTypeFramed,
		TotalCharges: 5000,
		UpfrontPaid:  2000,
		DueAmount:    3000,
		Date:         now,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db, nil)

		o := fixtureOrder()
		mock.ExpectExec(`INSERT INTO orders`).
			WithArgs(o.ID, o.OrderNo, o.CustomerName, o.Phone, o.Account, o.PhotoType,
				o.TotalCharges, o.UpfrontPaid, o.DueAmount, o.Date, o.Status,
				o.CreatedAt, o.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		assert.NoError(t, repo.Create(ctx, &o))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AssignsID", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db, nil)

		o := fixtureOrder()
		o.ID = ""
		mock.ExpectExec(`INSERT INTO orders`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, repo.Create(ctx, &o))
		assert.NotEmpty(t, o.ID)
	})

	t.Run("DBError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db, nil)

		o := fixtureOrder()
		mock.ExpectExec(`INSERT INTO orders`).WillReturnError(errors.New("db error"))
		assert.Error(t, repo.Create(ctx, &o))
	})
}

func TestRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db, nil)

		want := fixtureOrder()
		mock.ExpectQuery(`SELECT .* FROM orders WHERE id = \$1`).
			WithArgs("ord-1").
			WillReturnRows(sampleOrderRow(sqlmock.NewRows(orderCols), want))

		got, err := repo.GetByID(ctx, "ord-1")
		require.NoError(t, err)
		assert.Equal(t, want, *got)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db, nil)

		mock.ExpectQuery(`SELECT .* FROM orders WHERE id = \$1`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(orderCols))

		_, err = repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db, nil)

	a := fixtureOrder()
	b := fixtureOrder()
	b.ID = "ord-2"
	b.OrderNo = 43

	rows := sqlmock.NewRows(orderCols)
	sampleOrderRow(rows, b)
	sampleOrderRow(rows, a)
	mock.ExpectQuery(`SELECT .* FROM orders ORDER BY date DESC, order_no DESC`).
		WillReturnRows(rows)

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ord-2", orders[0].ID)
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db, nil)

		o := fixtureOrder()
		mock.ExpectExec(`UPDATE orders SET`).
			WithArgs(o.CustomerName, o.Phone, o.Account, o.PhotoType,
				o.TotalCharges, o.UpfrontPaid, o.DueAmount, o.Date, o.UpdatedAt, o.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(ctx, &o))
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db, nil)

		o := fixtureOrder()
		mock.ExpectExec(`UPDATE orders SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(ctx, &o), ErrNotFound)
	})
}

func TestRepository_Complete(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db, nil)

		mock.ExpectExec(`UPDATE orders SET\s+upfront_paid = total_charges,\s+due_amount = 0`).
			WithArgs(StatusCompleted, at, "ord-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Complete(ctx, "ord-1", at))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db, nil)

		mock.ExpectExec(`UPDATE orders SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Complete(ctx, "missing", at), ErrNotFound)
	})
}

func TestRepository_NextOrderNo(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db, nil)

		mock.ExpectQuery(`SELECT order_no FROM orders ORDER BY order_no DESC LIMIT 1`).
			WillReturnRows(sqlmock.NewRows([]string{"order_no"}))

		no, err := repo.NextOrderNo(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), no)
	})

	t.Run("AfterLast", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db, nil)

		mock.ExpectQuery(`SELECT order_no FROM orders ORDER BY order_no DESC LIMIT 1`).
			WillReturnRows(sqlmock.NewRows([]string{"order_no"}).AddRow(41))

		no, err := repo.NextOrderNo(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(42), no)
	})
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db, nil)

	mock.ExpectExec(`DELETE FROM orders WHERE id = \$1`).
		WithArgs("ord-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(ctx, "ord-1"))
}

func TestRepository_BroadcastsSnapshot(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db, nil)

	var got []Order
	unsubscribe := repo.Subscribe(func(snapshot []Order) { got = snapshot })
	defer unsubscribe()

	o := fixtureOrder()
	mock.ExpectExec(`DELETE FROM orders WHERE id = \$1`).
		WithArgs(o.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT .* FROM orders ORDER BY date DESC, order_no DESC`).
		WillReturnRows(sampleOrderRow(sqlmock.NewRows(orderCols), o))

	require.NoError(t, repo.Delete(ctx, o.ID))
	require.Len(t, got, 1)
	assert.Equal(t, o.ID, got[0].ID)
}
