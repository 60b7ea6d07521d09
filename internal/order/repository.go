package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shutterdesk-be/internal/logger"
	"shutterdesk-be/internal/stream"
)

// Repository owns the orders collection. Besides CRUD it exposes a live
// snapshot subscription: every successful mutation republishes the whole
// collection, mirroring how the stores are consumed downstream (derivations
// take plain snapshots, views re-render on each one).
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	Update(ctx context.Context, o *Order) error
	ApplyPayment(ctx context.Context, o *Order) error
	Complete(ctx context.Context, id string, at time.Time) error
	UpdateStatus(ctx context.Context, id string, status OrderStatus, at time.Time) error
	Delete(ctx context.Context, id string) error

	// NextOrderNo probes the highest assigned order number and returns the
	// one after it. Two clients probing simultaneously can both get the same
	// answer; that race is accepted, the same as the system this replaces.
	NextOrderNo(ctx context.Context) (int64, error)

	Subscribe(fn func([]Order)) func()
	Refresh(ctx context.Context)
}

const orderColumns = `id, order_no, customer_name, phone, account, photo_type,
		total_charges, upfront_paid, due_amount, date, status, created_at, updated_at`

type repository struct {
	db       *sql.DB
	hub      *stream.Hub[[]Order]
	notifier stream.Notifier
}

// NewRepository wires the store. notifier may be nil when running a single
// instance.
func NewRepository(db *sql.DB, notifier stream.Notifier) Repository {
	return &repository{
		db:       db,
		hub:      stream.NewHub[[]Order](),
		notifier: notifier,
	}
}

func (r *repository) Create(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (
			id, order_no, customer_name, phone, account, photo_type,
			total_charges, upfront_paid, due_amount, date, status,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		o.ID,
		o.OrderNo,
		o.CustomerName,
		o.Phone,
		o.Account,
		o.PhotoType,
		o.TotalCharges,
		o.UpfrontPaid,
		o.DueAmount,
		o.Date,
		o.Status,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	r.broadcast(ctx)
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders WHERE id = $1
	`, id).Scan(
		&o.ID, &o.OrderNo, &o.CustomerName, &o.Phone, &o.Account, &o.PhotoType,
		&o.TotalCharges, &o.UpfrontPaid, &o.DueAmount, &o.Date, &o.Status,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}

func (r *repository) List(ctx context.Context) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders ORDER BY date DESC, order_no DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.OrderNo, &o.CustomerName, &o.Phone, &o.Account, &o.PhotoType,
			&o.TotalCharges, &o.UpfrontPaid, &o.DueAmount, &o.Date, &o.Status,
			&o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders iteration error: %w", err)
	}

	return orders, nil
}

// Update rewrites the editable fields. The due amount arrives already
// recomputed by the service; it changes in the same statement as its
// operands.
func (r *repository) Update(ctx context.Context, o *Order) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET
			customer_name = $1,
			phone = $2,
			account = $3,
			photo_type = $4,
			total_charges = $5,
			upfront_paid = $6,
			due_amount = $7,
			date = $8,
			updated_at = $9
		WHERE id = $10
	`,
		o.CustomerName,
		o.Phone,
		o.Account,
		o.PhotoType,
		o.TotalCharges,
		o.UpfrontPaid,
		o.DueAmount,
		o.Date,
		o.UpdatedAt,
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}

	r.broadcast(ctx)
	return nil
}

// ApplyPayment persists the payment arithmetic: new upfront, recomputed due,
// and whatever status the service derived from them.
func (r *repository) ApplyPayment(ctx context.Context, o *Order) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET
			upfront_paid = $1,
			due_amount = $2,
			status = $3,
			updated_at = $4
		WHERE id = $5
	`, o.UpfrontPaid, o.DueAmount, o.Status, o.UpdatedAt, o.ID)
	if err != nil {
		return fmt.Errorf("failed to apply payment: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}

	r.broadcast(ctx)
	return nil
}

// Complete finalizes an order: paid in full, nothing due, Completed. All in
// one statement so the due-amount invariant cannot be observed broken.
func (r *repository) Complete(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET
			upfront_paid = total_charges,
			due_amount = 0,
			status = $1,
			updated_at = $2
		WHERE id = $3
	`, StatusCompleted, at, id)
	if err != nil {
		return fmt.Errorf("failed to complete order: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}

	r.broadcast(ctx)
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status OrderStatus, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3
	`, status, at, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}

	r.broadcast(ctx)
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}

	r.broadcast(ctx)
	return nil
}

func (r *repository) NextOrderNo(ctx context.Context) (int64, error) {
	var last int64
	err := r.db.QueryRowContext(ctx, `
		SELECT order_no FROM orders ORDER BY order_no DESC LIMIT 1
	`).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to probe last order number: %w", err)
	}
	return last + 1, nil
}

func (r *repository) Subscribe(fn func([]Order)) func() {
	return r.hub.Subscribe(fn)
}

// Refresh reloads the collection and republishes it locally. The Redis
// bridge calls this when a sibling instance reports a write.
func (r *repository) Refresh(ctx context.Context) {
	if r.hub.Len() == 0 {
		return
	}

	orders, err := r.List(ctx)
	if err != nil {
		logger.FromCtx(ctx).Warn("order snapshot refresh failed", zap.Error(err))
		return
	}
	r.hub.Publish(orders)
}

// broadcast runs after every successful mutation: local subscribers get a
// fresh snapshot, sibling instances get a change notice.
func (r *repository) broadcast(ctx context.Context) {
	r.Refresh(ctx)
	if r.notifier != nil {
		r.notifier.Notify(ctx, "orders")
	}
}
