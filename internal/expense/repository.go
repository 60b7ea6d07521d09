package expense

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shutterdesk-be/internal/logger"
	"shutterdesk-be/internal/stream"
)

// Repository owns the expenses collection, with the same live-snapshot
// contract as the order store.
type Repository interface {
	Create(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, id string) (*Expense, error)
	List(ctx context.Context) ([]Expense, error)
	Update(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, id string) error

	Subscribe(fn func([]Expense)) func()
	Refresh(ctx context.Context)
}

type repository struct {
	db       *sql.DB
	hub      *stream.Hub[[]Expense]
	notifier stream.Notifier
}

func NewRepository(db *sql.DB, notifier stream.Notifier) Repository {
	return &repository{
		db:       db,
		hub:      stream.NewHub[[]Expense](),
		notifier: notifier,
	}
}

func (r *repository) Create(ctx context.Context, e *Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (id, amount, type, created_at)
		VALUES ($1,$2,$3,$4)
	`, e.ID, e.Amount, e.Type, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	r.broadcast(ctx)
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Expense, error) {
	var e Expense
	err := r.db.QueryRowContext(ctx, `
		SELECT id, amount, type, created_at FROM expenses WHERE id = $1
	`, id).Scan(&e.ID, &e.Amount, &e.Type, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return &e, nil
}

func (r *repository) List(ctx context.Context) ([]Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, amount, type, created_at FROM expenses ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.Amount, &e.Type, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("expenses iteration error: %w", err)
	}

	return expenses, nil
}

// Update rewrites amount and type only; the creation time is immutable.
func (r *repository) Update(ctx context.Context, e *Expense) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses SET amount = $1, type = $2 WHERE id = $3
	`, e.Amount, e.Type, e.ID)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}

	r.broadcast(ctx)
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}

	r.broadcast(ctx)
	return nil
}

func (r *repository) Subscribe(fn func([]Expense)) func() {
	return r.hub.Subscribe(fn)
}

func (r *repository) Refresh(ctx context.Context) {
	if r.hub.Len() == 0 {
		return
	}

	expenses, err := r.List(ctx)
	if err != nil {
		logger.FromCtx(ctx).Warn("expense snapshot refresh failed", zap.Error(err))
		return
	}
	r.hub.Publish(expenses)
}

func (r *repository) broadcast(ctx context.Context) {
	r.Refresh(ctx)
	if r.notifier != nil {
		r.notifier.Notify(ctx, "expenses")
	}
}
