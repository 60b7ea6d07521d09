package expense

import (
	"context"
	"time"

	"go.uber.org/zap"

	"shutterdesk-be/internal/logger"
)

type Service interface {
	Create(ctx context.Context, in Input) (*Expense, error)
	// List returns the ledger, optionally narrowed to one exact type.
	// An empty typeFilter means no filter.
	List(ctx context.Context, typeFilter string) ([]Expense, error)
	Update(ctx context.Context, id string, in Input) (*Expense, error)
	Delete(ctx context.Context, id string) error
	Subscribe(fn func([]Expense)) func()
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Create(ctx context.Context, in Input) (*Expense, error) {
	if err := Parse(in); err != nil {
		return nil, err
	}

	e := &Expense{
		Amount:    in.Amount,
		Type:      in.Type,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		logger.FromCtx(ctx).Error("expense create failed", zap.Error(err))
		return nil, err
	}
	return e, nil
}

func (s *service) List(ctx context.Context, typeFilter string) ([]Expense, error) {
	expenses, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByType(expenses, typeFilter), nil
}

// FilterByType narrows a snapshot to one exact expense type. Pure; "" or
// "All" passes everything through.
func FilterByType(expenses []Expense, typeFilter string) []Expense {
	if typeFilter == "" || typeFilter == "All" {
		return expenses
	}

	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if string(e.Type) == typeFilter {
			out = append(out, e)
		}
	}
	return out
}

func (s *service) Update(ctx context.Context, id string, in Input) (*Expense, error) {
	if err := Parse(in); err != nil {
		return nil, err
	}

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	e.Amount = in.Amount
	e.Type = in.Type
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Subscribe(fn func([]Expense)) func() {
	return s.repo.Subscribe(fn)
}
