package order

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shutterdesk-be/internal/logger"
)

// ListFilter mirrors the controls of the orders screen. Filtering and
// sorting happen over the in-memory snapshot, the same way the views do it.
type ListFilter struct {
	// Status narrows to one lifecycle state; "All" or "" shows everything.
	Status string
	// Month narrows to a calendar month, formatted YYYY-MM.
	Month string
	// Search matches the customer name case-insensitively or the phone as a
	// substring.
	Search string
	// SortBy is one of date-desc (default), date-asc, due-desc, due-asc.
	SortBy string
}

// ListResult carries the filtered view plus the counters the screen shows
// alongside it.
type ListResult struct {
	Orders         []Order `json:"orders"`
	TotalRevenue   float64 `json:"totalRevenue"`
	PendingCount   int     `json:"pendingCount"`
	CompletedCount int     `json:"completedCount"`
	AllCount       int     `json:"allCount"`
}

type Service interface {
	Intake(ctx context.Context, in Intake) (*Order, error)
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	Get(ctx context.Context, id string) (*Order, error)
	Edit(ctx context.Context, id string, in Edit) (*Order, error)
	AddPayment(ctx context.Context, id string, amount float64) (*Order, error)

	// Completion is deliberately two calls: RequestCompletion issues a
	// short-lived token, ConfirmCompletion spends it. Finalizing is
	// irreversible, so a single misclick must not be enough.
	RequestCompletion(ctx context.Context, id string) (string, error)
	ConfirmCompletion(ctx context.Context, id, token string) (*Order, error)

	Cancel(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error

	Suggest(ctx context.Context, q string) ([]Customer, error)
	Months(ctx context.Context) ([]string, error)
	Subscribe(fn func([]Order)) func()
}

// completionTTL bounds how long the first confirmation stays valid.
const completionTTL = 2 * time.Minute

type pendingCompletion struct {
	token     string
	expiresAt time.Time
}

type service struct {
	repo Repository
	now  func() time.Time

	mu      sync.Mutex
	pending map[string]pendingCompletion
}

func NewService(repo Repository) Service {
	return &service{
		repo:    repo,
		now:     time.Now,
		pending: make(map[string]pendingCompletion),
	}
}

func (s *service) Intake(ctx context.Context, in Intake) (*Order, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "Intake"))

	o, err := ParseIntake(in)
	if err != nil {
		return nil, err
	}

	orderNo, err := s.repo.NextOrderNo(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	o.OrderNo = orderNo
	o.CreatedAt = now
	o.UpdatedAt = now

	if err := s.repo.Create(ctx, o); err != nil {
		log.Error("order intake failed", zap.Error(err))
		return nil, err
	}

	log.Info("order created",
		zap.Int64("order_no", o.OrderNo),
		zap.Float64("total_charges", o.TotalCharges),
		zap.Float64("due_amount", o.DueAmount),
	)
	return o, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterOrders(orders, filter), nil
}

// FilterOrders applies the screen's filter to a plain snapshot. Pure, so the
// same view logic is testable against fixture data.
func FilterOrders(orders []Order, filter ListFilter) *ListResult {
	res := &ListResult{AllCount: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case StatusPending:
			res.PendingCount++
		case StatusCompleted:
			res.CompletedCount++
		}
	}

	filtered := make([]Order, 0, len(orders))
	for _, o := range orders {
		if filter.Status != "" && filter.Status != "All" && string(o.Status) != filter.Status {
			continue
		}
		if filter.Month != "" {
			if !o.HasValidDate() || o.Date.Format("2006-01") != filter.Month {
				continue
			}
		}
		if filter.Search != "" {
			q := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(o.CustomerName), q) &&
				!strings.Contains(o.Phone, filter.Search) {
				continue
			}
		}
		filtered = append(filtered, o)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		switch filter.SortBy {
		case "date-asc":
			return a.Date.Before(b.Date)
		case "due-desc":
			return a.DueAmount > b.DueAmount
		case "due-asc":
			return a.DueAmount < b.DueAmount
		default: // date-desc
			return b.Date.Before(a.Date)
		}
	})

	for _, o := range filtered {
		res.TotalRevenue += o.TotalCharges
	}
	res.Orders = filtered
	return res
}

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Edit(ctx context.Context, id string, in Edit) (*Order, error) {
	if err := ParseEdit(in); err != nil {
		return nil, err
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	o.CustomerName = in.CustomerName
	o.Phone = in.Phone
	o.Account = in.Account
	o.PhotoType = in.PhotoType
	o.TotalCharges = in.TotalCharges
	o.UpfrontPaid = in.UpfrontPaid
	o.Date = in.Date
	o.RecomputeDue()
	o.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// AddPayment applies a partial payment. The 1..due bounds are the input
// widget's contract, enforced at the transport edge; here only the state
// gates hold: no payments against completed orders or a zero due.
func (s *service) AddPayment(ctx context.Context, id string, amount float64) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if o.Status == StatusCompleted {
		return nil, ErrAlreadyCompleted
	}
	if o.DueAmount <= 0 {
		return nil, ErrNothingDue
	}

	o.UpfrontPaid += amount
	o.RecomputeDue()
	if o.DueAmount <= 0 {
		o.Status = StatusCompleted
	}
	o.UpdatedAt = s.now()

	if err := s.repo.ApplyPayment(ctx, o); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("payment recorded",
		zap.String("order_id", o.ID),
		zap.Float64("amount", amount),
		zap.Float64("due_amount", o.DueAmount),
		zap.String("status", string(o.Status)),
	)
	return o, nil
}

func (s *service) RequestCompletion(ctx context.Context, id string) (string, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if o.Status != StatusPending {
		return "", ErrNotPending
	}

	token := uuid.New().String()
	s.mu.Lock()
	s.pending[id] = pendingCompletion{token: token, expiresAt: s.now().Add(completionTTL)}
	s.mu.Unlock()

	return token, nil
}

func (s *service) ConfirmCompletion(ctx context.Context, id, token string) (*Order, error) {
	s.mu.Lock()
	pc, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrNoPendingConfirmation
	}
	if pc.token != token {
		return nil, ErrConfirmationMismatch
	}
	if s.now().After(pc.expiresAt) {
		return nil, ErrConfirmationExpired
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusPending {
		return nil, ErrNotPending
	}

	at := s.now()
	if err := s.repo.Complete(ctx, id, at); err != nil {
		return nil, err
	}

	o.UpfrontPaid = o.TotalCharges
	o.DueAmount = 0
	o.Status = StatusCompleted
	o.UpdatedAt = at

	logger.FromCtx(ctx).Info("order completed", zap.String("order_id", id))
	return o, nil
}

// Cancel closes an unresponsive client's order. Charges and payments stay
// as they are.
func (s *service) Cancel(ctx context.Context, id string) error {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o.Status != StatusPending {
		return ErrNotPending
	}

	return s.repo.UpdateStatus(ctx, id, StatusCancelled, s.now())
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Suggest(ctx context.Context, q string) ([]Customer, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return BuildCustomerIndex(orders).Suggest(q), nil
}

// Months lists the distinct calendar months present in the snapshot, newest
// first, for the month filter dropdown.
func (s *service) Months(ctx context.Context) ([]string, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var months []string
	for _, o := range orders {
		if !o.HasValidDate() {
			continue
		}
		m := o.Date.Format("2006-01")
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months, nil
}

func (s *service) Subscribe(fn func([]Order)) func() {
	return s.repo.Subscribe(fn)
}
