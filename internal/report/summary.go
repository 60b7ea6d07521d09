// Package report derives the financial views from plain order and expense
// snapshots. Everything here is a pure function: no store, no subscription,
// safe to re-run on every snapshot change.
package report

import (
	"sort"
	"time"

	"shutterdesk-be/internal/expense"
	"shutterdesk-be/internal/order"
)

// Range is an optional inclusive date window at day granularity. Either
// bound may be nil.
type Range struct {
	Start *time.Time
	End   *time.Time
}

// Clamp widens the bounds to whole days: start to 00:00:00.000, end to
// 23:59:59.999, so records dated exactly on a boundary day are included.
func (r Range) Clamp() Range {
	out := Range{}
	if r.Start != nil {
		s := time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, r.Start.Location())
		out.Start = &s
	}
	if r.End != nil {
		e := time.Date(r.End.Year(), r.End.Month(), r.End.Day(), 23, 59, 59, int(999*time.Millisecond), r.End.Location())
		out.End = &e
	}
	return out
}

func (r Range) contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// MonthBucket is one calendar month of the summary table.
type MonthBucket struct {
	// Month is the bucket key, formatted YYYY-MM.
	Month string `json:"month"`
	// Label is the human form shown in the table, e.g. "January 2024".
	Label           string  `json:"label"`
	TotalOrders     int     `json:"totalOrders"`
	TotalIncome     float64 `json:"totalIncome"`
	TotalExpenses   float64 `json:"totalExpenses"`
	AdSpent         float64 `json:"adSpent"`
	RealisedEarning float64 `json:"realisedEarning"`
}

// Monthly buckets orders (by shoot date) and expenses (by entry date) into
// calendar months within the range. Income counts every order's total
// charges regardless of status. Records with missing dates are skipped.
// Buckets come back newest month first.
func Monthly(orders []order.Order, expenses []expense.Expense, r Range) []MonthBucket {
	r = r.Clamp()
	buckets := make(map[string]*MonthBucket)

	bucketFor := func(t time.Time) *MonthBucket {
		key := t.Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &MonthBucket{Month: key, Label: t.Format("January 2006")}
			buckets[key] = b
		}
		return b
	}

	for _, o := range orders {
		if !o.HasValidDate() || !r.contains(o.Date) {
			continue
		}
		b := bucketFor(o.Date)
		b.TotalOrders++
		b.TotalIncome += o.TotalCharges
	}

	for _, e := range expenses {
		if !e.HasValidDate() || !r.contains(e.CreatedAt) {
			continue
		}
		b := bucketFor(e.CreatedAt)
		b.TotalExpenses += e.Amount
		if e.Type == expense.TypeAds {
			b.AdSpent += e.Amount
		}
	}

	out := make([]MonthBucket, 0, len(buckets))
	for _, b := range buckets {
		b.RealisedEarning = b.TotalIncome - b.TotalExpenses
		out = append(out, *b)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Month > out[j].Month
	})
	return out
}

// Headline is the dashboard's top-line figures over the whole snapshot, no
// date filter.
type Headline struct {
	// IncomeGenerated sums total charges of Pending orders only. This
	// deliberately diverges from Monthly, which counts all orders; both
	// behaviors are kept as-is pending a product decision.
	IncomeGenerated float64 `json:"incomeGenerated"`
	TotalExpenses   float64 `json:"totalExpenses"`
	TotalOrders     int     `json:"totalOrders"`
	AdSpend         float64 `json:"adSpend"`
}

func Summarize(orders []order.Order, expenses []expense.Expense) Headline {
	var h Headline
	h.TotalOrders = len(orders)
	for _, o := range orders {
		if o.Status == order.StatusPending {
			h.IncomeGenerated += o.TotalCharges
		}
	}
	for _, e := range expenses {
		h.TotalExpenses += e.Amount
		if e.Type == expense.TypeAds {
			h.AdSpend += e.Amount
		}
	}
	return h
}
