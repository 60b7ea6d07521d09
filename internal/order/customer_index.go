package order

import (
	"sort"
	"strings"
)

// Customer is one autocomplete entry: a distinct customer name and the phone
// number most recently seen with it.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// CustomerIndex is the client-side autocomplete index of the intake form,
// rebuilt from the live order snapshot. Names are keyed case-insensitively.
type CustomerIndex struct {
	byKey map[string]Customer
}

// BuildCustomerIndex folds an order snapshot into the index. Orders are
// visited oldest-first by creation time so a later order overwrites the
// phone recorded for the same name.
func BuildCustomerIndex(orders []Order) *CustomerIndex {
	sorted := make([]Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	idx := &CustomerIndex{byKey: make(map[string]Customer)}
	for _, o := range sorted {
		if o.CustomerName == "" {
			continue
		}
		key := strings.ToLower(o.CustomerName)
		c := Customer{Name: o.CustomerName, Phone: o.Phone}
		if prev, ok := idx.byKey[key]; ok && o.Phone == "" {
			c.Phone = prev.Phone
		}
		idx.byKey[key] = c
	}
	return idx
}

// Suggest returns every entry whose name contains q, case-insensitively,
// sorted by name for a stable dropdown. An empty q suggests nothing.
func (idx *CustomerIndex) Suggest(q string) []Customer {
	if q == "" {
		return nil
	}

	needle := strings.ToLower(q)
	var out []Customer
	for key, c := range idx.byKey {
		if strings.Contains(key, needle) {
			out = append(out, c)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Lookup returns the entry for an exact name, case-insensitively. Selecting
// a suggestion uses this to fill the phone field.
func (idx *CustomerIndex) Lookup(name string) (Customer, bool) {
	c, ok := idx.byKey[strings.ToLower(name)]
	return c, ok
}
