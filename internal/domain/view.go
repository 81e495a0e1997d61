package domain

import (
	"sort"
	"strings"
	"time"
)

// Status is the derived repayment state of a customer.
type Status string

const (
	StatusPaid    Status = "Paid"
	StatusOverdue Status = "Overdue"
	StatusPending Status = "Pending"
)

// DashboardStats summarizes the customer collection for the dashboard.
type DashboardStats struct {
	TotalPending   Money `json:"totalPending"`
	TotalCustomers int   `json:"totalCustomers"`
	UpcomingDues   int   `json:"upcomingDues"`
}

// ComputeDashboardStats aggregates the customer collection as of today.
// A due counts as upcoming when it is strictly after today, at most seven
// days out, and the customer still owes something. A due date equal to
// today is already due, not upcoming.
func ComputeDashboardStats(customers []Customer, today time.Time) DashboardStats {
	day := dateOnly(today)
	horizon := day.AddDate(0, 0, 7)

	stats := DashboardStats{TotalCustomers: len(customers)}
	for _, c := range customers {
		stats.TotalPending += c.PendingAmount

		if c.DueDate == "" || c.PendingAmount <= 0 {
			continue
		}
		due, err := time.ParseInLocation(DateLayout, c.DueDate, today.Location())
		if err != nil {
			continue
		}
		if due.After(day) && !due.After(horizon) {
			stats.UpcomingDues++
		}
	}
	return stats
}

// ClassifyStatus derives a customer's repayment status as of today.
// A settled customer is Paid regardless of the due date; an unparseable or
// missing due date with an outstanding balance is Pending.
func ClassifyStatus(c Customer, today time.Time) Status {
	if c.PendingAmount == 0 {
		return StatusPaid
	}
	if c.DueDate != "" {
		due, err := time.ParseInLocation(DateLayout, c.DueDate, today.Location())
		if err == nil && due.Before(dateOnly(today)) {
			return StatusOverdue
		}
	}
	return StatusPending
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SortField enumerates the customer fields the list view can sort on.
type SortField int

const (
	SortNone SortField = iota
	SortByName
	SortByPhone
	SortByPendingAmount
	SortByDueDate
	SortByLastPaymentDate
)

var sortFieldNames = map[string]SortField{
	"none":            SortNone,
	"name":            SortByName,
	"phone":           SortByPhone,
	"pendingAmount":   SortByPendingAmount,
	"dueDate":         SortByDueDate,
	"lastPaymentDate": SortByLastPaymentDate,
}

// ParseSortField maps a field name to its SortField. Unknown names are an
// error so callers can reject them instead of silently not sorting.
func ParseSortField(name string) (SortField, bool) {
	f, ok := sortFieldNames[name]
	return f, ok
}

type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// compareBy holds one typed accessor per sortable field, so sorting never
// goes through dynamic field lookup.
var compareBy = map[SortField]func(a, b Customer) int{
	SortByName:  func(a, b Customer) int { return strings.Compare(a.Name, b.Name) },
	SortByPhone: func(a, b Customer) int { return strings.Compare(a.Phone, b.Phone) },
	SortByPendingAmount: func(a, b Customer) int {
		switch {
		case a.PendingAmount < b.PendingAmount:
			return -1
		case a.PendingAmount > b.PendingAmount:
			return 1
		}
		return 0
	},
	// ISO date strings sort correctly lexicographically.
	SortByDueDate:         func(a, b Customer) int { return strings.Compare(a.DueDate, b.DueDate) },
	SortByLastPaymentDate: func(a, b Customer) int { return strings.Compare(a.LastPaymentDate, b.LastPaymentDate) },
}

// FilterAndSortCustomers returns the customers matching term, ordered by
// the given field and direction. The match is a case-insensitive substring
// of the name or a case-sensitive substring of the phone; an empty term
// matches everything. SortNone preserves the filter order. The input slice
// is never mutated.
func FilterAndSortCustomers(customers []Customer, term string, field SortField, direction SortDirection) []Customer {
	needle := strings.ToLower(term)

	filtered := make([]Customer, 0, len(customers))
	for _, c := range customers {
		if term == "" ||
			strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(c.Phone, term) {
			filtered = append(filtered, c)
		}
	}

	compare, ok := compareBy[field]
	if !ok {
		return filtered
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		if direction == Descending {
			return compare(filtered[i], filtered[j]) > 0
		}
		return compare(filtered[i], filtered[j]) < 0
	})
	return filtered
}

// RecentPayments returns the first n payments. The payment collection is
// maintained most-recent-first, so this is a slice, not a sort.
func RecentPayments(payments []Payment, n int) []Payment {
	if n < 0 {
		n = 0
	}
	if n > len(payments) {
		n = len(payments)
	}
	recent := make([]Payment, n)
	copy(recent, payments[:n])
	return recent
}
