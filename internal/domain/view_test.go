package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(t time.Time) string {
	return t.Format(DateLayout)
}

func TestComputeDashboardStats(t *testing.T) {
	today := time.Date(2024, 7, 28, 14, 30, 0, 0, time.UTC)

	customers := []Customer{
		{ID: "1", PendingAmount: 250000, DueDate: day(today.AddDate(0, 0, 3))},
		{ID: "2", PendingAmount: 0, DueDate: day(today.AddDate(0, 0, 3))},
		{ID: "3", PendingAmount: 50000, DueDate: day(today.AddDate(0, 0, 10))},
	}

	stats := ComputeDashboardStats(customers, today)

	assert.Equal(t, Money(300000), stats.TotalPending)
	assert.Equal(t, 3, stats.TotalCustomers)
	// Only the first qualifies: positive pending, due within (today, today+7d].
	assert.Equal(t, 1, stats.UpcomingDues)
}

func TestComputeDashboardStats_Boundaries(t *testing.T) {
	today := time.Date(2024, 7, 28, 23, 59, 0, 0, time.UTC)

	cases := []struct {
		name     string
		customer Customer
		upcoming int
	}{
		{"due today is already due, not upcoming", Customer{PendingAmount: 100, DueDate: day(today)}, 0},
		{"due tomorrow is upcoming", Customer{PendingAmount: 100, DueDate: day(today.AddDate(0, 0, 1))}, 1},
		{"due in exactly seven days is upcoming", Customer{PendingAmount: 100, DueDate: day(today.AddDate(0, 0, 7))}, 1},
		{"due in eight days is not", Customer{PendingAmount: 100, DueDate: day(today.AddDate(0, 0, 8))}, 0},
		{"no due date", Customer{PendingAmount: 100}, 0},
		{"unparseable due date", Customer{PendingAmount: 100, DueDate: "soon"}, 0},
		{"settled customer", Customer{PendingAmount: 0, DueDate: day(today.AddDate(0, 0, 3))}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stats := ComputeDashboardStats([]Customer{tc.customer}, today)
			assert.Equal(t, tc.upcoming, stats.UpcomingDues)
		})
	}
}

func TestComputeDashboardStats_Empty(t *testing.T) {
	stats := ComputeDashboardStats(nil, time.Now())
	assert.Equal(t, DashboardStats{}, stats)
}

func TestClassifyStatus(t *testing.T) {
	today := time.Date(2024, 7, 28, 10, 0, 0, 0, time.UTC)

	// Settled is Paid regardless of an overdue due date.
	assert.Equal(t, StatusPaid, ClassifyStatus(Customer{PendingAmount: 0, DueDate: "2024-01-01"}, today))

	assert.Equal(t, StatusOverdue, ClassifyStatus(Customer{PendingAmount: 50000, DueDate: day(today.AddDate(0, 0, -1))}, today))
	assert.Equal(t, StatusPending, ClassifyStatus(Customer{PendingAmount: 50000, DueDate: day(today.AddDate(0, 0, 1))}, today))

	// Date-only comparison: due today is not overdue yet.
	assert.Equal(t, StatusPending, ClassifyStatus(Customer{PendingAmount: 50000, DueDate: day(today)}, today))

	// Missing or unparseable due date with a balance is Pending.
	assert.Equal(t, StatusPending, ClassifyStatus(Customer{PendingAmount: 50000}, today))
	assert.Equal(t, StatusPending, ClassifyStatus(Customer{PendingAmount: 50000, DueDate: "later"}, today))
}

func TestFilterAndSortCustomers_Filter(t *testing.T) {
	customers := []Customer{
		{ID: "1", Name: "Aarav Sharma", Phone: "9876543210"},
		{ID: "2", Name: "Priya Patel", Phone: "9988776655"},
	}

	matched := FilterAndSortCustomers(customers, "pri", SortNone, Ascending)
	assert.Len(t, matched, 1)
	assert.Equal(t, "Priya Patel", matched[0].Name)

	// Phone match is a plain substring.
	matched = FilterAndSortCustomers(customers, "7654", SortNone, Ascending)
	assert.Len(t, matched, 1)
	assert.Equal(t, "Aarav Sharma", matched[0].Name)

	// Empty term matches all.
	assert.Len(t, FilterAndSortCustomers(customers, "", SortNone, Ascending), 2)

	assert.Empty(t, FilterAndSortCustomers(customers, "zzz", SortNone, Ascending))
}

func TestFilterAndSortCustomers_Sort(t *testing.T) {
	customers := []Customer{
		{ID: "1", Name: "Rohan", PendingAmount: 50000, DueDate: "2024-08-05"},
		{ID: "2", Name: "Aarav", PendingAmount: 250000, DueDate: "2024-08-15"},
		{ID: "3", Name: "Priya", PendingAmount: 0, DueDate: "2024-07-30"},
	}

	byName := FilterAndSortCustomers(customers, "", SortByName, Ascending)
	assert.Equal(t, []string{"Aarav", "Priya", "Rohan"}, names(byName))

	byNameDesc := FilterAndSortCustomers(customers, "", SortByName, Descending)
	assert.Equal(t, []string{"Rohan", "Priya", "Aarav"}, names(byNameDesc))

	byAmount := FilterAndSortCustomers(customers, "", SortByPendingAmount, Ascending)
	assert.Equal(t, []string{"Priya", "Rohan", "Aarav"}, names(byAmount))

	byDue := FilterAndSortCustomers(customers, "", SortByDueDate, Ascending)
	assert.Equal(t, []string{"Priya", "Rohan", "Aarav"}, names(byDue))

	// SortNone preserves filter order, and the input is never mutated.
	unsorted := FilterAndSortCustomers(customers, "", SortNone, Ascending)
	assert.Equal(t, []string{"Rohan", "Aarav", "Priya"}, names(unsorted))
	assert.Equal(t, "Rohan", customers[0].Name)
}

func names(customers []Customer) []string {
	out := make([]string, len(customers))
	for i, c := range customers {
		out[i] = c.Name
	}
	return out
}

func TestParseSortField(t *testing.T) {
	for name, want := range map[string]SortField{
		"none":            SortNone,
		"name":            SortByName,
		"phone":           SortByPhone,
		"pendingAmount":   SortByPendingAmount,
		"dueDate":         SortByDueDate,
		"lastPaymentDate": SortByLastPaymentDate,
	} {
		got, ok := ParseSortField(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	_, ok := ParseSortField("pendingamount")
	assert.False(t, ok)
}

func TestRecentPayments(t *testing.T) {
	payments := []Payment{
		{ID: "p1", Date: "2024-07-25"},
		{ID: "p2", Date: "2024-07-20"},
		{ID: "p3", Date: "2024-06-15"},
	}

	recent := RecentPayments(payments, 2)
	assert.Len(t, recent, 2)
	// Slicing trusts collection order, it does not sort.
	assert.Equal(t, "p1", recent[0].ID)
	assert.Equal(t, "p2", recent[1].ID)

	assert.Len(t, RecentPayments(payments, 10), 3)
	assert.Empty(t, RecentPayments(payments, 0))
	assert.Empty(t, RecentPayments(payments, -1))
}
