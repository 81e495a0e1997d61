// Package report renders the ledger collections as flat CSV text. The
// formatter produces the text only; downloading is the HTTP layer's job.
//
// The output is comma-joined with newline-joined lines and no trailing
// newline. Only fields containing a comma, a double quote or a newline are
// quoted, with embedded quotes doubled, so plain exports stay byte-stable
// while multi-line notes survive a round trip through a spreadsheet.
package report

import (
	"strings"

	"github.com/udhari/ledger-service/internal/domain"
)

// Report filenames the download endpoints serve.
const (
	CustomersFilename = "customers_report.csv"
	PaymentsFilename  = "payments_report.csv"
)

// column pairs a header name with a typed accessor, so export never goes
// through dynamic field lookup.
type column[T any] struct {
	name  string
	value func(T) string
}

var customerColumns = []column[domain.Customer]{
	{"id", func(c domain.Customer) string { return c.ID }},
	{"name", func(c domain.Customer) string { return c.Name }},
	{"phone", func(c domain.Customer) string { return c.Phone }},
	{"address", func(c domain.Customer) string { return c.Address }},
	{"pendingAmount", func(c domain.Customer) string { return c.PendingAmount.String() }},
	{"dueDate", func(c domain.Customer) string { return c.DueDate }},
	{"lastPaymentDate", func(c domain.Customer) string { return c.LastPaymentDate }},
	{"notes", func(c domain.Customer) string { return c.Notes }},
	{"photoUrl", func(c domain.Customer) string { return c.PhotoURL }},
}

// PaymentRow is a payment joined with its customer's name for reporting.
type PaymentRow struct {
	Payment      domain.Payment
	CustomerName string
}

var paymentColumns = []column[PaymentRow]{
	{"id", func(r PaymentRow) string { return r.Payment.ID }},
	{"customerId", func(r PaymentRow) string { return r.Payment.CustomerID }},
	{"customerName", func(r PaymentRow) string { return r.CustomerName }},
	{"amount", func(r PaymentRow) string { return r.Payment.Amount.String() }},
	{"date", func(r PaymentRow) string { return r.Payment.Date }},
}

// CustomersCSV renders the customer collection.
func CustomersCSV(customers []domain.Customer) string {
	return toCSV(customerColumns, customers)
}

// PaymentRows joins each payment with its customer's name, falling back to
// "N/A" when the customer cannot be resolved.
func PaymentRows(payments []domain.Payment, customers []domain.Customer) []PaymentRow {
	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}

	rows := make([]PaymentRow, len(payments))
	for i, p := range payments {
		name, ok := names[p.CustomerID]
		if !ok {
			name = "N/A"
		}
		rows[i] = PaymentRow{Payment: p, CustomerName: name}
	}
	return rows
}

// PaymentsCSV renders payment rows prepared by PaymentRows.
func PaymentsCSV(rows []PaymentRow) string {
	return toCSV(paymentColumns, rows)
}

func toCSV[T any](columns []column[T], records []T) string {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.name
	}

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(names, ","))

	cells := make([]string, len(columns))
	for _, record := range records {
		for i, col := range columns {
			cells[i] = escapeCell(col.value(record))
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return strings.Join(lines, "\n")
}

func escapeCell(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
