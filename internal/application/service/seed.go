package service

import "github.com/udhari/ledger-service/internal/domain"

// The seed dataset is the ledger's initial state when the store holds no
// prior collections. It is written back on first load, so it seeds once
// rather than on every start.

func seedCustomers() []domain.Customer {
	return []domain.Customer{
		{
			ID:              "1",
			Name:            "Aarav Sharma",
			Phone:           "9876543210",
			Address:         "123, MG Road, Bangalore",
			PendingAmount:   250000,
			DueDate:         "2024-08-15",
			LastPaymentDate: "2024-07-20",
			Notes:           "Ordered 50kg rice",
			PhotoURL:        domain.DefaultAvatar,
		},
		{
			ID:              "2",
			Name:            "Priya Patel",
			Phone:           "9988776655",
			Address:         "45, Jubilee Hills, Hyderabad",
			PendingAmount:   0,
			DueDate:         "2024-07-30",
			LastPaymentDate: "2024-07-25",
			Notes:           "Cleared all dues.",
			PhotoURL:        domain.DefaultAvatar,
		},
		{
			ID:              "3",
			Name:            "Rohan Singh",
			Phone:           "8877665544",
			Address:         "789, Linking Road, Mumbai",
			PendingAmount:   50000,
			DueDate:         "2024-08-05",
			LastPaymentDate: "2024-07-10",
			Notes:           "Monthly grocery",
			PhotoURL:        domain.DefaultAvatar,
		},
		{
			ID:              "4",
			Name:            "Sunita Gupta",
			Phone:           "7766554433",
			Address:         "101, Connaught Place, Delhi",
			PendingAmount:   820000,
			DueDate:         "2024-07-28",
			LastPaymentDate: "2024-06-15",
			Notes:           "Large order for event",
			PhotoURL:        domain.DefaultAvatar,
		},
	}
}

// Most recent first, matching how ApplyPayment prepends.
func seedPayments() []domain.Payment {
	return []domain.Payment{
		{ID: "p1", CustomerID: "2", Amount: 150000, Date: "2024-07-25"},
		{ID: "p2", CustomerID: "1", Amount: 100000, Date: "2024-07-20"},
		{ID: "p3", CustomerID: "4", Amount: 500000, Date: "2024-06-15"},
		{ID: "p4", CustomerID: "3", Amount: 200000, Date: "2024-07-10"},
	}
}
