package domain

// Payment is a single recorded repayment against a customer's balance.
// CustomerID is a weak reference: the ledger removes a customer's payments
// explicitly when the customer is deleted.
type Payment struct {
	ID         string `json:"id"`
	CustomerID string `json:"customerId"`
	Amount     Money  `json:"amount"`
	Date       string `json:"date"`
}

func NewPayment(id, customerID string, amount Money, date string) (*Payment, error) {
	if customerID == "" {
		return nil, ErrCustomerNotFound
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	return &Payment{
		ID:         id,
		CustomerID: customerID,
		Amount:     amount,
		Date:       date,
	}, nil
}
