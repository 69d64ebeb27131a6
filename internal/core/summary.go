package core

// MonthlySummary is the cash-basis income/expense balance for one calendar
// month: only rows marked paid count, pending ones are excluded.
type MonthlySummary struct {
	Year    int   `json:"year"`
	Month   int   `json:"month"` // 1-12
	Income  Money `json:"income"`
	Expense Money `json:"expense"`
	Balance Money `json:"balance"`
}

// CategorySummary aggregates one category's paid transactions for a month.
type CategorySummary struct {
	CategoryID int64           `json:"categoryId"`
	Name       string          `json:"name"`
	Type       TransactionType `json:"type"`
	Color      string          `json:"color,omitempty"`
	Total      Money           `json:"total"`
	Count      int64           `json:"count"`
}

// PaymentMethodSummary aggregates one payment method's paid transactions
// for a month.
type PaymentMethodSummary struct {
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Total         Money         `json:"total"`
	Count         int64         `json:"count"`
}

// InstallmentGroup is the virtual entity formed by all rows sharing one
// installment group id, with its derived totals.
type InstallmentGroup struct {
	GroupID           string        `json:"installmentGroupId"`
	Transactions      []Transaction `json:"transactions"`
	TotalAmount       Money         `json:"totalAmount"`
	PaidAmount        Money         `json:"paidAmount"`
	RemainingAmount   Money         `json:"remainingAmount"`
	TotalInstallments int           `json:"totalInstallments"`
	PaidInstallments  int           `json:"paidInstallments"`
}

// SummarizeInstallmentGroup derives the group totals from its member rows.
// Members are expected to be ordered by installment number already.
func SummarizeInstallmentGroup(groupID string, members []Transaction) InstallmentGroup {
	g := InstallmentGroup{GroupID: groupID, Transactions: members}
	for _, t := range members {
		g.TotalAmount.Cents += t.Amount.Cents
		if t.IsPaid {
			g.PaidAmount.Cents += t.Amount.Cents
			g.PaidInstallments++
		}
		if t.TotalInstallments != nil {
			g.TotalInstallments = *t.TotalInstallments
		}
	}
	g.RemainingAmount = Money{Cents: g.TotalAmount.Cents - g.PaidAmount.Cents}
	return g
}
