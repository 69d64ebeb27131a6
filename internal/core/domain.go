package core

import (
	"strings"
	"time"
)

// TransactionType discriminates income from expense rows.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// PaymentMethod is how a transaction was settled.
type PaymentMethod string

const (
	Cash         PaymentMethod = "CASH"
	DebitCard    PaymentMethod = "DEBIT_CARD"
	CreditCard   PaymentMethod = "CREDIT_CARD"
	Pix          PaymentMethod = "PIX"
	BankTransfer PaymentMethod = "BANK_TRANSFER"
	Check        PaymentMethod = "CHECK"
	Boleto       PaymentMethod = "BOLETO"
	Loan         PaymentMethod = "LOAN"
)

// PaymentMethods lists every accepted payment method.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{Cash, DebitCard, CreditCard, Pix, BankTransfer, Check, Boleto, Loan}
}

func (p PaymentMethod) Valid() bool {
	switch p {
	case Cash, DebitCard, CreditCard, Pix, BankTransfer, Check, Boleto, Loan:
		return true
	}
	return false
}

// Bounds enforced by the domain, shared with the HTTP validation layer.
const (
	MaxDescriptionLen = 200
	MinInstallments   = 2
	MaxInstallments   = 60 // product policy, not a technical limit
	MinRecurringDay   = 1
	MaxRecurringDay   = 31
	MinRatePercent    = 0.0
	MaxRatePercent    = 100.0
)

// Category is a per-user grouping for transactions. The (UserID, Name, Type)
// triple is unique; default categories are seeded at user setup and can
// neither be deleted nor stripped of their default flag.
type Category struct {
	ID          int64           `json:"id"`
	UserID      string          `json:"userId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Color       string          `json:"color,omitempty"`
	Icon        string          `json:"icon,omitempty"`
	Type        TransactionType `json:"type"`
	IsDefault   bool            `json:"isDefault"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	// TransactionCount is derived on reads; it is not a stored column.
	TransactionCount int64 `json:"transactionCount"`
}

func (c Category) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return ErrEmptyDescription
	}
	if len(name) > 100 {
		return ErrDescriptionTooLong
	}
	if !c.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

// Transaction is a single ledger row. Installment members additionally carry
// their position and the shared group id.
type Transaction struct {
	ID                 int64           `json:"id"`
	UserID             string          `json:"userId"`
	CategoryID         int64           `json:"categoryId"`
	Description        string          `json:"description"`
	Amount             Money           `json:"amount"`
	OriginalAmount     *Money          `json:"originalAmount"`
	Type               TransactionType `json:"type"`
	PaymentMethod      PaymentMethod   `json:"paymentMethod"`
	Date               time.Time       `json:"date"`
	DueDate            *time.Time      `json:"dueDate"`
	IsPaid             bool            `json:"isPaid"`
	IsRecurring        bool            `json:"isRecurring"`
	RecurringDay       *int            `json:"recurringDay,omitempty"`
	IsInstallment      bool            `json:"isInstallment"`
	InstallmentNum     *int            `json:"installmentNum,omitempty"`
	TotalInstallments  *int            `json:"totalInstallments,omitempty"`
	InstallmentGroupID string          `json:"installmentGroupId,omitempty"`
	InterestRate       *float64        `json:"interestRate,omitempty"`
	TaxRate            *float64        `json:"taxRate,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// InstallmentMember reports whether the row belongs to an installment group.
// Members are immutable outside group-level operations except for the
// paid-status toggle.
func (t Transaction) InstallmentMember() bool {
	return t.IsInstallment && t.InstallmentGroupID != ""
}

func (t Transaction) Validate() error {
	desc := strings.TrimSpace(t.Description)
	if desc == "" {
		return ErrEmptyDescription
	}
	if len(t.Description) > MaxDescriptionLen {
		return ErrDescriptionTooLong
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if !t.PaymentMethod.Valid() {
		return ErrInvalidMethod
	}
	if t.IsRecurring {
		if t.RecurringDay == nil || *t.RecurringDay < MinRecurringDay || *t.RecurringDay > MaxRecurringDay {
			return ErrInvalidRecurringDay
		}
	}
	if t.IsInstallment && t.TotalInstallments != nil {
		if *t.TotalInstallments < MinInstallments || *t.TotalInstallments > MaxInstallments {
			return ErrInvalidInstallments
		}
	}
	if err := validateRate(t.InterestRate); err != nil {
		return err
	}
	if err := validateRate(t.TaxRate); err != nil {
		return err
	}
	return nil
}

func validateRate(r *float64) error {
	if r == nil {
		return nil
	}
	if *r < MinRatePercent || *r > MaxRatePercent {
		return ErrInvalidRate
	}
	return nil
}

// CategorySeed is one entry of the default starter set.
type CategorySeed struct {
	Name  string
	Type  TransactionType
	Color string
	Icon  string
}

// DefaultCategorySeeds is the fixed starter set created for every user.
// Seeding is idempotent: existing (name, type) pairs are skipped.
func DefaultCategorySeeds() []CategorySeed {
	return []CategorySeed{
		{Name: "Salary", Type: Income, Color: "#22c55e", Icon: "briefcase"},
		{Name: "Freelance", Type: Income, Color: "#10b981", Icon: "laptop"},
		{Name: "Investments", Type: Income, Color: "#14b8a6", Icon: "trending-up"},
		{Name: "Other Income", Type: Income, Color: "#84cc16", Icon: "plus-circle"},
		{Name: "Food", Type: Expense, Color: "#ef4444", Icon: "utensils"},
		{Name: "Transport", Type: Expense, Color: "#f97316", Icon: "car"},
		{Name: "Housing", Type: Expense, Color: "#eab308", Icon: "home"},
		{Name: "Health", Type: Expense, Color: "#ec4899", Icon: "heart-pulse"},
		{Name: "Education", Type: Expense, Color: "#8b5cf6", Icon: "graduation-cap"},
		{Name: "Leisure", Type: Expense, Color: "#06b6d4", Icon: "gamepad"},
		{Name: "Shopping", Type: Expense, Color: "#6366f1", Icon: "shopping-bag"},
		{Name: "Other Expenses", Type: Expense, Color: "#64748b", Icon: "more-horizontal"},
	}
}
