// Package storage persists the ledger. It exposes repository interfaces the
// services depend on, plus a SQLite implementation and an in-memory one used
// by tests and the memory backend.
package storage

import (
	"context"
	"time"

	"grana/internal/core"
)

// TransactionFilter narrows a ledger listing. Nil pointer fields are not
// applied. Month/Year select a calendar month and are combined with the
// explicit date range if both are present.
type TransactionFilter struct {
	Type          *core.TransactionType
	PaymentMethod *core.PaymentMethod
	CategoryID    *int64
	StartDate     *time.Time
	EndDate       *time.Time
	Month         *int
	Year          *int
	IsPaid        *bool
	IsRecurring   *bool
	IsInstallment *bool
	Page          int // >= 1
	Limit         int // 1-100
}

// TransactionPage is one page of a filtered listing.
type TransactionPage struct {
	Items []core.Transaction `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// CategoryRepository owns category rows. Implementations return
// core.ErrNotFound for rows that are absent or owned by another user and
// core.ErrConflict for uniqueness violations.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, c core.Category) (core.Category, error)
	GetCategory(ctx context.Context, userID string, id int64) (core.Category, error)
	ListCategories(ctx context.Context, userID string) ([]core.Category, error)
	UpdateCategory(ctx context.Context, c core.Category) (core.Category, error)
	DeleteCategory(ctx context.Context, userID string, id int64) error

	// CategoryNameExists reports whether another category of the same user
	// already uses (name, type). excludeID skips the row being renamed.
	CategoryNameExists(ctx context.Context, userID, name string, t core.TransactionType, excludeID int64) (bool, error)

	// CountCategoryTransactions returns how many transactions reference the
	// category; deletion is blocked while the count is non-zero.
	CountCategoryTransactions(ctx context.Context, userID string, id int64) (int64, error)
}

// TransactionRepository owns transaction rows, including the atomic
// multi-row installment write.
type TransactionRepository interface {
	CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)

	// CreateInstallmentGroup persists all rows of a plan in one database
	// transaction: a failure on any row leaves zero rows behind.
	CreateInstallmentGroup(ctx context.Context, rows []core.Transaction) ([]core.Transaction, error)

	GetTransaction(ctx context.Context, userID string, id int64) (core.Transaction, error)
	UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, userID string, id int64) error
	ListTransactions(ctx context.Context, userID string, f TransactionFilter) (TransactionPage, error)

	// ListInstallmentGroup returns the member rows ordered by installment
	// number; an empty slice means the group does not exist for this user.
	ListInstallmentGroup(ctx context.Context, userID, groupID string) ([]core.Transaction, error)
	DeleteInstallmentGroup(ctx context.Context, userID, groupID string) (int64, error)
	SetTransactionPaid(ctx context.Context, userID string, id int64, paid bool) (core.Transaction, error)

	MonthlySum(ctx context.Context, userID string, year, month int) (core.MonthlySummary, error)
	SumByCategory(ctx context.Context, userID string, year, month int) ([]core.CategorySummary, error)
	SumByPaymentMethod(ctx context.Context, userID string, year, month int) ([]core.PaymentMethodSummary, error)
}

// LedgerEvent is one audit-trail entry, written by the worker from consumed
// broker messages.
type LedgerEvent struct {
	ID                 string
	UserID             string
	Kind               string
	TransactionID      *int64
	InstallmentGroupID string
	AmountCents        *int64
	OccurredAt         time.Time
}

// EventRepository records the audit trail.
type EventRepository interface {
	RecordEvent(ctx context.Context, e LedgerEvent) error
}
